// Package bits implements an LSB-first bit stream. The cser codec keeps
// presence flags and integer widths here, out of the byte stream.
package bits

type (
	// Array holds the packed stream.
	Array struct {
		Bytes []byte
	}

	// Writer appends bits to an Array.
	Writer struct {
		*Array
		bitOffset int // next free bit in the last byte, 0 means a new byte is needed
	}

	// Reader consumes bits from an Array.
	Reader struct {
		*Array
		byteOffset int
		bitOffset  int
	}
)

// NewWriter returns a Writer appending to arr.
func NewWriter(arr *Array) *Writer {
	return &Writer{
		Array: arr,
	}
}

// NewReader returns a Reader positioned at the first bit of arr.
func NewReader(arr *Array) *Reader {
	return &Reader{
		Array: arr,
	}
}

// Write appends the lowest n bits of v. Higher bits of v must be zero.
func (a *Writer) Write(n int, v uint) {
	for n > 0 {
		if a.bitOffset == 0 {
			a.Bytes = append(a.Bytes, 0)
		}
		free := 8 - a.bitOffset
		chunk := n
		if chunk > free {
			chunk = free
		}
		mask := uint(1)<<chunk - 1
		a.Bytes[len(a.Bytes)-1] |= byte((v & mask) << a.bitOffset)
		a.bitOffset = (a.bitOffset + chunk) % 8
		v >>= chunk
		n -= chunk
	}
}

// Read consumes n bits and returns them as an integer.
// It panics when fewer than n bits remain.
func (a *Reader) Read(n int) (v uint) {
	shift := 0
	for n > 0 {
		free := 8 - a.bitOffset
		chunk := n
		if chunk > free {
			chunk = free
		}
		mask := uint(1)<<chunk - 1
		v |= ((uint(a.Bytes[a.byteOffset]) >> a.bitOffset) & mask) << shift
		a.bitOffset += chunk
		if a.bitOffset == 8 {
			a.bitOffset = 0
			a.byteOffset++
		}
		shift += chunk
		n -= chunk
	}
	return v
}

// View returns the next n bits without consuming them.
func (a *Reader) View(n int) uint {
	cp := *a
	return cp.Read(n)
}

// NonReadBytes returns the number of bytes not yet fully consumed.
func (a *Reader) NonReadBytes() int {
	return len(a.Bytes) - a.byteOffset
}

// NonReadBits returns the number of bits left, padding included.
func (a *Reader) NonReadBits() int {
	return a.NonReadBytes()*8 - a.bitOffset
}
