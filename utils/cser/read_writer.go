// Package cser is a canonical split-stream codec for instruction payloads.
//
// Values go to two streams: raw bytes to the byte stream, and everything that
// is smaller than a byte (flags, integer widths) to the bit stream. Integers
// are stored in the minimal number of little-endian bytes and the width is
// kept in the bit stream. Decoding rejects any non-minimal encoding, so every
// value has exactly one valid encoding.
package cser

import (
	"errors"

	"github.com/rony4d/go-tiprouter/utils/bits"
	"github.com/rony4d/go-tiprouter/utils/fast"
)

var (
	ErrNonCanonicalEncoding = errors.New("non canonical encoding")
	ErrMalformedEncoding    = errors.New("malformed encoding")
)

// Writer writes to the bit stream and the byte stream.
type Writer struct {
	BitsW  *bits.Writer
	BytesW *fast.Writer
}

// Reader reads from the bit stream and the byte stream.
type Reader struct {
	BitsR  *bits.Reader
	BytesR *fast.Reader
}

// NewWriter returns an empty Writer.
func NewWriter() *Writer {
	return &Writer{
		BitsW:  bits.NewWriter(&bits.Array{Bytes: make([]byte, 0, 8)}),
		BytesW: fast.NewWriter(make([]byte, 0, 64)),
	}
}

// writeMinimal writes v in as few little-endian bytes as possible, but at least
// minSize, and returns the number of bytes written.
func writeMinimal(w *fast.Writer, v uint64, minSize int) (size int) {
	for size < minSize || v != 0 {
		w.WriteByte(byte(v))
		v >>= 8
		size++
	}
	return size
}

func readMinimal(r *fast.Reader, size int) uint64 {
	var v uint64
	buf := r.Read(size)
	for i, b := range buf {
		v |= uint64(b) << (8 * uint(i))
	}
	if size > 1 && buf[size-1] == 0 {
		panic(ErrNonCanonicalEncoding)
	}
	return v
}

// U8 writes a single raw byte.
func (w *Writer) U8(v uint8) {
	w.BytesW.WriteByte(v)
}

// U8 reads a single raw byte.
func (r *Reader) U8() uint8 {
	return r.BytesR.ReadByte()
}

// U64 writes 1..8 bytes and a 3-bit width (size-1).
func (w *Writer) U64(v uint64) {
	size := writeMinimal(w.BytesW, v, 1)
	w.BitsW.Write(3, uint(size-1))
}

// U64 reads a value written by Writer.U64.
func (r *Reader) U64() uint64 {
	size := int(r.BitsR.Read(3)) + 1
	return readMinimal(r.BytesR, size)
}

// Bool writes one bit.
func (w *Writer) Bool(v bool) {
	u := uint(0)
	if v {
		u = 1
	}
	w.BitsW.Write(1, u)
}

// Bool reads one bit.
func (r *Reader) Bool() bool {
	return r.BitsR.Read(1) != 0
}

// FixedBytes writes v verbatim; the reader must know the length.
func (w *Writer) FixedBytes(v []byte) {
	w.BytesW.Write(v)
}

// FixedBytes fills v from the byte stream.
func (r *Reader) FixedBytes(v []byte) {
	copy(v, r.BytesR.Read(len(v)))
}

// OptionalU64 writes a presence bit followed by the value when v is not nil.
func (w *Writer) OptionalU64(v *uint64) {
	w.Bool(v != nil)
	if v != nil {
		w.U64(*v)
	}
}

// OptionalU64 reads a value written by Writer.OptionalU64.
func (r *Reader) OptionalU64() *uint64 {
	if !r.Bool() {
		return nil
	}
	v := r.U64()
	return &v
}
