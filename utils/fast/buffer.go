package fast

// buffer.go provides thin cursors over byte slices used by the fixed account
// layouts and by the cser instruction codec.
//
// Neither cursor checks bounds: reading past the end panics. Callers validate
// the total length first (fixed layouts) or recover from the panic (cser).

import "encoding/binary"

// Reader consumes a byte slice front to back.
type Reader struct {
	buf    []byte
	offset int
}

// Writer appends to a byte slice.
type Writer struct {
	buf []byte
}

// NewReader creates a Reader positioned at the start of bb.
func NewReader(bb []byte) *Reader {
	return &Reader{
		buf: bb,
	}
}

// NewWriter creates a Writer appending to bb.
// Pass make([]byte, 0, size) when the final size is known.
func NewWriter(bb []byte) *Writer {
	return &Writer{
		buf: bb,
	}
}

// WriteByte appends a single byte.
func (b *Writer) WriteByte(v byte) {
	b.buf = append(b.buf, v)
}

// Write appends v verbatim.
func (b *Writer) Write(v []byte) {
	b.buf = append(b.buf, v...)
}

// Zeros appends n zero bytes. Used for reserved layout space.
func (b *Writer) Zeros(n int) {
	for i := 0; i < n; i++ {
		b.buf = append(b.buf, 0)
	}
}

// Uint64LE appends v as 8 little-endian bytes.
func (b *Writer) Uint64LE(v uint64) {
	b.buf = binary.LittleEndian.AppendUint64(b.buf, v)
}

// Bytes returns everything written so far.
func (b *Writer) Bytes() []byte {
	return b.buf
}

// Read returns the next n bytes. The result aliases the underlying buffer.
func (b *Reader) Read(n int) []byte {
	res := b.buf[b.offset : b.offset+n]
	b.offset += n
	return res
}

// ReadByte returns the next byte.
func (b *Reader) ReadByte() byte {
	res := b.buf[b.offset]
	b.offset++
	return res
}

// Uint64LE reads 8 little-endian bytes.
func (b *Reader) Uint64LE() uint64 {
	return binary.LittleEndian.Uint64(b.Read(8))
}

// Skip advances the cursor by n bytes without returning them.
func (b *Reader) Skip(n int) {
	_ = b.Read(n)
}

// Position returns the number of consumed bytes.
func (b *Reader) Position() int {
	return b.offset
}

// Remaining returns the number of bytes left to read.
func (b *Reader) Remaining() int {
	return len(b.buf) - b.offset
}

// Bytes returns the whole underlying buffer, consumed or not.
func (b *Reader) Bytes() []byte {
	return b.buf
}

// Empty reports whether every byte has been consumed.
func (b *Reader) Empty() bool {
	return len(b.buf) == b.offset
}
