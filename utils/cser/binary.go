package cser

import (
	"github.com/rony4d/go-tiprouter/utils/bits"
	"github.com/rony4d/go-tiprouter/utils/fast"
)

// Frame layout:
//
//	[byte stream][bit stream][len(bit stream) as reversed varint]
//
// The varint uses the high bit as a stop marker and is stored back to front so
// a decoder can find it from the end of the frame.

// MarshalBinaryAdapter runs marshalCser against a fresh Writer and frames the result.
func MarshalBinaryAdapter(marshalCser func(*Writer) error) ([]byte, error) {
	w := NewWriter()
	if err := marshalCser(w); err != nil {
		return nil, err
	}
	return frame(w.BitsW.Array, w.BytesW.Bytes()), nil
}

// UnmarshalBinaryAdapter splits raw into its streams, runs unmarshalCser and
// checks that nothing but zero padding is left over.
func UnmarshalBinaryAdapter(raw []byte, unmarshalCser func(*Reader) error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			if e, ok := r.(error); ok && e == ErrNonCanonicalEncoding {
				err = ErrNonCanonicalEncoding
				return
			}
			err = ErrMalformedEncoding
		}
	}()

	bbits, bbytes, err := unframe(raw)
	if err != nil {
		return err
	}
	r := &Reader{
		BitsR:  bits.NewReader(bbits),
		BytesR: fast.NewReader(bbytes),
	}
	if err := unmarshalCser(r); err != nil {
		return err
	}

	if r.BitsR.NonReadBytes() > 1 {
		return ErrNonCanonicalEncoding
	}
	if r.BitsR.Read(r.BitsR.NonReadBits()) != 0 {
		return ErrNonCanonicalEncoding
	}
	if !r.BytesR.Empty() {
		return ErrNonCanonicalEncoding
	}
	return nil
}

func frame(bbits *bits.Array, bbytes []byte) []byte {
	out := fast.NewWriter(bbytes)
	out.Write(bbits.Bytes)

	size := fast.NewWriter(make([]byte, 0, 4))
	writeVarint(size, uint64(len(bbits.Bytes)))
	out.Write(reversed(size.Bytes()))
	return out.Bytes()
}

func unframe(raw []byte) (*bits.Array, []byte, error) {
	if len(raw) == 0 {
		return nil, nil, ErrMalformedEncoding
	}
	suffix := fast.NewReader(reversed(tail(raw, 9)))
	bitsSize := readVarint(suffix)
	raw = raw[:len(raw)-suffix.Position()]
	if uint64(len(raw)) < bitsSize {
		return nil, nil, ErrMalformedEncoding
	}
	split := uint64(len(raw)) - bitsSize
	return &bits.Array{Bytes: raw[split:]}, raw[:split], nil
}

func writeVarint(w *fast.Writer, v uint64) {
	for {
		chunk := byte(v & 0x7f)
		v >>= 7
		if v == 0 {
			w.WriteByte(chunk | 0x80)
			return
		}
		w.WriteByte(chunk)
	}
}

func readVarint(r *fast.Reader) uint64 {
	var v uint64
	for i := 0; ; i++ {
		chunk := r.ReadByte()
		stop := chunk&0x80 != 0
		word := uint64(chunk & 0x7f)
		v |= word << (7 * uint(i))
		if stop {
			if i > 0 && word == 0 {
				panic(ErrNonCanonicalEncoding)
			}
			return v
		}
	}
}

func tail(b []byte, n int) []byte {
	if len(b) > n {
		return b[len(b)-n:]
	}
	return b
}

func reversed(b []byte) []byte {
	out := make([]byte, len(b))
	for i, v := range b {
		out[len(b)-1-i] = v
	}
	return out
}
