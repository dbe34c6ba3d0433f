package cser

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAdapter_Empty(t *testing.T) {
	buf, err := MarshalBinaryAdapter(func(w *Writer) error { return nil })
	require.NoError(t, err)

	err = UnmarshalBinaryAdapter(buf, func(r *Reader) error { return nil })
	require.NoError(t, err)
}

func TestAdapter_RoundTrip(t *testing.T) {
	require := require.New(t)
	dao := uint64(150)
	fixed := [32]byte{1, 2, 3, 31: 0xFF}

	buf, err := MarshalBinaryAdapter(func(w *Writer) error {
		w.U8(3)
		w.OptionalU64(&dao)
		w.OptionalU64(nil)
		w.U64(math.MaxUint64)
		w.U64(0)
		w.Bool(true)
		w.FixedBytes(fixed[:])
		return nil
	})
	require.NoError(err)

	err = UnmarshalBinaryAdapter(buf, func(r *Reader) error {
		require.Equal(uint8(3), r.U8())
		got := r.OptionalU64()
		require.NotNil(got)
		require.Equal(dao, *got)
		require.Nil(r.OptionalU64())
		require.Equal(uint64(math.MaxUint64), r.U64())
		require.Equal(uint64(0), r.U64())
		require.True(r.Bool())
		var out [32]byte
		r.FixedBytes(out[:])
		require.Equal(fixed, out)
		return nil
	})
	require.NoError(err)
}

func TestAdapter_Errors(t *testing.T) {
	t.Run("marshal error is returned", func(t *testing.T) {
		errExp := errors.New("custom")
		_, err := MarshalBinaryAdapter(func(w *Writer) error {
			w.Bool(false)
			return errExp
		})
		require.Equal(t, errExp, err)
	})

	t.Run("nil input", func(t *testing.T) {
		err := UnmarshalBinaryAdapter(nil, func(r *Reader) error { return nil })
		require.Equal(t, ErrMalformedEncoding, err)
	})

	t.Run("truncated", func(t *testing.T) {
		buf, err := MarshalBinaryAdapter(func(w *Writer) error {
			w.U64(math.MaxUint64)
			return nil
		})
		require.NoError(t, err)
		// drop body bytes but keep the suffix
		short := append([]byte{}, buf[4:]...)
		err = UnmarshalBinaryAdapter(short, func(r *Reader) error {
			r.U64()
			return nil
		})
		require.Error(t, err)
	})

	t.Run("unread bytes", func(t *testing.T) {
		buf, err := MarshalBinaryAdapter(func(w *Writer) error {
			w.U8(1)
			w.U8(2)
			return nil
		})
		require.NoError(t, err)
		err = UnmarshalBinaryAdapter(buf, func(r *Reader) error {
			r.U8()
			return nil
		})
		require.Equal(t, ErrNonCanonicalEncoding, err)
	})

	t.Run("unread bits", func(t *testing.T) {
		buf, err := MarshalBinaryAdapter(func(w *Writer) error {
			w.Bool(true)
			return nil
		})
		require.NoError(t, err)
		err = UnmarshalBinaryAdapter(buf, func(r *Reader) error { return nil })
		require.Equal(t, ErrNonCanonicalEncoding, err)
	})

	t.Run("padded integer", func(t *testing.T) {
		// U64(5) stored in two bytes: body [05 00], width bits 001, bit stream len 1
		raw := []byte{0x05, 0x00, 0x01, 0x81}
		err := UnmarshalBinaryAdapter(raw, func(r *Reader) error {
			r.U64()
			return nil
		})
		require.Equal(t, ErrNonCanonicalEncoding, err)
	})
}
