package inter

import (
	"encoding/binary"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common/math"
)

// ShareSize is the width of a Share in the account layout.
const ShareSize = 16

// Share is an exact unsigned 128-bit fixed-point quantity. The weight table
// stores it in raw units; the scale is agreed between whoever computes the
// weights and whoever consumes them. Share values are comparable with ==.
type Share struct {
	lo, hi uint64
}

// NewShare returns a Share holding v raw units.
func NewShare(v uint64) Share {
	return Share{lo: v}
}

// ShareFromBig converts a non-negative integer of at most 128 bits.
func ShareFromBig(v *big.Int) (Share, error) {
	if v.Sign() < 0 || v.BitLen() > 128 {
		return Share{}, ErrArithmeticOverflow
	}
	lo := new(big.Int).And(v, new(big.Int).SetUint64(^uint64(0)))
	hi := new(big.Int).Rsh(v, 64)
	return Share{lo: lo.Uint64(), hi: hi.Uint64()}, nil
}

// ParseShare parses a raw value, in decimal or 0x-prefixed hex.
func ParseShare(s string) (Share, error) {
	v, ok := math.ParseBig256(s)
	if !ok || s == "" {
		return Share{}, fmt.Errorf("invalid share %q", s)
	}
	return ShareFromBig(v)
}

// Big returns the value as a new big.Int.
func (s Share) Big() *big.Int {
	v := new(big.Int).SetUint64(s.hi)
	v.Lsh(v, 64)
	return v.Or(v, new(big.Int).SetUint64(s.lo))
}

// Cmp compares s and o and returns -1, 0 or +1.
func (s Share) Cmp(o Share) int {
	switch {
	case s.hi < o.hi:
		return -1
	case s.hi > o.hi:
		return 1
	case s.lo < o.lo:
		return -1
	case s.lo > o.lo:
		return 1
	}
	return 0
}

// IsZero reports whether s is zero.
func (s Share) IsZero() bool {
	return s.lo == 0 && s.hi == 0
}

// String returns the decimal raw value.
func (s Share) String() string {
	return s.Big().String()
}

// MarshalText implements encoding.TextMarshaler.
func (s Share) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Share) UnmarshalText(input []byte) error {
	v, err := ParseShare(string(input))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// Bytes returns the 16-byte little-endian representation.
func (s Share) Bytes() [ShareSize]byte {
	var b [ShareSize]byte
	binary.LittleEndian.PutUint64(b[:8], s.lo)
	binary.LittleEndian.PutUint64(b[8:], s.hi)
	return b
}

// ShareFromBytes decodes the 16-byte little-endian representation.
func ShareFromBytes(b [ShareSize]byte) Share {
	return Share{
		lo: binary.LittleEndian.Uint64(b[:8]),
		hi: binary.LittleEndian.Uint64(b[8:]),
	}
}
