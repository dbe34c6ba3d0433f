package bits

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

type word struct {
	bits int
	v    uint
}

func bytesToFit(bits int) int {
	return (bits + 7) / 8
}

func roundTrip(t *testing.T, words []word) {
	t.Helper()
	require := require.New(t)

	arr := &Array{}
	w := NewWriter(arr)
	total := 0
	for _, wd := range words {
		w.Write(wd.bits, wd.v)
		total += wd.bits
	}
	require.Len(arr.Bytes, bytesToFit(total))

	r := NewReader(arr)
	for i, wd := range words {
		require.Equal(wd.v, r.Read(wd.bits), "word %d", i)
	}
	require.Less(r.NonReadBits(), 8)
	require.Equal(uint(0), r.Read(r.NonReadBits()), "padding must be zero")
	require.Equal(0, r.NonReadBytes())
}

func TestBits_Fixed(t *testing.T) {
	tests := []struct {
		name  string
		words []word
	}{
		{"empty", nil},
		{"single zero bit", []word{{1, 0}}},
		{"single one bit", []word{{1, 1}}},
		{"presence flags", []word{{1, 1}, {1, 0}, {1, 1}, {1, 1}}},
		{"width then flag", []word{{3, 7}, {1, 1}, {3, 2}}},
		{"crosses byte", []word{{7, 0x55}, {3, 0x5}}},
		{"full bytes", []word{{8, 0xFF}, {8, 0x01}}},
		{"wide word", []word{{2, 1}, {17, 0x1ABCD}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			roundTrip(t, tt.words)
		})
	}
}

func TestBits_Random(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	for i := 0; i < 200; i++ {
		words := make([]word, r.Intn(40))
		for j := range words {
			words[j].bits = 1 + r.Intn(16)
			words[j].v = uint(r.Intn(1 << words[j].bits))
		}
		roundTrip(t, words)
	}
}

func TestBits_ViewDoesNotConsume(t *testing.T) {
	require := require.New(t)
	arr := &Array{}
	NewWriter(arr).Write(4, 0b1010)

	r := NewReader(arr)
	require.Equal(uint(0b1010), r.View(4))
	require.Equal(8, r.NonReadBits())
	require.Equal(uint(0b1010), r.Read(4))
	require.Equal(4, r.NonReadBits())
}

func TestBits_ReadPastEnd(t *testing.T) {
	arr := &Array{}
	NewWriter(arr).Write(3, 5)
	r := NewReader(arr)
	require.Panics(t, func() { r.Read(9) })
}
