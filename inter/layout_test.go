package inter

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLayout_Sizes(t *testing.T) {
	require := require.New(t)

	require.Equal(64, FeeSize)
	require.Equal(128, FeesSize)
	require.Equal(48, WeightEntrySize)
	require.Equal(1721, WeightTableSize)
}

func TestLayout_Fee(t *testing.T) {
	require := require.New(t)

	fee := NewFee(testKey(7), 1, 2, 3, 4)
	raw, err := fee.MarshalBinary()
	require.NoError(err)
	require.Len(raw, FeeSize)
	require.Equal(testKey(7).Bytes(), raw[:32])
	require.Equal(uint64(1), binary.LittleEndian.Uint64(raw[32:]))
	require.Equal(uint64(4), binary.LittleEndian.Uint64(raw[56:]))

	var got Fee
	require.NoError(got.UnmarshalBinary(raw))
	require.Equal(fee, got)

	require.ErrorIs(got.UnmarshalBinary(raw[1:]), ErrMalformedLayout)
}

func TestLayout_Fees(t *testing.T) {
	require := require.New(t)

	fees := NewFees(testKey(7), 100, 200, 50, 5)
	require.NoError(fees.SetNewFees(FeeUpdate{DaoFeeBps: u64(150)}, 5))

	raw, err := fees.MarshalBinary()
	require.NoError(err)
	require.Len(raw, FeesSize)

	var got Fees
	require.NoError(got.UnmarshalBinary(raw))
	require.Equal(fees.Slots(), got.Slots())
	require.Equal(fees.CurrentFee(6), got.CurrentFee(6))

	require.ErrorIs(got.UnmarshalBinary(append(raw, 0)), ErrMalformedLayout)
}

func TestLayout_WeightEntry(t *testing.T) {
	require := require.New(t)

	weight, err := ParseShare("340282366920938463463374607431768211455")
	require.NoError(err)
	entry := NewWeightEntry(testKey(3), weight)

	raw, err := entry.MarshalBinary()
	require.NoError(err)
	require.Len(raw, WeightEntrySize)
	for _, b := range raw[32:] {
		require.Equal(byte(0xff), b)
	}

	var got WeightEntry
	require.NoError(got.UnmarshalBinary(raw))
	require.Equal(entry, got)
	require.ErrorIs(got.UnmarshalBinary(nil), ErrMalformedLayout)
}

func TestLayout_WeightTable(t *testing.T) {
	require := require.New(t)

	table := NewWeightTable(testKey(1), 7, 1000, 253)
	require.NoError(table.SetWeight(testKey(2), NewShare(10)))
	require.NoError(table.SetWeight(testKey(3), NewShare(20)))
	require.NoError(table.Finalize(1200))

	raw, err := table.MarshalBinary()
	require.NoError(err)
	require.Len(raw, WeightTableSize)

	require.Equal(uint64(7), binary.LittleEndian.Uint64(raw[32:]))
	require.Equal(uint64(1000), binary.LittleEndian.Uint64(raw[40:]))
	require.Equal(uint64(1200), binary.LittleEndian.Uint64(raw[48:]))
	require.Equal(byte(253), raw[56])
	require.Equal(make([]byte, 128), raw[57:185])
	require.Equal(testKey(2).Bytes(), raw[185:217])

	got := new(WeightTable)
	require.NoError(got.UnmarshalBinary(raw))
	require.Equal(table, got)
	require.Equal(table.Hash(), got.Hash())

	require.ErrorIs(got.UnmarshalBinary(raw[:WeightTableSize-1]), ErrMalformedLayout)
}
