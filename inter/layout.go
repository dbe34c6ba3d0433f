package inter

import (
	"github.com/gagliardetto/solana-go"

	"github.com/rony4d/go-tiprouter/utils/fast"
)

// Account layout sizes, in bytes. Fields are little-endian and unpadded.
const (
	FeeSize         = solana.PublicKeyLength + 4*8
	FeesSize        = 2 * FeeSize
	WeightEntrySize = solana.PublicKeyLength + ShareSize
	WeightTableSize = solana.PublicKeyLength + 3*8 + 1 + weightTableReserved + MaxTableEntries*WeightEntrySize
)

func writeFee(w *fast.Writer, f Fee) {
	w.Write(f.Wallet[:])
	w.Uint64LE(f.DaoShareBps)
	w.Uint64LE(f.NcnShareBps)
	w.Uint64LE(f.BlockEngineFeeBps)
	w.Uint64LE(f.ActivationEpoch)
}

func readFee(r *fast.Reader) (f Fee) {
	copy(f.Wallet[:], r.Read(solana.PublicKeyLength))
	f.DaoShareBps = r.Uint64LE()
	f.NcnShareBps = r.Uint64LE()
	f.BlockEngineFeeBps = r.Uint64LE()
	f.ActivationEpoch = r.Uint64LE()
	return f
}

func writeWeightEntry(w *fast.Writer, e WeightEntry) {
	weight := e.Weight.Bytes()
	w.Write(e.Mint[:])
	w.Write(weight[:])
}

func readWeightEntry(r *fast.Reader) (e WeightEntry) {
	var weight [ShareSize]byte
	copy(e.Mint[:], r.Read(solana.PublicKeyLength))
	copy(weight[:], r.Read(ShareSize))
	e.Weight = ShareFromBytes(weight)
	return e
}

// MarshalBinary implements encoding.BinaryMarshaler.
func (f Fee) MarshalBinary() ([]byte, error) {
	w := fast.NewWriter(make([]byte, 0, FeeSize))
	writeFee(w, f)
	return w.Bytes(), nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler.
func (f *Fee) UnmarshalBinary(raw []byte) error {
	if len(raw) != FeeSize {
		return ErrMalformedLayout
	}
	*f = readFee(fast.NewReader(raw))
	return nil
}

// MarshalBinary implements encoding.BinaryMarshaler.
func (f Fees) MarshalBinary() ([]byte, error) {
	w := fast.NewWriter(make([]byte, 0, FeesSize))
	writeFee(w, f.fee1)
	writeFee(w, f.fee2)
	return w.Bytes(), nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler.
func (f *Fees) UnmarshalBinary(raw []byte) error {
	if len(raw) != FeesSize {
		return ErrMalformedLayout
	}
	r := fast.NewReader(raw)
	f.fee1 = readFee(r)
	f.fee2 = readFee(r)
	return nil
}

// MarshalBinary implements encoding.BinaryMarshaler.
func (e WeightEntry) MarshalBinary() ([]byte, error) {
	w := fast.NewWriter(make([]byte, 0, WeightEntrySize))
	writeWeightEntry(w, e)
	return w.Bytes(), nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler.
func (e *WeightEntry) UnmarshalBinary(raw []byte) error {
	if len(raw) != WeightEntrySize {
		return ErrMalformedLayout
	}
	*e = readWeightEntry(fast.NewReader(raw))
	return nil
}

// MarshalBinary implements encoding.BinaryMarshaler.
// Reserved space is written as zeros.
func (w *WeightTable) MarshalBinary() ([]byte, error) {
	buf := fast.NewWriter(make([]byte, 0, WeightTableSize))
	buf.Write(w.ncn[:])
	buf.Uint64LE(w.ncnEpoch)
	buf.Uint64LE(w.slotCreated)
	buf.Uint64LE(w.slotFinalized)
	buf.WriteByte(w.bump)
	buf.Zeros(weightTableReserved)
	for _, e := range w.table {
		writeWeightEntry(buf, e)
	}
	return buf.Bytes(), nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler.
// Stored tables are trusted to keep the no-duplicates invariant; only the
// length is checked.
func (w *WeightTable) UnmarshalBinary(raw []byte) error {
	if len(raw) != WeightTableSize {
		return ErrMalformedLayout
	}
	r := fast.NewReader(raw)
	copy(w.ncn[:], r.Read(solana.PublicKeyLength))
	w.ncnEpoch = r.Uint64LE()
	w.slotCreated = r.Uint64LE()
	w.slotFinalized = r.Uint64LE()
	w.bump = r.ReadByte()
	r.Skip(weightTableReserved)
	for i := range w.table {
		w.table[i] = readWeightEntry(r)
	}
	return nil
}
