package inter

import (
	"bytes"
	"crypto/sha256"
	"encoding/binary"
	"math"
	"sort"

	"github.com/Fantom-foundation/lachesis-base/hash"
	"github.com/ethereum/go-ethereum/rlp"
	"github.com/gagliardetto/solana-go"
)

const (
	// MaxTableEntries is the fixed capacity of a weight table.
	MaxTableEntries = 32
	// NotFinalized is the SlotFinalized sentinel of a table still being built.
	// It sorts after every real slot.
	NotFinalized uint64 = math.MaxUint64
	// weightTableReserved is unused space kept for layout upgrades.
	weightTableReserved = 128
)

// WeightEntry pairs a token mint with its weight. An entry whose mint is the
// zero key is an empty slot.
type WeightEntry struct {
	Mint   solana.PublicKey `json:"mint"`
	Weight Share            `json:"weight"`
}

// NewWeightEntry returns an occupied entry.
func NewWeightEntry(mint solana.PublicKey, weight Share) WeightEntry {
	return WeightEntry{Mint: mint, Weight: weight}
}

// IsEmpty reports whether the slot is free.
func (e WeightEntry) IsEmpty() bool {
	return e.Mint.IsZero()
}

// WeightTable holds the weights an NCN uses for one epoch. It is built with
// SetWeight, sealed once with Finalize and never changes afterwards.
// Entries are never removed or reordered.
type WeightTable struct {
	ncn           solana.PublicKey
	ncnEpoch      uint64
	slotCreated   uint64
	slotFinalized uint64
	bump          uint8
	table         [MaxTableEntries]WeightEntry
}

// NewWeightTable returns an empty, unfinalized table.
func NewWeightTable(ncn solana.PublicKey, ncnEpoch, slotCreated uint64, bump uint8) *WeightTable {
	return &WeightTable{
		ncn:           ncn,
		ncnEpoch:      ncnEpoch,
		slotCreated:   slotCreated,
		slotFinalized: NotFinalized,
		bump:          bump,
	}
}

func (w *WeightTable) Ncn() solana.PublicKey { return w.ncn }
func (w *WeightTable) NcnEpoch() uint64      { return w.ncnEpoch }
func (w *WeightTable) SlotCreated() uint64   { return w.slotCreated }
func (w *WeightTable) SlotFinalized() uint64 { return w.slotFinalized }
func (w *WeightTable) Bump() uint8           { return w.bump }

// Finalized reports whether Finalize has been called.
func (w *WeightTable) Finalized() bool {
	return w.slotFinalized != NotFinalized
}

// Finalize seals the table at currentSlot. It can happen only once; a second
// call fails and keeps the first slot.
func (w *WeightTable) Finalize(currentSlot uint64) error {
	if w.Finalized() {
		return ErrWeightTableFinalized
	}
	if currentSlot == NotFinalized {
		return ErrInvalidSlot
	}
	w.slotFinalized = currentSlot
	return nil
}

// Entries returns the occupied entries in slot order.
func (w *WeightTable) Entries() []WeightEntry {
	entries := make([]WeightEntry, 0, MaxTableEntries)
	for _, e := range w.table {
		if !e.IsEmpty() {
			entries = append(entries, e)
		}
	}
	return entries
}

// Mints returns the mints of the occupied entries in slot order.
func (w *WeightTable) Mints() []solana.PublicKey {
	mints := make([]solana.PublicKey, 0, MaxTableEntries)
	for _, e := range w.table {
		if !e.IsEmpty() {
			mints = append(mints, e.Mint)
		}
	}
	return mints
}

// EntryCount returns the number of occupied entries.
func (w *WeightTable) EntryCount() int {
	count := 0
	for _, e := range w.table {
		if !e.IsEmpty() {
			count++
		}
	}
	return count
}

// FindWeight returns the weight of mint, if present.
func (w *WeightTable) FindWeight(mint solana.PublicKey) (Share, bool) {
	if mint.IsZero() {
		return Share{}, false
	}
	for _, e := range w.table {
		if e.Mint == mint {
			return e.Weight, true
		}
	}
	return Share{}, false
}

// SetWeight overwrites the weight of mint, or stores it in the first empty
// slot. A full table rejects new mints; known mints can always be updated
// until the table is finalized.
func (w *WeightTable) SetWeight(mint solana.PublicKey, weight Share) error {
	if w.Finalized() {
		return ErrWeightTableFinalized
	}
	if mint.IsZero() {
		return ErrInvalidMintForWeightTable
	}

	for i := range w.table {
		if w.table[i].Mint == mint {
			w.table[i].Weight = weight
			return nil
		}
	}
	for i := range w.table {
		if w.table[i].IsEmpty() {
			w.table[i] = NewWeightEntry(mint, weight)
			return nil
		}
	}
	return ErrNoMoreTableSlots
}

// MintHash fingerprints a set of mints: the first 8 bytes of each key, read
// little-endian, XOR-folded in ascending key order. The result does not depend
// on the order of mints.
func MintHash(mints []solana.PublicKey) uint64 {
	sorted := make([]solana.PublicKey, len(mints))
	copy(sorted, mints)
	sort.Slice(sorted, func(i, j int) bool {
		return bytes.Compare(sorted[i][:], sorted[j][:]) < 0
	})

	var h uint64
	for _, mint := range sorted {
		h ^= binary.LittleEndian.Uint64(mint[:8])
	}
	return h
}

// CheckMintsOkay verifies that a caller reasons about exactly the mints held
// by the table without shipping the whole table around.
func (w *WeightTable) CheckMintsOkay(mintHash uint64, mintCount uint8) error {
	if int(mintCount) != w.EntryCount() {
		return ErrWeightMintsDoNotMatchLength
	}
	if mintHash != MintHash(w.Mints()) {
		return ErrWeightMintsDoNotMatchMintHash
	}
	return nil
}

type weightEntryRLP struct {
	Mint   solana.PublicKey
	Weight [ShareSize]byte
}

type weightTableRLP struct {
	Ncn           solana.PublicKey
	NcnEpoch      uint64
	SlotCreated   uint64
	SlotFinalized uint64
	Table         []weightEntryRLP
}

// Hash returns the SHA256 of the RLP-encoded table, slots in storage order.
// Auditors compare it to pin a finalized table as a whole, weights included.
func (w *WeightTable) Hash() hash.Hash {
	enc := weightTableRLP{
		Ncn:           w.ncn,
		NcnEpoch:      w.ncnEpoch,
		SlotCreated:   w.slotCreated,
		SlotFinalized: w.slotFinalized,
		Table:         make([]weightEntryRLP, len(w.table)),
	}
	for i, e := range w.table {
		enc.Table[i] = weightEntryRLP{Mint: e.Mint, Weight: e.Weight.Bytes()}
	}

	hasher := sha256.New()
	if err := rlp.Encode(hasher, &enc); err != nil {
		panic("can't hash: " + err.Error())
	}
	return hash.BytesToHash(hasher.Sum(nil))
}
