package tiprouter

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/gagliardetto/solana-go"

	"github.com/rony4d/go-tiprouter/inter"
)

const (
	MainNetworkName = "main"
	TestNetworkName = "test"
	FakeNetworkName = "fake"
)

// ProgramID is the address the tip router program is deployed under.
// Every record address is derived from it.
var ProgramID = solana.MustPublicKeyFromBase58("RouterBmuRBkPUbgEDMtdvTZ75GBdSREZR5uGUxxxpb")

var ErrInvalidRules = errors.New("invalid network rules")

// Rules describes the network a tip router instance runs against.
type Rules struct {
	Name      string
	ProgramID solana.PublicKey

	// Epochs defines how ledger time maps onto slots and epochs.
	Epochs EpochsRules

	// Fees are the fees new NCN configs start with unless told otherwise.
	Fees FeesRules
}

// EpochsRules maps wall-clock time onto slots and epochs.
type EpochsRules struct {
	// GenesisTime is the start of slot 0.
	GenesisTime time.Time
	// SlotDuration is the target length of one slot.
	SlotDuration time.Duration
	// SlotsPerEpoch is the number of slots in an epoch.
	SlotsPerEpoch uint64
}

// FeesRules holds default fee shares in basis points.
type FeesRules struct {
	DaoFeeBps         uint64
	NcnFeeBps         uint64
	BlockEngineFeeBps uint64
}

// MainNetRules returns main network rules.
func MainNetRules() Rules {
	return Rules{
		Name:      MainNetworkName,
		ProgramID: ProgramID,
		Epochs: EpochsRules{
			GenesisTime:   time.Date(2020, time.March, 16, 14, 29, 0, 0, time.UTC),
			SlotDuration:  400 * time.Millisecond,
			SlotsPerEpoch: 432000,
		},
		Fees: DefaultFeesRules(),
	}
}

// TestNetRules returns test network rules.
func TestNetRules() Rules {
	return Rules{
		Name:      TestNetworkName,
		ProgramID: ProgramID,
		Epochs: EpochsRules{
			GenesisTime:   time.Date(2020, time.September, 22, 0, 0, 0, 0, time.UTC),
			SlotDuration:  400 * time.Millisecond,
			SlotsPerEpoch: 432000,
		},
		Fees: DefaultFeesRules(),
	}
}

// FakeNetRules returns rules for a local network with short epochs.
func FakeNetRules() Rules {
	return Rules{
		Name:      FakeNetworkName,
		ProgramID: FakeKey(0).PublicKey(),
		Epochs: EpochsRules{
			GenesisTime:   time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC),
			SlotDuration:  10 * time.Millisecond,
			SlotsPerEpoch: 32,
		},
		Fees: DefaultFeesRules(),
	}
}

// DefaultFeesRules returns the fees of a freshly configured NCN:
// 3% to the block engine, 2.7% each to the DAO and the NCN.
func DefaultFeesRules() FeesRules {
	return FeesRules{
		DaoFeeBps:         270,
		NcnFeeBps:         270,
		BlockEngineFeeBps: 300,
	}
}

// RulesByName returns the predefined rules of a network.
func RulesByName(name string) (Rules, error) {
	switch name {
	case MainNetworkName:
		return MainNetRules(), nil
	case TestNetworkName:
		return TestNetRules(), nil
	case FakeNetworkName:
		return FakeNetRules(), nil
	}
	return Rules{}, fmt.Errorf("%w: unknown network %q", ErrInvalidRules, name)
}

// Validate checks the rules for values no network can run with.
func (r Rules) Validate() error {
	if r.ProgramID.IsZero() {
		return fmt.Errorf("%w: zero program id", ErrInvalidRules)
	}
	if r.Epochs.SlotDuration <= 0 {
		return fmt.Errorf("%w: slot duration %s", ErrInvalidRules, r.Epochs.SlotDuration)
	}
	if r.Epochs.SlotsPerEpoch == 0 {
		return fmt.Errorf("%w: zero slots per epoch", ErrInvalidRules)
	}
	for _, fee := range []struct {
		name string
		bps  uint64
	}{
		{"dao", r.Fees.DaoFeeBps},
		{"ncn", r.Fees.NcnFeeBps},
		{"block engine", r.Fees.BlockEngineFeeBps},
	} {
		if fee.bps > inter.MaxFeeBps {
			return fmt.Errorf("%w: %s fee %d bps", ErrInvalidRules, fee.name, fee.bps)
		}
	}
	return nil
}

// Copy returns a copy of the rules.
func (r Rules) Copy() Rules {
	cp := r
	return cp
}

// String returns the rules as JSON, for logs.
func (r Rules) String() string {
	b, _ := json.Marshal(&r)
	return string(b)
}
