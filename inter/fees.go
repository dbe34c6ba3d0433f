package inter

import (
	"encoding/json"

	"github.com/gagliardetto/solana-go"

	"github.com/rony4d/go-tiprouter/utils/safemath"
)

// MaxFeeBps is the basis-point budget: 10000 bps = 100%.
const MaxFeeBps uint64 = 10000

// Fee is one slot of the fee schedule. It becomes authoritative from
// ActivationEpoch onwards and stays so until the other slot overtakes it.
type Fee struct {
	// Wallet receives the DAO share.
	Wallet solana.PublicKey `json:"wallet"`
	// DaoShareBps and NcnShareBps are shares of what is left after the block
	// engine fee, see Fees.DaoFee.
	DaoShareBps uint64 `json:"daoShareBps"`
	NcnShareBps uint64 `json:"ncnShareBps"`
	// BlockEngineFeeBps is taken first, out of the whole budget.
	BlockEngineFeeBps uint64 `json:"blockEngineFeeBps"`
	ActivationEpoch   uint64 `json:"activationEpoch"`
}

// NewFee builds a fee slot active from epoch.
func NewFee(wallet solana.PublicKey, daoShareBps, ncnShareBps, blockEngineFeeBps, epoch uint64) Fee {
	return Fee{
		Wallet:            wallet,
		DaoShareBps:       daoShareBps,
		NcnShareBps:       ncnShareBps,
		BlockEngineFeeBps: blockEngineFeeBps,
		ActivationEpoch:   epoch,
	}
}

// FeeUpdate lists the fields an administrator wants to change. Nil fields keep
// the value of the currently active fee.
type FeeUpdate struct {
	DaoFeeBps         *uint64
	NcnFeeBps         *uint64
	BlockEngineFeeBps *uint64
	Wallet            *solana.PublicKey
}

// Fees is the dual-slot fee schedule embedded in the NCN config.
//
// Updates never touch the slot that is active in the current epoch: they are
// written to the other slot with ActivationEpoch = current+1. Every reader of
// epoch e therefore sees the same fee no matter when within e it reads and how
// many updates were made during e. At most one slot is ever in the future,
// which is what makes the selection in CurrentFee unambiguous.
type Fees struct {
	fee1 Fee
	fee2 Fee
}

// NewFees seeds both slots with the same fee, active from currentEpoch.
func NewFees(wallet solana.PublicKey, daoFeeShareBps, ncnFeeShareBps, blockEngineFeeBps, currentEpoch uint64) Fees {
	fee := NewFee(wallet, daoFeeShareBps, ncnFeeShareBps, blockEngineFeeBps, currentEpoch)
	return Fees{
		fee1: fee,
		fee2: fee,
	}
}

// CurrentFee returns the fee authoritative in currentEpoch.
func (f Fees) CurrentFee(currentEpoch uint64) Fee {
	// a slot that is not active yet defers to the other one
	if f.fee1.ActivationEpoch > currentEpoch {
		return f.fee2
	}
	if f.fee2.ActivationEpoch > currentEpoch {
		return f.fee1
	}

	// both active: the later activation wins, fee1 on a tie
	if f.fee1.ActivationEpoch >= f.fee2.ActivationEpoch {
		return f.fee1
	}
	return f.fee2
}

// BlockEngineFee returns the block engine fee in bps for currentEpoch.
func (f Fees) BlockEngineFee(currentEpoch uint64) uint64 {
	return f.CurrentFee(currentEpoch).BlockEngineFeeBps
}

// DaoFee returns the DAO share re-based onto the whole budget:
//
//	dao_share_bps * 10000 / (10000 - block_engine_fee_bps)
func (f Fees) DaoFee(currentEpoch uint64) (uint64, error) {
	fee := f.CurrentFee(currentEpoch)
	return rebase(fee.DaoShareBps, fee.BlockEngineFeeBps)
}

// NcnFee returns the NCN share re-based onto the whole budget, see DaoFee.
func (f Fees) NcnFee(currentEpoch uint64) (uint64, error) {
	fee := f.CurrentFee(currentEpoch)
	return rebase(fee.NcnShareBps, fee.BlockEngineFeeBps)
}

// FeeWallet returns the wallet of the fee active in currentEpoch.
func (f Fees) FeeWallet(currentEpoch uint64) solana.PublicKey {
	return f.CurrentFee(currentEpoch).Wallet
}

// Slots returns both slots in storage order.
func (f Fees) Slots() [2]Fee {
	return [2]Fee{f.fee1, f.fee2}
}

func rebase(shareBps, blockEngineFeeBps uint64) (uint64, error) {
	remaining, ok := safemath.Sub64(MaxFeeBps, blockEngineFeeBps)
	if !ok {
		return 0, ErrArithmeticOverflow
	}
	if remaining == 0 {
		return 0, ErrDenominatorIsZero
	}
	scaled, ok := safemath.Mul64(shareBps, MaxFeeBps)
	if !ok {
		return 0, ErrArithmeticOverflow
	}
	v, _ := safemath.Div64(scaled, remaining)
	return v, nil
}

// updatableFee returns the slot a change made in currentEpoch must go to:
// the one already scheduled for the next epoch, otherwise the staler one.
func (f *Fees) updatableFee(currentEpoch uint64) (*Fee, error) {
	nextEpoch, ok := safemath.Add64(currentEpoch, 1)
	if !ok {
		return nil, ErrArithmeticOverflow
	}

	if f.fee1.ActivationEpoch == nextEpoch {
		return &f.fee1, nil
	}
	if f.fee2.ActivationEpoch == nextEpoch {
		return &f.fee2, nil
	}

	// fee2 on a tie: CurrentFee prefers fee1, which must stay readable
	if f.fee1.ActivationEpoch < f.fee2.ActivationEpoch {
		return &f.fee1, nil
	}
	return &f.fee2, nil
}

// SetNewFees schedules u to take effect at currentEpoch+1.
//
// The new fee starts from the fee active in currentEpoch, so repeated updates
// within one epoch coalesce into a single pending change. All fields are
// checked before anything is written: on error neither slot changes.
func (f *Fees) SetNewFees(u FeeUpdate, currentEpoch uint64) error {
	target, err := f.updatableFee(currentEpoch)
	if err != nil {
		return err
	}

	next := f.CurrentFee(currentEpoch)
	if u.DaoFeeBps != nil {
		if *u.DaoFeeBps > MaxFeeBps {
			return ErrFeeCapExceeded
		}
		next.DaoShareBps = *u.DaoFeeBps
	}
	if u.NcnFeeBps != nil {
		if *u.NcnFeeBps > MaxFeeBps {
			return ErrFeeCapExceeded
		}
		next.NcnShareBps = *u.NcnFeeBps
	}
	if u.BlockEngineFeeBps != nil {
		if *u.BlockEngineFeeBps > MaxFeeBps {
			return ErrFeeCapExceeded
		}
		next.BlockEngineFeeBps = *u.BlockEngineFeeBps
	}
	if u.Wallet != nil {
		next.Wallet = *u.Wallet
	}
	next.ActivationEpoch = currentEpoch + 1

	*target = next
	return nil
}

// MarshalJSON renders both slots, mostly for inspection tooling.
func (f Fees) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Fee1 Fee `json:"fee1"`
		Fee2 Fee `json:"fee2"`
	}{f.fee1, f.fee2})
}
