package inter

import "errors"

// Errors returned by the fee schedule, the weight table and the instruction
// codec. Processor and store errors live next to their packages.
var (
	ErrArithmeticOverflow   = errors.New("arithmetic overflow")
	ErrDenominatorIsZero    = errors.New("zero in the denominator")
	ErrFeeCapExceeded       = errors.New("fee cap exceeded")
	ErrNoMoreTableSlots     = errors.New("no more table slots available")
	ErrWeightTableFinalized = errors.New("weight table is finalized")
	ErrInvalidSlot          = errors.New("invalid finalization slot")
	ErrNoMintsInTable       = errors.New("there are no mints in the table")

	ErrInvalidMintForWeightTable     = errors.New("invalid mint for weight table")
	ErrWeightMintsDoNotMatchLength   = errors.New("weight mints do not match - length")
	ErrWeightMintsDoNotMatchMintHash = errors.New("weight mints do not match - mint hash")

	ErrMalformedLayout    = errors.New("malformed account layout")
	ErrUnknownInstruction = errors.New("unknown instruction")
)
