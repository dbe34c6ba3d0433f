package processor

import "errors"

var (
	ErrIncorrectNcn                   = errors.New("incorrect NCN")
	ErrIncorrectNcnAdmin              = errors.New("incorrect NCN admin")
	ErrIncorrectWeightTableAdmin      = errors.New("incorrect weight table admin")
	ErrIncorrectFeeAdmin              = errors.New("incorrect fee admin")
	ErrCannotCreateFutureWeightTables = errors.New("cannot create future weight tables")
	ErrAccountAlreadyInitialized      = errors.New("account already initialized")
)
