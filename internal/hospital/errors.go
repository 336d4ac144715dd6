package hospital

import "errors"

// Engine error kinds. Every engine operation reports one of these to its
// caller; the shell presents it and re-prompts. None are fatal to the
// process. Callers test with errors.Is since services wrap them with
// operation context.
var (
	ErrWardNotFound               = errors.New("ward not found")
	ErrSupplyNotFound             = errors.New("supply not found")
	ErrInvalidSelection           = errors.New("invalid selection")
	ErrWardFull                   = errors.New("ward is at patient capacity")
	ErrNoBudget                   = errors.New("daily action budget exhausted")
	ErrInsufficientStock          = errors.New("insufficient stock")
	ErrInvalidQuantity            = errors.New("quantity must be positive")
	ErrQuotaExceeded              = errors.New("daily withdrawal quota exceeded")
	ErrInsufficientWarehouseStock = errors.New("insufficient warehouse stock")
)
