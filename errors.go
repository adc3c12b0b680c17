package papertrade

import "errors"

// Every expected, user-facing outcome of the core is one of these sentinel
// errors, possibly wrapped with context. Callers classify with errors.Is and
// decide presentation; none of them is fatal and a failed operation never
// leaves the ledger partially mutated.
var (
	ErrInvalidSymbol         = errors.New("invalid symbol")
	ErrInvalidQuantity       = errors.New("quantity must be a positive integer")
	ErrInvalidTradeType      = errors.New("trade type must be BUY or SELL")
	ErrQuoteUnavailable      = errors.New("quote unavailable")
	ErrInsufficientFunds     = errors.New("insufficient funds")
	ErrInsufficientHoldings  = errors.New("insufficient holdings")
	ErrIndicatorsUnavailable = errors.New("not enough price history to compute indicators")
)
