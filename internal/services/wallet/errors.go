package wallet

import "errors"

// Service errors
var (
	ErrInvalidAmount       = errors.New("invalid amount")
	ErrInsufficientBalance = errors.New("insufficient gold balance")
	ErrTransactionFailed   = errors.New("transaction failed")
)
