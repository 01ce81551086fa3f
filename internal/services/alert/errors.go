package alert

import "errors"

var (
	ErrAlertNotFound    = errors.New("price alert not found")
	ErrInvalidKarat     = errors.New("unsupported karat")
	ErrInvalidAlertType = errors.New("alert type must be above or below")
	ErrInvalidTarget    = errors.New("target price must be positive")
)
