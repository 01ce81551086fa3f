package goldprice

import "errors"

var (
	// ErrPricingUnavailable means no stored price exists yet; buy/sell
	// cannot proceed until a refresh succeeds.
	ErrPricingUnavailable = errors.New("gold pricing unavailable")
)
