// Package payment wraps card charging for checkout. Cards arrive as Stripe
// tokens (tok_*) from the client SDK; raw card numbers are never handled
// here.
package payment

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strings"

	"khazina/internal/config"

	"github.com/stripe/stripe-go/v72"
	"github.com/stripe/stripe-go/v72/charge"
)

var (
	ErrInvalidToken  = errors.New("invalid card token")
	ErrChargeFailed  = errors.New("card charge failed")
	ErrInvalidAmount = errors.New("charge amount must be positive")
)

type Service interface {
	// ChargeCard charges amountQAR against a Stripe card token and returns
	// the charge reference.
	ChargeCard(token string, amountQAR float64, description string) (string, error)
}

type service struct{}

func NewService() Service {
	stripe.Key = config.GetEnv("STRIPE_SECRET_KEY", "")
	return &service{}
}

func (s *service) ChargeCard(token string, amountQAR float64, description string) (string, error) {
	if amountQAR <= 0 {
		return "", ErrInvalidAmount
	}
	if !strings.HasPrefix(token, "tok_") {
		return "", ErrInvalidToken
	}

	// Stripe amounts are in dirhams (minor units).
	amount := int64(math.Round(amountQAR * 100))

	params := &stripe.ChargeParams{
		Amount:      stripe.Int64(amount),
		Currency:    stripe.String(string(stripe.CurrencyQAR)),
		Description: stripe.String(description),
	}
	if err := params.SetSource(token); err != nil {
		return "", ErrInvalidToken
	}

	ch, err := charge.New(params)
	if err != nil {
		slog.Error("card charge failed", "amount_qar", amountQAR, "error", err)
		return "", fmt.Errorf("%w: %v", ErrChargeFailed, err)
	}

	slog.Info("card charged", "charge_id", ch.ID, "amount_qar", amountQAR)
	return ch.ID, nil
}
