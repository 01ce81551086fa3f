package repositories

import (
	"context"
	"errors"

	"khazina/internal/models"
)

var (
	ErrWalletNotFound   = errors.New("wallet not found")
	ErrInsufficientGold = errors.New("insufficient gold balance")
)

// WalletRepository defines wallet and ledger persistence. Balance mutations
// are paired with their Transaction record inside one database transaction;
// SettleSale additionally guards the decrement with a conditional update so
// the gold balance can never go negative, even under concurrent sells.
type WalletRepository interface {
	Create(wallet *models.Wallet) error
	GetByUserID(ctx context.Context, userID uint) (*models.Wallet, error)

	// SettlePurchase appends the transaction and increments the gold balance
	// as one unit.
	SettlePurchase(ctx context.Context, userID uint, grams float64, tx *models.Transaction) error

	// SettleSale decrements gold and credits cash only when the stored
	// balance covers grams; returns ErrInsufficientGold otherwise, leaving
	// the wallet and ledger untouched.
	SettleSale(ctx context.Context, userID uint, grams, cashQAR float64, tx *models.Transaction) error

	// CreditCash increments the cash balance and appends the transaction as
	// one unit (voucher redemptions).
	CreditCash(ctx context.Context, userID uint, amountQAR float64, tx *models.Transaction) error

	GetTransactions(ctx context.Context, userID uint, limit int) ([]models.Transaction, error)
}
