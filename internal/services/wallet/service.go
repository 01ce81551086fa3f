// Package wallet implements the gold wallet ledger: one wallet per user,
// immutable buy/sell transaction history, balances mutated only through
// this service. Sells ride on a storage-level conditional decrement so the
// gold balance can never go negative, including under concurrent requests.
package wallet

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"khazina/internal/models"
	"khazina/internal/repositories"
	"khazina/internal/repositories/cache"
	"khazina/internal/services/goldprice"
	"khazina/internal/utils"
)

// Service is the wallet ledger interface.
type Service interface {
	// GetWallet returns the user's wallet, creating a zero-balance wallet
	// on first access.
	GetWallet(ctx context.Context, userID uint, publicUserID string) (*models.Wallet, error)
	// BuyGold prices grams at the current 24K rate and settles the purchase.
	BuyGold(ctx context.Context, userID uint, publicUserID string, grams float64) (*models.Transaction, error)
	// SellGold converts grams back to cash at the current 24K rate.
	SellGold(ctx context.Context, userID uint, publicUserID string, grams float64) (*models.Transaction, error)
	// CreditCash adds cash to the wallet with a ledger record (voucher
	// redemptions).
	CreditCash(ctx context.Context, userID uint, publicUserID string, amountQAR float64, txType string) (*models.Transaction, error)
	GetTransactions(ctx context.Context, userID uint, limit int) ([]models.Transaction, error)
}

type service struct {
	repo    repositories.WalletRepository
	pricing goldprice.Service
	cache   *cache.CacheService
	metrics MetricsCollector
}

// NewService creates the wallet ledger service. cacheSvc may be nil.
func NewService(
	repo repositories.WalletRepository,
	pricing goldprice.Service,
	cacheSvc *cache.CacheService,
	metrics MetricsCollector,
) Service {
	if repo == nil {
		panic("wallet repository is required")
	}
	if pricing == nil {
		panic("pricing service is required")
	}
	if metrics == nil {
		metrics = NoopMetricsCollector{}
	}
	return &service{
		repo:    repo,
		pricing: pricing,
		cache:   cacheSvc,
		metrics: metrics,
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func (s *service) GetWallet(ctx context.Context, userID uint, publicUserID string) (*models.Wallet, error) {
	if s.cache != nil {
		var cached models.Wallet
		if err := s.cache.Get(ctx, cache.WalletKey(userID), &cached); err == nil {
			return &cached, nil
		}
	}

	wallet, err := s.repo.GetByUserID(ctx, userID)
	if errors.Is(err, repositories.ErrWalletNotFound) {
		wallet = &models.Wallet{UserID: userID, PublicUserID: publicUserID}
		if err := s.repo.Create(wallet); err != nil {
			return nil, err
		}
	} else if err != nil {
		return nil, err
	}

	s.cacheWallet(ctx, wallet)
	return wallet, nil
}

func (s *service) BuyGold(ctx context.Context, userID uint, publicUserID string, grams float64) (*models.Transaction, error) {
	if grams <= 0 {
		s.metrics.RecordError("buy", "invalid_amount")
		return nil, ErrInvalidAmount
	}

	price, err := s.pricing.GetPriceByKarat(ctx, 24)
	if err != nil {
		s.metrics.RecordError("buy", "pricing_unavailable")
		return nil, err
	}

	// Ensure the wallet row exists before the atomic increment.
	if _, err := s.GetWallet(ctx, userID, publicUserID); err != nil {
		return nil, err
	}

	// Full precision multiply, round once at the end.
	totalCost := round2(grams * price.PricePerGramQAR)

	tx := &models.Transaction{
		TransactionID: utils.NewID("tx", 12),
		UserID:        userID,
		PublicUserID:  publicUserID,
		Type:          models.TransactionTypeBuy,
		Grams:         grams,
		PriceQAR:      totalCost,
		Status:        models.TransactionStatusCompleted,
	}

	if err := s.repo.SettlePurchase(ctx, userID, grams, tx); err != nil {
		s.metrics.RecordError("buy", "settle")
		return nil, fmt.Errorf("%w: %v", ErrTransactionFailed, err)
	}

	s.invalidateWallet(ctx, userID)
	s.metrics.RecordTransaction(models.TransactionTypeBuy, grams, totalCost)
	slog.Info("gold purchased", "user_id", publicUserID, "grams", grams, "total_qar", totalCost)
	return tx, nil
}

func (s *service) SellGold(ctx context.Context, userID uint, publicUserID string, grams float64) (*models.Transaction, error) {
	if grams <= 0 {
		s.metrics.RecordError("sell", "invalid_amount")
		return nil, ErrInvalidAmount
	}

	price, err := s.pricing.GetPriceByKarat(ctx, 24)
	if err != nil {
		s.metrics.RecordError("sell", "pricing_unavailable")
		return nil, err
	}

	if _, err := s.GetWallet(ctx, userID, publicUserID); err != nil {
		return nil, err
	}

	totalValue := round2(grams * price.PricePerGramQAR)

	tx := &models.Transaction{
		TransactionID: utils.NewID("tx", 12),
		UserID:        userID,
		PublicUserID:  publicUserID,
		Type:          models.TransactionTypeSell,
		Grams:         grams,
		PriceQAR:      totalValue,
		Status:        models.TransactionStatusCompleted,
	}

	err = s.repo.SettleSale(ctx, userID, grams, totalValue, tx)
	if errors.Is(err, repositories.ErrInsufficientGold) {
		s.metrics.RecordError("sell", "insufficient_balance")
		return nil, ErrInsufficientBalance
	}
	if err != nil {
		s.metrics.RecordError("sell", "settle")
		return nil, fmt.Errorf("%w: %v", ErrTransactionFailed, err)
	}

	s.invalidateWallet(ctx, userID)
	s.metrics.RecordTransaction(models.TransactionTypeSell, grams, totalValue)
	slog.Info("gold sold", "user_id", publicUserID, "grams", grams, "total_qar", totalValue)
	return tx, nil
}

func (s *service) CreditCash(ctx context.Context, userID uint, publicUserID string, amountQAR float64, txType string) (*models.Transaction, error) {
	if amountQAR <= 0 {
		return nil, ErrInvalidAmount
	}

	if _, err := s.GetWallet(ctx, userID, publicUserID); err != nil {
		return nil, err
	}

	tx := &models.Transaction{
		TransactionID: utils.NewID("tx", 12),
		UserID:        userID,
		PublicUserID:  publicUserID,
		Type:          txType,
		PriceQAR:      round2(amountQAR),
		Status:        models.TransactionStatusCompleted,
	}

	if err := s.repo.CreditCash(ctx, userID, tx.PriceQAR, tx); err != nil {
		s.metrics.RecordError("credit_cash", "settle")
		return nil, fmt.Errorf("%w: %v", ErrTransactionFailed, err)
	}

	s.invalidateWallet(ctx, userID)
	s.metrics.RecordTransaction(txType, 0, tx.PriceQAR)
	return tx, nil
}

func (s *service) GetTransactions(ctx context.Context, userID uint, limit int) ([]models.Transaction, error) {
	return s.repo.GetTransactions(ctx, userID, limit)
}

func (s *service) cacheWallet(ctx context.Context, wallet *models.Wallet) {
	if s.cache == nil {
		return
	}
	if err := s.cache.SetWithTTL(ctx, cache.WalletKey(wallet.UserID), wallet, 5*time.Minute); err != nil {
		slog.Warn("failed to cache wallet", "error", err)
	}
}

func (s *service) invalidateWallet(ctx context.Context, userID uint) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, cache.WalletKey(userID)); err != nil {
		slog.Warn("failed to invalidate wallet cache", "error", err)
	}
}
