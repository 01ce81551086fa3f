package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"khazina/internal/models"

	"gorm.io/gorm"
)

type walletRepository struct {
	db *gorm.DB
}

func NewWalletRepository(db *gorm.DB) WalletRepository {
	return &walletRepository{db: db}
}

func (r *walletRepository) Create(wallet *models.Wallet) error {
	if err := r.db.Create(wallet).Error; err != nil {
		return fmt.Errorf("failed to create wallet: %w", err)
	}
	return nil
}

func (r *walletRepository) GetByUserID(ctx context.Context, userID uint) (*models.Wallet, error) {
	var wallet models.Wallet
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&wallet).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrWalletNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get wallet: %w", err)
	}
	return &wallet, nil
}

func (r *walletRepository) SettlePurchase(ctx context.Context, userID uint, grams float64, tx *models.Transaction) error {
	return r.db.WithContext(ctx).Transaction(func(dbtx *gorm.DB) error {
		res := dbtx.Exec(
			"UPDATE wallets SET gold_grams_total = gold_grams_total + ?, updated_at = ? WHERE user_id = ?",
			grams, time.Now().UTC(), userID,
		)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrWalletNotFound
		}
		return dbtx.Create(tx).Error
	})
}

func (r *walletRepository) SettleSale(ctx context.Context, userID uint, grams, cashQAR float64, tx *models.Transaction) error {
	return r.db.WithContext(ctx).Transaction(func(dbtx *gorm.DB) error {
		// Conditional decrement: zero rows means the balance did not cover
		// the requested grams.
		res := dbtx.Exec(
			"UPDATE wallets SET gold_grams_total = gold_grams_total - ?, cash_qar = cash_qar + ?, updated_at = ? WHERE user_id = ? AND gold_grams_total >= ?",
			grams, cashQAR, time.Now().UTC(), userID, grams,
		)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrInsufficientGold
		}
		return dbtx.Create(tx).Error
	})
}

func (r *walletRepository) CreditCash(ctx context.Context, userID uint, amountQAR float64, tx *models.Transaction) error {
	return r.db.WithContext(ctx).Transaction(func(dbtx *gorm.DB) error {
		res := dbtx.Exec(
			"UPDATE wallets SET cash_qar = cash_qar + ?, updated_at = ? WHERE user_id = ?",
			amountQAR, time.Now().UTC(), userID,
		)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrWalletNotFound
		}
		return dbtx.Create(tx).Error
	})
}

func (r *walletRepository) GetTransactions(ctx context.Context, userID uint, limit int) ([]models.Transaction, error) {
	if limit <= 0 {
		limit = 50
	}
	var txs []models.Transaction
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&txs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	return txs, nil
}
