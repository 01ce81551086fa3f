// Package voucher implements prepaid gift vouchers: creation with an amount
// window, lookup by code, and single-shot redemption that credits the
// redeemer's wallet.
package voucher

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"khazina/internal/models"
	"khazina/internal/repositories"
	"khazina/internal/services/wallet"
	"khazina/internal/utils"
)

const (
	MinAmountQAR = 50.0
	MaxAmountQAR = 10000.0

	defaultValidityDays = 90
	maxValidityDays     = 365
)

var (
	ErrInvalidAmount   = errors.New("voucher amount must be between 50 and 10000 QAR")
	ErrInvalidValidity = errors.New("validity must be between 1 and 365 days")
	ErrInvalidCode     = errors.New("invalid voucher code")
	ErrAlreadyRedeemed = errors.New("voucher already redeemed")
	ErrExpired         = errors.New("voucher expired")
)

type CreateInput struct {
	RecipientName  string
	WhatsappNumber string
	AmountQAR      float64
	Message        string
	ValidityDays   int
}

type Service interface {
	Create(ctx context.Context, senderID uint, senderName string, input CreateInput) (*models.GiftVoucher, error)
	ListSent(ctx context.Context, senderID uint) ([]models.GiftVoucher, error)
	GetByCode(ctx context.Context, code string) (*models.GiftVoucher, error)
	// Redeem flips the voucher to redeemed and credits the redeemer's
	// wallet. A code credits at most one wallet.
	Redeem(ctx context.Context, code string, redeemerID uint, redeemerPublicID string) (*models.GiftVoucher, *models.Transaction, error)
}

type service struct {
	repo    repositories.VoucherRepository
	wallets wallet.Service
}

func NewService(repo repositories.VoucherRepository, wallets wallet.Service) Service {
	if repo == nil {
		panic("voucher repository is required")
	}
	if wallets == nil {
		panic("wallet service is required")
	}
	return &service{repo: repo, wallets: wallets}
}

func (s *service) Create(ctx context.Context, senderID uint, senderName string, input CreateInput) (*models.GiftVoucher, error) {
	if input.AmountQAR < MinAmountQAR || input.AmountQAR > MaxAmountQAR {
		return nil, ErrInvalidAmount
	}
	days := input.ValidityDays
	if days == 0 {
		days = defaultValidityDays
	}
	if days < 1 || days > maxValidityDays {
		return nil, ErrInvalidValidity
	}

	v := &models.GiftVoucher{
		VoucherID:      utils.NewID("gift", 12),
		VoucherCode:    utils.NewVoucherCode(),
		SenderID:       senderID,
		SenderName:     senderName,
		RecipientName:  input.RecipientName,
		WhatsappNumber: input.WhatsappNumber,
		AmountQAR:      input.AmountQAR,
		Message:        input.Message,
		Status:         models.VoucherStatusActive,
		ExpiresAt:      time.Now().UTC().AddDate(0, 0, days),
	}
	if err := s.repo.Create(ctx, v); err != nil {
		return nil, err
	}

	slog.Info("gift voucher created", "voucher_id", v.VoucherID, "amount_qar", v.AmountQAR)
	return v, nil
}

func (s *service) ListSent(ctx context.Context, senderID uint) ([]models.GiftVoucher, error) {
	return s.repo.ListBySender(ctx, senderID)
}

func (s *service) GetByCode(ctx context.Context, code string) (*models.GiftVoucher, error) {
	v, err := s.repo.GetByCode(ctx, code)
	if errors.Is(err, repositories.ErrVoucherNotFound) {
		return nil, ErrInvalidCode
	}
	return v, err
}

func (s *service) Redeem(ctx context.Context, code string, redeemerID uint, redeemerPublicID string) (*models.GiftVoucher, *models.Transaction, error) {
	now := time.Now().UTC()
	err := s.repo.MarkRedeemed(ctx, code, redeemerID, now)
	switch {
	case errors.Is(err, repositories.ErrVoucherNotFound):
		return nil, nil, ErrInvalidCode
	case errors.Is(err, repositories.ErrVoucherRedeemed):
		return nil, nil, ErrAlreadyRedeemed
	case errors.Is(err, repositories.ErrVoucherExpired):
		return nil, nil, ErrExpired
	case err != nil:
		return nil, nil, err
	}

	v, err := s.repo.GetByCode(ctx, code)
	if err != nil {
		return nil, nil, err
	}

	tx, err := s.wallets.CreditCash(ctx, redeemerID, redeemerPublicID, v.AmountQAR, models.TransactionTypeVoucherRedeem)
	if err != nil {
		// The voucher is marked redeemed but the credit failed; surface the
		// error so the failure is visible rather than silently swallowed.
		slog.Error("voucher redeemed but wallet credit failed", "voucher_id", v.VoucherID, "error", err)
		return nil, nil, err
	}

	slog.Info("gift voucher redeemed", "voucher_id", v.VoucherID, "user_id", redeemerPublicID, "amount_qar", v.AmountQAR)
	return v, tx, nil
}
