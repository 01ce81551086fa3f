package voucher

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"khazina/internal/models"
	"khazina/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memVoucherRepo struct {
	mu       sync.Mutex
	vouchers map[string]*models.GiftVoucher
}

func newMemVoucherRepo() *memVoucherRepo {
	return &memVoucherRepo{vouchers: map[string]*models.GiftVoucher{}}
}

func (r *memVoucherRepo) Create(ctx context.Context, v *models.GiftVoucher) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *v
	r.vouchers[v.VoucherCode] = &cp
	return nil
}

func (r *memVoucherRepo) GetByCode(ctx context.Context, code string) (*models.GiftVoucher, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	v, ok := r.vouchers[code]
	if !ok {
		return nil, repositories.ErrVoucherNotFound
	}
	cp := *v
	return &cp, nil
}

func (r *memVoucherRepo) ListBySender(ctx context.Context, senderID uint) ([]models.GiftVoucher, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.GiftVoucher
	for _, v := range r.vouchers {
		if v.SenderID == senderID {
			out = append(out, *v)
		}
	}
	return out, nil
}

func (r *memVoucherRepo) MarkRedeemed(ctx context.Context, code string, redeemerID uint, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	v, ok := r.vouchers[code]
	if !ok {
		return repositories.ErrVoucherNotFound
	}
	if v.Status == models.VoucherStatusRedeemed {
		return repositories.ErrVoucherRedeemed
	}
	if !at.Before(v.ExpiresAt) {
		return repositories.ErrVoucherExpired
	}
	v.Status = models.VoucherStatusRedeemed
	v.RedeemedBy = &redeemerID
	v.RedeemedAt = &at
	return nil
}

// stubWalletService records cash credits.
type stubWalletService struct {
	mu      sync.Mutex
	credits []float64
}

func (s *stubWalletService) GetWallet(ctx context.Context, userID uint, publicUserID string) (*models.Wallet, error) {
	return &models.Wallet{UserID: userID, PublicUserID: publicUserID}, nil
}

func (s *stubWalletService) BuyGold(ctx context.Context, userID uint, publicUserID string, grams float64) (*models.Transaction, error) {
	return nil, nil
}

func (s *stubWalletService) SellGold(ctx context.Context, userID uint, publicUserID string, grams float64) (*models.Transaction, error) {
	return nil, nil
}

func (s *stubWalletService) CreditCash(ctx context.Context, userID uint, publicUserID string, amountQAR float64, txType string) (*models.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.credits = append(s.credits, amountQAR)
	return &models.Transaction{
		UserID:       userID,
		PublicUserID: publicUserID,
		Type:         txType,
		PriceQAR:     amountQAR,
		Status:       models.TransactionStatusCompleted,
	}, nil
}

func (s *stubWalletService) GetTransactions(ctx context.Context, userID uint, limit int) ([]models.Transaction, error) {
	return nil, nil
}

func TestService_CreateValidation(t *testing.T) {
	svc := NewService(newMemVoucherRepo(), &stubWalletService{})
	ctx := context.Background()

	_, err := svc.Create(ctx, 1, "sender", CreateInput{AmountQAR: 49.99})
	assert.ErrorIs(t, err, ErrInvalidAmount)

	_, err = svc.Create(ctx, 1, "sender", CreateInput{AmountQAR: 10000.01})
	assert.ErrorIs(t, err, ErrInvalidAmount)

	_, err = svc.Create(ctx, 1, "sender", CreateInput{AmountQAR: 100, ValidityDays: 400})
	assert.ErrorIs(t, err, ErrInvalidValidity)

	v, err := svc.Create(ctx, 1, "sender", CreateInput{
		RecipientName: "Aisha",
		AmountQAR:     500,
		ValidityDays:  30,
	})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(v.VoucherCode, "ZK"))
	assert.Equal(t, models.VoucherStatusActive, v.Status)
	assert.WithinDuration(t, time.Now().UTC().AddDate(0, 0, 30), v.ExpiresAt, time.Minute)
}

func TestService_RedeemCreditsWallet(t *testing.T) {
	repo := newMemVoucherRepo()
	wallets := &stubWalletService{}
	svc := NewService(repo, wallets)
	ctx := context.Background()

	v, err := svc.Create(ctx, 1, "sender", CreateInput{AmountQAR: 250})
	require.NoError(t, err)

	redeemed, tx, err := svc.Redeem(ctx, v.VoucherCode, 2, "user_2")
	require.NoError(t, err)
	assert.Equal(t, models.VoucherStatusRedeemed, redeemed.Status)
	assert.Equal(t, models.TransactionTypeVoucherRedeem, tx.Type)
	assert.Equal(t, []float64{250}, wallets.credits)
}

func TestService_RedeemOnce(t *testing.T) {
	repo := newMemVoucherRepo()
	wallets := &stubWalletService{}
	svc := NewService(repo, wallets)
	ctx := context.Background()

	v, err := svc.Create(ctx, 1, "sender", CreateInput{AmountQAR: 250})
	require.NoError(t, err)

	_, _, err = svc.Redeem(ctx, v.VoucherCode, 2, "user_2")
	require.NoError(t, err)

	// A second redemption must not credit anything, whoever tries.
	_, _, err = svc.Redeem(ctx, v.VoucherCode, 3, "user_3")
	assert.ErrorIs(t, err, ErrAlreadyRedeemed)
	assert.Len(t, wallets.credits, 1)
}

func TestService_RedeemUnknownCode(t *testing.T) {
	svc := NewService(newMemVoucherRepo(), &stubWalletService{})

	_, _, err := svc.Redeem(context.Background(), "ZKDEADBEEF", 2, "user_2")
	assert.ErrorIs(t, err, ErrInvalidCode)
}

func TestService_RedeemExpired(t *testing.T) {
	repo := newMemVoucherRepo()
	wallets := &stubWalletService{}
	svc := NewService(repo, wallets)
	ctx := context.Background()

	v, err := svc.Create(ctx, 1, "sender", CreateInput{AmountQAR: 250, ValidityDays: 1})
	require.NoError(t, err)

	// Force the voucher into the past.
	repo.mu.Lock()
	repo.vouchers[v.VoucherCode].ExpiresAt = time.Now().UTC().Add(-time.Hour)
	repo.mu.Unlock()

	_, _, err = svc.Redeem(ctx, v.VoucherCode, 2, "user_2")
	assert.ErrorIs(t, err, ErrExpired)
	assert.Empty(t, wallets.credits)
}

func TestService_GetByCode(t *testing.T) {
	repo := newMemVoucherRepo()
	svc := NewService(repo, &stubWalletService{})
	ctx := context.Background()

	_, err := svc.GetByCode(ctx, "ZK00000000")
	assert.ErrorIs(t, err, ErrInvalidCode)

	v, err := svc.Create(ctx, 1, "sender", CreateInput{AmountQAR: 100})
	require.NoError(t, err)

	got, err := svc.GetByCode(ctx, v.VoucherCode)
	require.NoError(t, err)
	assert.Equal(t, v.VoucherID, got.VoucherID)
}
