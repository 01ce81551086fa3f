package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"khazina/internal/models"

	"gorm.io/gorm"
)

var (
	ErrVoucherNotFound = errors.New("voucher not found")
	ErrVoucherRedeemed = errors.New("voucher already redeemed")
	ErrVoucherExpired  = errors.New("voucher expired")
)

type VoucherRepository interface {
	Create(ctx context.Context, voucher *models.GiftVoucher) error
	GetByCode(ctx context.Context, code string) (*models.GiftVoucher, error)
	ListBySender(ctx context.Context, senderID uint) ([]models.GiftVoucher, error)
	// MarkRedeemed flips status active→redeemed for an unexpired voucher.
	// The conditional update guarantees a code credits at most one wallet.
	MarkRedeemed(ctx context.Context, code string, redeemerID uint, at time.Time) error
}

type voucherRepository struct {
	db *gorm.DB
}

func NewVoucherRepository(db *gorm.DB) VoucherRepository {
	return &voucherRepository{db: db}
}

func (r *voucherRepository) Create(ctx context.Context, voucher *models.GiftVoucher) error {
	if err := r.db.WithContext(ctx).Create(voucher).Error; err != nil {
		return fmt.Errorf("failed to create voucher: %w", err)
	}
	return nil
}

func (r *voucherRepository) GetByCode(ctx context.Context, code string) (*models.GiftVoucher, error) {
	var voucher models.GiftVoucher
	err := r.db.WithContext(ctx).Where("voucher_code = ?", code).First(&voucher).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrVoucherNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get voucher: %w", err)
	}
	return &voucher, nil
}

func (r *voucherRepository) ListBySender(ctx context.Context, senderID uint) ([]models.GiftVoucher, error) {
	var vouchers []models.GiftVoucher
	err := r.db.WithContext(ctx).
		Where("sender_id = ?", senderID).
		Order("created_at DESC").
		Find(&vouchers).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list vouchers: %w", err)
	}
	return vouchers, nil
}

func (r *voucherRepository) MarkRedeemed(ctx context.Context, code string, redeemerID uint, at time.Time) error {
	res := r.db.WithContext(ctx).Model(&models.GiftVoucher{}).
		Where("voucher_code = ? AND status = ? AND expires_at > ?", code, models.VoucherStatusActive, at).
		Updates(map[string]interface{}{
			"status":      models.VoucherStatusRedeemed,
			"redeemed_by": redeemerID,
			"redeemed_at": at,
		})
	if res.Error != nil {
		return fmt.Errorf("failed to redeem voucher: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		// Distinguish the failure for the caller.
		voucher, err := r.GetByCode(ctx, code)
		if err != nil {
			return err
		}
		if voucher.Status == models.VoucherStatusRedeemed {
			return ErrVoucherRedeemed
		}
		return ErrVoucherExpired
	}
	return nil
}
