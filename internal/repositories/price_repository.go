package repositories

import (
	"context"
	"errors"
	"fmt"
	"math"

	"khazina/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrPriceNotFound = errors.New("gold price not found")

// priceChangeEpsilon is the smallest per-gram move considered a real price
// change. Upserts below this threshold do not wake the alert evaluator.
const priceChangeEpsilon = 0.01

// PriceRepository persists the current per-karat gold prices. The table
// holds exactly one row per karat; refreshes overwrite in place.
type PriceRepository interface {
	// Upsert replaces the stored prices and reports whether any karat moved
	// by more than the epsilon against its previously stored value.
	Upsert(ctx context.Context, prices []models.GoldPrice) (changed bool, err error)
	GetCurrent(ctx context.Context) ([]models.GoldPrice, error)
	GetByKarat(ctx context.Context, karat int) (*models.GoldPrice, error)
}

type priceRepository struct {
	db *gorm.DB
}

func NewPriceRepository(db *gorm.DB) PriceRepository {
	return &priceRepository{db: db}
}

func (r *priceRepository) Upsert(ctx context.Context, prices []models.GoldPrice) (bool, error) {
	if len(prices) == 0 {
		return false, nil
	}

	previous, err := r.GetCurrent(ctx)
	if err != nil {
		return false, err
	}
	prevByKarat := make(map[int]float64, len(previous))
	for _, p := range previous {
		prevByKarat[p.Karat] = p.PricePerGramQAR
	}

	changed := false
	for _, p := range prices {
		old, ok := prevByKarat[p.Karat]
		if !ok || math.Abs(p.PricePerGramQAR-old) > priceChangeEpsilon {
			changed = true
			break
		}
	}

	err = r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "karat"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"price_per_gram_qar", "change_amount", "change_percent",
			"source_usd_per_oz", "updated_at",
		}),
	}).Create(&prices).Error
	if err != nil {
		return false, fmt.Errorf("failed to upsert gold prices: %w", err)
	}
	return changed, nil
}

func (r *priceRepository) GetCurrent(ctx context.Context) ([]models.GoldPrice, error) {
	var prices []models.GoldPrice
	if err := r.db.WithContext(ctx).Order("karat DESC").Find(&prices).Error; err != nil {
		return nil, fmt.Errorf("failed to load gold prices: %w", err)
	}
	return prices, nil
}

func (r *priceRepository) GetByKarat(ctx context.Context, karat int) (*models.GoldPrice, error) {
	var price models.GoldPrice
	err := r.db.WithContext(ctx).Where("karat = ?", karat).First(&price).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrPriceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get gold price: %w", err)
	}
	return &price, nil
}
