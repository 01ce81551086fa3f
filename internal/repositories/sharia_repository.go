package repositories

import (
	"context"
	"errors"
	"fmt"

	"khazina/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrAcceptanceNotFound = errors.New("sharia acceptance not found")

type ShariaRepository interface {
	GetByUserID(ctx context.Context, userID uint) (*models.ShariaAcceptance, error)
	// Upsert keeps one row per user, overwriting the previous answer.
	Upsert(ctx context.Context, acceptance *models.ShariaAcceptance) error
}

type shariaRepository struct {
	db *gorm.DB
}

func NewShariaRepository(db *gorm.DB) ShariaRepository {
	return &shariaRepository{db: db}
}

func (r *shariaRepository) GetByUserID(ctx context.Context, userID uint) (*models.ShariaAcceptance, error) {
	var acceptance models.ShariaAcceptance
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&acceptance).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrAcceptanceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get sharia acceptance: %w", err)
	}
	return &acceptance, nil
}

func (r *shariaRepository) Upsert(ctx context.Context, acceptance *models.ShariaAcceptance) error {
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"accepted", "accepted_at"}),
	}).Create(acceptance).Error
	if err != nil {
		return fmt.Errorf("failed to save sharia acceptance: %w", err)
	}
	return nil
}
