package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"khazina/internal/models"

	"gorm.io/gorm"
)

var ErrAlertNotFound = errors.New("price alert not found")

// AlertRepository persists price alerts. Triggering is a conditional
// update on triggered = false, which makes firing exactly-once even when
// two evaluations race on the same alert.
type AlertRepository interface {
	Create(ctx context.Context, alert *models.PriceAlert) error
	ListByUser(ctx context.Context, userID uint) ([]models.PriceAlert, error)
	ListPending(ctx context.Context) ([]models.PriceAlert, error)
	// MarkTriggered flips triggered to true; returns false when the alert
	// was already triggered (or gone).
	MarkTriggered(ctx context.Context, id uint, at time.Time) (bool, error)
	DeleteByAlertID(ctx context.Context, alertID string, userID uint) error
}

type alertRepository struct {
	db *gorm.DB
}

func NewAlertRepository(db *gorm.DB) AlertRepository {
	return &alertRepository{db: db}
}

func (r *alertRepository) Create(ctx context.Context, alert *models.PriceAlert) error {
	if err := r.db.WithContext(ctx).Create(alert).Error; err != nil {
		return fmt.Errorf("failed to create price alert: %w", err)
	}
	return nil
}

func (r *alertRepository) ListByUser(ctx context.Context, userID uint) ([]models.PriceAlert, error) {
	var alerts []models.PriceAlert
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&alerts).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list price alerts: %w", err)
	}
	return alerts, nil
}

func (r *alertRepository) ListPending(ctx context.Context) ([]models.PriceAlert, error) {
	var alerts []models.PriceAlert
	err := r.db.WithContext(ctx).Where("triggered = ?", false).Find(&alerts).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list pending alerts: %w", err)
	}
	return alerts, nil
}

func (r *alertRepository) MarkTriggered(ctx context.Context, id uint, at time.Time) (bool, error) {
	res := r.db.WithContext(ctx).Model(&models.PriceAlert{}).
		Where("id = ? AND triggered = ?", id, false).
		Updates(map[string]interface{}{"triggered": true, "triggered_at": at})
	if res.Error != nil {
		return false, fmt.Errorf("failed to mark alert triggered: %w", res.Error)
	}
	return res.RowsAffected > 0, nil
}

func (r *alertRepository) DeleteByAlertID(ctx context.Context, alertID string, userID uint) error {
	res := r.db.WithContext(ctx).
		Where("alert_id = ? AND user_id = ?", alertID, userID).
		Delete(&models.PriceAlert{})
	if res.Error != nil {
		return fmt.Errorf("failed to delete price alert: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrAlertNotFound
	}
	return nil
}
