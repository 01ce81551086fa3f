// Package alert manages user price alerts and evaluates them against newly
// derived prices. An alert fires at most once: triggering is a conditional
// triggered=false→true update, and triggered alerts are excluded from every
// later scan. Pending alerts never expire; an old alert stays eligible until
// it fires or its owner deletes it.
package alert

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"khazina/internal/models"
	"khazina/internal/repositories"
	"khazina/internal/services/notification"
	"khazina/internal/utils"
)

type Service interface {
	Create(ctx context.Context, userID uint, publicUserID string, karat int, targetPrice float64, alertType string) (*models.PriceAlert, error)
	List(ctx context.Context, userID uint) ([]models.PriceAlert, error)
	Delete(ctx context.Context, alertID string, userID uint) error

	// Evaluate scans all pending alerts against the karat→price map and
	// fires the matching ones, creating one notification per fired alert.
	// Invoked by the pricing pipeline only when prices actually moved.
	Evaluate(ctx context.Context, prices map[int]float64)
}

type service struct {
	repo     repositories.AlertRepository
	notifier notification.Service
}

func NewService(repo repositories.AlertRepository, notifier notification.Service) Service {
	if repo == nil {
		panic("alert repository is required")
	}
	if notifier == nil {
		panic("notification service is required")
	}
	return &service{repo: repo, notifier: notifier}
}

func (s *service) Create(ctx context.Context, userID uint, publicUserID string, karat int, targetPrice float64, alertType string) (*models.PriceAlert, error) {
	if !isSupportedKarat(karat) {
		return nil, ErrInvalidKarat
	}
	if alertType != models.AlertTypeAbove && alertType != models.AlertTypeBelow {
		return nil, ErrInvalidAlertType
	}
	if targetPrice <= 0 {
		return nil, ErrInvalidTarget
	}

	a := &models.PriceAlert{
		AlertID:      utils.NewID("alert", 12),
		UserID:       userID,
		PublicUserID: publicUserID,
		Karat:        karat,
		TargetPrice:  targetPrice,
		AlertType:    alertType,
	}
	if err := s.repo.Create(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *service) List(ctx context.Context, userID uint) ([]models.PriceAlert, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *service) Delete(ctx context.Context, alertID string, userID uint) error {
	err := s.repo.DeleteByAlertID(ctx, alertID, userID)
	if errors.Is(err, repositories.ErrAlertNotFound) {
		return ErrAlertNotFound
	}
	return err
}

func (s *service) Evaluate(ctx context.Context, prices map[int]float64) {
	pending, err := s.repo.ListPending(ctx)
	if err != nil {
		slog.Error("alert scan failed to load pending alerts", "error", err)
		return
	}

	fired := 0
	for _, a := range pending {
		current := prices[a.Karat] // zero when the karat is missing

		shouldTrigger := false
		switch a.AlertType {
		case models.AlertTypeAbove:
			shouldTrigger = current >= a.TargetPrice
		case models.AlertTypeBelow:
			shouldTrigger = current <= a.TargetPrice
		}
		if !shouldTrigger {
			continue
		}

		marked, err := s.repo.MarkTriggered(ctx, a.ID, time.Now().UTC())
		if err != nil {
			slog.Error("failed to mark alert triggered", "alert_id", a.AlertID, "error", err)
			continue
		}
		if !marked {
			// Lost the race to a concurrent evaluation; it owns the
			// notification.
			continue
		}

		title := "Gold price alert"
		message := fmt.Sprintf("%dK gold reached %.2f QAR/gram (target: %s %.2f)",
			a.Karat, current, a.AlertType, a.TargetPrice)
		if _, err := s.notifier.Notify(ctx, a.UserID, a.PublicUserID, models.NotificationTypePriceAlert, title, message); err != nil {
			slog.Error("failed to create alert notification", "alert_id", a.AlertID, "error", err)
			continue
		}

		fired++
		slog.Info("price alert triggered", "alert_id", a.AlertID, "karat", a.Karat, "price", current)
	}

	if fired > 0 {
		slog.Info("alert scan complete", "evaluated", len(pending), "fired", fired)
	}
}

func isSupportedKarat(karat int) bool {
	for _, k := range models.SupportedKarats {
		if k == karat {
			return true
		}
	}
	return false
}
