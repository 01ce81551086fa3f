// Package notification persists user notifications and serves the unread
// feed. For the pricing core, notifications are created exclusively as a
// side effect of alert triggering.
package notification

import (
	"context"

	"khazina/internal/models"
	"khazina/internal/repositories"
	"khazina/internal/utils"
)

type Service interface {
	Notify(ctx context.Context, userID uint, publicUserID, notifType, title, message string) (*models.Notification, error)
	List(ctx context.Context, userID uint) ([]models.Notification, int64, error)
	MarkRead(ctx context.Context, notificationID string, userID uint) error
	MarkAllRead(ctx context.Context, userID uint) error
}

type service struct {
	repo repositories.NotificationRepository
}

func NewService(repo repositories.NotificationRepository) Service {
	if repo == nil {
		panic("notification repository is required")
	}
	return &service{repo: repo}
}

func (s *service) Notify(ctx context.Context, userID uint, publicUserID, notifType, title, message string) (*models.Notification, error) {
	n := &models.Notification{
		NotificationID: utils.NewID("notif", 12),
		UserID:         userID,
		PublicUserID:   publicUserID,
		Type:           notifType,
		Title:          title,
		Message:        message,
	}
	if err := s.repo.Create(ctx, n); err != nil {
		return nil, err
	}
	return n, nil
}

func (s *service) List(ctx context.Context, userID uint) ([]models.Notification, int64, error) {
	notifications, err := s.repo.ListByUser(ctx, userID, 50)
	if err != nil {
		return nil, 0, err
	}
	unread, err := s.repo.CountUnread(ctx, userID)
	if err != nil {
		return nil, 0, err
	}
	return notifications, unread, nil
}

func (s *service) MarkRead(ctx context.Context, notificationID string, userID uint) error {
	return s.repo.MarkRead(ctx, notificationID, userID)
}

func (s *service) MarkAllRead(ctx context.Context, userID uint) error {
	return s.repo.MarkAllRead(ctx, userID)
}
