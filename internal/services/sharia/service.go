// Package sharia tracks per-user acceptance of the sharia-compliance terms.
package sharia

import (
	"context"
	"errors"
	"time"

	"khazina/internal/models"
	"khazina/internal/repositories"
)

type Service interface {
	// Status reports whether the user has accepted; users with no record
	// have not accepted.
	Status(ctx context.Context, userID uint) (bool, error)
	SetAcceptance(ctx context.Context, userID uint, accepted bool) error
}

type service struct {
	acceptances repositories.ShariaRepository
}

func NewService(acceptances repositories.ShariaRepository) Service {
	if acceptances == nil {
		panic("sharia repository is required")
	}
	return &service{acceptances: acceptances}
}

func (s *service) Status(ctx context.Context, userID uint) (bool, error) {
	acceptance, err := s.acceptances.GetByUserID(ctx, userID)
	if errors.Is(err, repositories.ErrAcceptanceNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return acceptance.Accepted, nil
}

func (s *service) SetAcceptance(ctx context.Context, userID uint, accepted bool) error {
	return s.acceptances.Upsert(ctx, &models.ShariaAcceptance{
		UserID:     userID,
		Accepted:   accepted,
		AcceptedAt: time.Now().UTC(),
	})
}
