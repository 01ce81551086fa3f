package sharia

import (
	"context"
	"sync"
	"testing"

	"khazina/internal/models"
	"khazina/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memShariaRepo struct {
	mu          sync.Mutex
	acceptances map[uint]*models.ShariaAcceptance
}

func newMemShariaRepo() *memShariaRepo {
	return &memShariaRepo{acceptances: map[uint]*models.ShariaAcceptance{}}
}

func (r *memShariaRepo) GetByUserID(ctx context.Context, userID uint) (*models.ShariaAcceptance, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.acceptances[userID]
	if !ok {
		return nil, repositories.ErrAcceptanceNotFound
	}
	cp := *a
	return &cp, nil
}

func (r *memShariaRepo) Upsert(ctx context.Context, acceptance *models.ShariaAcceptance) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *acceptance
	r.acceptances[acceptance.UserID] = &cp
	return nil
}

func TestService_StatusDefaultsToNotAccepted(t *testing.T) {
	svc := NewService(newMemShariaRepo())

	accepted, err := svc.Status(context.Background(), 1)
	require.NoError(t, err)
	assert.False(t, accepted)
}

func TestService_AcceptAndWithdraw(t *testing.T) {
	repo := newMemShariaRepo()
	svc := NewService(repo)
	ctx := context.Background()

	require.NoError(t, svc.SetAcceptance(ctx, 1, true))
	accepted, err := svc.Status(ctx, 1)
	require.NoError(t, err)
	assert.True(t, accepted)
	assert.False(t, repo.acceptances[1].AcceptedAt.IsZero())

	// Re-submitting overwrites instead of stacking rows.
	require.NoError(t, svc.SetAcceptance(ctx, 1, false))
	accepted, err = svc.Status(ctx, 1)
	require.NoError(t, err)
	assert.False(t, accepted)
	assert.Len(t, repo.acceptances, 1)
}

func TestService_StatusIsPerUser(t *testing.T) {
	svc := NewService(newMemShariaRepo())
	ctx := context.Background()

	require.NoError(t, svc.SetAcceptance(ctx, 1, true))

	accepted, err := svc.Status(ctx, 2)
	require.NoError(t, err)
	assert.False(t, accepted)
}
