package auth

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"khazina/internal/models"
	"khazina/internal/repositories"
	"khazina/internal/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memUserRepo struct {
	mu     sync.Mutex
	nextID uint
	users  map[uint]*models.User
	resets map[string]*models.PasswordReset
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{
		users:  map[uint]*models.User{},
		resets: map[string]*models.PasswordReset{},
	}
}

func (r *memUserRepo) Create(ctx context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == user.Email {
			return repositories.ErrDuplicateEmail
		}
	}
	r.nextID++
	user.ID = r.nextID
	if user.TokenVersion == 0 {
		user.TokenVersion = 1
	}
	cp := *user
	r.users[user.ID] = &cp
	return nil
}

func (r *memUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

func (r *memUserRepo) GetByID(ctx context.Context, id uint) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, repositories.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *memUserRepo) Update(ctx context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *user
	r.users[user.ID] = &cp
	return nil
}

func (r *memUserRepo) IncrementTokenVersion(ctx context.Context, id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return repositories.ErrUserNotFound
	}
	u.TokenVersion++
	return nil
}

func (r *memUserRepo) CountByRole(ctx context.Context, role string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var count int64
	for _, u := range r.users {
		if u.Role == role {
			count++
		}
	}
	return count, nil
}

func (r *memUserRepo) CreatePasswordReset(ctx context.Context, reset *models.PasswordReset) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *reset
	r.resets[reset.Token] = &cp
	return nil
}

func (r *memUserRepo) GetPasswordReset(ctx context.Context, token string) (*models.PasswordReset, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	reset, ok := r.resets[token]
	if !ok || time.Now().UTC().After(reset.ExpiresAt) {
		return nil, repositories.ErrResetNotFound
	}
	cp := *reset
	return &cp, nil
}

func (r *memUserRepo) DeletePasswordReset(ctx context.Context, token string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.resets, token)
	return nil
}

type memWalletRepo struct {
	mu      sync.Mutex
	wallets []*models.Wallet
}

func (r *memWalletRepo) Create(w *models.Wallet) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *w
	r.wallets = append(r.wallets, &cp)
	return nil
}

func (r *memWalletRepo) GetByUserID(ctx context.Context, userID uint) (*models.Wallet, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, w := range r.wallets {
		if w.UserID == userID {
			cp := *w
			return &cp, nil
		}
	}
	return nil, repositories.ErrWalletNotFound
}

func (r *memWalletRepo) SettlePurchase(ctx context.Context, userID uint, grams float64, tx *models.Transaction) error {
	return nil
}

func (r *memWalletRepo) SettleSale(ctx context.Context, userID uint, grams, cashQAR float64, tx *models.Transaction) error {
	return nil
}

func (r *memWalletRepo) CreditCash(ctx context.Context, userID uint, amountQAR float64, tx *models.Transaction) error {
	return nil
}

func (r *memWalletRepo) GetTransactions(ctx context.Context, userID uint, limit int) ([]models.Transaction, error) {
	return nil, nil
}

func newTestService() (Service, *memUserRepo, *memWalletRepo) {
	users := newMemUserRepo()
	wallets := &memWalletRepo{}
	return NewService(users, wallets), users, wallets
}

func TestService_RegisterCreatesUserAndWallet(t *testing.T) {
	svc, _, wallets := newTestService()
	ctx := context.Background()

	user, token, err := svc.Register(ctx, "Fatima", "Fatima@Example.com", "supersecret")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(user.UserID, "user_"))
	assert.Equal(t, "fatima@example.com", user.Email, "emails are normalized")
	assert.Equal(t, "user", user.Role)
	assert.NotEqual(t, "supersecret", user.Password, "password must be hashed")
	assert.NotEmpty(t, token)

	claims, err := utils.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, user.UserID, claims.PublicID)

	// A zero-balance wallet comes with registration.
	w, err := wallets.GetByUserID(ctx, user.ID)
	require.NoError(t, err)
	assert.Zero(t, w.GoldGramsTotal)
	assert.Zero(t, w.CashQAR)
}

func TestService_RegisterValidation(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	_, _, err := svc.Register(ctx, "A", "a@example.com", "short")
	assert.ErrorIs(t, err, ErrWeakPassword)

	_, _, err = svc.Register(ctx, "A", "a@example.com", "longenough")
	require.NoError(t, err)

	_, _, err = svc.Register(ctx, "B", "A@Example.com", "longenough")
	assert.ErrorIs(t, err, ErrEmailTaken, "email uniqueness is case insensitive")
}

func TestService_Login(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	_, _, err := svc.Register(ctx, "A", "a@example.com", "correcthorse")
	require.NoError(t, err)

	_, token, err := svc.Login(ctx, "a@example.com", "correcthorse")
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	_, _, err = svc.Login(ctx, "a@example.com", "wrongpassword")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = svc.Login(ctx, "nobody@example.com", "whatever")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestService_LogoutInvalidatesTokens(t *testing.T) {
	svc, users, _ := newTestService()
	ctx := context.Background()

	user, token, err := svc.Register(ctx, "A", "a@example.com", "correcthorse")
	require.NoError(t, err)

	claims, err := utils.ParseToken(token)
	require.NoError(t, err)

	version, err := svc.GetUserTokenVersion(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, claims.TokenVersion, version)

	require.NoError(t, svc.Logout(ctx, user.ID))

	bumped, err := users.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, claims.TokenVersion+1, bumped.TokenVersion)
}

func TestService_PasswordResetFlow(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	_, _, err := svc.Register(ctx, "A", "a@example.com", "oldpassword")
	require.NoError(t, err)

	// Unknown addresses get the same silent answer.
	debugToken, err := svc.ForgotPassword(ctx, "nobody@example.com")
	require.NoError(t, err)
	assert.Empty(t, debugToken)

	// No mail provider configured in tests, so the token comes back.
	debugToken, err = svc.ForgotPassword(ctx, "a@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, debugToken)

	assert.ErrorIs(t, svc.ResetPassword(ctx, debugToken, "short"), ErrWeakPassword)
	assert.ErrorIs(t, svc.ResetPassword(ctx, "bogus-token", "newpassword1"), ErrInvalidResetToken)

	require.NoError(t, svc.ResetPassword(ctx, debugToken, "newpassword1"))

	// Token is single use.
	assert.ErrorIs(t, svc.ResetPassword(ctx, debugToken, "newpassword2"), ErrInvalidResetToken)

	_, _, err = svc.Login(ctx, "a@example.com", "oldpassword")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = svc.Login(ctx, "a@example.com", "newpassword1")
	assert.NoError(t, err)
}
