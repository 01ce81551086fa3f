package wallet

import (
	"context"
	"sync"
	"testing"

	"khazina/internal/models"
	"khazina/internal/repositories"
	"khazina/internal/services/goldprice"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memWalletRepo reproduces the storage contract in memory: settlement is
// atomic under a mutex and the sale decrement is conditional on the balance.
type memWalletRepo struct {
	mu      sync.Mutex
	wallets map[uint]*models.Wallet
	ledger  []models.Transaction
}

func newMemWalletRepo() *memWalletRepo {
	return &memWalletRepo{wallets: map[uint]*models.Wallet{}}
}

func (r *memWalletRepo) Create(w *models.Wallet) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *w
	r.wallets[w.UserID] = &cp
	return nil
}

func (r *memWalletRepo) GetByUserID(ctx context.Context, userID uint) (*models.Wallet, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	w, ok := r.wallets[userID]
	if !ok {
		return nil, repositories.ErrWalletNotFound
	}
	cp := *w
	return &cp, nil
}

func (r *memWalletRepo) SettlePurchase(ctx context.Context, userID uint, grams float64, tx *models.Transaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	w, ok := r.wallets[userID]
	if !ok {
		return repositories.ErrWalletNotFound
	}
	w.GoldGramsTotal += grams
	r.ledger = append(r.ledger, *tx)
	return nil
}

func (r *memWalletRepo) SettleSale(ctx context.Context, userID uint, grams, cashQAR float64, tx *models.Transaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	w, ok := r.wallets[userID]
	if !ok {
		return repositories.ErrWalletNotFound
	}
	if w.GoldGramsTotal < grams {
		return repositories.ErrInsufficientGold
	}
	w.GoldGramsTotal -= grams
	w.CashQAR += cashQAR
	r.ledger = append(r.ledger, *tx)
	return nil
}

func (r *memWalletRepo) CreditCash(ctx context.Context, userID uint, amountQAR float64, tx *models.Transaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	w, ok := r.wallets[userID]
	if !ok {
		return repositories.ErrWalletNotFound
	}
	w.CashQAR += amountQAR
	r.ledger = append(r.ledger, *tx)
	return nil
}

func (r *memWalletRepo) GetTransactions(ctx context.Context, userID uint, limit int) ([]models.Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Transaction
	for i := len(r.ledger) - 1; i >= 0; i-- {
		if r.ledger[i].UserID == userID {
			out = append(out, r.ledger[i])
		}
	}
	return out, nil
}

// stubPricing serves a fixed 24K price.
type stubPricing struct {
	price float64
	err   error
}

func (p *stubPricing) Refresh(ctx context.Context) error      { return nil }
func (p *stubPricing) EnsurePrices(ctx context.Context) error { return nil }
func (p *stubPricing) GetPrices(ctx context.Context) ([]models.GoldPrice, error) {
	return nil, nil
}
func (p *stubPricing) GetPriceByKarat(ctx context.Context, karat int) (*models.GoldPrice, error) {
	if p.err != nil {
		return nil, p.err
	}
	return &models.GoldPrice{Karat: karat, PricePerGramQAR: p.price}, nil
}

func newTestService(price float64) (Service, *memWalletRepo) {
	repo := newMemWalletRepo()
	svc := NewService(repo, &stubPricing{price: price}, nil, NoopMetricsCollector{})
	return svc, repo
}

func TestService_GetWalletAutoCreates(t *testing.T) {
	svc, _ := newTestService(300)

	w, err := svc.GetWallet(context.Background(), 1, "user_abc")
	require.NoError(t, err)
	assert.Zero(t, w.GoldGramsTotal)
	assert.Zero(t, w.CashQAR)
	assert.Equal(t, "user_abc", w.PublicUserID)
}

func TestService_BuyThenSellRoundTrip(t *testing.T) {
	svc, _ := newTestService(300)
	ctx := context.Background()

	buyTx, err := svc.BuyGold(ctx, 1, "user_abc", 10)
	require.NoError(t, err)
	assert.Equal(t, models.TransactionTypeBuy, buyTx.Type)
	assert.Equal(t, 3000.0, buyTx.PriceQAR)
	assert.Equal(t, models.TransactionStatusCompleted, buyTx.Status)

	sellTx, err := svc.SellGold(ctx, 1, "user_abc", 10)
	require.NoError(t, err)
	assert.Equal(t, models.TransactionTypeSell, sellTx.Type)
	assert.Equal(t, 3000.0, sellTx.PriceQAR)

	w, err := svc.GetWallet(ctx, 1, "user_abc")
	require.NoError(t, err)
	assert.Zero(t, w.GoldGramsTotal)
	assert.Equal(t, 3000.0, w.CashQAR)

	txs, err := svc.GetTransactions(ctx, 1, 10)
	require.NoError(t, err)
	assert.Len(t, txs, 2)
}

func TestService_BuyValidation(t *testing.T) {
	svc, _ := newTestService(300)
	ctx := context.Background()

	_, err := svc.BuyGold(ctx, 1, "user_abc", 0)
	assert.ErrorIs(t, err, ErrInvalidAmount)

	_, err = svc.BuyGold(ctx, 1, "user_abc", -3)
	assert.ErrorIs(t, err, ErrInvalidAmount)
}

func TestService_BuyRoundsTotal(t *testing.T) {
	svc, _ := newTestService(278.53)

	tx, err := svc.BuyGold(context.Background(), 1, "user_abc", 3.333)
	require.NoError(t, err)
	// 3.333 * 278.53 = 928.34049, rounded once at the end.
	assert.Equal(t, 928.34, tx.PriceQAR)
}

func TestService_SellInsufficientLeavesWalletUntouched(t *testing.T) {
	svc, repo := newTestService(300)
	ctx := context.Background()

	_, err := svc.BuyGold(ctx, 1, "user_abc", 5)
	require.NoError(t, err)

	_, err = svc.SellGold(ctx, 1, "user_abc", 6)
	assert.ErrorIs(t, err, ErrInsufficientBalance)

	w, err := svc.GetWallet(ctx, 1, "user_abc")
	require.NoError(t, err)
	assert.Equal(t, 5.0, w.GoldGramsTotal)
	assert.Zero(t, w.CashQAR)

	// The failed sale must not leave a ledger record.
	assert.Len(t, repo.ledger, 1)
}

func TestService_PricingUnavailable(t *testing.T) {
	repo := newMemWalletRepo()
	svc := NewService(repo, &stubPricing{err: goldprice.ErrPricingUnavailable}, nil, NoopMetricsCollector{})
	ctx := context.Background()

	_, err := svc.BuyGold(ctx, 1, "user_abc", 1)
	assert.ErrorIs(t, err, goldprice.ErrPricingUnavailable)

	_, err = svc.SellGold(ctx, 1, "user_abc", 1)
	assert.ErrorIs(t, err, goldprice.ErrPricingUnavailable)
}

func TestService_ConcurrentSellsNeverOversell(t *testing.T) {
	svc, repo := newTestService(300)
	ctx := context.Background()

	_, err := svc.BuyGold(ctx, 1, "user_abc", 10)
	require.NoError(t, err)

	const sellers = 8
	var wg sync.WaitGroup
	results := make(chan error, sellers)
	for i := 0; i < sellers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.SellGold(ctx, 1, "user_abc", 10)
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	succeeded := 0
	for err := range results {
		if err == nil {
			succeeded++
		} else {
			assert.ErrorIs(t, err, ErrInsufficientBalance)
		}
	}
	assert.Equal(t, 1, succeeded, "only one concurrent sell can win the balance")

	w, err := repo.GetByUserID(ctx, 1)
	require.NoError(t, err)
	assert.Zero(t, w.GoldGramsTotal)
	assert.Equal(t, 3000.0, w.CashQAR)
}

func TestService_CreditCash(t *testing.T) {
	svc, _ := newTestService(300)
	ctx := context.Background()

	tx, err := svc.CreditCash(ctx, 1, "user_abc", 500, models.TransactionTypeVoucherRedeem)
	require.NoError(t, err)
	assert.Equal(t, models.TransactionTypeVoucherRedeem, tx.Type)
	assert.Equal(t, 500.0, tx.PriceQAR)

	w, err := svc.GetWallet(ctx, 1, "user_abc")
	require.NoError(t, err)
	assert.Equal(t, 500.0, w.CashQAR)

	_, err = svc.CreditCash(ctx, 1, "user_abc", -1, models.TransactionTypeVoucherRedeem)
	assert.ErrorIs(t, err, ErrInvalidAmount)
}
