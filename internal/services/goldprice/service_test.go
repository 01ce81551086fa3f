package goldprice

import (
	"context"
	"math"
	"sync"
	"testing"

	"khazina/internal/models"
	"khazina/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubFetcher struct {
	price float64
}

func (f *stubFetcher) FetchUSDPerOunce(ctx context.Context) float64 {
	return f.price
}

// memPriceRepo mirrors the one-row-per-karat upsert semantics in memory.
type memPriceRepo struct {
	mu     sync.Mutex
	prices map[int]models.GoldPrice
}

func newMemPriceRepo() *memPriceRepo {
	return &memPriceRepo{prices: map[int]models.GoldPrice{}}
}

func (r *memPriceRepo) Upsert(ctx context.Context, prices []models.GoldPrice) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	changed := false
	for _, p := range prices {
		old, ok := r.prices[p.Karat]
		if !ok || math.Abs(p.PricePerGramQAR-old.PricePerGramQAR) > 0.01 {
			changed = true
		}
		r.prices[p.Karat] = p
	}
	return changed, nil
}

func (r *memPriceRepo) GetCurrent(ctx context.Context) ([]models.GoldPrice, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]models.GoldPrice, 0, len(r.prices))
	for _, p := range r.prices {
		out = append(out, p)
	}
	return out, nil
}

func (r *memPriceRepo) GetByKarat(ctx context.Context, karat int) (*models.GoldPrice, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.prices[karat]
	if !ok {
		return nil, repositories.ErrPriceNotFound
	}
	return &p, nil
}

type recordingEvaluator struct {
	calls []map[int]float64
}

func (e *recordingEvaluator) Evaluate(ctx context.Context, prices map[int]float64) {
	e.calls = append(e.calls, prices)
}

func TestService_RefreshStoresAllKarats(t *testing.T) {
	repo := newMemPriceRepo()
	svc := NewService(&stubFetcher{price: 2400}, repo, nil, nil, NoopMetricsCollector{})

	require.NoError(t, svc.Refresh(context.Background()))

	prices, err := svc.GetPrices(context.Background())
	require.NoError(t, err)
	assert.Len(t, prices, 4)
}

func TestService_FallbackStillYieldsPrices(t *testing.T) {
	repo := newMemPriceRepo()
	svc := NewService(&stubFetcher{price: FallbackUSDPerOunce}, repo, nil, nil, NoopMetricsCollector{})

	require.NoError(t, svc.Refresh(context.Background()))

	prices, err := svc.GetPrices(context.Background())
	require.NoError(t, err)
	require.Len(t, prices, 4)
	for _, p := range prices {
		assert.Positive(t, p.PricePerGramQAR)
	}
}

func TestService_EvaluatorOnlyCalledOnChange(t *testing.T) {
	repo := newMemPriceRepo()
	fetcher := &stubFetcher{price: 2400}
	evaluator := &recordingEvaluator{}
	svc := NewService(fetcher, repo, evaluator, nil, NoopMetricsCollector{})

	ctx := context.Background()
	require.NoError(t, svc.Refresh(ctx))
	require.Len(t, evaluator.calls, 1, "first refresh stores new prices, alerts must run")

	// Identical quote: prices do not move, evaluator stays quiet.
	require.NoError(t, svc.Refresh(ctx))
	assert.Len(t, evaluator.calls, 1)

	fetcher.price = 2500
	require.NoError(t, svc.Refresh(ctx))
	require.Len(t, evaluator.calls, 2)
	assert.Len(t, evaluator.calls[1], 4)
	assert.Positive(t, evaluator.calls[1][24])
}

func TestService_EnsurePricesOnlyRefreshesWhenEmpty(t *testing.T) {
	repo := newMemPriceRepo()
	evaluator := &recordingEvaluator{}
	svc := NewService(&stubFetcher{price: 2400}, repo, evaluator, nil, NoopMetricsCollector{})

	ctx := context.Background()
	require.NoError(t, svc.EnsurePrices(ctx))
	require.Len(t, evaluator.calls, 1)

	// Prices exist now; a second ensure is a no-op.
	require.NoError(t, svc.EnsurePrices(ctx))
	assert.Len(t, evaluator.calls, 1)
}

func TestService_GetPriceByKarat(t *testing.T) {
	repo := newMemPriceRepo()
	svc := NewService(&stubFetcher{price: 2400}, repo, nil, nil, NoopMetricsCollector{})

	_, err := svc.GetPriceByKarat(context.Background(), 24)
	assert.ErrorIs(t, err, ErrPricingUnavailable)

	require.NoError(t, svc.Refresh(context.Background()))

	price, err := svc.GetPriceByKarat(context.Background(), 24)
	require.NoError(t, err)
	assert.Equal(t, 24, price.Karat)

	_, err = svc.GetPriceByKarat(context.Background(), 14)
	assert.ErrorIs(t, err, ErrPricingUnavailable)
}
