// Package goldprice implements the price ingestion pipeline: fetch the
// external spot quote, derive per-karat QAR gram prices, persist them and
// hand changed prices to the alert evaluator.
package goldprice

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"khazina/internal/models"
	"khazina/internal/repositories"
	"khazina/internal/repositories/cache"
)

// AlertEvaluator is notified with the new karat→price map after a refresh
// that actually moved prices.
type AlertEvaluator interface {
	Evaluate(ctx context.Context, prices map[int]float64)
}

// Service drives the fetch→derive→store→alert pipeline and serves price
// reads.
type Service interface {
	// Refresh runs one full pipeline pass. Fetch failures degrade to the
	// fallback constant and never fail the refresh.
	Refresh(ctx context.Context) error
	// EnsurePrices refreshes only when no prices are stored yet (boot).
	EnsurePrices(ctx context.Context) error
	GetPrices(ctx context.Context) ([]models.GoldPrice, error)
	GetPriceByKarat(ctx context.Context, karat int) (*models.GoldPrice, error)
}

type service struct {
	fetcher   SpotFetcher
	repo      repositories.PriceRepository
	evaluator AlertEvaluator
	cache     *cache.CacheService
	metrics   MetricsCollector
}

// NewService creates the pricing service. evaluator and cacheSvc may be nil.
func NewService(
	fetcher SpotFetcher,
	repo repositories.PriceRepository,
	evaluator AlertEvaluator,
	cacheSvc *cache.CacheService,
	metrics MetricsCollector,
) Service {
	if fetcher == nil {
		panic("fetcher is required")
	}
	if repo == nil {
		panic("price repository is required")
	}
	if metrics == nil {
		metrics = NoopMetricsCollector{}
	}
	return &service{
		fetcher:   fetcher,
		repo:      repo,
		evaluator: evaluator,
		cache:     cacheSvc,
		metrics:   metrics,
	}
}

func (s *service) Refresh(ctx context.Context) error {
	usdPerOz := s.fetcher.FetchUSDPerOunce(ctx)
	if usdPerOz == FallbackUSDPerOunce {
		s.metrics.RecordRefresh("fallback")
	} else {
		s.metrics.RecordRefresh("live")
	}

	previous, err := s.repo.GetCurrent(ctx)
	if err != nil {
		s.metrics.RecordRefreshError("load_previous")
		return fmt.Errorf("loading previous prices: %w", err)
	}
	prevByKarat := make(map[int]float64, len(previous))
	for _, p := range previous {
		prevByKarat[p.Karat] = p.PricePerGramQAR
	}

	prices := Derive(usdPerOz, prevByKarat, time.Now().UTC())

	changed, err := s.repo.Upsert(ctx, prices)
	if err != nil {
		s.metrics.RecordRefreshError("upsert")
		return fmt.Errorf("storing prices: %w", err)
	}
	s.invalidateCache(ctx)

	if !changed {
		slog.Debug("gold prices unchanged, skipping alert scan")
		return nil
	}
	s.metrics.RecordPriceChanged()
	slog.Info("gold prices updated", "usd_per_oz", usdPerOz, "price_24k", prices[0].PricePerGramQAR)

	if s.evaluator != nil {
		current := make(map[int]float64, len(prices))
		for _, p := range prices {
			current[p.Karat] = p.PricePerGramQAR
		}
		s.evaluator.Evaluate(ctx, current)
	}
	return nil
}

func (s *service) EnsurePrices(ctx context.Context) error {
	current, err := s.repo.GetCurrent(ctx)
	if err != nil {
		return err
	}
	if len(current) > 0 {
		return nil
	}
	return s.Refresh(ctx)
}

func (s *service) GetPrices(ctx context.Context) ([]models.GoldPrice, error) {
	if s.cache != nil {
		var cached []models.GoldPrice
		if err := s.cache.Get(ctx, cache.GoldPricesKey, &cached); err == nil && len(cached) > 0 {
			return cached, nil
		}
	}

	prices, err := s.repo.GetCurrent(ctx)
	if err != nil {
		return nil, err
	}
	if s.cache != nil && len(prices) > 0 {
		if err := s.cache.SetWithTTL(ctx, cache.GoldPricesKey, prices, time.Minute); err != nil {
			slog.Warn("failed to cache gold prices", "error", err)
		}
	}
	return prices, nil
}

func (s *service) GetPriceByKarat(ctx context.Context, karat int) (*models.GoldPrice, error) {
	price, err := s.repo.GetByKarat(ctx, karat)
	if errors.Is(err, repositories.ErrPriceNotFound) {
		return nil, ErrPricingUnavailable
	}
	return price, err
}

func (s *service) invalidateCache(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, cache.GoldPricesKey); err != nil {
		slog.Warn("failed to invalidate price cache", "error", err)
	}
}
