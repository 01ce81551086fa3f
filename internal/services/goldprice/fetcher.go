package goldprice

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"
)

// Conversion constants. QAR is pegged to the dollar.
const (
	// FallbackUSDPerOunce is used whenever the market API cannot be reached
	// or returns garbage. The pipeline never fails on fetch errors, it
	// degrades to this constant.
	FallbackUSDPerOunce = 2380.0

	defaultSpotURL = "https://api.metals.live/v1/spot/gold"
	fetchTimeout   = 10 * time.Second
)

// SpotFetcher returns the current USD price per troy ounce of gold.
type SpotFetcher interface {
	FetchUSDPerOunce(ctx context.Context) float64
}

// spotQuote mirrors one entry of the metals API payload.
type spotQuote struct {
	Price float64 `json:"price"`
}

type httpFetcher struct {
	client   *http.Client
	url      string
	fallback float64
}

// NewHTTPFetcher creates a fetcher against the spot gold API. An empty url
// selects the default endpoint.
func NewHTTPFetcher(url string) SpotFetcher {
	if url == "" {
		url = defaultSpotURL
	}
	return &httpFetcher{
		client:   &http.Client{Timeout: fetchTimeout},
		url:      url,
		fallback: FallbackUSDPerOunce,
	}
}

// FetchUSDPerOunce never reports an error to the caller: any failure mode
// (transport, status, payload, non-positive price) falls back to the
// constant and is logged.
func (f *httpFetcher) FetchUSDPerOunce(ctx context.Context) float64 {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.url, nil)
	if err != nil {
		slog.Error("spot price request build failed, using fallback", "error", err)
		return f.fallback
	}

	resp, err := f.client.Do(req)
	if err != nil {
		slog.Warn("spot price fetch failed, using fallback", "error", err, "fallback_usd_per_oz", f.fallback)
		return f.fallback
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		slog.Warn("spot price API returned non-200, using fallback", "status", resp.StatusCode)
		return f.fallback
	}

	var quotes []spotQuote
	if err := json.NewDecoder(resp.Body).Decode(&quotes); err != nil {
		slog.Warn("spot price payload malformed, using fallback", "error", err)
		return f.fallback
	}
	if len(quotes) == 0 || quotes[0].Price <= 0 {
		slog.Warn("spot price payload empty or non-positive, using fallback")
		return f.fallback
	}

	slog.Info("spot price fetched", "usd_per_oz", quotes[0].Price)
	return quotes[0].Price
}
