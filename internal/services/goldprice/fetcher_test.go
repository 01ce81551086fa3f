package goldprice

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHTTPFetcher_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"price": 2415.30}]`))
	}))
	defer srv.Close()

	fetcher := NewHTTPFetcher(srv.URL)
	assert.Equal(t, 2415.30, fetcher.FetchUSDPerOunce(context.Background()))
}

func TestHTTPFetcher_FallbackModes(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "non-200 status",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusBadGateway)
			},
		},
		{
			name: "malformed payload",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`{"not": "an array"`))
			},
		},
		{
			name: "empty payload",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`[]`))
			},
		},
		{
			name: "non-positive price",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`[{"price": -10}]`))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			fetcher := NewHTTPFetcher(srv.URL)
			assert.Equal(t, FallbackUSDPerOunce, fetcher.FetchUSDPerOunce(context.Background()))
		})
	}
}

func TestHTTPFetcher_UnreachableHost(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	fetcher := NewHTTPFetcher(srv.URL)
	assert.Equal(t, FallbackUSDPerOunce, fetcher.FetchUSDPerOunce(context.Background()))
}
