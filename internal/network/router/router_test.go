package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/denmor86/ya-cryptowallet/internal/models"
	"github.com/denmor86/ya-cryptowallet/internal/network/handlers"
	"github.com/denmor86/ya-cryptowallet/internal/services"
	"github.com/goccy/go-json"
	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
)

type stubStats struct {
	clients int64
}

func (s stubStats) Connections() int64 {
	return s.clients
}

func TestHandleRouter(t *testing.T) {
	catalog := services.NewCatalog(services.DefaultCatalogCapacity)
	_ = catalog.Replace([]models.Coin{
		{Code: "ETH", Name: "Ethereum", PriceUSD: decimal.RequireFromString("3000.5"), IsCrypto: true},
		{Code: "BTC", Name: "Bitcoin", PriceUSD: decimal.NewFromInt(49000), IsCrypto: true},
	})
	r := NewRouter(catalog, stubStats{clients: 2}).HandleRouter()

	testCases := []struct {
		name           string
		url            string
		expectedStatus int
		expectedBody   any
		decodeInto     func() any
	}{
		{
			name:           "Cryptos: List #1",
			url:            "/api/cryptos",
			expectedStatus: http.StatusOK,
			expectedBody: &[]models.CoinResponse{
				{Code: "BTC", Name: "Bitcoin", PriceUSD: 49000},
				{Code: "ETH", Name: "Ethereum", PriceUSD: 3000.5},
			},
			decodeInto: func() any { return &[]models.CoinResponse{} },
		},
		{
			name:           "Cryptos: By code #2",
			url:            "/api/cryptos/eth",
			expectedStatus: http.StatusOK,
			expectedBody:   &models.CoinResponse{Code: "ETH", Name: "Ethereum", PriceUSD: 3000.5},
			decodeInto:     func() any { return &models.CoinResponse{} },
		},
		{
			name:           "Cryptos: Unknown code #3",
			url:            "/api/cryptos/DOGE",
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "Health #4",
			url:            "/api/health",
			expectedStatus: http.StatusOK,
			expectedBody:   &handlers.HealthResponse{Status: "ok", Connections: 2, Coins: 2},
			decodeInto:     func() any { return &handlers.HealthResponse{} },
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			request := httptest.NewRequest(http.MethodGet, tc.url, nil)
			recorder := httptest.NewRecorder()
			r.ServeHTTP(recorder, request)

			if recorder.Code != tc.expectedStatus {
				t.Fatalf("Expected status %d, got: %d", tc.expectedStatus, recorder.Code)
			}
			if tc.decodeInto == nil {
				return
			}
			body := tc.decodeInto()
			if err := json.Unmarshal(recorder.Body.Bytes(), body); err != nil {
				t.Fatalf("Failed to decode body: '%v'", err)
			}
			if diff := cmp.Diff(tc.expectedBody, body); diff != "" {
				t.Errorf("Body mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestListCryptosEmpty(t *testing.T) {
	r := NewRouter(services.NewCatalog(0), stubStats{}).HandleRouter()
	recorder := httptest.NewRecorder()
	r.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/api/cryptos", nil))

	if recorder.Code != http.StatusNoContent {
		t.Errorf("Expected status %d, got: %d", http.StatusNoContent, recorder.Code)
	}
}
