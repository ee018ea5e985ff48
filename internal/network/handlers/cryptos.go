package handlers

import (
	"net/http"

	"github.com/denmor86/ya-cryptowallet/internal/helpers"
	"github.com/denmor86/ya-cryptowallet/internal/logger"
	"github.com/denmor86/ya-cryptowallet/internal/models"
	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

// CatalogReader - доступ к текущему каталогу монет
type CatalogReader interface {
	ListAll() []models.Coin
	FindByCode(code string) (models.Coin, error)
}

func toResponse(coin models.Coin) models.CoinResponse {
	return models.CoinResponse{
		Code:     coin.Code,
		Name:     coin.Name,
		PriceUSD: coin.PriceUSD.InexactFloat64(),
	}
}

// ListCryptosHandler - выдача каталога монет
func ListCryptosHandler(catalog CatalogReader) http.HandlerFunc {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		coins := catalog.ListAll()
		if len(coins) == 0 {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		response := make([]models.CoinResponse, 0, len(coins))
		for _, coin := range coins {
			response = append(response, toResponse(coin))
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(response); err != nil {
			logger.Error("Failed to encode JSON response:", zap.Error(err))
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		}
	})
}

// GetCryptoHandler - выдача монеты по коду
func GetCryptoHandler(catalog CatalogReader) http.HandlerFunc {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		code := helpers.NormalizeCode(chi.URLParam(r, "code"))
		coin, err := catalog.FindByCode(code)
		if err != nil {
			logger.Warn("Coin not found:", code)
			http.Error(w, "Coin not found", http.StatusNotFound)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(toResponse(coin)); err != nil {
			logger.Error("Failed to encode JSON response:", zap.Error(err))
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		}
	})
}
