package handlers

import (
	"net/http"

	"github.com/denmor86/ya-cryptowallet/internal/logger"
	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

// StatsProvider - счётчики состояния сервера
type StatsProvider interface {
	Connections() int64
}

type HealthResponse struct {
	Status      string `json:"status"`
	Connections int64  `json:"connections"`
	Coins       int    `json:"coins"`
}

// HealthHandler - состояние сервера: число клиентов и размер каталога
func HealthHandler(stats StatsProvider, catalog CatalogReader) http.HandlerFunc {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		response := HealthResponse{
			Status:      "ok",
			Connections: stats.Connections(),
			Coins:       len(catalog.ListAll()),
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(response); err != nil {
			logger.Error("Failed to encode JSON response:", zap.Error(err))
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		}
	})
}
