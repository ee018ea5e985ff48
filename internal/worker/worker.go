package worker

import (
	"context"
	"sync"
	"time"

	"github.com/denmor86/ya-cryptowallet/internal/logger"
	"github.com/denmor86/ya-cryptowallet/internal/models"
	"github.com/denmor86/ya-cryptowallet/internal/services"
	"github.com/sony/gobreaker"
)

const DefaultRefreshInterval = 30 * time.Minute

func InitCircuitBreaker() *gobreaker.CircuitBreaker {
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:    "price-service",
		Timeout: 5 * time.Minute, // через 5 минут пробуем снова
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Infow("Circuit Breaker state changed", "name", name, "from", from.String(), "to", to.String())
		},
	})
}

// CatalogWorker - периодическое обновление каталога монет
type CatalogWorker struct {
	Prices       services.PriceService
	Catalog      *services.Catalog
	Breaker      *gobreaker.CircuitBreaker
	WaitGroup    sync.WaitGroup
	QuitChan     chan struct{}
	PollInterval time.Duration
	stopOnce     sync.Once
}

// NewCatalogWorker - конструктор обработчика обновления цен
func NewCatalogWorker(prices services.PriceService, catalog *services.Catalog, interval time.Duration) *CatalogWorker {
	if interval <= 0 {
		interval = DefaultRefreshInterval
	}
	return &CatalogWorker{
		Prices:       prices,
		Catalog:      catalog,
		Breaker:      InitCircuitBreaker(),
		QuitChan:     make(chan struct{}),
		PollInterval: interval,
	}
}

// Start - запускает воркер в фоне
func (w *CatalogWorker) Start(ctx context.Context) {
	w.WaitGroup.Add(1)
	go w.Run(ctx)
}

// Stop - корректно останавливает воркер, повторный вызов безопасен
func (w *CatalogWorker) Stop() {
	w.stopOnce.Do(func() {
		close(w.QuitChan)
	})
	w.WaitGroup.Wait()
}

// Run - первое обновление сразу, далее по таймеру
func (w *CatalogWorker) Run(ctx context.Context) {
	defer w.WaitGroup.Done()

	if err := w.Refresh(ctx); err != nil {
		logger.Warn("Initial catalog refresh failed", err)
	}

	ticker := time.NewTicker(w.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-w.QuitChan:
			logger.Info("CatalogWorker signal stop")
			return
		case <-ctx.Done():
			logger.Info("CatalogWorker context done")
			return
		case <-ticker.C:
			if err := w.Refresh(ctx); err != nil {
				logger.Warn("Catalog refresh failed", err)
			}
		}
	}
}

// Refresh - один цикл загрузки цен. При ошибке каталог остаётся прежним.
func (w *CatalogWorker) Refresh(ctx context.Context) error {
	if w.Breaker.State() == gobreaker.StateOpen {
		logger.Warn(w.Breaker.Name(), "unavailable. Waiting...")
		return gobreaker.ErrOpenState
	}

	result, err := w.Breaker.Execute(func() (interface{}, error) {
		return w.Prices.FetchCoins(ctx)
	})
	if err != nil {
		logger.Error("Error fetching coin prices", err)
		return err
	}

	coins, _ := result.([]models.Coin)
	if err := w.Catalog.Replace(coins); err != nil {
		logger.Error("Error replacing catalog", err)
		return err
	}
	logger.Infow("Catalog refreshed", "coins", w.Catalog.Len())
	return nil
}
