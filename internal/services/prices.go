package services

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/denmor86/ya-cryptowallet/internal/client"
	"github.com/denmor86/ya-cryptowallet/internal/logger"
	"github.com/denmor86/ya-cryptowallet/internal/models"
	"github.com/shopspring/decimal"
)

//go:generate mockgen -source=prices.go -destination=mocks/prices_mock.go -package=mocks

var ErrPriceServiceBlocked = errors.New("price service requests are temporarily blocked")

type PriceService interface {
	FetchCoins(ctx context.Context) ([]models.Coin, error)
}

type Prices struct {
	Client  *client.Client
	Limiter *client.RateLimiter
}

const PriceRequestTimeout = 30 * time.Second

func NewPrices(baseURL string, apiKey string) PriceService {
	return &Prices{
		Client:  client.NewClient(baseURL, apiKey, &http.Client{Timeout: PriceRequestTimeout}),
		Limiter: client.NewRateLimiter(),
	}
}

// FetchCoins - запрос котировок; при 429 запросы блокируются на Retry-After
func (s *Prices) FetchCoins(ctx context.Context) ([]models.Coin, error) {
	if s.Limiter.Blocked() {
		return nil, ErrPriceServiceBlocked
	}
	if err := s.Limiter.Wait(ctx); err != nil {
		return nil, err
	}

	assets, err := s.Client.GetAssets(ctx)
	if err != nil {
		var rateLimitErr *client.RateLimitError
		if errors.As(err, &rateLimitErr) {
			logger.Warn("Too many requests to price service, retry after", rateLimitErr.RetryAfter)
			s.Limiter.BlockFor(rateLimitErr.RetryAfter)
		}
		return nil, err
	}

	coins := make([]models.Coin, 0, len(assets))
	for _, asset := range assets {
		coins = append(coins, models.Coin{
			Code:     asset.AssetID,
			Name:     asset.Name,
			PriceUSD: decimal.NewFromFloat(asset.PriceUSD),
			IsCrypto: asset.TypeIsCrypto == 1,
		})
	}
	return coins, nil
}
