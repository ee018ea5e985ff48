package client

import (
	"errors"
	"net/http"
	"time"
)

// AssetResponse - описание актива в ответе CoinAPI /v1/assets
type AssetResponse struct {
	AssetID      string  `json:"asset_id"`
	Name         string  `json:"name"`
	PriceUSD     float64 `json:"price_usd"`
	TypeIsCrypto int     `json:"type_is_crypto"`
}

const (
	AssetsPath   = "/v1/assets"
	APIKeyHeader = "X-CoinAPI-Key"
)

var (
	ErrServiceUnavailable = errors.New("price service unavailable")
	ErrUnauthorized       = errors.New("price service rejected api key")
)

type RateLimitError struct {
	RetryAfter time.Duration
}

func (e *RateLimitError) Error() string {
	return "rate limit exceeded"
}

func NewRateLimitError(headers http.Header) *RateLimitError {
	return &RateLimitError{
		RetryAfter: ParseRetryAfter(headers),
	}
}
