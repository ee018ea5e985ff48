package models

import "github.com/shopspring/decimal"

// Coin - монета из каталога котировок
type Coin struct {
	Code     string
	Name     string
	PriceUSD decimal.Decimal
	IsCrypto bool
}

// CoinResponse - модель монеты для выдачи через admin API
type CoinResponse struct {
	Code     string  `json:"code"`
	Name     string  `json:"name"`
	PriceUSD float64 `json:"price_usd"`
}
