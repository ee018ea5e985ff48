package helpers

import (
	"strings"

	"github.com/shopspring/decimal"
)

// FormatAmount - денежная сумма или количество с двумя знаками после запятой
func FormatAmount(value decimal.Decimal) string {
	return value.StringFixed(2)
}

// FormatSigned - сумма с явным знаком, ноль считается положительным
func FormatSigned(value decimal.Decimal) string {
	if value.IsNegative() {
		return FormatAmount(value)
	}
	return "+" + FormatAmount(value)
}

// NormalizeCode - коды монет хранятся в верхнем регистре
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
