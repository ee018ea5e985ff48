package validators

import (
	"errors"
	"strings"

	"github.com/denmor86/ya-cryptowallet/internal/models"
	"github.com/shopspring/decimal"
)

const (
	MaxUsernameLength = 50
	MaxPasswordLength = 72
	// MaxAmountScale - не более 8 знаков после запятой
	MaxAmountScale = 8
	// MaxAmountExponent - граница показателя степени до сравнения с MaxAmount
	MaxAmountExponent = 15
)

// MaxAmount - верхняя граница суммы или количества в одной команде
var MaxAmount = decimal.New(1, 15)

var (
	ErrInvalidAmountFormat = errors.New("invalid amount format")
	ErrNonPositiveAmount   = models.ErrNonPositiveAmount
	ErrInvalidCredentials  = errors.New("invalid username or password format")
)

// ParseAmount - разбор суммы, допускаются только положительные числа
// не больше MaxAmount и не точнее MaxAmountScale знаков.
// Показатель степени проверяется до любой арифметики: 1e2000000000
// иначе разворачивается в число из миллиардов цифр.
func ParseAmount(value string) (decimal.Decimal, error) {
	amount, err := decimal.NewFromString(strings.TrimSpace(value))
	if err != nil {
		return decimal.Zero, ErrInvalidAmountFormat
	}
	if amount.Exponent() < -MaxAmountScale || amount.Exponent() > MaxAmountExponent {
		return decimal.Zero, ErrInvalidAmountFormat
	}
	if amount.Abs().GreaterThan(MaxAmount) {
		return decimal.Zero, ErrInvalidAmountFormat
	}
	if !amount.IsPositive() {
		return decimal.Zero, ErrNonPositiveAmount
	}
	return amount, nil
}

// CheckCredentials - имя и пароль непустые и не длиннее допустимого
// (bcrypt не принимает пароли длиннее 72 байт)
func CheckCredentials(username string, password string) error {
	if username == "" || password == "" {
		return ErrInvalidCredentials
	}
	if len(username) > MaxUsernameLength || len(password) > MaxPasswordLength {
		return ErrInvalidCredentials
	}
	return nil
}
