package models

import (
	"errors"
	"sort"

	"github.com/shopspring/decimal"
)

var (
	ErrNonPositiveAmount   = errors.New("amount must be positive")
	ErrInsufficientBalance = errors.New("insufficient balance")
)

// Lot - одна покупка монеты: количество и цена за единицу на момент покупки
type Lot struct {
	ID       uint64
	Quantity decimal.Decimal
	Price    decimal.Decimal
}

// Account - модель аккаунта пользователя
type Account struct {
	ID           string
	Username     string
	PasswordHash string
	Balance      decimal.Decimal
	// код монеты -> покупки
	Holdings  map[string][]Lot
	NextLotID uint64
}

// NewAccount - создание аккаунта с нулевым балансом
func NewAccount(id, username, passwordHash string) *Account {
	return &Account{
		ID:           id,
		Username:     username,
		PasswordHash: passwordHash,
		Balance:      decimal.Zero,
		Holdings:     make(map[string][]Lot),
	}
}

// Equal - аккаунты равны, если совпадает имя пользователя
func (a *Account) Equal(other *Account) bool {
	if a == nil || other == nil {
		return a == other
	}
	return a.Username == other.Username
}

// Deposit - пополнение баланса
func (a *Account) Deposit(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return ErrNonPositiveAmount
	}
	a.Balance = a.Balance.Add(amount)
	return nil
}

// Buy - покупка quantity монет code по цене price, баланс уменьшается на quantity*price
func (a *Account) Buy(code string, quantity, price decimal.Decimal) error {
	if !quantity.IsPositive() {
		return ErrNonPositiveAmount
	}
	cost := quantity.Mul(price)
	if cost.GreaterThan(a.Balance) {
		return ErrInsufficientBalance
	}
	if a.Holdings == nil {
		a.Holdings = make(map[string][]Lot)
	}
	a.NextLotID++
	a.Holdings[code] = append(a.Holdings[code], Lot{ID: a.NextLotID, Quantity: quantity, Price: price})
	a.Balance = a.Balance.Sub(cost)
	return nil
}

// SellAll - продажа всех покупок монеты code по текущей цене, возвращает выручку
func (a *Account) SellAll(code string, price decimal.Decimal) decimal.Decimal {
	proceeds := a.TotalQuantity(code).Mul(price)
	delete(a.Holdings, code)
	a.Balance = a.Balance.Add(proceeds)
	return proceeds
}

// TotalQuantity - суммарное количество монет code по всем покупкам
func (a *Account) TotalQuantity(code string) decimal.Decimal {
	total := decimal.Zero
	for _, lot := range a.Holdings[code] {
		total = total.Add(lot.Quantity)
	}
	return total
}

// Invested - сумма, потраченная на покупки монеты code
func (a *Account) Invested(code string) decimal.Decimal {
	total := decimal.Zero
	for _, lot := range a.Holdings[code] {
		total = total.Add(lot.Quantity.Mul(lot.Price))
	}
	return total
}

// Codes - коды монет в портфеле в алфавитном порядке
func (a *Account) Codes() []string {
	codes := make([]string, 0, len(a.Holdings))
	for code, lots := range a.Holdings {
		if len(lots) > 0 {
			codes = append(codes, code)
		}
	}
	sort.Strings(codes)
	return codes
}
