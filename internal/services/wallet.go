package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/denmor86/ya-cryptowallet/internal/helpers"
	"github.com/denmor86/ya-cryptowallet/internal/logger"
	"github.com/denmor86/ya-cryptowallet/internal/models"
	"github.com/shopspring/decimal"
)

// Wallet - операции с кошельком вошедшего пользователя
type Wallet struct {
	Accounts *Accounts
	Catalog  *Catalog
}

// Создание сервиса
func NewWallet(accounts *Accounts, catalog *Catalog) *Wallet {
	return &Wallet{Accounts: accounts, Catalog: catalog}
}

// Deposit - пополнение баланса
func (w *Wallet) Deposit(ctx context.Context, account *models.Account, amount decimal.Decimal) error {
	account, err := w.Accounts.LoggedAccount(account)
	if err != nil {
		return err
	}
	if err := account.Deposit(amount); err != nil {
		return err
	}
	logger.Info("Deposit", account.Username, amount.String())
	return w.Accounts.Persist(ctx)
}

// Buy - покупка amount монет code по текущей цене каталога
func (w *Wallet) Buy(ctx context.Context, account *models.Account, code string, amount decimal.Decimal) error {
	account, err := w.Accounts.LoggedAccount(account)
	if err != nil {
		return err
	}
	if !amount.IsPositive() {
		return models.ErrNonPositiveAmount
	}
	coin, err := w.Catalog.FindByCode(code)
	if err != nil {
		return err
	}
	if err := account.Buy(coin.Code, amount, coin.PriceUSD); err != nil {
		return err
	}
	logger.Info("Buy", account.Username, coin.Code, amount.String(), coin.PriceUSD.String())
	return w.Accounts.Persist(ctx)
}

// Sell - продажа всех монет code по текущей цене каталога.
// Монета должна быть в каталоге, иначе её нечем оценить.
func (w *Wallet) Sell(ctx context.Context, account *models.Account, code string) error {
	account, err := w.Accounts.LoggedAccount(account)
	if err != nil {
		return err
	}
	coin, err := w.Catalog.FindByCode(code)
	if err != nil {
		return err
	}
	if len(account.Holdings[coin.Code]) == 0 {
		return nil
	}
	proceeds := account.SellAll(coin.Code, coin.PriceUSD)
	logger.Info("Sell", account.Username, coin.Code, proceeds.String())
	return w.Accounts.Persist(ctx)
}

// Information - баланс и количество монет по каждому коду
func (w *Wallet) Information(account *models.Account) (string, error) {
	account, err := w.Accounts.LoggedAccount(account)
	if err != nil {
		return "", err
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "Amount available: %s\nCurrent investments:\n", helpers.FormatAmount(account.Balance))
	for _, code := range account.Codes() {
		fmt.Fprintf(&sb, "%s - %s coins\n", code, helpers.FormatAmount(account.TotalQuantity(code)))
	}
	return sb.String(), nil
}

// InvestmentInformation - нереализованная прибыль по каждому коду:
// количество * текущая цена - сумма покупок. Пустая строка, если монет нет.
func (w *Wallet) InvestmentInformation(account *models.Account) (string, error) {
	account, err := w.Accounts.LoggedAccount(account)
	if err != nil {
		return "", err
	}
	var sb strings.Builder
	for _, code := range account.Codes() {
		coin, err := w.Catalog.FindByCode(code)
		if err != nil {
			logger.Warn("Held coin is missing from catalog", account.Username, code)
			return "", fmt.Errorf("coin %s: %w", code, err)
		}
		margin := account.TotalQuantity(code).Mul(coin.PriceUSD).Sub(account.Invested(code))
		fmt.Fprintf(&sb, "%s - %s\n", code, helpers.FormatSigned(margin))
	}
	return sb.String(), nil
}
