package commands

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/denmor86/ya-cryptowallet/internal/helpers"
	"github.com/denmor86/ya-cryptowallet/internal/logger"
	"github.com/denmor86/ya-cryptowallet/internal/models"
	"github.com/denmor86/ya-cryptowallet/internal/services"
	"github.com/denmor86/ya-cryptowallet/internal/validators"
	"github.com/shopspring/decimal"
)

// Action - действие с соединением после отправки ответа
type Action int

const (
	ActionNone Action = iota
	ActionClose
	ActionShutdown
)

// Result - ответ клиенту и управляющий сигнал для мультиплексора
type Result struct {
	Text   string
	Action Action
}

func reply(text string) Result {
	return Result{Text: text}
}

type AccountsService interface {
	Register(ctx context.Context, username string, password string) error
	Login(ctx context.Context, username string, password string) (*models.Account, error)
	Logout(account *models.Account)
}

type WalletService interface {
	Deposit(ctx context.Context, account *models.Account, amount decimal.Decimal) error
	Buy(ctx context.Context, account *models.Account, code string, amount decimal.Decimal) error
	Sell(ctx context.Context, account *models.Account, code string) error
	Information(account *models.Account) (string, error)
	InvestmentInformation(account *models.Account) (string, error)
}

type CatalogReader interface {
	ListAll() []models.Coin
}

// Executor - единственная точка маршрутизации команд к хранилищам.
// Возвращаемая ошибка означает сбой инфраструктуры, остальные ошибки
// превращаются в текст ответа.
type Executor struct {
	Accounts AccountsService
	Wallet   WalletService
	Catalog  CatalogReader
}

func NewExecutor(accounts AccountsService, wallet WalletService, catalog CatalogReader) *Executor {
	return &Executor{Accounts: accounts, Wallet: wallet, Catalog: catalog}
}

func (e *Executor) Execute(ctx context.Context, command Command, session *models.Session) (Result, error) {
	var (
		result Result
		err    error
	)
	switch command.Kind {
	case Login:
		result, err = e.login(ctx, command.Args, session)
	case Register:
		result, err = e.register(ctx, command.Args, session)
	case Deposit:
		result, err = e.deposit(ctx, command.Args, session)
	case ListCryptos:
		result = e.listCryptos(session)
	case BuyCrypto:
		result, err = e.buyCrypto(ctx, command.Args, session)
	case SellCrypto:
		result, err = e.sellCrypto(ctx, command.Args, session)
	case WalletInformation:
		result = e.walletInformation(session)
	case WalletInvestmentInformation:
		result = e.walletInvestmentInformation(session)
	case Disconnect:
		e.Disconnect(session)
		result = Result{Text: MessageDisconnected, Action: ActionClose}
	case Help:
		result = reply(MessageHelp)
	case Shutdown:
		result = Result{Text: MessageShutdown, Action: ActionShutdown}
	default:
		result = reply(MessageUnknownCommand)
	}

	if err != nil {
		logger.Error("Command failed", command.Kind.String(), err)
		return reply(MessageServerSideError), err
	}
	return result, nil
}

// Disconnect - выход из аккаунта при закрытии соединения
func (e *Executor) Disconnect(session *models.Session) {
	if session.Authenticated() {
		e.Accounts.Logout(session.Account)
		session.Account = nil
	}
}

func (e *Executor) login(ctx context.Context, args []string, session *models.Session) (Result, error) {
	if session.Authenticated() {
		return reply(MessageAlreadyLoggedIn), nil
	}
	if len(args) != RequiredArgumentsLoginRegister {
		return reply(MessageInvalidArguments), nil
	}

	account, err := e.Accounts.Login(ctx, args[0], args[1])
	switch {
	case err == nil:
		session.Account = account
		return reply(MessageLoginSuccessful), nil
	case errors.Is(err, services.ErrInvalidCredentials):
		return reply(MessageInvalidLogin), nil
	case errors.Is(err, services.ErrAlreadyLoggedIn):
		return reply(MessageAlreadyLoggedIn), nil
	case errors.Is(err, services.ErrLoginFailed):
		return reply(MessageProblemWhileLoggingIn), nil
	default:
		return Result{}, err
	}
}

func (e *Executor) register(ctx context.Context, args []string, session *models.Session) (Result, error) {
	if session.Authenticated() {
		return reply(MessageAlreadyLoggedInRegister), nil
	}
	if len(args) != RequiredArgumentsLoginRegister {
		return reply(MessageInvalidArguments), nil
	}
	if err := validators.CheckCredentials(args[0], args[1]); err != nil {
		return reply(MessageInvalidArguments), nil
	}

	err := e.Accounts.Register(ctx, args[0], args[1])
	switch {
	case err == nil:
		return reply(MessageRegisterSuccessful), nil
	case errors.Is(err, services.ErrAccountAlreadyExists):
		return reply(MessageAccountExists), nil
	case errors.Is(err, services.ErrLoginFailed):
		return reply(MessageServerSideError), nil
	default:
		return Result{}, err
	}
}

// amountFailure - текст ответа для ошибок суммы и баланса
func amountFailure(err error) (string, bool) {
	switch {
	case errors.Is(err, validators.ErrInvalidAmountFormat):
		return MessageInvalidFormatAmount, true
	case errors.Is(err, models.ErrNonPositiveAmount):
		return MessageNegativeAmount, true
	case errors.Is(err, models.ErrInsufficientBalance):
		return MessageInsufficientAmount, true
	case errors.Is(err, services.ErrUnknownCoin):
		return MessageCoinDoesNotExist, true
	case errors.Is(err, services.ErrNotLoggedIn):
		return MessageMustLogin, true
	}
	return "", false
}

func (e *Executor) walletResult(err error) (Result, error) {
	if err == nil {
		return reply(MessageSuccessfulOperation), nil
	}
	if text, ok := amountFailure(err); ok {
		return reply(text), nil
	}
	return Result{}, err
}

func (e *Executor) deposit(ctx context.Context, args []string, session *models.Session) (Result, error) {
	if !session.Authenticated() {
		return reply(MessageMustLogin), nil
	}
	if len(args) != RequiredArgumentsDeposit {
		return reply(MessageInvalidArguments), nil
	}
	amount, err := validators.ParseAmount(args[0])
	if err != nil {
		return e.walletResult(err)
	}
	return e.walletResult(e.Wallet.Deposit(ctx, session.Account, amount))
}

func (e *Executor) listCryptos(session *models.Session) Result {
	if !session.Authenticated() {
		return reply(MessageMustLogin)
	}
	var sb strings.Builder
	sb.WriteString(MessageAvailableCryptos)
	for _, coin := range e.Catalog.ListAll() {
		fmt.Fprintf(&sb, "\n%s (%s) - %s US dollars", coin.Name, coin.Code, helpers.FormatAmount(coin.PriceUSD))
	}
	return reply(sb.String())
}

func (e *Executor) buyCrypto(ctx context.Context, args []string, session *models.Session) (Result, error) {
	if !session.Authenticated() {
		return reply(MessageMustLogin), nil
	}
	if len(args) != RequiredArgumentsBuy {
		return reply(MessageInvalidArguments), nil
	}
	code := helpers.NormalizeCode(args[0])
	amount, err := validators.ParseAmount(args[1])
	if err != nil {
		return e.walletResult(err)
	}
	return e.walletResult(e.Wallet.Buy(ctx, session.Account, code, amount))
}

func (e *Executor) sellCrypto(ctx context.Context, args []string, session *models.Session) (Result, error) {
	if !session.Authenticated() {
		return reply(MessageMustLogin), nil
	}
	if len(args) != RequiredArgumentsSell {
		return reply(MessageInvalidArguments), nil
	}
	return e.walletResult(e.Wallet.Sell(ctx, session.Account, helpers.NormalizeCode(args[0])))
}

func (e *Executor) walletInformation(session *models.Session) Result {
	if !session.Authenticated() {
		return reply(MessageMustLogin)
	}
	info, err := e.Wallet.Information(session.Account)
	if err != nil {
		return reply(MessageMustLogin)
	}
	return reply(info)
}

func (e *Executor) walletInvestmentInformation(session *models.Session) Result {
	if !session.Authenticated() {
		return reply(MessageMustLogin)
	}
	info, err := e.Wallet.InvestmentInformation(session.Account)
	switch {
	case errors.Is(err, services.ErrNotLoggedIn):
		return reply(MessageMustLogin)
	case err != nil:
		return reply(MessageServerSideError)
	case info == "":
		return reply(MessageNoInvestments)
	}
	return reply(info)
}
