package commands

import (
	"errors"
	"strings"
	"unicode/utf8"
)

// Kind - тип команды протокола
type Kind int

const (
	Unknown Kind = iota
	Login
	Register
	Deposit
	ListCryptos
	BuyCrypto
	SellCrypto
	WalletInformation
	WalletInvestmentInformation
	Disconnect
	Help
	Shutdown
)

var kindNames = map[Kind]string{
	Unknown:                     "UNKNOWN",
	Login:                       "LOGIN",
	Register:                    "REGISTER",
	Deposit:                     "DEPOSIT",
	ListCryptos:                 "LIST_CRYPTOS",
	BuyCrypto:                   "BUY_CRYPTO",
	SellCrypto:                  "SELL_CRYPTO",
	WalletInformation:           "WALLET_INFORMATION",
	WalletInvestmentInformation: "WALLET_INVESTMENT_INFORMATION",
	Disconnect:                  "DISCONNECT",
	Help:                        "HELP",
	Shutdown:                    "SHUTDOWN",
}

var kindsByName = func() map[string]Kind {
	m := make(map[string]Kind, len(kindNames))
	for kind, name := range kindNames {
		m[name] = kind
	}
	return m
}()

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return kindNames[Unknown]
}

// KindFromString - регистронезависимый поиск типа, Unknown если не найден
func KindFromString(value string) Kind {
	if kind, ok := kindsByName[strings.ToUpper(value)]; ok {
		return kind
	}
	return Unknown
}

const (
	RequiredArgumentsLoginRegister = 2
	RequiredArgumentsBuy           = 2
	RequiredArgumentsDeposit       = 1
	RequiredArgumentsSell          = 1
)

var ErrMalformedInput = errors.New("client input is not valid UTF-8 text")

// Command - разобранный запрос клиента
type Command struct {
	Kind Kind
	Args []string
}

// Parse - разбор строки по одиночным пробелам: первый токен - тип, остальные - аргументы.
// Пустая строка - неизвестная команда.
func Parse(line string) (Command, error) {
	if !utf8.ValidString(line) {
		return Command{}, ErrMalformedInput
	}
	tokens := strings.Split(line, " ")
	command := Command{Kind: KindFromString(tokens[0])}
	if len(tokens) > 1 {
		command.Args = tokens[1:]
	}
	return command, nil
}
