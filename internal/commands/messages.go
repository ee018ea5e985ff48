package commands

// Сообщения клиенту, текст является частью протокола
const (
	MessageAccountExists           = "Account already exists"
	MessageAlreadyLoggedIn         = "You are already logged in."
	MessageAlreadyLoggedInRegister = "Cannot make a new account while already logged in."
	MessageCoinDoesNotExist        = "No crypto coin exists with this id."
	MessageDisconnected            = "disconnected"
	MessageInsufficientAmount      = "Not enough balance in your wallet."
	MessageInvalidFormatAmount     = "Invalid format for the amount of money."
	MessageInvalidArguments        = "Invalid command"
	MessageInvalidLogin            = "Wrong username or password."
	MessageLoginSuccessful         = "Login successful"
	MessageMustLogin               = "Log in first or create a new account if you don't have one."
	MessageNegativeAmount          = "Amount cannot be negative."
	MessageProblemWhileLoggingIn   = "A problem occurred while trying to log in. Try again."
	MessageRegisterSuccessful      = "Register successful"
	MessageServerSideError         = "An error occurred on the server. Try again later."
	MessageSuccessfulOperation     = "Transaction completed"
	MessageUnknownCommand          = "Unknown command"
	MessageNoInvestments           = "Currently there aren't any investments."
	MessageShutdown                = "shutdown"
	MessageReadProblem             = "There was a problem with reading your input. Try again."
	MessageAvailableCryptos        = "Available cryptos:"
)

const MessageHelp = "Available commands:\n" +
	"login {name} {password}\n" +
	"register {name} {password}\n" +
	"deposit {amount}\n" +
	"list_cryptos\n" +
	"buy_crypto {id} {amount}\n" +
	"sell_crypto {id}\n" +
	"wallet_information\n" +
	"wallet_investment_information\n" +
	"help\n" +
	"shutdown\n" +
	"disconnect\n"
