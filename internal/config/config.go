package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/caarlos0/env"
	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"golang.org/x/crypto/bcrypt"
)

// DefaultWriteTimeout - запись ответа идёт в цикле событий, медленный клиент
// задерживает остальных не дольше этого времени
const DefaultWriteTimeout = 2 * time.Second

type Arguments struct {
	ListenAddr      string        `env:"SERVER_ADDRESS" envDefault:"localhost:8888"`
	LogLevel        string        `env:"LOG_LEVEL" envDefault:"info"`
	AccountsPath    string        `env:"ACCOUNTS_PATH" envDefault:"database/accounts.dat"`
	DatabaseDSN     string        `env:"DATABASE_DSN" envDefault:""`
	AdminAddr       string        `env:"ADMIN_ADDRESS" envDefault:""`
	CoinAPIAddr     string        `env:"COINAPI_ADDRESS" envDefault:"https://rest.coinapi.io"`
	CoinAPIKey      string        `env:"COINAPI_KEY" envDefault:""`
	RefreshInterval time.Duration `env:"REFRESH_INTERVAL" envDefault:"30m"`
	BufferSize      int           `env:"BUFFER_SIZE" envDefault:"65536"`
	WriteTimeout    time.Duration `env:"WRITE_TIMEOUT" envDefault:"2s"`
	AutoShutdown    bool          `env:"AUTO_SHUTDOWN" envDefault:"true"`
	CatalogCapacity int           `env:"CATALOG_CAPACITY" envDefault:"100"`
	BcryptCost      int           `env:"BCRYPT_COST" envDefault:"10"`
}

// ServerConfig модель настроек TCP сервера
type ServerConfig struct {
	ListenAddr   string
	LogLevel     string
	AdminAddr    string
	BufferSize   int
	WriteTimeout time.Duration
	AutoShutdown bool
}

// StorageConfig модель настроек хранилища аккаунтов
type StorageConfig struct {
	AccountsPath string
	DatabaseDSN  string
	BcryptCost   int
}

// CatalogConfig модель настроек работы с сервисом котировок
type CatalogConfig struct {
	CoinAPIAddr     string
	CoinAPIKey      string
	RefreshInterval time.Duration
	Capacity        int
}

// Config модель настроек сервиса
type Config struct {
	Server  ServerConfig
	Storage StorageConfig
	Catalog CatalogConfig
}

func NewConfig() Config {
	// .env необязателен, переменные окружения приоритетнее
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		panic(fmt.Sprintf("Failed to load .env file: %s", err.Error()))
	}

	var args Arguments
	if err := env.Parse(&args); err != nil {
		panic(fmt.Sprintf("Failed to parse enviroment var: %s", err.Error()))
	}

	var (
		server   = pflag.StringP("server", "a", args.ListenAddr, "Server listen address in a form host:port.")
		logLevel = pflag.StringP("log_level", "l", args.LogLevel, "Log level.")
		accounts = pflag.StringP("accounts", "f", args.AccountsPath, "Path to accounts file.")
		DSN      = pflag.StringP("dsn", "d", args.DatabaseDSN, "Database DSN, overrides accounts file")
		admin    = pflag.StringP("admin", "m", args.AdminAddr, "Admin HTTP listen address, empty to disable.")
		coinAPI  = pflag.StringP("coinapi", "r", args.CoinAPIAddr, "CoinAPI base URL.")
		apiKey   = pflag.StringP("coinapi_key", "k", args.CoinAPIKey, "CoinAPI key.")
		interval = pflag.DurationP("refresh", "i", args.RefreshInterval, "Coin catalog refresh interval.")
	)
	pflag.Parse()

	return Config{
		Server: ServerConfig{
			ListenAddr:   *server,
			LogLevel:     *logLevel,
			AdminAddr:    *admin,
			BufferSize:   args.BufferSize,
			WriteTimeout: args.WriteTimeout,
			AutoShutdown: args.AutoShutdown,
		},
		Storage: StorageConfig{
			AccountsPath: *accounts,
			DatabaseDSN:  *DSN,
			BcryptCost:   args.BcryptCost,
		},
		Catalog: CatalogConfig{
			CoinAPIAddr:     *coinAPI,
			CoinAPIKey:      *apiKey,
			RefreshInterval: *interval,
			Capacity:        args.CatalogCapacity,
		},
	}
}

func DefaultConfig() Config {
	return Config{
		Server: ServerConfig{
			ListenAddr:   "localhost:8888",
			LogLevel:     "info",
			BufferSize:   65536,
			WriteTimeout: DefaultWriteTimeout,
			AutoShutdown: true,
		},
		Storage: StorageConfig{
			AccountsPath: "database/accounts.dat",
			BcryptCost:   bcrypt.DefaultCost,
		},
		Catalog: CatalogConfig{
			CoinAPIAddr:     "https://rest.coinapi.io",
			RefreshInterval: 30 * time.Minute,
			Capacity:        100,
		},
	}
}
