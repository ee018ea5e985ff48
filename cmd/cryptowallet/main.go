package main

import (
	"fmt"
	"os"

	"github.com/denmor86/ya-cryptowallet/internal/app"
	"github.com/denmor86/ya-cryptowallet/internal/config"
	"github.com/denmor86/ya-cryptowallet/internal/logger"
)

func main() {
	// загрузка конфига
	config := config.NewConfig()
	// инициализация логгера
	if err := logger.Initialize(config.Server.LogLevel); err != nil {
		panic(fmt.Sprintf("can't initialize logger: %s ", err.Error()))
	}
	defer logger.Sync()

	if err := app.Run(config); err != nil {
		logger.Error("server failed", err)
		logger.Sync()
		os.Exit(1)
	}
}
