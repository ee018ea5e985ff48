package client

import (
	"os"
	"testing"

	"github.com/denmor86/ya-cryptowallet/internal/config"
	"github.com/denmor86/ya-cryptowallet/internal/logger"
)

func TestMain(m *testing.M) {
	if err := logger.Initialize(config.DefaultConfig().Server.LogLevel); err != nil {
		logger.Panic(err)
	}
	code := m.Run()
	logger.Sync()
	os.Exit(code)
}
