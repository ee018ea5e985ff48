package app

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/denmor86/ya-cryptowallet/internal/commands"
	"github.com/denmor86/ya-cryptowallet/internal/config"
	"github.com/denmor86/ya-cryptowallet/internal/logger"
	"github.com/denmor86/ya-cryptowallet/internal/network/router"
	"github.com/denmor86/ya-cryptowallet/internal/network/server"
	"github.com/denmor86/ya-cryptowallet/internal/services"
	"github.com/denmor86/ya-cryptowallet/internal/storage"
	"github.com/denmor86/ya-cryptowallet/internal/worker"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 5 * time.Second

func Run(config config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := storage.NewStorage(config.Storage.DatabaseDSN, config.Storage.AccountsPath)
	if err != nil {
		return err
	}
	accounts := services.NewAccounts(store, config.Storage.BcryptCost)
	if err := accounts.Load(ctx); err != nil {
		store.Close()
		return err
	}

	catalog := services.NewCatalog(config.Catalog.Capacity)
	wallet := services.NewWallet(accounts, catalog)
	executor := commands.NewExecutor(accounts, wallet, catalog)

	srv := server.NewServer(config.Server, executor)
	if err := srv.Listen(); err != nil {
		store.Close()
		return err
	}
	logger.Infow("Starting server",
		"addr", srv.Addr().String(),
		"admin", config.Server.AdminAddr,
		"coinapi", config.Catalog.CoinAPIAddr,
		"refresh", config.Catalog.RefreshInterval,
		"accounts", accounts.Len(),
	)

	// Создание и запуск воркера обновления каталога
	prices := services.NewPrices(config.Catalog.CoinAPIAddr, config.Catalog.CoinAPIKey)
	catalogWorker := worker.NewCatalogWorker(prices, catalog, config.Catalog.RefreshInterval)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	g, gctx := errgroup.WithContext(ctx)
	catalogWorker.Start(gctx)

	g.Go(func() error {
		// остановка сервера завершает и admin API
		defer cancel()
		return srv.Serve(gctx)
	})

	if config.Server.AdminAddr != "" {
		admin := &http.Server{
			Addr:    config.Server.AdminAddr,
			Handler: router.NewRouter(catalog, srv).HandleRouter(),
		}
		g.Go(func() error {
			logger.Info("Starting admin API on", config.Server.AdminAddr)
			if err := admin.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		})
		g.Go(func() error {
			<-gctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			return admin.Shutdown(shutdownCtx)
		})
	}

	runErr := g.Wait()
	logger.Info("Shutdown server")
	catalogWorker.Stop()

	closeCtx, closeCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer closeCancel()
	if err := accounts.Close(closeCtx); err != nil {
		logger.Error("error closing accounts storage", err)
		runErr = errors.Join(runErr, err)
	}
	logger.Info("Server stopped")
	return runErr
}
