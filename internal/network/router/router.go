package router

import (
	"github.com/denmor86/ya-cryptowallet/internal/network/handlers"
	"github.com/denmor86/ya-cryptowallet/internal/network/middleware"
	"github.com/go-chi/chi/v5"
)

// Router - маршруты admin API, только чтение
type Router struct {
	Catalog handlers.CatalogReader
	Stats   handlers.StatsProvider
}

func NewRouter(catalog handlers.CatalogReader, stats handlers.StatsProvider) *Router {
	return &Router{
		Catalog: catalog,
		Stats:   stats,
	}
}

func (router *Router) HandleRouter() chi.Router {
	r := chi.NewRouter()
	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.LogHandle)
		r.Get("/health", handlers.HealthHandler(router.Stats, router.Catalog))
		r.Route("/cryptos", func(r chi.Router) {
			r.Get("/", handlers.ListCryptosHandler(router.Catalog))
			r.Get("/{code}", handlers.GetCryptoHandler(router.Catalog))
		})
	})
	return r
}
