package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mnmarket/marketlink-backend/api/controllers"
	"github.com/mnmarket/marketlink-backend/api/middleware"
	"github.com/mnmarket/marketlink-backend/internal/catalog"
	"github.com/mnmarket/marketlink-backend/internal/customers"
	"github.com/mnmarket/marketlink-backend/internal/orders"
	"github.com/mnmarket/marketlink-backend/internal/pickup"
	"github.com/mnmarket/marketlink-backend/internal/session"
	"github.com/mnmarket/marketlink-backend/pkg/config"
	"github.com/mnmarket/marketlink-backend/pkg/db"
	"github.com/mnmarket/marketlink-backend/pkg/logger"
	"github.com/mnmarket/marketlink-backend/pkg/redis"
)

// Deps carries everything the router wires into handlers.
type Deps struct {
	Config    *config.Config
	Logger    *logger.Logger
	DBPinger  db.Pinger
	Redis     redis.Pinger
	Sessions  *session.Store
	Catalog   *catalog.Service
	Directory *customers.Directory
	Ledger    orders.Ledger
	Policy    *pickup.Policy
	Registry  *prometheus.Registry
}

func NewRouter(deps Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(deps.Logger),
		middleware.RequestID(deps.Logger),
		middleware.Logging(deps.Logger),
		middleware.CORS(),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(deps.Config))
		r.Get("/ready", controllers.HealthReady(deps.Config, deps.Logger, deps.DBPinger, deps.Redis))
	})

	if deps.Registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/markets", controllers.MarketsList(deps.Catalog, deps.Logger))
		r.Get("/markets/{marketID}/vendors", controllers.MarketVendors(deps.Catalog, deps.Logger))
		r.Get("/vendors/{vendorID}/products", controllers.VendorProducts(deps.Catalog, deps.Logger))
		r.Get("/products/search", controllers.ProductSearch(deps.Catalog, deps.Logger))
		r.Get("/pickup-slots", controllers.PickupSlots(deps.Policy))

		r.Group(func(r chi.Router) {
			r.Use(middleware.Session(deps.Sessions, deps.Config.Session.CookieName, deps.Logger))

			r.Get("/cart", controllers.CartFetch(deps.Logger))
			r.Post("/cart/items", controllers.CartAddItem(deps.Catalog, deps.Sessions, deps.Logger))
			r.Delete("/cart", controllers.CartClear(deps.Sessions, deps.Logger))

			r.Post("/checkout", controllers.Checkout(deps.Directory, deps.Ledger, deps.Policy, deps.Sessions, deps.Logger))

			r.Get("/orders", controllers.OrdersList(deps.Ledger, deps.Logger))
			r.Get("/orders/{orderID}/items", controllers.OrderItems(deps.Ledger, deps.Logger))
			r.Patch("/orders/{orderID}/pickup-time", controllers.OrderAmendPickup(deps.Ledger, deps.Logger))
		})
	})

	return r
}
