package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/lovenest/storefront/api/controllers"
	"github.com/lovenest/storefront/api/middleware"
	"github.com/lovenest/storefront/internal/catalog"
	"github.com/lovenest/storefront/internal/checkout"
	"github.com/lovenest/storefront/pkg/config"
	"github.com/lovenest/storefront/pkg/logger"
	"github.com/lovenest/storefront/pkg/metrics"
)

// SessionStores is what the router needs from the session manager.
type SessionStores interface {
	controllers.SessionStores
	controllers.Pinger
}

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	gatherer prometheus.Gatherer,
	httpMetrics *metrics.HTTPMetrics,
	cat *catalog.Catalog,
	stores SessionStores,
	checkoutService checkout.Service,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(httpMetrics),
		middleware.CORS(cfg.App.CORSOrigins),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, stores, logg))
	})

	if gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/categories", controllers.CategoryList())

		r.Route("/products", func(r chi.Router) {
			r.Get("/", controllers.ProductList(cat, logg))
			r.Get("/best-sellers", controllers.ProductBestSellers(cat))
			r.Get("/deals", controllers.ProductDeals(cat))
			r.Get("/{productId}", controllers.ProductGet(cat, logg))
			r.Get("/{productId}/related", controllers.ProductRelated(cat, logg))
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.Session(cfg.Session, cfg.Snapshot.TTL, logg))

			r.Route("/cart", func(r chi.Router) {
				r.Get("/", controllers.CartGet(stores, logg))
				r.Delete("/", controllers.CartClear(stores, logg))
				r.Post("/items", controllers.CartAddItem(cat, stores, logg))
				r.Patch("/items/{productId}", controllers.CartUpdateItem(cat, stores, logg))
				r.Delete("/items/{productId}", controllers.CartRemoveItem(cat, stores, logg))
			})

			r.Route("/wishlist", func(r chi.Router) {
				r.Get("/", controllers.WishlistList(stores, logg))
				r.Post("/", controllers.WishlistAdd(cat, stores, logg))
				r.Get("/{productId}", controllers.WishlistContains(cat, stores, logg))
				r.Delete("/{productId}", controllers.WishlistRemove(cat, stores, logg))
			})

			r.Route("/checkout", func(r chi.Router) {
				r.Post("/quote", controllers.CheckoutQuote(checkoutService, stores, logg))
				r.Post("/steps/{step}", controllers.CheckoutStep(checkoutService, logg))
				r.Post("/orders", controllers.CheckoutPlaceOrder(checkoutService, stores, logg))
			})
		})
	})

	return r
}
