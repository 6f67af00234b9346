package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/fjod/go_cart/storefront/internal/catalog"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/sessions"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

type RouterDeps struct {
	Catalog        catalog.Catalog
	Visitors       VisitorSource
	Sessions       sessions.Store
	Log            *slog.Logger
	RequestTimeout time.Duration
}

const defaultRequestTimeout = 10 * time.Second

func NewRouter(deps RouterDeps) http.Handler {
	if deps.RequestTimeout == 0 {
		deps.RequestTimeout = defaultRequestTimeout
	}
	if deps.Log == nil {
		deps.Log = slog.Default()
	}

	catalogHandler := NewCatalogHandler(deps.Catalog, deps.RequestTimeout)
	cartHandler := NewCartHandler(deps.Visitors, deps.Catalog, deps.RequestTimeout, deps.Log)
	sessionHandler := NewSessionHandler(deps.Visitors, deps.Log)

	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(RequestIDMiddleware)
	r.Use(RequestLogger(deps.Log))
	r.Use(middleware.Timeout(deps.RequestTimeout))
	r.Use(middleware.Compress(5))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/products", catalogHandler.ListProducts)
		r.Get("/products/{slug}", catalogHandler.GetProduct)

		r.Group(func(r chi.Router) {
			r.Use(VisitorMiddleware(deps.Sessions, deps.Log))

			r.Route("/cart", func(r chi.Router) {
				r.Get("/", cartHandler.GetCart)
				r.Delete("/", cartHandler.ClearCart)
				r.Delete("/snapshot", cartHandler.WipeCart)
				r.Post("/items", cartHandler.AddItem)
				r.Put("/items/{item_id}", cartHandler.UpdateQuantity)
				r.Delete("/items/{item_id}", cartHandler.RemoveItem)
				r.Post("/toggle", cartHandler.ToggleCart)
				r.Post("/open", cartHandler.OpenCart)
				r.Post("/close", cartHandler.CloseCart)
			})

			r.Route("/session", func(r chi.Router) {
				r.Get("/", sessionHandler.GetSession)
				r.Post("/enter", sessionHandler.Enter)
				r.Post("/toast", sessionHandler.ShowToast)
				r.Delete("/toast", sessionHandler.HideToast)
				r.Post("/menu/{action}", sessionHandler.Menu)
				r.Put("/cursor", sessionHandler.SetCursor)
				r.Put("/loading", sessionHandler.SetLoading)
				r.Put("/color-revealed", sessionHandler.SetColorRevealed)
			})
		})
	})

	return otelhttp.NewHandler(r, "storefront")
}
