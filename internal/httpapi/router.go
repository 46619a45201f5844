package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/welitoonl/tamagochi-pos/internal/auth"
	"github.com/welitoonl/tamagochi-pos/internal/cart"
	"github.com/welitoonl/tamagochi-pos/internal/catalog"
	"github.com/welitoonl/tamagochi-pos/internal/checkout"
)

// Deps carries everything the router wires together.
type Deps struct {
	Authenticator  *auth.Authenticator
	Sessions       *auth.SessionStore
	Lookup         *catalog.Lookup
	Carts          *cart.Manager
	Checkout       *checkout.Service
	RequestTimeout time.Duration
}

// NewRouter builds the HTTP surface of the terminal.
func NewRouter(deps Deps) http.Handler {
	authHandler := NewAuthHandler(deps.Authenticator, deps.Sessions)
	catalogHandler := NewCatalogHandler(deps.Lookup)
	cartHandler := NewCartHandler(deps.Carts, deps.Lookup)
	checkoutHandler := NewCheckoutHandler(deps.Carts, deps.Checkout)

	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestIDMiddleware)
	r.Use(middleware.Timeout(deps.RequestTimeout))
	r.Use(middleware.Compress(5))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/auth/login", authHandler.Login)

		r.Group(func(r chi.Router) {
			r.Use(AuthMiddleware(deps.Sessions))

			r.Post("/auth/logout", authHandler.Logout)

			r.Route("/products", func(r chi.Router) {
				r.Get("/", catalogHandler.Search)
				r.Get("/code/{code}", catalogHandler.FindByCode)
			})

			r.Route("/cart", func(r chi.Router) {
				r.Get("/", cartHandler.GetCart)
				r.Delete("/", cartHandler.ClearCart)
				r.Post("/items", cartHandler.AddItem)
				r.Put("/items/{product_id}", cartHandler.UpdateQuantity)
				r.Delete("/items/{product_id}", cartHandler.RemoveItem)
				r.Put("/payment-method", cartHandler.SetPaymentMethod)
				r.Put("/online", cartHandler.SetOnline)
				r.Post("/sync", cartHandler.MarkSynced)
			})

			r.Post("/checkout", checkoutHandler.Finalize)
			r.Get("/sales", checkoutHandler.ListSales)
		})
	})

	return r
}
