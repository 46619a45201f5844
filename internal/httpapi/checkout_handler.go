package httpapi

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/welitoonl/tamagochi-pos/internal/cart"
	"github.com/welitoonl/tamagochi-pos/internal/checkout"
)

type CheckoutHandler struct {
	sessions *cart.Manager
	service  *checkout.Service
}

func NewCheckoutHandler(sessions *cart.Manager, service *checkout.Service) *CheckoutHandler {
	return &CheckoutHandler{
		sessions: sessions,
		service:  service,
	}
}

// Finalize closes the current cart into a sale attributed to the logged-in
// operator. An empty cart is refused with 409 and nothing changes.
func (h *CheckoutHandler) Finalize(w http.ResponseWriter, r *http.Request) {
	operator, ok := operatorFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing operator")
		return
	}

	session := h.sessions.Session(terminalID(r, operator))
	sale, err := h.service.Finalize(r.Context(), session, operator)
	if err != nil {
		if errors.Is(err, checkout.ErrEmptyCart) {
			respondError(w, http.StatusConflict, "empty_cart", "cannot finalize an empty cart")
			return
		}
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to finalize sale")
		return
	}

	respondJSON(w, http.StatusCreated, sale)
}

func (h *CheckoutHandler) ListSales(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			respondError(w, http.StatusBadRequest, "invalid_limit", "limit must be a positive integer")
			return
		}
		limit = parsed
	}

	sales, err := h.service.Sales(r.Context(), limit)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to list sales")
		return
	}
	respondJSON(w, http.StatusOK, sales)
}
