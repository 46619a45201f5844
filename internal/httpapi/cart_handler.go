package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/welitoonl/tamagochi-pos/internal/cart"
	"github.com/welitoonl/tamagochi-pos/internal/catalog"
	"github.com/welitoonl/tamagochi-pos/internal/domain"
)

type CartHandler struct {
	sessions *cart.Manager
	lookup   *catalog.Lookup
}

func NewCartHandler(sessions *cart.Manager, lookup *catalog.Lookup) *CartHandler {
	return &CartHandler{
		sessions: sessions,
		lookup:   lookup,
	}
}

type AddItemRequestDTO struct {
	Code string `json:"code"`
}

type UpdateQuantityRequestDTO struct {
	Quantity int `json:"quantity"`
}

type SetPaymentMethodRequestDTO struct {
	PaymentMethod domain.PaymentMethod `json:"payment_method"`
}

type SetOnlineRequestDTO struct {
	Online bool `json:"online"`
}

func (h *CartHandler) session(r *http.Request) (*cart.Session, bool) {
	operator, ok := operatorFromContext(r.Context())
	if !ok {
		return nil, false
	}
	return h.sessions.Session(terminalID(r, operator)), true
}

func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	session, ok := h.session(r)
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing operator")
		return
	}
	respondJSON(w, http.StatusOK, session.Snapshot())
}

// AddItem scans a code into the cart: the code resolves through the catalog
// and the product lands as a new line or bumps an existing one.
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	session, ok := h.session(r)
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing operator")
		return
	}

	var req AddItemRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.Code == "" {
		respondError(w, http.StatusBadRequest, "invalid_code", "code must not be empty")
		return
	}

	product, err := h.lookup.FindByCode(r.Context(), req.Code)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			respondError(w, http.StatusNotFound, "not_found", "no product matches this code")
			return
		}
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to resolve code")
		return
	}

	session.AddProduct(*product)
	respondJSON(w, http.StatusCreated, session.Snapshot())
}

// UpdateQuantity sets a line's quantity. Zero and negative values remove the
// line; an id not present in the cart changes nothing.
func (h *CartHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	session, ok := h.session(r)
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing operator")
		return
	}

	productID := chi.URLParam(r, "product_id")

	var req UpdateQuantityRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	session.SetQuantity(productID, req.Quantity)
	respondJSON(w, http.StatusOK, session.Snapshot())
}

func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	session, ok := h.session(r)
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing operator")
		return
	}

	session.RemoveProduct(chi.URLParam(r, "product_id"))
	respondJSON(w, http.StatusOK, session.Snapshot())
}

func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	session, ok := h.session(r)
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing operator")
		return
	}

	session.Clear()
	respondJSON(w, http.StatusOK, session.Snapshot())
}

func (h *CartHandler) SetPaymentMethod(w http.ResponseWriter, r *http.Request) {
	session, ok := h.session(r)
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing operator")
		return
	}

	var req SetPaymentMethodRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	if err := session.SetPaymentMethod(req.PaymentMethod); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_payment_method", "payment method must be DINHEIRO or CARTAO")
		return
	}
	respondJSON(w, http.StatusOK, session.Snapshot())
}

// SetOnline flips the informational connectivity flag shown in the header
// bar. No synchronization hangs off it.
func (h *CartHandler) SetOnline(w http.ResponseWriter, r *http.Request) {
	session, ok := h.session(r)
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing operator")
		return
	}

	var req SetOnlineRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	session.SetOnline(req.Online)
	respondJSON(w, http.StatusOK, session.Snapshot())
}

func (h *CartHandler) MarkSynced(w http.ResponseWriter, r *http.Request) {
	session, ok := h.session(r)
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing operator")
		return
	}

	session.MarkSynced()
	respondJSON(w, http.StatusOK, session.Snapshot())
}
