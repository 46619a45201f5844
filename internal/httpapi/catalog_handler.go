package httpapi

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/welitoonl/tamagochi-pos/internal/catalog"
)

type CatalogHandler struct {
	lookup *catalog.Lookup
}

func NewCatalogHandler(lookup *catalog.Lookup) *CatalogHandler {
	return &CatalogHandler{lookup: lookup}
}

// Search matches active products by name, SKU or barcode. An empty q
// returns the whole active catalog, which the cashier screen shows before
// any input.
func (h *CatalogHandler) Search(w http.ResponseWriter, r *http.Request) {
	products, err := h.lookup.Search(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to search catalog")
		return
	}
	respondJSON(w, http.StatusOK, products)
}

// FindByCode resolves a scanned barcode or EAN. The front end falls back to
// Search on a 404.
func (h *CatalogHandler) FindByCode(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")

	product, err := h.lookup.FindByCode(r.Context(), code)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			respondError(w, http.StatusNotFound, "not_found", "no product matches this code")
			return
		}
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to resolve code")
		return
	}
	respondJSON(w, http.StatusOK, product)
}
