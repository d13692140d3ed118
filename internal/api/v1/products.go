// Package v1 keeps the first API generation alive for existing clients.
// It exposes the products catalog read-only; all mutations moved to v2.
package v1

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/grocerhub/grocer-api/internal/api/shared"
	"github.com/grocerhub/grocer-api/internal/httperr"
	"github.com/grocerhub/grocer-api/internal/store"
)

const skuParam = "/{sku:[A-Z]{2}-[0-9]{4}-[0-9]{2}}"

// ProductHandler serves the v1 read-only products resource.
type ProductHandler struct {
	products store.ProductStore
	errs     *shared.ErrorHandler
}

// NewProductHandler creates a ProductHandler.
func NewProductHandler(products store.ProductStore, errs *shared.ErrorHandler) *ProductHandler {
	return &ProductHandler{products: products, errs: errs}
}

// Routes mounts the product endpoints relative to the resource root.
func (h *ProductHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.NotFound(h.errs.NotFoundHandler())
	r.MethodNotAllowed(h.errs.MethodNotAllowedHandler())

	r.Get("/", h.errs.Wrap(h.List))
	r.Get(skuParam, h.errs.Wrap(h.Get))
	return r
}

// List returns all products.
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) error {
	products, err := h.products.List(r.Context())
	if err != nil {
		return err
	}

	shared.Success(w, r).
		WithCode("RESOURCE_RETRIEVED").
		Send(products)
	return nil
}

// Get returns a single product by SKU.
func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) error {
	sku := chi.URLParam(r, "sku")

	product, err := h.products.GetBySKU(r.Context(), sku)
	if err != nil {
		if store.IsNotFound(err) {
			return httperr.NotFound("Product with SKU %s not found.", sku).
				WithCode("RESOURCE_NOT_FOUND").
				WithDetails("Please check the SKU and try again.")
		}
		return err
	}

	shared.Success(w, r).
		WithCode("RESOURCE_RETRIEVED").
		Send(product)
	return nil
}
