// Package v2 contains the current generation of resource handler sets.
// Handlers return errors instead of writing error responses; the global
// error handler shapes everything that goes wrong.
package v2

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/grocerhub/grocer-api/internal/api/middleware"
	"github.com/grocerhub/grocer-api/internal/api/shared"
	"github.com/grocerhub/grocer-api/internal/domain"
	"github.com/grocerhub/grocer-api/internal/httperr"
	"github.com/grocerhub/grocer-api/internal/store"
)

// skuParam is the chi pattern for SKU path parameters; requests with a
// malformed SKU never reach a handler.
const skuParam = "/{sku:[A-Z]{2}-[0-9]{4}-[0-9]{2}}"

// ProductHandler serves the v2 products resource.
type ProductHandler struct {
	products store.ProductStore
	errs     *shared.ErrorHandler
	auth     *middleware.AuthMiddleware
}

// NewProductHandler creates a ProductHandler.
func NewProductHandler(products store.ProductStore, errs *shared.ErrorHandler, auth *middleware.AuthMiddleware) *ProductHandler {
	return &ProductHandler{products: products, errs: errs, auth: auth}
}

// Routes mounts the product endpoints relative to the resource root.
func (h *ProductHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.NotFound(h.errs.NotFoundHandler())
	r.MethodNotAllowed(h.errs.MethodNotAllowedHandler())

	r.Get("/", h.errs.Wrap(h.List))
	r.With(h.auth.Authenticate).Post("/", h.errs.Wrap(h.Create))
	r.Get(skuParam, h.errs.Wrap(h.Get))
	r.Put(skuParam, h.errs.Wrap(h.Replace))
	r.Patch(skuParam, h.errs.Wrap(h.Update))
	r.Delete(skuParam, h.errs.Wrap(h.Delete))
	return r
}

// List returns all products.
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) error {
	products, err := h.products.List(r.Context())
	if err != nil {
		return httperr.Internal("Products could not be retrieved.").
			WithCode("RESOURCE_NOT_RETRIEVED").
			WithDetails("Please try again.").
			Wrap(err)
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
			return productNotFound(r, sku)
		}
		return err
	}

	shared.Success(w, r).
		WithCode("RESOURCE_RETRIEVED").
		WithDocsURL(docs(r, "products", "retrieve-a-product")).
		Send(product)
	return nil
}

// Create adds a new product. Requires authentication.
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) error {
	docsURL := docs(r, "products", "add-a-new-product")

	var product domain.Product
	if err := shared.DecodeJSON(r, &product); err != nil {
		return err
	}

	if fieldErrs := product.Validate(); fieldErrs != nil {
		return httperr.UnprocessableEntity("Product validation failed.").
			WithCode("VALIDATION_ERROR").
			WithDetails(fieldErrs).
			WithDocsURL(docsURL)
	}

	if err := h.products.Create(r.Context(), &product); err != nil {
		if errors.Is(err, store.ErrSKUExists) {
			return httperr.Conflict("Product with SKU already exists.").
				WithCode("RESOURCE_ALREADY_EXISTS").
				WithDetails("Please change the SKU and try again, or update the existing product.").
				WithDocsURL(docsURL)
		}
		return httperr.Internal("Product could not be saved.").
			WithCode("RESOURCE_NOT_CREATED").
			WithDetails("Please try again.").
			WithDocsURL(docsURL).
			Wrap(err)
	}

	shared.Success(w, r).
		WithStatusCode(http.StatusCreated).
		WithCode("RESOURCE_CREATED").
		WithDocsURL(docsURL).
		WithLocation(shared.OriginalPath(r) + "/" + product.SKU).
		Send(map[string]any{
			"message": "The product has been successfully created.",
			"product": product,
		})
	return nil
}

// Replace overwrites a product by SKU.
func (h *ProductHandler) Replace(w http.ResponseWriter, r *http.Request) error {
	sku := chi.URLParam(r, "sku")
	docsURL := docs(r, "products", "replace-a-product")

	var product domain.Product
	if err := shared.DecodeJSON(r, &product); err != nil {
		return err
	}
	product.SKU = sku

	if fieldErrs := product.Validate(); fieldErrs != nil {
		return httperr.UnprocessableEntity("Product could not be replaced, due to validation errors.").
			WithCode("VALIDATION_ERROR").
			WithDetails(fieldErrs).
			WithDocsURL(docsURL)
	}

	replaced, err := h.products.Replace(r.Context(), &product)
	if err != nil {
		if store.IsNotFound(err) {
			return productNotFound(r, sku)
		}
		return err
	}

	shared.Success(w, r).
		WithCode("RESOURCE_REPLACED").
		WithDocsURL(docsURL).
		Send(map[string]any{
			"message": "The product has been successfully replaced.",
			"product": replaced,
		})
	return nil
}

// Update applies a partial update to a product by SKU. The SKU itself is
// immutable.
func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) error {
	sku := chi.URLParam(r, "sku")
	docsURL := docs(r, "products", "update-a-product")

	var raw struct {
		domain.ProductPatch
		SKU *string `json:"sku"`
	}
	if err := shared.DecodeJSON(r, &raw); err != nil {
		return err
	}

	if raw.SKU != nil && *raw.SKU != sku {
		return httperr.BadRequest("SKU cannot be updated.").
			WithCode("UPDATE_NOT_ALLOWED").
			WithDetails("Please remove the SKU field and try again.").
			WithDocsURL(docsURL)
	}

	patch := raw.ProductPatch
	if patch.Empty() {
		return httperr.UnprocessableEntity("No fields provided for update.").
			WithCode("UPDATE_FIELDS_REQUIRED").
			WithDetails("Please provide fields to update.").
			WithDocsURL(docsURL)
	}

	if fieldErrs := domain.Validate(&patch); fieldErrs != nil {
		return httperr.UnprocessableEntity("Product could not be updated, due to validation errors.").
			WithCode("VALIDATION_ERROR").
			WithDetails(fieldErrs).
			WithDocsURL(docsURL)
	}

	updated, err := h.products.Update(r.Context(), sku, patch)
	if err != nil {
		if store.IsNotFound(err) {
			return productNotFound(r, sku)
		}
		return err
	}

	shared.Success(w, r).
		WithCode("RESOURCE_UPDATED").
		WithDocsURL(docsURL).
		Send(map[string]any{
			"message": "The product has been successfully updated.",
			"product": updated,
		})
	return nil
}

// Delete removes a product by SKU.
func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) error {
	sku := chi.URLParam(r, "sku")

	deleted, err := h.products.Delete(r.Context(), sku)
	if err != nil {
		if store.IsNotFound(err) {
			return productNotFound(r, sku)
		}
		return err
	}

	shared.Success(w, r).
		WithCode("RESOURCE_DELETED").
		WithDocsURL(docs(r, "products", "remove-a-product")).
		Send(map[string]any{
			"message": "The product has been successfully deleted.",
			"product": deleted,
		})
	return nil
}

func productNotFound(r *http.Request, sku string) error {
	return httperr.NotFound("Product with SKU %s not found.", sku).
		WithCode("RESOURCE_NOT_FOUND").
		WithDetails("Please check the SKU and try again.").
		WithDocsURL(docs(r, "products", "retrieve-a-product"))
}

// docs builds a resource documentation anchor from the request's docs
// resolver.
func docs(r *http.Request, resource, anchor string) string {
	return shared.GetDocsResolver(r.Context()).Anchor(resource, anchor)
}
