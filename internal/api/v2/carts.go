package v2

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/grocerhub/grocer-api/internal/api/middleware"
	"github.com/grocerhub/grocer-api/internal/api/shared"
	"github.com/grocerhub/grocer-api/internal/domain"
	"github.com/grocerhub/grocer-api/internal/httperr"
	"github.com/grocerhub/grocer-api/internal/store"
)

const cartIDParam = "/{cartId:[0-9a-fA-F-]{36}}"

// CartHandler serves the v2 carts resource.
type CartHandler struct {
	carts store.CartStore
	errs  *shared.ErrorHandler
	auth  *middleware.AuthMiddleware
}

// NewCartHandler creates a CartHandler.
func NewCartHandler(carts store.CartStore, errs *shared.ErrorHandler, auth *middleware.AuthMiddleware) *CartHandler {
	return &CartHandler{carts: carts, errs: errs, auth: auth}
}

// Routes mounts the cart endpoints relative to the resource root.
func (h *CartHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.NotFound(h.errs.NotFoundHandler())
	r.MethodNotAllowed(h.errs.MethodNotAllowedHandler())

	r.Get("/", h.errs.Wrap(h.List))
	r.Post("/", h.errs.Wrap(h.Create))
	r.Get(cartIDParam, h.errs.Wrap(h.Get))
	r.Put(cartIDParam, h.errs.Wrap(h.Replace))
	r.Delete(cartIDParam, h.errs.Wrap(h.Delete))
	return r
}

// List returns all open carts.
func (h *CartHandler) List(w http.ResponseWriter, r *http.Request) error {
	carts, err := h.carts.List(r.Context())
	if err != nil {
		return err
	}

	shared.Success(w, r).
		WithCode("RESOURCE_RETRIEVED").
		Send(carts)
	return nil
}

// Get returns a single cart by its id.
func (h *CartHandler) Get(w http.ResponseWriter, r *http.Request) error {
	id := chi.URLParam(r, "cartId")

	cart, err := h.carts.Get(r.Context(), id)
	if err != nil {
		if store.IsNotFound(err) {
			return cartNotFound(r, id)
		}
		return err
	}

	shared.Success(w, r).
		WithCode("RESOURCE_RETRIEVED").
		WithDocsURL(docs(r, "carts", "retrieve-a-cart")).
		Send(cart)
	return nil
}

// cartRequest is the wire shape for creating or replacing a cart. The
// cart id is never client-supplied.
type cartRequest struct {
	CustomerNo int               `json:"customerNo"`
	Items      []domain.CartItem `json:"items"`
}

// Create opens a new cart with a server-generated id.
func (h *CartHandler) Create(w http.ResponseWriter, r *http.Request) error {
	docsURL := docs(r, "carts", "create-a-cart")

	var req cartRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		return err
	}

	cart := domain.Cart{
		ID:         uuid.NewString(),
		CustomerNo: req.CustomerNo,
		Items:      req.Items,
	}

	if fieldErrs := cart.Validate(); fieldErrs != nil {
		return httperr.UnprocessableEntity("Cart validation failed.").
			WithCode("VALIDATION_ERROR").
			WithDetails(fieldErrs).
			WithDocsURL(docsURL)
	}

	if err := h.carts.Create(r.Context(), &cart); err != nil {
		return httperr.Internal("Cart could not be saved.").
			WithCode("RESOURCE_NOT_CREATED").
			WithDetails("Please try again.").
			WithDocsURL(docsURL).
			Wrap(err)
	}

	shared.Success(w, r).
		WithStatusCode(http.StatusCreated).
		WithCode("RESOURCE_CREATED").
		WithDocsURL(docsURL).
		WithLocation(shared.OriginalPath(r) + "/" + cart.ID).
		Send(map[string]any{
			"message": "The cart has been successfully created.",
			"cart":    cart,
		})
	return nil
}

// Replace overwrites a cart's contents, keeping its id.
func (h *CartHandler) Replace(w http.ResponseWriter, r *http.Request) error {
	id := chi.URLParam(r, "cartId")
	docsURL := docs(r, "carts", "replace-a-cart")

	var req cartRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		return err
	}

	cart := domain.Cart{
		ID:         id,
		CustomerNo: req.CustomerNo,
		Items:      req.Items,
	}

	if fieldErrs := cart.Validate(); fieldErrs != nil {
		return httperr.UnprocessableEntity("Cart could not be replaced, due to validation errors.").
			WithCode("VALIDATION_ERROR").
			WithDetails(fieldErrs).
			WithDocsURL(docsURL)
	}

	replaced, err := h.carts.Replace(r.Context(), &cart)
	if err != nil {
		if store.IsNotFound(err) {
			return cartNotFound(r, id)
		}
		return err
	}

	shared.Success(w, r).
		WithCode("RESOURCE_REPLACED").
		WithDocsURL(docsURL).
		Send(map[string]any{
			"message": "The cart has been successfully replaced.",
			"cart":    replaced,
		})
	return nil
}

// Delete removes a cart by its id.
func (h *CartHandler) Delete(w http.ResponseWriter, r *http.Request) error {
	id := chi.URLParam(r, "cartId")

	deleted, err := h.carts.Delete(r.Context(), id)
	if err != nil {
		if store.IsNotFound(err) {
			return cartNotFound(r, id)
		}
		return err
	}

	shared.Success(w, r).
		WithCode("RESOURCE_DELETED").
		WithDocsURL(docs(r, "carts", "remove-a-cart")).
		Send(map[string]any{
			"message": "The cart has been successfully deleted.",
			"cart":    deleted,
		})
	return nil
}

func cartNotFound(r *http.Request, id string) error {
	return httperr.NotFound("Cart with id %s not found.", id).
		WithCode("RESOURCE_NOT_FOUND").
		WithDetails("Please check the cart id and try again.").
		WithDocsURL(docs(r, "carts", "retrieve-a-cart"))
}
