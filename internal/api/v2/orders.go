package v2

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/grocerhub/grocer-api/internal/api/middleware"
	"github.com/grocerhub/grocer-api/internal/api/shared"
	"github.com/grocerhub/grocer-api/internal/domain"
	"github.com/grocerhub/grocer-api/internal/httperr"
	"github.com/grocerhub/grocer-api/internal/store"
)

const orderNoParam = "/{orderNo:[0-9]{4}}"

// OrderHandler serves the v2 orders resource. An order number groups one
// or more order lines, so single-order reads return a list.
type OrderHandler struct {
	orders store.OrderStore
	errs   *shared.ErrorHandler
	auth   *middleware.AuthMiddleware
}

// NewOrderHandler creates an OrderHandler.
func NewOrderHandler(orders store.OrderStore, errs *shared.ErrorHandler, auth *middleware.AuthMiddleware) *OrderHandler {
	return &OrderHandler{orders: orders, errs: errs, auth: auth}
}

// Routes mounts the order endpoints relative to the resource root.
// Mutations require authentication; reads are open.
func (h *OrderHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.NotFound(h.errs.NotFoundHandler())
	r.MethodNotAllowed(h.errs.MethodNotAllowedHandler())

	r.Get("/", h.errs.Wrap(h.List))
	r.Get(orderNoParam, h.errs.Wrap(h.Get))

	r.Group(func(r chi.Router) {
		r.Use(h.auth.Authenticate)
		r.Post("/", h.errs.Wrap(h.Create))
		r.Delete(orderNoParam, h.errs.Wrap(h.Delete))
	})
	return r
}

// List returns all order lines.
func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) error {
	orders, err := h.orders.List(r.Context())
	if err != nil {
		return err
	}

	shared.Success(w, r).
		WithCode("RESOURCE_RETRIEVED").
		Send(orders)
	return nil
}

// Get returns every line sharing the given order number.
func (h *OrderHandler) Get(w http.ResponseWriter, r *http.Request) error {
	orderNo, err := strconv.Atoi(chi.URLParam(r, "orderNo"))
	if err != nil {
		return httperr.NotFound("").WithCode("RESOURCE_NOT_FOUND")
	}

	orders, err := h.orders.GetByOrderNo(r.Context(), orderNo)
	if err != nil {
		if store.IsNotFound(err) {
			return orderNotFound(r, orderNo)
		}
		return err
	}

	shared.Success(w, r).
		WithCode("RESOURCE_RETRIEVED").
		WithDocsURL(docs(r, "orders", "retrieve-an-order")).
		Send(orders)
	return nil
}

// Create records a new order line.
func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) error {
	docsURL := docs(r, "orders", "place-a-new-order")

	var order domain.Order
	if err := shared.DecodeJSON(r, &order); err != nil {
		return err
	}

	if fieldErrs := order.Validate(); fieldErrs != nil {
		return httperr.UnprocessableEntity("Order validation failed.").
			WithCode("VALIDATION_ERROR").
			WithDetails(fieldErrs).
			WithDocsURL(docsURL)
	}

	if err := h.orders.Create(r.Context(), &order); err != nil {
		if store.IsDuplicate(err) {
			return httperr.Conflict("Order line for this order number and product already exists.").
				WithCode("RESOURCE_ALREADY_EXISTS").
				WithDetails("Please check the order number and product and try again.").
				WithDocsURL(docsURL)
		}
		return httperr.Internal("Order could not be saved.").
			WithCode("RESOURCE_NOT_CREATED").
			WithDetails("Please try again.").
			WithDocsURL(docsURL).
			Wrap(err)
	}

	shared.Success(w, r).
		WithStatusCode(http.StatusCreated).
		WithCode("RESOURCE_CREATED").
		WithDocsURL(docsURL).
		WithLocation(shared.OriginalPath(r) + "/" + strconv.Itoa(order.OrderNo)).
		Send(map[string]any{
			"message": "The order has been successfully placed.",
			"order":   order,
		})
	return nil
}

// Delete removes every line sharing the given order number.
func (h *OrderHandler) Delete(w http.ResponseWriter, r *http.Request) error {
	orderNo, err := strconv.Atoi(chi.URLParam(r, "orderNo"))
	if err != nil {
		return httperr.NotFound("").WithCode("RESOURCE_NOT_FOUND")
	}

	deleted, err := h.orders.DeleteByOrderNo(r.Context(), orderNo)
	if err != nil {
		if store.IsNotFound(err) {
			return orderNotFound(r, orderNo)
		}
		return err
	}

	shared.Success(w, r).
		WithCode("RESOURCE_DELETED").
		WithDocsURL(docs(r, "orders", "remove-an-order")).
		Send(map[string]any{
			"message":      "The order has been successfully deleted.",
			"deletedLines": deleted,
		})
	return nil
}

func orderNotFound(r *http.Request, orderNo int) error {
	return httperr.NotFound("Order with number %d not found.", orderNo).
		WithCode("RESOURCE_NOT_FOUND").
		WithDetails("Please check the order number and try again.").
		WithDocsURL(docs(r, "orders", "retrieve-an-order"))
}
