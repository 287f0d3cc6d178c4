package controllers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shashiranjanraj/vyapar/app/dto"
	"github.com/shashiranjanraj/vyapar/app/services"
	"github.com/shashiranjanraj/vyapar/pkg/apperr"
	"github.com/shashiranjanraj/vyapar/pkg/auth"
	"github.com/shashiranjanraj/vyapar/pkg/bind"
	"github.com/shashiranjanraj/vyapar/pkg/response"
)

// OrderController serves the /orders endpoints. All routes sit behind the
// auth middleware, so the user id is always present in the context.
type OrderController struct {
	service *services.OrderService
}

func NewOrderController(service *services.OrderService) *OrderController {
	return &OrderController{service: service}
}

type createOrderInput struct {
	Quantity int `json:"quantity" validate:"required,integer,gt=0"`
}

type updateOrderInput struct {
	Status string `json:"status" validate:"required,max=16"`
}

// Create opens an order for the caller.
func (c *OrderController) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFrom(r.Context())
	if !ok {
		response.Unauthorized(w)
		return
	}

	var body createOrderInput
	errs, err := bind.JSON(r, &body)
	if err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	order, err := c.service.Create(userID, body.Quantity)
	if err != nil {
		internalError(w, r, err)
		return
	}

	response.Success(w, dto.NewOrderResponse(order))
}

// List returns the caller's orders — never anyone else's.
func (c *OrderController) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFrom(r.Context())
	if !ok {
		response.Unauthorized(w)
		return
	}

	orders, err := c.service.ListForUser(userID)
	if err != nil {
		internalError(w, r, err)
		return
	}

	response.Success(w, dto.NewOrderResponses(orders))
}

// Update mutates an order's status. Check order is fixed: existence (404),
// then ownership (403), then payload (400).
func (c *OrderController) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFrom(r.Context())
	if !ok {
		response.Unauthorized(w)
		return
	}

	id, ok := parseID(chi.URLParam(r, "id"))
	if !ok {
		response.NotFound(w)
		return
	}

	order, err := c.service.FindOwned(id, userID)
	if err != nil {
		c.writeOwnershipError(w, r, err)
		return
	}

	var body updateOrderInput
	errs, err := bind.JSON(r, &body)
	if err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	if err := c.service.UpdateStatus(&order, body.Status); err != nil {
		internalError(w, r, err)
		return
	}

	response.Success(w, dto.NewOrderResponse(order))
}

// Delete removes an order. Same precedence as Update, minus the payload.
func (c *OrderController) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFrom(r.Context())
	if !ok {
		response.Unauthorized(w)
		return
	}

	id, ok := parseID(chi.URLParam(r, "id"))
	if !ok {
		response.NotFound(w)
		return
	}

	order, err := c.service.FindOwned(id, userID)
	if err != nil {
		c.writeOwnershipError(w, r, err)
		return
	}

	if err := c.service.Delete(&order); err != nil {
		internalError(w, r, err)
		return
	}

	response.NoContent(w)
}

func (c *OrderController) writeOwnershipError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, apperr.ErrNotFound):
		response.NotFound(w)
	case errors.Is(err, apperr.ErrForbidden):
		response.Forbidden(w)
	default:
		internalError(w, r, err)
	}
}
