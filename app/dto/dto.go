// Package dto defines the response payloads and the explicit mapping from
// models. Only allow-listed fields leave the service; in particular the
// password hash never appears in a response.
package dto

import (
	"github.com/shashiranjanraj/vyapar/app/models"
	"github.com/shashiranjanraj/vyapar/pkg/collection"
)

// OrderResponse is the wire shape of an order.
type OrderResponse struct {
	ID       uint   `json:"id"`
	Quantity int    `json:"quantity"`
	Status   string `json:"status"`
}

// UserResponse is the wire shape of a user, including their orders.
type UserResponse struct {
	ID       uint            `json:"id"`
	Username string          `json:"username"`
	Orders   []OrderResponse `json:"orders"`
}

// NewOrderResponse maps a model to its response shape.
func NewOrderResponse(o models.Order) OrderResponse {
	return OrderResponse{ID: o.ID, Quantity: o.Quantity, Status: o.Status}
}

// NewOrderResponses maps a slice of orders. Always returns a non-nil slice
// so an empty list serialises as [] rather than null.
func NewOrderResponses(orders []models.Order) []OrderResponse {
	return collection.Map(orders, NewOrderResponse)
}

// NewUserResponse maps a user and their orders to the response shape.
func NewUserResponse(u models.User, orders []models.Order) UserResponse {
	return UserResponse{
		ID:       u.ID,
		Username: u.Username,
		Orders:   NewOrderResponses(orders),
	}
}
