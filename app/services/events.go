package services

// Event names fired by the service layer.
const (
	EventUserRegistered = "user.registered"
	EventOrderCreated   = "order.created"
	EventOrderUpdated   = "order.updated"
	EventOrderDeleted   = "order.deleted"
)

// UserEvent is the payload for user lifecycle events.
type UserEvent struct {
	UserID   uint
	Username string
}

// OrderEvent is the payload for order lifecycle events.
type OrderEvent struct {
	OrderID uint
	UserID  uint
	Status  string
}
