package services

import (
	"errors"

	"github.com/shashiranjanraj/vyapar/app/models"
	"github.com/shashiranjanraj/vyapar/app/repositories"
	"github.com/shashiranjanraj/vyapar/pkg/apperr"
	"github.com/shashiranjanraj/vyapar/pkg/event"
	"gorm.io/gorm"
)

// OrderService implements the per-user order operations. Every mutation
// takes the acting user id resolved by the auth middleware; ownership is
// checked here, before any write.
type OrderService struct {
	orders *repositories.OrderRepository
}

func NewOrderService(orders *repositories.OrderRepository) *OrderService {
	return &OrderService{orders: orders}
}

// Create opens a new order for userID.
func (s *OrderService) Create(userID uint, quantity int) (models.Order, error) {
	order := models.Order{
		Quantity: quantity,
		Status:   models.StatusOpen,
		UserID:   userID,
	}

	if err := s.orders.Create(&order); err != nil {
		return models.Order{}, err
	}

	event.Fire(EventOrderCreated, OrderEvent{OrderID: order.ID, UserID: userID, Status: order.Status})
	return order, nil
}

// ListForUser returns the orders owned by userID.
func (s *OrderService) ListForUser(userID uint) ([]models.Order, error) {
	return s.orders.ListByUser(userID)
}

// FindOwned fetches an order for mutation by userID. Existence is checked
// before ownership: a missing order is ErrNotFound regardless of caller,
// an order owned by someone else is ErrForbidden.
func (s *OrderService) FindOwned(id, userID uint) (models.Order, error) {
	order, err := s.orders.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Order{}, apperr.ErrNotFound
		}
		return models.Order{}, err
	}

	if order.UserID != userID {
		return models.Order{}, apperr.ErrForbidden
	}

	return order, nil
}

// UpdateStatus sets the order's status. The caller must have obtained the
// order through FindOwned.
func (s *OrderService) UpdateStatus(order *models.Order, status string) error {
	order.Status = status
	if err := s.orders.Save(order); err != nil {
		return err
	}

	event.Fire(EventOrderUpdated, OrderEvent{OrderID: order.ID, UserID: order.UserID, Status: order.Status})
	return nil
}

// Delete removes the order. The caller must have obtained it through
// FindOwned.
func (s *OrderService) Delete(order *models.Order) error {
	if err := s.orders.Delete(order); err != nil {
		return err
	}

	event.Fire(EventOrderDeleted, OrderEvent{OrderID: order.ID, UserID: order.UserID, Status: order.Status})
	return nil
}
