package repositories

import (
	"time"

	"github.com/shashiranjanraj/vyapar/app/models"
	"github.com/shashiranjanraj/vyapar/pkg/metrics"
	"gorm.io/gorm"
)

// OrderRepository handles database operations for Order.
type OrderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

// Create persists a new order.
func (r *OrderRepository) Create(order *models.Order) error {
	defer metrics.ObserveDBQuery("insert", time.Now())
	return r.db.Create(order).Error
}

// FindByID looks up an order by primary key.
func (r *OrderRepository) FindByID(id uint) (models.Order, error) {
	defer metrics.ObserveDBQuery("select", time.Now())

	var order models.Order
	err := r.db.First(&order, id).Error
	return order, err
}

// ListByUser returns all orders owned by the given user.
func (r *OrderRepository) ListByUser(userID uint) ([]models.Order, error) {
	defer metrics.ObserveDBQuery("select", time.Now())

	var orders []models.Order
	err := r.db.Where("user_id = ?", userID).Order("id").Find(&orders).Error
	return orders, err
}

// Save persists changes to an existing order.
func (r *OrderRepository) Save(order *models.Order) error {
	defer metrics.ObserveDBQuery("update", time.Now())
	return r.db.Save(order).Error
}

// Delete removes an order.
func (r *OrderRepository) Delete(order *models.Order) error {
	defer metrics.ObserveDBQuery("delete", time.Now())
	return r.db.Delete(order).Error
}
