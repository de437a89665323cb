package repository

import (
	"little-lemon-api/models"

	"gorm.io/gorm"
)

// OrderFilter is the visibility scope plus the optional status filter.
// Nil pointer fields mean "no constraint".
type OrderFilter struct {
	UserID         *uint
	DeliveryCrewID *uint
	Status         models.OrderStatus
}

type OrderRepository interface {
	List(f OrderFilter) ([]models.Order, error)
	ByID(id uint) (*models.Order, error)
	Create(o *models.Order) error
	UpdateFields(orderID uint, fields map[string]any) error
	// Delete removes the order and all of its items.
	Delete(orderID uint) error
	WithTx(tx *gorm.DB) OrderRepository
}

type orderRepository struct{ db *gorm.DB }

func NewOrderRepository(db *gorm.DB) OrderRepository { return &orderRepository{db: db} }

func (r *orderRepository) WithTx(tx *gorm.DB) OrderRepository { return &orderRepository{db: tx} }

func (r *orderRepository) List(f OrderFilter) ([]models.Order, error) {
	query := r.db.Preload("Items.MenuItem").Preload("DeliveryCrew")
	if f.UserID != nil {
		query = query.Where("user_id = ?", *f.UserID)
	}
	if f.DeliveryCrewID != nil {
		query = query.Where("delivery_crew_id = ?", *f.DeliveryCrewID)
	}
	if f.Status != "" {
		query = query.Where("status = ?", f.Status)
	}

	var orders []models.Order
	err := query.Order("date desc").Find(&orders).Error
	return orders, err
}

func (r *orderRepository) ByID(id uint) (*models.Order, error) {
	var o models.Order
	err := r.db.Preload("Items.MenuItem").Preload("DeliveryCrew").First(&o, id).Error
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *orderRepository) Create(o *models.Order) error {
	return r.db.Create(o).Error
}

func (r *orderRepository) UpdateFields(orderID uint, fields map[string]any) error {
	return r.db.Model(&models.Order{ID: orderID}).Updates(fields).Error
}

func (r *orderRepository) Delete(orderID uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_id = ?", orderID).Delete(&models.OrderItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Order{}, orderID).Error
	})
}
