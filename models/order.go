package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus is the order lifecycle. It moves one way: a pending order can
// be delivered, a delivered order stays delivered.
type OrderStatus string

const (
	StatusPending   OrderStatus = "pending"
	StatusDelivered OrderStatus = "delivered"
)

// ValidStatus reports whether s is a known order status.
func ValidStatus(s OrderStatus) bool {
	return s == StatusPending || s == StatusDelivered
}

type Order struct {
	ID             uint            `json:"id" gorm:"primaryKey"`
	UserID         uint            `json:"user_id" gorm:"not null;index"`
	User           User            `json:"user,omitempty" gorm:"foreignKey:UserID"`
	DeliveryCrewID *uint           `json:"delivery_crew_id" gorm:"index"`
	DeliveryCrew   *User           `json:"delivery_crew,omitempty" gorm:"foreignKey:DeliveryCrewID"`
	Status         OrderStatus     `json:"status" gorm:"not null;default:'pending'"`
	Total          decimal.Decimal `json:"total" gorm:"type:decimal(10,2);not null"`
	Date           time.Time       `json:"date" gorm:"not null"`
	Items          []OrderItem     `json:"items,omitempty" gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// OrderItem is an immutable snapshot of a cart line taken at order-creation
// time. Quantity, UnitPrice and Price are frozen then and never recomputed,
// even if the menu item's price later changes.
type OrderItem struct {
	ID         uint            `json:"id" gorm:"primaryKey"`
	OrderID    uint            `json:"order_id" gorm:"not null;index"`
	MenuItemID uint            `json:"menuitem_id" gorm:"not null"`
	MenuItem   MenuItem        `json:"menuitem,omitempty" gorm:"foreignKey:MenuItemID"`
	Quantity   int             `json:"quantity" gorm:"not null"`
	UnitPrice  decimal.Decimal `json:"unit_price" gorm:"type:decimal(10,2);not null"`
	Price      decimal.Decimal `json:"price" gorm:"type:decimal(10,2);not null"`
}
