package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// CartLine is one pending item selection in a user's cart. UnitPrice and
// Price are computed on the server; clients never supply them. At most one
// line exists per (user, menu item) pair; re-adding the same item folds
// into the existing line.
type CartLine struct {
	ID         uint            `json:"id" gorm:"primaryKey"`
	UserID     uint            `json:"user_id" gorm:"not null;uniqueIndex:idx_cart_user_item"`
	MenuItemID uint            `json:"menuitem_id" gorm:"not null;uniqueIndex:idx_cart_user_item"`
	MenuItem   MenuItem        `json:"menuitem,omitempty" gorm:"foreignKey:MenuItemID"`
	Quantity   int             `json:"quantity" gorm:"not null"`
	UnitPrice  decimal.Decimal `json:"unit_price" gorm:"type:decimal(10,2);not null"`
	Price      decimal.Decimal `json:"price" gorm:"type:decimal(10,2);not null"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}
