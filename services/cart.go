package services

import (
	"errors"

	"little-lemon-api/models"
	"little-lemon-api/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CartService manages the caller's own cart lines. The owning user always
// comes from the authenticated identity, never from the request body.
type CartService struct {
	lines repository.CartRepository
	items repository.MenuItemRepository
}

func NewCartService(lines repository.CartRepository, items repository.MenuItemRepository) *CartService {
	return &CartService{lines: lines, items: items}
}

// List returns the caller's lines and their subtotal.
func (s *CartService) List(userID uint) ([]models.CartLine, decimal.Decimal, error) {
	lines, err := s.lines.ListByUser(userID)
	if err != nil {
		return nil, decimal.Zero, err
	}
	subtotal := decimal.Zero
	for _, l := range lines {
		subtotal = subtotal.Add(l.Price)
	}
	return lines, subtotal, nil
}

// Add puts quantity units of the menu item in the caller's cart. UnitPrice
// is taken from the menu item at first add; re-adding the same item folds
// into the existing line and recomputes its price.
func (s *CartService) Add(userID, menuItemID uint, quantity int) (*models.CartLine, error) {
	if quantity < 1 {
		return nil, invalidf("quantity", "must be at least 1")
	}
	item, err := s.items.ByID(menuItemID)
	if err != nil {
		return nil, invalidOrStoreErr(err, "menuitem_id", "unknown menu item")
	}

	line, err := s.lines.ByUserAndItem(userID, menuItemID)
	switch {
	case err == nil:
		line.Quantity += quantity
	case errors.Is(err, gorm.ErrRecordNotFound):
		line = &models.CartLine{
			UserID:     userID,
			MenuItemID: item.ID,
			Quantity:   quantity,
			UnitPrice:  item.Price,
		}
	default:
		return nil, err
	}
	line.Price = line.UnitPrice.Mul(decimal.NewFromInt(int64(line.Quantity)))

	if err := s.lines.Save(line); err != nil {
		return nil, err
	}
	return line, nil
}

// Flush drops every line the caller owns. Flushing an empty cart succeeds.
func (s *CartService) Flush(userID uint) (int64, error) {
	return s.lines.FlushUser(userID)
}
