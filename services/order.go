package services

import (
	"time"

	"little-lemon-api/models"
	"little-lemon-api/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Requester is the authenticated identity plus its effective role, resolved
// fresh for the current request and threaded explicitly through every call.
type Requester struct {
	UserID uint
	Role   models.Role
}

// OrderPatch has nil for fields the caller did not send. Both fields are
// privileged: only managers may change them. A DeliveryCrewID of 0 clears
// the assignment.
type OrderPatch struct {
	Status         *models.OrderStatus
	DeliveryCrewID *uint
}

// OrderService converts carts into orders and governs who can see and
// mutate them afterwards.
type OrderService struct {
	db     *gorm.DB
	orders repository.OrderRepository
	lines  repository.CartRepository
	roles  *RoleResolver
}

func NewOrderService(db *gorm.DB, orders repository.OrderRepository, lines repository.CartRepository, roles *RoleResolver) *OrderService {
	return &OrderService{db: db, orders: orders, lines: lines, roles: roles}
}

// CreateFromCart converts the caller's cart into a pending order in one
// transaction: every line becomes an immutable OrderItem snapshot, the line
// prices sum into the total, and the cart is drained. A failure anywhere
// rolls the whole conversion back. An empty cart yields a zero-total order
// with no items.
func (s *OrderService) CreateFromCart(userID uint) (*models.Order, error) {
	var out *models.Order
	err := s.db.Transaction(func(tx *gorm.DB) error {
		lines := s.lines.WithTx(tx)
		orders := s.orders.WithTx(tx)

		cart, err := lines.ListByUser(userID)
		if err != nil {
			return err
		}

		order := &models.Order{
			UserID: userID,
			Status: models.StatusPending,
			Date:   time.Now().UTC(),
		}
		total := decimal.Zero
		for _, l := range cart {
			order.Items = append(order.Items, models.OrderItem{
				MenuItemID: l.MenuItemID,
				Quantity:   l.Quantity,
				UnitPrice:  l.UnitPrice,
				Price:      l.Price,
			})
			total = total.Add(l.Price)
		}
		order.Total = total

		if err := orders.Create(order); err != nil {
			return err
		}
		if _, err := lines.FlushUser(userID); err != nil {
			return err
		}
		out = order
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// List returns the orders inside the requester's visibility scope: managers
// see everything, delivery crew their assigned orders, everyone else their
// own. The optional status filter narrows the result.
func (s *OrderService) List(req Requester, status string) ([]models.Order, error) {
	f := repository.OrderFilter{}
	switch req.Role {
	case models.RoleManager:
		// unrestricted
	case models.RoleDeliveryCrew:
		f.DeliveryCrewID = &req.UserID
	default:
		f.UserID = &req.UserID
	}
	if status != "" {
		st := models.OrderStatus(status)
		if !models.ValidStatus(st) {
			return nil, invalidf("status", "must be pending or delivered")
		}
		f.Status = st
	}
	return s.orders.List(f)
}

// Get returns the order if it is inside the requester's visibility scope.
// A scope miss is NotFound, indistinguishable from true absence.
func (s *OrderService) Get(req Requester, orderID uint) (*models.Order, error) {
	order, err := s.orders.ByID(orderID)
	if err != nil {
		return nil, notFoundOr(err)
	}
	if !visible(req, order) {
		return nil, ErrNotFound
	}
	return order, nil
}

// Update applies the patch to an order in the requester's scope. Status and
// crew assignment are manager-only; the role is re-checked here so a
// non-manager cannot sneak either through PATCH past the route gate. An
// empty patch is a successful no-op.
func (s *OrderService) Update(req Requester, orderID uint, patch OrderPatch) (*models.Order, error) {
	order, err := s.Get(req, orderID)
	if err != nil {
		return nil, err
	}
	if patch.Status == nil && patch.DeliveryCrewID == nil {
		return order, nil
	}
	if req.Role != models.RoleManager {
		return nil, ErrForbidden
	}

	fields := map[string]any{}
	if patch.Status != nil {
		if !models.ValidStatus(*patch.Status) {
			return nil, invalidf("status", "must be pending or delivered")
		}
		if !validStatusTransition(order.Status, *patch.Status) {
			return nil, invalidf("status", "a delivered order cannot go back to pending")
		}
		fields["status"] = *patch.Status
	}
	if patch.DeliveryCrewID != nil {
		if *patch.DeliveryCrewID == 0 {
			fields["delivery_crew_id"] = nil
		} else {
			ok, err := s.roles.HasRole(*patch.DeliveryCrewID, models.RoleDeliveryCrew)
			if err != nil {
				return nil, err
			}
			if !ok {
				return nil, invalidf("delivery_crew_id", "user is not in the Delivery crew group")
			}
			fields["delivery_crew_id"] = *patch.DeliveryCrewID
		}
	}

	if err := s.orders.UpdateFields(order.ID, fields); err != nil {
		return nil, err
	}
	return s.orders.ByID(order.ID)
}

// Delete hard-deletes an order and its items. Manager only; the role is
// re-checked here in addition to the route gate.
func (s *OrderService) Delete(req Requester, orderID uint) error {
	if req.Role != models.RoleManager {
		return ErrForbidden
	}
	if _, err := s.orders.ByID(orderID); err != nil {
		return notFoundOr(err)
	}
	return s.orders.Delete(orderID)
}

func visible(req Requester, o *models.Order) bool {
	switch req.Role {
	case models.RoleManager:
		return true
	case models.RoleDeliveryCrew:
		return o.DeliveryCrewID != nil && *o.DeliveryCrewID == req.UserID
	default:
		return o.UserID == req.UserID
	}
}
