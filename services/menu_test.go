package services

import (
	"errors"
	"testing"

	"little-lemon-api/models"
	"little-lemon-api/repository"

	"gorm.io/gorm"
)

type menuFixture struct {
	db   *gorm.DB
	menu *MenuService
	cart *CartService
}

func newMenuFixture(t *testing.T) *menuFixture {
	t.Helper()
	db := newTestDB(t)
	categories := repository.NewCategoryRepository(db)
	items := repository.NewMenuItemRepository(db)
	carts := repository.NewCartRepository(db)
	return &menuFixture{
		db:   db,
		menu: NewMenuService(categories, items),
		cart: NewCartService(carts, items),
	}
}

func TestDeleteCategoryInUseRejected(t *testing.T) {
	f := newMenuFixture(t)
	cat, err := f.menu.CreateCategory(CategoryInput{Title: "Mains"})
	if err != nil {
		t.Fatalf("create category: %v", err)
	}
	item, err := f.menu.CreateItem(MenuItemInput{
		Title:      "Pasta",
		Price:      mustDecimal("7.00"),
		CategoryID: cat.ID,
	})
	if err != nil {
		t.Fatalf("create item: %v", err)
	}

	var verr *ValidationError
	if err := f.menu.DeleteCategory(cat.ID); !errors.As(err, &verr) {
		t.Fatalf("deleting a referenced category must be a validation error, got %v", err)
	}

	// both rows survive the refused delete
	if _, err := f.menu.GetCategory(cat.ID); err != nil {
		t.Errorf("category must still exist, got %v", err)
	}
	got, err := f.menu.GetItem(item.ID)
	if err != nil {
		t.Fatalf("get item: %v", err)
	}
	if got.CategoryID != cat.ID || got.Category.ID != cat.ID {
		t.Errorf("item category reference broken: category_id=%d preloaded id=%d", got.CategoryID, got.Category.ID)
	}

	// once nothing references it, the delete goes through
	if err := f.menu.DeleteItem(item.ID); err != nil {
		t.Fatalf("delete item: %v", err)
	}
	if err := f.menu.DeleteCategory(cat.ID); err != nil {
		t.Fatalf("delete unreferenced category: %v", err)
	}
	if _, err := f.menu.GetCategory(cat.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("deleted category must be gone, got %v", err)
	}
}

func TestDeleteMenuItemRemovesCartLines(t *testing.T) {
	f := newMenuFixture(t)
	item := createMenuItem(t, f.db, "Pizza", "8.00")
	keeper := createMenuItem(t, f.db, "Salad", "5.00")
	alice := createUser(t, f.db, "alice")
	bob := createUser(t, f.db, "bob")

	for _, u := range []*models.User{alice, bob} {
		if _, err := f.cart.Add(u.ID, item.ID, 1); err != nil {
			t.Fatalf("add for %s: %v", u.Username, err)
		}
	}
	if _, err := f.cart.Add(alice.ID, keeper.ID, 1); err != nil {
		t.Fatalf("add keeper: %v", err)
	}

	if err := f.menu.DeleteItem(item.ID); err != nil {
		t.Fatalf("delete item: %v", err)
	}

	// the deleted item vanished from every cart, other lines untouched
	lines, _, err := f.cart.List(alice.ID)
	if err != nil {
		t.Fatalf("list alice: %v", err)
	}
	if len(lines) != 1 || lines[0].MenuItemID != keeper.ID {
		t.Errorf("alice's cart should hold only the keeper line, got %d lines", len(lines))
	}
	lines, _, err = f.cart.List(bob.ID)
	if err != nil {
		t.Fatalf("list bob: %v", err)
	}
	if len(lines) != 0 {
		t.Errorf("bob's cart should be empty, got %d lines", len(lines))
	}
}

func TestDeleteMenuItemKeepsOrderSnapshots(t *testing.T) {
	f := newMenuFixture(t)
	users := repository.NewUserRepository(f.db)
	orderRepo := repository.NewOrderRepository(f.db)
	carts := repository.NewCartRepository(f.db)
	orders := NewOrderService(f.db, orderRepo, carts, NewRoleResolver(users))

	item := createMenuItem(t, f.db, "Pizza", "8.00")
	u := createUser(t, f.db, "carol")
	if _, err := f.cart.Add(u.ID, item.ID, 1); err != nil {
		t.Fatalf("add: %v", err)
	}
	placed, err := orders.CreateFromCart(u.ID)
	if err != nil {
		t.Fatalf("create order: %v", err)
	}

	if err := f.menu.DeleteItem(item.ID); err != nil {
		t.Fatalf("delete item: %v", err)
	}

	reloaded, err := orders.Get(Requester{UserID: u.ID, Role: models.RoleCustomer}, placed.ID)
	if err != nil {
		t.Fatalf("get order: %v", err)
	}
	if len(reloaded.Items) != 1 {
		t.Fatalf("order has %d items, want 1", len(reloaded.Items))
	}
	if !reloaded.Items[0].UnitPrice.Equal(mustDecimal("8.00")) || !reloaded.Total.Equal(mustDecimal("8.00")) {
		t.Errorf("snapshot prices must survive catalog deletion, got unit %s total %s",
			reloaded.Items[0].UnitPrice, reloaded.Total)
	}
}
