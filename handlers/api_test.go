package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"little-lemon-api/handlers"
	"little-lemon-api/middleware"
	"little-lemon-api/models"
	"little-lemon-api/repository"
	"little-lemon-api/routes"
	"little-lemon-api/services"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type testAPI struct {
	router *gin.Engine
	db     *gorm.DB
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("unwrap db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(
		&models.User{}, &models.RoleGroup{}, &models.Category{}, &models.MenuItem{},
		&models.CartLine{}, &models.Order{}, &models.OrderItem{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	for _, name := range []string{models.GroupManager, models.GroupDeliveryCrew} {
		if err := db.Create(&models.RoleGroup{Name: name}).Error; err != nil {
			t.Fatalf("seed group: %v", err)
		}
	}

	users := repository.NewUserRepository(db)
	categories := repository.NewCategoryRepository(db)
	items := repository.NewMenuItemRepository(db)
	carts := repository.NewCartRepository(db)
	orders := repository.NewOrderRepository(db)
	roles := services.NewRoleResolver(users)
	auth := middleware.NewAuth([]byte("test-secret"), time.Hour)
	gate := middleware.NewRoleGate(roles)

	r := gin.New()
	routes.Setup(r, auth, gate, routes.Handlers{
		Auth:   &handlers.AuthHandler{Users: users, Roles: roles, Auth: auth},
		Menu:   &handlers.MenuHandler{Svc: services.NewMenuService(categories, items)},
		Roster: &handlers.RosterHandler{Svc: services.NewRosterService(users)},
		Cart:   &handlers.CartHandler{Svc: services.NewCartService(carts, items)},
		Order:  &handlers.OrderHandler{Svc: services.NewOrderService(db, orders, carts, roles), Roles: roles},
	})
	return &testAPI{router: r, db: db}
}

func (a *testAPI) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

// register creates an account through the API and returns its token.
func (a *testAPI) register(t *testing.T, username string) string {
	t.Helper()
	w := a.do(t, http.MethodPost, "/api/auth/register", "", gin.H{
		"username": username,
		"password": "secret123",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("register %q: status %d body %s", username, w.Code, w.Body.String())
	}
	var resp struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode register response: %v", err)
	}
	return resp.Token
}

// promote adds the user to a role group directly in the store.
func (a *testAPI) promote(t *testing.T, username, groupName string) {
	t.Helper()
	var u models.User
	if err := a.db.Where("username = ?", username).First(&u).Error; err != nil {
		t.Fatalf("find %q: %v", username, err)
	}
	var g models.RoleGroup
	if err := a.db.Where("name = ?", groupName).First(&g).Error; err != nil {
		t.Fatalf("find group: %v", err)
	}
	if err := a.db.Model(&u).Association("Groups").Append(&g); err != nil {
		t.Fatalf("promote: %v", err)
	}
}

func (a *testAPI) seedMenuItem(t *testing.T, managerToken, title, price string) uint {
	t.Helper()
	w := a.do(t, http.MethodPost, "/api/categories", managerToken, gin.H{"title": "Mains"})
	var catResp struct {
		Category models.Category `json:"category"`
	}
	switch w.Code {
	case http.StatusCreated:
		if err := json.Unmarshal(w.Body.Bytes(), &catResp); err != nil {
			t.Fatalf("decode category: %v", err)
		}
	default:
		// already exists from an earlier call in the same test
		var cat models.Category
		if err := a.db.Where("slug = ?", "mains").First(&cat).Error; err != nil {
			t.Fatalf("create category: status %d body %s", w.Code, w.Body.String())
		}
		catResp.Category = cat
	}

	w = a.do(t, http.MethodPost, "/api/menu-items", managerToken, gin.H{
		"title":       title,
		"price":       price,
		"category_id": catResp.Category.ID,
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("create menu item: status %d body %s", w.Code, w.Body.String())
	}
	var itemResp struct {
		Item models.MenuItem `json:"item"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &itemResp); err != nil {
		t.Fatalf("decode item: %v", err)
	}
	return itemResp.Item.ID
}

func TestUnauthenticatedRequestsRejected(t *testing.T) {
	api := newTestAPI(t)
	for _, path := range []string{"/api/menu-items", "/api/cart/menu-items", "/api/orders"} {
		w := api.do(t, http.MethodGet, path, "", nil)
		if w.Code != http.StatusUnauthorized {
			t.Errorf("GET %s without token = %d, want 401", path, w.Code)
		}
	}
}

func TestMenuWriteRequiresManager(t *testing.T) {
	api := newTestAPI(t)
	customer := api.register(t, "carol")

	w := api.do(t, http.MethodPost, "/api/menu-items", customer, gin.H{
		"title": "Sneaky Dish", "price": "1.00", "category_id": 1,
	})
	if w.Code != http.StatusForbidden {
		t.Fatalf("customer POST /menu-items = %d, want 403", w.Code)
	}

	api.promote(t, "carol", models.GroupManager)
	itemID := api.seedMenuItem(t, customer, "Greek Salad", "5.00")
	if itemID == 0 {
		t.Fatal("expected a created menu item id")
	}
}

func TestRoleChangesTakeEffectWithoutNewToken(t *testing.T) {
	api := newTestAPI(t)
	token := api.register(t, "dave")

	w := api.do(t, http.MethodGet, "/api/groups/manager/users", token, nil)
	if w.Code != http.StatusForbidden {
		t.Fatalf("before promotion = %d, want 403", w.Code)
	}

	// same token, fresh role lookup
	api.promote(t, "dave", models.GroupManager)
	w = api.do(t, http.MethodGet, "/api/groups/manager/users", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("after promotion = %d, want 200", w.Code)
	}
}

func TestRosterDeleteForbiddenForNonManager(t *testing.T) {
	api := newTestAPI(t)
	api.register(t, "boss")
	api.promote(t, "boss", models.GroupManager)
	customer := api.register(t, "mallory")

	var boss models.User
	if err := api.db.Where("username = ?", "boss").First(&boss).Error; err != nil {
		t.Fatalf("find boss: %v", err)
	}

	w := api.do(t, http.MethodDelete, "/api/groups/manager/users/1", customer, nil)
	if w.Code != http.StatusForbidden {
		t.Fatalf("non-manager roster delete = %d, want 403", w.Code)
	}

	// membership unchanged
	var count int64
	api.db.Table("user_role_groups").Where("user_id = ?", boss.ID).Count(&count)
	if count != 1 {
		t.Errorf("boss membership count = %d, want 1", count)
	}
}

func TestRosterAddUnknownUserIs404(t *testing.T) {
	api := newTestAPI(t)
	manager := api.register(t, "boss")
	api.promote(t, "boss", models.GroupManager)

	w := api.do(t, http.MethodPost, "/api/groups/delivery-crew/users", manager, gin.H{"username": "ghost"})
	if w.Code != http.StatusNotFound {
		t.Fatalf("add unknown user = %d, want 404", w.Code)
	}
}

func TestCartRejectsClientSuppliedPrice(t *testing.T) {
	api := newTestAPI(t)
	manager := api.register(t, "boss")
	api.promote(t, "boss", models.GroupManager)
	itemID := api.seedMenuItem(t, manager, "Greek Salad", "5.00")
	customer := api.register(t, "carol")

	w := api.do(t, http.MethodPost, "/api/cart/menu-items", customer, gin.H{
		"menuitem_id": itemID,
		"quantity":    1,
		"unit_price":  "0.01",
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("client-supplied unit_price = %d, want 400", w.Code)
	}

	w = api.do(t, http.MethodPost, "/api/cart/menu-items", customer, gin.H{
		"menuitem_id": itemID,
		"quantity":    1,
		"price":       "0.01",
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("client-supplied price = %d, want 400", w.Code)
	}
}

func TestCartFlushReportsSuccess(t *testing.T) {
	api := newTestAPI(t)
	customer := api.register(t, "carol")

	w := api.do(t, http.MethodDelete, "/api/cart/menu-items", customer, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("flush empty cart = %d, want 200", w.Code)
	}
}

func TestOrderPlacementFlow(t *testing.T) {
	api := newTestAPI(t)
	manager := api.register(t, "boss")
	api.promote(t, "boss", models.GroupManager)
	saladID := api.seedMenuItem(t, manager, "Greek Salad", "5.00")
	dessertID := api.seedMenuItem(t, manager, "Lemon Dessert", "3.00")

	carol := api.register(t, "carol")
	bob := api.register(t, "bob")

	w := api.do(t, http.MethodPost, "/api/cart/menu-items", carol, gin.H{"menuitem_id": saladID, "quantity": 2})
	if w.Code != http.StatusCreated {
		t.Fatalf("add salad = %d body %s", w.Code, w.Body.String())
	}
	w = api.do(t, http.MethodPost, "/api/cart/menu-items", carol, gin.H{"menuitem_id": dessertID, "quantity": 1})
	if w.Code != http.StatusCreated {
		t.Fatalf("add dessert = %d", w.Code)
	}

	w = api.do(t, http.MethodPost, "/api/orders", carol, nil)
	if w.Code != http.StatusCreated {
		t.Fatalf("place order = %d body %s", w.Code, w.Body.String())
	}
	var placed struct {
		OrderID uint   `json:"order_id"`
		Total   string `json:"total"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &placed); err != nil {
		t.Fatalf("decode order response: %v", err)
	}
	if placed.Total != "13" {
		t.Errorf("total = %q, want 13", placed.Total)
	}

	// cart is drained
	w = api.do(t, http.MethodGet, "/api/cart/menu-items", carol, nil)
	var cart struct {
		Count int `json:"count"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &cart); err != nil {
		t.Fatalf("decode cart: %v", err)
	}
	if cart.Count != 0 {
		t.Errorf("cart count after order = %d, want 0", cart.Count)
	}

	// bob cannot see carol's order
	w = api.do(t, http.MethodGet, "/api/orders", bob, nil)
	var orders struct {
		Count int `json:"count"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &orders); err != nil {
		t.Fatalf("decode orders: %v", err)
	}
	if orders.Count != 0 {
		t.Errorf("bob sees %d orders, want 0", orders.Count)
	}

	// bob probing carol's order by id gets 404, not 403
	w = api.do(t, http.MethodGet, "/api/orders/1", bob, nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("cross-user order probe = %d, want 404", w.Code)
	}

	// only managers may delete orders
	w = api.do(t, http.MethodDelete, "/api/orders/1", carol, nil)
	if w.Code != http.StatusForbidden {
		t.Errorf("customer order delete = %d, want 403", w.Code)
	}
	w = api.do(t, http.MethodDelete, "/api/orders/1", manager, nil)
	if w.Code != http.StatusOK {
		t.Errorf("manager order delete = %d, want 200", w.Code)
	}
}
