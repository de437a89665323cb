package services

import (
	"testing"

	"little-lemon-api/models"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	// A pooled second connection would see its own empty :memory: database.
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("unwrap db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(
		&models.User{},
		&models.RoleGroup{},
		&models.Category{},
		&models.MenuItem{},
		&models.CartLine{},
		&models.Order{},
		&models.OrderItem{},
	); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	for _, name := range []string{models.GroupManager, models.GroupDeliveryCrew} {
		if err := db.Create(&models.RoleGroup{Name: name}).Error; err != nil {
			t.Fatalf("seed group %q: %v", name, err)
		}
	}
	return db
}

func createUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()
	u := &models.User{Username: username, PasswordHash: "irrelevant"}
	if err := db.Create(u).Error; err != nil {
		t.Fatalf("create user %q: %v", username, err)
	}
	return u
}

func addToGroup(t *testing.T, db *gorm.DB, u *models.User, groupName string) {
	t.Helper()
	var g models.RoleGroup
	if err := db.Where("name = ?", groupName).First(&g).Error; err != nil {
		t.Fatalf("find group %q: %v", groupName, err)
	}
	if err := db.Model(u).Association("Groups").Append(&g); err != nil {
		t.Fatalf("add %q to group %q: %v", u.Username, groupName, err)
	}
}

func createMenuItem(t *testing.T, db *gorm.DB, title, price string) *models.MenuItem {
	t.Helper()
	var cat models.Category
	if err := db.FirstOrCreate(&cat, models.Category{Slug: "mains", Title: "Mains"}).Error; err != nil {
		t.Fatalf("seed category: %v", err)
	}
	m := &models.MenuItem{
		Title:      title,
		Price:      decimal.RequireFromString(price),
		CategoryID: cat.ID,
	}
	if err := db.Create(m).Error; err != nil {
		t.Fatalf("create menu item %q: %v", title, err)
	}
	return m
}

func mustDecimal(s string) decimal.Decimal { return decimal.RequireFromString(s) }
