package config

import (
	"log"

	"little-lemon-api/models"

	"github.com/glebarez/sqlite"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// OpenDB connects to SQLite and migrates all models.
func OpenDB(path string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(
		&models.User{},
		&models.RoleGroup{},
		&models.Category{},
		&models.MenuItem{},
		&models.CartLine{},
		&models.Order{},
		&models.OrderItem{},
	); err != nil {
		return nil, err
	}
	return db, nil
}

// Seed creates the two role groups and, when ADMIN_USERNAME/ADMIN_PASSWORD
// are set, a bootstrap manager account so the roster endpoints are reachable
// on a fresh database.
func Seed(db *gorm.DB, cfg *Config) error {
	for _, name := range []string{models.GroupManager, models.GroupDeliveryCrew} {
		if err := db.FirstOrCreate(&models.RoleGroup{}, models.RoleGroup{Name: name}).Error; err != nil {
			return err
		}
	}

	if cfg.AdminUsername == "" || cfg.AdminPassword == "" {
		log.Println("skip seeding bootstrap manager: missing ADMIN_USERNAME/ADMIN_PASSWORD")
		return nil
	}

	var count int64
	if err := db.Model(&models.User{}).Where("username = ?", cfg.AdminUsername).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	admin := models.User{Username: cfg.AdminUsername, PasswordHash: string(hash)}
	if err := db.Create(&admin).Error; err != nil {
		return err
	}
	var managers models.RoleGroup
	if err := db.Where("name = ?", models.GroupManager).First(&managers).Error; err != nil {
		return err
	}
	if err := db.Model(&admin).Association("Groups").Append(&managers); err != nil {
		return err
	}
	log.Println("seeded bootstrap manager:", cfg.AdminUsername)
	return nil
}
