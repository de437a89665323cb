package repository

import (
	"little-lemon-api/models"

	"gorm.io/gorm"
)

type CartRepository interface {
	ListByUser(userID uint) ([]models.CartLine, error)
	ByUserAndItem(userID, menuItemID uint) (*models.CartLine, error)
	Save(line *models.CartLine) error
	// FlushUser deletes every line the user owns and returns the count.
	// Flushing an empty cart succeeds with count 0.
	FlushUser(userID uint) (int64, error)
	WithTx(tx *gorm.DB) CartRepository
}

type cartRepository struct{ db *gorm.DB }

func NewCartRepository(db *gorm.DB) CartRepository { return &cartRepository{db: db} }

func (r *cartRepository) WithTx(tx *gorm.DB) CartRepository { return &cartRepository{db: tx} }

func (r *cartRepository) ListByUser(userID uint) ([]models.CartLine, error) {
	var lines []models.CartLine
	err := r.db.Preload("MenuItem").
		Where("user_id = ?", userID).
		Order("id asc").
		Find(&lines).Error
	return lines, err
}

func (r *cartRepository) ByUserAndItem(userID, menuItemID uint) (*models.CartLine, error) {
	var line models.CartLine
	err := r.db.Where("user_id = ? AND menu_item_id = ?", userID, menuItemID).First(&line).Error
	if err != nil {
		return nil, err
	}
	return &line, nil
}

func (r *cartRepository) Save(line *models.CartLine) error {
	return r.db.Save(line).Error
}

func (r *cartRepository) FlushUser(userID uint) (int64, error) {
	res := r.db.Where("user_id = ?", userID).Delete(&models.CartLine{})
	return res.RowsAffected, res.Error
}
