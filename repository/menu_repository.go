package repository

import (
	"little-lemon-api/models"

	"gorm.io/gorm"
)

type CategoryRepository interface {
	List() ([]models.Category, error)
	ByID(id uint) (*models.Category, error)
	Create(c *models.Category) error
	Save(c *models.Category) error
	Delete(id uint) error
}

type categoryRepository struct{ db *gorm.DB }

func NewCategoryRepository(db *gorm.DB) CategoryRepository { return &categoryRepository{db: db} }

func (r *categoryRepository) List() ([]models.Category, error) {
	var cats []models.Category
	err := r.db.Order("title asc").Find(&cats).Error
	return cats, err
}

func (r *categoryRepository) ByID(id uint) (*models.Category, error) {
	var c models.Category
	if err := r.db.First(&c, id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *categoryRepository) Create(c *models.Category) error { return r.db.Create(c).Error }
func (r *categoryRepository) Save(c *models.Category) error   { return r.db.Save(c).Error }

func (r *categoryRepository) Delete(id uint) error {
	return r.db.Delete(&models.Category{}, id).Error
}

// MenuItemFilter narrows and orders menu-item listings. Zero values mean
// "no constraint"; Ordering must be pre-validated by the caller.
type MenuItemFilter struct {
	Category string // category title, exact match
	Featured *bool
	Search   string // title substring
	Ordering string // "price", "-price", "title", "-title"
	Page     int
	PerPage  int
}

type MenuItemRepository interface {
	List(f MenuItemFilter) ([]models.MenuItem, int64, error)
	ByID(id uint) (*models.MenuItem, error)
	CountInCategory(categoryID uint) (int64, error)
	Create(m *models.MenuItem) error
	Save(m *models.MenuItem) error
	// Delete removes the item together with any cart lines holding it.
	Delete(id uint) error
}

type menuItemRepository struct{ db *gorm.DB }

func NewMenuItemRepository(db *gorm.DB) MenuItemRepository { return &menuItemRepository{db: db} }

var menuOrderings = map[string]string{
	"price":  "price asc",
	"-price": "price desc",
	"title":  "title asc",
	"-title": "title desc",
}

func (r *menuItemRepository) List(f MenuItemFilter) ([]models.MenuItem, int64, error) {
	query := r.db.Model(&models.MenuItem{}).Preload("Category")
	if f.Category != "" {
		query = query.Joins("JOIN categories ON categories.id = menu_items.category_id").
			Where("categories.title = ?", f.Category)
	}
	if f.Featured != nil {
		query = query.Where("featured = ?", *f.Featured)
	}
	if f.Search != "" {
		query = query.Where("menu_items.title LIKE ?", "%"+f.Search+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if order, ok := menuOrderings[f.Ordering]; ok {
		query = query.Order(order)
	} else {
		query = query.Order("menu_items.id asc")
	}
	if f.PerPage > 0 {
		page := f.Page
		if page < 1 {
			page = 1
		}
		query = query.Limit(f.PerPage).Offset((page - 1) * f.PerPage)
	}

	var items []models.MenuItem
	err := query.Find(&items).Error
	return items, total, err
}

func (r *menuItemRepository) ByID(id uint) (*models.MenuItem, error) {
	var m models.MenuItem
	if err := r.db.Preload("Category").First(&m, id).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *menuItemRepository) CountInCategory(categoryID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.MenuItem{}).Where("category_id = ?", categoryID).Count(&count).Error
	return count, err
}

func (r *menuItemRepository) Create(m *models.MenuItem) error { return r.db.Create(m).Error }
func (r *menuItemRepository) Save(m *models.MenuItem) error   { return r.db.Save(m).Error }

func (r *menuItemRepository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("menu_item_id = ?", id).Delete(&models.CartLine{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.MenuItem{}, id).Error
	})
}
