package services

import (
	"strings"

	"little-lemon-api/models"
	"little-lemon-api/repository"

	"github.com/shopspring/decimal"
)

// MenuService is CRUD over the catalog. Reads are open to any authenticated
// user; the route gate restricts every mutation to managers.
type MenuService struct {
	categories repository.CategoryRepository
	items      repository.MenuItemRepository
}

func NewMenuService(categories repository.CategoryRepository, items repository.MenuItemRepository) *MenuService {
	return &MenuService{categories: categories, items: items}
}

type CategoryInput struct {
	Title string
	Slug  string
}

func (s *MenuService) ListCategories() ([]models.Category, error) {
	return s.categories.List()
}

func (s *MenuService) GetCategory(id uint) (*models.Category, error) {
	c, err := s.categories.ByID(id)
	return c, notFoundOr(err)
}

func (s *MenuService) CreateCategory(in CategoryInput) (*models.Category, error) {
	if strings.TrimSpace(in.Title) == "" {
		return nil, invalidf("title", "title is required")
	}
	c := &models.Category{Title: in.Title, Slug: slugOrDerive(in.Slug, in.Title)}
	if err := s.categories.Create(c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *MenuService) UpdateCategory(id uint, in CategoryInput) (*models.Category, error) {
	c, err := s.categories.ByID(id)
	if err != nil {
		return nil, notFoundOr(err)
	}
	if strings.TrimSpace(in.Title) == "" {
		return nil, invalidf("title", "title is required")
	}
	c.Title = in.Title
	c.Slug = slugOrDerive(in.Slug, in.Title)
	if err := s.categories.Save(c); err != nil {
		return nil, err
	}
	return c, nil
}

// DeleteCategory refuses while menu items still reference the category, so
// no item is ever left with a dangling category_id.
func (s *MenuService) DeleteCategory(id uint) error {
	if _, err := s.categories.ByID(id); err != nil {
		return notFoundOr(err)
	}
	count, err := s.items.CountInCategory(id)
	if err != nil {
		return err
	}
	if count > 0 {
		return invalidf("category", "%d menu items still reference this category", count)
	}
	return s.categories.Delete(id)
}

func slugOrDerive(slug, title string) string {
	if slug != "" {
		return slug
	}
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(title)), " ", "-")
}

type MenuItemInput struct {
	Title      string
	Price      decimal.Decimal
	Featured   bool
	CategoryID uint
}

// MenuItemPatch has nil for fields the caller did not send.
type MenuItemPatch struct {
	Title      *string
	Price      *decimal.Decimal
	Featured   *bool
	CategoryID *uint
}

func (s *MenuService) ListItems(f repository.MenuItemFilter) ([]models.MenuItem, int64, error) {
	if f.Ordering != "" {
		switch f.Ordering {
		case "price", "-price", "title", "-title":
		default:
			return nil, 0, invalidf("ordering", "must be one of price, -price, title, -title")
		}
	}
	return s.items.List(f)
}

func (s *MenuService) GetItem(id uint) (*models.MenuItem, error) {
	m, err := s.items.ByID(id)
	return m, notFoundOr(err)
}

func (s *MenuService) CreateItem(in MenuItemInput) (*models.MenuItem, error) {
	if err := s.validateItem(in.Title, in.Price, in.CategoryID); err != nil {
		return nil, err
	}
	m := &models.MenuItem{
		Title:      in.Title,
		Price:      in.Price,
		Featured:   in.Featured,
		CategoryID: in.CategoryID,
	}
	if err := s.items.Create(m); err != nil {
		return nil, err
	}
	return s.items.ByID(m.ID)
}

func (s *MenuService) UpdateItem(id uint, in MenuItemInput) (*models.MenuItem, error) {
	m, err := s.items.ByID(id)
	if err != nil {
		return nil, notFoundOr(err)
	}
	if err := s.validateItem(in.Title, in.Price, in.CategoryID); err != nil {
		return nil, err
	}
	m.Title = in.Title
	m.Price = in.Price
	m.Featured = in.Featured
	m.CategoryID = in.CategoryID
	if err := s.items.Save(m); err != nil {
		return nil, err
	}
	return s.items.ByID(m.ID)
}

func (s *MenuService) PatchItem(id uint, patch MenuItemPatch) (*models.MenuItem, error) {
	m, err := s.items.ByID(id)
	if err != nil {
		return nil, notFoundOr(err)
	}
	if patch.Title != nil {
		if strings.TrimSpace(*patch.Title) == "" {
			return nil, invalidf("title", "title is required")
		}
		m.Title = *patch.Title
	}
	if patch.Price != nil {
		if !patch.Price.IsPositive() {
			return nil, invalidf("price", "must be greater than zero")
		}
		m.Price = *patch.Price
	}
	if patch.Featured != nil {
		m.Featured = *patch.Featured
	}
	if patch.CategoryID != nil {
		if _, err := s.categories.ByID(*patch.CategoryID); err != nil {
			return nil, invalidOrStoreErr(err, "category_id", "unknown category")
		}
		m.CategoryID = *patch.CategoryID
	}
	if err := s.items.Save(m); err != nil {
		return nil, err
	}
	return s.items.ByID(m.ID)
}

// DeleteItem removes the item and any cart lines still holding it; order
// item snapshots keep their recorded prices and are untouched.
func (s *MenuService) DeleteItem(id uint) error {
	if _, err := s.items.ByID(id); err != nil {
		return notFoundOr(err)
	}
	return s.items.Delete(id)
}

func (s *MenuService) validateItem(title string, price decimal.Decimal, categoryID uint) error {
	if strings.TrimSpace(title) == "" {
		return invalidf("title", "title is required")
	}
	if !price.IsPositive() {
		return invalidf("price", "must be greater than zero")
	}
	if _, err := s.categories.ByID(categoryID); err != nil {
		return invalidOrStoreErr(err, "category_id", "unknown category")
	}
	return nil
}
