package store

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/example/voltline/internal/catalog"
	"github.com/example/voltline/internal/models"
)

// ordering is applied to every taxonomy and product listing.
const ordering = "sort_order ASC, created_at ASC"

// Store is the gorm-backed catalog repository.
type Store struct {
	db *gorm.DB
}

var _ catalog.Store = (*Store)(nil)

// New wraps an open gorm connection.
func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) conn(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx)
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return catalog.ErrNotFound
	}
	return err
}

func active(db *gorm.DB, activeOnly bool) *gorm.DB {
	if activeOnly {
		return db.Where("status = ?", models.StatusActive)
	}
	return db
}

func first[T any](db *gorm.DB, query string, args ...any) (*T, error) {
	var row T
	if err := db.Where(query, args...).First(&row).Error; err != nil {
		return nil, notFound(err)
	}
	return &row, nil
}

func all[T any](db *gorm.DB) ([]T, error) {
	rows := []T{}
	if err := db.Order(ordering).Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// CategoryBySlug looks a category up by its unique slug.
func (s *Store) CategoryBySlug(ctx context.Context, slug string) (*models.Category, error) {
	return first[models.Category](s.conn(ctx), "slug = ?", slug)
}

func (s *Store) SubCategoriesBySlug(ctx context.Context, slug string) ([]models.SubCategory, error) {
	return all[models.SubCategory](s.conn(ctx).Where("slug = ?", slug))
}

func (s *Store) SuperSubCategoriesBySlug(ctx context.Context, slug string) ([]models.SuperSubCategory, error) {
	return all[models.SuperSubCategory](s.conn(ctx).Where("slug = ?", slug))
}

func (s *Store) CategoryByID(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	return first[models.Category](s.conn(ctx), "id = ?", id)
}

func (s *Store) SubCategoryByID(ctx context.Context, id uuid.UUID) (*models.SubCategory, error) {
	return first[models.SubCategory](s.conn(ctx), "id = ?", id)
}

func (s *Store) SuperSubCategoryByID(ctx context.Context, id uuid.UUID) (*models.SuperSubCategory, error) {
	return first[models.SuperSubCategory](s.conn(ctx), "id = ?", id)
}

// SubCategoriesOf lists the sub-categories under a category.
func (s *Store) SubCategoriesOf(ctx context.Context, categoryID uuid.UUID, activeOnly bool) ([]models.SubCategory, error) {
	return all[models.SubCategory](active(s.conn(ctx), activeOnly).Where("category_id = ?", categoryID))
}

// SuperSubCategoriesOf lists the super-sub-categories under a sub-category.
func (s *Store) SuperSubCategoriesOf(ctx context.Context, subCategoryID uuid.UUID, activeOnly bool) ([]models.SuperSubCategory, error) {
	return all[models.SuperSubCategory](active(s.conn(ctx), activeOnly).Where("sub_category_id = ?", subCategoryID))
}

// ProductsAt lists products placed exactly at ref. The zero ref lists
// unassigned products.
func (s *Store) ProductsAt(ctx context.Context, ref models.Ref, activeOnly bool) ([]models.Product, error) {
	db := active(s.conn(ctx), activeOnly)
	switch ref.Level {
	case models.LevelCategory:
		db = db.Where("category_id = ? AND sub_category_id IS NULL AND super_sub_category_id IS NULL", ref.ID)
	case models.LevelSubCategory:
		db = db.Where("sub_category_id = ? AND super_sub_category_id IS NULL", ref.ID)
	case models.LevelSuperSubCategory:
		db = db.Where("super_sub_category_id = ?", ref.ID)
	default:
		db = db.Where("category_id IS NULL AND sub_category_id IS NULL AND super_sub_category_id IS NULL")
	}
	return all[models.Product](db)
}

// Categories lists every category.
func (s *Store) Categories(ctx context.Context, activeOnly bool) ([]models.Category, error) {
	return all[models.Category](active(s.conn(ctx), activeOnly))
}

func (s *Store) SubCategories(ctx context.Context, activeOnly bool) ([]models.SubCategory, error) {
	return all[models.SubCategory](active(s.conn(ctx), activeOnly))
}

func (s *Store) SuperSubCategories(ctx context.Context, activeOnly bool) ([]models.SuperSubCategory, error) {
	return all[models.SuperSubCategory](active(s.conn(ctx), activeOnly))
}

func (s *Store) Products(ctx context.Context, activeOnly bool) ([]models.Product, error) {
	return all[models.Product](active(s.conn(ctx), activeOnly))
}

// FeaturedProducts lists active featured products.
func (s *Store) FeaturedProducts(ctx context.Context) ([]models.Product, error) {
	return all[models.Product](active(s.conn(ctx), true).Where("featured = ?", true))
}

func (s *Store) ProductBySlug(ctx context.Context, slug string, activeOnly bool) (*models.Product, error) {
	return first[models.Product](active(s.conn(ctx), activeOnly), "slug = ?", slug)
}

func (s *Store) ProductByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	return first[models.Product](s.conn(ctx), "id = ?", id)
}

// Index loads the whole taxonomy into a catalog.Index.
func (s *Store) Index(ctx context.Context) (*catalog.Index, error) {
	cats, err := s.Categories(ctx, false)
	if err != nil {
		return nil, err
	}
	subs, err := s.SubCategories(ctx, false)
	if err != nil {
		return nil, err
	}
	supers, err := s.SuperSubCategories(ctx, false)
	if err != nil {
		return nil, err
	}
	return catalog.NewIndex(cats, subs, supers), nil
}
