package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/example/voltline/internal/catalog"
	"github.com/example/voltline/internal/models"
)

// Page returns one page of rows in catalog order together with the total count.
func Page[T any](ctx context.Context, s *Store, limit, offset int) ([]T, int64, error) {
	var total int64
	if err := s.conn(ctx).Model(new(T)).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	rows, err := all[T](s.conn(ctx).Limit(limit).Offset(offset))
	if err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

func defaultStatus(s *models.Status) {
	if *s == "" {
		*s = models.StatusActive
	}
}

// CreateCategory inserts a new category.
func (s *Store) CreateCategory(ctx context.Context, c *models.Category) error {
	defaultStatus(&c.Status)
	return s.conn(ctx).Create(c).Error
}

// SaveCategory writes every column of an existing category.
func (s *Store) SaveCategory(ctx context.Context, c *models.Category) error {
	return s.conn(ctx).Save(c).Error
}

// DeleteCategory removes a category that has no sub-categories or products.
func (s *Store) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	return s.conn(ctx).Transaction(func(tx *gorm.DB) error {
		if err := exists[models.Category](tx, id); err != nil {
			return err
		}
		if err := noDependents(tx, &models.SubCategory{}, "category_id = ?", id); err != nil {
			return err
		}
		if err := noDependents(tx, &models.Product{}, "category_id = ?", id); err != nil {
			return err
		}
		return tx.Delete(&models.Category{}, "id = ?", id).Error
	})
}

// CreateSubCategory inserts a sub-category under an existing category.
func (s *Store) CreateSubCategory(ctx context.Context, sc *models.SubCategory) error {
	if err := s.parentExists(ctx, models.Ref{Level: models.LevelCategory, ID: sc.CategoryID}); err != nil {
		return err
	}
	defaultStatus(&sc.Status)
	return s.conn(ctx).Create(sc).Error
}

func (s *Store) SaveSubCategory(ctx context.Context, sc *models.SubCategory) error {
	if err := s.parentExists(ctx, models.Ref{Level: models.LevelCategory, ID: sc.CategoryID}); err != nil {
		return err
	}
	return s.conn(ctx).Save(sc).Error
}

func (s *Store) DeleteSubCategory(ctx context.Context, id uuid.UUID) error {
	return s.conn(ctx).Transaction(func(tx *gorm.DB) error {
		if err := exists[models.SubCategory](tx, id); err != nil {
			return err
		}
		if err := noDependents(tx, &models.SuperSubCategory{}, "sub_category_id = ?", id); err != nil {
			return err
		}
		if err := noDependents(tx, &models.Product{}, "sub_category_id = ?", id); err != nil {
			return err
		}
		return tx.Delete(&models.SubCategory{}, "id = ?", id).Error
	})
}

// CreateSuperSubCategory inserts a super-sub-category under an existing sub-category.
func (s *Store) CreateSuperSubCategory(ctx context.Context, sc *models.SuperSubCategory) error {
	if err := s.parentExists(ctx, models.Ref{Level: models.LevelSubCategory, ID: sc.SubCategoryID}); err != nil {
		return err
	}
	defaultStatus(&sc.Status)
	return s.conn(ctx).Create(sc).Error
}

func (s *Store) SaveSuperSubCategory(ctx context.Context, sc *models.SuperSubCategory) error {
	if err := s.parentExists(ctx, models.Ref{Level: models.LevelSubCategory, ID: sc.SubCategoryID}); err != nil {
		return err
	}
	return s.conn(ctx).Save(sc).Error
}

func (s *Store) DeleteSuperSubCategory(ctx context.Context, id uuid.UUID) error {
	return s.conn(ctx).Transaction(func(tx *gorm.DB) error {
		if err := exists[models.SuperSubCategory](tx, id); err != nil {
			return err
		}
		if err := noDependents(tx, &models.Product{}, "super_sub_category_id = ?", id); err != nil {
			return err
		}
		return tx.Delete(&models.SuperSubCategory{}, "id = ?", id).Error
	})
}

// CreateProduct inserts a product. The product must be placed at no more
// than one level and that node must exist.
func (s *Store) CreateProduct(ctx context.Context, p *models.Product) error {
	if err := s.checkPlacement(ctx, p); err != nil {
		return err
	}
	defaultStatus(&p.Status)
	return s.conn(ctx).Create(p).Error
}

func (s *Store) SaveProduct(ctx context.Context, p *models.Product) error {
	if err := s.checkPlacement(ctx, p); err != nil {
		return err
	}
	return s.conn(ctx).Save(p).Error
}

func (s *Store) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	return deleteByID[models.Product](s.conn(ctx), id)
}

func (s *Store) checkPlacement(ctx context.Context, p *models.Product) error {
	if p.AssignedLevels() > 1 {
		return fmt.Errorf("%w: product is assigned to %d levels", catalog.ErrInvalidPlacement, p.AssignedLevels())
	}
	ref := p.Ref()
	if ref.IsZero() {
		return nil
	}
	return s.parentExists(ctx, ref)
}

func (s *Store) parentExists(ctx context.Context, ref models.Ref) error {
	var err error
	switch ref.Level {
	case models.LevelCategory:
		err = exists[models.Category](s.conn(ctx), ref.ID)
	case models.LevelSubCategory:
		err = exists[models.SubCategory](s.conn(ctx), ref.ID)
	case models.LevelSuperSubCategory:
		err = exists[models.SuperSubCategory](s.conn(ctx), ref.ID)
	default:
		return fmt.Errorf("%w: no parent given", catalog.ErrInvalidPlacement)
	}
	if errors.Is(err, catalog.ErrNotFound) {
		return fmt.Errorf("%w: %s does not exist", catalog.ErrInvalidPlacement, ref)
	}
	return err
}

func exists[T any](db *gorm.DB, id uuid.UUID) error {
	var n int64
	if err := db.Model(new(T)).Where("id = ?", id).Count(&n).Error; err != nil {
		return err
	}
	if n == 0 {
		return catalog.ErrNotFound
	}
	return nil
}

func noDependents(db *gorm.DB, model any, query string, args ...any) error {
	var n int64
	if err := db.Model(model).Where(query, args...).Count(&n).Error; err != nil {
		return err
	}
	if n > 0 {
		return catalog.ErrHasDependents
	}
	return nil
}

// Stats are the dashboard counters.
type Stats struct {
	Categories         int64 `json:"categories"`
	SubCategories      int64 `json:"sub_categories"`
	SuperSubCategories int64 `json:"super_sub_categories"`
	Products           int64 `json:"products"`
	ActiveProducts     int64 `json:"active_products"`
	FeaturedProducts   int64 `json:"featured_products"`
	PendingEnquiries   int64 `json:"pending_enquiries"`
	Subscribers        int64 `json:"subscribers"`
}

// Stats counts rows for the admin dashboard.
func (s *Store) Stats(ctx context.Context) (Stats, error) {
	var st Stats
	db := s.conn(ctx)
	counts := []struct {
		dst   *int64
		model any
		where []any
	}{
		{&st.Categories, &models.Category{}, nil},
		{&st.SubCategories, &models.SubCategory{}, nil},
		{&st.SuperSubCategories, &models.SuperSubCategory{}, nil},
		{&st.Products, &models.Product{}, nil},
		{&st.ActiveProducts, &models.Product{}, []any{"status = ?", models.StatusActive}},
		{&st.FeaturedProducts, &models.Product{}, []any{"featured = ?", true}},
		{&st.PendingEnquiries, &models.ContactEnquiry{}, []any{"status = ?", models.EnquiryPending}},
		{&st.Subscribers, &models.NewsletterSubscription{}, []any{"status = ?", models.SubscriptionActive}},
	}
	for _, c := range counts {
		q := db.Model(c.model)
		if len(c.where) > 0 {
			q = q.Where(c.where[0], c.where[1:]...)
		}
		if err := q.Count(c.dst).Error; err != nil {
			return Stats{}, err
		}
	}
	return st, nil
}
