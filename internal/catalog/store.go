package catalog

import (
	"context"

	"github.com/google/uuid"

	"github.com/example/voltline/internal/models"
)

// Store is the read side of the taxonomy tables. Single-row lookups return
// ErrNotFound when nothing matches. Listings are ordered by sort_order and
// then creation time.
type Store interface {
	CategoryBySlug(ctx context.Context, slug string) (*models.Category, error)
	SubCategoriesBySlug(ctx context.Context, slug string) ([]models.SubCategory, error)
	SuperSubCategoriesBySlug(ctx context.Context, slug string) ([]models.SuperSubCategory, error)

	CategoryByID(ctx context.Context, id uuid.UUID) (*models.Category, error)
	SubCategoryByID(ctx context.Context, id uuid.UUID) (*models.SubCategory, error)
	SuperSubCategoryByID(ctx context.Context, id uuid.UUID) (*models.SuperSubCategory, error)

	SubCategoriesOf(ctx context.Context, categoryID uuid.UUID, activeOnly bool) ([]models.SubCategory, error)
	SuperSubCategoriesOf(ctx context.Context, subCategoryID uuid.UUID, activeOnly bool) ([]models.SuperSubCategory, error)
	ProductsAt(ctx context.Context, ref models.Ref, activeOnly bool) ([]models.Product, error)
}

// Scope selects which statuses are visible.
type Scope int

const (
	// ScopePublic hides inactive rows.
	ScopePublic Scope = iota
	// ScopeAdmin shows every status.
	ScopeAdmin
)

func (s Scope) activeOnly() bool {
	return s == ScopePublic
}

func (s Scope) visible(status models.Status) bool {
	return !s.activeOnly() || status.IsActive()
}
