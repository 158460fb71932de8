package catalog

import (
	"github.com/google/uuid"

	"github.com/example/voltline/internal/models"
)

// Index holds the flat taxonomy tables keyed by id.
type Index struct {
	categories map[uuid.UUID]*models.Category
	subs       map[uuid.UUID]*models.SubCategory
	supers     map[uuid.UUID]*models.SuperSubCategory

	categoryList []models.Category
	subList      []models.SubCategory
	superList    []models.SuperSubCategory
}

// NewIndex builds an Index. The slices keep their order for option lists.
func NewIndex(categories []models.Category, subs []models.SubCategory, supers []models.SuperSubCategory) *Index {
	idx := &Index{
		categories:   make(map[uuid.UUID]*models.Category, len(categories)),
		subs:         make(map[uuid.UUID]*models.SubCategory, len(subs)),
		supers:       make(map[uuid.UUID]*models.SuperSubCategory, len(supers)),
		categoryList: categories,
		subList:      subs,
		superList:    supers,
	}
	for i := range categories {
		idx.categories[categories[i].ID] = &categories[i]
	}
	for i := range subs {
		idx.subs[subs[i].ID] = &subs[i]
	}
	for i := range supers {
		idx.supers[supers[i].ID] = &supers[i]
	}
	return idx
}

// Ancestry is the set of taxonomy ids a product sits under. Levels above a
// missing row stay uuid.Nil.
type Ancestry struct {
	CategoryID         uuid.UUID
	SubCategoryID      uuid.UUID
	SuperSubCategoryID uuid.UUID
}

// IDs returns the populated ids, root first.
func (a Ancestry) IDs() []uuid.UUID {
	var out []uuid.UUID
	for _, id := range []uuid.UUID{a.CategoryID, a.SubCategoryID, a.SuperSubCategoryID} {
		if id != uuid.Nil {
			out = append(out, id)
		}
	}
	return out
}

// Contains reports whether id is one of the ancestors.
func (a Ancestry) Contains(id uuid.UUID) bool {
	return id != uuid.Nil && (a.CategoryID == id || a.SubCategoryID == id || a.SuperSubCategoryID == id)
}

// Ancestors walks the product's placement upward through the index.
func (idx *Index) Ancestors(p *models.Product) Ancestry {
	return idx.ancestorsOf(p.Ref())
}

func (idx *Index) ancestorsOf(ref models.Ref) Ancestry {
	var a Ancestry
	level, id := ref.Level, ref.ID

	if level == models.LevelSuperSubCategory {
		a.SuperSubCategoryID = id
		s, ok := idx.supers[id]
		if !ok {
			return a
		}
		level, id = models.LevelSubCategory, s.SubCategoryID
	}
	if level == models.LevelSubCategory {
		a.SubCategoryID = id
		s, ok := idx.subs[id]
		if !ok {
			return a
		}
		level, id = models.LevelCategory, s.CategoryID
	}
	if level == models.LevelCategory {
		a.CategoryID = id
	}
	return a
}

// Criteria are the admin product list filters. Nil fields mean "all".
type Criteria struct {
	CategoryID         *uuid.UUID
	SubCategoryID      *uuid.UUID
	SuperSubCategoryID *uuid.UUID
	Status             *models.Status
	Featured           *bool
}

// WithCategory selects a category and resets the dependent selections.
func (c Criteria) WithCategory(id *uuid.UUID) Criteria {
	c.CategoryID = id
	c.SubCategoryID = nil
	c.SuperSubCategoryID = nil
	return c
}

// WithSubCategory selects a sub-category and resets the super-sub selection.
func (c Criteria) WithSubCategory(id *uuid.UUID) Criteria {
	c.SubCategoryID = id
	c.SuperSubCategoryID = nil
	return c
}

// WithSuperSubCategory selects a super-sub-category.
func (c Criteria) WithSuperSubCategory(id *uuid.UUID) Criteria {
	c.SuperSubCategoryID = id
	return c
}

// Normalize drops sub-category and super-sub-category selections that do
// not descend from the selected parent.
func (c Criteria) Normalize(idx *Index) Criteria {
	if c.SubCategoryID != nil {
		a := idx.ancestorsOf(models.Ref{Level: models.LevelSubCategory, ID: *c.SubCategoryID})
		if c.CategoryID != nil && a.CategoryID != *c.CategoryID {
			c.SubCategoryID = nil
			c.SuperSubCategoryID = nil
		}
	}
	if c.SuperSubCategoryID != nil {
		a := idx.ancestorsOf(models.Ref{Level: models.LevelSuperSubCategory, ID: *c.SuperSubCategoryID})
		if (c.SubCategoryID != nil && a.SubCategoryID != *c.SubCategoryID) ||
			(c.CategoryID != nil && a.CategoryID != *c.CategoryID) {
			c.SuperSubCategoryID = nil
		}
	}
	return c
}

// Matches ANDs every selected predicate.
func (c Criteria) Matches(p *models.Product, idx *Index) bool {
	if c.Status != nil && p.Status != *c.Status {
		return false
	}
	if c.Featured != nil && p.Featured != *c.Featured {
		return false
	}
	if c.CategoryID == nil && c.SubCategoryID == nil && c.SuperSubCategoryID == nil {
		return true
	}

	a := idx.Ancestors(p)
	if c.CategoryID != nil && a.CategoryID != *c.CategoryID {
		return false
	}
	if c.SubCategoryID != nil && a.SubCategoryID != *c.SubCategoryID {
		return false
	}
	if c.SuperSubCategoryID != nil && a.SuperSubCategoryID != *c.SuperSubCategoryID {
		return false
	}
	return true
}

// FilterProducts returns the products matching c, keeping input order.
func FilterProducts(products []models.Product, idx *Index, c Criteria) []models.Product {
	out := make([]models.Product, 0, len(products))
	for i := range products {
		if c.Matches(&products[i], idx) {
			out = append(out, products[i])
		}
	}
	return out
}

// FilterOptions are the choices offered by each cascading select.
type FilterOptions struct {
	Categories         []models.Category         `json:"categories"`
	SubCategories      []models.SubCategory      `json:"subCategories"`
	SuperSubCategories []models.SuperSubCategory `json:"superSubCategories"`
}

// Options returns the option lists for c: sub-categories of the selected
// category and super-sub-categories of the selected sub-category. With no
// selection at a level the whole level is offered.
func (idx *Index) Options(c Criteria) FilterOptions {
	opts := FilterOptions{
		Categories:         append([]models.Category{}, idx.categoryList...),
		SubCategories:      []models.SubCategory{},
		SuperSubCategories: []models.SuperSubCategory{},
	}
	for _, s := range idx.subList {
		if c.CategoryID == nil || s.CategoryID == *c.CategoryID {
			opts.SubCategories = append(opts.SubCategories, s)
		}
	}
	for _, s := range idx.superList {
		switch {
		case c.SubCategoryID != nil:
			if s.SubCategoryID == *c.SubCategoryID {
				opts.SuperSubCategories = append(opts.SuperSubCategories, s)
			}
		case c.CategoryID != nil:
			if idx.ancestorsOf(models.Ref{Level: models.LevelSuperSubCategory, ID: s.ID}).CategoryID == *c.CategoryID {
				opts.SuperSubCategories = append(opts.SuperSubCategories, s)
			}
		default:
			opts.SuperSubCategories = append(opts.SuperSubCategories, s)
		}
	}
	return opts
}
