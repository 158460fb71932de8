package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/example/voltline/internal/models"
)

// Crumb is one breadcrumb entry.
type Crumb struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// Contents is what sits directly under a node.
type Contents struct {
	SubCategories      []models.SubCategory
	SuperSubCategories []models.SuperSubCategory
	Products           []models.Product
}

// Resolver answers slug-path and breadcrumb questions against a Store.
type Resolver struct {
	store Store
}

// NewResolver constructs a Resolver.
func NewResolver(store Store) *Resolver {
	return &Resolver{store: store}
}

// Resolve maps a slug path to a node. The path length selects the level:
// one segment is a category, two a sub-category, three a super-sub-category.
// The last segment is looked up and the leading segments must match the
// ancestors of the row found.
func (r *Resolver) Resolve(ctx context.Context, slugs []string, scope Scope) (Node, error) {
	level, ok := models.LevelForDepth(len(slugs))
	if !ok {
		return Node{}, ErrNotFound
	}
	for _, s := range slugs {
		if strings.TrimSpace(s) == "" {
			return Node{}, ErrNotFound
		}
	}
	slug := slugs[len(slugs)-1]

	switch level {
	case models.LevelCategory:
		c, err := r.store.CategoryBySlug(ctx, slug)
		if err != nil {
			return Node{}, err
		}
		if !scope.visible(c.Status) {
			return Node{}, ErrNotFound
		}
		return CategoryNode(c), nil

	case models.LevelSubCategory:
		rows, err := r.store.SubCategoriesBySlug(ctx, slug)
		if err != nil {
			return Node{}, err
		}
		var candidates []Node
		for i := range rows {
			if scope.visible(rows[i].Status) {
				candidates = append(candidates, SubCategoryNode(&rows[i]))
			}
		}
		return r.pick(ctx, candidates, slugs)

	default:
		rows, err := r.store.SuperSubCategoriesBySlug(ctx, slug)
		if err != nil {
			return Node{}, err
		}
		var candidates []Node
		for i := range rows {
			if scope.visible(rows[i].Status) {
				candidates = append(candidates, SuperSubCategoryNode(&rows[i]))
			}
		}
		return r.pick(ctx, candidates, slugs)
	}
}

// Lookup finds a node by its own slug at level, ignoring ancestry. When
// several rows share the slug the first visible one in list order wins.
func (r *Resolver) Lookup(ctx context.Context, level models.Level, slug string, scope Scope) (Node, error) {
	if strings.TrimSpace(slug) == "" {
		return Node{}, ErrNotFound
	}

	switch level {
	case models.LevelCategory:
		return r.Resolve(ctx, []string{slug}, scope)
	case models.LevelSubCategory:
		rows, err := r.store.SubCategoriesBySlug(ctx, slug)
		if err != nil {
			return Node{}, err
		}
		for i := range rows {
			if scope.visible(rows[i].Status) {
				return SubCategoryNode(&rows[i]), nil
			}
		}
	case models.LevelSuperSubCategory:
		rows, err := r.store.SuperSubCategoriesBySlug(ctx, slug)
		if err != nil {
			return Node{}, err
		}
		for i := range rows {
			if scope.visible(rows[i].Status) {
				return SuperSubCategoryNode(&rows[i]), nil
			}
		}
	}
	return Node{}, ErrNotFound
}

// pick returns the candidate whose ancestor slugs equal the path prefix.
// A path whose prefix matches no candidate is not found, so the URL and the
// breadcrumb always agree. A candidate with a missing ancestor surfaces as
// ErrBrokenHierarchy when nothing else matches.
func (r *Resolver) pick(ctx context.Context, candidates []Node, slugs []string) (Node, error) {
	prefix := slugs[:len(slugs)-1]
	miss := ErrNotFound
	for _, n := range candidates {
		crumbs, err := r.ancestry(ctx, n.parentRef())
		if err != nil {
			if errors.Is(err, ErrBrokenHierarchy) {
				miss = err
				continue
			}
			return Node{}, err
		}
		if slugsEqual(crumbs, prefix) {
			return n, nil
		}
	}
	return Node{}, miss
}

// Breadcrumb returns the trail from the root category down to node.
// A missing ancestor yields ErrBrokenHierarchy rather than a short trail.
func (r *Resolver) Breadcrumb(ctx context.Context, node Node) ([]Crumb, error) {
	crumbs, err := r.ancestry(ctx, node.parentRef())
	if err != nil {
		return nil, err
	}
	return append(crumbs, node.crumb()), nil
}

// ProductBreadcrumb returns the trail of the product's placement followed by
// the product itself.
func (r *Resolver) ProductBreadcrumb(ctx context.Context, p *models.Product) ([]Crumb, error) {
	crumbs, err := r.ancestry(ctx, p.Ref())
	if err != nil {
		return nil, err
	}
	return append(crumbs, Crumb{Name: p.Name, Slug: p.Slug}), nil
}

// Contents lists the direct children of node and the products assigned to it.
func (r *Resolver) Contents(ctx context.Context, node Node, scope Scope) (Contents, error) {
	var out Contents
	var err error

	switch node.Level {
	case models.LevelCategory:
		out.SubCategories, err = r.store.SubCategoriesOf(ctx, node.Category.ID, scope.activeOnly())
	case models.LevelSubCategory:
		out.SuperSubCategories, err = r.store.SuperSubCategoriesOf(ctx, node.SubCategory.ID, scope.activeOnly())
	}
	if err != nil {
		return Contents{}, err
	}

	out.Products, err = r.store.ProductsAt(ctx, node.Ref(), scope.activeOnly())
	if err != nil {
		return Contents{}, err
	}
	return out, nil
}

// ancestry walks parent references from ref up to the root category and
// returns the crumbs root-first, including ref itself.
func (r *Resolver) ancestry(ctx context.Context, ref models.Ref) ([]Crumb, error) {
	var crumbs []Crumb
	level, id := ref.Level, ref.ID

	for level != models.LevelNone {
		switch level {
		case models.LevelSuperSubCategory:
			s, err := r.store.SuperSubCategoryByID(ctx, id)
			if err != nil {
				return nil, broken(err, ref, level, id.String())
			}
			crumbs = append(crumbs, Crumb{Name: s.Name, Slug: s.Slug})
			level, id = models.LevelSubCategory, s.SubCategoryID

		case models.LevelSubCategory:
			s, err := r.store.SubCategoryByID(ctx, id)
			if err != nil {
				return nil, broken(err, ref, level, id.String())
			}
			crumbs = append(crumbs, Crumb{Name: s.Name, Slug: s.Slug})
			level, id = models.LevelCategory, s.CategoryID

		case models.LevelCategory:
			c, err := r.store.CategoryByID(ctx, id)
			if err != nil {
				return nil, broken(err, ref, level, id.String())
			}
			crumbs = append(crumbs, Crumb{Name: c.Name, Slug: c.Slug})
			level = models.LevelNone

		default:
			return nil, fmt.Errorf("%w: unknown level %s", ErrBrokenHierarchy, level)
		}
	}

	for i, j := 0, len(crumbs)-1; i < j; i, j = i+1, j-1 {
		crumbs[i], crumbs[j] = crumbs[j], crumbs[i]
	}
	return crumbs, nil
}

func broken(err error, from models.Ref, level models.Level, id string) error {
	if errors.Is(err, ErrNotFound) {
		return fmt.Errorf("%w: %s references missing %s %s", ErrBrokenHierarchy, from, level, id)
	}
	return err
}

func slugsEqual(crumbs []Crumb, slugs []string) bool {
	if len(crumbs) != len(slugs) {
		return false
	}
	for i := range crumbs {
		if crumbs[i].Slug != slugs[i] {
			return false
		}
	}
	return true
}
