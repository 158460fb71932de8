package handlers

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/example/voltline/internal/cache"
	"github.com/example/voltline/internal/catalog"
	"github.com/example/voltline/internal/models"
	"github.com/example/voltline/internal/store"
)

// CatalogHandler serves the public catalog pages.
type CatalogHandler struct {
	store    *store.Store
	resolver *catalog.Resolver
	cache    cache.Cache
	timeout  time.Duration
	log      *zap.SugaredLogger
	now      func() time.Time
}

// NewCatalogHandler constructs CatalogHandler.
func NewCatalogHandler(st *store.Store, c cache.Cache, timeout time.Duration, log *zap.SugaredLogger) *CatalogHandler {
	return &CatalogHandler{
		store:    st,
		resolver: catalog.NewResolver(st),
		cache:    c,
		timeout:  timeout,
		log:      log,
		now:      time.Now,
	}
}

// productView adds the derived display fields to a product.
type productView struct {
	models.Product
	Features []string `json:"features"`
	Images   []string `json:"images"`
}

func newProductView(p models.Product) productView {
	v := productView{Product: p, Features: p.FeatureList(), Images: p.Images()}
	if v.Features == nil {
		v.Features = []string{}
	}
	if v.Images == nil {
		v.Images = []string{}
	}
	return v
}

// cached serves the response for the current URL from the cache, or builds
// and stores it. Cache failures only get logged.
func (h *CatalogHandler) cached(c *fiber.Ctx, build func(ctx context.Context) (any, error)) error {
	ctx, cancel := queryContext(c, h.timeout)
	defer cancel()

	gen, err := cache.Generation(ctx, h.cache)
	if err != nil {
		h.log.Warnw("cache read failed", "key", "generation", "error", err)
		body, err := build(ctx)
		if err != nil {
			return err
		}
		return c.JSON(body)
	}

	key := cache.Key(gen, c.OriginalURL())
	var raw json.RawMessage
	hit, err := h.cache.Get(ctx, key, &raw)
	if err != nil {
		h.log.Warnw("cache read failed", "key", key, "error", err)
	}
	if hit {
		c.Set("X-Cache", "HIT")
		c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		return c.Send(raw)
	}

	body, err := build(ctx)
	if err != nil {
		return err
	}
	if err := h.cache.Set(ctx, key, body); err != nil {
		h.log.Warnw("cache write failed", "key", key, "error", err)
	}
	return c.JSON(body)
}

// ListCategories returns the active top-level categories.
func (h *CatalogHandler) ListCategories(c *fiber.Ctx) error {
	return h.cached(c, func(ctx context.Context) (any, error) {
		cats, err := h.store.Categories(ctx, true)
		if err != nil {
			return nil, err
		}
		return fiber.Map{"categories": cats}, nil
	})
}

// CategoryContents returns the sub-categories and products of a category.
func (h *CatalogHandler) CategoryContents(c *fiber.Ctx) error {
	slug := c.Params("slug")
	return h.cached(c, func(ctx context.Context) (any, error) {
		contents, err := h.contentsOf(ctx, models.LevelCategory, slug)
		if err != nil {
			return nil, err
		}
		return fiber.Map{"subCategories": contents.SubCategories, "products": contents.Products}, nil
	})
}

// SubCategoryContents returns the super-sub-categories and products of a sub-category.
func (h *CatalogHandler) SubCategoryContents(c *fiber.Ctx) error {
	slug := c.Params("slug")
	return h.cached(c, func(ctx context.Context) (any, error) {
		contents, err := h.contentsOf(ctx, models.LevelSubCategory, slug)
		if err != nil {
			return nil, err
		}
		return fiber.Map{"superSubCategories": contents.SuperSubCategories, "products": contents.Products}, nil
	})
}

// SuperSubCategoryContents returns the products of a super-sub-category.
func (h *CatalogHandler) SuperSubCategoryContents(c *fiber.Ctx) error {
	slug := c.Params("slug")
	return h.cached(c, func(ctx context.Context) (any, error) {
		contents, err := h.contentsOf(ctx, models.LevelSuperSubCategory, slug)
		if err != nil {
			return nil, err
		}
		return fiber.Map{"products": contents.Products}, nil
	})
}

func (h *CatalogHandler) contentsOf(ctx context.Context, level models.Level, slug string) (catalog.Contents, error) {
	node, err := h.resolver.Lookup(ctx, level, slug, catalog.ScopePublic)
	if err != nil {
		return catalog.Contents{}, err
	}
	return h.resolver.Contents(ctx, node, catalog.ScopePublic)
}

// BrowsePath resolves /api/products/<category>[/<sub>[/<super-sub>]].
func (h *CatalogHandler) BrowsePath(c *fiber.Ctx) error {
	slugs := splitPath(c.Params("*"))
	return h.cached(c, func(ctx context.Context) (any, error) {
		node, err := h.resolver.Resolve(ctx, slugs, catalog.ScopePublic)
		if err != nil {
			return nil, err
		}
		contents, err := h.resolver.Contents(ctx, node, catalog.ScopePublic)
		if err != nil {
			return nil, err
		}
		crumbs, err := h.resolver.Breadcrumb(ctx, node)
		if err != nil {
			return nil, err
		}

		body := fiber.Map{
			"type":       node.Level,
			"data":       node.Data(),
			"products":   contents.Products,
			"breadcrumb": crumbs,
		}
		switch node.Level {
		case models.LevelCategory:
			body["subCategories"] = contents.SubCategories
		case models.LevelSubCategory:
			body["superSubCategories"] = contents.SuperSubCategories
		}
		return body, nil
	})
}

// GetProduct returns an active product with its breadcrumb.
func (h *CatalogHandler) GetProduct(c *fiber.Ctx) error {
	slug := c.Params("slug")
	return h.cached(c, func(ctx context.Context) (any, error) {
		p, err := h.store.ProductBySlug(ctx, slug, true)
		if err != nil {
			return nil, err
		}
		crumbs, err := h.resolver.ProductBreadcrumb(ctx, p)
		if err != nil {
			return nil, err
		}
		return fiber.Map{"product": newProductView(*p), "breadcrumb": crumbs}, nil
	})
}

// FeaturedProducts returns the active featured products, rotated so the
// list starts at a different product each day.
func (h *CatalogHandler) FeaturedProducts(c *fiber.Ctx) error {
	ctx, cancel := queryContext(c, h.timeout)
	defer cancel()

	products, err := h.store.FeaturedProducts(ctx)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"products": catalog.Rotate(products, h.now().YearDay())})
}

func splitPath(p string) []string {
	p = strings.Trim(p, "/")
	if p == "" {
		return nil
	}
	return strings.Split(p, "/")
}
