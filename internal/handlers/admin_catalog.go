package handlers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/example/voltline/internal/cache"
	"github.com/example/voltline/internal/models"
	"github.com/example/voltline/internal/store"
	"github.com/example/voltline/internal/utils"
)

// AdminCatalogHandler manages the taxonomy and products from the dashboard.
type AdminCatalogHandler struct {
	store   *store.Store
	cache   cache.Cache
	timeout time.Duration
	log     *zap.SugaredLogger
}

// NewAdminCatalogHandler constructs AdminCatalogHandler.
func NewAdminCatalogHandler(st *store.Store, c cache.Cache, timeout time.Duration, log *zap.SugaredLogger) *AdminCatalogHandler {
	return &AdminCatalogHandler{store: st, cache: c, timeout: timeout, log: log}
}

// invalidate drops every cached public catalog response after a write.
func (h *AdminCatalogHandler) invalidate(ctx context.Context) {
	if err := cache.Invalidate(ctx, h.cache); err != nil {
		h.log.Warnw("cache invalidation failed", "error", err)
	}
}

type nodeFields struct {
	Name        string        `json:"name" validate:"required,max=200"`
	Slug        string        `json:"slug" validate:"omitempty,slug,max=200"`
	Description string        `json:"description"`
	ImageURL    *string       `json:"image_url" validate:"omitempty,url"`
	Status      models.Status `json:"status" validate:"omitempty,oneof=active inactive"`
	SortOrder   int           `json:"sort_order"`
}

func (f *nodeFields) normalize() error {
	return deriveSlug(&f.Slug, f.Name)
}

// deriveSlug fills an empty slug from the name. Names without any ASCII
// letter or digit leave nothing to derive from and are rejected.
func deriveSlug(slug *string, name string) error {
	if *slug == "" {
		*slug = utils.Slugify(name)
	}
	if !utils.ValidSlug(*slug) {
		return &utils.ValidationError{Fields: []utils.FieldError{{Field: "slug", Rule: "slug"}}}
	}
	return nil
}

func (f nodeFields) status(current models.Status) models.Status {
	if f.Status != "" {
		return f.Status
	}
	if current != "" {
		return current
	}
	return models.StatusActive
}

type categoryRequest struct {
	nodeFields
}

type subCategoryRequest struct {
	nodeFields
	CategoryID uuid.UUID `json:"category_id" validate:"required"`
}

type superSubCategoryRequest struct {
	nodeFields
	SubCategoryID uuid.UUID `json:"sub_category_id" validate:"required"`
}

func (r categoryRequest) apply(c *models.Category) {
	c.Name = r.Name
	c.Slug = r.Slug
	c.Description = r.Description
	c.ImageURL = r.ImageURL
	c.Status = r.status(c.Status)
	c.SortOrder = r.SortOrder
}

func (r subCategoryRequest) apply(s *models.SubCategory) {
	s.Name = r.Name
	s.Slug = r.Slug
	s.Description = r.Description
	s.ImageURL = r.ImageURL
	s.Status = r.status(s.Status)
	s.SortOrder = r.SortOrder
	s.CategoryID = r.CategoryID
}

func (r superSubCategoryRequest) apply(s *models.SuperSubCategory) {
	s.Name = r.Name
	s.Slug = r.Slug
	s.Description = r.Description
	s.ImageURL = r.ImageURL
	s.Status = r.status(s.Status)
	s.SortOrder = r.SortOrder
	s.SubCategoryID = r.SubCategoryID
}

func listPage[T any](h *AdminCatalogHandler, c *fiber.Ctx) error {
	ctx, cancel := queryContext(c, h.timeout)
	defer cancel()

	pg := utils.ParsePagination(c)
	rows, total, err := store.Page[T](ctx, h.store, pg.Limit, pg.Offset)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": rows, "pagination": pg.Meta(total)})
}

// ListCategories returns paginated categories of every status.
func (h *AdminCatalogHandler) ListCategories(c *fiber.Ctx) error {
	return listPage[models.Category](h, c)
}

// GetCategory returns a single category by ID.
func (h *AdminCatalogHandler) GetCategory(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	ctx, cancel := queryContext(c, h.timeout)
	defer cancel()

	category, err := h.store.CategoryByID(ctx, id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": category})
}

// CreateCategory persists a new category.
func (h *AdminCatalogHandler) CreateCategory(c *fiber.Ctx) error {
	var req categoryRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	ctx, cancel := queryContext(c, h.timeout)
	defer cancel()

	var category models.Category
	req.apply(&category)
	if err := h.store.CreateCategory(ctx, &category); err != nil {
		return err
	}
	h.invalidate(ctx)

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": category})
}

// UpdateCategory replaces the editable fields of a category.
func (h *AdminCatalogHandler) UpdateCategory(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	var req categoryRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	ctx, cancel := queryContext(c, h.timeout)
	defer cancel()

	category, err := h.store.CategoryByID(ctx, id)
	if err != nil {
		return err
	}
	req.apply(category)
	if err := h.store.SaveCategory(ctx, category); err != nil {
		return err
	}
	h.invalidate(ctx)

	return c.JSON(fiber.Map{"success": true, "data": category})
}

// DeleteCategory removes a category without dependents.
func (h *AdminCatalogHandler) DeleteCategory(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	ctx, cancel := queryContext(c, h.timeout)
	defer cancel()

	if err := h.store.DeleteCategory(ctx, id); err != nil {
		return err
	}
	h.invalidate(ctx)
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *AdminCatalogHandler) ListSubCategories(c *fiber.Ctx) error {
	return listPage[models.SubCategory](h, c)
}

func (h *AdminCatalogHandler) GetSubCategory(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	ctx, cancel := queryContext(c, h.timeout)
	defer cancel()

	item, err := h.store.SubCategoryByID(ctx, id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": item})
}

func (h *AdminCatalogHandler) CreateSubCategory(c *fiber.Ctx) error {
	var req subCategoryRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	ctx, cancel := queryContext(c, h.timeout)
	defer cancel()

	var item models.SubCategory
	req.apply(&item)
	if err := h.store.CreateSubCategory(ctx, &item); err != nil {
		return err
	}
	h.invalidate(ctx)

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": item})
}

func (h *AdminCatalogHandler) UpdateSubCategory(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	var req subCategoryRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	ctx, cancel := queryContext(c, h.timeout)
	defer cancel()

	item, err := h.store.SubCategoryByID(ctx, id)
	if err != nil {
		return err
	}
	req.apply(item)
	if err := h.store.SaveSubCategory(ctx, item); err != nil {
		return err
	}
	h.invalidate(ctx)

	return c.JSON(fiber.Map{"success": true, "data": item})
}

func (h *AdminCatalogHandler) DeleteSubCategory(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	ctx, cancel := queryContext(c, h.timeout)
	defer cancel()

	if err := h.store.DeleteSubCategory(ctx, id); err != nil {
		return err
	}
	h.invalidate(ctx)
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *AdminCatalogHandler) ListSuperSubCategories(c *fiber.Ctx) error {
	return listPage[models.SuperSubCategory](h, c)
}

func (h *AdminCatalogHandler) GetSuperSubCategory(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	ctx, cancel := queryContext(c, h.timeout)
	defer cancel()

	item, err := h.store.SuperSubCategoryByID(ctx, id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": item})
}

func (h *AdminCatalogHandler) CreateSuperSubCategory(c *fiber.Ctx) error {
	var req superSubCategoryRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	ctx, cancel := queryContext(c, h.timeout)
	defer cancel()

	var item models.SuperSubCategory
	req.apply(&item)
	if err := h.store.CreateSuperSubCategory(ctx, &item); err != nil {
		return err
	}
	h.invalidate(ctx)

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": item})
}

func (h *AdminCatalogHandler) UpdateSuperSubCategory(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	var req superSubCategoryRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	ctx, cancel := queryContext(c, h.timeout)
	defer cancel()

	item, err := h.store.SuperSubCategoryByID(ctx, id)
	if err != nil {
		return err
	}
	req.apply(item)
	if err := h.store.SaveSuperSubCategory(ctx, item); err != nil {
		return err
	}
	h.invalidate(ctx)

	return c.JSON(fiber.Map{"success": true, "data": item})
}

func (h *AdminCatalogHandler) DeleteSuperSubCategory(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	ctx, cancel := queryContext(c, h.timeout)
	defer cancel()

	if err := h.store.DeleteSuperSubCategory(ctx, id); err != nil {
		return err
	}
	h.invalidate(ctx)
	return c.SendStatus(fiber.StatusNoContent)
}
