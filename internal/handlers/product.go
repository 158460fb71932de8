package handlers

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/example/voltline/internal/catalog"
	"github.com/example/voltline/internal/models"
	"github.com/example/voltline/internal/utils"
)

type productRequest struct {
	Name               string        `json:"name" validate:"required,max=200"`
	Slug               string        `json:"slug" validate:"omitempty,slug,max=200"`
	Description        string        `json:"description"`
	KeyFeatures        string        `json:"key_features"`
	CategoryID         *uuid.UUID    `json:"category_id"`
	SubCategoryID      *uuid.UUID    `json:"sub_category_id"`
	SuperSubCategoryID *uuid.UUID    `json:"super_sub_category_id"`
	ImageURL           string        `json:"image_url" validate:"omitempty,url"`
	ImageURL2          *string       `json:"image_url_2" validate:"omitempty,url"`
	ImageURL3          *string       `json:"image_url_3" validate:"omitempty,url"`
	CataloguePDFURL    *string       `json:"catalogue_pdf_url" validate:"omitempty,url"`
	Featured           bool          `json:"featured"`
	Status             models.Status `json:"status" validate:"omitempty,oneof=active inactive"`
	SortOrder          int           `json:"sort_order"`
}

// placement converts the three optional ids into a single ref.
func (r productRequest) placement() (models.Ref, error) {
	var refs []models.Ref
	if r.CategoryID != nil {
		refs = append(refs, models.Ref{Level: models.LevelCategory, ID: *r.CategoryID})
	}
	if r.SubCategoryID != nil {
		refs = append(refs, models.Ref{Level: models.LevelSubCategory, ID: *r.SubCategoryID})
	}
	if r.SuperSubCategoryID != nil {
		refs = append(refs, models.Ref{Level: models.LevelSuperSubCategory, ID: *r.SuperSubCategoryID})
	}

	switch len(refs) {
	case 0:
		return models.Ref{}, nil
	case 1:
		return refs[0], nil
	}
	return models.Ref{}, fmt.Errorf("%w: set only one of category_id, sub_category_id, super_sub_category_id", catalog.ErrInvalidPlacement)
}

func (r *productRequest) normalize() error {
	return deriveSlug(&r.Slug, r.Name)
}

func (r productRequest) apply(p *models.Product) error {
	ref, err := r.placement()
	if err != nil {
		return err
	}

	p.Name = r.Name
	p.Slug = r.Slug
	p.Description = r.Description
	p.KeyFeatures = r.KeyFeatures
	p.SetRef(ref)
	p.ImageURL = r.ImageURL
	p.ImageURL2 = r.ImageURL2
	p.ImageURL3 = r.ImageURL3
	p.CataloguePDFURL = r.CataloguePDFURL
	p.Featured = r.Featured
	p.SortOrder = r.SortOrder
	switch {
	case r.Status != "":
		p.Status = r.Status
	case p.Status == "":
		p.Status = models.StatusActive
	}
	return nil
}

// ListProducts returns products narrowed by the cascading dashboard filters.
func (h *AdminCatalogHandler) ListProducts(c *fiber.Ctx) error {
	criteria, err := parseCriteria(c)
	if err != nil {
		return err
	}
	search := strings.ToLower(strings.TrimSpace(c.Query("q")))

	ctx, cancel := queryContext(c, h.timeout)
	defer cancel()

	idx, err := h.store.Index(ctx)
	if err != nil {
		return err
	}
	products, err := h.store.Products(ctx, false)
	if err != nil {
		return err
	}

	criteria = criteria.Normalize(idx)
	matched := catalog.FilterProducts(products, idx, criteria)
	if search != "" {
		kept := matched[:0]
		for _, p := range matched {
			if strings.Contains(strings.ToLower(p.Name), search) || strings.Contains(p.Slug, search) {
				kept = append(kept, p)
			}
		}
		matched = kept
	}

	pg := utils.ParsePagination(c)
	return c.JSON(fiber.Map{
		"success":    true,
		"data":       utils.Paginate(matched, pg),
		"pagination": pg.Meta(int64(len(matched))),
	})
}

// ProductFilters returns the option lists for the cascading filter selects.
func (h *AdminCatalogHandler) ProductFilters(c *fiber.Ctx) error {
	criteria, err := parseCriteria(c)
	if err != nil {
		return err
	}
	ctx, cancel := queryContext(c, h.timeout)
	defer cancel()

	idx, err := h.store.Index(ctx)
	if err != nil {
		return err
	}
	criteria = criteria.Normalize(idx)

	return c.JSON(fiber.Map{"success": true, "data": idx.Options(criteria)})
}

// GetProduct returns a product of any status by ID.
func (h *AdminCatalogHandler) GetProduct(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	ctx, cancel := queryContext(c, h.timeout)
	defer cancel()

	product, err := h.store.ProductByID(ctx, id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": product})
}

// CreateProduct persists a new product.
func (h *AdminCatalogHandler) CreateProduct(c *fiber.Ctx) error {
	var req productRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	var product models.Product
	if err := req.apply(&product); err != nil {
		return err
	}

	ctx, cancel := queryContext(c, h.timeout)
	defer cancel()

	if err := h.store.CreateProduct(ctx, &product); err != nil {
		return err
	}
	h.invalidate(ctx)

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": product})
}

// UpdateProduct replaces the editable fields of a product.
func (h *AdminCatalogHandler) UpdateProduct(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	var req productRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	ctx, cancel := queryContext(c, h.timeout)
	defer cancel()

	product, err := h.store.ProductByID(ctx, id)
	if err != nil {
		return err
	}
	if err := req.apply(product); err != nil {
		return err
	}
	if err := h.store.SaveProduct(ctx, product); err != nil {
		return err
	}
	h.invalidate(ctx)

	return c.JSON(fiber.Map{"success": true, "data": product})
}

// DeleteProduct removes a product by ID.
func (h *AdminCatalogHandler) DeleteProduct(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	ctx, cancel := queryContext(c, h.timeout)
	defer cancel()

	if err := h.store.DeleteProduct(ctx, id); err != nil {
		return err
	}
	h.invalidate(ctx)
	return c.SendStatus(fiber.StatusNoContent)
}

// parseCriteria reads the filter query params. Selecting a level resets the
// levels below it, so the order of application matters.
func parseCriteria(c *fiber.Ctx) (catalog.Criteria, error) {
	var crit catalog.Criteria

	categoryID, err := queryUUID(c, "category_id")
	if err != nil {
		return crit, err
	}
	subID, err := queryUUID(c, "sub_category_id")
	if err != nil {
		return crit, err
	}
	superID, err := queryUUID(c, "super_sub_category_id")
	if err != nil {
		return crit, err
	}
	crit = crit.WithCategory(categoryID).WithSubCategory(subID).WithSuperSubCategory(superID)

	if s := c.Query("status"); s != "" {
		status := models.Status(s)
		if status != models.StatusActive && status != models.StatusInactive {
			return crit, fiber.NewError(fiber.StatusBadRequest, "invalid status")
		}
		crit.Status = &status
	}

	if f := c.Query("featured"); f != "" {
		featured, err := strconv.ParseBool(f)
		if err != nil {
			return crit, fiber.NewError(fiber.StatusBadRequest, "invalid featured flag")
		}
		crit.Featured = &featured
	}
	return crit, nil
}

func queryUUID(c *fiber.Ctx, key string) (*uuid.UUID, error) {
	raw := c.Query(key)
	if raw == "" {
		return nil, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "invalid "+key)
	}
	return &id, nil
}
