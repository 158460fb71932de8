package catalog

import (
	"context"

	"github.com/google/uuid"

	"github.com/example/voltline/internal/models"
)

type memStore struct {
	categories []models.Category
	subs       []models.SubCategory
	supers     []models.SuperSubCategory
	products   []models.Product
}

func (m *memStore) CategoryBySlug(_ context.Context, slug string) (*models.Category, error) {
	for i := range m.categories {
		if m.categories[i].Slug == slug {
			return &m.categories[i], nil
		}
	}
	return nil, ErrNotFound
}

func (m *memStore) SubCategoriesBySlug(_ context.Context, slug string) ([]models.SubCategory, error) {
	var out []models.SubCategory
	for _, s := range m.subs {
		if s.Slug == slug {
			out = append(out, s)
		}
	}
	return out, nil
}

func (m *memStore) SuperSubCategoriesBySlug(_ context.Context, slug string) ([]models.SuperSubCategory, error) {
	var out []models.SuperSubCategory
	for _, s := range m.supers {
		if s.Slug == slug {
			out = append(out, s)
		}
	}
	return out, nil
}

func (m *memStore) CategoryByID(_ context.Context, id uuid.UUID) (*models.Category, error) {
	for i := range m.categories {
		if m.categories[i].ID == id {
			return &m.categories[i], nil
		}
	}
	return nil, ErrNotFound
}

func (m *memStore) SubCategoryByID(_ context.Context, id uuid.UUID) (*models.SubCategory, error) {
	for i := range m.subs {
		if m.subs[i].ID == id {
			return &m.subs[i], nil
		}
	}
	return nil, ErrNotFound
}

func (m *memStore) SuperSubCategoryByID(_ context.Context, id uuid.UUID) (*models.SuperSubCategory, error) {
	for i := range m.supers {
		if m.supers[i].ID == id {
			return &m.supers[i], nil
		}
	}
	return nil, ErrNotFound
}

func (m *memStore) SubCategoriesOf(_ context.Context, categoryID uuid.UUID, activeOnly bool) ([]models.SubCategory, error) {
	out := []models.SubCategory{}
	for _, s := range m.subs {
		if s.CategoryID == categoryID && (!activeOnly || s.Status.IsActive()) {
			out = append(out, s)
		}
	}
	return out, nil
}

func (m *memStore) SuperSubCategoriesOf(_ context.Context, subID uuid.UUID, activeOnly bool) ([]models.SuperSubCategory, error) {
	out := []models.SuperSubCategory{}
	for _, s := range m.supers {
		if s.SubCategoryID == subID && (!activeOnly || s.Status.IsActive()) {
			out = append(out, s)
		}
	}
	return out, nil
}

func (m *memStore) ProductsAt(_ context.Context, ref models.Ref, activeOnly bool) ([]models.Product, error) {
	out := []models.Product{}
	for _, p := range m.products {
		if p.Ref() == ref && (!activeOnly || p.Status.IsActive()) {
			out = append(out, p)
		}
	}
	return out, nil
}

// fixture is the taxonomy most tests share:
//
//	power (Power)
//	  dc (DC)
//	    bench (Bench supplies)
//	test-equipment
//	  oscilloscopes
//	    digital-storage
//	  dc (a second "dc" under another category)
type fixture struct {
	store *memStore

	power, testEq       models.Category
	dc, scopes, otherDC models.SubCategory
	bench, dso          models.SuperSubCategory
}

func newFixture() *fixture {
	f := &fixture{}
	f.power = models.Category{BaseModel: models.BaseModel{ID: uuid.New()}, Name: "Power", Slug: "power", Status: models.StatusActive}
	f.testEq = models.Category{BaseModel: models.BaseModel{ID: uuid.New()}, Name: "Test Equipment", Slug: "test-equipment", Status: models.StatusActive}

	f.dc = models.SubCategory{BaseModel: models.BaseModel{ID: uuid.New()}, Name: "DC", Slug: "dc", CategoryID: f.power.ID, Status: models.StatusActive}
	f.scopes = models.SubCategory{BaseModel: models.BaseModel{ID: uuid.New()}, Name: "Oscilloscopes", Slug: "oscilloscopes", CategoryID: f.testEq.ID, Status: models.StatusActive}
	f.otherDC = models.SubCategory{BaseModel: models.BaseModel{ID: uuid.New()}, Name: "DC Loads", Slug: "dc", CategoryID: f.testEq.ID, Status: models.StatusActive}

	f.bench = models.SuperSubCategory{BaseModel: models.BaseModel{ID: uuid.New()}, Name: "Bench supplies", Slug: "bench", SubCategoryID: f.dc.ID, Status: models.StatusActive}
	f.dso = models.SuperSubCategory{BaseModel: models.BaseModel{ID: uuid.New()}, Name: "Digital Storage", Slug: "digital-storage", SubCategoryID: f.scopes.ID, Status: models.StatusActive}

	f.store = &memStore{
		categories: []models.Category{f.power, f.testEq},
		subs:       []models.SubCategory{f.dc, f.scopes, f.otherDC},
		supers:     []models.SuperSubCategory{f.bench, f.dso},
	}
	return f
}

func (f *fixture) index() *Index {
	return NewIndex(f.store.categories, f.store.subs, f.store.supers)
}

func product(name string, ref models.Ref) models.Product {
	p := models.Product{BaseModel: models.BaseModel{ID: uuid.New()}, Name: name, Slug: name, Status: models.StatusActive}
	p.SetRef(ref)
	return p
}
