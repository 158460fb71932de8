package catalog

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/example/voltline/internal/models"
)

func ids(products []models.Product) []uuid.UUID {
	out := []uuid.UUID{}
	for _, p := range products {
		out = append(out, p.ID)
	}
	return out
}

func TestFilterByCategoryIncludesDescendants(t *testing.T) {
	f := newFixture()
	idx := f.index()

	direct := product("direct", models.Ref{Level: models.LevelCategory, ID: f.power.ID})
	viaSub := product("via-sub", models.Ref{Level: models.LevelSubCategory, ID: f.dc.ID})
	viaSuper := product("via-super", models.Ref{Level: models.LevelSuperSubCategory, ID: f.bench.ID})
	elsewhere := product("elsewhere", models.Ref{Level: models.LevelSuperSubCategory, ID: f.dso.ID})
	unassigned := product("unassigned", models.Ref{})
	all := []models.Product{direct, viaSub, viaSuper, elsewhere, unassigned}

	got := FilterProducts(all, idx, Criteria{}.WithCategory(&f.power.ID))
	assert.Equal(t, []uuid.UUID{direct.ID, viaSub.ID, viaSuper.ID}, ids(got))

	got = FilterProducts(all, idx, Criteria{}.WithCategory(&f.power.ID).WithSubCategory(&f.dc.ID))
	assert.Equal(t, []uuid.UUID{viaSub.ID, viaSuper.ID}, ids(got))

	got = FilterProducts(all, idx, Criteria{}.WithSuperSubCategory(&f.dso.ID))
	assert.Equal(t, []uuid.UUID{elsewhere.ID}, ids(got))

	assert.Len(t, FilterProducts(all, idx, Criteria{}), len(all))
}

func TestFilterScenarioSubCategoryProduct(t *testing.T) {
	cat := models.Category{BaseModel: models.BaseModel{ID: uuid.New()}, Name: "Power", Slug: "power"}
	sub := models.SubCategory{BaseModel: models.BaseModel{ID: uuid.New()}, Name: "DC", Slug: "dc", CategoryID: cat.ID}
	p := product("p100", models.Ref{Level: models.LevelSubCategory, ID: sub.ID})

	idx := NewIndex([]models.Category{cat}, []models.SubCategory{sub}, nil)
	got := FilterProducts([]models.Product{p}, idx, Criteria{CategoryID: &cat.ID})
	assert.Equal(t, []uuid.UUID{p.ID}, ids(got))
}

func TestFilterStatusAndFeatured(t *testing.T) {
	f := newFixture()
	idx := f.index()

	a := product("a", models.Ref{Level: models.LevelCategory, ID: f.power.ID})
	a.Featured = true
	b := product("b", models.Ref{Level: models.LevelCategory, ID: f.power.ID})
	b.Status = models.StatusInactive
	c := product("c", models.Ref{Level: models.LevelCategory, ID: f.testEq.ID})
	c.Featured = true
	all := []models.Product{a, b, c}

	inactive := models.StatusInactive
	yes, no := true, false

	assert.Equal(t, []uuid.UUID{b.ID}, ids(FilterProducts(all, idx, Criteria{Status: &inactive})))
	assert.Equal(t, []uuid.UUID{a.ID, c.ID}, ids(FilterProducts(all, idx, Criteria{Featured: &yes})))
	assert.Equal(t, []uuid.UUID{b.ID}, ids(FilterProducts(all, idx, Criteria{Featured: &no})))
	assert.Equal(t, []uuid.UUID{a.ID}, ids(FilterProducts(all, idx, Criteria{CategoryID: &f.power.ID, Featured: &yes})))
}

func TestFilterIsDeterministic(t *testing.T) {
	f := newFixture()
	idx := f.index()
	all := []models.Product{
		product("a", models.Ref{Level: models.LevelSubCategory, ID: f.dc.ID}),
		product("b", models.Ref{Level: models.LevelSubCategory, ID: f.scopes.ID}),
	}
	c := Criteria{CategoryID: &f.power.ID}

	first := FilterProducts(all, idx, c)
	second := FilterProducts(all, idx, c)
	assert.Equal(t, first, second)
}

func TestWithCategoryResetsDependents(t *testing.T) {
	f := newFixture()
	c := Criteria{}.WithCategory(&f.power.ID).WithSubCategory(&f.dc.ID).WithSuperSubCategory(&f.bench.ID)

	reset := c.WithCategory(&f.testEq.ID)
	assert.Equal(t, f.testEq.ID, *reset.CategoryID)
	assert.Nil(t, reset.SubCategoryID)
	assert.Nil(t, reset.SuperSubCategoryID)

	cleared := c.WithCategory(nil)
	assert.Nil(t, cleared.CategoryID)
	assert.Nil(t, cleared.SubCategoryID)

	sub := c.WithSubCategory(&f.dc.ID)
	assert.Nil(t, sub.SuperSubCategoryID)
	assert.Equal(t, f.power.ID, *sub.CategoryID)
}

func TestNormalizeDropsMismatchedSelections(t *testing.T) {
	f := newFixture()
	idx := f.index()

	c := Criteria{CategoryID: &f.testEq.ID, SubCategoryID: &f.dc.ID, SuperSubCategoryID: &f.bench.ID}.Normalize(idx)
	assert.Equal(t, f.testEq.ID, *c.CategoryID)
	assert.Nil(t, c.SubCategoryID)
	assert.Nil(t, c.SuperSubCategoryID)

	c = Criteria{SubCategoryID: &f.scopes.ID, SuperSubCategoryID: &f.bench.ID}.Normalize(idx)
	assert.Equal(t, f.scopes.ID, *c.SubCategoryID)
	assert.Nil(t, c.SuperSubCategoryID)

	c = Criteria{CategoryID: &f.power.ID, SubCategoryID: &f.dc.ID, SuperSubCategoryID: &f.bench.ID}.Normalize(idx)
	assert.NotNil(t, c.SuperSubCategoryID)
}

func TestAncestry(t *testing.T) {
	f := newFixture()
	idx := f.index()

	p := product("x", models.Ref{Level: models.LevelSuperSubCategory, ID: f.bench.ID})
	a := idx.Ancestors(&p)
	assert.Equal(t, []uuid.UUID{f.power.ID, f.dc.ID, f.bench.ID}, a.IDs())
	assert.True(t, a.Contains(f.dc.ID))
	assert.False(t, a.Contains(f.testEq.ID))
	assert.False(t, a.Contains(uuid.Nil))

	dangling := product("y", models.Ref{Level: models.LevelSuperSubCategory, ID: uuid.New()})
	assert.Len(t, idx.Ancestors(&dangling).IDs(), 1)
}

func TestOptionsCascade(t *testing.T) {
	f := newFixture()
	idx := f.index()

	all := idx.Options(Criteria{})
	assert.Len(t, all.Categories, 2)
	assert.Len(t, all.SubCategories, 3)
	assert.Len(t, all.SuperSubCategories, 2)

	byCategory := idx.Options(Criteria{}.WithCategory(&f.testEq.ID))
	assert.Len(t, byCategory.SubCategories, 2)
	assert.Len(t, byCategory.SuperSubCategories, 1)
	assert.Equal(t, f.dso.ID, byCategory.SuperSubCategories[0].ID)

	bySub := idx.Options(Criteria{}.WithCategory(&f.power.ID).WithSubCategory(&f.dc.ID))
	assert.Len(t, bySub.SuperSubCategories, 1)
	assert.Equal(t, f.bench.ID, bySub.SuperSubCategories[0].ID)
}
