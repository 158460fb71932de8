package models

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductRefPrefersMostSpecific(t *testing.T) {
	cat, sub, super := uuid.New(), uuid.New(), uuid.New()

	p := Product{CategoryID: &cat}
	assert.Equal(t, Ref{Level: LevelCategory, ID: cat}, p.Ref())

	p.SubCategoryID = &sub
	assert.Equal(t, LevelSubCategory, p.Ref().Level)

	p.SuperSubCategoryID = &super
	assert.Equal(t, Ref{Level: LevelSuperSubCategory, ID: super}, p.Ref())
	assert.Equal(t, 3, p.AssignedLevels())

	assert.True(t, (&Product{}).Ref().IsZero())
}

func TestProductSetRefClearsOtherColumns(t *testing.T) {
	cat, sub := uuid.New(), uuid.New()
	p := Product{CategoryID: &cat, SubCategoryID: &sub}

	super := uuid.New()
	p.SetRef(Ref{Level: LevelSuperSubCategory, ID: super})

	require.NotNil(t, p.SuperSubCategoryID)
	assert.Equal(t, super, *p.SuperSubCategoryID)
	assert.Nil(t, p.CategoryID)
	assert.Nil(t, p.SubCategoryID)
	assert.Equal(t, 1, p.AssignedLevels())

	p.SetRef(Ref{})
	assert.Equal(t, 0, p.AssignedLevels())
}

func TestFeatureList(t *testing.T) {
	p := Product{KeyFeatures: "  100 MHz bandwidth\n\n- 4 channels\r\n1 GSa/s  \n-\n"}
	assert.Equal(t, []string{"100 MHz bandwidth", "4 channels", "1 GSa/s"}, p.FeatureList())
	assert.Empty(t, (&Product{}).FeatureList())
}

func TestImages(t *testing.T) {
	second := "https://cdn.example/b.png"
	empty := ""
	p := Product{ImageURL: "https://cdn.example/a.png", ImageURL2: &second, ImageURL3: &empty}
	assert.Equal(t, []string{"https://cdn.example/a.png", second}, p.Images())
}

func TestLevelForDepth(t *testing.T) {
	for depth, want := range map[int]Level{1: LevelCategory, 2: LevelSubCategory, 3: LevelSuperSubCategory} {
		got, ok := LevelForDepth(depth)
		assert.True(t, ok)
		assert.Equal(t, want, got)
		assert.Equal(t, depth, got.Depth())
	}
	for _, depth := range []int{0, 4, -1} {
		_, ok := LevelForDepth(depth)
		assert.False(t, ok)
	}
}

func TestLevelMarshalJSON(t *testing.T) {
	out, err := json.Marshal(map[string]Level{"type": LevelSubCategory})
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"sub_category"}`, string(out))
}
