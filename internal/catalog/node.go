package catalog

import "github.com/example/voltline/internal/models"

// Node is a resolved taxonomy row. Exactly one of the row pointers is set,
// matching Level.
type Node struct {
	Level            models.Level
	Category         *models.Category
	SubCategory      *models.SubCategory
	SuperSubCategory *models.SuperSubCategory
}

// Ref returns the node's level and id.
func (n Node) Ref() models.Ref {
	switch n.Level {
	case models.LevelCategory:
		return models.Ref{Level: n.Level, ID: n.Category.ID}
	case models.LevelSubCategory:
		return models.Ref{Level: n.Level, ID: n.SubCategory.ID}
	case models.LevelSuperSubCategory:
		return models.Ref{Level: n.Level, ID: n.SuperSubCategory.ID}
	}
	return models.Ref{}
}

// Data returns the underlying row for JSON rendering.
func (n Node) Data() any {
	switch n.Level {
	case models.LevelCategory:
		return n.Category
	case models.LevelSubCategory:
		return n.SubCategory
	case models.LevelSuperSubCategory:
		return n.SuperSubCategory
	}
	return nil
}

func (n Node) crumb() Crumb {
	switch n.Level {
	case models.LevelCategory:
		return Crumb{Name: n.Category.Name, Slug: n.Category.Slug}
	case models.LevelSubCategory:
		return Crumb{Name: n.SubCategory.Name, Slug: n.SubCategory.Slug}
	case models.LevelSuperSubCategory:
		return Crumb{Name: n.SuperSubCategory.Name, Slug: n.SuperSubCategory.Slug}
	}
	return Crumb{}
}

func (n Node) parentRef() models.Ref {
	switch n.Level {
	case models.LevelSubCategory:
		return models.Ref{Level: models.LevelCategory, ID: n.SubCategory.CategoryID}
	case models.LevelSuperSubCategory:
		return models.Ref{Level: models.LevelSubCategory, ID: n.SuperSubCategory.SubCategoryID}
	}
	return models.Ref{}
}

// CategoryNode wraps a category row.
func CategoryNode(c *models.Category) Node {
	return Node{Level: models.LevelCategory, Category: c}
}

// SubCategoryNode wraps a sub-category row.
func SubCategoryNode(s *models.SubCategory) Node {
	return Node{Level: models.LevelSubCategory, SubCategory: s}
}

// SuperSubCategoryNode wraps a super-sub-category row.
func SuperSubCategoryNode(s *models.SuperSubCategory) Node {
	return Node{Level: models.LevelSuperSubCategory, SuperSubCategory: s}
}
