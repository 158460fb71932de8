package models

import (
	"strings"

	"github.com/google/uuid"
)

// Category is the root of the catalog taxonomy.
type Category struct {
	BaseModel
	Name        string  `gorm:"not null" json:"name"`
	Slug        string  `gorm:"uniqueIndex;not null" json:"slug"`
	Description string  `json:"description"`
	ImageURL    *string `json:"image_url"`
	Status      Status  `gorm:"type:varchar(16);default:active;index" json:"status"`
	SortOrder   int     `gorm:"default:0" json:"sort_order"`
}

// SubCategory belongs to one Category. Slugs are only unique in practice.
type SubCategory struct {
	BaseModel
	Name        string    `gorm:"not null" json:"name"`
	Slug        string    `gorm:"index;not null" json:"slug"`
	Description string    `json:"description"`
	CategoryID  uuid.UUID `gorm:"type:uuid;not null;index" json:"category_id"`
	ImageURL    *string   `json:"image_url"`
	Status      Status    `gorm:"type:varchar(16);default:active;index" json:"status"`
	SortOrder   int       `gorm:"default:0" json:"sort_order"`
}

// SuperSubCategory belongs to one SubCategory and is the deepest taxonomy level.
type SuperSubCategory struct {
	BaseModel
	Name          string    `gorm:"not null" json:"name"`
	Slug          string    `gorm:"index;not null" json:"slug"`
	SubCategoryID uuid.UUID `gorm:"type:uuid;not null;index" json:"sub_category_id"`
	Description   string    `json:"description"`
	ImageURL      *string   `json:"image_url"`
	Status        Status    `gorm:"type:varchar(16);default:active;index" json:"status"`
	SortOrder     int       `gorm:"default:0" json:"sort_order"`
}

// Product is a catalog leaf. It is placed at exactly one taxonomy level
// (or none); use Ref and SetRef rather than the FK columns directly.
type Product struct {
	BaseModel
	Name               string     `gorm:"not null" json:"name"`
	Slug               string     `gorm:"uniqueIndex;not null" json:"slug"`
	Description        string     `json:"description"`
	KeyFeatures        string     `json:"key_features"`
	CategoryID         *uuid.UUID `gorm:"type:uuid;index" json:"category_id"`
	SubCategoryID      *uuid.UUID `gorm:"type:uuid;index" json:"sub_category_id"`
	SuperSubCategoryID *uuid.UUID `gorm:"type:uuid;index" json:"super_sub_category_id"`
	ImageURL           string     `json:"image_url"`
	ImageURL2          *string    `gorm:"column:image_url_2" json:"image_url_2"`
	ImageURL3          *string    `gorm:"column:image_url_3" json:"image_url_3"`
	CataloguePDFURL    *string    `gorm:"column:catalogue_pdf_url" json:"catalogue_pdf_url"`
	Featured           bool       `gorm:"default:false;index" json:"featured"`
	Status             Status     `gorm:"type:varchar(16);default:active;index" json:"status"`
	SortOrder          int        `gorm:"default:0" json:"sort_order"`
}

// Ref returns the taxonomy node the product is assigned to. When the stored
// row carries more than one FK the most specific wins.
func (p *Product) Ref() Ref {
	switch {
	case p.SuperSubCategoryID != nil:
		return Ref{Level: LevelSuperSubCategory, ID: *p.SuperSubCategoryID}
	case p.SubCategoryID != nil:
		return Ref{Level: LevelSubCategory, ID: *p.SubCategoryID}
	case p.CategoryID != nil:
		return Ref{Level: LevelCategory, ID: *p.CategoryID}
	}
	return Ref{}
}

// SetRef assigns the product to ref and clears the other two FK columns.
func (p *Product) SetRef(ref Ref) {
	p.CategoryID, p.SubCategoryID, p.SuperSubCategoryID = nil, nil, nil
	id := ref.ID
	switch ref.Level {
	case LevelCategory:
		p.CategoryID = &id
	case LevelSubCategory:
		p.SubCategoryID = &id
	case LevelSuperSubCategory:
		p.SuperSubCategoryID = &id
	}
}

// AssignedLevels counts how many FK columns are populated.
func (p *Product) AssignedLevels() int {
	n := 0
	for _, id := range []*uuid.UUID{p.CategoryID, p.SubCategoryID, p.SuperSubCategoryID} {
		if id != nil {
			n++
		}
	}
	return n
}

// FeatureList splits KeyFeatures into trimmed non-empty lines.
func (p *Product) FeatureList() []string {
	var out []string
	for _, line := range strings.Split(p.KeyFeatures, "\n") {
		line = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(line), "-"))
		if line != "" {
			out = append(out, line)
		}
	}
	return out
}

// Images returns the populated product image URLs in display order.
func (p *Product) Images() []string {
	var out []string
	if p.ImageURL != "" {
		out = append(out, p.ImageURL)
	}
	for _, u := range []*string{p.ImageURL2, p.ImageURL3} {
		if u != nil && *u != "" {
			out = append(out, *u)
		}
	}
	return out
}
