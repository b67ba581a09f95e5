// internal/domain/models/category.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Category is one node of the two-level catalog taxonomy. Subcategories are
// plain categories with ParentID set; the tree must stay acyclic, which the
// store enforces on create/update.
type Category struct {
	ID     primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name   Localized          `bson:"name" json:"name"`
	NameCI string             `bson:"name_ci" json:"-"` // folded EN name for search/sort

	Description Localized `bson:"description,omitempty" json:"description,omitempty"`
	ImageURL    string    `bson:"image_url,omitempty" json:"image_url,omitempty"`

	ParentID *primitive.ObjectID `bson:"parent_id,omitempty" json:"parent_id,omitempty"`

	SortOrder   int    `bson:"sort_order" json:"sort_order"`
	IsPublished bool   `bson:"is_published" json:"is_published"`
	Status      string `bson:"status" json:"status"` // "active" or "disabled"

	CreatedAt time.Time  `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time  `bson:"updated_at" json:"updated_at"`
	DeletedAt *time.Time `bson:"deleted_at,omitempty" json:"deleted_at,omitempty"`
}

// IsSubcategory reports whether the category has a parent.
func (c *Category) IsSubcategory() bool {
	return c.ParentID != nil && !c.ParentID.IsZero()
}
