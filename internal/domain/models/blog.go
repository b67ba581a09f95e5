// internal/domain/models/blog.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Blog groups articles under one masthead. Membership lives on the article
// (Article.BlogID); a blog's article list is always a query, so there is no
// stored array to drift out of sync.
type Blog struct {
	ID    primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title Localized          `bson:"title" json:"title"`

	Description   Localized `bson:"description,omitempty" json:"description,omitempty"`
	CoverImageURL string    `bson:"cover_image_url,omitempty" json:"cover_image_url,omitempty"`

	IsPublished bool   `bson:"is_published" json:"is_published"`
	Status      string `bson:"status" json:"status"`

	CreatedAt time.Time  `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time  `bson:"updated_at" json:"updated_at"`
	DeletedAt *time.Time `bson:"deleted_at,omitempty" json:"deleted_at,omitempty"`

	// Articles is populated on detail reads, never stored.
	Articles []Article `bson:"-" json:"articles"`
}
