// internal/domain/models/article.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Author is the article byline subdocument.
type Author struct {
	Name      Localized `bson:"name" json:"name"`
	Bio       Localized `bson:"bio,omitempty" json:"bio,omitempty"`
	AvatarURL string    `bson:"avatar_url,omitempty" json:"avatar_url,omitempty"`
}

// Article is a long-form content piece. Slug is derived from the English
// title and kept unique with a numeric suffix; ReadTime is computed from the
// content when the caller does not supply one.
type Article struct {
	ID    primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title Localized          `bson:"title" json:"title"`
	Slug  string             `bson:"slug" json:"slug"` // unique

	Excerpt Localized `bson:"excerpt,omitempty" json:"excerpt,omitempty"`
	Content Localized `bson:"content,omitempty" json:"content,omitempty"` // sanitized HTML

	Author Author `bson:"author,omitempty" json:"author,omitempty"`

	CategoryIDs []primitive.ObjectID `bson:"category_ids,omitempty" json:"category_ids,omitempty"`
	Tags        []string             `bson:"tags,omitempty" json:"tags,omitempty"`
	BlogID      *primitive.ObjectID  `bson:"blog_id,omitempty" json:"blog_id,omitempty"`

	CoverImageURL string `bson:"cover_image_url,omitempty" json:"cover_image_url,omitempty"`

	IsPublished bool `bson:"is_published" json:"is_published"`
	IsFeatured  bool `bson:"is_featured" json:"is_featured"`

	Views    int64  `bson:"views" json:"views"`
	Likes    int64  `bson:"likes" json:"likes"`
	ReadTime string `bson:"read_time,omitempty" json:"read_time,omitempty"` // minutes, e.g. "4"

	Status string `bson:"status" json:"status"`

	CreatedAt time.Time  `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time  `bson:"updated_at" json:"updated_at"`
	DeletedAt *time.Time `bson:"deleted_at,omitempty" json:"deleted_at,omitempty"`
}
