// internal/domain/models/course.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Course is an instructor-led program assembled from an ordered list of sets.
type Course struct {
	ID     primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name   Localized          `bson:"name" json:"name"`
	NameCI string             `bson:"name_ci" json:"-"`

	Description Localized `bson:"description,omitempty" json:"description,omitempty"`

	InstructorID *primitive.ObjectID  `bson:"instructor_id,omitempty" json:"instructor_id,omitempty"`
	SetIDs       []primitive.ObjectID `bson:"set_ids,omitempty" json:"set_ids,omitempty"`

	Price        Price  `bson:"price" json:"price"`
	ThumbnailURL string `bson:"thumbnail_url,omitempty" json:"thumbnail_url,omitempty"`

	IsPublished bool   `bson:"is_published" json:"is_published"`
	Status      string `bson:"status" json:"status"`

	CreatedAt time.Time  `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time  `bson:"updated_at" json:"updated_at"`
	DeletedAt *time.Time `bson:"deleted_at,omitempty" json:"deleted_at,omitempty"`
}
