// internal/domain/models/instructor.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Instructor is a coach/therapist profile shown on the site.
type Instructor struct {
	ID     primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name   string             `bson:"name" json:"name"`
	NameCI string             `bson:"name_ci" json:"-"`

	Profession string    `bson:"profession,omitempty" json:"profession,omitempty"`
	Bio        Localized `bson:"bio,omitempty" json:"bio,omitempty"`
	Content    Localized `bson:"content,omitempty" json:"content,omitempty"` // sanitized HTML

	ProfileImageURL string   `bson:"profile_image_url,omitempty" json:"profile_image_url,omitempty"`
	CertificateURLs []string `bson:"certificate_urls,omitempty" json:"certificate_urls,omitempty"`

	CoursesCount  int     `bson:"courses_count" json:"courses_count"`
	StudentsCount int     `bson:"students_count" json:"students_count"`
	Rating        float64 `bson:"rating" json:"rating"`

	Status string `bson:"status" json:"status"`

	CreatedAt time.Time  `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time  `bson:"updated_at" json:"updated_at"`
	DeletedAt *time.Time `bson:"deleted_at,omitempty" json:"deleted_at,omitempty"`
}
