// internal/domain/models/exercise.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Exercise difficulty values.
const (
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"
)

// Difficulties lists the valid exercise difficulty values.
var Difficulties = []string{DifficultyEasy, DifficultyMedium, DifficultyHard}

// IsValidDifficulty reports whether d is a known difficulty value.
func IsValidDifficulty(d string) bool {
	for _, v := range Difficulties {
		if v == d {
			return true
		}
	}
	return false
}

// Exercise is a single guided movement with its demo video.
type Exercise struct {
	ID     primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name   Localized          `bson:"name" json:"name"`
	NameCI string             `bson:"name_ci" json:"-"`

	Description Localized `bson:"description,omitempty" json:"description,omitempty"`

	VideoURL     string `bson:"video_url,omitempty" json:"video_url,omitempty"`
	ThumbnailURL string `bson:"thumbnail_url,omitempty" json:"thumbnail_url,omitempty"`

	Duration   string `bson:"duration,omitempty" json:"duration,omitempty"` // "MM:SS"
	Difficulty string `bson:"difficulty" json:"difficulty"`                 // easy | medium | hard

	Repetitions string `bson:"repetitions,omitempty" json:"repetitions,omitempty"`
	Sets        string `bson:"sets,omitempty" json:"sets,omitempty"`
	RestTime    string `bson:"rest_time,omitempty" json:"rest_time,omitempty"`

	IsPopular bool `bson:"is_popular" json:"is_popular"`

	CategoryID    primitive.ObjectID  `bson:"category_id" json:"category_id"`
	SubcategoryID *primitive.ObjectID `bson:"subcategory_id,omitempty" json:"subcategory_id,omitempty"`
	SetID         *primitive.ObjectID `bson:"set_id,omitempty" json:"set_id,omitempty"`

	Status string `bson:"status" json:"status"`

	CreatedAt time.Time  `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time  `bson:"updated_at" json:"updated_at"`
	DeletedAt *time.Time `bson:"deleted_at,omitempty" json:"deleted_at,omitempty"`
}
