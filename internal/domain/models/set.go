// internal/domain/models/set.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Difficulty tiers a set's exercises are grouped into.
const (
	TierBeginner     = "beginner"
	TierIntermediate = "intermediate"
	TierAdvanced     = "advanced"
)

// Tiers lists the difficulty tiers in progression order.
var Tiers = []string{TierBeginner, TierIntermediate, TierAdvanced}

// TierLevel describes one difficulty tier inside a set: how many exercises
// it holds and whether it is locked behind a purchase.
type TierLevel struct {
	ExerciseCount int  `bson:"exercise_count" json:"exercise_count"`
	IsLocked      bool `bson:"is_locked" json:"is_locked"`
}

// Price holds the subscription price points for a set, in whole currency
// units per plan length.
type Price struct {
	Monthly     int `bson:"monthly" json:"monthly"`
	ThreeMonths int `bson:"three_months" json:"three_months"`
	SixMonths   int `bson:"six_months" json:"six_months"`
	Yearly      int `bson:"yearly" json:"yearly"`
}

// Set is a purchasable complex of exercises grouped by difficulty tier.
type Set struct {
	ID     primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name   Localized          `bson:"name" json:"name"`
	NameCI string             `bson:"name_ci" json:"-"`

	Description     Localized `bson:"description,omitempty" json:"description,omitempty"`
	Recommendations Localized `bson:"recommendations,omitempty" json:"recommendations,omitempty"`
	Equipment       Localized `bson:"equipment,omitempty" json:"equipment,omitempty"`
	Warnings        Localized `bson:"warnings,omitempty" json:"warnings,omitempty"`

	ThumbnailURL string `bson:"thumbnail_url,omitempty" json:"thumbnail_url,omitempty"`

	TotalExercises int    `bson:"total_exercises" json:"total_exercises"`
	TotalDuration  string `bson:"total_duration,omitempty" json:"total_duration,omitempty"` // "HH:MM" or "MM:SS"

	Levels map[string]TierLevel `bson:"levels,omitempty" json:"levels,omitempty"` // keyed by tier

	Price           Price  `bson:"price" json:"price"`
	DiscountedPrice *Price `bson:"discounted_price,omitempty" json:"discounted_price,omitempty"`

	CategoryID    primitive.ObjectID  `bson:"category_id" json:"category_id"`
	SubcategoryID *primitive.ObjectID `bson:"subcategory_id,omitempty" json:"subcategory_id,omitempty"`

	Status string `bson:"status" json:"status"`

	CreatedAt time.Time  `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time  `bson:"updated_at" json:"updated_at"`
	DeletedAt *time.Time `bson:"deleted_at,omitempty" json:"deleted_at,omitempty"`

	// Exercises is populated by aggregation reads (category complete, set
	// detail); it is never stored on the document.
	Exercises []Exercise `bson:"-" json:"exercises"`
}
