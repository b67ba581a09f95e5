// internal/domain/models/test.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Question types supported by the survey/test forms.
const (
	QuestionSingle   = "single"
	QuestionMultiple = "multiple"
	QuestionText     = "text"
	QuestionScale    = "scale"
)

// QuestionTypes lists the valid question types.
var QuestionTypes = []string{QuestionSingle, QuestionMultiple, QuestionText, QuestionScale}

// IsValidQuestionType reports whether t is a known question type.
func IsValidQuestionType(t string) bool {
	for _, v := range QuestionTypes {
		if v == t {
			return true
		}
	}
	return false
}

// ScaleConfig bounds a scale question.
type ScaleConfig struct {
	Min int `bson:"min" json:"min"`
	Max int `bson:"max" json:"max"`
}

// Question is one entry in a test's ordered question list. Options apply to
// single/multiple questions; Scale applies to scale questions.
type Question struct {
	ID       string       `bson:"id" json:"id"`
	Type     string       `bson:"type" json:"type"`
	Text     Localized    `bson:"text" json:"text"`
	Options  []Localized  `bson:"options,omitempty" json:"options,omitempty"`
	Scale    *ScaleConfig `bson:"scale,omitempty" json:"scale,omitempty"`
	Required bool         `bson:"required" json:"required"`
}

// Test is a survey form shown to visitors.
type Test struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title       Localized          `bson:"title" json:"title"`
	Description Localized          `bson:"description,omitempty" json:"description,omitempty"`
	Questions   []Question         `bson:"questions" json:"questions"`

	IsPublished bool   `bson:"is_published" json:"is_published"`
	Status      string `bson:"status" json:"status"`

	CreatedAt time.Time  `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time  `bson:"updated_at" json:"updated_at"`
	DeletedAt *time.Time `bson:"deleted_at,omitempty" json:"deleted_at,omitempty"`
}

// Answer is one recorded answer, matched to a question by QuestionID.
// Values holds the selected option indexes (single/multiple) or the scale
// value; Text holds free-form answers.
type Answer struct {
	QuestionID string `bson:"question_id" json:"question_id"`
	Values     []int  `bson:"values,omitempty" json:"values,omitempty"`
	Text       string `bson:"text,omitempty" json:"text,omitempty"`
}

// TestResponse is one visitor's submission for a test.
type TestResponse struct {
	ID     primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	TestID primitive.ObjectID `bson:"test_id" json:"test_id"`

	Email   string   `bson:"email,omitempty" json:"email,omitempty"`
	Locale  string   `bson:"locale,omitempty" json:"locale,omitempty"`
	Answers []Answer `bson:"answers" json:"answers"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}
