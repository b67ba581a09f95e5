package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/vitamove/vitamove-server/internal/domain/models"
)

// Fixtures provides helper methods for creating test data.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a new Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

// Trilingual builds a Localized value with the same base text suffixed per
// locale, so fallback behavior stays observable in assertions.
func Trilingual(base string) models.Localized {
	return models.Localized{
		EN: base + " EN",
		RU: base + " RU",
		KA: base + " KA",
	}
}

// CreateCategory creates a published top-level category. Pass a parent ID to
// create a subcategory instead.
func (f *Fixtures) CreateCategory(ctx context.Context, name string, parentID *primitive.ObjectID) models.Category {
	f.t.Helper()

	now := time.Now().UTC()
	cat := models.Category{
		ID:          primitive.NewObjectID(),
		Name:        models.Localized{EN: name},
		NameCI:      text.Fold(name),
		ParentID:    parentID,
		IsPublished: true,
		Status:      "active",
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if _, err := f.db.Collection("categories").InsertOne(ctx, cat); err != nil {
		f.t.Fatalf("failed to create test category: %v", err)
	}
	return cat
}

// CreateSet creates an active set in the given category with all three tiers
// locked and a flat price.
func (f *Fixtures) CreateSet(ctx context.Context, name string, categoryID primitive.ObjectID) models.Set {
	f.t.Helper()

	now := time.Now().UTC()
	set := models.Set{
		ID:             primitive.NewObjectID(),
		Name:           models.Localized{EN: name},
		NameCI:         text.Fold(name),
		TotalExercises: 3,
		TotalDuration:  "01:30",
		Levels: map[string]models.TierLevel{
			models.TierBeginner:     {ExerciseCount: 1, IsLocked: true},
			models.TierIntermediate: {ExerciseCount: 1, IsLocked: true},
			models.TierAdvanced:     {ExerciseCount: 1, IsLocked: true},
		},
		Price:      models.Price{Monthly: 30, ThreeMonths: 80, SixMonths: 150, Yearly: 280},
		CategoryID: categoryID,
		Status:     "active",
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if _, err := f.db.Collection("sets").InsertOne(ctx, set); err != nil {
		f.t.Fatalf("failed to create test set: %v", err)
	}
	return set
}

// CreateExercise creates an active exercise in the given category,
// optionally attached to a set.
func (f *Fixtures) CreateExercise(ctx context.Context, name string, categoryID primitive.ObjectID, setID *primitive.ObjectID) models.Exercise {
	f.t.Helper()

	now := time.Now().UTC()
	ex := models.Exercise{
		ID:         primitive.NewObjectID(),
		Name:       models.Localized{EN: name},
		NameCI:     text.Fold(name),
		Duration:   "02:30",
		Difficulty: models.DifficultyEasy,
		CategoryID: categoryID,
		SetID:      setID,
		Status:     "active",
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if _, err := f.db.Collection("exercises").InsertOne(ctx, ex); err != nil {
		f.t.Fatalf("failed to create test exercise: %v", err)
	}
	return ex
}

// CreateArticle creates an article with the given slug and publish state.
func (f *Fixtures) CreateArticle(ctx context.Context, title, slug string, published bool) models.Article {
	f.t.Helper()

	now := time.Now().UTC()
	art := models.Article{
		ID:          primitive.NewObjectID(),
		Title:       models.Localized{EN: title},
		Slug:        slug,
		Content:     models.Localized{EN: "<p>" + title + "</p>"},
		IsPublished: published,
		ReadTime:    "1",
		Status:      "active",
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if _, err := f.db.Collection("articles").InsertOne(ctx, art); err != nil {
		f.t.Fatalf("failed to create test article: %v", err)
	}
	return art
}

// CreateTest creates a published test with the given questions.
func (f *Fixtures) CreateTest(ctx context.Context, title string, questions []models.Question) models.Test {
	f.t.Helper()

	now := time.Now().UTC()
	tst := models.Test{
		ID:          primitive.NewObjectID(),
		Title:       models.Localized{EN: title},
		Questions:   questions,
		IsPublished: true,
		Status:      "active",
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if _, err := f.db.Collection("tests").InsertOne(ctx, tst); err != nil {
		f.t.Fatalf("failed to create test survey: %v", err)
	}
	return tst
}

// CreatePurchase creates an active purchase for the given email and set.
// Tier may be empty to grant every tier; expiresAt zero means one month out.
func (f *Fixtures) CreatePurchase(ctx context.Context, email string, setID primitive.ObjectID, tier string, expiresAt time.Time) models.Purchase {
	f.t.Helper()

	now := time.Now().UTC()
	if expiresAt.IsZero() {
		expiresAt = now.Add(30 * 24 * time.Hour)
	}
	p := models.Purchase{
		ID:        primitive.NewObjectID(),
		Email:     email,
		SetID:     setID,
		Plan:      models.PlanMonthly,
		Tier:      tier,
		ExpiresAt: expiresAt,
		Status:    "active",
		CreatedAt: now,
		UpdatedAt: now,
	}

	if _, err := f.db.Collection("purchases").InsertOne(ctx, p); err != nil {
		f.t.Fatalf("failed to create test purchase: %v", err)
	}
	return p
}

// CreateConsultation creates a pending consultation request.
func (f *Fixtures) CreateConsultation(ctx context.Context, name, email, phone string) models.ConsultationRequest {
	f.t.Helper()

	now := time.Now().UTC()
	c := models.ConsultationRequest{
		ID:            primitive.NewObjectID(),
		Name:          name,
		Email:         email,
		Phone:         phone,
		Locale:        models.LocaleEN,
		RequestStatus: models.ConsultationPending,
		Status:        "active",
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if _, err := f.db.Collection("consultation_requests").InsertOne(ctx, c); err != nil {
		f.t.Fatalf("failed to create test consultation request: %v", err)
	}
	return c
}
