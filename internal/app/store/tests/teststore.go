// internal/app/store/tests/teststore.go
package teststore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/vitamove/vitamove-server/internal/app/system/status"
	"github.com/vitamove/vitamove-server/internal/domain/models"
)

type Store struct {
	tests     *mongo.Collection
	responses *mongo.Collection
}

var (
	ErrNotFound = errors.New("test not found")
	// ErrInvalidAnswers is returned when a submission does not match the
	// test's question set.
	ErrInvalidAnswers = errors.New("answers do not match the test questions")
)

func New(db *mongo.Database) *Store {
	return &Store{
		tests:     db.Collection("tests"),
		responses: db.Collection("test_responses"),
	}
}

func (s *Store) Create(ctx context.Context, t models.Test) (models.Test, error) {
	now := time.Now().UTC()
	t.ID = primitive.NewObjectID()
	if t.Status == "" {
		t.Status = status.Active
	}
	t.CreatedAt = now
	t.UpdatedAt = now
	if _, err := s.tests.InsertOne(ctx, t); err != nil {
		return models.Test{}, err
	}
	return t, nil
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Test, error) {
	var t models.Test
	err := s.tests.FindOne(ctx, bson.M{"_id": id, "status": status.Active}).Decode(&t)
	if err == mongo.ErrNoDocuments {
		return models.Test{}, ErrNotFound
	}
	if err != nil {
		return models.Test{}, err
	}
	return t, nil
}

// Update describes the mutable fields of a test; nil pointers leave the
// stored value untouched.
type Update struct {
	Title       *models.Localized
	Description *models.Localized
	Questions   *[]models.Question
	IsPublished *bool
}

func (s *Store) Update(ctx context.Context, id primitive.ObjectID, upd Update) error {
	set := bson.M{"updated_at": time.Now().UTC()}
	if upd.Title != nil {
		set["title"] = *upd.Title
	}
	if upd.Description != nil {
		set["description"] = *upd.Description
	}
	if upd.Questions != nil {
		set["questions"] = *upd.Questions
	}
	if upd.IsPublished != nil {
		set["is_published"] = *upd.IsPublished
	}
	res, err := s.tests.UpdateOne(ctx, bson.M{"_id": id, "status": status.Active}, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) SoftDelete(ctx context.Context, id primitive.ObjectID) error {
	now := time.Now().UTC()
	res, err := s.tests.UpdateOne(ctx, bson.M{"_id": id, "status": status.Active}, bson.M{
		"$set": bson.M{"status": status.Disabled, "deleted_at": now, "updated_at": now},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) List(ctx context.Context, publishedOnly bool) ([]models.Test, error) {
	filter := bson.M{"status": status.Active}
	if publishedOnly {
		filter["is_published"] = true
	}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := s.tests.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	tests := []models.Test{}
	if err := cur.All(ctx, &tests); err != nil {
		return nil, err
	}
	return tests, nil
}

// ValidateAnswers checks a submission against the test's questions: every
// required question answered, no unknown question ids, option indexes and
// scale values in range, single-choice answers holding exactly one value.
func ValidateAnswers(t models.Test, answers []models.Answer) error {
	byID := make(map[string]models.Question, len(t.Questions))
	for _, q := range t.Questions {
		byID[q.ID] = q
	}

	answered := make(map[string]bool, len(answers))
	for _, a := range answers {
		q, ok := byID[a.QuestionID]
		if !ok {
			return fmt.Errorf("%w: unknown question %q", ErrInvalidAnswers, a.QuestionID)
		}
		if answered[a.QuestionID] {
			return fmt.Errorf("%w: duplicate answer for question %q", ErrInvalidAnswers, a.QuestionID)
		}
		answered[a.QuestionID] = true

		switch q.Type {
		case models.QuestionSingle:
			if len(a.Values) != 1 {
				return fmt.Errorf("%w: question %q needs exactly one choice", ErrInvalidAnswers, q.ID)
			}
			if a.Values[0] < 0 || a.Values[0] >= len(q.Options) {
				return fmt.Errorf("%w: question %q choice out of range", ErrInvalidAnswers, q.ID)
			}
		case models.QuestionMultiple:
			if len(a.Values) == 0 {
				return fmt.Errorf("%w: question %q needs at least one choice", ErrInvalidAnswers, q.ID)
			}
			for _, v := range a.Values {
				if v < 0 || v >= len(q.Options) {
					return fmt.Errorf("%w: question %q choice out of range", ErrInvalidAnswers, q.ID)
				}
			}
		case models.QuestionText:
			if a.Text == "" {
				return fmt.Errorf("%w: question %q needs a text answer", ErrInvalidAnswers, q.ID)
			}
		case models.QuestionScale:
			if len(a.Values) != 1 {
				return fmt.Errorf("%w: question %q needs exactly one scale value", ErrInvalidAnswers, q.ID)
			}
			if q.Scale != nil && (a.Values[0] < q.Scale.Min || a.Values[0] > q.Scale.Max) {
				return fmt.Errorf("%w: question %q scale value out of range", ErrInvalidAnswers, q.ID)
			}
		}
	}

	for _, q := range t.Questions {
		if q.Required && !answered[q.ID] {
			return fmt.Errorf("%w: required question %q not answered", ErrInvalidAnswers, q.ID)
		}
	}
	return nil
}

// Submit validates and records a response for a test.
func (s *Store) Submit(ctx context.Context, resp models.TestResponse) (models.TestResponse, error) {
	t, err := s.GetByID(ctx, resp.TestID)
	if err != nil {
		return models.TestResponse{}, err
	}
	if err := ValidateAnswers(t, resp.Answers); err != nil {
		return models.TestResponse{}, err
	}

	resp.ID = primitive.NewObjectID()
	resp.CreatedAt = time.Now().UTC()
	if _, err := s.responses.InsertOne(ctx, resp); err != nil {
		return models.TestResponse{}, err
	}
	return resp, nil
}

// Responses lists the recorded submissions for one test, newest first.
func (s *Store) Responses(ctx context.Context, testID primitive.ObjectID) ([]models.TestResponse, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := s.responses.Find(ctx, bson.M{"test_id": testID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	out := []models.TestResponse{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
