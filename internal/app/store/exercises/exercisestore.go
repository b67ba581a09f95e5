// internal/app/store/exercises/exercisestore.go
package exercisestore

import (
	"context"
	"errors"
	"time"

	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/vitamove/vitamove-server/internal/app/system/status"
	"github.com/vitamove/vitamove-server/internal/domain/models"
)

type Store struct {
	c *mongo.Collection
}

var ErrNotFound = errors.New("exercise not found")

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("exercises")}
}

func (s *Store) Create(ctx context.Context, ex models.Exercise) (models.Exercise, error) {
	now := time.Now().UTC()
	ex.ID = primitive.NewObjectID()
	ex.NameCI = text.Fold(ex.Name.EN)
	if ex.Status == "" {
		ex.Status = status.Active
	}
	ex.CreatedAt = now
	ex.UpdatedAt = now
	if _, err := s.c.InsertOne(ctx, ex); err != nil {
		return models.Exercise{}, err
	}
	return ex, nil
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Exercise, error) {
	var ex models.Exercise
	err := s.c.FindOne(ctx, bson.M{"_id": id, "status": status.Active}).Decode(&ex)
	if err == mongo.ErrNoDocuments {
		return models.Exercise{}, ErrNotFound
	}
	if err != nil {
		return models.Exercise{}, err
	}
	return ex, nil
}

// Update describes the mutable fields of an exercise; nil pointers leave the
// stored value untouched.
type Update struct {
	Name          *models.Localized
	Description   *models.Localized
	VideoURL      *string
	ThumbnailURL  *string
	Duration      *string
	Difficulty    *string
	Repetitions   *string
	Sets          *string
	RestTime      *string
	IsPopular     *bool
	CategoryID    *primitive.ObjectID
	SubcategoryID **primitive.ObjectID
	SetID         **primitive.ObjectID
}

func (s *Store) Update(ctx context.Context, id primitive.ObjectID, upd Update) error {
	set := bson.M{"updated_at": time.Now().UTC()}
	unset := bson.M{}

	if upd.Name != nil {
		set["name"] = *upd.Name
		set["name_ci"] = text.Fold(upd.Name.EN)
	}
	if upd.Description != nil {
		set["description"] = *upd.Description
	}
	if upd.VideoURL != nil {
		set["video_url"] = *upd.VideoURL
	}
	if upd.ThumbnailURL != nil {
		set["thumbnail_url"] = *upd.ThumbnailURL
	}
	if upd.Duration != nil {
		set["duration"] = *upd.Duration
	}
	if upd.Difficulty != nil {
		set["difficulty"] = *upd.Difficulty
	}
	if upd.Repetitions != nil {
		set["repetitions"] = *upd.Repetitions
	}
	if upd.Sets != nil {
		set["sets"] = *upd.Sets
	}
	if upd.RestTime != nil {
		set["rest_time"] = *upd.RestTime
	}
	if upd.IsPopular != nil {
		set["is_popular"] = *upd.IsPopular
	}
	if upd.CategoryID != nil {
		set["category_id"] = *upd.CategoryID
	}
	if upd.SubcategoryID != nil {
		if *upd.SubcategoryID == nil {
			unset["subcategory_id"] = ""
		} else {
			set["subcategory_id"] = **upd.SubcategoryID
		}
	}
	if upd.SetID != nil {
		if *upd.SetID == nil {
			unset["set_id"] = ""
		} else {
			set["set_id"] = **upd.SetID
		}
	}

	update := bson.M{"$set": set}
	if len(unset) > 0 {
		update["$unset"] = unset
	}
	res, err := s.c.UpdateOne(ctx, bson.M{"_id": id, "status": status.Active}, update)
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
	res, err := s.c.UpdateOne(ctx, bson.M{"_id": id, "status": status.Active}, bson.M{
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

// Filter narrows List results. Nil fields match everything.
type Filter struct {
	CategoryID    *primitive.ObjectID
	SubcategoryID *primitive.ObjectID
	SetID         *primitive.ObjectID
	Popular       *bool
}

func (s *Store) List(ctx context.Context, f Filter) ([]models.Exercise, error) {
	filter := bson.M{"status": status.Active}
	if f.CategoryID != nil {
		filter["category_id"] = *f.CategoryID
	}
	if f.SubcategoryID != nil {
		filter["subcategory_id"] = *f.SubcategoryID
	}
	if f.SetID != nil {
		filter["set_id"] = *f.SetID
	}
	if f.Popular != nil {
		filter["is_popular"] = *f.Popular
	}
	opts := options.Find().SetSort(bson.D{{Key: "name_ci", Value: 1}})
	return s.find(ctx, filter, opts)
}

// BySet returns the active exercises attached to one set.
func (s *Store) BySet(ctx context.Context, setID primitive.ObjectID) ([]models.Exercise, error) {
	return s.List(ctx, Filter{SetID: &setID})
}

func (s *Store) Count(ctx context.Context) (int64, error) {
	return s.c.CountDocuments(ctx, bson.M{"status": status.Active})
}

func (s *Store) find(ctx context.Context, filter bson.M, opts ...*options.FindOptions) ([]models.Exercise, error) {
	cur, err := s.c.Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	exs := []models.Exercise{}
	if err := cur.All(ctx, &exs); err != nil {
		return nil, err
	}
	return exs, nil
}
