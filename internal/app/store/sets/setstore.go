// internal/app/store/sets/setstore.go
package setstore

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

var ErrNotFound = errors.New("set not found")

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("sets")}
}

func (s *Store) Create(ctx context.Context, set models.Set) (models.Set, error) {
	now := time.Now().UTC()
	set.ID = primitive.NewObjectID()
	set.NameCI = text.Fold(set.Name.EN)
	if set.Status == "" {
		set.Status = status.Active
	}
	set.CreatedAt = now
	set.UpdatedAt = now
	set.Exercises = nil
	if _, err := s.c.InsertOne(ctx, set); err != nil {
		return models.Set{}, err
	}
	set.Exercises = []models.Exercise{}
	return set, nil
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Set, error) {
	var set models.Set
	err := s.c.FindOne(ctx, bson.M{"_id": id, "status": status.Active}).Decode(&set)
	if err == mongo.ErrNoDocuments {
		return models.Set{}, ErrNotFound
	}
	if err != nil {
		return models.Set{}, err
	}
	set.Exercises = []models.Exercise{}
	return set, nil
}

// GetByIDs loads multiple sets preserving no particular order.
func (s *Store) GetByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Set, error) {
	if len(ids) == 0 {
		return []models.Set{}, nil
	}
	return s.find(ctx, bson.M{"_id": bson.M{"$in": ids}, "status": status.Active})
}

// Update describes the mutable fields of a set; nil pointers leave the
// stored value untouched.
type Update struct {
	Name            *models.Localized
	Description     *models.Localized
	Recommendations *models.Localized
	Equipment       *models.Localized
	Warnings        *models.Localized
	ThumbnailURL    *string
	TotalExercises  *int
	TotalDuration   *string
	Levels          *map[string]models.TierLevel
	Price           *models.Price
	DiscountedPrice **models.Price
	CategoryID      *primitive.ObjectID
	SubcategoryID   **primitive.ObjectID
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
	if upd.Recommendations != nil {
		set["recommendations"] = *upd.Recommendations
	}
	if upd.Equipment != nil {
		set["equipment"] = *upd.Equipment
	}
	if upd.Warnings != nil {
		set["warnings"] = *upd.Warnings
	}
	if upd.ThumbnailURL != nil {
		set["thumbnail_url"] = *upd.ThumbnailURL
	}
	if upd.TotalExercises != nil {
		set["total_exercises"] = *upd.TotalExercises
	}
	if upd.TotalDuration != nil {
		set["total_duration"] = *upd.TotalDuration
	}
	if upd.Levels != nil {
		set["levels"] = *upd.Levels
	}
	if upd.Price != nil {
		set["price"] = *upd.Price
	}
	if upd.DiscountedPrice != nil {
		if *upd.DiscountedPrice == nil {
			unset["discounted_price"] = ""
		} else {
			set["discounted_price"] = **upd.DiscountedPrice
		}
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

// Filter narrows List results. Zero-value fields match everything.
type Filter struct {
	CategoryID    *primitive.ObjectID
	SubcategoryID *primitive.ObjectID
}

func (s *Store) List(ctx context.Context, f Filter) ([]models.Set, error) {
	filter := bson.M{"status": status.Active}
	if f.CategoryID != nil {
		filter["category_id"] = *f.CategoryID
	}
	if f.SubcategoryID != nil {
		filter["subcategory_id"] = *f.SubcategoryID
	}
	opts := options.Find().SetSort(bson.D{{Key: "name_ci", Value: 1}})
	return s.find(ctx, filter, opts)
}

// ByCategory returns the active sets directly attached to a category.
func (s *Store) ByCategory(ctx context.Context, categoryID primitive.ObjectID) ([]models.Set, error) {
	return s.List(ctx, Filter{CategoryID: &categoryID})
}

func (s *Store) Count(ctx context.Context) (int64, error) {
	return s.c.CountDocuments(ctx, bson.M{"status": status.Active})
}

// Durations returns the total_duration strings of all active sets, for the
// statistics aggregation.
func (s *Store) Durations(ctx context.Context) ([]string, error) {
	cur, err := s.c.Find(ctx, bson.M{"status": status.Active},
		options.Find().SetProjection(bson.M{"total_duration": 1}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []string
	for cur.Next(ctx) {
		var doc struct {
			TotalDuration string `bson:"total_duration"`
		}
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		if doc.TotalDuration != "" {
			out = append(out, doc.TotalDuration)
		}
	}
	return out, cur.Err()
}

func (s *Store) find(ctx context.Context, filter bson.M, opts ...*options.FindOptions) ([]models.Set, error) {
	cur, err := s.c.Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	sets := []models.Set{}
	if err := cur.All(ctx, &sets); err != nil {
		return nil, err
	}
	// Exercises is not stored; keep it an empty array so reads that skip
	// the embed still serialize an array, never null.
	for i := range sets {
		sets[i].Exercises = []models.Exercise{}
	}
	return sets, nil
}
