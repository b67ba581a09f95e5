// internal/app/store/categories/categorystore.go
package categorystore

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

var (
	ErrNotFound = errors.New("category not found")
	// ErrCycle is returned when a parent assignment would make a category
	// its own ancestor.
	ErrCycle = errors.New("category parent assignment would create a cycle")
)

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("categories")}
}

func (s *Store) Create(ctx context.Context, cat models.Category) (models.Category, error) {
	now := time.Now().UTC()
	cat.ID = primitive.NewObjectID()
	cat.NameCI = text.Fold(cat.Name.EN)
	if cat.Status == "" {
		cat.Status = status.Active
	}
	cat.CreatedAt = now
	cat.UpdatedAt = now

	if cat.ParentID != nil {
		if err := s.checkAcyclic(ctx, cat.ID, *cat.ParentID); err != nil {
			return models.Category{}, err
		}
	}

	if _, err := s.c.InsertOne(ctx, cat); err != nil {
		return models.Category{}, err
	}
	return cat, nil
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Category, error) {
	var cat models.Category
	err := s.c.FindOne(ctx, bson.M{"_id": id, "status": status.Active}).Decode(&cat)
	if err == mongo.ErrNoDocuments {
		return models.Category{}, ErrNotFound
	}
	if err != nil {
		return models.Category{}, err
	}
	return cat, nil
}

// Update describes the mutable fields of a category; nil pointers leave the
// stored value untouched.
type Update struct {
	Name        *models.Localized
	Description *models.Localized
	ImageURL    *string
	ParentID    **primitive.ObjectID
	SortOrder   *int
	IsPublished *bool
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
	if upd.ImageURL != nil {
		set["image_url"] = *upd.ImageURL
	}
	if upd.ParentID != nil {
		if *upd.ParentID == nil {
			unset["parent_id"] = ""
		} else {
			if err := s.checkAcyclic(ctx, id, **upd.ParentID); err != nil {
				return err
			}
			set["parent_id"] = **upd.ParentID
		}
	}
	if upd.SortOrder != nil {
		set["sort_order"] = *upd.SortOrder
	}
	if upd.IsPublished != nil {
		set["is_published"] = *upd.IsPublished
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

// SoftDelete disables the category and stamps deleted_at.
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

// List returns active categories sorted by sort_order then folded name.
// When publishedOnly is set, unpublished categories are filtered out.
func (s *Store) List(ctx context.Context, publishedOnly bool) ([]models.Category, error) {
	filter := bson.M{"status": status.Active}
	if publishedOnly {
		filter["is_published"] = true
	}
	opts := options.Find().SetSort(bson.D{{Key: "sort_order", Value: 1}, {Key: "name_ci", Value: 1}})
	return s.find(ctx, filter, opts)
}

// Roots returns active top-level categories (no parent).
func (s *Store) Roots(ctx context.Context) ([]models.Category, error) {
	filter := bson.M{"status": status.Active, "parent_id": nil}
	opts := options.Find().SetSort(bson.D{{Key: "sort_order", Value: 1}})
	return s.find(ctx, filter, opts)
}

// Subcategories returns the active direct children of a category.
func (s *Store) Subcategories(ctx context.Context, parentID primitive.ObjectID) ([]models.Category, error) {
	filter := bson.M{"status": status.Active, "parent_id": parentID}
	opts := options.Find().SetSort(bson.D{{Key: "sort_order", Value: 1}})
	return s.find(ctx, filter, opts)
}

func (s *Store) Count(ctx context.Context) (int64, error) {
	return s.c.CountDocuments(ctx, bson.M{"status": status.Active})
}

func (s *Store) find(ctx context.Context, filter bson.M, opts ...*options.FindOptions) ([]models.Category, error) {
	cur, err := s.c.Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	cats := []models.Category{}
	if err := cur.All(ctx, &cats); err != nil {
		return nil, err
	}
	return cats, nil
}

// checkAcyclic walks from the proposed parent to the root and fails if it
// passes through the category being written. Parent chains are two levels in
// practice; the walk is bounded anyway to survive bad data.
func (s *Store) checkAcyclic(ctx context.Context, id, parentID primitive.ObjectID) error {
	const maxDepth = 32
	current := parentID
	for i := 0; i < maxDepth; i++ {
		if current == id {
			return ErrCycle
		}
		var parent struct {
			ParentID *primitive.ObjectID `bson:"parent_id"`
		}
		err := s.c.FindOne(ctx, bson.M{"_id": current},
			options.FindOne().SetProjection(bson.M{"parent_id": 1})).Decode(&parent)
		if err == mongo.ErrNoDocuments {
			return nil
		}
		if err != nil {
			return err
		}
		if parent.ParentID == nil {
			return nil
		}
		current = *parent.ParentID
	}
	return ErrCycle
}
