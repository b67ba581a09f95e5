// internal/app/store/blogs/blogstore.go
package blogstore

import (
	"context"
	"errors"
	"time"

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

var ErrNotFound = errors.New("blog not found")

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("blogs")}
}

func (s *Store) Create(ctx context.Context, b models.Blog) (models.Blog, error) {
	now := time.Now().UTC()
	b.ID = primitive.NewObjectID()
	if b.Status == "" {
		b.Status = status.Active
	}
	b.CreatedAt = now
	b.UpdatedAt = now
	b.Articles = nil
	if _, err := s.c.InsertOne(ctx, b); err != nil {
		return models.Blog{}, err
	}
	b.Articles = []models.Article{}
	return b, nil
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Blog, error) {
	var b models.Blog
	err := s.c.FindOne(ctx, bson.M{"_id": id, "status": status.Active}).Decode(&b)
	if err == mongo.ErrNoDocuments {
		return models.Blog{}, ErrNotFound
	}
	if err != nil {
		return models.Blog{}, err
	}
	b.Articles = []models.Article{}
	return b, nil
}

// Update describes the mutable fields of a blog; nil pointers leave the
// stored value untouched.
type Update struct {
	Title         *models.Localized
	Description   *models.Localized
	CoverImageURL *string
	IsPublished   *bool
}

func (s *Store) Update(ctx context.Context, id primitive.ObjectID, upd Update) error {
	set := bson.M{"updated_at": time.Now().UTC()}
	if upd.Title != nil {
		set["title"] = *upd.Title
	}
	if upd.Description != nil {
		set["description"] = *upd.Description
	}
	if upd.CoverImageURL != nil {
		set["cover_image_url"] = *upd.CoverImageURL
	}
	if upd.IsPublished != nil {
		set["is_published"] = *upd.IsPublished
	}
	res, err := s.c.UpdateOne(ctx, bson.M{"_id": id, "status": status.Active}, bson.M{"$set": set})
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

func (s *Store) List(ctx context.Context) ([]models.Blog, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := s.c.Find(ctx, bson.M{"status": status.Active}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	blogs := []models.Blog{}
	if err := cur.All(ctx, &blogs); err != nil {
		return nil, err
	}
	// Articles is not stored; keep it an empty array so list reads
	// serialize an array, never null.
	for i := range blogs {
		blogs[i].Articles = []models.Article{}
	}
	return blogs, nil
}
