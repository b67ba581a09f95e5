// internal/app/store/articles/articlestore.go
package articlestore

import (
	"context"
	"errors"
	"time"

	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
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
	ErrNotFound      = errors.New("article not found")
	ErrDuplicateSlug = errors.New("an article with this slug already exists")
)

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("articles")}
}

// Create inserts the article. The caller is responsible for slug and
// read-time; they are computed in the feature layer so the store stays a
// plain collection wrapper.
func (s *Store) Create(ctx context.Context, a models.Article) (models.Article, error) {
	now := time.Now().UTC()
	a.ID = primitive.NewObjectID()
	if a.Status == "" {
		a.Status = status.Active
	}
	a.CreatedAt = now
	a.UpdatedAt = now
	if _, err := s.c.InsertOne(ctx, a); err != nil {
		if wafflemongo.IsDup(err) {
			return models.Article{}, ErrDuplicateSlug
		}
		return models.Article{}, err
	}
	return a, nil
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Article, error) {
	return s.getOne(ctx, bson.M{"_id": id, "status": status.Active})
}

func (s *Store) GetBySlug(ctx context.Context, slug string) (models.Article, error) {
	return s.getOne(ctx, bson.M{"slug": slug, "status": status.Active})
}

func (s *Store) getOne(ctx context.Context, filter bson.M) (models.Article, error) {
	var a models.Article
	err := s.c.FindOne(ctx, filter).Decode(&a)
	if err == mongo.ErrNoDocuments {
		return models.Article{}, ErrNotFound
	}
	if err != nil {
		return models.Article{}, err
	}
	return a, nil
}

// SlugExists reports whether any article (including soft-deleted ones, which
// keep their slug reserved) uses the given slug.
func (s *Store) SlugExists(ctx context.Context, slug string) (bool, error) {
	err := s.c.FindOne(ctx, bson.M{"slug": slug}).Err()
	if err == mongo.ErrNoDocuments {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Update describes the mutable fields of an article; nil pointers leave the
// stored value untouched. Slug is immutable after creation.
type Update struct {
	Title         *models.Localized
	Excerpt       *models.Localized
	Content       *models.Localized
	Author        *models.Author
	CategoryIDs   *[]primitive.ObjectID
	Tags          *[]string
	BlogID        **primitive.ObjectID
	CoverImageURL *string
	IsPublished   *bool
	IsFeatured    *bool
	ReadTime      *string
}

func (s *Store) Update(ctx context.Context, id primitive.ObjectID, upd Update) error {
	set := bson.M{"updated_at": time.Now().UTC()}
	unset := bson.M{}

	if upd.Title != nil {
		set["title"] = *upd.Title
	}
	if upd.Excerpt != nil {
		set["excerpt"] = *upd.Excerpt
	}
	if upd.Content != nil {
		set["content"] = *upd.Content
	}
	if upd.Author != nil {
		set["author"] = *upd.Author
	}
	if upd.CategoryIDs != nil {
		set["category_ids"] = *upd.CategoryIDs
	}
	if upd.Tags != nil {
		set["tags"] = *upd.Tags
	}
	if upd.BlogID != nil {
		if *upd.BlogID == nil {
			unset["blog_id"] = ""
		} else {
			set["blog_id"] = **upd.BlogID
		}
	}
	if upd.CoverImageURL != nil {
		set["cover_image_url"] = *upd.CoverImageURL
	}
	if upd.IsPublished != nil {
		set["is_published"] = *upd.IsPublished
	}
	if upd.IsFeatured != nil {
		set["is_featured"] = *upd.IsFeatured
	}
	if upd.ReadTime != nil {
		set["read_time"] = *upd.ReadTime
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

// IncrementViews bumps the view counter. Best-effort; callers ignore errors.
func (s *Store) IncrementViews(ctx context.Context, id primitive.ObjectID) error {
	_, err := s.c.UpdateByID(ctx, id, bson.M{"$inc": bson.M{"views": 1}})
	return err
}

// Like bumps the like counter and returns the new value.
func (s *Store) Like(ctx context.Context, id primitive.ObjectID) (int64, error) {
	var a models.Article
	err := s.c.FindOneAndUpdate(ctx,
		bson.M{"_id": id, "status": status.Active},
		bson.M{"$inc": bson.M{"likes": 1}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&a)
	if err == mongo.ErrNoDocuments {
		return 0, ErrNotFound
	}
	if err != nil {
		return 0, err
	}
	return a.Likes, nil
}

// Filter narrows List results. Nil/zero fields match everything.
type Filter struct {
	CategoryID *primitive.ObjectID
	BlogID     *primitive.ObjectID
	Tag        string
	Featured   *bool
	Published  *bool
	Limit      int64
	Offset     int64
}

// List returns active articles, newest first.
func (s *Store) List(ctx context.Context, f Filter) ([]models.Article, error) {
	filter := bson.M{"status": status.Active}
	if f.CategoryID != nil {
		filter["category_ids"] = *f.CategoryID
	}
	if f.BlogID != nil {
		filter["blog_id"] = *f.BlogID
	}
	if f.Tag != "" {
		filter["tags"] = f.Tag
	}
	if f.Featured != nil {
		filter["is_featured"] = *f.Featured
	}
	if f.Published != nil {
		filter["is_published"] = *f.Published
	}

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	if f.Offset > 0 {
		opts.SetSkip(f.Offset)
	}
	if f.Limit > 0 {
		opts.SetLimit(f.Limit)
	}

	cur, err := s.c.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	articles := []models.Article{}
	if err := cur.All(ctx, &articles); err != nil {
		return nil, err
	}
	return articles, nil
}

func (s *Store) Count(ctx context.Context) (int64, error) {
	return s.c.CountDocuments(ctx, bson.M{"status": status.Active})
}
