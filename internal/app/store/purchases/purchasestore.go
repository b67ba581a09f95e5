// internal/app/store/purchases/purchasestore.go
package purchasestore

import (
	"context"
	"errors"
	"strings"
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

var ErrNotFound = errors.New("purchase not found")

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("purchases")}
}

// Create records a purchase. The email is normalized to lowercase and the
// expiry is derived from the plan when not set by the caller.
func (s *Store) Create(ctx context.Context, p models.Purchase) (models.Purchase, error) {
	now := time.Now().UTC()
	p.ID = primitive.NewObjectID()
	p.Email = strings.ToLower(strings.TrimSpace(p.Email))
	if p.Status == "" {
		p.Status = status.Active
	}
	if p.ExpiresAt.IsZero() {
		p.ExpiresAt = now.Add(models.PlanDuration(p.Plan))
	}
	p.CreatedAt = now
	p.UpdatedAt = now
	if _, err := s.c.InsertOne(ctx, p); err != nil {
		return models.Purchase{}, err
	}
	return p, nil
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Purchase, error) {
	var p models.Purchase
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&p)
	if err == mongo.ErrNoDocuments {
		return models.Purchase{}, ErrNotFound
	}
	if err != nil {
		return models.Purchase{}, err
	}
	return p, nil
}

// Revoke disables a purchase without deleting the record.
func (s *Store) Revoke(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.c.UpdateOne(ctx, bson.M{"_id": id, "status": status.Active}, bson.M{
		"$set": bson.M{"status": status.Disabled, "updated_at": time.Now().UTC()},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// ActiveForSet returns the unexpired active purchases one email holds for a
// set. The caller decides which tiers they unlock.
func (s *Store) ActiveForSet(ctx context.Context, email string, setID primitive.ObjectID) ([]models.Purchase, error) {
	filter := bson.M{
		"email":      strings.ToLower(strings.TrimSpace(email)),
		"set_id":     setID,
		"status":     status.Active,
		"expires_at": bson.M{"$gt": time.Now().UTC()},
	}
	return s.find(ctx, filter, nil)
}

// Filter narrows List; zero values mean "any".
type Filter struct {
	Email string
	SetID primitive.ObjectID
}

func (s *Store) List(ctx context.Context, f Filter) ([]models.Purchase, error) {
	filter := bson.M{}
	if f.Email != "" {
		filter["email"] = strings.ToLower(strings.TrimSpace(f.Email))
	}
	if !f.SetID.IsZero() {
		filter["set_id"] = f.SetID
	}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	return s.find(ctx, filter, opts)
}

func (s *Store) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]models.Purchase, error) {
	var cur *mongo.Cursor
	var err error
	if opts != nil {
		cur, err = s.c.Find(ctx, filter, opts)
	} else {
		cur, err = s.c.Find(ctx, filter)
	}
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	purchases := []models.Purchase{}
	if err := cur.All(ctx, &purchases); err != nil {
		return nil, err
	}
	return purchases, nil
}
