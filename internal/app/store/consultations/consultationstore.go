// internal/app/store/consultations/consultationstore.go
package consultationstore

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

var (
	ErrNotFound = errors.New("consultation request not found")
	// ErrBadTransition is returned when a status change violates the
	// pending → contacted → completed | cancelled state machine.
	ErrBadTransition = errors.New("invalid consultation status transition")
)

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("consultation_requests")}
}

func (s *Store) Create(ctx context.Context, req models.ConsultationRequest) (models.ConsultationRequest, error) {
	now := time.Now().UTC()
	req.ID = primitive.NewObjectID()
	req.RequestStatus = models.ConsultationPending
	req.EmailSent = false
	if req.Status == "" {
		req.Status = status.Active
	}
	req.CreatedAt = now
	req.UpdatedAt = now
	if _, err := s.c.InsertOne(ctx, req); err != nil {
		return models.ConsultationRequest{}, err
	}
	return req, nil
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.ConsultationRequest, error) {
	var req models.ConsultationRequest
	err := s.c.FindOne(ctx, bson.M{"_id": id, "status": status.Active}).Decode(&req)
	if err == mongo.ErrNoDocuments {
		return models.ConsultationRequest{}, ErrNotFound
	}
	if err != nil {
		return models.ConsultationRequest{}, err
	}
	return req, nil
}

// MarkEmailSent records that the notification emails went out. Best-effort;
// the request itself is already persisted.
func (s *Store) MarkEmailSent(ctx context.Context, id primitive.ObjectID) error {
	_, err := s.c.UpdateByID(ctx, id, bson.M{
		"$set": bson.M{"email_sent": true, "updated_at": time.Now().UTC()},
	})
	return err
}

// UpdateStatus moves the request through its state machine, rejecting
// transitions the model does not allow.
func (s *Store) UpdateStatus(ctx context.Context, id primitive.ObjectID, to string) (models.ConsultationRequest, error) {
	req, err := s.GetByID(ctx, id)
	if err != nil {
		return models.ConsultationRequest{}, err
	}
	if !models.CanTransitionConsultation(req.RequestStatus, to) {
		return models.ConsultationRequest{}, ErrBadTransition
	}

	// Guard on the current status so a concurrent transition loses cleanly.
	res, err := s.c.UpdateOne(ctx,
		bson.M{"_id": id, "request_status": req.RequestStatus},
		bson.M{"$set": bson.M{"request_status": to, "updated_at": time.Now().UTC()}})
	if err != nil {
		return models.ConsultationRequest{}, err
	}
	if res.MatchedCount == 0 {
		return models.ConsultationRequest{}, ErrBadTransition
	}
	req.RequestStatus = to
	return req, nil
}

// List returns active requests, newest first, optionally filtered by
// request status.
func (s *Store) List(ctx context.Context, requestStatus string) ([]models.ConsultationRequest, error) {
	filter := bson.M{"status": status.Active}
	if requestStatus != "" {
		filter["request_status"] = requestStatus
	}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := s.c.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	reqs := []models.ConsultationRequest{}
	if err := cur.All(ctx, &reqs); err != nil {
		return nil, err
	}
	return reqs, nil
}
