// internal/app/store/logincodes/store.go
package logincodes

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
)

const (
	// CodeLength is the length of the login code (6 digits).
	CodeLength = 6
	// DefaultExpiry is how long a login code is valid.
	DefaultExpiry = 10 * time.Minute
	// BcryptCost for hashing codes.
	BcryptCost = 10
	// MaxVerifyAttempts is the maximum number of code verification attempts per code.
	MaxVerifyAttempts = 5
	// MaxResends is the maximum number of code requests within the rate limit window.
	MaxResends = 3
	// ResendWindow is the time window for tracking request rate limiting.
	ResendWindow = 10 * time.Minute
)

var (
	// ErrNotFound is returned when no unexpired code exists for the email.
	ErrNotFound = errors.New("login code not found or expired")
	// ErrInvalidCode is returned when the code doesn't match.
	ErrInvalidCode = errors.New("invalid login code")
	// ErrTooManyAttempts is returned when too many verification attempts have been made.
	ErrTooManyAttempts = errors.New("too many verification attempts")
	// ErrTooManyResends is returned when codes have been requested too often.
	ErrTooManyResends = errors.New("too many code requests")
)

// LoginCode is a pending admin sign-in challenge. The plain code is never
// stored; expires_at carries the TTL index that reaps stale records.
type LoginCode struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Email       string             `bson:"email"`
	CodeHash    string             `bson:"code_hash"`
	ExpiresAt   time.Time          `bson:"expires_at"`
	CreatedAt   time.Time          `bson:"created_at"`
	Attempts    int                `bson:"attempts"`
	ResendCount int                `bson:"resend_count"`
	WindowStart time.Time          `bson:"window_start"`
}

// Store manages admin login codes.
type Store struct {
	c      *mongo.Collection
	expiry time.Duration
}

// New creates a Store with the given code expiry. If expiry is 0 or
// negative, DefaultExpiry is used.
func New(db *mongo.Database, expiry time.Duration) *Store {
	if expiry <= 0 {
		expiry = DefaultExpiry
	}
	return &Store{
		c:      db.Collection("admin_login_codes"),
		expiry: expiry,
	}
}

// Expiry returns the expiry duration for login codes.
func (s *Store) Expiry() time.Duration {
	return s.expiry
}

// Create issues a new code for the email, replacing any pending one, and
// returns the plain text code to send. Repeated requests inside the rate
// limit window count against MaxResends.
func (s *Store) Create(ctx context.Context, email string) (string, error) {
	now := time.Now()
	email = strings.ToLower(strings.TrimSpace(email))

	var existing LoginCode
	err := s.c.FindOne(ctx, bson.M{"email": email}).Decode(&existing)
	existingFound := err == nil

	resendCount := 0
	windowStart := now
	if existingFound && now.Before(existing.WindowStart.Add(ResendWindow)) {
		if existing.ResendCount >= MaxResends {
			return "", ErrTooManyResends
		}
		windowStart = existing.WindowStart
		resendCount = existing.ResendCount + 1
	}

	code := generateCode()
	hash, err := bcrypt.GenerateFromPassword([]byte(code), BcryptCost)
	if err != nil {
		return "", fmt.Errorf("hash code: %w", err)
	}

	// Replace any pending code for this email (single outstanding code)
	_, _ = s.c.DeleteMany(ctx, bson.M{"email": email})

	lc := LoginCode{
		ID:          primitive.NewObjectID(),
		Email:       email,
		CodeHash:    string(hash),
		ExpiresAt:   now.Add(s.expiry),
		CreatedAt:   now,
		Attempts:    0,
		ResendCount: resendCount,
		WindowStart: windowStart,
	}
	if _, err := s.c.InsertOne(ctx, lc); err != nil {
		return "", fmt.Errorf("insert login code: %w", err)
	}
	return code, nil
}

// Verify checks a code for an email. The record is deleted on success and
// failed attempts are counted; after MaxVerifyAttempts the code is dead.
func (s *Store) Verify(ctx context.Context, email, code string) error {
	email = strings.ToLower(strings.TrimSpace(email))

	var lc LoginCode
	err := s.c.FindOne(ctx, bson.M{
		"email":      email,
		"expires_at": bson.M{"$gt": time.Now()},
	}).Decode(&lc)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return ErrNotFound
		}
		return err
	}

	if lc.Attempts >= MaxVerifyAttempts {
		return ErrTooManyAttempts
	}

	// Count the attempt before comparing
	_, _ = s.c.UpdateOne(ctx, bson.M{"_id": lc.ID}, bson.M{"$inc": bson.M{"attempts": 1}})

	if err := bcrypt.CompareHashAndPassword([]byte(lc.CodeHash), []byte(code)); err != nil {
		return ErrInvalidCode
	}

	// Single use
	_, _ = s.c.DeleteOne(ctx, bson.M{"_id": lc.ID})
	return nil
}

// DeleteByEmail drops any pending codes for an email.
func (s *Store) DeleteByEmail(ctx context.Context, email string) error {
	_, err := s.c.DeleteMany(ctx, bson.M{"email": strings.ToLower(strings.TrimSpace(email))})
	return err
}

// generateCode generates a random 6-digit numeric code.
// Panics if the system's cryptographic random number generator fails.
func generateCode() string {
	b := make([]byte, 4)
	if _, err := rand.Read(b); err != nil {
		panic("crypto/rand.Read failed: " + err.Error())
	}
	n := int(b[0])<<24 | int(b[1])<<16 | int(b[2])<<8 | int(b[3])
	if n < 0 {
		n = -n
	}
	code := (n % 900000) + 100000
	return fmt.Sprintf("%06d", code)
}
