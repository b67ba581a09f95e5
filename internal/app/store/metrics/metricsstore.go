// internal/app/store/metrics/metricsstore.go
package metricsstore

import (
	"context"
	"errors"
	"math"
	"strconv"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/vitamove/vitamove-server/internal/app/system/status"
)

// GlobalStats is the aggregate snapshot served by the statistics endpoint.
type GlobalStats struct {
	Categories  int64   `json:"categories"`
	Sets        int64   `json:"sets"`
	Exercises   int64   `json:"exercises"`
	Articles    int64   `json:"articles"`
	Courses     int64   `json:"courses"`
	Instructors int64   `json:"instructors"`
	TotalHours  float64 `json:"total_hours"`
}

// Store computes read-only aggregates across the content collections.
type Store struct {
	db *mongo.Database
}

func New(db *mongo.Database) *Store {
	return &Store{db: db}
}

// Global counts the active documents in each content collection and sums
// set durations into hours. Counts degrade to zero on per-collection
// failures; the joined error tells the caller what was skipped so the
// endpoint can still serve a partial snapshot.
func (s *Store) Global(ctx context.Context) (GlobalStats, error) {
	var stats GlobalStats
	var errs []error

	count := func(name string, dst *int64) {
		n, err := s.db.Collection(name).CountDocuments(ctx, bson.M{"status": status.Active})
		if err != nil {
			errs = append(errs, err)
			return
		}
		*dst = n
	}

	count("categories", &stats.Categories)
	count("sets", &stats.Sets)
	count("exercises", &stats.Exercises)
	count("articles", &stats.Articles)
	count("courses", &stats.Courses)
	count("instructors", &stats.Instructors)

	hours, err := s.totalHours(ctx)
	if err != nil {
		errs = append(errs, err)
	} else {
		stats.TotalHours = hours
	}

	return stats, errors.Join(errs...)
}

// totalHours sums the total_duration of active sets. Durations are stored
// as "HH:MM"; entries that don't parse are skipped.
func (s *Store) totalHours(ctx context.Context) (float64, error) {
	cur, err := s.db.Collection("sets").Find(ctx, bson.M{"status": status.Active})
	if err != nil {
		return 0, err
	}
	defer cur.Close(ctx)

	var minutes int
	for cur.Next(ctx) {
		var doc struct {
			TotalDuration string `bson:"total_duration"`
		}
		if err := cur.Decode(&doc); err != nil {
			return 0, err
		}
		if m, ok := ParseDurationMinutes(doc.TotalDuration); ok {
			minutes += m
		}
	}
	if err := cur.Err(); err != nil {
		return 0, err
	}
	return math.Round(float64(minutes)/60*10) / 10, nil
}

// ParseDurationMinutes parses an "HH:MM" duration into whole minutes.
func ParseDurationMinutes(s string) (int, bool) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return 0, false
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 {
		return 0, false
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return 0, false
	}
	return h*60 + m, true
}
