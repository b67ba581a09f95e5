// internal/app/store/courses/coursestore.go
package coursestore

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

var ErrNotFound = errors.New("course not found")

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("courses")}
}

func (s *Store) Create(ctx context.Context, course models.Course) (models.Course, error) {
	now := time.Now().UTC()
	course.ID = primitive.NewObjectID()
	course.NameCI = text.Fold(course.Name.EN)
	if course.Status == "" {
		course.Status = status.Active
	}
	course.CreatedAt = now
	course.UpdatedAt = now
	if _, err := s.c.InsertOne(ctx, course); err != nil {
		return models.Course{}, err
	}
	return course, nil
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Course, error) {
	var course models.Course
	err := s.c.FindOne(ctx, bson.M{"_id": id, "status": status.Active}).Decode(&course)
	if err == mongo.ErrNoDocuments {
		return models.Course{}, ErrNotFound
	}
	if err != nil {
		return models.Course{}, err
	}
	return course, nil
}

// Update describes the mutable fields of a course; nil pointers leave the
// stored value untouched.
type Update struct {
	Name         *models.Localized
	Description  *models.Localized
	InstructorID **primitive.ObjectID
	SetIDs       *[]primitive.ObjectID
	Price        *models.Price
	ThumbnailURL *string
	IsPublished  *bool
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
	if upd.InstructorID != nil {
		if *upd.InstructorID == nil {
			unset["instructor_id"] = ""
		} else {
			set["instructor_id"] = **upd.InstructorID
		}
	}
	if upd.SetIDs != nil {
		set["set_ids"] = *upd.SetIDs
	}
	if upd.Price != nil {
		set["price"] = *upd.Price
	}
	if upd.ThumbnailURL != nil {
		set["thumbnail_url"] = *upd.ThumbnailURL
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

func (s *Store) List(ctx context.Context) ([]models.Course, error) {
	opts := options.Find().SetSort(bson.D{{Key: "name_ci", Value: 1}})
	cur, err := s.c.Find(ctx, bson.M{"status": status.Active}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	courses := []models.Course{}
	if err := cur.All(ctx, &courses); err != nil {
		return nil, err
	}
	return courses, nil
}

// CountByInstructor returns the number of active courses an instructor owns,
// used to refresh the instructor's counters.
func (s *Store) CountByInstructor(ctx context.Context, instructorID primitive.ObjectID) (int64, error) {
	return s.c.CountDocuments(ctx, bson.M{"status": status.Active, "instructor_id": instructorID})
}
