// internal/app/store/instructors/instructorstore.go
package instructorstore

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

var ErrNotFound = errors.New("instructor not found")

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("instructors")}
}

func (s *Store) Create(ctx context.Context, ins models.Instructor) (models.Instructor, error) {
	now := time.Now().UTC()
	ins.ID = primitive.NewObjectID()
	ins.NameCI = text.Fold(ins.Name)
	if ins.Status == "" {
		ins.Status = status.Active
	}
	ins.CreatedAt = now
	ins.UpdatedAt = now
	if _, err := s.c.InsertOne(ctx, ins); err != nil {
		return models.Instructor{}, err
	}
	return ins, nil
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Instructor, error) {
	var ins models.Instructor
	err := s.c.FindOne(ctx, bson.M{"_id": id, "status": status.Active}).Decode(&ins)
	if err == mongo.ErrNoDocuments {
		return models.Instructor{}, ErrNotFound
	}
	if err != nil {
		return models.Instructor{}, err
	}
	return ins, nil
}

// Update describes the mutable fields of an instructor; nil pointers leave
// the stored value untouched.
type Update struct {
	Name            *string
	Profession      *string
	Bio             *models.Localized
	Content         *models.Localized
	ProfileImageURL *string
	CertificateURLs *[]string
	CoursesCount    *int
	StudentsCount   *int
	Rating          *float64
}

func (s *Store) Update(ctx context.Context, id primitive.ObjectID, upd Update) error {
	set := bson.M{"updated_at": time.Now().UTC()}
	if upd.Name != nil {
		set["name"] = *upd.Name
		set["name_ci"] = text.Fold(*upd.Name)
	}
	if upd.Profession != nil {
		set["profession"] = *upd.Profession
	}
	if upd.Bio != nil {
		set["bio"] = *upd.Bio
	}
	if upd.Content != nil {
		set["content"] = *upd.Content
	}
	if upd.ProfileImageURL != nil {
		set["profile_image_url"] = *upd.ProfileImageURL
	}
	if upd.CertificateURLs != nil {
		set["certificate_urls"] = *upd.CertificateURLs
	}
	if upd.CoursesCount != nil {
		set["courses_count"] = *upd.CoursesCount
	}
	if upd.StudentsCount != nil {
		set["students_count"] = *upd.StudentsCount
	}
	if upd.Rating != nil {
		set["rating"] = *upd.Rating
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

func (s *Store) List(ctx context.Context) ([]models.Instructor, error) {
	opts := options.Find().SetSort(bson.D{{Key: "name_ci", Value: 1}})
	cur, err := s.c.Find(ctx, bson.M{"status": status.Active}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	list := []models.Instructor{}
	if err := cur.All(ctx, &list); err != nil {
		return nil, err
	}
	return list, nil
}

func (s *Store) Count(ctx context.Context) (int64, error) {
	return s.c.CountDocuments(ctx, bson.M{"status": status.Active})
}
