// internal/app/system/indexes/indexes.go
package indexes

import (
	"context"
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

/*
EnsureAll is called at startup. CreateMany is idempotent for identical index
definitions, so repeated startups are safe. Errors are aggregated so any
problem is visible and startup can fail fast.
*/
func EnsureAll(ctx context.Context, db *mongo.Database) error {
	var problems []string

	ensure := func(coll string, idx []mongo.IndexModel) {
		if len(idx) == 0 {
			return
		}
		if _, err := db.Collection(coll).Indexes().CreateMany(ctx, idx); err != nil {
			problems = append(problems, coll+": "+err.Error())
			return
		}
		zap.L().Info("indexes ensured", zap.String("collection", coll), zap.Int("count", len(idx)))
	}

	ensure("categories", []mongo.IndexModel{
		{Keys: bson.D{{Key: "parent_id", Value: 1}}, Options: options.Index().SetName("idx_categories_parent")},
		{Keys: bson.D{{Key: "status", Value: 1}, {Key: "sort_order", Value: 1}}, Options: options.Index().SetName("idx_categories_status_sort")},
	})

	ensure("sets", []mongo.IndexModel{
		{Keys: bson.D{{Key: "category_id", Value: 1}}, Options: options.Index().SetName("idx_sets_category")},
		{Keys: bson.D{{Key: "subcategory_id", Value: 1}}, Options: options.Index().SetName("idx_sets_subcategory")},
	})

	ensure("exercises", []mongo.IndexModel{
		{Keys: bson.D{{Key: "set_id", Value: 1}}, Options: options.Index().SetName("idx_exercises_set")},
		{Keys: bson.D{{Key: "category_id", Value: 1}, {Key: "subcategory_id", Value: 1}}, Options: options.Index().SetName("idx_exercises_category")},
		{Keys: bson.D{{Key: "is_popular", Value: 1}}, Options: options.Index().SetName("idx_exercises_popular")},
	})

	ensure("articles", []mongo.IndexModel{
		{Keys: bson.D{{Key: "slug", Value: 1}}, Options: options.Index().SetName("idx_articles_slug_unique").SetUnique(true)},
		{Keys: bson.D{{Key: "blog_id", Value: 1}}, Options: options.Index().SetName("idx_articles_blog")},
		{Keys: bson.D{{Key: "category_ids", Value: 1}}, Options: options.Index().SetName("idx_articles_categories")},
		{Keys: bson.D{{Key: "tags", Value: 1}}, Options: options.Index().SetName("idx_articles_tags")},
	})

	ensure("courses", []mongo.IndexModel{
		{Keys: bson.D{{Key: "instructor_id", Value: 1}}, Options: options.Index().SetName("idx_courses_instructor")},
	})

	// one legal text per (type, locale); upserts key on this pair
	ensure("legal_documents", []mongo.IndexModel{
		{Keys: bson.D{{Key: "type", Value: 1}, {Key: "locale", Value: 1}}, Options: options.Index().SetName("idx_legal_type_locale_unique").SetUnique(true)},
	})

	ensure("consultation_requests", []mongo.IndexModel{
		{Keys: bson.D{{Key: "request_status", Value: 1}, {Key: "created_at", Value: -1}}, Options: options.Index().SetName("idx_consultation_status_created")},
	})

	ensure("purchases", []mongo.IndexModel{
		{Keys: bson.D{{Key: "email", Value: 1}, {Key: "set_id", Value: 1}}, Options: options.Index().SetName("idx_purchases_email_set")},
		{Keys: bson.D{{Key: "expires_at", Value: 1}}, Options: options.Index().SetName("idx_purchases_expires")},
	})

	ensure("test_responses", []mongo.IndexModel{
		{Keys: bson.D{{Key: "test_id", Value: 1}, {Key: "created_at", Value: -1}}, Options: options.Index().SetName("idx_test_responses_test")},
	})

	// admin login codes expire server-side via TTL
	ensure("admin_login_codes", []mongo.IndexModel{
		{Keys: bson.D{{Key: "expires_at", Value: 1}}, Options: options.Index().SetName("idx_login_codes_expires_ttl").SetExpireAfterSeconds(0)},
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetName("idx_login_codes_email")},
	})

	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}
