// internal/app/system/validators/validators.go
package validators

import (
	"context"
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/vitamove/vitamove-server/internal/domain/models"
)

// EnsureAll creates collections (if missing) and tries to attach JSON-Schema
// validators. On servers that don't support collMod/validators (e.g. some
// DocumentDB versions), we log and skip gracefully.
func EnsureAll(ctx context.Context, db *mongo.Database) error {
	var problems []string

	ensure := func(coll string, schema bson.M) {
		if _, err := ensureCollection(ctx, db, coll); err != nil {
			problems = append(problems, coll+": "+err.Error())
			return
		}
		if schema == nil {
			return
		}
		if err := setValidator(ctx, db, coll, schema); err != nil {
			if isNoSuchCommand(err) || isNotImplemented(err) {
				zap.L().Info("validator skipped (unsupported)", zap.String("collection", coll))
				return
			}
			problems = append(problems, coll+": "+err.Error())
		}
	}

	ensure("categories", categoriesSchema())
	ensure("sets", setsSchema())
	ensure("exercises", exercisesSchema())
	ensure("articles", articlesSchema())
	ensure("blogs", nil)
	ensure("courses", nil)
	ensure("instructors", nil)
	ensure("consultation_requests", consultationsSchema())
	ensure("legal_documents", legalSchema())
	ensure("tests", nil)
	ensure("test_responses", nil)
	ensure("purchases", purchasesSchema())
	ensure("admin_login_codes", nil)

	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

/* ---------------------- collection helpers & logging ---------------------- */

func collectionExists(ctx context.Context, db *mongo.Database, name string) (bool, error) {
	names, err := db.ListCollectionNames(ctx, bson.M{})
	if err != nil {
		return false, err
	}
	for _, n := range names {
		if n == name {
			return true, nil
		}
	}
	return false, nil
}

// ensureCollection idempotently makes sure <name> exists.
func ensureCollection(ctx context.Context, db *mongo.Database, name string) (created bool, err error) {
	exists, listErr := collectionExists(ctx, db, name)
	if listErr == nil && exists {
		return false, nil
	}
	if err := db.CreateCollection(ctx, name); err != nil {
		// NamespaceExists / already exists is fine (race or prior run).
		if isNamespaceExistsErr(err) {
			return false, nil
		}
		zap.L().Warn("createCollection failed", zap.String("collection", name), zap.Error(err))
		return false, err
	}
	zap.L().Info("created collection", zap.String("collection", name))
	return true, nil
}

func setValidator(ctx context.Context, db *mongo.Database, name string, validator bson.M) error {
	cmd := bson.D{
		{Key: "collMod", Value: name},
		{Key: "validator", Value: validator},
		{Key: "validationLevel", Value: "moderate"},
		{Key: "validationAction", Value: "error"},
	}
	var out bson.M
	if err := db.RunCommand(ctx, cmd).Decode(&out); err != nil {
		return err
	}
	zap.L().Info("validator ensured", zap.String("collection", name))
	return nil
}

/* ------------------------- error helpers ------------------------- */

func isNamespaceExistsErr(err error) bool {
	if err == nil {
		return false
	}
	var ce mongo.CommandError
	if errors.As(err, &ce) && (ce.Code == 48 || strings.Contains(strings.ToLower(ce.Message), "already exists")) {
		return true
	}
	s := strings.ToLower(err.Error())
	return strings.Contains(s, "already exists") || strings.Contains(s, "namespace exists")
}

func isNoSuchCommand(err error) bool {
	if err == nil {
		return false
	}
	var ce mongo.CommandError
	if errors.As(err, &ce) && (ce.Code == 59 || strings.Contains(strings.ToLower(ce.Message), "no such command")) {
		return true
	}
	return strings.Contains(strings.ToLower(err.Error()), "no such command")
}

func isNotImplemented(err error) bool {
	if err == nil {
		return false
	}
	var ce mongo.CommandError
	if errors.As(err, &ce) && (ce.Code == 115 ||
		strings.Contains(strings.ToLower(ce.Message), "not implemented") ||
		strings.Contains(strings.ToLower(ce.Message), "not supported")) {
		return true
	}
	s := strings.ToLower(err.Error())
	return strings.Contains(s, "not implemented") || strings.Contains(s, "not supported")
}

/* ------------------------- JSON-Schema docs ---------------------- */

func statusEnum() bson.M {
	return bson.M{"enum": bson.A{"active", "disabled"}}
}

func localeEnum() bson.M {
	enum := bson.A{}
	for _, l := range models.Locales {
		enum = append(enum, l)
	}
	return bson.M{"enum": enum}
}

func categoriesSchema() bson.M {
	return bson.M{
		"$jsonSchema": bson.M{
			"bsonType": "object",
			"required": bson.A{"name", "status"},
			"properties": bson.M{
				"name":       bson.M{"bsonType": "object"},
				"parent_id":  bson.M{"bsonType": bson.A{"objectId", "null"}},
				"sort_order": bson.M{"bsonType": bson.A{"int", "long"}},
				"status":     statusEnum(),
			},
		},
	}
}

func setsSchema() bson.M {
	return bson.M{
		"$jsonSchema": bson.M{
			"bsonType": "object",
			"required": bson.A{"name", "category_id", "status"},
			"properties": bson.M{
				"name":        bson.M{"bsonType": "object"},
				"category_id": bson.M{"bsonType": "objectId"},
				"status":      statusEnum(),
			},
		},
	}
}

func exercisesSchema() bson.M {
	diffEnum := bson.A{}
	for _, d := range models.Difficulties {
		diffEnum = append(diffEnum, d)
	}
	return bson.M{
		"$jsonSchema": bson.M{
			"bsonType": "object",
			"required": bson.A{"name", "category_id", "difficulty", "status"},
			"properties": bson.M{
				"name":        bson.M{"bsonType": "object"},
				"category_id": bson.M{"bsonType": "objectId"},
				"difficulty":  bson.M{"enum": diffEnum},
				"status":      statusEnum(),
			},
		},
	}
}

func articlesSchema() bson.M {
	return bson.M{
		"$jsonSchema": bson.M{
			"bsonType": "object",
			"required": bson.A{"title", "slug", "status"},
			"properties": bson.M{
				"title":  bson.M{"bsonType": "object"},
				"slug":   bson.M{"bsonType": "string", "minLength": 1, "pattern": ".*\\S.*"},
				"status": statusEnum(),
			},
		},
	}
}

func consultationsSchema() bson.M {
	return bson.M{
		"$jsonSchema": bson.M{
			"bsonType": "object",
			"required": bson.A{"name", "email", "phone", "locale", "request_status"},
			"properties": bson.M{
				"name":           bson.M{"bsonType": "string", "minLength": 1, "pattern": ".*\\S.*"},
				"email":          bson.M{"bsonType": "string", "minLength": 3},
				"phone":          bson.M{"bsonType": "string", "minLength": 7},
				"locale":         localeEnum(),
				"request_status": bson.M{"enum": bson.A{"pending", "contacted", "completed", "cancelled"}},
				"email_sent":     bson.M{"bsonType": "bool"},
			},
		},
	}
}

func legalSchema() bson.M {
	typeEnum := bson.A{}
	for _, t := range models.LegalDocumentTypes {
		typeEnum = append(typeEnum, t)
	}
	return bson.M{
		"$jsonSchema": bson.M{
			"bsonType": "object",
			"required": bson.A{"type", "locale", "content"},
			"properties": bson.M{
				"type":    bson.M{"enum": typeEnum},
				"locale":  localeEnum(),
				"content": bson.M{"bsonType": "string"},
			},
		},
	}
}

func purchasesSchema() bson.M {
	planEnum := bson.A{}
	for _, p := range models.Plans {
		planEnum = append(planEnum, p)
	}
	return bson.M{
		"$jsonSchema": bson.M{
			"bsonType": "object",
			"required": bson.A{"email", "set_id", "plan", "expires_at"},
			"properties": bson.M{
				"email":      bson.M{"bsonType": "string", "minLength": 3},
				"set_id":     bson.M{"bsonType": "objectId"},
				"plan":       bson.M{"enum": planEnum},
				"expires_at": bson.M{"bsonType": "date"},
			},
		},
	}
}
