// internal/app/store/legal/legalstore.go
package legalstore

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/vitamove/vitamove-server/internal/domain/models"
)

type Store struct {
	c *mongo.Collection
}

var ErrNotFound = errors.New("legal document not found")

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("legal_documents")}
}

// Upsert writes the document for (type, locale), creating or replacing the
// content under the unique compound key. Calling it twice with the same key
// leaves exactly one document holding the latest content.
func (s *Store) Upsert(ctx context.Context, doc models.LegalDocument) (models.LegalDocument, error) {
	now := time.Now().UTC()
	filter := bson.M{"type": doc.Type, "locale": doc.Locale}
	update := bson.M{
		"$set": bson.M{
			"title":      doc.Title,
			"content":    doc.Content,
			"updated_at": now,
		},
		"$setOnInsert": bson.M{
			"type":       doc.Type,
			"locale":     doc.Locale,
			"created_at": now,
		},
	}

	var out models.LegalDocument
	err := s.c.FindOneAndUpdate(ctx, filter, update,
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(&out)
	if err != nil {
		return models.LegalDocument{}, err
	}
	return out, nil
}

// Get returns the document for (type, locale) exactly.
func (s *Store) Get(ctx context.Context, docType, locale string) (models.LegalDocument, error) {
	var doc models.LegalDocument
	err := s.c.FindOne(ctx, bson.M{"type": docType, "locale": locale}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return models.LegalDocument{}, ErrNotFound
	}
	if err != nil {
		return models.LegalDocument{}, err
	}
	return doc, nil
}

// GetResolved returns the document for the requested locale, falling back
// through the platform locale chain (requested → ru → en → ka) when the
// requested translation does not exist.
func (s *Store) GetResolved(ctx context.Context, docType, locale string) (models.LegalDocument, error) {
	tried := map[string]bool{}
	for _, l := range append([]string{locale}, models.LocaleRU, models.LocaleEN, models.LocaleKA) {
		if tried[l] {
			continue
		}
		tried[l] = true
		doc, err := s.Get(ctx, docType, l)
		if err == nil {
			return doc, nil
		}
		if err != ErrNotFound {
			return models.LegalDocument{}, err
		}
	}
	return models.LegalDocument{}, ErrNotFound
}
