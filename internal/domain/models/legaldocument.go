// internal/domain/models/legaldocument.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Legal document types served by the site.
const (
	LegalTerms   = "terms"
	LegalPrivacy = "privacy"
	LegalOffer   = "offer"
)

// LegalDocumentTypes lists the valid legal document types.
var LegalDocumentTypes = []string{LegalTerms, LegalPrivacy, LegalOffer}

// IsValidLegalType reports whether t is a known legal document type.
func IsValidLegalType(t string) bool {
	for _, v := range LegalDocumentTypes {
		if v == t {
			return true
		}
	}
	return false
}

// LegalDocument stores one legal text per (type, locale). The pair is a
// unique compound index and writes are upserts on that key.
type LegalDocument struct {
	ID     primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Type   string             `bson:"type" json:"type"`     // terms | privacy | offer
	Locale string             `bson:"locale" json:"locale"` // en | ru | ka

	Title   string `bson:"title,omitempty" json:"title,omitempty"`
	Content string `bson:"content" json:"content"` // sanitized HTML

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
