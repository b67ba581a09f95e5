// internal/domain/models/consultation.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Consultation request statuses. Pending requests may move to contacted or
// cancelled; contacted requests may move to completed or cancelled; the two
// end states are terminal.
const (
	ConsultationPending   = "pending"
	ConsultationContacted = "contacted"
	ConsultationCompleted = "completed"
	ConsultationCancelled = "cancelled"
)

// consultationTransitions maps each status to the statuses it may move to.
var consultationTransitions = map[string][]string{
	ConsultationPending:   {ConsultationContacted, ConsultationCancelled},
	ConsultationContacted: {ConsultationCompleted, ConsultationCancelled},
	ConsultationCompleted: {},
	ConsultationCancelled: {},
}

// CanTransitionConsultation reports whether a consultation request may move
// from one status to another.
func CanTransitionConsultation(from, to string) bool {
	for _, s := range consultationTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// ConsultationRequest is a public contact-form submission. EmailSent records
// whether the notification emails went out; a false value with a persisted
// record means the request needs manual follow-up.
type ConsultationRequest struct {
	ID      primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name    string             `bson:"name" json:"name"`
	Email   string             `bson:"email" json:"email"`
	Phone   string             `bson:"phone" json:"phone"`
	Message string             `bson:"message,omitempty" json:"message,omitempty"`
	Locale  string             `bson:"locale" json:"locale"` // en | ru | ka

	RequestStatus string `bson:"request_status" json:"request_status"`
	EmailSent     bool   `bson:"email_sent" json:"email_sent"`

	Status string `bson:"status" json:"status"`

	CreatedAt time.Time  `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time  `bson:"updated_at" json:"updated_at"`
	DeletedAt *time.Time `bson:"deleted_at,omitempty" json:"deleted_at,omitempty"`
}
