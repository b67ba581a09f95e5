package models_test

import (
	"testing"

	"github.com/vitamove/vitamove-server/internal/domain/models"
)

func TestCanTransitionConsultation(t *testing.T) {
	tests := []struct {
		from string
		to   string
		want bool
	}{
		{models.ConsultationPending, models.ConsultationContacted, true},
		{models.ConsultationPending, models.ConsultationCancelled, true},
		{models.ConsultationPending, models.ConsultationCompleted, false},
		{models.ConsultationContacted, models.ConsultationCompleted, true},
		{models.ConsultationContacted, models.ConsultationCancelled, true},
		{models.ConsultationContacted, models.ConsultationPending, false},
		{models.ConsultationCompleted, models.ConsultationCancelled, false},
		{models.ConsultationCancelled, models.ConsultationPending, false},
		{models.ConsultationPending, models.ConsultationPending, false},
		{"bogus", models.ConsultationContacted, false},
	}

	for _, tc := range tests {
		if got := models.CanTransitionConsultation(tc.from, tc.to); got != tc.want {
			t.Errorf("CanTransitionConsultation(%q, %q): got %v, want %v", tc.from, tc.to, got, tc.want)
		}
	}
}
