package models_test

import (
	"testing"
	"time"

	"github.com/vitamove/vitamove-server/internal/domain/models"
)

func TestPurchase_Covers(t *testing.T) {
	tests := []struct {
		name    string
		granted string
		want    map[string]bool
	}{
		{
			name:    "empty tier unlocks everything",
			granted: "",
			want:    map[string]bool{"beginner": true, "intermediate": true, "advanced": true},
		},
		{
			name:    "beginner unlocks beginner only",
			granted: models.TierBeginner,
			want:    map[string]bool{"beginner": true, "intermediate": false, "advanced": false},
		},
		{
			name:    "intermediate unlocks beginner and intermediate",
			granted: models.TierIntermediate,
			want:    map[string]bool{"beginner": true, "intermediate": true, "advanced": false},
		},
		{
			name:    "advanced unlocks all tiers",
			granted: models.TierAdvanced,
			want:    map[string]bool{"beginner": true, "intermediate": true, "advanced": true},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p := models.Purchase{Tier: tc.granted}
			for tier, want := range tc.want {
				if got := p.Covers(tier); got != want {
					t.Errorf("Covers(%q) with granted %q: got %v, want %v", tier, tc.granted, got, want)
				}
			}
		})
	}
}

func TestPurchase_Covers_UnknownTier(t *testing.T) {
	p := models.Purchase{Tier: models.TierAdvanced}
	if p.Covers("expert") {
		t.Error("expected unknown tier to not be covered")
	}
}

func TestPurchase_Active(t *testing.T) {
	now := time.Now().UTC()

	tests := []struct {
		name      string
		status    string
		expiresAt time.Time
		want      bool
	}{
		{"active and unexpired", "active", now.Add(time.Hour), true},
		{"active but expired", "active", now.Add(-time.Hour), false},
		{"revoked", "disabled", now.Add(time.Hour), false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p := models.Purchase{Status: tc.status, ExpiresAt: tc.expiresAt}
			if got := p.Active(now); got != tc.want {
				t.Errorf("Active: got %v, want %v", got, tc.want)
			}
		})
	}
}

func TestPlanDuration(t *testing.T) {
	const day = 24 * time.Hour
	tests := []struct {
		plan string
		want time.Duration
	}{
		{models.PlanMonthly, 30 * day},
		{models.PlanThreeMonths, 90 * day},
		{models.PlanSixMonths, 180 * day},
		{models.PlanYearly, 365 * day},
	}
	for _, tc := range tests {
		if got := models.PlanDuration(tc.plan); got != tc.want {
			t.Errorf("PlanDuration(%q): got %v, want %v", tc.plan, got, tc.want)
		}
	}
}
