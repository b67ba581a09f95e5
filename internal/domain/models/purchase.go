// internal/domain/models/purchase.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Purchase plan lengths, matching the Price fields on a set.
const (
	PlanMonthly     = "monthly"
	PlanThreeMonths = "three_months"
	PlanSixMonths   = "six_months"
	PlanYearly      = "yearly"
)

// Plans lists the valid purchase plan values.
var Plans = []string{PlanMonthly, PlanThreeMonths, PlanSixMonths, PlanYearly}

// IsValidPlan reports whether p is a known plan value.
func IsValidPlan(p string) bool {
	for _, v := range Plans {
		if v == p {
			return true
		}
	}
	return false
}

// PlanDuration returns the access duration a plan grants.
func PlanDuration(plan string) time.Duration {
	const day = 24 * time.Hour
	switch plan {
	case PlanThreeMonths:
		return 90 * day
	case PlanSixMonths:
		return 180 * day
	case PlanYearly:
		return 365 * day
	default:
		return 30 * day
	}
}

// Purchase records paid access to a set. Payment processing happens outside
// this service; purchases arrive as admin-recorded facts and are what the
// set read path consults to unlock difficulty tiers.
type Purchase struct {
	ID    primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Email string             `bson:"email" json:"email"` // normalized lowercase
	SetID primitive.ObjectID `bson:"set_id" json:"set_id"`

	Plan string `bson:"plan" json:"plan"`
	Tier string `bson:"tier,omitempty" json:"tier,omitempty"` // highest tier granted; empty means all

	ExpiresAt time.Time `bson:"expires_at" json:"expires_at"`

	Status string `bson:"status" json:"status"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// Active reports whether the purchase currently grants access.
func (p *Purchase) Active(now time.Time) bool {
	return p.Status == "active" && now.Before(p.ExpiresAt)
}

// Covers reports whether the purchase unlocks the given tier. An empty Tier
// unlocks everything; otherwise every tier up to and including the granted
// one is unlocked.
func (p *Purchase) Covers(tier string) bool {
	if p.Tier == "" {
		return true
	}
	rank := func(t string) int {
		for i, v := range Tiers {
			if v == t {
				return i
			}
		}
		return -1
	}
	granted, want := rank(p.Tier), rank(tier)
	return granted >= 0 && want >= 0 && want <= granted
}
