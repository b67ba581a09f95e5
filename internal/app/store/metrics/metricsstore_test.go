package metricsstore_test

import (
	"testing"

	metricsstore "github.com/vitamove/vitamove-server/internal/app/store/metrics"
	"github.com/vitamove/vitamove-server/internal/testutil"
)

func TestParseDurationMinutes(t *testing.T) {
	tests := []struct {
		in     string
		want   int
		wantOK bool
	}{
		{"01:30", 90, true},
		{"00:45", 45, true},
		{"0:00", 0, true},
		{"12:05", 725, true},
		{"", 0, false},
		{"90", 0, false},
		{"01:60", 0, false}, // minutes past 59
		{"-1:30", 0, false},
		{"ab:cd", 0, false},
		{"1:2:3", 0, false},
	}

	for _, tc := range tests {
		got, ok := metricsstore.ParseDurationMinutes(tc.in)
		if ok != tc.wantOK || got != tc.want {
			t.Errorf("ParseDurationMinutes(%q): got (%d, %v), want (%d, %v)", tc.in, got, ok, tc.want, tc.wantOK)
		}
	}
}

func TestStore_Global(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := metricsstore.New(db)
	fix := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	cat := fix.CreateCategory(ctx, "Back pain", nil)
	setA := fix.CreateSet(ctx, "Morning routine", cat.ID) // 01:30
	fix.CreateSet(ctx, "Evening routine", cat.ID)         // 01:30
	fix.CreateExercise(ctx, "Cat stretch", cat.ID, &setA.ID)
	fix.CreateArticle(ctx, "Posture basics", "posture-basics", true)

	stats, err := store.Global(ctx)
	if err != nil {
		t.Fatalf("Global failed: %v", err)
	}

	if stats.Categories != 1 {
		t.Errorf("categories: got %d, want 1", stats.Categories)
	}
	if stats.Sets != 2 {
		t.Errorf("sets: got %d, want 2", stats.Sets)
	}
	if stats.Exercises != 1 {
		t.Errorf("exercises: got %d, want 1", stats.Exercises)
	}
	if stats.Articles != 1 {
		t.Errorf("articles: got %d, want 1", stats.Articles)
	}
	// Two sets of 90 minutes each: 3 hours.
	if stats.TotalHours != 3.0 {
		t.Errorf("total hours: got %v, want 3.0", stats.TotalHours)
	}
}
