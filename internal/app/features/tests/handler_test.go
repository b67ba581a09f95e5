package tests_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"

	testsfeature "github.com/vitamove/vitamove-server/internal/app/features/tests"
	teststore "github.com/vitamove/vitamove-server/internal/app/store/tests"
	"github.com/vitamove/vitamove-server/internal/domain/models"
	"github.com/vitamove/vitamove-server/internal/testutil"
)

func seedTest(t *testing.T) (*testsfeature.Handler, models.Test) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	fix := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	tst := fix.CreateTest(ctx, "Intake survey", []models.Question{
		{
			ID:       "q1",
			Type:     models.QuestionSingle,
			Text:     models.Localized{EN: "Pain level?"},
			Options:  []models.Localized{{EN: "None"}, {EN: "Some"}, {EN: "A lot"}},
			Required: true,
		},
		{
			ID:   "q2",
			Type: models.QuestionText,
			Text: models.Localized{EN: "Notes"},
		},
	})
	h := testsfeature.NewHandler(teststore.New(db), zap.NewNop())
	return h, tst
}

func TestServeSubmit_Valid(t *testing.T) {
	h, tst := seedTest(t)

	req := testutil.NewJSONRequest(t, "POST", "/api/tests/submit", map[string]any{
		"test_id": tst.ID.Hex(),
		"email":   "Visitor@Example.com",
		"answers": []map[string]any{
			{"question_id": "q1", "values": []int{2}},
			{"question_id": "q2", "text": "worse in the morning"},
		},
	})
	rec := httptest.NewRecorder()
	h.ServeSubmit(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status: got %d (%s)", rec.Code, rec.Body.String())
	}
	var resp models.TestResponse
	testutil.DecodeJSONResponse(t, rec, &resp)
	if resp.Email != "visitor@example.com" {
		t.Errorf("email should be normalized, got %q", resp.Email)
	}
	if resp.ID.IsZero() {
		t.Error("expected stored response id")
	}
}

func TestServeSubmit_InvalidAnswers(t *testing.T) {
	h, tst := seedTest(t)

	tests := []struct {
		name    string
		answers []map[string]any
		want    int
	}{
		{
			"required question missing",
			[]map[string]any{{"question_id": "q2", "text": "only notes"}},
			http.StatusUnprocessableEntity,
		},
		{
			"choice out of range",
			[]map[string]any{{"question_id": "q1", "values": []int{5}}},
			http.StatusUnprocessableEntity,
		},
		{
			"unknown question",
			[]map[string]any{{"question_id": "q1", "values": []int{0}}, {"question_id": "zz", "values": []int{0}}},
			http.StatusUnprocessableEntity,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := testutil.NewJSONRequest(t, "POST", "/api/tests/submit", map[string]any{
				"test_id": tst.ID.Hex(),
				"answers": tc.answers,
			})
			rec := httptest.NewRecorder()
			h.ServeSubmit(rec, req)
			if rec.Code != tc.want {
				t.Errorf("status: got %d, want %d (%s)", rec.Code, tc.want, rec.Body.String())
			}
		})
	}
}

func TestServeSubmit_BadIDs(t *testing.T) {
	h, _ := seedTest(t)

	req := testutil.NewJSONRequest(t, "POST", "/api/tests/submit", map[string]any{
		"test_id": "not-hex",
	})
	rec := httptest.NewRecorder()
	h.ServeSubmit(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("malformed id: got %d, want %d", rec.Code, http.StatusBadRequest)
	}

	req = testutil.NewJSONRequest(t, "POST", "/api/tests/submit", map[string]any{
		"test_id": "65432109876543210abcdef0",
		"answers": []map[string]any{},
	})
	rec = httptest.NewRecorder()
	h.ServeSubmit(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Errorf("unknown test: got %d, want %d", rec.Code, http.StatusNotFound)
	}
}

func TestServeList_PublishedFilter(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := teststore.New(db)
	h := testsfeature.NewHandler(store, zap.NewNop())
	ctx, cancel := testutil.TestContext()
	defer cancel()

	// One unpublished test.
	if _, err := store.Create(ctx, models.Test{Title: models.Localized{EN: "Draft"}}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	// Public request sees nothing.
	rec := httptest.NewRecorder()
	h.ServeList(rec, httptest.NewRequest("GET", "/api/tests", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d", rec.Code)
	}
	var public []models.Test
	testutil.DecodeJSONResponse(t, rec, &public)
	if len(public) != 0 {
		t.Errorf("public list: got %d, want 0", len(public))
	}

	// An admin sees drafts.
	rec = httptest.NewRecorder()
	h.ServeList(rec, testutil.WithAdmin(httptest.NewRequest("GET", "/api/tests", nil)))
	var all []models.Test
	testutil.DecodeJSONResponse(t, rec, &all)
	if len(all) != 1 {
		t.Errorf("admin list: got %d, want 1", len(all))
	}
}
