package categories_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	categoriesfeature "github.com/vitamove/vitamove-server/internal/app/features/categories"
	"github.com/vitamove/vitamove-server/internal/app/store/categories"
	"github.com/vitamove/vitamove-server/internal/app/store/exercises"
	"github.com/vitamove/vitamove-server/internal/app/store/sets"
	"github.com/vitamove/vitamove-server/internal/testutil"
)

func setup(t *testing.T) (*categoriesfeature.Handler, *testutil.Fixtures) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	h := categoriesfeature.NewHandler(categorystore.New(db), setstore.New(db), exercisestore.New(db), zap.NewNop())
	return h, testutil.NewFixtures(t, db)
}

func serveComplete(t *testing.T, h *categoriesfeature.Handler, id string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest("GET", "/api/categories/"+id+"/complete", nil)
	req = testutil.WithChiURLParam(req, "id", id)
	rec := httptest.NewRecorder()
	h.ServeComplete(rec, req)
	return rec
}

func TestServeComplete_AggregatesCategoryTree(t *testing.T) {
	h, fix := setup(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	cat := fix.CreateCategory(ctx, "Back", nil)
	sub := fix.CreateCategory(ctx, "Lower back", &cat.ID)
	set := fix.CreateSet(ctx, "Morning routine", cat.ID)
	empty := fix.CreateSet(ctx, "Evening routine", cat.ID)
	fix.CreateExercise(ctx, "Cat stretch", cat.ID, &set.ID)
	fix.CreateExercise(ctx, "Free stretch", cat.ID, nil) // in no set

	rec := serveComplete(t, h, cat.ID.Hex())
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d (%s)", rec.Code, rec.Body.String())
	}

	var out struct {
		Category      map[string]any   `json:"category"`
		Subcategories []map[string]any `json:"subcategories"`
		Sets          []map[string]any `json:"sets"`
		Exercises     []map[string]any `json:"exercises"`
	}
	testutil.DecodeJSONResponse(t, rec, &out)

	if got := out.Category["id"]; got != cat.ID.Hex() {
		t.Errorf("category id: got %v, want %s", got, cat.ID.Hex())
	}
	if len(out.Subcategories) != 1 || out.Subcategories[0]["id"] != sub.ID.Hex() {
		t.Errorf("subcategories: got %v", out.Subcategories)
	}
	if len(out.Sets) != 2 {
		t.Fatalf("sets: got %d, want 2", len(out.Sets))
	}
	for _, s := range out.Sets {
		v, present := s["exercises"]
		if !present {
			t.Errorf("set %v: exercises key missing from payload", s["id"])
			continue
		}
		exs, ok := v.([]any)
		if !ok {
			t.Errorf("set %v: exercises should be an array, got %T", s["id"], v)
			continue
		}
		switch s["id"] {
		case set.ID.Hex():
			if len(exs) != 1 {
				t.Errorf("embedded set exercises: got %d, want 1", len(exs))
			}
		case empty.ID.Hex():
			if len(exs) != 0 {
				t.Errorf("empty set exercises: got %d, want 0", len(exs))
			}
		default:
			t.Errorf("unexpected set %v in aggregation", s["id"])
		}
	}
	// the flat list carries every exercise in the category, attached or not
	if len(out.Exercises) != 2 {
		t.Errorf("flattened exercises: got %d, want 2", len(out.Exercises))
	}
}

func TestServeComplete_EmptyCategoryHasEmptySlices(t *testing.T) {
	h, fix := setup(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	cat := fix.CreateCategory(ctx, "Empty", nil)

	rec := serveComplete(t, h, cat.ID.Hex())
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d", rec.Code)
	}

	var out map[string]any
	testutil.DecodeJSONResponse(t, rec, &out)

	for _, key := range []string{"subcategories", "sets", "exercises"} {
		v, present := out[key]
		if !present {
			t.Errorf("%s missing from response", key)
			continue
		}
		arr, ok := v.([]any)
		if !ok {
			t.Errorf("%s should be an array, got %T", key, v)
			continue
		}
		if len(arr) != 0 {
			t.Errorf("%s should be empty, got %d entries", key, len(arr))
		}
	}
}

func TestServeComplete_UnknownCategory(t *testing.T) {
	h, _ := setup(t)

	rec := serveComplete(t, h, primitive.NewObjectID().Hex())
	if rec.Code != http.StatusNotFound {
		t.Errorf("unknown id: got %d, want %d", rec.Code, http.StatusNotFound)
	}

	rec = serveComplete(t, h, "not-an-id")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("bad id: got %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestServeList_PublishedFilter(t *testing.T) {
	h, fix := setup(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fix.CreateCategory(ctx, "Visible", nil)
	hidden := fix.CreateCategory(ctx, "Hidden", nil)
	if _, err := fix.DB().Collection("categories").UpdateOne(ctx,
		bson.M{"_id": hidden.ID},
		bson.M{"$set": bson.M{"is_published": false}}); err != nil {
		t.Fatalf("failed to unpublish category: %v", err)
	}

	rec := httptest.NewRecorder()
	h.ServeList(rec, httptest.NewRequest("GET", "/api/categories", nil))
	var public []map[string]any
	testutil.DecodeJSONResponse(t, rec, &public)
	if len(public) != 1 {
		t.Errorf("public list: got %d categories, want 1", len(public))
	}

	rec = httptest.NewRecorder()
	h.ServeList(rec, testutil.WithAdmin(httptest.NewRequest("GET", "/api/categories", nil)))
	var admin []map[string]any
	testutil.DecodeJSONResponse(t, rec, &admin)
	if len(admin) != 2 {
		t.Errorf("admin list: got %d categories, want 2", len(admin))
	}
}
