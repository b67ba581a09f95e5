package articlestore_test

import (
	"errors"
	"testing"

	articlestore "github.com/vitamove/vitamove-server/internal/app/store/articles"
	"github.com/vitamove/vitamove-server/internal/domain/models"
	"github.com/vitamove/vitamove-server/internal/testutil"
)

func TestStore_Create_DuplicateSlug(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := articlestore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if _, err := store.Create(ctx, models.Article{
		Title: models.Localized{EN: "Posture"},
		Slug:  "posture",
	}); err != nil {
		t.Fatalf("first Create failed: %v", err)
	}

	_, err := store.Create(ctx, models.Article{
		Title: models.Localized{EN: "Posture again"},
		Slug:  "posture",
	})
	if !errors.Is(err, articlestore.ErrDuplicateSlug) {
		t.Errorf("expected ErrDuplicateSlug, got %v", err)
	}
}

func TestStore_SlugExists_IncludesDeleted(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := articlestore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	a, err := store.Create(ctx, models.Article{
		Title: models.Localized{EN: "Old article"},
		Slug:  "old-article",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if err := store.SoftDelete(ctx, a.ID); err != nil {
		t.Fatalf("SoftDelete failed: %v", err)
	}

	// The slug of a deleted article stays reserved so its URL never gets
	// silently reassigned.
	taken, err := store.SlugExists(ctx, "old-article")
	if err != nil {
		t.Fatalf("SlugExists failed: %v", err)
	}
	if !taken {
		t.Error("expected deleted article's slug to stay reserved")
	}
}

func TestStore_GetBySlug(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := articlestore.New(db)
	fix := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fix.CreateArticle(ctx, "Stretching 101", "stretching-101", true)

	got, err := store.GetBySlug(ctx, "stretching-101")
	if err != nil {
		t.Fatalf("GetBySlug failed: %v", err)
	}
	if got.Title.EN != "Stretching 101" {
		t.Errorf("title: got %q", got.Title.EN)
	}

	if _, err := store.GetBySlug(ctx, "missing"); !errors.Is(err, articlestore.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestStore_ViewsAndLikes(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := articlestore.New(db)
	fix := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	a := fix.CreateArticle(ctx, "Counters", "counters", true)

	if err := store.IncrementViews(ctx, a.ID); err != nil {
		t.Fatalf("IncrementViews failed: %v", err)
	}
	if err := store.IncrementViews(ctx, a.ID); err != nil {
		t.Fatalf("IncrementViews failed: %v", err)
	}

	likes, err := store.Like(ctx, a.ID)
	if err != nil {
		t.Fatalf("Like failed: %v", err)
	}
	if likes != 1 {
		t.Errorf("likes after first like: got %d, want 1", likes)
	}
	likes, err = store.Like(ctx, a.ID)
	if err != nil {
		t.Fatalf("Like failed: %v", err)
	}
	if likes != 2 {
		t.Errorf("likes after second like: got %d, want 2", likes)
	}

	got, err := store.GetByID(ctx, a.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.Views != 2 {
		t.Errorf("views: got %d, want 2", got.Views)
	}
}

func TestStore_List_Filters(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := articlestore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	published := true
	mk := func(slug string, pub, featured bool, tags ...string) {
		t.Helper()
		_, err := store.Create(ctx, models.Article{
			Title:       models.Localized{EN: slug},
			Slug:        slug,
			IsPublished: pub,
			IsFeatured:  featured,
			Tags:        tags,
		})
		if err != nil {
			t.Fatalf("Create %s failed: %v", slug, err)
		}
	}
	mk("one", true, true, "knee")
	mk("two", true, false, "spine")
	mk("draft", false, false, "knee")

	got, err := store.List(ctx, articlestore.Filter{Published: &published})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("published: got %d, want 2", len(got))
	}

	featured := true
	got, err = store.List(ctx, articlestore.Filter{Featured: &featured})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(got) != 1 || got[0].Slug != "one" {
		t.Errorf("featured filter: got %d results", len(got))
	}

	got, err = store.List(ctx, articlestore.Filter{Tag: "knee"})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("tag filter: got %d, want 2", len(got))
	}

	got, err = store.List(ctx, articlestore.Filter{Limit: 1})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(got) != 1 {
		t.Errorf("limit: got %d, want 1", len(got))
	}
}
