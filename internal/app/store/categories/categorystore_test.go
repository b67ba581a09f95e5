package categorystore_test

import (
	"errors"
	"testing"

	categorystore "github.com/vitamove/vitamove-server/internal/app/store/categories"
	"github.com/vitamove/vitamove-server/internal/domain/models"
	"github.com/vitamove/vitamove-server/internal/testutil"
)

func TestStore_CreateAndGet(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := categorystore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := store.Create(ctx, models.Category{
		Name:        models.Localized{EN: "Back pain", RU: "Боль в спине"},
		IsPublished: true,
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if created.ID.IsZero() {
		t.Fatal("expected created category to have an id")
	}
	if created.Status != "active" {
		t.Errorf("status: got %q, want active", created.Status)
	}

	got, err := store.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.Name.RU != "Боль в спине" {
		t.Errorf("name.ru: got %q", got.Name.RU)
	}
	if got.CreatedAt.IsZero() {
		t.Error("expected CreatedAt to be set")
	}
}

func TestStore_RootsAndSubcategories(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := categorystore.New(db)
	fix := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	root := fix.CreateCategory(ctx, "Rehabilitation", nil)
	fix.CreateCategory(ctx, "Knee", &root.ID)
	fix.CreateCategory(ctx, "Spine", &root.ID)
	fix.CreateCategory(ctx, "Nutrition", nil)

	roots, err := store.Roots(ctx)
	if err != nil {
		t.Fatalf("Roots failed: %v", err)
	}
	if len(roots) != 2 {
		t.Errorf("roots: got %d, want 2", len(roots))
	}

	subs, err := store.Subcategories(ctx, root.ID)
	if err != nil {
		t.Fatalf("Subcategories failed: %v", err)
	}
	if len(subs) != 2 {
		t.Errorf("subcategories: got %d, want 2", len(subs))
	}
	for _, s := range subs {
		if !s.IsSubcategory() {
			t.Errorf("category %s should report as subcategory", s.ID.Hex())
		}
	}
}

func TestStore_Update_CycleRejected(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := categorystore.New(db)
	fix := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	a := fix.CreateCategory(ctx, "A", nil)
	b := fix.CreateCategory(ctx, "B", &a.ID)

	// Self-parenting is a cycle.
	self := &a.ID
	err := store.Update(ctx, a.ID, categorystore.Update{ParentID: &self})
	if !errors.Is(err, categorystore.ErrCycle) {
		t.Errorf("self-parent: expected ErrCycle, got %v", err)
	}

	// Making the parent a child of its own descendant is a cycle.
	child := &b.ID
	err = store.Update(ctx, a.ID, categorystore.Update{ParentID: &child})
	if !errors.Is(err, categorystore.ErrCycle) {
		t.Errorf("descendant parent: expected ErrCycle, got %v", err)
	}
}

func TestStore_SoftDelete(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := categorystore.New(db)
	fix := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	cat := fix.CreateCategory(ctx, "Temporary", nil)
	if err := store.SoftDelete(ctx, cat.ID); err != nil {
		t.Fatalf("SoftDelete failed: %v", err)
	}

	// Deleted categories disappear from reads.
	if _, err := store.GetByID(ctx, cat.ID); !errors.Is(err, categorystore.ErrNotFound) {
		t.Errorf("GetByID after delete: expected ErrNotFound, got %v", err)
	}
	roots, err := store.Roots(ctx)
	if err != nil {
		t.Fatalf("Roots failed: %v", err)
	}
	if len(roots) != 0 {
		t.Errorf("expected deleted category to be excluded from roots, got %d", len(roots))
	}

	// Deleting twice reports not found.
	if err := store.SoftDelete(ctx, cat.ID); !errors.Is(err, categorystore.ErrNotFound) {
		t.Errorf("second SoftDelete: expected ErrNotFound, got %v", err)
	}
}

func TestStore_List_PublishedOnly(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := categorystore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if _, err := store.Create(ctx, models.Category{Name: models.Localized{EN: "Visible"}, IsPublished: true}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if _, err := store.Create(ctx, models.Category{Name: models.Localized{EN: "Draft"}}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	public, err := store.List(ctx, true)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(public) != 1 {
		t.Errorf("published list: got %d, want 1", len(public))
	}

	all, err := store.List(ctx, false)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("full list: got %d, want 2", len(all))
	}
}
