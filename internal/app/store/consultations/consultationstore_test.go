package consultationstore_test

import (
	"errors"
	"testing"

	consultationstore "github.com/vitamove/vitamove-server/internal/app/store/consultations"
	"github.com/vitamove/vitamove-server/internal/domain/models"
	"github.com/vitamove/vitamove-server/internal/testutil"
)

func TestStore_Create_Defaults(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := consultationstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := store.Create(ctx, models.ConsultationRequest{
		Name:  "Nino",
		Email: "nino@example.com",
		Phone: "+995599123456",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if created.RequestStatus != models.ConsultationPending {
		t.Errorf("request status: got %q, want pending", created.RequestStatus)
	}
	if created.EmailSent {
		t.Error("expected email_sent to start false")
	}
	if created.CreatedAt.IsZero() {
		t.Error("expected CreatedAt to be set")
	}
}

func TestStore_UpdateStatus_Transitions(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := consultationstore.New(db)
	fix := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	req := fix.CreateConsultation(ctx, "Nino", "nino@example.com", "+995599123456")

	// pending → completed skips a step and is rejected.
	if _, err := store.UpdateStatus(ctx, req.ID, models.ConsultationCompleted); !errors.Is(err, consultationstore.ErrBadTransition) {
		t.Errorf("pending→completed: expected ErrBadTransition, got %v", err)
	}

	got, err := store.UpdateStatus(ctx, req.ID, models.ConsultationContacted)
	if err != nil {
		t.Fatalf("pending→contacted failed: %v", err)
	}
	if got.RequestStatus != models.ConsultationContacted {
		t.Errorf("status: got %q", got.RequestStatus)
	}

	got, err = store.UpdateStatus(ctx, req.ID, models.ConsultationCompleted)
	if err != nil {
		t.Fatalf("contacted→completed failed: %v", err)
	}
	if got.RequestStatus != models.ConsultationCompleted {
		t.Errorf("status: got %q", got.RequestStatus)
	}

	// Completed is terminal.
	if _, err := store.UpdateStatus(ctx, req.ID, models.ConsultationCancelled); !errors.Is(err, consultationstore.ErrBadTransition) {
		t.Errorf("completed→cancelled: expected ErrBadTransition, got %v", err)
	}
}

func TestStore_MarkEmailSent(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := consultationstore.New(db)
	fix := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	req := fix.CreateConsultation(ctx, "Gio", "gio@example.com", "+995599000000")

	if err := store.MarkEmailSent(ctx, req.ID); err != nil {
		t.Fatalf("MarkEmailSent failed: %v", err)
	}
	got, err := store.GetByID(ctx, req.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if !got.EmailSent {
		t.Error("expected email_sent to be true")
	}
}

func TestStore_List_ByStatus(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := consultationstore.New(db)
	fix := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	a := fix.CreateConsultation(ctx, "A", "a@example.com", "+995599000001")
	fix.CreateConsultation(ctx, "B", "b@example.com", "+995599000002")

	if _, err := store.UpdateStatus(ctx, a.ID, models.ConsultationContacted); err != nil {
		t.Fatalf("UpdateStatus failed: %v", err)
	}

	pending, err := store.List(ctx, models.ConsultationPending)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(pending) != 1 {
		t.Errorf("pending: got %d, want 1", len(pending))
	}

	all, err := store.List(ctx, "")
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("all: got %d, want 2", len(all))
	}
}
