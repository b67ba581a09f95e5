package consultation_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"

	"github.com/vitamove/vitamove-server/internal/app/features/consultation"
	consultationstore "github.com/vitamove/vitamove-server/internal/app/store/consultations"
	"github.com/vitamove/vitamove-server/internal/app/system/mailer"
	"github.com/vitamove/vitamove-server/internal/domain/models"
	"github.com/vitamove/vitamove-server/internal/testutil"
)

// recordingSender captures sent mail; fail makes every Send return an error.
type recordingSender struct {
	sent []mailer.Email
	fail bool
}

func (s *recordingSender) Send(e mailer.Email) error {
	if s.fail {
		return errors.New("smtp down")
	}
	s.sent = append(s.sent, e)
	return nil
}

func newHandler(t *testing.T, sender mailer.Sender) (*consultation.Handler, *consultationstore.Store) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	store := consultationstore.New(db)
	h := consultation.NewHandler(store, sender, "admin@vitamove.ge", "VitaMove", zap.NewNop())
	return h, store
}

func TestServeSubmit_SendsBothEmails(t *testing.T) {
	sender := &recordingSender{}
	h, store := newHandler(t, sender)

	req := testutil.NewJSONRequest(t, "POST", "/api/consultation", map[string]any{
		"name":    "Nino",
		"email":   "Nino@Example.com",
		"phone":   "+995 599 12 34 56",
		"message": "knee pain after running",
		"locale":  "ka",
	})
	rec := httptest.NewRecorder()
	h.ServeSubmit(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status: got %d, want %d (%s)", rec.Code, http.StatusCreated, rec.Body.String())
	}

	var created models.ConsultationRequest
	testutil.DecodeJSONResponse(t, rec, &created)
	if created.Email != "nino@example.com" {
		t.Errorf("email should be normalized, got %q", created.Email)
	}
	if created.Phone != "+995599123456" {
		t.Errorf("phone should be normalized, got %q", created.Phone)
	}
	if created.RequestStatus != models.ConsultationPending {
		t.Errorf("request status: got %q", created.RequestStatus)
	}
	if !created.EmailSent {
		t.Error("expected email_sent true when both emails went out")
	}

	// One confirmation to the requester, one notice to the admin.
	if len(sender.sent) != 2 {
		t.Fatalf("expected 2 emails, got %d", len(sender.sent))
	}
	if sender.sent[0].To != "nino@example.com" {
		t.Errorf("confirmation recipient: got %q", sender.sent[0].To)
	}
	if sender.sent[1].To != "admin@vitamove.ge" {
		t.Errorf("notice recipient: got %q", sender.sent[1].To)
	}

	ctx, cancel := testutil.TestContext()
	defer cancel()
	stored, err := store.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if !stored.EmailSent {
		t.Error("expected stored email_sent true")
	}
}

func TestServeSubmit_PersistsDespiteMailFailure(t *testing.T) {
	h, store := newHandler(t, &recordingSender{fail: true})

	req := testutil.NewJSONRequest(t, "POST", "/api/consultation", map[string]any{
		"name":  "Gio",
		"email": "gio@example.com",
		"phone": "+995599000000",
	})
	rec := httptest.NewRecorder()
	h.ServeSubmit(rec, req)

	// The request is saved and answered 201 even though no mail went out.
	if rec.Code != http.StatusCreated {
		t.Fatalf("status: got %d, want %d (%s)", rec.Code, http.StatusCreated, rec.Body.String())
	}

	var created models.ConsultationRequest
	testutil.DecodeJSONResponse(t, rec, &created)
	if created.EmailSent {
		t.Error("expected email_sent false after mail failure")
	}

	ctx, cancel := testutil.TestContext()
	defer cancel()
	stored, err := store.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("request was not persisted: %v", err)
	}
	if stored.EmailSent {
		t.Error("expected stored email_sent false")
	}
}

func TestServeSubmit_InvalidInputNotPersisted(t *testing.T) {
	sender := &recordingSender{}
	h, store := newHandler(t, sender)

	tests := []struct {
		name string
		body map[string]any
	}{
		{"missing name", map[string]any{"email": "a@example.com", "phone": "+995599123456"}},
		{"bad email", map[string]any{"name": "A", "email": "not-an-email", "phone": "+995599123456"}},
		{"bad phone", map[string]any{"name": "A", "email": "a@example.com", "phone": "123"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := testutil.NewJSONRequest(t, "POST", "/api/consultation", tc.body)
			rec := httptest.NewRecorder()
			h.ServeSubmit(rec, req)

			if rec.Code != http.StatusUnprocessableEntity {
				t.Errorf("status: got %d, want %d", rec.Code, http.StatusUnprocessableEntity)
			}
		})
	}

	if len(sender.sent) != 0 {
		t.Errorf("expected no emails for invalid input, got %d", len(sender.sent))
	}
	ctx, cancel := testutil.TestContext()
	defer cancel()
	all, err := store.List(ctx, "")
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(all) != 0 {
		t.Errorf("expected nothing persisted, got %d records", len(all))
	}
}

func TestServeUpdateStatus_BadTransition(t *testing.T) {
	h, store := newHandler(t, &recordingSender{})
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := store.Create(ctx, models.ConsultationRequest{
		Name: "Nino", Email: "nino@example.com", Phone: "+995599123456",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	req := testutil.NewJSONRequest(t, "PATCH", "/api/consultation/"+created.ID.Hex()+"/status",
		map[string]any{"status": "completed"})
	req = testutil.WithChiURLParam(req, "id", created.ID.Hex())
	rec := httptest.NewRecorder()
	h.ServeUpdateStatus(rec, req)

	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("status: got %d, want %d", rec.Code, http.StatusUnprocessableEntity)
	}
}
