package adminauth_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"regexp"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/vitamove/vitamove-server/internal/app/features/adminauth"
	"github.com/vitamove/vitamove-server/internal/app/store/logincodes"
	"github.com/vitamove/vitamove-server/internal/app/system/auth"
	"github.com/vitamove/vitamove-server/internal/app/system/mailer"
	"github.com/vitamove/vitamove-server/internal/testutil"
)

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

var codePattern = regexp.MustCompile(`\b(\d{6})\b`)

func newHandler(t *testing.T, sender mailer.Sender) *adminauth.Handler {
	t.Helper()
	db := testutil.SetupTestDB(t)
	codes := logincodes.New(db, 10*time.Minute)
	sessions, err := auth.NewManager("0123456789abcdef0123456789abcdef", "vitamove-test", "", false, zap.NewNop())
	if err != nil {
		t.Fatalf("NewManager failed: %v", err)
	}
	return adminauth.NewHandler(codes, sessions, sender, []string{"Admin@VitaMove.ge"}, "VitaMove", zap.NewNop())
}

func TestServeLoginRequest_EmailsCode(t *testing.T) {
	sender := &recordingSender{}
	h := newHandler(t, sender)

	req := testutil.NewJSONRequest(t, "POST", "/api/admin/login/request", map[string]any{
		"email": "admin@vitamove.ge",
	})
	rec := httptest.NewRecorder()
	h.ServeLoginRequest(rec, req)

	if rec.Code != http.StatusAccepted {
		t.Fatalf("status: got %d (%s)", rec.Code, rec.Body.String())
	}
	if len(sender.sent) != 1 {
		t.Fatalf("expected one email, got %d", len(sender.sent))
	}
	if sender.sent[0].To != "admin@vitamove.ge" {
		t.Errorf("recipient: got %q", sender.sent[0].To)
	}
	if !codePattern.MatchString(sender.sent[0].TextBody) {
		t.Errorf("email body carries no 6-digit code: %q", sender.sent[0].TextBody)
	}
}

func TestServeLoginRequest_UnknownAddressAnsweredIdentically(t *testing.T) {
	sender := &recordingSender{}
	h := newHandler(t, sender)

	req := testutil.NewJSONRequest(t, "POST", "/api/admin/login/request", map[string]any{
		"email": "stranger@example.com",
	})
	rec := httptest.NewRecorder()
	h.ServeLoginRequest(rec, req)

	// Same 202 as the admin path, but no code leaves the building.
	if rec.Code != http.StatusAccepted {
		t.Errorf("status: got %d, want %d", rec.Code, http.StatusAccepted)
	}
	if len(sender.sent) != 0 {
		t.Errorf("expected no email for unknown address, got %d", len(sender.sent))
	}
}

func TestLoginFlow_VerifyEstablishesSession(t *testing.T) {
	sender := &recordingSender{}
	h := newHandler(t, sender)

	// Request a code.
	req := testutil.NewJSONRequest(t, "POST", "/api/admin/login/request", map[string]any{
		"email": "admin@vitamove.ge",
	})
	rec := httptest.NewRecorder()
	h.ServeLoginRequest(rec, req)
	if rec.Code != http.StatusAccepted {
		t.Fatalf("request: got %d", rec.Code)
	}
	m := codePattern.FindStringSubmatch(sender.sent[0].TextBody)
	if m == nil {
		t.Fatal("no code in email body")
	}
	code := m[1]

	// Wrong code is refused.
	wrong := "000000"
	if wrong == code {
		wrong = "000001"
	}
	req = testutil.NewJSONRequest(t, "POST", "/api/admin/login/verify", map[string]any{
		"email": "admin@vitamove.ge", "code": wrong,
	})
	rec = httptest.NewRecorder()
	h.ServeLoginVerify(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("wrong code: got %d, want %d", rec.Code, http.StatusUnauthorized)
	}

	// Right code signs in and sets the session cookie.
	req = testutil.NewJSONRequest(t, "POST", "/api/admin/login/verify", map[string]any{
		"email": "admin@vitamove.ge", "code": code,
	})
	rec = httptest.NewRecorder()
	h.ServeLoginVerify(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("verify: got %d (%s)", rec.Code, rec.Body.String())
	}
	if len(rec.Result().Cookies()) == 0 {
		t.Error("expected session cookie after verify")
	}

	// The code is single-use.
	req = testutil.NewJSONRequest(t, "POST", "/api/admin/login/verify", map[string]any{
		"email": "admin@vitamove.ge", "code": code,
	})
	rec = httptest.NewRecorder()
	h.ServeLoginVerify(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("replayed code: got %d, want %d", rec.Code, http.StatusUnauthorized)
	}
}

func TestServeLoginRequest_MailFailureReported(t *testing.T) {
	h := newHandler(t, &recordingSender{fail: true})

	req := testutil.NewJSONRequest(t, "POST", "/api/admin/login/request", map[string]any{
		"email": "admin@vitamove.ge",
	})
	rec := httptest.NewRecorder()
	h.ServeLoginRequest(rec, req)
	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status: got %d, want %d", rec.Code, http.StatusInternalServerError)
	}
}
