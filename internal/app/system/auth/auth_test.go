package auth_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"

	"github.com/vitamove/vitamove-server/internal/app/system/auth"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestRequireAdmin_RejectsAnonymous(t *testing.T) {
	h := auth.RequireAdmin(okHandler())

	req := httptest.NewRequest("POST", "/api/categories", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status: got %d, want %d", rec.Code, http.StatusUnauthorized)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type: got %q, want application/json", ct)
	}
}

func TestRequireAdmin_PassesAdmin(t *testing.T) {
	h := auth.RequireAdmin(okHandler())

	req := httptest.NewRequest("POST", "/api/categories", nil)
	req = auth.WithTestAdmin(req, &auth.AdminUser{Email: "admin@test.com"})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status: got %d, want %d", rec.Code, http.StatusOK)
	}
}

func TestCurrentAdmin(t *testing.T) {
	req := httptest.NewRequest("GET", "/api/articles", nil)
	if _, ok := auth.CurrentAdmin(req); ok {
		t.Error("expected no admin on a bare request")
	}

	req = auth.WithTestAdmin(req, &auth.AdminUser{Email: "admin@test.com"})
	u, ok := auth.CurrentAdmin(req)
	if !ok {
		t.Fatal("expected admin to be present")
	}
	if u.Email != "admin@test.com" {
		t.Errorf("email: got %q", u.Email)
	}
}

func TestManager_SignInSignOut(t *testing.T) {
	mgr, err := auth.NewManager("0123456789abcdef0123456789abcdef", "vitamove-test", "", false, zap.NewNop())
	if err != nil {
		t.Fatalf("NewManager failed: %v", err)
	}

	// Sign in and capture the session cookie.
	req := httptest.NewRequest("POST", "/api/admin/login/verify", nil)
	rec := httptest.NewRecorder()
	if err := mgr.SignIn(rec, req, "admin@test.com"); err != nil {
		t.Fatalf("SignIn failed: %v", err)
	}
	cookies := rec.Result().Cookies()
	if len(cookies) == 0 {
		t.Fatal("expected SignIn to set a session cookie")
	}

	// A request carrying the cookie should load the admin through the middleware.
	var loaded bool
	h := mgr.LoadSession(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, loaded = auth.CurrentAdmin(r)
	}))
	req2 := httptest.NewRequest("GET", "/api/categories", nil)
	for _, c := range cookies {
		req2.AddCookie(c)
	}
	h.ServeHTTP(httptest.NewRecorder(), req2)
	if !loaded {
		t.Error("expected session cookie to authenticate the request")
	}
}
