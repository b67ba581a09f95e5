// internal/app/system/auth/auth.go

// Package auth manages the admin cookie session. The platform's only
// authenticated surface is content administration: every mutating route is
// wrapped in RequireAdmin. End-user authentication and payments are handled
// by external collaborators and never reach this service.
package auth

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gorilla/sessions"
	"go.uber.org/zap"

	"github.com/vitamove/vitamove-server/internal/app/system/apiutil"
)

const (
	isAuthKey    = "is_authenticated"
	adminAddrKey = "admin_email"
)

// Manager wraps the cookie session store.
type Manager struct {
	store       *sessions.CookieStore
	sessionName string
	log         *zap.Logger
}

// NewManager builds a session manager. The key must be at least 32 random
// characters in production; secure controls the cookie Secure/SameSite mode.
func NewManager(sessionKey, sessionName, domain string, secure bool, logger *zap.Logger) (*Manager, error) {
	if sessionKey == "" {
		return nil, fmt.Errorf("session key is empty; provide 32+ random chars")
	}
	if len(sessionKey) < 32 {
		logger.Warn("session key is short; 32+ chars recommended",
			zap.Int("length", len(sessionKey)))
	}

	store := sessions.NewCookieStore([]byte(sessionKey))
	opts := &sessions.Options{
		Domain:   domain,
		Path:     "/",
		Secure:   secure,
		HttpOnly: true,
		MaxAge:   8 * 60 * 60, // an admin workday
	}
	if secure {
		opts.SameSite = http.SameSiteNoneMode
	} else {
		opts.SameSite = http.SameSiteLaxMode
	}
	store.Options = opts

	logger.Info("session store initialized",
		zap.Bool("secure", secure),
		zap.String("domain", domain))

	return &Manager{store: store, sessionName: sessionName, log: logger}, nil
}

// AdminUser is what a verified admin session carries.
type AdminUser struct {
	Email string
}

type ctxKey string

const currentAdminKey ctxKey = "currentAdmin"

// CurrentAdmin returns the admin attached to the request, if any.
func CurrentAdmin(r *http.Request) (*AdminUser, bool) {
	u, ok := r.Context().Value(currentAdminKey).(*AdminUser)
	return u, ok
}

// SignIn establishes an admin session for the given email.
func (m *Manager) SignIn(w http.ResponseWriter, r *http.Request, email string) error {
	sess, _ := m.store.Get(r, m.sessionName)
	sess.Values[isAuthKey] = true
	sess.Values[adminAddrKey] = email
	return sess.Save(r, w)
}

// SignOut clears the admin session.
func (m *Manager) SignOut(w http.ResponseWriter, r *http.Request) error {
	sess, _ := m.store.Get(r, m.sessionName)
	sess.Options.MaxAge = -1
	sess.Values = map[any]any{}
	return sess.Save(r, w)
}

// LoadSession injects the admin user into the request context when the
// session cookie is valid. It never rejects; gating happens in RequireAdmin.
func (m *Manager) LoadSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess, _ := m.store.Get(r, m.sessionName)
		if isAuth, _ := sess.Values[isAuthKey].(bool); isAuth {
			email, _ := sess.Values[adminAddrKey].(string)
			r = withAdmin(r, &AdminUser{Email: email})
		}
		next.ServeHTTP(w, r)
	})
}

// RequireAdmin rejects requests without an admin session with a 401 JSON
// error.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := CurrentAdmin(r); !ok {
			apiutil.WriteError(w, http.StatusUnauthorized, "admin session required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// WithTestAdmin attaches an admin user directly to the request context.
// Test helper; bypasses the cookie store.
func WithTestAdmin(r *http.Request, u *AdminUser) *http.Request {
	return withAdmin(r, u)
}

func withAdmin(r *http.Request, u *AdminUser) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), currentAdminKey, u))
}
