// internal/app/features/adminauth/handler.go
package adminauth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/vitamove/vitamove-server/internal/app/store/logincodes"
	"github.com/vitamove/vitamove-server/internal/app/system/apiutil"
	"github.com/vitamove/vitamove-server/internal/app/system/auth"
	"github.com/vitamove/vitamove-server/internal/app/system/inputval"
	"github.com/vitamove/vitamove-server/internal/app/system/mailer"
	"github.com/vitamove/vitamove-server/internal/app/system/timeouts"
)

// Handler implements passwordless admin sign-in: a one-time code is emailed
// to the configured admin address, and verifying it establishes the session
// cookie. Requests for any other address are answered identically so the
// endpoint does not confirm which address is the admin's.
type Handler struct {
	Codes      *logincodes.Store
	Sessions   *auth.Manager
	Mail       mailer.Sender
	AdminAddrs []string
	SiteName   string
	Log        *zap.Logger
}

func NewHandler(codes *logincodes.Store, sessions *auth.Manager, mail mailer.Sender, adminAddrs []string, siteName string, logger *zap.Logger) *Handler {
	normalized := make([]string, 0, len(adminAddrs))
	for _, a := range adminAddrs {
		if a = inputval.Email(a); a != "" {
			normalized = append(normalized, a)
		}
	}
	return &Handler{
		Codes:      codes,
		Sessions:   sessions,
		Mail:       mail,
		AdminAddrs: normalized,
		SiteName:   siteName,
		Log:        logger,
	}
}

func (h *Handler) isAdminAddr(email string) bool {
	for _, a := range h.AdminAddrs {
		if a == email {
			return true
		}
	}
	return false
}

// ServeLoginRequest handles POST /api/admin/login/request. The response is
// the same whether or not the email is the admin's.
func (h *Handler) ServeLoginRequest(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	var body struct {
		Email string `json:"email"`
	}
	if err := apiutil.DecodeBody(r, &body); err != nil {
		apiutil.WriteError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	email := inputval.Email(body.Email)
	if !inputval.EmailValid(email) {
		apiutil.WriteError(w, http.StatusUnprocessableEntity, "a valid email is required")
		return
	}

	accepted := map[string]string{"status": "accepted"}

	if !h.isAdminAddr(email) {
		h.Log.Warn("admin login requested for unknown address", zap.String("email", email))
		apiutil.WriteJSON(w, http.StatusAccepted, accepted)
		return
	}

	code, err := h.Codes.Create(ctx, email)
	if errors.Is(err, logincodes.ErrTooManyResends) {
		apiutil.WriteError(w, http.StatusTooManyRequests, "too many code requests; try again later")
		return
	}
	if err != nil {
		h.Log.Error("admin login: code create failed", zap.Error(err))
		apiutil.WriteError(w, http.StatusInternalServerError, "could not issue login code")
		return
	}

	msg := mailer.BuildLoginCode(email, mailer.LoginCodeData{
		SiteName:  h.SiteName,
		Code:      code,
		ExpiresIn: formatExpiry(h.Codes.Expiry()),
	})
	if err := h.Mail.Send(msg); err != nil {
		h.Log.Error("admin login: code email failed", zap.Error(err))
		apiutil.WriteError(w, http.StatusInternalServerError, "could not send login code")
		return
	}

	h.Log.Info("admin login code sent", zap.String("email", email))
	apiutil.WriteJSON(w, http.StatusAccepted, accepted)
}

// ServeLoginVerify handles POST /api/admin/login/verify. A correct code
// establishes the admin session.
func (h *Handler) ServeLoginVerify(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	var body struct {
		Email string `json:"email"`
		Code  string `json:"code"`
	}
	if err := apiutil.DecodeBody(r, &body); err != nil {
		apiutil.WriteError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	email := inputval.Email(body.Email)
	code := strings.TrimSpace(body.Code)
	if email == "" || code == "" {
		apiutil.WriteError(w, http.StatusBadRequest, "email and code are required")
		return
	}

	err := h.Codes.Verify(ctx, email, code)
	switch {
	case errors.Is(err, logincodes.ErrNotFound):
		apiutil.WriteError(w, http.StatusUnauthorized, "code not found or expired")
		return
	case errors.Is(err, logincodes.ErrTooManyAttempts):
		apiutil.WriteError(w, http.StatusTooManyRequests, "too many attempts; request a new code")
		return
	case errors.Is(err, logincodes.ErrInvalidCode):
		apiutil.WriteError(w, http.StatusUnauthorized, "invalid code")
		return
	case err != nil:
		h.Log.Error("admin login: verify failed", zap.Error(err))
		apiutil.WriteError(w, http.StatusInternalServerError, "could not verify code")
		return
	}

	if err := h.Sessions.SignIn(w, r, email); err != nil {
		h.Log.Error("admin login: session save failed", zap.Error(err))
		apiutil.WriteError(w, http.StatusInternalServerError, "could not establish session")
		return
	}

	h.Log.Info("admin signed in", zap.String("email", email))
	apiutil.WriteJSON(w, http.StatusOK, map[string]string{"status": "signed_in"})
}

// ServeLogout handles POST /api/admin/logout.
func (h *Handler) ServeLogout(w http.ResponseWriter, r *http.Request) {
	if err := h.Sessions.SignOut(w, r); err != nil {
		h.Log.Error("admin logout: session clear failed", zap.Error(err))
		apiutil.WriteError(w, http.StatusInternalServerError, "could not clear session")
		return
	}
	apiutil.WriteJSON(w, http.StatusOK, map[string]string{"status": "signed_out"})
}

// formatExpiry renders a duration like "10 minutes" for email copy.
func formatExpiry(d time.Duration) string {
	m := int(d.Minutes())
	if m <= 1 {
		return "1 minute"
	}
	return fmt.Sprintf("%d minutes", m)
}
