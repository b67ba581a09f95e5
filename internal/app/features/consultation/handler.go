// internal/app/features/consultation/handler.go
package consultation

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/vitamove/vitamove-server/internal/app/store/consultations"
	"github.com/vitamove/vitamove-server/internal/app/system/apiutil"
	"github.com/vitamove/vitamove-server/internal/app/system/inputval"
	"github.com/vitamove/vitamove-server/internal/app/system/mailer"
	"github.com/vitamove/vitamove-server/internal/app/system/timeouts"
	"github.com/vitamove/vitamove-server/internal/domain/models"
)

// Handler serves the public consultation intake and the admin follow-up
// workflow. Intake always persists the request before any email goes out;
// a mail failure leaves email_sent false for manual follow-up.
type Handler struct {
	Consultations *consultationstore.Store
	Mail          mailer.Sender
	AdminAddr     string
	SiteName      string
	Log           *zap.Logger
}

func NewHandler(store *consultationstore.Store, mail mailer.Sender, adminAddr, siteName string, logger *zap.Logger) *Handler {
	return &Handler{
		Consultations: store,
		Mail:          mail,
		AdminAddr:     adminAddr,
		SiteName:      siteName,
		Log:           logger,
	}
}

// submitRequest is the public intake payload.
type submitRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Message string `json:"message,omitempty"`
	Locale  string `json:"locale,omitempty"`
}

// ServeSubmit handles POST /api/consultation (public).
func (h *Handler) ServeSubmit(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	var req submitRequest
	if err := apiutil.DecodeBody(r, &req); err != nil {
		apiutil.WriteError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	name := inputval.Name(req.Name)
	email := inputval.Email(req.Email)
	phone := inputval.Phone(req.Phone)
	if name == "" {
		apiutil.WriteError(w, http.StatusUnprocessableEntity, "name is required")
		return
	}
	if !inputval.EmailValid(email) {
		apiutil.WriteError(w, http.StatusUnprocessableEntity, "a valid email is required")
		return
	}
	if !inputval.PhoneValid(phone) {
		apiutil.WriteError(w, http.StatusUnprocessableEntity, "a valid phone number is required")
		return
	}
	locale := req.Locale
	if !models.IsValidLocale(locale) {
		locale = models.LocaleEN
	}

	created, err := h.Consultations.Create(ctx, models.ConsultationRequest{
		Name:    name,
		Email:   email,
		Phone:   phone,
		Message: req.Message,
		Locale:  locale,
	})
	if err != nil {
		h.Log.Error("consultation: create failed", zap.Error(err))
		apiutil.WriteError(w, http.StatusInternalServerError, "could not submit consultation request")
		return
	}

	data := mailer.ConsultationData{
		SiteName: h.SiteName,
		Name:     created.Name,
		Email:    created.Email,
		Phone:    created.Phone,
		Message:  created.Message,
		Locale:   created.Locale,
	}
	sent := true
	if err := h.Mail.Send(mailer.BuildConsultationConfirmation(data)); err != nil {
		sent = false
		h.Log.Error("consultation: confirmation email failed",
			zap.Error(err), zap.String("id", created.ID.Hex()))
	}
	if h.AdminAddr != "" {
		if err := h.Mail.Send(mailer.BuildConsultationNotice(h.AdminAddr, data)); err != nil {
			sent = false
			h.Log.Error("consultation: admin notice email failed",
				zap.Error(err), zap.String("id", created.ID.Hex()))
		}
	}
	if sent {
		if err := h.Consultations.MarkEmailSent(ctx, created.ID); err != nil {
			h.Log.Warn("consultation: email_sent flag update failed",
				zap.Error(err), zap.String("id", created.ID.Hex()))
		} else {
			created.EmailSent = true
		}
	}

	apiutil.WriteJSON(w, http.StatusCreated, created)
}

// ServeList handles GET /api/consultation?status= (admin).
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	reqStatus := r.URL.Query().Get("status")
	out, err := h.Consultations.List(ctx, reqStatus)
	if err != nil {
		h.Log.Error("consultation: list failed", zap.Error(err))
		apiutil.WriteError(w, http.StatusInternalServerError, "could not list consultation requests")
		return
	}
	apiutil.WriteJSON(w, http.StatusOK, out)
}

// ServeUpdateStatus handles PATCH /api/consultation/{id}/status (admin).
// Transitions are checked against the request state machine.
func (h *Handler) ServeUpdateStatus(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	id, err := apiutil.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		apiutil.WriteError(w, http.StatusBadRequest, "invalid consultation id")
		return
	}

	var body struct {
		Status string `json:"status"`
	}
	if err := apiutil.DecodeBody(r, &body); err != nil {
		apiutil.WriteError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	updated, err := h.Consultations.UpdateStatus(ctx, id, body.Status)
	switch {
	case errors.Is(err, consultationstore.ErrNotFound):
		apiutil.WriteError(w, http.StatusNotFound, "consultation request not found")
	case errors.Is(err, consultationstore.ErrBadTransition):
		apiutil.WriteError(w, http.StatusUnprocessableEntity, "invalid status transition")
	case err != nil:
		h.Log.Error("consultation: status update failed", zap.Error(err), zap.String("id", id.Hex()))
		apiutil.WriteError(w, http.StatusInternalServerError, "could not update consultation status")
	default:
		h.Log.Info("consultation status updated",
			zap.String("id", id.Hex()),
			zap.String("status", updated.RequestStatus))
		apiutil.WriteJSON(w, http.StatusOK, updated)
	}
}
