// internal/app/features/purchases/handler.go
package purchases

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/vitamove/vitamove-server/internal/app/store/purchases"
	"github.com/vitamove/vitamove-server/internal/app/system/apiutil"
	"github.com/vitamove/vitamove-server/internal/app/system/inputval"
	"github.com/vitamove/vitamove-server/internal/app/system/timeouts"
	"github.com/vitamove/vitamove-server/internal/domain/models"
)

// Handler records purchases. Payment processing happens with an external
// provider; what arrives here are admin-recorded facts that the set read
// path uses to unlock tiers.
type Handler struct {
	Purchases *purchasestore.Store
	Log       *zap.Logger
}

func NewHandler(store *purchasestore.Store, logger *zap.Logger) *Handler {
	return &Handler{Purchases: store, Log: logger}
}

// createRequest is the admin record payload for a purchase.
type createRequest struct {
	Email     string     `json:"email"`
	SetID     string     `json:"set_id"`
	Plan      string     `json:"plan"`
	Tier      string     `json:"tier,omitempty"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
}

// ServeCreate handles POST /api/purchases (admin). The expiry defaults to
// the plan's duration from now.
func (h *Handler) ServeCreate(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	var req createRequest
	if err := apiutil.DecodeBody(r, &req); err != nil {
		apiutil.WriteError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	email := inputval.Email(req.Email)
	if !inputval.EmailValid(email) {
		apiutil.WriteError(w, http.StatusUnprocessableEntity, "a valid email is required")
		return
	}
	setID, err := apiutil.ParseID(req.SetID)
	if err != nil {
		apiutil.WriteError(w, http.StatusBadRequest, "invalid set_id")
		return
	}
	if !models.IsValidPlan(req.Plan) {
		apiutil.WriteError(w, http.StatusUnprocessableEntity, "plan must be monthly, three_months, six_months or yearly")
		return
	}
	if req.Tier != "" && !validTier(req.Tier) {
		apiutil.WriteError(w, http.StatusUnprocessableEntity, "tier must be beginner, intermediate or advanced")
		return
	}

	p := models.Purchase{
		Email: email,
		SetID: setID,
		Plan:  req.Plan,
		Tier:  req.Tier,
	}
	if req.ExpiresAt != nil {
		p.ExpiresAt = req.ExpiresAt.UTC()
	}

	created, err := h.Purchases.Create(ctx, p)
	if err != nil {
		h.Log.Error("purchases: create failed", zap.Error(err))
		apiutil.WriteError(w, http.StatusInternalServerError, "could not record purchase")
		return
	}

	h.Log.Info("purchase recorded",
		zap.String("id", created.ID.Hex()),
		zap.String("set_id", created.SetID.Hex()),
		zap.String("plan", created.Plan))
	apiutil.WriteJSON(w, http.StatusCreated, created)
}

// ServeList handles GET /api/purchases?email=&setId= (admin).
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	var f purchasestore.Filter
	if v := r.URL.Query().Get("email"); v != "" {
		f.Email = v
	}
	if v := r.URL.Query().Get("setId"); v != "" {
		id, err := apiutil.ParseID(v)
		if err != nil {
			apiutil.WriteError(w, http.StatusBadRequest, "invalid setId")
			return
		}
		f.SetID = id
	}

	out, err := h.Purchases.List(ctx, f)
	if err != nil {
		h.Log.Error("purchases: list failed", zap.Error(err))
		apiutil.WriteError(w, http.StatusInternalServerError, "could not list purchases")
		return
	}
	apiutil.WriteJSON(w, http.StatusOK, out)
}

// ServeRevoke handles DELETE /api/purchases/{id} (admin). The record stays
// for audit; it just stops granting access.
func (h *Handler) ServeRevoke(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	id, err := apiutil.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		apiutil.WriteError(w, http.StatusBadRequest, "invalid purchase id")
		return
	}

	err = h.Purchases.Revoke(ctx, id)
	if errors.Is(err, purchasestore.ErrNotFound) {
		apiutil.WriteError(w, http.StatusNotFound, "purchase not found")
		return
	}
	if err != nil {
		h.Log.Error("purchases: revoke failed", zap.Error(err), zap.String("id", id.Hex()))
		apiutil.WriteError(w, http.StatusInternalServerError, "could not revoke purchase")
		return
	}

	h.Log.Info("purchase revoked", zap.String("id", id.Hex()))
	apiutil.WriteJSON(w, http.StatusOK, map[string]string{"status": "revoked"})
}

func validTier(tier string) bool {
	for _, t := range models.Tiers {
		if t == tier {
			return true
		}
	}
	return false
}
