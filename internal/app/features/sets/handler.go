// internal/app/features/sets/handler.go
package sets

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/vitamove/vitamove-server/internal/app/store/exercises"
	"github.com/vitamove/vitamove-server/internal/app/store/purchases"
	"github.com/vitamove/vitamove-server/internal/app/store/sets"
	"github.com/vitamove/vitamove-server/internal/app/system/apiutil"
	"github.com/vitamove/vitamove-server/internal/app/system/inputval"
	"github.com/vitamove/vitamove-server/internal/app/system/timeouts"
	"github.com/vitamove/vitamove-server/internal/domain/models"
)

// Handler serves exercise sets. Tier locks are resolved server-side on the
// detail read: a caller proving a purchase (by email) sees the covered
// tiers unlocked, everyone else sees the stored locks.
type Handler struct {
	Sets      *setstore.Store
	Exercises *exercisestore.Store
	Purchases *purchasestore.Store
	Log       *zap.Logger
}

func NewHandler(sets *setstore.Store, exs *exercisestore.Store, purch *purchasestore.Store, logger *zap.Logger) *Handler {
	return &Handler{Sets: sets, Exercises: exs, Purchases: purch, Log: logger}
}

// ServeList handles GET /api/sets?categoryId=&subCategoryId=.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	var f setstore.Filter
	if v := r.URL.Query().Get("categoryId"); v != "" {
		id, err := apiutil.ParseID(v)
		if err != nil {
			apiutil.WriteError(w, http.StatusBadRequest, "invalid categoryId")
			return
		}
		f.CategoryID = &id
	}
	if v := r.URL.Query().Get("subCategoryId"); v != "" {
		id, err := apiutil.ParseID(v)
		if err != nil {
			apiutil.WriteError(w, http.StatusBadRequest, "invalid subCategoryId")
			return
		}
		f.SubcategoryID = &id
	}

	out, err := h.Sets.List(ctx, f)
	if err != nil {
		h.Log.Error("sets: list failed", zap.Error(err))
		apiutil.WriteError(w, http.StatusInternalServerError, "could not list sets")
		return
	}
	apiutil.WriteJSON(w, http.StatusOK, out)
}

// ServeGet handles GET /api/sets/{id}?email=. Exercises are embedded and
// tier locks are recomputed against the caller's active purchases.
func (h *Handler) ServeGet(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	id, err := apiutil.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		apiutil.WriteError(w, http.StatusBadRequest, "invalid set id")
		return
	}

	set, err := h.Sets.GetByID(ctx, id)
	if errors.Is(err, setstore.ErrNotFound) {
		apiutil.WriteError(w, http.StatusNotFound, "set not found")
		return
	}
	if err != nil {
		h.Log.Error("sets: get failed", zap.Error(err), zap.String("id", id.Hex()))
		apiutil.WriteError(w, http.StatusInternalServerError, "could not load set")
		return
	}

	exs, err := h.Exercises.BySet(ctx, set.ID)
	if err != nil {
		h.Log.Error("sets: exercises load failed", zap.Error(err), zap.String("id", id.Hex()))
		apiutil.WriteError(w, http.StatusInternalServerError, "could not load exercises")
		return
	}
	set.Exercises = exs

	if email := r.URL.Query().Get("email"); email != "" && inputval.EmailValid(email) {
		if err := h.resolveLocks(ctx, &set, email); err != nil {
			// locks stay as stored; access errs on the closed side
			h.Log.Warn("sets: purchase lookup failed", zap.Error(err), zap.String("id", id.Hex()))
		}
	}

	apiutil.WriteJSON(w, http.StatusOK, set)
}

// resolveLocks unlocks the tiers the email's active purchases cover.
func (h *Handler) resolveLocks(ctx context.Context, set *models.Set, email string) error {
	if len(set.Levels) == 0 {
		return nil
	}
	active, err := h.Purchases.ActiveForSet(ctx, email, set.ID)
	if err != nil {
		return err
	}
	now := time.Now().UTC()
	for tier, level := range set.Levels {
		if !level.IsLocked {
			continue
		}
		for i := range active {
			if active[i].Active(now) && active[i].Covers(tier) {
				level.IsLocked = false
				set.Levels[tier] = level
				break
			}
		}
	}
	return nil
}

// nullablePrice distinguishes an absent discounted_price from an explicit
// null, which clears the discount.
type nullablePrice struct {
	Set   bool
	Value *models.Price
}

func (n *nullablePrice) UnmarshalJSON(data []byte) error {
	n.Set = true
	if string(data) == "null" {
		n.Value = nil
		return nil
	}
	var p models.Price
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	n.Value = &p
	return nil
}

// createRequest is the admin create payload for a set.
type createRequest struct {
	Name            models.Localized            `json:"name"`
	Description     models.Localized            `json:"description,omitempty"`
	Recommendations models.Localized            `json:"recommendations,omitempty"`
	Equipment       models.Localized            `json:"equipment,omitempty"`
	Warnings        models.Localized            `json:"warnings,omitempty"`
	ThumbnailURL    string                      `json:"thumbnail_url,omitempty"`
	TotalExercises  int                         `json:"total_exercises,omitempty"`
	TotalDuration   string                      `json:"total_duration,omitempty"`
	Levels          map[string]models.TierLevel `json:"levels,omitempty"`
	Price           models.Price                `json:"price"`
	DiscountedPrice *models.Price               `json:"discounted_price,omitempty"`
	CategoryID      string                      `json:"category_id"`
	SubcategoryID   string                      `json:"subcategory_id,omitempty"`
}

// ServeCreate handles POST /api/sets (admin).
func (h *Handler) ServeCreate(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	var req createRequest
	if err := apiutil.DecodeBody(r, &req); err != nil {
		apiutil.WriteError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.Name.IsEmpty() {
		apiutil.WriteError(w, http.StatusUnprocessableEntity, "name is required in at least one locale")
		return
	}
	if req.TotalDuration != "" && !inputval.Duration(req.TotalDuration) {
		apiutil.WriteError(w, http.StatusUnprocessableEntity, "total_duration must look like HH:MM")
		return
	}
	for tier := range req.Levels {
		if !validTier(tier) {
			apiutil.WriteError(w, http.StatusUnprocessableEntity, "unknown tier in levels: "+tier)
			return
		}
	}
	catID, err := apiutil.ParseID(req.CategoryID)
	if err != nil {
		apiutil.WriteError(w, http.StatusBadRequest, "invalid category_id")
		return
	}

	set := models.Set{
		Name:            req.Name,
		Description:     req.Description,
		Recommendations: req.Recommendations,
		Equipment:       req.Equipment,
		Warnings:        req.Warnings,
		ThumbnailURL:    req.ThumbnailURL,
		TotalExercises:  req.TotalExercises,
		TotalDuration:   req.TotalDuration,
		Levels:          req.Levels,
		Price:           req.Price,
		DiscountedPrice: req.DiscountedPrice,
		CategoryID:      catID,
	}
	if req.SubcategoryID != "" {
		sid, err := apiutil.ParseID(req.SubcategoryID)
		if err != nil {
			apiutil.WriteError(w, http.StatusBadRequest, "invalid subcategory_id")
			return
		}
		set.SubcategoryID = &sid
	}

	created, err := h.Sets.Create(ctx, set)
	if err != nil {
		h.Log.Error("sets: create failed", zap.Error(err))
		apiutil.WriteError(w, http.StatusInternalServerError, "could not create set")
		return
	}

	h.Log.Info("set created", zap.String("id", created.ID.Hex()))
	apiutil.WriteJSON(w, http.StatusCreated, created)
}

// ServeUpdate handles PATCH /api/sets/{id} (admin).
func (h *Handler) ServeUpdate(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	id, err := apiutil.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		apiutil.WriteError(w, http.StatusBadRequest, "invalid set id")
		return
	}

	var body struct {
		Name            *models.Localized            `json:"name,omitempty"`
		Description     *models.Localized            `json:"description,omitempty"`
		Recommendations *models.Localized            `json:"recommendations,omitempty"`
		Equipment       *models.Localized            `json:"equipment,omitempty"`
		Warnings        *models.Localized            `json:"warnings,omitempty"`
		ThumbnailURL    *string                      `json:"thumbnail_url,omitempty"`
		TotalExercises  *int                         `json:"total_exercises,omitempty"`
		TotalDuration   *string                      `json:"total_duration,omitempty"`
		Levels          *map[string]models.TierLevel `json:"levels,omitempty"`
		Price           *models.Price                `json:"price,omitempty"`
		DiscountedPrice nullablePrice                `json:"discounted_price"`
		SubcategoryID   apiutil.NullableID           `json:"subcategory_id"`
	}
	if err := apiutil.DecodeBody(r, &body); err != nil {
		apiutil.WriteError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if body.Name != nil && body.Name.IsEmpty() {
		apiutil.WriteError(w, http.StatusUnprocessableEntity, "name cannot be cleared in every locale")
		return
	}
	if body.TotalDuration != nil && *body.TotalDuration != "" && !inputval.Duration(*body.TotalDuration) {
		apiutil.WriteError(w, http.StatusUnprocessableEntity, "total_duration must look like HH:MM")
		return
	}
	if body.Levels != nil {
		for tier := range *body.Levels {
			if !validTier(tier) {
				apiutil.WriteError(w, http.StatusUnprocessableEntity, "unknown tier in levels: "+tier)
				return
			}
		}
	}

	upd := setstore.Update{
		Name:            body.Name,
		Description:     body.Description,
		Recommendations: body.Recommendations,
		Equipment:       body.Equipment,
		Warnings:        body.Warnings,
		ThumbnailURL:    body.ThumbnailURL,
		TotalExercises:  body.TotalExercises,
		TotalDuration:   body.TotalDuration,
		Levels:          body.Levels,
		Price:           body.Price,
	}
	if body.DiscountedPrice.Set {
		upd.DiscountedPrice = &body.DiscountedPrice.Value
	}
	if body.SubcategoryID.Set {
		if body.SubcategoryID.Value == "" {
			var nilID *primitive.ObjectID
			upd.SubcategoryID = &nilID
		} else {
			sid, err := apiutil.ParseID(body.SubcategoryID.Value)
			if err != nil {
				apiutil.WriteError(w, http.StatusBadRequest, "invalid subcategory_id")
				return
			}
			p := &sid
			upd.SubcategoryID = &p
		}
	}

	err = h.Sets.Update(ctx, id, upd)
	if errors.Is(err, setstore.ErrNotFound) {
		apiutil.WriteError(w, http.StatusNotFound, "set not found")
		return
	}
	if err != nil {
		h.Log.Error("sets: update failed", zap.Error(err), zap.String("id", id.Hex()))
		apiutil.WriteError(w, http.StatusInternalServerError, "could not update set")
		return
	}
	apiutil.WriteJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

// ServeDelete handles DELETE /api/sets/{id} (admin, soft delete).
func (h *Handler) ServeDelete(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	id, err := apiutil.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		apiutil.WriteError(w, http.StatusBadRequest, "invalid set id")
		return
	}

	err = h.Sets.SoftDelete(ctx, id)
	if errors.Is(err, setstore.ErrNotFound) {
		apiutil.WriteError(w, http.StatusNotFound, "set not found")
		return
	}
	if err != nil {
		h.Log.Error("sets: delete failed", zap.Error(err), zap.String("id", id.Hex()))
		apiutil.WriteError(w, http.StatusInternalServerError, "could not delete set")
		return
	}

	h.Log.Info("set disabled", zap.String("id", id.Hex()))
	apiutil.WriteJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func validTier(tier string) bool {
	for _, t := range models.Tiers {
		if t == tier {
			return true
		}
	}
	return false
}
