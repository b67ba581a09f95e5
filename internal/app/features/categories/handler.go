// internal/app/features/categories/handler.go
package categories

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/vitamove/vitamove-server/internal/app/store/categories"
	"github.com/vitamove/vitamove-server/internal/app/store/exercises"
	"github.com/vitamove/vitamove-server/internal/app/store/sets"
	"github.com/vitamove/vitamove-server/internal/app/system/apiutil"
	"github.com/vitamove/vitamove-server/internal/app/system/auth"
	"github.com/vitamove/vitamove-server/internal/app/system/timeouts"
	"github.com/vitamove/vitamove-server/internal/domain/models"
)

// Handler serves the category tree and the aggregated category/complete
// read used by the catalog landing pages.
type Handler struct {
	Categories *categorystore.Store
	Sets       *setstore.Store
	Exercises  *exercisestore.Store
	Log        *zap.Logger
}

func NewHandler(cats *categorystore.Store, sets *setstore.Store, exs *exercisestore.Store, logger *zap.Logger) *Handler {
	return &Handler{Categories: cats, Sets: sets, Exercises: exs, Log: logger}
}

// ServeList handles GET /api/categories. Public callers see published
// categories only; an admin session lifts the filter.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	_, isAdmin := auth.CurrentAdmin(r)
	cats, err := h.Categories.List(ctx, !isAdmin)
	if err != nil {
		h.Log.Error("categories: list failed", zap.Error(err))
		apiutil.WriteError(w, http.StatusInternalServerError, "could not list categories")
		return
	}
	apiutil.WriteJSON(w, http.StatusOK, cats)
}

// ServeGet handles GET /api/categories/{id}.
func (h *Handler) ServeGet(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	id, err := apiutil.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		apiutil.WriteError(w, http.StatusBadRequest, "invalid category id")
		return
	}

	cat, err := h.Categories.GetByID(ctx, id)
	if errors.Is(err, categorystore.ErrNotFound) {
		apiutil.WriteError(w, http.StatusNotFound, "category not found")
		return
	}
	if err != nil {
		h.Log.Error("categories: get failed", zap.Error(err), zap.String("id", id.Hex()))
		apiutil.WriteError(w, http.StatusInternalServerError, "could not load category")
		return
	}
	apiutil.WriteJSON(w, http.StatusOK, cat)
}

// ServeSubcategories handles GET /api/categories/{id}/subcategories.
func (h *Handler) ServeSubcategories(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	id, err := apiutil.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		apiutil.WriteError(w, http.StatusBadRequest, "invalid category id")
		return
	}

	subs, err := h.Categories.Subcategories(ctx, id)
	if err != nil {
		h.Log.Error("categories: subcategories failed", zap.Error(err), zap.String("id", id.Hex()))
		apiutil.WriteError(w, http.StatusInternalServerError, "could not list subcategories")
		return
	}
	apiutil.WriteJSON(w, http.StatusOK, subs)
}

// completeResponse is the aggregated payload for a category landing page:
// the category itself, its subcategories, its sets with exercises embedded,
// and the category's full exercise list (including exercises in no set).
type completeResponse struct {
	Category      models.Category   `json:"category"`
	Subcategories []models.Category `json:"subcategories"`
	Sets          []models.Set      `json:"sets"`
	Exercises     []models.Exercise `json:"exercises"`
}

// ServeComplete handles GET /api/categories/{id}/complete. Sets with no
// exercises still appear, with an empty exercise list.
func (h *Handler) ServeComplete(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	id, err := apiutil.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		apiutil.WriteError(w, http.StatusBadRequest, "invalid category id")
		return
	}

	cat, err := h.Categories.GetByID(ctx, id)
	if errors.Is(err, categorystore.ErrNotFound) {
		apiutil.WriteError(w, http.StatusNotFound, "category not found")
		return
	}
	if err != nil {
		h.Log.Error("categories: complete get failed", zap.Error(err), zap.String("id", id.Hex()))
		apiutil.WriteError(w, http.StatusInternalServerError, "could not load category")
		return
	}

	subs, err := h.Categories.Subcategories(ctx, id)
	if err != nil {
		h.Log.Error("categories: complete subcategories failed", zap.Error(err), zap.String("id", id.Hex()))
		apiutil.WriteError(w, http.StatusInternalServerError, "could not load subcategories")
		return
	}

	catSets, err := h.Sets.ByCategory(ctx, id)
	if err != nil {
		h.Log.Error("categories: complete sets failed", zap.Error(err), zap.String("id", id.Hex()))
		apiutil.WriteError(w, http.StatusInternalServerError, "could not load sets")
		return
	}

	for i := range catSets {
		exs, err := h.Exercises.BySet(ctx, catSets[i].ID)
		if err != nil {
			h.Log.Error("categories: complete exercises failed", zap.Error(err),
				zap.String("set_id", catSets[i].ID.Hex()))
			apiutil.WriteError(w, http.StatusInternalServerError, "could not load exercises")
			return
		}
		catSets[i].Exercises = exs
	}

	allExs, err := h.Exercises.List(ctx, exercisestore.Filter{CategoryID: &id})
	if err != nil {
		h.Log.Error("categories: complete exercise list failed", zap.Error(err), zap.String("id", id.Hex()))
		apiutil.WriteError(w, http.StatusInternalServerError, "could not load exercises")
		return
	}

	apiutil.WriteJSON(w, http.StatusOK, completeResponse{
		Category:      cat,
		Subcategories: subs,
		Sets:          catSets,
		Exercises:     allExs,
	})
}

// createRequest is the admin create/update payload for a category.
type createRequest struct {
	Name        models.Localized  `json:"name"`
	Description *models.Localized `json:"description,omitempty"`
	ImageURL    *string           `json:"image_url,omitempty"`
	ParentID    *string           `json:"parent_id,omitempty"`
	SortOrder   *int              `json:"sort_order,omitempty"`
	IsPublished *bool             `json:"is_published,omitempty"`
}

// ServeCreate handles POST /api/categories (admin).
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

	cat := models.Category{Name: req.Name}
	if req.Description != nil {
		cat.Description = *req.Description
	}
	if req.ImageURL != nil {
		cat.ImageURL = *req.ImageURL
	}
	if req.SortOrder != nil {
		cat.SortOrder = *req.SortOrder
	}
	if req.IsPublished != nil {
		cat.IsPublished = *req.IsPublished
	}
	if req.ParentID != nil && *req.ParentID != "" {
		pid, err := apiutil.ParseID(*req.ParentID)
		if err != nil {
			apiutil.WriteError(w, http.StatusBadRequest, "invalid parent_id")
			return
		}
		cat.ParentID = &pid
	}

	created, err := h.Categories.Create(ctx, cat)
	if errors.Is(err, categorystore.ErrCycle) {
		apiutil.WriteError(w, http.StatusUnprocessableEntity, "parent assignment would create a cycle")
		return
	}
	if err != nil {
		h.Log.Error("categories: create failed", zap.Error(err))
		apiutil.WriteError(w, http.StatusInternalServerError, "could not create category")
		return
	}

	h.Log.Info("category created", zap.String("id", created.ID.Hex()))
	apiutil.WriteJSON(w, http.StatusCreated, created)
}

// ServeUpdate handles PATCH /api/categories/{id} (admin). Absent fields are
// left untouched; "parent_id": null detaches the category from its parent.
func (h *Handler) ServeUpdate(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	id, err := apiutil.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		apiutil.WriteError(w, http.StatusBadRequest, "invalid category id")
		return
	}

	var body struct {
		Name        *models.Localized  `json:"name,omitempty"`
		Description *models.Localized  `json:"description,omitempty"`
		ImageURL    *string            `json:"image_url,omitempty"`
		ParentID    apiutil.NullableID `json:"parent_id"`
		SortOrder   *int               `json:"sort_order,omitempty"`
		IsPublished *bool              `json:"is_published,omitempty"`
	}
	if err := apiutil.DecodeBody(r, &body); err != nil {
		apiutil.WriteError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if body.Name != nil && body.Name.IsEmpty() {
		apiutil.WriteError(w, http.StatusUnprocessableEntity, "name cannot be cleared in every locale")
		return
	}

	upd := categorystore.Update{
		Name:        body.Name,
		Description: body.Description,
		ImageURL:    body.ImageURL,
		SortOrder:   body.SortOrder,
		IsPublished: body.IsPublished,
	}
	if body.ParentID.Set {
		if body.ParentID.Value == "" {
			var nilID *primitive.ObjectID
			upd.ParentID = &nilID
		} else {
			pid, err := apiutil.ParseID(body.ParentID.Value)
			if err != nil {
				apiutil.WriteError(w, http.StatusBadRequest, "invalid parent_id")
				return
			}
			p := &pid
			upd.ParentID = &p
		}
	}

	err = h.Categories.Update(ctx, id, upd)
	switch {
	case errors.Is(err, categorystore.ErrNotFound):
		apiutil.WriteError(w, http.StatusNotFound, "category not found")
	case errors.Is(err, categorystore.ErrCycle):
		apiutil.WriteError(w, http.StatusUnprocessableEntity, "parent assignment would create a cycle")
	case err != nil:
		h.Log.Error("categories: update failed", zap.Error(err), zap.String("id", id.Hex()))
		apiutil.WriteError(w, http.StatusInternalServerError, "could not update category")
	default:
		apiutil.WriteJSON(w, http.StatusOK, map[string]string{"status": "updated"})
	}
}

// ServeDelete handles DELETE /api/categories/{id} (admin, soft delete).
func (h *Handler) ServeDelete(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	id, err := apiutil.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		apiutil.WriteError(w, http.StatusBadRequest, "invalid category id")
		return
	}

	err = h.Categories.SoftDelete(ctx, id)
	if errors.Is(err, categorystore.ErrNotFound) {
		apiutil.WriteError(w, http.StatusNotFound, "category not found")
		return
	}
	if err != nil {
		h.Log.Error("categories: delete failed", zap.Error(err), zap.String("id", id.Hex()))
		apiutil.WriteError(w, http.StatusInternalServerError, "could not delete category")
		return
	}

	h.Log.Info("category disabled", zap.String("id", id.Hex()))
	apiutil.WriteJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
