// internal/app/features/exercises/handler.go
package exercises

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/vitamove/vitamove-server/internal/app/store/exercises"
	"github.com/vitamove/vitamove-server/internal/app/system/apiutil"
	"github.com/vitamove/vitamove-server/internal/app/system/inputval"
	"github.com/vitamove/vitamove-server/internal/app/system/timeouts"
	"github.com/vitamove/vitamove-server/internal/domain/models"
)

// Handler serves individual exercises.
type Handler struct {
	Exercises *exercisestore.Store
	Log       *zap.Logger
}

func NewHandler(exs *exercisestore.Store, logger *zap.Logger) *Handler {
	return &Handler{Exercises: exs, Log: logger}
}

// ServeList handles GET /api/exercises?categoryId=&subCategoryId=&setId=&popular=.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	var f exercisestore.Filter
	q := r.URL.Query()
	if v := q.Get("categoryId"); v != "" {
		id, err := apiutil.ParseID(v)
		if err != nil {
			apiutil.WriteError(w, http.StatusBadRequest, "invalid categoryId")
			return
		}
		f.CategoryID = &id
	}
	if v := q.Get("subCategoryId"); v != "" {
		id, err := apiutil.ParseID(v)
		if err != nil {
			apiutil.WriteError(w, http.StatusBadRequest, "invalid subCategoryId")
			return
		}
		f.SubcategoryID = &id
	}
	if v := q.Get("setId"); v != "" {
		id, err := apiutil.ParseID(v)
		if err != nil {
			apiutil.WriteError(w, http.StatusBadRequest, "invalid setId")
			return
		}
		f.SetID = &id
	}
	if v := q.Get("popular"); v != "" {
		popular := v == "true" || v == "1"
		f.Popular = &popular
	}

	out, err := h.Exercises.List(ctx, f)
	if err != nil {
		h.Log.Error("exercises: list failed", zap.Error(err))
		apiutil.WriteError(w, http.StatusInternalServerError, "could not list exercises")
		return
	}
	apiutil.WriteJSON(w, http.StatusOK, out)
}

// ServeGet handles GET /api/exercises/{id}.
func (h *Handler) ServeGet(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	id, err := apiutil.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		apiutil.WriteError(w, http.StatusBadRequest, "invalid exercise id")
		return
	}

	ex, err := h.Exercises.GetByID(ctx, id)
	if errors.Is(err, exercisestore.ErrNotFound) {
		apiutil.WriteError(w, http.StatusNotFound, "exercise not found")
		return
	}
	if err != nil {
		h.Log.Error("exercises: get failed", zap.Error(err), zap.String("id", id.Hex()))
		apiutil.WriteError(w, http.StatusInternalServerError, "could not load exercise")
		return
	}
	apiutil.WriteJSON(w, http.StatusOK, ex)
}

// createRequest is the admin create payload for an exercise.
type createRequest struct {
	Name          models.Localized `json:"name"`
	Description   models.Localized `json:"description,omitempty"`
	VideoURL      string           `json:"video_url,omitempty"`
	ThumbnailURL  string           `json:"thumbnail_url,omitempty"`
	Duration      string           `json:"duration,omitempty"`
	Difficulty    string           `json:"difficulty"`
	Repetitions   string           `json:"repetitions,omitempty"`
	Sets          string           `json:"sets,omitempty"`
	RestTime      string           `json:"rest_time,omitempty"`
	IsPopular     bool             `json:"is_popular,omitempty"`
	CategoryID    string           `json:"category_id"`
	SubcategoryID string           `json:"subcategory_id,omitempty"`
	SetID         string           `json:"set_id,omitempty"`
}

// ServeCreate handles POST /api/exercises (admin).
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
	if !models.IsValidDifficulty(req.Difficulty) {
		apiutil.WriteError(w, http.StatusUnprocessableEntity, "difficulty must be easy, medium or hard")
		return
	}
	if req.Duration != "" && !inputval.Duration(req.Duration) {
		apiutil.WriteError(w, http.StatusUnprocessableEntity, "duration must look like MM:SS")
		return
	}
	catID, err := apiutil.ParseID(req.CategoryID)
	if err != nil {
		apiutil.WriteError(w, http.StatusBadRequest, "invalid category_id")
		return
	}

	ex := models.Exercise{
		Name:         req.Name,
		Description:  req.Description,
		VideoURL:     req.VideoURL,
		ThumbnailURL: req.ThumbnailURL,
		Duration:     req.Duration,
		Difficulty:   req.Difficulty,
		Repetitions:  req.Repetitions,
		Sets:         req.Sets,
		RestTime:     req.RestTime,
		IsPopular:    req.IsPopular,
		CategoryID:   catID,
	}
	if req.SubcategoryID != "" {
		sid, err := apiutil.ParseID(req.SubcategoryID)
		if err != nil {
			apiutil.WriteError(w, http.StatusBadRequest, "invalid subcategory_id")
			return
		}
		ex.SubcategoryID = &sid
	}
	if req.SetID != "" {
		sid, err := apiutil.ParseID(req.SetID)
		if err != nil {
			apiutil.WriteError(w, http.StatusBadRequest, "invalid set_id")
			return
		}
		ex.SetID = &sid
	}

	created, err := h.Exercises.Create(ctx, ex)
	if err != nil {
		h.Log.Error("exercises: create failed", zap.Error(err))
		apiutil.WriteError(w, http.StatusInternalServerError, "could not create exercise")
		return
	}

	h.Log.Info("exercise created", zap.String("id", created.ID.Hex()))
	apiutil.WriteJSON(w, http.StatusCreated, created)
}

// ServeUpdate handles PATCH /api/exercises/{id} (admin).
func (h *Handler) ServeUpdate(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	id, err := apiutil.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		apiutil.WriteError(w, http.StatusBadRequest, "invalid exercise id")
		return
	}

	var body struct {
		Name          *models.Localized  `json:"name,omitempty"`
		Description   *models.Localized  `json:"description,omitempty"`
		VideoURL      *string            `json:"video_url,omitempty"`
		ThumbnailURL  *string            `json:"thumbnail_url,omitempty"`
		Duration      *string            `json:"duration,omitempty"`
		Difficulty    *string            `json:"difficulty,omitempty"`
		Repetitions   *string            `json:"repetitions,omitempty"`
		Sets          *string            `json:"sets,omitempty"`
		RestTime      *string            `json:"rest_time,omitempty"`
		IsPopular     *bool              `json:"is_popular,omitempty"`
		CategoryID    *string            `json:"category_id,omitempty"`
		SubcategoryID apiutil.NullableID `json:"subcategory_id"`
		SetID         apiutil.NullableID `json:"set_id"`
	}
	if err := apiutil.DecodeBody(r, &body); err != nil {
		apiutil.WriteError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if body.Name != nil && body.Name.IsEmpty() {
		apiutil.WriteError(w, http.StatusUnprocessableEntity, "name cannot be cleared in every locale")
		return
	}
	if body.Difficulty != nil && !models.IsValidDifficulty(*body.Difficulty) {
		apiutil.WriteError(w, http.StatusUnprocessableEntity, "difficulty must be easy, medium or hard")
		return
	}
	if body.Duration != nil && *body.Duration != "" && !inputval.Duration(*body.Duration) {
		apiutil.WriteError(w, http.StatusUnprocessableEntity, "duration must look like MM:SS")
		return
	}

	upd := exercisestore.Update{
		Name:         body.Name,
		Description:  body.Description,
		VideoURL:     body.VideoURL,
		ThumbnailURL: body.ThumbnailURL,
		Duration:     body.Duration,
		Difficulty:   body.Difficulty,
		Repetitions:  body.Repetitions,
		Sets:         body.Sets,
		RestTime:     body.RestTime,
		IsPopular:    body.IsPopular,
	}
	if body.CategoryID != nil {
		cid, err := apiutil.ParseID(*body.CategoryID)
		if err != nil {
			apiutil.WriteError(w, http.StatusBadRequest, "invalid category_id")
			return
		}
		upd.CategoryID = &cid
	}
	if body.SubcategoryID.Set {
		ptr, err := nullableRef(body.SubcategoryID.Value)
		if err != nil {
			apiutil.WriteError(w, http.StatusBadRequest, "invalid subcategory_id")
			return
		}
		upd.SubcategoryID = ptr
	}
	if body.SetID.Set {
		ptr, err := nullableRef(body.SetID.Value)
		if err != nil {
			apiutil.WriteError(w, http.StatusBadRequest, "invalid set_id")
			return
		}
		upd.SetID = ptr
	}

	err = h.Exercises.Update(ctx, id, upd)
	if errors.Is(err, exercisestore.ErrNotFound) {
		apiutil.WriteError(w, http.StatusNotFound, "exercise not found")
		return
	}
	if err != nil {
		h.Log.Error("exercises: update failed", zap.Error(err), zap.String("id", id.Hex()))
		apiutil.WriteError(w, http.StatusInternalServerError, "could not update exercise")
		return
	}
	apiutil.WriteJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

// ServeDelete handles DELETE /api/exercises/{id} (admin, soft delete).
func (h *Handler) ServeDelete(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	id, err := apiutil.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		apiutil.WriteError(w, http.StatusBadRequest, "invalid exercise id")
		return
	}

	err = h.Exercises.SoftDelete(ctx, id)
	if errors.Is(err, exercisestore.ErrNotFound) {
		apiutil.WriteError(w, http.StatusNotFound, "exercise not found")
		return
	}
	if err != nil {
		h.Log.Error("exercises: delete failed", zap.Error(err), zap.String("id", id.Hex()))
		apiutil.WriteError(w, http.StatusInternalServerError, "could not delete exercise")
		return
	}

	h.Log.Info("exercise disabled", zap.String("id", id.Hex()))
	apiutil.WriteJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// nullableRef maps a PATCH reference value to the store's double-pointer
// convention: empty clears the field, otherwise the parsed id is set.
func nullableRef(value string) (**primitive.ObjectID, error) {
	if value == "" {
		var nilID *primitive.ObjectID
		return &nilID, nil
	}
	id, err := apiutil.ParseID(value)
	if err != nil {
		return nil, err
	}
	p := &id
	return &p, nil
}
