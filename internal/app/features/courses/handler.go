// internal/app/features/courses/handler.go
package courses

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/vitamove/vitamove-server/internal/app/store/courses"
	"github.com/vitamove/vitamove-server/internal/app/store/sets"
	"github.com/vitamove/vitamove-server/internal/app/system/apiutil"
	"github.com/vitamove/vitamove-server/internal/app/system/timeouts"
	"github.com/vitamove/vitamove-server/internal/domain/models"
)

// Handler serves instructor-led courses built from ordered set lists.
type Handler struct {
	Courses *coursestore.Store
	Sets    *setstore.Store
	Log     *zap.Logger
}

func NewHandler(courses *coursestore.Store, sets *setstore.Store, logger *zap.Logger) *Handler {
	return &Handler{Courses: courses, Sets: sets, Log: logger}
}

// ServeList handles GET /api/courses.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	out, err := h.Courses.List(ctx)
	if err != nil {
		h.Log.Error("courses: list failed", zap.Error(err))
		apiutil.WriteError(w, http.StatusInternalServerError, "could not list courses")
		return
	}
	apiutil.WriteJSON(w, http.StatusOK, out)
}

// courseDetail is the detail payload: the course plus its resolved sets.
type courseDetail struct {
	models.Course
	Sets []models.Set `json:"sets"`
}

// ServeGet handles GET /api/courses/{id} with the course's sets resolved.
func (h *Handler) ServeGet(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	id, err := apiutil.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		apiutil.WriteError(w, http.StatusBadRequest, "invalid course id")
		return
	}

	c, err := h.Courses.GetByID(ctx, id)
	if errors.Is(err, coursestore.ErrNotFound) {
		apiutil.WriteError(w, http.StatusNotFound, "course not found")
		return
	}
	if err != nil {
		h.Log.Error("courses: get failed", zap.Error(err), zap.String("id", id.Hex()))
		apiutil.WriteError(w, http.StatusInternalServerError, "could not load course")
		return
	}

	courseSets, err := h.Sets.GetByIDs(ctx, c.SetIDs)
	if err != nil {
		h.Log.Error("courses: sets load failed", zap.Error(err), zap.String("id", id.Hex()))
		apiutil.WriteError(w, http.StatusInternalServerError, "could not load course sets")
		return
	}

	// restore the course's set ordering, which $in does not preserve
	byID := make(map[primitive.ObjectID]models.Set, len(courseSets))
	for _, s := range courseSets {
		byID[s.ID] = s
	}
	ordered := make([]models.Set, 0, len(c.SetIDs))
	for _, sid := range c.SetIDs {
		if s, ok := byID[sid]; ok {
			ordered = append(ordered, s)
		}
	}

	apiutil.WriteJSON(w, http.StatusOK, courseDetail{Course: c, Sets: ordered})
}

// createRequest is the admin create payload for a course.
type createRequest struct {
	Name         models.Localized `json:"name"`
	Description  models.Localized `json:"description,omitempty"`
	InstructorID string           `json:"instructor_id,omitempty"`
	SetIDs       []string         `json:"set_ids,omitempty"`
	Price        models.Price     `json:"price"`
	ThumbnailURL string           `json:"thumbnail_url,omitempty"`
	IsPublished  bool             `json:"is_published,omitempty"`
}

// ServeCreate handles POST /api/courses (admin).
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

	c := models.Course{
		Name:         req.Name,
		Description:  req.Description,
		Price:        req.Price,
		ThumbnailURL: req.ThumbnailURL,
		IsPublished:  req.IsPublished,
	}
	if req.InstructorID != "" {
		iid, err := apiutil.ParseID(req.InstructorID)
		if err != nil {
			apiutil.WriteError(w, http.StatusBadRequest, "invalid instructor_id")
			return
		}
		c.InstructorID = &iid
	}
	for _, raw := range req.SetIDs {
		sid, err := apiutil.ParseID(raw)
		if err != nil {
			apiutil.WriteError(w, http.StatusBadRequest, "invalid set id: "+raw)
			return
		}
		c.SetIDs = append(c.SetIDs, sid)
	}

	created, err := h.Courses.Create(ctx, c)
	if err != nil {
		h.Log.Error("courses: create failed", zap.Error(err))
		apiutil.WriteError(w, http.StatusInternalServerError, "could not create course")
		return
	}

	h.Log.Info("course created", zap.String("id", created.ID.Hex()))
	apiutil.WriteJSON(w, http.StatusCreated, created)
}

// ServeUpdate handles PATCH /api/courses/{id} (admin).
func (h *Handler) ServeUpdate(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	id, err := apiutil.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		apiutil.WriteError(w, http.StatusBadRequest, "invalid course id")
		return
	}

	var body struct {
		Name         *models.Localized  `json:"name,omitempty"`
		Description  *models.Localized  `json:"description,omitempty"`
		InstructorID apiutil.NullableID `json:"instructor_id"`
		SetIDs       *[]string          `json:"set_ids,omitempty"`
		Price        *models.Price      `json:"price,omitempty"`
		ThumbnailURL *string            `json:"thumbnail_url,omitempty"`
		IsPublished  *bool              `json:"is_published,omitempty"`
	}
	if err := apiutil.DecodeBody(r, &body); err != nil {
		apiutil.WriteError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if body.Name != nil && body.Name.IsEmpty() {
		apiutil.WriteError(w, http.StatusUnprocessableEntity, "name cannot be cleared in every locale")
		return
	}

	upd := coursestore.Update{
		Name:         body.Name,
		Description:  body.Description,
		Price:        body.Price,
		ThumbnailURL: body.ThumbnailURL,
		IsPublished:  body.IsPublished,
	}
	if body.InstructorID.Set {
		if body.InstructorID.Value == "" {
			var nilID *primitive.ObjectID
			upd.InstructorID = &nilID
		} else {
			iid, err := apiutil.ParseID(body.InstructorID.Value)
			if err != nil {
				apiutil.WriteError(w, http.StatusBadRequest, "invalid instructor_id")
				return
			}
			p := &iid
			upd.InstructorID = &p
		}
	}
	if body.SetIDs != nil {
		ids := make([]primitive.ObjectID, 0, len(*body.SetIDs))
		for _, raw := range *body.SetIDs {
			sid, err := apiutil.ParseID(raw)
			if err != nil {
				apiutil.WriteError(w, http.StatusBadRequest, "invalid set id: "+raw)
				return
			}
			ids = append(ids, sid)
		}
		upd.SetIDs = &ids
	}

	err = h.Courses.Update(ctx, id, upd)
	if errors.Is(err, coursestore.ErrNotFound) {
		apiutil.WriteError(w, http.StatusNotFound, "course not found")
		return
	}
	if err != nil {
		h.Log.Error("courses: update failed", zap.Error(err), zap.String("id", id.Hex()))
		apiutil.WriteError(w, http.StatusInternalServerError, "could not update course")
		return
	}
	apiutil.WriteJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

// ServeDelete handles DELETE /api/courses/{id} (admin, soft delete).
func (h *Handler) ServeDelete(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	id, err := apiutil.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		apiutil.WriteError(w, http.StatusBadRequest, "invalid course id")
		return
	}

	err = h.Courses.SoftDelete(ctx, id)
	if errors.Is(err, coursestore.ErrNotFound) {
		apiutil.WriteError(w, http.StatusNotFound, "course not found")
		return
	}
	if err != nil {
		h.Log.Error("courses: delete failed", zap.Error(err), zap.String("id", id.Hex()))
		apiutil.WriteError(w, http.StatusInternalServerError, "could not delete course")
		return
	}

	h.Log.Info("course disabled", zap.String("id", id.Hex()))
	apiutil.WriteJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
