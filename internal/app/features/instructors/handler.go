// internal/app/features/instructors/handler.go
package instructors

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/vitamove/vitamove-server/internal/app/store/courses"
	"github.com/vitamove/vitamove-server/internal/app/store/instructors"
	"github.com/vitamove/vitamove-server/internal/app/system/apiutil"
	"github.com/vitamove/vitamove-server/internal/app/system/htmlsanitize"
	"github.com/vitamove/vitamove-server/internal/app/system/inputval"
	"github.com/vitamove/vitamove-server/internal/app/system/timeouts"
	"github.com/vitamove/vitamove-server/internal/domain/models"
)

// Handler serves instructor profiles. The stored courses_count is refreshed
// from the courses collection on detail reads so it never drifts far.
type Handler struct {
	Instructors *instructorstore.Store
	Courses     *coursestore.Store
	Log         *zap.Logger
}

func NewHandler(ins *instructorstore.Store, courses *coursestore.Store, logger *zap.Logger) *Handler {
	return &Handler{Instructors: ins, Courses: courses, Log: logger}
}

// ServeList handles GET /api/instructors.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	out, err := h.Instructors.List(ctx)
	if err != nil {
		h.Log.Error("instructors: list failed", zap.Error(err))
		apiutil.WriteError(w, http.StatusInternalServerError, "could not list instructors")
		return
	}
	apiutil.WriteJSON(w, http.StatusOK, out)
}

// ServeGet handles GET /api/instructors/{id}.
func (h *Handler) ServeGet(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	id, err := apiutil.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		apiutil.WriteError(w, http.StatusBadRequest, "invalid instructor id")
		return
	}

	ins, err := h.Instructors.GetByID(ctx, id)
	if errors.Is(err, instructorstore.ErrNotFound) {
		apiutil.WriteError(w, http.StatusNotFound, "instructor not found")
		return
	}
	if err != nil {
		h.Log.Error("instructors: get failed", zap.Error(err), zap.String("id", id.Hex()))
		apiutil.WriteError(w, http.StatusInternalServerError, "could not load instructor")
		return
	}

	if n, err := h.Courses.CountByInstructor(ctx, ins.ID); err == nil {
		ins.CoursesCount = int(n)
	} else {
		h.Log.Warn("instructors: course count failed", zap.Error(err), zap.String("id", id.Hex()))
	}

	apiutil.WriteJSON(w, http.StatusOK, ins)
}

// createRequest is the admin create payload for an instructor.
type createRequest struct {
	Name            string           `json:"name"`
	Profession      string           `json:"profession,omitempty"`
	Bio             models.Localized `json:"bio,omitempty"`
	Content         models.Localized `json:"content,omitempty"`
	ProfileImageURL string           `json:"profile_image_url,omitempty"`
	CertificateURLs []string         `json:"certificate_urls,omitempty"`
	StudentsCount   int              `json:"students_count,omitempty"`
	Rating          float64          `json:"rating,omitempty"`
}

// ServeCreate handles POST /api/instructors (admin).
func (h *Handler) ServeCreate(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	var req createRequest
	if err := apiutil.DecodeBody(r, &req); err != nil {
		apiutil.WriteError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	name := inputval.Name(req.Name)
	if name == "" {
		apiutil.WriteError(w, http.StatusUnprocessableEntity, "name is required")
		return
	}

	created, err := h.Instructors.Create(ctx, models.Instructor{
		Name:            name,
		Profession:      req.Profession,
		Bio:             req.Bio,
		Content:         sanitizeContent(req.Content),
		ProfileImageURL: req.ProfileImageURL,
		CertificateURLs: req.CertificateURLs,
		StudentsCount:   req.StudentsCount,
		Rating:          req.Rating,
	})
	if err != nil {
		h.Log.Error("instructors: create failed", zap.Error(err))
		apiutil.WriteError(w, http.StatusInternalServerError, "could not create instructor")
		return
	}

	h.Log.Info("instructor created", zap.String("id", created.ID.Hex()))
	apiutil.WriteJSON(w, http.StatusCreated, created)
}

// ServeUpdate handles PATCH /api/instructors/{id} (admin).
func (h *Handler) ServeUpdate(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	id, err := apiutil.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		apiutil.WriteError(w, http.StatusBadRequest, "invalid instructor id")
		return
	}

	var body struct {
		Name            *string           `json:"name,omitempty"`
		Profession      *string           `json:"profession,omitempty"`
		Bio             *models.Localized `json:"bio,omitempty"`
		Content         *models.Localized `json:"content,omitempty"`
		ProfileImageURL *string           `json:"profile_image_url,omitempty"`
		CertificateURLs *[]string         `json:"certificate_urls,omitempty"`
		StudentsCount   *int              `json:"students_count,omitempty"`
		Rating          *float64          `json:"rating,omitempty"`
	}
	if err := apiutil.DecodeBody(r, &body); err != nil {
		apiutil.WriteError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if body.Name != nil {
		trimmed := inputval.Name(*body.Name)
		if trimmed == "" {
			apiutil.WriteError(w, http.StatusUnprocessableEntity, "name cannot be cleared")
			return
		}
		body.Name = &trimmed
	}

	upd := instructorstore.Update{
		Name:            body.Name,
		Profession:      body.Profession,
		Bio:             body.Bio,
		ProfileImageURL: body.ProfileImageURL,
		CertificateURLs: body.CertificateURLs,
		StudentsCount:   body.StudentsCount,
		Rating:          body.Rating,
	}
	if body.Content != nil {
		clean := sanitizeContent(*body.Content)
		upd.Content = &clean
	}

	err = h.Instructors.Update(ctx, id, upd)
	if errors.Is(err, instructorstore.ErrNotFound) {
		apiutil.WriteError(w, http.StatusNotFound, "instructor not found")
		return
	}
	if err != nil {
		h.Log.Error("instructors: update failed", zap.Error(err), zap.String("id", id.Hex()))
		apiutil.WriteError(w, http.StatusInternalServerError, "could not update instructor")
		return
	}
	apiutil.WriteJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

// ServeDelete handles DELETE /api/instructors/{id} (admin, soft delete).
func (h *Handler) ServeDelete(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	id, err := apiutil.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		apiutil.WriteError(w, http.StatusBadRequest, "invalid instructor id")
		return
	}

	err = h.Instructors.SoftDelete(ctx, id)
	if errors.Is(err, instructorstore.ErrNotFound) {
		apiutil.WriteError(w, http.StatusNotFound, "instructor not found")
		return
	}
	if err != nil {
		h.Log.Error("instructors: delete failed", zap.Error(err), zap.String("id", id.Hex()))
		apiutil.WriteError(w, http.StatusInternalServerError, "could not delete instructor")
		return
	}

	h.Log.Info("instructor disabled", zap.String("id", id.Hex()))
	apiutil.WriteJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// sanitizeContent runs every locale of rich HTML content through the UGC
// sanitizer.
func sanitizeContent(content models.Localized) models.Localized {
	return models.Localized{
		EN: htmlsanitize.Rich(content.EN),
		RU: htmlsanitize.Rich(content.RU),
		KA: htmlsanitize.Rich(content.KA),
	}
}
