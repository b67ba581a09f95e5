// internal/app/features/tests/handler.go
package tests

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/vitamove/vitamove-server/internal/app/store/tests"
	"github.com/vitamove/vitamove-server/internal/app/system/apiutil"
	"github.com/vitamove/vitamove-server/internal/app/system/auth"
	"github.com/vitamove/vitamove-server/internal/app/system/inputval"
	"github.com/vitamove/vitamove-server/internal/app/system/timeouts"
	"github.com/vitamove/vitamove-server/internal/domain/models"
)

// Handler serves survey/test forms and their submissions.
type Handler struct {
	Tests *teststore.Store
	Log   *zap.Logger
}

func NewHandler(store *teststore.Store, logger *zap.Logger) *Handler {
	return &Handler{Tests: store, Log: logger}
}

// ServeList handles GET /api/tests. Public callers see published tests
// only; an admin session lifts the filter.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	_, isAdmin := auth.CurrentAdmin(r)
	out, err := h.Tests.List(ctx, !isAdmin)
	if err != nil {
		h.Log.Error("tests: list failed", zap.Error(err))
		apiutil.WriteError(w, http.StatusInternalServerError, "could not list tests")
		return
	}
	apiutil.WriteJSON(w, http.StatusOK, out)
}

// ServeGet handles GET /api/tests/{id}.
func (h *Handler) ServeGet(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	id, err := apiutil.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		apiutil.WriteError(w, http.StatusBadRequest, "invalid test id")
		return
	}

	t, err := h.Tests.GetByID(ctx, id)
	if errors.Is(err, teststore.ErrNotFound) {
		apiutil.WriteError(w, http.StatusNotFound, "test not found")
		return
	}
	if err != nil {
		h.Log.Error("tests: get failed", zap.Error(err), zap.String("id", id.Hex()))
		apiutil.WriteError(w, http.StatusInternalServerError, "could not load test")
		return
	}
	apiutil.WriteJSON(w, http.StatusOK, t)
}

// submitRequest is the public submission payload.
type submitRequest struct {
	TestID  string          `json:"test_id"`
	Email   string          `json:"email,omitempty"`
	Locale  string          `json:"locale,omitempty"`
	Answers []models.Answer `json:"answers"`
}

// ServeSubmit handles POST /api/tests/submit (public). Answers are checked
// against the test's questions before anything is stored.
func (h *Handler) ServeSubmit(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	var req submitRequest
	if err := apiutil.DecodeBody(r, &req); err != nil {
		apiutil.WriteError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	testID, err := apiutil.ParseID(req.TestID)
	if err != nil {
		apiutil.WriteError(w, http.StatusBadRequest, "invalid test_id")
		return
	}
	email := inputval.Email(req.Email)
	if email != "" && !inputval.EmailValid(email) {
		apiutil.WriteError(w, http.StatusUnprocessableEntity, "email is not valid")
		return
	}
	locale := req.Locale
	if locale != "" && !models.IsValidLocale(locale) {
		locale = models.LocaleEN
	}

	resp, err := h.Tests.Submit(ctx, models.TestResponse{
		TestID:  testID,
		Email:   email,
		Locale:  locale,
		Answers: req.Answers,
	})
	switch {
	case errors.Is(err, teststore.ErrNotFound):
		apiutil.WriteError(w, http.StatusNotFound, "test not found")
	case errors.Is(err, teststore.ErrInvalidAnswers):
		apiutil.WriteError(w, http.StatusUnprocessableEntity, err.Error())
	case err != nil:
		h.Log.Error("tests: submit failed", zap.Error(err), zap.String("test_id", testID.Hex()))
		apiutil.WriteError(w, http.StatusInternalServerError, "could not record submission")
	default:
		apiutil.WriteJSON(w, http.StatusCreated, resp)
	}
}

// ServeResponses handles GET /api/tests/{id}/responses (admin).
func (h *Handler) ServeResponses(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	id, err := apiutil.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		apiutil.WriteError(w, http.StatusBadRequest, "invalid test id")
		return
	}

	out, err := h.Tests.Responses(ctx, id)
	if err != nil {
		h.Log.Error("tests: responses failed", zap.Error(err), zap.String("id", id.Hex()))
		apiutil.WriteError(w, http.StatusInternalServerError, "could not list responses")
		return
	}
	apiutil.WriteJSON(w, http.StatusOK, out)
}

// createRequest is the admin create payload for a test.
type createRequest struct {
	Title       models.Localized  `json:"title"`
	Description models.Localized  `json:"description,omitempty"`
	Questions   []models.Question `json:"questions"`
	IsPublished bool              `json:"is_published,omitempty"`
}

// ServeCreate handles POST /api/tests (admin).
func (h *Handler) ServeCreate(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	var req createRequest
	if err := apiutil.DecodeBody(r, &req); err != nil {
		apiutil.WriteError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.Title.IsEmpty() {
		apiutil.WriteError(w, http.StatusUnprocessableEntity, "title is required in at least one locale")
		return
	}
	if msg := validateQuestions(req.Questions); msg != "" {
		apiutil.WriteError(w, http.StatusUnprocessableEntity, msg)
		return
	}

	created, err := h.Tests.Create(ctx, models.Test{
		Title:       req.Title,
		Description: req.Description,
		Questions:   req.Questions,
		IsPublished: req.IsPublished,
	})
	if err != nil {
		h.Log.Error("tests: create failed", zap.Error(err))
		apiutil.WriteError(w, http.StatusInternalServerError, "could not create test")
		return
	}

	h.Log.Info("test created", zap.String("id", created.ID.Hex()))
	apiutil.WriteJSON(w, http.StatusCreated, created)
}

// ServeUpdate handles PATCH /api/tests/{id} (admin).
func (h *Handler) ServeUpdate(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	id, err := apiutil.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		apiutil.WriteError(w, http.StatusBadRequest, "invalid test id")
		return
	}

	var body struct {
		Title       *models.Localized  `json:"title,omitempty"`
		Description *models.Localized  `json:"description,omitempty"`
		Questions   *[]models.Question `json:"questions,omitempty"`
		IsPublished *bool              `json:"is_published,omitempty"`
	}
	if err := apiutil.DecodeBody(r, &body); err != nil {
		apiutil.WriteError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if body.Title != nil && body.Title.IsEmpty() {
		apiutil.WriteError(w, http.StatusUnprocessableEntity, "title cannot be cleared in every locale")
		return
	}
	if body.Questions != nil {
		if msg := validateQuestions(*body.Questions); msg != "" {
			apiutil.WriteError(w, http.StatusUnprocessableEntity, msg)
			return
		}
	}

	err = h.Tests.Update(ctx, id, teststore.Update{
		Title:       body.Title,
		Description: body.Description,
		Questions:   body.Questions,
		IsPublished: body.IsPublished,
	})
	if errors.Is(err, teststore.ErrNotFound) {
		apiutil.WriteError(w, http.StatusNotFound, "test not found")
		return
	}
	if err != nil {
		h.Log.Error("tests: update failed", zap.Error(err), zap.String("id", id.Hex()))
		apiutil.WriteError(w, http.StatusInternalServerError, "could not update test")
		return
	}
	apiutil.WriteJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

// ServeDelete handles DELETE /api/tests/{id} (admin, soft delete).
func (h *Handler) ServeDelete(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	id, err := apiutil.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		apiutil.WriteError(w, http.StatusBadRequest, "invalid test id")
		return
	}

	err = h.Tests.SoftDelete(ctx, id)
	if errors.Is(err, teststore.ErrNotFound) {
		apiutil.WriteError(w, http.StatusNotFound, "test not found")
		return
	}
	if err != nil {
		h.Log.Error("tests: delete failed", zap.Error(err), zap.String("id", id.Hex()))
		apiutil.WriteError(w, http.StatusInternalServerError, "could not delete test")
		return
	}

	h.Log.Info("test disabled", zap.String("id", id.Hex()))
	apiutil.WriteJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// validateQuestions checks structural soundness of a question list; the
// returned message is empty when everything is fine.
func validateQuestions(questions []models.Question) string {
	seen := map[string]bool{}
	for _, q := range questions {
		if q.ID == "" {
			return "every question needs an id"
		}
		if seen[q.ID] {
			return "duplicate question id: " + q.ID
		}
		seen[q.ID] = true
		if !models.IsValidQuestionType(q.Type) {
			return "unknown question type: " + q.Type
		}
		if q.Text.IsEmpty() {
			return "question " + q.ID + " needs text in at least one locale"
		}
		switch q.Type {
		case models.QuestionSingle, models.QuestionMultiple:
			if len(q.Options) == 0 {
				return "question " + q.ID + " needs options"
			}
		case models.QuestionScale:
			if q.Scale == nil || q.Scale.Min >= q.Scale.Max {
				return "question " + q.ID + " needs a scale with min < max"
			}
		}
	}
	return ""
}
