// internal/app/features/articles/handler.go
package articles

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/vitamove/vitamove-server/internal/app/store/articles"
	"github.com/vitamove/vitamove-server/internal/app/system/apiutil"
	"github.com/vitamove/vitamove-server/internal/app/system/auth"
	"github.com/vitamove/vitamove-server/internal/app/system/htmlsanitize"
	"github.com/vitamove/vitamove-server/internal/app/system/readtime"
	"github.com/vitamove/vitamove-server/internal/app/system/slug"
	"github.com/vitamove/vitamove-server/internal/app/system/timeouts"
	"github.com/vitamove/vitamove-server/internal/domain/models"
)

// Handler serves long-form articles. Creation derives the slug from the
// English title (falling back through the other locales), sanitizes the
// HTML content and fills in a computed read time when the caller does not
// supply one.
type Handler struct {
	Articles *articlestore.Store
	Log      *zap.Logger
}

func NewHandler(arts *articlestore.Store, logger *zap.Logger) *Handler {
	return &Handler{Articles: arts, Log: logger}
}

// ServeList handles GET /api/articles?categoryId=&tag=&featured=&limit=&offset=.
// Public callers see published articles only; an admin session lifts the
// filter.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	var f articlestore.Filter
	q := r.URL.Query()
	if v := q.Get("categoryId"); v != "" {
		id, err := apiutil.ParseID(v)
		if err != nil {
			apiutil.WriteError(w, http.StatusBadRequest, "invalid categoryId")
			return
		}
		f.CategoryID = &id
	}
	if v := q.Get("tag"); v != "" {
		f.Tag = v
	}
	if v := q.Get("featured"); v != "" {
		featured := v == "true" || v == "1"
		f.Featured = &featured
	}
	if v := q.Get("limit"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil && n > 0 {
			f.Limit = n
		}
	}
	if v := q.Get("offset"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil && n > 0 {
			f.Offset = n
		}
	}
	if _, isAdmin := auth.CurrentAdmin(r); !isAdmin {
		published := true
		f.Published = &published
	}

	out, err := h.Articles.List(ctx, f)
	if err != nil {
		h.Log.Error("articles: list failed", zap.Error(err))
		apiutil.WriteError(w, http.StatusInternalServerError, "could not list articles")
		return
	}
	apiutil.WriteJSON(w, http.StatusOK, out)
}

// ServeGet handles GET /api/articles/{id}, where the path value may be an
// ObjectID or a slug; a 24-char hex value is treated as an id. Each read
// bumps the view counter best-effort.
func (h *Handler) ServeGet(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	key := chi.URLParam(r, "id")

	var (
		a   models.Article
		err error
	)
	if id, idErr := primitive.ObjectIDFromHex(key); idErr == nil {
		a, err = h.Articles.GetByID(ctx, id)
	} else {
		a, err = h.Articles.GetBySlug(ctx, key)
	}
	if errors.Is(err, articlestore.ErrNotFound) {
		apiutil.WriteError(w, http.StatusNotFound, "article not found")
		return
	}
	if err != nil {
		h.Log.Error("articles: get failed", zap.Error(err), zap.String("key", key))
		apiutil.WriteError(w, http.StatusInternalServerError, "could not load article")
		return
	}

	if err := h.Articles.IncrementViews(ctx, a.ID); err != nil {
		h.Log.Warn("articles: view increment failed", zap.Error(err), zap.String("id", a.ID.Hex()))
	} else {
		a.Views++
	}

	apiutil.WriteJSON(w, http.StatusOK, a)
}

// ServeLike handles POST /api/articles/{id}/like and returns the new count.
func (h *Handler) ServeLike(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	id, err := apiutil.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		apiutil.WriteError(w, http.StatusBadRequest, "invalid article id")
		return
	}

	likes, err := h.Articles.Like(ctx, id)
	if errors.Is(err, articlestore.ErrNotFound) {
		apiutil.WriteError(w, http.StatusNotFound, "article not found")
		return
	}
	if err != nil {
		h.Log.Error("articles: like failed", zap.Error(err), zap.String("id", id.Hex()))
		apiutil.WriteError(w, http.StatusInternalServerError, "could not record like")
		return
	}
	apiutil.WriteJSON(w, http.StatusOK, map[string]int64{"likes": likes})
}

// createRequest is the admin create payload for an article.
type createRequest struct {
	Title         models.Localized `json:"title"`
	Excerpt       models.Localized `json:"excerpt,omitempty"`
	Content       models.Localized `json:"content,omitempty"`
	Author        models.Author    `json:"author,omitempty"`
	CategoryIDs   []string         `json:"category_ids,omitempty"`
	Tags          []string         `json:"tags,omitempty"`
	BlogID        string           `json:"blog_id,omitempty"`
	CoverImageURL string           `json:"cover_image_url,omitempty"`
	IsPublished   bool             `json:"is_published,omitempty"`
	IsFeatured    bool             `json:"is_featured,omitempty"`
	ReadTime      string           `json:"read_time,omitempty"`
}

// ServeCreate handles POST /api/articles (admin).
func (h *Handler) ServeCreate(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
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

	a := models.Article{
		Title:         req.Title,
		Excerpt:       req.Excerpt,
		Content:       sanitizeContent(req.Content),
		Author:        req.Author,
		Tags:          req.Tags,
		CoverImageURL: req.CoverImageURL,
		IsPublished:   req.IsPublished,
		IsFeatured:    req.IsFeatured,
		ReadTime:      req.ReadTime,
	}
	for _, raw := range req.CategoryIDs {
		cid, err := apiutil.ParseID(raw)
		if err != nil {
			apiutil.WriteError(w, http.StatusBadRequest, "invalid category id: "+raw)
			return
		}
		a.CategoryIDs = append(a.CategoryIDs, cid)
	}
	if req.BlogID != "" {
		bid, err := apiutil.ParseID(req.BlogID)
		if err != nil {
			apiutil.WriteError(w, http.StatusBadRequest, "invalid blog_id")
			return
		}
		a.BlogID = &bid
	}
	if a.ReadTime == "" {
		a.ReadTime = readtime.ForContent(a.Content)
	}

	var err error
	a.Slug, err = slug.MakeUnique(ctx, a.Title.Resolve(models.LocaleEN), h.Articles.SlugExists)
	if err != nil {
		h.Log.Error("articles: slug generation failed", zap.Error(err))
		apiutil.WriteError(w, http.StatusInternalServerError, "could not create article")
		return
	}

	created, err := h.Articles.Create(ctx, a)
	if errors.Is(err, articlestore.ErrDuplicateSlug) {
		// lost a race with a simultaneous create
		apiutil.WriteError(w, http.StatusConflict, "an article with this slug already exists")
		return
	}
	if err != nil {
		h.Log.Error("articles: create failed", zap.Error(err))
		apiutil.WriteError(w, http.StatusInternalServerError, "could not create article")
		return
	}

	h.Log.Info("article created",
		zap.String("id", created.ID.Hex()),
		zap.String("slug", created.Slug))
	apiutil.WriteJSON(w, http.StatusCreated, created)
}

// ServeUpdate handles PATCH /api/articles/{id} (admin). The slug never
// changes after creation.
func (h *Handler) ServeUpdate(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	id, err := apiutil.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		apiutil.WriteError(w, http.StatusBadRequest, "invalid article id")
		return
	}

	var body struct {
		Title         *models.Localized     `json:"title,omitempty"`
		Excerpt       *models.Localized     `json:"excerpt,omitempty"`
		Content       *models.Localized     `json:"content,omitempty"`
		Author        *models.Author        `json:"author,omitempty"`
		CategoryIDs   *[]string             `json:"category_ids,omitempty"`
		Tags          *[]string             `json:"tags,omitempty"`
		BlogID        apiutil.NullableID    `json:"blog_id"`
		CoverImageURL *string               `json:"cover_image_url,omitempty"`
		IsPublished   *bool                 `json:"is_published,omitempty"`
		IsFeatured    *bool                 `json:"is_featured,omitempty"`
		ReadTime      *string               `json:"read_time,omitempty"`
	}
	if err := apiutil.DecodeBody(r, &body); err != nil {
		apiutil.WriteError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if body.Title != nil && body.Title.IsEmpty() {
		apiutil.WriteError(w, http.StatusUnprocessableEntity, "title cannot be cleared in every locale")
		return
	}

	upd := articlestore.Update{
		Title:         body.Title,
		Excerpt:       body.Excerpt,
		Author:        body.Author,
		Tags:          body.Tags,
		CoverImageURL: body.CoverImageURL,
		IsPublished:   body.IsPublished,
		IsFeatured:    body.IsFeatured,
		ReadTime:      body.ReadTime,
	}
	if body.Content != nil {
		clean := sanitizeContent(*body.Content)
		upd.Content = &clean
		if body.ReadTime == nil {
			rt := readtime.ForContent(clean)
			upd.ReadTime = &rt
		}
	}
	if body.CategoryIDs != nil {
		ids := make([]primitive.ObjectID, 0, len(*body.CategoryIDs))
		for _, raw := range *body.CategoryIDs {
			cid, err := apiutil.ParseID(raw)
			if err != nil {
				apiutil.WriteError(w, http.StatusBadRequest, "invalid category id: "+raw)
				return
			}
			ids = append(ids, cid)
		}
		upd.CategoryIDs = &ids
	}
	if body.BlogID.Set {
		if body.BlogID.Value == "" {
			var nilID *primitive.ObjectID
			upd.BlogID = &nilID
		} else {
			bid, err := apiutil.ParseID(body.BlogID.Value)
			if err != nil {
				apiutil.WriteError(w, http.StatusBadRequest, "invalid blog_id")
				return
			}
			p := &bid
			upd.BlogID = &p
		}
	}

	err = h.Articles.Update(ctx, id, upd)
	if errors.Is(err, articlestore.ErrNotFound) {
		apiutil.WriteError(w, http.StatusNotFound, "article not found")
		return
	}
	if err != nil {
		h.Log.Error("articles: update failed", zap.Error(err), zap.String("id", id.Hex()))
		apiutil.WriteError(w, http.StatusInternalServerError, "could not update article")
		return
	}
	apiutil.WriteJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

// ServeDelete handles DELETE /api/articles/{id} (admin, soft delete). The
// slug stays reserved after deletion.
func (h *Handler) ServeDelete(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	id, err := apiutil.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		apiutil.WriteError(w, http.StatusBadRequest, "invalid article id")
		return
	}

	err = h.Articles.SoftDelete(ctx, id)
	if errors.Is(err, articlestore.ErrNotFound) {
		apiutil.WriteError(w, http.StatusNotFound, "article not found")
		return
	}
	if err != nil {
		h.Log.Error("articles: delete failed", zap.Error(err), zap.String("id", id.Hex()))
		apiutil.WriteError(w, http.StatusInternalServerError, "could not delete article")
		return
	}

	h.Log.Info("article disabled", zap.String("id", id.Hex()))
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
