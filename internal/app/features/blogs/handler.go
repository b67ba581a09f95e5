// internal/app/features/blogs/handler.go
package blogs

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/vitamove/vitamove-server/internal/app/store/articles"
	"github.com/vitamove/vitamove-server/internal/app/store/blogs"
	"github.com/vitamove/vitamove-server/internal/app/system/apiutil"
	"github.com/vitamove/vitamove-server/internal/app/system/auth"
	"github.com/vitamove/vitamove-server/internal/app/system/timeouts"
	"github.com/vitamove/vitamove-server/internal/domain/models"
)

// Handler serves blogs. A blog's article list is always a query on the
// articles collection, so adding or removing an article is a single write
// on the article itself.
type Handler struct {
	Blogs    *blogstore.Store
	Articles *articlestore.Store
	Log      *zap.Logger
}

func NewHandler(blogs *blogstore.Store, arts *articlestore.Store, logger *zap.Logger) *Handler {
	return &Handler{Blogs: blogs, Articles: arts, Log: logger}
}

// ServeList handles GET /api/blogs.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	out, err := h.Blogs.List(ctx)
	if err != nil {
		h.Log.Error("blogs: list failed", zap.Error(err))
		apiutil.WriteError(w, http.StatusInternalServerError, "could not list blogs")
		return
	}
	apiutil.WriteJSON(w, http.StatusOK, out)
}

// ServeGet handles GET /api/blogs/{id} with the blog's articles embedded.
func (h *Handler) ServeGet(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	id, err := apiutil.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		apiutil.WriteError(w, http.StatusBadRequest, "invalid blog id")
		return
	}

	b, err := h.Blogs.GetByID(ctx, id)
	if errors.Is(err, blogstore.ErrNotFound) {
		apiutil.WriteError(w, http.StatusNotFound, "blog not found")
		return
	}
	if err != nil {
		h.Log.Error("blogs: get failed", zap.Error(err), zap.String("id", id.Hex()))
		apiutil.WriteError(w, http.StatusInternalServerError, "could not load blog")
		return
	}

	f := articlestore.Filter{BlogID: &b.ID}
	if _, isAdmin := auth.CurrentAdmin(r); !isAdmin {
		published := true
		f.Published = &published
	}
	arts, err := h.Articles.List(ctx, f)
	if err != nil {
		h.Log.Error("blogs: articles load failed", zap.Error(err), zap.String("id", id.Hex()))
		apiutil.WriteError(w, http.StatusInternalServerError, "could not load blog articles")
		return
	}
	b.Articles = arts

	apiutil.WriteJSON(w, http.StatusOK, b)
}

// createRequest is the admin create payload for a blog.
type createRequest struct {
	Title         models.Localized `json:"title"`
	Description   models.Localized `json:"description,omitempty"`
	CoverImageURL string           `json:"cover_image_url,omitempty"`
	IsPublished   bool             `json:"is_published,omitempty"`
}

// ServeCreate handles POST /api/blogs (admin).
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

	created, err := h.Blogs.Create(ctx, models.Blog{
		Title:         req.Title,
		Description:   req.Description,
		CoverImageURL: req.CoverImageURL,
		IsPublished:   req.IsPublished,
	})
	if err != nil {
		h.Log.Error("blogs: create failed", zap.Error(err))
		apiutil.WriteError(w, http.StatusInternalServerError, "could not create blog")
		return
	}

	h.Log.Info("blog created", zap.String("id", created.ID.Hex()))
	apiutil.WriteJSON(w, http.StatusCreated, created)
}

// ServeUpdate handles PATCH /api/blogs/{id} (admin).
func (h *Handler) ServeUpdate(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	id, err := apiutil.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		apiutil.WriteError(w, http.StatusBadRequest, "invalid blog id")
		return
	}

	var body struct {
		Title         *models.Localized `json:"title,omitempty"`
		Description   *models.Localized `json:"description,omitempty"`
		CoverImageURL *string           `json:"cover_image_url,omitempty"`
		IsPublished   *bool             `json:"is_published,omitempty"`
	}
	if err := apiutil.DecodeBody(r, &body); err != nil {
		apiutil.WriteError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if body.Title != nil && body.Title.IsEmpty() {
		apiutil.WriteError(w, http.StatusUnprocessableEntity, "title cannot be cleared in every locale")
		return
	}

	err = h.Blogs.Update(ctx, id, blogstore.Update{
		Title:         body.Title,
		Description:   body.Description,
		CoverImageURL: body.CoverImageURL,
		IsPublished:   body.IsPublished,
	})
	if errors.Is(err, blogstore.ErrNotFound) {
		apiutil.WriteError(w, http.StatusNotFound, "blog not found")
		return
	}
	if err != nil {
		h.Log.Error("blogs: update failed", zap.Error(err), zap.String("id", id.Hex()))
		apiutil.WriteError(w, http.StatusInternalServerError, "could not update blog")
		return
	}
	apiutil.WriteJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

// ServeDelete handles DELETE /api/blogs/{id} (admin, soft delete). Articles
// keep their blog_id; they simply stop resolving through the disabled blog.
func (h *Handler) ServeDelete(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	id, err := apiutil.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		apiutil.WriteError(w, http.StatusBadRequest, "invalid blog id")
		return
	}

	err = h.Blogs.SoftDelete(ctx, id)
	if errors.Is(err, blogstore.ErrNotFound) {
		apiutil.WriteError(w, http.StatusNotFound, "blog not found")
		return
	}
	if err != nil {
		h.Log.Error("blogs: delete failed", zap.Error(err), zap.String("id", id.Hex()))
		apiutil.WriteError(w, http.StatusInternalServerError, "could not delete blog")
		return
	}

	h.Log.Info("blog disabled", zap.String("id", id.Hex()))
	apiutil.WriteJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
