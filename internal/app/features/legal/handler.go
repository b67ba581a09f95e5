// internal/app/features/legal/handler.go
package legal

import (
	"context"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/vitamove/vitamove-server/internal/app/store/legal"
	"github.com/vitamove/vitamove-server/internal/app/system/apiutil"
	"github.com/vitamove/vitamove-server/internal/app/system/htmlsanitize"
	"github.com/vitamove/vitamove-server/internal/app/system/timeouts"
	"github.com/vitamove/vitamove-server/internal/domain/models"
)

// Handler serves legal documents, one text per (type, locale).
type Handler struct {
	Legal *legalstore.Store
	Log   *zap.Logger
}

func NewHandler(store *legalstore.Store, logger *zap.Logger) *Handler {
	return &Handler{Legal: store, Log: logger}
}

// ServeGet handles GET /api/legal/document?type=&locale=. When the
// requested locale has no stored text the other locales are tried in the
// usual fallback order.
func (h *Handler) ServeGet(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	docType := r.URL.Query().Get("type")
	if !models.IsValidLegalType(docType) {
		apiutil.WriteError(w, http.StatusBadRequest, "type must be terms, privacy or offer")
		return
	}
	locale := apiutil.RequestLocale(r)

	doc, err := h.Legal.GetResolved(ctx, docType, locale)
	if errors.Is(err, legalstore.ErrNotFound) {
		apiutil.WriteError(w, http.StatusNotFound, "document not found")
		return
	}
	if err != nil {
		h.Log.Error("legal: get failed", zap.Error(err), zap.String("type", docType))
		apiutil.WriteError(w, http.StatusInternalServerError, "could not load document")
		return
	}
	apiutil.WriteJSON(w, http.StatusOK, doc)
}

// putRequest is the admin upsert payload for a legal document.
type putRequest struct {
	Type    string `json:"type"`
	Locale  string `json:"locale"`
	Title   string `json:"title,omitempty"`
	Content string `json:"content"`
}

// ServePut handles PUT /api/legal/document (admin). Writes are idempotent
// upserts on (type, locale).
func (h *Handler) ServePut(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	var req putRequest
	if err := apiutil.DecodeBody(r, &req); err != nil {
		apiutil.WriteError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if !models.IsValidLegalType(req.Type) {
		apiutil.WriteError(w, http.StatusUnprocessableEntity, "type must be terms, privacy or offer")
		return
	}
	if !models.IsValidLocale(req.Locale) {
		apiutil.WriteError(w, http.StatusUnprocessableEntity, "locale must be en, ru or ka")
		return
	}
	if req.Content == "" {
		apiutil.WriteError(w, http.StatusUnprocessableEntity, "content is required")
		return
	}

	doc, err := h.Legal.Upsert(ctx, models.LegalDocument{
		Type:    req.Type,
		Locale:  req.Locale,
		Title:   req.Title,
		Content: htmlsanitize.Rich(req.Content),
	})
	if err != nil {
		h.Log.Error("legal: upsert failed", zap.Error(err),
			zap.String("type", req.Type), zap.String("locale", req.Locale))
		apiutil.WriteError(w, http.StatusInternalServerError, "could not store document")
		return
	}

	h.Log.Info("legal document stored",
		zap.String("type", doc.Type),
		zap.String("locale", doc.Locale))
	apiutil.WriteJSON(w, http.StatusOK, doc)
}
