// internal/app/features/uploads/handler.go
package uploads

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"github.com/vitamove/vitamove-server/internal/app/system/apiutil"
	"github.com/vitamove/vitamove-server/internal/app/system/media"
	"github.com/vitamove/vitamove-server/internal/app/system/timeouts"
)

// maxUploadSize bounds a single upload (videos included).
const maxUploadSize = 200 << 20 // 200 MiB

// allowedContentTypes are the media types the platform stores.
var allowedContentTypes = map[string]bool{
	"image/jpeg":      true,
	"image/png":       true,
	"image/gif":       true,
	"image/webp":      true,
	"image/svg+xml":   true,
	"video/mp4":       true,
	"video/webm":      true,
	"video/quicktime": true,
	"application/pdf": true,
}

// Handler streams admin uploads to the media store and returns the public
// URL to record on documents.
type Handler struct {
	Media media.Store
	Log   *zap.Logger
}

func NewHandler(store media.Store, logger *zap.Logger) *Handler {
	return &Handler{Media: store, Log: logger}
}

// ServeUpload handles POST /api/uploads (admin, multipart). The file is
// read from the "file" form field.
func (h *Handler) ServeUpload(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)

	file, header, err := r.FormFile("file")
	if err != nil {
		apiutil.WriteError(w, http.StatusBadRequest, "multipart form with a 'file' field is required")
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if !allowedContentTypes[contentType] {
		apiutil.WriteError(w, http.StatusUnprocessableEntity, "unsupported file type: "+contentType)
		return
	}

	info, err := media.Upload(ctx, h.Media, header.Filename, file, header.Size, contentType)
	if err != nil {
		h.Log.Error("uploads: store failed", zap.Error(err), zap.String("filename", header.Filename))
		apiutil.WriteError(w, http.StatusInternalServerError, "could not store file")
		return
	}

	h.Log.Info("file uploaded",
		zap.String("path", info.Path),
		zap.Int64("size", info.Size),
		zap.String("content_type", info.ContentType))
	apiutil.WriteJSON(w, http.StatusCreated, info)
}
