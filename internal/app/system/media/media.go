// internal/app/system/media/media.go

// Package media stores uploaded images and videos and hands back the public
// URL recorded on documents.
package media

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Store writes uploaded files and resolves their public URLs.
type Store interface {
	Put(ctx context.Context, path string, r io.Reader) error
	URL(path string) string
}

// Local stores files under a base directory and serves them from a URL
// prefix handled by the file server.
type Local struct {
	BasePath  string
	URLPrefix string
}

func NewLocal(basePath, urlPrefix string) (*Local, error) {
	if basePath == "" {
		return nil, fmt.Errorf("media: base path is empty")
	}
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("media: create base dir: %w", err)
	}
	return &Local{BasePath: basePath, URLPrefix: strings.TrimSuffix(urlPrefix, "/")}, nil
}

func (l *Local) Put(ctx context.Context, path string, r io.Reader) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	full, err := l.fullPath(path)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return fmt.Errorf("media: create dir: %w", err)
	}
	f, err := os.Create(full)
	if err != nil {
		return fmt.Errorf("media: create file: %w", err)
	}
	defer f.Close()
	if _, err := io.Copy(f, r); err != nil {
		return fmt.Errorf("media: write file: %w", err)
	}
	return nil
}

func (l *Local) URL(path string) string {
	return l.URLPrefix + "/" + strings.TrimPrefix(path, "/")
}

// fullPath resolves a stored path under the base dir, rejecting traversal.
func (l *Local) fullPath(path string) (string, error) {
	clean := filepath.Clean("/" + path)
	if strings.Contains(clean, "..") {
		return "", fmt.Errorf("media: invalid path %q", path)
	}
	return filepath.Join(l.BasePath, clean), nil
}

// UploadInfo contains metadata about an uploaded file.
type UploadInfo struct {
	Path        string `json:"path"`
	URL         string `json:"url"`
	FileName    string `json:"file_name"`
	Size        int64  `json:"size"`
	ContentType string `json:"content_type"`
}

// Upload stores a file with a unique path and returns upload info.
// The path is generated as: uploads/YYYY/MM/uuid-filename.
func Upload(ctx context.Context, store Store, filename string, r io.Reader, size int64, contentType string) (UploadInfo, error) {
	now := time.Now().UTC()
	dateDir := fmt.Sprintf("uploads/%04d/%02d", now.Year(), now.Month())
	uniqueName := fmt.Sprintf("%s-%s", uuid.New().String()[:8], sanitizeFilename(filename))
	path := filepath.ToSlash(filepath.Join(dateDir, uniqueName))

	if err := store.Put(ctx, path, r); err != nil {
		return UploadInfo{}, fmt.Errorf("upload file: %w", err)
	}

	return UploadInfo{
		Path:        path,
		URL:         store.URL(path),
		FileName:    filename,
		Size:        size,
		ContentType: contentType,
	}, nil
}

// sanitizeFilename removes or replaces characters that could be problematic
// in filenames.
func sanitizeFilename(filename string) string {
	filename = filepath.Base(filename)

	result := make([]byte, 0, len(filename))
	for i := 0; i < len(filename); i++ {
		c := filename[i]
		if isAllowedFilenameChar(c) {
			result = append(result, c)
		} else {
			result = append(result, '_')
		}
	}

	if len(result) == 0 {
		return "file"
	}
	if len(result) > 100 {
		ext := filepath.Ext(string(result))
		if len(ext) > 0 && len(ext) < 10 {
			result = append(result[:100-len(ext)], ext...)
		} else {
			result = result[:100]
		}
	}

	return string(result)
}

func isAllowedFilenameChar(c byte) bool {
	return (c >= 'a' && c <= 'z') ||
		(c >= 'A' && c <= 'Z') ||
		(c >= '0' && c <= '9') ||
		c == '-' || c == '_' || c == '.'
}
