package media_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vitamove/vitamove-server/internal/app/system/media"
)

func TestLocal_PutAndURL(t *testing.T) {
	base := t.TempDir()
	store, err := media.NewLocal(base, "/files/")
	if err != nil {
		t.Fatalf("NewLocal failed: %v", err)
	}

	ctx := context.Background()
	if err := store.Put(ctx, "uploads/2026/08/demo.png", strings.NewReader("png-bytes")); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(base, "uploads", "2026", "08", "demo.png"))
	if err != nil {
		t.Fatalf("failed to read stored file: %v", err)
	}
	if string(data) != "png-bytes" {
		t.Errorf("stored content: got %q", data)
	}

	if got := store.URL("uploads/2026/08/demo.png"); got != "/files/uploads/2026/08/demo.png" {
		t.Errorf("URL: got %q", got)
	}
}

func TestLocal_Put_RejectsTraversal(t *testing.T) {
	base := t.TempDir()
	store, err := media.NewLocal(base, "/files")
	if err != nil {
		t.Fatalf("NewLocal failed: %v", err)
	}

	err = store.Put(context.Background(), "../escape.txt", strings.NewReader("x"))
	if err == nil {
		t.Fatal("expected traversal path to be rejected")
	}
	if _, statErr := os.Stat(filepath.Join(filepath.Dir(base), "escape.txt")); statErr == nil {
		t.Error("file escaped the base directory")
	}
}

func TestNewLocal_EmptyBasePath(t *testing.T) {
	if _, err := media.NewLocal("", "/files"); err == nil {
		t.Error("expected error for empty base path")
	}
}

func TestUpload(t *testing.T) {
	base := t.TempDir()
	store, err := media.NewLocal(base, "/files")
	if err != nil {
		t.Fatalf("NewLocal failed: %v", err)
	}

	info, err := media.Upload(context.Background(), store, "My Photo (1).jpg", strings.NewReader("jpeg"), 4, "image/jpeg")
	if err != nil {
		t.Fatalf("Upload failed: %v", err)
	}

	if !strings.HasPrefix(info.Path, "uploads/") {
		t.Errorf("path should be date-scoped under uploads/, got %q", info.Path)
	}
	if !strings.HasSuffix(info.Path, ".jpg") {
		t.Errorf("path should keep the extension, got %q", info.Path)
	}
	if strings.ContainsAny(info.Path, "() ") {
		t.Errorf("path should be sanitized, got %q", info.Path)
	}
	if info.FileName != "My Photo (1).jpg" {
		t.Errorf("original filename should be preserved in metadata, got %q", info.FileName)
	}
	if info.Size != 4 || info.ContentType != "image/jpeg" {
		t.Errorf("metadata: got size=%d type=%q", info.Size, info.ContentType)
	}
	if !strings.HasPrefix(info.URL, "/files/uploads/") {
		t.Errorf("URL: got %q", info.URL)
	}

	if _, err := os.Stat(filepath.Join(base, filepath.FromSlash(info.Path))); err != nil {
		t.Errorf("uploaded file missing on disk: %v", err)
	}
}

func TestUpload_DistinctPathsForSameName(t *testing.T) {
	base := t.TempDir()
	store, err := media.NewLocal(base, "/files")
	if err != nil {
		t.Fatalf("NewLocal failed: %v", err)
	}

	ctx := context.Background()
	a, err := media.Upload(ctx, store, "video.mp4", strings.NewReader("a"), 1, "video/mp4")
	if err != nil {
		t.Fatalf("first Upload failed: %v", err)
	}
	b, err := media.Upload(ctx, store, "video.mp4", strings.NewReader("b"), 1, "video/mp4")
	if err != nil {
		t.Fatalf("second Upload failed: %v", err)
	}
	if a.Path == b.Path {
		t.Errorf("expected unique paths, both got %q", a.Path)
	}
}
