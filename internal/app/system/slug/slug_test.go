package slug_test

import (
	"context"
	"errors"
	"testing"

	"github.com/vitamove/vitamove-server/internal/app/system/slug"
)

func TestMake(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Hello, World!", "hello-world"},
		{"Test", "test"},
		{"  Leading and trailing  ", "leading-and-trailing"},
		{"Multiple   spaces", "multiple-spaces"},
		{"already-a-slug", "already-a-slug"},
		{"Hyphen -- collapse", "hyphen-collapse"},
		{"Ends with punctuation?!", "ends-with-punctuation"},
		{"Números & Symbols £€", "nmeros-symbols"},
		{"", ""},
		{"!!!", ""},
	}

	for _, tc := range tests {
		if got := slug.Make(tc.in); got != tc.want {
			t.Errorf("Make(%q): got %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestMakeUnique(t *testing.T) {
	ctx := context.Background()

	t.Run("free slug used as-is", func(t *testing.T) {
		got, err := slug.MakeUnique(ctx, "Test", neverExists)
		if err != nil {
			t.Fatalf("MakeUnique failed: %v", err)
		}
		if got != "test" {
			t.Errorf("got %q, want %q", got, "test")
		}
	})

	t.Run("taken slug gets numeric suffix", func(t *testing.T) {
		taken := map[string]bool{"test": true}
		got, err := slug.MakeUnique(ctx, "Test", mapExists(taken))
		if err != nil {
			t.Fatalf("MakeUnique failed: %v", err)
		}
		if got != "test-1" {
			t.Errorf("got %q, want %q", got, "test-1")
		}
	})

	t.Run("suffix keeps counting past collisions", func(t *testing.T) {
		taken := map[string]bool{"test": true, "test-1": true, "test-2": true}
		got, err := slug.MakeUnique(ctx, "Test", mapExists(taken))
		if err != nil {
			t.Fatalf("MakeUnique failed: %v", err)
		}
		if got != "test-3" {
			t.Errorf("got %q, want %q", got, "test-3")
		}
	})

	t.Run("empty slugification falls back to untitled", func(t *testing.T) {
		got, err := slug.MakeUnique(ctx, "!!!", neverExists)
		if err != nil {
			t.Fatalf("MakeUnique failed: %v", err)
		}
		if got != "untitled" {
			t.Errorf("got %q, want %q", got, "untitled")
		}
	})

	t.Run("lookup errors propagate", func(t *testing.T) {
		wantErr := errors.New("boom")
		_, err := slug.MakeUnique(ctx, "Test", func(context.Context, string) (bool, error) {
			return false, wantErr
		})
		if !errors.Is(err, wantErr) {
			t.Errorf("expected lookup error, got %v", err)
		}
	})
}

func neverExists(context.Context, string) (bool, error) {
	return false, nil
}

func mapExists(taken map[string]bool) slug.ExistsFunc {
	return func(_ context.Context, s string) (bool, error) {
		return taken[s], nil
	}
}
