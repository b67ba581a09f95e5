package apiutil_test

import (
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/vitamove/vitamove-server/internal/app/system/apiutil"
)

func TestNullableID_Unmarshal(t *testing.T) {
	type body struct {
		ParentID apiutil.NullableID `json:"parent_id"`
	}

	t.Run("absent key leaves Set false", func(t *testing.T) {
		var b body
		if err := json.Unmarshal([]byte(`{}`), &b); err != nil {
			t.Fatalf("unmarshal failed: %v", err)
		}
		if b.ParentID.Set {
			t.Error("expected Set to be false for absent key")
		}
	})

	t.Run("explicit null sets Set with empty value", func(t *testing.T) {
		var b body
		if err := json.Unmarshal([]byte(`{"parent_id": null}`), &b); err != nil {
			t.Fatalf("unmarshal failed: %v", err)
		}
		if !b.ParentID.Set {
			t.Error("expected Set to be true for explicit null")
		}
		if b.ParentID.Value != "" {
			t.Errorf("expected empty value, got %q", b.ParentID.Value)
		}
	})

	t.Run("string value sets both", func(t *testing.T) {
		var b body
		if err := json.Unmarshal([]byte(`{"parent_id": "6543210987654321abcdef00"}`), &b); err != nil {
			t.Fatalf("unmarshal failed: %v", err)
		}
		if !b.ParentID.Set || b.ParentID.Value != "6543210987654321abcdef00" {
			t.Errorf("got Set=%v Value=%q", b.ParentID.Set, b.ParentID.Value)
		}
	})
}

func TestParseID(t *testing.T) {
	if _, err := apiutil.ParseID("6543210987654321abcdef00"); err != nil {
		t.Errorf("expected valid hex id to parse, got %v", err)
	}
	for _, bad := range []string{"", "nope", "6543210987654321abcdef0", "zzzz210987654321abcdef00"} {
		if _, err := apiutil.ParseID(bad); !errors.Is(err, apiutil.ErrBadID) {
			t.Errorf("ParseID(%q): expected ErrBadID, got %v", bad, err)
		}
	}
}

func TestRequestLocale(t *testing.T) {
	tests := []struct {
		target string
		want   string
	}{
		{"/api/articles", "en"},
		{"/api/articles?locale=ru", "ru"},
		{"/api/articles?locale=ka", "ka"},
		{"/api/articles?locale=de", "en"},
		{"/api/articles?locale=", "en"},
	}
	for _, tc := range tests {
		r := httptest.NewRequest("GET", tc.target, nil)
		if got := apiutil.RequestLocale(r); got != tc.want {
			t.Errorf("RequestLocale(%q): got %q, want %q", tc.target, got, tc.want)
		}
	}
}

func TestWriteError_Envelope(t *testing.T) {
	rec := httptest.NewRecorder()
	apiutil.WriteError(rec, 404, "category not found")

	if rec.Code != 404 {
		t.Errorf("status: got %d, want 404", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type: got %q", ct)
	}

	var body struct {
		Error struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to parse error body: %v", err)
	}
	if body.Error.Code != "not_found" {
		t.Errorf("error code: got %q, want %q", body.Error.Code, "not_found")
	}
	if body.Error.Message != "category not found" {
		t.Errorf("error message: got %q", body.Error.Message)
	}
}
