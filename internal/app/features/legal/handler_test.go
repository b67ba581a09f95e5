package legal_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/vitamove/vitamove-server/internal/app/features/legal"
	legalstore "github.com/vitamove/vitamove-server/internal/app/store/legal"
	"github.com/vitamove/vitamove-server/internal/domain/models"
	"github.com/vitamove/vitamove-server/internal/testutil"
)

func newHandler(t *testing.T) *legal.Handler {
	t.Helper()
	db := testutil.SetupTestDB(t)
	return legal.NewHandler(legalstore.New(db), zap.NewNop())
}

func put(t *testing.T, h *legal.Handler, body map[string]any) *httptest.ResponseRecorder {
	t.Helper()
	req := testutil.NewJSONRequest(t, "PUT", "/api/legal/document", body)
	rec := httptest.NewRecorder()
	h.ServePut(rec, req)
	return rec
}

func TestServePut_UpsertAndSanitize(t *testing.T) {
	h := newHandler(t)

	rec := put(t, h, map[string]any{
		"type":    "terms",
		"locale":  "en",
		"title":   "Terms of Service",
		"content": "<p>Be nice.</p><script>alert(1)</script>",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d (%s)", rec.Code, rec.Body.String())
	}

	var doc models.LegalDocument
	testutil.DecodeJSONResponse(t, rec, &doc)
	if strings.Contains(doc.Content, "<script>") {
		t.Errorf("content was not sanitized: %q", doc.Content)
	}
	if !strings.Contains(doc.Content, "Be nice.") {
		t.Errorf("content text was lost: %q", doc.Content)
	}

	// Writing the same key again replaces the content.
	rec = put(t, h, map[string]any{
		"type":    "terms",
		"locale":  "en",
		"content": "<p>Updated.</p>",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("second put status: got %d", rec.Code)
	}
	var updated models.LegalDocument
	testutil.DecodeJSONResponse(t, rec, &updated)
	if updated.ID != doc.ID {
		t.Error("expected upsert to replace the existing document")
	}
}

func TestServePut_Validation(t *testing.T) {
	h := newHandler(t)

	tests := []struct {
		name string
		body map[string]any
	}{
		{"unknown type", map[string]any{"type": "eula", "locale": "en", "content": "x"}},
		{"unknown locale", map[string]any{"type": "terms", "locale": "de", "content": "x"}},
		{"empty content", map[string]any{"type": "terms", "locale": "en", "content": ""}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if rec := put(t, h, tc.body); rec.Code != http.StatusUnprocessableEntity {
				t.Errorf("status: got %d, want %d", rec.Code, http.StatusUnprocessableEntity)
			}
		})
	}
}

func TestServeGet_LocaleFallback(t *testing.T) {
	h := newHandler(t)

	if rec := put(t, h, map[string]any{"type": "privacy", "locale": "en", "content": "<p>policy</p>"}); rec.Code != http.StatusOK {
		t.Fatalf("seed put failed: %d", rec.Code)
	}

	// ka is not stored; the en text is served instead.
	req := httptest.NewRequest("GET", "/api/legal/document?type=privacy&locale=ka", nil)
	rec := httptest.NewRecorder()
	h.ServeGet(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d (%s)", rec.Code, rec.Body.String())
	}
	var doc models.LegalDocument
	testutil.DecodeJSONResponse(t, rec, &doc)
	if doc.Locale != "en" {
		t.Errorf("resolved locale: got %q, want en", doc.Locale)
	}
}

func TestServeGet_Errors(t *testing.T) {
	h := newHandler(t)

	req := httptest.NewRequest("GET", "/api/legal/document?type=eula", nil)
	rec := httptest.NewRecorder()
	h.ServeGet(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("unknown type: got %d, want %d", rec.Code, http.StatusBadRequest)
	}

	req = httptest.NewRequest("GET", "/api/legal/document?type=offer", nil)
	rec = httptest.NewRecorder()
	h.ServeGet(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Errorf("missing document: got %d, want %d", rec.Code, http.StatusNotFound)
	}
}
