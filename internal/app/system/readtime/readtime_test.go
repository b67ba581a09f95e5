package readtime_test

import (
	"strings"
	"testing"

	"github.com/vitamove/vitamove-server/internal/app/system/readtime"
	"github.com/vitamove/vitamove-server/internal/domain/models"
)

func words(n int) string {
	return strings.TrimSpace(strings.Repeat("word ", n))
}

func TestEstimate(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty content floors at one minute", "", "1"},
		{"single word", "word", "1"},
		{"exactly one minute of words", words(220), "1"},
		{"one word over rounds up", words(221), "2"},
		{"two minutes of words", words(440), "2"},
		{"markup is stripped before counting", "<p>" + words(10) + "</p><script>ignored()</script>", "1"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := readtime.Estimate(tc.in); got != tc.want {
				t.Errorf("Estimate: got %q, want %q", got, tc.want)
			}
		})
	}
}

func TestForContent(t *testing.T) {
	// en preferred when present
	got := readtime.ForContent(models.Localized{EN: words(221), RU: words(10)})
	if got != "2" {
		t.Errorf("expected en content to drive the estimate, got %q", got)
	}

	// ru when en is missing
	got = readtime.ForContent(models.Localized{RU: words(450)})
	if got != "3" {
		t.Errorf("expected ru fallback estimate of 3, got %q", got)
	}

	// empty content still yields a minimum
	if got := readtime.ForContent(models.Localized{}); got != "1" {
		t.Errorf("expected minimum read time, got %q", got)
	}
}
