package models_test

import (
	"testing"

	"github.com/vitamove/vitamove-server/internal/domain/models"
)

func TestLocalized_Resolve(t *testing.T) {
	tests := []struct {
		name   string
		value  models.Localized
		locale string
		want   string
	}{
		{
			name:   "requested locale present",
			value:  models.Localized{EN: "hello", RU: "привет", KA: "გამარჯობა"},
			locale: "ka",
			want:   "გამარჯობა",
		},
		{
			name:   "missing requested falls back to ru",
			value:  models.Localized{EN: "hello", RU: "привет"},
			locale: "ka",
			want:   "привет",
		},
		{
			name:   "missing requested and ru falls back to en",
			value:  models.Localized{EN: "hello"},
			locale: "ka",
			want:   "hello",
		},
		{
			name:   "only ka present",
			value:  models.Localized{KA: "გამარჯობა"},
			locale: "en",
			want:   "გამარჯობა",
		},
		{
			name:   "all empty resolves to empty string",
			value:  models.Localized{},
			locale: "ru",
			want:   "",
		},
		{
			name:   "unknown locale uses fallback chain",
			value:  models.Localized{EN: "hello", RU: "привет"},
			locale: "de",
			want:   "привет",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := tc.value.Resolve(tc.locale)
			if got != tc.want {
				t.Errorf("Resolve(%q): got %q, want %q", tc.locale, got, tc.want)
			}
		})
	}
}

func TestLocalized_IsEmpty(t *testing.T) {
	if !(models.Localized{}).IsEmpty() {
		t.Error("expected zero value to be empty")
	}
	if (models.Localized{KA: "x"}).IsEmpty() {
		t.Error("expected value with ka text to be non-empty")
	}
}

func TestIsValidLocale(t *testing.T) {
	for _, l := range []string{"en", "ru", "ka"} {
		if !models.IsValidLocale(l) {
			t.Errorf("expected %q to be a valid locale", l)
		}
	}
	for _, l := range []string{"", "EN", "de", "en-US"} {
		if models.IsValidLocale(l) {
			t.Errorf("expected %q to be invalid", l)
		}
	}
}
