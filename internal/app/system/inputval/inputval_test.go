package inputval_test

import (
	"testing"

	"github.com/vitamove/vitamove-server/internal/app/system/inputval"
)

func TestEmail(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"  User@Example.COM ", "user@example.com"},
		{"plain@example.com", "plain@example.com"},
		{"   ", ""},
	}
	for _, tc := range tests {
		if got := inputval.Email(tc.in); got != tc.want {
			t.Errorf("Email(%q): got %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestEmailValid(t *testing.T) {
	valid := []string{"user@example.com", "a.b+c@sub.example.org"}
	for _, s := range valid {
		if !inputval.EmailValid(s) {
			t.Errorf("expected %q to be valid", s)
		}
	}
	invalid := []string{"", "not-an-email", "user@", "@example.com"}
	for _, s := range invalid {
		if inputval.EmailValid(s) {
			t.Errorf("expected %q to be invalid", s)
		}
	}
}

func TestPhone(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"+995 (599) 12-34-56", "+995599123456"},
		{"599.123.456", "599123456"},
		{" 5 9 9 1 2 3 4 5 6 ", "599123456"},
	}
	for _, tc := range tests {
		if got := inputval.Phone(tc.in); got != tc.want {
			t.Errorf("Phone(%q): got %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestPhoneValid(t *testing.T) {
	valid := []string{"+995599123456", "599 12 34 56", "(555) 123-4567"}
	for _, s := range valid {
		if !inputval.PhoneValid(s) {
			t.Errorf("expected %q to be valid", s)
		}
	}
	invalid := []string{
		"",
		"123",              // too short
		"1234567890123456", // too long
		"call me maybe",
		"599-12-34-5x",
		"++995599123456", // plus not leading
	}
	for _, s := range invalid {
		if inputval.PhoneValid(s) {
			t.Errorf("expected %q to be invalid", s)
		}
	}
}

func TestDuration(t *testing.T) {
	valid := []string{"01:30", "12:05", "0:59", "99:59"}
	for _, s := range valid {
		if !inputval.Duration(s) {
			t.Errorf("expected %q to be a valid duration", s)
		}
	}
	invalid := []string{"", "130", "1:2:3", "01:", ":30", "ab:cd", "100:00"}
	for _, s := range invalid {
		if inputval.Duration(s) {
			t.Errorf("expected %q to be invalid", s)
		}
	}
}
