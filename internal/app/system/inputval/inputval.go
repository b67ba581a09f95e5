// internal/app/system/inputval/inputval.go

// Package inputval validates and normalizes public form input before it
// reaches a store. Persistence never happens for input that fails here.
package inputval

import (
	"strings"

	"github.com/dalemusser/waffle/pantry/validate"
)

// Email normalizes an email address (trim, lowercase). Returns "" for blank
// input.
func Email(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// EmailValid reports whether s looks like a deliverable email address.
func EmailValid(s string) bool {
	return validate.SimpleEmailValid(Email(s))
}

// Phone normalizes a phone number: spaces, dots, dashes, and parentheses are
// dropped; a single leading + is kept.
func Phone(s string) string {
	s = strings.TrimSpace(s)
	var b strings.Builder
	for i, r := range s {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '+' && i == 0:
			b.WriteRune(r)
		case r == ' ' || r == '-' || r == '.' || r == '(' || r == ')':
			// separator, dropped
		default:
			// anything else invalidates the number; keep it so PhoneValid fails
			b.WriteRune(r)
		}
	}
	return b.String()
}

// PhoneValid reports whether s is a plausible phone number: an optional
// leading +, then 7 to 15 digits, nothing else.
func PhoneValid(s string) bool {
	n := Phone(s)
	if strings.HasPrefix(n, "+") {
		n = n[1:]
	}
	if len(n) < 7 || len(n) > 15 {
		return false
	}
	for _, r := range n {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// Name normalizes a person's display name (trim only, case preserved).
func Name(s string) string {
	return strings.TrimSpace(s)
}

// Duration reports whether s matches the "HH:MM" / "MM:SS" shape stored on
// sets and exercises: one or two digit groups separated by a single colon.
func Duration(s string) bool {
	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return false
	}
	for _, p := range parts {
		if len(p) < 1 || len(p) > 2 {
			return false
		}
		for _, r := range p {
			if r < '0' || r > '9' {
				return false
			}
		}
	}
	return true
}
