// internal/domain/models/localized.go
package models

// Supported locale codes for user-facing text.
const (
	LocaleEN = "en"
	LocaleRU = "ru"
	LocaleKA = "ka"
)

// Locales lists the locale codes the platform serves, in canonical order.
var Locales = []string{LocaleEN, LocaleRU, LocaleKA}

// IsValidLocale reports whether code is one of the supported locales.
func IsValidLocale(code string) bool {
	for _, l := range Locales {
		if l == code {
			return true
		}
	}
	return false
}

// Localized is a trilingual text field. Every user-facing string on the
// platform is stored in this shape; display resolution always goes through
// Resolve so the fallback chain lives in exactly one place.
type Localized struct {
	EN string `bson:"en,omitempty" json:"en,omitempty"`
	RU string `bson:"ru,omitempty" json:"ru,omitempty"`
	KA string `bson:"ka,omitempty" json:"ka,omitempty"`
}

// Resolve returns the display string for the requested locale.
//
// Fallback order: requested locale, then ru, then en, then ka. The result is
// always a plain string; when every locale is empty it is "". Resolve is pure
// and trivially idempotent (its output is already resolved).
func (l Localized) Resolve(locale string) string {
	if v := l.forLocale(locale); v != "" {
		return v
	}
	for _, code := range []string{LocaleRU, LocaleEN, LocaleKA} {
		if v := l.forLocale(code); v != "" {
			return v
		}
	}
	return ""
}

// IsEmpty reports whether no locale holds any text.
func (l Localized) IsEmpty() bool {
	return l.EN == "" && l.RU == "" && l.KA == ""
}

func (l Localized) forLocale(code string) string {
	switch code {
	case LocaleEN:
		return l.EN
	case LocaleRU:
		return l.RU
	case LocaleKA:
		return l.KA
	}
	return ""
}
