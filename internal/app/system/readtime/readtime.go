// internal/app/system/readtime/readtime.go

// Package readtime estimates how long an article takes to read.
package readtime

import (
	"html"
	"strconv"
	"strings"

	"github.com/vitamove/vitamove-server/internal/app/system/htmlsanitize"
	"github.com/vitamove/vitamove-server/internal/domain/models"
)

// wordsPerMinute is the assumed reading speed.
const wordsPerMinute = 220

// Estimate returns the read time in minutes for the given HTML content as a
// display string ("1", "2", …). Markup and entities are stripped before
// counting; the result rounds up and never drops below 1.
func Estimate(htmlContent string) string {
	text := html.UnescapeString(htmlsanitize.Plain(htmlContent))
	words := len(strings.Fields(text))
	minutes := (words + wordsPerMinute - 1) / wordsPerMinute
	if minutes < 1 {
		minutes = 1
	}
	return strconv.Itoa(minutes)
}

// ForContent picks the text to estimate from a localized content field,
// preferring en, then ru, then ka.
func ForContent(content models.Localized) string {
	text := content.EN
	if text == "" {
		text = content.RU
	}
	if text == "" {
		text = content.KA
	}
	return Estimate(text)
}
