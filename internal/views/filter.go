package views

import (
	"strings"

	"golang.org/x/text/cases"

	"cadence/internal/content"
)

// allLabels are the category/language values meaning "no restriction".
var allLabels = []string{"all", "todas", "todos"}

// Filter is the channel query: a free-text term plus exact category and
// language matches. Zero values match everything.
type Filter struct {
	Term     string `json:"term"`
	Category string `json:"category"`
	Language string `json:"language"`
}

// IsAll reports whether value disables a category or language filter.
func IsAll(value string) bool {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return true
	}
	for _, label := range allLabels {
		if strings.EqualFold(trimmed, label) {
			return true
		}
	}
	return false
}

// Matches reports whether ch satisfies every predicate of f.
func (f Filter) Matches(ch content.Channel) bool {
	if term := strings.TrimSpace(f.Term); term != "" {
		fold := cases.Fold()
		needle := fold.String(term)
		if !strings.Contains(fold.String(ch.Title), needle) &&
			!strings.Contains(fold.String(ch.Description), needle) {
			return false
		}
	}
	if !IsAll(f.Category) && ch.Category != f.Category {
		return false
	}
	if !IsAll(f.Language) && ch.Language != f.Language {
		return false
	}
	return true
}

// FilterChannels returns the channels matching f, preserving order.
func FilterChannels(channels []content.Channel, f Filter) []content.Channel {
	out := make([]content.Channel, 0, len(channels))
	for _, ch := range channels {
		if f.Matches(ch) {
			out = append(out, ch)
		}
	}
	return out
}
