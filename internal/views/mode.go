package views

import (
	"fmt"
	"strings"

	"cadence/internal/content"
)

// ViewMode is the channel listing layout preference.
type ViewMode string

const (
	ViewGrid ViewMode = "grid"
	ViewList ViewMode = "list"
)

// DefaultViewMode applies when nothing has been chosen or persisted.
const DefaultViewMode = ViewGrid

// ParseViewMode accepts "grid" or "list" in any case. Anything else is a
// content.ValidationError.
func ParseViewMode(value string) (ViewMode, error) {
	mode := ViewMode(strings.ToLower(strings.TrimSpace(value)))
	switch mode {
	case ViewGrid, ViewList:
		return mode, nil
	}
	return "", &content.ValidationError{Field: "view_mode", Reason: fmt.Sprintf("unknown view mode %q (want grid or list)", value)}
}
