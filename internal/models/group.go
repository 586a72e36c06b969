package models

import (
	"sort"
	"strings"
)

// Group represents a reusable list of people a transaction can be shared with.
// Deleting a group unlinks its transactions instead of deleting them.
type Group struct {
	// ID is the unique identifier for the group (UUID format).
	ID string

	UserID string

	// Name is the display name of the group (e.g., "Roommates", "Work Lunch").
	Name string `validate:"required,max=100"`

	// Members is the list of participant names in this group.
	// Always de-duplicated and sorted before it is stored.
	Members []string `validate:"min=1,dive,required"`

	// CreatedAt is the Unix timestamp when the group was created.
	CreatedAt int64
}

// NormalizeMembers returns the members trimmed, de-duplicated and sorted.
func NormalizeMembers(members []string) []string {
	seen := make(map[string]bool, len(members))
	out := make([]string, 0, len(members))
	for _, m := range members {
		m = strings.TrimSpace(m)
		if m == "" || seen[m] {
			continue
		}
		seen[m] = true
		out = append(out, m)
	}
	sort.Strings(out)
	return out
}
