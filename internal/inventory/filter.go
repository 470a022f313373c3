package inventory

import (
	"path/filepath"
	"strings"

	"tmx/internal/domain"
)

// Filter narrows test units by ID pattern
type Filter struct{}

// NewFilter creates a new Filter
func NewFilter() *Filter {
	return &Filter{}
}

// FilterByName keeps units whose ID matches the pattern. Supports
// wildcard patterns like "test_user*" or "*performance*", falling back
// to substring matching for bare words.
func (f *Filter) FilterByName(units []domain.TestUnit, pattern string) []domain.TestUnit {
	if pattern == "" {
		return units
	}

	var filtered []domain.TestUnit

	for _, unit := range units {
		// Glob-style match first (supports * and ? wildcards)
		matched, err := filepath.Match(pattern, unit.ID)
		if err == nil && matched {
			filtered = append(filtered, unit)
			continue
		}

		// Patterns like "*cart*payment*": every literal part must
		// appear somewhere in the ID
		if strings.Contains(pattern, "*") {
			if matchesParts(unit.ID, pattern) {
				filtered = append(filtered, unit)
			}
			continue
		}

		// No wildcards at all: plain substring check
		if !strings.Contains(pattern, "?") && strings.Contains(unit.ID, pattern) {
			filtered = append(filtered, unit)
		}
	}

	return filtered
}

func matchesParts(id, pattern string) bool {
	sawLiteral := false
	for _, part := range strings.Split(pattern, "*") {
		if part == "" {
			continue
		}
		sawLiteral = true
		if !strings.Contains(id, part) {
			return false
		}
	}
	return sawLiteral
}
