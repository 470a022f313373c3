package ui

import "tmx/internal/domain"

// Inspector displays a run report in an interactive TUI
type Inspector interface {
	View(report *domain.Report) error
}
