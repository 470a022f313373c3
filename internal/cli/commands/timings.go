package commands

import (
	"github.com/spf13/cobra"

	"tmx/internal/config"
	"tmx/internal/timing"
	"tmx/internal/ui"
)

// TimingsCommand handles the timings command
type TimingsCommand struct {
	config    *config.Config
	formatter *ui.Formatter
}

// NewTimingsCommand creates a new TimingsCommand
func NewTimingsCommand(cfg *config.Config, formatter *ui.Formatter) *TimingsCommand {
	return &TimingsCommand{
		config:    cfg,
		formatter: formatter,
	}
}

// Execute runs the command
func (tc *TimingsCommand) Execute(cmd *cobra.Command, args []string) error {
	store := timing.NewStore(tc.config.ProjectPath)
	rows, err := store.Rows(cmd.Context())
	if err != nil {
		return err
	}

	tc.formatter.PrintTimings(rows)
	return nil
}
