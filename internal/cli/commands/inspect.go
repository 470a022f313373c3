package commands

import (
	"github.com/spf13/cobra"

	"tmx/internal/config"
	"tmx/internal/storage"
	"tmx/internal/ui"
)

// InspectCommand handles the inspect command
type InspectCommand struct {
	config    *config.Config
	storage   storage.Storage
	inspector ui.Inspector
}

// NewInspectCommand creates a new InspectCommand
func NewInspectCommand(cfg *config.Config, st storage.Storage, inspector ui.Inspector) *InspectCommand {
	return &InspectCommand{
		config:    cfg,
		storage:   st,
		inspector: inspector,
	}
}

// Execute runs the command
func (ic *InspectCommand) Execute(cmd *cobra.Command, args []string) error {
	report, err := ic.storage.LoadReport()
	if err != nil {
		return err
	}

	return ic.inspector.View(report)
}
