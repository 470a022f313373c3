package commands

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"tmx/internal/config"
	"tmx/internal/domain"
	"tmx/internal/inventory"
	"tmx/internal/ui"
)

// ListCommand handles the list command
type ListCommand struct {
	config    *config.Config
	filter    *inventory.Filter
	formatter *ui.Formatter
}

// NewListCommand creates a new ListCommand
func NewListCommand(
	cfg *config.Config,
	filter *inventory.Filter,
	formatter *ui.Formatter,
) *ListCommand {
	return &ListCommand{
		config:    cfg,
		filter:    filter,
		formatter: formatter,
	}
}

// Execute runs the command
func (lc *ListCommand) Execute(cmd *cobra.Command, args []string) error {
	inv, err := loadInventory(lc.config)
	if err != nil {
		return err
	}

	units, err := inv.SelectUnits(lc.config.Flags.TestSuite)
	if err != nil {
		return err
	}

	browser := lc.config.Flags.Browser
	if browser != inventory.BrowserAll && !inv.HasBrowser(browser) {
		color.Yellow("Unknown browser %q, showing %s units", browser, config.DefaultBrowser)
		browser = config.DefaultBrowser
	}
	if browser != inventory.BrowserAll {
		var applicable []domain.TestUnit
		for _, unit := range units {
			if unit.RunsOn(browser) {
				applicable = append(applicable, unit)
			}
		}
		units = applicable
	}

	// Filter units
	units = lc.filter.FilterByName(units, lc.config.Flags.NameFilter)

	if len(units) == 0 {
		color.Yellow("No test units found")
		return nil
	}

	lc.formatter.PrintUnitList(units, lc.config.Flags.Weights)
	return nil
}
