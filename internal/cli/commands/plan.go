package commands

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"tmx/internal/config"
	"tmx/internal/inventory"
	"tmx/internal/matrix"
	"tmx/internal/planner"
	"tmx/internal/timing"
	"tmx/internal/ui"
)

// Presets bundle the flag combinations used by the common workflows
const (
	PresetSmoke        = "smoke"
	PresetCrossBrowser = "cross-browser"
)

// PlanCommand handles the plan command
type PlanCommand struct {
	config    *config.Config
	logger    zerolog.Logger
	planner   *planner.Planner
	formatter *ui.Formatter
}

// NewPlanCommand creates a new PlanCommand
func NewPlanCommand(
	cfg *config.Config,
	logger zerolog.Logger,
	pl *planner.Planner,
	formatter *ui.Formatter,
) *PlanCommand {
	return &PlanCommand{
		config:    cfg,
		logger:    logger,
		planner:   pl,
		formatter: formatter,
	}
}

// Execute runs the command
func (pc *PlanCommand) Execute(cmd *cobra.Command, args []string) error {
	if err := pc.applyPreset(cmd); err != nil {
		return err
	}

	inv, err := loadInventory(pc.config)
	if err != nil {
		return err
	}

	browser := pc.config.Flags.Browser
	if browser != inventory.BrowserAll && !inv.HasBrowser(browser) {
		pc.logger.Warn().
			Str("browser", browser).
			Str("fallback", config.DefaultBrowser).
			Msg("unknown browser requested, falling back")
		browser = config.DefaultBrowser
	}
	browsers := inv.SelectBrowsers(browser)

	units, err := inv.SelectUnits(pc.config.Flags.TestSuite)
	if err != nil {
		return err
	}

	estimator := timing.NewEstimator(nil)
	if pc.config.Flags.UseTimings {
		estimator = timing.NewEstimator(timing.NewStore(pc.config.ProjectPath))
	}
	units, err = estimator.Estimate(cmd.Context(), units)
	if err != nil {
		return err
	}

	plan, err := pc.planner.Plan(units, pc.config.MaxParallel, inv.Ceilings(), browsers)
	if err != nil {
		return err
	}

	for _, ex := range plan.Excluded {
		pc.logger.Warn().
			Str("unit", ex.UnitID).
			Str("reason", ex.Reason).
			Msg("test unit excluded from the plan")
	}

	outputPath := pc.config.Flags.Output
	if outputPath == "" {
		outputPath = pc.config.GetMatrixPath()
	}
	if err := matrix.Write(matrix.FromPlan(plan), outputPath, pc.config.Flags.Pretty); err != nil {
		return err
	}

	pc.logger.Info().
		Int("jobs", len(plan.Jobs)).
		Int("units", plan.TotalUnits()).
		Float64("wall_minutes", plan.EstimatedWallMinutes()).
		Msg("test matrix planned")

	// Keep stdout clean when the matrix itself goes there
	if outputPath != matrix.StdoutPath {
		pc.formatter.PrintPlanSummary(plan)
		fmt.Printf("\nMatrix written to %s\n", outputPath)
	}
	return nil
}

// applyPreset fills in the planning flags for the named preset.
// Flags the user set explicitly win over the preset values.
func (pc *PlanCommand) applyPreset(cmd *cobra.Command) error {
	var suite, browser string
	var maxParallel int

	switch pc.config.Flags.Preset {
	case "":
		return nil
	case PresetSmoke:
		suite, browser, maxParallel = "smoke", config.DefaultBrowser, 5
	case PresetCrossBrowser:
		suite, browser, maxParallel = "frontend", inventory.BrowserAll, 15
	default:
		return fmt.Errorf("unknown preset %q: have %s, %s",
			pc.config.Flags.Preset, PresetSmoke, PresetCrossBrowser)
	}

	if !cmd.Flags().Changed("test-suite") {
		pc.config.Flags.TestSuite = suite
	}
	if !cmd.Flags().Changed("browser") {
		pc.config.Flags.Browser = browser
	}
	if !cmd.Flags().Changed("max-parallel") {
		pc.config.MaxParallel = maxParallel
	}
	pc.logger.Debug().Str("preset", pc.config.Flags.Preset).Msg("applied planning preset")
	return nil
}

// loadInventory resolves the catalog from the manifest flag or the
// built-in defaults
func loadInventory(cfg *config.Config) (*inventory.Inventory, error) {
	if cfg.Flags.Inventory != "" {
		return inventory.Load(cfg.Flags.Inventory)
	}
	return inventory.Default(), nil
}
