package commands

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"tmx/internal/aggregate"
	"tmx/internal/artifacts"
	"tmx/internal/cli"
	"tmx/internal/config"
	"tmx/internal/inventory"
	"tmx/internal/planner"
	"tmx/internal/storage"
	"tmx/internal/ui"
)

// Commands holds all CLI commands
type Commands struct {
	Plan      *PlanCommand
	Aggregate *AggregateCommand
	Collect   *CollectCommand
	List      *ListCommand
	Inspect   *InspectCommand
	Timings   *TimingsCommand
}

// NewCommands creates all commands with dependencies
func NewCommands(cfg *config.Config, logger zerolog.Logger) *Commands {
	// Initialize dependencies
	matrixPlanner := planner.New()
	aggregator := aggregate.New()
	scanner := artifacts.NewScanner(logger)
	filter := inventory.NewFilter()
	jsonStorage := storage.NewJSONStorage(cfg)
	formatter := ui.NewFormatter(cfg)
	inspector := ui.NewJobInspector(cfg)

	return &Commands{
		Plan:      NewPlanCommand(cfg, logger, matrixPlanner, formatter),
		Aggregate: NewAggregateCommand(cfg, logger, aggregator, scanner, jsonStorage, formatter),
		Collect:   NewCollectCommand(cfg, logger, aggregator, scanner, jsonStorage, formatter),
		List:      NewListCommand(cfg, filter, formatter),
		Inspect:   NewInspectCommand(cfg, jsonStorage, inspector),
		Timings:   NewTimingsCommand(cfg, formatter),
	}
}

// Register registers all commands with cobra
func (c *Commands) Register(rootCmd *cobra.Command, flags *cli.Flags, cfg *config.Config) {
	syncFlags := func(cmd *cobra.Command, args []string) error {
		// Update config with flags after parsing
		cfg.Flags = flags.ToConfigFlags()
		if flags.MaxParallel > 0 {
			cfg.MaxParallel = flags.MaxParallel
		}
		if flags.Threshold > 0 {
			cfg.HealthThreshold = flags.Threshold
		}
		if flags.Poll > 0 {
			cfg.PollInterval = flags.Poll
		}
		if flags.Deadline > 0 {
			cfg.CollectDeadline = flags.Deadline
		}
		return nil
	}

	// Plan command
	planCmd := &cobra.Command{
		Use:     "plan",
		Short:   "Generate the CI test matrix",
		Long:    "Distribute test units across parallel job slots and emit the GitHub Actions matrix",
		RunE:    c.Plan.Execute,
		PreRunE: syncFlags,
	}
	planCmd.Flags().StringVarP(&flags.TestSuite, "test-suite", "s", config.DefaultSuite, "Suite to plan ('all' or one suite name)")
	planCmd.Flags().StringVarP(&flags.Browser, "browser", "b", config.DefaultBrowser, "Browser to plan for ('all' or one browser name)")
	planCmd.Flags().IntVarP(&flags.MaxParallel, "max-parallel", "p", config.DefaultMaxParallel, "Global job slot budget")
	planCmd.Flags().StringVarP(&flags.Inventory, "inventory", "i", "", "Path to a YAML inventory manifest (defaults to the built-in catalog)")
	planCmd.Flags().BoolVar(&flags.UseTimings, "timings", false, "Weight units by historical durations from the timing database")
	planCmd.Flags().StringVarP(&flags.Output, "output", "o", "", "Matrix output file ('-' for stdout)")
	planCmd.Flags().BoolVar(&flags.Pretty, "pretty", false, "Indent the matrix JSON for humans")
	planCmd.Flags().StringVar(&flags.Preset, "preset", "", "Apply a named preset (smoke, cross-browser)")
	rootCmd.AddCommand(planCmd)

	// Aggregate command
	aggregateCmd := &cobra.Command{
		Use:     "aggregate",
		Short:   "Consolidate job artifacts into a run report",
		Long:    "Fold the per-job result artifacts against the planned matrix and write the consolidated report",
		RunE:    c.Aggregate.Execute,
		PreRunE: syncFlags,
	}
	aggregateCmd.Flags().StringVarP(&flags.Matrix, "matrix", "m", "", "Matrix file the run was launched from")
	aggregateCmd.Flags().StringVarP(&flags.ArtifactsDir, "artifacts-dir", "a", "", "Directory holding the result-*.json artifacts")
	aggregateCmd.Flags().StringVarP(&flags.Report, "report", "r", "", "Consolidated report output file")
	aggregateCmd.Flags().Float64VarP(&flags.Threshold, "threshold", "t", config.DefaultHealthThreshold, "Minimum success rate for a healthy run")
	aggregateCmd.Flags().BoolVar(&flags.Final, "final", false, "Treat absent artifacts as missing instead of still in flight")
	rootCmd.AddCommand(aggregateCmd)

	// Collect command
	collectCmd := &cobra.Command{
		Use:     "collect",
		Short:   "Wait for job artifacts and aggregate them",
		Long:    "Poll the artifacts directory until every planned job reported or the deadline passes, then write the consolidated report",
		RunE:    c.Collect.Execute,
		PreRunE: syncFlags,
	}
	collectCmd.Flags().StringVarP(&flags.Matrix, "matrix", "m", "", "Matrix file the run was launched from")
	collectCmd.Flags().StringVarP(&flags.ArtifactsDir, "artifacts-dir", "a", "", "Directory holding the result-*.json artifacts")
	collectCmd.Flags().StringVarP(&flags.Report, "report", "r", "", "Consolidated report output file")
	collectCmd.Flags().Float64VarP(&flags.Threshold, "threshold", "t", config.DefaultHealthThreshold, "Minimum success rate for a healthy run")
	collectCmd.Flags().DurationVar(&flags.Poll, "poll", config.DefaultPollInterval, "Rescan interval while waiting for artifacts")
	collectCmd.Flags().DurationVar(&flags.Deadline, "deadline", config.DefaultCollectDeadline, "How long to wait before absent jobs count as missing")
	rootCmd.AddCommand(collectCmd)

	// List command
	listCmd := &cobra.Command{
		Use:     "list",
		Short:   "List test units from the inventory",
		Long:    "Show the test units the planner would draw from, without planning anything",
		RunE:    c.List.Execute,
		PreRunE: syncFlags,
	}
	listCmd.Flags().StringVarP(&flags.TestSuite, "test-suite", "s", config.DefaultSuite, "Suite to list ('all' or one suite name)")
	listCmd.Flags().StringVarP(&flags.Browser, "browser", "b", config.DefaultBrowser, "Only show units that can run on this browser ('all' for every unit)")
	listCmd.Flags().StringVarP(&flags.Inventory, "inventory", "i", "", "Path to a YAML inventory manifest (defaults to the built-in catalog)")
	listCmd.Flags().StringVarP(&flags.NameFilter, "filter", "f", "", "Filter units by ID pattern (supports wildcards, e.g. 'test_user*' or '*performance*')")
	listCmd.Flags().BoolVarP(&flags.Weights, "weights", "w", false, "Show the planning weight of each unit")
	rootCmd.AddCommand(listCmd)

	// Inspect command
	inspectCmd := &cobra.Command{
		Use:     "inspect",
		Short:   "Browse the last run report interactively",
		Long:    "Display the consolidated report's job outcomes in an interactive viewer",
		RunE:    c.Inspect.Execute,
		PreRunE: syncFlags,
	}
	inspectCmd.Flags().StringVarP(&flags.Report, "report", "r", "", "Consolidated report file to inspect")
	rootCmd.AddCommand(inspectCmd)

	// Timings command
	timingsCmd := &cobra.Command{
		Use:     "timings",
		Short:   "Show the recorded timing history",
		Long:    "Query the timing database and list the rolling average duration per test unit",
		RunE:    c.Timings.Execute,
		PreRunE: syncFlags,
	}
	rootCmd.AddCommand(timingsCmd)
}
