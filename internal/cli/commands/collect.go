package commands

import (
	"errors"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"tmx/internal/aggregate"
	"tmx/internal/artifacts"
	"tmx/internal/config"
	"tmx/internal/storage"
	"tmx/internal/ui"
)

// CollectCommand handles the collect command
type CollectCommand struct {
	config     *config.Config
	logger     zerolog.Logger
	aggregator *aggregate.Aggregator
	scanner    *artifacts.Scanner
	storage    storage.Storage
	formatter  *ui.Formatter
}

// NewCollectCommand creates a new CollectCommand
func NewCollectCommand(
	cfg *config.Config,
	logger zerolog.Logger,
	aggregator *aggregate.Aggregator,
	scanner *artifacts.Scanner,
	st storage.Storage,
	formatter *ui.Formatter,
) *CollectCommand {
	return &CollectCommand{
		config:     cfg,
		logger:     logger,
		aggregator: aggregator,
		scanner:    scanner,
		storage:    st,
		formatter:  formatter,
	}
}

// Execute runs the command
func (cc *CollectCommand) Execute(cmd *cobra.Command, args []string) error {
	plan, err := readPlan(cc.config)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	deadline := time.Now().Add(cc.config.CollectDeadline)
	artifactsDir := cc.config.GetArtifactsPath()

	cc.logger.Info().
		Int("expected_jobs", len(plan.Jobs)).
		Dur("deadline", cc.config.CollectDeadline).
		Str("dir", artifactsDir).
		Msg("waiting for job artifacts")

	bar := ui.NewProgressBar(len(plan.Jobs))

	for {
		results, corrupt, err := cc.scanner.Scan(artifactsDir)
		if err != nil {
			return err
		}
		bar.Update(len(results) + len(corrupt))

		final := !time.Now().Before(deadline)
		report, err := cc.aggregator.Aggregate(plan, results, corrupt, final)
		if err == nil {
			bar.Finish()
			logUnexpected(cc.logger, plan, results)
			return finishReport(cc.config, cc.storage, cc.formatter, report)
		}

		var incomplete *aggregate.IncompleteError
		if !errors.As(err, &incomplete) {
			return err
		}
		cc.logger.Debug().
			Int("outstanding", len(incomplete.Outstanding)).
			Msg("artifacts still in flight")

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(cc.config.PollInterval):
		}
	}
}
