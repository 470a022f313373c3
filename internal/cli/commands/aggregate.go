package commands

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"tmx/internal/aggregate"
	"tmx/internal/artifacts"
	"tmx/internal/config"
	"tmx/internal/domain"
	"tmx/internal/matrix"
	"tmx/internal/storage"
	"tmx/internal/ui"
)

// AggregateCommand handles the aggregate command
type AggregateCommand struct {
	config     *config.Config
	logger     zerolog.Logger
	aggregator *aggregate.Aggregator
	scanner    *artifacts.Scanner
	storage    storage.Storage
	formatter  *ui.Formatter
}

// NewAggregateCommand creates a new AggregateCommand
func NewAggregateCommand(
	cfg *config.Config,
	logger zerolog.Logger,
	aggregator *aggregate.Aggregator,
	scanner *artifacts.Scanner,
	st storage.Storage,
	formatter *ui.Formatter,
) *AggregateCommand {
	return &AggregateCommand{
		config:     cfg,
		logger:     logger,
		aggregator: aggregator,
		scanner:    scanner,
		storage:    st,
		formatter:  formatter,
	}
}

// Execute runs the command
func (ac *AggregateCommand) Execute(cmd *cobra.Command, args []string) error {
	plan, err := readPlan(ac.config)
	if err != nil {
		return err
	}

	results, corrupt, err := ac.scanner.Scan(ac.config.GetArtifactsPath())
	if err != nil {
		return err
	}
	logUnexpected(ac.logger, plan, results)

	report, err := ac.aggregator.Aggregate(plan, results, corrupt, ac.config.Flags.Final)
	if err != nil {
		var incomplete *aggregate.IncompleteError
		if errors.As(err, &incomplete) {
			return fmt.Errorf("%d of %d job(s) have not reported yet (%s); rerun with --final to count them as missing",
				len(incomplete.Outstanding), len(plan.Jobs), keyList(incomplete.Outstanding))
		}
		return err
	}

	return finishReport(ac.config, ac.storage, ac.formatter, report)
}

// readPlan loads the matrix the run was launched from
func readPlan(cfg *config.Config) (*domain.Plan, error) {
	plan, err := matrix.Read(cfg.GetMatrixPath())
	if err != nil {
		return nil, fmt.Errorf("cannot determine expected jobs: %w", err)
	}
	return plan, nil
}

// logUnexpected warns about artifacts that match no planned job; they
// are ignored rather than counted
func logUnexpected(logger zerolog.Logger, plan *domain.Plan, results map[domain.JobKey]domain.JobResult) {
	expected := make(map[domain.JobKey]bool, len(plan.Jobs))
	for _, key := range plan.ExpectedKeys() {
		expected[key] = true
	}
	for key := range results {
		if !expected[key] {
			logger.Warn().Str("job", key.String()).Msg("artifact does not match any planned job, ignoring")
		}
	}
}

// finishReport persists, prints and health-checks a completed report
func finishReport(cfg *config.Config, st storage.Storage, formatter *ui.Formatter, report *domain.Report) error {
	if err := st.SaveReport(report); err != nil {
		return err
	}
	formatter.PrintReport(report)

	if healthy, reason := aggregate.Healthy(report, cfg.HealthThreshold); !healthy {
		return errors.New(reason)
	}
	return nil
}

func keyList(keys []domain.JobKey) string {
	names := make([]string, 0, len(keys))
	for _, key := range keys {
		names = append(names, key.String())
	}
	return strings.Join(names, ", ")
}
