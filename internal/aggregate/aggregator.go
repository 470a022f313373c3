package aggregate

import (
	"fmt"

	"tmx/internal/domain"
)

// IncompleteError reports expected jobs whose artifacts have not
// arrived while the collection deadline is still open. The caller
// should scan again later.
type IncompleteError struct {
	Outstanding []domain.JobKey
}

func (e *IncompleteError) Error() string {
	return fmt.Sprintf("aggregation incomplete: %d job artifact(s) still outstanding", len(e.Outstanding))
}

// Aggregator folds job artifacts into a consolidated run report
type Aggregator struct{}

// New creates a new Aggregator
func New() *Aggregator {
	return &Aggregator{}
}

// Aggregate folds the scanned results against every job the plan
// expects. It is a pure fold: the same inputs always produce the same
// report, and feeding it a superset of results never lowers any
// observed totals.
//
// Jobs without a result count as missing once deadlineReached is set;
// before that they make the run incomplete and an IncompleteError is
// returned instead of a report. Corrupt artifacts count as missing
// too, tallied separately in Meta.CorruptedJobs.
func (a *Aggregator) Aggregate(plan *domain.Plan, results map[domain.JobKey]domain.JobResult, corrupt []domain.JobKey, deadlineReached bool) (*domain.Report, error) {
	corruptSet := make(map[domain.JobKey]bool, len(corrupt))
	for _, key := range corrupt {
		corruptSet[key] = true
	}

	report := &domain.Report{}
	report.Meta.ExpectedJobs = len(plan.Jobs)
	report.Meta.TotalUnitsExpected = plan.TotalUnits()
	report.Meta.MissingJobs = []string{}

	var outstanding []domain.JobKey
	for _, job := range plan.Jobs {
		key := job.Key()
		outcome := domain.JobOutcome{
			Suite:         job.Suite,
			Browser:       job.Browser,
			Chunk:         job.Chunk,
			ExpectedUnits: len(job.Tests),
		}

		switch result, observed := results[key]; {
		case observed:
			outcome.Status = result.Status
			outcome.Passed = result.Passed
			outcome.Failed = result.Failed
			outcome.Errors = result.Errors
			outcome.DurationSeconds = result.DurationSeconds

			report.Meta.ObservedJobs++
			report.Meta.Passed += result.Passed
			report.Meta.Failed += result.Failed
			report.Meta.Errored += result.Errors
			if result.DurationSeconds > report.Meta.DurationSeconds {
				report.Meta.DurationSeconds = result.DurationSeconds
			}

		case corruptSet[key]:
			outcome.Status = domain.StatusMissing
			report.Meta.MissingJobs = append(report.Meta.MissingJobs, key.String())
			report.Meta.CorruptedJobs++

		case deadlineReached:
			outcome.Status = domain.StatusMissing
			report.Meta.MissingJobs = append(report.Meta.MissingJobs, key.String())

		default:
			outstanding = append(outstanding, key)
		}

		report.Jobs = append(report.Jobs, outcome)
	}

	if len(outstanding) > 0 {
		return nil, &IncompleteError{Outstanding: outstanding}
	}

	observedUnits := report.Meta.Passed + report.Meta.Failed + report.Meta.Errored
	report.Meta.TotalUnitsObserved = observedUnits
	if observedUnits > 0 {
		report.Meta.SuccessRate = float64(report.Meta.Passed) / float64(observedUnits)
	}
	return report, nil
}
