package ui

import (
	"fmt"
	"sort"

	"github.com/fatih/color"

	"tmx/internal/config"
	"tmx/internal/domain"
	"tmx/internal/timing"
)

// Formatter formats and displays output
type Formatter struct {
	config *config.Config
}

// NewFormatter creates a new Formatter
func NewFormatter(cfg *config.Config) *Formatter {
	return &Formatter{config: cfg}
}

// PrintPlanSummary displays the planned matrix as a table plus a tree
// of jobs per suite
func (f *Formatter) PrintPlanSummary(plan *domain.Plan) {
	fmt.Print("\n")
	color.Cyan("╔═══════════════════════════════════════════════════════════════╗")
	color.Cyan("║                       Test Matrix Plan                        ║")
	color.Cyan("╚═══════════════════════════════════════════════════════════════╝\n")

	fmt.Println("┌─────────────────────────────────┬─────────────────────────────┐")

	fmt.Printf("│ %-31s │ ", "Total Jobs")
	color.White("%-27d │\n", len(plan.Jobs))
	fmt.Println("├─────────────────────────────────┼─────────────────────────────┤")

	fmt.Printf("│ %-31s │ ", "Slot Budget")
	color.White("%-27d │\n", plan.MaxParallel)
	fmt.Println("├─────────────────────────────────┼─────────────────────────────┤")

	fmt.Printf("│ %-31s │ ", "Planned Units")
	color.White("%-27d │\n", plan.TotalUnits())
	fmt.Println("├─────────────────────────────────┼─────────────────────────────┤")

	fmt.Printf("│ %-31s │ ", "Estimated Wall Time")
	wallStr := fmt.Sprintf("%.1f min", plan.EstimatedWallMinutes())
	color.White("%-27s │\n", wallStr)
	fmt.Println("├─────────────────────────────────┼─────────────────────────────┤")

	fmt.Printf("│ %-31s │ ", "Excluded Units")
	if len(plan.Excluded) > 0 {
		color.Yellow("%-27d │\n", len(plan.Excluded))
	} else {
		color.White("%-27d │\n", len(plan.Excluded))
	}

	fmt.Println("└─────────────────────────────────┴─────────────────────────────┘")

	fmt.Println()
	f.printJobTree(plan)

	if len(plan.Excluded) > 0 {
		fmt.Println()
		for _, ex := range plan.Excluded {
			color.Yellow("⚠ %s skipped: %s", ex.UnitID, ex.Reason)
		}
	}

	fmt.Println()
	color.Green("✓ %d job(s) fit the %d slot budget", len(plan.Jobs), plan.MaxParallel)
}

// printJobTree groups planned jobs under their suite
func (f *Formatter) printJobTree(plan *domain.Plan) {
	var suites []string
	jobsBySuite := make(map[string][]domain.JobSpec)
	for _, job := range plan.Jobs {
		if _, seen := jobsBySuite[job.Suite]; !seen {
			suites = append(suites, job.Suite)
		}
		jobsBySuite[job.Suite] = append(jobsBySuite[job.Suite], job)
	}
	sort.Strings(suites)

	for i, suite := range suites {
		isLastSuite := i == len(suites)-1
		if isLastSuite {
			color.Cyan("└── %s", suite)
		} else {
			color.Cyan("├── %s", suite)
		}

		jobs := jobsBySuite[suite]
		for j, job := range jobs {
			isLastJob := j == len(jobs)-1

			var prefix string
			if isLastSuite {
				if isLastJob {
					prefix = "    └── "
				} else {
					prefix = "    ├── "
				}
			} else {
				if isLastJob {
					prefix = "│   └── "
				} else {
					prefix = "│   ├── "
				}
			}

			label := fmt.Sprintf("%s-%d (%d tests, %.1f min, timeout %dm)",
				job.Browser, job.Chunk, len(job.Tests), job.EstimatedMinutes, job.TimeoutMinutes)
			fmt.Printf("%s%s\n", prefix, color.YellowString(label))
		}
	}
}

// PrintReport displays the consolidated run report
func (f *Formatter) PrintReport(report *domain.Report) {
	meta := report.Meta

	fmt.Print("\n")
	color.Cyan("╔═══════════════════════════════════════════════════════════════╗")
	color.Cyan("║                   Consolidated Test Report                    ║")
	color.Cyan("╚═══════════════════════════════════════════════════════════════╝\n")

	fmt.Println("┌─────────────────────────────────┬─────────────────────────────┐")

	fmt.Printf("│ %-31s │ ", "Expected Jobs")
	color.White("%-27d │\n", meta.ExpectedJobs)
	fmt.Println("├─────────────────────────────────┼─────────────────────────────┤")

	fmt.Printf("│ %-31s │ ", "Observed Jobs")
	color.White("%-27d │\n", meta.ObservedJobs)
	fmt.Println("├─────────────────────────────────┼─────────────────────────────┤")

	fmt.Printf("│ %-31s │ ", "Test Units (observed/expected)")
	unitsStr := fmt.Sprintf("%d/%d", meta.TotalUnitsObserved, meta.TotalUnitsExpected)
	color.White("%-27s │\n", unitsStr)
	fmt.Println("├─────────────────────────────────┼─────────────────────────────┤")

	fmt.Printf("│ %-31s │ ", "Passed")
	color.Green("%-27d │\n", meta.Passed)
	fmt.Println("├─────────────────────────────────┼─────────────────────────────┤")

	fmt.Printf("│ %-31s │ ", "Failed")
	color.Red("%-27d │\n", meta.Failed)
	fmt.Println("├─────────────────────────────────┼─────────────────────────────┤")

	fmt.Printf("│ %-31s │ ", "Errored")
	color.Red("%-27d │\n", meta.Errored)
	fmt.Println("├─────────────────────────────────┼─────────────────────────────┤")

	fmt.Printf("│ %-31s │ ", "Missing Jobs")
	if len(meta.MissingJobs) > 0 {
		color.Red("%-27d │\n", len(meta.MissingJobs))
	} else {
		color.White("%-27d │\n", 0)
	}
	fmt.Println("├─────────────────────────────────┼─────────────────────────────┤")

	fmt.Printf("│ %-31s │ ", "Corrupted Artifacts")
	color.White("%-27d │\n", meta.CorruptedJobs)
	fmt.Println("├─────────────────────────────────┼─────────────────────────────┤")

	fmt.Printf("│ %-31s │ ", "Success Rate")
	rateStr := fmt.Sprintf("%.1f%%", meta.SuccessRate*100)
	color.White("%-27s │\n", rateStr)
	fmt.Println("├─────────────────────────────────┼─────────────────────────────┤")

	fmt.Printf("│ %-31s │ ", "Longest Job")
	longestStr := fmt.Sprintf("%.1fs", meta.DurationSeconds)
	color.White("%-27s │\n", longestStr)

	fmt.Println("└─────────────────────────────────┴─────────────────────────────┘")

	fmt.Println()
	switch {
	case len(meta.MissingJobs) > 0:
		color.Red("✗ %d job(s) never reported:", len(meta.MissingJobs))
		for i, key := range meta.MissingJobs {
			if i == len(meta.MissingJobs)-1 {
				color.Red("└── %s", key)
			} else {
				color.Red("├── %s", key)
			}
		}
	case meta.Failed+meta.Errored > 0:
		color.Red("✗ %d test(s) failed, %d errored across %d job(s)",
			meta.Failed, meta.Errored, meta.ObservedJobs)
	default:
		color.Green("✓ All jobs reported, all tests passed!")
	}
}

// PrintUnitList prints the selected test units, optionally with their
// planning weights
func (f *Formatter) PrintUnitList(units []domain.TestUnit, showWeights bool) {
	color.Green("Found %d test unit(s):\n", len(units))

	for i, unit := range units {
		label := fmt.Sprintf("%s/%s", unit.Suite, unit.ID)
		if showWeights {
			label += fmt.Sprintf(" (%.1f min)", unit.Weight)
		}
		if len(unit.Browsers) > 0 {
			label += fmt.Sprintf(" %v", unit.Browsers)
		}

		if i == len(units)-1 {
			color.Cyan("└── %s", label)
		} else {
			color.Cyan("├── %s", label)
		}
	}
}

// PrintTimings prints the recorded timing history
func (f *Formatter) PrintTimings(rows []timing.Row) {
	if len(rows) == 0 {
		color.Yellow("No timing history recorded yet")
		return
	}

	color.Green("Recorded timings for %d test(s):\n", len(rows))

	for i, row := range rows {
		label := fmt.Sprintf("%s/%s  avg %.1f min  (%d samples, updated %s)",
			row.Suite, row.TestID, row.AvgSeconds/60, row.Samples, row.UpdatedAt)
		if i == len(rows)-1 {
			color.Cyan("└── %s", label)
		} else {
			color.Cyan("├── %s", label)
		}
	}
}
