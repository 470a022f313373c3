package ui

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"tmx/internal/config"
	"tmx/internal/domain"
)

// JobInspector displays per-job outcomes in an interactive TUI
type JobInspector struct {
	config *config.Config
}

// NewJobInspector creates a new JobInspector
func NewJobInspector(cfg *config.Config) *JobInspector {
	return &JobInspector{config: cfg}
}

// View displays every job outcome of a run. Jobs can be marked as
// acknowledged during flake triage; the marks persist in the report
// file.
func (ji *JobInspector) View(report *domain.Report) error {
	if len(report.Jobs) == 0 {
		color.Green("✓ Report contains no jobs to inspect")
		return nil
	}

	// Track acknowledged jobs (by index) - loaded from the report
	acknowledged := make(map[int]bool)
	for i, job := range report.Jobs {
		if job.Acknowledged {
			acknowledged[i] = true
		}
	}

	// Persist acknowledged marks back into the report file without
	// touching the aggregation metadata
	saveAcknowledged := func() error {
		for i := range report.Jobs {
			report.Jobs[i].Acknowledged = acknowledged[i]
		}

		jsonData, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal JSON: %w", err)
		}
		return os.WriteFile(ji.config.GetReportPath(), jsonData, 0644)
	}

	app := tview.NewApplication()

	list := tview.NewList().
		ShowSecondaryText(false).
		SetHighlightFullLine(true)

	getListItemText := func(index int) string {
		job := report.Jobs[index]
		marker := statusMarker(job)
		if acknowledged[index] {
			return fmt.Sprintf("[gray]✓ [yellow]%d.[gray] %s %s[white]", index+1, job.Key(), marker)
		}
		return fmt.Sprintf("[yellow]%d.[white] %s %s", index+1, job.Key(), marker)
	}

	updateListItem := func(index int) {
		if index < 0 || index >= list.GetItemCount() {
			return
		}
		list.SetItemText(index, getListItemText(index), "")
	}

	for i := range report.Jobs {
		list.AddItem(getListItemText(i), "", 0, nil)
	}

	list.SetMainTextColor(tview.Styles.PrimaryTextColor).
		SetSelectedTextColor(tcell.ColorWhite).
		SetSelectedBackgroundColor(tcell.ColorDarkCyan).
		SetSecondaryTextColor(tview.Styles.SecondaryTextColor)

	statsView := tview.NewTextView().
		SetDynamicColors(true).
		SetWrap(false).
		SetWordWrap(false)

	detailsView := tview.NewTextView().
		SetDynamicColors(true).
		SetWrap(true).
		SetWordWrap(true)

	detailsContainer := tview.NewFlex().
		SetDirection(tview.FlexColumn).
		AddItem(detailsView, 0, 1, false).
		AddItem(tview.NewBox(), 2, 0, false)

	rightSide := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(statsView, 3, 0, false).
		AddItem(detailsContainer, 0, 1, false)

	flex := tview.NewFlex().
		SetDirection(tview.FlexColumn).
		AddItem(list, 0, 1, true).
		AddItem(rightSide, 0, 2, false)

	countUnacknowledged := func() int {
		count := 0
		for i := range report.Jobs {
			if !acknowledged[i] {
				count++
			}
		}
		return count
	}

	headerView := tview.NewTextView().
		SetTextAlign(tview.AlignCenter).
		SetDynamicColors(true)

	updateHeader := func() {
		headerText := fmt.Sprintf(" Job Outcomes (%d total, %d unacknowledged) | Use ↑↓ to navigate, [yellow]A[white] to acknowledge, → to view details, ← to go back, Ctrl+C to exit ",
			len(report.Jobs), countUnacknowledged())
		headerView.SetText(headerText)
	}
	updateHeader()

	updateDetails := func() {
		index := list.GetCurrentItem()
		if index >= 0 && index < len(report.Jobs) {
			job := report.Jobs[index]
			statsView.SetText(ji.formatJobStats(job))
			detailsView.SetText(ji.formatJobDetails(job))
		}
	}

	list.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyUp, tcell.KeyDown:
			return event
		case tcell.KeyEnter, tcell.KeyRight:
			app.SetFocus(detailsView)
			return nil
		case tcell.KeyCtrlC:
			app.Stop()
			return nil
		case tcell.KeyRune:
			if event.Rune() == 'a' || event.Rune() == 'A' {
				index := list.GetCurrentItem()
				if index >= 0 && index < len(report.Jobs) {
					acknowledged[index] = !acknowledged[index]
					updateListItem(index)
					updateHeader()
					updateDetails()
					if err := saveAcknowledged(); err != nil {
						_ = err
					}
				}
				return nil
			}
		}
		return event
	})

	detailsView.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyLeft, tcell.KeyEsc:
			app.SetFocus(list)
			return nil
		case tcell.KeyCtrlC:
			app.Stop()
			return nil
		}
		return event
	})

	list.SetChangedFunc(func(index int, mainText string, secondaryText string, shortcut rune) {
		updateDetails()
	})
	updateDetails()

	mainLayout := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(headerView, 1, 0, false).
		AddItem(
			tview.NewBox().SetDrawFunc(func(screen tcell.Screen, x, y, width, height int) (int, int, int, int) {
				return x, y, width, height
			}),
			1, 0, false,
		).
		AddItem(flex, 0, 1, true)

	if err := app.SetRoot(mainLayout, true).SetFocus(list).Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}

	return nil
}

// statusMarker returns a colored glyph for a job's effective state
func statusMarker(job domain.JobOutcome) string {
	switch {
	case job.Status == domain.StatusMissing:
		return "[red]?[white]"
	case job.Status == domain.StatusFailed || job.Status == domain.StatusTimedOut:
		return "[red]✗[white]"
	case job.Failed+job.Errors > 0:
		return "[yellow]✗[white]"
	default:
		return "[green]✓[white]"
	}
}

// formatJobStats formats the stats header for a job outcome
func (ji *JobInspector) formatJobStats(job domain.JobOutcome) string {
	var builder strings.Builder

	statsLine := fmt.Sprintf("[cyan]job:[white] [yellow]%s[white]  [cyan]suite:[white] [yellow]%s[white]  [cyan]browser:[white] [yellow]%s[white]",
		job.Key(), job.Suite, job.Browser)
	builder.WriteString(statsLine)
	builder.WriteString("\n")

	return builder.String()
}

// formatJobDetails formats a job outcome for display using tview color
// tags ([red], [cyan], etc.)
func (ji *JobInspector) formatJobDetails(job domain.JobOutcome) string {
	var builder strings.Builder
	w := tabwriter.NewWriter(&builder, 0, 0, 2, ' ', 0)

	switch job.Status {
	case domain.StatusMissing:
		fmt.Fprintf(w, "[red]? Status: %s[white]\n\n", job.Status)
		fmt.Fprintf(w, "[yellow]No usable artifact arrived for this job.[white]\n")
		fmt.Fprintf(w, "Expected %d test unit(s) that were never accounted for.\n", job.ExpectedUnits)
	case domain.StatusTimedOut:
		fmt.Fprintf(w, "[red]✗ Status: %s[white]\n\n", job.Status)
		fmt.Fprintf(w, "The job was killed at its timeout; counts below are partial.\n\n")
		ji.writeCounts(w, job)
	case domain.StatusFailed:
		fmt.Fprintf(w, "[red]✗ Status: %s[white]\n\n", job.Status)
		fmt.Fprintf(w, "The job's infrastructure broke before the run finished.\n\n")
		ji.writeCounts(w, job)
	default:
		fmt.Fprintf(w, "[green]✓ Status: %s[white]\n\n", job.Status)
		ji.writeCounts(w, job)
	}

	w.Flush()
	return builder.String()
}

func (ji *JobInspector) writeCounts(w *tabwriter.Writer, job domain.JobOutcome) {
	fmt.Fprintf(w, "[cyan]Passed:\t[green]%d[white]\n", job.Passed)
	fmt.Fprintf(w, "[cyan]Failed:\t[red]%d[white]\n", job.Failed)
	fmt.Fprintf(w, "[cyan]Errors:\t[red]%d[white]\n", job.Errors)
	fmt.Fprintf(w, "[cyan]Expected units:\t[white]%d\n", job.ExpectedUnits)
	fmt.Fprintf(w, "[cyan]Duration:\t[white]%.1fs\n", job.DurationSeconds)
}
