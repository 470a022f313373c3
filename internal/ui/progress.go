package ui

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/schollz/progressbar/v3"
)

// ProgressBar tracks artifact collection across the expected jobs
type ProgressBar struct {
	bar      *progressbar.ProgressBar
	expected int
}

// NewProgressBar creates a progress bar sized to the expected job count
func NewProgressBar(expected int) *ProgressBar {
	bar := progressbar.NewOptions(expected,
		progressbar.OptionSetDescription(
			color.CyanString("Collecting artifacts: ")+
				color.GreenString("[arrived: 0")+
				" | "+
				color.YellowString("outstanding: %d]", expected),
		),
		progressbar.OptionSetWidth(50),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        color.CyanString("█"),
			SaucerHead:    color.CyanString("█"),
			SaucerPadding: "░",
			BarStart:      "│",
			BarEnd:        "│",
		}),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionOnCompletion(func() {
			fmt.Fprint(os.Stderr, "\n")
		}),
		progressbar.OptionSetRenderBlankState(true),
	)

	return &ProgressBar{bar: bar, expected: expected}
}

// Update sets the bar to the number of artifacts that have arrived
func (p *ProgressBar) Update(arrived int) {
	p.bar.Set(arrived)
	p.bar.Describe(
		color.CyanString("Collecting artifacts: ") +
			color.GreenString("[arrived: %d", arrived) +
			" | " +
			color.YellowString("outstanding: %d]", p.expected-arrived),
	)
}

// Finish completes the progress bar
func (p *ProgressBar) Finish() {
	p.bar.Finish()
}
