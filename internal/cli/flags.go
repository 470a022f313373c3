package cli

import (
	"time"

	"tmx/internal/config"
)

// Flags holds command-line flags
type Flags struct {
	TestSuite    string
	Browser      string
	MaxParallel  int
	Inventory    string
	UseTimings   bool
	Output       string
	Pretty       bool
	Preset       string
	Matrix       string
	ArtifactsDir string
	Report       string
	Threshold    float64
	Final        bool
	Poll         time.Duration
	Deadline     time.Duration
	NameFilter   string
	Weights      bool
}

// ToConfigFlags converts CLI flags to config flags
func (f *Flags) ToConfigFlags() config.Flags {
	return config.Flags{
		TestSuite:    f.TestSuite,
		Browser:      f.Browser,
		MaxParallel:  f.MaxParallel,
		Inventory:    f.Inventory,
		UseTimings:   f.UseTimings,
		Output:       f.Output,
		Pretty:       f.Pretty,
		Preset:       f.Preset,
		Matrix:       f.Matrix,
		ArtifactsDir: f.ArtifactsDir,
		Report:       f.Report,
		Threshold:    f.Threshold,
		Final:        f.Final,
		Poll:         f.Poll,
		Deadline:     f.Deadline,
		NameFilter:   f.NameFilter,
		Weights:      f.Weights,
	}
}
