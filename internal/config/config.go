package config

import (
	"path/filepath"
	"time"
)

// Config holds all configuration for the application
type Config struct {
	// Project settings
	ProjectPath string

	// Output settings
	MatrixFile   string
	ReportDir    string
	ReportFile   string
	ArtifactsDir string

	// Planning settings
	MaxParallel     int
	HealthThreshold float64

	// Collection settings
	PollInterval    time.Duration
	CollectDeadline time.Duration

	// Command flags
	Flags Flags
}

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

// New creates a new Config with defaults
func New() *Config {
	return &Config{
		ProjectPath:     DefaultProjectPath,
		MatrixFile:      DefaultMatrixFile,
		ReportDir:       DefaultReportDir,
		ReportFile:      DefaultReportFile,
		ArtifactsDir:    DefaultArtifactsDir,
		MaxParallel:     DefaultMaxParallel,
		HealthThreshold: DefaultHealthThreshold,
		PollInterval:    DefaultPollInterval,
		CollectDeadline: DefaultCollectDeadline,
		Flags: Flags{
			TestSuite:   DefaultSuite,
			Browser:     DefaultBrowser,
			MaxParallel: DefaultMaxParallel,
			Threshold:   DefaultHealthThreshold,
		},
	}
}

// Load creates a config and applies flags
func Load(flags Flags) *Config {
	cfg := New()
	cfg.Flags = flags

	// Apply flag overrides
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

	return cfg
}

// GetMatrixPath returns the path the matrix is written to and read
// from, using the flag override if provided. Resolves to an absolute
// path so plan and aggregate always share the same file regardless of
// cwd.
func (c *Config) GetMatrixPath() string {
	path := c.Flags.Matrix
	if path == "" {
		path = filepath.Join(c.ProjectPath, c.MatrixFile)
	}
	return c.absolute(path)
}

// GetArtifactsPath returns the directory scanned for job artifacts
func (c *Config) GetArtifactsPath() string {
	path := c.Flags.ArtifactsDir
	if path == "" {
		path = filepath.Join(c.ProjectPath, c.ReportDir, c.ArtifactsDir)
	}
	return c.absolute(path)
}

// GetReportPath returns the full path to the consolidated report file
// (shared by aggregate, collect and inspect).
func (c *Config) GetReportPath() string {
	path := c.Flags.Report
	if path == "" {
		path = filepath.Join(c.ProjectPath, c.ReportDir, c.ReportFile)
	}
	return c.absolute(path)
}

func (c *Config) absolute(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return path
}
