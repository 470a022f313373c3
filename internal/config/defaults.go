package config

import "time"

const (
	// DefaultProjectPath is the default project path
	DefaultProjectPath = "."
	// DefaultMatrixFile is the default matrix output file name
	DefaultMatrixFile = "test_matrix.json"
	// DefaultReportDir is the default directory for run outputs
	DefaultReportDir = "reports"
	// DefaultReportFile is the default consolidated report file name
	DefaultReportFile = "aggregate-report.json"
	// DefaultArtifactsDir is the default job artifact directory under
	// the report dir
	DefaultArtifactsDir = "artifacts"
	// DefaultMaxParallel is the default global job slot budget
	DefaultMaxParallel = 20
	// DefaultSuite selects every suite
	DefaultSuite = "all"
	// DefaultBrowser is the browser used when the requested one is
	// unknown
	DefaultBrowser = "chrome"
	// DefaultHealthThreshold is the minimum passing success rate
	DefaultHealthThreshold = 0.95
	// DefaultPollInterval is how often collect rescans for artifacts
	DefaultPollInterval = 10 * time.Second
	// DefaultCollectDeadline bounds how long collect waits for stragglers
	DefaultCollectDeadline = 30 * time.Minute
)
