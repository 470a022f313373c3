package config

import (
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestConfig_Paths(t *testing.T) {
	tests := []struct {
		name     string
		config   *Config
		get      func(*Config) string
		expected string
	}{
		{
			name: "matrix flag override",
			config: &Config{
				ProjectPath: "/project",
				MatrixFile:  DefaultMatrixFile,
				Flags:       Flags{Matrix: "/ci/out/matrix.json"},
			},
			get:      (*Config).GetMatrixPath,
			expected: "/ci/out/matrix.json",
		},
		{
			name: "default report path under project",
			config: &Config{
				ProjectPath: "/project",
				ReportDir:   DefaultReportDir,
				ReportFile:  DefaultReportFile,
			},
			get:      (*Config).GetReportPath,
			expected: "/project/reports/aggregate-report.json",
		},
		{
			name: "default artifacts path under report dir",
			config: &Config{
				ProjectPath:  "/project",
				ReportDir:    DefaultReportDir,
				ArtifactsDir: DefaultArtifactsDir,
			},
			get:      (*Config).GetArtifactsPath,
			expected: "/project/reports/artifacts",
		},
		{
			name: "report flag override",
			config: &Config{
				ProjectPath: "/project",
				ReportDir:   DefaultReportDir,
				ReportFile:  DefaultReportFile,
				Flags:       Flags{Report: "/tmp/report.json"},
			},
			get:      (*Config).GetReportPath,
			expected: "/tmp/report.json",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.get(tt.config)
			if result != tt.expected {
				t.Errorf("expected %s, got %s", tt.expected, result)
			}
		})
	}
}

func TestConfig_RelativePathsResolveAbsolute(t *testing.T) {
	cfg := New()

	path := cfg.GetMatrixPath()
	if !filepath.IsAbs(path) {
		t.Errorf("expected absolute path, got %s", path)
	}
	if !strings.HasSuffix(path, DefaultMatrixFile) {
		t.Errorf("expected path ending in %s, got %s", DefaultMatrixFile, path)
	}
}

func TestNew(t *testing.T) {
	cfg := New()

	if cfg.ProjectPath != DefaultProjectPath {
		t.Errorf("expected ProjectPath %s, got %s", DefaultProjectPath, cfg.ProjectPath)
	}

	if cfg.MaxParallel != DefaultMaxParallel {
		t.Errorf("expected MaxParallel %d, got %d", DefaultMaxParallel, cfg.MaxParallel)
	}

	if cfg.HealthThreshold != DefaultHealthThreshold {
		t.Errorf("expected HealthThreshold %v, got %v", DefaultHealthThreshold, cfg.HealthThreshold)
	}

	if cfg.CollectDeadline != DefaultCollectDeadline {
		t.Errorf("expected CollectDeadline %v, got %v", DefaultCollectDeadline, cfg.CollectDeadline)
	}
}

func TestLoad_FlagOverrides(t *testing.T) {
	cfg := Load(Flags{
		MaxParallel: 8,
		Threshold:   0.8,
		Poll:        5 * time.Second,
		Deadline:    10 * time.Minute,
	})

	if cfg.MaxParallel != 8 {
		t.Errorf("expected MaxParallel 8, got %d", cfg.MaxParallel)
	}
	if cfg.HealthThreshold != 0.8 {
		t.Errorf("expected HealthThreshold 0.8, got %v", cfg.HealthThreshold)
	}
	if cfg.PollInterval != 5*time.Second {
		t.Errorf("expected PollInterval 5s, got %v", cfg.PollInterval)
	}
	if cfg.CollectDeadline != 10*time.Minute {
		t.Errorf("expected CollectDeadline 10m, got %v", cfg.CollectDeadline)
	}

	zero := Load(Flags{})
	if zero.MaxParallel != DefaultMaxParallel {
		t.Errorf("zero flags should keep default MaxParallel, got %d", zero.MaxParallel)
	}
}
