package storage

import (
	"path/filepath"
	"reflect"
	"testing"

	"tmx/internal/config"
	"tmx/internal/domain"
)

func TestSaveLoadReport_RoundTrip(t *testing.T) {
	cfg := config.New()
	cfg.Flags.Report = filepath.Join(t.TempDir(), "reports", "aggregate-report.json")

	report := &domain.Report{
		Meta: domain.ReportMeta{
			ExpectedJobs:       2,
			ObservedJobs:       1,
			TotalUnitsExpected: 5,
			TotalUnitsObserved: 3,
			Passed:             2,
			Failed:             1,
			SuccessRate:        2.0 / 3.0,
			MissingJobs:        []string{"backend-chrome-0"},
			DurationSeconds:    142.5,
		},
		Jobs: []domain.JobOutcome{
			{Suite: "frontend", Browser: "chrome", Chunk: 0, Status: domain.StatusCompleted,
				Passed: 2, Failed: 1, DurationSeconds: 142.5, ExpectedUnits: 3},
			{Suite: "backend", Browser: "chrome", Chunk: 0, Status: domain.StatusMissing,
				ExpectedUnits: 2},
		},
	}

	store := NewJSONStorage(cfg)
	if err := store.SaveReport(report); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if report.Meta.GeneratedAt == "" {
		t.Error("save should stamp GeneratedAt")
	}

	loaded, err := store.LoadReport()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if !reflect.DeepEqual(loaded, report) {
		t.Errorf("round trip changed the report:\ngot  %+v\nwant %+v", loaded, report)
	}
}

func TestLoadReport_MissingFile(t *testing.T) {
	cfg := config.New()
	cfg.Flags.Report = filepath.Join(t.TempDir(), "missing.json")

	if _, err := NewJSONStorage(cfg).LoadReport(); err == nil {
		t.Error("expected an error for a missing report file")
	}
}
