package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"tmx/internal/domain"
)

// SaveReport stamps the report and writes it to the configured JSON
// report file.
func (s *JSONStorage) SaveReport(report *domain.Report) error {
	report.Meta.GeneratedAt = time.Now().Format(time.RFC3339)

	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}

	path := s.cfg.GetReportPath()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create report dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

// LoadReport reads the last saved report from the configured JSON
// report file.
func (s *JSONStorage) LoadReport() (*domain.Report, error) {
	path := s.cfg.GetReportPath()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read report file: %w", err)
	}
	var report domain.Report
	if err := json.Unmarshal(data, &report); err != nil {
		return nil, fmt.Errorf("parse report: %w", err)
	}
	return &report, nil
}
