package matrix

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"tmx/internal/domain"
)

// StdoutPath writes the matrix to stdout instead of a file
const StdoutPath = "-"

// Matrix is the workflow-consumable expansion of a plan. The include
// list feeds the CI matrix strategy directly.
type Matrix struct {
	Include            []domain.JobSpec   `json:"include"`
	TotalJobs          int                `json:"total_jobs"`
	EstimatedTotalTime float64            `json:"estimated_total_time"`
	MaxParallel        int                `json:"max_parallel"`
	Excluded           []domain.Exclusion `json:"excluded,omitempty"`
	GeneratedAt        string             `json:"generated_at,omitempty"`
}

// FromPlan builds the matrix document for a plan
func FromPlan(plan *domain.Plan) *Matrix {
	return &Matrix{
		Include:            plan.Jobs,
		TotalJobs:          len(plan.Jobs),
		EstimatedTotalTime: plan.EstimatedWallMinutes(),
		MaxParallel:        plan.MaxParallel,
		Excluded:           plan.Excluded,
	}
}

// Write stamps the matrix and writes it to path, or to stdout when
// path is StdoutPath. Pretty output is indented for humans; the
// compact form is what the workflow fromJSON step consumes.
func Write(m *Matrix, path string, pretty bool) error {
	m.GeneratedAt = time.Now().Format(time.RFC3339)

	var data []byte
	var err error
	if pretty {
		data, err = json.MarshalIndent(m, "", "  ")
	} else {
		data, err = json.Marshal(m)
	}
	if err != nil {
		return fmt.Errorf("marshal matrix: %w", err)
	}

	if path == StdoutPath {
		_, err := os.Stdout.Write(append(data, '\n'))
		return err
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create matrix dir: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write matrix: %w", err)
	}
	return nil
}

// Read loads a matrix file back into the plan it was generated from.
// The aggregator uses this to learn which jobs to expect.
func Read(path string) (*domain.Plan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read matrix file: %w", err)
	}

	var m Matrix
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse matrix: %w", err)
	}
	if len(m.Include) == 0 {
		return nil, fmt.Errorf("matrix %s contains no jobs", path)
	}
	for _, job := range m.Include {
		if job.Suite == "" || job.Browser == "" || job.Chunk < 0 {
			return nil, fmt.Errorf("matrix %s has malformed job entry %+v", path, job)
		}
	}

	return &domain.Plan{
		Jobs:        m.Include,
		MaxParallel: m.MaxParallel,
		Excluded:    m.Excluded,
	}, nil
}
