package artifacts

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"tmx/internal/domain"
)

const (
	filePrefix = "result-"
	fileSuffix = ".json"
)

// Artifact is the JSON record each CI job uploads for its shard
type Artifact struct {
	Suite           string  `json:"suite"`
	Browser         string  `json:"browser"`
	Chunk           int     `json:"chunk"`
	Status          string  `json:"status"`
	Passed          int     `json:"passed"`
	Failed          int     `json:"failed"`
	Errors          int     `json:"errors"`
	DurationSeconds float64 `json:"duration_seconds"`
	Runner          string  `json:"runner,omitempty"`
	FinishedAt      string  `json:"finished_at,omitempty"`
}

// Key returns the job identity the artifact claims to belong to
func (a *Artifact) Key() domain.JobKey {
	return domain.JobKey{Suite: a.Suite, Browser: a.Browser, Chunk: a.Chunk}
}

// Filename returns the canonical artifact name for a job
func Filename(key domain.JobKey) string {
	return filePrefix + key.String() + fileSuffix
}

// keyFromFilename recovers the job key encoded in an artifact name
func keyFromFilename(name string) (domain.JobKey, error) {
	if !strings.HasPrefix(name, filePrefix) || !strings.HasSuffix(name, fileSuffix) {
		return domain.JobKey{}, fmt.Errorf("not an artifact file name: %s", name)
	}
	encoded := strings.TrimSuffix(strings.TrimPrefix(name, filePrefix), fileSuffix)
	return domain.ParseJobKey(encoded)
}

// Write stores an artifact under its canonical name in dir. Local test
// harnesses use this to emulate what the CI upload step produces.
func Write(dir string, a *Artifact) error {
	data, err := json.MarshalIndent(a, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal artifact: %w", err)
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create artifacts dir: %w", err)
	}
	path := filepath.Join(dir, Filename(a.Key()))
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write artifact: %w", err)
	}
	return nil
}
