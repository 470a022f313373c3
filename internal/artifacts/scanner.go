package artifacts

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/rs/zerolog"

	"tmx/internal/domain"
)

// Scanner reads per-job result artifacts from a directory
type Scanner struct {
	logger zerolog.Logger
}

// NewScanner creates a new Scanner
func NewScanner(logger zerolog.Logger) *Scanner {
	return &Scanner{logger: logger}
}

// Scan parses every artifact in dir. It returns the usable results
// keyed by job plus the keys of artifacts that were present but
// unusable, sorted for determinism. A missing directory just means no
// artifacts have arrived yet and is not an error.
func (s *Scanner) Scan(dir string) (map[domain.JobKey]domain.JobResult, []domain.JobKey, error) {
	entries, err := os.ReadDir(dir)
	if errors.Is(err, fs.ErrNotExist) {
		s.logger.Debug().Str("dir", dir).Msg("artifacts directory does not exist yet")
		return map[domain.JobKey]domain.JobResult{}, nil, nil
	}
	if err != nil {
		return nil, nil, err
	}

	results := make(map[domain.JobKey]domain.JobResult)
	var corrupt []domain.JobKey

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		key, err := keyFromFilename(name)
		if err != nil {
			s.logger.Debug().Str("file", name).Msg("skipping non-artifact file")
			continue
		}

		result, err := s.parse(filepath.Join(dir, name), key)
		if err != nil {
			s.logger.Warn().Str("file", name).Err(err).Msg("unusable artifact")
			corrupt = append(corrupt, key)
			continue
		}
		results[key] = result
	}

	sort.Slice(corrupt, func(i, j int) bool {
		return corrupt[i].String() < corrupt[j].String()
	})
	return results, corrupt, nil
}

// parse reads one artifact and checks it is internally consistent
func (s *Scanner) parse(path string, key domain.JobKey) (domain.JobResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return domain.JobResult{}, err
	}

	var a Artifact
	if err := json.Unmarshal(data, &a); err != nil {
		return domain.JobResult{}, err
	}

	status, ok := domain.ParseJobStatus(a.Status)
	if !ok {
		return domain.JobResult{}, errors.New("unknown status " + a.Status)
	}
	if a.Key() != key {
		return domain.JobResult{}, errors.New("artifact body claims job " + a.Key().String())
	}
	if a.Passed < 0 || a.Failed < 0 || a.Errors < 0 || a.DurationSeconds < 0 {
		return domain.JobResult{}, errors.New("negative counts")
	}

	return domain.JobResult{
		Key:             key,
		Status:          status,
		Passed:          a.Passed,
		Failed:          a.Failed,
		Errors:          a.Errors,
		DurationSeconds: a.DurationSeconds,
	}, nil
}
