package storage

import (
	"tmx/internal/config"
	"tmx/internal/domain"
)

// Storage persists and loads consolidated run reports (e.g. for the
// inspect viewer).
type Storage interface {
	SaveReport(report *domain.Report) error
	LoadReport() (*domain.Report, error)
}

// JSONStorage stores the report in a JSON file under the configured
// report path.
type JSONStorage struct {
	cfg *config.Config
}

// NewJSONStorage returns a Storage that reads/writes the config's
// report JSON path.
func NewJSONStorage(cfg *config.Config) *JSONStorage {
	return &JSONStorage{cfg: cfg}
}
