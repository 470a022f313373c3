package timing

import (
	"context"
	"fmt"

	"tmx/internal/domain"
)

// Source provides historical average durations in minutes keyed by
// test unit ID.
type Source interface {
	AverageMinutes(ctx context.Context) (map[string]float64, error)
}

// Estimator resolves the planning cost of each test unit
type Estimator struct {
	source Source
}

// NewEstimator creates a new Estimator. A nil source keeps the static
// inventory weights.
func NewEstimator(source Source) *Estimator {
	return &Estimator{source: source}
}

// Estimate returns a copy of units with Weight replaced by the
// historical average wherever one exists. Units without history and
// non-positive history rows keep their static weight.
func (e *Estimator) Estimate(ctx context.Context, units []domain.TestUnit) ([]domain.TestUnit, error) {
	estimated := make([]domain.TestUnit, len(units))
	copy(estimated, units)

	if e.source == nil {
		return estimated, nil
	}

	averages, err := e.source.AverageMinutes(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load timing history: %w", err)
	}

	for i := range estimated {
		if avg, ok := averages[estimated[i].ID]; ok && avg > 0 {
			estimated[i].Weight = avg
		}
	}
	return estimated, nil
}
