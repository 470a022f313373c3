package timing

import (
	"context"
	"errors"
	"testing"

	"tmx/internal/domain"
)

type stubSource struct {
	averages map[string]float64
	err      error
}

func (s *stubSource) AverageMinutes(ctx context.Context) (map[string]float64, error) {
	return s.averages, s.err
}

func TestEstimate(t *testing.T) {
	units := []domain.TestUnit{
		{ID: "test_checkout_process", Suite: "frontend", Weight: 1.5},
		{ID: "test_shopping_cart", Suite: "frontend", Weight: 1.5},
		{ID: "test_critical_paths", Suite: "smoke", Weight: 1.5},
	}

	t.Run("nil source keeps static weights", func(t *testing.T) {
		estimated, err := NewEstimator(nil).Estimate(context.Background(), units)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		for i, u := range estimated {
			if u.Weight != units[i].Weight {
				t.Errorf("%s: weight changed to %v", u.ID, u.Weight)
			}
		}
	})

	t.Run("history overrides static weights", func(t *testing.T) {
		source := &stubSource{averages: map[string]float64{
			"test_checkout_process": 3.2,
			"test_critical_paths":   -1, // bad row, must be ignored
			"test_unknown":          9,
		}}
		estimated, err := NewEstimator(source).Estimate(context.Background(), units)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if estimated[0].Weight != 3.2 {
			t.Errorf("expected historical weight 3.2, got %v", estimated[0].Weight)
		}
		if estimated[1].Weight != 1.5 {
			t.Errorf("expected static weight 1.5, got %v", estimated[1].Weight)
		}
		if estimated[2].Weight != 1.5 {
			t.Errorf("bad history row should keep static weight, got %v", estimated[2].Weight)
		}
	})

	t.Run("input slice is not mutated", func(t *testing.T) {
		source := &stubSource{averages: map[string]float64{"test_shopping_cart": 7}}
		_, err := NewEstimator(source).Estimate(context.Background(), units)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if units[1].Weight != 1.5 {
			t.Errorf("input slice mutated: %v", units[1].Weight)
		}
	})

	t.Run("source error propagates", func(t *testing.T) {
		source := &stubSource{err: errors.New("connection refused")}
		if _, err := NewEstimator(source).Estimate(context.Background(), units); err == nil {
			t.Error("expected error from failing source")
		}
	})
}
