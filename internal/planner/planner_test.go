package planner

import (
	"errors"
	"reflect"
	"testing"

	"tmx/internal/domain"
)

func flatUnits(suite string, weight float64, ids ...string) []domain.TestUnit {
	units := make([]domain.TestUnit, 0, len(ids))
	for _, id := range ids {
		units = append(units, domain.TestUnit{ID: id, Suite: suite, Weight: weight})
	}
	return units
}

func jobsForSuite(plan *domain.Plan, suite string) []domain.JobSpec {
	var jobs []domain.JobSpec
	for _, job := range plan.Jobs {
		if job.Suite == suite {
			jobs = append(jobs, job)
		}
	}
	return jobs
}

func TestPlan_BalancesChunksLPT(t *testing.T) {
	// Four heavy units of 5 minutes and eight light units of 1 minute
	// across four slots pack perfectly: every chunk gets one heavy and
	// two light units for an even 7 minutes.
	units := append(
		flatUnits("security", 5, "test_h1", "test_h2", "test_h3", "test_h4"),
		flatUnits("security", 1, "test_l1", "test_l2", "test_l3", "test_l4", "test_l5", "test_l6", "test_l7", "test_l8")...,
	)

	plan, err := New().Plan(units, 4, map[string]int{"security": 4}, []string{"chrome"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(plan.Jobs) != 4 {
		t.Fatalf("expected 4 jobs, got %d", len(plan.Jobs))
	}
	for _, job := range plan.Jobs {
		if job.EstimatedMinutes != 7 {
			t.Errorf("job %s: expected 7 estimated minutes, got %v", job.Key(), job.EstimatedMinutes)
		}
		if len(job.Tests) != 3 {
			t.Errorf("job %s: expected 3 tests, got %d", job.Key(), len(job.Tests))
		}
		heavy, light := 0, 0
		for _, id := range job.Tests {
			switch id[len("test_"):][0] {
			case 'h':
				heavy++
			case 'l':
				light++
			}
		}
		if heavy != 1 || light != 2 {
			t.Errorf("job %s: expected one heavy and two light units, got %d/%d", job.Key(), heavy, light)
		}
	}
}

func TestPlan_Deterministic(t *testing.T) {
	units := []domain.TestUnit{
		{ID: "test_end_to_end_purchase", Suite: "integration", Weight: 5},
		{ID: "test_email_notifications", Suite: "integration", Weight: 3},
		{ID: "test_user_registration", Suite: "frontend", Weight: 2},
		{ID: "test_shopping_cart", Suite: "frontend", Weight: 1.5},
		{ID: "test_checkout_process", Suite: "frontend", Weight: 1.5},
		{ID: "test_critical_paths", Suite: "smoke", Weight: 1.5},
	}
	ceilings := map[string]int{"integration": 2, "frontend": 4, "smoke": 2}
	browsers := []string{"chrome", "firefox"}

	first, err := New().Plan(units, 10, ceilings, browsers)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := 0; i < 20; i++ {
		next, err := New().Plan(units, 10, ceilings, browsers)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !reflect.DeepEqual(first, next) {
			t.Fatalf("plan differs between runs:\nfirst: %+v\nnext:  %+v", first, next)
		}
	}
}

func TestPlan_EveryInstancePlannedOnce(t *testing.T) {
	units := []domain.TestUnit{
		{ID: "test_user_registration", Suite: "frontend", Weight: 2},
		{ID: "test_shopping_cart", Suite: "frontend", Weight: 1.5},
		{ID: "test_page_load_performance", Suite: "performance", Weight: 4, Browsers: []string{"chrome"}},
	}
	browsers := []string{"chrome", "firefox"}

	plan, err := New().Plan(units, 10, map[string]int{"frontend": 4, "performance": 2}, browsers)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	seen := make(map[string]int)
	for _, job := range plan.Jobs {
		for _, id := range job.Tests {
			seen[id+"@"+job.Browser]++
		}
	}
	want := map[string]int{
		"test_user_registration@chrome":     1,
		"test_user_registration@firefox":    1,
		"test_shopping_cart@chrome":         1,
		"test_shopping_cart@firefox":        1,
		"test_page_load_performance@chrome": 1,
	}
	if !reflect.DeepEqual(seen, want) {
		t.Errorf("instance placement mismatch:\ngot:  %v\nwant: %v", seen, want)
	}
	if len(plan.Excluded) != 0 {
		t.Errorf("expected no exclusions, got %v", plan.Excluded)
	}
}

func TestPlan_ExcludesUnitsWithNoBrowser(t *testing.T) {
	units := []domain.TestUnit{
		{ID: "test_user_registration", Suite: "frontend", Weight: 2},
		{ID: "test_page_load_performance", Suite: "performance", Weight: 4, Browsers: []string{"chrome"}},
	}

	plan, err := New().Plan(units, 5, map[string]int{"frontend": 4, "performance": 2}, []string{"firefox"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(plan.Excluded) != 1 || plan.Excluded[0].UnitID != "test_page_load_performance" {
		t.Fatalf("expected test_page_load_performance excluded, got %v", plan.Excluded)
	}
	for _, job := range plan.Jobs {
		for _, id := range job.Tests {
			if id == "test_page_load_performance" {
				t.Error("excluded unit still planned")
			}
		}
	}
}

func TestPlan_RespectsBudgetAndCeilings(t *testing.T) {
	units := append(
		flatUnits("frontend", 1,
			"test_f1", "test_f2", "test_f3", "test_f4", "test_f5",
			"test_f6", "test_f7", "test_f8", "test_f9", "test_f10"),
		flatUnits("backend", 1,
			"test_b1", "test_b2", "test_b3", "test_b4", "test_b5",
			"test_b6", "test_b7", "test_b8", "test_b9", "test_b10")...,
	)
	ceilings := map[string]int{"frontend": 3, "backend": 2}

	plan, err := New().Plan(units, 20, ceilings, []string{"chrome"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(plan.Jobs) > plan.MaxParallel {
		t.Errorf("%d jobs exceed the %d slot budget", len(plan.Jobs), plan.MaxParallel)
	}
	counts := plan.SuiteJobCounts()
	if counts["frontend"] != 3 {
		t.Errorf("frontend: expected ceiling of 3 jobs, got %d", counts["frontend"])
	}
	if counts["backend"] != 2 {
		t.Errorf("backend: expected ceiling of 2 jobs, got %d", counts["backend"])
	}
}

func TestPlan_CeilingSharedAcrossBrowsers(t *testing.T) {
	units := flatUnits("integration", 2, "test_i1", "test_i2", "test_i3", "test_i4", "test_i5", "test_i6")

	plan, err := New().Plan(units, 10, map[string]int{"integration": 3}, []string{"chrome", "firefox", "edge"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Three browser pools share the ceiling of 3: exactly one job each
	if got := plan.SuiteJobCounts()["integration"]; got != 3 {
		t.Errorf("expected 3 integration jobs across browsers, got %d", got)
	}
	perBrowser := make(map[string]int)
	for _, job := range plan.Jobs {
		perBrowser[job.Browser]++
	}
	for _, browser := range []string{"chrome", "edge", "firefox"} {
		if perBrowser[browser] != 1 {
			t.Errorf("browser %s: expected 1 job, got %d", browser, perBrowser[browser])
		}
	}
}

func TestPlan_ProportionalAllocation(t *testing.T) {
	units := append(
		flatUnits("integration", 3,
			"test_i1", "test_i2", "test_i3", "test_i4", "test_i5",
			"test_i6", "test_i7", "test_i8", "test_i9", "test_i10"),
		flatUnits("smoke", 1,
			"test_s1", "test_s2", "test_s3", "test_s4", "test_s5",
			"test_s6", "test_s7", "test_s8", "test_s9", "test_s10")...,
	)
	ceilings := map[string]int{"integration": 10, "smoke": 10}

	plan, err := New().Plan(units, 8, ceilings, []string{"chrome"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	counts := plan.SuiteJobCounts()
	if counts["integration"] <= counts["smoke"] {
		t.Errorf("heavier suite should get more slots: integration=%d smoke=%d",
			counts["integration"], counts["smoke"])
	}
	if counts["integration"]+counts["smoke"] != 8 {
		t.Errorf("expected all 8 slots used, got %d", counts["integration"]+counts["smoke"])
	}
	if counts["smoke"] < 1 {
		t.Error("lighter suite lost its guaranteed slot")
	}
}

func TestPlan_ChunkIndexesContiguous(t *testing.T) {
	units := flatUnits("backend", 1.5, "test_b1", "test_b2", "test_b3", "test_b4", "test_b5")

	plan, err := New().Plan(units, 3, map[string]int{"backend": 3}, []string{"chrome"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	seen := make(map[int]bool)
	for _, job := range plan.Jobs {
		seen[job.Chunk] = true
		if len(job.Tests) == 0 {
			t.Errorf("job %s has no tests", job.Key())
		}
	}
	for i := 0; i < len(plan.Jobs); i++ {
		if !seen[i] {
			t.Errorf("chunk index %d missing from %v", i, seen)
		}
	}
}

func TestPlan_SlotsNeverExceedUnits(t *testing.T) {
	units := flatUnits("smoke", 1.5, "test_basic_functionality", "test_critical_paths")

	plan, err := New().Plan(units, 20, map[string]int{"smoke": 10}, []string{"chrome"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(plan.Jobs) != 2 {
		t.Errorf("2 units can fill at most 2 chunks, got %d jobs", len(plan.Jobs))
	}
}

func TestPlan_Errors(t *testing.T) {
	units := flatUnits("frontend", 2, "test_f1", "test_f2")

	tests := []struct {
		name        string
		units       []domain.TestUnit
		maxParallel int
		ceilings    map[string]int
		browsers    []string
	}{
		{
			name:        "zero slot budget",
			units:       units,
			maxParallel: 0,
			ceilings:    map[string]int{"frontend": 4},
			browsers:    []string{"chrome"},
		},
		{
			name:        "no units",
			units:       nil,
			maxParallel: 5,
			ceilings:    map[string]int{},
			browsers:    []string{"chrome"},
		},
		{
			name:        "no browsers",
			units:       units,
			maxParallel: 5,
			ceilings:    map[string]int{"frontend": 4},
			browsers:    nil,
		},
		{
			name:        "more pools than slots",
			units:       units,
			maxParallel: 1,
			ceilings:    map[string]int{"frontend": 4},
			browsers:    []string{"chrome", "firefox"},
		},
		{
			name:        "ceiling below browser pool count",
			units:       units,
			maxParallel: 10,
			ceilings:    map[string]int{"frontend": 1},
			browsers:    []string{"chrome", "firefox"},
		},
		{
			name: "non-positive unit cost",
			units: []domain.TestUnit{
				{ID: "test_broken", Suite: "frontend", Weight: 0},
			},
			maxParallel: 5,
			ceilings:    map[string]int{"frontend": 4},
			browsers:    []string{"chrome"},
		},
		{
			name: "nothing runs on selected browser",
			units: []domain.TestUnit{
				{ID: "test_f1", Suite: "frontend", Weight: 2, Browsers: []string{"chrome"}},
			},
			maxParallel: 5,
			ceilings:    map[string]int{"frontend": 4},
			browsers:    []string{"edge"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New().Plan(tt.units, tt.maxParallel, tt.ceilings, tt.browsers)
			if err == nil {
				t.Fatal("expected planning error")
			}
			var planErr *PlanningError
			if !errors.As(err, &planErr) {
				t.Errorf("expected *PlanningError, got %T", err)
			}
		})
	}
}

func TestTimeoutFor(t *testing.T) {
	tests := []struct {
		minutes float64
		want    int
	}{
		{0.5, 5},  // Clamped up to the floor
		{2, 5},    // Doubled still below the floor
		{4, 8},    // Plain doubling
		{7.3, 15}, // Doubled and rounded up
		{25, 50},  // Near the cap
		{40, 60},  // Clamped down to the cap
	}

	for _, tt := range tests {
		if got := timeoutFor(tt.minutes); got != tt.want {
			t.Errorf("timeoutFor(%v): expected %d, got %d", tt.minutes, tt.want, got)
		}
	}
}

func TestPackChunks_TieBreaksStable(t *testing.T) {
	units := []domain.PlannedUnit{
		{ID: "test_c", Cost: 2},
		{ID: "test_a", Cost: 2},
		{ID: "test_b", Cost: 2},
	}

	first := packChunks(units, 3)
	for i := 0; i < 10; i++ {
		if !reflect.DeepEqual(first, packChunks(units, 3)) {
			t.Fatal("packing is not stable across runs")
		}
	}
	// Equal costs sort by ID, equal loads fill lowest chunk first
	order := []string{first[0].Units[0].ID, first[1].Units[0].ID, first[2].Units[0].ID}
	want := []string{"test_a", "test_b", "test_c"}
	if !reflect.DeepEqual(order, want) {
		t.Errorf("expected ID-ordered placement %v, got %v", want, order)
	}
}
