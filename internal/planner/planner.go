package planner

import (
	"math"
	"sort"

	"tmx/internal/domain"
)

// Timeout policy per job: double the estimate, clamped to sane bounds
const (
	timeoutFactor     = 2.0
	minTimeoutMinutes = 5
	maxTimeoutMinutes = 60
)

// pool is the working state for one (suite, browser) combination
type pool struct {
	suite   string
	browser string
	units   []domain.PlannedUnit
	cost    float64 // Total estimated minutes across units
	slots   int     // Job slots allocated to the pool
}

// Planner packs test units into balanced job chunks under a global
// slot budget and per-suite concurrency ceilings.
type Planner struct{}

// New creates a new Planner
func New() *Planner {
	return &Planner{}
}

// Plan builds the job list for the given units and browsers. Identical
// inputs always produce the identical plan. Units that fit none of the
// selected browsers are reported in Plan.Excluded rather than planned.
func (p *Planner) Plan(units []domain.TestUnit, maxParallel int, ceilings map[string]int, browsers []string) (*domain.Plan, error) {
	if maxParallel < 1 {
		return nil, planningErrorf("max parallel slots must be at least 1, got %d", maxParallel)
	}
	if len(units) == 0 {
		return nil, planningErrorf("no test units selected")
	}
	if len(browsers) == 0 {
		return nil, planningErrorf("no browsers selected")
	}

	pools, excluded, err := buildPools(units, browsers)
	if err != nil {
		return nil, err
	}
	if len(pools) == 0 {
		return nil, planningErrorf("no selected test unit can run on any selected browser")
	}

	if err := allocateSlots(pools, maxParallel, ceilings); err != nil {
		return nil, err
	}

	plan := &domain.Plan{MaxParallel: maxParallel, Excluded: excluded}
	for _, pl := range pools {
		for i, chunk := range packChunks(pl.units, pl.slots) {
			plan.Jobs = append(plan.Jobs, domain.JobSpec{
				Suite:            pl.suite,
				Browser:          pl.browser,
				Chunk:            i,
				Tests:            unitIDs(chunk.Units),
				EstimatedMinutes: round2(chunk.Cost),
				TimeoutMinutes:   timeoutFor(chunk.Cost),
			})
		}
	}
	return plan, nil
}

// buildPools expands units into per-browser run instances and groups
// them by (suite, browser). Pools come back sorted by total cost
// descending, then suite, then browser, which fixes every later
// tie-break.
func buildPools(units []domain.TestUnit, browsers []string) ([]*pool, []domain.Exclusion, error) {
	type key struct{ suite, browser string }
	byKey := make(map[key]*pool)
	var pools []*pool
	var excluded []domain.Exclusion

	for _, unit := range units {
		if unit.Weight <= 0 {
			return nil, nil, planningErrorf("test unit %s has non-positive estimated cost %v", unit.ID, unit.Weight)
		}
		placed := false
		for _, browser := range browsers {
			if !unit.RunsOn(browser) {
				continue
			}
			k := key{suite: unit.Suite, browser: browser}
			pl, ok := byKey[k]
			if !ok {
				pl = &pool{suite: unit.Suite, browser: browser}
				byKey[k] = pl
				pools = append(pools, pl)
			}
			pl.units = append(pl.units, domain.PlannedUnit{ID: unit.ID, Cost: unit.Weight})
			pl.cost += unit.Weight
			placed = true
		}
		if !placed {
			excluded = append(excluded, domain.Exclusion{
				UnitID: unit.ID,
				Reason: "runs on none of the selected browsers",
			})
		}
	}

	sort.Slice(pools, func(i, j int) bool {
		if pools[i].cost != pools[j].cost {
			return pools[i].cost > pools[j].cost
		}
		if pools[i].suite != pools[j].suite {
			return pools[i].suite < pools[j].suite
		}
		return pools[i].browser < pools[j].browser
	})
	return pools, excluded, nil
}

// allocateSlots assigns each pool its job slot count: one guaranteed
// slot per pool, then extra slots proportional to pool cost, then any
// remainder handed out heaviest pool first. A pool never gets more
// slots than it has units, and a suite never exceeds its ceiling
// across all its browser pools.
func allocateSlots(pools []*pool, maxParallel int, ceilings map[string]int) error {
	if len(pools) > maxParallel {
		return planningErrorf("%d (suite, browser) pools need one slot each but only %d slots are available",
			len(pools), maxParallel)
	}

	poolsPerSuite := make(map[string]int)
	for _, pl := range pools {
		poolsPerSuite[pl.suite]++
	}
	for suite, count := range poolsPerSuite {
		if ceiling, capped := ceilings[suite]; capped && count > ceiling {
			return planningErrorf("suite %s spans %d browser pools but its concurrency ceiling is %d",
				suite, count, ceiling)
		}
	}

	ceilingFor := func(suite string) int {
		if ceiling, capped := ceilings[suite]; capped {
			return ceiling
		}
		return maxParallel
	}

	totalCost := 0.0
	for _, pl := range pools {
		totalCost += pl.cost
	}

	used := make(map[string]int)
	budget := maxParallel
	for _, pl := range pools {
		pl.slots = 1
		used[pl.suite]++
		budget--
	}

	// Proportional share beyond the guaranteed slot, pools already
	// ordered heaviest first
	for _, pl := range pools {
		if budget == 0 {
			break
		}
		extra := int(pl.cost/totalCost*float64(maxParallel)) - pl.slots
		extra = minInt(extra, len(pl.units)-pl.slots)
		extra = minInt(extra, ceilingFor(pl.suite)-used[pl.suite])
		extra = minInt(extra, budget)
		if extra > 0 {
			pl.slots += extra
			used[pl.suite] += extra
			budget -= extra
		}
	}

	// Hand out whatever is left one slot at a time until nothing can
	// take more
	for budget > 0 {
		progressed := false
		for _, pl := range pools {
			if budget == 0 {
				break
			}
			if pl.slots >= len(pl.units) || used[pl.suite] >= ceilingFor(pl.suite) {
				continue
			}
			pl.slots++
			used[pl.suite]++
			budget--
			progressed = true
		}
		if !progressed {
			break
		}
	}
	return nil
}

// packChunks distributes units across the given number of chunks using
// longest-processing-time-first: heaviest unit goes to the least loaded
// chunk. Cost ties fall back to unit ID, load ties to the lowest chunk
// index, so the packing is fully deterministic.
func packChunks(units []domain.PlannedUnit, chunkCount int) []domain.Chunk {
	sorted := make([]domain.PlannedUnit, len(units))
	copy(sorted, units)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Cost != sorted[j].Cost {
			return sorted[i].Cost > sorted[j].Cost
		}
		return sorted[i].ID < sorted[j].ID
	})

	chunks := make([]domain.Chunk, chunkCount)
	for _, unit := range sorted {
		lightest := 0
		for i := 1; i < chunkCount; i++ {
			if chunks[i].Cost < chunks[lightest].Cost {
				lightest = i
			}
		}
		chunks[lightest].Units = append(chunks[lightest].Units, unit)
		chunks[lightest].Cost += unit.Cost
	}
	return chunks
}

func timeoutFor(estimatedMinutes float64) int {
	timeout := int(math.Ceil(estimatedMinutes * timeoutFactor))
	if timeout < minTimeoutMinutes {
		return minTimeoutMinutes
	}
	if timeout > maxTimeoutMinutes {
		return maxTimeoutMinutes
	}
	return timeout
}

func unitIDs(units []domain.PlannedUnit) []string {
	ids := make([]string, 0, len(units))
	for _, u := range units {
		ids = append(ids, u.ID)
	}
	return ids
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
