package domain

// Chunk is one ordered group of planned units packed into a job slot
type Chunk struct {
	Units []PlannedUnit // Units assigned to the slot, heaviest first
	Cost  float64       // Sum of unit costs in minutes
}

// JobSpec describes one job slot for the external CI executor.
// The JSON tags match the matrix keys the workflow consumes.
type JobSpec struct {
	Suite            string   `json:"test-group"`
	Browser          string   `json:"browser"`
	Chunk            int      `json:"chunk"`
	Tests            []string `json:"tests"`
	EstimatedMinutes float64  `json:"estimated-minutes"`
	TimeoutMinutes   int      `json:"timeout-minutes"`
}

// Key returns the job's identity within the run
func (j JobSpec) Key() JobKey {
	return JobKey{Suite: j.Suite, Browser: j.Browser, Chunk: j.Chunk}
}

// Exclusion records a test unit the planner could not place on any
// selected browser.
type Exclusion struct {
	UnitID string `json:"unit"`
	Reason string `json:"reason"`
}

// Plan is the complete job list for one CI run. It is read-only once
// built; every later stage derives from it.
type Plan struct {
	Jobs        []JobSpec   // All planned job slots in deterministic order
	MaxParallel int         // Slot budget the plan was packed against
	Excluded    []Exclusion // Units that fit no selected browser
}

// ExpectedKeys lists every job key the aggregator must account for
func (p *Plan) ExpectedKeys() []JobKey {
	keys := make([]JobKey, 0, len(p.Jobs))
	for _, job := range p.Jobs {
		keys = append(keys, job.Key())
	}
	return keys
}

// TotalUnits counts the planned run instances across all jobs
func (p *Plan) TotalUnits() int {
	total := 0
	for _, job := range p.Jobs {
		total += len(job.Tests)
	}
	return total
}

// EstimatedWallMinutes estimates the run's wall time. The planner never
// emits more jobs than MaxParallel, so every job starts in the first
// wave and the longest one sets the pace.
func (p *Plan) EstimatedWallMinutes() float64 {
	longest := 0.0
	for _, job := range p.Jobs {
		if job.EstimatedMinutes > longest {
			longest = job.EstimatedMinutes
		}
	}
	return longest
}

// SuiteJobCounts tallies planned jobs per suite
func (p *Plan) SuiteJobCounts() map[string]int {
	counts := make(map[string]int)
	for _, job := range p.Jobs {
		counts[job.Suite]++
	}
	return counts
}
