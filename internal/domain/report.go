package domain

// ReportMeta summarizes a whole run across every expected job
type ReportMeta struct {
	ExpectedJobs       int      `json:"expected_jobs"`
	ObservedJobs       int      `json:"observed_jobs"`
	TotalUnitsExpected int      `json:"total_units_expected"`
	TotalUnitsObserved int      `json:"total_units_observed"`
	Passed             int      `json:"passed"`
	Failed             int      `json:"failed"`
	Errored            int      `json:"errored"`
	SuccessRate        float64  `json:"success_rate"`
	MissingJobs        []string `json:"missing_jobs"`
	CorruptedJobs      int      `json:"corrupted_jobs"`
	DurationSeconds    float64  `json:"duration_seconds"` // Longest observed job
	GeneratedAt        string   `json:"timestamp,omitempty"`
}

// JobOutcome is one job's row in the consolidated report
type JobOutcome struct {
	Suite           string    `json:"test-group"`
	Browser         string    `json:"browser"`
	Chunk           int       `json:"chunk"`
	Status          JobStatus `json:"status"`
	Passed          int       `json:"passed"`
	Failed          int       `json:"failed"`
	Errors          int       `json:"errors"`
	DurationSeconds float64   `json:"duration_seconds"`
	ExpectedUnits   int       `json:"expected_units"`
	Acknowledged    bool      `json:"acknowledged,omitempty"` // Track if the outcome was triaged in the inspector
}

// Key returns the job's identity within the run
func (o JobOutcome) Key() JobKey {
	return JobKey{Suite: o.Suite, Browser: o.Browser, Chunk: o.Chunk}
}

// Report is the consolidated output structure for a run
type Report struct {
	Meta ReportMeta   `json:"meta"`
	Jobs []JobOutcome `json:"jobs"`
}
