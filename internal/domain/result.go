package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// JobKey uniquely identifies one planned job slot within a run
type JobKey struct {
	Suite   string // Suite the job belongs to
	Browser string // Browser the job runs on
	Chunk   int    // Zero-based chunk index within the (suite, browser) pool
}

// String renders the canonical "suite-browser-chunk" form used in
// artifact file names and report listings.
func (k JobKey) String() string {
	return fmt.Sprintf("%s-%s-%d", k.Suite, k.Browser, k.Chunk)
}

// ParseJobKey parses the canonical "suite-browser-chunk" form. Suite and
// browser names never contain hyphens, so the form is unambiguous.
func ParseJobKey(s string) (JobKey, error) {
	parts := strings.Split(s, "-")
	if len(parts) != 3 {
		return JobKey{}, fmt.Errorf("invalid job key %q: want suite-browser-chunk", s)
	}
	chunk, err := strconv.Atoi(parts[2])
	if err != nil || chunk < 0 {
		return JobKey{}, fmt.Errorf("invalid job key %q: bad chunk index %q", s, parts[2])
	}
	if parts[0] == "" || parts[1] == "" {
		return JobKey{}, fmt.Errorf("invalid job key %q: empty suite or browser", s)
	}
	return JobKey{Suite: parts[0], Browser: parts[1], Chunk: chunk}, nil
}

// JobStatus is the terminal state of one job slot
type JobStatus string

const (
	StatusCompleted JobStatus = "completed" // Job ran every test to the end
	StatusFailed    JobStatus = "failed"    // Job infrastructure broke mid-run
	StatusTimedOut  JobStatus = "timed_out" // Job was killed at its timeout
	StatusMissing   JobStatus = "missing"   // No artifact arrived for the job
)

// ParseJobStatus parses a status string reported by a job artifact.
// Missing is assigned during aggregation and never appears in artifacts.
func ParseJobStatus(s string) (JobStatus, bool) {
	switch JobStatus(s) {
	case StatusCompleted, StatusFailed, StatusTimedOut:
		return JobStatus(s), true
	}
	return "", false
}

// JobResult represents the parsed outcome artifact of one executed job
type JobResult struct {
	Key             JobKey
	Status          JobStatus
	Passed          int     // Test cases that passed
	Failed          int     // Test cases that failed assertions
	Errors          int     // Test cases that errored before asserting
	DurationSeconds float64 // Wall time the job spent running
}
