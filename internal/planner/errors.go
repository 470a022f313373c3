package planner

import "fmt"

// PlanningError means the requested matrix cannot be satisfied at all.
// Nothing should be launched when one is returned.
type PlanningError struct {
	Reason string
}

func (e *PlanningError) Error() string {
	return "planning failed: " + e.Reason
}

func planningErrorf(format string, args ...interface{}) *PlanningError {
	return &PlanningError{Reason: fmt.Sprintf(format, args...)}
}
