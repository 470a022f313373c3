package aggregate

import (
	"fmt"

	"tmx/internal/domain"
)

// Healthy reports whether a run clears the success threshold with
// every expected job accounted for. The reason explains the first
// failing condition for CI logs.
func Healthy(report *domain.Report, threshold float64) (bool, string) {
	if missing := len(report.Meta.MissingJobs); missing > 0 {
		if report.Meta.CorruptedJobs > 0 {
			return false, fmt.Sprintf("%d job(s) never reported a usable result (%d corrupted)",
				missing, report.Meta.CorruptedJobs)
		}
		return false, fmt.Sprintf("%d job(s) never reported a result", missing)
	}
	if report.Meta.SuccessRate < threshold {
		return false, fmt.Sprintf("success rate %.1f%% is below the %.1f%% threshold",
			report.Meta.SuccessRate*100, threshold*100)
	}
	return true, ""
}
