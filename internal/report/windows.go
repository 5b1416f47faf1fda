package report

import (
	"time"

	"github.com/teltrip/ocsreport/internal/types"
)

// PlanWindows partitions the inclusive date interval [start, end] into
// contiguous windows of at most maxSpanDays days each. The sequence is
// gap-free, non-overlapping, starts at start, and the last window ends
// exactly at end even when it is shorter than maxSpanDays. start > end
// yields an empty plan. Pure: identical inputs produce identical plans.
func PlanWindows(start, end time.Time, maxSpanDays int) []UsageWindow {
	start = types.DateOnly(start)
	end = types.DateOnly(end)
	if maxSpanDays < 1 {
		maxSpanDays = 1
	}

	var windows []UsageWindow
	for cursor := start; !cursor.After(end); {
		windowEnd := cursor.AddDate(0, 0, maxSpanDays-1)
		if windowEnd.After(end) {
			windowEnd = end
		}
		windows = append(windows, UsageWindow{Start: cursor, End: windowEnd})
		cursor = windowEnd.AddDate(0, 0, 1)
	}
	return windows
}
