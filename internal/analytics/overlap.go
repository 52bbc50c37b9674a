package analytics

import (
	"sort"

	"github.com/alexanderramin/horizon/internal/domain"
)

// OverAllocationThreshold is the concurrent percentage above which a
// resource is over-allocated.
const OverAllocationThreshold = 100

type allocationEvent struct {
	at    int64
	delta int
	end   bool
}

// MaxConcurrentAllocation returns the highest total percentage a resource
// carries at any instant. Allocations without both dates are skipped by the
// sweep; when no allocation has both dates the plain sum is returned instead.
func MaxConcurrentAllocation(allocs []*domain.Allocation) int {
	events := make([]allocationEvent, 0, 2*len(allocs))
	sum := 0
	for _, a := range allocs {
		sum += a.Percentage
		if !a.IsTimed() {
			continue
		}
		events = append(events,
			allocationEvent{at: a.StartDate.Unix(), delta: a.Percentage},
			allocationEvent{at: a.EndDate.Unix(), delta: -a.Percentage, end: true},
		)
	}
	if len(events) == 0 {
		return sum
	}

	// Ends sort before starts at the same instant so touching windows do not stack.
	sort.SliceStable(events, func(i, j int) bool {
		if events[i].at != events[j].at {
			return events[i].at < events[j].at
		}
		return events[i].end && !events[j].end
	})

	running, peak := 0, 0
	for _, e := range events {
		running += e.delta
		if running > peak {
			peak = running
		}
	}
	return peak
}

// IsOverAllocated reports whether a concurrent percentage exceeds capacity.
func IsOverAllocated(maxConcurrent int) bool {
	return maxConcurrent > OverAllocationThreshold
}
