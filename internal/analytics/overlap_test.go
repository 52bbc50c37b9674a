package analytics

import (
	"math/rand"
	"testing"
	"time"

	"github.com/alexanderramin/horizon/internal/domain"
	"github.com/stretchr/testify/assert"
)

func d(y int, m time.Month, day int) *time.Time {
	t := time.Date(y, m, day, 0, 0, 0, 0, time.UTC)
	return &t
}

func alloc(pct int, start, end *time.Time) *domain.Allocation {
	return &domain.Allocation{Percentage: pct, StartDate: start, EndDate: end}
}

func TestMaxConcurrentAllocation(t *testing.T) {
	cases := []struct {
		name   string
		allocs []*domain.Allocation
		want   int
	}{
		{"empty", nil, 0},
		{
			"sequential windows do not stack",
			[]*domain.Allocation{
				alloc(50, d(2025, 1, 1), d(2025, 3, 31)),
				alloc(50, d(2025, 4, 1), d(2025, 6, 30)),
			},
			50,
		},
		{
			"nested window stacks",
			[]*domain.Allocation{
				alloc(50, d(2025, 1, 1), d(2025, 6, 30)),
				alloc(30, d(2025, 3, 1), d(2025, 4, 30)),
			},
			80,
		},
		{
			"touching boundary ends before start",
			[]*domain.Allocation{
				alloc(60, d(2025, 1, 1), d(2025, 3, 1)),
				alloc(60, d(2025, 3, 1), d(2025, 5, 1)),
			},
			60,
		},
		{
			"undated allocations fall back to sum",
			[]*domain.Allocation{alloc(70, nil, nil), alloc(40, d(2025, 1, 1), nil)},
			110,
		},
		{
			"undated allocations ignored when some are timed",
			[]*domain.Allocation{
				alloc(70, nil, nil),
				alloc(40, d(2025, 1, 1), d(2025, 2, 1)),
			},
			40,
		},
		{
			"three-way overlap exceeds capacity",
			[]*domain.Allocation{
				alloc(50, d(2025, 1, 1), d(2025, 12, 31)),
				alloc(40, d(2025, 2, 1), d(2025, 5, 31)),
				alloc(30, d(2025, 4, 1), d(2025, 4, 30)),
			},
			120,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, MaxConcurrentAllocation(tc.allocs))
		})
	}
}

func TestIsOverAllocated(t *testing.T) {
	assert.False(t, IsOverAllocated(100))
	assert.True(t, IsOverAllocated(101))
}

// The sweep result never exceeds the plain sum and is at least the largest
// single timed allocation.
func TestMaxConcurrentAllocation_Bounds(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	for trial := 0; trial < 200; trial++ {
		n := rng.Intn(6) + 1
		var allocs []*domain.Allocation
		sum, largest := 0, 0
		for i := 0; i < n; i++ {
			start := base.AddDate(0, 0, rng.Intn(200))
			end := start.AddDate(0, 0, rng.Intn(120)+1)
			pct := rng.Intn(101)
			allocs = append(allocs, alloc(pct, &start, &end))
			sum += pct
			largest = max(largest, pct)
		}
		got := MaxConcurrentAllocation(allocs)
		assert.LessOrEqual(t, got, sum, "trial %d", trial)
		assert.GreaterOrEqual(t, got, largest, "trial %d", trial)
	}
}
