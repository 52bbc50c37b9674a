package analytics

import (
	"math"
	"time"

	"github.com/alexanderramin/horizon/internal/domain"
)

const (
	largeBudget  = 10_000_000
	mediumBudget = 5_000_000
	longDuration = 365
	midDuration  = 180
	delayedDays  = 7
)

// ProjectSignals carries a project together with the graph-derived inputs
// its risk score needs.
type ProjectSignals struct {
	Project *domain.Project
	// AllocatedFTE is the sum of active allocation percentages divided by 100.
	AllocatedFTE float64
	// RequiredCount is the sum of active requirement headcounts.
	RequiredCount int
	// IncomingDependencies counts active edges whose successor is the
	// project or one of its milestones.
	IncomingDependencies int
}

// BudgetVariance is (expected cost - budget) / budget, or 0 without a budget.
func BudgetVariance(p *domain.Project) float64 {
	if p.Budget <= 0 {
		return 0
	}
	return (p.ExpectedCost() - p.Budget) / p.Budget
}

// ScheduleDelayDays measures how far the project's finish runs past its
// planned completion. Open projects are measured against now. Never negative.
func ScheduleDelayDays(p *domain.Project, now time.Time) int {
	target := p.PlannedCompletion()
	if target == nil {
		return 0
	}
	finish := now
	if p.ActualEndDate != nil {
		finish = *p.ActualEndDate
	}
	if p.EndDate != nil && p.EndDate.After(finish) {
		finish = *p.EndDate
	}
	days := int(math.Floor(finish.Sub(*target).Hours() / 24))
	if days < 0 {
		return 0
	}
	return days
}

// AutoHealthStatus derives Red/Yellow from cost and schedule signals, and
// otherwise falls back to the manually recorded status.
func AutoHealthStatus(p *domain.Project, now time.Time) domain.HealthStatus {
	variance := BudgetVariance(p)
	delay := ScheduleDelayDays(p, now)
	switch {
	case variance > 0.5 || delay > 90:
		return domain.HealthRed
	case variance > 0.2 || delay > 30:
		return domain.HealthYellow
	case p.HealthStatus != "":
		return p.HealthStatus
	default:
		return domain.HealthGreen
	}
}

// RiskBreakdown holds the six capped subscores of a project risk score.
type RiskBreakdown struct {
	Health     int `json:"health"`
	Budget     int `json:"budget"`
	Schedule   int `json:"schedule"`
	Resource   int `json:"resource"`
	Dependency int `json:"dependency"`
	Complexity int `json:"complexity"`
	Total      int `json:"total"`
}

// ProjectRisk scores one project on a 0-100 scale.
func ProjectRisk(sig ProjectSignals, now time.Time) RiskBreakdown {
	p := sig.Project
	var b RiskBreakdown

	switch AutoHealthStatus(p, now) {
	case domain.HealthRed:
		b.Health = 15
	case domain.HealthYellow:
		b.Health = 8
	}

	switch v := BudgetVariance(p); {
	case v > 0.30:
		b.Budget = 15
	case v > 0.15:
		b.Budget = 10
	case v > 0.05:
		b.Budget = 5
	}

	switch d := ScheduleDelayDays(p, now); {
	case d > 90:
		b.Schedule = 15
	case d > 30:
		b.Schedule = 10
	case d > delayedDays:
		b.Schedule = 5
	}

	if sig.RequiredCount > 0 {
		switch ratio := sig.AllocatedFTE / float64(sig.RequiredCount); {
		case ratio < 0.6:
			b.Resource = 15
		case ratio < 0.8:
			b.Resource = 10
		case ratio < 0.9:
			b.Resource = 5
		}
	}

	switch n := sig.IncomingDependencies; {
	case n > 5:
		b.Dependency = 12
	case n > 3:
		b.Dependency = 8
	case n > 1:
		b.Dependency = 4
	}

	switch {
	case p.Budget > largeBudget:
		b.Complexity = 7
	case p.Budget > mediumBudget:
		b.Complexity = 4
	}
	switch d := p.DurationDays(); {
	case d > longDuration:
		b.Complexity += 3
	case d > midDuration:
		b.Complexity += 2
	}

	b.Total = min(100, b.Health+b.Budget+b.Schedule+b.Resource+b.Dependency+b.Complexity)
	return b
}

// BandFor buckets a 0-100 score.
func BandFor(score int) domain.RiskBand {
	switch {
	case score < 30:
		return domain.RiskLow
	case score < 60:
		return domain.RiskMedium
	default:
		return domain.RiskHigh
	}
}
