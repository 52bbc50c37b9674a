package analytics

import (
	"fmt"
	"time"

	"github.com/alexanderramin/horizon/internal/domain"
)

// Subscore is one aggregate risk factor with a readable explanation.
type Subscore struct {
	Score  int    `json:"score"`
	Max    int    `json:"max"`
	Detail string `json:"detail"`
}

type Distribution struct {
	Low    int `json:"low"`
	Medium int `json:"medium"`
	High   int `json:"high"`
}

// ProjectScore is one project's contribution to a segment report.
type ProjectScore struct {
	ProjectID     int64               `json:"projectId"`
	ProjectNumber string              `json:"projectNumber"`
	Name          string              `json:"name"`
	Score         int                 `json:"score"`
	Band          domain.RiskBand     `json:"band"`
	Health        domain.HealthStatus `json:"health"`
	Breakdown     RiskBreakdown       `json:"breakdown"`
}

// SegmentRisk aggregates project risk across a segment function.
type SegmentRisk struct {
	SegmentFunctionID int64           `json:"segmentFunctionId"`
	ScenarioID        *int64          `json:"scenarioId"`
	ProjectCount      int             `json:"projectCount"`
	TotalScore        int             `json:"totalScore"`
	Band              domain.RiskBand `json:"band"`
	Budget            Subscore        `json:"budget"`
	Schedule          Subscore        `json:"schedule"`
	Resource          Subscore        `json:"resource"`
	Dependency        Subscore        `json:"dependency"`
	Complexity        Subscore        `json:"complexity"`
	Health            Subscore        `json:"health"`
	MaxProjectScore   int             `json:"maxProjectScore"`
	Distribution      Distribution    `json:"distribution"`
	Projects          []ProjectScore  `json:"projects"`
	NeedsAttention    int             `json:"needsAttention"`
	Summary           string          `json:"summary"`
}

// ScoreProject bundles a project's risk breakdown with its band and derived
// health status.
func ScoreProject(sig ProjectSignals, now time.Time) ProjectScore {
	p := sig.Project
	b := ProjectRisk(sig, now)
	return ProjectScore{
		ProjectID:     p.ID,
		ProjectNumber: p.ProjectNumber,
		Name:          p.Name,
		Score:         b.Total,
		Band:          BandFor(b.Total),
		Health:        AutoHealthStatus(p, now),
		Breakdown:     b,
	}
}

const noProjectsDetail = "no active projects"

// SegmentFunctionRisk scores each project and recomputes the six factors
// from population statistics. An empty input yields an all-zero report.
func SegmentFunctionRisk(segmentFunctionID int64, scenarioID *int64, signals []ProjectSignals, now time.Time) SegmentRisk {
	out := SegmentRisk{
		SegmentFunctionID: segmentFunctionID,
		ScenarioID:        scenarioID,
		ProjectCount:      len(signals),
		Band:              domain.RiskLow,
		Budget:            Subscore{Max: 25, Detail: noProjectsDetail},
		Schedule:          Subscore{Max: 25, Detail: noProjectsDetail},
		Resource:          Subscore{Max: 20, Detail: noProjectsDetail},
		Dependency:        Subscore{Max: 15, Detail: noProjectsDetail},
		Complexity:        Subscore{Max: 15, Detail: noProjectsDetail},
		Health:            Subscore{Max: 15, Detail: noProjectsDetail},
		Projects:          []ProjectScore{},
	}
	if len(signals) == 0 {
		out.Summary = "No active projects in this segment function; risk is zero."
		return out
	}

	var (
		totalBudget, totalExpected float64
		totalFTE                   float64
		totalRequired              int
		totalIncoming              int
		delayed, large, long       int
		red, yellow                int
	)
	for _, sig := range signals {
		p := sig.Project
		ps := ScoreProject(sig, now)
		health := ps.Health
		out.Projects = append(out.Projects, ps)
		out.MaxProjectScore = max(out.MaxProjectScore, ps.Score)
		switch ps.Band {
		case domain.RiskLow:
			out.Distribution.Low++
		case domain.RiskMedium:
			out.Distribution.Medium++
		default:
			out.Distribution.High++
		}

		if p.Budget > 0 {
			totalBudget += p.Budget
			totalExpected += p.ExpectedCost()
		}
		totalFTE += sig.AllocatedFTE
		totalRequired += sig.RequiredCount
		totalIncoming += sig.IncomingDependencies
		if ScheduleDelayDays(p, now) > delayedDays {
			delayed++
		}
		if p.Budget > largeBudget {
			large++
		}
		if p.DurationDays() > longDuration {
			long++
		}
		switch health {
		case domain.HealthRed:
			red++
		case domain.HealthYellow:
			yellow++
		}
	}

	n := float64(len(signals))
	out.NeedsAttention = out.Distribution.Medium + out.Distribution.High

	out.Budget = aggregateBudget(totalBudget, totalExpected)
	out.Schedule = aggregateSchedule(float64(delayed) / n * 100)
	out.Resource = aggregateResource(totalFTE, totalRequired)
	out.Dependency = aggregateDependency(float64(totalIncoming) / n)
	out.Complexity = aggregateComplexity(large, long)
	out.Health = aggregateHealth(float64(red)/n*100, float64(yellow)/n*100)

	out.TotalScore = min(100, out.Budget.Score+out.Schedule.Score+out.Resource.Score+
		out.Dependency.Score+out.Complexity.Score+out.Health.Score)
	out.Band = BandFor(out.TotalScore)
	out.Summary = fmt.Sprintf("%d projects, %d need attention; segment risk %d (%s)",
		len(signals), out.NeedsAttention, out.TotalScore, out.Band)
	return out
}

func aggregateBudget(budget, expected float64) Subscore {
	s := Subscore{Max: 25}
	if budget <= 0 {
		s.Detail = "no budgeted projects (+0)"
		return s
	}
	variance := (expected - budget) / budget
	switch {
	case variance > 0.30:
		s.Score = 25
	case variance > 0.15:
		s.Score = 15
	case variance > 0.05:
		s.Score = 8
	case variance > 0:
		s.Score = 3
	}
	if variance >= 0 {
		s.Detail = fmt.Sprintf("%.1f%% over budget (+%d)", variance*100, s.Score)
	} else {
		s.Detail = fmt.Sprintf("%.1f%% under budget (+%d)", -variance*100, s.Score)
	}
	return s
}

func aggregateSchedule(delayedPct float64) Subscore {
	s := Subscore{Max: 25}
	switch {
	case delayedPct > 50:
		s.Score = 25
	case delayedPct > 30:
		s.Score = 15
	case delayedPct > 10:
		s.Score = 8
	case delayedPct > 0:
		s.Score = 3
	}
	s.Detail = fmt.Sprintf("%.1f%% of projects delayed (+%d)", delayedPct, s.Score)
	return s
}

func aggregateResource(fte float64, required int) Subscore {
	s := Subscore{Max: 20}
	if required == 0 {
		s.Detail = "no resource requirements (+0)"
		return s
	}
	ratio := fte / float64(required)
	switch {
	case ratio < 0.6:
		s.Score = 20
	case ratio < 0.8:
		s.Score = 12
	case ratio < 0.9:
		s.Score = 6
	}
	s.Detail = fmt.Sprintf("%.1f%% of required capacity allocated (+%d)", ratio*100, s.Score)
	return s
}

func aggregateDependency(avg float64) Subscore {
	s := Subscore{Max: 15}
	switch {
	case avg > 3:
		s.Score = 15
	case avg > 2:
		s.Score = 10
	case avg > 1:
		s.Score = 5
	case avg > 0.5:
		s.Score = 2
	}
	s.Detail = fmt.Sprintf("%.1f incoming dependencies per project (+%d)", avg, s.Score)
	return s
}

func aggregateComplexity(large, long int) Subscore {
	s := Subscore{Max: 15, Score: min(15, 3*large+2*long)}
	s.Detail = fmt.Sprintf("%d large, %d long-running projects (+%d)", large, long, s.Score)
	return s
}

func aggregateHealth(redPct, yellowPct float64) Subscore {
	s := Subscore{Max: 15}
	switch {
	case redPct >= 30:
		s.Score = 15
	case redPct >= 10 || yellowPct >= 30:
		s.Score = 10
	case yellowPct >= 10:
		s.Score = 5
	}
	s.Detail = fmt.Sprintf("%.1f%% red, %.1f%% yellow (+%d)", redPct, yellowPct, s.Score)
	return s
}
