package domain

import (
	"fmt"
	"strings"
	"time"
)

type Project struct {
	ID                    int64        `json:"id"`
	ScenarioID            *int64       `json:"scenarioId"`
	ProjectNumber         string       `json:"projectNumber"`
	Name                  string       `json:"name"`
	SegmentFunctionID     *int64       `json:"segmentFunctionId"`
	Budget                float64      `json:"budget"`
	ActualCost            float64      `json:"actualCost"`
	ForecastCost          float64      `json:"forecastCost"`
	StartDate             *time.Time   `json:"startDate"`
	EndDate               *time.Time   `json:"endDate"`
	ActualEndDate         *time.Time   `json:"actualEndDate"`
	DesiredCompletionDate *time.Time   `json:"desiredCompletionDate"`
	HealthStatus          HealthStatus `json:"healthStatus"`
	IsActive              bool         `json:"isActive"`
	CreatedAt             time.Time    `json:"createdAt"`
	UpdatedAt             time.Time    `json:"updatedAt"`
}

func (p *Project) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("project name is required: %w", ErrInvalid)
	}
	if p.Budget < 0 || p.ActualCost < 0 || p.ForecastCost < 0 {
		return fmt.Errorf("project costs must not be negative: %w", ErrInvalid)
	}
	if p.HealthStatus != "" && !ValidHealthStatuses[p.HealthStatus] {
		return fmt.Errorf("unknown health status %q: %w", p.HealthStatus, ErrInvalid)
	}
	if p.StartDate != nil && p.EndDate != nil && p.EndDate.Before(*p.StartDate) {
		return fmt.Errorf("project end date precedes start date: %w", ErrInvalid)
	}
	return nil
}

// PlannedCompletion is the desired completion date, else the planned end date.
func (p *Project) PlannedCompletion() *time.Time {
	if p.DesiredCompletionDate != nil {
		return p.DesiredCompletionDate
	}
	return p.EndDate
}

// IsOpen reports whether the project has no recorded actual end date.
func (p *Project) IsOpen() bool {
	return p.ActualEndDate == nil
}

// ExpectedCost is the larger of actual and forecast cost.
func (p *Project) ExpectedCost() float64 {
	if p.ForecastCost > p.ActualCost {
		return p.ForecastCost
	}
	return p.ActualCost
}

// DurationDays is the planned start-to-end span, or 0 when either is unset.
func (p *Project) DurationDays() int {
	if p.StartDate == nil || p.EndDate == nil {
		return 0
	}
	return int(p.EndDate.Sub(*p.StartDate).Hours() / 24)
}

type Resource struct {
	ID          int64     `json:"id"`
	ScenarioID  *int64    `json:"scenarioId"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Department  string    `json:"department"`
	CapacityPct int       `json:"capacityPct"`
	IsActive    bool      `json:"isActive"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (r *Resource) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return fmt.Errorf("resource name is required: %w", ErrInvalid)
	}
	if r.CapacityPct < 0 {
		return fmt.Errorf("resource capacity must not be negative: %w", ErrInvalid)
	}
	return nil
}

type Milestone struct {
	ID         int64      `json:"id"`
	ScenarioID *int64     `json:"scenarioId"`
	ProjectID  int64      `json:"projectId"`
	Name       string     `json:"name"`
	StartDate  *time.Time `json:"startDate"`
	EndDate    *time.Time `json:"endDate"`
	IsActive   bool       `json:"isActive"`
	CreatedAt  time.Time  `json:"createdAt"`
	UpdatedAt  time.Time  `json:"updatedAt"`
}

func (m *Milestone) Validate() error {
	if strings.TrimSpace(m.Name) == "" {
		return fmt.Errorf("milestone name is required: %w", ErrInvalid)
	}
	if m.ProjectID == 0 {
		return fmt.Errorf("milestone project is required: %w", ErrInvalid)
	}
	return nil
}
