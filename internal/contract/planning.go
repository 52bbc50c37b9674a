package contract

import "github.com/alexanderramin/horizon/internal/domain"

type CreateProjectRequest struct {
	ScenarioID int64 `json:"scenarioId"`
	// ProjectNumber is allocated from the scenario counter when empty.
	ProjectNumber         string              `json:"projectNumber"`
	Name                  string              `json:"name"`
	SegmentFunctionID     *int64              `json:"segmentFunctionId"`
	Budget                float64             `json:"budget"`
	ActualCost            float64             `json:"actualCost"`
	ForecastCost          float64             `json:"forecastCost"`
	StartDate             *Date               `json:"startDate"`
	EndDate               *Date               `json:"endDate"`
	ActualEndDate         *Date               `json:"actualEndDate"`
	DesiredCompletionDate *Date               `json:"desiredCompletionDate"`
	HealthStatus          domain.HealthStatus `json:"healthStatus"`
}

func (r CreateProjectRequest) Project() *domain.Project {
	return &domain.Project{
		ScenarioID:            ScenarioScope(r.ScenarioID),
		ProjectNumber:         r.ProjectNumber,
		Name:                  r.Name,
		SegmentFunctionID:     r.SegmentFunctionID,
		Budget:                r.Budget,
		ActualCost:            r.ActualCost,
		ForecastCost:          r.ForecastCost,
		StartDate:             r.StartDate.Value(),
		EndDate:               r.EndDate.Value(),
		ActualEndDate:         r.ActualEndDate.Value(),
		DesiredCompletionDate: r.DesiredCompletionDate.Value(),
		HealthStatus:          r.HealthStatus,
	}
}

type ProjectPatch struct {
	ProjectNumber         *string              `json:"projectNumber"`
	Name                  *string              `json:"name"`
	SegmentFunctionID     *int64               `json:"segmentFunctionId"`
	Budget                *float64             `json:"budget"`
	ActualCost            *float64             `json:"actualCost"`
	ForecastCost          *float64             `json:"forecastCost"`
	StartDate             *Date                `json:"startDate"`
	EndDate               *Date                `json:"endDate"`
	ActualEndDate         *Date                `json:"actualEndDate"`
	DesiredCompletionDate *Date                `json:"desiredCompletionDate"`
	HealthStatus          *domain.HealthStatus `json:"healthStatus"`
}

// Apply copies the set fields onto p.
func (pp ProjectPatch) Apply(p *domain.Project) {
	p.ProjectNumber = domain.PatchStr(p.ProjectNumber, pp.ProjectNumber)
	p.Name = domain.PatchStr(p.Name, pp.Name)
	if pp.SegmentFunctionID != nil {
		// zero unlinks the segment function
		p.SegmentFunctionID = nonZero(*pp.SegmentFunctionID)
	}
	p.Budget = domain.PatchFloat(p.Budget, pp.Budget)
	p.ActualCost = domain.PatchFloat(p.ActualCost, pp.ActualCost)
	p.ForecastCost = domain.PatchFloat(p.ForecastCost, pp.ForecastCost)
	p.StartDate = domain.PatchTime(p.StartDate, pp.StartDate.Patch())
	p.EndDate = domain.PatchTime(p.EndDate, pp.EndDate.Patch())
	p.ActualEndDate = domain.PatchTime(p.ActualEndDate, pp.ActualEndDate.Patch())
	p.DesiredCompletionDate = domain.PatchTime(p.DesiredCompletionDate, pp.DesiredCompletionDate.Patch())
	if pp.HealthStatus != nil {
		p.HealthStatus = *pp.HealthStatus
	}
}

type CreateResourceRequest struct {
	ScenarioID  int64  `json:"scenarioId"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	Department  string `json:"department"`
	CapacityPct *int   `json:"capacityPct"`
}

func (r CreateResourceRequest) Resource() *domain.Resource {
	capacity := 100
	if r.CapacityPct != nil {
		capacity = *r.CapacityPct
	}
	return &domain.Resource{
		ScenarioID:  ScenarioScope(r.ScenarioID),
		Name:        r.Name,
		Email:       r.Email,
		Department:  r.Department,
		CapacityPct: capacity,
	}
}

type ResourcePatch struct {
	Name        *string `json:"name"`
	Email       *string `json:"email"`
	Department  *string `json:"department"`
	CapacityPct *int    `json:"capacityPct"`
}

func (rp ResourcePatch) Apply(r *domain.Resource) {
	r.Name = domain.PatchStr(r.Name, rp.Name)
	r.Email = domain.PatchStr(r.Email, rp.Email)
	r.Department = domain.PatchStr(r.Department, rp.Department)
	r.CapacityPct = domain.PatchInt(r.CapacityPct, rp.CapacityPct)
}

type MilestonePatch struct {
	Name      *string `json:"name"`
	StartDate *Date   `json:"startDate"`
	EndDate   *Date   `json:"endDate"`
}

func (mp MilestonePatch) Apply(m *domain.Milestone) {
	m.Name = domain.PatchStr(m.Name, mp.Name)
	m.StartDate = domain.PatchTime(m.StartDate, mp.StartDate.Patch())
	m.EndDate = domain.PatchTime(m.EndDate, mp.EndDate.Patch())
}

type DependencyPatch struct {
	DependencyType *domain.DependencyType `json:"dependencyType"`
	LagDays        *int                   `json:"lagDays"`
}

func (dp DependencyPatch) Apply(d *domain.Dependency) {
	if dp.DependencyType != nil {
		d.DependencyType = *dp.DependencyType
	}
	d.LagDays = domain.PatchInt(d.LagDays, dp.LagDays)
}

type RequirementPatch struct {
	Proficiency    *domain.Proficiency `json:"proficiency"`
	RequiredCount  *int                `json:"requiredCount"`
	FulfilledCount *int                `json:"fulfilledCount"`
}

func (rp RequirementPatch) Apply(r *domain.Requirement) {
	if rp.Proficiency != nil {
		r.Proficiency = *rp.Proficiency
	}
	r.RequiredCount = domain.PatchInt(r.RequiredCount, rp.RequiredCount)
	r.FulfilledCount = domain.PatchInt(r.FulfilledCount, rp.FulfilledCount)
}

type CapabilityPatch struct {
	Proficiency *domain.Proficiency `json:"proficiency"`
	IsPrimary   *bool               `json:"isPrimary"`
}

func (cp CapabilityPatch) Apply(c *domain.Capability) {
	if cp.Proficiency != nil {
		c.Proficiency = *cp.Proficiency
	}
	if cp.IsPrimary != nil {
		c.IsPrimary = *cp.IsPrimary
	}
}

type CreateMilestoneRequest struct {
	ProjectID int64  `json:"projectId"`
	Name      string `json:"name"`
	StartDate *Date  `json:"startDate"`
	EndDate   *Date  `json:"endDate"`
}

// Milestone builds the domain row. The scenario comes from the project.
func (r CreateMilestoneRequest) Milestone() *domain.Milestone {
	return &domain.Milestone{
		ProjectID: r.ProjectID,
		Name:      r.Name,
		StartDate: r.StartDate.Value(),
		EndDate:   r.EndDate.Value(),
	}
}

// CreateDependencyRequest links two endpoints. Unset anchors follow the
// dependency type, which defaults to FS.
type CreateDependencyRequest struct {
	ScenarioID     int64                 `json:"scenarioId"`
	Predecessor    domain.Endpoint       `json:"predecessor"`
	Successor      domain.Endpoint       `json:"successor"`
	DependencyType domain.DependencyType `json:"dependencyType"`
	LagDays        int                   `json:"lagDays"`
}

func (r CreateDependencyRequest) Dependency() *domain.Dependency {
	return &domain.Dependency{
		ScenarioID:     ScenarioScope(r.ScenarioID),
		Predecessor:    r.Predecessor,
		Successor:      r.Successor,
		DependencyType: r.DependencyType,
		LagDays:        r.LagDays,
	}
}

type CreateRequirementRequest struct {
	domain.Skill
	ProjectID int64 `json:"projectId"`
	// RequiredCount defaults to 1.
	RequiredCount int `json:"requiredCount"`
}

func (r CreateRequirementRequest) Requirement() *domain.Requirement {
	return &domain.Requirement{
		Skill:         r.Skill,
		ProjectID:     r.ProjectID,
		RequiredCount: r.RequiredCount,
	}
}

type CreateCapabilityRequest struct {
	domain.Skill
	ResourceID int64 `json:"resourceId"`
	IsPrimary  bool  `json:"isPrimary"`
}

func (r CreateCapabilityRequest) Capability() *domain.Capability {
	return &domain.Capability{
		Skill:      r.Skill,
		ResourceID: r.ResourceID,
		IsPrimary:  r.IsPrimary,
	}
}
