package contract

import "github.com/alexanderramin/horizon/internal/domain"

type CreateAllocationRequest struct {
	ResourceID    int64  `json:"resourceId"`
	ProjectID     int64  `json:"projectId"`
	MilestoneID   *int64 `json:"milestoneId"`
	Percentage    int    `json:"percentage"`
	StartDate     *Date  `json:"startDate"`
	EndDate       *Date  `json:"endDate"`
	CapabilityID  *int64 `json:"capabilityId"`
	RequirementID *int64 `json:"requirementId"`
}

// Allocation builds the domain row. The scenario comes from the project.
func (r CreateAllocationRequest) Allocation() *domain.Allocation {
	return &domain.Allocation{
		ResourceID:    r.ResourceID,
		ProjectID:     r.ProjectID,
		MilestoneID:   r.MilestoneID,
		Percentage:    r.Percentage,
		StartDate:     r.StartDate.Value(),
		EndDate:       r.EndDate.Value(),
		CapabilityID:  r.CapabilityID,
		RequirementID: r.RequirementID,
	}
}

// AllocationPatch edits an allocation. Zero ids unlink the optional
// milestone, capability and requirement.
type AllocationPatch struct {
	MilestoneID   *int64 `json:"milestoneId"`
	Percentage    *int   `json:"percentage"`
	StartDate     *Date  `json:"startDate"`
	EndDate       *Date  `json:"endDate"`
	CapabilityID  *int64 `json:"capabilityId"`
	RequirementID *int64 `json:"requirementId"`
}

func (ap AllocationPatch) Apply(a *domain.Allocation) {
	if ap.MilestoneID != nil {
		a.MilestoneID = nonZero(*ap.MilestoneID)
	}
	a.Percentage = domain.PatchInt(a.Percentage, ap.Percentage)
	a.StartDate = domain.PatchTime(a.StartDate, ap.StartDate.Patch())
	a.EndDate = domain.PatchTime(a.EndDate, ap.EndDate.Patch())
	if ap.CapabilityID != nil {
		a.CapabilityID = nonZero(*ap.CapabilityID)
	}
	if ap.RequirementID != nil {
		a.RequirementID = nonZero(*ap.RequirementID)
	}
}

// OverlapResponse is a resource's peak concurrent allocation within a scope.
type OverlapResponse struct {
	ResourceID    int64  `json:"resourceId"`
	ScenarioID    *int64 `json:"scenarioId"`
	MaxConcurrent int    `json:"maxConcurrent"`
	OverAllocated bool   `json:"overAllocated"`
}

type AllocationResponse struct {
	Allocation *domain.Allocation `json:"allocation"`
	Overlap    OverlapResponse    `json:"overlap"`
}

type SuggestRequest struct {
	ProjectID int64
	// MinScore drops pairs scoring below it.
	MinScore int
	// Limit caps the result; zero means no cap.
	Limit int
}

func NewSuggestRequest(projectID int64) SuggestRequest {
	return SuggestRequest{
		ProjectID: projectID,
		MinScore:  40,
		Limit:     10,
	}
}
