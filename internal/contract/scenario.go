package contract

import "github.com/alexanderramin/horizon/internal/domain"

type CreateScenarioRequest struct {
	Name              string         `json:"name"`
	Description       string         `json:"description"`
	SegmentFunctionID *int64         `json:"segmentFunctionId"`
	Metadata          map[string]any `json:"metadata"`
}

// UpdateScenarioRequest patches a planned scenario. Nil fields are left
// unchanged; a non-nil Metadata replaces the stored map.
type UpdateScenarioRequest struct {
	Name              *string        `json:"name"`
	Description       *string        `json:"description"`
	SegmentFunctionID *int64         `json:"segmentFunctionId"`
	Metadata          map[string]any `json:"metadata"`
}

type CloneRequest struct {
	SourceID int64 `json:"-"`
	// Name defaults to "<source name> (copy)".
	Name string `json:"name"`
}

func NewCloneRequest(sourceID int64) CloneRequest {
	return CloneRequest{SourceID: sourceID}
}

// CloneCounts reports how many rows of each kind a clone copied.
type CloneCounts struct {
	Projects     int `json:"projects"`
	Requirements int `json:"requirements"`
	Resources    int `json:"resources"`
	Capabilities int `json:"capabilities"`
	Milestones   int `json:"milestones"`
	Dependencies int `json:"dependencies"`
	Allocations  int `json:"allocations"`
}

type CloneResponse struct {
	Scenario *domain.Scenario `json:"scenario"`
	Copied   CloneCounts      `json:"copied"`
}

type ScenarioStatsResponse struct {
	ScenarioID      int64 `json:"scenarioId"`
	ProjectCount    int   `json:"projectCount"`
	ResourceCount   int   `json:"resourceCount"`
	MilestoneCount  int   `json:"milestoneCount"`
	DependencyCount int   `json:"dependencyCount"`
	AllocationCount int   `json:"allocationCount"`
}

// ScenarioScope maps a wire scenario id to a store scope. Zero selects the
// unscoped baseline rows.
func ScenarioScope(id int64) *int64 {
	return nonZero(id)
}

func nonZero(id int64) *int64 {
	if id == 0 {
		return nil
	}
	return &id
}
