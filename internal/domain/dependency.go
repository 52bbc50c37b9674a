package domain

import (
	"fmt"
	"time"
)

// Endpoint is one side of a dependency edge: a project or milestone, and the
// edge of that entity the dependency attaches to.
type Endpoint struct {
	Kind   EntityKind `json:"kind"`
	ID     int64      `json:"id"`
	Anchor Anchor     `json:"anchor"`
}

func (e Endpoint) String() string {
	return fmt.Sprintf("%s:%d@%s", e.Kind, e.ID, e.Anchor)
}

// Ref is the (kind, id) key used to resolve the endpoint.
func (e Endpoint) Ref() EntityRef {
	return EntityRef{Kind: e.Kind, ID: e.ID}
}

// EntityRef identifies a row by its entity kind and id.
type EntityRef struct {
	Kind EntityKind `json:"kind"`
	ID   int64      `json:"id"`
}

type Dependency struct {
	ID             int64          `json:"id"`
	ScenarioID     *int64         `json:"scenarioId"`
	Predecessor    Endpoint       `json:"predecessor"`
	Successor      Endpoint       `json:"successor"`
	DependencyType DependencyType `json:"dependencyType"`
	LagDays        int            `json:"lagDays"`
	IsActive       bool           `json:"isActive"`
	CreatedAt      time.Time      `json:"createdAt"`
	UpdatedAt      time.Time      `json:"updatedAt"`
}

// Validate checks the shape of the edge. Resolving the endpoints against the
// store is the caller's job.
func (d *Dependency) Validate() error {
	for _, ep := range []Endpoint{d.Predecessor, d.Successor} {
		if !ep.Kind.IsValid() {
			return fmt.Errorf("unknown endpoint kind %q: %w", ep.Kind, ErrInvalid)
		}
		if !ep.Anchor.IsValid() {
			return fmt.Errorf("unknown endpoint anchor %q: %w", ep.Anchor, ErrInvalid)
		}
		if ep.ID <= 0 {
			return fmt.Errorf("endpoint id is required: %w", ErrInvalid)
		}
	}
	if !d.DependencyType.IsValid() {
		return fmt.Errorf("unknown dependency type %q: %w", d.DependencyType, ErrInvalid)
	}
	if d.Predecessor.Ref() == d.Successor.Ref() {
		return fmt.Errorf("dependency cannot reference itself: %w", ErrInvalid)
	}
	return nil
}

// DefaultAnchors fills unset anchors from the dependency type: the first
// letter names the predecessor edge, the second the successor edge. An
// unknown type is left for Validate to reject.
func (d *Dependency) DefaultAnchors() {
	if d.DependencyType == "" {
		d.DependencyType = DependencyFS
	}
	if !d.DependencyType.IsValid() {
		return
	}
	code := string(d.DependencyType)
	if d.Predecessor.Anchor == "" {
		d.Predecessor.Anchor = anchorFor(code[0])
	}
	if d.Successor.Anchor == "" {
		d.Successor.Anchor = anchorFor(code[1])
	}
}

func anchorFor(c byte) Anchor {
	if c == 'S' {
		return AnchorStart
	}
	return AnchorEnd
}

type Allocation struct {
	ID            int64      `json:"id"`
	ScenarioID    *int64     `json:"scenarioId"`
	ResourceID    int64      `json:"resourceId"`
	ProjectID     int64      `json:"projectId"`
	MilestoneID   *int64     `json:"milestoneId"`
	Percentage    int        `json:"percentage"`
	StartDate     *time.Time `json:"startDate"`
	EndDate       *time.Time `json:"endDate"`
	CapabilityID  *int64     `json:"capabilityId"`
	RequirementID *int64     `json:"requirementId"`
	MatchScore    *int       `json:"matchScore"`
	IsActive      bool       `json:"isActive"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}

func (a *Allocation) Validate() error {
	if a.ResourceID <= 0 || a.ProjectID <= 0 {
		return fmt.Errorf("allocation needs a resource and a project: %w", ErrInvalid)
	}
	if a.Percentage < 0 || a.Percentage > 100 {
		return fmt.Errorf("allocation percentage %d outside 0-100: %w", a.Percentage, ErrInvalid)
	}
	if a.StartDate != nil && a.EndDate != nil && a.EndDate.Before(*a.StartDate) {
		return fmt.Errorf("allocation end date precedes start date: %w", ErrInvalid)
	}
	return nil
}

// IsTimed reports whether both the start and end dates are set.
func (a *Allocation) IsTimed() bool {
	return a.StartDate != nil && a.EndDate != nil
}
