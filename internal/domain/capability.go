package domain

import (
	"fmt"
	"strings"
	"time"
)

// Skill is the (application, technology, role) triple shared by capabilities
// and requirements.
type Skill struct {
	Application string      `json:"application"`
	Technology  string      `json:"technology"`
	Role        string      `json:"role"`
	Proficiency Proficiency `json:"proficiency"`
}

func (s Skill) validate() error {
	if strings.TrimSpace(s.Application) == "" && strings.TrimSpace(s.Technology) == "" && strings.TrimSpace(s.Role) == "" {
		return fmt.Errorf("at least one of application, technology or role is required: %w", ErrInvalid)
	}
	if !s.Proficiency.IsValid() {
		return fmt.Errorf("unknown proficiency %q: %w", s.Proficiency, ErrInvalid)
	}
	return nil
}

// Capability is a skill a resource offers.
type Capability struct {
	Skill
	ID         int64     `json:"id"`
	ScenarioID *int64    `json:"scenarioId"`
	ResourceID int64     `json:"resourceId"`
	IsPrimary  bool      `json:"isPrimary"`
	IsActive   bool      `json:"isActive"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

func (c *Capability) Validate() error {
	if c.ResourceID <= 0 {
		return fmt.Errorf("capability resource is required: %w", ErrInvalid)
	}
	return c.Skill.validate()
}

// Requirement is a skill a project needs, RequiredCount times.
type Requirement struct {
	Skill
	ID             int64     `json:"id"`
	ScenarioID     *int64    `json:"scenarioId"`
	ProjectID      int64     `json:"projectId"`
	RequiredCount  int       `json:"requiredCount"`
	FulfilledCount int       `json:"fulfilledCount"`
	IsActive       bool      `json:"isActive"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

func (r *Requirement) Validate() error {
	if r.ProjectID <= 0 {
		return fmt.Errorf("requirement project is required: %w", ErrInvalid)
	}
	if r.RequiredCount < 0 || r.FulfilledCount < 0 {
		return fmt.Errorf("requirement counts must not be negative: %w", ErrInvalid)
	}
	return r.Skill.validate()
}
