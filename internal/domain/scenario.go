package domain

import (
	"fmt"
	"strings"
	"time"
)

// Scenario is a named planning snapshot. Status moves planned -> published
// and never back; delete is a soft exit available only while planned.
type Scenario struct {
	ID                int64          `json:"id"`
	Name              string         `json:"name"`
	Description       string         `json:"description"`
	Status            ScenarioStatus `json:"status"`
	CreatedBy         int64          `json:"createdBy"`
	PublishedBy       *int64         `json:"publishedBy"`
	PublishedAt       *time.Time     `json:"publishedAt"`
	ParentScenarioID  *int64         `json:"parentScenarioId"`
	SegmentFunctionID *int64         `json:"segmentFunctionId"`
	Metadata          map[string]any `json:"metadata"`
	IsActive          bool           `json:"isActive"`
	CreatedAt         time.Time      `json:"createdAt"`
	UpdatedAt         time.Time      `json:"updatedAt"`
}

// Validate checks the fields a caller supplies on create and update.
func (s *Scenario) Validate() error {
	if strings.TrimSpace(s.Name) == "" {
		return fmt.Errorf("scenario name is required: %w", ErrInvalid)
	}
	return nil
}

func (s *Scenario) IsPublished() bool {
	return s.Status == ScenarioPublished
}

func (s *Scenario) IsCreator(u *User) bool {
	return u != nil && s.CreatedBy == u.ID
}

// CanView is true for published scenarios, the creator, and elevated roles.
func (s *Scenario) CanView(u *User) bool {
	return s.IsPublished() || s.IsCreator(u) || u.IsElevated()
}

// CanModify requires ownership or an elevated role, and an unpublished scenario.
func (s *Scenario) CanModify(u *User) bool {
	return (s.IsCreator(u) || u.IsElevated()) && !s.IsPublished()
}

// CheckModify returns the error CanModify would map to: ErrForbidden for a
// non-owner, ErrInvalidState for a published scenario.
func (s *Scenario) CheckModify(u *User) error {
	if !s.IsCreator(u) && !u.IsElevated() {
		return fmt.Errorf("user %d cannot modify scenario %d: %w", userID(u), s.ID, ErrForbidden)
	}
	if s.IsPublished() {
		return fmt.Errorf("scenario %d is published: %w", s.ID, ErrInvalidState)
	}
	return nil
}

// Publish applies the terminal planned -> published transition.
func (s *Scenario) Publish(u *User, now time.Time) error {
	if !u.IsElevated() {
		return fmt.Errorf("user %d cannot publish scenario %d: %w", userID(u), s.ID, ErrForbidden)
	}
	if s.IsPublished() {
		return fmt.Errorf("scenario %d: %w", s.ID, ErrAlreadyPublished)
	}
	publisher := u.ID
	s.Status = ScenarioPublished
	s.PublishedBy = &publisher
	s.PublishedAt = &now
	s.UpdatedAt = now
	return nil
}

// CheckDelete validates a soft delete. Only the creator or an elevated role
// may delete, and only while the scenario is planned.
func (s *Scenario) CheckDelete(u *User) error {
	if !s.IsCreator(u) && !u.IsElevated() {
		return fmt.Errorf("user %d cannot delete scenario %d: %w", userID(u), s.ID, ErrForbidden)
	}
	if s.IsPublished() {
		return fmt.Errorf("published scenario %d cannot be deleted: %w", s.ID, ErrInvalidState)
	}
	return nil
}

func userID(u *User) int64 {
	if u == nil {
		return 0
	}
	return u.ID
}
