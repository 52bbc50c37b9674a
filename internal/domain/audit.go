package domain

import "time"

// AuditEvent records a successful mutating operation.
type AuditEvent struct {
	ID         string         `json:"id"`
	ActorID    int64          `json:"actorId"`
	Action     string         `json:"action"`
	ScenarioID *int64         `json:"scenarioId"`
	Detail     map[string]any `json:"detail"`
	CreatedAt  time.Time      `json:"createdAt"`
}
