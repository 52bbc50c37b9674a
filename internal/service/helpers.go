package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/horizon/internal/domain"
	"github.com/alexanderramin/horizon/internal/logutils"
	"github.com/alexanderramin/horizon/internal/repository"
	"github.com/sirupsen/logrus"
)

// loadActiveScenario returns ErrNotFound for soft-deleted scenarios as well
// as missing ones.
func loadActiveScenario(ctx context.Context, scenarios repository.ScenarioRepo, id int64) (*domain.Scenario, error) {
	sc, err := scenarios.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !sc.IsActive {
		return nil, fmt.Errorf("scenario %d: %w", id, domain.ErrNotFound)
	}
	return sc, nil
}

// scopeGuard answers permission questions about the scenario that owns a
// scoped row.
type scopeGuard struct {
	scenarios repository.ScenarioRepo
}

// checkModify applies canModify of the owning scenario. Baseline rows have no
// owner and need an elevated role.
func (g scopeGuard) checkModify(ctx context.Context, actor *domain.User, scenarioID *int64) error {
	if actor == nil {
		return fmt.Errorf("no acting user: %w", domain.ErrForbidden)
	}
	if scenarioID == nil {
		if !actor.IsElevated() {
			return fmt.Errorf("user %d cannot modify baseline rows: %w", actor.ID, domain.ErrForbidden)
		}
		return nil
	}
	sc, err := loadActiveScenario(ctx, g.scenarios, *scenarioID)
	if err != nil {
		return err
	}
	return sc.CheckModify(actor)
}

// checkView applies canView of the owning scenario. Baseline rows are
// visible to everyone.
func (g scopeGuard) checkView(ctx context.Context, actor *domain.User, scenarioID *int64) error {
	if scenarioID == nil {
		return nil
	}
	sc, err := loadActiveScenario(ctx, g.scenarios, *scenarioID)
	if err != nil {
		return err
	}
	if !sc.CanView(actor) {
		return fmt.Errorf("user %d cannot view scenario %d: %w", actorID(actor), sc.ID, domain.ErrForbidden)
	}
	return nil
}

// logDenied records forbidden outcomes with the user and the resource they
// tried to touch, then hands the error back unchanged.
func logDenied(err error, actor *domain.User, resource string, id int64) error {
	if errors.Is(err, domain.ErrForbidden) {
		logutils.Log.WithFields(logrus.Fields{
			"user_id":     actorID(actor),
			"resource":    resource,
			"resource_id": id,
		}).Warn("permission denied")
	}
	return err
}

func actorID(u *domain.User) int64 {
	if u == nil {
		return 0
	}
	return u.ID
}

// sameScope reports whether two scenario references name the same scope.
func sameScope(a, b *int64) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func scopeField(id *int64) any {
	if id == nil {
		return "baseline"
	}
	return *id
}

// auditor appends audit events. Writes are best-effort: a failure is logged
// and never returned to the caller.
type auditor struct {
	repo repository.AuditRepo
	now  func() time.Time
}

func newAuditor(repo repository.AuditRepo) *auditor {
	return &auditor{repo: repo, now: func() time.Time { return time.Now().UTC() }}
}

func (a *auditor) record(ctx context.Context, actor *domain.User, action string, scenarioID *int64, detail map[string]any) {
	if a == nil || a.repo == nil {
		return
	}
	ev := &domain.AuditEvent{
		ActorID:    actorID(actor),
		Action:     action,
		ScenarioID: scenarioID,
		Detail:     detail,
		CreatedAt:  a.now(),
	}
	if err := a.repo.Append(ctx, ev); err != nil {
		logutils.Log.WithFields(logrus.Fields{
			"action":   action,
			"actor_id": ev.ActorID,
		}).WithError(err).Warn("audit write failed")
	}
}
