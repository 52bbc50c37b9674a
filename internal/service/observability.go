package service

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
)

// UseCaseEvent is one finished service call.
type UseCaseEvent struct {
	Name      string
	StartedAt time.Time
	Duration  time.Duration
	Success   bool
	Err       error
	// Fields carries ids of the entities the call touched.
	Fields map[string]any
}

type UseCaseObserver interface {
	ObserveUseCase(ctx context.Context, event UseCaseEvent)
}

// NoopUseCaseObserver drops every event.
type NoopUseCaseObserver struct{}

func (NoopUseCaseObserver) ObserveUseCase(context.Context, UseCaseEvent) {}

// fanout forwards each event to every wrapped observer in order.
type fanout []UseCaseObserver

func (f fanout) ObserveUseCase(ctx context.Context, event UseCaseEvent) {
	for _, obs := range f {
		obs.ObserveUseCase(ctx, event)
	}
}

// useCaseObserverOrNoop collapses the variadic observers a constructor
// accepts. Nil entries are skipped.
func useCaseObserverOrNoop(observers []UseCaseObserver) UseCaseObserver {
	var live fanout
	for _, obs := range observers {
		if obs != nil {
			live = append(live, obs)
		}
	}
	switch len(live) {
	case 0:
		return NoopUseCaseObserver{}
	case 1:
		return live[0]
	default:
		return live
	}
}

type logUseCaseObserver struct {
	logger *logrus.Logger
}

// NewLogUseCaseObserver logs a "service_use_case" entry per event, at error
// level when the call failed.
func NewLogUseCaseObserver(logger *logrus.Logger) UseCaseObserver {
	if logger == nil {
		return NoopUseCaseObserver{}
	}
	return &logUseCaseObserver{logger: logger}
}

func (o *logUseCaseObserver) ObserveUseCase(ctx context.Context, event UseCaseEvent) {
	entry := o.logger.WithContext(ctx).
		WithFields(logrus.Fields(event.Fields)).
		WithFields(logrus.Fields{
			"use_case":    event.Name,
			"duration_ms": event.Duration.Milliseconds(),
			"success":     event.Success,
		})
	if event.Err != nil {
		entry.WithError(event.Err).Error("service_use_case")
		return
	}
	entry.Info("service_use_case")
}

// observe starts timing a call. Defer the returned func with a pointer to
// the named error result.
func observe(ctx context.Context, obs UseCaseObserver, name string, fields map[string]any) func(*error) {
	start := time.Now().UTC()
	return func(errp *error) {
		ev := UseCaseEvent{Name: name, StartedAt: start, Duration: time.Since(start), Fields: fields}
		if errp != nil {
			ev.Err = *errp
		}
		ev.Success = ev.Err == nil
		obs.ObserveUseCase(ctx, ev)
	}
}
