package service

import (
	"context"
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingObserver struct {
	events []UseCaseEvent
}

func (o *recordingObserver) ObserveUseCase(_ context.Context, e UseCaseEvent) {
	o.events = append(o.events, e)
}

func TestObserve_ReportsOutcome(t *testing.T) {
	obs := &recordingObserver{}
	run := func(fail bool) (err error) {
		fields := map[string]any{"scenario_id": int64(7)}
		defer observe(context.Background(), obs, "demo", fields)(&err)
		fields["late"] = true
		if fail {
			return errors.New("boom")
		}
		return nil
	}

	require.NoError(t, run(false))
	require.Error(t, run(true))

	require.Len(t, obs.events, 2)
	assert.Equal(t, "demo", obs.events[0].Name)
	assert.True(t, obs.events[0].Success)
	assert.Equal(t, true, obs.events[0].Fields["late"])
	assert.False(t, obs.events[1].Success)
	assert.EqualError(t, obs.events[1].Err, "boom")
}

func TestLogUseCaseObserver(t *testing.T) {
	logger, hook := test.NewNullLogger()
	obs := NewLogUseCaseObserver(logger)

	obs.ObserveUseCase(context.Background(), UseCaseEvent{
		Name:    "clone-scenario",
		Success: true,
		Fields:  map[string]any{"scenario_id": int64(3)},
	})
	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, logrus.InfoLevel, entry.Level)
	assert.Equal(t, "service_use_case", entry.Message)
	assert.Equal(t, "clone-scenario", entry.Data["use_case"])
	assert.Equal(t, int64(3), entry.Data["scenario_id"])

	obs.ObserveUseCase(context.Background(), UseCaseEvent{Name: "clone-scenario", Err: errors.New("boom")})
	assert.Equal(t, logrus.ErrorLevel, hook.LastEntry().Level)
}

func TestUseCaseObserverOrNoop(t *testing.T) {
	assert.IsType(t, NoopUseCaseObserver{}, useCaseObserverOrNoop(nil))
	rec := &recordingObserver{}
	assert.Same(t, rec, useCaseObserverOrNoop([]UseCaseObserver{nil, rec}))
}

func TestUseCaseObserverOrNoop_FansOut(t *testing.T) {
	a, b := &recordingObserver{}, &recordingObserver{}
	obs := useCaseObserverOrNoop([]UseCaseObserver{a, nil, b})
	obs.ObserveUseCase(context.Background(), UseCaseEvent{Name: "publish-scenario"})

	require.Len(t, a.events, 1)
	require.Len(t, b.events, 1)
	assert.Equal(t, "publish-scenario", b.events[0].Name)
}
