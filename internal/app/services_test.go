package app

import (
	"context"
	"testing"

	"github.com/alexanderramin/horizon/internal/config"
	"github.com/alexanderramin/horizon/internal/contract"
	"github.com/alexanderramin/horizon/internal/domain"
	"github.com/alexanderramin/horizon/internal/logutils"
	"github.com/alexanderramin/horizon/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScenarioOptions_FromConfig(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Scenario.PlannedQuota = 5
	cfg.Scenario.ProjectPrefix = "INI"
	cfg.Clone.StrictReferences = true

	opts := ScenarioOptions(cfg)
	assert.Equal(t, 5, opts.PlannedQuota)
	assert.Equal(t, "INI", opts.ProjectPrefix)
	assert.True(t, opts.StrictReferences)
}

func TestNewServices_EndToEnd(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Scenario.ProjectPrefix = "INI"
	svc := NewServices(testutil.NewTestDB(t), cfg, logutils.NewDiscard())
	ctx := context.Background()

	owner, err := svc.Users.Register(ctx, "alice", domain.RolePlanner)
	require.NoError(t, err)

	sc, err := svc.Scenarios.Create(ctx, owner, contract.CreateScenarioRequest{Name: "Plan"})
	require.NoError(t, err)

	p := contract.CreateProjectRequest{ScenarioID: sc.ID, Name: "Payments"}.Project()
	require.NoError(t, svc.Planning.CreateProject(ctx, owner, p))
	assert.Equal(t, "INI-0001", p.ProjectNumber)

	clone, err := svc.Scenarios.Clone(ctx, owner, contract.NewCloneRequest(sc.ID))
	require.NoError(t, err)
	assert.Equal(t, 1, clone.Copied.Projects)

	stats, err := svc.Scenarios.Stats(ctx, owner, clone.Scenario.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.ProjectCount)
}
