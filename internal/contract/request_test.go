package contract

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/alexanderramin/horizon/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- constructor defaults ---

func TestNewCloneRequest_DefaultsToGeneratedName(t *testing.T) {
	req := NewCloneRequest(7)
	assert.Equal(t, int64(7), req.SourceID)
	assert.Empty(t, req.Name)
}

func TestNewSuggestRequest_SetsDefaults(t *testing.T) {
	req := NewSuggestRequest(3)
	assert.Equal(t, int64(3), req.ProjectID)
	assert.Equal(t, 40, req.MinScore)
	assert.Equal(t, 10, req.Limit)
}

func TestScenarioScope_ZeroIsBaseline(t *testing.T) {
	assert.Nil(t, ScenarioScope(0))
	require.NotNil(t, ScenarioScope(4))
	assert.Equal(t, int64(4), *ScenarioScope(4))
}

// --- dates ---

func TestParseDate(t *testing.T) {
	tests := []struct {
		in      string
		want    time.Time
		wantErr bool
	}{
		{in: "2026-03-01", want: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)},
		{in: "2026-03-01T15:04:05Z", want: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)},
		{in: "", want: time.Time{}},
		{in: "03/01/2026", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseDate(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, domain.ErrInvalid)
				return
			}
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got.Time), "got %v", got.Time)
		})
	}
}

func TestDate_PatchSemantics(t *testing.T) {
	var body struct {
		Set   *Date `json:"set"`
		Clear *Date `json:"clear"`
		Skip  *Date `json:"skip"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"set":"2026-05-01","clear":""}`), &body))

	current := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "2026-05-01", domain.PatchTime(&current, body.Set.Patch()).Format(DateLayout))
	assert.Nil(t, domain.PatchTime(&current, body.Clear.Patch()))
	assert.Equal(t, &current, domain.PatchTime(&current, body.Skip.Patch()))

	assert.Nil(t, body.Clear.Value(), "empty create date is unset")
	assert.Nil(t, body.Skip.Value())
}

func TestDate_MarshalJSON(t *testing.T) {
	b, err := json.Marshal(Date{time.Date(2026, 2, 3, 0, 0, 0, 0, time.UTC)})
	require.NoError(t, err)
	assert.Equal(t, `"2026-02-03"`, string(b))
}

// --- patches ---

func TestAllocationPatch_ZeroUnlinks(t *testing.T) {
	ms, capID := int64(5), int64(6)
	a := &domain.Allocation{MilestoneID: &ms, CapabilityID: &capID, Percentage: 40}
	zero, pct := int64(0), 60
	AllocationPatch{MilestoneID: &zero, Percentage: &pct}.Apply(a)

	assert.Nil(t, a.MilestoneID)
	assert.Equal(t, &capID, a.CapabilityID, "unset patch field keeps the link")
	assert.Equal(t, 60, a.Percentage)
}

func TestCreateResourceRequest_DefaultCapacity(t *testing.T) {
	r := CreateResourceRequest{ScenarioID: 2, Name: "Ada"}.Resource()
	assert.Equal(t, 100, r.CapacityPct)
	require.NotNil(t, r.ScenarioID)
	assert.Equal(t, int64(2), *r.ScenarioID)
}
