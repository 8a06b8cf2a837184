package runner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/timerunner/internal/config"
)

func TestMaxRise(t *testing.T) {
	r := NewReach(config.DefaultRunnerConfig())
	assert.Equal(t, 210, r.MaxRise())

	single := config.DefaultRunnerConfig()
	single.Physics.MaxJumps = 1
	assert.Equal(t, 105, NewReach(single).MaxRise())
}

func TestCanReach(t *testing.T) {
	r := NewReach(config.DefaultRunnerConfig())

	tests := []struct {
		name     string
		from, to Group
		want     bool
	}{
		{"same height", Group{X: 0, Y: 280}, Group{X: 394, Y: 280}, true},
		{"largest generated rise", Group{X: 0, Y: 280}, Group{X: 394, Y: 140}, true},
		{"drop", Group{X: 0, Y: 140}, Group{X: 394, Y: 280}, true},
		{"initial gap", Group{X: 150, Y: 280}, Group{X: 400, Y: 250}, true},
		{"rise above double jump", Group{X: 0, Y: 280}, Group{X: 394, Y: 30}, false},
		{"too far", Group{X: 0, Y: 280}, Group{X: 2000, Y: 280}, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, r.CanReach(tc.from, tc.to))
		})
	}
}

func TestSettleLowersUnreachableGroup(t *testing.T) {
	r := NewReach(config.DefaultRunnerConfig())
	prev := Group{X: 0, Y: 280}

	y := r.Settle(prev, Group{X: 394, Y: 30})
	assert.Greater(t, y, 30)
	assert.LessOrEqual(t, y, 280)
	assert.Zero(t, (y-30)%5, "lowered in whole steps")
	assert.True(t, r.CanReach(prev, Group{X: 394, Y: y}))
	assert.False(t, r.CanReach(prev, Group{X: 394, Y: y - 5}), "settles on the first reachable step")

	assert.Equal(t, 215, r.Settle(prev, Group{X: 394, Y: 215}), "reachable groups stay put")
}

func TestAuditReportsViolations(t *testing.T) {
	r := NewReach(config.DefaultRunnerConfig())

	l := &Level{Groups: []Group{
		{X: 0, Y: 280, Fires: 1},
		{X: 394, Y: 280},
		{X: 788, Y: 280},
		{X: 1182, Y: 280},
		{X: 1576, Y: 280, Fires: 1, Hidden: true, Blackout: true},
		{X: 1970, Y: 280, Fires: 1, Hidden: true, Blackout: true},
		{X: 2364, Y: 30, Fires: 1},
	}}

	got := r.Audit(l)
	require.Len(t, got, 3)
	assert.Equal(t, Violation{Kind: ViolationEmptyRun, Group: 3}, got[0])
	assert.Equal(t, Violation{Kind: ViolationBlackout, Group: 5}, got[1])
	assert.Equal(t, Violation{Kind: ViolationUnreachable, Group: 6}, got[2])
	assert.Equal(t, "unreachable at group 6", got[2].String())
}
