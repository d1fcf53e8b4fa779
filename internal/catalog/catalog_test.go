package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sysu-ecnc-dev/guard-scheduler/backend/internal/domain"
)

func TestDefault(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)

	assert.Equal(t, 5, c.AgentCount())
	assert.Equal(t, []string{"Agent1", "Agent2", "Agent4"}, c.SecurityAgents())
	assert.Equal(t, []string{"Night1", "Night2", "Night3", "Night4"}, c.NightShifts())
	assert.Equal(t, []string{"Morning", "Afternoon"}, c.DayShifts())

	idx, ok := c.AgentIndex("Agent3")
	require.True(t, ok)
	assert.Equal(t, 2, idx)
	assert.True(t, c.HasSkill(idx, "Fire"))
	assert.False(t, c.HasSkill(idx, "Security"))

	night2, ok := c.Shift("Night2")
	require.True(t, ok)
	assert.True(t, night2.CrossesMidnight())
	assert.Equal(t, 3, night2.Hours())

	assert.True(t, c.IsAppointmentType("Monitoring"))
	assert.False(t, c.IsAppointmentType("Morning"))
	assert.True(t, c.IsShift("Morning"))
	assert.True(t, IsNightShift("Night4"))
	assert.False(t, IsNightShift("Afternoon"))
}

func TestCatalogIsImmutable(t *testing.T) {
	agents := []domain.Agent{{ID: "A", Skills: []string{"Fire"}}}
	c, err := New(agents, DefaultShifts, DefaultAppointmentTypes)
	require.NoError(t, err)

	agents[0].Skills[0] = "Security"
	returned := c.Agents()
	returned[0].Skills[0] = "Maintenance"

	assert.True(t, c.HasSkill(0, "Fire"))
	assert.Equal(t, []string{"Fire"}, c.Agents()[0].Skills)
}

func TestNewConfigurationErrors(t *testing.T) {
	tests := []struct {
		name   string
		agents []domain.Agent
		shifts []domain.Shift
		types  []string
	}{
		{
			name:   "unknown skill",
			agents: []domain.Agent{{ID: "A", Skills: []string{"Cooking"}}},
			shifts: DefaultShifts,
			types:  DefaultAppointmentTypes,
		},
		{
			name:   "duplicate agent",
			agents: []domain.Agent{{ID: "A"}, {ID: "A"}},
			shifts: DefaultShifts,
			types:  DefaultAppointmentTypes,
		},
		{
			name:   "empty agent id",
			agents: []domain.Agent{{ID: ""}},
			shifts: DefaultShifts,
			types:  DefaultAppointmentTypes,
		},
		{
			name:   "missing night shift",
			agents: DefaultAgents,
			shifts: DefaultShifts[:5],
			types:  DefaultAppointmentTypes,
		},
		{
			name:   "missing monitoring",
			agents: DefaultAgents,
			shifts: DefaultShifts,
			types:  []string{"Fire", "Security", "Maintenance"},
		},
		{
			name:   "hour out of range",
			agents: DefaultAgents,
			shifts: append([]domain.Shift{{Name: "Late", Start: 20, End: 24}}, DefaultShifts...),
			types:  DefaultAppointmentTypes,
		},
		{
			name:   "empty roster",
			agents: nil,
			shifts: DefaultShifts,
			types:  DefaultAppointmentTypes,
		},
		{
			name:   "duplicate type",
			agents: DefaultAgents,
			shifts: DefaultShifts,
			types:  append([]string{"Fire"}, DefaultAppointmentTypes...),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.agents, tt.shifts, tt.types)
			assert.ErrorIs(t, err, ErrConfiguration)
		})
	}
}
