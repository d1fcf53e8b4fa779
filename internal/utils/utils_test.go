package utils

import (
	"math/rand"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sysu-ecnc-dev/guard-scheduler/backend/internal/domain"
)

func TestValidateShiftTable(t *testing.T) {
	assert.NoError(t, ValidateShiftTable([]domain.Shift{
		{Name: "Morning", Start: 7, End: 15},
		{Name: "Night2", Start: 22, End: 1},
	}))

	assert.Error(t, ValidateShiftTable(nil))
	assert.Error(t, ValidateShiftTable([]domain.Shift{{Name: "", Start: 1, End: 2}}))
	assert.Error(t, ValidateShiftTable([]domain.Shift{{Name: "A", Start: 1, End: 2}, {Name: "A", Start: 3, End: 4}}))
	assert.Error(t, ValidateShiftTable([]domain.Shift{{Name: "A", Start: -1, End: 2}}))
	assert.Error(t, ValidateShiftTable([]domain.Shift{{Name: "A", Start: 5, End: 5}}))
}

func TestValidateAgentSkills(t *testing.T) {
	types := []string{"Monitoring", "Fire"}
	assert.NoError(t, ValidateAgentSkills(domain.Agent{ID: "A", Skills: []string{"Fire"}}, types))
	assert.Error(t, ValidateAgentSkills(domain.Agent{ID: "A", Skills: []string{"Diving"}}, types))
	assert.Error(t, ValidateAgentSkills(domain.Agent{ID: "A", Skills: []string{"Fire", "Fire"}}, types))
}

func TestGenerateRandomAgent(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	idPattern := regexp.MustCompile(`^[a-z]+[0-9]{1,3}$`)

	for i := 0; i < 20; i++ {
		agent := GenerateRandomAgent(rng, []string{"Monitoring", "Fire", "Security"})
		assert.Regexp(t, idPattern, agent.ID)
		assert.NotContains(t, agent.Skills, "Monitoring")
		assert.NoError(t, ValidateAgentSkills(agent, []string{"Monitoring", "Fire", "Security"}))
	}
}

func TestGenerateRandomPassword(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	assert.Len(t, []rune(GenerateRandomPassword(rng, 12)), 12)
}

func TestGenerateRandomOperator(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	op, err := GenerateRandomOperator(rng, "secret", "example.com", domain.RoleDispatcher)
	require.NoError(t, err)

	assert.Equal(t, op.Username+"@example.com", op.Email)
	assert.Equal(t, domain.RoleDispatcher, op.Role)
	assert.NotEqual(t, "secret", op.PasswordHash)
	assert.True(t, op.IsActive)
}
