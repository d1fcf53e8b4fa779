package seed

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sysu-ecnc-dev/guard-scheduler/backend/internal/catalog"
	"github.com/sysu-ecnc-dev/guard-scheduler/backend/internal/domain"
)

func TestReadAgentsCSV(t *testing.T) {
	input := "技能,编号\n\"Fire、Security\",A1\n,A2\n\"Maintenance, Fire\",A3\n,\n"

	agents, err := ReadAgentsCSV(strings.NewReader(input))
	require.NoError(t, err)

	assert.Equal(t, []domain.Agent{
		{ID: "A1", Skills: []string{"Fire", "Security"}},
		{ID: "A2", Skills: []string{}},
		{ID: "A3", Skills: []string{"Maintenance", "Fire"}},
	}, agents)
}

func TestReadAgentsCSVMissingColumn(t *testing.T) {
	_, err := ReadAgentsCSV(strings.NewReader("姓名,技能\n张三,Fire\n"))
	assert.Error(t, err)

	_, err = ReadAgentsCSV(strings.NewReader(""))
	assert.Error(t, err)
}

func TestBundledRosterIsValid(t *testing.T) {
	file, err := os.Open("data/agents.csv")
	require.NoError(t, err)
	defer file.Close()

	agents, err := ReadAgentsCSV(file)
	require.NoError(t, err)
	require.Len(t, agents, 8)

	cat, err := catalog.New(agents, catalog.DefaultShifts, catalog.DefaultAppointmentTypes)
	require.NoError(t, err)
	assert.Equal(t, []string{"Agent1", "Agent2", "Agent4", "Agent7", "Agent8"}, cat.SecurityAgents())
}
