package scheduler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sysu-ecnc-dev/guard-scheduler/backend/internal/catalog"
	"github.com/sysu-ecnc-dev/guard-scheduler/backend/internal/domain"
)

func TestEntries(t *testing.T) {
	cat := newTestCatalog(t,
		domain.Agent{ID: "Guard", Skills: []string{"Security"}},
		domain.Agent{ID: "Medic", Skills: []string{"Fire"}},
	)
	weekStart := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)

	ind := &Individual{
		Days: []DaySchedule{
			{
				{shift(t, "Night2")},
				{shift(t, catalog.ShiftAfternoon), appointment("Fire", 3)},
			},
		},
	}

	entries := Entries(cat, ind, weekStart)
	require.Len(t, entries, 3)

	assert.Equal(t, Entry{
		Day:   0,
		Agent: "Guard",
		Label: "Night2",
		Kind:  KindShift,
		Start: time.Date(2023, 1, 1, 22, 0, 0, 0, time.UTC),
		End:   time.Date(2023, 1, 2, 1, 0, 0, 0, time.UTC),
	}, entries[0])

	assert.Equal(t, "Medic", entries[1].Agent)
	assert.Equal(t, time.Date(2023, 1, 1, 14, 0, 0, 0, time.UTC), entries[1].Start)
	assert.Equal(t, time.Date(2023, 1, 1, 22, 0, 0, 0, time.UTC), entries[1].End)

	assert.Equal(t, Entry{
		Day:      0,
		Agent:    "Medic",
		Label:    "Fire",
		Kind:     KindAppointment,
		Start:    time.Date(2023, 1, 1, 14, 0, 0, 0, time.UTC),
		End:      time.Date(2023, 1, 1, 17, 0, 0, 0, time.UTC),
		Duration: 3,
	}, entries[2])
}

func TestEntriesCoverEveryAssignment(t *testing.T) {
	cat := catalog.MustDefault()
	rng := newRand(8)
	ind := mustGenerateIndividual(t, cat, rng, GenerateProblemInstance(cat, rng, 20))

	total := 0
	for _, schedule := range ind.Days {
		for _, assignments := range schedule {
			total += len(assignments)
		}
	}

	entries := Entries(cat, ind, time.Date(2024, 3, 4, 0, 0, 0, 0, time.Local))
	assert.Len(t, entries, total)
	for _, e := range entries {
		assert.True(t, e.End.After(e.Start))
	}
}
