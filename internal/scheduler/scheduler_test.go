package scheduler

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sysu-ecnc-dev/guard-scheduler/backend/internal/catalog"
)

func seeded(seed int64) *int64 {
	return &seed
}

func testParameters() *Parameters {
	return &Parameters{
		PopulationSize:   30,
		Generations:      15,
		CrossoverRate:    0.7,
		MutationRate:     0.2,
		Seed:             seeded(20240601),
		AppointmentCount: DefaultAppointmentCount,
		Workers:          4,
	}
}

func TestParametersValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(p *Parameters)
		field  string
	}{
		{"zero population", func(p *Parameters) { p.PopulationSize = 0 }, "populationSize"},
		{"negative generations", func(p *Parameters) { p.Generations = -1 }, "generations"},
		{"crossover above one", func(p *Parameters) { p.CrossoverRate = 1.01 }, "crossoverRate"},
		{"negative mutation", func(p *Parameters) { p.MutationRate = -0.1 }, "mutationRate"},
		{"NaN crossover", func(p *Parameters) { p.CrossoverRate = math.NaN() }, "crossoverRate"},
		{"NaN mutation", func(p *Parameters) { p.MutationRate = math.NaN() }, "mutationRate"},
		{"negative appointments", func(p *Parameters) { p.AppointmentCount = -3 }, "appointmentCount"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := testParameters()
			tt.modify(p)

			_, err := New(p, catalog.MustDefault())
			require.ErrorIs(t, err, ErrInvalidParameters)

			var paramErr *InvalidParametersError
			require.True(t, errors.As(err, &paramErr))
			assert.Equal(t, tt.field, paramErr.Field)
		})
	}

	p := testParameters()
	p.CrossoverRate, p.MutationRate = 0, 1
	assert.NoError(t, p.Validate())
}

func TestScheduleStatisticsConvention(t *testing.T) {
	s, err := New(testParameters(), catalog.MustDefault())
	require.NoError(t, err)

	result, err := s.Schedule(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 0, result.Baseline.Generation)
	require.Len(t, result.Generations, 15)
	for i, stats := range result.Generations {
		assert.Equal(t, i+1, stats.Generation)
		assert.LessOrEqual(t, stats.Min, stats.Mean)
		assert.LessOrEqual(t, stats.Mean, stats.Max)
	}

	require.Len(t, result.HallOfFame, HallOfFameSize)
	prev := int(^uint(0) >> 1)
	for _, ind := range result.HallOfFame {
		fitness, ok := ind.Fitness()
		require.True(t, ok)
		assert.LessOrEqual(t, fitness, prev)
		prev = fitness
	}

	// 名人堂中的最优个体不会比任何一代的最优个体差
	best, _ := result.HallOfFame[0].Fitness()
	assert.GreaterOrEqual(t, float64(best), result.Baseline.Max)
	for _, stats := range result.Generations {
		assert.GreaterOrEqual(t, float64(best), stats.Max)
	}
}

func TestScheduleBestIsMonotonic(t *testing.T) {
	p := testParameters()
	p.Generations = 40
	p.MutationRate = 0.9
	s, err := New(p, catalog.MustDefault())
	require.NoError(t, err)

	result, err := s.Schedule(context.Background())
	require.NoError(t, err)

	assert.Equal(t, result.Baseline.Max, float64(result.Baseline.Best))
	prev := result.Baseline.Best
	for _, stats := range result.Generations {
		assert.GreaterOrEqual(t, stats.Best, prev, "generation %d", stats.Generation)
		assert.GreaterOrEqual(t, float64(stats.Best), stats.Max, "generation %d", stats.Generation)
		prev = stats.Best
	}

	best, _ := result.HallOfFame[0].Fitness()
	assert.Equal(t, best, result.Generations[len(result.Generations)-1].Best)
}

func TestScheduleEvaluationFailure(t *testing.T) {
	s, err := New(testParameters(), catalog.MustDefault())
	require.NoError(t, err)

	// 第 2 代评估前把一个后代的某一天清空
	calls := 0
	evaluate := s.evaluate
	s.evaluate = func(pop []*Individual, workers int) error {
		calls++
		if calls == 3 {
			pop[0].Days[2] = DaySchedule{}
			pop[0].invalidate()
		}
		return evaluate(pop, workers)
	}

	result, err := s.Schedule(context.Background())
	assert.Nil(t, result)
	require.ErrorIs(t, err, ErrRunFailed)
	assert.ErrorIs(t, err, ErrMalformedIndividual)

	var runErr *RunError
	require.True(t, errors.As(err, &runErr))
	assert.Equal(t, PhaseEvaluation, runErr.Phase)
	assert.Equal(t, 2, runErr.Generation)
	assert.Equal(t, 3, calls)
}

func TestScheduleIsDeterministicUnderSeed(t *testing.T) {
	run := func(workers int) *Result {
		p := testParameters()
		p.Workers = workers
		s, err := New(p, catalog.MustDefault())
		require.NoError(t, err)
		result, err := s.Schedule(context.Background())
		require.NoError(t, err)
		return result
	}

	a, b := run(1), run(8)
	assert.Equal(t, a.Instance, b.Instance)
	assert.Equal(t, a.Baseline, b.Baseline)
	assert.Equal(t, a.Generations, b.Generations)
	assert.Equal(t, fitnesses(a.HallOfFame), fitnesses(b.HallOfFame))
}

func TestScheduleSameSchedulerTwice(t *testing.T) {
	s, err := New(testParameters(), catalog.MustDefault())
	require.NoError(t, err)

	a, err := s.Schedule(context.Background())
	require.NoError(t, err)
	b, err := s.Schedule(context.Background())
	require.NoError(t, err)

	assert.Equal(t, a.Generations, b.Generations)
	assert.Equal(t, s.Seed(), a.Seed)
}

func TestScheduleCancelled(t *testing.T) {
	s, err := New(testParameters(), catalog.MustDefault())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := s.Schedule(ctx)
	assert.Nil(t, result)
	require.ErrorIs(t, err, ErrRunFailed)
	assert.ErrorIs(t, err, context.Canceled)

	var runErr *RunError
	require.True(t, errors.As(err, &runErr))
	assert.Equal(t, 1, runErr.Generation)
	assert.Equal(t, PhaseCancelled, runErr.Phase)
}

func TestRunPhaseRecoversPanic(t *testing.T) {
	s, err := New(testParameters(), catalog.MustDefault())
	require.NoError(t, err)

	err = s.runPhase(4, PhaseMutation, func() error {
		var ind *Individual
		_ = ind.Days[0]
		return nil
	})

	var runErr *RunError
	require.True(t, errors.As(err, &runErr))
	assert.Equal(t, 4, runErr.Generation)
	assert.Equal(t, PhaseMutation, runErr.Phase)
	assert.ErrorIs(t, err, ErrRunFailed)
}

func TestScheduleWithoutCatalog(t *testing.T) {
	_, err := New(testParameters(), nil)
	assert.ErrorIs(t, err, catalog.ErrConfiguration)
}
