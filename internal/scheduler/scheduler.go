package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/sysu-ecnc-dev/guard-scheduler/backend/internal/catalog"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

const DefaultAppointmentCount = 20

type Scheduler struct {
	parameters *Parameters
	catalog    *catalog.Catalog
	evaluator  *Evaluator
	seed       int64
	rng        *rand.Rand

	// evaluate 默认为 evaluator.EvaluatePopulation，测试时可替换
	evaluate func(pop []*Individual, workers int) error
}

// Validate 在运行开始之前检查参数，不合法时不做任何工作
func (p *Parameters) Validate() error {
	if p.PopulationSize <= 0 {
		return &InvalidParametersError{Field: "populationSize", Reason: "必须为正整数"}
	}
	if p.Generations <= 0 {
		return &InvalidParametersError{Field: "generations", Reason: "必须为正整数"}
	}
	// NaN 也不合法
	if !(p.CrossoverRate >= 0 && p.CrossoverRate <= 1) {
		return &InvalidParametersError{Field: "crossoverRate", Reason: "必须在 [0, 1] 之间"}
	}
	if !(p.MutationRate >= 0 && p.MutationRate <= 1) {
		return &InvalidParametersError{Field: "mutationRate", Reason: "必须在 [0, 1] 之间"}
	}
	if p.AppointmentCount < 0 {
		return &InvalidParametersError{Field: "appointmentCount", Reason: "不能为负数"}
	}
	if p.Workers < 0 {
		return &InvalidParametersError{Field: "workers", Reason: "不能为负数"}
	}
	return nil
}

func New(parameters *Parameters, cat *catalog.Catalog) (*Scheduler, error) {
	if cat == nil {
		return nil, fmt.Errorf("%w: 缺少目录", catalog.ErrConfiguration)
	}
	if err := parameters.Validate(); err != nil {
		return nil, err
	}

	seed := time.Now().UnixNano()
	if parameters.Seed != nil {
		seed = *parameters.Seed
	}

	s := &Scheduler{
		parameters: parameters,
		catalog:    cat,
		evaluator:  NewEvaluator(cat),
		seed:       seed,
	}
	s.evaluate = s.evaluator.EvaluatePopulation
	return s, nil
}

// Schedule 运行遗传算法。ctx 只在两代之间检查
// 任何阶段出错都会使整个运行作废，此时返回 nil 和 *RunError
func (s *Scheduler) Schedule(ctx context.Context) (result *Result, err error) {
	start := time.Now()
	// 每次运行都从种子重新开始，同一个 Scheduler 多次运行的结果相同
	s.rng = rand.New(rand.NewSource(s.seed))

	slog.Info("开始自动排班",
		"seed", s.seed,
		"populationSize", s.parameters.PopulationSize,
		"generations", s.parameters.Generations,
		"crossoverRate", s.parameters.CrossoverRate,
		"mutationRate", s.parameters.MutationRate,
	)

	defer func() {
		if err != nil {
			result = nil
			slog.Error("自动排班失败", "seed", s.seed, "error", err)
			return
		}
		best, _ := result.HallOfFame[0].Fitness()
		slog.Info("自动排班完成", "seed", s.seed, "bestFitness", best, "duration", time.Since(start))
	}()

	// 生成问题实例和初始种群
	var instance *ProblemInstance
	var pop []*Individual
	if err := s.runPhase(0, PhaseInitialize, func() error {
		instance = GenerateProblemInstance(s.catalog, s.rng, s.parameters.AppointmentCount)
		pop = make([]*Individual, s.parameters.PopulationSize)
		for i := range pop {
			ind, err := GenerateIndividual(s.catalog, s.rng, instance)
			if err != nil {
				return err
			}
			pop[i] = ind
		}
		return nil
	}); err != nil {
		return nil, err
	}

	if err := s.runPhase(0, PhaseEvaluation, func() error {
		return s.evaluate(pop, s.parameters.Workers)
	}); err != nil {
		return nil, err
	}

	hof := NewHallOfFame(HallOfFameSize)
	hof.Update(pop)

	result = &Result{
		Seed:        s.seed,
		Instance:    instance,
		Baseline:    s.statistics(0, pop, hof),
		Generations: make([]GenerationStats, 0, s.parameters.Generations),
	}

	for gen := 1; gen <= s.parameters.Generations; gen++ {
		if err := ctx.Err(); err != nil {
			return nil, &RunError{Generation: gen, Phase: PhaseCancelled, Err: err}
		}

		// 选择
		var offspring []*Individual
		if err := s.runPhase(gen, PhaseSelection, func() error {
			offspring = selectByTournament(s.rng, pop, len(pop))
			return nil
		}); err != nil {
			return nil, err
		}

		// 交叉
		if err := s.runPhase(gen, PhaseCrossover, func() error {
			for i := 1; i < len(offspring); i += 2 {
				if s.rng.Float64() < s.parameters.CrossoverRate {
					twoPointCrossover(s.rng, offspring[i-1], offspring[i])
				}
			}
			return nil
		}); err != nil {
			return nil, err
		}

		// 变异
		if err := s.runPhase(gen, PhaseMutation, func() error {
			for _, ind := range offspring {
				shuffleIndexesMutation(s.rng, ind, s.parameters.MutationRate)
			}
			return nil
		}); err != nil {
			return nil, err
		}

		// 评估
		if err := s.runPhase(gen, PhaseEvaluation, func() error {
			return s.evaluate(offspring, s.parameters.Workers)
		}); err != nil {
			return nil, err
		}

		pop = offspring
		hof.Update(pop)

		stats := s.statistics(gen, pop, hof)
		result.Generations = append(result.Generations, stats)
		slog.Debug("已完成一代", "generation", gen, "min", stats.Min, "mean", stats.Mean, "max", stats.Max, "best", stats.Best)
	}

	result.HallOfFame = hof.Members()
	return result, nil
}

// runPhase 执行一个阶段，并把错误和 panic 都包装成 RunError
func (s *Scheduler) runPhase(gen int, phase Phase, fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &RunError{Generation: gen, Phase: phase, Err: fmt.Errorf("panic: %v", r)}
		}
	}()

	if err := fn(); err != nil {
		return &RunError{Generation: gen, Phase: phase, Err: err}
	}
	return nil
}

// statistics 统计当前种群，Best 取名人堂中的最优值，因此随代数单调不减
func (s *Scheduler) statistics(gen int, pop []*Individual, hof *HallOfFame) GenerationStats {
	values := make([]float64, len(pop))
	for i, ind := range pop {
		fitness, _ := ind.Fitness()
		values[i] = float64(fitness)
	}

	var best int
	if top := hof.Best(); top != nil {
		best, _ = top.Fitness()
	}

	return GenerationStats{
		Generation: gen,
		Min:        floats.Min(values),
		Mean:       stat.Mean(values, nil),
		Max:        floats.Max(values),
		Best:       best,
	}
}

// Seed 返回本次运行实际使用的随机种子
func (s *Scheduler) Seed() int64 {
	return s.seed
}
