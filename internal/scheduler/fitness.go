package scheduler

import (
	"fmt"
	"runtime"

	"github.com/sysu-ecnc-dev/guard-scheduler/backend/internal/catalog"
	"golang.org/x/sync/errgroup"
)

const (
	rewardOrdinaryDuty     = 1
	penaltyNoRest          = 10
	penaltyUnauthorized    = 20
	rewardAuthorizedNight  = 5
	rewardCompleteNight    = 10
	rewardSkillMatch       = 5
	penaltySkillMismatched = 5
)

// Evaluator 根据领域规则计算个体的适应度
type Evaluator struct {
	cat *catalog.Catalog
}

func NewEvaluator(cat *catalog.Catalog) *Evaluator {
	return &Evaluator{cat: cat}
}

/**
 * 计算个体的适应度，对每个 (day, agent) 累加:
 * 		1. 当天只有一项安排，或者恰好是完整的四段夜班: +1
 * 		2. 前一天值了 Night4，当天第一项是早班（没有休息）: -10
 * 		3. 当天有夜班: 没有 Security 技能 -20，否则 +5
 * 		4. 当天恰好是完整的四段夜班: 额外 +10
 * 		5. 每个非 Monitoring 的预约: 技能匹配 +5，否则 -5
 */
func (e *Evaluator) Evaluate(ind *Individual) (int, error) {
	agentCount := e.cat.AgentCount()
	fitness := 0

	for day, schedule := range ind.Days {
		if len(schedule) != agentCount {
			return 0, fmt.Errorf("%w: 第 %d 天有 %d 个人员，目录中有 %d 个", ErrMalformedIndividual, day, len(schedule), agentCount)
		}

		for agent, assignments := range schedule {
			if len(assignments) == 0 {
				return 0, fmt.Errorf("%w: 第 %d 天人员 %s 没有任何安排", ErrMalformedIndividual, day, e.cat.AgentID(agent))
			}

			complete := isCompleteNightBlock(assignments)
			if len(assignments) == 1 || complete {
				fitness += rewardOrdinaryDuty
			}

			if day > 0 && containsLabel(ind.Days[day-1][agent], catalog.TerminalNight) && assignments[0].Label == catalog.ShiftMorning {
				fitness -= penaltyNoRest
			}

			if hasNightShift(assignments) {
				if !e.cat.HasSkill(agent, catalog.SkillSecurity) {
					fitness -= penaltyUnauthorized
				} else {
					fitness += rewardAuthorizedNight
				}
			}

			if complete {
				fitness += rewardCompleteNight
			}

			for _, a := range assignments {
				if a.Label == catalog.TypeMonitoring || !e.cat.IsAppointmentType(a.Label) {
					continue
				}
				if e.cat.HasSkill(agent, a.Label) {
					fitness += rewardSkillMatch
				} else {
					fitness -= penaltySkillMismatched
				}
			}
		}
	}

	return fitness, nil
}

// EvaluatePopulation 并行评估种群中所有没有缓存适应度的个体
// 个体之间没有共享的可变状态，只需要在最后等待所有评估完成
func (e *Evaluator) EvaluatePopulation(pop []*Individual, workers int) error {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	var g errgroup.Group
	g.SetLimit(workers)

	for i, ind := range pop {
		if _, ok := ind.Fitness(); ok {
			continue
		}
		g.Go(func() (err error) {
			defer func() {
				if r := recover(); r != nil {
					err = fmt.Errorf("评估第 %d 个个体时 panic: %v", i, r)
				}
			}()

			fitness, err := e.Evaluate(ind)
			if err != nil {
				return fmt.Errorf("评估第 %d 个个体失败: %w", i, err)
			}
			ind.setFitness(fitness)
			return nil
		})
	}

	return g.Wait()
}

func isCompleteNightBlock(assignments []Assignment) bool {
	if len(assignments) != catalog.NightBlockParts {
		return false
	}
	for _, a := range assignments {
		if !catalog.IsNightShift(a.Label) {
			return false
		}
	}
	return true
}

func hasNightShift(assignments []Assignment) bool {
	for _, a := range assignments {
		if catalog.IsNightShift(a.Label) {
			return true
		}
	}
	return false
}

func containsLabel(assignments []Assignment, label string) bool {
	for _, a := range assignments {
		if a.Label == label {
			return true
		}
	}
	return false
}
