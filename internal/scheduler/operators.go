package scheduler

import (
	"math/rand"
)

// 锦标赛选择：有放回地抽取 TournamentSize 个个体，适应度最高者胜出，平局时随机选一个
func selectByTournament(rng *rand.Rand, pop []*Individual, n int) []*Individual {
	chosen := make([]*Individual, 0, n)
	contenders := make([]*Individual, TournamentSize)
	winners := make([]*Individual, 0, TournamentSize)

	for len(chosen) < n {
		for i := range contenders {
			contenders[i] = pop[rng.Intn(len(pop))]
		}

		best, _ := contenders[0].Fitness()
		for _, c := range contenders[1:] {
			if f, _ := c.Fitness(); f > best {
				best = f
			}
		}

		winners = winners[:0]
		for _, c := range contenders {
			if f, _ := c.Fitness(); f == best {
				winners = append(winners, c)
			}
		}

		// 同一个个体可能被多次选中，因此需要复制
		chosen = append(chosen, winners[rng.Intn(len(winners))].Clone())
	}

	return chosen
}

// 两点交叉：交换两个个体在 [cx1, cx2) 之间的天
// 两个个体来自同一个问题实例，因此交换后 Dropped 按换入换出的预约数调整
func twoPointCrossover(rng *rand.Rand, ind1 *Individual, ind2 *Individual) {
	size := min(len(ind1.Days), len(ind2.Days))
	if size < 2 {
		return
	}

	cx1 := rng.Intn(size) + 1
	cx2 := rng.Intn(size-1) + 1
	if cx2 >= cx1 {
		cx2++
	} else {
		cx1, cx2 = cx2, cx1
	}

	for i := cx1; i < cx2; i++ {
		delta := ind2.Days[i].appointmentCount() - ind1.Days[i].appointmentCount()
		ind1.Dropped -= delta
		ind2.Dropped += delta
		ind1.Days[i], ind2.Days[i] = ind2.Days[i], ind1.Days[i]
	}

	ind1.invalidate()
	ind2.invalidate()
}

// 下标交换变异：每一天以 rate 的概率与另一个随机位置的天交换
// 变异只调整位置而不关心领域语义，变异后的个体可能不再满足约束，交给适应度去惩罚
func shuffleIndexesMutation(rng *rand.Rand, ind *Individual, rate float64) {
	size := len(ind.Days)
	if size < 2 {
		return
	}

	mutated := false
	for i := 0; i < size; i++ {
		if rng.Float64() >= rate {
			continue
		}
		j := rng.Intn(size - 1)
		if j >= i {
			j++
		}
		ind.Days[i], ind.Days[j] = ind.Days[j], ind.Days[i]
		mutated = true
	}

	if mutated {
		ind.invalidate()
	}
}
