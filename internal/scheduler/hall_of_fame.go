package scheduler

import (
	"slices"
)

// HallOfFame 记录整个运行过程中出现过的最优的若干个体
// 只有严格更优的新个体才能挤掉已有的个体，因此最优适应度单调不减
type HallOfFame struct {
	size    int
	members []*Individual
}

func NewHallOfFame(size int) *HallOfFame {
	return &HallOfFame{
		size:    size,
		members: make([]*Individual, 0, size),
	}
}

// Update 用已经评估过的种群更新名人堂，入选的个体会被复制，后续繁殖不会影响到它们
func (h *HallOfFame) Update(pop []*Individual) {
	for _, ind := range pop {
		fitness, ok := ind.Fitness()
		if !ok {
			continue
		}

		if len(h.members) == h.size {
			worst, _ := h.members[len(h.members)-1].Fitness()
			if fitness <= worst {
				continue
			}
			h.members = h.members[:len(h.members)-1]
		}

		// 插入到所有适应度不低于它的个体之后，保证相同适应度时已有个体排在前面
		pos := len(h.members)
		for i, m := range h.members {
			if f, _ := m.Fitness(); f < fitness {
				pos = i
				break
			}
		}
		h.members = slices.Insert(h.members, pos, ind.Clone())
	}
}

// Members 按适应度从高到低返回名人堂中的个体
func (h *HallOfFame) Members() []*Individual {
	return slices.Clone(h.members)
}

// Best 返回最优个体，名人堂为空时返回 nil
func (h *HallOfFame) Best() *Individual {
	if len(h.members) == 0 {
		return nil
	}
	return h.members[0]
}

func (h *HallOfFame) Len() int {
	return len(h.members)
}
