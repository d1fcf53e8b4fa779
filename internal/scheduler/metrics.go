package scheduler

import (
	"github.com/sysu-ecnc-dev/guard-scheduler/backend/internal/catalog"
)

// Metrics 是从一个排班结果中统计出来的诊断数据，与适应度相互独立
type Metrics struct {
	ShiftDistribution      map[string]int            `json:"shiftDistribution"`
	IncorrectRestPeriods   int                       `json:"incorrectRestPeriods"`
	NightShiftsPerAgent    map[string]float64        `json:"nightShiftsPerAgent"` // 每段子班次记 0.25
	NonSecurityNightShifts int                       `json:"nonSecurityNightShifts"`
	IncompleteNightShifts  int                       `json:"incompleteNightShifts"`
	SkillUtilization       map[string]map[string]int `json:"skillUtilization"` // agent -> skill -> 次数
	TotalAppointments      int                       `json:"totalAppointments"`
	MismatchedSkills       int                       `json:"mismatchedSkills"`
}

// TotalNightShifts 返回所有人值夜班的总量（以完整夜班为单位）
func (m *Metrics) TotalNightShifts() float64 {
	total := 0.0
	for _, v := range m.NightShiftsPerAgent {
		total += v
	}
	return total
}

// CalculateMetrics 统计一个个体的诊断数据，结果不会反馈给遗传算法
func CalculateMetrics(cat *catalog.Catalog, ind *Individual) *Metrics {
	m := &Metrics{
		ShiftDistribution:   make(map[string]int),
		NightShiftsPerAgent: make(map[string]float64),
		SkillUtilization:    make(map[string]map[string]int),
	}

	for _, shift := range cat.Shifts() {
		m.ShiftDistribution[shift.Name] = 0
	}
	for _, agent := range cat.Agents() {
		m.NightShiftsPerAgent[agent.ID] = 0
		m.SkillUtilization[agent.ID] = make(map[string]int, len(agent.Skills))
		for _, skill := range agent.Skills {
			m.SkillUtilization[agent.ID][skill] = 0
		}
	}

	for day, schedule := range ind.Days {
		for idx, assignments := range schedule {
			if idx >= cat.AgentCount() {
				break
			}
			agentID := cat.AgentID(idx)
			authorized := cat.HasSkill(idx, catalog.SkillSecurity)

			for _, a := range assignments {
				if cat.IsShift(a.Label) {
					m.ShiftDistribution[a.Label]++
					if catalog.IsNightShift(a.Label) {
						m.NightShiftsPerAgent[agentID] += 0.25
					}
					continue
				}

				m.TotalAppointments++
				switch {
				case cat.HasSkill(idx, a.Label):
					m.SkillUtilization[agentID][a.Label]++
				case a.Label != catalog.TypeMonitoring:
					m.MismatchedSkills++
				}
			}

			if hasNightShift(assignments) {
				if !authorized {
					m.NonSecurityNightShifts++
				}
				if !isCompleteNightBlock(assignments) {
					m.IncompleteNightShifts++
				}
			}

			if day > 0 && len(assignments) > 0 && idx < len(ind.Days[day-1]) &&
				containsLabel(ind.Days[day-1][idx], catalog.TerminalNight) && assignments[0].Label == catalog.ShiftMorning {
				m.IncorrectRestPeriods++
			}
		}
	}

	return m
}
