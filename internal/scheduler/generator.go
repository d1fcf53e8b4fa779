package scheduler

import (
	"fmt"
	"math/rand"

	"github.com/sysu-ecnc-dev/guard-scheduler/backend/internal/catalog"
)

// GenerateProblemInstance 随机生成一周的夜班名单和预约请求
func GenerateProblemInstance(cat *catalog.Catalog, rng *rand.Rand, appointmentCount int) *ProblemInstance {
	instance := &ProblemInstance{
		NightRoster:  make(map[int]string),
		Appointments: make([]AppointmentRequest, 0, appointmentCount),
	}

	// 只有具备 Security 技能的人才能值夜班，如果没有这样的人，就不安排夜班
	securityAgents := cat.SecurityAgents()
	if len(securityAgents) > 0 {
		for day := 0; day < NightDutyDays; day++ {
			instance.NightRoster[day] = securityAgents[rng.Intn(len(securityAgents))]
		}
	}

	types := cat.AppointmentTypes()
	for i := 0; i < appointmentCount; i++ {
		instance.Appointments = append(instance.Appointments, AppointmentRequest{
			Day:      rng.Intn(DaysPerWeek),
			Type:     types[rng.Intn(len(types))],
			Duration: rng.Intn(4) + 1,
		})
	}

	return instance
}

// Validate 检查问题实例引用的人员和预约类型是否都在目录中
func (p *ProblemInstance) Validate(cat *catalog.Catalog) error {
	if p == nil {
		return fmt.Errorf("%w: 缺少问题实例", catalog.ErrConfiguration)
	}

	for day, agentID := range p.NightRoster {
		if day < 0 || day >= DaysPerWeek {
			return fmt.Errorf("%w: 夜班名单中的第 %d 天不存在", catalog.ErrConfiguration, day)
		}
		idx, ok := cat.AgentIndex(agentID)
		if !ok {
			return fmt.Errorf("%w: 夜班名单中的人员 %s 不存在", catalog.ErrConfiguration, agentID)
		}
		if !cat.HasSkill(idx, catalog.SkillSecurity) {
			return fmt.Errorf("%w: 人员 %s 没有 %s 技能，不能值夜班", catalog.ErrConfiguration, agentID, catalog.SkillSecurity)
		}
	}

	for i, app := range p.Appointments {
		if app.Day < 0 || app.Day >= DaysPerWeek {
			return fmt.Errorf("%w: 第 %d 个预约的日期 %d 不存在", catalog.ErrConfiguration, i, app.Day)
		}
		if !cat.IsAppointmentType(app.Type) {
			return fmt.Errorf("%w: 第 %d 个预约的类型 %s 不存在", catalog.ErrConfiguration, i, app.Type)
		}
		if app.Duration < 1 {
			return fmt.Errorf("%w: 第 %d 个预约的时长必须为正数", catalog.ErrConfiguration, i)
		}
	}

	return nil
}

// GenerateIndividual 随机生成一个个体，问题实例不合法时返回 catalog.ErrConfiguration
// 生成的个体保证每个人每天至少有一项安排，但预约是否被安排、技能是否匹配都交给适应度去惩罚
func GenerateIndividual(cat *catalog.Catalog, rng *rand.Rand, instance *ProblemInstance) (*Individual, error) {
	if err := instance.Validate(cat); err != nil {
		return nil, err
	}

	agentCount := cat.AgentCount()
	dayShifts := cat.DayShifts()
	nightShifts := cat.NightShifts()

	ind := &Individual{
		Days: make([]DaySchedule, DaysPerWeek),
	}

	for day := 0; day < DaysPerWeek; day++ {
		schedule := make(DaySchedule, agentCount)

		// 安排夜班，整个夜班由同一个人承担
		if agentID, exists := instance.NightRoster[day]; exists {
			idx, _ := cat.AgentIndex(agentID)
			block := make([]Assignment, 0, len(nightShifts))
			for _, name := range nightShifts {
				block = append(block, shiftAssignment(cat, name))
			}
			schedule[idx] = block
		}

		// 其余的人随机分配一个白班
		for i := range schedule {
			if len(schedule[i]) == 0 {
				name := dayShifts[rng.Intn(len(dayShifts))]
				schedule[i] = []Assignment{shiftAssignment(cat, name)}
			}
		}

		// 安排预约
		for _, app := range instance.Appointments {
			if app.Day != day {
				continue
			}

			// 只有当天只有一项安排的人（即不在值夜班的人）才可以接预约
			var candidates []int
			for i := range schedule {
				if len(schedule[i]) == 1 {
					candidates = append(candidates, i)
				}
			}
			if len(candidates) == 0 {
				ind.Dropped++
				continue
			}

			// 随机选中的人技能不匹配时直接放弃这个预约，不重试
			idx := candidates[rng.Intn(len(candidates))]
			if !cat.HasSkill(idx, app.Type) && app.Type != catalog.TypeMonitoring {
				ind.Dropped++
				continue
			}

			schedule[idx] = append(schedule[idx], Assignment{
				Label:    app.Type,
				Kind:     KindAppointment,
				Duration: app.Duration,
			})
		}

		ind.Days[day] = schedule
	}

	return ind, nil
}

func shiftAssignment(cat *catalog.Catalog, name string) Assignment {
	shift, _ := cat.Shift(name)
	return Assignment{
		Label: name,
		Kind:  KindShift,
		Start: shift.Start,
		End:   shift.End,
	}
}
