package utils

import (
	"errors"
	"fmt"

	"github.com/sysu-ecnc-dev/guard-scheduler/backend/internal/domain"
)

// ValidateShiftTable 检查班次表本身是否合法（不检查班次之间是否重叠，白班之间本来就允许重叠）
func ValidateShiftTable(shifts []domain.Shift) error {
	if len(shifts) == 0 {
		return errors.New("班次表为空")
	}

	seen := make(map[string]bool, len(shifts))
	for i, shift := range shifts {
		if shift.Name == "" {
			return fmt.Errorf("第 %d 个班次缺少名称", i+1)
		}
		if seen[shift.Name] {
			return fmt.Errorf("班次 %s 重复", shift.Name)
		}
		seen[shift.Name] = true

		if shift.Start < 0 || shift.Start > 23 {
			return fmt.Errorf("班次 %s 的开始时间 %d 不在 0~23 之间", shift.Name, shift.Start)
		}
		if shift.End < 0 || shift.End > 23 {
			return fmt.Errorf("班次 %s 的结束时间 %d 不在 0~23 之间", shift.Name, shift.End)
		}
		// 结束时间小于开始时间表示跨越午夜，但两者不能相等
		if shift.Start == shift.End {
			return fmt.Errorf("班次 %s 的时长为 0", shift.Name)
		}
	}

	return nil
}

// ValidateAgentSkills 检查人员的技能是否都在预约类型中
func ValidateAgentSkills(agent domain.Agent, appointmentTypes []string) error {
	known := make(map[string]bool, len(appointmentTypes))
	for _, t := range appointmentTypes {
		known[t] = true
	}

	seen := make(map[string]bool, len(agent.Skills))
	for _, skill := range agent.Skills {
		if !known[skill] {
			return fmt.Errorf("人员 %s 的技能 %s 不存在", agent.ID, skill)
		}
		if seen[skill] {
			return fmt.Errorf("人员 %s 的技能 %s 重复", agent.ID, skill)
		}
		seen[skill] = true
	}

	return nil
}
