package catalog

import "github.com/sysu-ecnc-dev/guard-scheduler/backend/internal/domain"

var DefaultAgents = []domain.Agent{
	{ID: "Agent1", Skills: []string{"Fire", "Security"}},
	{ID: "Agent2", Skills: []string{"Maintenance", "Security"}},
	{ID: "Agent3", Skills: []string{"Fire"}},
	{ID: "Agent4", Skills: []string{"Security"}},
	{ID: "Agent5", Skills: []string{}},
}

var DefaultAppointmentTypes = []string{TypeMonitoring, "Fire", SkillSecurity, "Maintenance"}

// 夜班被拆成四个连续的子班次，必须由同一个人完整承担
var DefaultShifts = []domain.Shift{
	{Name: ShiftMorning, Start: 7, End: 15},
	{Name: ShiftAfternoon, Start: 14, End: 22},
	{Name: "Night1", Start: 21, End: 22},
	{Name: "Night2", Start: 22, End: 1},
	{Name: "Night3", Start: 2, End: 4},
	{Name: "Night4", Start: 4, End: 5},
}

// Default 返回内置的目录
func Default() (*Catalog, error) {
	return New(DefaultAgents, DefaultShifts, DefaultAppointmentTypes)
}

func MustDefault() *Catalog {
	c, err := Default()
	if err != nil {
		panic(err)
	}
	return c
}
