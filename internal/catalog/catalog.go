package catalog

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/sysu-ecnc-dev/guard-scheduler/backend/internal/domain"
	"github.com/sysu-ecnc-dev/guard-scheduler/backend/internal/utils"
)

// ErrConfiguration 表示目录中存在引用了未定义的人员、班次或预约类型等配置错误
var ErrConfiguration = errors.New("目录配置错误")

const (
	SkillSecurity   = "Security"
	TypeMonitoring  = "Monitoring"
	ShiftMorning    = "Morning"
	ShiftAfternoon  = "Afternoon"
	NightPrefix     = "Night"
	TerminalNight   = "Night4"
	NightBlockParts = 4
)

// 目录中必须存在的班次
var requiredShifts = []string{ShiftMorning, ShiftAfternoon, "Night1", "Night2", "Night3", "Night4"}

// Catalog: 只读的领域配置，构建完成后不会再被修改
type Catalog struct {
	agents           []domain.Agent
	agentIndex       map[string]int
	skills           []map[string]bool
	shifts           map[string]domain.Shift
	shiftOrder       []string
	appointmentTypes []string
	securityAgents   []string
}

func configError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrConfiguration, fmt.Sprintf(format, args...))
}

func New(agents []domain.Agent, shifts []domain.Shift, appointmentTypes []string) (*Catalog, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())

	c := &Catalog{
		agents:     make([]domain.Agent, 0, len(agents)),
		agentIndex: make(map[string]int, len(agents)),
		skills:     make([]map[string]bool, 0, len(agents)),
		shifts:     make(map[string]domain.Shift, len(shifts)),
	}

	// 预约类型
	for _, t := range appointmentTypes {
		if t == "" {
			return nil, configError("预约类型不能为空")
		}
		if slices.Contains(c.appointmentTypes, t) {
			return nil, configError("预约类型 %s 重复", t)
		}
		c.appointmentTypes = append(c.appointmentTypes, t)
	}
	if !slices.Contains(c.appointmentTypes, TypeMonitoring) {
		return nil, configError("缺少预约类型 %s", TypeMonitoring)
	}

	// 班次
	if err := utils.ValidateShiftTable(shifts); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfiguration, err)
	}
	for _, shift := range shifts {
		if err := validate.Struct(shift); err != nil {
			return nil, fmt.Errorf("%w: 班次 %s: %w", ErrConfiguration, shift.Name, err)
		}
		c.shifts[shift.Name] = shift
		c.shiftOrder = append(c.shiftOrder, shift.Name)
	}
	for _, name := range requiredShifts {
		if _, exists := c.shifts[name]; !exists {
			return nil, configError("缺少班次 %s", name)
		}
	}

	// 人员
	for _, agent := range agents {
		if err := validate.Struct(agent); err != nil {
			return nil, fmt.Errorf("%w: 人员 %q: %w", ErrConfiguration, agent.ID, err)
		}
		if _, exists := c.agentIndex[agent.ID]; exists {
			return nil, configError("人员 %s 重复", agent.ID)
		}

		if err := utils.ValidateAgentSkills(agent, c.appointmentTypes); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrConfiguration, err)
		}

		skillSet := make(map[string]bool, len(agent.Skills))
		for _, skill := range agent.Skills {
			skillSet[skill] = true
		}

		c.agentIndex[agent.ID] = len(c.agents)
		c.agents = append(c.agents, domain.Agent{ID: agent.ID, Skills: slices.Clone(agent.Skills)})
		c.skills = append(c.skills, skillSet)

		if skillSet[SkillSecurity] {
			c.securityAgents = append(c.securityAgents, agent.ID)
		}
	}
	if len(c.agents) == 0 {
		return nil, configError("人员名单为空")
	}

	return c, nil
}

// Agents 返回人员名单的副本，顺序即为排班表中的人员下标
func (c *Catalog) Agents() []domain.Agent {
	agents := make([]domain.Agent, len(c.agents))
	for i, a := range c.agents {
		agents[i] = domain.Agent{ID: a.ID, Skills: slices.Clone(a.Skills)}
	}
	return agents
}

func (c *Catalog) AgentCount() int {
	return len(c.agents)
}

func (c *Catalog) AgentID(idx int) string {
	return c.agents[idx].ID
}

func (c *Catalog) AgentIndex(id string) (int, bool) {
	idx, ok := c.agentIndex[id]
	return idx, ok
}

func (c *Catalog) HasSkill(agentIdx int, skill string) bool {
	return c.skills[agentIdx][skill]
}

func (c *Catalog) Shift(name string) (domain.Shift, bool) {
	shift, ok := c.shifts[name]
	return shift, ok
}

// Shifts 按定义顺序返回所有班次
func (c *Catalog) Shifts() []domain.Shift {
	shifts := make([]domain.Shift, 0, len(c.shiftOrder))
	for _, name := range c.shiftOrder {
		shifts = append(shifts, c.shifts[name])
	}
	return shifts
}

func (c *Catalog) IsShift(label string) bool {
	_, ok := c.shifts[label]
	return ok
}

func (c *Catalog) AppointmentTypes() []string {
	return slices.Clone(c.appointmentTypes)
}

func (c *Catalog) IsAppointmentType(label string) bool {
	return slices.Contains(c.appointmentTypes, label)
}

// SecurityAgents 返回具备 Security 技能的人员，只有他们有资格值夜班
func (c *Catalog) SecurityAgents() []string {
	return slices.Clone(c.securityAgents)
}

// DayShifts 返回可以作为默认班次的白班
func (c *Catalog) DayShifts() []string {
	return []string{ShiftMorning, ShiftAfternoon}
}

// NightShifts 返回组成一个完整夜班的四个子班次，按时间顺序排列
func (c *Catalog) NightShifts() []string {
	names := make([]string, NightBlockParts)
	for i := range names {
		names[i] = fmt.Sprintf("%s%d", NightPrefix, i+1)
	}
	return names
}

func IsNightShift(label string) bool {
	return strings.HasPrefix(label, NightPrefix)
}
