package scheduler

import (
	"encoding/json"
)

const (
	DaysPerWeek    = 7
	NightDutyDays  = 3 // 只有一周的前三天安排夜班
	HallOfFameSize = 3
	TournamentSize = 3
)

type AssignmentKind string

const (
	KindShift       AssignmentKind = "shift"
	KindAppointment AssignmentKind = "appointment"
)

// Assignment: 某人某天的一项安排，Label 为班次名称或预约类型
// 班次的载荷为时间窗口 (Start, End)，预约的载荷为时长 Duration
type Assignment struct {
	Label    string         `json:"label"`
	Kind     AssignmentKind `json:"kind"`
	Start    int            `json:"start,omitempty"`
	End      int            `json:"end,omitempty"`
	Duration int            `json:"duration,omitempty"`
}

// AppointmentRequest: 某天需要某种技能、持续若干小时的预约
type AppointmentRequest struct {
	Day      int    `json:"day"`
	Type     string `json:"type"`
	Duration int    `json:"duration"`
}

// ProblemInstance: 一次运行中所有个体共享的问题实例
type ProblemInstance struct {
	NightRoster  map[int]string       `json:"nightRoster"` // day -> agentID
	Appointments []AppointmentRequest `json:"appointments"`
}

// DaySchedule: 一天的排班，下标为人员在目录中的顺序
// 生成之后不会再被修改，交叉和变异只会移动整天的排班
type DaySchedule [][]Assignment

func (d DaySchedule) appointmentCount() int {
	n := 0
	for _, assignments := range d {
		for _, a := range assignments {
			if a.Kind == KindAppointment {
				n++
			}
		}
	}
	return n
}

// Individual: 一个候选的周排班表（染色体），每一天就是一个基因
type Individual struct {
	Days    []DaySchedule
	Dropped int // 问题实例中没有被安排上的预约数量

	fitness int
	valid   bool
}

// Fitness 返回缓存的适应度，第二个返回值表示是否已经评估过
func (ind *Individual) Fitness() (int, bool) {
	return ind.fitness, ind.valid
}

func (ind *Individual) setFitness(fitness int) {
	ind.fitness = fitness
	ind.valid = true
}

func (ind *Individual) invalidate() {
	ind.fitness = 0
	ind.valid = false
}

// Clone 复制个体。由于 DaySchedule 不会被原地修改，这里只需要复制天的序列
func (ind *Individual) Clone() *Individual {
	days := make([]DaySchedule, len(ind.Days))
	copy(days, ind.Days)
	return &Individual{
		Days:    days,
		Dropped: ind.Dropped,
		fitness: ind.fitness,
		valid:   ind.valid,
	}
}

type individualJSON struct {
	Days      []DaySchedule `json:"days"`
	Dropped   int           `json:"dropped"`
	Fitness   int           `json:"fitness"`
	Evaluated bool          `json:"evaluated"`
}

func (ind *Individual) MarshalJSON() ([]byte, error) {
	return json.Marshal(individualJSON{
		Days:      ind.Days,
		Dropped:   ind.Dropped,
		Fitness:   ind.fitness,
		Evaluated: ind.valid,
	})
}

func (ind *Individual) UnmarshalJSON(data []byte) error {
	var v individualJSON
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	ind.Days = v.Days
	ind.Dropped = v.Dropped
	ind.fitness = v.Fitness
	ind.valid = v.Evaluated
	return nil
}

// GenerationStats: 每一代种群适应度的统计
type GenerationStats struct {
	Generation int     `json:"generation"`
	Min        float64 `json:"min"`
	Mean       float64 `json:"mean"`
	Max        float64 `json:"max"`
	Best       int     `json:"best"` // 截至本代名人堂中的最优适应度
}

// Parameters: 遗传算法参数
type Parameters struct {
	PopulationSize   int     `json:"populationSize"`   // 种群大小
	Generations      int     `json:"generations"`      // 迭代次数
	CrossoverRate    float64 `json:"crossoverRate"`    // 交叉概率
	MutationRate     float64 `json:"mutationRate"`     // 每一天被交换位置的概率
	Seed             *int64  `json:"seed,omitempty"`   // 随机种子，为空时使用当前时间
	AppointmentCount int     `json:"appointmentCount"` // 问题实例中的预约数量
	Workers          int     `json:"workers"`          // 并行评估的 goroutine 数量，0 表示使用 CPU 核数
}

// Result: 一次成功运行的结果
type Result struct {
	Seed        int64             `json:"seed"`
	Instance    *ProblemInstance  `json:"instance"`
	HallOfFame  []*Individual     `json:"hallOfFame"`
	Baseline    GenerationStats   `json:"baseline"`    // 第 0 代（初始种群）
	Generations []GenerationStats `json:"generations"` // 长度等于 Parameters.Generations
}
