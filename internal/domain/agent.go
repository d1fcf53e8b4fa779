package domain

// Agent: 可以被排班的人员，Skills 为其具备的技能标签（可以为空）
type Agent struct {
	ID     string   `json:"id" validate:"required"`
	Skills []string `json:"skills" validate:"dive,required"`
}
