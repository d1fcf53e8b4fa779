package domain

// Shift: 一个具名的时间窗口，单位为小时
// 当 End < Start 时表示该班次跨越午夜
type Shift struct {
	Name  string `json:"name" validate:"required"`
	Start int    `json:"start" validate:"min=0,max=23"`
	End   int    `json:"end" validate:"min=0,max=23"`
}

// CrossesMidnight 判断班次是否跨越午夜
func (s Shift) CrossesMidnight() bool {
	return s.End < s.Start
}

// Hours 返回班次的时长（小时）
func (s Shift) Hours() int {
	if s.CrossesMidnight() {
		return s.End + 24 - s.Start
	}
	return s.End - s.Start
}
