package scheduler

import (
	"time"

	"github.com/sysu-ecnc-dev/guard-scheduler/backend/internal/catalog"
)

// Entry: 用于展示的一条排班记录
type Entry struct {
	Day      int            `json:"day"`
	Agent    string         `json:"agent"`
	Label    string         `json:"label"`
	Kind     AssignmentKind `json:"kind"`
	Start    time.Time      `json:"start"`
	End      time.Time      `json:"end"`
	Duration int            `json:"duration,omitempty"`
}

// Entries 按 (day, agent, assignment) 的顺序列出个体中的所有安排，weekStart 为第 0 天的零点
// 跨越午夜的班次在第二天结束；预约从该人当天第一个班次的开始时间开始
func Entries(cat *catalog.Catalog, ind *Individual, weekStart time.Time) []Entry {
	var entries []Entry

	for day, schedule := range ind.Days {
		dayStart := weekStart.AddDate(0, 0, day)

		for idx, assignments := range schedule {
			if idx >= cat.AgentCount() {
				break
			}

			// 预约的开始时间取当天第一个班次的开始时间
			appointmentStart := dayStart
			if len(assignments) > 0 {
				if shift, ok := cat.Shift(assignments[0].Label); ok {
					appointmentStart = dayStart.Add(time.Duration(shift.Start) * time.Hour)
				}
			}

			for _, a := range assignments {
				entry := Entry{
					Day:   day,
					Agent: cat.AgentID(idx),
					Label: a.Label,
					Kind:  a.Kind,
				}

				switch a.Kind {
				case KindShift:
					entry.Start = dayStart.Add(time.Duration(a.Start) * time.Hour)
					entry.End = dayStart.Add(time.Duration(a.End) * time.Hour)
					if a.End < a.Start {
						entry.End = entry.End.AddDate(0, 0, 1)
					}
				default:
					entry.Start = appointmentStart
					entry.End = appointmentStart.Add(time.Duration(a.Duration) * time.Hour)
					entry.Duration = a.Duration
				}

				entries = append(entries, entry)
			}
		}
	}

	return entries
}
