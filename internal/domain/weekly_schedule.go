package domain

import "time"

type DaySchedule struct {
	Day    Day                    `json:"day"`
	Shifts map[ShiftKind][]string `json:"shifts"`
}

// UnderstaffedSlot 表示某一天的某个班次没有达到最少人数
type UnderstaffedSlot struct {
	Day      Day       `json:"day"`
	Shift    ShiftKind `json:"shift"`
	Assigned int       `json:"assigned"`
	Required int       `json:"required"`
}

type WeeklySchedule struct {
	ID           string             `json:"id"`
	GeneratedAt  time.Time          `json:"generatedAt"`
	Days         []DaySchedule      `json:"days"`
	Understaffed []UnderstaffedSlot `json:"understaffed"`
}

// Workers 返回 (day, shift) 中按分配顺序排列的员工名字
func (ws *WeeklySchedule) Workers(day Day, shift ShiftKind) []string {
	for _, ds := range ws.Days {
		if ds.Day == day {
			return ds.Shifts[shift]
		}
	}
	return nil
}
