package utils

import "github.com/sysu-ecnc-dev/shift-planner/internal/domain"

// FindUnderstaffedSlots 按星期、班次的顺序找出人数少于 minPerShift 的班次
func FindUnderstaffedSlots(ws *domain.WeeklySchedule, minPerShift int) []domain.UnderstaffedSlot {
	slots := make([]domain.UnderstaffedSlot, 0)

	for _, ds := range ws.Days {
		for _, kind := range domain.ShiftKinds {
			assigned := len(ds.Shifts[kind])
			if assigned < minPerShift {
				slots = append(slots, domain.UnderstaffedSlot{
					Day:      ds.Day,
					Shift:    kind,
					Assigned: assigned,
					Required: minPerShift,
				})
			}
		}
	}

	return slots
}

// CountAssignedDays 统计每个员工本周上班的天数
func CountAssignedDays(ws *domain.WeeklySchedule) map[string]int {
	counts := make(map[string]int)
	for _, ds := range ws.Days {
		for _, names := range ds.Shifts {
			for _, name := range names {
				counts[name]++
			}
		}
	}
	return counts
}
