package scheduler

import (
	"slices"

	"github.com/sysu-ecnc-dev/shift-planner/internal/domain"
)

// Board 是 7 天 x 3 个班次的排班表，每个格子按分配顺序保存员工名字
type Board struct {
	maxPerShift int
	cells       [domain.DaysPerWeek][domain.ShiftKindsPerDay][]string
}

func NewBoard(maxPerShift int) *Board {
	b := &Board{maxPerShift: maxPerShift}
	for d := range b.cells {
		for k := range b.cells[d] {
			b.cells[d][k] = make([]string, 0, maxPerShift)
		}
	}
	return b
}

func (b *Board) HasCapacity(day domain.Day, shift domain.ShiftKind) bool {
	return len(b.cells[day][shift]) < b.maxPerShift
}

// Add 不检查容量，调用方必须先调用 HasCapacity
func (b *Board) Add(day domain.Day, shift domain.ShiftKind, name string) {
	b.cells[day][shift] = append(b.cells[day][shift], name)
}

func (b *Board) Size(day domain.Day, shift domain.ShiftKind) int {
	return len(b.cells[day][shift])
}

// Clear 清空所有格子，天和班次的结构保持不变
func (b *Board) Clear() {
	for d := range b.cells {
		for k := range b.cells[d] {
			b.cells[d][k] = b.cells[d][k][:0]
		}
	}
}

func (b *Board) Workers(day domain.Day, shift domain.ShiftKind) []string {
	return slices.Clone(b.cells[day][shift])
}

// AssignedOn 返回当天所有班次中已经被安排的员工
func (b *Board) AssignedOn(day domain.Day) map[string]struct{} {
	assigned := make(map[string]struct{})
	for _, names := range b.cells[day] {
		for _, name := range names {
			assigned[name] = struct{}{}
		}
	}
	return assigned
}

// Days 将排班表转换成按星期、班次顺序排列的结果
func (b *Board) Days() []domain.DaySchedule {
	days := make([]domain.DaySchedule, 0, domain.DaysPerWeek)
	for _, day := range domain.Days {
		ds := domain.DaySchedule{
			Day:    day,
			Shifts: make(map[domain.ShiftKind][]string, domain.ShiftKindsPerDay),
		}
		for _, kind := range domain.ShiftKinds {
			ds.Shifts[kind] = b.Workers(day, kind)
		}
		days = append(days, ds)
	}
	return days
}
