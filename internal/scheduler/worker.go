package scheduler

import (
	"slices"

	"github.com/sysu-ecnc-dev/shift-planner/internal/domain"
)

// Worker 是参与一次排班的员工及其本周的工作计数
// daysAssigned 必须始终等于 daysWorked 的大小
type Worker struct {
	name         string
	preferences  map[domain.Day]domain.ShiftKind
	maxDays      int
	daysAssigned int
	daysWorked   map[domain.Day]struct{}
}

func NewWorker(w *domain.Worker, maxDays int) *Worker {
	preferences := make(map[domain.Day]domain.ShiftKind, len(w.Preferences))
	for day, kind := range w.Preferences {
		preferences[day] = kind
	}

	return &Worker{
		name:        w.Name,
		preferences: preferences,
		maxDays:     maxDays,
		daysWorked:  make(map[domain.Day]struct{}, domain.DaysPerWeek),
	}
}

func (w *Worker) Name() string {
	return w.name
}

func (w *Worker) Preference(day domain.Day) (domain.ShiftKind, bool) {
	kind, ok := w.preferences[day]
	return kind, ok
}

// CanWorkDay 当且仅当员工当天还没有上班，并且本周还没有达到工作天数上限时返回 true
func (w *Worker) CanWorkDay(day domain.Day) bool {
	_, worked := w.daysWorked[day]
	return !worked && w.daysAssigned < w.maxDays
}

// Assign 记录员工在 day 上班
// 调用方必须先用 CanWorkDay 检查，这里不做任何校验
func (w *Worker) Assign(day domain.Day) {
	w.daysWorked[day] = struct{}{}
	w.daysAssigned++
}

func (w *Worker) ResetWorkCounters() {
	w.daysAssigned = 0
	clear(w.daysWorked)
}

func (w *Worker) DaysAssigned() int {
	return w.daysAssigned
}

func (w *Worker) ReachedDayCap() bool {
	return w.daysAssigned >= w.maxDays
}

// DaysWorked 按星期顺序返回员工本周上班的日子
func (w *Worker) DaysWorked() []domain.Day {
	days := make([]domain.Day, 0, len(w.daysWorked))
	for day := range w.daysWorked {
		days = append(days, day)
	}
	slices.Sort(days)
	return days
}
