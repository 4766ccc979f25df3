package scheduler

import (
	"fmt"
	"slices"

	"github.com/sysu-ecnc-dev/shift-planner/internal/domain"
)

// verifyCounters 检查每个员工的上班日子是否和排班表中的位置一一对应
func verifyCounters(board *Board, workers []*Worker) error {
	for _, w := range workers {
		if w.DaysAssigned() != len(w.DaysWorked()) {
			return fmt.Errorf("员工 %q 的上班天数 %d 和上班日子 %v 不一致", w.Name(), w.DaysAssigned(), w.DaysWorked())
		}

		var onBoard []domain.Day
		for _, day := range domain.Days {
			if _, ok := board.AssignedOn(day)[w.Name()]; ok {
				onBoard = append(onBoard, day)
			}
		}
		if !slices.Equal(onBoard, w.DaysWorked()) {
			return fmt.Errorf("员工 %q 在排班表中的日子 %v 和计数 %v 不一致", w.Name(), onBoard, w.DaysWorked())
		}
	}
	return nil
}
