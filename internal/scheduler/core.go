package scheduler

import (
	"log/slog"
	"slices"

	"github.com/sysu-ecnc-dev/shift-planner/internal/domain"
)

// carryover 保存当天想上班但没有排上、并且之后还能上班的员工
// 员工每次顺延都会追加一次，因此同一个员工可能出现多次，每一次都会在之后的日子各重试一次
type carryover struct {
	workers []*Worker
}

func (c *carryover) push(w *Worker) {
	c.workers = append(c.workers, w)
}

func (c *carryover) len() int {
	return len(c.workers)
}

// place 同时写入排班表和员工计数，保证两者一一对应
func (s *Scheduler) place(board *Board, w *Worker, day domain.Day, shift domain.ShiftKind) {
	board.Add(day, shift, w.Name())
	w.Assign(day)
}

/**
 * 偏好阶段
 * 找出所有对当天提出了偏好的员工，打乱顺序后依次处理：
 * 		1. 已经不能再上班的员工，尝试顺延
 * 		2. 偏好的班次有空位，直接安排
 * 		3. 否则按照 Morning -> Afternoon -> Evening 的顺序尝试其他班次
 * 		4. 所有班次都满了，尝试顺延
 */
func (s *Scheduler) assignPreferences(board *Board, workers []*Worker, day domain.Day, carry *carryover) {
	candidates := make([]*Worker, 0, len(workers))
	for _, w := range workers {
		if _, ok := w.Preference(day); ok {
			candidates = append(candidates, w)
		}
	}

	// 打乱顺序，避免名册中靠前的员工总是优先
	s.rng.Shuffle(len(candidates), func(i, j int) {
		candidates[i], candidates[j] = candidates[j], candidates[i]
	})

	for _, w := range candidates {
		preferred, _ := w.Preference(day)
		s.assignWithConflictResolution(board, w, day, preferred, carry)
	}
}

func (s *Scheduler) assignWithConflictResolution(board *Board, w *Worker, day domain.Day, preferred domain.ShiftKind, carry *carryover) {
	if !w.CanWorkDay(day) {
		s.pushToCarryover(w, day, carry)
		return
	}

	if board.HasCapacity(day, preferred) {
		s.place(board, w, day, preferred)
		return
	}

	for _, alt := range domain.ShiftKinds {
		if alt == preferred {
			continue
		}
		if board.HasCapacity(day, alt) {
			s.place(board, w, day, alt)
			return
		}
	}

	s.pushToCarryover(w, day, carry)
}

// pushToCarryover 只有当本周还有剩余的天数并且员工还没达到上限时才顺延，否则本周放弃该员工的偏好
func (s *Scheduler) pushToCarryover(w *Worker, day domain.Day, carry *carryover) {
	if day < domain.Sunday && !w.ReachedDayCap() {
		carry.push(w)
		s.logger.Debug("员工顺延到之后的日子", slog.String("worker", w.Name()), slog.String("day", day.String()))
		return
	}
	s.logger.Debug("员工的偏好无法满足", slog.String("worker", w.Name()), slog.String("day", day.String()))
}

// retryCarryover 顺延的员工不考虑偏好，随机尝试当天任何还有空位的班次
// 排上的员工从顺延列表中移除，没排上的留到第二天
func (s *Scheduler) retryCarryover(board *Board, day domain.Day, carry *carryover) {
	if carry.len() == 0 {
		return
	}

	s.rng.Shuffle(carry.len(), func(i, j int) {
		carry.workers[i], carry.workers[j] = carry.workers[j], carry.workers[i]
	})

	remaining := make([]*Worker, 0, carry.len())
	for _, w := range carry.workers {
		if w.CanWorkDay(day) && s.tryAnyShift(board, w, day) {
			continue
		}
		remaining = append(remaining, w)
	}
	carry.workers = remaining
}

func (s *Scheduler) tryAnyShift(board *Board, w *Worker, day domain.Day) bool {
	kinds := slices.Clone(domain.ShiftKinds)
	s.rng.Shuffle(len(kinds), func(i, j int) {
		kinds[i], kinds[j] = kinds[j], kinds[i]
	})

	for _, kind := range kinds {
		if board.HasCapacity(day, kind) {
			s.place(board, w, day, kind)
			return true
		}
	}
	return false
}

/**
 * 补位阶段
 * 对当天的每个班次，只要人数少于 MinPerShift，就从当天还能上班、并且当天还没有被安排的员工中随机挑一个
 * 没有可挑的员工时放弃这个班次（人手不足由调用方展示），班次满了也停止
 */
func (s *Scheduler) ensureMinimumStaffing(board *Board, workers []*Worker, day domain.Day) {
	// 当天已安排的员工只会在这里新增，因此只需要计算一次
	assigned := board.AssignedOn(day)

	for _, kind := range domain.ShiftKinds {
		for board.Size(day, kind) < s.parameters.MinPerShift {
			if !board.HasCapacity(day, kind) {
				break
			}

			eligible := make([]*Worker, 0, len(workers))
			for _, w := range workers {
				if _, ok := assigned[w.Name()]; ok {
					continue
				}
				if w.CanWorkDay(day) {
					eligible = append(eligible, w)
				}
			}

			if len(eligible) == 0 {
				s.logger.Debug("没有可以补位的员工", slog.String("day", day.String()), slog.String("shift", kind.String()), slog.Int("size", board.Size(day, kind)))
				break
			}

			pick := eligible[s.rng.Intn(len(eligible))]
			s.place(board, pick, day, kind)
			assigned[pick.Name()] = struct{}{}
		}
	}
}
