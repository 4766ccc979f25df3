package scheduler

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/sysu-ecnc-dev/shift-planner/internal/domain"
	"github.com/sysu-ecnc-dev/shift-planner/internal/utils"
)

var ErrEmptyRoster = errors.New("名册中没有任何员工")

type Scheduler struct {
	parameters *Parameters
	rng        RandomSource
	logger     *slog.Logger
}

// New 创建排班器，logger 为 nil 时使用 slog.Default()
func New(parameters *Parameters, rng RandomSource, logger *slog.Logger) (*Scheduler, error) {
	if err := parameters.Validate(); err != nil {
		return nil, err
	}
	if rng == nil {
		return nil, errors.New("随机源不能为空")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Scheduler{
		parameters: parameters,
		rng:        rng,
		logger:     logger.With(slog.String("component", "scheduler")),
	}, nil
}

/**
 * GenerateWeeklySchedule 按 Monday -> Sunday 的顺序逐天排班，每天依次执行：
 * 		1. 偏好阶段
 * 		2. 顺延重试阶段
 * 		3. 最少人数补位阶段
 * 调用前 board 必须已经清空，所有员工的计数必须已经重置
 * 排完的日子不会再回头修改
 */
func (s *Scheduler) GenerateWeeklySchedule(board *Board, workers []*Worker) {
	carry := &carryover{}

	for _, day := range domain.Days {
		s.assignPreferences(board, workers, day, carry)
		s.retryCarryover(board, day, carry)
		s.ensureMinimumStaffing(board, workers, day)
	}
}

// Schedule 为名册生成一周的排班结果
// 每次调用都会使用新的排班表和计数，因此可以重复调用
func (s *Scheduler) Schedule(roster []*domain.Worker) (*domain.WeeklySchedule, error) {
	if len(roster) == 0 {
		return nil, ErrEmptyRoster
	}

	workers := make([]*Worker, 0, len(roster))
	seen := make(map[string]struct{}, len(roster))
	for _, w := range roster {
		if _, exists := seen[w.Name]; exists {
			return nil, fmt.Errorf("名册中存在重复的员工 %q", w.Name)
		}
		seen[w.Name] = struct{}{}
		workers = append(workers, NewWorker(w, s.parameters.MaxDaysPerWorker))
	}

	board := NewBoard(s.parameters.MaxPerShift)

	start := time.Now()
	s.GenerateWeeklySchedule(board, workers)

	// 排班表和员工计数必须一一对应
	if err := verifyCounters(board, workers); err != nil {
		return nil, err
	}

	result := &domain.WeeklySchedule{
		ID:          uuid.NewString(),
		GeneratedAt: time.Now(),
		Days:        board.Days(),
	}
	result.Understaffed = utils.FindUnderstaffedSlots(result, s.parameters.MinPerShift)

	// 还需要检查一下结果是否满足约束条件
	if err := utils.ValidateWeeklySchedule(result, s.parameters.MaxPerShift, s.parameters.MaxDaysPerWorker); err != nil {
		return nil, err
	}

	s.logger.Info("排班完成",
		slog.String("id", result.ID),
		slog.Int("workers", len(workers)),
		slog.Int("understaffed", len(result.Understaffed)),
		slog.Duration("duration", time.Since(start)),
	)

	return result, nil
}
