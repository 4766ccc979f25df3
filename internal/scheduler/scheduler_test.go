package scheduler

import (
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sysu-ecnc-dev/shift-planner/internal/domain"
	"github.com/sysu-ecnc-dev/shift-planner/internal/utils"
)

// inOrderRandom 不打乱任何顺序，并且总是挑选第一个候选
type inOrderRandom struct{}

func (inOrderRandom) Shuffle(n int, swap func(i, j int)) {}
func (inOrderRandom) Intn(n int) int                     { return 0 }

var discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

func newTestScheduler(t *testing.T, parameters *Parameters, rng RandomSource) *Scheduler {
	t.Helper()
	s, err := New(parameters, rng, discardLogger)
	require.NoError(t, err)
	return s
}

func everyDay(kind domain.ShiftKind) map[domain.Day]domain.ShiftKind {
	preferences := make(map[domain.Day]domain.ShiftKind, domain.DaysPerWeek)
	for _, day := range domain.Days {
		preferences[day] = kind
	}
	return preferences
}

func newPool(parameters *Parameters, roster ...*domain.Worker) []*Worker {
	workers := make([]*Worker, 0, len(roster))
	for _, w := range roster {
		workers = append(workers, NewWorker(w, parameters.MaxDaysPerWorker))
	}
	return workers
}

func assertBoardInvariants(t *testing.T, parameters *Parameters, board *Board, workers []*Worker) {
	t.Helper()

	for _, day := range domain.Days {
		seen := make(map[string]bool)
		for _, kind := range domain.ShiftKinds {
			size := board.Size(day, kind)
			assert.GreaterOrEqual(t, size, 0)
			assert.LessOrEqual(t, size, parameters.MaxPerShift, "%s %s", day, kind)

			for _, name := range board.Workers(day, kind) {
				assert.False(t, seen[name], "%s double booked on %s", name, day)
				seen[name] = true
			}
		}
	}

	for _, w := range workers {
		assert.LessOrEqual(t, w.DaysAssigned(), parameters.MaxDaysPerWorker, w.Name())
		assert.Equal(t, w.DaysAssigned(), len(w.DaysWorked()), w.Name())
	}

	assert.NoError(t, verifyCounters(board, workers))
}

func TestNewRejectsInvalidParameters(t *testing.T) {
	tests := []struct {
		name       string
		parameters *Parameters
	}{
		{"zero day cap", &Parameters{MaxDaysPerWorker: 0, MaxPerShift: 2, MinPerShift: 2}},
		{"zero capacity", &Parameters{MaxDaysPerWorker: 5, MaxPerShift: 0, MinPerShift: 2}},
		{"negative minimum", &Parameters{MaxDaysPerWorker: 5, MaxPerShift: 2, MinPerShift: -1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.parameters, inOrderRandom{}, discardLogger)
			assert.Error(t, err)
		})
	}

	_, err := New(DefaultParameters(), nil, discardLogger)
	assert.Error(t, err)
}

func TestTwoWorkersPreferringMorningEveryDay(t *testing.T) {
	parameters := DefaultParameters()

	for seed := int64(0); seed < 20; seed++ {
		s := newTestScheduler(t, parameters, NewRandomSource(seed))
		board := NewBoard(parameters.MaxPerShift)
		workers := newPool(parameters,
			&domain.Worker{Name: "Alice", Preferences: everyDay(domain.Morning)},
			&domain.Worker{Name: "Bob", Preferences: everyDay(domain.Morning)},
		)

		s.GenerateWeeklySchedule(board, workers)

		assert.ElementsMatch(t, []string{"Alice", "Bob"}, board.Workers(domain.Monday, domain.Morning))
		for _, day := range domain.Days[:5] {
			assert.Equal(t, 2, board.Size(day, domain.Morning), day.String())
			assert.Zero(t, board.Size(day, domain.Afternoon), day.String())
			assert.Zero(t, board.Size(day, domain.Evening), day.String())
		}
		// 两人在周五都达到了 5 天上限
		for _, day := range []domain.Day{domain.Saturday, domain.Sunday} {
			for _, kind := range domain.ShiftKinds {
				assert.Zero(t, board.Size(day, kind))
			}
		}
		for _, w := range workers {
			assert.Equal(t, 5, w.DaysAssigned())
		}
		assertBoardInvariants(t, parameters, board, workers)
	}
}

func TestSingleWorkerWithMondayMorningPreference(t *testing.T) {
	parameters := DefaultParameters()
	s := newTestScheduler(t, parameters, NewRandomSource(42))

	ws, err := s.Schedule([]*domain.Worker{
		{Name: "Solo", Preferences: map[domain.Day]domain.ShiftKind{domain.Monday: domain.Morning}},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"Solo"}, ws.Workers(domain.Monday, domain.Morning))
	assert.Empty(t, ws.Workers(domain.Monday, domain.Afternoon))
	assert.Empty(t, ws.Workers(domain.Monday, domain.Evening))

	// 之后的日子由补位阶段安排到每天的第一个班次，直到达到上限
	for _, day := range []domain.Day{domain.Tuesday, domain.Wednesday, domain.Thursday, domain.Friday} {
		assert.Equal(t, []string{"Solo"}, ws.Workers(day, domain.Morning), day.String())
		assert.Empty(t, ws.Workers(day, domain.Afternoon), day.String())
		assert.Empty(t, ws.Workers(day, domain.Evening), day.String())
	}
	for _, day := range []domain.Day{domain.Saturday, domain.Sunday} {
		for _, kind := range domain.ShiftKinds {
			assert.Empty(t, ws.Workers(day, kind))
		}
	}

	// 一个人无法让任何班次达到 2 人
	assert.Len(t, ws.Understaffed, domain.DaysPerWeek*domain.ShiftKindsPerDay)
	assert.Equal(t, map[string]int{"Solo": 5}, utils.CountAssignedDays(ws))
}

func TestThreeWorkersCompetingForMondayEvening(t *testing.T) {
	parameters := DefaultParameters()
	monday := map[domain.Day]domain.ShiftKind{domain.Monday: domain.Evening}

	for seed := int64(0); seed < 50; seed++ {
		s := newTestScheduler(t, parameters, NewRandomSource(seed))
		board := NewBoard(parameters.MaxPerShift)
		workers := newPool(parameters,
			&domain.Worker{Name: "Alice", Preferences: monday},
			&domain.Worker{Name: "Bob", Preferences: monday},
			&domain.Worker{Name: "Carol", Preferences: monday},
		)

		s.GenerateWeeklySchedule(board, workers)

		evening := board.Workers(domain.Monday, domain.Evening)
		require.Len(t, evening, 2)

		// 第三个人尝试其他班次，Morning 排在最前面并且有空位
		morning := board.Workers(domain.Monday, domain.Morning)
		require.Len(t, morning, 1)
		assert.NotContains(t, evening, morning[0])
		assert.Empty(t, board.Workers(domain.Monday, domain.Afternoon))

		assertBoardInvariants(t, parameters, board, workers)
	}
}

func TestPreferencePassWithoutShuffleFollowsRosterOrder(t *testing.T) {
	parameters := DefaultParameters()
	s := newTestScheduler(t, parameters, inOrderRandom{})
	board := NewBoard(parameters.MaxPerShift)
	monday := map[domain.Day]domain.ShiftKind{domain.Monday: domain.Evening}
	workers := newPool(parameters,
		&domain.Worker{Name: "Alice", Preferences: monday},
		&domain.Worker{Name: "Bob", Preferences: monday},
		&domain.Worker{Name: "Carol", Preferences: monday},
	)

	s.GenerateWeeklySchedule(board, workers)

	assert.Equal(t, []string{"Alice", "Bob"}, board.Workers(domain.Monday, domain.Evening))
	assert.Equal(t, []string{"Carol"}, board.Workers(domain.Monday, domain.Morning))
}

func TestCarryoverWorkerPlacedBeforeBackfill(t *testing.T) {
	parameters := DefaultParameters()
	s := newTestScheduler(t, parameters, inOrderRandom{})
	board := NewBoard(parameters.MaxPerShift)

	// 7 个人都想在周一上早班，但周一只有 6 个位置
	roster := make([]*domain.Worker, 0, 7)
	for i := 1; i <= 7; i++ {
		roster = append(roster, &domain.Worker{
			Name:        fmt.Sprintf("W%d", i),
			Preferences: map[domain.Day]domain.ShiftKind{domain.Monday: domain.Morning},
		})
	}
	workers := newPool(parameters, roster...)

	s.GenerateWeeklySchedule(board, workers)

	assert.Equal(t, []string{"W1", "W2"}, board.Workers(domain.Monday, domain.Morning))
	assert.Equal(t, []string{"W3", "W4"}, board.Workers(domain.Monday, domain.Afternoon))
	assert.Equal(t, []string{"W5", "W6"}, board.Workers(domain.Monday, domain.Evening))

	// W7 在周二的重试阶段排在补位之前
	assert.Equal(t, []string{"W7", "W1"}, board.Workers(domain.Tuesday, domain.Morning))
	assert.Equal(t, []string{"W2", "W3"}, board.Workers(domain.Tuesday, domain.Afternoon))
	assert.Equal(t, []string{"W4", "W5"}, board.Workers(domain.Tuesday, domain.Evening))

	assertBoardInvariants(t, parameters, board, workers)
}

func TestPushToCarryover(t *testing.T) {
	parameters := DefaultParameters()
	s := newTestScheduler(t, parameters, inOrderRandom{})

	t.Run("keeps every push", func(t *testing.T) {
		carry := &carryover{}
		w := NewWorker(&domain.Worker{Name: "Alice"}, parameters.MaxDaysPerWorker)

		s.pushToCarryover(w, domain.Monday, carry)
		s.pushToCarryover(w, domain.Tuesday, carry)

		assert.Equal(t, 2, carry.len())
	})

	t.Run("no days left", func(t *testing.T) {
		carry := &carryover{}
		w := NewWorker(&domain.Worker{Name: "Alice"}, parameters.MaxDaysPerWorker)

		s.pushToCarryover(w, domain.Sunday, carry)

		assert.Zero(t, carry.len())
	})

	t.Run("day cap reached", func(t *testing.T) {
		carry := &carryover{}
		w := NewWorker(&domain.Worker{Name: "Alice"}, 1)
		w.Assign(domain.Monday)

		s.pushToCarryover(w, domain.Tuesday, carry)

		assert.Zero(t, carry.len())
	})
}

func TestRetryCarryoverKeepsWorkersThatCannotBePlaced(t *testing.T) {
	parameters := &Parameters{MaxDaysPerWorker: 5, MaxPerShift: 1, MinPerShift: 0}
	s := newTestScheduler(t, parameters, inOrderRandom{})
	board := NewBoard(parameters.MaxPerShift)
	for _, kind := range domain.ShiftKinds {
		board.Add(domain.Tuesday, kind, "Existing "+kind.String())
	}

	w := NewWorker(&domain.Worker{Name: "Alice"}, parameters.MaxDaysPerWorker)
	carry := &carryover{workers: []*Worker{w}}

	s.retryCarryover(board, domain.Tuesday, carry)
	assert.Equal(t, 1, carry.len(), "tuesday is full")

	s.retryCarryover(board, domain.Wednesday, carry)
	assert.Zero(t, carry.len())
	assert.Equal(t, []string{"Alice"}, board.Workers(domain.Wednesday, domain.Morning))
	assert.Equal(t, []domain.Day{domain.Wednesday}, w.DaysWorked())
}

func TestWorkerCarriedOverTwiceIsRetriedOnTwoDays(t *testing.T) {
	parameters := &Parameters{MaxDaysPerWorker: 5, MaxPerShift: 1, MinPerShift: 0}
	s := newTestScheduler(t, parameters, inOrderRandom{})
	board := NewBoard(parameters.MaxPerShift)

	mondayAndTuesday := map[domain.Day]domain.ShiftKind{domain.Monday: domain.Morning, domain.Tuesday: domain.Morning}
	workers := newPool(parameters,
		&domain.Worker{Name: "A", Preferences: mondayAndTuesday},
		&domain.Worker{Name: "B", Preferences: mondayAndTuesday},
		&domain.Worker{Name: "C", Preferences: mondayAndTuesday},
		&domain.Worker{Name: "W", Preferences: mondayAndTuesday},
	)

	s.GenerateWeeklySchedule(board, workers)

	// W 在周一和周二都没有排上，顺延列表中有两份
	// 周三排上一份，另一份因为当天已经上班而留到周四
	assert.Equal(t, []string{"W"}, board.Workers(domain.Wednesday, domain.Morning))
	assert.Equal(t, []string{"W"}, board.Workers(domain.Thursday, domain.Morning))
	assert.Empty(t, board.Workers(domain.Friday, domain.Morning))
	assert.Equal(t, []domain.Day{domain.Wednesday, domain.Thursday}, workers[3].DaysWorked())

	assertBoardInvariants(t, parameters, board, workers)
}

func TestWorkerWithoutPreferencesCanBeBackfilled(t *testing.T) {
	parameters := DefaultParameters()
	s := newTestScheduler(t, parameters, inOrderRandom{})
	board := NewBoard(parameters.MaxPerShift)
	workers := newPool(parameters,
		&domain.Worker{Name: "Alice", Preferences: map[domain.Day]domain.ShiftKind{domain.Monday: domain.Evening}},
		&domain.Worker{Name: "Idle"},
	)

	s.GenerateWeeklySchedule(board, workers)

	assert.Equal(t, []string{"Idle"}, board.Workers(domain.Monday, domain.Morning))
	assert.Equal(t, []string{"Alice"}, board.Workers(domain.Monday, domain.Evening))
	assertBoardInvariants(t, parameters, board, workers)
}

func TestBackfillNeverExceedsCapacity(t *testing.T) {
	// 最少人数大于容量时，补位在班次满了之后停止
	parameters := &Parameters{MaxDaysPerWorker: 7, MaxPerShift: 1, MinPerShift: 3}
	s := newTestScheduler(t, parameters, NewRandomSource(7))
	board := NewBoard(parameters.MaxPerShift)

	roster := make([]*domain.Worker, 0, 10)
	for i := 0; i < 10; i++ {
		roster = append(roster, &domain.Worker{Name: fmt.Sprintf("W%d", i)})
	}
	workers := newPool(parameters, roster...)

	s.GenerateWeeklySchedule(board, workers)

	for _, day := range domain.Days {
		for _, kind := range domain.ShiftKinds {
			assert.Equal(t, 1, board.Size(day, kind))
		}
	}
	assertBoardInvariants(t, parameters, board, workers)
}

func randomRoster(rng *rand.Rand, n int) []*domain.Worker {
	roster := make([]*domain.Worker, 0, n)
	for i := 0; i < n; i++ {
		preferences := make(map[domain.Day]domain.ShiftKind)
		for _, day := range domain.Days {
			if rng.Intn(3) == 0 {
				continue
			}
			preferences[day] = domain.ShiftKinds[rng.Intn(len(domain.ShiftKinds))]
		}
		roster = append(roster, &domain.Worker{Name: fmt.Sprintf("W%02d", i), Preferences: preferences})
	}
	return roster
}

func TestGenerateWeeklyScheduleInvariants(t *testing.T) {
	parameters := DefaultParameters()
	rosterRng := rand.New(rand.NewSource(1))

	for seed := int64(0); seed < 200; seed++ {
		roster := randomRoster(rosterRng, rosterRng.Intn(15)+1)
		s := newTestScheduler(t, parameters, NewRandomSource(seed))
		board := NewBoard(parameters.MaxPerShift)
		workers := newPool(parameters, roster...)

		s.GenerateWeeklySchedule(board, workers)

		assertBoardInvariants(t, parameters, board, workers)
	}
}

func TestScheduleIsDeterministicForSeed(t *testing.T) {
	parameters := DefaultParameters()
	roster := randomRoster(rand.New(rand.NewSource(99)), 9)

	first, err := newTestScheduler(t, parameters, NewRandomSource(2024)).Schedule(roster)
	require.NoError(t, err)
	second, err := newTestScheduler(t, parameters, NewRandomSource(2024)).Schedule(roster)
	require.NoError(t, err)

	if diff := cmp.Diff(first.Days, second.Days); diff != "" {
		t.Errorf("same seed produced different schedules (-first +second):\n%s", diff)
	}
	assert.Equal(t, first.Understaffed, second.Understaffed)
	assert.NotEqual(t, first.ID, second.ID)
}

func TestScheduleCanBeCalledRepeatedly(t *testing.T) {
	parameters := DefaultParameters()
	s := newTestScheduler(t, parameters, NewRandomSource(3))
	roster := randomRoster(rand.New(rand.NewSource(3)), 6)

	for i := 0; i < 5; i++ {
		ws, err := s.Schedule(roster)
		require.NoError(t, err)
		for name, days := range utils.CountAssignedDays(ws) {
			assert.LessOrEqual(t, days, parameters.MaxDaysPerWorker, name)
		}
	}
}

func TestScheduleRejectsInvalidRoster(t *testing.T) {
	s := newTestScheduler(t, DefaultParameters(), inOrderRandom{})

	_, err := s.Schedule(nil)
	assert.ErrorIs(t, err, ErrEmptyRoster)

	_, err = s.Schedule([]*domain.Worker{{Name: "Alice"}, {Name: "Alice"}})
	assert.Error(t, err)
}

func TestScheduleReportsUnderstaffedSlots(t *testing.T) {
	parameters := DefaultParameters()
	s := newTestScheduler(t, parameters, NewRandomSource(11))

	roster := make([]*domain.Worker, 0, 3)
	for i := 0; i < 3; i++ {
		roster = append(roster, &domain.Worker{Name: fmt.Sprintf("W%d", i)})
	}

	ws, err := s.Schedule(roster)
	require.NoError(t, err)

	assert.NotEmpty(t, ws.ID)
	assert.Len(t, ws.Days, domain.DaysPerWeek)
	assert.Equal(t, utils.FindUnderstaffedSlots(ws, parameters.MinPerShift), ws.Understaffed)
	for _, slot := range ws.Understaffed {
		assert.Less(t, slot.Assigned, parameters.MinPerShift)
		assert.Equal(t, parameters.MinPerShift, slot.Required)
	}
}
