package utils

import (
	"errors"
	"fmt"
	"strings"

	"github.com/sysu-ecnc-dev/shift-planner/internal/domain"
)

// ValidateWeeklySchedule 检查排班结果是否满足以下约束：
//   - 7 天按顺序排列，每天包含全部 3 个班次
//   - 每个班次的人数不超过 maxPerShift
//   - 同一个员工在同一天最多出现一次
//   - 每个员工每周上班的天数不超过 maxDays
func ValidateWeeklySchedule(ws *domain.WeeklySchedule, maxPerShift int, maxDays int) error {
	if len(ws.Days) != domain.DaysPerWeek {
		return fmt.Errorf("排班结果应包含 %d 天，实际为 %d 天", domain.DaysPerWeek, len(ws.Days))
	}

	daysPerWorker := make(map[string]int)

	for i, ds := range ws.Days {
		if ds.Day != domain.Days[i] {
			return fmt.Errorf("排班结果的第 %d 天应为 %s，实际为 %s", i+1, domain.Days[i], ds.Day)
		}

		seen := make(map[string]domain.ShiftKind)
		for _, kind := range domain.ShiftKinds {
			names, ok := ds.Shifts[kind]
			if !ok {
				return fmt.Errorf("%s 缺少 %s 班次", ds.Day, kind)
			}
			if len(names) > maxPerShift {
				return fmt.Errorf("%s %s 班次的人数 %d 超过了上限 %d", ds.Day, kind, len(names), maxPerShift)
			}

			for _, name := range names {
				if strings.TrimSpace(name) == "" {
					return fmt.Errorf("%s %s 班次中存在空的员工名字", ds.Day, kind)
				}
				if prev, exists := seen[name]; exists {
					return fmt.Errorf("员工 %q 在 %s 同时被安排在 %s 和 %s 班次", name, ds.Day, prev, kind)
				}
				seen[name] = kind
				daysPerWorker[name]++
			}
		}
	}

	var errs []error
	for name, days := range daysPerWorker {
		if days > maxDays {
			errs = append(errs, fmt.Errorf("员工 %q 本周上班 %d 天，超过了上限 %d 天", name, days, maxDays))
		}
	}

	return errors.Join(errs...)
}
