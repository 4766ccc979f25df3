package domain

import "time"

// Worker 是名册中的一名员工，Name 在名册中唯一
// Preferences 中不存在某一天的键，表示该员工当天没有提出偏好
type Worker struct {
	ID          int64             `json:"id"`
	Name        string            `json:"name"`
	Preferences map[Day]ShiftKind `json:"preferences"`
	CreatedAt   time.Time         `json:"createdAt"`
	Version     int32             `json:"-"`
}

// PreferenceOn 返回该员工在 day 的偏好班次
func (w *Worker) PreferenceOn(day Day) (ShiftKind, bool) {
	kind, ok := w.Preferences[day]
	return kind, ok
}
