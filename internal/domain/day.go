package domain

import (
	"fmt"
	"strings"
)

// Day 表示一周中的某一天，按照 Monday -> Sunday 的固定顺序排列
type Day int

const (
	Monday Day = iota
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

// DaysPerWeek 是一周的天数
const DaysPerWeek = 7

var Days = []Day{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

var dayNames = [DaysPerWeek]string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

func (d Day) String() string {
	if !d.Valid() {
		return fmt.Sprintf("Day(%d)", int(d))
	}
	return dayNames[d]
}

func (d Day) Valid() bool {
	return d >= Monday && d <= Sunday
}

// ParseDay 不区分大小写地解析星期名称
func ParseDay(s string) (Day, error) {
	s = strings.TrimSpace(s)
	for i, name := range dayNames {
		if strings.EqualFold(name, s) {
			return Day(i), nil
		}
	}
	return 0, fmt.Errorf("无效的星期: %q", s)
}

func (d Day) MarshalText() ([]byte, error) {
	if !d.Valid() {
		return nil, fmt.Errorf("无效的星期: %d", int(d))
	}
	return []byte(d.String()), nil
}

func (d *Day) UnmarshalText(text []byte) error {
	parsed, err := ParseDay(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// ShiftKind 表示一天中的班次类型，每天都是相同的三个班次
type ShiftKind int

const (
	Morning ShiftKind = iota
	Afternoon
	Evening
)

// ShiftKindsPerDay 是每天的班次数量
const ShiftKindsPerDay = 3

var ShiftKinds = []ShiftKind{Morning, Afternoon, Evening}

var shiftKindNames = [ShiftKindsPerDay]string{"Morning", "Afternoon", "Evening"}

func (k ShiftKind) String() string {
	if !k.Valid() {
		return fmt.Sprintf("ShiftKind(%d)", int(k))
	}
	return shiftKindNames[k]
}

func (k ShiftKind) Valid() bool {
	return k >= Morning && k <= Evening
}

// ParseShiftKind 不区分大小写地解析班次名称
func ParseShiftKind(s string) (ShiftKind, error) {
	s = strings.TrimSpace(s)
	for i, name := range shiftKindNames {
		if strings.EqualFold(name, s) {
			return ShiftKind(i), nil
		}
	}
	return 0, fmt.Errorf("无效的班次: %q", s)
}

// ParsePreference 解析某一天的班次偏好
// "none" 或者空字符串表示当天没有偏好，此时 ok 为 false
func ParsePreference(s string) (kind ShiftKind, ok bool, err error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "none") {
		return 0, false, nil
	}
	kind, err = ParseShiftKind(s)
	if err != nil {
		return 0, false, err
	}
	return kind, true, nil
}

func (k ShiftKind) MarshalText() ([]byte, error) {
	if !k.Valid() {
		return nil, fmt.Errorf("无效的班次: %d", int(k))
	}
	return []byte(k.String()), nil
}

func (k *ShiftKind) UnmarshalText(text []byte) error {
	parsed, err := ParseShiftKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}
