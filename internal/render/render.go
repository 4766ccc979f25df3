// Package render 将排班结果渲染成文本表格和人手不足的警告
package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/sysu-ecnc-dev/shift-planner/internal/domain"
)

// Rows 按星期顺序返回每天各个班次的员工，名字之间用 ", " 连接
func Rows(ws *domain.WeeklySchedule) []domain.ScheduleRow {
	rows := make([]domain.ScheduleRow, 0, len(ws.Days))
	for _, ds := range ws.Days {
		rows = append(rows, domain.ScheduleRow{
			Day:       ds.Day.String(),
			Morning:   strings.Join(ds.Shifts[domain.Morning], ", "),
			Afternoon: strings.Join(ds.Shifts[domain.Afternoon], ", "),
			Evening:   strings.Join(ds.Shifts[domain.Evening], ", "),
		})
	}
	return rows
}

func Warnings(ws *domain.WeeklySchedule) []string {
	warnings := make([]string, 0, len(ws.Understaffed))
	for _, slot := range ws.Understaffed {
		warnings = append(warnings, fmt.Sprintf("%s %s shift has only %d employee(s).", slot.Day, slot.Shift, slot.Assigned))
	}
	return warnings
}

func Table(ws *domain.WeeklySchedule) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderTop(false).
		BorderBottom(false).
		BorderLeft(false).
		BorderRight(false).
		StyleFunc(func(row, col int) lipgloss.Style {
			return lipgloss.NewStyle().Padding(0, 1)
		}).
		Headers("Day", "Morning", "Afternoon", "Evening")

	for _, row := range Rows(ws) {
		t.Row(row.Day, row.Morning, row.Afternoon, row.Evening)
	}

	return t.String()
}

// Write 输出表格，如果存在人手不足的班次，再输出警告列表
func Write(w io.Writer, ws *domain.WeeklySchedule) error {
	if _, err := fmt.Fprintln(w, Table(ws)); err != nil {
		return err
	}

	warnings := Warnings(ws)
	if len(warnings) == 0 {
		return nil
	}

	if _, err := fmt.Fprintln(w, "\nWarnings:"); err != nil {
		return err
	}
	for _, warning := range warnings {
		if _, err := fmt.Fprintf(w, " - %s\n", warning); err != nil {
			return err
		}
	}
	return nil
}
