package seed

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/sysu-ecnc-dev/shift-planner/internal/domain"
)

type WorkerCreator interface {
	CreateWorker(worker *domain.Worker) error
}

// DemoRoster 返回一份固定的示例名册，覆盖了偏好冲突、没有偏好和只有部分偏好的员工
func DemoRoster() []*domain.Worker {
	return []*domain.Worker{
		{Name: "Alice", Preferences: map[domain.Day]domain.ShiftKind{
			domain.Monday: domain.Morning, domain.Tuesday: domain.Morning, domain.Wednesday: domain.Morning,
			domain.Thursday: domain.Morning, domain.Friday: domain.Morning,
		}},
		{Name: "Bob", Preferences: map[domain.Day]domain.ShiftKind{
			domain.Monday: domain.Morning, domain.Wednesday: domain.Afternoon, domain.Friday: domain.Evening,
			domain.Saturday: domain.Evening, domain.Sunday: domain.Evening,
		}},
		{Name: "Carol", Preferences: map[domain.Day]domain.ShiftKind{
			domain.Monday: domain.Morning, domain.Tuesday: domain.Afternoon, domain.Thursday: domain.Afternoon,
			domain.Saturday: domain.Morning,
		}},
		{Name: "Dave", Preferences: map[domain.Day]domain.ShiftKind{
			domain.Tuesday: domain.Evening, domain.Wednesday: domain.Evening, domain.Thursday: domain.Evening,
			domain.Sunday: domain.Morning,
		}},
		{Name: "Erin", Preferences: map[domain.Day]domain.ShiftKind{
			domain.Monday: domain.Evening, domain.Friday: domain.Afternoon, domain.Saturday: domain.Afternoon,
			domain.Sunday: domain.Afternoon,
		}},
		{Name: "Frank"},
		{Name: "Grace", Preferences: map[domain.Day]domain.ShiftKind{
			domain.Monday: domain.Afternoon, domain.Tuesday: domain.Afternoon, domain.Wednesday: domain.Afternoon,
		}},
	}
}

/**
 * ParseCSV 读取员工偏好表
 * 表头为 name,Monday,Tuesday,...,Sunday（星期的列可以缺省或者乱序）
 * 每个单元格为 morning / afternoon / evening / none 或者留空
 */
func ParseCSV(r io.Reader) ([]*domain.Worker, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	// 读取表头
	headers, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("偏好表为空")
		}
		return nil, err
	}

	nameColumn := -1
	dayColumns := make(map[int]domain.Day)
	for i, header := range headers {
		if strings.EqualFold(strings.TrimSpace(header), "name") {
			nameColumn = i
			continue
		}
		day, err := domain.ParseDay(header)
		if err != nil {
			return nil, fmt.Errorf("第 %d 列: %w", i+1, err)
		}
		dayColumns[i] = day
	}
	if nameColumn < 0 {
		return nil, errors.New("没有找到 name 列")
	}

	// 读取数据
	var workers []*domain.Worker
	for line := 2; ; line++ {
		row, err := reader.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, err
		}

		name := strings.TrimSpace(row[nameColumn])
		if name == "" {
			return nil, fmt.Errorf("第 %d 行的名字为空", line)
		}

		worker := &domain.Worker{
			Name:        name,
			Preferences: make(map[domain.Day]domain.ShiftKind),
		}
		for i, day := range dayColumns {
			kind, ok, err := domain.ParsePreference(row[i])
			if err != nil {
				return nil, fmt.Errorf("第 %d 行 %s: %w", line, day, err)
			}
			if ok {
				worker.Preferences[day] = kind
			}
		}
		workers = append(workers, worker)
	}

	return workers, nil
}

// SeedWorkers 逐个插入员工，插入失败的员工会被跳过，返回成功插入的数量
func SeedWorkers(c WorkerCreator, workers []*domain.Worker) int {
	cnt := 0
	for _, worker := range workers {
		if err := c.CreateWorker(worker); err != nil {
			slog.Error("插入员工失败", slog.String("name", worker.Name), slog.String("error", err.Error()))
			continue
		}
		cnt++
	}
	return cnt
}

func SeedFromCSV(c WorkerCreator, path string) (int, error) {
	file, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer file.Close()

	workers, err := ParseCSV(file)
	if err != nil {
		return 0, err
	}

	return SeedWorkers(c, workers), nil
}
