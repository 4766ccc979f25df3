// Package roster 读取和生成 YAML 格式的员工名册
//
//	workers:
//	  - name: Alice
//	    preferences:
//	      Monday: morning
//	      Tuesday: none
package roster

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sysu-ecnc-dev/shift-planner/internal/domain"
	"gopkg.in/yaml.v3"
)

type file struct {
	Workers []entry `yaml:"workers"`
}

type entry struct {
	Name        string            `yaml:"name"`
	Preferences map[string]string `yaml:"preferences,omitempty"`
}

// Load 解析名册，员工按照文件中的顺序返回
func Load(r io.Reader) ([]*domain.Worker, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var f file
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("名册为空")
		}
		return nil, fmt.Errorf("无法解析名册: %w", err)
	}

	workers := make([]*domain.Worker, 0, len(f.Workers))
	seen := make(map[string]struct{}, len(f.Workers))

	for i, e := range f.Workers {
		name := strings.TrimSpace(e.Name)
		if name == "" {
			return nil, fmt.Errorf("第 %d 个员工的名字不能为空", i+1)
		}
		if _, exists := seen[name]; exists {
			return nil, fmt.Errorf("员工 %q 重复出现", name)
		}
		seen[name] = struct{}{}

		preferences, err := parsePreferences(e.Preferences)
		if err != nil {
			return nil, fmt.Errorf("员工 %q: %w", name, err)
		}

		workers = append(workers, &domain.Worker{
			Name:        name,
			Preferences: preferences,
		})
	}

	return workers, nil
}

func LoadFile(path string) ([]*domain.Worker, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return Load(f)
}

func parsePreferences(raw map[string]string) (map[domain.Day]domain.ShiftKind, error) {
	preferences := make(map[domain.Day]domain.ShiftKind, len(raw))
	seen := make(map[domain.Day]struct{}, len(raw))
	for dayName, value := range raw {
		day, err := domain.ParseDay(dayName)
		if err != nil {
			return nil, err
		}
		// 星期名称不区分大小写，Monday 和 monday 是同一天
		if _, exists := seen[day]; exists {
			return nil, fmt.Errorf("%s 的偏好重复出现", day)
		}
		seen[day] = struct{}{}
		kind, ok, err := domain.ParsePreference(value)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", day, err)
		}
		if ok {
			preferences[day] = kind
		}
	}
	return preferences, nil
}

// Write 将名册以 YAML 格式输出，没有偏好的日子写成 none
func Write(w io.Writer, workers []*domain.Worker) error {
	f := file{Workers: make([]entry, 0, len(workers))}
	for _, worker := range workers {
		e := entry{Name: worker.Name, Preferences: make(map[string]string, domain.DaysPerWeek)}
		for _, day := range domain.Days {
			if kind, ok := worker.PreferenceOn(day); ok {
				e.Preferences[day.String()] = strings.ToLower(kind.String())
			} else {
				e.Preferences[day.String()] = "none"
			}
		}
		f.Workers = append(f.Workers, e)
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(f); err != nil {
		return err
	}
	return enc.Close()
}
