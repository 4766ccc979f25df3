package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sysu-ecnc-dev/shift-planner/internal/domain"
	"github.com/sysu-ecnc-dev/shift-planner/internal/roster"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	cmd := NewRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return out.String(), err
}

func writeRoster(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "roster.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestExampleOutputIsLoadable(t *testing.T) {
	out, err := execute(t, "example")
	require.NoError(t, err)

	workers, err := roster.Load(strings.NewReader(out))
	require.NoError(t, err)
	assert.NotEmpty(t, workers)
	assert.Equal(t, "Alice", workers[0].Name)
}

func TestExampleRandom(t *testing.T) {
	out, err := execute(t, "example", "--random", "4")
	require.NoError(t, err)

	workers, err := roster.Load(strings.NewReader(out))
	require.NoError(t, err)
	assert.Len(t, workers, 4)
}

func TestGenerateTable(t *testing.T) {
	path := writeRoster(t, `
workers:
  - name: Alice
    preferences:
      Monday: morning
  - name: Bob
    preferences:
      Monday: morning
`)

	out, err := execute(t, "generate", path, "--seed", "1")
	require.NoError(t, err)

	assert.Contains(t, out, "Monday")
	assert.Contains(t, out, "Sunday")
	assert.Contains(t, out, "Warnings:")
	assert.Contains(t, out, "Monday Afternoon shift has only 0 employee(s).")
}

func TestGenerateJSON(t *testing.T) {
	path := writeRoster(t, `
workers:
  - name: Alice
    preferences:
      Monday: evening
`)

	out, err := execute(t, "generate", path, "--seed", "5", "--json")
	require.NoError(t, err)

	var ws domain.WeeklySchedule
	require.NoError(t, json.Unmarshal([]byte(out), &ws))
	assert.Equal(t, []string{"Alice"}, ws.Workers(domain.Monday, domain.Evening))
	assert.Len(t, ws.Understaffed, domain.DaysPerWeek*domain.ShiftKindsPerDay)
}

func TestGenerateRejectsEmptyRoster(t *testing.T) {
	path := writeRoster(t, "workers: []\n")

	_, err := execute(t, "generate", path)
	require.Error(t, err)
	assert.Equal(t, "名册中没有员工，无法排班", err.Error())
}

func TestGenerateReportsUnreadableRoster(t *testing.T) {
	_, err := execute(t, "generate", filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.True(t, strings.HasPrefix(err.Error(), "无法读取名册: "), err.Error())
}

func TestGenerateRejectsInvalidLimits(t *testing.T) {
	path := writeRoster(t, "workers:\n  - name: Alice\n")

	_, err := execute(t, "generate", path, "--max-days", "0")
	assert.Error(t, err)
}
