package roster

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sysu-ecnc-dev/shift-planner/internal/domain"
)

func TestLoad(t *testing.T) {
	workers, err := Load(strings.NewReader(`
workers:
  - name: Alice
    preferences:
      Monday: Morning
      tuesday: EVENING
      Wednesday: none
      Thursday: ""
  - name: Bob
`))
	require.NoError(t, err)
	require.Len(t, workers, 2)

	assert.Equal(t, "Alice", workers[0].Name)
	assert.Equal(t, map[domain.Day]domain.ShiftKind{
		domain.Monday:  domain.Morning,
		domain.Tuesday: domain.Evening,
	}, workers[0].Preferences)

	assert.Equal(t, "Bob", workers[1].Name)
	assert.Empty(t, workers[1].Preferences)
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"empty document", ""},
		{"empty name", "workers:\n  - name: \"  \"\n"},
		{"duplicate name", "workers:\n  - name: Alice\n  - name: Alice\n"},
		{"unknown day", "workers:\n  - name: Alice\n    preferences:\n      Funday: morning\n"},
		{"unknown shift", "workers:\n  - name: Alice\n    preferences:\n      Monday: night\n"},
		{"unknown field", "workers:\n  - name: Alice\n    age: 30\n"},
		{"same day twice", "workers:\n  - name: Alice\n    preferences:\n      Monday: morning\n      monday: evening\n"},
		{"same day twice with none", "workers:\n  - name: Alice\n    preferences:\n      MONDAY: none\n      monday: evening\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(strings.NewReader(tt.doc))
			assert.Error(t, err)
		})
	}
}

func TestWriteThenLoad(t *testing.T) {
	workers := []*domain.Worker{
		{Name: "Alice", Preferences: map[domain.Day]domain.ShiftKind{domain.Friday: domain.Afternoon}},
		{Name: "Bob"},
	}

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, workers))
	assert.Contains(t, buf.String(), "Friday: afternoon")
	assert.Contains(t, buf.String(), "Monday: none")

	loaded, err := Load(&buf)
	require.NoError(t, err)
	require.Len(t, loaded, 2)
	assert.Equal(t, workers[0].Preferences, loaded[0].Preferences)
	assert.Empty(t, loaded[1].Preferences)
}
