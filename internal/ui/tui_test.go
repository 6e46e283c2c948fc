package ui

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nibzard/task-cli/internal/store"
)

func sampleTasks() []store.Task {
	created := time.Date(2025, 2, 1, 10, 0, 0, 0, time.UTC)
	return []store.Task{
		{ID: 1, Description: "Buy milk", Status: store.StatusDone, CreatedAt: created, UpdatedAt: created},
		{ID: 2, Description: "Write report", Status: store.StatusInProgress, CreatedAt: created, UpdatedAt: created},
		{ID: 4, Description: "Call\nplumber", Status: store.StatusTodo, CreatedAt: created, UpdatedAt: created},
	}
}

func writeTasks(t *testing.T, tasks []store.Task) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tasks.json")
	require.NoError(t, store.SaveFile(path, tasks))
	return path
}

func key(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestRenderTable(t *testing.T) {
	out := RenderTable(sampleTasks(), "2006-01-02")

	for _, want := range []string{"ID", "STATUS", "DESCRIPTION", "CREATED", "UPDATED", "Buy milk", "in-progress", "Call plumber"} {
		assert.Contains(t, out, want)
	}
	assert.NotContains(t, out, "Call\nplumber")

	// Insertion order is kept.
	assert.Less(t, strings.Index(out, "Buy milk"), strings.Index(out, "Write report"))
	assert.Less(t, strings.Index(out, "Write report"), strings.Index(out, "Call plumber"))
}

func TestSummary(t *testing.T) {
	assert.Equal(t, "3 tasks: 1 todo, 1 in-progress, 1 done", Summary(store.CountByStatus(sampleTasks())))
	assert.Equal(t, "1 task: 1 todo, 0 in-progress, 0 done", Summary(map[store.Status]int{store.StatusTodo: 1}))
}

func TestFormatTime(t *testing.T) {
	assert.Equal(t, "-", FormatTime(time.Time{}, "2006"))
	ts := time.Date(2025, 2, 1, 10, 0, 0, 0, time.UTC)
	assert.Equal(t, ts.Local().Format("2006-01-02 15:04"), FormatTime(ts, "2006-01-02 15:04"))
}

func TestTUIModelLoadsAndFilters(t *testing.T) {
	path := writeTasks(t, sampleTasks())
	m := newTUIModel(path, "2006-01-02", WithRefreshInterval(time.Hour))

	cmd := m.Init()
	require.NotNil(t, cmd)
	require.NoError(t, m.loadErr)
	assert.Len(t, m.tasks, 3)

	view := m.View()
	assert.Contains(t, view, "3 tasks: 1 todo, 1 in-progress, 1 done")
	assert.Contains(t, view, "Buy milk")
	assert.Contains(t, view, "Refreshing every 1h0m0s")

	m.Update(key("3"))
	assert.Equal(t, store.StatusDone, m.filter)
	visible := m.visibleTasks()
	require.Len(t, visible, 1)
	assert.Equal(t, 1, visible[0].ID)
	view = m.View()
	assert.Contains(t, view, "Filter: done")
	assert.NotContains(t, view, "Write report")

	m.Update(key("2"))
	assert.Equal(t, store.StatusInProgress, m.filter)

	m.Update(key("0"))
	assert.Empty(t, m.filter)
	assert.Len(t, m.visibleTasks(), 3)
}

func TestTUIModelEmptyFilterResult(t *testing.T) {
	path := writeTasks(t, sampleTasks()[:1])
	m := newTUIModel(path, "2006-01-02", WithFilter(store.StatusTodo))
	m.Init()

	assert.Contains(t, m.View(), "No tasks found.")
}

func TestTUIModelShowsLoadError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasks.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

	m := newTUIModel(path, "2006-01-02")
	m.Init()

	require.Error(t, m.loadErr)
	assert.Contains(t, m.View(), "Error loading task file")
}

func TestTUIModelRefreshPicksUpChanges(t *testing.T) {
	tasks := sampleTasks()
	path := writeTasks(t, tasks[:1])
	m := newTUIModel(path, "2006-01-02")
	m.Init()
	require.Len(t, m.tasks, 1)

	require.NoError(t, store.SaveFile(path, tasks))
	_, cmd := m.Update(tickMsg(time.Now()))
	assert.NotNil(t, cmd)
	assert.Len(t, m.tasks, 3)
}

func TestTUIModelDoesNotWrite(t *testing.T) {
	path := writeTasks(t, sampleTasks())
	before, err := os.ReadFile(path)
	require.NoError(t, err)

	m := newTUIModel(path, "2006-01-02")
	m.Init()
	m.Update(key("r"))
	m.Update(key("1"))

	after, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestTUIModelHelpAndQuit(t *testing.T) {
	m := newTUIModel(writeTasks(t, nil), "2006-01-02")
	m.Init()

	m.Update(key("?"))
	assert.True(t, m.showHelp)
	assert.Contains(t, m.View(), "Keyboard Shortcuts")

	_, cmd := m.Update(key("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestIsTTY(t *testing.T) {
	assert.False(t, IsTTY(&bytes.Buffer{}))

	f, err := os.CreateTemp(t.TempDir(), "tty")
	require.NoError(t, err)
	defer f.Close()
	assert.False(t, IsTTY(f))
}
