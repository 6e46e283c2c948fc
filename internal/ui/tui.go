// Package ui renders task tables and runs the interactive task viewer.
package ui

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"

	"github.com/nibzard/task-cli/internal/store"
)

// TUIOption configures the TUI behavior.
type TUIOption func(*tuiModel)

// WithRefreshInterval sets how often the task file is re-read.
func WithRefreshInterval(d time.Duration) TUIOption {
	return func(m *tuiModel) {
		if d > 0 {
			m.tickInterval = d
		}
	}
}

// WithFilter starts the viewer with a status filter applied.
func WithFilter(s store.Status) TUIOption {
	return func(m *tuiModel) {
		m.filter = s
	}
}

// RunTUI starts the read-only task viewer for the task file at path.
func RunTUI(ctx context.Context, path, dateFormat string, opts ...TUIOption) error {
	if !IsTTY(os.Stdout) {
		return fmt.Errorf("tui requires a TTY")
	}

	model := newTUIModel(path, dateFormat, opts...)
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := program.Run()
	return err
}

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("5"))
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	filterStyle = lipgloss.NewStyle().Bold(true)
)

type tuiModel struct {
	path         string
	dateFormat   string
	tasks        []store.Task
	counts       map[store.Status]int
	loadErr      error
	loaded       bool
	filter       store.Status
	showHelp     bool
	tickInterval time.Duration
}

type tickMsg time.Time

func newTUIModel(path, dateFormat string, opts ...TUIOption) *tuiModel {
	m := &tuiModel{
		path:         path,
		dateFormat:   dateFormat,
		tickInterval: 2 * time.Second,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *tuiModel) Init() tea.Cmd {
	m.refresh()
	return tickCmd(m.tickInterval)
}

func (m *tuiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			return m, tea.Quit
		case "r", "f5":
			m.refresh()
		case "h", "?":
			m.showHelp = !m.showHelp
		case "1":
			m.filter = store.StatusTodo
		case "2":
			m.filter = store.StatusInProgress
		case "3":
			m.filter = store.StatusDone
		case "0":
			m.filter = ""
		}
		return m, nil
	case tickMsg:
		m.refresh()
		return m, tickCmd(m.tickInterval)
	}
	return m, nil
}

func (m *tuiModel) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("task-cli") + "\n\n")

	if m.showHelp {
		writeHelp(&b)
		writeFooter(&b, m.tickInterval)
		return b.String()
	}

	if m.loadErr != nil {
		b.WriteString(errorStyle.Render("Error loading task file:") + "\n")
		b.WriteString("  " + m.loadErr.Error() + "\n\n")
		writeFooter(&b, m.tickInterval)
		return b.String()
	}
	if !m.loaded {
		b.WriteString("Loading...\n\n")
		writeFooter(&b, m.tickInterval)
		return b.String()
	}

	b.WriteString(Summary(m.counts) + "\n")
	b.WriteString(mutedStyle.Render(m.path) + "\n\n")

	if m.filter != "" {
		b.WriteString(filterStyle.Render(fmt.Sprintf("Filter: %s", m.filter)) + " (0 to clear)\n\n")
	}

	visible := m.visibleTasks()
	if len(visible) == 0 {
		b.WriteString("  No tasks found.\n\n")
	} else {
		b.WriteString(RenderTable(visible, m.dateFormat) + "\n\n")
	}

	writeFooter(&b, m.tickInterval)
	return b.String()
}

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// refresh re-reads the task file. The viewer never writes.
func (m *tuiModel) refresh() {
	tasks, err := store.LoadFile(m.path)
	if err != nil {
		m.loadErr = err
		return
	}
	m.loadErr = nil
	m.loaded = true
	m.tasks = tasks
	m.counts = store.CountByStatus(tasks)
}

func (m *tuiModel) visibleTasks() []store.Task {
	if m.filter == "" {
		return m.tasks
	}
	var out []store.Task
	for _, t := range m.tasks {
		if t.Status == m.filter {
			out = append(out, t)
		}
	}
	return out
}

func writeHelp(b *strings.Builder) {
	b.WriteString("Keyboard Shortcuts\n\n")
	b.WriteString("  q, esc, ctrl+c  Quit\n")
	b.WriteString("  r, F5           Refresh data\n")
	b.WriteString("  h, ?            Toggle this help screen\n")
	b.WriteString("  1               Filter by todo\n")
	b.WriteString("  2               Filter by in-progress\n")
	b.WriteString("  3               Filter by done\n")
	b.WriteString("  0               Clear filter\n\n")
}

func writeFooter(b *strings.Builder, interval time.Duration) {
	b.WriteString(mutedStyle.Render(fmt.Sprintf("Press h for help | q to quit | Refreshing every %s", interval)) + "\n")
}

// IsTTY returns true if w is a terminal.
func IsTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
