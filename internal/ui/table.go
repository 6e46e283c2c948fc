package ui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/nibzard/task-cli/internal/store"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	borderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// StatusStyle returns the cell style for a status.
func StatusStyle(s store.Status) lipgloss.Style {
	switch s {
	case store.StatusTodo:
		return cellStyle.Foreground(lipgloss.Color("3"))
	case store.StatusInProgress:
		return cellStyle.Foreground(lipgloss.Color("6"))
	case store.StatusDone:
		return cellStyle.Foreground(lipgloss.Color("2"))
	default:
		return cellStyle
	}
}

// RenderTable renders tasks as a bordered table with the columns
// ID, STATUS, DESCRIPTION, CREATED and UPDATED.
func RenderTable(tasks []store.Task, dateFormat string) string {
	rows := make([][]string, 0, len(tasks))
	for _, t := range tasks {
		rows = append(rows, []string{
			strconv.Itoa(t.ID),
			string(t.Status),
			normalizeDescription(t.Description),
			FormatTime(t.CreatedAt, dateFormat),
			FormatTime(t.UpdatedAt, dateFormat),
		})
	}

	tbl := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(borderStyle).
		Headers("ID", "STATUS", "DESCRIPTION", "CREATED", "UPDATED").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			if col == 1 && row >= 0 && row < len(tasks) {
				return StatusStyle(tasks[row].Status)
			}
			return cellStyle
		})

	return tbl.Render()
}

// Summary returns a one-line count of tasks per status, e.g.
// "3 tasks: 1 todo, 1 in-progress, 1 done".
func Summary(counts map[store.Status]int) string {
	total := 0
	parts := make([]string, 0, len(store.Statuses()))
	for _, st := range store.Statuses() {
		total += counts[st]
		parts = append(parts, fmt.Sprintf("%d %s", counts[st], st))
	}
	noun := "tasks"
	if total == 1 {
		noun = "task"
	}
	return fmt.Sprintf("%d %s: %s", total, noun, strings.Join(parts, ", "))
}

// FormatTime renders t in local time using layout. Zero times render as "-".
func FormatTime(t time.Time, layout string) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format(layout)
}

// normalizeDescription keeps table rows on a single line.
func normalizeDescription(desc string) string {
	desc = strings.ReplaceAll(desc, "\r", " ")
	desc = strings.ReplaceAll(desc, "\n", " ")
	return desc
}
