// Package tui shows a running rewrite job: a progress bar while rows are
// processed, then the report.
package tui

import (
	"context"
	"fmt"
	"math"
	"strings"
	"sunseo/internal/worker"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// UI States
type state int

const (
	stateRunning state = iota
	stateCancelling
	stateDone
	stateFailed
)

type progressMsg float64

type progressClosedMsg struct{}

type doneMsg worker.Outcome

// model represents the TUI model
type model struct {
	task  *worker.Task
	input string

	state   state
	percent float64
	outcome worker.Outcome

	// Report scrolling
	reportLines []string
	reportPage  int
	perPage     int

	// Screen dimensions
	width  int
	height int

	// Styling
	titleStyle    lipgloss.Style
	barStyle      lipgloss.Style
	emptyBarStyle lipgloss.Style
	helpStyle     lipgloss.Style
	progressStyle lipgloss.Style
	errorStyle    lipgloss.Style
	reportStyle   lipgloss.Style
}

func initialModel(task *worker.Task, input string) model {
	return model{
		task:    task,
		input:   input,
		state:   stateRunning,
		perPage: 15,

		titleStyle: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("220")),
		barStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("129")),
		emptyBarStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("238")),
		helpStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")),
		progressStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true),
		errorStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true),
		reportStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Padding(0, 1),
	}
}

// waitForProgress reads the next progress value of the task.
func waitForProgress(task *worker.Task) tea.Cmd {
	return func() tea.Msg {
		p, ok := <-task.Progress
		if !ok {
			return progressClosedMsg{}
		}
		return progressMsg(p)
	}
}

func waitForDone(task *worker.Task) tea.Cmd {
	return func() tea.Msg {
		return doneMsg(<-task.Done)
	}
}

func (m model) Init() tea.Cmd {
	return waitForProgress(m.task)
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		m.perPage = m.height - 10
		if m.perPage < 5 {
			m.perPage = 5
		}

	case progressMsg:
		m.percent = float64(msg)
		return m, waitForProgress(m.task)

	case progressClosedMsg:
		return m, waitForDone(m.task)

	case doneMsg:
		m.outcome = worker.Outcome(msg)
		if m.outcome.Err != nil {
			m.state = stateFailed
		} else {
			m.state = stateDone
			m.reportLines = strings.Split(m.outcome.Result.Report, "\n")
		}

	case tea.KeyMsg:
		return m.updateKey(msg)
	}
	return m, nil
}

func (m model) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.state {
	case stateRunning:
		if msg.String() == "ctrl+c" || msg.String() == "esc" {
			m.task.Cancel()
			m.state = stateCancelling
		}

	case stateDone, stateFailed:
		switch msg.String() {
		case "ctrl+c", "q", "esc", "enter":
			return m, tea.Quit
		case "up", "k", "left", "h":
			if m.reportPage > 0 {
				m.reportPage--
			}
		case "down", "j", "right", "l":
			if (m.reportPage+1)*m.perPage < len(m.reportLines) {
				m.reportPage++
			}
		}
	}
	return m, nil
}

func (m model) View() string {
	var b strings.Builder

	b.WriteString(m.titleStyle.Render("🕶 Sunglasses SEO PRO"))
	b.WriteString("\n\n")
	b.WriteString(m.helpStyle.Render(m.input))
	b.WriteString("\n\n")

	switch m.state {
	case stateRunning, stateCancelling:
		b.WriteString(m.renderBar())
		b.WriteString("\n\n")
		if m.state == stateCancelling {
			b.WriteString(m.helpStyle.Render("Отмена после текущей строки..."))
		} else {
			b.WriteString(m.helpStyle.Render("ctrl+c / esc: отмена"))
		}

	case stateDone:
		res := m.outcome.Result
		b.WriteString(m.renderBar())
		b.WriteString("\n\n")
		b.WriteString(m.progressStyle.Render(fmt.Sprintf("Файл создан: %s\nСтрок: %d", res.OutputPath, res.Rows)))
		if res.GeneratedRows > 0 {
			b.WriteString(m.helpStyle.Render(fmt.Sprintf("\nСгенерировано ИИ: %d", res.GeneratedRows)))
		}
		b.WriteString("\n\n")
		b.WriteString(m.renderReport())
		b.WriteString("\n")
		b.WriteString(m.helpStyle.Render("↑↓: страницы отчёта | q/enter: выход"))

	case stateFailed:
		b.WriteString(m.errorStyle.Render("Ошибка: " + m.outcome.Err.Error()))
		b.WriteString("\n\n")
		b.WriteString(m.helpStyle.Render("q/enter: выход"))
	}

	return b.String()
}

func (m model) renderBar() string {
	width := m.width - 10
	if width < 20 {
		width = 40
	}

	filled := int(math.Round(m.percent / 100 * float64(width)))
	if filled > width {
		filled = width
	}

	bar := m.barStyle.Render(strings.Repeat("█", filled)) +
		m.emptyBarStyle.Render(strings.Repeat("░", width-filled))
	return bar + m.progressStyle.Render(fmt.Sprintf(" %3.0f%%", m.percent))
}

func (m model) renderReport() string {
	totalPages := int(math.Ceil(float64(len(m.reportLines)) / float64(m.perPage)))
	if totalPages == 0 {
		totalPages = 1
	}

	start := m.reportPage * m.perPage
	if start > len(m.reportLines) {
		start = len(m.reportLines)
	}
	end := start + m.perPage
	if end > len(m.reportLines) {
		end = len(m.reportLines)
	}

	var b strings.Builder
	for _, line := range m.reportLines[start:end] {
		b.WriteString(m.reportStyle.Render(line))
		b.WriteString("\n")
	}
	b.WriteString(m.helpStyle.Render(fmt.Sprintf("Страница %d/%d", m.reportPage+1, totalPages)))
	b.WriteString("\n")
	return b.String()
}

// RunProgressTUI shows task until it finishes and the user leaves the report.
// It returns the task outcome.
func RunProgressTUI(task *worker.Task, input string) (worker.Outcome, error) {
	p := tea.NewProgram(initialModel(task, input), tea.WithAltScreen())
	finalModel, err := p.Run()
	if err != nil {
		return worker.Outcome{}, fmt.Errorf("error running TUI: %w", err)
	}

	final := finalModel.(model)
	if final.state != stateDone && final.state != stateFailed {
		// the program was interrupted before the task reported back
		task.Cancel()
		return worker.Outcome{Err: context.Canceled}, nil
	}
	return final.outcome, nil
}
