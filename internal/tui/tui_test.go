package tui

import (
	"context"
	"errors"
	"sunseo/internal/rewrite"
	"sunseo/internal/worker"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// drive feeds the model the messages its commands produce until the task
// has reported back.
func drive(t *testing.T, m model) model {
	t.Helper()
	cmd := m.Init()
	for i := 0; cmd != nil && i < 100; i++ {
		next, c := m.Update(cmd())
		m = next.(model)
		cmd = c
	}
	return m
}

func TestModelShowsResult(t *testing.T) {
	q := worker.NewQueue(1)
	defer q.Close()

	task := q.Submit(context.Background(), func(_ context.Context, progress rewrite.ProgressFunc) (*rewrite.Result, error) {
		progress(50)
		progress(100)
		return &rewrite.Result{
			OutputPath: "catalog_seo.xlsx",
			Rows:       2,
			Report:     "Строка 2: a\nСтрока 3: b\nВремя: 0.01 сек",
		}, nil
	})

	m := drive(t, initialModel(task, "catalog.xlsx"))
	require.Equal(t, stateDone, m.state)
	assert.Equal(t, 100.0, m.percent)
	assert.Len(t, m.reportLines, 3)

	view := m.View()
	assert.Contains(t, view, "Файл создан: catalog_seo.xlsx")
	assert.Contains(t, view, "Строка 3: b")

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestModelShowsError(t *testing.T) {
	q := worker.NewQueue(1)
	defer q.Close()

	task := q.Submit(context.Background(), func(context.Context, rewrite.ProgressFunc) (*rewrite.Result, error) {
		return nil, errors.New("отсутствуют колонки")
	})

	m := drive(t, initialModel(task, "catalog.xlsx"))
	require.Equal(t, stateFailed, m.state)
	assert.Contains(t, m.View(), "Ошибка: отсутствуют колонки")
}

func TestModelCancel(t *testing.T) {
	q := worker.NewQueue(1)
	defer q.Close()

	started := make(chan struct{})
	task := q.Submit(context.Background(), func(ctx context.Context, progress rewrite.ProgressFunc) (*rewrite.Result, error) {
		close(started)
		<-ctx.Done()
		return nil, ctx.Err()
	})
	<-started

	m := initialModel(task, "catalog.xlsx")
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = next.(model)
	assert.Equal(t, stateCancelling, m.state)
	assert.Contains(t, m.View(), "Отмена")

	m = drive(t, m)
	assert.Equal(t, stateFailed, m.state)
	assert.ErrorIs(t, m.outcome.Err, context.Canceled)
}

func TestReportPaging(t *testing.T) {
	m := initialModel(nil, "catalog.xlsx")
	m.state = stateDone
	m.perPage = 2
	m.reportLines = []string{"1", "2", "3", "4", "5"}

	for i := 0; i < 5; i++ {
		next, _ := m.Update(tea.KeyMsg{Type: tea.KeyDown})
		m = next.(model)
	}
	assert.Equal(t, 2, m.reportPage)
	assert.Contains(t, m.renderReport(), "Страница 3/3")

	next, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 12})
	m = next.(model)
	assert.Equal(t, 5, m.perPage)
	assert.NotPanics(t, func() { m.renderReport() })
}
