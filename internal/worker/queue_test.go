package worker

import (
	"context"
	"errors"
	"sunseo/internal/rewrite"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func countingJob(rows int) Job {
	return func(ctx context.Context, progress rewrite.ProgressFunc) (*rewrite.Result, error) {
		for i := 1; i <= rows; i++ {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			progress(100 * float64(i) / float64(rows))
		}
		return &rewrite.Result{Rows: rows, OutputPath: "out.xlsx"}, nil
	}
}

func TestSubmitDeliversProgressThenResult(t *testing.T) {
	q := NewQueue(1)
	defer q.Close()

	task := q.Submit(context.Background(), countingJob(4))

	var seen []float64
	res, err := task.Wait(func(p float64) { seen = append(seen, p) })
	require.NoError(t, err)
	assert.Equal(t, 4, res.Rows)
	assert.Equal(t, []float64{25, 50, 75, 100}, seen)
}

func TestTasksRunSequentially(t *testing.T) {
	q := NewQueue(4)
	defer q.Close()

	var (
		mu      sync.Mutex
		order   []int
		running int
		overlap bool
	)
	job := func(id int) Job {
		return func(ctx context.Context, progress rewrite.ProgressFunc) (*rewrite.Result, error) {
			mu.Lock()
			running++
			if running > 1 {
				overlap = true
			}
			order = append(order, id)
			mu.Unlock()

			progress(100)

			mu.Lock()
			running--
			mu.Unlock()
			return &rewrite.Result{Rows: id}, nil
		}
	}

	var tasks []*Task
	for i := 1; i <= 3; i++ {
		tasks = append(tasks, q.Submit(context.Background(), job(i)))
	}
	for i, task := range tasks {
		res, err := task.Wait(nil)
		require.NoError(t, err)
		assert.Equal(t, i+1, res.Rows)
	}

	assert.False(t, overlap)
	assert.Equal(t, []int{1, 2, 3}, order)
}

func TestJobErrorIsDelivered(t *testing.T) {
	q := NewQueue(1)
	defer q.Close()

	task := q.Submit(context.Background(), func(context.Context, rewrite.ProgressFunc) (*rewrite.Result, error) {
		return nil, rewrite.ErrMissingColumns
	})

	res, err := task.Wait(nil)
	assert.Nil(t, res)
	assert.ErrorIs(t, err, rewrite.ErrMissingColumns)
}

func TestCancelStopsBetweenRows(t *testing.T) {
	q := NewQueue(1)
	defer q.Close()

	task := q.Submit(context.Background(), countingJob(1000))

	var seen int
	_, err := task.Wait(func(float64) {
		seen++
		if seen == 1 {
			task.Cancel()
		}
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Less(t, seen, 1000)
}

func TestCancelledBeforeStart(t *testing.T) {
	q := NewQueue(1)
	defer q.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	task := q.Submit(ctx, func(context.Context, rewrite.ProgressFunc) (*rewrite.Result, error) {
		called = true
		return nil, nil
	})

	_, err := task.Wait(nil)
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, called)
}

func TestPanicBecomesError(t *testing.T) {
	q := NewQueue(1)
	defer q.Close()

	task := q.Submit(context.Background(), func(context.Context, rewrite.ProgressFunc) (*rewrite.Result, error) {
		panic("boom")
	})

	_, err := task.Wait(nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "boom")

	// the worker keeps serving after a panic
	res, err := q.Submit(context.Background(), countingJob(1)).Wait(nil)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Rows)
}

func TestSubmitAfterClose(t *testing.T) {
	q := NewQueue(1)
	q.Close()
	q.Close()

	_, err := q.Submit(context.Background(), countingJob(1)).Wait(nil)
	assert.True(t, errors.Is(err, ErrClosed))
}
