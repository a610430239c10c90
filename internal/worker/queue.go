// Package worker runs processing jobs on a single background goroutine and
// reports back through one-way channels.
package worker

import (
	"context"
	"errors"
	"fmt"
	"sunseo/internal/logger"
	"sunseo/internal/rewrite"
	"sync"
)

// ErrClosed is delivered to tasks submitted after Close.
var ErrClosed = errors.New("worker queue closed")

// Job is the unit of work. It must call progress synchronously from its own
// goroutine only.
type Job func(ctx context.Context, progress rewrite.ProgressFunc) (*rewrite.Result, error)

// Outcome is the single value delivered on Task.Done.
type Outcome struct {
	Result *rewrite.Result
	Err    error
}

// Task is the caller's handle on a submitted job.
type Task struct {
	// Progress receives percentages in row order and is closed when the job ends.
	Progress <-chan float64
	// Done receives exactly one Outcome after Progress is closed.
	Done <-chan Outcome

	progress chan float64
	done     chan Outcome
	job      Job
	ctx      context.Context
	cancel   context.CancelFunc
}

// Cancel asks the job to stop at the next row boundary.
func (t *Task) Cancel() {
	t.cancel()
}

// Queue executes tasks one at a time in submission order.
type Queue struct {
	tasks     chan *Task
	closeOnce sync.Once
	mu        sync.RWMutex
	closed    bool
	wg        sync.WaitGroup
}

// NewQueue starts the worker goroutine. backlog bounds the number of tasks
// waiting behind the running one.
func NewQueue(backlog int) *Queue {
	q := &Queue{tasks: make(chan *Task, backlog)}
	q.wg.Add(1)
	go q.loop()
	return q
}

// Submit enqueues job. Progress values are buffered so a slow reader does
// not stall the rows; the reader must still drain Progress before Done.
func (q *Queue) Submit(ctx context.Context, job Job) *Task {
	ctx, cancel := context.WithCancel(ctx)
	progress := make(chan float64, 64)
	done := make(chan Outcome, 1)
	task := &Task{
		Progress: progress,
		Done:     done,
		progress: progress,
		done:     done,
		job:      job,
		ctx:      ctx,
		cancel:   cancel,
	}

	q.mu.RLock()
	defer q.mu.RUnlock()
	if q.closed {
		task.finish(Outcome{Err: ErrClosed})
		return task
	}

	q.tasks <- task
	return task
}

// Close stops accepting tasks and waits for the queued ones to finish.
func (q *Queue) Close() {
	q.closeOnce.Do(func() {
		q.mu.Lock()
		q.closed = true
		close(q.tasks)
		q.mu.Unlock()
	})
	q.wg.Wait()
}

func (q *Queue) loop() {
	defer q.wg.Done()
	for task := range q.tasks {
		task.run()
	}
}

func (t *Task) run() {
	if err := t.ctx.Err(); err != nil {
		t.finish(Outcome{Err: err})
		return
	}

	var outcome Outcome
	func() {
		defer func() {
			if r := recover(); r != nil {
				logger.Error("Job panicked", "panic", r)
				outcome = Outcome{Err: fmt.Errorf("job panicked: %v", r)}
			}
		}()
		res, err := t.job(t.ctx, func(p float64) {
			// a cancelled task may have lost its reader
			select {
			case t.progress <- p:
			case <-t.ctx.Done():
			}
		})
		outcome = Outcome{Result: res, Err: err}
	}()

	t.finish(outcome)
}

func (t *Task) finish(outcome Outcome) {
	close(t.progress)
	t.done <- outcome
	t.cancel()
}

// Wait drains Progress, passing each value to onProgress when it is not nil,
// and returns the outcome.
func (t *Task) Wait(onProgress func(float64)) (*rewrite.Result, error) {
	for p := range t.Progress {
		if onProgress != nil {
			onProgress(p)
		}
	}
	outcome := <-t.Done
	return outcome.Result, outcome.Err
}
