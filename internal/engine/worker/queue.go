// Package worker implements the background execution primitives: a serial
// task queue for registry-mutating work and a sharded fan-out for large
// read-only builds.
package worker

import (
	"context"
	"sync"

	"go.trai.ch/zerr"

	"github.com/modkit-dev/modkit/internal/core/ports"
)

// TaskStatus represents the status of a queued task.
type TaskStatus string

const (
	// StatusPending indicates the task is waiting to be executed.
	StatusPending TaskStatus = "Pending"
	// StatusRunning indicates the task is currently executing.
	StatusRunning TaskStatus = "Running"
	// StatusCompleted indicates the task has finished successfully.
	StatusCompleted TaskStatus = "Completed"
	// StatusFailed indicates the task execution failed.
	StatusFailed TaskStatus = "Failed"
	// StatusCancelled indicates the task was cancelled before it started.
	StatusCancelled TaskStatus = "Cancelled"
)

// ErrQueueClosed is returned by Submit after Close.
var ErrQueueClosed = zerr.New("worker queue is closed")

// ErrTaskCancelled is reported by Wait and Err for a task withdrawn before
// it started.
var ErrTaskCancelled = zerr.New("task cancelled before execution")

// Task is one unit of queued work. The span receives progress output.
type Task func(ctx context.Context, span ports.Span) error

// Handle tracks one submitted task.
type Handle struct {
	name string

	mu     sync.Mutex
	status TaskStatus
	err    error
	done   chan struct{}
}

// Name returns the task's name.
func (h *Handle) Name() string { return h.name }

// Status returns the task's current status.
func (h *Handle) Status() TaskStatus {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.status
}

// Err returns the task's failure, nil until it fails.
func (h *Handle) Err() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.err
}

// Cancel withdraws the task if it has not started. A running or finished
// task is not interrupted; Cancel reports whether it took effect.
func (h *Handle) Cancel() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.status != StatusPending {
		return false
	}
	h.status = StatusCancelled
	h.err = zerr.With(zerr.Wrap(ErrTaskCancelled, ""), "task", h.name)
	close(h.done)
	return true
}

// Wait blocks until the task finishes, is cancelled, or ctx expires. It
// returns the task's error, if any.
func (h *Handle) Wait(ctx context.Context) error {
	select {
	case <-h.done:
		return h.Err()
	case <-ctx.Done():
		return ctx.Err()
	}
}

// transition moves the handle to a new status if it is still pending or
// running, reporting whether the move happened.
func (h *Handle) transition(from, to TaskStatus, err error) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.status != from {
		return false
	}
	h.status = to
	h.err = err
	if to == StatusCompleted || to == StatusFailed {
		close(h.done)
	}
	return true
}

type queued struct {
	handle *Handle
	task   Task
}

// Queue runs submitted tasks strictly one at a time, in submission order.
// Registry mutations go through here so readers never observe a half-built
// state.
type Queue struct {
	tracer ports.Tracer
	log    ports.Logger

	mu     sync.Mutex
	closed bool

	tasks    chan queued
	finished chan struct{}
}

// NewQueue creates a Queue and starts its runner.
func NewQueue(tracer ports.Tracer, log ports.Logger) *Queue {
	q := &Queue{
		tracer:   tracer,
		log:      log,
		tasks:    make(chan queued, 64),
		finished: make(chan struct{}),
	}
	go q.run()
	return q
}

// Submit enqueues a task and returns its handle.
func (q *Queue) Submit(name string, task Task) (*Handle, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return nil, zerr.With(zerr.Wrap(ErrQueueClosed, ""), "task", name)
	}

	h := &Handle{
		name:   name,
		status: StatusPending,
		done:   make(chan struct{}),
	}
	q.tasks <- queued{handle: h, task: task}
	return h, nil
}

// Run submits a task and waits for it, returning its error.
func (q *Queue) Run(ctx context.Context, name string, task Task) error {
	h, err := q.Submit(name, task)
	if err != nil {
		return err
	}
	return h.Wait(ctx)
}

// Close stops accepting tasks and waits for the queue to drain.
func (q *Queue) Close() {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return
	}
	q.closed = true
	close(q.tasks)
	q.mu.Unlock()

	<-q.finished
}

func (q *Queue) run() {
	defer close(q.finished)

	for item := range q.tasks {
		if !item.handle.transition(StatusPending, StatusRunning, nil) {
			// Cancelled while pending.
			continue
		}
		q.execute(item)
	}
}

func (q *Queue) execute(item queued) {
	ctx, span := q.tracer.Start(context.Background(), item.handle.name)
	err := item.task(ctx, span)
	if err != nil {
		span.RecordError(err)
		q.log.Error("background task failed", "task", item.handle.name, "error", err)
		item.handle.transition(StatusRunning, StatusFailed, err)
	} else {
		item.handle.transition(StatusRunning, StatusCompleted, nil)
	}
	span.End()
}
