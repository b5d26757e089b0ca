package controller

import "time"

// Scheduler runs tasks after a delay. The returned cancel func is safe to call
// more than once and after the task has run.
type Scheduler interface {
	Schedule(delay time.Duration, task func()) (cancel func())
}

// PendingTask is a scheduled task waiting for the host to arm a timer.
type PendingTask struct {
	ID    int
	Delay time.Duration
}

type queuedTask struct {
	run      func()
	canceled bool
}

// TaskQueue is a Scheduler for single-threaded hosts. Schedule only records
// the task; the host collects it with Drain, waits Delay, and calls Run on its
// own event loop. Cancelled tasks are dropped when Run is called.
type TaskQueue struct {
	nextID  int
	tasks   map[int]*queuedTask
	pending []PendingTask
	closed  bool
}

// NewTaskQueue returns an empty queue.
func NewTaskQueue() *TaskQueue {
	return &TaskQueue{tasks: map[int]*queuedTask{}}
}

// Schedule implements Scheduler.
func (q *TaskQueue) Schedule(delay time.Duration, task func()) func() {
	if q.closed || task == nil {
		return func() {}
	}
	q.nextID++
	id := q.nextID
	q.tasks[id] = &queuedTask{run: task}
	q.pending = append(q.pending, PendingTask{ID: id, Delay: delay})
	return func() {
		if t, ok := q.tasks[id]; ok {
			t.canceled = true
		}
	}
}

// Drain returns tasks scheduled since the previous call.
func (q *TaskQueue) Drain() []PendingTask {
	out := q.pending
	q.pending = nil
	return out
}

// Run executes the task with the given id unless it was cancelled or already ran.
// It reports whether the task ran.
func (q *TaskQueue) Run(id int) bool {
	t, ok := q.tasks[id]
	if !ok {
		return false
	}
	delete(q.tasks, id)
	if t.canceled || q.closed {
		return false
	}
	t.run()
	return true
}

// Len reports the number of tasks that have not run or been discarded.
func (q *TaskQueue) Len() int {
	return len(q.tasks)
}

// Close cancels every outstanding task. Later Schedule calls are no-ops.
func (q *TaskQueue) Close() {
	q.closed = true
	q.tasks = map[int]*queuedTask{}
	q.pending = nil
}
