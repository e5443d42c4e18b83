package tracing

import "sync"

// MemoryTracer keeps completed tasks in memory, in completion order.
type MemoryTracer struct {
	lock          sync.Mutex
	filter        TaskFilter
	inflightTasks map[string]Task
	tasks         []Task
}

// NewMemoryTracer creates a MemoryTracer. A nil filter keeps every task.
func NewMemoryTracer(filter TaskFilter) *MemoryTracer {
	return &MemoryTracer{
		filter:        filter,
		inflightTasks: make(map[string]Task),
	}
}

// StartTask records the start of a task.
func (t *MemoryTracer) StartTask(task Task) {
	if t.filter != nil && !t.filter(task) {
		return
	}

	t.lock.Lock()
	t.inflightTasks[task.ID] = task
	t.lock.Unlock()
}

// EndTask completes a started task. Unknown IDs are ignored.
func (t *MemoryTracer) EndTask(task Task) {
	t.lock.Lock()
	defer t.lock.Unlock()

	original, ok := t.inflightTasks[task.ID]
	if !ok {
		return
	}

	original.EndTime = task.EndTime
	delete(t.inflightTasks, task.ID)
	t.tasks = append(t.tasks, original)
}

// Tasks returns a copy of the completed tasks.
func (t *MemoryTracer) Tasks() []Task {
	t.lock.Lock()
	defer t.lock.Unlock()

	tasks := make([]Task, len(t.tasks))
	copy(tasks, t.tasks)

	return tasks
}

// InflightTasks returns the number of started but not ended tasks.
func (t *MemoryTracer) InflightTasks() int {
	t.lock.Lock()
	defer t.lock.Unlock()

	return len(t.inflightTasks)
}
