package tracing

import (
	"sync"

	"github.com/sarchlab/qtsim/datarecording"
)

// TraceTable is the table DBTracer writes completed tasks into.
const TraceTable = "trace"

type taskTableEntry struct {
	ID        string
	ParentID  string
	Kind      string
	What      string
	Location  string
	StartTime uint64
	EndTime   uint64
}

// DBTracer is a tracer that stores completed tasks into a data recorder.
type DBTracer struct {
	mu           sync.Mutex
	backend      datarecording.DataRecorder
	tracingTasks map[string]Task
}

// NewDBTracer creates a new DBTracer and the trace table on the recorder.
func NewDBTracer(dataRecorder datarecording.DataRecorder) *DBTracer {
	dataRecorder.CreateTable(TraceTable, taskTableEntry{})

	return &DBTracer{
		backend:      dataRecorder,
		tracingTasks: make(map[string]Task),
	}
}

// StartTask marks the start of a task.
func (t *DBTracer) StartTask(task Task) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.tracingTasks[task.ID] = task
}

// EndTask marks the end of a task.
func (t *DBTracer) EndTask(task Task) {
	t.mu.Lock()
	originalTask, ok := t.tracingTasks[task.ID]
	if !ok {
		t.mu.Unlock()
		return
	}
	delete(t.tracingTasks, task.ID)
	t.mu.Unlock()

	originalTask.EndTime = task.EndTime

	t.backend.InsertData(TraceTable, taskTableEntry{
		ID:        originalTask.ID,
		ParentID:  originalTask.ParentID,
		Kind:      originalTask.Kind,
		What:      originalTask.What,
		Location:  originalTask.Where,
		StartTime: uint64(originalTask.StartTime),
		EndTime:   uint64(originalTask.EndTime),
	})
}

// Terminate drops the unfinished tasks and flushes the recorder.
func (t *DBTracer) Terminate() {
	t.mu.Lock()
	t.tracingTasks = make(map[string]Task)
	t.mu.Unlock()

	t.backend.Flush()
}
