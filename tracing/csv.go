package tracing

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/tebeka/atexit"
)

// CSVTracer is a task tracer that stores completed tasks as CSV rows.
type CSVTracer struct {
	lock sync.Mutex
	w    io.Writer
	file *os.File

	inflightTasks map[string]Task
	tasks         []Task
	bufferSize    int
}

// NewCSVTracer creates a CSVTracer writing into w.
func NewCSVTracer(w io.Writer) *CSVTracer {
	t := &CSVTracer{
		w:             w,
		bufferSize:    1000,
		inflightTasks: make(map[string]Task),
	}
	fmt.Fprintf(w, "ID, ParentID, Kind, What, Where, Start, End\n")

	return t
}

// NewCSVTracerFile creates the CSV file at path, overwriting any existing one.
// Buffered rows are flushed and the file closed at exit.
func NewCSVTracerFile(path string) (*CSVTracer, error) {
	file, err := os.Create(path)
	if err != nil {
		return nil, err
	}

	t := NewCSVTracer(file)
	t.file = file

	atexit.Register(func() {
		t.Flush()
		if err := t.file.Close(); err != nil {
			panic(err)
		}
	})

	return t, nil
}

// StartTask records the start of a task.
func (t *CSVTracer) StartTask(task Task) {
	t.lock.Lock()
	t.inflightTasks[task.ID] = task
	t.lock.Unlock()
}

// EndTask buffers the completed task, flushing when the buffer is full.
func (t *CSVTracer) EndTask(task Task) {
	t.lock.Lock()
	original, ok := t.inflightTasks[task.ID]
	if !ok {
		t.lock.Unlock()
		return
	}
	original.EndTime = task.EndTime
	delete(t.inflightTasks, task.ID)
	t.tasks = append(t.tasks, original)
	full := len(t.tasks) >= t.bufferSize
	t.lock.Unlock()

	if full {
		t.Flush()
	}
}

// Flush writes the buffered tasks.
func (t *CSVTracer) Flush() {
	t.lock.Lock()
	defer t.lock.Unlock()

	for _, task := range t.tasks {
		fmt.Fprintf(t.w, "%s, %s, %s, %s, %s, %d, %d\n",
			task.ID,
			task.ParentID,
			task.Kind,
			task.What,
			task.Where,
			task.StartTime,
			task.EndTime,
		)
	}

	t.tasks = nil
}
