package tracing

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/rs/xid"
	"github.com/tebeka/atexit"
)

// JSONTracer writes completed tasks as a JSON array.
type JSONTracer struct {
	w             io.Writer
	closer        io.Closer
	lock          sync.Mutex
	firstTask     bool
	closed        bool
	inflightTasks map[string]Task
}

// NewJSONTracer creates a JSONTracer writing into w. Close must be called to
// terminate the array.
func NewJSONTracer(w io.Writer) (*JSONTracer, error) {
	if _, err := w.Write([]byte("[\n")); err != nil {
		return nil, err
	}

	return &JSONTracer{
		w:             w,
		firstTask:     true,
		inflightTasks: make(map[string]Task),
	}, nil
}

// NewJSONTracerFile creates a JSONTracer writing into path. An empty path picks
// a unique file name. The array is terminated at exit if Close is not called.
func NewJSONTracerFile(path string) (*JSONTracer, error) {
	if path == "" {
		path = "qtsim_trace_" + xid.New().String() + ".json"
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	fmt.Fprintf(os.Stderr, "Recording tasks in %s\n", path)

	t, err := NewJSONTracer(f)
	if err != nil {
		f.Close()
		return nil, err
	}
	t.closer = f

	atexit.Register(func() { _ = t.Close() })

	return t, nil
}

// StartTask records the start of a task.
func (t *JSONTracer) StartTask(task Task) {
	t.lock.Lock()
	t.inflightTasks[task.ID] = task
	t.lock.Unlock()
}

// EndTask writes the completed task.
func (t *JSONTracer) EndTask(task Task) {
	t.lock.Lock()
	defer t.lock.Unlock()

	originalTask, ok := t.inflightTasks[task.ID]
	if !ok || t.closed {
		return
	}
	originalTask.EndTime = task.EndTime
	delete(t.inflightTasks, task.ID)

	if t.firstTask {
		t.firstTask = false
	} else {
		t.mustWrite([]byte(",\n"))
	}

	b, err := json.Marshal(originalTask)
	if err != nil {
		panic(err)
	}

	t.mustWrite(b)
}

func (t *JSONTracer) mustWrite(b []byte) {
	if _, err := t.w.Write(b); err != nil {
		panic(err)
	}
}

// Close terminates the array and closes the file, if the tracer owns one.
// Calling Close more than once is a no-op.
func (t *JSONTracer) Close() error {
	t.lock.Lock()
	defer t.lock.Unlock()

	if t.closed {
		return nil
	}
	t.closed = true

	if _, err := t.w.Write([]byte("\n]\n")); err != nil {
		return err
	}

	if t.closer != nil {
		return t.closer.Close()
	}

	return nil
}
