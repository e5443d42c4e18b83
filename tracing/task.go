// Package tracing records what the teleportation components do and when, as
// tasks with a start and an end on the simulated timeline.
package tracing

import "github.com/sarchlab/qtsim/sim/timing"

// A Task is one traced piece of work, for example a Bell measurement or a
// message in flight.
type Task struct {
	ID        string           `json:"id"`
	ParentID  string           `json:"parent_id"`
	Kind      string           `json:"kind"`
	What      string           `json:"what"`
	Where     string           `json:"where"`
	StartTime timing.VTimeInPS `json:"start_time"`
	EndTime   timing.VTimeInPS `json:"end_time"`
	Detail    any              `json:"-"`
}

// Duration returns EndTime - StartTime.
func (t Task) Duration() timing.VTimeInPS {
	return t.EndTime - t.StartTime
}

// TaskFilter is a function that can filter interesting tasks. If this function
// returns true, the task is considered useful.
type TaskFilter func(t Task) bool

// Task kinds emitted by the teleportation components.
const (
	KindBellMeasurement = "bell_measurement"
	KindClassicalMsg    = "classical_msg"
	KindCorrection      = "correction"
)
