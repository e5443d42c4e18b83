package timing

import (
	"errors"
	"fmt"
	"reflect"
)

// ErrInvalidSchedule is returned when an event cannot be placed on the
// timeline. It always indicates a defect in the component that scheduled it.
var ErrInvalidSchedule = errors.New("timing: invalid schedule")

// ScheduleError describes a rejected Schedule call.
type ScheduleError struct {
	Event  any
	Time   VTimeInPS
	Now    VTimeInPS
	Reason string
}

func (e *ScheduleError) Error() string {
	return fmt.Sprintf(
		"timing: cannot schedule %s @ %d (now %d): %s",
		reflect.TypeOf(e.Event), e.Time, e.Now, e.Reason,
	)
}

// Unwrap makes errors.Is(err, ErrInvalidSchedule) hold.
func (e *ScheduleError) Unwrap() error {
	return ErrInvalidSchedule
}
