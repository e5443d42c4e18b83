// Package quantum holds the small, fixed vocabulary of states, Bell pairs and
// corrections the teleportation protocol works with.
package quantum

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownState is returned when a state tag is not one of the supported
// single-qubit states.
var ErrUnknownState = errors.New("quantum: unknown state")

// State tags the unknown single-qubit state to be teleported.
type State int

// The supported states. The zero value is deliberately not a valid state so
// that an unset config field is rejected.
const (
	Zero State = iota + 1
	One
	Plus
)

// States lists every supported state in a stable order.
var States = []State{Zero, One, Plus}

var stateNames = map[State]string{
	Zero: "ZERO",
	One:  "ONE",
	Plus: "PLUS",
}

var stateKets = map[State]string{
	Zero: "|0⟩",
	One:  "|1⟩",
	Plus: "|+⟩",
}

// Valid reports whether s is one of the supported states.
func (s State) Valid() bool {
	_, ok := stateNames[s]
	return ok
}

func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}

	return fmt.Sprintf("State(%d)", int(s))
}

// Ket returns the Dirac notation of the state.
func (s State) Ket() string {
	return stateKets[s]
}

// ParseState accepts the canonical names (ZERO, ONE, PLUS), the kets, and the
// shorthands 0, 1, X (for ONE) and H (for PLUS).
func ParseState(text string) (State, error) {
	switch strings.ToUpper(strings.TrimSpace(text)) {
	case "ZERO", "|0⟩", "0":
		return Zero, nil
	case "ONE", "|1⟩", "1", "X":
		return One, nil
	case "PLUS", "|+⟩", "+", "H":
		return Plus, nil
	}

	return 0, fmt.Errorf("%w: %q", ErrUnknownState, text)
}

// MarshalText implements encoding.TextMarshaler.
func (s State) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownState, int(s))
	}

	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *State) UnmarshalText(text []byte) error {
	parsed, err := ParseState(string(text))
	if err != nil {
		return err
	}

	*s = parsed

	return nil
}
