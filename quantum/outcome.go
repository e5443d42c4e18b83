package quantum

import (
	"fmt"
	"math/rand/v2"
)

// Outcome is the pair of classical bits produced by the Bell measurement.
type Outcome struct {
	B0 uint8
	B1 uint8
}

// Outcomes lists the four possible measurement outcomes in index order.
var Outcomes = []Outcome{{0, 0}, {0, 1}, {1, 0}, {1, 1}}

// OutcomeFromIndex returns the outcome whose Index is i.
func OutcomeFromIndex(i int) Outcome {
	return Outcomes[i&3]
}

// Valid reports whether both bits are 0 or 1.
func (o Outcome) Valid() bool {
	return o.B0 <= 1 && o.B1 <= 1
}

// Index returns b0*2 + b1.
func (o Outcome) Index() int {
	return int(o.B0)<<1 | int(o.B1)
}

func (o Outcome) String() string {
	return fmt.Sprintf("(%d,%d)", o.B0, o.B1)
}

// MarshalText encodes the outcome as two binary digits, e.g. "01".
func (o Outcome) MarshalText() ([]byte, error) {
	if !o.Valid() {
		return nil, fmt.Errorf("quantum: invalid outcome %s", o)
	}

	return []byte{'0' + o.B0, '0' + o.B1}, nil
}

// UnmarshalText decodes two binary digits.
func (o *Outcome) UnmarshalText(text []byte) error {
	if len(text) != 2 {
		return fmt.Errorf("quantum: invalid outcome %q", text)
	}

	b0, b1 := text[0]-'0', text[1]-'0'
	parsed := Outcome{B0: b0, B1: b1}
	if !parsed.Valid() {
		return fmt.Errorf("quantum: invalid outcome %q", text)
	}

	*o = parsed

	return nil
}

// An OutcomeSource decides which Bell measurement outcome the sender
// observes.
type OutcomeSource interface {
	Outcome(input State) Outcome
}

// DeterministicOutcomes derives the outcome from the input state tag alone.
type DeterministicOutcomes struct{}

var deterministicTable = map[State]Outcome{
	Zero: {0, 0},
	One:  {0, 1},
	Plus: {1, 0},
}

// Outcome returns the fixed outcome for input.
func (DeterministicOutcomes) Outcome(input State) Outcome {
	return deterministicTable[input]
}

// SeededOutcomes samples the four outcomes uniformly, reproducibly for a
// given seed. A SeededOutcomes must not be shared between concurrent runs.
type SeededOutcomes struct {
	rng *rand.Rand
}

// NewSeededOutcomes creates a source seeded with seed.
func NewSeededOutcomes(seed uint64) *SeededOutcomes {
	return &SeededOutcomes{
		rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
	}
}

// Outcome draws the next outcome; the input does not bias it.
func (s *SeededOutcomes) Outcome(State) Outcome {
	return OutcomeFromIndex(s.rng.IntN(4))
}
