package quantum

import (
	"errors"
	"fmt"
)

// ErrNoCorrectionRule is returned when no rule exists for a Bell type and
// outcome.
var ErrNoCorrectionRule = errors.New("quantum: no correction rule")

// Correction is the unitary the receiver applies to its half of the pair.
type Correction int

// The four corrections.
const (
	None Correction = iota
	X
	Z
	XZ
)

// Corrections lists every correction in a stable order.
var Corrections = []Correction{None, X, Z, XZ}

var correctionNames = map[Correction]string{
	None: "NONE",
	X:    "X",
	Z:    "Z",
	XZ:   "XZ",
}

func (c Correction) String() string {
	if name, ok := correctionNames[c]; ok {
		return name
	}

	return fmt.Sprintf("Correction(%d)", int(c))
}

// Gates returns the gates in the order they are applied.
func (c Correction) Gates() []string {
	switch c {
	case X:
		return []string{"X"}
	case Z:
		return []string{"Z"}
	case XZ:
		return []string{"X", "Z"}
	}

	return []string{}
}

// MarshalText implements encoding.TextMarshaler.
func (c Correction) MarshalText() ([]byte, error) {
	name, ok := correctionNames[c]
	if !ok {
		return nil, fmt.Errorf("quantum: invalid correction %d", int(c))
	}

	return []byte(name), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Correction) UnmarshalText(text []byte) error {
	for corr, name := range correctionNames {
		if name == string(text) {
			*c = corr
			return nil
		}
	}

	return fmt.Errorf("quantum: invalid correction %q", text)
}

type ruleKey struct {
	bell    BellType
	outcome Outcome
}

// correctionRules is the protocol's physics and is not derived at run time.
var correctionRules = map[ruleKey]Correction{
	{PhiPlus, Outcome{0, 0}}: None,
	{PhiPlus, Outcome{0, 1}}: X,
	{PhiPlus, Outcome{1, 0}}: Z,
	{PhiPlus, Outcome{1, 1}}: XZ,

	{PsiMinus, Outcome{0, 0}}: X,
	{PsiMinus, Outcome{0, 1}}: None,
	{PsiMinus, Outcome{1, 0}}: XZ,
	{PsiMinus, Outcome{1, 1}}: Z,
}

// CorrectionFor looks up the correction for a Bell type and outcome.
func CorrectionFor(bell BellType, o Outcome) (Correction, error) {
	c, ok := correctionRules[ruleKey{bell, o}]
	if !ok {
		return None, fmt.Errorf("%w: %s %s", ErrNoCorrectionRule, bell, o)
	}

	return c, nil
}
