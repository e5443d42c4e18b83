package quantum

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownBellType is returned for a Bell state the protocol does not
// support.
var ErrUnknownBellType = errors.New("quantum: unknown bell type")

// ErrHalfConsumed is returned when one half of an entangled pair is used a
// second time.
var ErrHalfConsumed = errors.New("quantum: pair half already consumed")

// BellType identifies the maximally entangled state shared by the two ends.
type BellType int

// The supported Bell states. The values are the conventional numeric codes,
// 1 for Φ⁺ and 3 for Ψ⁻, which ParseBellType also accepts.
const (
	PhiPlus  BellType = 1
	PsiMinus BellType = 3
)

// BellTypes lists every supported Bell type in a stable order.
var BellTypes = []BellType{PhiPlus, PsiMinus}

// Valid reports whether b is a supported Bell type.
func (b BellType) Valid() bool {
	return b == PhiPlus || b == PsiMinus
}

func (b BellType) String() string {
	switch b {
	case PhiPlus:
		return "PHI_PLUS"
	case PsiMinus:
		return "PSI_MINUS"
	}

	return fmt.Sprintf("BellType(%d)", int(b))
}

// Ket returns the Dirac notation of the Bell state.
func (b BellType) Ket() string {
	switch b {
	case PhiPlus:
		return "|Φ⁺⟩"
	case PsiMinus:
		return "|Ψ⁻⟩"
	}

	return ""
}

// ParseBellType accepts PHI_PLUS / PSI_MINUS (case-insensitive, with or
// without the underscore) and the numeric codes 1 and 3.
func ParseBellType(text string) (BellType, error) {
	norm := strings.ReplaceAll(strings.ToUpper(strings.TrimSpace(text)), "_", "")
	switch norm {
	case "PHIPLUS", "|Φ⁺⟩", "1":
		return PhiPlus, nil
	case "PSIMINUS", "|Ψ⁻⟩", "3":
		return PsiMinus, nil
	}

	return 0, fmt.Errorf("%w: %q", ErrUnknownBellType, text)
}

// MarshalText implements encoding.TextMarshaler.
func (b BellType) MarshalText() ([]byte, error) {
	if !b.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownBellType, int(b))
	}

	return []byte(b.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (b *BellType) UnmarshalText(text []byte) error {
	parsed, err := ParseBellType(string(text))
	if err != nil {
		return err
	}

	*b = parsed

	return nil
}

// An EntangledPair is a Bell pair split between the sender and the receiver.
// Both halves carry the same BellType, fixed when the pair is created.
type EntangledPair struct {
	Type     BellType
	sender   *PairHalf
	receiver *PairHalf
}

// PairHalf is the part of a pair held by one node.
type PairHalf struct {
	pair     *EntangledPair
	owner    string
	qubit    Qubit
	consumed bool
}

// NewEntangledPair creates a fresh pair of the given type.
func NewEntangledPair(t BellType) (*EntangledPair, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownBellType, int(t))
	}

	p := &EntangledPair{Type: t}
	p.sender = &PairHalf{pair: p, owner: "sender"}
	p.receiver = &PairHalf{pair: p, owner: "receiver"}

	return p, nil
}

// SenderHalf returns the half that takes part in the Bell measurement.
func (p *EntangledPair) SenderHalf() *PairHalf {
	return p.sender
}

// ReceiverHalf returns the half the correction is applied to.
func (p *EntangledPair) ReceiverHalf() *PairHalf {
	return p.receiver
}

// Collapse projects the pair after the sender measured input together with
// its half and observed o. The receiver half is left in the state that the
// correction for (Type, o) turns back into input.
func (p *EntangledPair) Collapse(input State, o Outcome) error {
	if !input.Valid() {
		return fmt.Errorf("%w: %d", ErrUnknownState, int(input))
	}

	c, err := CorrectionFor(p.Type, o)
	if err != nil {
		return err
	}

	if err := p.sender.consume(); err != nil {
		return err
	}

	p.receiver.qubit = Amplitudes(input).Undo(c)

	return nil
}

// MeasureWith performs the Bell measurement of input together with this half
// and collapses the pair onto o. Only the sender half can be measured.
func (h *PairHalf) MeasureWith(input State, o Outcome) error {
	if h != h.pair.sender {
		return fmt.Errorf("quantum: the %s half cannot be measured", h.owner)
	}

	return h.pair.Collapse(input, o)
}

// BellType returns the type of the pair this half belongs to.
func (h *PairHalf) BellType() BellType {
	return h.pair.Type
}

// Consumed reports whether the half has been measured or corrected.
func (h *PairHalf) Consumed() bool {
	return h.consumed
}

// Correct applies c to the receiver half and returns the resulting qubit.
func (h *PairHalf) Correct(c Correction) (Qubit, error) {
	if err := h.consume(); err != nil {
		return Qubit{}, err
	}

	return h.qubit.Apply(c), nil
}

func (h *PairHalf) consume() error {
	if h.consumed {
		return fmt.Errorf("%w: %s half of %s", ErrHalfConsumed, h.owner, h.pair.Type)
	}

	h.consumed = true

	return nil
}
