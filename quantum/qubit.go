package quantum

import (
	"math"
	"math/cmplx"
)

// Qubit holds the two amplitudes of a single-qubit state. It is only used to
// check that a correction restores the teleported state.
type Qubit struct {
	Alpha complex128 // |0⟩
	Beta  complex128 // |1⟩
}

var invSqrt2 = complex(1/math.Sqrt2, 0)

// Amplitudes returns the qubit for a state tag. Unknown tags give the zero
// vector.
func Amplitudes(s State) Qubit {
	switch s {
	case Zero:
		return Qubit{Alpha: 1}
	case One:
		return Qubit{Beta: 1}
	case Plus:
		return Qubit{Alpha: invSqrt2, Beta: invSqrt2}
	}

	return Qubit{}
}

// PauliX swaps the amplitudes.
func (q Qubit) PauliX() Qubit {
	return Qubit{Alpha: q.Beta, Beta: q.Alpha}
}

// PauliZ flips the sign of |1⟩.
func (q Qubit) PauliZ() Qubit {
	return Qubit{Alpha: q.Alpha, Beta: -q.Beta}
}

// Apply applies the gates of c in order.
func (q Qubit) Apply(c Correction) Qubit {
	switch c {
	case X:
		return q.PauliX()
	case Z:
		return q.PauliZ()
	case XZ:
		return q.PauliX().PauliZ()
	}

	return q
}

// Undo applies the inverse of c, so that q.Undo(c).Apply(c) == q.
func (q Qubit) Undo(c Correction) Qubit {
	switch c {
	case X:
		return q.PauliX()
	case Z:
		return q.PauliZ()
	case XZ:
		return q.PauliZ().PauliX()
	}

	return q
}

// Fidelity returns |⟨a|b⟩|².
func Fidelity(a, b Qubit) float64 {
	overlap := cmplx.Conj(a.Alpha)*b.Alpha + cmplx.Conj(a.Beta)*b.Beta
	abs := cmplx.Abs(overlap)

	return abs * abs
}

// Identify returns the supported state closest to q and the fidelity between
// them.
func Identify(q Qubit) (State, float64) {
	best, bestFidelity := State(0), -1.0
	for _, s := range States {
		f := Fidelity(Amplitudes(s), q)
		if f > bestFidelity {
			best, bestFidelity = s, f
		}
	}

	return best, bestFidelity
}
