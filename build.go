package qirlower

// Constructors for every op in the vocabulary. Rule bodies, tests and callers
// build programs from these rather than filling Instruction structs by hand.

// Rx rotates q about the X axis by angle radians.
func Rx(angle float64, q Qubit) Instruction { return rot(OpRx, angle, q) }

// Rz rotates q about the Z axis by angle radians.
func Rz(angle float64, q Qubit) Instruction { return rot(OpRz, angle, q) }

// Rzz applies the two-qubit ZZ-interaction rotation by angle radians.
func Rzz(angle float64, q0, q1 Qubit) Instruction { return rot(OpRzz, angle, q0, q1) }

// Reset deterministically drives q to its computational ground state.
func Reset(q Qubit) Instruction { return gate(OpReset, q) }

// Mz destructively measures q in the computational basis, writing the outcome
// into r. There is no adjoint.
func Mz(q Qubit, r Result) Instruction {
	inst := gate(OpMz, q)
	inst.Result = r
	return inst
}

func H(q Qubit) Instruction   { return gate(OpH, q) }
func S(q Qubit) Instruction   { return gate(OpS, q) }
func Sdg(q Qubit) Instruction { return gate(OpSdg, q) }
func T(q Qubit) Instruction   { return gate(OpT, q) }
func Tdg(q Qubit) Instruction { return gate(OpTdg, q) }
func X(q Qubit) Instruction   { return gate(OpX, q) }
func Y(q Qubit) Instruction   { return gate(OpY, q) }
func Z(q Qubit) Instruction   { return gate(OpZ, q) }

// Ry rotates q about the Y axis by angle radians.
func Ry(angle float64, q Qubit) Instruction { return rot(OpRy, angle, q) }

// CZ applies a controlled-Z between c and q.
func CZ(c, q Qubit) Instruction { return gate(OpCZ, c, q) }

// CNOT applies a controlled-X with control c and target q.
func CNOT(c, q Qubit) Instruction { return gate(OpCNOT, c, q) }

// CY applies a controlled-Y with control c and target q.
func CY(c, q Qubit) Instruction { return gate(OpCY, c, q) }

// Swap exchanges the states of a and b.
func Swap(a, b Qubit) Instruction { return gate(OpSwap, a, b) }

// Rxx applies the two-qubit XX-interaction rotation by angle radians.
func Rxx(angle float64, q0, q1 Qubit) Instruction { return rot(OpRxx, angle, q0, q1) }

// Ryy applies the two-qubit YY-interaction rotation by angle radians.
func Ryy(angle float64, q0, q1 Qubit) Instruction { return rot(OpRyy, angle, q0, q1) }

// CCX applies a Toffoli with controls c0, c1 and target q.
func CCX(c0, c1, q Qubit) Instruction { return gate(OpCCX, c0, c1, q) }

// MResetZ measures q into r and then resets q. Straight-line, no branching.
func MResetZ(q Qubit, r Result) Instruction {
	inst := gate(OpMResetZ, q)
	inst.Result = r
	return inst
}

// Measure measures q into r non-destructively: the lowered form restores q so
// that its post-measurement state reflects the recorded outcome.
func Measure(q Qubit, r Result) Instruction {
	inst := gate(OpMeasure, q)
	inst.Result = r
	return inst
}

// Branch executes body only when the boolean read out of r is true. The read
// must happen after the mz that wrote r; the engine preserves that order and
// never hoists the body.
func Branch(r Result, body ...Instruction) Instruction {
	return Instruction{Op: OpBranch, Result: noResult, Cond: r, Then: body}
}
