package qirlower

import "github.com/pkg/errors"

// rule maps one derived op to its expansion body. Bodies may reference
// primitives and ops defined strictly earlier in the table; that acyclic
// dependency order is what guarantees expansion terminates.
type rule struct {
	op     Op
	expand func(inst Instruction) []Instruction
}

// ruleTable holds the rules in dependency order plus an index by op.
type ruleTable struct {
	ordered []rule
	byOp    map[Op]*rule
}

// rules is the one immutable table, built and consistency-checked at package
// initialization. A violation here is an authoring error in the table itself,
// so it panics rather than surfacing at invocation time.
var rules = mustBuildRules()

func mustBuildRules() *ruleTable {
	t, err := buildRules()
	if err != nil {
		panic(err)
	}
	return t
}

func buildRules() (*ruleTable, error) {
	ordered := []rule{
		// Derived single-qubit layer.
		{op: OpH, expand: func(in Instruction) []Instruction {
			q := in.Qubits[0]
			return []Instruction{Rx(-HalfPiAngle, q), Rz(-HalfPiAngle, q), Rx(-HalfPiAngle, q)}
		}},
		{op: OpS, expand: func(in Instruction) []Instruction {
			return []Instruction{Rz(HalfPiAngle, in.Qubits[0])}
		}},
		{op: OpSdg, expand: func(in Instruction) []Instruction {
			return []Instruction{Rz(-HalfPiAngle, in.Qubits[0])}
		}},
		{op: OpT, expand: func(in Instruction) []Instruction {
			return []Instruction{Rz(QuarterPiAngle, in.Qubits[0])}
		}},
		{op: OpTdg, expand: func(in Instruction) []Instruction {
			return []Instruction{Rz(-QuarterPiAngle, in.Qubits[0])}
		}},
		{op: OpX, expand: func(in Instruction) []Instruction {
			return []Instruction{Rx(PiAngle, in.Qubits[0])}
		}},
		{op: OpZ, expand: func(in Instruction) []Instruction {
			return []Instruction{Rz(PiAngle, in.Qubits[0])}
		}},
		{op: OpY, expand: func(in Instruction) []Instruction {
			q := in.Qubits[0]
			return []Instruction{H(q), S(q), H(q), Z(q), H(q), Sdg(q), H(q)}
		}},
		// Y-axis rotation: rz conjugated by the h,s,h wrapper; the wrapper is
		// un-applied in exactly reverse gate order.
		{op: OpRy, expand: func(in Instruction) []Instruction {
			q := in.Qubits[0]
			return []Instruction{H(q), S(q), H(q), Rz(in.Params[0], q), H(q), Sdg(q), H(q)}
		}},

		// Derived two-qubit layer. The rzz produces the CZ effect only up to
		// the two single-qubit corrections; both are mandatory.
		{op: OpCZ, expand: func(in Instruction) []Instruction {
			c, q := in.Qubits[0], in.Qubits[1]
			return []Instruction{Rzz(HalfPiAngle, c, q), Rz(-HalfPiAngle, c), Rz(-HalfPiAngle, q)}
		}},
		{op: OpCNOT, expand: func(in Instruction) []Instruction {
			c, q := in.Qubits[0], in.Qubits[1]
			return []Instruction{H(q), CZ(c, q), H(q)}
		}},
		{op: OpCY, expand: func(in Instruction) []Instruction {
			c, q := in.Qubits[0], in.Qubits[1]
			return []Instruction{Sdg(q), CNOT(c, q), S(q)}
		}},
		{op: OpSwap, expand: func(in Instruction) []Instruction {
			a, b := in.Qubits[0], in.Qubits[1]
			return []Instruction{CNOT(a, b), CNOT(b, a), CNOT(a, b)}
		}},
		{op: OpRxx, expand: func(in Instruction) []Instruction {
			q0, q1 := in.Qubits[0], in.Qubits[1]
			return []Instruction{H(q0), H(q1), Rzz(in.Params[0], q0, q1), H(q1), H(q0)}
		}},
		{op: OpRyy, expand: func(in Instruction) []Instruction {
			q0, q1 := in.Qubits[0], in.Qubits[1]
			return []Instruction{
				H(q0), S(q0), H(q0),
				H(q1), S(q1), H(q1),
				Rzz(in.Params[0], q0, q1),
				H(q1), Sdg(q1), H(q1),
				H(q0), Sdg(q0), H(q0),
			}
		}},

		// Toffoli. The fixed 15-step sequence, including the control/target
		// role of every cnot, is part of the contract.
		{op: OpCCX, expand: func(in Instruction) []Instruction {
			c0, c1, q := in.Qubits[0], in.Qubits[1], in.Qubits[2]
			return []Instruction{
				H(q),
				Tdg(c0), Tdg(c1),
				CNOT(q, c0),
				T(c0),
				CNOT(c1, q), CNOT(c1, c0),
				T(q), Tdg(c0),
				CNOT(c1, q), CNOT(q, c0),
				Tdg(q), T(c0),
				CNOT(c1, c0),
				H(q),
			}
		}},

		// Measurement layer.
		{op: OpMResetZ, expand: func(in Instruction) []Instruction {
			q := in.Qubits[0]
			return []Instruction{Mz(q, in.Result), Reset(q)}
		}},
		// Non-destructive measure: drive the qubit to a known state, then
		// conditionally flip it back to reflect the recorded outcome. The
		// branch must be a genuine classical conditional: it reads r after
		// the mz that wrote it and cannot be reordered or hoisted.
		{op: OpMeasure, expand: func(in Instruction) []Instruction {
			q := in.Qubits[0]
			return []Instruction{
				MResetZ(q, in.Result),
				Branch(in.Result, X(q)),
			}
		}},
	}

	t := &ruleTable{ordered: ordered, byOp: make(map[Op]*rule, len(ordered))}
	for i := range ordered {
		t.byOp[ordered[i].op] = &ordered[i]
	}
	if err := t.checkConsistency(); err != nil {
		return nil, err
	}
	return t, nil
}

// checkConsistency verifies the structural backbone of the table: every rule
// body references only primitive ops or ops defined strictly earlier. Bodies
// are probed with synthetic operands so the check covers what the rule
// actually produces, not what it declares.
func (t *ruleTable) checkConsistency() error {
	defined := make(map[Op]bool, len(t.ordered))
	for i := range t.ordered {
		r := &t.ordered[i]
		if r.op.Primitive() {
			return errors.Errorf("rule table: %s is primitive and must not have a rule", r.op)
		}
		if defined[r.op] {
			return errors.Errorf("rule table: duplicate rule for %s", r.op)
		}
		body := r.expand(probeInstruction(r.op))
		if err := checkBodyOps(r.op, body, defined); err != nil {
			return err
		}
		defined[r.op] = true
	}
	return nil
}

func checkBodyOps(owner Op, body []Instruction, defined map[Op]bool) error {
	for _, inst := range body {
		if inst.Op == OpBranch {
			if err := checkBodyOps(owner, inst.Then, defined); err != nil {
				return err
			}
			continue
		}
		if inst.Op.Primitive() || defined[inst.Op] {
			continue
		}
		return errors.Errorf("rule table: %s body references %s, which is not primitive or defined earlier",
			owner, inst.Op)
	}
	return nil
}

// probeInstruction builds a syntactically valid invocation of op, with
// distinct qubit handles and a zero angle, for exercising a rule body.
func probeInstruction(op Op) Instruction {
	sig := op.Signature()
	inst := Instruction{Op: op, Result: noResult, Cond: noResult}
	for i := 0; i < sig.Qubits; i++ {
		inst.Qubits = append(inst.Qubits, Qubit(i))
	}
	for i := 0; i < sig.Params; i++ {
		inst.Params = append(inst.Params, 0)
	}
	if sig.WritesResult {
		inst.Result = 0
	}
	return inst
}
