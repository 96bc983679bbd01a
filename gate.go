package qirlower

import "github.com/pkg/errors"

// Op identifies one operation of the instruction set. The vocabulary is
// closed: five primitive ops the target substrate implements natively, and a
// fixed set of derived ops the lowering table rewrites into primitives.
type Op int

const (
	// Primitive ops. The substrate executes these directly; the lowering
	// engine never decomposes them further.
	OpRx    Op = iota // rx(angle) q         (X-axis rotation)
	OpRz              // rz(angle) q         (Z-axis rotation)
	OpRzz             // rzz(angle) q0, q1   (two-qubit ZZ-interaction rotation)
	OpReset           // reset q             (reset qubit to |0⟩)
	OpMz              // mz q -> r           (destructive Z-basis measurement)

	// Derived single-qubit ops.
	OpH
	OpS
	OpSdg
	OpT
	OpTdg
	OpX
	OpY
	OpZ
	OpRy

	// Derived two-qubit ops. "cx" is accepted as a spelling of cnot; it is
	// not a separate table entry.
	OpCZ
	OpCNOT
	OpCY
	OpSwap
	OpRxx
	OpRyy

	// Derived three-qubit op.
	OpCCX

	// Measurement layer. MResetZ is mz followed by reset; Measure additionally
	// restores the measured qubit with a classically-conditioned x.
	OpMResetZ
	OpMeasure

	// OpBranch is the single classical control-flow construct: read the
	// boolean out of a result cell and execute the body only when it is true.
	// It appears in lowered output (produced by the measure rule) and is
	// never written by callers directly.
	OpBranch

	numOps
)

// Signature declares the operand shape of an op: how many angle parameters
// and qubit operands an invocation must carry, and whether it writes a
// result cell. Checked before any rewriting.
type Signature struct {
	Params       int
	Qubits       int
	WritesResult bool
}

type opInfo struct {
	name         string
	sig          Signature
	primitive    bool
	irreversible bool
}

var opTable = [numOps]opInfo{
	OpRx:    {name: "rx", sig: Signature{Params: 1, Qubits: 1}, primitive: true},
	OpRz:    {name: "rz", sig: Signature{Params: 1, Qubits: 1}, primitive: true},
	OpRzz:   {name: "rzz", sig: Signature{Params: 1, Qubits: 2}, primitive: true},
	OpReset: {name: "reset", sig: Signature{Qubits: 1}, primitive: true},
	OpMz:    {name: "mz", sig: Signature{Qubits: 1, WritesResult: true}, primitive: true, irreversible: true},

	OpH:   {name: "h", sig: Signature{Qubits: 1}},
	OpS:   {name: "s", sig: Signature{Qubits: 1}},
	OpSdg: {name: "sdg", sig: Signature{Qubits: 1}},
	OpT:   {name: "t", sig: Signature{Qubits: 1}},
	OpTdg: {name: "tdg", sig: Signature{Qubits: 1}},
	OpX:   {name: "x", sig: Signature{Qubits: 1}},
	OpY:   {name: "y", sig: Signature{Qubits: 1}},
	OpZ:   {name: "z", sig: Signature{Qubits: 1}},
	OpRy:  {name: "ry", sig: Signature{Params: 1, Qubits: 1}},

	OpCZ:   {name: "cz", sig: Signature{Qubits: 2}},
	OpCNOT: {name: "cnot", sig: Signature{Qubits: 2}},
	OpCY:   {name: "cy", sig: Signature{Qubits: 2}},
	OpSwap: {name: "swap", sig: Signature{Qubits: 2}},
	OpRxx:  {name: "rxx", sig: Signature{Params: 1, Qubits: 2}},
	OpRyy:  {name: "ryy", sig: Signature{Params: 1, Qubits: 2}},

	OpCCX: {name: "ccx", sig: Signature{Qubits: 3}},

	OpMResetZ: {name: "mresetz", sig: Signature{Qubits: 1, WritesResult: true}, irreversible: true},
	OpMeasure: {name: "measure", sig: Signature{Qubits: 1, WritesResult: true}, irreversible: true},

	OpBranch: {name: "branch", sig: Signature{}},
}

// opAliases maps alternate spellings accepted on input to their table op.
var opAliases = map[string]Op{
	"cx":      OpCNOT,
	"toffoli": OpCCX,
}

func (op Op) valid() bool { return op >= 0 && op < numOps }

// String returns the canonical lower-case name of the op.
func (op Op) String() string {
	if !op.valid() {
		return "op(invalid)"
	}
	return opTable[op].name
}

// Signature returns the declared operand shape of the op.
func (op Op) Signature() Signature { return opTable[op].sig }

// Primitive reports whether the op belongs to the base vocabulary and is
// executed natively by the target substrate.
func (op Op) Primitive() bool { return op.valid() && opTable[op].primitive }

// Irreversible reports whether the op has no adjoint. True for the
// destructive mz primitive and for every op built on top of it; an
// adjoint-generation pass must refuse to invert these.
func (op Op) Irreversible() bool { return op.valid() && opTable[op].irreversible }

// OpByName resolves a textual gate name (canonical or alias, case-sensitive
// lower case) to its op.
func OpByName(name string) (Op, error) {
	if op, ok := opAliases[name]; ok {
		return op, nil
	}
	for op := Op(0); op < numOps; op++ {
		if op != OpBranch && opTable[op].name == name {
			return op, nil
		}
	}
	return 0, errors.Wrapf(ErrUnknownOp, "%q", name)
}
