package qirlower

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// Errors reported by signature validation and lowering. Detected problems are
// fatal to the lowering of the whole program; there is no partial output.
var (
	ErrUnknownOp = errors.New("unknown op")
	ErrArity     = errors.New("qubit operand count mismatch")
	ErrParams    = errors.New("parameter count mismatch")
	ErrNoRule    = errors.New("no lowering rule for op")
)

// Qubit is an opaque handle referencing a qubit on the target substrate.
// The lowering engine passes handles through unchanged and never allocates
// or frees them; their lifetime belongs to the calling program.
type Qubit int

// Result is an opaque handle for a result cell: write-once storage that
// receives the outcome of one destructive mz. A cell must be written before
// it is read; the engine documents but does not enforce this (caller
// invariant; reading an unwritten cell is undefined).
type Result int

// noResult marks instructions that do not touch a result cell.
const noResult Result = -1

// Instruction is one gate invocation: an op, its angle parameters, and its
// qubit operands, plus a result operand for measurement ops. Branch
// instructions reuse the same shape: Cond names the result cell whose boolean
// guards Then; no other op populates those fields.
type Instruction struct {
	Op     Op
	Params []float64
	Qubits []Qubit
	Result Result

	Cond Result
	Then []Instruction
}

// Program is an ordered sequence of gate invocations.
type Program []Instruction

// gate builds a parameterless instruction.
func gate(op Op, qubits ...Qubit) Instruction {
	return Instruction{Op: op, Qubits: qubits, Result: noResult, Cond: noResult}
}

// rot builds a single-parameter rotation instruction.
func rot(op Op, angle float64, qubits ...Qubit) Instruction {
	return Instruction{Op: op, Params: []float64{angle}, Qubits: qubits, Result: noResult, Cond: noResult}
}

// String renders the program in the textual form accepted by Parse: one
// invocation per line, branches as an if-block over a result cell.
func (p Program) String() string {
	var sb strings.Builder
	writeProgram(&sb, p, "")
	return sb.String()
}

func writeProgram(sb *strings.Builder, p Program, indent string) {
	for _, inst := range p {
		writeInstruction(sb, inst, indent)
	}
}

func writeInstruction(sb *strings.Builder, inst Instruction, indent string) {
	if inst.Op == OpBranch {
		fmt.Fprintf(sb, "%sif r[%d] {\n", indent, inst.Cond)
		writeProgram(sb, inst.Then, indent+"  ")
		fmt.Fprintf(sb, "%s}\n", indent)
		return
	}
	sb.WriteString(indent)
	sb.WriteString(inst.Op.String())
	if len(inst.Params) > 0 {
		parts := make([]string, len(inst.Params))
		for i, v := range inst.Params {
			parts[i] = FormatPi(v)
		}
		fmt.Fprintf(sb, "(%s)", strings.Join(parts, ", "))
	}
	for i, q := range inst.Qubits {
		if i == 0 {
			sb.WriteString(" ")
		} else {
			sb.WriteString(", ")
		}
		fmt.Fprintf(sb, "q[%d]", q)
	}
	if inst.Op.Signature().WritesResult {
		fmt.Fprintf(sb, " -> r[%d]", inst.Result)
	}
	sb.WriteString(";\n")
}

// Validate checks the instruction's operand counts against its op signature.
// Performed before any rewriting; a mismatch is a static error.
func (inst Instruction) Validate() error {
	if !inst.Op.valid() {
		return errors.Wrapf(ErrUnknownOp, "op value %d", int(inst.Op))
	}
	if inst.Op == OpBranch {
		for _, t := range inst.Then {
			if err := t.Validate(); err != nil {
				return err
			}
		}
		return nil
	}
	sig := inst.Op.Signature()
	if len(inst.Qubits) != sig.Qubits {
		return errors.Wrapf(ErrArity, "%s expects %d qubit operand(s), got %d",
			inst.Op, sig.Qubits, len(inst.Qubits))
	}
	if len(inst.Params) != sig.Params {
		return errors.Wrapf(ErrParams, "%s expects %d parameter(s), got %d",
			inst.Op, sig.Params, len(inst.Params))
	}
	return nil
}

// Primitive reports whether the program consists purely of base-vocabulary
// instructions (branches count as primitive when their bodies do).
func (p Program) Primitive() bool {
	for _, inst := range p {
		if inst.Op == OpBranch {
			if !Program(inst.Then).Primitive() {
				return false
			}
			continue
		}
		if !inst.Op.Primitive() {
			return false
		}
	}
	return true
}
