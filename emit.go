package qirlower

import (
	"fmt"
	"sort"
	"strings"

	"github.com/pkg/errors"
)

// ErrNotPrimitive is returned when emission is asked for a program that still
// contains derived ops; callers must lower first.
var ErrNotPrimitive = errors.New("program contains non-primitive ops")

// qubitRef renders a qubit operand in QIR pointer form.
func qubitRef(q Qubit) string {
	return fmt.Sprintf("%%Qubit* inttoptr (i64 %d to %%Qubit*)", q)
}

// resultRef renders a result operand in QIR pointer form.
func resultRef(r Result) string {
	return fmt.Sprintf("%%Result* inttoptr (i64 %d to %%Result*)", r)
}

// emitter accumulates instruction lines and the set of intrinsics they use,
// so the module wrapper can declare exactly what the body calls.
type emitter struct {
	body   strings.Builder
	decls  map[string]string
	ssa    int // next SSA value number, for read_result
	branch int // next branch label suffix
}

// declarations of the base-vocabulary intrinsics, keyed by op name.
var intrinsicDecls = map[string]string{
	"rx":          "declare void @__quantum__qis__rx__body(double, %Qubit*)",
	"rz":          "declare void @__quantum__qis__rz__body(double, %Qubit*)",
	"rzz":         "declare void @__quantum__qis__rzz__body(double, %Qubit*, %Qubit*)",
	"reset":       "declare void @__quantum__qis__reset__body(%Qubit*)",
	"mz":          "declare void @__quantum__qis__mz__body(%Qubit*, %Result* writeonly) #1",
	"read_result": "declare i1 @__quantum__qis__read_result__body(%Result*)",
}

func (e *emitter) use(name string) {
	e.decls[name] = intrinsicDecls[name]
}

func (e *emitter) emitProgram(p Program) error {
	for _, inst := range p {
		if err := e.emitInstruction(inst); err != nil {
			return err
		}
	}
	return nil
}

func (e *emitter) emitInstruction(inst Instruction) error {
	switch inst.Op {
	case OpRx, OpRz:
		e.use(inst.Op.String())
		fmt.Fprintf(&e.body, "  call void @__quantum__qis__%s__body(double %s, %s)\n",
			inst.Op, FormatAngle(inst.Params[0]), qubitRef(inst.Qubits[0]))
	case OpRzz:
		e.use("rzz")
		fmt.Fprintf(&e.body, "  call void @__quantum__qis__rzz__body(double %s, %s, %s)\n",
			FormatAngle(inst.Params[0]), qubitRef(inst.Qubits[0]), qubitRef(inst.Qubits[1]))
	case OpReset:
		e.use("reset")
		fmt.Fprintf(&e.body, "  call void @__quantum__qis__reset__body(%s)\n", qubitRef(inst.Qubits[0]))
	case OpMz:
		e.use("mz")
		fmt.Fprintf(&e.body, "  call void @__quantum__qis__mz__body(%s, %s) #1\n",
			qubitRef(inst.Qubits[0]), resultRef(inst.Result))
	case OpBranch:
		return e.emitBranch(inst)
	default:
		return errors.Wrapf(ErrNotPrimitive, "%s", inst.Op)
	}
	return nil
}

// emitBranch renders the one classical control-flow construct: read the
// result cell's boolean and execute the then-block only when it is set.
func (e *emitter) emitBranch(inst Instruction) error {
	e.use("read_result")
	v := e.ssa
	e.ssa++
	n := e.branch
	e.branch++

	fmt.Fprintf(&e.body, "  %%%d = call i1 @__quantum__qis__read_result__body(%s)\n", v, resultRef(inst.Cond))
	fmt.Fprintf(&e.body, "  br i1 %%%d, label %%then%d, label %%continue%d\n", v, n, n)
	fmt.Fprintf(&e.body, "then%d:\n", n)
	if err := e.emitProgram(inst.Then); err != nil {
		return err
	}
	fmt.Fprintf(&e.body, "  br label %%continue%d\n", n)
	fmt.Fprintf(&e.body, "continue%d:\n", n)
	return nil
}

// EmitBody renders a primitive-only program as QIR instruction-call lines,
// one per call, without the surrounding module. Angle constants are printed
// with full double precision.
func EmitBody(p Program) (string, error) {
	e := &emitter{decls: make(map[string]string)}
	if err := e.emitProgram(p); err != nil {
		return "", err
	}
	return e.body.String(), nil
}

// EmitModule renders a primitive-only program as a self-contained QIR module:
// opaque type declarations, an entry-point function holding the program body,
// declarations for exactly the intrinsics the body calls, and the attribute
// marking mz irreversible so later passes refuse to invert it.
func EmitModule(p Program) (string, error) {
	e := &emitter{decls: make(map[string]string)}
	if err := e.emitProgram(p); err != nil {
		return "", err
	}

	var sb strings.Builder
	sb.WriteString("%Result = type opaque\n")
	sb.WriteString("%Qubit = type opaque\n\n")
	sb.WriteString("define void @ENTRYPOINT__main() #0 {\n")
	sb.WriteString(e.body.String())
	sb.WriteString("  ret void\n}\n\n")

	names := make([]string, 0, len(e.decls))
	for name := range e.decls {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		sb.WriteString(e.decls[name])
		sb.WriteString("\n")
	}
	if len(names) > 0 {
		sb.WriteString("\n")
	}

	sb.WriteString("attributes #0 = { \"entry_point\" \"qir_profiles\"=\"custom\" }\n")
	sb.WriteString("attributes #1 = { \"irreversible\" }\n")
	return sb.String(), nil
}
