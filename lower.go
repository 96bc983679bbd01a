package qirlower

import (
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Lowerer rewrites a program over the rich gate vocabulary into the base
// vocabulary: rx, rz, rzz, reset, mz, plus the single classical branch
// produced by measure. The rewrite table is immutable and shared, so a
// Lowerer is safe for concurrent use.
type Lowerer struct {
	rules *ruleTable
	log   *zap.Logger
}

// Option configures a Lowerer.
type Option func(*Lowerer)

// WithLogger attaches a logger used to trace expansions at debug level.
func WithLogger(log *zap.Logger) Option {
	return func(l *Lowerer) { l.log = log }
}

// NewLowerer builds a lowering engine over the fixed rewrite table.
func NewLowerer(opts ...Option) *Lowerer {
	l := &Lowerer{rules: rules, log: zap.NewNop()}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Lower expands every derived invocation in p down to primitive calls,
// bottoming out through the dependency-ordered rule table. The input is not
// modified. Lowering an already-primitive program returns an equal program.
// Any validation failure aborts the whole lowering; there is no partial
// output.
func (l *Lowerer) Lower(p Program) (Program, error) {
	for i, inst := range p {
		if err := inst.Validate(); err != nil {
			return nil, errors.Wrapf(err, "instruction %d", i)
		}
	}
	out := make(Program, 0, len(p))
	for _, inst := range p {
		expanded, err := l.lowerInstruction(inst)
		if err != nil {
			return nil, err
		}
		out = append(out, expanded...)
	}
	return out, nil
}

// lowerInstruction expands one validated invocation to primitives. Rule
// bodies may themselves contain derived ops (cnot's body contains cz), so
// expansion recurses; the table's acyclic order bounds the depth.
func (l *Lowerer) lowerInstruction(inst Instruction) ([]Instruction, error) {
	if inst.Op == OpBranch {
		body, err := l.Lower(inst.Then)
		if err != nil {
			return nil, err
		}
		return []Instruction{{Op: OpBranch, Result: noResult, Cond: inst.Cond, Then: body}}, nil
	}
	if inst.Op.Primitive() {
		return []Instruction{inst}, nil
	}
	r, ok := l.rules.byOp[inst.Op]
	if !ok {
		return nil, errors.Wrapf(ErrNoRule, "%s", inst.Op)
	}
	body := r.expand(inst)
	l.log.Debug("expanded", zap.Stringer("op", inst.Op), zap.Int("body", len(body)))

	out := make([]Instruction, 0, len(body))
	for _, b := range body {
		expanded, err := l.lowerInstruction(b)
		if err != nil {
			return nil, err
		}
		out = append(out, expanded...)
	}
	return out, nil
}

// Lower is a convenience over a default engine.
func Lower(p Program) (Program, error) {
	return NewLowerer().Lower(p)
}
