package qirlower

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Pre-compiled regexps for program-text parsing. One invocation per line;
// blank lines and // comments are skipped.
var (
	oneQubitRegex      = regexp.MustCompile(`^(\w+)\s+q\[(\d+)\];?$`)
	oneQubitAngleRegex = regexp.MustCompile(`^(\w+)\s*\(\s*(` + anglePattern + `)\s*\)\s+q\[(\d+)\];?$`)
	twoQubitRegex      = regexp.MustCompile(`^(\w+)\s+q\[(\d+)\],\s*q\[(\d+)\];?$`)
	twoQubitAngleRegex = regexp.MustCompile(`^(\w+)\s*\(\s*(` + anglePattern + `)\s*\)\s+q\[(\d+)\],\s*q\[(\d+)\];?$`)
	threeQubitRegex    = regexp.MustCompile(`^(\w+)\s+q\[(\d+)\],\s*q\[(\d+)\],\s*q\[(\d+)\];?$`)
	measureRegex       = regexp.MustCompile(`^(\w+)\s+q\[(\d+)\]\s*->\s*r\[(\d+)\];?$`)
)

// Parse reads a program in the textual form produced by Program.String:
// rich-vocabulary gate invocations over q[i] operands, with measurement ops
// writing to r[j] cells and angles given as numbers or pi expressions.
func Parse(text string) (Program, error) {
	var p Program
	for lineNum, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" || strings.HasPrefix(line, "//") {
			continue
		}
		inst, err := parseLine(line)
		if err != nil {
			return nil, errors.Wrapf(err, "line %d", lineNum+1)
		}
		if err := inst.Validate(); err != nil {
			return nil, errors.Wrapf(err, "line %d", lineNum+1)
		}
		p = append(p, inst)
	}
	return p, nil
}

func parseLine(line string) (Instruction, error) {
	if m := measureRegex.FindStringSubmatch(line); m != nil {
		op, err := OpByName(m[1])
		if err != nil {
			return Instruction{}, err
		}
		inst := gate(op, Qubit(atoi(m[2])))
		inst.Result = Result(atoi(m[3]))
		return inst, nil
	}
	if m := oneQubitAngleRegex.FindStringSubmatch(line); m != nil {
		return parseAngled(m[1], m[2], Qubit(atoi(m[3])))
	}
	if m := twoQubitAngleRegex.FindStringSubmatch(line); m != nil {
		return parseAngled(m[1], m[2], Qubit(atoi(m[3])), Qubit(atoi(m[4])))
	}
	if m := oneQubitRegex.FindStringSubmatch(line); m != nil {
		return parsePlain(m[1], Qubit(atoi(m[2])))
	}
	if m := twoQubitRegex.FindStringSubmatch(line); m != nil {
		return parsePlain(m[1], Qubit(atoi(m[2])), Qubit(atoi(m[3])))
	}
	if m := threeQubitRegex.FindStringSubmatch(line); m != nil {
		return parsePlain(m[1], Qubit(atoi(m[2])), Qubit(atoi(m[3])), Qubit(atoi(m[4])))
	}
	return Instruction{}, errors.Errorf("unrecognized statement %q", line)
}

func parsePlain(name string, qubits ...Qubit) (Instruction, error) {
	op, err := OpByName(name)
	if err != nil {
		return Instruction{}, err
	}
	return gate(op, qubits...), nil
}

func parseAngled(name, angleExpr string, qubits ...Qubit) (Instruction, error) {
	op, err := OpByName(name)
	if err != nil {
		return Instruction{}, err
	}
	angle, ok := ParseAngle(angleExpr)
	if !ok {
		return Instruction{}, errors.Errorf("bad angle expression %q", angleExpr)
	}
	return rot(op, angle, qubits...), nil
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s) // \d+ matched by the regex
	return n
}
