package qirlower

import (
	"os"

	"github.com/pkg/errors"
	yaml "gopkg.in/yaml.v2"
)

// TargetProfile describes the vocabulary a target substrate accepts: which
// ops it implements natively and whether it can execute a classical branch on
// a measurement result. Lowered programs are validated against a profile
// before being handed to the target.
type TargetProfile struct {
	Name              string   `yaml:"name"`
	Primitives        []string `yaml:"primitives"`
	SupportsBranching bool     `yaml:"supports_branching"`
}

// BaseProfile is the default target: the five primitives of the base
// vocabulary with branching enabled, matching what the rewrite table emits.
// Targets running the strict QIR base profile (no classical control flow)
// should set supports_branching false, which rejects programs that used
// measure and forces callers onto mresetz.
func BaseProfile() TargetProfile {
	return TargetProfile{
		Name:              "base",
		Primitives:        []string{"rx", "rz", "rzz", "reset", "mz"},
		SupportsBranching: true,
	}
}

// LoadProfile reads a target profile from a YAML file.
func LoadProfile(path string) (TargetProfile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return TargetProfile{}, errors.Wrap(err, "read profile")
	}
	var tp TargetProfile
	if err := yaml.UnmarshalStrict(data, &tp); err != nil {
		return TargetProfile{}, errors.Wrap(err, "parse profile")
	}
	if tp.Name == "" {
		return TargetProfile{}, errors.New("profile: missing name")
	}
	if len(tp.Primitives) == 0 {
		return TargetProfile{}, errors.New("profile: no primitives listed")
	}
	for _, name := range tp.Primitives {
		op, err := OpByName(name)
		if err != nil {
			return TargetProfile{}, errors.Wrapf(err, "profile %q", tp.Name)
		}
		if !op.Primitive() {
			return TargetProfile{}, errors.Errorf("profile %q: %s is not a primitive op", tp.Name, op)
		}
	}
	return tp, nil
}

// Validate checks that a lowered program stays inside the profile's
// vocabulary: only listed primitives, and branches only when the target
// supports them.
func (tp TargetProfile) Validate(p Program) error {
	allowed := make(map[Op]bool, len(tp.Primitives))
	for _, name := range tp.Primitives {
		op, err := OpByName(name)
		if err != nil {
			return errors.Wrapf(err, "profile %q", tp.Name)
		}
		allowed[op] = true
	}
	return tp.validate(p, allowed)
}

func (tp TargetProfile) validate(p Program, allowed map[Op]bool) error {
	for i, inst := range p {
		if inst.Op == OpBranch {
			if !tp.SupportsBranching {
				return errors.Errorf("profile %q: instruction %d: target does not support branching", tp.Name, i)
			}
			if err := tp.validate(inst.Then, allowed); err != nil {
				return err
			}
			continue
		}
		if !allowed[inst.Op] {
			return errors.Errorf("profile %q: instruction %d: op %s outside target vocabulary", tp.Name, i, inst.Op)
		}
	}
	return nil
}
