package qirlower

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBaseProfileAcceptsLoweredOutput(t *testing.T) {
	lowered, err := Lower(Program{
		H(0), CNOT(0, 1), CCX(0, 1, 2), Measure(0, 0), MResetZ(1, 1),
	})
	require.NoError(t, err)
	assert.NoError(t, BaseProfile().Validate(lowered))
}

func TestProfileRejectsDerivedOps(t *testing.T) {
	err := BaseProfile().Validate(Program{H(0)})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "outside target vocabulary")
}

func TestProfileWithoutBranchingRejectsMeasure(t *testing.T) {
	strict := BaseProfile()
	strict.Name = "base-strict"
	strict.SupportsBranching = false

	lowered, err := Lower(Program{Measure(0, 0)})
	require.NoError(t, err)
	err = strict.Validate(lowered)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "does not support branching")

	// mresetz stays straight-line, so it is fine on the same target.
	lowered, err = Lower(Program{MResetZ(0, 0)})
	require.NoError(t, err)
	assert.NoError(t, strict.Validate(lowered))
}

func TestLoadProfile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "target.yaml")
	data := `name: rz-only
primitives:
  - rz
  - rzz
  - reset
  - mz
supports_branching: false
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	tp, err := LoadProfile(path)
	require.NoError(t, err)
	assert.Equal(t, "rz-only", tp.Name)
	assert.False(t, tp.SupportsBranching)
	assert.Len(t, tp.Primitives, 4)

	// rx is not in this target's vocabulary.
	err = tp.Validate(Program{Rx(PiAngle, 0)})
	require.Error(t, err)
}

func TestLoadProfileRejectsDerivedPrimitive(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	data := `name: bad
primitives: [rx, h]
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	_, err := LoadProfile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a primitive")
}

func TestLoadProfileRejectsUnknownFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "unknown.yaml")
	data := `name: x
primitives: [rx]
frobnication: true
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	_, err := LoadProfile(path)
	require.Error(t, err)
}

func TestLoadProfileMissingFile(t *testing.T) {
	_, err := LoadProfile(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}
