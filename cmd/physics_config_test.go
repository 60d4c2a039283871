package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	sim "github.com/qnet-sim/qnet-sim/sim"
)

func TestLoadPhysicsFile_PartialOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "physics.yaml")
	content := "attenuation_length_km: 20\nlink_fidelity: 0.85\n"
	assert.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	physics, err := LoadPhysicsFile(path)
	assert.NoError(t, err)
	assert.Equal(t, 20.0, physics.AttenuationLengthKM)
	assert.Equal(t, 0.85, physics.LinkFidelity)

	// untouched constants keep their defaults
	defaults := sim.DefaultPhysics()
	assert.Equal(t, defaults.FiberLightSpeed, physics.FiberLightSpeed)
	assert.Equal(t, defaults.CoherenceTimeS, physics.CoherenceTimeS)
	assert.Equal(t, defaults.DetectionEfficiency, physics.DetectionEfficiency)
}

func TestLoadPhysicsFile_MissingFile(t *testing.T) {
	_, err := LoadPhysicsFile(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadPhysicsFile_MalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "physics.yaml")
	assert.NoError(t, os.WriteFile(path, []byte("attenuation_length_km: [oops"), 0o644))
	_, err := LoadPhysicsFile(path)
	assert.Error(t, err)
}
