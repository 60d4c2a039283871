package cmd

import (
	"os"

	"gopkg.in/yaml.v3"

	sim "github.com/qnet-sim/qnet-sim/sim"
)

// LoadPhysicsFile reads a physics YAML file on top of the defaults, so a
// file only needs to name the constants it changes. Example:
//
//	attenuation_length_km: 20
//	link_fidelity: 0.85
//	coherence_time_s: 0.5
func LoadPhysicsFile(path string) (sim.Physics, error) {
	physics := sim.DefaultPhysics()
	data, err := os.ReadFile(path)
	if err != nil {
		return physics, err
	}
	if err := yaml.Unmarshal(data, &physics); err != nil {
		return physics, err
	}
	return physics, nil
}
