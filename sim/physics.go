// sim/physics.go
//
// Scalar Werner-state fidelity model: every formula here is a pure function
// of its inputs. Stateless by design so each one is unit-testable against
// fixed input/output pairs.

package sim

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidParameter marks malformed physical parameters. It is raised at
// configuration-validation time, never mid-trial.
var ErrInvalidParameter = errors.New("invalid parameter")

// WernerMinFidelity is the fidelity below which a Werner state carries no
// usable entanglement. Callers must validate F0 before use.
const WernerMinFidelity = 0.25

// Physics groups the tunable physical constants of the channel and the
// memories. Zero value is not usable; start from DefaultPhysics.
type Physics struct {
	FiberLightSpeed     float64 `yaml:"fiber_light_speed_m_s"`   // signal velocity in fiber (m/s)
	AttenuationLengthKM float64 `yaml:"attenuation_length_km"`   // Beer-Lambert attenuation length
	LinkFidelity        float64 `yaml:"link_fidelity"`           // baseline fidelity F0 of a fresh raw pair
	CoherenceTimeS      float64 `yaml:"coherence_time_s"`        // memory coherence time T_coh
	DetectionEfficiency float64 `yaml:"detection_efficiency"`    // detector efficiency for single-click generation
}

// DefaultPhysics returns the reference parameter set.
func DefaultPhysics() Physics {
	return Physics{
		FiberLightSpeed:     2e8,
		AttenuationLengthKM: 22,
		LinkFidelity:        0.9,
		CoherenceTimeS:      1.0,
		DetectionEfficiency: 0.9,
	}
}

// Validate checks every constant against its physical domain.
func (p Physics) Validate() error {
	if p.FiberLightSpeed <= 0 {
		return fmt.Errorf("%w: fiber light speed %v must be > 0", ErrInvalidParameter, p.FiberLightSpeed)
	}
	if p.AttenuationLengthKM <= 0 {
		return fmt.Errorf("%w: attenuation length %v must be > 0", ErrInvalidParameter, p.AttenuationLengthKM)
	}
	if p.CoherenceTimeS <= 0 {
		return fmt.Errorf("%w: coherence time %v must be > 0", ErrInvalidParameter, p.CoherenceTimeS)
	}
	if p.DetectionEfficiency < 0 || p.DetectionEfficiency > 1 {
		return fmt.Errorf("%w: detection efficiency %v must be in [0,1]", ErrInvalidParameter, p.DetectionEfficiency)
	}
	if _, err := WernerRawFidelity(p.LinkFidelity); err != nil {
		return err
	}
	return nil
}

// LinkSuccessProbability returns the per-attempt success probability of
// heralded generation over a fiber of the given length:
// eta_det * exp(-L/L_att).
func LinkSuccessProbability(lengthKM, attLenKM, etaDet float64) (float64, error) {
	if lengthKM < 0 {
		return 0, fmt.Errorf("%w: link length %v must be >= 0", ErrInvalidParameter, lengthKM)
	}
	if attLenKM <= 0 {
		return 0, fmt.Errorf("%w: attenuation length %v must be > 0", ErrInvalidParameter, attLenKM)
	}
	if etaDet < 0 || etaDet > 1 {
		return 0, fmt.Errorf("%w: detection efficiency %v must be in [0,1]", ErrInvalidParameter, etaDet)
	}
	return etaDet * math.Exp(-lengthKM/attLenKM), nil
}

// DecayedFidelity returns f0 * exp(-elapsed/tCoh), clamped to [0, f0].
func DecayedFidelity(f0, elapsed, tCoh float64) (float64, error) {
	if tCoh <= 0 {
		return 0, fmt.Errorf("%w: coherence time %v must be > 0", ErrInvalidParameter, tCoh)
	}
	if elapsed < 0 {
		return 0, fmt.Errorf("%w: elapsed time %v must be >= 0", ErrInvalidParameter, elapsed)
	}
	f := f0 * math.Exp(-elapsed/tCoh)
	if f > f0 {
		f = f0
	}
	if f < 0 {
		f = 0
	}
	return f, nil
}

// WernerRawFidelity is the identity pass-through for the initial Werner
// fidelity of a freshly generated raw pair, rejecting values outside
// [WernerMinFidelity, 1].
func WernerRawFidelity(f0 float64) (float64, error) {
	if f0 < WernerMinFidelity || f0 > 1 {
		return 0, fmt.Errorf("%w: raw fidelity %v must be in [%v, 1]", ErrInvalidParameter, f0, WernerMinFidelity)
	}
	return f0, nil
}

// PurifyDEJMPS applies one DEJMPS round to two Werner inputs and returns the
// success probability and the post-purification fidelity. With g_i=(1-F_i)/3:
//
//	p  = F1*F2 + F1*g2 + F2*g1 + 5*g1*g2
//	F' = (F1*F2 + g1*g2) / p
//
// Symmetric in f1,f2, bit for bit: the cross terms are summed before joining
// the rest so the float result is identical under argument exchange.
func PurifyDEJMPS(f1, f2 float64) (pSuccess, fOut float64) {
	g1 := (1 - f1) / 3
	g2 := (1 - f2) / 3
	pSuccess = f1*f2 + (f1*g2 + f2*g1) + 5*(g1*g2)
	fOut = (f1*f2 + g1*g2) / pSuccess
	return pSuccess, fOut
}

// PurifyBBPSSW applies one BBPSSW round to two Werner inputs:
//
//	p  = F1*F2 + F1*(1-F2)/3 + F2*(1-F1)/3 + 5*(1-F1)*(1-F2)/9
//	F' = (F1*F2 + (1-F1)*(1-F2)/9) / p
func PurifyBBPSSW(f1, f2 float64) (pSuccess, fOut float64) {
	r1 := 1 - f1
	r2 := 1 - f2
	pSuccess = f1*f2 + (f1*r2+f2*r1)/3 + 5*(r1*r2)/9
	fOut = (f1*f2 + r1*r2/9) / pSuccess
	return pSuccess, fOut
}

// SwapFidelity returns the fidelity of the combined pair after an ideal
// entanglement swap of two independent Werner pairs:
// (1 + (4*F1-1)*(4*F2-1)/3) / 4.
func SwapFidelity(f1, f2 float64) float64 {
	return (1 + (4*f1-1)*(4*f2-1)/3) / 4
}
