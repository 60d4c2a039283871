package sim

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

// fixedSource makes rand.Float64 return a chosen value, so success and
// failure branches can be exercised deterministically.
type fixedSource struct {
	f float64
}

func (s fixedSource) Int63() int64 {
	return int64(s.f * float64(math.MaxInt64))
}

func (s fixedSource) Seed(int64) {}

func fixedRand(f float64) *rand.Rand {
	return rand.New(fixedSource{f: f})
}

func TestPurifier_SuccessReplacesInputs(t *testing.T) {
	pu := Purifier{Protocol: DEJMPS, TCohS: 1.0}
	a := NewPair("A", "B", 1.0, 0)
	b := NewPair("B", "A", 1.0, 0)

	// p_success = 1 at the noiseless limit; any draw succeeds
	out, ok := pu.Purify(a, b, 0, fixedRand(0.99))
	assert.True(t, ok)
	assert.InDelta(t, 1.0, out.Fidelity0, 1e-15)
	assert.Equal(t, 0.0, out.WriteTime)
	assert.True(t, out.SameEndpoints(a))
	assert.NotSame(t, a, out)
	assert.NotSame(t, b, out)
}

func TestPurifier_FailureReturnsNothing(t *testing.T) {
	pu := Purifier{Protocol: DEJMPS, TCohS: 1.0}
	a := NewPair("A", "B", 0.5, 0)
	b := NewPair("A", "B", 0.5, 0)

	// draw above p_success: the round fails and both inputs are lost
	out, ok := pu.Purify(a, b, 0, fixedRand(0.999))
	assert.False(t, ok)
	assert.Nil(t, out)
}

func TestPurifier_UsesDecayedFidelities(t *testing.T) {
	pu := Purifier{Protocol: DEJMPS, TCohS: 1.0}
	a := NewPair("A", "B", 0.9, 0)
	b := NewPair("A", "B", 0.9, 0)

	// purifying one coherence time later sees decayed inputs
	out, ok := pu.Purify(a, b, 1.0, fixedRand(0.0))
	assert.True(t, ok)
	fDecayed := 0.9 * math.Exp(-1.0)
	_, want := PurifyDEJMPS(fDecayed, fDecayed)
	assert.InDelta(t, want, out.Fidelity0, 1e-12)
}

func TestPurifier_EndpointMismatchPanics(t *testing.T) {
	pu := Purifier{Protocol: DEJMPS, TCohS: 1.0}
	a := NewPair("A", "B", 0.9, 0)
	c := NewPair("B", "C", 0.9, 0)
	assert.Panics(t, func() { pu.Purify(a, c, 0, fixedRand(0.0)) })
}

func TestProtocol_MapDispatch(t *testing.T) {
	pd, fd := DEJMPS.Map(0.8, 0.8)
	wantPD, wantFD := PurifyDEJMPS(0.8, 0.8)
	assert.Equal(t, wantPD, pd)
	assert.Equal(t, wantFD, fd)

	pb, fb := BBPSSW.Map(0.8, 0.8)
	wantPB, wantFB := PurifyBBPSSW(0.8, 0.8)
	assert.Equal(t, wantPB, pb)
	assert.Equal(t, wantFB, fb)
}

func TestParseProtocol(t *testing.T) {
	p, err := ParseProtocol("dejmps")
	assert.NoError(t, err)
	assert.Equal(t, DEJMPS, p)

	p, err = ParseProtocol("bbpssw")
	assert.NoError(t, err)
	assert.Equal(t, BBPSSW, p)

	_, err = ParseProtocol("oxford")
	assert.ErrorIs(t, err, ErrInvalidParameter)
}

func TestFilter_DiscardsOnlyBelowThreshold(t *testing.T) {
	keep := NewPair("A", "B", 0.95, 0)
	drop := NewPair("A", "B", 0.85, 0)

	assert.Same(t, keep, Filter(keep, 0, 0.9, 1.0), "a passing pair is returned unchanged")
	assert.Nil(t, Filter(drop, 0, 0.9, 1.0))
}

func TestFilter_AppliesDecayBeforeThreshold(t *testing.T) {
	p := NewPair("A", "B", 0.95, 0)
	// fresh it passes, but one coherence time later it has decayed below
	assert.NotNil(t, Filter(p, 0, 0.9, 1.0))
	assert.Nil(t, Filter(p, 1.0, 0.9, 1.0))
}
