// SPDX-License-Identifier: MIT

package scenario_test

import (
	"context"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/diffusionx/internal/scenario"
	"github.com/katalvlaran/diffusionx/montecarlo"
	"github.com/katalvlaran/diffusionx/pool"
	"github.com/katalvlaran/diffusionx/process"
)

const constantScenario = `
name: constant
seed: 7
process:
  kind: bm
  params: {start: 0.5, D: 0}
statistics:
  - {kind: mean, duration: 1, time_step: 0.25, particles: 10}
  - {kind: msd, duration: 1, time_step: 0.25, particles: 10}
  - {kind: central_moment, order: 2, duration: 1, time_step: 0.25, particles: 10}
  - {kind: frac_raw_moment, order: 0.5, duration: 1, time_step: 0.25, particles: 10}
  - {kind: tamsd, duration: 2, delta: 0.5, time_step: 0.25, quad_order: 4}
  - {kind: eatamsd, duration: 2, delta: 0.5, time_step: 0.25, quad_order: 4, particles: 3}
  - {kind: fpt, domain: [0, 1], max_duration: 1, time_step: 0.25}
  - {kind: fpt_raw_moment, domain: [0, 0.5], order: 1, particles: 4, max_duration: 1, time_step: 0.25}
  - {kind: occupation_time, domain: [0, 1], duration: 2, time_step: 0.25}
  - {kind: occupation_time_central_moment, domain: [0, 1], order: 2, particles: 4, duration: 2, time_step: 0.25}
`

func TestLoad_File(t *testing.T) {
	t.Parallel()

	s, err := scenario.Load(filepath.Join("testdata", "bm-diffusion.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "bm-diffusion", s.Name)
	require.NotNil(t, s.Seed)
	assert.Equal(t, uint64(42), *s.Seed)
	assert.Equal(t, scenario.Process{Kind: "bm", Params: map[string]float64{"start": 0, "D": 1}}, s.Process)
	require.Len(t, s.Statistics, 5)
	assert.Equal(t, scenario.KindTAMSD, s.Statistics[3].Kind)
	assert.Equal(t, 20, s.Statistics[3].QuadOrder)
	assert.Equal(t, []float64{-1, 1}, s.Statistics[4].Domain)
}

func TestLoad_MissingFile(t *testing.T) {
	t.Parallel()

	_, err := scenario.Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestParse_Rejects(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		doc  string
	}{
		{"unknown top-level field", "name: x\nprocess: {kind: bm}\nstatistics: [{kind: mean, duration: 1, time_step: 0.1, particles: 1}]\nextra: 1\n"},
		{"unknown statistic field", "name: x\nprocess: {kind: bm}\nstatistics: [{kind: mean, duration: 1, time_step: 0.1, particles: 1, partciles: 2}]\n"},
		{"bad statistic kind", "name: x\nprocess: {kind: bm}\nstatistics: [{kind: median, duration: 1, time_step: 0.1, particles: 1}]\n"},
		{"bad process kind", "name: x\nprocess: {kind: levy}\nstatistics: [{kind: mean, duration: 1, time_step: 0.1, particles: 1}]\n"},
		{"negative particles", "name: x\nprocess: {kind: bm}\nstatistics: [{kind: mean, duration: 1, time_step: 0.1, particles: -5}]\n"},
		{"fractional particles", "name: x\nprocess: {kind: bm}\nstatistics: [{kind: mean, duration: 1, time_step: 0.1, particles: 1.5}]\n"},
		{"zero time step", "name: x\nprocess: {kind: bm}\nstatistics: [{kind: mean, duration: 1, time_step: 0, particles: 1}]\n"},
		{"empty statistics", "name: x\nprocess: {kind: bm}\nstatistics: []\n"},
		{"missing name", "process: {kind: bm}\nstatistics: [{kind: mean, duration: 1, time_step: 0.1, particles: 1}]\n"},
		{"quad order one", "name: x\nprocess: {kind: bm}\nstatistics: [{kind: tamsd, duration: 2, delta: 1, time_step: 0.1, quad_order: 1}]\n"},
		{"short domain", "name: x\nprocess: {kind: bm}\nstatistics: [{kind: fpt, domain: [1], max_duration: 1, time_step: 0.1}]\n"},
		{"negative seed", "seed: -1\nname: x\nprocess: {kind: bm}\nstatistics: [{kind: mean, duration: 1, time_step: 0.1, particles: 1}]\n"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := scenario.Parse([]byte(tc.doc))
			assert.ErrorIs(t, err, scenario.ErrInvalid)
		})
	}
}

func TestParse_PerKindRequirements(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"mean without particles":      "{kind: mean, duration: 1, time_step: 0.1}",
		"raw moment without order":    "{kind: raw_moment, duration: 1, time_step: 0.1, particles: 2}",
		"fractional integer kind":     "{kind: raw_moment, order: 1.5, duration: 1, time_step: 0.1, particles: 2}",
		"order beyond int range":      "{kind: raw_moment, order: 1e300, duration: 1, time_step: 0.1, particles: 2}",
		"order beyond int64":          "{kind: central_moment, order: 1e19, duration: 1, time_step: 0.1, particles: 2}",
		"infinite order":              "{kind: raw_moment, order: .inf, duration: 1, time_step: 0.1, particles: 2}",
		"infinite fractional order":   "{kind: frac_raw_moment, order: -.inf, duration: 1, time_step: 0.1, particles: 2}",
		"fpt order beyond int range":  "{kind: fpt_raw_moment, order: 3e9, domain: [-1, 1], particles: 2, max_duration: 1, time_step: 0.1}",
		"tamsd delta too wide":        "{kind: tamsd, duration: 1, delta: 1, time_step: 0.1, quad_order: 4}",
		"eatamsd without particles":   "{kind: eatamsd, duration: 2, delta: 1, time_step: 0.1, quad_order: 4}",
		"fpt without domain":          "{kind: fpt, max_duration: 1, time_step: 0.1}",
		"fpt reversed domain":         "{kind: fpt, domain: [1, -1], max_duration: 1, time_step: 0.1}",
		"occupation without duration": "{kind: occupation_time, domain: [0, 1], time_step: 0.1}",
	}
	for name, stat := range cases {
		t.Run(name, func(t *testing.T) {
			doc := "name: x\nprocess: {kind: bm}\nstatistics: [" + stat + "]\n"
			_, err := scenario.Parse([]byte(doc))
			assert.ErrorIs(t, err, scenario.ErrInvalid)
		})
	}
}

func TestParse_LargestIntegerOrderAccepted(t *testing.T) {
	t.Parallel()

	doc := "name: x\nprocess: {kind: bm, params: {start: 2, D: 0}}\n" +
		"statistics: [{kind: raw_moment, order: 3, duration: 1, time_step: 0.5, particles: 2}," +
		" {kind: raw_moment, order: 2147483647, duration: 1, time_step: 0.5, particles: 2}]\n"
	s, err := scenario.Parse([]byte(doc))
	require.NoError(t, err)
	prov, err := s.Process.Provider()
	require.NoError(t, err)
	eng := montecarlo.New(montecarlo.WithSeed(1), montecarlo.WithPool(pool.New(1)))

	got, err := s.Statistics[0].Evaluate(context.Background(), eng, prov)
	require.NoError(t, err)
	assert.Equal(t, 8.0, got.Value)

	got, err = s.Statistics[1].Evaluate(context.Background(), eng, prov)
	require.NoError(t, err)
	assert.True(t, math.IsInf(got.Value, 1), "2^MaxInt32 overflows to +Inf, not a wrapped order")
}

func TestProcess_Provider(t *testing.T) {
	t.Parallel()

	p, err := scenario.Process{Kind: "ou", Params: map[string]float64{"theta": 2}}.Provider()
	require.NoError(t, err)
	assert.Equal(t, process.Ou{Theta: 2, Sigma: 1, Start: 0}, p)

	p, err = scenario.Process{Kind: "gbm"}.Provider()
	require.NoError(t, err)
	assert.Equal(t, process.Gbm{Mu: 0, Sigma: 1, Start: 1}, p)

	_, err = scenario.Process{Kind: "bm", Params: map[string]float64{"d": 1}}.Provider()
	assert.ErrorIs(t, err, scenario.ErrInvalid)

	_, err = scenario.Process{Kind: "bm", Params: map[string]float64{"D": -1}}.Provider()
	assert.ErrorIs(t, err, scenario.ErrInvalid)
	assert.ErrorIs(t, err, process.ErrInvalidParameter)

	_, err = scenario.Process{Kind: "cauchy"}.Provider()
	assert.ErrorIs(t, err, scenario.ErrUnknownKind)

	assert.Equal(t, []string{"D", "start"}, scenario.ParamNames("bm"))
}

func TestStatistic_EvaluateConstantProcess(t *testing.T) {
	t.Parallel()

	s, err := scenario.Parse([]byte(constantScenario))
	require.NoError(t, err)
	prov, err := s.Process.Provider()
	require.NoError(t, err)
	eng := montecarlo.New(montecarlo.WithSeed(*s.Seed), montecarlo.WithPool(pool.New(2)))

	want := []scenario.Outcome{
		{Value: 0.5, OK: true},
		{Value: 0, OK: true},
		{Value: 0, OK: true},
		{Value: 0.7071067811865476, OK: true},
		{Value: 0, OK: true},
		{Value: 0, OK: true},
		{Value: 0, OK: false},
		{Value: 0, OK: true},
		{Value: 2, OK: true},
		{Value: 0, OK: true},
	}
	require.Len(t, s.Statistics, len(want))
	for i := range s.Statistics {
		got, err := s.Statistics[i].Evaluate(context.Background(), eng, prov)
		require.NoError(t, err, s.Statistics[i].Kind)
		assert.Equal(t, want[i].OK, got.OK, s.Statistics[i].Kind)
		assert.InDelta(t, want[i].Value, got.Value, 1e-12, s.Statistics[i].Kind)
	}
}

func TestStatistic_EvaluateUnknownKind(t *testing.T) {
	t.Parallel()

	st := scenario.Statistic{Kind: "median", TimeStep: 0.1}
	_, err := st.Evaluate(context.Background(), montecarlo.New(), process.Bm{})
	assert.ErrorIs(t, err, scenario.ErrUnknownKind)
}

func TestKinds(t *testing.T) {
	t.Parallel()

	assert.Len(t, scenario.Kinds(), 14)
}

func TestFingerprint(t *testing.T) {
	t.Parallel()

	a, err := scenario.Parse([]byte(constantScenario))
	require.NoError(t, err)
	b, err := scenario.Parse([]byte("# reformatted\n" + constantScenario))
	require.NoError(t, err)

	fa, err := a.Fingerprint()
	require.NoError(t, err)
	fb, err := b.Fingerprint()
	require.NoError(t, err)
	assert.Len(t, fa, 64)
	assert.Equal(t, fa, fb)

	b.Statistics[0].Particles++
	fc, err := b.Fingerprint()
	require.NoError(t, err)
	assert.NotEqual(t, fa, fc)
}
