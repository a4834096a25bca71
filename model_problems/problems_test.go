package model_problems

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notargets/gosa/InputParameters"
	"github.com/notargets/gosa/anneal"
)

func ptr[T any](v T) *T { return &v }

func TestObjectives(t *testing.T) {
	{
		f := Sphere([]float64{1, 2})
		assert.Equal(t, 0., f([]float64{1, 2}))
		assert.Equal(t, 5., f([]float64{0, 0}))
	}
	assert.InDelta(t, 0., Rastrigin([]float64{0, 0, 0}), 1.e-12)
	assert.InDelta(t, 1., Rastrigin([]float64{1}), 1.e-12)
	assert.Equal(t, 0., Rosenbrock([]float64{1, 1, 1}))
	assert.Equal(t, 101., Rosenbrock([]float64{0, 1}))
	{ // LogTrig is stationary at its minimum
		x0, h := 22.79058066, 1.e-5
		f0 := LogTrig([]float64{x0})
		assert.Less(t, f0, LogTrig([]float64{x0 - h}))
		assert.Less(t, f0, LogTrig([]float64{x0 + h}))
		assert.Less(t, f0, -4.3)
	}
	{ // Quadratic is zero at the centre and positive elsewhere
		q := NewQuadratic([]float64{1, -1, 3}, rand.New(rand.NewPCG(1, 1)))
		assert.InDelta(t, 0., q.Energy([]float64{1, -1, 3}), 1.e-12)
		rng := rand.New(rand.NewPCG(2, 2))
		for i := 0; i < 100; i++ {
			x := []float64{rng.Float64(), rng.Float64(), rng.Float64()}
			assert.Greater(t, q.Energy(x), 0.)
		}
	}
}

func TestQUBOMaxCut(t *testing.T) {
	var (
		n        = 10
		q, edges = NewMaxCutQUBO(n, 0.5, rand.New(rand.NewPCG(5, 5)))
		rng      = rand.New(rand.NewPCG(6, 6))
		bestE    = math.Inf(1)
	)
	require.NotEmpty(t, edges)
	{ // The energy is minus the cut weight
		for i := 0; i < 50; i++ {
			x := make([]int8, n)
			for j := range x {
				x[j] = int8(rng.IntN(2))
			}
			e, err := q.Energy(x)
			require.NoError(t, err)
			assert.InDelta(t, -CutWeight(x, edges), e, 1.e-9)
		}
		_, err := q.Energy(make([]int8, n+1))
		assert.Error(t, err)
	}
	{ // Exhaustive minimum
		x := make([]int8, n)
		for m := 0; m < 1<<n; m++ {
			for j := range x {
				x[j] = int8(m >> j & 1)
			}
			e, _ := q.Energy(x)
			bestE = math.Min(bestE, e)
		}
	}
	{ // Annealing finds it
		report, err := anneal.Minimize(q.Problem(), anneal.Exponential{T0: 2, Alpha: 0.9995},
			anneal.Config{MaxIterations: 20000, Seed: ptr(uint64(17))})
		require.NoError(t, err)
		assert.InDelta(t, bestE, report.BestEnergy, 1.e-9)
		assert.InDelta(t, -bestE, CutWeight(report.BestState, edges), 1.e-9)
	}
	{ // Flipping never mutates the current state
		x := make([]int8, n)
		y, err := q.FlipNeighbour(x, 1, 0, rng)
		require.NoError(t, err)
		assert.Equal(t, make([]int8, n), x)
		var flipped int
		for i := range y {
			flipped += int(y[i])
		}
		assert.Equal(t, 1, flipped)
	}
	assert.Equal(t, "0110", BitString([]int8{0, 1, 1, 0}))
}

func TestLogTrigMinimum(t *testing.T) {
	m := NewContinuous("logtrig", LogTrig, []float64{2}, anneal.Bounds{{1, 27.8}}, 3, 10)
	report, err := anneal.Minimize(m.Problem(), anneal.Exponential{T0: 10, Alpha: 0.9995},
		anneal.Config{MaxIterations: 20000, Seed: ptr(uint64(1))})
	require.NoError(t, err)
	assert.Less(t, report.BestEnergy, -4.3)
	assert.InDelta(t, 22.79058066, report.BestState[0], 0.35)
	assert.True(t, m.Bounds.Contains(report.BestState))
}

func TestNewModel(t *testing.T) {
	base := func(problem string) *InputParameters.AnnealParameters {
		return &InputParameters.AnnealParameters{
			Problem:       problem,
			Schedule:      "exponential",
			T0:            1,
			Alpha:         0.999,
			MaxIterations: 2000,
			Seed:          ptr(uint64(3)),
		}
	}
	for _, name := range ProblemNames {
		ip := base(name)
		m, err := NewModel(ip)
		require.NoError(t, err, name)
		assert.Equal(t, name, m.Name())
		s, err := ip.NewSchedule()
		require.NoError(t, err)
		sum, err := m.Run(s, ip.Config(), 0)
		require.NoError(t, err, name)
		assert.Equal(t, anneal.IterationBudget, sum.Reason, name)
		assert.Equal(t, 2000, sum.Iterations, name)
		assert.NotEmpty(t, sum.BestState, name)
	}
	{ // Sphere reaches a threshold near its target
		ip := base("sphere")
		ip.Target = []float64{1, 2}
		ip.TemperatureScale = 1
		ip.MaxIterations = 50000
		ip.EnergyThreshold = ptr(1.e-3)
		m, err := NewModel(ip)
		require.NoError(t, err)
		s, _ := ip.NewSchedule()
		sum, err := m.Run(s, ip.Config(), 0)
		require.NoError(t, err)
		assert.Equal(t, anneal.Threshold, sum.Reason)
		assert.LessOrEqual(t, sum.BestEnergy, 1.e-3)
	}
	{
		_, err := NewModel(base("travelling-salesman"))
		assert.Error(t, err)
		ip := base("rastrigin")
		ip.Bounds = [][2]float64{{-1, 1}, {-1, 1}}
		ip.Initial = []float64{0.5}
		_, err = NewModel(ip)
		assert.Error(t, err)
	}
}
