package anneal

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMetropolis(t *testing.T) {
	var (
		m     Metropolis
		rng   = rand.New(rand.NewPCG(1, 2))
		draws = []float64{0, 0.25, 0.5, 0.999999}
	)
	{ // Improvements and ties are always accepted
		for i := 0; i < 1000; i++ {
			u := rng.Float64()
			assert.True(t, m.Accept(5, 4, rng.Float64()*10, u))
			assert.True(t, m.Accept(5, 5, rng.Float64()*10, u))
		}
		for _, u := range draws {
			assert.True(t, m.Accept(1, -1, 0, u))
		}
	}
	{ // Zero temperature is greedy descent
		for _, u := range draws {
			assert.True(t, m.Accept(2, 2, 0, u))
			assert.True(t, m.Accept(2, 1, 0, u))
			assert.False(t, m.Accept(2, 2.000001, 0, u))
			assert.False(t, m.Accept(2, 1.e9, 0, u))
		}
	}
	{ // Probability exp(-dE/T)
		p := math.Exp(-1)
		assert.True(t, m.Accept(0, 1, 1, p-1.e-9))
		assert.False(t, m.Accept(0, 1, 1, p))
		assert.False(t, m.Accept(0, 1, 1, 0.9))
		assert.True(t, m.Accept(0, 2, 4, 0.6))
		assert.False(t, m.Accept(0, 2, 4, 0.61))
	}
	{ // Infinite temperature degenerates to a random walk
		for _, u := range draws {
			assert.True(t, m.Accept(0, 1.e12, math.Inf(1), u))
		}
	}
}

func TestMetropolisAcceptanceFrequency(t *testing.T) {
	var (
		m        Metropolis
		rng      = rand.New(rand.NewPCG(42, 42))
		n        = 200000
		accepted int
	)
	for i := 0; i < n; i++ {
		if m.Accept(1, 1.5, 1, rng.Float64()) {
			accepted++
		}
	}
	assert.InDelta(t, math.Exp(-0.5), float64(accepted)/float64(n), 0.01)
}

func TestAcceptanceFunc(t *testing.T) {
	never := AcceptanceFunc(func(_, _, _, _ float64) bool { return false })
	assert.False(t, never.Accept(1, 0, 1, 0))
}
