package model_problems

import (
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/james-bowman/sparse"

	"github.com/notargets/gosa/anneal"
)

// QUBO minimises x^T Q x over bit vectors x, with Q upper triangular and sparse.
type QUBO struct {
	N int
	Q *sparse.CSR
}

// NewMaxCutQUBO encodes the weighted max-cut of a random graph on n nodes,
// each edge present with probability density and weighted in [1, 2).
// E(x) = -(weight of the cut defined by x).
func NewMaxCutQUBO(n int, density float64, rng *rand.Rand) (q *QUBO, edges [][3]float64) {
	var (
		Q      = sparse.NewDOK(n, n)
		degree = make([]float64, n)
	)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if rng.Float64() >= density {
				continue
			}
			w := 1 + rng.Float64()
			edges = append(edges, [3]float64{float64(i), float64(j), w})
			Q.Set(i, j, 2*w)
			degree[i] += w
			degree[j] += w
		}
	}
	for i := 0; i < n; i++ {
		if degree[i] != 0 {
			Q.Set(i, i, -degree[i])
		}
	}
	q = &QUBO{N: n, Q: Q.ToCSR()}
	return
}

func (q *QUBO) Energy(x []int8) (e float64, err error) {
	if len(x) != q.N {
		err = fmt.Errorf("qubo: state has %d bits, want %d", len(x), q.N)
		return
	}
	q.Q.DoNonZero(func(i, j int, v float64) {
		if x[i] == 1 && x[j] == 1 {
			e += v
		}
	})
	return
}

// FlipNeighbour copies x and flips one random bit.
func (q *QUBO) FlipNeighbour(x []int8, _ float64, _ int, rng *rand.Rand) (y []int8, err error) {
	y = make([]int8, len(x))
	copy(y, x)
	i := rng.IntN(len(y))
	y[i] = 1 - y[i]
	return
}

func (q *QUBO) Problem() anneal.Problem[[]int8] {
	return anneal.Problem[[]int8]{
		Initial:   make([]int8, q.N),
		Energy:    q.Energy,
		Neighbour: q.FlipNeighbour,
	}
}

func (q *QUBO) Name() string { return "qubo" }

func (q *QUBO) Run(s anneal.Schedule, cfg anneal.Config, statusInterval int) (Summary, error) {
	return run(q.Name(), q.Problem(), s, cfg, statusInterval, BitString)
}

func BitString(x []int8) string {
	var b strings.Builder
	for _, v := range x {
		b.WriteByte('0' + byte(v))
	}
	return b.String()
}

// CutWeight is the total weight of edges whose endpoints fall on opposite sides.
func CutWeight(x []int8, edges [][3]float64) (w float64) {
	for _, e := range edges {
		if x[int(e[0])] != x[int(e[1])] {
			w += e[2]
		}
	}
	return
}
