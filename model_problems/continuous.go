package model_problems

import (
	"fmt"
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/notargets/gosa/anneal"
)

// Continuous is a box-bounded minimisation over []float64 states.
type Continuous struct {
	name      string
	F         func(x []float64) float64
	Initial   []float64
	Bounds    anneal.Bounds
	Neighbour anneal.GaussianNeighbour
}

func (c *Continuous) Name() string { return c.name }

func (c *Continuous) Problem() anneal.Problem[[]float64] {
	p := anneal.Problem[[]float64]{
		Initial: c.Initial,
		Energy: func(x []float64) (float64, error) {
			return c.F(x), nil
		},
		Neighbour: c.Neighbour.Neighbour,
	}
	if c.Bounds != nil {
		p.Feasible = c.Bounds.Contains
	}
	return p
}

func (c *Continuous) Run(s anneal.Schedule, cfg anneal.Config, statusInterval int) (Summary, error) {
	return run(c.name, c.Problem(), s, cfg, statusInterval, func(x []float64) string {
		return fmt.Sprintf("%.8g", x)
	})
}

func NewContinuous(name string, F func(x []float64) float64, initial []float64,
	bounds anneal.Bounds, sigma, temperatureScale float64) (c *Continuous) {
	c = &Continuous{
		name:    name,
		F:       F,
		Initial: initial,
		Bounds:  bounds,
		Neighbour: anneal.GaussianNeighbour{
			Sigma:            sigma,
			Bounds:           bounds,
			TemperatureScale: temperatureScale,
		},
	}
	return
}

// Sphere is the squared distance from target.
func Sphere(target []float64) func(x []float64) float64 {
	diff := make([]float64, len(target))
	return func(x []float64) float64 {
		floats.SubTo(diff, x, target)
		return floats.Dot(diff, diff)
	}
}

// Rastrigin has a global minimum of 0 at the origin and a regular lattice of local minima.
func Rastrigin(x []float64) (f float64) {
	f = 10 * float64(len(x))
	for _, xi := range x {
		f += xi*xi - 10*math.Cos(2*math.Pi*xi)
	}
	return
}

// Rosenbrock has a global minimum of 0 at (1, 1, ..., 1).
func Rosenbrock(x []float64) (f float64) {
	for i := 0; i < len(x)-1; i++ {
		a, b := x[i+1]-x[i]*x[i], 1-x[i]
		f += 100*a*a + b*b
	}
	return
}

// LogTrig is ln(x)(sin x + cos x), one dimensional. On [1, 27.8] its
// minimum lies at x = 22.79058066.
func LogTrig(x []float64) float64 {
	return math.Log(x[0]) * (math.Sin(x[0]) + math.Cos(x[0]))
}

// Quadratic is the form (x-c)^T A (x-c) with A symmetric positive definite.
type Quadratic struct {
	A      *mat.SymDense
	Center []float64
	d      *mat.VecDense
}

// NewQuadratic builds a random diagonally dominant SPD matrix of order n.
func NewQuadratic(center []float64, rng *rand.Rand) (q *Quadratic) {
	var (
		n = len(center)
		A = mat.NewSymDense(n, nil)
	)
	for i := 0; i < n; i++ {
		var rowSum float64
		for j := i + 1; j < n; j++ {
			v := rng.Float64() - 0.5
			A.SetSym(i, j, v)
		}
		for j := 0; j < n; j++ {
			if j != i {
				rowSum += math.Abs(A.At(i, j))
			}
		}
		A.SetSym(i, i, 1+rowSum+float64(i))
	}
	q = &Quadratic{
		A:      A,
		Center: center,
		d:      mat.NewVecDense(n, nil),
	}
	return
}

func (q *Quadratic) Energy(x []float64) float64 {
	for i := range x {
		q.d.SetVec(i, x[i]-q.Center[i])
	}
	return mat.Inner(q.d, q.A, q.d)
}
