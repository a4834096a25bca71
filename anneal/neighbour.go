package anneal

import (
	"fmt"
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"
)

// Bounds is a box [Lo, Hi] per coordinate of a []float64 state.
type Bounds [][2]float64

func (b Bounds) Contains(x []float64) bool {
	if len(x) != len(b) {
		return false
	}
	for i, r := range b {
		if !(x[i] >= r[0] && x[i] <= r[1]) {
			return false
		}
	}
	return true
}

func (b Bounds) Validate() error {
	for i, r := range b {
		if math.IsNaN(r[0]) || math.IsNaN(r[1]) || r[0] > r[1] {
			return configErrorf("Bounds", "coordinate %d has an empty range [%v, %v]", i, r[0], r[1])
		}
	}
	return nil
}

// Clamp returns a copy of x with every coordinate clipped into the box.
func (b Bounds) Clamp(x []float64) (y []float64) {
	y = make([]float64, len(x))
	for i := range x {
		y[i] = math.Min(math.Max(x[i], b[i][0]), b[i][1])
	}
	return
}

// GaussianNeighbour samples each coordinate from a normal distribution centred
// on the current value. Samples falling outside Bounds are redrawn up to
// MaxRedraws times and then clamped. With TemperatureScale set the standard
// deviation is Sigma*sqrt(T/TemperatureScale), so steps shrink as the search
// cools.
type GaussianNeighbour struct {
	Sigma            float64
	Bounds           Bounds
	MaxRedraws       int
	TemperatureScale float64
}

const defaultMaxRedraws = 100

func (g GaussianNeighbour) sigma(T float64) float64 {
	if g.TemperatureScale > 0 {
		return g.Sigma * math.Sqrt(T/g.TemperatureScale)
	}
	return g.Sigma
}

// Neighbour has the signature of Problem.Neighbour for []float64 states.
func (g GaussianNeighbour) Neighbour(x []float64, T float64, _ int, rng *rand.Rand) (y []float64, err error) {
	sd := g.sigma(T)
	if math.IsNaN(sd) || math.IsInf(sd, 0) || sd < 0 {
		err = fmt.Errorf("gaussian neighbour: standard deviation %v is not finite", sd)
		return
	}
	if g.Bounds != nil && len(g.Bounds) != len(x) {
		err = fmt.Errorf("gaussian neighbour: %d bounds for a %d dimensional state", len(g.Bounds), len(x))
		return
	}
	redraws := g.MaxRedraws
	if redraws <= 0 {
		redraws = defaultMaxRedraws
	}
	y = make([]float64, len(x))
	for i, c := range x {
		if sd == 0 {
			y[i] = c
			continue
		}
		d := distuv.Normal{Mu: c, Sigma: sd, Src: rng}
		s := d.Rand()
		if g.Bounds != nil {
			lo, hi := g.Bounds[i][0], g.Bounds[i][1]
			for n := 0; n < redraws && (s < lo || s > hi); n++ {
				s = d.Rand()
			}
			s = math.Min(math.Max(s, lo), hi)
		}
		y[i] = s
	}
	return
}
