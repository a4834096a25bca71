package model_problems

import (
	"fmt"
	"math/rand/v2"
	"os"
	"strings"

	"github.com/notargets/gosa/InputParameters"
	"github.com/notargets/gosa/anneal"
)

type Model interface {
	Name() string
	Run(s anneal.Schedule, cfg anneal.Config, statusInterval int) (Summary, error)
}

// Summary is a type-erased view of an anneal.Report for printing and sweeps.
type Summary struct {
	Name           string
	BestEnergy     float64
	BestState      string
	Iterations     int
	Reason         anneal.Termination
	AcceptanceRate float64
	Report         string
}

func (s Summary) Print() {
	fmt.Printf("Problem: %s\n", s.Name)
	fmt.Printf("Termination: %s after %d iterations\n", s.Reason, s.Iterations)
	fmt.Printf("Best energy: %12.8g\n", s.BestEnergy)
	fmt.Printf("Best state: %s\n", s.BestState)
	fmt.Printf("Acceptance rate: %6.4f\n", s.AcceptanceRate)
}

func run[S any](name string, p anneal.Problem[S], s anneal.Schedule, cfg anneal.Config,
	statusInterval int, format func(S) string) (sum Summary, err error) {
	var opts []anneal.Option[S]
	if statusInterval > 0 {
		opts = append(opts, anneal.WithObserver(anneal.Periodic[S](os.Stdout, statusInterval)))
	}
	var r anneal.Report[S]
	if r, err = anneal.Minimize(p, s, cfg, opts...); err != nil {
		return
	}
	sum = Summary{
		Name:           name,
		BestEnergy:     r.BestEnergy,
		BestState:      format(r.BestState),
		Iterations:     r.Iterations,
		Reason:         r.Reason,
		AcceptanceRate: r.AcceptanceRate(),
		Report:         r.String(),
	}
	return
}

var ProblemNames = []string{"sphere", "rastrigin", "rosenbrock", "logtrig", "quadratic", "qubo"}

// NewModel builds the problem named in the input parameters. Each call
// returns an independent instance, safe to run alongside others.
func NewModel(ip *InputParameters.AnnealParameters) (m Model, err error) {
	var (
		name   = strings.ToLower(ip.Problem)
		dim    = ip.Dimension
		sigma  = ip.Sigma
		bounds = anneal.Bounds(ip.Bounds)
	)
	if dim <= 0 {
		dim = len(ip.Bounds)
	}
	if dim <= 0 {
		dim = 2
	}
	if sigma == 0 {
		sigma = 0.5
	}
	defaultBounds := func(lo, hi float64) anneal.Bounds {
		if bounds != nil {
			return bounds
		}
		b := make(anneal.Bounds, dim)
		for i := range b {
			b[i] = [2]float64{lo, hi}
		}
		return b
	}
	initial := func(b anneal.Bounds) (x []float64, err error) {
		if len(b) != dim {
			err = fmt.Errorf("%d bounds given for a %d dimensional %s problem", len(b), dim, name)
			return
		}
		if ip.Initial != nil {
			x = append([]float64(nil), ip.Initial...)
		} else {
			x = make([]float64, dim)
			for i := range x {
				x[i] = b[i][1] - 0.1*(b[i][1]-b[i][0])
			}
		}
		if len(x) != len(b) {
			err = fmt.Errorf("initial state has %d coordinates, bounds have %d", len(x), len(b))
		}
		return
	}
	continuous := func(F func([]float64) float64, b anneal.Bounds) (Model, error) {
		x, err := initial(b)
		if err != nil {
			return nil, err
		}
		return NewContinuous(name, F, x, b, sigma, ip.TemperatureScale), nil
	}
	switch name {
	case "sphere":
		target := ip.Target
		if target == nil {
			target = make([]float64, dim)
		}
		dim = len(target)
		return continuous(Sphere(target), defaultBounds(-10, 10))
	case "rastrigin":
		return continuous(Rastrigin, defaultBounds(-5.12, 5.12))
	case "rosenbrock":
		return continuous(Rosenbrock, defaultBounds(-2.048, 2.048))
	case "logtrig":
		dim = 1
		return continuous(LogTrig, defaultBounds(1, 27.8))
	case "quadratic":
		center := ip.Target
		if center == nil {
			center = make([]float64, dim)
			for i := range center {
				center[i] = float64(i) - float64(dim)/2
			}
		}
		dim = len(center)
		q := NewQuadratic(center, rand.New(rand.NewPCG(uint64(dim), 7)))
		return continuous(q.Energy, defaultBounds(-10, 10))
	case "qubo":
		density := ip.Density
		if density <= 0 {
			density = 0.3
		}
		if ip.Dimension <= 0 {
			dim = 32
		}
		q, _ := NewMaxCutQUBO(dim, density, rand.New(rand.NewPCG(uint64(dim), 13)))
		return q, nil
	}
	err = fmt.Errorf("unknown problem %q, must be one of %v", ip.Problem, ProblemNames)
	return
}
