// Package anneal approximates the global minimum of an energy function with
// simulated annealing. The caller supplies the state type, its energy, a
// neighbour generator and a cooling schedule; Driver runs the Metropolis loop
// and reports the best state found.
package anneal

import (
	"fmt"
	"math"
	"math/rand/v2"
	"time"
)

// Problem bundles the caller-supplied pieces of a search over states of type S.
type Problem[S any] struct {
	Initial S
	// Energy must be deterministic for a given state.
	Energy func(s S) (float64, error)
	// Neighbour proposes a candidate near s. It must not mutate s and must draw
	// its randomness from rng only.
	Neighbour func(s S, temperature float64, k int, rng *rand.Rand) (S, error)
	// Feasible is optional; candidates it rejects are discarded unevaluated.
	Feasible func(s S) bool
}

// Config holds the termination policy and the seed. Nil pointers are unset.
type Config struct {
	MaxIterations    int
	EnergyThreshold  *float64
	StagnationWindow *int
	Seed             *uint64
}

func (c Config) Validate() error {
	if c.MaxIterations <= 0 {
		return configErrorf("MaxIterations", "must be positive, got %d", c.MaxIterations)
	}
	if c.StagnationWindow != nil && *c.StagnationWindow <= 0 {
		return configErrorf("StagnationWindow", "must be positive when set, got %d", *c.StagnationWindow)
	}
	if c.EnergyThreshold != nil && math.IsNaN(*c.EnergyThreshold) {
		return configErrorf("EnergyThreshold", "must not be NaN")
	}
	return nil
}

type Option[S any] func(d *Driver[S])

// WithRand injects the generator used for neighbours and acceptance draws.
// It takes precedence over Config.Seed.
func WithRand[S any](rng *rand.Rand) Option[S] {
	return func(d *Driver[S]) { d.rng = rng }
}

func WithObserver[S any](obs Observer[S]) Option[S] {
	return func(d *Driver[S]) { d.observer = obs }
}

func WithAcceptance[S any](a Acceptance) Option[S] {
	return func(d *Driver[S]) { d.acceptance = a }
}

type driverState uint8

const (
	initialized driverState = iota
	running
	terminated
)

// Driver runs a single annealing search. It is single use: a second call to
// Run returns ErrDriverUsed.
type Driver[S any] struct {
	problem    Problem[S]
	schedule   Schedule
	config     Config
	rng        *rand.Rand
	observer   Observer[S]
	acceptance Acceptance
	state      driverState

	current, best             S
	currentEnergy, bestEnergy float64
	stagnation                int
	report                    Report[S]
}

func NewDriver[S any](problem Problem[S], schedule Schedule, config Config, opts ...Option[S]) (d *Driver[S]) {
	d = &Driver[S]{
		problem:    problem,
		schedule:   schedule,
		config:     config,
		acceptance: Metropolis{},
	}
	for _, opt := range opts {
		opt(d)
	}
	return
}

// Minimize is NewDriver followed by Run.
func Minimize[S any](problem Problem[S], schedule Schedule, config Config, opts ...Option[S]) (Report[S], error) {
	return NewDriver(problem, schedule, config, opts...).Run()
}

func (d *Driver[S]) validate() error {
	if err := d.config.Validate(); err != nil {
		return err
	}
	switch {
	case d.problem.Energy == nil:
		return configErrorf("Energy", "function is required")
	case d.problem.Neighbour == nil:
		return configErrorf("Neighbour", "function is required")
	case d.schedule == nil:
		return configErrorf("Schedule", "is required")
	case d.acceptance == nil:
		return configErrorf("Acceptance", "must not be nil")
	}
	if v, ok := d.schedule.(Validator); ok {
		if err := v.Validate(); err != nil {
			return err
		}
	}
	if d.problem.Feasible != nil && !d.problem.Feasible(d.problem.Initial) {
		return configErrorf("Initial", "state is not feasible")
	}
	return nil
}

// Run executes the search. Configuration is validated before the energy
// function is first called. On error no report is produced.
func (d *Driver[S]) Run() (report Report[S], err error) {
	if d.state != initialized {
		err = ErrDriverUsed
		return
	}
	d.state = running
	defer func() { d.state = terminated }()

	if err = d.validate(); err != nil {
		return
	}
	if d.rng == nil {
		seed := uint64(time.Now().UnixNano())
		if d.config.Seed != nil {
			seed = *d.config.Seed
		}
		d.rng = rand.New(rand.NewPCG(seed, seed))
	}

	d.current = d.problem.Initial
	if d.currentEnergy, err = d.energy(d.current, 0); err != nil {
		return
	}
	d.best, d.bestEnergy = d.current, d.currentEnergy
	d.report.InitialEnergy = d.currentEnergy

	var (
		reason = NotTerminated
		T      = d.schedule.Temperature(0)
	)
	if d.thresholdReached() {
		reason = Threshold
	}
	for k := 0; reason == NotTerminated; k++ {
		if T = d.schedule.Temperature(k); !validTemperature(T) {
			err = fmt.Errorf("%w: T(%d) = %v", ErrInvalidTemperature, k, T)
			return
		}
		var keepGoing bool
		if keepGoing, err = d.step(k, T); err != nil {
			return
		}
		reason = d.terminate(k+1, keepGoing)
	}
	d.report.Iterations = d.report.Accepted + d.report.Rejected + d.report.Infeasible
	d.report.BestState, d.report.BestEnergy = d.best, d.bestEnergy
	d.report.FinalEnergy = d.currentEnergy
	d.report.FinalTemperature = T
	d.report.Reason = reason
	report = d.report
	return
}

// step performs iteration k at temperature T.
func (d *Driver[S]) step(k int, T float64) (keepGoing bool, err error) {
	var (
		candidate       S
		candidateEnergy float64
		accepted        bool
		feasible        = true
	)
	if candidate, err = d.problem.Neighbour(d.current, T, k, d.rng); err != nil {
		err = fmt.Errorf("anneal: neighbour function at iteration %d: %w", k, err)
		return
	}
	if d.problem.Feasible != nil && !d.problem.Feasible(candidate) {
		feasible = false
		d.report.Infeasible++
		d.stagnation++
	} else {
		if candidateEnergy, err = d.energy(candidate, k); err != nil {
			return
		}
		u := d.rng.Float64()
		if accepted = d.acceptance.Accept(d.currentEnergy, candidateEnergy, T, u); accepted {
			d.report.Accepted++
			d.current, d.currentEnergy = candidate, candidateEnergy
			if candidateEnergy < d.bestEnergy {
				d.best, d.bestEnergy = candidate, candidateEnergy
				d.report.Improvements++
				d.stagnation = 0
			} else {
				d.stagnation++
			}
		} else {
			d.report.Rejected++
			d.stagnation++
		}
	}
	keepGoing = true
	if d.observer != nil {
		keepGoing = d.observer(Progress[S]{
			Iteration:     k + 1,
			Temperature:   T,
			Current:       d.current,
			CurrentEnergy: d.currentEnergy,
			Best:          d.best,
			BestEnergy:    d.bestEnergy,
			Accepted:      accepted,
			Feasible:      feasible,
			Stagnation:    d.stagnation,
		})
	}
	return
}

// terminate applies the priority Threshold > Stagnation > CallerStop > IterationBudget.
func (d *Driver[S]) terminate(iterations int, keepGoing bool) Termination {
	switch {
	case d.thresholdReached():
		return Threshold
	case d.config.StagnationWindow != nil && d.stagnation >= *d.config.StagnationWindow:
		return Stagnation
	case !keepGoing:
		return CallerStop
	case iterations >= d.config.MaxIterations:
		return IterationBudget
	}
	return NotTerminated
}

func (d *Driver[S]) thresholdReached() bool {
	return d.config.EnergyThreshold != nil && d.bestEnergy <= *d.config.EnergyThreshold
}

func (d *Driver[S]) energy(s S, k int) (e float64, err error) {
	if e, err = d.problem.Energy(s); err != nil {
		err = fmt.Errorf("anneal: energy function at iteration %d: %w", k, err)
		return
	}
	if math.IsNaN(e) {
		err = fmt.Errorf("%w at iteration %d", ErrNaNEnergy, k)
	}
	return
}
