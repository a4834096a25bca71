package anneal

import (
	"fmt"
	"io"
)

type Termination uint8

const (
	NotTerminated Termination = iota
	Threshold
	Stagnation
	CallerStop
	IterationBudget
)

var terminationNames = []string{
	"NotTerminated",
	"Threshold",
	"Stagnation",
	"CallerStop",
	"IterationBudget",
}

func (t Termination) String() string {
	if int(t) < len(terminationNames) {
		return terminationNames[t]
	}
	return fmt.Sprintf("Termination(%d)", t)
}

// Report is the outcome of a completed run. It is produced once, at loop exit.
type Report[S any] struct {
	BestState        S
	BestEnergy       float64
	Iterations       int // Completed loop passes, never more than MaxIterations
	Reason           Termination
	InitialEnergy    float64
	FinalEnergy      float64 // Energy of the current state at exit
	FinalTemperature float64
	Accepted         int
	Rejected         int
	Infeasible       int // Candidates discarded by the feasibility predicate
	Improvements     int // Updates of the best-so-far record
}

// AcceptanceRate is the fraction of evaluated candidates that were accepted.
func (r Report[S]) AcceptanceRate() float64 {
	evaluated := r.Accepted + r.Rejected
	if evaluated == 0 {
		return 0
	}
	return float64(r.Accepted) / float64(evaluated)
}

func (r Report[S]) String() string {
	return fmt.Sprintf("reason: %s after %d iterations\nbest: %v at %v\ninitial: %v, final: %v, T: %v\naccepted: %d, rejected: %d, infeasible: %d, improvements: %d",
		r.Reason, r.Iterations, r.BestEnergy, r.BestState, r.InitialEnergy, r.FinalEnergy, r.FinalTemperature,
		r.Accepted, r.Rejected, r.Infeasible, r.Improvements)
}

// Progress is the driver's view after each completed iteration.
type Progress[S any] struct {
	Iteration     int // 1-based count of completed iterations
	Temperature   float64
	Current       S
	CurrentEnergy float64
	Best          S
	BestEnergy    float64
	Accepted      bool
	Feasible      bool
	Stagnation    int
}

// Observer is called after every iteration. Returning false asks the driver to
// stop, which is recorded as CallerStop unless a higher priority condition
// holds on the same iteration. Observers must not retain or mutate the states.
type Observer[S any] func(p Progress[S]) (keepGoing bool)

// Periodic prints the status every `every` iterations.
func Periodic[S any](w io.Writer, every int) Observer[S] {
	if every <= 0 {
		every = 1
	}
	return func(p Progress[S]) bool {
		if p.Iteration%every == 0 {
			fmt.Fprintf(w, "k: %d\tt: %8.5g\tcurrent: %12.8g\tbest: %12.8g at %v\n",
				p.Iteration, p.Temperature, p.CurrentEnergy, p.BestEnergy, p.Best)
		}
		return true
	}
}
