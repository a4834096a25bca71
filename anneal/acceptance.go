package anneal

import "math"

// Acceptance decides whether the search moves to a candidate, given the
// current and candidate energies, the temperature and a uniform draw in [0,1).
type Acceptance interface {
	Accept(current, candidate, temperature, u float64) bool
}

// Metropolis criterion:
//
//	P = 1                        if candidate <= current
//	P = exp(-(candidate-current)/T) otherwise
//
// At T == 0 any increase is rejected, which gives greedy descent.
type Metropolis struct{}

func (Metropolis) Accept(current, candidate, temperature, u float64) bool {
	if candidate <= current {
		return true
	}
	if temperature == 0 {
		return false
	}
	return u < math.Exp(-(candidate-current)/temperature)
}

// AcceptanceFunc adapts a plain function to an Acceptance.
type AcceptanceFunc func(current, candidate, temperature, u float64) bool

func (f AcceptanceFunc) Accept(current, candidate, temperature, u float64) bool {
	return f(current, candidate, temperature, u)
}
