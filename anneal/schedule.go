package anneal

import (
	"math"
	"strings"
)

// Schedule maps an iteration index to a temperature. Implementations must be
// pure: the same k always yields the same temperature.
type Schedule interface {
	Temperature(k int) float64
}

// Validator is implemented by schedules whose parameters can be checked up front.
type Validator interface {
	Validate() error
}

// Exponential: T(k) = T0 * Alpha^k
type Exponential struct {
	T0, Alpha float64
}

func NewExponential(T0, alpha float64) (s Exponential, err error) {
	s = Exponential{T0: T0, Alpha: alpha}
	err = s.Validate()
	return
}

func (s Exponential) Temperature(k int) float64 {
	return s.T0 * math.Pow(s.Alpha, float64(k))
}

func (s Exponential) Validate() error {
	if !(s.T0 > 0) || math.IsInf(s.T0, 1) {
		return configErrorf("T0", "must be positive and finite, got %v", s.T0)
	}
	if !(s.Alpha > 0 && s.Alpha < 1) {
		return configErrorf("Alpha", "must lie in (0,1), got %v", s.Alpha)
	}
	return nil
}

// Linear: T(k) = max(TMin, T0 - k*Delta)
type Linear struct {
	T0, Delta, TMin float64
}

func NewLinear(T0, delta, TMin float64) (s Linear, err error) {
	s = Linear{T0: T0, Delta: delta, TMin: TMin}
	err = s.Validate()
	return
}

func (s Linear) Temperature(k int) float64 {
	return math.Max(s.TMin, s.T0-float64(k)*s.Delta)
}

func (s Linear) Validate() error {
	switch {
	case !(s.T0 > 0) || math.IsInf(s.T0, 1):
		return configErrorf("T0", "must be positive and finite, got %v", s.T0)
	case !(s.Delta >= 0) || math.IsInf(s.Delta, 1):
		return configErrorf("Delta", "must be non-negative and finite, got %v", s.Delta)
	case !(s.TMin >= 0) || s.TMin > s.T0:
		return configErrorf("TMin", "must lie in [0, T0], got %v", s.TMin)
	}
	return nil
}

// Logarithmic: T(k) = T0 / ln(k + e), the slow classical schedule. T(0) = T0.
type Logarithmic struct {
	T0 float64
}

func NewLogarithmic(T0 float64) (s Logarithmic, err error) {
	s = Logarithmic{T0: T0}
	err = s.Validate()
	return
}

func (s Logarithmic) Temperature(k int) float64 {
	return s.T0 / math.Log(float64(k)+math.E)
}

func (s Logarithmic) Validate() error {
	if !(s.T0 > 0) || math.IsInf(s.T0, 1) {
		return configErrorf("T0", "must be positive and finite, got %v", s.T0)
	}
	return nil
}

// Fast: T(k) = T0 / (k + 1)
type Fast struct {
	T0 float64
}

func NewFast(T0 float64) (s Fast, err error) {
	s = Fast{T0: T0}
	err = s.Validate()
	return
}

func (s Fast) Temperature(k int) float64 {
	return s.T0 / float64(k+1)
}

func (s Fast) Validate() error {
	if !(s.T0 > 0) || math.IsInf(s.T0, 1) {
		return configErrorf("T0", "must be positive and finite, got %v", s.T0)
	}
	return nil
}

// ScheduleFunc adapts a plain function to a Schedule. Its output is checked
// on every iteration rather than up front.
type ScheduleFunc func(k int) float64

func (f ScheduleFunc) Temperature(k int) float64 { return f(k) }

// ScheduleParameters is the union of parameters used by the named schedules.
type ScheduleParameters struct {
	T0    float64
	Alpha float64
	Delta float64
	TMin  float64
}

// NewSchedule builds a validated schedule by name: exponential, linear,
// logarithmic or fast.
func NewSchedule(kind string, p ScheduleParameters) (s Schedule, err error) {
	switch strings.ToLower(strings.TrimSpace(kind)) {
	case "exponential", "exp":
		return NewExponential(p.T0, p.Alpha)
	case "linear":
		return NewLinear(p.T0, p.Delta, p.TMin)
	case "logarithmic", "log":
		return NewLogarithmic(p.T0)
	case "fast":
		return NewFast(p.T0)
	}
	return nil, configErrorf("Schedule", "unknown schedule type %q", kind)
}

// validTemperature holds for finite, non-negative temperatures.
func validTemperature(t float64) bool {
	return !math.IsNaN(t) && !math.IsInf(t, 0) && t >= 0
}
