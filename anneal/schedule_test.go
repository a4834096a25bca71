package anneal

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchedules(t *testing.T) {
	{ // Exponential
		s, err := NewExponential(100, 0.5)
		require.NoError(t, err)
		assert.Equal(t, 100., s.Temperature(0))
		assert.Equal(t, 50., s.Temperature(1))
		assert.Equal(t, 12.5, s.Temperature(3))
	}
	{ // Linear never goes below TMin
		s, err := NewLinear(10, 2, 1)
		require.NoError(t, err)
		assert.Equal(t, 10., s.Temperature(0))
		assert.Equal(t, 6., s.Temperature(2))
		assert.Equal(t, 2., s.Temperature(4))
		assert.Equal(t, 1., s.Temperature(5))
		assert.Equal(t, 1., s.Temperature(1000))
	}
	{ // Logarithmic starts at T0 and cools slowly
		s, err := NewLogarithmic(10)
		require.NoError(t, err)
		assert.InDelta(t, 10., s.Temperature(0), 1.e-12)
		assert.InDelta(t, 10./math.Log(10+math.E), s.Temperature(10), 1.e-12)
		assert.Greater(t, s.Temperature(1000), 1.)
	}
	{ // Fast
		s, err := NewFast(12)
		require.NoError(t, err)
		assert.Equal(t, 12., s.Temperature(0))
		assert.Equal(t, 4., s.Temperature(2))
	}
	{ // Pure: same index, same temperature
		s := Exponential{T0: 3, Alpha: 0.97}
		for k := 0; k < 100; k++ {
			assert.Equal(t, s.Temperature(k), s.Temperature(k))
		}
	}
}

func TestScheduleTemperatureIsFiniteAndNonNegative(t *testing.T) {
	var (
		maxIterations = 100000
		schedules     = []Schedule{
			Exponential{T0: 1000, Alpha: 0.9},
			Exponential{T0: 1.e-3, Alpha: 0.999999},
			Linear{T0: 50, Delta: 0.01, TMin: 0},
			Linear{T0: 50, Delta: 1000, TMin: 0.5},
			Logarithmic{T0: 1.e6},
			Fast{T0: 1},
		}
	)
	for _, s := range schedules {
		for k := 0; k < maxIterations; k++ {
			T := s.Temperature(k)
			if math.IsNaN(T) || math.IsInf(T, 0) || T < 0 {
				t.Fatalf("%T produced T(%d) = %v", s, k, T)
			}
		}
	}
}

func TestScheduleValidation(t *testing.T) {
	bad := []Validator{
		Exponential{T0: 1, Alpha: 1},
		Exponential{T0: 1, Alpha: 0},
		Exponential{T0: 1, Alpha: -0.5},
		Exponential{T0: 0, Alpha: 0.5},
		Exponential{T0: -1, Alpha: 0.5},
		Exponential{T0: math.NaN(), Alpha: 0.5},
		Linear{T0: 0, Delta: 1},
		Linear{T0: 1, Delta: -1},
		Linear{T0: 1, Delta: 1, TMin: 2},
		Linear{T0: 1, Delta: 1, TMin: -1},
		Logarithmic{T0: 0},
		Logarithmic{T0: math.Inf(1)},
		Fast{T0: -3},
	}
	for _, v := range bad {
		err := v.Validate()
		assert.Error(t, err, "%#v", v)
		assert.True(t, errors.Is(err, ErrConfig), "%#v", v)
	}
	_, err := NewFast(math.Inf(1))
	assert.ErrorIs(t, err, ErrConfig)
	_, err = NewExponential(2, 1.5)
	var ce *ConfigError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, "Alpha", ce.Field)
}

func TestNewSchedule(t *testing.T) {
	p := ScheduleParameters{T0: 10, Alpha: 0.9, Delta: 0.5, TMin: 0.1}
	{
		s, err := NewSchedule("Exponential", p)
		require.NoError(t, err)
		assert.Equal(t, Exponential{T0: 10, Alpha: 0.9}, s)
	}
	{
		s, err := NewSchedule("linear", p)
		require.NoError(t, err)
		assert.Equal(t, Linear{T0: 10, Delta: 0.5, TMin: 0.1}, s)
	}
	{
		s, err := NewSchedule(" log ", p)
		require.NoError(t, err)
		assert.Equal(t, Logarithmic{T0: 10}, s)
	}
	{
		s, err := NewSchedule("fast", p)
		require.NoError(t, err)
		assert.Equal(t, Fast{T0: 10}, s)
	}
	{
		_, err := NewSchedule("quadratic", p)
		assert.ErrorIs(t, err, ErrConfig)
		_, err = NewSchedule("exponential", ScheduleParameters{T0: 10, Alpha: 2})
		assert.ErrorIs(t, err, ErrConfig)
		_, err = NewSchedule("fast", ScheduleParameters{T0: -1})
		assert.ErrorIs(t, err, ErrConfig)
	}
}
