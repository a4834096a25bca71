package utils

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSystem(t *testing.T) {
	assert.Contains(t, GetMemUsage(), "Alloc = ")
	assert.True(t, IsNan(math.NaN()))
	assert.True(t, IsNan(float32(math.NaN())))
	assert.True(t, IsNan([]float64{1, math.NaN()}))
	assert.True(t, IsNan([][2]float64{{0, 1}, {math.NaN(), 2}}))
	assert.False(t, IsNan([]float64{1, 2}))
	assert.False(t, IsNan([][2]float64(nil)))
	assert.False(t, IsNan("NaN"))
}
