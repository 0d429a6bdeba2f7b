package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAvg(t *testing.T) {
	// GIVEN
	values := []float64{1, 2, 3, 4}

	// WHEN
	result := Avg(values)

	// THEN
	assert.Equal(t, 2.5, result)
}

func TestRatio(t *testing.T) {
	// GIVEN
	a := 0.0
	b := 100.0
	c := 50.0

	expected := 0.5

	// WHEN
	result := Ratio(c, a, b)

	// THEN
	assert.Equal(t, expected, result)
}

func TestCoerce(t *testing.T) {
	assert.Equal(t, 5, Coerce(1, 5, 100))
	assert.Equal(t, 100, Coerce(120, 5, 100))
	assert.Equal(t, 42.5, Coerce(42.5, 0.0, 100.0))
}

func TestRoundToNearest(t *testing.T) {
	// GIVEN
	expectedInputOutput := map[float64]float64{
		0:     0,
		4.9:   0,
		5.1:   10,
		44.4:  40,
		46:    50,
		-14.9: -10,
		// ties go to the even multiple
		15: 20,
		25: 20,
	}

	for input, output := range expectedInputOutput {
		// WHEN
		result := RoundToNearest(input, 10)

		// THEN
		assert.Equal(t, output, result, "input %f", input)
	}
}

func TestRoundToDecimals(t *testing.T) {
	assert.Equal(t, 45.6, RoundToDecimals(45.64, 1))
	assert.Equal(t, 45.7, RoundToDecimals(45.66, 1))
	assert.Equal(t, 30.0, RoundToDecimals(30, 1))
}

func TestSign(t *testing.T) {
	assert.Equal(t, -1.0, Sign(-0.5))
	assert.Equal(t, 1.0, Sign(0))
	assert.Equal(t, 1.0, Sign(3))
}
