package util

import (
	"math"

	"golang.org/x/exp/constraints"
)

// Avg calculates the average of all values in the given array
func Avg(values []float64) float64 {
	sum := 0.0
	for i := 0; i < len(values); i++ {
		sum += values[i]
	}
	return sum / (float64(len(values)))
}

// Ratio calculates the ration that target has in comparison to rangeMin and rangeMax
// Make sure that:
// rangeMin <= target <= rangeMax
// rangeMax - rangeMin != 0
func Ratio(target float64, rangeMin float64, rangeMax float64) float64 {
	return (target - rangeMin) / (rangeMax - rangeMin)
}

// Coerce returns a value that is at least min and at most max, otherwise value
func Coerce[T constraints.Integer | constraints.Float](value T, min T, max T) T {
	if value > max {
		return max
	}
	if value < min {
		return min
	}
	return value
}

// RoundToNearest rounds value to the nearest multiple of step.
// Ties are rounded to the even multiple.
func RoundToNearest(value float64, step float64) float64 {
	return math.RoundToEven(value/step) * step
}

// Round rounds to the nearest integer, ties to even
func Round(value float64) float64 {
	return math.RoundToEven(value)
}

// RoundToDecimals rounds value to the given number of decimal places
func RoundToDecimals(value float64, decimals int) float64 {
	pow := math.Pow(10, float64(decimals))
	return math.RoundToEven(value*pow) / pow
}

// Sign returns -1 for negative values, 1 otherwise
func Sign(value float64) float64 {
	if value < 0 {
		return -1
	}
	return 1
}
