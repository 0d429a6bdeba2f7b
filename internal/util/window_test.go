package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetWindowMax(t *testing.T) {
	// GIVEN
	window := CreateRollingWindow(3)
	window.Append(1)
	window.Append(2)
	window.Append(3)

	// WHEN
	maximum := GetWindowMax(window)

	// THEN
	assert.Equal(t, 3.0, maximum)
}

func TestGetWindowMin_Wraps(t *testing.T) {
	// GIVEN
	window := CreateRollingWindow(3)
	window.Append(1)
	window.Append(2)
	window.Append(3)

	// WHEN
	window.Append(4)
	minimum := GetWindowMin(window)

	// THEN
	assert.Equal(t, 2.0, minimum)
}

func TestFillWindow(t *testing.T) {
	// GIVEN
	window := CreateRollingWindow(4)

	// WHEN
	FillWindow(window, 4, 0)
	window.Append(8)

	// THEN
	assert.Equal(t, 0.0, GetWindowMin(window))
	assert.Equal(t, 8.0, GetWindowMax(window))
	assert.Equal(t, 2.0, GetWindowAvg(window))
}
