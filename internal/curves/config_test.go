package curves

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	// GIVEN
	value := "30!50;30:20;50:60;70:100;/lpc/nct6798/temperature/0"

	// WHEN
	result, err := Parse(value)

	// THEN
	assert.NoError(t, err)
	assert.Equal(t, StopStart{StopTemp: 30, StartTemp: 50}, result.StopStart)
	assert.Equal(t, testPoints, result.Points)
	assert.Equal(t, "/lpc/nct6798/temperature/0", result.SensorId)
	assert.Empty(t, result.LoadSensorId)
	assert.Equal(t, 0, result.StepSpeed)
}

func TestParse_LoadSensor(t *testing.T) {
	// WHEN
	result, err := Parse("0!0;20:10;80:100;/intelcpu/0/temperature/0,/intelcpu/0/load/0")

	// THEN
	assert.NoError(t, err)
	assert.Equal(t, "/intelcpu/0/temperature/0", result.SensorId)
	assert.Equal(t, "/intelcpu/0/load/0", result.LoadSensorId)
	assert.Equal(t, 0, result.StepSpeed)
	assert.False(t, result.StopStart.Active())
}

func TestParse_StepSpeed(t *testing.T) {
	// WHEN
	result, err := Parse("0!0;20:10;80:100;/virtual/0/temperature/0,1")

	// THEN
	assert.NoError(t, err)
	assert.Empty(t, result.LoadSensorId)
	assert.Equal(t, 1, result.StepSpeed)
}

func TestParse_SortsPoints(t *testing.T) {
	// WHEN
	result, err := Parse("0!0;70:100;30:20;50:60;/sensor")

	// THEN
	assert.NoError(t, err)
	assert.Equal(t, testPoints, result.Points)
}

func TestParse_Invalid(t *testing.T) {
	values := []string{
		"",
		"30!50;30:20;/sensor",
		"30;30:20;50:60;/sensor",
		"30!abc;30:20;50:60;/sensor",
		"30!50;30-20;50:60;/sensor",
		"30!50;30:20;50:x;/sensor",
		"30!50;30:20;50:60;",
		"30!50;30:20;50:60;,/load",
		"30!50;30:NaN;50:60;/sensor",
		"30!50;+Inf:20;50:60;/sensor",
		"NaN!50;30:20;50:60;/sensor",
	}

	for _, value := range values {
		// WHEN
		_, err := Parse(value)

		// THEN
		assert.ErrorIs(t, err, ErrInvalidCurve, value)
	}
}

func TestConfig_String(t *testing.T) {
	// GIVEN
	config := Config{
		StopStart: StopStart{StopTemp: 30, StartTemp: 50},
		Points: []Point{
			{Input: 30.04, Output: 20},
			{Input: 50, Output: 60.56},
		},
		SensorId:     "/lpc/nct6798/temperature/0",
		LoadSensorId: "/intelcpu/0/load/0",
		StepSpeed:    1,
	}

	// WHEN
	result := config.String()

	// THEN
	assert.Equal(t, "30!50;30:20;50:60.6;/lpc/nct6798/temperature/0,/intelcpu/0/load/0", result)
}

func TestConfig_String_StepSpeed(t *testing.T) {
	// GIVEN
	config := Config{
		Points:    testPoints,
		SensorId:  "/virtual/0/temperature/0",
		StepSpeed: 2,
	}

	// WHEN
	result := config.String()

	// THEN
	assert.Equal(t, "0!0;30:20;50:60;70:100;/virtual/0/temperature/0,2", result)
}

func TestConfig_RoundTrip(t *testing.T) {
	// GIVEN
	config := Config{
		StopStart: StopStart{StopTemp: 35.5, StartTemp: 45},
		Points: []Point{
			{Input: 25.3, Output: 12.5},
			{Input: 60, Output: 47.34},
			{Input: 85.9, Output: 100},
		},
		SensorId:     "/amdcpu/0/temperature/1",
		LoadSensorId: "/amdcpu/0/load/0",
	}

	// WHEN
	result, err := Parse(config.String())

	// THEN
	assert.NoError(t, err)
	assert.Equal(t, config.StopStart, result.StopStart)
	assert.Equal(t, config.SensorId, result.SensorId)
	assert.Equal(t, config.LoadSensorId, result.LoadSensorId)
	assert.Len(t, result.Points, len(config.Points))
	for i, point := range config.Points {
		assert.InDelta(t, point.Input, result.Points[i].Input, 0.05)
		assert.InDelta(t, point.Output, result.Points[i].Output, 0.05)
	}
	assert.Equal(t, config.String(), result.String())
}

func TestConfig_Validate(t *testing.T) {
	// GIVEN
	valid := Config{Points: testPoints, SensorId: "/sensor"}
	tooFewPoints := Config{Points: testPoints[:1], SensorId: "/sensor"}
	noSensor := Config{Points: testPoints}
	badSensor := Config{Points: testPoints, SensorId: "/a;b"}

	// THEN
	assert.NoError(t, valid.Validate())
	assert.ErrorIs(t, tooFewPoints.Validate(), ErrInvalidCurve)
	assert.ErrorIs(t, noSensor.Validate(), ErrInvalidCurve)
	assert.ErrorIs(t, badSensor.Validate(), ErrInvalidCurve)
}

func TestConfig_Validate_NonFinite(t *testing.T) {
	// GIVEN
	nanOutput := Config{Points: []Point{{Input: 30, Output: math.NaN()}, {Input: 50, Output: 60}}, SensorId: "/sensor"}
	infInput := Config{Points: []Point{{Input: 30, Output: 20}, {Input: math.Inf(1), Output: 60}}, SensorId: "/sensor"}
	nanStop := Config{StopStart: StopStart{StopTemp: math.NaN()}, Points: testPoints, SensorId: "/sensor"}

	// THEN
	assert.ErrorIs(t, nanOutput.Validate(), ErrInvalidCurve)
	assert.ErrorIs(t, infInput.Validate(), ErrInvalidCurve)
	assert.ErrorIs(t, nanStop.Validate(), ErrInvalidCurve)
}

func TestConfig_Validate_UnsortedPoints(t *testing.T) {
	// GIVEN
	unsorted := Config{Points: []Point{{Input: 50, Output: 60}, {Input: 30, Output: 20}}, SensorId: "/sensor"}
	equalInputs := Config{Points: []Point{{Input: 30, Output: 20}, {Input: 30, Output: 60}}, SensorId: "/sensor"}

	// THEN
	assert.ErrorIs(t, unsorted.Validate(), ErrInvalidCurve)
	assert.NoError(t, equalInputs.Validate())
}
