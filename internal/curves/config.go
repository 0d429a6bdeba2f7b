package curves

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/markusressel/boost2go/internal/util"
)

const (
	separator          = ";"
	stopStartSeparator = "!"
	pointSeparator     = ":"
	sensorSeparator    = ","

	minPointCount = 2
)

var ErrInvalidCurve = errors.New("invalid curve")

// Config is the complete definition of a software curve, as it is persisted
// using the format:
//
//	stopTemp!startTemp;in1:out1;in2:out2;...;sensorId[,loadSensorId|stepSpeed]
type Config struct {
	StopStart StopStart `json:"stopStart"`
	Points    []Point   `json:"points"`
	// SensorId is the identifier of the sensor driving the curve
	SensorId string `json:"sensorId"`
	// LoadSensorId optionally identifies a load sensor that slows down ramping while busy
	LoadSensorId string `json:"loadSensorId,omitempty"`
	// StepSpeed > 0 makes the curve follow the instantaneous sensor value without ramping
	StepSpeed int `json:"stepSpeed,omitempty"`
}

// Parse reads a curve from its persisted string representation
func Parse(value string) (Config, error) {
	result := Config{}

	value = strings.TrimSpace(value)
	if len(value) < 1 {
		return result, fmt.Errorf("%w: empty", ErrInvalidCurve)
	}

	parts := strings.Split(value, separator)
	if len(parts) < minPointCount+2 {
		return result, fmt.Errorf("%w: expected at least %d points: %s", ErrInvalidCurve, minPointCount, value)
	}

	stopStart, err := parseStopStart(parts[0])
	if err != nil {
		return result, err
	}
	result.StopStart = stopStart

	for _, part := range parts[1 : len(parts)-1] {
		point, err := parsePoint(part)
		if err != nil {
			return result, err
		}
		result.Points = append(result.Points, point)
	}
	sort.SliceStable(result.Points, func(i, j int) bool {
		return result.Points[i].Input < result.Points[j].Input
	})

	sensors := strings.Split(parts[len(parts)-1], sensorSeparator)
	result.SensorId = strings.TrimSpace(sensors[0])
	if len(result.SensorId) < 1 {
		return result, fmt.Errorf("%w: missing sensor: %s", ErrInvalidCurve, value)
	}
	if len(sensors) > 1 {
		second := strings.TrimSpace(sensors[1])
		if stepSpeed, err := strconv.Atoi(second); err == nil {
			result.StepSpeed = stepSpeed
		} else {
			result.LoadSensorId = second
		}
	}

	return result, nil
}

func parseStopStart(value string) (StopStart, error) {
	split := strings.Split(value, stopStartSeparator)
	if len(split) < 2 {
		return StopStart{}, fmt.Errorf("%w: invalid stop/start thresholds: %s", ErrInvalidCurve, value)
	}
	stop, err := parseFloat(split[0])
	if err != nil {
		return StopStart{}, err
	}
	start, err := parseFloat(split[1])
	if err != nil {
		return StopStart{}, err
	}
	return StopStart{StopTemp: stop, StartTemp: start}, nil
}

func parsePoint(value string) (Point, error) {
	split := strings.Split(value, pointSeparator)
	if len(split) < 2 {
		return Point{}, fmt.Errorf("%w: invalid point: %s", ErrInvalidCurve, value)
	}
	input, err := parseFloat(split[0])
	if err != nil {
		return Point{}, err
	}
	output, err := parseFloat(split[1])
	if err != nil {
		return Point{}, err
	}
	return Point{Input: input, Output: output}, nil
}

func parseFloat(value string) (float64, error) {
	result, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidCurve, err)
	}
	if !isFinite(result) {
		return 0, fmt.Errorf("%w: not a finite number: %s", ErrInvalidCurve, value)
	}
	return result, nil
}

// String returns the persisted representation of the curve.
// Point values are rounded to one decimal place.
func (c Config) String() string {
	builder := strings.Builder{}

	builder.WriteString(formatFloat(c.StopStart.StopTemp))
	builder.WriteString(stopStartSeparator)
	builder.WriteString(formatFloat(c.StopStart.StartTemp))
	builder.WriteString(separator)

	for _, point := range c.Points {
		builder.WriteString(formatFloat(util.RoundToDecimals(point.Input, 1)))
		builder.WriteString(pointSeparator)
		builder.WriteString(formatFloat(util.RoundToDecimals(point.Output, 1)))
		builder.WriteString(separator)
	}

	builder.WriteString(c.SensorId)
	if len(c.LoadSensorId) > 0 {
		builder.WriteString(sensorSeparator)
		builder.WriteString(c.LoadSensorId)
	} else if c.StepSpeed > 0 {
		builder.WriteString(sensorSeparator)
		builder.WriteString(strconv.Itoa(c.StepSpeed))
	}

	return builder.String()
}

// Validate checks the curve for values that Parse would reject
func (c Config) Validate() error {
	if len(c.Points) < minPointCount {
		return fmt.Errorf("%w: expected at least %d points", ErrInvalidCurve, minPointCount)
	}
	if len(strings.TrimSpace(c.SensorId)) < 1 {
		return fmt.Errorf("%w: missing sensor", ErrInvalidCurve)
	}
	if strings.ContainsAny(c.SensorId, separator+sensorSeparator) {
		return fmt.Errorf("%w: sensor id must not contain '%s' or '%s': %s", ErrInvalidCurve, separator, sensorSeparator, c.SensorId)
	}
	if !isFinite(c.StopStart.StopTemp) || !isFinite(c.StopStart.StartTemp) {
		return fmt.Errorf("%w: stop/start thresholds must be finite", ErrInvalidCurve)
	}
	for i, point := range c.Points {
		if !isFinite(point.Input) || !isFinite(point.Output) {
			return fmt.Errorf("%w: point %d is not finite", ErrInvalidCurve, i)
		}
		if i > 0 && point.Input < c.Points[i-1].Input {
			return fmt.Errorf("%w: points must be sorted by input", ErrInvalidCurve)
		}
	}
	return nil
}

func isFinite(value float64) bool {
	return !math.IsNaN(value) && !math.IsInf(value, 0)
}

func formatFloat(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}
