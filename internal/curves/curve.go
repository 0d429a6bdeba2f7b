package curves

import (
	"github.com/markusressel/boost2go/internal/util"
)

// Point maps a sensor value (Input) to a control value in percent (Output)
type Point struct {
	Input  float64 `json:"input"`
	Output float64 `json:"output"`
}

// StopStart holds the thresholds of the fan stop/start state machine
type StopStart struct {
	StopTemp  float64 `json:"stopTemp"`
	StartTemp float64 `json:"startTemp"`
}

// Active reports whether the thresholds are usable, which requires both
// values to be set and StartTemp not to be below StopTemp
func (s StopStart) Active() bool {
	return s.StopTemp != 0 && s.StartTemp != 0 && s.StartTemp >= s.StopTemp
}

// Evaluate returns the output of the piecewise-linear curve defined by points
// (sorted by input) for the given input. Inputs outside the curve are
// clamped to the output of the nearest endpoint.
func Evaluate(points []Point, input float64) float64 {
	if len(points) == 0 {
		return 0
	}

	for i := 1; i < len(points); i++ {
		current := points[i-1]
		next := points[i]

		if input == current.Input {
			return current.Output
		}

		if input > current.Input && input < next.Input {
			ratio := util.Ratio(input, current.Input, next.Input)
			return current.Output + ratio*(next.Output-current.Output)
		}
	}

	first := points[0]
	if input <= first.Input {
		return first.Output
	}
	return points[len(points)-1].Output
}
