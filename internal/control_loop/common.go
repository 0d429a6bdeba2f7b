package control_loop

type ControlLoop interface {
	// Cycle returns the next output value, moving from current towards target
	Cycle(current float64, target float64) float64
}
