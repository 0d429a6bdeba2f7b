package control_loop

// DirectControlLoop is a very simple control that directly applies the given target.
type DirectControlLoop struct{}

func NewDirectControlLoop() *DirectControlLoop {
	return &DirectControlLoop{}
}

func (l *DirectControlLoop) Cycle(current float64, target float64) float64 {
	return target
}
