package fans

import (
	"github.com/markusressel/boost2go/internal/control"
	"github.com/markusressel/boost2go/internal/ui"
)

// Driver applies the effective value of a control to its output
type Driver struct {
	output Output
}

func NewDriver(output Output) *Driver {
	return &Driver{output: output}
}

func (d *Driver) Output() Output {
	return d.output
}

func (d *Driver) OnControlModeChanged(c *control.Control) {
	d.Apply(c)
}

func (d *Driver) OnSoftwareValueChanged(c *control.Control) {
	d.Apply(c)
}

// Apply writes the current state of the control to the output.
// Errors are logged and not retried, the next change applies the state again.
func (d *Driver) Apply(c *control.Control) {
	var err error
	switch c.ActualControlMode() {
	case control.Software, control.SoftwareCurve:
		err = d.output.SetValue(c.SoftwareValue())
	case control.Default:
		err = d.output.SetDefault()
	default:
		return
	}
	if err != nil {
		ui.Warning("Error applying control %s to output %s: %v", c.GetId(), d.output.GetId(), err)
	}
}
