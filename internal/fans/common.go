package fans

import (
	"fmt"

	"github.com/markusressel/boost2go/internal/configuration"
	"github.com/markusressel/boost2go/internal/util"
)

const (
	MaxPwmValue = 255
	MinPwmValue = 0
)

type PwmMode int

const (
	// PwmModeDisabled completely disables control, resulting in a 100% voltage/PWM signal output
	PwmModeDisabled PwmMode = 0
	// PwmModeManual enables manual, fixed speed control via setting the pwm value
	PwmModeManual PwmMode = 1
	// PwmModeAutomatic enables automatic control by the integrated control of the mainboard
	PwmModeAutomatic PwmMode = 2
)

// Output is the physical actuator driven by a control
type Output interface {
	GetId() string

	// SetValue applies the given value in percent (0..100)
	SetValue(percent float64) error
	// GetValue returns the currently applied value in percent
	GetValue() (float64, error)

	// SetDefault hands control back to the hardware
	SetDefault() error
}

func NewOutput(config configuration.ControlConfig) (Output, error) {
	if config.Output.HwMon != nil {
		enablePath := config.Output.HwMon.Enable
		if len(enablePath) <= 0 {
			enablePath = config.Output.HwMon.Pwm + "_enable"
		}
		return NewHwMonOutput(config.ID, config.Output.HwMon.Pwm, enablePath), nil
	}

	if config.Output.File != nil {
		return NewFileOutput(config.ID, config.Output.File.Path), nil
	}

	return nil, fmt.Errorf("no matching output type for control: %s", config.ID)
}

// PercentToPwm maps 0..100 to MinPwmValue..MaxPwmValue
func PercentToPwm(percent float64) int {
	percent = util.Coerce(percent, 0, 100)
	return int(util.Round(percent * MaxPwmValue / 100))
}

// PwmToPercent maps MinPwmValue..MaxPwmValue to 0..100, rounded to one decimal
func PwmToPercent(pwm int) float64 {
	pwm = util.Coerce(pwm, MinPwmValue, MaxPwmValue)
	return util.RoundToDecimals(float64(pwm)*100/MaxPwmValue, 1)
}
