package fans

import (
	"fmt"
	"sync"

	"github.com/markusressel/boost2go/internal/util"
)

// HwMonOutput drives a hwmon pwm channel
type HwMonOutput struct {
	ID         string
	PwmPath    string
	EnablePath string

	mu                 sync.Mutex
	lastSetPwm         int
	originalPwmEnabled PwmMode
	manual             bool
}

func NewHwMonOutput(id string, pwmPath string, enablePath string) *HwMonOutput {
	return &HwMonOutput{
		ID:                 id,
		PwmPath:            pwmPath,
		EnablePath:         enablePath,
		lastSetPwm:         -1,
		originalPwmEnabled: PwmModeAutomatic,
	}
}

func (o *HwMonOutput) GetId() string {
	return o.ID
}

// SetValue switches the channel to manual control (if necessary) and writes the pwm value
func (o *HwMonOutput) SetValue(percent float64) error {
	pwm := PercentToPwm(percent)

	o.mu.Lock()
	defer o.mu.Unlock()

	if !o.manual {
		if current, err := o.getPwmEnabled(); err == nil && current != PwmModeManual {
			o.originalPwmEnabled = current
		}
		if err := o.setPwmEnabled(PwmModeManual); err != nil {
			return err
		}
		o.manual = true
		o.lastSetPwm = -1
	}

	if pwm == o.lastSetPwm {
		return nil
	}
	if err := util.WriteIntToFile(pwm, o.PwmPath); err != nil {
		return err
	}
	o.lastSetPwm = pwm
	return nil
}

func (o *HwMonOutput) GetValue() (float64, error) {
	pwm, err := util.ReadIntFromFile(o.PwmPath)
	if err != nil {
		return 0, err
	}
	return PwmToPercent(pwm), nil
}

// SetDefault restores the pwm_enable value that was active before manual control
func (o *HwMonOutput) SetDefault() error {
	o.mu.Lock()
	defer o.mu.Unlock()

	mode := o.originalPwmEnabled
	if mode == PwmModeManual || mode == PwmModeDisabled {
		mode = PwmModeAutomatic
	}
	if err := o.setPwmEnabled(mode); err != nil {
		return err
	}
	o.manual = false
	o.lastSetPwm = -1
	return nil
}

func (o *HwMonOutput) getPwmEnabled() (PwmMode, error) {
	value, err := util.ReadIntFromFile(o.EnablePath)
	return PwmMode(value), err
}

// setPwmEnabled writes the given value to pwmX_enable
// Possible values (unsure if these are true for all scenarios):
// 0 - no control (results in max speed)
// 1 - manual pwm control
// 2 - motherboard pwm control
func (o *HwMonOutput) setPwmEnabled(value PwmMode) error {
	err := util.WriteIntToFile(int(value), o.EnablePath)
	if err != nil {
		return err
	}
	currentValue, err := o.getPwmEnabled()
	if err != nil || currentValue != value {
		return fmt.Errorf("PWM mode stuck to %d", currentValue)
	}
	return nil
}
