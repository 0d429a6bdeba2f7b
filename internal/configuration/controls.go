package configuration

import (
	"github.com/markusressel/boost2go/internal/curves"
)

type ControlConfig struct {
	ID  string   `json:"id"`
	Min *float64 `json:"min,omitempty"`
	Max *float64 `json:"max,omitempty"`
	// Curve is applied on startup, unless a curve was persisted before
	Curve  *curves.Config `json:"curve,omitempty"`
	Output OutputConfig   `json:"output"`
}

type OutputConfig struct {
	File  *FileOutputConfig  `json:"file,omitempty"`
	HwMon *HwMonOutputConfig `json:"hwmon,omitempty"`
}

type FileOutputConfig struct {
	Path string `json:"path"`
}

type HwMonOutputConfig struct {
	// Pwm is the path of the pwmX file
	Pwm string `json:"pwm"`
	// Enable is the path of the pwmX_enable file, defaults to Pwm + "_enable"
	Enable string `json:"enable"`
}

// GetMin returns the configured lower bound of manual values
func (c ControlConfig) GetMin(defaultValue float64) float64 {
	if c.Min == nil {
		return defaultValue
	}
	return *c.Min
}

// GetMax returns the configured upper bound of manual values
func (c ControlConfig) GetMax(defaultValue float64) float64 {
	if c.Max == nil {
		return defaultValue
	}
	return *c.Max
}
