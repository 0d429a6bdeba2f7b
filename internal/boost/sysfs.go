package boost

import (
	"errors"
	"fmt"
	"sync"

	"github.com/markusressel/boost2go/internal/ui"
	"github.com/markusressel/boost2go/internal/util"
)

const (
	DefaultBoostPath   = "/sys/devices/system/cpu/cpufreq/boost"
	DefaultMinPerfPath = "/sys/devices/system/cpu/intel_pstate/min_perf_pct"
	DefaultMaxPerfPath = "/sys/devices/system/cpu/intel_pstate/max_perf_pct"
)

// SysfsActuator controls boost using a sysfs switch like cpufreq/boost
// (or intel_pstate/no_turbo with Invert set) and the performance level
// using the intel_pstate min/max_perf_pct attributes.
type SysfsActuator struct {
	mu sync.Mutex

	BoostPath string
	// Invert must be set for switches that disable boost when set to 1
	Invert      bool
	MinPerfPath string
	MaxPerfPath string

	enabled  bool
	minLevel int
	maxLevel int
}

// NewSysfsActuator creates an actuator and reads the current boost state.
// Empty paths disable the respective feature.
func NewSysfsActuator(boostPath string, invert bool, minPerfPath string, maxPerfPath string) *SysfsActuator {
	a := &SysfsActuator{
		BoostPath:   boostPath,
		Invert:      invert,
		MinPerfPath: minPerfPath,
		MaxPerfPath: maxPerfPath,
		minLevel:    -1,
		maxLevel:    -1,
	}

	if len(boostPath) > 0 {
		value, err := util.ReadIntFromFile(boostPath)
		if err != nil {
			ui.Warning("Unable to read boost state from %s: %v", boostPath, err)
		} else {
			a.enabled = (value == 1) != invert
		}
	}

	return a
}

func (a *SysfsActuator) EnableBoost(enable bool) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if enable == a.enabled {
		return nil
	}
	if len(a.BoostPath) <= 0 {
		return errors.New("no boost switch configured")
	}

	value := 0
	if enable != a.Invert {
		value = 1
	}
	err := util.WriteIntToFile(value, a.BoostPath)
	if err != nil {
		return fmt.Errorf("unable to set boost state of %s: %w", a.BoostPath, err)
	}
	a.enabled = enable
	ui.Debug("Boost enabled: %v", enable)
	return nil
}

func (a *SysfsActuator) CanBoost() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.enabled
}

func (a *SysfsActuator) SetPerformanceLevel(min int, max int) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if max != a.maxLevel && len(a.MaxPerfPath) > 0 {
		err := util.WriteIntToFile(max, a.MaxPerfPath)
		if err != nil {
			return fmt.Errorf("unable to set max performance level of %s: %w", a.MaxPerfPath, err)
		}
		a.maxLevel = max
	}
	if min != a.minLevel && len(a.MinPerfPath) > 0 {
		err := util.WriteIntToFile(min, a.MinPerfPath)
		if err != nil {
			return fmt.Errorf("unable to set min performance level of %s: %w", a.MinPerfPath, err)
		}
		a.minLevel = min
	}
	ui.Debug("Performance level set to [%d..%d]", min, max)
	return nil
}
