package configuration

import (
	"errors"
	"fmt"
	"strings"

	"github.com/markusressel/boost2go/internal/sensors"
	"github.com/markusressel/boost2go/internal/ui"
	"github.com/markusressel/boost2go/internal/util"
	"golang.org/x/exp/slices"
)

func Validate(configPath string) error {
	return validateConfig(&CurrentConfig, configPath)
}

func validateConfig(config *Configuration, path string) error {
	err := validateSensors(config)
	if err != nil {
		return err
	}
	err = validateControls(config)
	if err != nil {
		return err
	}
	err = validateBoost(config)
	if err != nil {
		return err
	}
	err = validateServers(config)
	if err != nil {
		return err
	}

	if config.ControlTickRate < 0 || config.SensorPollingRate < 0 {
		return errors.New("tick and polling rates must not be negative")
	}

	if containsCommands(config) {
		if _, err := util.CheckFilePermissionsForExecution(path); err != nil {
			return fmt.Errorf("config file '%s' has invalid permissions: %s", path, err)
		}
	}

	return nil
}

func containsCommands(config *Configuration) bool {
	if config.Boost.Actuator.Cmd != nil {
		return true
	}
	for _, sensorConfig := range config.Sensors {
		if sensorConfig.Cmd != nil {
			return true
		}
	}

	return false
}

func validateSensors(config *Configuration) error {
	var ids []string

	for _, sensorConfig := range config.Sensors {
		if len(strings.TrimSpace(sensorConfig.ID)) <= 0 {
			return errors.New("sensor: missing id")
		}
		if slices.Contains(ids, sensorConfig.ID) {
			return fmt.Errorf("duplicate sensor id detected: %s", sensorConfig.ID)
		}
		ids = append(ids, sensorConfig.ID)

		subConfigs := 0
		if sensorConfig.File != nil {
			subConfigs++
		}
		if sensorConfig.Cmd != nil {
			subConfigs++
		}
		if subConfigs > 1 {
			return fmt.Errorf("sensor %s: only one sensor type can be used per sensor definition block", sensorConfig.ID)
		}
		if subConfigs <= 0 {
			return fmt.Errorf("sensor %s: sub-configuration for sensor is missing, use one of: file | cmd", sensorConfig.ID)
		}

		if _, err := sensors.ParseType(sensorConfig.Type); err != nil {
			return fmt.Errorf("sensor %s: %v", sensorConfig.ID, err)
		}

		if sensorConfig.File != nil && len(sensorConfig.File.Path) <= 0 {
			return fmt.Errorf("sensor %s: no file path provided", sensorConfig.ID)
		}

		if sensorConfig.Cmd != nil && len(sensorConfig.Cmd.Exec) <= 0 {
			return fmt.Errorf("sensor %s: executable is missing", sensorConfig.ID)
		}

		if !isSensorConfigInUse(sensorConfig, config) {
			ui.Warning("Unused sensor configuration: %s", sensorConfig.ID)
		}
	}

	return nil
}

func isSensorConfigInUse(sensorConfig SensorConfig, config *Configuration) bool {
	for _, controlConfig := range config.Controls {
		if controlConfig.Curve == nil {
			continue
		}
		if controlConfig.Curve.SensorId == sensorConfig.ID || controlConfig.Curve.LoadSensorId == sensorConfig.ID {
			return true
		}
	}

	if voltage := config.Boost.Voltage; voltage != nil && voltage.Sensor == sensorConfig.ID {
		return true
	}
	if power := config.Boost.Power; power != nil && power.Sensor == sensorConfig.ID {
		return true
	}

	return false
}

func validateControls(config *Configuration) error {
	var ids []string

	for _, controlConfig := range config.Controls {
		if len(strings.TrimSpace(controlConfig.ID)) <= 0 {
			return errors.New("control: missing id")
		}
		if slices.Contains(ids, controlConfig.ID) {
			return fmt.Errorf("duplicate control id detected: %s", controlConfig.ID)
		}
		ids = append(ids, controlConfig.ID)

		output := controlConfig.Output
		subConfigs := 0
		if output.File != nil {
			subConfigs++
		}
		if output.HwMon != nil {
			subConfigs++
		}
		if subConfigs > 1 {
			return fmt.Errorf("control %s: only one output type can be used per control definition block", controlConfig.ID)
		}
		if subConfigs <= 0 {
			return fmt.Errorf("control %s: output sub-configuration is missing, use one of: file | hwmon", controlConfig.ID)
		}

		if output.File != nil && len(output.File.Path) <= 0 {
			return fmt.Errorf("control %s: no file path provided", controlConfig.ID)
		}
		if output.HwMon != nil && len(output.HwMon.Pwm) <= 0 {
			return fmt.Errorf("control %s: no pwm path provided", controlConfig.ID)
		}

		minValue := controlConfig.GetMin(0)
		maxValue := controlConfig.GetMax(100)
		if minValue < 0 || maxValue > 100 || minValue >= maxValue {
			return fmt.Errorf("control %s: invalid value range [%v, %v], must be within [0, 100]", controlConfig.ID, minValue, maxValue)
		}

		if controlConfig.Curve != nil {
			if err := controlConfig.Curve.Validate(); err != nil {
				return fmt.Errorf("control %s: %v", controlConfig.ID, err)
			}
		}
	}

	return nil
}

func validateBoost(config *Configuration) error {
	if voltage := config.Boost.Voltage; voltage != nil {
		if len(voltage.Sensor) <= 0 {
			return errors.New("boost voltage protection: missing sensor")
		}
		if voltage.Tau < 0 {
			return errors.New("boost voltage protection: tau must not be negative")
		}
		if voltage.RestThreshold >= voltage.BoostThreshold {
			return fmt.Errorf("boost voltage protection: rest threshold (%v) must be lower than boost threshold (%v)", voltage.RestThreshold, voltage.BoostThreshold)
		}
	}

	if power := config.Boost.Power; power != nil {
		if len(power.Sensor) <= 0 {
			return errors.New("boost power throttle: missing sensor")
		}
		if power.PPT < 0 {
			return errors.New("boost power throttle: ppt must not be negative")
		}
	}

	actuator := config.Boost.Actuator
	if actuator.Sysfs != nil && actuator.Cmd != nil {
		return errors.New("boost actuator: only one of sysfs | cmd can be used")
	}
	if sysfs := actuator.Sysfs; sysfs != nil {
		if len(sysfs.BoostPath) <= 0 && len(sysfs.MaxPerfPath) <= 0 {
			return errors.New("boost actuator: at least one of boostPath | maxPerfPath is required")
		}
	}
	if cmd := actuator.Cmd; cmd != nil {
		if cmd.SetBoost == nil && cmd.SetPerformanceLevel == nil {
			return errors.New("boost actuator: at least one of setBoost | setPerformanceLevel is required")
		}
		commands := map[string]*ExecConfig{
			"setBoost":            cmd.SetBoost,
			"getBoost":            cmd.GetBoost,
			"setPerformanceLevel": cmd.SetPerformanceLevel,
		}
		for name, command := range commands {
			if command != nil && len(command.Exec) <= 0 {
				return fmt.Errorf("boost actuator: %s executable is missing", name)
			}
		}
	}

	return nil
}

func validateServers(config *Configuration) error {
	if config.Statistics.Enabled && (config.Statistics.Port <= 0 || config.Statistics.Port > 65535) {
		return fmt.Errorf("statistics: invalid port %d", config.Statistics.Port)
	}
	if config.Api.Enabled {
		if config.Api.Port <= 0 || config.Api.Port > 65535 {
			return fmt.Errorf("api: invalid port %d", config.Api.Port)
		}
		if config.Statistics.Enabled && config.Statistics.Port == config.Api.Port {
			return fmt.Errorf("api: port %d is already used by statistics", config.Api.Port)
		}
	}
	return nil
}
