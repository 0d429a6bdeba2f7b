package internal

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/markusressel/boost2go/internal/boost"
	"github.com/markusressel/boost2go/internal/configuration"
	"github.com/markusressel/boost2go/internal/control"
	"github.com/markusressel/boost2go/internal/curves"
	"github.com/markusressel/boost2go/internal/hardware"
	"github.com/markusressel/boost2go/internal/persistence"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testCurve = "0!0;30:20;50:60;70:100;cpu"

func writeFile(t *testing.T, dir string, name string, content string) string {
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func createConfig(t *testing.T) configuration.Configuration {
	dir := t.TempDir()
	curve, err := curves.Parse(testCurve)
	require.NoError(t, err)

	config := configuration.Configuration{
		ControlTickRate:   time.Hour,
		SensorPollingRate: time.Hour,
		Sensors: []configuration.SensorConfig{
			{
				ID:   "cpu",
				Type: "temperature",
				File: &configuration.FileSensorConfig{Path: writeFile(t, dir, "temp1_input", "45000"), Scale: 0.001},
			},
			{
				ID:   "vcore",
				Type: "voltage",
				File: &configuration.FileSensorConfig{Path: writeFile(t, dir, "in0_input", "1500"), Scale: 0.001},
			},
		},
		Controls: []configuration.ControlConfig{
			{
				ID:     "cpu_fan",
				Curve:  &curve,
				Output: configuration.OutputConfig{File: &configuration.FileOutputConfig{Path: writeFile(t, dir, "pwm1", "0")}},
			},
		},
		Boost: configuration.BoostConfig{
			Voltage: &configuration.VoltageConfig{Sensor: "vcore", Tau: 1, BoostThreshold: 1.4, RestThreshold: 1.3},
			Power:   &configuration.PowerConfig{Sensor: "package", PPT: 65},
		},
	}
	config.LmSensors.Enabled.SetOverride(false)
	return config
}

func TestInitializeObjects_SeedsConfiguredCurve(t *testing.T) {
	// GIVEN
	config := createConfig(t)
	settings := persistence.NewMemorySettings()

	// WHEN
	backend, err := InitializeObjects(config, settings, nil)

	// THEN
	require.NoError(t, err)
	defer backend.Close()
	require.Len(t, backend.Controls, 1)

	c := backend.Controls[0]
	assert.Equal(t, testCurve, settings.Get(control.CurveKey("cpu_fan"), ""))
	assert.Equal(t, testCurve, settings.Get(control.SeededCurveKey("cpu_fan"), ""))
	assert.Equal(t, control.SoftwareCurve, c.ActualControlMode())
	assert.NotNil(t, c.Curve())
}

func TestInitializeObjects_KeepsPersistedCurve(t *testing.T) {
	// GIVEN
	config := createConfig(t)
	settings := persistence.NewMemorySettings()
	persisted := "0!0;40:30;80:100;cpu"
	_ = settings.Set(control.CurveKey("cpu_fan"), persisted)
	_ = settings.Set(control.ModeKey("cpu_fan"), "2")

	// WHEN
	backend, err := InitializeObjects(config, settings, nil)

	// THEN
	require.NoError(t, err)
	defer backend.Close()

	c := backend.Controls[0]
	assert.Equal(t, persisted, settings.Get(control.CurveKey("cpu_fan"), ""))
	assert.Equal(t, control.Default, c.ActualControlMode())
	curve, ok := c.GetSoftwareCurve()
	assert.True(t, ok)
	assert.Equal(t, persisted, curve.String())
	assert.Equal(t, testCurve, settings.Get(control.SeededCurveKey("cpu_fan"), ""))
}

func TestInitializeObjects_KeepsUserCurveWhileConfigUnchanged(t *testing.T) {
	// GIVEN
	config := createConfig(t)
	settings := persistence.NewMemorySettings()
	_ = settings.Set(control.CurveKey("cpu_fan"), "0!0;40:30;80:100;cpu")
	_ = settings.Set(control.SeededCurveKey("cpu_fan"), testCurve)

	// WHEN
	backend, err := InitializeObjects(config, settings, nil)

	// THEN
	require.NoError(t, err)
	defer backend.Close()
	assert.Equal(t, "0!0;40:30;80:100;cpu", settings.Get(control.CurveKey("cpu_fan"), ""))
}

func TestInitializeObjects_ReseedsChangedConfiguredCurve(t *testing.T) {
	// GIVEN
	config := createConfig(t)
	settings := persistence.NewMemorySettings()
	_ = settings.Set(control.CurveKey("cpu_fan"), "0!0;40:30;80:100;cpu")
	_ = settings.Set(control.SeededCurveKey("cpu_fan"), "0!0;40:30;80:100;cpu")
	_ = settings.Set(control.ModeKey("cpu_fan"), "2")

	// WHEN
	backend, err := InitializeObjects(config, settings, nil)

	// THEN
	require.NoError(t, err)
	defer backend.Close()
	assert.Equal(t, testCurve, settings.Get(control.CurveKey("cpu_fan"), ""))
	assert.Equal(t, testCurve, settings.Get(control.SeededCurveKey("cpu_fan"), ""))
	assert.Equal(t, "2", settings.Get(control.ModeKey("cpu_fan"), ""))

	curve, ok := backend.Controls[0].GetSoftwareCurve()
	assert.True(t, ok)
	assert.Equal(t, testCurve, curve.String())
}

func TestInitializeObjects_VoltageProtectionObservesSensor(t *testing.T) {
	// GIVEN
	config := createConfig(t)
	backend, err := InitializeObjects(config, persistence.NewMemorySettings(), nil)
	require.NoError(t, err)
	defer backend.Close()

	// WHEN
	backend.Topology.Update()

	// THEN
	require.NotNil(t, backend.Voltage)
	assert.True(t, backend.Voltage.IsThrottled())
	assert.False(t, backend.Actuator.CanBoost())
	require.NotNil(t, backend.Power)
	assert.Equal(t, 65.0, backend.Power.PPT())
}

func TestInitializeObjects_LmSensorsDisabled(t *testing.T) {
	// GIVEN
	config := createConfig(t)
	called := false

	// WHEN
	backend, err := InitializeObjects(config, persistence.NewMemorySettings(), func() hardware.Group {
		called = true
		return nil
	})

	// THEN
	require.NoError(t, err)
	defer backend.Close()
	assert.False(t, called)
	assert.Len(t, backend.Topology.Groups(), 2)
}

func TestInitializeObjects_InvalidSensorType(t *testing.T) {
	// GIVEN
	config := createConfig(t)
	config.Sensors[0].Type = "unknown"

	// WHEN
	_, err := InitializeObjects(config, persistence.NewMemorySettings(), nil)

	// THEN
	assert.EqualError(t, err, "sensor cpu: unknown sensor type: unknown")
}

func TestCreateActuator_Cmd(t *testing.T) {
	// GIVEN
	config := configuration.ActuatorConfig{
		Cmd: &configuration.CmdActuatorConfig{
			SetBoost:            &configuration.ExecConfig{Exec: "/usr/local/bin/boost", Args: []string{"%enabled%"}},
			SetPerformanceLevel: &configuration.ExecConfig{Exec: "/usr/local/bin/perf", Args: []string{"%min%", "%max%"}},
		},
	}

	// WHEN
	actuator := createActuator(config)

	// THEN
	cmd, ok := actuator.(*boost.CmdActuator)
	require.True(t, ok)
	assert.True(t, cmd.CanBoost())
	assert.Equal(t, "/usr/local/bin/boost", cmd.SetBoost.Exec)
	assert.Equal(t, []string{"%min%", "%max%"}, cmd.SetLevel.Args)
	assert.Nil(t, cmd.GetBoost)
}

func TestCreateActuator_Noop(t *testing.T) {
	// WHEN
	actuator := createActuator(configuration.ActuatorConfig{})

	// THEN
	_, ok := actuator.(*boost.NoopActuator)
	assert.True(t, ok)
}
