package configuration

import (
	"reflect"
	"testing"

	"github.com/markusressel/boost2go/internal/curves"
	"github.com/mitchellh/mapstructure"
	"github.com/stretchr/testify/assert"
)

func TestDefaultTrueBoolHook(t *testing.T) {
	type TestConfig struct {
		Enabled DefaultTrueBool `mapstructure:"enabled"`
	}

	tests := []struct {
		name          string
		inputMap      map[string]interface{}
		expectedValue bool
		expectedPres  bool
		expectedGet   bool
	}{
		{
			name:          "Explicit true in config",
			inputMap:      map[string]interface{}{"enabled": true},
			expectedValue: true,
			expectedPres:  true,
			expectedGet:   true,
		},
		{
			name:          "Explicit false in config",
			inputMap:      map[string]interface{}{"enabled": false},
			expectedValue: false,
			expectedPres:  true,
			expectedGet:   false,
		},
		{
			name:          "String 'false' in config",
			inputMap:      map[string]interface{}{"enabled": "false"},
			expectedValue: false,
			expectedPres:  true,
			expectedGet:   false,
		},
		{
			name:          "Missing from config (Zero Value)",
			inputMap:      map[string]interface{}{},
			expectedValue: false,
			expectedPres:  false,
			expectedGet:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var cfg TestConfig

			decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
				DecodeHook: DefaultTrueBoolHookFunc(),
				Result:     &cfg,
			})
			assert.NoError(t, err)

			err = decoder.Decode(tt.inputMap)
			assert.NoError(t, err)

			assert.Equal(t, tt.expectedPres, cfg.Enabled.Present)
			assert.Equal(t, tt.expectedValue, cfg.Enabled.Value)
			assert.Equal(t, tt.expectedGet, cfg.Enabled.Get())
		})
	}
}

func TestHookSkipsUnrelatedTypes(t *testing.T) {
	// GIVEN
	hook := DefaultTrueBoolHookFunc()
	f := reflect.TypeOf("string")
	tTarget := reflect.TypeOf(123)
	data := "some string"

	// WHEN
	res, err := hook(f, tTarget, data)

	// THEN
	assert.NoError(t, err)
	assert.Equal(t, data, res)
}

func TestCurveHook(t *testing.T) {
	// GIVEN
	input := map[string]interface{}{
		"id":    "cpu_fan",
		"curve": "30!50;30:20;50:60;70:100;/lpc/nct6798d/temperature/0,/intelcpu/0/load/0",
	}
	var cfg ControlConfig
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: CurveHookFunc(),
		Result:     &cfg,
	})
	assert.NoError(t, err)

	// WHEN
	err = decoder.Decode(input)

	// THEN
	assert.NoError(t, err)
	assert.NotNil(t, cfg.Curve)
	assert.Equal(t, curves.StopStart{StopTemp: 30, StartTemp: 50}, cfg.Curve.StopStart)
	assert.Len(t, cfg.Curve.Points, 3)
	assert.Equal(t, "/lpc/nct6798d/temperature/0", cfg.Curve.SensorId)
	assert.Equal(t, "/intelcpu/0/load/0", cfg.Curve.LoadSensorId)
}

func TestCurveHookInvalidCurve(t *testing.T) {
	// GIVEN
	input := map[string]interface{}{
		"curve": "30!50;30:20;sensor",
	}
	var cfg ControlConfig
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: CurveHookFunc(),
		Result:     &cfg,
	})
	assert.NoError(t, err)

	// WHEN
	err = decoder.Decode(input)

	// THEN
	assert.ErrorContains(t, err, curves.ErrInvalidCurve.Error())
}
