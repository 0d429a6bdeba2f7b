package internal

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/markusressel/boost2go/internal/hardware"
	"github.com/markusressel/boost2go/internal/sensors"
	"github.com/stretchr/testify/assert"
)

type countingReader struct {
	count atomic.Int32
}

func (r *countingReader) Read() (float64, error) {
	return float64(r.count.Add(1)), nil
}

func TestHardwareMonitor_Run(t *testing.T) {
	// GIVEN
	reader := &countingReader{}
	topology := hardware.NewTopology()
	topology.AddGroup(hardware.NewConfiguredGroup([]hardware.SensorSpec{
		{Id: "cpu", Type: sensors.Temperature, Reader: reader},
	}))
	monitor := NewHardwareMonitor(topology, 10*time.Millisecond)
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	// WHEN
	err := monitor.Run(ctx)

	// THEN
	assert.NoError(t, err)
	assert.Greater(t, reader.count.Load(), int32(1))
	sensor, ok := topology.FindSensor("cpu")
	assert.True(t, ok)
	_, hasValue := sensor.GetValue()
	assert.True(t, hasValue)
}
