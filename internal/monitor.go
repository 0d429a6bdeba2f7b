package internal

import (
	"context"
	"time"

	"github.com/markusressel/boost2go/internal/hardware"
)

// HardwareMonitor periodically acquires new readings for all sensors of a topology
type HardwareMonitor interface {
	Run(ctx context.Context) error
}

type hardwareMonitor struct {
	topology    *hardware.Topology
	pollingRate time.Duration
}

func NewHardwareMonitor(topology *hardware.Topology, pollingRate time.Duration) HardwareMonitor {
	return hardwareMonitor{
		topology:    topology,
		pollingRate: pollingRate,
	}
}

func (m hardwareMonitor) Run(ctx context.Context) error {
	// initial reading, so values are available before the first tick
	m.topology.Update()

	tick := time.NewTicker(m.pollingRate)
	defer tick.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-tick.C:
			m.topology.Update()
		}
	}
}
