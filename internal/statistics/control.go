package statistics

import (
	"github.com/markusressel/boost2go/internal/control"
	"github.com/prometheus/client_golang/prometheus"
)

const subsystemControl = "control"

type ControlCollector struct {
	controls []*control.Control

	mode      *prometheus.Desc
	value     *prometheus.Desc
	target    *prometheus.Desc
	fanStatus *prometheus.Desc
}

func NewControlCollector(controls []*control.Control) *ControlCollector {
	return &ControlCollector{
		controls: controls,
		mode: prometheus.NewDesc(prometheus.BuildFQName(namespace, subsystemControl, "mode"),
			"Effective control mode (0: undefined, 1: software, 2: default, 3: curve)",
			[]string{"id"}, nil,
		),
		value: prometheus.NewDesc(prometheus.BuildFQName(namespace, subsystemControl, "value"),
			"Current software value of the control in percent",
			[]string{"id"}, nil,
		),
		target: prometheus.NewDesc(prometheus.BuildFQName(namespace, subsystemControl, "curve_target"),
			"Target value of the attached curve in percent",
			[]string{"id"}, nil,
		),
		fanStatus: prometheus.NewDesc(prometheus.BuildFQName(namespace, subsystemControl, "curve_fan_status"),
			"Fan status of the attached curve (-1: indeterminate, 0: stopped, 1: running)",
			[]string{"id"}, nil,
		),
	}
}

func (collector *ControlCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- collector.mode
	ch <- collector.value
	ch <- collector.target
	ch <- collector.fanStatus
}

// Collect implements required collect function for all prometheus collectors
func (collector *ControlCollector) Collect(ch chan<- prometheus.Metric) {
	for _, c := range collector.controls {
		id := c.GetId()
		ch <- prometheus.MustNewConstMetric(collector.mode, prometheus.GaugeValue, float64(c.ActualControlMode()), id)
		ch <- prometheus.MustNewConstMetric(collector.value, prometheus.GaugeValue, c.SoftwareValue(), id)

		curve := c.Curve()
		if curve == nil || !curve.IsStarted() {
			continue
		}
		ch <- prometheus.MustNewConstMetric(collector.target, prometheus.GaugeValue, curve.Target(), id)
		ch <- prometheus.MustNewConstMetric(collector.fanStatus, prometheus.GaugeValue, float64(curve.FanStatus()), id)
	}
}
