package statistics

import (
	"github.com/markusressel/boost2go/internal/boost"
	"github.com/markusressel/boost2go/internal/protection"
	"github.com/prometheus/client_golang/prometheus"
)

const subsystemBoost = "boost"

// BoostCollector exposes the state of the boost actuator and the loops driving it.
// voltage and power may be nil.
type BoostCollector struct {
	actuator boost.Actuator
	voltage  *protection.VoltageProtection
	power    *protection.PowerThrottle

	canBoost         *prometheus.Desc
	throttled        *prometheus.Desc
	windowMin        *prometheus.Desc
	windowMax        *prometheus.Desc
	windowAvg        *prometheus.Desc
	performanceLevel *prometheus.Desc
	ppt              *prometheus.Desc
}

func NewBoostCollector(actuator boost.Actuator, voltage *protection.VoltageProtection, power *protection.PowerThrottle) *BoostCollector {
	return &BoostCollector{
		actuator: actuator,
		voltage:  voltage,
		power:    power,
		canBoost: prometheus.NewDesc(prometheus.BuildFQName(namespace, subsystemBoost, "enabled"),
			"Whether boost is currently enabled (1) or disabled (0)",
			nil, nil,
		),
		throttled: prometheus.NewDesc(prometheus.BuildFQName(namespace, subsystemBoost, "voltage_throttled"),
			"Whether the voltage protection currently disables boost",
			[]string{"id"}, nil,
		),
		windowMin: prometheus.NewDesc(prometheus.BuildFQName(namespace, subsystemBoost, "voltage_window_min"),
			"Lowest voltage within the protection window",
			[]string{"id"}, nil,
		),
		windowMax: prometheus.NewDesc(prometheus.BuildFQName(namespace, subsystemBoost, "voltage_window_max"),
			"Highest voltage within the protection window",
			[]string{"id"}, nil,
		),
		windowAvg: prometheus.NewDesc(prometheus.BuildFQName(namespace, subsystemBoost, "voltage_window_avg"),
			"Average voltage within the protection window",
			[]string{"id"}, nil,
		),
		performanceLevel: prometheus.NewDesc(prometheus.BuildFQName(namespace, subsystemBoost, "performance_level"),
			"Performance level in percent set by the power throttle",
			[]string{"id"}, nil,
		),
		ppt: prometheus.NewDesc(prometheus.BuildFQName(namespace, subsystemBoost, "ppt"),
			"Power budget of the power throttle, 0 if disabled",
			[]string{"id"}, nil,
		),
	}
}

func (collector *BoostCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- collector.canBoost
	ch <- collector.throttled
	ch <- collector.windowMin
	ch <- collector.windowMax
	ch <- collector.windowAvg
	ch <- collector.performanceLevel
	ch <- collector.ppt
}

// Collect implements required collect function for all prometheus collectors
func (collector *BoostCollector) Collect(ch chan<- prometheus.Metric) {
	ch <- prometheus.MustNewConstMetric(collector.canBoost, prometheus.GaugeValue, boolToFloat(collector.actuator.CanBoost()))

	if v := collector.voltage; v != nil {
		id := v.GetId()
		minValue, maxValue, avgValue := v.WindowStats()
		ch <- prometheus.MustNewConstMetric(collector.throttled, prometheus.GaugeValue, boolToFloat(v.IsThrottled()), id)
		ch <- prometheus.MustNewConstMetric(collector.windowMin, prometheus.GaugeValue, minValue, id)
		ch <- prometheus.MustNewConstMetric(collector.windowMax, prometheus.GaugeValue, maxValue, id)
		ch <- prometheus.MustNewConstMetric(collector.windowAvg, prometheus.GaugeValue, avgValue, id)
	}

	if p := collector.power; p != nil {
		id := p.GetId()
		ch <- prometheus.MustNewConstMetric(collector.performanceLevel, prometheus.GaugeValue, float64(p.Level()), id)
		ch <- prometheus.MustNewConstMetric(collector.ppt, prometheus.GaugeValue, p.PPT(), id)
	}
}

func boolToFloat(value bool) float64 {
	if value {
		return 1
	}
	return 0
}
