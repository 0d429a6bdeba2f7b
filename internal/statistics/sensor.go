package statistics

import (
	"github.com/markusressel/boost2go/internal/sensors"
	"github.com/prometheus/client_golang/prometheus"
)

const subsystemSensor = "sensor"

// SensorProvider returns the sensors currently known, e.g. a hardware.Topology
type SensorProvider interface {
	Sensors() []*sensors.Sensor
}

type SensorCollector struct {
	provider SensorProvider

	value *prometheus.Desc
	min   *prometheus.Desc
	max   *prometheus.Desc
}

func NewSensorCollector(provider SensorProvider) *SensorCollector {
	return &SensorCollector{
		provider: provider,
		value: prometheus.NewDesc(prometheus.BuildFQName(namespace, subsystemSensor, "value"),
			"Current value of the sensor",
			[]string{"id", "type"}, nil,
		),
		min: prometheus.NewDesc(prometheus.BuildFQName(namespace, subsystemSensor, "min"),
			"Lowest value of the sensor since the last reset",
			[]string{"id", "type"}, nil,
		),
		max: prometheus.NewDesc(prometheus.BuildFQName(namespace, subsystemSensor, "max"),
			"Highest value of the sensor since the last reset",
			[]string{"id", "type"}, nil,
		),
	}
}

func (collector *SensorCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- collector.value
	ch <- collector.min
	ch <- collector.max
}

// Collect implements required collect function for all prometheus collectors.
// Sensors without a value are skipped.
func (collector *SensorCollector) Collect(ch chan<- prometheus.Metric) {
	for _, sensor := range collector.provider.Sensors() {
		sensorId := sensor.GetId()
		sensorType := sensor.GetType().String()
		if value, ok := sensor.GetValue(); ok {
			ch <- prometheus.MustNewConstMetric(collector.value, prometheus.GaugeValue, value, sensorId, sensorType)
		}
		if value, ok := sensor.Min(); ok {
			ch <- prometheus.MustNewConstMetric(collector.min, prometheus.GaugeValue, value, sensorId, sensorType)
		}
		if value, ok := sensor.Max(); ok {
			ch <- prometheus.MustNewConstMetric(collector.max, prometheus.GaugeValue, value, sensorId, sensorType)
		}
	}
}
