package api

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/markusressel/boost2go/internal/sensors"
)

const (
	resetMin    = "min"
	resetMax    = "max"
	resetMinMax = "minmax"
)

type SensorDto struct {
	Id       string   `json:"id"`
	Name     string   `json:"name"`
	Type     string   `json:"type"`
	Value    *float64 `json:"value"`
	Average  *float64 `json:"average"`
	Smoothed *float64 `json:"smoothed"`
	Min      *float64 `json:"min"`
	Max      *float64 `json:"max"`
	// Values is the long-term log, only included for single sensor requests
	Values []sensors.Value `json:"values,omitempty"`
}

func optionalValue(value float64, ok bool) *float64 {
	if !ok {
		return nil
	}
	return &value
}

func newSensorDto(sensor *sensors.Sensor, withValues bool) SensorDto {
	dto := SensorDto{
		Id:       sensor.GetId(),
		Name:     sensor.GetName(),
		Type:     sensor.GetType().String(),
		Value:    optionalValue(sensor.GetValue()),
		Average:  optionalValue(sensor.Average()),
		Smoothed: optionalValue(sensor.Smoothed()),
		Min:      optionalValue(sensor.Min()),
		Max:      optionalValue(sensor.Max()),
	}
	if withValues {
		dto.Values = sensor.Values()
	}
	return dto
}

func registerSensorEndpoints(rest *echo.Echo, backend Backend) {
	group := rest.Group("/sensor")

	group.GET("/", func(c echo.Context) error {
		return getSensors(c, backend)
	})
	group.GET("/*", func(c echo.Context) error {
		return getSensor(c, backend)
	})
	// DELETE /sensor/<id>/min|max|minmax/ resets the recorded extremes
	group.DELETE("/*", func(c echo.Context) error {
		return resetSensorExtremes(c, backend)
	})
}

func getSensors(c echo.Context, backend Backend) error {
	data := []SensorDto{}
	for _, sensor := range backend.Topology.Sensors() {
		data = append(data, newSensorDto(sensor, false))
	}
	return c.JSONPretty(http.StatusOK, data, indentationChar)
}

func getSensor(c echo.Context, backend Backend) error {
	id := idParam(c)

	sensor, exists := backend.findSensor(id)
	if !exists {
		return returnNotFound(c, id)
	}
	return c.JSONPretty(http.StatusOK, newSensorDto(sensor, true), indentationChar)
}

func resetSensorExtremes(c echo.Context, backend Backend) error {
	path := idParam(c)
	separatorIndex := strings.LastIndex(path, "/")
	if separatorIndex < 0 {
		return returnBadRequest(c, fmt.Errorf("expected /sensor/<id>/%s/", resetMinMax))
	}
	id, target := path[:separatorIndex], path[separatorIndex+1:]

	sensor, exists := backend.findSensor(id)
	if !exists {
		return returnNotFound(c, id)
	}

	switch target {
	case resetMin:
		sensor.ResetMin()
	case resetMax:
		sensor.ResetMax()
	case resetMinMax:
		sensor.ResetMin()
		sensor.ResetMax()
	default:
		return returnBadRequest(c, fmt.Errorf("unknown reset target '%s', expected one of %s, %s, %s", target, resetMin, resetMax, resetMinMax))
	}
	return c.JSONPretty(http.StatusOK, newSensorDto(sensor, false), indentationChar)
}
