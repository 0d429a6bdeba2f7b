package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/markusressel/boost2go/internal/control"
	"github.com/markusressel/boost2go/internal/curves"
	"github.com/markusressel/boost2go/internal/sensors"
)

type ControlDto struct {
	Id         string  `json:"id"`
	Mode       string  `json:"mode"`
	ActualMode string  `json:"actualMode"`
	Value      float64 `json:"value"`
	Min        float64 `json:"min"`
	Max        float64 `json:"max"`
	Curve      string  `json:"curve,omitempty"`
}

// ControlUpdate changes the mode of a control. Value is required for the "software" mode,
// Curve for the "curve" mode. MaxSpeed optionally forces 100% for the given number of seconds.
type ControlUpdate struct {
	Mode     string   `json:"mode"`
	Value    *float64 `json:"value,omitempty"`
	Curve    string   `json:"curve,omitempty"`
	MaxSpeed *int     `json:"maxSpeed,omitempty"`
}

func newControlDto(c *control.Control) ControlDto {
	dto := ControlDto{
		Id:         c.GetId(),
		Mode:       c.ControlMode().String(),
		ActualMode: c.ActualControlMode().String(),
		Value:      c.SoftwareValue(),
		Min:        c.MinSoftwareValue(),
		Max:        c.MaxSoftwareValue(),
	}
	if curve, ok := c.GetSoftwareCurve(); ok {
		dto.Curve = curve.String()
	}
	return dto
}

func registerControlEndpoints(rest *echo.Echo, backend Backend) {
	group := rest.Group("/control")

	group.GET("/", func(c echo.Context) error {
		return getControls(c, backend)
	})
	group.GET("/*", func(c echo.Context) error {
		return getControl(c, backend)
	})
	group.PUT("/*", func(c echo.Context) error {
		return updateControl(c, backend)
	})
}

func getControls(c echo.Context, backend Backend) error {
	data := []ControlDto{}
	for _, ctrl := range backend.Controls {
		data = append(data, newControlDto(ctrl))
	}
	return c.JSONPretty(http.StatusOK, data, indentationChar)
}

func getControl(c echo.Context, backend Backend) error {
	id := idParam(c)

	ctrl := backend.findControl(id)
	if ctrl == nil {
		return returnNotFound(c, id)
	}
	return c.JSONPretty(http.StatusOK, newControlDto(ctrl), indentationChar)
}

func updateControl(c echo.Context, backend Backend) error {
	id := idParam(c)

	ctrl := backend.findControl(id)
	if ctrl == nil {
		return returnNotFound(c, id)
	}

	update := ControlUpdate{}
	if err := c.Bind(&update); err != nil {
		return returnBadRequest(c, err)
	}
	if err := applyControlUpdate(ctrl, update, backend); err != nil {
		return returnBadRequest(c, err)
	}

	return c.JSONPretty(http.StatusOK, newControlDto(ctrl), indentationChar)
}

func applyControlUpdate(ctrl *control.Control, update ControlUpdate, backend Backend) error {
	if len(update.Mode) > 0 {
		mode, err := control.ParseMode(update.Mode)
		if err != nil {
			return err
		}

		switch mode {
		case control.Default:
			ctrl.SetDefault()
		case control.Software:
			if update.Value == nil {
				return errors.New("missing value for software mode")
			}
			ctrl.SetSoftware(*update.Value)
		case control.SoftwareCurve:
			if err := setCurve(ctrl, update.Curve, backend); err != nil {
				return err
			}
		default:
			return fmt.Errorf("mode cannot be set: %s", mode)
		}
	}

	if update.MaxSpeed != nil {
		ctrl.SetMaxSpeed(*update.MaxSpeed)
	}
	return nil
}

func setCurve(ctrl *control.Control, value string, backend Backend) error {
	config, err := curves.Parse(value)
	if err != nil {
		return err
	}

	sensor, ok := backend.Topology.FindSensor(config.SensorId)
	if !ok {
		return fmt.Errorf("unknown sensor: %s", config.SensorId)
	}

	var loadSensor sensors.Source
	if len(config.LoadSensorId) > 0 {
		load, ok := backend.Topology.FindSensor(config.LoadSensorId)
		if !ok {
			return fmt.Errorf("unknown load sensor: %s", config.LoadSensorId)
		}
		loadSensor = load
	}

	return ctrl.SetSoftwareCurve(config, sensor, loadSensor)
}
