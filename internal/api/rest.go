package api

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/markusressel/boost2go/internal/control"
	"github.com/markusressel/boost2go/internal/hardware"
	"github.com/markusressel/boost2go/internal/sensors"
)

const (
	indentationChar = "  "

	EndpointPathAlive = "/alive/"
)

type (
	Result struct {
		Name    string `json:"name"`
		Message string `json:"message"`
	}
)

// Backend holds the objects exposed by the REST service
type Backend struct {
	Topology *hardware.Topology
	Controls []*control.Control
}

// findControl accepts ids with or without the leading slash
func (b Backend) findControl(id string) *control.Control {
	for _, c := range b.Controls {
		if c.GetId() == id || c.GetId() == "/"+id {
			return c
		}
	}
	return nil
}

// findSensor accepts ids with or without the leading slash
func (b Backend) findSensor(id string) (*sensors.Sensor, bool) {
	if sensor, ok := b.Topology.FindSensor(id); ok {
		return sensor, true
	}
	return b.Topology.FindSensor("/" + id)
}

func CreateRestService(backend Backend) *echo.Echo {
	echoRest := echo.New()
	echoRest.HideBanner = true
	echoRest.HidePort = true

	// Root level middleware
	echoRest.Pre(middleware.AddTrailingSlash())

	echoRest.Use(middleware.Secure())
	echoRest.Use(middleware.Recover())

	echoRest.GET(EndpointPathAlive, isAlive)

	registerSensorEndpoints(echoRest, backend)
	registerControlEndpoints(echoRest, backend)

	return echoRest
}

// returns an empty "ok" answer
func isAlive(c echo.Context) error {
	return c.NoContent(http.StatusOK)
}

// idParam returns the (slash separated) id matched by a wildcard route
func idParam(c echo.Context) string {
	return strings.Trim(c.Param("*"), "/")
}

// return a "not found" message
func returnNotFound(c echo.Context, id string) (err error) {
	return c.JSONPretty(http.StatusNotFound, &Result{
		Name:    "Not found",
		Message: "No item with id '" + id + "' found",
	}, indentationChar)
}

// return the error message of an invalid request
func returnBadRequest(c echo.Context, e error) (err error) {
	return c.JSONPretty(http.StatusBadRequest, &Result{
		Name:    "Bad Request",
		Message: e.Error(),
	}, indentationChar)
}
