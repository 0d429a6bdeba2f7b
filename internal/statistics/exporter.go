package statistics

import (
	"net/http"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
)

const (
	namespace = "boost2go"

	EndpointPathMetrics = "/metrics/"
	EndpointPathAlive   = "/alive/"
)

func Register(collector prometheus.Collector) {
	prometheus.MustRegister(collector)
}

// CreateServer creates the webserver exposing the prometheus metrics
func CreateServer() *echo.Echo {
	server := echo.New()
	server.HideBanner = true
	server.HidePort = true

	// Root level middleware
	server.Pre(middleware.AddTrailingSlash())
	server.Use(middleware.Recover())

	server.GET(EndpointPathAlive, isAlive)
	server.GET(EndpointPathMetrics, echoprometheus.NewHandler())

	return server
}

// returns an empty "ok" answer
func isAlive(c echo.Context) error {
	return c.NoContent(http.StatusOK)
}
