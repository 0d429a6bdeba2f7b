package internal

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/exec"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/markusressel/boost2go/internal/api"
	"github.com/markusressel/boost2go/internal/configuration"
	"github.com/markusressel/boost2go/internal/hardware"
	"github.com/markusressel/boost2go/internal/lmsensors"
	"github.com/markusressel/boost2go/internal/persistence"
	"github.com/markusressel/boost2go/internal/statistics"
	"github.com/markusressel/boost2go/internal/ui"
	"github.com/oklog/run"
)

const serverShutdownTimeout = 5 * time.Second

func RunDaemon() {
	if getProcessOwner() != "root" {
		ui.Fatal("Actuator control requires root permissions to be able to write to sysfs, please run boost2go as root")
	}

	config := configuration.CurrentConfig

	settings := persistence.NewBoltSettings(config.DbPath)
	if err := settings.Init(); err != nil {
		ui.Fatal("Error initializing settings database: %v", err)
	}

	backend, err := InitializeObjects(config, settings, func() hardware.Group {
		return lmsensors.NewGroup()
	})
	if err != nil {
		ui.Fatal("Error initializing objects: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())

	var g run.Group
	if config.Statistics.Enabled {
		// === Prometheus Exporter
		statistics.Register(statistics.NewSensorCollector(backend.Topology))
		statistics.Register(statistics.NewControlCollector(backend.Controls))
		statistics.Register(statistics.NewBoostCollector(backend.Actuator, backend.Voltage, backend.Power))

		addr := fmt.Sprintf(":%d", config.Statistics.Port)
		addServer(&g, "statistics", statistics.CreateServer(), addr)
	}
	if config.Api.Enabled {
		// === REST Api
		rest := api.CreateRestService(api.Backend{
			Topology: backend.Topology,
			Controls: backend.Controls,
		})
		addr := fmt.Sprintf("%s:%d", config.Api.Host, config.Api.Port)
		addServer(&g, "api", rest, addr)
	}
	{
		// === sensor monitoring
		mon := NewHardwareMonitor(backend.Topology, config.SensorPollingRate)
		g.Add(func() error {
			err := mon.Run(ctx)
			ui.Info("Hardware monitor stopped.")
			return err
		}, func(err error) {
			if err != nil {
				ui.Warning("Error monitoring hardware: %v", err)
			}
			cancel()
		})
	}
	{
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM)

		g.Add(func() error {
			select {
			case <-sig:
				ui.Info("Received SIGTERM signal, exiting...")
			case <-ctx.Done():
			}
			return nil
		}, func(err error) {
			signal.Stop(sig)
			cancel()
		})
	}

	err = g.Run()
	backend.Close()

	if err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	} else {
		ui.Info("Done.")
		os.Exit(0)
	}
}

// addServer runs the given echo server as part of the group
func addServer(g *run.Group, name string, server *echo.Echo, addr string) {
	g.Add(func() error {
		ui.Info("Starting %s server on %s", name, addr)
		if err := server.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			ui.Error("Cannot start %s server (%s)", name, err.Error())
			return err
		}
		return nil
	}, func(err error) {
		ui.Info("Stopping %s server...", name)
		timeoutCtx, timeoutCancel := context.WithTimeout(context.Background(), serverShutdownTimeout)
		defer timeoutCancel()
		if err := server.Shutdown(timeoutCtx); err != nil {
			ui.Warning("Error stopping %s server: %v", name, err)
		} else {
			ui.Info("%s server stopped.", name)
		}
	})
}

func getProcessOwner() string {
	stdout, err := exec.Command("ps", "-o", "user=", "-p", strconv.Itoa(os.Getpid())).Output()
	if err != nil {
		ui.Fatal("Error checking process owner: %v", err)
	}
	return strings.TrimSpace(string(stdout))
}
