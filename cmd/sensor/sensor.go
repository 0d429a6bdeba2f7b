package sensor

import (
	"fmt"

	"github.com/markusressel/boost2go/cmd/global"
	"github.com/markusressel/boost2go/internal"
	"github.com/markusressel/boost2go/internal/configuration"
	"github.com/markusressel/boost2go/internal/hardware"
	"github.com/markusressel/boost2go/internal/lmsensors"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var sensorId string

var Command = &cobra.Command{
	Use:              "sensor",
	Short:            "Print the current value of a sensor",
	Long:             ``,
	TraverseChildren: true,
	Args:             cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		pterm.DisableOutput()

		settings := global.OpenSettings()
		topology, err := internal.CreateTopology(configuration.CurrentConfig, settings, func() hardware.Group {
			return lmsensors.NewGroup()
		})
		if err != nil {
			return err
		}
		defer topology.Close()

		sensor, ok := topology.FindSensor(sensorId)
		if !ok {
			return fmt.Errorf("no sensor with id found: %s", sensorId)
		}

		topology.Update()
		value, ok := sensor.GetValue()
		if !ok {
			return fmt.Errorf("sensor %s has no value", sensorId)
		}
		fmt.Printf("%v", value)
		return nil
	},
}

func init() {
	Command.PersistentFlags().StringVarP(
		&sensorId,
		"id", "i",
		"",
		"Sensor ID, as printed by the detect command",
	)
	_ = Command.MarkPersistentFlagRequired("id")
}
