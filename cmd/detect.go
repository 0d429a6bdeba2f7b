package cmd

import (
	"strconv"

	"github.com/markusressel/boost2go/cmd/global"
	"github.com/markusressel/boost2go/internal"
	"github.com/markusressel/boost2go/internal/configuration"
	"github.com/markusressel/boost2go/internal/hardware"
	"github.com/markusressel/boost2go/internal/lmsensors"
	"github.com/markusressel/boost2go/internal/ui"
	"github.com/spf13/cobra"
	"github.com/tomlazar/table"
)

var detectCmd = &cobra.Command{
	Use:   "detect",
	Short: "Detect devices",
	Long:  `Detects all hardware and sensors and prints them as a list`,
	Run: func(cmd *cobra.Command, args []string) {
		settings := global.OpenSettings()

		topology, err := internal.CreateTopology(configuration.CurrentConfig, settings, func() hardware.Group {
			return lmsensors.NewGroup()
		})
		if err != nil {
			ui.Fatal("Error detecting devices: %v", err)
		}
		defer topology.Close()
		topology.Update()

		hardware.Walk(topology.Groups(), func(hw hardware.Hardware) {
			sensorList := hw.Sensors()
			if len(sensorList) <= 0 {
				return
			}

			ui.Printfln("> %s", hw.GetName())

			var rows [][]string
			for _, sensor := range sensorList {
				valueText := "N/A"
				if value, ok := sensor.GetValue(); ok {
					valueText = strconv.FormatFloat(value, 'f', 2, 64)
				}
				rows = append(rows, []string{
					sensor.GetId(), sensor.GetName(), sensor.GetType().String(), valueText,
				})
			}

			tableString, err := global.RenderTable(table.Table{
				Headers: []string{"ID", "Label", "Type", "Value"},
				Rows:    rows,
			})
			if err != nil {
				ui.Fatal("Error printing table: %v", err)
			}
			ui.Printfln("%s", tableString)
		})
	},
}

func init() {
	rootCmd.AddCommand(detectCmd)
}
