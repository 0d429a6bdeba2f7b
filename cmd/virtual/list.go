package virtual

import (
	"strconv"

	"github.com/markusressel/boost2go/cmd/global"
	"github.com/markusressel/boost2go/internal/hardware"
	"github.com/markusressel/boost2go/internal/ui"
	"github.com/spf13/cobra"
	"github.com/tomlazar/table"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Print all virtual sensor definitions",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		settings := global.OpenSettings()

		var rows [][]string
		for i := 0; i < hardware.MaxVirtualSensors; i++ {
			key := hardware.VirtualSourceKey(i)
			if !settings.Contains(key) {
				continue
			}
			rows = append(rows, []string{
				strconv.Itoa(i), hardware.VirtualSensorId(i), settings.Get(key, ""),
			})
		}

		if len(rows) <= 0 {
			ui.Printfln("No virtual sensors defined")
			return nil
		}

		tableString, err := global.RenderTable(table.Table{
			Headers: []string{"Index", "ID", "Definition"},
			Rows:    rows,
		})
		if err != nil {
			return err
		}
		ui.Printfln("%s", tableString)
		return nil
	},
}

func init() {
	Command.AddCommand(listCmd)
}
