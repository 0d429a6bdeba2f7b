package control

import (
	"strconv"

	"github.com/markusressel/boost2go/cmd/global"
	"github.com/markusressel/boost2go/internal/configuration"
	"github.com/markusressel/boost2go/internal/control"
	"github.com/markusressel/boost2go/internal/ui"
	"github.com/spf13/cobra"
	"github.com/tomlazar/table"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Print the persisted state of all configured controls",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		settings := global.OpenSettings()

		var rows [][]string
		for _, config := range configuration.CurrentConfig.Controls {
			c, err := loadControl(settings, config.ID)
			if err != nil {
				return err
			}
			rows = append(rows, []string{
				c.GetId(),
				persistedMode(settings.Get(control.ModeKey(config.ID), "")),
				strconv.FormatFloat(c.SoftwareValue(), 'f', -1, 64),
				settings.Get(control.CurveKey(config.ID), "-"),
			})
		}

		tableString, err := global.RenderTable(table.Table{
			Headers: []string{"ID", "Mode", "Value", "Curve"},
			Rows:    rows,
		})
		if err != nil {
			return err
		}
		ui.Printfln("%s", tableString)
		return nil
	},
}

// persistedMode returns the name of a mode as stored in the settings
func persistedMode(value string) string {
	mode, err := strconv.Atoi(value)
	if err != nil {
		return control.Undefined.String()
	}
	return control.Mode(mode).String()
}

func init() {
	Command.AddCommand(listCmd)
}
