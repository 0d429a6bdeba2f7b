package curve

import (
	"github.com/markusressel/boost2go/cmd/global"
	"github.com/markusressel/boost2go/internal/configuration"
	"github.com/markusressel/boost2go/internal/control"
	"github.com/markusressel/boost2go/internal/curves"
	"github.com/markusressel/boost2go/internal/ui"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Print the curves of all configured controls",
	RunE: func(cmd *cobra.Command, args []string) error {
		settings := global.OpenSettings()

		for idx, controlConfig := range configuration.CurrentConfig.Controls {
			if idx > 0 {
				ui.Printfln("")
				ui.Printfln("")
			}

			value := settings.Get(control.CurveKey(controlConfig.ID), "")
			if len(value) <= 0 && controlConfig.Curve != nil {
				value = controlConfig.Curve.String()
			}
			if len(value) <= 0 {
				ui.Printfln("%s: no curve", controlConfig.ID)
				continue
			}

			config, err := curves.Parse(value)
			if err != nil {
				ui.Warning("%s: invalid curve: %v", controlConfig.ID, err)
				continue
			}

			output, err := render(controlConfig.ID, config)
			if err != nil {
				return err
			}
			ui.Printfln("%s", output)
		}

		return nil
	},
}

func init() {
	Command.AddCommand(listCmd)
}
