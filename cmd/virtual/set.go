package virtual

import (
	"github.com/markusressel/boost2go/cmd/global"
	"github.com/markusressel/boost2go/internal/hardware"
	"github.com/markusressel/boost2go/internal/ui"
	"github.com/spf13/cobra"
)

var setCmd = &cobra.Command{
	Use:   "set <index> <definition>",
	Short: "Define the virtual sensor at the given index",
	Long: `The definition has the format sum|max;sensorId1;sensorId2;...
e.g. "max;/lmsensors/coretemp-isa-0000/temperature/0;/config/gpu"`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		index, err := parseIndex(args[0])
		if err != nil {
			return err
		}
		definition, err := hardware.ParseVirtualDefinition(args[1])
		if err != nil {
			return err
		}

		settings := global.OpenSettings()
		if err := settings.Set(hardware.VirtualSourceKey(index), definition.String()); err != nil {
			return err
		}

		ui.Success("Virtual sensor %s set to %s", hardware.VirtualSensorId(index), definition.String())
		return nil
	},
}

func init() {
	Command.AddCommand(setCmd)
}
