package virtual

import (
	"github.com/markusressel/boost2go/cmd/global"
	"github.com/markusressel/boost2go/internal/hardware"
	"github.com/markusressel/boost2go/internal/ui"
	"github.com/spf13/cobra"
)

var removeCmd = &cobra.Command{
	Use:   "remove <index>",
	Short: "Remove the virtual sensor at the given index",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		index, err := parseIndex(args[0])
		if err != nil {
			return err
		}

		settings := global.OpenSettings()
		if err := settings.Remove(hardware.VirtualSourceKey(index)); err != nil {
			return err
		}

		ui.Success("Virtual sensor %s removed", hardware.VirtualSensorId(index))
		return nil
	},
}

func init() {
	Command.AddCommand(removeCmd)
}
