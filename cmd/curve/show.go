package curve

import (
	"github.com/markusressel/boost2go/internal/curves"
	"github.com/markusressel/boost2go/internal/ui"
	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show <curve>",
	Short: "Print a curve, given in its persisted format",
	Long: `Prints a curve given in the format
stopTemp!startTemp;in1:out1;in2:out2;...;sensorId[,loadSensorId|stepSpeed]`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		config, err := curves.Parse(args[0])
		if err != nil {
			return err
		}

		output, err := render("Curve", config)
		if err != nil {
			return err
		}
		ui.Printfln("%s", output)
		return nil
	},
}

func init() {
	Command.AddCommand(showCmd)
}
