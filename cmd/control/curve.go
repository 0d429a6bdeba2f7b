package control

import (
	"strconv"

	"github.com/markusressel/boost2go/cmd/global"
	"github.com/markusressel/boost2go/internal/control"
	"github.com/markusressel/boost2go/internal/curves"
	"github.com/markusressel/boost2go/internal/ui"
	"github.com/spf13/cobra"
)

var curveCmd = &cobra.Command{
	Use:   "curve <curve>",
	Short: "Persist a curve for a control and select the curve mode",
	Long: `The curve is given in the format
stopTemp!startTemp;in1:out1;in2:out2;...;sensorId[,loadSensorId|stepSpeed]`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		config, err := curves.Parse(args[0])
		if err != nil {
			return err
		}
		if err := config.Validate(); err != nil {
			return err
		}

		settings := global.OpenSettings()
		if _, err := loadControl(settings, controlId); err != nil {
			return err
		}

		if err := settings.Set(control.CurveKey(controlId), config.String()); err != nil {
			return err
		}
		if err := settings.Set(control.ModeKey(controlId), strconv.Itoa(int(control.SoftwareCurve))); err != nil {
			return err
		}

		ui.Success("Curve of %s set to %s", controlId, config.String())
		return nil
	},
}

func init() {
	Command.AddCommand(curveCmd)
}
