package control

import (
	"fmt"
	"strconv"

	"github.com/markusressel/boost2go/cmd/global"
	"github.com/markusressel/boost2go/internal/control"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var modeCmd = &cobra.Command{
	Use:   "mode [default|software <value>|curve]",
	Short: "Get/Set the persisted mode of a control",
	Long:  ``,
	Args:  cobra.RangeArgs(0, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		pterm.DisableOutput()

		settings := global.OpenSettings()
		c, err := loadControl(settings, controlId)
		if err != nil {
			return err
		}

		if len(args) > 0 {
			mode, err := control.ParseMode(args[0])
			if err != nil {
				return err
			}

			switch mode {
			case control.Default:
				c.SetDefault()
			case control.Software:
				if len(args) < 2 {
					return fmt.Errorf("missing value for mode: %s", mode)
				}
				value, err := strconv.ParseFloat(args[1], 64)
				if err != nil {
					return err
				}
				c.SetSoftware(value)
			case control.SoftwareCurve:
				// the curve is bound to its sensor by the daemon
				if !settings.Contains(control.CurveKey(controlId)) {
					return fmt.Errorf("control %s has no curve", controlId)
				}
				if err := settings.Set(control.ModeKey(controlId), strconv.Itoa(int(control.SoftwareCurve))); err != nil {
					return err
				}
			default:
				return fmt.Errorf("mode cannot be set: %s", mode)
			}
		}

		fmt.Printf("%s", persistedMode(settings.Get(control.ModeKey(controlId), "")))
		return nil
	},
}

func init() {
	Command.AddCommand(modeCmd)
}
