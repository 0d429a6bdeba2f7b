package control

import (
	"fmt"

	"github.com/markusressel/boost2go/internal/configuration"
	"github.com/markusressel/boost2go/internal/control"
	"github.com/markusressel/boost2go/internal/persistence"
	"github.com/markusressel/boost2go/internal/scheduler"
	"github.com/spf13/cobra"
)

var controlId string

var Command = &cobra.Command{
	Use:   "control",
	Short: "Control related commands",
	Long: `Reads and modifies the persisted state of controls.
Changes are picked up by the daemon on its next start, use the REST api to change a running daemon.`,
	TraverseChildren: true,
}

func init() {
	Command.PersistentFlags().StringVarP(
		&controlId,
		"id", "i",
		"",
		"Control ID as specified in the config",
	)
}

// loadControl restores the persisted state of the configured control with the given id
func loadControl(settings persistence.Settings, id string) (*control.Control, error) {
	var availableIds []string
	for _, config := range configuration.CurrentConfig.Controls {
		availableIds = append(availableIds, config.ID)
		if config.ID == id {
			s := scheduler.New(configuration.CurrentConfig.ControlTickRate)
			return control.New(config.ID, settings, s, config.GetMin(0), config.GetMax(100)), nil
		}
	}

	return nil, fmt.Errorf("no control with id found: %s, options: %s", id, availableIds)
}
