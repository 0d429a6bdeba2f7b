package virtual

import (
	"fmt"
	"strconv"

	"github.com/markusressel/boost2go/internal/hardware"
	"github.com/spf13/cobra"
)

var Command = &cobra.Command{
	Use:   "virtual",
	Short: "Virtual sensor related commands",
	Long: `Virtual sensors combine the values of other sensors, using either the sum or the maximum.
Definitions are persisted and picked up by the daemon on its next start.`,
}

// parseIndex parses the slot of a virtual sensor
func parseIndex(value string) (int, error) {
	index, err := strconv.Atoi(value)
	if err != nil {
		return 0, err
	}
	if index < 0 || index >= hardware.MaxVirtualSensors {
		return 0, fmt.Errorf("index must be within [0, %d)", hardware.MaxVirtualSensors)
	}
	return index, nil
}
