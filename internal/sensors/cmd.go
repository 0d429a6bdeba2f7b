package sensors

import (
	"fmt"
	"strconv"
	"time"

	"github.com/markusressel/boost2go/internal/ui"
	"github.com/markusressel/boost2go/internal/util"
)

const cmdTimeout = 2 * time.Second

// CmdReader executes a command and parses its output as a number
type CmdReader struct {
	Exec  string
	Args  []string
	Scale float64
}

func (r CmdReader) Read() (float64, error) {
	result, err := util.SafeCmdExecution(r.Exec, r.Args, cmdTimeout)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", r.Exec, err)
	}

	value, err := strconv.ParseFloat(result, 64)
	if err != nil {
		ui.Warning("Unable to parse number from command output: %s", r.Exec)
		return 0, err
	}

	return scale(value, r.Scale), nil
}
