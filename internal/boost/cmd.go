package boost

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/markusressel/boost2go/internal/ui"
	"github.com/markusressel/boost2go/internal/util"
)

const (
	cmdTimeout = 2 * time.Second

	PlaceholderEnabled = "%enabled%"
	PlaceholderMin     = "%min%"
	PlaceholderMax     = "%max%"
)

// Command is an executable with its arguments. Arguments may contain placeholders.
type Command struct {
	Exec string
	Args []string
}

func (c Command) withArgs(replacer *strings.Replacer) (string, []string) {
	args := make([]string, len(c.Args))
	for i, arg := range c.Args {
		args[i] = replacer.Replace(arg)
	}
	return c.Exec, args
}

// CmdActuator runs user provided commands to switch boost and to limit the performance level.
// SetBoost receives %enabled% as 1 or 0, SetLevel receives %min% and %max% in percent.
// If GetBoost is set, its output (1 or 0) is used as the initial boost state.
type CmdActuator struct {
	mu sync.Mutex

	SetBoost *Command
	GetBoost *Command
	SetLevel *Command

	execute func(executable string, args []string, timeout time.Duration) (string, error)

	enabled  bool
	minLevel int
	maxLevel int
}

func NewCmdActuator(setBoost *Command, getBoost *Command, setLevel *Command) *CmdActuator {
	a := &CmdActuator{
		SetBoost: setBoost,
		GetBoost: getBoost,
		SetLevel: setLevel,
		execute:  util.SafeCmdExecution,
		enabled:  true,
		minLevel: -1,
		maxLevel: -1,
	}
	a.readBoostState()
	return a
}

func (a *CmdActuator) readBoostState() {
	if a.GetBoost == nil {
		return
	}
	output, err := a.execute(a.GetBoost.Exec, a.GetBoost.Args, cmdTimeout)
	if err != nil {
		ui.Warning("Unable to read boost state using %s: %v", a.GetBoost.Exec, err)
		return
	}
	value, err := strconv.Atoi(strings.TrimSpace(output))
	if err != nil {
		ui.Warning("Unable to read int from command output: %s", a.GetBoost.Exec)
		return
	}
	a.enabled = value == 1
}

func (a *CmdActuator) EnableBoost(enable bool) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if enable == a.enabled {
		return nil
	}
	if a.SetBoost == nil {
		return errors.New("no boost command configured")
	}

	value := "0"
	if enable {
		value = "1"
	}
	exec, args := a.SetBoost.withArgs(strings.NewReplacer(PlaceholderEnabled, value))
	if _, err := a.execute(exec, args, cmdTimeout); err != nil {
		return fmt.Errorf("unable to set boost state using %s: %w", exec, err)
	}
	a.enabled = enable
	ui.Debug("Boost enabled: %v", enable)
	return nil
}

func (a *CmdActuator) CanBoost() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.enabled
}

func (a *CmdActuator) SetPerformanceLevel(min int, max int) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.SetLevel == nil || (min == a.minLevel && max == a.maxLevel) {
		return nil
	}

	exec, args := a.SetLevel.withArgs(strings.NewReplacer(
		PlaceholderMin, strconv.Itoa(min),
		PlaceholderMax, strconv.Itoa(max),
	))
	if _, err := a.execute(exec, args, cmdTimeout); err != nil {
		return fmt.Errorf("unable to set performance level using %s: %w", exec, err)
	}
	a.minLevel = min
	a.maxLevel = max
	ui.Debug("Performance level set to [%d..%d]", min, max)
	return nil
}
