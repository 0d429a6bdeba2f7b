package fans

import (
	"sync"

	"github.com/markusressel/boost2go/internal/util"
)

// FileOutput writes the pwm value (0..255) to a plain file
type FileOutput struct {
	ID   string
	Path string

	mu         sync.Mutex
	lastSetPwm int
}

func NewFileOutput(id string, path string) *FileOutput {
	return &FileOutput{
		ID:         id,
		Path:       path,
		lastSetPwm: -1,
	}
}

func (o *FileOutput) GetId() string {
	return o.ID
}

func (o *FileOutput) SetValue(percent float64) error {
	pwm := PercentToPwm(percent)

	o.mu.Lock()
	defer o.mu.Unlock()
	if pwm == o.lastSetPwm {
		return nil
	}

	path, err := util.ExpandPath(o.Path)
	if err != nil {
		return err
	}
	err = util.WriteIntToFileAtomic(pwm, path)
	if err != nil {
		return err
	}
	o.lastSetPwm = pwm
	return nil
}

func (o *FileOutput) GetValue() (float64, error) {
	path, err := util.ExpandPath(o.Path)
	if err != nil {
		return 0, err
	}
	pwm, err := util.ReadIntFromFile(path)
	if err != nil {
		return 0, err
	}
	return PwmToPercent(pwm), nil
}

// SetDefault does nothing, a file has no default control
func (o *FileOutput) SetDefault() error {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.lastSetPwm = -1
	return nil
}
