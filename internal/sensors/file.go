package sensors

import (
	"github.com/markusressel/boost2go/internal/util"
)

// Reader acquires a single raw reading
type Reader interface {
	Read() (float64, error)
}

// FileReader reads a number from a file, e.g. a sysfs attribute.
// The raw value is multiplied by Scale, so millidegrees can be converted using 0.001.
type FileReader struct {
	Path  string
	Scale float64
}

func (r FileReader) Read() (float64, error) {
	value, err := util.ReadFloatFromFile(r.Path)
	if err != nil {
		return 0, err
	}
	return scale(value, r.Scale), nil
}

func scale(value float64, factor float64) float64 {
	if factor == 0 {
		return value
	}
	return value * factor
}
