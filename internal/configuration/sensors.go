package configuration

type SensorConfig struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	// Type is the name of a sensors.Type, e.g. "temperature" or "voltage"
	Type string            `json:"type"`
	File *FileSensorConfig `json:"file,omitempty"`
	Cmd  *CmdSensorConfig  `json:"cmd,omitempty"`
}

type FileSensorConfig struct {
	Path string `json:"path"`
	// Scale multiplies the raw value, e.g. 0.001 for millidegrees
	Scale float64 `json:"scale"`
}

type CmdSensorConfig struct {
	Exec  string   `json:"exec"`
	Args  []string `json:"args"`
	Scale float64  `json:"scale"`
}

type LmSensorsConfig struct {
	Enabled DefaultTrueBool `json:"enabled"`
}
