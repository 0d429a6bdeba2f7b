package configuration

type BoostConfig struct {
	Actuator ActuatorConfig `json:"actuator"`
	Voltage  *VoltageConfig `json:"voltage,omitempty"`
	Power    *PowerConfig   `json:"power,omitempty"`
}

type ActuatorConfig struct {
	Sysfs *SysfsActuatorConfig `json:"sysfs,omitempty"`
	Cmd   *CmdActuatorConfig   `json:"cmd,omitempty"`
}

type SysfsActuatorConfig struct {
	BoostPath string `json:"boostPath"`
	// Invert is required for intel_pstate/no_turbo, where 1 means "boost disabled"
	Invert      bool   `json:"invert"`
	MinPerfPath string `json:"minPerfPath"`
	MaxPerfPath string `json:"maxPerfPath"`
}

type CmdActuatorConfig struct {
	// SetBoost is called with %enabled% replaced by 1 or 0
	SetBoost *ExecConfig `json:"setBoost,omitempty"`
	// GetBoost prints 1 if boost is currently enabled
	GetBoost *ExecConfig `json:"getBoost,omitempty"`
	// SetPerformanceLevel is called with %min% and %max% replaced by percent values
	SetPerformanceLevel *ExecConfig `json:"setPerformanceLevel,omitempty"`
}

type ExecConfig struct {
	Exec string   `json:"exec"`
	Args []string `json:"args"`
}

type VoltageConfig struct {
	Sensor string `json:"sensor"`
	// Tau is the window size in samples, 0 disables the protection
	Tau            int     `json:"tau"`
	BoostThreshold float64 `json:"boostThreshold"`
	RestThreshold  float64 `json:"restThreshold"`
}

type PowerConfig struct {
	Sensor string `json:"sensor"`
	// PPT is the power budget in watts, 0 disables throttling
	PPT float64 `json:"ppt"`
}
