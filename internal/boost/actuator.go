package boost

// Actuator toggles the clock boost feature and limits the performance level
// of the platform. Implementations apply commands on a best effort basis.
type Actuator interface {
	// EnableBoost enables or disables boost, nothing happens if the state does not change
	EnableBoost(enable bool) error
	// CanBoost reports whether boost is currently enabled
	CanBoost() bool
	// SetPerformanceLevel limits the performance level to [min..max] percent
	SetPerformanceLevel(min int, max int) error
}
