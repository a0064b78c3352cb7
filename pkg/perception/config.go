package perception

// Config holds the tunable thresholds for obstacle sensing
type Config struct {
	// ObstacleThreshold is the region mean depth (meters) below which a
	// region counts as obstructed.
	ObstacleThreshold float64

	// LowerHeightThreshold is the single-sample depth (meters) below which
	// a lower-row sample counts as a lower-height obstacle hit.
	LowerHeightThreshold float64
}

// DefaultConfig returns the recommended thresholds for indoor walking pace
func DefaultConfig() Config {
	return Config{
		ObstacleThreshold:    1.0, // Alert when a region closes within 1m
		LowerHeightThreshold: 1.5, // Low obstacles need more warning time
	}
}

// CautiousConfig returns thresholds for slower users who want earlier warnings
func CautiousConfig() Config {
	cfg := DefaultConfig()
	cfg.ObstacleThreshold = 1.5
	cfg.LowerHeightThreshold = 2.0
	return cfg
}
