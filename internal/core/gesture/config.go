package gesture

// Config selects which gestures the engine recognizes.
type Config struct {
	// Pan enables single-finger drag sessions. Off by default so plain
	// scrolling stays native.
	Pan bool
	// Rotate selects true rotation+scale solving for two-finger
	// gestures; when false only the uniform scale factor is applied.
	Rotate bool
}

// DefaultConfig returns the documented defaults: pan disabled, rotation
// enabled.
func DefaultConfig() Config {
	return Config{Pan: false, Rotate: true}
}
