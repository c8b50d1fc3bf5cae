package textfx

import "errors"

// Common errors returned by textfx operations.
var (
	// ErrNoHost is returned when the effect is attached to a nil host.
	// The effect is decoration only, so callers usually log it and carry on.
	ErrNoHost = errors.New("textfx: host element not found")

	// ErrNotIdle is returned when Initialize is called on a driver that has
	// already been started. A stopped driver cannot be restarted.
	ErrNotIdle = errors.New("textfx: driver is not idle")

	// ErrNoMoreFrames is returned by finite frame sources once exhausted.
	// Run treats it as a normal end of the animation.
	ErrNoMoreFrames = errors.New("textfx: no more frames")

	// ErrInvalidConfig is returned when a Config fails validation.
	ErrInvalidConfig = errors.New("textfx: invalid config")

	// ErrInvalidFont is returned when a CSS font value cannot be parsed.
	ErrInvalidFont = errors.New("textfx: invalid font")
)
