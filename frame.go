package textfx

import (
	"context"
	"time"
)

// DefaultFrameInterval is the frame period used by NewTicker when none is
// given.
const DefaultFrameInterval = time.Second / 60

// FrameSource delivers per-frame notifications from the host.
//
// NextFrame blocks until the host is ready for the next frame. It returns
// ctx.Err() when ctx is done, ErrNoMoreFrames when a finite source is
// exhausted, or any error that should end the animation.
type FrameSource interface {
	NextFrame(ctx context.Context) error
}

// FrameSourceFunc adapts a function to FrameSource.
type FrameSourceFunc func(ctx context.Context) error

// NextFrame implements FrameSource.
func (f FrameSourceFunc) NextFrame(ctx context.Context) error {
	return f(ctx)
}

// Ticker is a FrameSource backed by time.Ticker. Late frames are dropped,
// never caught up.
type Ticker struct {
	t *time.Ticker
}

// NewTicker creates a Ticker firing every interval. A non-positive interval
// means DefaultFrameInterval.
func NewTicker(interval time.Duration) *Ticker {
	if interval <= 0 {
		interval = DefaultFrameInterval
	}
	return &Ticker{t: time.NewTicker(interval)}
}

// NextFrame implements FrameSource.
func (t *Ticker) NextFrame(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.t.C:
		return nil
	}
}

// Stop turns off the ticker.
func (t *Ticker) Stop() {
	t.t.Stop()
}

// Frames returns a source that yields n frames immediately and then
// ErrNoMoreFrames. It is meant for headless rendering.
func Frames(n int) FrameSource {
	remaining := n
	return FrameSourceFunc(func(ctx context.Context) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if remaining <= 0 {
			return ErrNoMoreFrames
		}
		remaining--
		return nil
	})
}
