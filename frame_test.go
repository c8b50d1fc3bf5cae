package textfx

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestFrames(t *testing.T) {
	src := Frames(3)
	ctx := context.Background()
	for i := range 3 {
		if err := src.NextFrame(ctx); err != nil {
			t.Fatalf("frame %d: %v", i, err)
		}
	}
	for range 2 {
		if err := src.NextFrame(ctx); !errors.Is(err, ErrNoMoreFrames) {
			t.Errorf("exhausted source error = %v, want ErrNoMoreFrames", err)
		}
	}
}

func TestFramesZero(t *testing.T) {
	if err := Frames(0).NextFrame(context.Background()); !errors.Is(err, ErrNoMoreFrames) {
		t.Errorf("Frames(0) error = %v, want ErrNoMoreFrames", err)
	}
}

func TestFramesCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := Frames(10).NextFrame(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", err)
	}
}

func TestFrameSourceFunc(t *testing.T) {
	called := false
	want := errors.New("boom")
	src := FrameSourceFunc(func(context.Context) error {
		called = true
		return want
	})
	if err := src.NextFrame(context.Background()); !errors.Is(err, want) {
		t.Errorf("error = %v, want %v", err, want)
	}
	if !called {
		t.Error("function was not called")
	}
}

func TestTicker(t *testing.T) {
	tk := NewTicker(time.Millisecond)
	t.Cleanup(tk.Stop)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	for i := range 3 {
		if err := tk.NextFrame(ctx); err != nil {
			t.Fatalf("tick %d: %v", i, err)
		}
	}
}

func TestTickerCanceled(t *testing.T) {
	tk := NewTicker(time.Hour)
	t.Cleanup(tk.Stop)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	if err := tk.NextFrame(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("error = %v, want context.DeadlineExceeded", err)
	}
}
