package cli

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"
)

// syncBuffer guards a bytes.Buffer shared with the spinner goroutine.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestSpinnerDrawsAndStops(t *testing.T) {
	var out syncBuffer
	s := startSpinner(context.Background(), &out, "Valuing 4 nodes...")
	time.Sleep(3 * spinnerInterval)

	s.Stop()
	s.Stop()

	if !strings.Contains(out.String(), "Valuing 4 nodes...") {
		t.Errorf("output %q should contain the message", out.String())
	}
	if s.Cancelled() {
		t.Error("Stop should not count as cancellation")
	}
}

func TestSpinnerCancelled(t *testing.T) {
	tests := []struct {
		name string
		ctx  func() (context.Context, context.CancelFunc)
	}{
		{"cancel", func() (context.Context, context.CancelFunc) {
			ctx, cancel := context.WithCancel(context.Background())
			cancel()
			return ctx, cancel
		}},
		{"timeout", func() (context.Context, context.CancelFunc) {
			return context.WithTimeout(context.Background(), 20*time.Millisecond)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, cancel := tt.ctx()
			defer cancel()

			s := startSpinner(ctx, &syncBuffer{}, "Valuing...")
			time.Sleep(100 * time.Millisecond)

			if !s.Cancelled() {
				t.Error("spinner should report cancellation")
			}
			s.Stop()
		})
	}
}

func TestSpinnerStopWith(t *testing.T) {
	var out syncBuffer
	startSpinner(context.Background(), &out, "Rendering...").StopWith(nil, "Rendered net.svg")
	if !strings.Contains(out.String(), "Rendered net.svg") {
		t.Errorf("success output = %q", out.String())
	}

	var failed syncBuffer
	startSpinner(context.Background(), &failed, "Rendering...").StopWith(errors.New("rsvg-convert not found"), "Render failed")
	if !strings.Contains(failed.String(), "rsvg-convert not found") {
		t.Errorf("error output = %q", failed.String())
	}
}
