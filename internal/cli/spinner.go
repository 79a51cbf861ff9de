package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

const spinnerInterval = 80 * time.Millisecond

// Spinner animates a one-line status message until stopped or until its
// context ends.
type Spinner struct {
	w       io.Writer
	message string
	parent  context.Context
	cancel  context.CancelFunc
	stopped chan struct{}
	once    sync.Once
	mu      sync.Mutex
}

// startSpinner draws message on w until Stop is called or ctx ends.
func startSpinner(ctx context.Context, w io.Writer, message string) *Spinner {
	inner, cancel := context.WithCancel(ctx)
	s := &Spinner{
		w:       w,
		message: message,
		parent:  ctx,
		cancel:  cancel,
		stopped: make(chan struct{}),
	}
	go s.run(inner)
	return s
}

func (s *Spinner) run(ctx context.Context) {
	defer close(s.stopped)
	ticker := time.NewTicker(spinnerInterval)
	defer ticker.Stop()

	for i := 0; ; i++ {
		select {
		case <-ctx.Done():
			s.clear()
			return
		case <-ticker.C:
			s.mu.Lock()
			fmt.Fprintf(s.w, "\r%s %s", styleIconSpinner.Render(spinnerFrames[i%len(spinnerFrames)]), StyleDim.Render(s.message))
			s.mu.Unlock()
		}
	}
}

func (s *Spinner) clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprintf(s.w, "\r%s\r", strings.Repeat(" ", len(s.message)+4))
}

// Stop ends the animation and erases the line. It is safe to call twice.
func (s *Spinner) Stop() {
	s.once.Do(func() {
		s.cancel()
		<-s.stopped
	})
}

// StopWith stops the spinner and prints a success line, or an error line
// when err is non-nil.
func (s *Spinner) StopWith(err error, message string) {
	s.Stop()
	if err != nil {
		printError(s.w, "%s: %v", message, err)
		return
	}
	printSuccess(s.w, "%s", message)
}

// Cancelled reports whether the caller's context ended the spinner.
func (s *Spinner) Cancelled() bool {
	return s.parent.Err() != nil
}
