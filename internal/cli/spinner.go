package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/mattn/go-isatty"
)

var spinnerFrames = [...]string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

const spinnerInterval = 80 * time.Millisecond

// spinner animates a message on a terminal until stopped or until its
// context ends. On anything that is not a terminal it draws nothing.
type spinner struct {
	w       io.Writer
	animate bool
	message string

	mu     sync.Mutex // guards writes to w
	once   sync.Once
	quit   chan struct{}
	exited chan struct{}
}

// startSpinner starts a spinner on stderr.
func startSpinner(ctx context.Context, message string) *spinner {
	return startSpinnerOn(ctx, os.Stderr, isatty.IsTerminal(os.Stderr.Fd()), message)
}

func startSpinnerOn(ctx context.Context, w io.Writer, animate bool, message string) *spinner {
	s := &spinner{
		w:       w,
		animate: animate,
		message: message,
		quit:    make(chan struct{}),
		exited:  make(chan struct{}),
	}
	go s.run(ctx)
	return s
}

func (s *spinner) run(ctx context.Context) {
	defer close(s.exited)
	if !s.animate {
		select {
		case <-ctx.Done():
		case <-s.quit:
		}
		return
	}

	tick := time.NewTicker(spinnerInterval)
	defer tick.Stop()
	for i := 0; ; i++ {
		s.draw(spinnerFrames[i%len(spinnerFrames)])
		select {
		case <-ctx.Done():
			s.clear()
			return
		case <-s.quit:
			return
		case <-tick.C:
		}
	}
}

func (s *spinner) draw(frame string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprintf(s.w, "\r%s %s", styleIconSpinner.Render(frame), StyleDim.Render(s.message))
}

func (s *spinner) clear() {
	if !s.animate {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprintf(s.w, "\r%s\r", strings.Repeat(" ", len(s.message)+4))
}

// stop halts the animation and clears its line. Later calls are no-ops.
func (s *spinner) stop() {
	s.once.Do(func() {
		close(s.quit)
		<-s.exited
		s.clear()
	})
}

// fail stops the spinner and prints msg as an error line.
func (s *spinner) fail(msg string) {
	s.stop()
	printError("%s", msg)
}
