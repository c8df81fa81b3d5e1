package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"
)

const spinnerInterval = 80 * time.Millisecond

var spinnerFrames = []rune("⠋⠙⠹⠸⠼⠴⠦⠧⠇⠏")

// Spinner redraws one status line until Stop is called or its context ends.
type Spinner struct {
	message string
	out     io.Writer
	ctx     context.Context

	mu      sync.Mutex // guards out
	quit    chan struct{}
	wg      sync.WaitGroup
	once    sync.Once
	stopped bool
}

func newSpinner(message string) *Spinner {
	return newSpinnerWithContext(context.Background(), message)
}

func newSpinnerWithContext(ctx context.Context, message string) *Spinner {
	return &Spinner{message: message, out: os.Stderr, ctx: ctx, quit: make(chan struct{})}
}

// Start launches the redraw loop.
func (s *Spinner) Start() {
	s.wg.Add(1)
	go s.loop()
}

func (s *Spinner) loop() {
	defer s.wg.Done()
	tick := time.NewTicker(spinnerInterval)
	defer tick.Stop()

	for frame := 0; ; frame++ {
		select {
		case <-s.quit:
			return
		case <-s.ctx.Done():
			s.erase()
			return
		case <-tick.C:
			r := spinnerFrames[frame%len(spinnerFrames)]
			s.write("\r" + styleIconSpinner.Render(string(r)) + " " + StyleDim.Render(s.message))
		}
	}
}

func (s *Spinner) write(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprint(s.out, text)
}

func (s *Spinner) erase() {
	s.write("\r" + strings.Repeat(" ", len(s.message)+4) + "\r")
}

// Stop ends the loop and blanks the line. Extra calls do nothing.
func (s *Spinner) Stop() {
	s.once.Do(func() {
		close(s.quit)
		s.wg.Wait()
		s.erase()
		s.mu.Lock()
		s.stopped = true
		s.mu.Unlock()
	})
}

// StopWithSuccess stops the spinner and prints message as a success line.
func (s *Spinner) StopWithSuccess(message string) {
	s.Stop()
	printSuccess("%s", message)
}

// StopWithError stops the spinner and prints message as an error line.
func (s *Spinner) StopWithError(message string) {
	s.Stop()
	printError("%s", message)
}

// Cancelled reports whether the context ended while the spinner was running.
func (s *Spinner) Cancelled() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return !s.stopped && s.ctx.Err() != nil
}
