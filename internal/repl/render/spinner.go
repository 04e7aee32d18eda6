package render

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// SpinnerFrames are drawn in turn while a reply is outstanding.
var SpinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// Spinner marks the wait for an agent reply. It owns the current line of the
// main writer while running and leaves it blank when stopped, so the reply
// starts where the prompt line ended.
type Spinner struct {
	writer   io.Writer
	style    lipgloss.Style
	frames   []string
	interval time.Duration
	mu       sync.Mutex
	running  bool
	message  string
	done     chan struct{} // closed once the line is cleared
}

// NewSpinner creates a Spinner drawing frames in style on writer.
func NewSpinner(writer io.Writer, style lipgloss.Style) *Spinner {
	return &Spinner{
		writer:   writer,
		style:    style,
		frames:   SpinnerFrames,
		interval: 80 * time.Millisecond,
	}
}

// SetMessage sets the status text shown next to the frame, typically which
// agent is being waited on.
func (s *Spinner) SetMessage(message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.message = message
}

// Start animates until ctx is done or the returned stop function is called.
// Stop blocks until the line is cleared so reply output never interleaves
// with a frame. It may be called more than once.
func (s *Spinner) Start(ctx context.Context) func() {
	ctx, cancel := context.WithCancel(ctx)

	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return func() { cancel() }
	}
	s.running = true
	s.done = make(chan struct{})
	done := s.done
	s.mu.Unlock()

	go s.run(ctx, done)

	return func() {
		cancel()
		<-done
	}
}

func (s *Spinner) run(ctx context.Context, done chan struct{}) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	frameIndex := 0
	s.renderFrame(frameIndex)

	for {
		select {
		case <-ctx.Done():
			s.clearLine()
			s.mu.Lock()
			s.running = false
			s.mu.Unlock()
			close(done)
			return
		case <-ticker.C:
			frameIndex = (frameIndex + 1) % len(s.frames)
			s.renderFrame(frameIndex)
		}
	}
}

func (s *Spinner) renderFrame(frameIndex int) {
	s.mu.Lock()
	message := s.message
	s.mu.Unlock()

	styledFrame := s.style.Render(s.frames[frameIndex])

	if message != "" {
		fmt.Fprintf(s.writer, "\r\033[K%s %s", styledFrame, message)
	} else {
		fmt.Fprintf(s.writer, "\r\033[K%s", styledFrame)
	}
}

func (s *Spinner) clearLine() {
	fmt.Fprint(s.writer, "\r\033[K")
}
