package repl

import (
	"sync"

	"go.uber.org/zap"

	"github.com/atinylittleshell/agentchat/internal/repl/render"
)

// Shutdown is the single termination routine of a chat process. Interrupts,
// "exit", end of input and fatal network errors all end up in Terminate,
// which prints the notice and runs cleanup hooks exactly once.
type Shutdown struct {
	renderer *render.Renderer
	logger   *zap.Logger

	mu    sync.Mutex
	hooks []func()

	once sync.Once
	done chan struct{}
}

// NewShutdown creates a Shutdown that reports through renderer.
func NewShutdown(renderer *render.Renderer, logger *zap.Logger) *Shutdown {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Shutdown{
		renderer: renderer,
		logger:   logger,
		done:     make(chan struct{}),
	}
}

// OnShutdown registers a cleanup hook. Hooks run in reverse registration
// order. Hooks registered after Terminate never run.
func (s *Shutdown) OnShutdown(hook func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hooks = append(s.hooks, hook)
}

// Terminate prints the termination notice and runs the cleanup hooks. It is
// safe to call from any goroutine; only the first call has an effect.
func (s *Shutdown) Terminate() {
	s.once.Do(func() {
		s.logger.Debug("terminating session")
		if s.renderer != nil {
			s.renderer.RenderTermination()
		}

		s.mu.Lock()
		hooks := s.hooks
		s.hooks = nil
		s.mu.Unlock()

		for i := len(hooks) - 1; i >= 0; i-- {
			hooks[i]()
		}
		close(s.done)
	})
}

// terminated reports whether Terminate has finished.
func (s *Shutdown) terminated() bool {
	select {
	case <-s.done:
		return true
	default:
		return false
	}
}
