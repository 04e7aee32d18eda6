// Package repl provides the interactive chat session: agent resolution, the
// read-dispatch-render loop and the shared shutdown routine.
package repl

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"

	"github.com/atinylittleshell/agentchat/internal/agentapi"
	"github.com/atinylittleshell/agentchat/internal/repl/render"
)

// ExitCommand ends the session when typed on its own, in any casing.
const ExitCommand = "exit"

const maxLineSize = 1024 * 1024

// Options configures a Session.
type Options struct {
	Service  agentapi.Service
	Agent    agentapi.Agent
	Input    io.Reader
	Renderer *render.Renderer
	Shutdown *Shutdown

	// Logger for diagnostics. If nil, a no-op logger is used.
	Logger *zap.Logger
}

// Session is one chat bound to a single agent. It holds at most one
// outstanding request at a time.
type Session struct {
	service  agentapi.Service
	agent    agentapi.Agent
	input    io.Reader
	renderer *render.Renderer
	shutdown *Shutdown
	logger   *zap.Logger
}

// NewSession creates a Session. A nil Shutdown gets a private one.
func NewSession(opts Options) *Session {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	shutdown := opts.Shutdown
	if shutdown == nil {
		shutdown = NewShutdown(opts.Renderer, logger)
	}

	return &Session{
		service:  opts.Service,
		agent:    opts.Agent,
		input:    opts.Input,
		renderer: opts.Renderer,
		shutdown: shutdown,
		logger:   logger,
	}
}

// IsExitCommand reports whether a trimmed input line asks to leave.
func IsExitCommand(line string) bool {
	return strings.EqualFold(line, ExitCommand)
}

// Run prints the session banner and loops until the user exits, input ends,
// ctx is cancelled, input cannot be read or a dispatch fails. Every path ends
// in the shared Shutdown. The last two yield *InputReadError and
// *MessageDispatchError respectively; everything else returns nil.
func (s *Session) Run(ctx context.Context) error {
	defer s.shutdown.Terminate()

	s.logger.Debug("chat", zap.String("agentName", s.agent.Name), zap.String("agentId", s.agent.ID))
	s.renderer.RenderChatStarted()
	s.renderer.RenderAgentBanner(s.agent)

	lines := readLines(s.input)

	for {
		s.renderer.RenderPrompt()

		var line string
		select {
		case <-ctx.Done():
			s.renderer.RenderInterrupted()
			s.logger.Info("session interrupted while awaiting input")
			return nil
		case l, ok := <-lines:
			if !ok {
				s.renderer.RenderInterrupted()
				s.logger.Debug("end of input")
				return nil
			}
			if l.err != nil {
				s.renderer.RenderInterrupted()
				s.logger.Warn("failed to read input", zap.Error(l.err))
				s.renderer.RenderError(fmt.Sprintf("Failed to read input: %v", l.err))
				return &InputReadError{Err: l.err}
			}
			line = strings.TrimSpace(l.text)
		}

		s.logger.Debug("handleUserInput",
			zap.String("input", line),
			zap.String("agentName", s.agent.Name),
			zap.String("agentId", s.agent.ID))

		if IsExitCommand(line) {
			return nil
		}

		replies, err := s.dispatch(ctx, line)
		if ctx.Err() != nil {
			s.renderer.RenderInterrupted()
			s.logger.Info("session interrupted while awaiting response")
			return nil
		}
		if err != nil {
			s.logger.Warn("message dispatch failed", zap.Error(err))
			s.renderer.RenderError(fmt.Sprintf("Error fetching response: %v", err))
			return &MessageDispatchError{Err: err}
		}

		s.logger.Debug("data", zap.Any("replies", replies))
		s.renderer.RenderMessages(replies)
	}
}

type dispatchResult struct {
	replies []agentapi.IncomingMessage
	err     error
}

// dispatch sends one message and waits for the reply or for ctx. A reply
// that arrives after ctx is done lands in the buffered channel and is
// dropped.
func (s *Session) dispatch(ctx context.Context, text string) ([]agentapi.IncomingMessage, error) {
	stopWaiting := s.renderer.StartWaiting(ctx, s.agent.Name)
	defer stopWaiting()

	results := make(chan dispatchResult, 1)
	go func() {
		replies, err := s.service.SendMessage(ctx, s.agent.ID, agentapi.NewOutgoingMessage(text))
		results <- dispatchResult{replies: replies, err: err}
	}()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-results:
		return res.replies, res.err
	}
}

// inputLine is one line of user input, or the error that ended reading.
type inputLine struct {
	text string
	err  error
}

// readLines streams input lines until EOF or a read error, then closes the
// channel. A read error is delivered as the last item. The goroutine may
// outlive the session while blocked on a read.
func readLines(r io.Reader) <-chan inputLine {
	lines := make(chan inputLine)
	go func() {
		defer close(lines)

		scanner := bufio.NewScanner(r)
		scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
		for scanner.Scan() {
			lines <- inputLine{text: scanner.Text()}
		}
		if err := scanner.Err(); err != nil {
			lines <- inputLine{err: err}
		}
	}()
	return lines
}
