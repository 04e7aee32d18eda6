package repl

import (
	"errors"
	"fmt"
)

// ErrNoAgentsAvailable is returned when the agent directory is empty.
var ErrNoAgentsAvailable = errors.New("no agents available")

// AgentNotFoundError is returned when no agent carries the requested name.
type AgentNotFoundError struct {
	Name string

	// Suggestions holds close matches from the directory, best first.
	Suggestions []string
}

func (e *AgentNotFoundError) Error() string {
	return fmt.Sprintf("no agent found with name: %s", e.Name)
}

// AgentListUnavailableError is returned when the agent directory could not
// be fetched or decoded.
type AgentListUnavailableError struct {
	Err error
}

func (e *AgentListUnavailableError) Error() string {
	return fmt.Sprintf("failed to fetch agents: %v", e.Err)
}

func (e *AgentListUnavailableError) Unwrap() error {
	return e.Err
}

// MessageDispatchError is returned when sending a message or decoding the
// reply failed. It ends the session.
type MessageDispatchError struct {
	Err error
}

func (e *MessageDispatchError) Error() string {
	return fmt.Sprintf("failed to dispatch message: %v", e.Err)
}

func (e *MessageDispatchError) Unwrap() error {
	return e.Err
}

// InputReadError is returned when standard input fails mid-session, for
// example on a line longer than the reader accepts. It ends the session.
type InputReadError struct {
	Err error
}

func (e *InputReadError) Error() string {
	return fmt.Sprintf("failed to read input: %v", e.Err)
}

func (e *InputReadError) Unwrap() error {
	return e.Err
}

// ExitCode maps a session or resolution outcome to the process exit status.
// Only failures to pick an agent are fatal; everything else, including
// network failures, goes through the graceful shutdown path.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}

	var notFound *AgentNotFoundError
	if errors.Is(err, ErrNoAgentsAvailable) || errors.As(err, &notFound) {
		return 1
	}
	return 0
}
