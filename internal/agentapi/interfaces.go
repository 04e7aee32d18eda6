package agentapi

import "context"

// Service is the interface for agent service operations.
// This interface allows for mocking in tests.
type Service interface {
	ListAgents(ctx context.Context) ([]Agent, error)
	SendMessage(ctx context.Context, agentID string, msg OutgoingMessage) ([]IncomingMessage, error)
}

// Ensure Client implements Service
var _ Service = (*Client)(nil)
