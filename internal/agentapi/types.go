// Package agentapi provides the types and HTTP client for talking to a remote
// agent service.
//
// The service exposes two endpoints: a directory listing the available
// agents, and a per-agent message endpoint that accepts one user message and
// answers with an ordered list of reply messages.
package agentapi

// Identity attached to every outgoing message. The service does not
// authenticate users; these values only label the speaker.
const (
	DefaultUserID   = "user"
	DefaultUserName = "User"
)

// Agent identifies a remote agent. IDs are opaque and assigned by the
// server; names are for humans and may repeat.
type Agent struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// OutgoingMessage is the body of a message request.
type OutgoingMessage struct {
	Text     string `json:"text"`
	UserID   string `json:"userId"`
	UserName string `json:"userName"`
}

// NewOutgoingMessage builds a message from the default user.
func NewOutgoingMessage(text string) OutgoingMessage {
	return OutgoingMessage{
		Text:     text,
		UserID:   DefaultUserID,
		UserName: DefaultUserName,
	}
}

// IncomingMessage is one element of an agent reply.
// Servers that only send {"text": ...} decode with blank User and Action.
type IncomingMessage struct {
	User   string `json:"user"`
	Action string `json:"action"`
	Text   string `json:"text"`
}

// IsMinimal reports whether the message carries no speaker or action label.
func (m IncomingMessage) IsMinimal() bool {
	return m.User == "" && m.Action == ""
}

// agentsResponse is the body of the directory endpoint.
type agentsResponse struct {
	Agents []Agent `json:"agents"`
}
