package render

import (
	"fmt"
	"strings"

	"github.com/atinylittleshell/agentchat/internal/agentapi"
)

// ChatStartedBanner is printed once the agent has been resolved.
const ChatStartedBanner = "Chat started. Type 'exit' to quit."

// RenderChatStarted prints the chat-started banner followed by a blank line.
func (r *Renderer) RenderChatStarted() {
	fmt.Fprintln(r.writer, ChatStartedBanner)
	fmt.Fprintln(r.writer)
}

// RenderAgentBanner prints the identity of the agent the session is bound to.
func (r *Renderer) RenderAgentBanner(agent agentapi.Agent) {
	var output strings.Builder

	output.WriteString(r.palette.label.Render("Agent Name: ") + r.palette.value.Render(agent.Name) + "\n")
	output.WriteString(r.palette.label.Render("Agent ID: ") + r.palette.dim.Render(agent.ID) + "\n")
	output.WriteString("\n")

	fmt.Fprint(r.writer, output.String())
}
