package render

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/atinylittleshell/agentchat/internal/agentapi"
)

func newTestRenderer(width int) (*Renderer, *bytes.Buffer, *bytes.Buffer) {
	var out, errOut bytes.Buffer
	renderer := New(&out, &errOut, func() int { return width })
	return renderer, &out, &errOut
}

func TestNewRenderer(t *testing.T) {
	var out, errOut bytes.Buffer
	renderer := New(&out, &errOut, nil)

	assert.NotNil(t, renderer)
	assert.Equal(t, 0, renderer.getTerminalWidth())
	assert.False(t, renderer.interactive)
}

func TestRenderMessage_RichForm(t *testing.T) {
	renderer, out, _ := newTestRenderer(0)

	renderer.RenderMessage(agentapi.IncomingMessage{User: "Eliza", Action: "NONE", Text: "Hello there"})

	assert.Equal(t, "Agent::Eliza::NONE: Hello there\n\n", out.String())
}

func TestRenderMessage_MinimalForm(t *testing.T) {
	renderer, out, _ := newTestRenderer(0)

	renderer.RenderMessage(agentapi.IncomingMessage{Text: "  spacing\tis kept  "})

	assert.Equal(t, "Agent:   spacing\tis kept  \n\n", out.String())
}

func TestRenderMessages_OrderAndSeparators(t *testing.T) {
	renderer, out, _ := newTestRenderer(0)

	renderer.RenderMessages([]agentapi.IncomingMessage{
		{User: "a", Action: "x", Text: "first"},
		{User: "b", Action: "y", Text: "second"},
		{User: "c", Action: "z", Text: "third"},
	})

	assert.Equal(t,
		"Agent::a::x: first\n\nAgent::b::y: second\n\nAgent::c::z: third\n\n",
		out.String())
}

func TestRenderMessages_Empty(t *testing.T) {
	renderer, out, _ := newTestRenderer(0)
	renderer.RenderMessages(nil)
	assert.Empty(t, out.String())
}

func TestRenderMessage_TextUnalteredAtNarrowWidth(t *testing.T) {
	renderer, out, _ := newTestRenderer(20)

	renderer.RenderMessage(agentapi.IncomingMessage{Text: "alpha beta gamma delta epsilon   zeta"})

	assert.Equal(t, "Agent: alpha beta gamma delta epsilon   zeta\n\n", out.String())
}

func TestRenderError_WrapsToTerminalWidth(t *testing.T) {
	renderer, out, errOut := newTestRenderer(20)

	renderer.RenderError("Error fetching response: unexpected status 502")

	for _, l := range strings.Split(strings.TrimSuffix(errOut.String(), "\n"), "\n") {
		assert.LessOrEqual(t, len(l), 20)
	}
	assert.Equal(t, "Error fetching response: unexpected status 502", strings.Join(strings.Fields(errOut.String()), " "))
	assert.Empty(t, out.String())
}

func TestRenderBanners(t *testing.T) {
	renderer, out, _ := newTestRenderer(0)

	renderer.RenderChatStarted()
	renderer.RenderAgentBanner(agentapi.Agent{ID: "a-1", Name: "Eliza"})

	assert.Equal(t,
		"Chat started. Type 'exit' to quit.\n\nAgent Name: Eliza\nAgent ID: a-1\n\n",
		out.String())
}

func TestRenderPromptAndTermination(t *testing.T) {
	renderer, out, _ := newTestRenderer(0)

	renderer.RenderPrompt()
	renderer.RenderInterrupted()
	renderer.RenderTermination()

	assert.Equal(t, "You: \nTerminating and cleaning up resources...\n", out.String())
}

func TestRenderDiagnosticsGoToErrorWriter(t *testing.T) {
	renderer, out, errOut := newTestRenderer(0)

	renderer.RenderWarning("careful")
	renderer.RenderError("boom")
	renderer.RenderHint("try again")

	assert.Empty(t, out.String())
	assert.Equal(t, "careful\nboom\ntry again\n", errOut.String())
}

func TestStartWaiting_NonInteractiveIsNoop(t *testing.T) {
	renderer, out, _ := newTestRenderer(0)

	stop := renderer.StartWaiting(context.Background(), "Eliza")
	stop()

	assert.Empty(t, out.String())
}

func TestStartWaiting_Interactive(t *testing.T) {
	renderer, out, _ := newTestRenderer(0)
	renderer.SetInteractive(true)

	stop := renderer.StartWaiting(context.Background(), "Eliza")
	stop()

	output := out.String()
	assert.Contains(t, output, "waiting for Eliza...")
	assert.True(t, strings.HasSuffix(output, "\r\033[K"), "line is cleared when the spinner stops")
}
