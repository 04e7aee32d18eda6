package render

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"github.com/atinylittleshell/agentchat/internal/agentapi"
	"github.com/atinylittleshell/agentchat/internal/styles"
)

// Prompt is printed before each line of user input.
const Prompt = "You: "

// TerminationNotice is printed once when the session shuts down.
const TerminationNotice = "Terminating and cleaning up resources..."

// Renderer handles all chat output. Status messages, prompts and agent
// replies go to the main writer; warnings and errors go to the error writer.
type Renderer struct {
	writer    io.Writer
	errWriter io.Writer
	termWidth func() int

	palette palette
	styles  *styles.Styles

	// interactive enables terminal-only effects such as the wait spinner
	interactive bool
}

// New creates a new Renderer instance. termWidth may be nil, in which case
// status lines on the error writer are never wrapped. Reply text is printed
// as received regardless of width.
func New(writer, errWriter io.Writer, termWidth func() int) *Renderer {
	return &Renderer{
		writer:    writer,
		errWriter: errWriter,
		termWidth: termWidth,
		palette:   newPalette(lipgloss.NewRenderer(writer)),
		styles:    styles.New(errWriter),
	}
}

// SetInteractive marks the main writer as an interactive terminal.
func (r *Renderer) SetInteractive(interactive bool) {
	r.interactive = interactive
}

func (r *Renderer) getTerminalWidth() int {
	if r.termWidth == nil {
		return 0
	}
	return r.termWidth()
}

// RenderPrompt prints the input prompt without a trailing newline.
func (r *Renderer) RenderPrompt() {
	fmt.Fprint(r.writer, Prompt)
}

// FormatMessage returns the display line for one agent reply, without the
// trailing separator.
func (r *Renderer) FormatMessage(msg agentapi.IncomingMessage) string {
	header := AgentLabel
	if !msg.IsMinimal() {
		header = strings.Join([]string{AgentLabel, msg.User, msg.Action}, LabelSeparator)
	}

	return r.palette.header.Render(header+":") + " " + msg.Text
}

// RenderMessage prints one agent reply followed by a blank separator line.
func (r *Renderer) RenderMessage(msg agentapi.IncomingMessage) {
	fmt.Fprintln(r.writer, r.FormatMessage(msg))
	fmt.Fprintln(r.writer)
}

// RenderMessages prints agent replies in order.
func (r *Renderer) RenderMessages(msgs []agentapi.IncomingMessage) {
	for _, msg := range msgs {
		r.RenderMessage(msg)
	}
}

// RenderWarning prints an advisory to the error writer.
func (r *Renderer) RenderWarning(message string) {
	fmt.Fprintln(r.errWriter, r.styles.WARNING(r.wrapStatus(message)))
}

// RenderError prints an error message to the error writer.
func (r *Renderer) RenderError(message string) {
	fmt.Fprintln(r.errWriter, r.styles.ERROR(r.wrapStatus(message)))
}

// RenderHint prints a follow-up suggestion to the error writer.
func (r *Renderer) RenderHint(message string) {
	fmt.Fprintln(r.errWriter, r.styles.HINT(r.wrapStatus(message)))
}

// wrapStatus folds long status lines, such as error messages carrying a
// response body excerpt, at the terminal width.
func (r *Renderer) wrapStatus(message string) string {
	if width := r.getTerminalWidth(); width > 0 {
		return wordwrap.String(message, width)
	}
	return message
}

// RenderInterrupted moves off a pending prompt line after Ctrl+C.
func (r *Renderer) RenderInterrupted() {
	fmt.Fprintln(r.writer)
}

// RenderTermination prints the shutdown notice.
func (r *Renderer) RenderTermination() {
	fmt.Fprintln(r.writer, TerminationNotice)
}

// StartWaiting shows a spinner while a reply is outstanding and returns a
// function that stops it and clears the line. Non-interactive output gets a
// no-op.
func (r *Renderer) StartWaiting(ctx context.Context, agentName string) func() {
	if !r.interactive {
		return func() {}
	}

	spinner := NewSpinner(r.writer, r.palette.spinner)
	spinner.SetMessage(r.palette.dim.Render(fmt.Sprintf("waiting for %s...", agentName)))
	return spinner.Start(ctx)
}
