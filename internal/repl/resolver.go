package repl

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sahilm/fuzzy"
	"github.com/samber/lo"
	"go.uber.org/zap"

	"github.com/atinylittleshell/agentchat/internal/agentapi"
	"github.com/atinylittleshell/agentchat/internal/repl/render"
)

// maxSuggestions bounds the "did you mean" hint.
const maxSuggestions = 3

// Resolver picks the agent a session is bound to.
type Resolver struct {
	service  agentapi.Service
	renderer *render.Renderer
	logger   *zap.Logger
}

// NewResolver creates a Resolver.
func NewResolver(service agentapi.Service, renderer *render.Renderer, logger *zap.Logger) *Resolver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Resolver{
		service:  service,
		renderer: renderer,
		logger:   logger,
	}
}

// Resolve fetches the agent directory and selects an agent.
//
// With an empty requestedName the first listed agent is chosen, with a
// warning when the choice was ambiguous. Otherwise the first agent whose name
// matches exactly (case-sensitive) wins. Failures are reported to the user
// before returning; a cancelled ctx is returned as-is without a report.
func (r *Resolver) Resolve(ctx context.Context, requestedName string) (agentapi.Agent, error) {
	agents, err := r.service.ListAgents(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return agentapi.Agent{}, ctx.Err()
		}
		r.logger.Warn("failed to fetch agents", zap.Error(err))
		r.renderer.RenderError(fmt.Sprintf("Failed to fetch agents: %v", err))
		return agentapi.Agent{}, &AgentListUnavailableError{Err: err}
	}

	r.logger.Debug("fetched agents",
		zap.Int("count", len(agents)),
		zap.String("requested", requestedName))

	if len(agents) == 0 {
		r.renderer.RenderError("No agents available")
		return agentapi.Agent{}, ErrNoAgentsAvailable
	}

	if requestedName == "" {
		if len(agents) > 1 {
			r.renderer.RenderWarning(fmt.Sprintf("Multiple agents found, using the first one: %s", agents[0].Name))
		}
		return agents[0], nil
	}

	agent, found := lo.Find(agents, func(a agentapi.Agent) bool {
		return a.Name == requestedName
	})
	if !found {
		notFound := &AgentNotFoundError{
			Name:        requestedName,
			Suggestions: suggestNames(requestedName, agents),
		}
		r.renderer.RenderError(fmt.Sprintf("No agent found with name: %s", requestedName))
		if len(notFound.Suggestions) > 0 {
			r.renderer.RenderHint(fmt.Sprintf("Did you mean: %s?", strings.Join(notFound.Suggestions, ", ")))
		}
		return agentapi.Agent{}, notFound
	}

	return agent, nil
}

// suggestNames returns agent names that fuzzy-match name, best first.
func suggestNames(name string, agents []agentapi.Agent) []string {
	names := lo.Uniq(lo.Map(agents, func(a agentapi.Agent, _ int) string {
		return a.Name
	}))

	matches := fuzzy.Find(strings.ToLower(name), lo.Map(names, func(n string, _ int) string {
		return strings.ToLower(n)
	}))

	suggestions := make([]string, 0, maxSuggestions)
	for _, m := range matches {
		if len(suggestions) == maxSuggestions {
			break
		}
		suggestions = append(suggestions, names[m.Index])
	}
	return suggestions
}

// IsInterrupted reports whether err stems from the user interrupting.
func IsInterrupted(err error) bool {
	return errors.Is(err, context.Canceled)
}
