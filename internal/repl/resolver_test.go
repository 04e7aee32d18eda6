package repl

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/atinylittleshell/agentchat/internal/agentapi"
	"github.com/atinylittleshell/agentchat/internal/repl/render"
)

func newTestResolver(t *testing.T, service agentapi.Service) (*Resolver, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	var out, errOut bytes.Buffer
	renderer := render.New(&out, &errOut, nil)
	return NewResolver(service, renderer, zaptest.NewLogger(t)), &out, &errOut
}

var (
	eliza   = agentapi.Agent{ID: "id-eliza", Name: "Eliza"}
	trinity = agentapi.Agent{ID: "id-trinity", Name: "Trinity"}
	eliza2  = agentapi.Agent{ID: "id-eliza-2", Name: "Eliza"}
)

func TestResolve_DefaultSingleAgent(t *testing.T) {
	resolver, out, errOut := newTestResolver(t, agentapi.NewMockService(eliza))

	agent, err := resolver.Resolve(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, eliza, agent)
	assert.Empty(t, errOut.String(), "no warning for a single agent")
	assert.Empty(t, out.String())
}

func TestResolve_DefaultMultipleAgentsWarns(t *testing.T) {
	resolver, _, errOut := newTestResolver(t, agentapi.NewMockService(trinity, eliza))

	agent, err := resolver.Resolve(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, trinity, agent)
	assert.Equal(t, "Multiple agents found, using the first one: Trinity\n", errOut.String())
}

func TestResolve_ByName(t *testing.T) {
	tests := []struct {
		name      string
		agents    []agentapi.Agent
		requested string
		expected  agentapi.Agent
	}{
		{"single match", []agentapi.Agent{trinity, eliza}, "Eliza", eliza},
		{"first match wins", []agentapi.Agent{trinity, eliza, eliza2}, "Eliza", eliza},
		{"first match wins reversed", []agentapi.Agent{eliza2, eliza}, "Eliza", eliza2},
		{"first in list", []agentapi.Agent{trinity, eliza}, "Trinity", trinity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resolver, _, errOut := newTestResolver(t, agentapi.NewMockService(tt.agents...))

			agent, err := resolver.Resolve(context.Background(), tt.requested)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, agent)
			assert.Empty(t, errOut.String(), "no ambiguity warning when a name is given")
		})
	}
}

func TestResolve_NameIsCaseSensitive(t *testing.T) {
	service := agentapi.NewMockService(eliza, trinity)
	resolver, _, errOut := newTestResolver(t, service)

	_, err := resolver.Resolve(context.Background(), "eliza")
	require.Error(t, err)

	var notFound *AgentNotFoundError
	require.True(t, errors.As(err, &notFound))
	assert.Equal(t, "eliza", notFound.Name)
	assert.Equal(t, []string{"Eliza"}, notFound.Suggestions)
	assert.Equal(t, 1, ExitCode(err))
	assert.Equal(t, "No agent found with name: eliza\nDid you mean: Eliza?\n", errOut.String())
	assert.Empty(t, service.Sent(), "no message is sent before resolution succeeds")
}

func TestResolve_NotFoundWithoutSuggestions(t *testing.T) {
	resolver, _, errOut := newTestResolver(t, agentapi.NewMockService(eliza, trinity))

	_, err := resolver.Resolve(context.Background(), "Zork")

	var notFound *AgentNotFoundError
	require.True(t, errors.As(err, &notFound))
	assert.Empty(t, notFound.Suggestions)
	assert.Equal(t, "No agent found with name: Zork\n", errOut.String())
}

func TestResolve_NoAgents(t *testing.T) {
	for _, requested := range []string{"", "Eliza"} {
		t.Run("requested="+requested, func(t *testing.T) {
			resolver, _, errOut := newTestResolver(t, agentapi.NewMockService())

			_, err := resolver.Resolve(context.Background(), requested)
			assert.ErrorIs(t, err, ErrNoAgentsAvailable)
			assert.Equal(t, 1, ExitCode(err))
			assert.Equal(t, "No agents available\n", errOut.String())
		})
	}
}

func TestResolve_ListUnavailable(t *testing.T) {
	service := agentapi.NewMockService()
	service.ListError = errors.New("connection refused")
	resolver, _, errOut := newTestResolver(t, service)

	_, err := resolver.Resolve(context.Background(), "")
	require.Error(t, err)

	var unavailable *AgentListUnavailableError
	require.True(t, errors.As(err, &unavailable))
	assert.EqualError(t, unavailable.Err, "connection refused")
	assert.Equal(t, 0, ExitCode(err), "directory failures take the graceful path")
	assert.Equal(t, "Failed to fetch agents: connection refused\n", errOut.String())
	assert.Equal(t, 1, service.ListCalls(), "no retries")
}

func TestResolve_Interrupted(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	service := agentapi.NewMockService()
	service.ListAgentsFunc = func(ctx context.Context) ([]agentapi.Agent, error) {
		cancel()
		return nil, ctx.Err()
	}
	resolver, _, errOut := newTestResolver(t, service)

	_, err := resolver.Resolve(ctx, "")
	assert.True(t, IsInterrupted(err))
	assert.Equal(t, 0, ExitCode(err))
	assert.Empty(t, errOut.String(), "interrupts are not reported as failures")
}

func TestSuggestNames(t *testing.T) {
	agents := []agentapi.Agent{
		{ID: "1", Name: "Trinity"},
		{ID: "2", Name: "Eliza"},
		{ID: "3", Name: "Trin"},
		{ID: "4", Name: "Trinity"},
	}

	suggestions := suggestNames("trin", agents)
	assert.ElementsMatch(t, []string{"Trinity", "Trin"}, suggestions, "duplicates collapse")
	assert.Empty(t, suggestNames("xyz", agents))
}
