package agents

import (
	"context"
	"fmt"
	"log"
	"strings"

	"prreview/internal/diff"
	"prreview/internal/llm"
)

// Pipeline runs a fixed ordered list of agents against one parsed diff. The
// run is strictly sequential: each agent's prompt includes the concatenated
// raw output of every agent before it, so no call may be reordered or run
// in parallel.
type Pipeline struct {
	agents   []Agent
	provider llm.TextGenerator
	debug    bool
}

// NewPipeline creates a pipeline over the given provider using the default
// five-agent order. With debug enabled, each agent run logs its progress.
func NewPipeline(provider llm.TextGenerator, debug bool) *Pipeline {
	return &Pipeline{agents: DefaultAgents(), provider: provider, debug: debug}
}

// Run executes every agent in order and returns their results, one per
// agent, in pipeline order. Any inference failure aborts the run.
func (p *Pipeline) Run(ctx context.Context, files []diff.FileChange, pr PRContext) ([]Result, error) {
	results := make([]Result, 0, len(p.agents))
	var prior strings.Builder

	for _, agent := range p.agents {
		p.debugf("%s: starting analysis", agent.Role)

		prompt := agent.BuildPrompt(files, pr, prior.String())
		response, err := p.provider.GenerateText(ctx, prompt)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", agent.Role, err)
		}

		result := agent.Parse(response)
		if !result.Structured && agent.Role != RoleSummary {
			p.debugf("%s: response was not structured JSON, keeping as note", agent.Role)
		}
		results = append(results, result)

		fmt.Fprintf(&prior, "--- %s ---\n%s\n", agent.Role, strings.TrimSpace(response))

		p.debugf("%s: found %d issues", agent.Role, len(result.Issues))
	}

	return results, nil
}

func (p *Pipeline) debugf(format string, args ...any) {
	if p.debug {
		log.Printf(format, args...)
	}
}
