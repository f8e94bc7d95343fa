// Package visualizer generates Mermaid state diagrams from workflow configurations.
package visualizer

import (
	"errors"
	"fmt"
	"strings"

	"facette.io/natsort"
	"github.com/amp-labs/amp-workflow/workflow"
)

// Visualizer errors.
var (
	ErrConfigNil     = errors.New("config cannot be nil")
	ErrNoTransitions = errors.New("config must have at least one transition")
)

// GenerateMermaid converts a Config to a Mermaid state diagram.
func GenerateMermaid(config *workflow.Config) (string, error) {
	return GenerateMermaidWithOptions(config, DefaultOptions())
}

// GenerateMermaidFromFile loads a config from a file and generates a Mermaid diagram.
func GenerateMermaidFromFile(path string) (string, error) {
	config, err := workflow.LoadConfig(path)
	if err != nil {
		return "", fmt.Errorf("failed to load config: %w", err)
	}

	return GenerateMermaid(config)
}

// GenerateMermaidFromWorkflow draws the transitions registered on a string workflow.
func GenerateMermaidFromWorkflow(wf *workflow.Workflow[string], opts Options) (string, error) {
	return GenerateMermaidWithOptions(workflow.ConfigOf(wf), opts)
}

// GenerateMermaidWithOptions generates a Mermaid diagram with custom options.
func GenerateMermaidWithOptions(config *workflow.Config, opts Options) (string, error) {
	if config == nil {
		return "", ErrConfigNil
	}

	if len(config.Transitions) == 0 {
		return "", ErrNoTransitions
	}

	var sb strings.Builder

	// Header
	sb.WriteString("```mermaid\n")
	sb.WriteString("stateDiagram-v2\n")

	if opts.Direction != "" {
		fmt.Fprintf(&sb, "    direction %s\n", opts.Direction)
	}

	if opts.InitialState != "" {
		fmt.Fprintf(&sb, "    [*] --> %s\n", opts.InitialState)
	}

	outgoing := make(map[string]bool)
	incoming := make(map[string]bool)
	seen := make(map[string]bool)

	for _, state := range config.KnownStates {
		seen[state] = true
	}

	// Edges in declaration order; origins in their listed order
	for _, transition := range config.Transitions {
		for _, from := range transition.From {
			label := ""
			if opts.ShowTransitionNames {
				label = ": " + transition.Name
			}

			fmt.Fprintf(&sb, "    %s --> %s%s\n", from, transition.To, label)

			outgoing[from] = true
			incoming[transition.To] = true
			seen[from] = true
		}

		seen[transition.To] = true
	}

	states := make([]string, 0, len(seen))
	for state := range seen {
		states = append(states, state)
	}

	natsort.Sort(states)

	// Known states untouched by any transition still appear as nodes
	for _, state := range states {
		if !outgoing[state] && !incoming[state] {
			fmt.Fprintf(&sb, "    %s\n", state)
		}
	}

	if opts.MarkTerminalStates {
		for _, state := range states {
			if incoming[state] && !outgoing[state] {
				fmt.Fprintf(&sb, "    %s --> [*]\n", state)
			}
		}
	}

	for _, state := range opts.Highlight {
		fmt.Fprintf(&sb, "    class %s highlighted\n", state)
	}

	if len(opts.Highlight) > 0 {
		sb.WriteString("\n")
		sb.WriteString("    classDef highlighted fill:#fff9c4,stroke:#f57f17,stroke-width:3px\n")
	}

	sb.WriteString("```\n")

	return sb.String(), nil
}
