package workflow

import (
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

// Config declares a workflow over string states.
type Config struct {
	Name                  string             `json:"name"                  yaml:"name"`
	DetectUnexpectedState bool               `json:"detectUnexpectedState" yaml:"detectUnexpectedState"`
	KnownStates           []string           `json:"knownStates"           yaml:"knownStates"`
	Transitions           []TransitionConfig `json:"transitions"           yaml:"transitions"`
}

// TransitionConfig declares a single named transition.
// One origin builds a Transition, several build a MultiOriginTransition.
type TransitionConfig struct {
	Name string    `json:"name" yaml:"name"`
	From StateList `json:"from" yaml:"from"`
	To   string    `json:"to"   yaml:"to"`
}

// StateList is a list of states that also accepts a single scalar in YAML,
// so both "from: draft" and "from: [aborted, completed]" decode.
type StateList []string

// UnmarshalYAML implements yaml.Unmarshaler.
func (l *StateList) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		var state string

		err := node.Decode(&state)
		if err != nil {
			return err
		}

		*l = StateList{state}

		return nil
	}

	var states []string

	err := node.Decode(&states)
	if err != nil {
		return err
	}

	*l = states

	return nil
}

// LoadConfig loads a workflow configuration from a YAML file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // Intentional path-based loading
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %q: %w", path, err)
	}

	return LoadConfigFromBytes(data)
}

// LoadConfigFromBytes loads a workflow configuration from YAML bytes.
func LoadConfigFromBytes(data []byte) (*Config, error) {
	var config Config

	err := yaml.Unmarshal(data, &config)
	if err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	err = config.Validate()
	if err != nil {
		return nil, err
	}

	return &config, nil
}

// LoadConfigFromFS loads a configuration from a filesystem such as embed.FS.
func LoadConfigFromFS(fsys fs.FS, path string) (*Config, error) {
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config from FS: %w", err)
	}

	return LoadConfigFromBytes(data)
}

// Validate checks if the configuration is valid. Duplicate transition names
// are allowed; the first one wins when the workflow is built.
func (c *Config) Validate() error {
	if c.Name == "" {
		return ErrConfigNameRequired
	}

	for i, transition := range c.Transitions {
		if transition.Name == "" {
			return fmt.Errorf("transition %d: %w", i, ErrTransitionNameRequired)
		}

		if len(transition.From) == 0 {
			return fmt.Errorf("transition %s: %w", transition.Name, ErrTransitionFromRequired)
		}

		if transition.To == "" {
			return fmt.Errorf("transition %s: %w", transition.Name, ErrTransitionToRequired)
		}
	}

	return nil
}

// NewFromConfig builds a token-based workflow from a configuration.
// A nil logger disables logging.
func NewFromConfig(config *Config, logger Logger) (*Workflow[string], error) {
	if config == nil {
		return nil, fmt.Errorf("%w: config is nil", ErrInvalidConfig)
	}

	err := config.Validate()
	if err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	wf := New(Options[string]{
		Name:                  config.Name,
		DetectUnexpectedState: config.DetectUnexpectedState,
		KnownStates:           config.KnownStates,
		Logger:                logger,
	})

	for _, transConfig := range config.Transitions {
		wf.AddTransition(transConfig.Name, buildTransitionFromConfig(transConfig))
	}

	return wf, nil
}

// ConfigOf exports a string workflow as a configuration, for example to feed
// the visualizer. Transitions keep their registration order.
func ConfigOf(wf *Workflow[string]) *Config {
	config := &Config{
		Name:                  wf.Name(),
		DetectUnexpectedState: wf.DetectsUnexpectedState(),
		KnownStates:           wf.KnownStates(),
		Transitions:           make([]TransitionConfig, 0, len(wf.order)),
	}

	for _, name := range wf.order {
		rule := wf.transitions[name]

		config.Transitions = append(config.Transitions, TransitionConfig{
			Name: name,
			From: rule.Origins(),
			To:   rule.Destination(),
		})
	}

	return config
}

// buildTransitionFromConfig creates a Rule from configuration.
func buildTransitionFromConfig(config TransitionConfig) Rule[string] {
	if len(config.From) == 1 {
		return NewTransition(config.From[0], config.To)
	}

	return NewMultiOriginTransition([]string(config.From), config.To)
}
