package project

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// rawProject mirrors the file layout. stateMachines is kept as a yaml
// node so declaration order survives decoding; plain map decoding would
// shuffle it.
type rawProject struct {
	Service       string              `yaml:"service"`
	Provider      Provider            `yaml:"provider"`
	Functions     map[string]Function `yaml:"functions"`
	StateMachines yaml.Node           `yaml:"stateMachines"`
	Validate      bool                `yaml:"validate"`
}

// Load parses a project file from disk.
func Load(path string) (*Project, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read project file: %w", err)
	}
	return ParseBytes(data)
}

// Parse parses a project file from a reader.
func Parse(r io.Reader) (*Project, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read project input: %w", err)
	}
	return ParseBytes(data)
}

// ParseBytes parses project file bytes. YAML is a superset of JSON, so
// both authoring forms go through the same decoder.
func ParseBytes(data []byte) (*Project, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("empty project file")
	}

	var raw rawProject
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse project file: %w", err)
	}

	machines, err := decodeStateMachines(&raw.StateMachines)
	if err != nil {
		return nil, err
	}

	return &Project{
		Service:       raw.Service,
		Provider:      raw.Provider,
		Functions:     raw.Functions,
		StateMachines: machines,
		Validate:      raw.Validate,
	}, nil
}

func decodeStateMachines(node *yaml.Node) ([]NamedStateMachine, error) {
	if node.Kind == 0 || node.Tag == "!!null" {
		return nil, nil
	}
	if node.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("stateMachines must be a mapping of name to definition")
	}

	machines := make([]NamedStateMachine, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		var name string
		if err := node.Content[i].Decode(&name); err != nil {
			return nil, fmt.Errorf("invalid state machine key: %w", err)
		}

		var raw map[string]interface{}
		if err := node.Content[i+1].Decode(&raw); err != nil {
			return nil, fmt.Errorf("state machine %q: %w", name, err)
		}

		machines = append(machines, NamedStateMachine{
			Name:         name,
			StateMachine: projectStateMachine(raw),
		})
	}
	return machines, nil
}

// projectStateMachine extracts the typed view of a raw entry. Types are
// not enforced here; schema validation rejects malformed entries before
// the typed fields are trusted.
func projectStateMachine(raw map[string]interface{}) StateMachine {
	m := StateMachine{Raw: raw, Definition: raw["definition"]}
	if name, ok := raw["name"].(string); ok {
		m.DisplayName = name
	}
	m.Role = raw["role"]
	m.DependsOn = raw["dependsOn"]
	if tags, ok := raw["tags"].(map[string]interface{}); ok {
		m.Tags = tags
	}
	if pin, ok := raw["useExactVersion"].(bool); ok {
		m.UseExactVersion = pin
	}
	return m
}
