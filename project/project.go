// Package project models the compiler's source document: a
// serverless-style project file declaring provider defaults, functions,
// and named state machines. All compilation inputs flow through here.
package project

import (
	"fmt"
	"sort"

	"sfn-compiler/naming"
)

// Project is one parsed project file.
type Project struct {
	Service   string
	Provider  Provider
	Functions map[string]Function

	// StateMachines preserves declaration order.
	StateMachines []NamedStateMachine

	// Validate toggles structural linting of definitions.
	Validate bool
}

// Provider carries provider-level defaults applied to every compiled
// machine.
type Provider struct {
	Name   string                 `yaml:"name"`
	Region string                 `yaml:"region"`
	Tags   map[string]interface{} `yaml:"tags"`
}

// Function is one declared compute function. Name is the deployed
// function name; Version optionally pins compilation to a published
// version for offline builds.
type Function struct {
	Name    string `yaml:"name"`
	Version string `yaml:"version"`
}

// NamedStateMachine pairs a state machine with its declaration key.
type NamedStateMachine struct {
	Name string
	StateMachine
}

// StateMachine is one stateMachines entry. Raw holds the undecoded entry
// for schema validation; the typed fields are best-effort projections
// used after validation passes.
type StateMachine struct {
	Raw map[string]interface{}

	Definition      interface{}
	DisplayName     string
	Role            interface{}
	DependsOn       interface{}
	Tags            map[string]interface{}
	UseExactVersion bool
}

// FunctionNames returns the declared function keys in sorted order.
func (p *Project) FunctionNames() []string {
	names := make([]string, 0, len(p.Functions))
	for name := range p.Functions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DeployedNames maps each function's logical id to its deployed name,
// defaulting to "<service>-<key>" when the entry declares none.
func (p *Project) DeployedNames() map[string]string {
	out := make(map[string]string, len(p.Functions))
	for key, fn := range p.Functions {
		name := fn.Name
		if name == "" {
			name = fmt.Sprintf("%s-%s", p.Service, key)
		}
		out[naming.LambdaLogicalID(key)] = name
	}
	return out
}

// PinnedVersions maps each function's logical id to its declared version.
// Functions without a version are omitted.
func (p *Project) PinnedVersions() map[string]string {
	out := make(map[string]string)
	for key, fn := range p.Functions {
		if fn.Version != "" {
			out[naming.LambdaLogicalID(key)] = fn.Version
		}
	}
	return out
}
