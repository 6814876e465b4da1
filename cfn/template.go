// Package cfn models the CloudFormation template fragments the compiler
// produces: resources, outputs, tag sequences, and the Fn::Sub
// substitution construct, plus the canonical serializer used for
// definition text.
package cfn

// Template is the cumulative output document. The compiler merges one
// resource entry and one output entry into it per state machine.
type Template struct {
	FormatVersion string               `json:"AWSTemplateFormatVersion,omitempty"`
	Description   string               `json:"Description,omitempty"`
	Resources     map[string]*Resource `json:"Resources"`
	Outputs       map[string]Output    `json:"Outputs,omitempty"`
}

// Resource is one template resource entry.
type Resource struct {
	Type       string                 `json:"Type"`
	Properties map[string]interface{} `json:"Properties,omitempty"`
	DependsOn  []string               `json:"DependsOn,omitempty"`
}

// Output is one template output entry.
type Output struct {
	Description string      `json:"Description,omitempty"`
	Value       interface{} `json:"Value"`
}

// NewTemplate returns an empty template shell.
func NewTemplate() *Template {
	return &Template{
		FormatVersion: "2010-09-09",
		Resources:     make(map[string]*Resource),
		Outputs:       make(map[string]Output),
	}
}

// AddResource merges a resource entry into the template. A duplicate
// logical id overwrites the previous entry, matching the last-wins
// behavior of downstream template appliers.
func (t *Template) AddResource(logicalID string, r *Resource) {
	t.Resources[logicalID] = r
}

// AddOutput merges an output entry into the template.
func (t *Template) AddOutput(logicalID string, o Output) {
	t.Outputs[logicalID] = o
}
