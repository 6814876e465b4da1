// Package compiler lowers state machine declarations into CloudFormation
// resource fragments. For each declared machine it validates the shape,
// optionally lints the workflow structure, extracts intrinsic references
// out of the definition, assembles the substitution template, and merges
// the resulting resource and output records into the shared template.
package compiler

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"sfn-compiler/cfn"
	"sfn-compiler/intrinsics"
	"sfn-compiler/lint"
	"sfn-compiler/naming"
	"sfn-compiler/pinning"
	"sfn-compiler/project"
	"sfn-compiler/schemas"
)

const (
	// StateMachineResourceType tags every compiled resource record.
	StateMachineResourceType = "AWS::StepFunctions::StateMachine"

	// ExecutionRoleLogicalID is the conventional shared execution role
	// synthesized when a machine declares no role of its own.
	ExecutionRoleLogicalID = "IamRoleStateMachineExecution"

	outputDescription = "Current StateMachine Arn"
)

// Compiler runs the compilation pipeline. Collaborators are injected so
// the pipeline itself stays a pure transformation.
type Compiler struct {
	newTokens func() intrinsics.TokenSource
	resolver  pinning.Resolver
	linter    *lint.Linter
	logger    *slog.Logger
	forceLint bool
}

// Option configures a Compiler.
type Option func(*Compiler)

// WithTokenFactory replaces the placeholder token source; the factory is
// invoked once per compilation pass.
func WithTokenFactory(factory func() intrinsics.TokenSource) Option {
	return func(c *Compiler) { c.newTokens = factory }
}

// WithResolver installs the version-resolution collaborator used for
// machines that request useExactVersion.
func WithResolver(r pinning.Resolver) Option {
	return func(c *Compiler) { c.resolver = r }
}

// WithLogger installs a logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Compiler) { c.logger = logger }
}

// WithLint forces structural linting regardless of the project's own
// validate toggle.
func WithLint(force bool) Option {
	return func(c *Compiler) { c.forceLint = force }
}

// New returns a Compiler with deterministic defaults: sequential tokens
// and no version resolver.
func New(opts ...Option) *Compiler {
	c := &Compiler{
		newTokens: intrinsics.NewSequentialSource,
		linter:    lint.New(),
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Compile processes every declared state machine in declaration order and
// returns the cumulative template. The first failing machine aborts the
// whole run; no partial fragment for it is committed.
func (c *Compiler) Compile(ctx context.Context, proj *project.Project) (*cfn.Template, error) {
	tpl := cfn.NewTemplate()
	tokens := c.newTokens()
	translator := naming.NewTranslator(proj.FunctionNames())

	for _, machine := range proj.StateMachines {
		if err := c.compileMachine(ctx, proj, machine, tokens, translator, tpl); err != nil {
			return nil, err
		}
		c.logger.Debug("compiled state machine", "name", machine.Name)
	}
	return tpl, nil
}

// Validate runs shape validation and linting for every machine without
// producing a template. Violations are keyed by machine name.
func (c *Compiler) Validate(proj *project.Project) (map[string]*lint.Result, error) {
	results := make(map[string]*lint.Result)
	for _, machine := range proj.StateMachines {
		doc, err := c.validateMachine(machine)
		if err != nil {
			return nil, err
		}
		if doc != nil {
			results[machine.Name] = c.linter.Check(doc)
		}
	}
	return results, nil
}

// validateMachine applies shape validation and returns the object-form
// definition, or nil for literal string definitions.
func (c *Compiler) validateMachine(machine project.NamedStateMachine) (map[string]interface{}, error) {
	if err := schemas.ValidateStateMachine(machine.Raw); err != nil {
		return nil, schemaError(machine.Name, err)
	}
	doc, ok := machine.Definition.(map[string]interface{})
	if !ok {
		return nil, nil
	}
	if err := schemas.ValidateDefinition(doc); err != nil {
		return nil, schemaError(machine.Name, err)
	}
	return doc, nil
}

func (c *Compiler) compileMachine(
	ctx context.Context,
	proj *project.Project,
	machine project.NamedStateMachine,
	tokens intrinsics.TokenSource,
	translator *naming.Translator,
	tpl *cfn.Template,
) error {
	doc, err := c.validateMachine(machine)
	if err != nil {
		return err
	}

	if doc != nil && (c.forceLint || proj.Validate) {
		if result := c.linter.Check(doc); !result.Valid() {
			return definitionError(machine.Name, formatViolations(result))
		}
	}

	definition, err := c.assembleDefinition(ctx, machine, doc, tokens, translator)
	if err != nil {
		return err
	}

	buildStateMachine(proj, machine, definition, tpl)
	return nil
}

// assembleDefinition produces the DefinitionString property value: a
// plain string when the definition carries no intrinsic references, an
// Fn::Sub substitution template otherwise.
func (c *Compiler) assembleDefinition(
	ctx context.Context,
	machine project.NamedStateMachine,
	doc map[string]interface{},
	tokens intrinsics.TokenSource,
	translator *naming.Translator,
) (interface{}, error) {
	// Literal string definitions bypass extraction; embedded newline and
	// carriage-return escape sequences are stripped. Version pinning
	// never applies here: there is no substitution template to rewrite.
	if text, ok := machine.Definition.(string); ok {
		return strings.NewReplacer(`\n`, "", `\r`, "").Replace(text), nil
	}

	root, pairs := intrinsics.Extract(doc, tokens)
	text, err := cfn.MarshalCanonical(root)
	if err != nil {
		return nil, definitionError(machine.Name, fmt.Sprintf("failed to serialize definition: %v", err))
	}
	if len(pairs) == 0 {
		return text, nil
	}

	sub := cfn.Sub{Text: text}
	for _, pair := range pairs {
		value := translator.Translate(pair.Reference)
		if machine.UseExactVersion {
			if c.resolver == nil {
				return nil, versionError(machine.Name, fmt.Errorf("no version resolver configured"))
			}
			value, err = c.resolver.Pin(ctx, value)
			if err != nil {
				return nil, versionError(machine.Name, err)
			}
		}
		sub.Params = append(sub.Params, cfn.SubParam{Name: pair.Token, Value: value})
	}
	return sub, nil
}

func formatViolations(result *lint.Result) string {
	parts := make([]string, len(result.Violations))
	for i, v := range result.Violations {
		parts[i] = v.Message
	}
	return "invalid workflow structure: " + strings.Join(parts, "; ")
}
