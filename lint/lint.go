// Package lint checks the structural validity of Amazon States Language
// definitions beyond what the shape schema can express: transition
// targets must resolve, non-terminal states must continue somewhere, and
// every state must be reachable from StartAt. Nested Parallel branches
// and Map iterators are checked recursively.
package lint

import "fmt"

// Violation codes.
const (
	CodeUnknownStartState  = "UNKNOWN_START_STATE"
	CodeMissingStateType   = "MISSING_STATE_TYPE"
	CodeDanglingTransition = "DANGLING_TRANSITION"
	CodeUnterminatedState  = "UNTERMINATED_STATE"
	CodeUnreachableState   = "UNREACHABLE_STATE"
	CodeEmptyChoices       = "EMPTY_CHOICES"
	CodeInvalidBranch      = "INVALID_BRANCH"
)

// Violation is one structural rule failure.
type Violation struct {
	Code    string `json:"code"`
	State   string `json:"state,omitempty"`
	Message string `json:"message"`
}

// Result collects the violations found in one definition.
type Result struct {
	Violations []Violation `json:"violations"`
}

// Valid reports whether the definition passed every rule.
func (r *Result) Valid() bool {
	return len(r.Violations) == 0
}

// Linter checks definition documents.
type Linter struct{}

// New returns a Linter.
func New() *Linter {
	return &Linter{}
}

// Check runs every structural rule against an object-form definition.
// The document is assumed to have passed shape validation already
// (StartAt string, States mapping).
func (l *Linter) Check(doc map[string]interface{}) *Result {
	result := &Result{}
	l.checkMachine(doc, "", result)
	return result
}

// checkMachine validates one state-machine scope: the top-level document
// or the body of a Parallel branch / Map iterator. scope is a display
// prefix for nested contexts.
func (l *Linter) checkMachine(doc map[string]interface{}, scope string, result *Result) {
	states, _ := doc["States"].(map[string]interface{})
	startAt, _ := doc["StartAt"].(string)

	if _, ok := states[startAt]; !ok {
		result.add(Violation{
			Code:    CodeUnknownStartState,
			Message: fmt.Sprintf("StartAt %q does not name a state%s", startAt, scopeSuffix(scope)),
		})
	}

	for _, name := range sortedStateNames(states) {
		state, ok := states[name].(map[string]interface{})
		if !ok {
			result.add(Violation{
				Code:    CodeMissingStateType,
				State:   name,
				Message: fmt.Sprintf("state %q is not an object%s", name, scopeSuffix(scope)),
			})
			continue
		}
		l.checkState(name, state, states, scope, result)
	}

	l.checkReachability(startAt, states, scope, result)
}

func (l *Linter) checkState(name string, state, states map[string]interface{}, scope string, result *Result) {
	stateType, _ := state["Type"].(string)
	if stateType == "" {
		result.add(Violation{
			Code:    CodeMissingStateType,
			State:   name,
			Message: fmt.Sprintf("state %q has no Type%s", name, scopeSuffix(scope)),
		})
		return
	}

	for _, target := range transitionTargets(state) {
		if _, ok := states[target]; !ok {
			result.add(Violation{
				Code:    CodeDanglingTransition,
				State:   name,
				Message: fmt.Sprintf("state %q transitions to unknown state %q%s", name, target, scopeSuffix(scope)),
			})
		}
	}

	switch stateType {
	case "Succeed", "Fail":
		// Always terminal.
	case "Choice":
		choices, _ := state["Choices"].([]interface{})
		if len(choices) == 0 {
			result.add(Violation{
				Code:    CodeEmptyChoices,
				State:   name,
				Message: fmt.Sprintf("Choice state %q has no Choices%s", name, scopeSuffix(scope)),
			})
		}
	default:
		if _, hasNext := state["Next"]; !hasNext {
			if end, _ := state["End"].(bool); !end {
				result.add(Violation{
					Code:    CodeUnterminatedState,
					State:   name,
					Message: fmt.Sprintf("state %q has neither Next nor End%s", name, scopeSuffix(scope)),
				})
			}
		}
	}

	switch stateType {
	case "Parallel":
		branches, _ := state["Branches"].([]interface{})
		if len(branches) == 0 {
			result.add(Violation{
				Code:    CodeInvalidBranch,
				State:   name,
				Message: fmt.Sprintf("Parallel state %q has no Branches%s", name, scopeSuffix(scope)),
			})
		}
		for i, branch := range branches {
			body, ok := branch.(map[string]interface{})
			if !ok {
				result.add(Violation{
					Code:    CodeInvalidBranch,
					State:   name,
					Message: fmt.Sprintf("Parallel state %q branch %d is not an object%s", name, i, scopeSuffix(scope)),
				})
				continue
			}
			l.checkMachine(body, childScope(scope, fmt.Sprintf("%s.Branches[%d]", name, i)), result)
		}
	case "Map":
		body, ok := state["ItemProcessor"].(map[string]interface{})
		if !ok {
			body, ok = state["Iterator"].(map[string]interface{})
		}
		if !ok {
			result.add(Violation{
				Code:    CodeInvalidBranch,
				State:   name,
				Message: fmt.Sprintf("Map state %q has no ItemProcessor or Iterator%s", name, scopeSuffix(scope)),
			})
			return
		}
		l.checkMachine(body, childScope(scope, name+".ItemProcessor"), result)
	}
}

// checkReachability walks transitions from StartAt and flags states the
// walk never visits.
func (l *Linter) checkReachability(startAt string, states map[string]interface{}, scope string, result *Result) {
	if _, ok := states[startAt]; !ok {
		return
	}
	visited := make(map[string]bool)
	queue := []string{startAt}
	for len(queue) > 0 {
		name := queue[0]
		queue = queue[1:]
		if visited[name] {
			continue
		}
		visited[name] = true
		state, ok := states[name].(map[string]interface{})
		if !ok {
			continue
		}
		for _, target := range transitionTargets(state) {
			if _, known := states[target]; known && !visited[target] {
				queue = append(queue, target)
			}
		}
	}
	for _, name := range sortedStateNames(states) {
		if !visited[name] {
			result.add(Violation{
				Code:    CodeUnreachableState,
				State:   name,
				Message: fmt.Sprintf("state %q is unreachable from StartAt%s", name, scopeSuffix(scope)),
			})
		}
	}
}

func (r *Result) add(v Violation) {
	r.Violations = append(r.Violations, v)
}
