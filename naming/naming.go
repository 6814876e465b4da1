// Package naming derives template-unique logical identities from
// user-facing names and rewrites references to locally declared functions
// into their canonical CloudFormation form.
package naming

import (
	"strings"
	"unicode"
)

// Normalize upper-cases the first rune and strips every character that is
// not a letter or digit, yielding a valid CloudFormation logical id
// fragment.
func Normalize(name string) string {
	var b strings.Builder
	first := true
	for _, r := range name {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			continue
		}
		if first {
			r = unicode.ToUpper(r)
			first = false
		}
		b.WriteRune(r)
	}
	return b.String()
}

// StateMachineLogicalID returns the logical identity of a compiled state
// machine resource.
func StateMachineLogicalID(name string) string {
	return Normalize(name) + "StepFunctionsStateMachine"
}

// StateMachineOutputID returns the logical identity of the companion
// output entry for a state machine.
func StateMachineOutputID(name string) string {
	return StateMachineLogicalID(name) + "Arn"
}

// LambdaLogicalID returns the logical identity of a function declared in
// the project's functions section.
func LambdaLogicalID(functionName string) string {
	return Normalize(functionName) + "LambdaFunction"
}
