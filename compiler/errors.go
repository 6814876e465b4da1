package compiler

import "fmt"

// ErrorCode classifies compilation failures.
type ErrorCode string

const (
	ErrCodeSchemaInvalid     ErrorCode = "SCHEMA_INVALID"
	ErrCodeDefinitionInvalid ErrorCode = "DEFINITION_INVALID"
	ErrCodeVersionResolve    ErrorCode = "VERSION_RESOLVE_FAILED"
)

// CompileError is a structured, fail-fast compilation error naming the
// offending state machine.
type CompileError struct {
	Code    ErrorCode
	Machine string
	Message string
	Cause   error
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("[%s] state machine %q: %s", e.Code, e.Machine, e.Message)
}

// Unwrap returns the underlying cause.
func (e *CompileError) Unwrap() error {
	return e.Cause
}

func schemaError(machine string, cause error) *CompileError {
	return &CompileError{
		Code:    ErrCodeSchemaInvalid,
		Machine: machine,
		Message: fmt.Sprintf("definition does not match the recognized shape: %v", cause),
		Cause:   cause,
	}
}

func definitionError(machine, detail string) *CompileError {
	return &CompileError{
		Code:    ErrCodeDefinitionInvalid,
		Machine: machine,
		Message: detail,
	}
}

func versionError(machine string, cause error) *CompileError {
	return &CompileError{
		Code:    ErrCodeVersionResolve,
		Machine: machine,
		Message: fmt.Sprintf("failed to pin function version: %v", cause),
		Cause:   cause,
	}
}
