// Package schemas validates project entries against embedded JSON
// Schemas: the shape of a stateMachines entry, and the top level of an
// Amazon States Language definition document.
package schemas

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

const stateMachineSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "properties": {
    "definition": {"type": ["object", "string"]},
    "name": {"type": "string", "minLength": 1},
    "role": {"type": ["string", "object"]},
    "dependsOn": {
      "type": ["string", "array"],
      "items": {"type": "string", "minLength": 1}
    },
    "tags": {"type": "object"},
    "useExactVersion": {"type": "boolean"}
  },
  "required": ["definition"],
  "additionalProperties": false
}`

const definitionSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "properties": {
    "Comment": {"type": "string"},
    "StartAt": {"type": "string", "minLength": 1},
    "States": {"type": "object", "minProperties": 1},
    "TimeoutSeconds": {"type": "integer", "minimum": 0},
    "Version": {"type": "string"}
  },
  "required": ["StartAt", "States"]
}`

var (
	machineSchema = jsonschema.MustCompileString("statemachine.json", stateMachineSchema)
	aslSchema     = jsonschema.MustCompileString("definition.json", definitionSchema)
)

// ValidateStateMachine checks a raw stateMachines entry against the
// recognized shape. Unknown fields are rejected.
func ValidateStateMachine(entry map[string]interface{}) error {
	return validate(machineSchema, entry)
}

// ValidateDefinition checks the top level of an object-form definition
// document.
func ValidateDefinition(doc map[string]interface{}) error {
	return validate(aslSchema, doc)
}

func validate(schema *jsonschema.Schema, v interface{}) error {
	// YAML decoding produces Go ints and similar non-JSON scalars; the
	// validator expects encoding/json value kinds, so round-trip first.
	normalized, err := normalizeJSON(v)
	if err != nil {
		return err
	}
	return schema.Validate(normalized)
}

func normalizeJSON(v interface{}) (interface{}, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("not a JSON-compatible document: %w", err)
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var out interface{}
	if err := dec.Decode(&out); err != nil {
		return nil, err
	}
	return out, nil
}
