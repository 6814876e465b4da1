package cfn

import (
	"bytes"
	"encoding/json"
	"strings"
)

// MarshalCanonical serializes a value as indented JSON with sorted map
// keys, 2-space indent, and no HTML escaping. The exact formatting only
// matters for diff stability: compiling the same document twice must
// produce byte-identical text.
func MarshalCanonical(v interface{}) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return "", err
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}

// MarshalTemplate serializes a full template document in canonical form.
func MarshalTemplate(t *Template) ([]byte, error) {
	out, err := MarshalCanonical(t)
	if err != nil {
		return nil, err
	}
	return []byte(out + "\n"), nil
}
