package cfn

import (
	"bytes"
	"encoding/json"
	"fmt"
	"regexp"
)

// SubParam is one named parameter of a substitution template.
type SubParam struct {
	Name  string
	Value interface{}
}

// Sub is the long-form Fn::Sub construct: a template string containing
// ${token} markers plus its parameter map. Parameters keep the order in
// which their tokens were extracted, which a plain Go map would lose.
type Sub struct {
	Text   string
	Params []SubParam
}

// MarshalJSON renders {"Fn::Sub": [text, {name: value, ...}]} with the
// parameter object in declared order.
func (s Sub) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(`{"Fn::Sub":[`)
	text, err := json.Marshal(s.Text)
	if err != nil {
		return nil, err
	}
	buf.Write(text)
	buf.WriteString(`,{`)
	for i, p := range s.Params {
		if i > 0 {
			buf.WriteByte(',')
		}
		name, err := json.Marshal(p.Name)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(p.Value)
		if err != nil {
			return nil, fmt.Errorf("parameter %s: %w", p.Name, err)
		}
		buf.Write(name)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteString(`}]}`)
	return buf.Bytes(), nil
}

var markerPattern = regexp.MustCompile(`\$\{([A-Za-z0-9]+)\}`)

// MarkerNames returns the distinct ${token} markers present in the
// template text, in order of first appearance.
func (s Sub) MarkerNames() []string {
	seen := make(map[string]bool)
	var names []string
	for _, m := range markerPattern.FindAllStringSubmatch(s.Text, -1) {
		if !seen[m[1]] {
			seen[m[1]] = true
			names = append(names, m[1])
		}
	}
	return names
}
