package cfn

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubMarshalPreservesParameterOrder(t *testing.T) {
	sub := Sub{
		Text: `{"a":"${p00000001}","b":"${p00000000}"}`,
		Params: []SubParam{
			{Name: "p00000001", Value: map[string]interface{}{"Ref": "Second"}},
			{Name: "p00000000", Value: map[string]interface{}{"Ref": "First"}},
		},
	}

	out, err := json.Marshal(sub)
	require.NoError(t, err)
	assert.Equal(t,
		`{"Fn::Sub":[`+
			`"{\"a\":\"${p00000001}\",\"b\":\"${p00000000}\"}",`+
			`{"p00000001":{"Ref":"Second"},"p00000000":{"Ref":"First"}}]}`,
		string(out))
}

func TestSubMarshalEmptyParams(t *testing.T) {
	out, err := json.Marshal(Sub{Text: "plain"})
	require.NoError(t, err)
	assert.Equal(t, `{"Fn::Sub":["plain",{}]}`, string(out))
}

func TestSubMarkerNames(t *testing.T) {
	sub := Sub{Text: `{"x":"${p00000000}","y":"${p00000001}","z":"${p00000000}"}`}
	assert.Equal(t, []string{"p00000000", "p00000001"}, sub.MarkerNames())

	assert.Empty(t, Sub{Text: "no markers here"}.MarkerNames())
}

func TestMarshalCanonicalIsStable(t *testing.T) {
	doc := map[string]interface{}{
		"b": 1,
		"a": []interface{}{"x", map[string]interface{}{"k": "<v>"}},
	}

	first, err := MarshalCanonical(doc)
	require.NoError(t, err)
	second, err := MarshalCanonical(doc)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	// Sorted keys, 2-space indent, no HTML escaping, no trailing newline.
	assert.Equal(t, "{\n  \"a\": [\n    \"x\",\n    {\n      \"k\": \"<v>\"\n    }\n  ],\n  \"b\": 1\n}", first)
}

func TestMarshalTemplate(t *testing.T) {
	tpl := NewTemplate()
	tpl.AddResource("Machine", &Resource{Type: "AWS::StepFunctions::StateMachine"})

	out, err := MarshalTemplate(tpl)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(out, &decoded))
	assert.Equal(t, "2010-09-09", decoded["AWSTemplateFormatVersion"])
	assert.Contains(t, decoded["Resources"], "Machine")
	assert.Equal(t, byte('\n'), out[len(out)-1])
}
