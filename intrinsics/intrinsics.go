// Package intrinsics detects and extracts CloudFormation intrinsic
// references embedded in state machine definition documents.
//
// A definition authored in the project file may reference other template
// resources ({"Fn::GetAtt": [...]}, {"Ref": ...}) anywhere inside its
// tree. Those nodes cannot survive plain JSON serialization, so they are
// walked out of the document, replaced with ${token} markers, and later
// reassembled into an Fn::Sub parameter map.
package intrinsics

import "strings"

// Pair associates a generated placeholder token with the intrinsic
// reference it replaced. Pairs are emitted in traversal order.
type Pair struct {
	Token     string
	Reference interface{}
}

// IsReference reports whether v is an intrinsic reference node: a mapping
// with exactly one key, where the key is "Ref" or starts with "Fn::".
// Mappings that merely contain such a key among others are ordinary
// objects and are recursed into instead.
func IsReference(v interface{}) bool {
	m, ok := v.(map[string]interface{})
	if !ok || len(m) != 1 {
		return false
	}
	for key := range m {
		return key == "Ref" || strings.HasPrefix(key, "Fn::")
	}
	return false
}
