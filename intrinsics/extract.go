package intrinsics

import "sort"

// Extract walks the definition tree depth-first and replaces every
// intrinsic reference with a "${token}" marker string, collecting the
// (token, reference) pairs in the order they were encountered. Sequence
// elements are visited in index order, mapping entries in sorted key
// order, so the result is deterministic for a given tree shape.
//
// Maps and slices are rewritten in place; the returned root differs from
// the input only when the root node itself is a reference. A replaced
// reference is atomic at its position: its own argument tree is not
// walked again.
func Extract(root interface{}, tokens TokenSource) (interface{}, []Pair) {
	var pairs []Pair
	root = walk(root, tokens, &pairs)
	return root, pairs
}

func walk(node interface{}, tokens TokenSource, pairs *[]Pair) interface{} {
	switch v := node.(type) {
	case []interface{}:
		for i := range v {
			v[i] = walk(v[i], tokens, pairs)
		}
		return v
	case map[string]interface{}:
		if IsReference(v) {
			token := tokens.Next()
			*pairs = append(*pairs, Pair{Token: token, Reference: v})
			return "${" + token + "}"
		}
		keys := make([]string, 0, len(v))
		for key := range v {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			v[key] = walk(v[key], tokens, pairs)
		}
		return v
	default:
		return node
	}
}
