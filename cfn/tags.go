package cfn

import (
	"fmt"
	"sort"
)

// Tag is one Key/Value tag entry on a resource.
type Tag struct {
	Key   string `json:"Key"`
	Value string `json:"Value"`
}

// NormalizeTags converts a tag mapping into an ordered tag sequence with
// values coerced to strings. Entries are emitted in sorted key order so
// output is deterministic. A nil or empty mapping yields an empty
// sequence.
func NormalizeTags(tags map[string]interface{}) []Tag {
	out := make([]Tag, 0, len(tags))
	keys := make([]string, 0, len(tags))
	for key := range tags {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		out = append(out, Tag{Key: key, Value: fmt.Sprint(tags[key])})
	}
	return out
}

// MergeTags appends machine-level tags after provider-level defaults.
// Duplicate keys are retained in both positions; template appliers apply
// the later entry last.
func MergeTags(provider, machine map[string]interface{}) []Tag {
	return append(NormalizeTags(provider), NormalizeTags(machine)...)
}
