// Package pinning rewrites canonical function references to immutable
// published versions. Resolution is a collaborator of the compiler: the
// static resolver pins from versions declared in the project file, the
// AWS resolver asks the Lambda control plane for the newest published
// version.
package pinning

import (
	"context"
	"fmt"
)

// Resolver pins one canonical reference to an immutable revision. The
// input is a translated Fn::Sub parameter value; implementations return
// the pinned replacement or an error when the reference does not point
// at a versionable resource.
type Resolver interface {
	Pin(ctx context.Context, ref interface{}) (interface{}, error)
}

// Static pins references from a fixed logical-id -> version table,
// keeping compilation deterministic and offline.
type Static struct {
	versions map[string]string
}

// NewStatic builds a resolver over explicit versions keyed by function
// logical id.
func NewStatic(versions map[string]string) *Static {
	return &Static{versions: versions}
}

// Pin rewrites the reference as a join of the unqualified ARN and the
// pinned version number.
func (s *Static) Pin(_ context.Context, ref interface{}) (interface{}, error) {
	logicalID, ok := ReferenceTarget(ref)
	if !ok {
		return nil, fmt.Errorf("reference %v is not a versionable function reference", ref)
	}
	version, ok := s.versions[logicalID]
	if !ok {
		return nil, fmt.Errorf("no pinned version declared for %s", logicalID)
	}
	return map[string]interface{}{
		"Fn::Join": []interface{}{":", []interface{}{ref, version}},
	}, nil
}

// ReferenceTarget extracts the logical id a canonical reference points
// at. Recognized shapes are {"Fn::GetAtt": [id, ...]}, the short string
// form {"Fn::GetAtt": "id.Attr"}, and {"Ref": id}.
func ReferenceTarget(ref interface{}) (string, bool) {
	m, ok := ref.(map[string]interface{})
	if !ok || len(m) != 1 {
		return "", false
	}
	if target, ok := m["Ref"].(string); ok {
		return target, true
	}
	switch args := m["Fn::GetAtt"].(type) {
	case []interface{}:
		if len(args) > 0 {
			if id, ok := args[0].(string); ok {
				return id, true
			}
		}
	case string:
		for i, r := range args {
			if r == '.' {
				return args[:i], true
			}
		}
	}
	return "", false
}
