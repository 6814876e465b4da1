package naming

import "strings"

// Translator rewrites extracted intrinsic references into canonical
// platform form: a reference whose target names a function declared in
// the project is repointed at that function's Lambda logical id. All
// other references pass through untouched.
type Translator struct {
	functions map[string]bool
}

// NewTranslator builds a translator over the project's declared function
// names.
func NewTranslator(functionNames []string) *Translator {
	functions := make(map[string]bool, len(functionNames))
	for _, name := range functionNames {
		functions[name] = true
	}
	return &Translator{functions: functions}
}

// rewriteFunc rewrites the argument of one intrinsic function kind.
type rewriteFunc func(t *Translator, args interface{}) interface{}

var rewriters = map[string]rewriteFunc{
	"Ref":        rewriteRef,
	"Fn::GetAtt": rewriteGetAtt,
}

// Translate returns ref with every local function reference rewritten.
// It recurses into nested argument trees (Fn::Join lists, Fn::Sub
// parameter maps) so references buried inside composite intrinsics are
// rewritten too. Mutation happens in place for maps and slices.
func (t *Translator) Translate(ref interface{}) interface{} {
	switch v := ref.(type) {
	case map[string]interface{}:
		for key, args := range v {
			if rewrite, ok := rewriters[key]; ok && len(v) == 1 {
				v[key] = rewrite(t, args)
			} else {
				v[key] = t.Translate(args)
			}
		}
		return v
	case []interface{}:
		for i := range v {
			v[i] = t.Translate(v[i])
		}
		return v
	default:
		return ref
	}
}

func rewriteRef(t *Translator, args interface{}) interface{} {
	if name, ok := args.(string); ok && t.functions[name] {
		return LambdaLogicalID(name)
	}
	return args
}

func rewriteGetAtt(t *Translator, args interface{}) interface{} {
	switch v := args.(type) {
	case []interface{}:
		if len(v) > 0 {
			if name, ok := v[0].(string); ok && t.functions[name] {
				v[0] = LambdaLogicalID(name)
			}
		}
		return v
	case string:
		// Short form "name.Attribute".
		if name, attr, ok := strings.Cut(v, "."); ok && t.functions[name] {
			return LambdaLogicalID(name) + "." + attr
		}
		return v
	default:
		return args
	}
}
