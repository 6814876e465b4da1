package lint

import "sort"

// transitionTargets collects every state name a state can hand control
// to: Next, a Choice state's rule targets and Default, and Catch
// fallbacks.
func transitionTargets(state map[string]interface{}) []string {
	var targets []string
	if next, ok := state["Next"].(string); ok {
		targets = append(targets, next)
	}
	if def, ok := state["Default"].(string); ok {
		targets = append(targets, def)
	}
	if choices, ok := state["Choices"].([]interface{}); ok {
		for _, choice := range choices {
			rule, ok := choice.(map[string]interface{})
			if !ok {
				continue
			}
			if next, ok := rule["Next"].(string); ok {
				targets = append(targets, next)
			}
		}
	}
	if catchers, ok := state["Catch"].([]interface{}); ok {
		for _, catcher := range catchers {
			clause, ok := catcher.(map[string]interface{})
			if !ok {
				continue
			}
			if next, ok := clause["Next"].(string); ok {
				targets = append(targets, next)
			}
		}
	}
	return targets
}

func sortedStateNames(states map[string]interface{}) []string {
	names := make([]string, 0, len(states))
	for name := range states {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func scopeSuffix(scope string) string {
	if scope == "" {
		return ""
	}
	return " (in " + scope + ")"
}

func childScope(parent, child string) string {
	if parent == "" {
		return child
	}
	return parent + "." + child
}
