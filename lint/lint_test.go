package lint

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func state(fields map[string]interface{}) map[string]interface{} { return fields }

func machine(startAt string, states map[string]interface{}) map[string]interface{} {
	return map[string]interface{}{"StartAt": startAt, "States": states}
}

func TestCheckValidMachine(t *testing.T) {
	doc := machine("A", map[string]interface{}{
		"A": state(map[string]interface{}{"Type": "Task", "Resource": "arn:...", "Next": "B"}),
		"B": state(map[string]interface{}{"Type": "Succeed"}),
	})
	assert.True(t, New().Check(doc).Valid())
}

func TestCheckUnknownStartState(t *testing.T) {
	doc := machine("Missing", map[string]interface{}{
		"A": state(map[string]interface{}{"Type": "Pass", "End": true}),
	})
	result := New().Check(doc)

	require.False(t, result.Valid())
	assert.Equal(t, CodeUnknownStartState, result.Violations[0].Code)
}

func TestCheckDanglingTransition(t *testing.T) {
	doc := machine("A", map[string]interface{}{
		"A": state(map[string]interface{}{"Type": "Task", "Next": "Nowhere"}),
	})
	result := New().Check(doc)

	require.False(t, result.Valid())
	found := false
	for _, v := range result.Violations {
		if v.Code == CodeDanglingTransition && v.State == "A" {
			found = true
		}
	}
	assert.True(t, found)
}

func TestCheckUnterminatedState(t *testing.T) {
	doc := machine("A", map[string]interface{}{
		"A": state(map[string]interface{}{"Type": "Task"}),
	})
	result := New().Check(doc)

	require.Len(t, result.Violations, 1)
	assert.Equal(t, CodeUnterminatedState, result.Violations[0].Code)
}

func TestCheckUnreachableState(t *testing.T) {
	doc := machine("A", map[string]interface{}{
		"A":      state(map[string]interface{}{"Type": "Pass", "End": true}),
		"Orphan": state(map[string]interface{}{"Type": "Pass", "End": true}),
	})
	result := New().Check(doc)

	require.Len(t, result.Violations, 1)
	assert.Equal(t, CodeUnreachableState, result.Violations[0].Code)
	assert.Equal(t, "Orphan", result.Violations[0].State)
}

func TestCheckChoiceTargetsCountAsReachable(t *testing.T) {
	doc := machine("Pick", map[string]interface{}{
		"Pick": state(map[string]interface{}{
			"Type": "Choice",
			"Choices": []interface{}{
				map[string]interface{}{"Variable": "$.x", "BooleanEquals": true, "Next": "Yes"},
			},
			"Default": "No",
		}),
		"Yes": state(map[string]interface{}{"Type": "Succeed"}),
		"No":  state(map[string]interface{}{"Type": "Fail"}),
	})
	assert.True(t, New().Check(doc).Valid())
}

func TestCheckEmptyChoices(t *testing.T) {
	doc := machine("Pick", map[string]interface{}{
		"Pick": state(map[string]interface{}{"Type": "Choice"}),
	})
	result := New().Check(doc)

	require.Len(t, result.Violations, 1)
	assert.Equal(t, CodeEmptyChoices, result.Violations[0].Code)
}

func TestCheckCatchTargets(t *testing.T) {
	doc := machine("A", map[string]interface{}{
		"A": state(map[string]interface{}{
			"Type":     "Task",
			"Resource": "arn:...",
			"End":      true,
			"Catch": []interface{}{
				map[string]interface{}{"ErrorEquals": []interface{}{"States.ALL"}, "Next": "Cleanup"},
			},
		}),
		"Cleanup": state(map[string]interface{}{"Type": "Pass", "End": true}),
	})
	assert.True(t, New().Check(doc).Valid())
}

func TestCheckMissingStateType(t *testing.T) {
	doc := machine("A", map[string]interface{}{
		"A": state(map[string]interface{}{"End": true}),
	})
	result := New().Check(doc)

	require.False(t, result.Valid())
	assert.Equal(t, CodeMissingStateType, result.Violations[0].Code)
}

func TestCheckParallelBranchesRecursively(t *testing.T) {
	doc := machine("Fan", map[string]interface{}{
		"Fan": state(map[string]interface{}{
			"Type": "Parallel",
			"End":  true,
			"Branches": []interface{}{
				machine("B1", map[string]interface{}{
					"B1": state(map[string]interface{}{"Type": "Task", "Next": "Gone"}),
				}),
			},
		}),
	})
	result := New().Check(doc)

	require.False(t, result.Valid())
	codes := make([]string, len(result.Violations))
	for i, v := range result.Violations {
		codes[i] = v.Code
	}
	assert.Contains(t, codes, CodeDanglingTransition)
}

func TestCheckParallelWithoutBranches(t *testing.T) {
	doc := machine("Fan", map[string]interface{}{
		"Fan": state(map[string]interface{}{"Type": "Parallel", "End": true}),
	})
	result := New().Check(doc)

	require.Len(t, result.Violations, 1)
	assert.Equal(t, CodeInvalidBranch, result.Violations[0].Code)
}

func TestCheckMapItemProcessorRecursively(t *testing.T) {
	doc := machine("Each", map[string]interface{}{
		"Each": state(map[string]interface{}{
			"Type": "Map",
			"End":  true,
			"ItemProcessor": machine("Item", map[string]interface{}{
				"Item":   state(map[string]interface{}{"Type": "Pass", "End": true}),
				"Orphan": state(map[string]interface{}{"Type": "Pass", "End": true}),
			}),
		}),
	})
	result := New().Check(doc)

	require.Len(t, result.Violations, 1)
	assert.Equal(t, CodeUnreachableState, result.Violations[0].Code)
}

func TestCheckMapLegacyIterator(t *testing.T) {
	doc := machine("Each", map[string]interface{}{
		"Each": state(map[string]interface{}{
			"Type": "Map",
			"End":  true,
			"Iterator": machine("Item", map[string]interface{}{
				"Item": state(map[string]interface{}{"Type": "Pass", "End": true}),
			}),
		}),
	})
	assert.True(t, New().Check(doc).Valid())
}
