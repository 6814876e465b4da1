package naming

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	assert.Equal(t, "Hello", Normalize("hello"))
	assert.Equal(t, "HelloWorld", Normalize("hello-world"))
	assert.Equal(t, "Myfn2", Normalize("my_fn_2"))
	assert.Equal(t, "AlreadyUpper", Normalize("AlreadyUpper"))
	assert.Equal(t, "", Normalize(""))
	assert.Equal(t, "", Normalize("---"))
}

func TestLogicalIDs(t *testing.T) {
	assert.Equal(t, "HellostatemachineStepFunctionsStateMachine", StateMachineLogicalID("hellostatemachine"))
	assert.Equal(t, "HellostatemachineStepFunctionsStateMachineArn", StateMachineOutputID("hellostatemachine"))
	assert.Equal(t, "Fn1LambdaFunction", LambdaLogicalID("fn1"))
	assert.Equal(t, "MyFuncLambdaFunction", LambdaLogicalID("my-func"))
}

func TestTranslateGetAttList(t *testing.T) {
	tr := NewTranslator([]string{"fn1"})

	got := tr.Translate(map[string]interface{}{
		"Fn::GetAtt": []interface{}{"fn1", "Arn"},
	})
	assert.Equal(t, map[string]interface{}{
		"Fn::GetAtt": []interface{}{"Fn1LambdaFunction", "Arn"},
	}, got)
}

func TestTranslateGetAttShortForm(t *testing.T) {
	tr := NewTranslator([]string{"fn1"})

	got := tr.Translate(map[string]interface{}{"Fn::GetAtt": "fn1.Arn"})
	assert.Equal(t, map[string]interface{}{"Fn::GetAtt": "Fn1LambdaFunction.Arn"}, got)
}

func TestTranslateRef(t *testing.T) {
	tr := NewTranslator([]string{"fn1"})

	got := tr.Translate(map[string]interface{}{"Ref": "fn1"})
	assert.Equal(t, map[string]interface{}{"Ref": "Fn1LambdaFunction"}, got)
}

func TestTranslateLeavesForeignReferencesAlone(t *testing.T) {
	tr := NewTranslator([]string{"fn1"})

	ref := map[string]interface{}{"Fn::GetAtt": []interface{}{"SomeQueue", "Arn"}}
	assert.Equal(t, map[string]interface{}{
		"Fn::GetAtt": []interface{}{"SomeQueue", "Arn"},
	}, tr.Translate(ref))

	assert.Equal(t, map[string]interface{}{"Ref": "AWS::Region"},
		tr.Translate(map[string]interface{}{"Ref": "AWS::Region"}))
}

func TestTranslateRecursesIntoComposites(t *testing.T) {
	tr := NewTranslator([]string{"fn1"})

	got := tr.Translate(map[string]interface{}{
		"Fn::Join": []interface{}{":", []interface{}{
			map[string]interface{}{"Fn::GetAtt": []interface{}{"fn1", "Arn"}},
			"42",
		}},
	})

	join := got.(map[string]interface{})["Fn::Join"].([]interface{})
	assert.Equal(t, map[string]interface{}{
		"Fn::GetAtt": []interface{}{"Fn1LambdaFunction", "Arn"},
	}, join[1].([]interface{})[0])
}

func TestTranslateScalarsPassThrough(t *testing.T) {
	tr := NewTranslator(nil)
	assert.Equal(t, "literal", tr.Translate("literal"))
	assert.Equal(t, 7, tr.Translate(7))
	assert.Nil(t, tr.Translate(nil))
}
