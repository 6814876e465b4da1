package compiler

import (
	"sfn-compiler/cfn"
	"sfn-compiler/naming"
	"sfn-compiler/project"
)

// buildStateMachine resolves role, dependencies, and tags for one machine
// and merges its resource and output records into the template.
func buildStateMachine(
	proj *project.Project,
	machine project.NamedStateMachine,
	definition interface{},
	tpl *cfn.Template,
) {
	role, dependsOn := resolveRole(machine)
	dependsOn = appendDeclaredDependencies(dependsOn, machine.DependsOn)

	properties := map[string]interface{}{
		"DefinitionString": definition,
		"RoleArn":          role,
	}
	if tags := cfn.MergeTags(proj.Provider.Tags, machine.Tags); len(tags) > 0 {
		properties["Tags"] = tags
	}
	if machine.DisplayName != "" {
		properties["StateMachineName"] = machine.DisplayName
	}

	logicalID := naming.StateMachineLogicalID(machine.Name)
	tpl.AddResource(logicalID, &cfn.Resource{
		Type:       StateMachineResourceType,
		Properties: properties,
		DependsOn:  dependsOn,
	})
	tpl.AddOutput(naming.StateMachineOutputID(machine.Name), cfn.Output{
		Description: outputDescription,
		Value:       map[string]interface{}{"Ref": logicalID},
	})
}

// resolveRole returns the role reference and the initial dependency list.
// An explicit role is used verbatim and adds no dependency; otherwise the
// conventional shared execution role is referenced and depended on.
func resolveRole(machine project.NamedStateMachine) (interface{}, []string) {
	if machine.Role != nil {
		return machine.Role, nil
	}
	role := map[string]interface{}{
		"Fn::GetAtt": []interface{}{ExecutionRoleLogicalID, "Arn"},
	}
	return role, []string{ExecutionRoleLogicalID}
}

// appendDeclaredDependencies appends user-declared dependsOn entries
// after the role dependency, preserving declared order. No deduplication
// is performed.
func appendDeclaredDependencies(dependsOn []string, declared interface{}) []string {
	switch v := declared.(type) {
	case string:
		dependsOn = append(dependsOn, v)
	case []interface{}:
		for _, entry := range v {
			if name, ok := entry.(string); ok {
				dependsOn = append(dependsOn, name)
			}
		}
	}
	return dependsOn
}
