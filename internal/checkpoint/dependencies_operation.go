package checkpoint

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

const (
	dependenciesOperationNameConstant        = "dependency-snapshot"
	requirementsFileNameTemplateConstant     = "requirements_%s.txt"
	dependenciesStartTemplateConstant        = "Writing dependency snapshot to %s\n"
	dependenciesCompleteTemplateConstant     = "Dependency snapshot written to %s\n"
	dependenciesDryRunTemplateConstant       = "Would write dependency snapshot to %s\n"
	dependenciesSuccessDetailTemplate        = "dependency snapshot written to %s"
	dependenciesDryRunDetailTemplate         = "would write dependency snapshot to %s"
	dependencySnapshotFilePermissionConstant = 0o644
)

// DependencySnapshotOperation captures the installed package listing into a token-named requirements file.
//
// A missing or failing package-manager client is a warning, not a failure;
// the file manifest step still runs.
type DependencySnapshotOperation struct{}

// Name identifies the dependency snapshot step.
func (operation *DependencySnapshotOperation) Name() string {
	return dependenciesOperationNameConstant
}

// Execute writes the freeze output verbatim, downgrading tool failures to warnings.
func (operation *DependencySnapshotOperation) Execute(executionContext context.Context, environment *Environment, state *State) (OperationOutcome, error) {
	requirementsFileName := fmt.Sprintf(requirementsFileNameTemplateConstant, state.Token)
	requirementsFilePath := filepath.Join(state.ProjectDirectory, requirementsFileName)

	if environment.DryRun {
		fmt.Fprintf(environment.Output, dependenciesDryRunTemplateConstant, requirementsFilePath)
		return successOutcome(fmt.Sprintf(dependenciesDryRunDetailTemplate, requirementsFilePath)), nil
	}

	fmt.Fprintf(environment.Output, dependenciesStartTemplateConstant, requirementsFilePath)

	frozenDependencies, freezeError := environment.DependencyFreezer.FreezeDependencies(executionContext, state.ProjectDirectory)
	if freezeError != nil {
		return warningOutcome(DependencyToolError{Cause: freezeError}), nil
	}

	if writeError := os.WriteFile(requirementsFilePath, []byte(frozenDependencies), dependencySnapshotFilePermissionConstant); writeError != nil {
		return warningOutcome(DependencyToolError{Cause: writeError}), nil
	}

	state.RequirementsFilePath = requirementsFilePath
	fmt.Fprintf(environment.Output, dependenciesCompleteTemplateConstant, requirementsFilePath)
	return successOutcome(fmt.Sprintf(dependenciesSuccessDetailTemplate, requirementsFilePath)), nil
}
