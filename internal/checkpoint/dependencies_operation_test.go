package checkpoint_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/temirov/checkpoint/internal/checkpoint"
)

const (
	dependenciesTestTokenTextConstant = "20240305_090703"
	dependenciesTestFreezeOutput      = "requests==2.31.0\nurllib3==2.2.1\n"
)

func buildDependenciesTestState(projectDirectory string) *checkpoint.State {
	return &checkpoint.State{
		Token:            checkpoint.Token(dependenciesTestTokenTextConstant),
		ProjectDirectory: projectDirectory,
	}
}

func TestDependencySnapshotOperationWritesFreezeOutputVerbatim(testInstance *testing.T) {
	projectDirectory := testInstance.TempDir()
	freezer := &fakeDependencyFreezer{frozenOutput: dependenciesTestFreezeOutput}
	environment, _ := buildTestEnvironment(&fakeRepositoryService{}, freezer, time.Now())
	state := buildDependenciesTestState(projectDirectory)

	operation := &checkpoint.DependencySnapshotOperation{}
	operationOutcome, operationError := operation.Execute(context.Background(), environment, state)
	require.NoError(testInstance, operationError)
	require.Equal(testInstance, checkpoint.OutcomeStatusSuccess, operationOutcome.Status)

	expectedFilePath := filepath.Join(projectDirectory, "requirements_"+dependenciesTestTokenTextConstant+".txt")
	require.Equal(testInstance, expectedFilePath, state.RequirementsFilePath)

	writtenContent, readError := os.ReadFile(expectedFilePath)
	require.NoError(testInstance, readError)
	require.Equal(testInstance, dependenciesTestFreezeOutput, string(writtenContent))
}

func TestDependencySnapshotOperationWarnsWhenToolUnavailable(testInstance *testing.T) {
	projectDirectory := testInstance.TempDir()
	freezer := &fakeDependencyFreezer{freezeError: errors.New("pip executable unavailable")}
	environment, _ := buildTestEnvironment(&fakeRepositoryService{}, freezer, time.Now())
	state := buildDependenciesTestState(projectDirectory)

	operation := &checkpoint.DependencySnapshotOperation{}
	operationOutcome, operationError := operation.Execute(context.Background(), environment, state)
	require.NoError(testInstance, operationError)
	require.Equal(testInstance, checkpoint.OutcomeStatusWarning, operationOutcome.Status)

	dependencyWarning := checkpoint.DependencyToolError{}
	require.ErrorAs(testInstance, operationOutcome.Warning, &dependencyWarning)

	directoryEntries, readError := os.ReadDir(projectDirectory)
	require.NoError(testInstance, readError)
	require.Empty(testInstance, directoryEntries)
}

func TestDependencySnapshotOperationDryRunWritesNothing(testInstance *testing.T) {
	projectDirectory := testInstance.TempDir()
	freezer := &fakeDependencyFreezer{frozenOutput: dependenciesTestFreezeOutput}
	environment, outputBuffer := buildTestEnvironment(&fakeRepositoryService{}, freezer, time.Now())
	environment.DryRun = true

	operation := &checkpoint.DependencySnapshotOperation{}
	operationOutcome, operationError := operation.Execute(context.Background(), environment, buildDependenciesTestState(projectDirectory))
	require.NoError(testInstance, operationError)
	require.Equal(testInstance, checkpoint.OutcomeStatusSuccess, operationOutcome.Status)
	require.Contains(testInstance, outputBuffer.String(), "Would write dependency snapshot")
	require.Zero(testInstance, freezer.invocations)

	directoryEntries, readError := os.ReadDir(projectDirectory)
	require.NoError(testInstance, readError)
	require.Empty(testInstance, directoryEntries)
}
