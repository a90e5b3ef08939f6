package checkpoint_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/temirov/checkpoint/internal/checkpoint"
)

const (
	copyTestProjectNameConstant      = "proj"
	copyTestHiddenFileNameConstant   = ".env"
	copyTestNestedDirectoryConstant  = "core"
	copyTestNestedFileNameConstant   = "database.py"
	copyTestTopLevelFileNameConstant = "main.py"
	copyTestFileContentConstant      = "print('hello')\n"
	copyTestTokenTextConstant        = "20240305_090703"
)

func buildCopyTestProject(testInstance *testing.T) string {
	testInstance.Helper()

	parentDirectory := testInstance.TempDir()
	projectDirectory := filepath.Join(parentDirectory, copyTestProjectNameConstant)
	require.NoError(testInstance, os.MkdirAll(filepath.Join(projectDirectory, copyTestNestedDirectoryConstant), 0o755))
	require.NoError(testInstance, os.WriteFile(filepath.Join(projectDirectory, copyTestTopLevelFileNameConstant), []byte(copyTestFileContentConstant), 0o644))
	require.NoError(testInstance, os.WriteFile(filepath.Join(projectDirectory, copyTestHiddenFileNameConstant), []byte("SECRET=1\n"), 0o600))
	require.NoError(testInstance, os.WriteFile(filepath.Join(projectDirectory, copyTestNestedDirectoryConstant, copyTestNestedFileNameConstant), []byte(copyTestFileContentConstant), 0o644))
	return projectDirectory
}

func buildCopyTestState(projectDirectory string) *checkpoint.State {
	return &checkpoint.State{
		Token:            checkpoint.Token(copyTestTokenTextConstant),
		ProjectDirectory: projectDirectory,
	}
}

func TestSnapshotCopyOperationDuplicatesProjectTree(testInstance *testing.T) {
	projectDirectory := buildCopyTestProject(testInstance)
	environment, _ := buildTestEnvironment(&fakeRepositoryService{}, &fakeDependencyFreezer{}, time.Now())
	state := buildCopyTestState(projectDirectory)

	operation := &checkpoint.SnapshotCopyOperation{}
	operationOutcome, operationError := operation.Execute(context.Background(), environment, state)
	require.NoError(testInstance, operationError)
	require.Equal(testInstance, checkpoint.OutcomeStatusSuccess, operationOutcome.Status)

	expectedBackupDirectory := fmt.Sprintf("%s_backup_%s", projectDirectory, copyTestTokenTextConstant)
	require.Equal(testInstance, expectedBackupDirectory, state.BackupDirectory)

	copiedFilePaths := []string{
		filepath.Join(expectedBackupDirectory, copyTestTopLevelFileNameConstant),
		filepath.Join(expectedBackupDirectory, copyTestHiddenFileNameConstant),
		filepath.Join(expectedBackupDirectory, copyTestNestedDirectoryConstant, copyTestNestedFileNameConstant),
	}
	for _, copiedFilePath := range copiedFilePaths {
		_, statError := os.Stat(copiedFilePath)
		require.NoError(testInstance, statError)
	}

	copiedContent, readError := os.ReadFile(filepath.Join(expectedBackupDirectory, copyTestTopLevelFileNameConstant))
	require.NoError(testInstance, readError)
	require.Equal(testInstance, copyTestFileContentConstant, string(copiedContent))
}

func TestSnapshotCopyOperationRecreatesSymlinks(testInstance *testing.T) {
	projectDirectory := buildCopyTestProject(testInstance)
	linkPath := filepath.Join(projectDirectory, "latest.py")
	require.NoError(testInstance, os.Symlink(copyTestTopLevelFileNameConstant, linkPath))

	environment, _ := buildTestEnvironment(&fakeRepositoryService{}, &fakeDependencyFreezer{}, time.Now())
	state := buildCopyTestState(projectDirectory)

	operation := &checkpoint.SnapshotCopyOperation{}
	operationOutcome, operationError := operation.Execute(context.Background(), environment, state)
	require.NoError(testInstance, operationError)
	require.Equal(testInstance, checkpoint.OutcomeStatusSuccess, operationOutcome.Status)

	copiedLinkTarget, readLinkError := os.Readlink(filepath.Join(state.BackupDirectory, "latest.py"))
	require.NoError(testInstance, readLinkError)
	require.Equal(testInstance, copyTestTopLevelFileNameConstant, copiedLinkTarget)
}

func TestSnapshotCopyOperationFailsOnDestinationCollision(testInstance *testing.T) {
	projectDirectory := buildCopyTestProject(testInstance)
	environment, _ := buildTestEnvironment(&fakeRepositoryService{}, &fakeDependencyFreezer{}, time.Now())

	collidingBackupDirectory := fmt.Sprintf("%s_backup_%s", projectDirectory, copyTestTokenTextConstant)
	require.NoError(testInstance, os.MkdirAll(collidingBackupDirectory, 0o755))

	operation := &checkpoint.SnapshotCopyOperation{}
	_, operationError := operation.Execute(context.Background(), environment, buildCopyTestState(projectDirectory))
	require.Error(testInstance, operationError)

	copyFailure := checkpoint.CopyError{}
	require.ErrorAs(testInstance, operationError, &copyFailure)
	require.Equal(testInstance, projectDirectory, copyFailure.SourcePath)
	require.Equal(testInstance, collidingBackupDirectory, copyFailure.DestinationPath)
}

func TestSnapshotCopyOperationFailsOnMissingSource(testInstance *testing.T) {
	missingProjectDirectory := filepath.Join(testInstance.TempDir(), "absent")
	environment, _ := buildTestEnvironment(&fakeRepositoryService{}, &fakeDependencyFreezer{}, time.Now())

	operation := &checkpoint.SnapshotCopyOperation{}
	_, operationError := operation.Execute(context.Background(), environment, buildCopyTestState(missingProjectDirectory))
	require.Error(testInstance, operationError)

	copyFailure := checkpoint.CopyError{}
	require.ErrorAs(testInstance, operationError, &copyFailure)
}

func TestSnapshotCopyOperationDryRunCreatesNothing(testInstance *testing.T) {
	projectDirectory := buildCopyTestProject(testInstance)
	environment, outputBuffer := buildTestEnvironment(&fakeRepositoryService{}, &fakeDependencyFreezer{}, time.Now())
	environment.DryRun = true
	state := buildCopyTestState(projectDirectory)

	operation := &checkpoint.SnapshotCopyOperation{}
	operationOutcome, operationError := operation.Execute(context.Background(), environment, state)
	require.NoError(testInstance, operationError)
	require.Equal(testInstance, checkpoint.OutcomeStatusSuccess, operationOutcome.Status)
	require.Contains(testInstance, outputBuffer.String(), "Would copy")

	_, statError := os.Stat(state.BackupDirectory)
	require.True(testInstance, os.IsNotExist(statError))
}
