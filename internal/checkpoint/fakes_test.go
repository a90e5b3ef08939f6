package checkpoint_test

import (
	"bytes"
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/temirov/checkpoint/internal/checkpoint"
)

type fixedClock struct {
	currentTime time.Time
}

func (clock fixedClock) Now() time.Time {
	return clock.currentTime
}

type fakeRepositoryService struct {
	insideRepository     bool
	uncommittedChanges   bool
	repositoryCheckError error
	statusCheckError     error
	stageError           error
	commitError          error
	stagedPaths          []string
	commitMessages       []string
}

func (repository *fakeRepositoryService) IsGitRepository(executionContext context.Context, repositoryPath string) (bool, error) {
	return repository.insideRepository, repository.repositoryCheckError
}

func (repository *fakeRepositoryService) HasUncommittedChanges(executionContext context.Context, repositoryPath string) (bool, error) {
	return repository.uncommittedChanges, repository.statusCheckError
}

func (repository *fakeRepositoryService) StageAll(executionContext context.Context, repositoryPath string) error {
	if repository.stageError != nil {
		return repository.stageError
	}
	repository.stagedPaths = append(repository.stagedPaths, repositoryPath)
	return nil
}

func (repository *fakeRepositoryService) CreateCommit(executionContext context.Context, repositoryPath string, commitMessage string) error {
	if repository.commitError != nil {
		return repository.commitError
	}
	repository.commitMessages = append(repository.commitMessages, commitMessage)
	return nil
}

type fakeDependencyFreezer struct {
	frozenOutput string
	freezeError  error
	invocations  int
}

func (freezer *fakeDependencyFreezer) FreezeDependencies(executionContext context.Context, workingDirectory string) (string, error) {
	freezer.invocations++
	return freezer.frozenOutput, freezer.freezeError
}

func buildTestEnvironment(repository *fakeRepositoryService, freezer *fakeDependencyFreezer, runStart time.Time) (*checkpoint.Environment, *bytes.Buffer) {
	outputBuffer := &bytes.Buffer{}
	environment := &checkpoint.Environment{
		Repository:        repository,
		DependencyFreezer: freezer,
		Clock:             fixedClock{currentTime: runStart},
		Output:            outputBuffer,
		Errors:            outputBuffer,
		Logger:            zap.NewNop(),
	}
	return environment, outputBuffer
}
