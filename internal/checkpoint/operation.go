package checkpoint

import (
	"context"
	"io"

	"go.uber.org/zap"
)

// OutcomeStatus classifies the result of a single checkpoint operation.
type OutcomeStatus int

// Operation outcome classifications.
const (
	OutcomeStatusSuccess OutcomeStatus = iota
	OutcomeStatusWarning
	OutcomeStatusFatal
)

// OperationOutcome captures the typed result of one executed operation.
type OperationOutcome struct {
	Status  OutcomeStatus
	Warning error
	Detail  string
}

// successOutcome builds a success outcome with an optional human-readable detail.
func successOutcome(detail string) OperationOutcome {
	return OperationOutcome{Status: OutcomeStatusSuccess, Detail: detail}
}

// warningOutcome builds a non-fatal outcome carrying the warning for the final summary.
func warningOutcome(warning error) OperationOutcome {
	return OperationOutcome{Status: OutcomeStatusWarning, Warning: warning, Detail: warning.Error()}
}

// RepositoryService exposes the git operations the commit step requires.
type RepositoryService interface {
	IsGitRepository(executionContext context.Context, repositoryPath string) (bool, error)
	HasUncommittedChanges(executionContext context.Context, repositoryPath string) (bool, error)
	StageAll(executionContext context.Context, repositoryPath string) error
	CreateCommit(executionContext context.Context, repositoryPath string, commitMessage string) error
}

// DependencyFreezer exposes the package-manager capability the dependency step requires.
type DependencyFreezer interface {
	FreezeDependencies(executionContext context.Context, workingDirectory string) (string, error)
}

// Environment exposes shared dependencies for checkpoint operations.
type Environment struct {
	Repository        RepositoryService
	DependencyFreezer DependencyFreezer
	Clock             Clock
	Output            io.Writer
	Errors            io.Writer
	Logger            *zap.Logger
	DryRun            bool
}

// StepRecord preserves the outcome of an executed operation for the run summary.
type StepRecord struct {
	StepName string
	Status   OutcomeStatus
	Detail   string
}

// State carries the mutable per-run values passed between operations.
type State struct {
	Token                Token
	ProjectDirectory     string
	FilePattern          string
	CommitLabel          string
	BackupDirectory      string
	RequirementsFilePath string
	ManifestFilePath     string
	SummaryFilePath      string
	StepRecords          []StepRecord
	Warnings             []error
}

// Operation coordinates a single checkpoint step.
type Operation interface {
	Name() string
	Execute(executionContext context.Context, environment *Environment, state *State) (OperationOutcome, error)
}
