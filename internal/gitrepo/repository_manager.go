package gitrepo

import (
	"context"
	"errors"
	"strings"

	"github.com/temirov/checkpoint/internal/execshell"
)

const (
	gitRevParseSubcommandConstant         = "rev-parse"
	gitInsideWorkTreeFlagConstant         = "--is-inside-work-tree"
	gitStatusSubcommandConstant           = "status"
	gitPorcelainFlagConstant              = "--porcelain"
	gitAddSubcommandConstant              = "add"
	gitAddAllFlagConstant                 = "-A"
	gitAddPathSpecConstant                = "."
	gitCommitSubcommandConstant           = "commit"
	gitCommitMessageFlagConstant          = "-m"
	gitTrueOutputConstant                 = "true"
	nothingToCommitOutputMarkerConstant   = "nothing to commit"
	cleanWorkTreeOutputMarkerConstant     = "working tree clean"
	repositoryPathRequiredMessageConstant = "repository path must be provided"
)

// ErrExecutorNotConfigured reports a missing git executor dependency.
var ErrExecutorNotConfigured = errors.New("repository manager requires a git executor")

// ErrNoChangesToCommit reports a commit attempt against a clean working tree.
var ErrNoChangesToCommit = errors.New("no changes to commit")

// GitExecutor exposes the subset of shell execution used by the repository manager.
type GitExecutor interface {
	ExecuteGit(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error)
}

// RepositoryManager performs git operations against a project repository.
type RepositoryManager struct {
	gitExecutor GitExecutor
}

// NewRepositoryManager validates dependencies and constructs a RepositoryManager.
func NewRepositoryManager(gitExecutor GitExecutor) (*RepositoryManager, error) {
	if gitExecutor == nil {
		return nil, ErrExecutorNotConfigured
	}
	return &RepositoryManager{gitExecutor: gitExecutor}, nil
}

// IsGitRepository reports whether the provided path resides inside a git work tree.
func (manager *RepositoryManager) IsGitRepository(executionContext context.Context, repositoryPath string) (bool, error) {
	trimmedPath, pathError := requireRepositoryPath(repositoryPath)
	if pathError != nil {
		return false, pathError
	}

	commandDetails := execshell.CommandDetails{
		Arguments:        []string{gitRevParseSubcommandConstant, gitInsideWorkTreeFlagConstant},
		WorkingDirectory: trimmedPath,
	}

	executionResult, executionError := manager.gitExecutor.ExecuteGit(executionContext, commandDetails)
	if executionError != nil {
		commandFailure := execshell.CommandFailedError{}
		if errors.As(executionError, &commandFailure) {
			return false, nil
		}
		return false, executionError
	}

	return strings.TrimSpace(executionResult.StandardOutput) == gitTrueOutputConstant, nil
}

// HasUncommittedChanges reports whether the repository working tree contains staged or unstaged modifications.
func (manager *RepositoryManager) HasUncommittedChanges(executionContext context.Context, repositoryPath string) (bool, error) {
	trimmedPath, pathError := requireRepositoryPath(repositoryPath)
	if pathError != nil {
		return false, pathError
	}

	commandDetails := execshell.CommandDetails{
		Arguments:        []string{gitStatusSubcommandConstant, gitPorcelainFlagConstant},
		WorkingDirectory: trimmedPath,
	}

	executionResult, executionError := manager.gitExecutor.ExecuteGit(executionContext, commandDetails)
	if executionError != nil {
		return false, executionError
	}

	return len(strings.TrimSpace(executionResult.StandardOutput)) > 0, nil
}

// StageAll stages every tracked and untracked change beneath the repository root.
func (manager *RepositoryManager) StageAll(executionContext context.Context, repositoryPath string) error {
	trimmedPath, pathError := requireRepositoryPath(repositoryPath)
	if pathError != nil {
		return pathError
	}

	commandDetails := execshell.CommandDetails{
		Arguments:        []string{gitAddSubcommandConstant, gitAddAllFlagConstant, gitAddPathSpecConstant},
		WorkingDirectory: trimmedPath,
	}

	_, executionError := manager.gitExecutor.ExecuteGit(executionContext, commandDetails)
	return executionError
}

// CreateCommit records a commit with the supplied message, translating clean-worktree failures into ErrNoChangesToCommit.
func (manager *RepositoryManager) CreateCommit(executionContext context.Context, repositoryPath string, commitMessage string) error {
	trimmedPath, pathError := requireRepositoryPath(repositoryPath)
	if pathError != nil {
		return pathError
	}

	commandDetails := execshell.CommandDetails{
		Arguments:        []string{gitCommitSubcommandConstant, gitCommitMessageFlagConstant, commitMessage},
		WorkingDirectory: trimmedPath,
	}

	_, executionError := manager.gitExecutor.ExecuteGit(executionContext, commandDetails)
	if executionError == nil {
		return nil
	}

	commandFailure := execshell.CommandFailedError{}
	if errors.As(executionError, &commandFailure) && describesCleanWorkTree(commandFailure.Result) {
		return ErrNoChangesToCommit
	}

	return executionError
}

func describesCleanWorkTree(result execshell.ExecutionResult) bool {
	combinedOutput := strings.ToLower(result.StandardOutput + result.StandardError)
	if strings.Contains(combinedOutput, nothingToCommitOutputMarkerConstant) {
		return true
	}
	return strings.Contains(combinedOutput, cleanWorkTreeOutputMarkerConstant)
}

func requireRepositoryPath(repositoryPath string) (string, error) {
	trimmedPath := strings.TrimSpace(repositoryPath)
	if len(trimmedPath) == 0 {
		return "", errors.New(repositoryPathRequiredMessageConstant)
	}
	return trimmedPath, nil
}
