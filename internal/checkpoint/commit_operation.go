package checkpoint

import (
	"context"
	"errors"
	"fmt"
)

const (
	commitOperationNameConstant         = "commit"
	commitMessageTemplateConstant       = "%s %s"
	commitStartTemplateConstant         = "Committing changes in %s\n"
	commitCompleteTemplateConstant      = "Created commit %q\n"
	commitDryRunTemplateConstant        = "Would commit changes in %s with message %q\n"
	commitSuccessDetailTemplateConstant = "created commit %q"
	commitDryRunDetailTemplateConstant  = "would create commit %q"
	notARepositoryMessageConstant       = "project directory is not a git repository"
	cleanWorkingTreeMessageConstant     = "working tree clean; nothing to commit"
)

// CommitOperation stages all changes and records a commit whose message embeds the timestamp token.
//
// A clean working tree or a misconfigured repository produces a CommitWarning;
// the run continues because the remaining artifacts are independent.
type CommitOperation struct{}

// Name identifies the commit step.
func (operation *CommitOperation) Name() string {
	return commitOperationNameConstant
}

// Execute stages and commits, downgrading commit failures to warnings.
func (operation *CommitOperation) Execute(executionContext context.Context, environment *Environment, state *State) (OperationOutcome, error) {
	commitMessage := fmt.Sprintf(commitMessageTemplateConstant, state.CommitLabel, state.Token)

	if environment.DryRun {
		fmt.Fprintf(environment.Output, commitDryRunTemplateConstant, state.ProjectDirectory, commitMessage)
		return successOutcome(fmt.Sprintf(commitDryRunDetailTemplateConstant, commitMessage)), nil
	}

	fmt.Fprintf(environment.Output, commitStartTemplateConstant, state.ProjectDirectory)

	insideRepository, repositoryCheckError := environment.Repository.IsGitRepository(executionContext, state.ProjectDirectory)
	if repositoryCheckError != nil {
		return warningOutcome(CommitWarning{Cause: repositoryCheckError}), nil
	}
	if !insideRepository {
		return warningOutcome(CommitWarning{Cause: errors.New(notARepositoryMessageConstant)}), nil
	}

	hasUncommittedChanges, statusError := environment.Repository.HasUncommittedChanges(executionContext, state.ProjectDirectory)
	if statusError != nil {
		return warningOutcome(CommitWarning{Cause: statusError}), nil
	}
	if !hasUncommittedChanges {
		return warningOutcome(CommitWarning{Cause: errors.New(cleanWorkingTreeMessageConstant)}), nil
	}

	if stageError := environment.Repository.StageAll(executionContext, state.ProjectDirectory); stageError != nil {
		return warningOutcome(CommitWarning{Cause: stageError}), nil
	}

	if commitError := environment.Repository.CreateCommit(executionContext, state.ProjectDirectory, commitMessage); commitError != nil {
		return warningOutcome(CommitWarning{Cause: commitError}), nil
	}

	fmt.Fprintf(environment.Output, commitCompleteTemplateConstant, commitMessage)
	return successOutcome(fmt.Sprintf(commitSuccessDetailTemplateConstant, commitMessage)), nil
}
