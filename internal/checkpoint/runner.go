package checkpoint

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

const (
	runnerDependenciesMessageConstant    = "checkpoint runner requires repository, dependency freezer, clock, and output dependencies"
	projectDirectoryRequiredMessage      = "project directory must be provided"
	filePatternRequiredMessageConstant   = "file pattern must be provided"
	commitLabelRequiredMessageConstant   = "commit label must be provided"
	runStartTemplateConstant             = "Starting checkpoint %s for %s\n"
	runCompleteTemplateConstant          = "Checkpoint %s complete. Backup: %s\n"
	runWarningSummaryHeaderTemplate      = "Checkpoint %s completed with %d warning(s):\n"
	runWarningLineTemplateConstant       = "  - %s: %s\n"
	fatalStepErrorTemplateConstant       = "checkpoint %s failed at step %s: %w"
	projectDirectoryResolveErrorTemplate = "unable to resolve project directory %s: %w"
	runnerStepStartedLogMessageConstant  = "checkpoint step started"
	runnerStepFinishedLogMessageConstant = "checkpoint step finished"
	logFieldStepNameConstant             = "step_name"
	logFieldTokenConstant                = "token"
	logFieldStepStatusConstant           = "step_status"
)

// RunRequest describes one checkpoint invocation.
type RunRequest struct {
	ProjectDirectory string
	FilePattern      string
	CommitLabel      string
}

// RunResult reports the artifacts and warnings of a completed run.
type RunResult struct {
	Token            Token
	BackupDirectory  string
	RequirementsFile string
	ManifestFile     string
	SummaryFile      string
	Warnings         []error
}

// Runner executes the ordered checkpoint operations, halting only on fatal outcomes.
type Runner struct {
	operations  []Operation
	environment *Environment
}

// DefaultOperations returns the checkpoint pipeline in its mandated order.
func DefaultOperations() []Operation {
	return []Operation{
		&SnapshotCopyOperation{},
		&CommitOperation{},
		&DependencySnapshotOperation{},
		&FileManifestOperation{},
		&RunSummaryOperation{},
	}
}

// NewRunner validates the environment and constructs a Runner over the supplied operations.
func NewRunner(environment *Environment, operations []Operation) (*Runner, error) {
	if environment == nil || environment.Repository == nil || environment.DependencyFreezer == nil || environment.Clock == nil || environment.Output == nil {
		return nil, errors.New(runnerDependenciesMessageConstant)
	}
	if environment.Logger == nil {
		environment.Logger = zap.NewNop()
	}
	if environment.Errors == nil {
		environment.Errors = environment.Output
	}

	return &Runner{operations: append([]Operation{}, operations...), environment: environment}, nil
}

// Execute runs the pipeline for one request. The timestamp token is computed
// once before the first operation and shared by every artifact of the run.
func (runner *Runner) Execute(executionContext context.Context, request RunRequest) (RunResult, error) {
	trimmedProjectDirectory := strings.TrimSpace(request.ProjectDirectory)
	if len(trimmedProjectDirectory) == 0 {
		return RunResult{}, errors.New(projectDirectoryRequiredMessage)
	}
	if len(strings.TrimSpace(request.FilePattern)) == 0 {
		return RunResult{}, errors.New(filePatternRequiredMessageConstant)
	}
	if len(strings.TrimSpace(request.CommitLabel)) == 0 {
		return RunResult{}, errors.New(commitLabelRequiredMessageConstant)
	}

	absoluteProjectDirectory, absoluteError := filepath.Abs(trimmedProjectDirectory)
	if absoluteError != nil {
		return RunResult{}, fmt.Errorf(projectDirectoryResolveErrorTemplate, trimmedProjectDirectory, absoluteError)
	}
	absoluteProjectDirectory = strings.TrimSuffix(absoluteProjectDirectory, string(filepath.Separator))

	runToken := NewToken(runner.environment.Clock.Now())
	state := &State{
		Token:            runToken,
		ProjectDirectory: absoluteProjectDirectory,
		FilePattern:      strings.TrimSpace(request.FilePattern),
		CommitLabel:      strings.TrimSpace(request.CommitLabel),
	}

	fmt.Fprintf(runner.environment.Output, runStartTemplateConstant, runToken, absoluteProjectDirectory)

	for operationIndex := range runner.operations {
		operation := runner.operations[operationIndex]
		if operation == nil {
			continue
		}

		runner.environment.Logger.Info(
			runnerStepStartedLogMessageConstant,
			zap.String(logFieldStepNameConstant, operation.Name()),
			zap.String(logFieldTokenConstant, runToken.String()),
		)

		operationOutcome, operationError := operation.Execute(executionContext, runner.environment, state)
		if operationError != nil {
			state.StepRecords = append(state.StepRecords, StepRecord{StepName: operation.Name(), Status: OutcomeStatusFatal, Detail: operationError.Error()})
			return RunResult{Token: runToken, BackupDirectory: state.BackupDirectory}, fmt.Errorf(fatalStepErrorTemplateConstant, runToken, operation.Name(), operationError)
		}

		state.StepRecords = append(state.StepRecords, StepRecord{StepName: operation.Name(), Status: operationOutcome.Status, Detail: operationOutcome.Detail})
		if operationOutcome.Status == OutcomeStatusWarning && operationOutcome.Warning != nil {
			state.Warnings = append(state.Warnings, operationOutcome.Warning)
			fmt.Fprintf(runner.environment.Errors, runWarningLineTemplateConstant, operation.Name(), operationOutcome.Warning)
		}

		runner.environment.Logger.Info(
			runnerStepFinishedLogMessageConstant,
			zap.String(logFieldStepNameConstant, operation.Name()),
			zap.String(logFieldStepStatusConstant, describeOutcomeStatus(operationOutcome.Status)),
		)
	}

	runner.reportCompletion(state)

	return RunResult{
		Token:            runToken,
		BackupDirectory:  state.BackupDirectory,
		RequirementsFile: state.RequirementsFilePath,
		ManifestFile:     state.ManifestFilePath,
		SummaryFile:      state.SummaryFilePath,
		Warnings:         state.Warnings,
	}, nil
}

// reportCompletion prints the final status including the collected non-fatal warnings.
func (runner *Runner) reportCompletion(state *State) {
	if len(state.Warnings) > 0 {
		fmt.Fprintf(runner.environment.Output, runWarningSummaryHeaderTemplate, state.Token, len(state.Warnings))
		for _, stepRecord := range state.StepRecords {
			if stepRecord.Status != OutcomeStatusWarning {
				continue
			}
			fmt.Fprintf(runner.environment.Output, runWarningLineTemplateConstant, stepRecord.StepName, stepRecord.Detail)
		}
	}
	fmt.Fprintf(runner.environment.Output, runCompleteTemplateConstant, state.Token, state.BackupDirectory)
}
