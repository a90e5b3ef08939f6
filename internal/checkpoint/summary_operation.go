package checkpoint

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const (
	summaryOperationNameConstant      = "run-summary"
	summaryFileNameTemplateConstant   = "checkpoint_%s.yaml"
	summaryStartTemplateConstant      = "Writing run summary to %s\n"
	summaryCompleteTemplateConstant   = "Run summary written to %s\n"
	summaryDryRunTemplateConstant     = "Would write run summary to %s\n"
	summarySuccessDetailTemplate      = "run summary written to %s"
	summaryDryRunDetailTemplate       = "would write run summary to %s"
	summaryWriteFailedTemplate        = "run summary could not be written: %w"
	summaryFilePermissionConstant     = 0o644
	summaryStatusSuccessLabelConstant = "success"
	summaryStatusWarningLabelConstant = "warning"
	summaryStatusFatalLabelConstant   = "fatal"
)

// RunSummaryDocument is the YAML document correlating all artifacts of one run.
type RunSummaryDocument struct {
	Token            string           `yaml:"token"`
	ProjectDirectory string           `yaml:"project_directory"`
	BackupDirectory  string           `yaml:"backup_directory"`
	Requirements     string           `yaml:"requirements_file,omitempty"`
	FileManifest     string           `yaml:"file_manifest,omitempty"`
	Steps            []RunSummaryStep `yaml:"steps"`
}

// RunSummaryStep records the outcome of one executed operation.
type RunSummaryStep struct {
	Name   string `yaml:"name"`
	Status string `yaml:"status"`
	Detail string `yaml:"detail,omitempty"`
}

// RunSummaryOperation records the token, artifact paths, and per-step outcomes
// of the run into a token-named YAML document in the project root.
type RunSummaryOperation struct{}

// Name identifies the run summary step.
func (operation *RunSummaryOperation) Name() string {
	return summaryOperationNameConstant
}

// Execute serializes the summary document, downgrading write failures to warnings.
func (operation *RunSummaryOperation) Execute(executionContext context.Context, environment *Environment, state *State) (OperationOutcome, error) {
	summaryFileName := fmt.Sprintf(summaryFileNameTemplateConstant, state.Token)
	summaryFilePath := filepath.Join(state.ProjectDirectory, summaryFileName)

	if environment.DryRun {
		fmt.Fprintf(environment.Output, summaryDryRunTemplateConstant, summaryFilePath)
		return successOutcome(fmt.Sprintf(summaryDryRunDetailTemplate, summaryFilePath)), nil
	}

	fmt.Fprintf(environment.Output, summaryStartTemplateConstant, summaryFilePath)

	summaryDocument := RunSummaryDocument{
		Token:            state.Token.String(),
		ProjectDirectory: state.ProjectDirectory,
		BackupDirectory:  state.BackupDirectory,
		Requirements:     state.RequirementsFilePath,
		FileManifest:     state.ManifestFilePath,
	}
	for _, stepRecord := range state.StepRecords {
		summaryDocument.Steps = append(summaryDocument.Steps, RunSummaryStep{
			Name:   stepRecord.StepName,
			Status: describeOutcomeStatus(stepRecord.Status),
			Detail: stepRecord.Detail,
		})
	}

	serializedSummary, marshalError := yaml.Marshal(summaryDocument)
	if marshalError != nil {
		return warningOutcome(fmt.Errorf(summaryWriteFailedTemplate, marshalError)), nil
	}
	if writeError := os.WriteFile(summaryFilePath, serializedSummary, summaryFilePermissionConstant); writeError != nil {
		return warningOutcome(fmt.Errorf(summaryWriteFailedTemplate, writeError)), nil
	}

	state.SummaryFilePath = summaryFilePath
	fmt.Fprintf(environment.Output, summaryCompleteTemplateConstant, summaryFilePath)
	return successOutcome(fmt.Sprintf(summarySuccessDetailTemplate, summaryFilePath)), nil
}

func describeOutcomeStatus(status OutcomeStatus) string {
	switch status {
	case OutcomeStatusWarning:
		return summaryStatusWarningLabelConstant
	case OutcomeStatusFatal:
		return summaryStatusFatalLabelConstant
	default:
		return summaryStatusSuccessLabelConstant
	}
}
