package checkpoint

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/checkpoint/internal/checkpoint"
	"github.com/temirov/checkpoint/internal/execshell"
	"github.com/temirov/checkpoint/internal/gitrepo"
	"github.com/temirov/checkpoint/internal/pipclient"
	"github.com/temirov/checkpoint/internal/ui"
	"github.com/temirov/checkpoint/internal/utils"
)

const (
	commandUseConstant                     = "run"
	commandShortDescriptionConstant        = "Create a timestamped project checkpoint"
	commandLongDescriptionConstant         = "run copies the project directory, commits pending changes, snapshots installed dependencies, and writes a file manifest, correlating every artifact through one timestamp token."
	projectDirFlagNameConstant             = "project-dir"
	projectDirFlagDescriptionConstant      = "Project directory to checkpoint"
	filePatternFlagNameConstant            = "file-pattern"
	filePatternFlagDescriptionConstant     = "Glob pattern selecting files for the manifest"
	labelFlagNameConstant                  = "label"
	labelFlagDescriptionConstant           = "Label prefixed to the checkpoint commit message"
	dryRunFlagNameConstant                 = "dry-run"
	dryRunFlagDescriptionConstant          = "Preview checkpoint steps without making changes"
	shellExecutorErrorTemplateConstant     = "unable to construct shell executor: %w"
	repositoryManagerErrorTemplateConstant = "unable to construct repository manager: %w"
	dependencyClientErrorTemplateConstant  = "unable to construct dependency client: %w"
	checkpointRunnerErrorTemplateConstant  = "unable to construct checkpoint runner: %w"
)

// LoggerProvider yields a zap logger for command execution.
type LoggerProvider func() *zap.Logger

// CommandBuilder assembles the checkpoint run command.
type CommandBuilder struct {
	LoggerProvider               LoggerProvider
	HumanReadableLoggingProvider func() bool
	ConfigurationProvider        func() CommandConfiguration
	Repository                   checkpoint.RepositoryService
	DependencyFreezer            checkpoint.DependencyFreezer
	Clock                        checkpoint.Clock
}

// Build constructs the checkpoint run command.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   commandUseConstant,
		Short: commandShortDescriptionConstant,
		Long:  commandLongDescriptionConstant,
		RunE:  builder.run,
	}

	command.Flags().String(projectDirFlagNameConstant, "", projectDirFlagDescriptionConstant)
	command.Flags().String(filePatternFlagNameConstant, "", filePatternFlagDescriptionConstant)
	command.Flags().String(labelFlagNameConstant, "", labelFlagDescriptionConstant)
	command.Flags().Bool(dryRunFlagNameConstant, false, dryRunFlagDescriptionConstant)

	return command, nil
}

func (builder *CommandBuilder) run(command *cobra.Command, arguments []string) error {
	logger := resolveLogger(builder.LoggerProvider)
	commandConfiguration := builder.resolveConfiguration()

	projectDirectory := commandConfiguration.ProjectDir
	if command.Flags().Changed(projectDirFlagNameConstant) {
		projectDirectory, _ = command.Flags().GetString(projectDirFlagNameConstant)
	}

	filePattern := commandConfiguration.FilePattern
	if command.Flags().Changed(filePatternFlagNameConstant) {
		filePattern, _ = command.Flags().GetString(filePatternFlagNameConstant)
	}

	commitLabel := commandConfiguration.Label
	if command.Flags().Changed(labelFlagNameConstant) {
		commitLabel, _ = command.Flags().GetString(labelFlagNameConstant)
	}

	dryRun := commandConfiguration.DryRun
	if command.Flags().Changed(dryRunFlagNameConstant) {
		dryRun, _ = command.Flags().GetBool(dryRunFlagNameConstant)
	}

	repository, dependencyFreezer, resolutionError := builder.resolveCollaborators(logger)
	if resolutionError != nil {
		return resolutionError
	}

	clock := builder.Clock
	if clock == nil {
		clock = checkpoint.SystemClock{}
	}

	environment := &checkpoint.Environment{
		Repository:        repository,
		DependencyFreezer: dependencyFreezer,
		Clock:             clock,
		Output:            utils.NewFlushingWriter(command.OutOrStdout()),
		Errors:            utils.NewFlushingWriter(command.ErrOrStderr()),
		Logger:            logger,
		DryRun:            dryRun,
	}

	checkpointRunner, runnerError := checkpoint.NewRunner(environment, checkpoint.DefaultOperations())
	if runnerError != nil {
		return fmt.Errorf(checkpointRunnerErrorTemplateConstant, runnerError)
	}

	runRequest := checkpoint.RunRequest{
		ProjectDirectory: projectDirectory,
		FilePattern:      filePattern,
		CommitLabel:      commitLabel,
	}

	_, runError := checkpointRunner.Execute(command.Context(), runRequest)
	return runError
}

// resolveCollaborators returns the injected repository and freezer or constructs shell-backed defaults.
func (builder *CommandBuilder) resolveCollaborators(logger *zap.Logger) (checkpoint.RepositoryService, checkpoint.DependencyFreezer, error) {
	repository := builder.Repository
	dependencyFreezer := builder.DependencyFreezer
	if repository != nil && dependencyFreezer != nil {
		return repository, dependencyFreezer, nil
	}

	shellExecutor, executorError := execshell.NewShellExecutor(logger, execshell.NewOSCommandRunner())
	if executorError != nil {
		return nil, nil, fmt.Errorf(shellExecutorErrorTemplateConstant, executorError)
	}
	if builder.humanReadableLoggingEnabled() {
		shellExecutor.SetCommandEventObserver(ui.NewConsoleCommandEventLogger(logger))
	}

	if repository == nil {
		repositoryManager, managerError := gitrepo.NewRepositoryManager(shellExecutor)
		if managerError != nil {
			return nil, nil, fmt.Errorf(repositoryManagerErrorTemplateConstant, managerError)
		}
		repository = repositoryManager
	}

	if dependencyFreezer == nil {
		pipClient, clientError := pipclient.NewClient(shellExecutor)
		if clientError != nil {
			return nil, nil, fmt.Errorf(dependencyClientErrorTemplateConstant, clientError)
		}
		dependencyFreezer = pipClient
	}

	return repository, dependencyFreezer, nil
}

func (builder *CommandBuilder) humanReadableLoggingEnabled() bool {
	if builder.HumanReadableLoggingProvider == nil {
		return false
	}
	return builder.HumanReadableLoggingProvider()
}

func (builder *CommandBuilder) resolveConfiguration() CommandConfiguration {
	if builder.ConfigurationProvider == nil {
		return DefaultCommandConfiguration()
	}
	return builder.ConfigurationProvider().Sanitize()
}

func resolveLogger(provider LoggerProvider) *zap.Logger {
	if provider == nil {
		return zap.NewNop()
	}
	logger := provider()
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}
