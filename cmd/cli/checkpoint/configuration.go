package checkpoint

import "strings"

const (
	defaultProjectDirectoryConstant      = "."
	defaultFilePatternConstant           = "*.py"
	defaultCommitLabelConstant           = "Checkpoint"
	projectDirConfigurationKeySuffix     = ".project_dir"
	filePatternConfigurationKeySuffix    = ".file_pattern"
	commitLabelConfigurationKeySuffix    = ".label"
	dryRunConfigurationKeySuffixConstant = ".dry_run"
)

// CommandConfiguration captures configuration values for the checkpoint run command.
type CommandConfiguration struct {
	ProjectDir  string `mapstructure:"project_dir"`
	FilePattern string `mapstructure:"file_pattern"`
	Label       string `mapstructure:"label"`
	DryRun      bool   `mapstructure:"dry_run"`
}

// DefaultCommandConfiguration provides default checkpoint run settings.
func DefaultCommandConfiguration() CommandConfiguration {
	return CommandConfiguration{
		ProjectDir:  defaultProjectDirectoryConstant,
		FilePattern: defaultFilePatternConstant,
		Label:       defaultCommitLabelConstant,
		DryRun:      false,
	}
}

// DefaultConfigurationValues exposes the defaults keyed for configuration loader registration.
func DefaultConfigurationValues(configurationKeyPrefix string) map[string]any {
	defaults := DefaultCommandConfiguration()
	return map[string]any{
		configurationKeyPrefix + projectDirConfigurationKeySuffix:     defaults.ProjectDir,
		configurationKeyPrefix + filePatternConfigurationKeySuffix:    defaults.FilePattern,
		configurationKeyPrefix + commitLabelConfigurationKeySuffix:    defaults.Label,
		configurationKeyPrefix + dryRunConfigurationKeySuffixConstant: defaults.DryRun,
	}
}

// Sanitize normalizes configuration values, substituting defaults for blank entries.
func (configuration CommandConfiguration) Sanitize() CommandConfiguration {
	sanitized := configuration
	sanitized.ProjectDir = strings.TrimSpace(configuration.ProjectDir)
	if len(sanitized.ProjectDir) == 0 {
		sanitized.ProjectDir = defaultProjectDirectoryConstant
	}
	sanitized.FilePattern = strings.TrimSpace(configuration.FilePattern)
	if len(sanitized.FilePattern) == 0 {
		sanitized.FilePattern = defaultFilePatternConstant
	}
	sanitized.Label = strings.TrimSpace(configuration.Label)
	if len(sanitized.Label) == 0 {
		sanitized.Label = defaultCommitLabelConstant
	}
	return sanitized
}
