package checkpoint_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	checkpointcmd "github.com/temirov/checkpoint/cmd/cli/checkpoint"
)

const testConfigurationKeyPrefixConstant = "tools.checkpoint"

func TestDefaultConfigurationValuesMirrorDefaults(testInstance *testing.T) {
	defaults := checkpointcmd.DefaultCommandConfiguration()
	defaultValues := checkpointcmd.DefaultConfigurationValues(testConfigurationKeyPrefixConstant)

	require.Equal(testInstance, defaults.ProjectDir, defaultValues["tools.checkpoint.project_dir"])
	require.Equal(testInstance, defaults.FilePattern, defaultValues["tools.checkpoint.file_pattern"])
	require.Equal(testInstance, defaults.Label, defaultValues["tools.checkpoint.label"])
	require.Equal(testInstance, defaults.DryRun, defaultValues["tools.checkpoint.dry_run"])
}

func TestSanitizeSubstitutesDefaultsForBlankValues(testInstance *testing.T) {
	testCases := []struct {
		name          string
		configuration checkpointcmd.CommandConfiguration
		expected      checkpointcmd.CommandConfiguration
	}{
		{
			name:          "blank_values_fall_back",
			configuration: checkpointcmd.CommandConfiguration{ProjectDir: "  ", FilePattern: "", Label: "\t"},
			expected:      checkpointcmd.DefaultCommandConfiguration(),
		},
		{
			name:          "explicit_values_survive",
			configuration: checkpointcmd.CommandConfiguration{ProjectDir: "/srv/app", FilePattern: "*.go", Label: "Snapshot", DryRun: true},
			expected:      checkpointcmd.CommandConfiguration{ProjectDir: "/srv/app", FilePattern: "*.go", Label: "Snapshot", DryRun: true},
		},
		{
			name:          "values_are_trimmed",
			configuration: checkpointcmd.CommandConfiguration{ProjectDir: " /srv/app ", FilePattern: " *.go ", Label: " Snapshot "},
			expected:      checkpointcmd.CommandConfiguration{ProjectDir: "/srv/app", FilePattern: "*.go", Label: "Snapshot"},
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			require.Equal(testInstance, testCase.expected, testCase.configuration.Sanitize())
		})
	}
}
