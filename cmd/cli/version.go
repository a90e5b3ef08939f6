package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

const (
	versionCommandUseConstant              = "version"
	versionCommandShortDescriptionConstant = "Print the application version"
	versionOutputTemplateConstant          = "%s version: %s\n"
	developmentVersionConstant             = "development"
)

// applicationVersion is overridden at build time via the linker.
var applicationVersion = developmentVersionConstant

func buildVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   versionCommandUseConstant,
		Short: versionCommandShortDescriptionConstant,
		RunE: func(command *cobra.Command, arguments []string) error {
			_, writeError := fmt.Fprintf(command.OutOrStdout(), versionOutputTemplateConstant, applicationNameConstant, applicationVersion)
			return writeError
		},
	}
}
