package checkpoint

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

const (
	manifestOperationNameConstant    = "file-manifest"
	manifestFileNameTemplateConstant = "project_structure_%s.txt"
	manifestStartTemplateConstant    = "Writing file manifest to %s\n"
	manifestCompleteTemplateConstant = "File manifest written to %s (%d entries)\n"
	manifestDryRunTemplateConstant   = "Would write file manifest to %s\n"
	manifestSuccessDetailTemplate    = "file manifest written to %s"
	manifestDryRunDetailTemplate     = "would write file manifest to %s"
	manifestEntryPrefixConstant      = "./"
	manifestLineSeparatorConstant    = "\n"
	manifestFilePermissionConstant   = 0o644
	gitMetadataDirectoryNameConstant = ".git"
)

// FileManifestOperation enumerates project files matching the configured pattern
// into a token-named manifest, one relative path per line.
//
// Unreadable subtrees are skipped and reported as a ManifestPartialError
// warning; the manifest is still written with the entries that were reachable.
type FileManifestOperation struct{}

// Name identifies the file manifest step.
func (operation *FileManifestOperation) Name() string {
	return manifestOperationNameConstant
}

// Execute walks the project directory and writes the manifest.
func (operation *FileManifestOperation) Execute(executionContext context.Context, environment *Environment, state *State) (OperationOutcome, error) {
	manifestFileName := fmt.Sprintf(manifestFileNameTemplateConstant, state.Token)
	manifestFilePath := filepath.Join(state.ProjectDirectory, manifestFileName)

	if environment.DryRun {
		fmt.Fprintf(environment.Output, manifestDryRunTemplateConstant, manifestFilePath)
		return successOutcome(fmt.Sprintf(manifestDryRunDetailTemplate, manifestFilePath)), nil
	}

	fmt.Fprintf(environment.Output, manifestStartTemplateConstant, manifestFilePath)

	manifestEntries, failedPaths := enumerateMatchingFiles(state.ProjectDirectory, state.FilePattern, operation.excludedFileNames(state))

	manifestContent := strings.Join(manifestEntries, manifestLineSeparatorConstant)
	if len(manifestEntries) > 0 {
		manifestContent += manifestLineSeparatorConstant
	}
	if writeError := os.WriteFile(manifestFilePath, []byte(manifestContent), manifestFilePermissionConstant); writeError != nil {
		return warningOutcome(ManifestPartialError{FailedPaths: []string{manifestFilePath}}), nil
	}

	state.ManifestFilePath = manifestFilePath
	fmt.Fprintf(environment.Output, manifestCompleteTemplateConstant, manifestFilePath, len(manifestEntries))

	if len(failedPaths) > 0 {
		return warningOutcome(ManifestPartialError{FailedPaths: failedPaths}), nil
	}
	return successOutcome(fmt.Sprintf(manifestSuccessDetailTemplate, manifestFilePath)), nil
}

// excludedFileNames lists artifacts generated during this run so the manifest never includes them.
func (operation *FileManifestOperation) excludedFileNames(state *State) map[string]struct{} {
	excludedNames := map[string]struct{}{
		fmt.Sprintf(requirementsFileNameTemplateConstant, state.Token): {},
		fmt.Sprintf(manifestFileNameTemplateConstant, state.Token):     {},
		fmt.Sprintf(summaryFileNameTemplateConstant, state.Token):      {},
	}
	return excludedNames
}

// enumerateMatchingFiles walks the project root collecting sorted, deduplicated,
// "./"-prefixed relative paths whose base names match the pattern. Git metadata
// is skipped. Unreadable paths are collected rather than failing the walk.
func enumerateMatchingFiles(projectRoot string, filePattern string, excludedNames map[string]struct{}) ([]string, []string) {
	collectedEntries := map[string]struct{}{}
	failedPaths := []string{}

	_ = filepath.WalkDir(projectRoot, func(currentPath string, directoryEntry fs.DirEntry, walkError error) error {
		if walkError != nil {
			failedPaths = append(failedPaths, currentPath)
			return nil
		}
		if directoryEntry.IsDir() {
			if directoryEntry.Name() == gitMetadataDirectoryNameConstant {
				return filepath.SkipDir
			}
			return nil
		}

		if _, excluded := excludedNames[directoryEntry.Name()]; excluded {
			return nil
		}

		nameMatches, matchError := filepath.Match(filePattern, directoryEntry.Name())
		if matchError != nil || !nameMatches {
			return nil
		}

		relativePath, relativeError := filepath.Rel(projectRoot, currentPath)
		if relativeError != nil {
			failedPaths = append(failedPaths, currentPath)
			return nil
		}

		collectedEntries[manifestEntryPrefixConstant+filepath.ToSlash(relativePath)] = struct{}{}
		return nil
	})

	sortedEntries := make([]string, 0, len(collectedEntries))
	for manifestEntry := range collectedEntries {
		sortedEntries = append(sortedEntries, manifestEntry)
	}
	sort.Strings(sortedEntries)

	return sortedEntries, failedPaths
}
