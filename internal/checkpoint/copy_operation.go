package checkpoint

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

const (
	snapshotCopyOperationNameConstant      = "snapshot-copy"
	backupDirectoryNameTemplateConstant    = "%s_backup_%s"
	backupDestinationExistsMessageConstant = "destination already exists"
	sourceNotDirectoryMessageConstant      = "source is not a directory"
	snapshotCopyStartTemplateConstant      = "Copying %s to %s\n"
	snapshotCopyCompleteTemplateConstant   = "Backup created at %s\n"
	snapshotCopyDryRunTemplateConstant     = "Would copy %s to %s\n"
	snapshotCopySuccessDetailTemplate      = "backup created at %s"
	snapshotCopyDryRunDetailTemplate       = "would create backup at %s"
)

// SnapshotCopyOperation recursively copies the project directory to a sibling backup directory.
//
// The copy is the only fatal step: without a safety copy the remaining steps
// are unsafe to run. An existing destination fails the run rather than being
// overwritten, so two runs within the same clock second cannot clobber each
// other's artifacts.
type SnapshotCopyOperation struct{}

// Name identifies the snapshot copy step.
func (operation *SnapshotCopyOperation) Name() string {
	return snapshotCopyOperationNameConstant
}

// Execute performs the recursive copy, producing a fatal CopyError on failure.
func (operation *SnapshotCopyOperation) Execute(executionContext context.Context, environment *Environment, state *State) (OperationOutcome, error) {
	projectDirectory := state.ProjectDirectory
	backupDirectory := fmt.Sprintf(backupDirectoryNameTemplateConstant, projectDirectory, state.Token)
	state.BackupDirectory = backupDirectory

	if environment.DryRun {
		fmt.Fprintf(environment.Output, snapshotCopyDryRunTemplateConstant, projectDirectory, backupDirectory)
		return successOutcome(fmt.Sprintf(snapshotCopyDryRunDetailTemplate, backupDirectory)), nil
	}

	fmt.Fprintf(environment.Output, snapshotCopyStartTemplateConstant, projectDirectory, backupDirectory)

	sourceInformation, sourceStatError := os.Stat(projectDirectory)
	if sourceStatError != nil {
		copyFailure := CopyError{SourcePath: projectDirectory, DestinationPath: backupDirectory, Cause: sourceStatError}
		return OperationOutcome{Status: OutcomeStatusFatal}, copyFailure
	}
	if !sourceInformation.IsDir() {
		copyFailure := CopyError{SourcePath: projectDirectory, DestinationPath: backupDirectory, Cause: errors.New(sourceNotDirectoryMessageConstant)}
		return OperationOutcome{Status: OutcomeStatusFatal}, copyFailure
	}

	if _, destinationStatError := os.Lstat(backupDirectory); destinationStatError == nil {
		copyFailure := CopyError{SourcePath: projectDirectory, DestinationPath: backupDirectory, Cause: errors.New(backupDestinationExistsMessageConstant)}
		return OperationOutcome{Status: OutcomeStatusFatal}, copyFailure
	}

	if copyError := copyDirectoryTree(projectDirectory, backupDirectory, sourceInformation.Mode().Perm()); copyError != nil {
		copyFailure := CopyError{SourcePath: projectDirectory, DestinationPath: backupDirectory, Cause: copyError}
		return OperationOutcome{Status: OutcomeStatusFatal}, copyFailure
	}

	fmt.Fprintf(environment.Output, snapshotCopyCompleteTemplateConstant, backupDirectory)
	return successOutcome(fmt.Sprintf(snapshotCopySuccessDetailTemplate, backupDirectory)), nil
}

// copyDirectoryTree duplicates the source directory tree including hidden files,
// nested directories, and symbolic links. Links are re-created pointing at their
// original targets rather than followed.
func copyDirectoryTree(sourceRoot string, destinationRoot string, rootPermissions fs.FileMode) error {
	if makeRootError := os.MkdirAll(destinationRoot, rootPermissions); makeRootError != nil {
		return makeRootError
	}

	return filepath.WalkDir(sourceRoot, func(currentPath string, directoryEntry fs.DirEntry, walkError error) error {
		if walkError != nil {
			return walkError
		}
		if currentPath == sourceRoot {
			return nil
		}

		relativePath, relativeError := filepath.Rel(sourceRoot, currentPath)
		if relativeError != nil {
			return relativeError
		}
		destinationPath := filepath.Join(destinationRoot, relativePath)

		entryInformation, informationError := directoryEntry.Info()
		if informationError != nil {
			return informationError
		}

		switch {
		case directoryEntry.IsDir():
			return os.MkdirAll(destinationPath, entryInformation.Mode().Perm())
		case entryInformation.Mode()&fs.ModeSymlink != 0:
			linkTarget, readLinkError := os.Readlink(currentPath)
			if readLinkError != nil {
				return readLinkError
			}
			return os.Symlink(linkTarget, destinationPath)
		default:
			return copyRegularFile(currentPath, destinationPath, entryInformation.Mode().Perm())
		}
	})
}

func copyRegularFile(sourcePath string, destinationPath string, permissions fs.FileMode) error {
	sourceFile, openError := os.Open(sourcePath)
	if openError != nil {
		return openError
	}
	defer func() {
		_ = sourceFile.Close()
	}()

	destinationFile, createError := os.OpenFile(destinationPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, permissions)
	if createError != nil {
		return createError
	}

	if _, copyError := io.Copy(destinationFile, sourceFile); copyError != nil {
		_ = destinationFile.Close()
		return copyError
	}

	return destinationFile.Close()
}
