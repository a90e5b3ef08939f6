package checkpoint

import (
	"fmt"
	"strings"
)

const (
	copyErrorTemplateConstant            = "snapshot copy from %s to %s failed: %v"
	commitWarningTemplateConstant        = "commit skipped: %v"
	dependencyToolErrorTemplateConstant  = "dependency snapshot unavailable: %v"
	manifestPartialErrorTemplateConstant = "file manifest incomplete; unreadable paths: %s"
	failedPathJoinSeparatorConstant      = ", "
)

// CopyError reports a fatal snapshot copy failure; the run aborts without a safety copy.
type CopyError struct {
	SourcePath      string
	DestinationPath string
	Cause           error
}

// Error describes the copy failure including both endpoints.
func (failure CopyError) Error() string {
	return fmt.Sprintf(copyErrorTemplateConstant, failure.SourcePath, failure.DestinationPath, failure.Cause)
}

// Unwrap exposes the underlying cause for errors.Is and errors.As inspection.
func (failure CopyError) Unwrap() error {
	return failure.Cause
}

// CommitWarning reports a non-fatal commit step failure such as a clean working tree.
type CommitWarning struct {
	Cause error
}

// Error describes the skipped commit.
func (warning CommitWarning) Error() string {
	return fmt.Sprintf(commitWarningTemplateConstant, warning.Cause)
}

// Unwrap exposes the underlying cause for errors.Is and errors.As inspection.
func (warning CommitWarning) Unwrap() error {
	return warning.Cause
}

// DependencyToolError reports a non-fatal package-manager failure; no dependency snapshot is written.
type DependencyToolError struct {
	Cause error
}

// Error describes the unavailable dependency snapshot.
func (warning DependencyToolError) Error() string {
	return fmt.Sprintf(dependencyToolErrorTemplateConstant, warning.Cause)
}

// Unwrap exposes the underlying cause for errors.Is and errors.As inspection.
func (warning DependencyToolError) Unwrap() error {
	return warning.Cause
}

// ManifestPartialError reports subtrees skipped during file enumeration; the manifest is still written.
type ManifestPartialError struct {
	FailedPaths []string
}

// Error lists the paths that could not be enumerated.
func (warning ManifestPartialError) Error() string {
	return fmt.Sprintf(manifestPartialErrorTemplateConstant, strings.Join(warning.FailedPaths, failedPathJoinSeparatorConstant))
}
