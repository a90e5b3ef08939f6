// Package execshell provides structured helpers for invoking external tools.
//
// It wraps os/exec with logging and lifecycle observation via ShellExecutor,
// exposes OSCommandRunner for default process execution, and defines the
// abstractions used throughout checkpoint to run git and pip in a testable
// manner.
package execshell
