// Package checkpoint wires the checkpoint run command into the CLI, binding
// configuration values and flags to the checkpoint pipeline runner.
package checkpoint
