package execshell

// CommandEventObserver receives lifecycle notifications for the git and pip
// invocations issued while creating a checkpoint.
type CommandEventObserver interface {
	// CommandStarted notifies observers that a tool invocation is beginning.
	CommandStarted(command ShellCommand)
	// CommandCompleted notifies observers that a tool invocation finished and supplies its result.
	CommandCompleted(command ShellCommand, result ExecutionResult)
	// CommandExecutionFailed reports invocations that failed before producing a result.
	CommandExecutionFailed(command ShellCommand, failure error)
}

// noopCommandEventObserver discards all command events.
type noopCommandEventObserver struct{}

// CommandStarted implements CommandEventObserver for the no-op observer.
func (noopCommandEventObserver) CommandStarted(ShellCommand) {}

// CommandCompleted implements CommandEventObserver for the no-op observer.
func (noopCommandEventObserver) CommandCompleted(ShellCommand, ExecutionResult) {}

// CommandExecutionFailed implements CommandEventObserver for the no-op observer.
func (noopCommandEventObserver) CommandExecutionFailed(ShellCommand, error) {}
