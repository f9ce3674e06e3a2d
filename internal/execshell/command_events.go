package execshell

// CommandEventObserver is notified at each stage of a shell command's lifecycle.
// ShellExecutor guarantees exactly one CommandStarted call per execution,
// followed by either CommandCompleted or CommandExecutionFailed.
type CommandEventObserver interface {
	// CommandStarted fires before the process is spawned.
	CommandStarted(command ShellCommand)
	// CommandCompleted fires once the process has exited, regardless of exit code.
	CommandCompleted(command ShellCommand, result ExecutionResult)
	// CommandExecutionFailed fires when the process could not produce a result at all.
	CommandExecutionFailed(command ShellCommand, failure error)
}

// noopCommandEventObserver is the default observer; it ignores every event.
type noopCommandEventObserver struct{}

func (noopCommandEventObserver) CommandStarted(ShellCommand) {}

func (noopCommandEventObserver) CommandCompleted(ShellCommand, ExecutionResult) {}

func (noopCommandEventObserver) CommandExecutionFailed(ShellCommand, error) {}
