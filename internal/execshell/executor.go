package execshell

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
)

const (
	githubCLICommandNameConstant                = "gh"
	loggerNotConfiguredMessageConstant          = "logger not configured"
	commandRunnerNotConfiguredMessageConstant   = "command runner not configured"
	commandFailedErrorTemplateConstant          = "%s failed with exit code %d%s"
	commandExecutionErrorTemplateConstant       = "%s failed: %s"
	standardErrorSuffixSeparatorConstant        = ": "
	commandLabelArgumentsSeparatorConstant      = " "
	logMessageCommandStartedConstant            = "external command started"
	logMessageCommandCompletedConstant          = "external command completed"
	logMessageCommandFailedConstant             = "external command failed"
	logFieldCommandConstant                     = "command"
	logFieldArgumentsConstant                   = "arguments"
	logFieldExitCodeConstant                    = "exit_code"
	logFieldStandardErrorConstant               = "stderr"
	defaultCommandTimeoutDurationConstant       = 2 * time.Minute
	unknownExecutionFailureMessageConstant      = "unknown execution failure"
	humanReadableLoggingDisabledDefaultConstant = false
)

// CommandName identifies a supported external executable.
type CommandName string

// Supported executable enumerations.
const (
	CommandGitHub CommandName = CommandName(githubCLICommandNameConstant)
)

// CommandDetails describes one invocation of an external command.
type CommandDetails struct {
	Arguments            []string
	WorkingDirectory     string
	EnvironmentVariables map[string]string
	StandardInput        []byte
}

// ShellCommand pairs a CommandName with invocation details.
type ShellCommand struct {
	Name    CommandName
	Details CommandDetails
}

// ExecutionResult captures the observable outcome of a completed command.
type ExecutionResult struct {
	StandardOutput string
	StandardError  string
	ExitCode       int
}

// CommandRunner abstracts process execution for testability.
type CommandRunner interface {
	Run(executionContext context.Context, command ShellCommand) (ExecutionResult, error)
}

// Initialization sentinels for NewShellExecutor.
var (
	ErrLoggerNotConfigured        = errors.New(loggerNotConfiguredMessageConstant)
	ErrCommandRunnerNotConfigured = errors.New(commandRunnerNotConfiguredMessageConstant)
)

// CommandFailedError reports a command that completed with a non-zero exit code.
type CommandFailedError struct {
	Command ShellCommand
	Result  ExecutionResult
}

// Error describes the failed command including captured standard error output.
func (failedError CommandFailedError) Error() string {
	standardErrorSuffix := ""
	trimmedStandardError := strings.TrimSpace(failedError.Result.StandardError)
	if len(trimmedStandardError) > 0 {
		standardErrorSuffix = standardErrorSuffixSeparatorConstant + trimmedStandardError
	}
	return fmt.Sprintf(commandFailedErrorTemplateConstant, formatCommandLabel(failedError.Command), failedError.Result.ExitCode, standardErrorSuffix)
}

// CommandExecutionError reports a command that could not be executed at all.
type CommandExecutionError struct {
	Command ShellCommand
	Cause   error
}

// Error describes the execution failure.
func (executionError CommandExecutionError) Error() string {
	failureMessage := unknownExecutionFailureMessageConstant
	if executionError.Cause != nil {
		failureMessage = executionError.Cause.Error()
	}
	return fmt.Sprintf(commandExecutionErrorTemplateConstant, formatCommandLabel(executionError.Command), failureMessage)
}

// Unwrap exposes the underlying cause.
func (executionError CommandExecutionError) Unwrap() error {
	return executionError.Cause
}

func formatCommandLabel(command ShellCommand) string {
	commandLabel := string(command.Name)
	if len(command.Details.Arguments) > 0 {
		commandLabel = commandLabel + commandLabelArgumentsSeparatorConstant + strings.Join(command.Details.Arguments, commandLabelArgumentsSeparatorConstant)
	}
	return commandLabel
}

// ShellExecutor coordinates external command execution with logging and timeouts.
type ShellExecutor struct {
	logger               *zap.Logger
	commandRunner        CommandRunner
	observer             CommandEventObserver
	messageFormatter     CommandMessageFormatter
	humanReadableLogging bool
	commandTimeout       time.Duration
}

// NewShellExecutor constructs a ShellExecutor around the provided logger and runner.
// The optional trailing argument enables human-readable lifecycle logging.
func NewShellExecutor(logger *zap.Logger, commandRunner CommandRunner, humanReadableLogging ...bool) (*ShellExecutor, error) {
	if logger == nil {
		return nil, ErrLoggerNotConfigured
	}
	if commandRunner == nil {
		return nil, ErrCommandRunnerNotConfigured
	}

	humanReadable := humanReadableLoggingDisabledDefaultConstant
	if len(humanReadableLogging) > 0 {
		humanReadable = humanReadableLogging[0]
	}

	return &ShellExecutor{
		logger:               logger,
		commandRunner:        commandRunner,
		observer:             noopCommandEventObserver{},
		messageFormatter:     CommandMessageFormatter{},
		humanReadableLogging: humanReadable,
		commandTimeout:       defaultCommandTimeoutDurationConstant,
	}, nil
}

// SetCommandEventObserver registers an observer notified about command lifecycle events.
func (executor *ShellExecutor) SetCommandEventObserver(observer CommandEventObserver) {
	if observer == nil {
		executor.observer = noopCommandEventObserver{}
		return
	}
	executor.observer = observer
}

// SetCommandTimeout overrides the per-invocation timeout applied to every command.
func (executor *ShellExecutor) SetCommandTimeout(timeout time.Duration) {
	if timeout <= 0 {
		return
	}
	executor.commandTimeout = timeout
}

// ExecuteGitHubCLI runs the GitHub CLI with the supplied details.
func (executor *ShellExecutor) ExecuteGitHubCLI(executionContext context.Context, details CommandDetails) (ExecutionResult, error) {
	command := ShellCommand{Name: CommandGitHub, Details: details}
	return executor.Execute(executionContext, command)
}

// Execute runs the supplied command and reports the lifecycle through logging and observers.
func (executor *ShellExecutor) Execute(executionContext context.Context, command ShellCommand) (ExecutionResult, error) {
	if executionContext == nil {
		executionContext = context.Background()
	}

	timeoutContext, cancelTimeout := context.WithTimeout(executionContext, executor.commandTimeout)
	defer cancelTimeout()

	executor.logCommandStarted(command)
	executor.observer.CommandStarted(command)

	executionResult, runError := executor.commandRunner.Run(timeoutContext, command)
	if runError != nil {
		executor.logCommandExecutionFailure(command, runError)
		executor.observer.CommandExecutionFailed(command, runError)
		return ExecutionResult{}, CommandExecutionError{Command: command, Cause: runError}
	}

	executor.observer.CommandCompleted(command, executionResult)

	if executionResult.ExitCode != 0 {
		executor.logCommandFailure(command, executionResult)
		return ExecutionResult{}, CommandFailedError{Command: command, Result: executionResult}
	}

	executor.logCommandSuccess(command)
	return executionResult, nil
}

func (executor *ShellExecutor) logCommandStarted(command ShellCommand) {
	if executor.humanReadableLogging {
		executor.logger.Info(executor.messageFormatter.BuildStartedMessage(command))
		return
	}
	executor.logger.Info(
		logMessageCommandStartedConstant,
		zap.String(logFieldCommandConstant, string(command.Name)),
		zap.Strings(logFieldArgumentsConstant, command.Details.Arguments),
	)
}

func (executor *ShellExecutor) logCommandSuccess(command ShellCommand) {
	if executor.humanReadableLogging {
		executor.logger.Info(executor.messageFormatter.BuildSuccessMessage(command))
		return
	}
	executor.logger.Info(
		logMessageCommandCompletedConstant,
		zap.String(logFieldCommandConstant, string(command.Name)),
		zap.Int(logFieldExitCodeConstant, 0),
	)
}

func (executor *ShellExecutor) logCommandFailure(command ShellCommand, result ExecutionResult) {
	if executor.humanReadableLogging {
		executor.logger.Warn(executor.messageFormatter.BuildFailureMessage(command, result))
		return
	}
	executor.logger.Warn(
		logMessageCommandFailedConstant,
		zap.String(logFieldCommandConstant, string(command.Name)),
		zap.Int(logFieldExitCodeConstant, result.ExitCode),
		zap.String(logFieldStandardErrorConstant, strings.TrimSpace(result.StandardError)),
	)
}

func (executor *ShellExecutor) logCommandExecutionFailure(command ShellCommand, failure error) {
	if executor.humanReadableLogging {
		executor.logger.Error(executor.messageFormatter.BuildExecutionFailureMessage(command, failure))
		return
	}
	executor.logger.Error(
		logMessageCommandFailedConstant,
		zap.String(logFieldCommandConstant, string(command.Name)),
		zap.Error(failure),
	)
}
