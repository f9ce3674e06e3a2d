package ui

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/seedworks/enrich/internal/execshell"
)

const (
	startedMessageTemplateConstant          = "Running %s"
	completedMessageTemplateConstant        = "Completed %s"
	exitCodeFailureMessageTemplateConstant  = "%s failed with exit code %d"
	executionFailureMessageTemplateConstant = "%s failed: %s"
	trimmedStderrSuffixTemplateConstant     = ": %s"
	unknownFailureMessageConstant           = "unknown error"
	labelPartSeparatorConstant              = " "
	labelMaximumLengthConstant              = 120
	labelEllipsisConstant                   = "..."
)

// CommandEventFormatter builds human-readable messages for command lifecycle events.
type CommandEventFormatter struct{}

// BuildStartedMessage describes a command about to run.
func (CommandEventFormatter) BuildStartedMessage(command execshell.ShellCommand) string {
	return fmt.Sprintf(startedMessageTemplateConstant, commandLabel(command))
}

// BuildSuccessMessage describes a command that exited with code zero.
func (CommandEventFormatter) BuildSuccessMessage(command execshell.ShellCommand) string {
	return fmt.Sprintf(completedMessageTemplateConstant, commandLabel(command))
}

// BuildFailureMessage describes a command that exited non-zero, appending
// trimmed standard error output when any was produced.
func (CommandEventFormatter) BuildFailureMessage(command execshell.ShellCommand, result execshell.ExecutionResult) string {
	failureMessage := fmt.Sprintf(exitCodeFailureMessageTemplateConstant, commandLabel(command), result.ExitCode)

	trimmedStandardError := strings.TrimSpace(result.StandardError)
	if len(trimmedStandardError) > 0 {
		failureMessage += fmt.Sprintf(trimmedStderrSuffixTemplateConstant, trimmedStandardError)
	}

	return failureMessage
}

// BuildExecutionFailureMessage describes a command that never produced a result.
func (CommandEventFormatter) BuildExecutionFailureMessage(command execshell.ShellCommand, failure error) string {
	failureText := unknownFailureMessageConstant
	if failure != nil {
		failureText = failure.Error()
	}
	return fmt.Sprintf(executionFailureMessageTemplateConstant, commandLabel(command), failureText)
}

// commandLabel renders the argv as a single line, truncated so multi-kilobyte
// JSON payloads passed through gh api arguments stay readable.
func commandLabel(command execshell.ShellCommand) string {
	labelBuilder := strings.Builder{}
	labelBuilder.WriteString(string(command.Name))
	for _, argument := range command.Details.Arguments {
		labelBuilder.WriteString(labelPartSeparatorConstant)
		labelBuilder.WriteString(argument)
	}

	label := labelBuilder.String()
	if len(label) > labelMaximumLengthConstant {
		label = label[:labelMaximumLengthConstant] + labelEllipsisConstant
	}
	return label
}

// ConsoleCommandEventLogger routes lifecycle events to a zap logger configured
// for human-readable output, implementing execshell.CommandEventObserver.
type ConsoleCommandEventLogger struct {
	logger    *zap.Logger
	formatter CommandEventFormatter
}

// NewConsoleCommandEventLogger constructs a console event logger backed by the provided zap logger.
func NewConsoleCommandEventLogger(logger *zap.Logger) *ConsoleCommandEventLogger {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ConsoleCommandEventLogger{logger: logger}
}

// CommandStarted logs command start notifications at info level.
func (eventLogger *ConsoleCommandEventLogger) CommandStarted(command execshell.ShellCommand) {
	if eventLogger == nil {
		return
	}
	eventLogger.logger.Info(eventLogger.formatter.BuildStartedMessage(command))
}

// CommandCompleted logs completions at info level and non-zero exits as warnings.
func (eventLogger *ConsoleCommandEventLogger) CommandCompleted(command execshell.ShellCommand, result execshell.ExecutionResult) {
	if eventLogger == nil {
		return
	}
	if result.ExitCode == 0 {
		eventLogger.logger.Info(eventLogger.formatter.BuildSuccessMessage(command))
		return
	}
	eventLogger.logger.Warn(eventLogger.formatter.BuildFailureMessage(command, result))
}

// CommandExecutionFailed logs unexpected execution failures at error level.
func (eventLogger *ConsoleCommandEventLogger) CommandExecutionFailed(command execshell.ShellCommand, failure error) {
	if eventLogger == nil {
		return
	}
	eventLogger.logger.Error(eventLogger.formatter.BuildExecutionFailureMessage(command, failure))
}
