package ui_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/seedworks/enrich/internal/execshell"
	"github.com/seedworks/enrich/internal/ui"
)

const (
	testLongArgumentLengthConstant = 200
	testEllipsisConstant           = "..."
)

func githubCommand(arguments ...string) execshell.ShellCommand {
	return execshell.ShellCommand{
		Name:    execshell.CommandGitHub,
		Details: execshell.CommandDetails{Arguments: arguments},
	}
}

func TestCommandEventFormatterMessages(testInstance *testing.T) {
	formatter := ui.CommandEventFormatter{}

	testCases := []struct {
		name            string
		buildMessage    func() string
		expectedMessage string
	}{
		{
			name: "started_message_includes_arguments",
			buildMessage: func() string {
				return formatter.BuildStartedMessage(githubCommand("repo", "list", "octocat"))
			},
			expectedMessage: "Running gh repo list octocat",
		},
		{
			name: "started_message_without_arguments",
			buildMessage: func() string {
				return formatter.BuildStartedMessage(githubCommand())
			},
			expectedMessage: "Running gh",
		},
		{
			name: "success_message",
			buildMessage: func() string {
				return formatter.BuildSuccessMessage(githubCommand("auth", "status"))
			},
			expectedMessage: "Completed gh auth status",
		},
		{
			name: "failure_message_includes_exit_code_and_stderr",
			buildMessage: func() string {
				return formatter.BuildFailureMessage(
					githubCommand("api", "repos/octocat/hello"),
					execshell.ExecutionResult{ExitCode: 1, StandardError: "HTTP 404\n"},
				)
			},
			expectedMessage: "gh api repos/octocat/hello failed with exit code 1: HTTP 404",
		},
		{
			name: "failure_message_without_stderr",
			buildMessage: func() string {
				return formatter.BuildFailureMessage(
					githubCommand("api", "repos/octocat/hello"),
					execshell.ExecutionResult{ExitCode: 22},
				)
			},
			expectedMessage: "gh api repos/octocat/hello failed with exit code 22",
		},
		{
			name: "execution_failure_message",
			buildMessage: func() string {
				return formatter.BuildExecutionFailureMessage(githubCommand("repo", "list"), errors.New("executable not found"))
			},
			expectedMessage: "gh repo list failed: executable not found",
		},
		{
			name: "execution_failure_message_without_error",
			buildMessage: func() string {
				return formatter.BuildExecutionFailureMessage(githubCommand("repo", "list"), nil)
			},
			expectedMessage: "gh repo list failed: unknown error",
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			require.Equal(testInstance, testCase.expectedMessage, testCase.buildMessage())
		})
	}
}

func TestCommandEventFormatterTruncatesLongLabels(testInstance *testing.T) {
	formatter := ui.CommandEventFormatter{}
	longArgument := strings.Repeat("a", testLongArgumentLengthConstant)

	startedMessage := formatter.BuildStartedMessage(githubCommand(longArgument))

	require.True(testInstance, strings.HasSuffix(startedMessage, testEllipsisConstant))
	require.Less(testInstance, len(startedMessage), len("Running gh ")+testLongArgumentLengthConstant)
}

func TestConsoleCommandEventLoggerRoutesByOutcome(testInstance *testing.T) {
	testCases := []struct {
		name            string
		notify          func(eventLogger *ui.ConsoleCommandEventLogger)
		expectedLevel   zapcore.Level
		expectedMessage string
	}{
		{
			name: "started_logs_info",
			notify: func(eventLogger *ui.ConsoleCommandEventLogger) {
				eventLogger.CommandStarted(githubCommand("auth", "status"))
			},
			expectedLevel:   zapcore.InfoLevel,
			expectedMessage: "Running gh auth status",
		},
		{
			name: "completed_success_logs_info",
			notify: func(eventLogger *ui.ConsoleCommandEventLogger) {
				eventLogger.CommandCompleted(githubCommand("auth", "status"), execshell.ExecutionResult{ExitCode: 0})
			},
			expectedLevel:   zapcore.InfoLevel,
			expectedMessage: "Completed gh auth status",
		},
		{
			name: "completed_failure_logs_warning",
			notify: func(eventLogger *ui.ConsoleCommandEventLogger) {
				eventLogger.CommandCompleted(githubCommand("auth", "status"), execshell.ExecutionResult{ExitCode: 1})
			},
			expectedLevel:   zapcore.WarnLevel,
			expectedMessage: "gh auth status failed with exit code 1",
		},
		{
			name: "execution_failure_logs_error",
			notify: func(eventLogger *ui.ConsoleCommandEventLogger) {
				eventLogger.CommandExecutionFailed(githubCommand("auth", "status"), errors.New("boom"))
			},
			expectedLevel:   zapcore.ErrorLevel,
			expectedMessage: "gh auth status failed: boom",
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			observedCore, observedLogs := observer.New(zapcore.DebugLevel)
			eventLogger := ui.NewConsoleCommandEventLogger(zap.New(observedCore))

			testCase.notify(eventLogger)

			logEntries := observedLogs.All()
			require.Len(testInstance, logEntries, 1)
			require.Equal(testInstance, testCase.expectedLevel, logEntries[0].Level)
			require.Equal(testInstance, testCase.expectedMessage, logEntries[0].Message)
		})
	}
}

func TestNewConsoleCommandEventLoggerToleratesNilLogger(testInstance *testing.T) {
	eventLogger := ui.NewConsoleCommandEventLogger(nil)
	require.NotNil(testInstance, eventLogger)

	eventLogger.CommandStarted(githubCommand("auth", "status"))
}
