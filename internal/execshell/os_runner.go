package execshell

import (
	"bytes"
	"context"
	"errors"
	"os"
	"os/exec"
)

const environmentAssignmentSeparatorConstant = "="

// OSCommandRunner executes shell commands through os/exec.
type OSCommandRunner struct{}

// NewOSCommandRunner constructs a runner backed by the operating system.
func NewOSCommandRunner() *OSCommandRunner {
	return &OSCommandRunner{}
}

// Run spawns the requested process, captures both output streams, and reports
// non-zero exits as ExecutionResult values rather than errors.
func (runner *OSCommandRunner) Run(executionContext context.Context, command ShellCommand) (ExecutionResult, error) {
	processHandle := exec.CommandContext(executionContext, string(command.Name), command.Details.Arguments...)
	applyCommandDetails(processHandle, command.Details)

	standardOutputBuffer := &bytes.Buffer{}
	standardErrorBuffer := &bytes.Buffer{}
	processHandle.Stdout = standardOutputBuffer
	processHandle.Stderr = standardErrorBuffer

	runError := processHandle.Run()
	executionResult := ExecutionResult{
		StandardOutput: standardOutputBuffer.String(),
		StandardError:  standardErrorBuffer.String(),
	}

	var exitError *exec.ExitError
	switch {
	case runError == nil:
		return executionResult, nil
	case errors.As(runError, &exitError):
		executionResult.ExitCode = exitError.ExitCode()
		return executionResult, nil
	default:
		return ExecutionResult{}, runError
	}
}

func applyCommandDetails(processHandle *exec.Cmd, details CommandDetails) {
	if len(details.WorkingDirectory) > 0 {
		processHandle.Dir = details.WorkingDirectory
	}

	if len(details.EnvironmentVariables) > 0 {
		processEnvironment := os.Environ()
		for variableName, variableValue := range details.EnvironmentVariables {
			processEnvironment = append(processEnvironment, variableName+environmentAssignmentSeparatorConstant+variableValue)
		}
		processHandle.Env = processEnvironment
	}

	if len(details.StandardInput) > 0 {
		processHandle.Stdin = bytes.NewReader(details.StandardInput)
	}
}
