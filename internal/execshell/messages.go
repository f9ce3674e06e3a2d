package execshell

import (
	"fmt"
	"strings"
)

type messageStage int

const (
	messageStageStart messageStage = iota
	messageStageSuccess
	messageStageFailure
	messageStageExecutionFailure
)

const (
	genericStartTemplateConstant            = "Running %s"
	genericSuccessTemplateConstant          = "Completed %s"
	genericFailureTemplateConstant          = "%s failed with exit code %d%s"
	genericExecutionFailureTemplateConstant = "%s failed: %s"
	standardErrorSuffixTemplateConstant     = ": %s"
	unknownFailureMessageConstant           = "unknown error"
	emptyStringConstant                     = ""
	fallbackUnknownValueLabelConstant       = "unknown"
)

const (
	githubRepoSubcommandNameConstant      = "repo"
	githubRepoListSubcommandNameConstant  = "list"
	githubRepoViewSubcommandNameConstant  = "view"
	githubAPISubcommandNameConstant       = "api"
	githubMethodFlagConstant              = "-X"
	githubRepositoryEndpointPrefixTrimSet = "repos/"
	githubBranchTipEndpointMarkerConstant = "/git/ref/heads/"
	githubRefsEndpointSuffixConstant      = "/git/refs"
	githubRefsUpdateEndpointMarkerConst   = "/git/refs/heads/"
	githubBlobsEndpointSuffixConstant     = "/git/blobs"
	githubTreesEndpointMarkerConstant     = "/git/trees"
	githubCommitsEndpointMarkerConstant   = "/git/commits"
)

const (
	githubRepoListStartTemplateConstant              = "Listing repositories for %s"
	githubRepoListSuccessTemplateConstant            = "Listed repositories for %s"
	githubRepoListFailureTemplateConstant            = "Failed to list repositories for %s (exit code %d%s)"
	githubRepoListExecutionFailureTemplateConstant   = "Unable to list repositories for %s: %s"
	githubRepoViewStartTemplateConstant              = "Retrieving repository details for %s"
	githubRepoViewSuccessTemplateConstant            = "Retrieved repository details for %s"
	githubRepoViewFailureTemplateConstant            = "Failed to retrieve repository details for %s (exit code %d%s)"
	githubRepoViewExecutionFailureTemplateConstant   = "Unable to retrieve repository details for %s: %s"
	githubBranchTipStartTemplateConstant             = "Resolving branch %s tip on %s"
	githubBranchTipSuccessTemplateConstant           = "Resolved branch %s tip on %s"
	githubBranchTipFailureTemplateConstant           = "Failed to resolve branch %s tip on %s (exit code %d%s)"
	githubBranchTipExecutionFailureTemplateConstant  = "Unable to resolve branch %s tip on %s: %s"
	githubRefCreateStartTemplateConstant             = "Creating branch reference on %s"
	githubRefCreateSuccessTemplateConstant           = "Created branch reference on %s"
	githubRefCreateFailureTemplateConstant           = "Failed to create branch reference on %s (exit code %d%s)"
	githubRefCreateExecutionFailureTemplateConstant  = "Unable to create branch reference on %s: %s"
	githubRefUpdateStartTemplateConstant             = "Updating branch %s on %s"
	githubRefUpdateSuccessTemplateConstant           = "Updated branch %s on %s"
	githubRefUpdateFailureTemplateConstant           = "Failed to update branch %s on %s (exit code %d%s)"
	githubRefUpdateExecutionFailureTemplateConstant  = "Unable to update branch %s on %s: %s"
	githubBlobStartTemplateConstant                  = "Uploading blob to %s"
	githubBlobSuccessTemplateConstant                = "Uploaded blob to %s"
	githubBlobFailureTemplateConstant                = "Failed to upload blob to %s (exit code %d%s)"
	githubBlobExecutionFailureTemplateConstant       = "Unable to upload blob to %s: %s"
	githubTreeReadStartTemplateConstant              = "Listing tree %s on %s"
	githubTreeReadSuccessTemplateConstant            = "Listed tree %s on %s"
	githubTreeReadFailureTemplateConstant            = "Failed to list tree %s on %s (exit code %d%s)"
	githubTreeReadExecutionFailureTemplateConstant   = "Unable to list tree %s on %s: %s"
	githubTreeWriteStartTemplateConstant             = "Creating tree on %s"
	githubTreeWriteSuccessTemplateConstant           = "Created tree on %s"
	githubTreeWriteFailureTemplateConstant           = "Failed to create tree on %s (exit code %d%s)"
	githubTreeWriteExecutionFailureTemplateConstant  = "Unable to create tree on %s: %s"
	githubCommitReadStartTemplateConstant            = "Reading commit %s on %s"
	githubCommitReadSuccessTemplateConstant          = "Read commit %s on %s"
	githubCommitReadFailureTemplateConstant          = "Failed to read commit %s on %s (exit code %d%s)"
	githubCommitReadExecutionFailureTemplateConst    = "Unable to read commit %s on %s: %s"
	githubCommitWriteStartTemplateConstant           = "Creating commit on %s"
	githubCommitWriteSuccessTemplateConstant         = "Created commit on %s"
	githubCommitWriteFailureTemplateConstant         = "Failed to create commit on %s (exit code %d%s)"
	githubCommitWriteExecutionFailureTemplateConst   = "Unable to create commit on %s: %s"
	githubHTTPPostMethodConstant                     = "POST"
	githubHTTPPatchMethodConstant                    = "PATCH"
	githubCurrentRepositoryLabelConstant             = "current repository"
	githubRepoViewIdentificationArgumentCountMinimum = 3
)

// CommandMessageFormatter builds human-readable messages for command lifecycle events.
type CommandMessageFormatter struct{}

// BuildStartedMessage formats the message describing a command about to run.
func (formatter CommandMessageFormatter) BuildStartedMessage(command ShellCommand) string {
	return formatter.buildMessage(command, ExecutionResult{}, nil, messageStageStart)
}

// BuildSuccessMessage formats the message describing a completed command with a zero exit code.
func (formatter CommandMessageFormatter) BuildSuccessMessage(command ShellCommand) string {
	return formatter.buildMessage(command, ExecutionResult{}, nil, messageStageSuccess)
}

// BuildFailureMessage formats the message describing a command that returned a non-zero exit code.
func (formatter CommandMessageFormatter) BuildFailureMessage(command ShellCommand, result ExecutionResult) string {
	return formatter.buildMessage(command, result, nil, messageStageFailure)
}

// BuildExecutionFailureMessage formats the message describing an unexpected execution failure.
func (formatter CommandMessageFormatter) BuildExecutionFailureMessage(command ShellCommand, failure error) string {
	return formatter.buildMessage(command, ExecutionResult{}, failure, messageStageExecutionFailure)
}

func (formatter CommandMessageFormatter) buildMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	if command.Name != CommandGitHub || len(command.Details.Arguments) == 0 {
		return formatter.buildGenericMessage(command, result, failure, stage)
	}

	primaryArgument := strings.TrimSpace(command.Details.Arguments[0])
	switch primaryArgument {
	case githubRepoSubcommandNameConstant:
		return formatter.describeRepoCommand(command, result, failure, stage)
	case githubAPISubcommandNameConstant:
		return formatter.describeAPICommand(command, result, failure, stage)
	default:
		return formatter.buildGenericMessage(command, result, failure, stage)
	}
}

func (formatter CommandMessageFormatter) describeRepoCommand(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	arguments := command.Details.Arguments
	if len(arguments) < githubRepoViewIdentificationArgumentCountMinimum {
		return formatter.buildGenericMessage(command, result, failure, stage)
	}

	subcommand := strings.TrimSpace(arguments[1])
	target := formatter.ensureValue(arguments[2])

	switch subcommand {
	case githubRepoListSubcommandNameConstant:
		return formatter.renderStageMessage(stage, result, failure,
			fmt.Sprintf(githubRepoListStartTemplateConstant, target),
			fmt.Sprintf(githubRepoListSuccessTemplateConstant, target),
			githubRepoListFailureTemplateConstant,
			githubRepoListExecutionFailureTemplateConstant,
			target,
		)
	case githubRepoViewSubcommandNameConstant:
		return formatter.renderStageMessage(stage, result, failure,
			fmt.Sprintf(githubRepoViewStartTemplateConstant, target),
			fmt.Sprintf(githubRepoViewSuccessTemplateConstant, target),
			githubRepoViewFailureTemplateConstant,
			githubRepoViewExecutionFailureTemplateConstant,
			target,
		)
	default:
		return formatter.buildGenericMessage(command, result, failure, stage)
	}
}

func (formatter CommandMessageFormatter) describeAPICommand(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	arguments := command.Details.Arguments
	if len(arguments) < 2 {
		return formatter.buildGenericMessage(command, result, failure, stage)
	}

	endpoint := strings.TrimSpace(arguments[1])
	method := strings.TrimSpace(findFlagValue(arguments, githubMethodFlagConstant))

	switch {
	case strings.Contains(endpoint, githubBranchTipEndpointMarkerConstant):
		repository, branch := formatter.splitEndpointOnMarker(endpoint, githubBranchTipEndpointMarkerConstant)
		return formatter.renderStageMessage(stage, result, failure,
			fmt.Sprintf(githubBranchTipStartTemplateConstant, branch, repository),
			fmt.Sprintf(githubBranchTipSuccessTemplateConstant, branch, repository),
			githubBranchTipFailureTemplateConstant,
			githubBranchTipExecutionFailureTemplateConstant,
			branch, repository,
		)
	case strings.Contains(endpoint, githubRefsUpdateEndpointMarkerConst) && method == githubHTTPPatchMethodConstant:
		repository, branch := formatter.splitEndpointOnMarker(endpoint, githubRefsUpdateEndpointMarkerConst)
		return formatter.renderStageMessage(stage, result, failure,
			fmt.Sprintf(githubRefUpdateStartTemplateConstant, branch, repository),
			fmt.Sprintf(githubRefUpdateSuccessTemplateConstant, branch, repository),
			githubRefUpdateFailureTemplateConstant,
			githubRefUpdateExecutionFailureTemplateConstant,
			branch, repository,
		)
	case strings.HasSuffix(endpoint, githubRefsEndpointSuffixConstant) && method == githubHTTPPostMethodConstant:
		repository := formatter.repositoryFromEndpoint(endpoint, githubRefsEndpointSuffixConstant)
		return formatter.renderStageMessage(stage, result, failure,
			fmt.Sprintf(githubRefCreateStartTemplateConstant, repository),
			fmt.Sprintf(githubRefCreateSuccessTemplateConstant, repository),
			githubRefCreateFailureTemplateConstant,
			githubRefCreateExecutionFailureTemplateConstant,
			repository,
		)
	case strings.HasSuffix(endpoint, githubBlobsEndpointSuffixConstant):
		repository := formatter.repositoryFromEndpoint(endpoint, githubBlobsEndpointSuffixConstant)
		return formatter.renderStageMessage(stage, result, failure,
			fmt.Sprintf(githubBlobStartTemplateConstant, repository),
			fmt.Sprintf(githubBlobSuccessTemplateConstant, repository),
			githubBlobFailureTemplateConstant,
			githubBlobExecutionFailureTemplateConstant,
			repository,
		)
	case strings.Contains(endpoint, githubTreesEndpointMarkerConstant):
		if method == githubHTTPPostMethodConstant {
			repository := formatter.repositoryFromEndpoint(endpoint, githubTreesEndpointMarkerConstant)
			return formatter.renderStageMessage(stage, result, failure,
				fmt.Sprintf(githubTreeWriteStartTemplateConstant, repository),
				fmt.Sprintf(githubTreeWriteSuccessTemplateConstant, repository),
				githubTreeWriteFailureTemplateConstant,
				githubTreeWriteExecutionFailureTemplateConstant,
				repository,
			)
		}
		repository, reference := formatter.splitEndpointOnMarker(endpoint, githubTreesEndpointMarkerConstant+"/")
		return formatter.renderStageMessage(stage, result, failure,
			fmt.Sprintf(githubTreeReadStartTemplateConstant, reference, repository),
			fmt.Sprintf(githubTreeReadSuccessTemplateConstant, reference, repository),
			githubTreeReadFailureTemplateConstant,
			githubTreeReadExecutionFailureTemplateConstant,
			reference, repository,
		)
	case strings.Contains(endpoint, githubCommitsEndpointMarkerConstant):
		if method == githubHTTPPostMethodConstant {
			repository := formatter.repositoryFromEndpoint(endpoint, githubCommitsEndpointMarkerConstant)
			return formatter.renderStageMessage(stage, result, failure,
				fmt.Sprintf(githubCommitWriteStartTemplateConstant, repository),
				fmt.Sprintf(githubCommitWriteSuccessTemplateConstant, repository),
				githubCommitWriteFailureTemplateConstant,
				githubCommitWriteExecutionFailureTemplateConst,
				repository,
			)
		}
		repository, commitSHA := formatter.splitEndpointOnMarker(endpoint, githubCommitsEndpointMarkerConstant+"/")
		return formatter.renderStageMessage(stage, result, failure,
			fmt.Sprintf(githubCommitReadStartTemplateConstant, commitSHA, repository),
			fmt.Sprintf(githubCommitReadSuccessTemplateConstant, commitSHA, repository),
			githubCommitReadFailureTemplateConstant,
			githubCommitReadExecutionFailureTemplateConst,
			commitSHA, repository,
		)
	default:
		return formatter.buildGenericMessage(command, result, failure, stage)
	}
}

// renderStageMessage selects between precomputed start/success strings and
// failure templates whose leading verb arguments are supplied by the caller.
func (formatter CommandMessageFormatter) renderStageMessage(stage messageStage, result ExecutionResult, failure error, startMessage string, successMessage string, failureTemplate string, executionFailureTemplate string, templateArguments ...any) string {
	switch stage {
	case messageStageStart:
		return startMessage
	case messageStageSuccess:
		return successMessage
	case messageStageFailure:
		failureArguments := append(append([]any{}, templateArguments...), result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
		return fmt.Sprintf(failureTemplate, failureArguments...)
	case messageStageExecutionFailure:
		executionArguments := append(append([]any{}, templateArguments...), formatter.describeFailure(failure))
		return fmt.Sprintf(executionFailureTemplate, executionArguments...)
	default:
		return emptyStringConstant
	}
}

func (formatter CommandMessageFormatter) buildGenericMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	commandLabel := formatCommandLabel(command)
	switch stage {
	case messageStageStart:
		return fmt.Sprintf(genericStartTemplateConstant, commandLabel)
	case messageStageSuccess:
		return fmt.Sprintf(genericSuccessTemplateConstant, commandLabel)
	case messageStageFailure:
		return fmt.Sprintf(genericFailureTemplateConstant, commandLabel, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	case messageStageExecutionFailure:
		return fmt.Sprintf(genericExecutionFailureTemplateConstant, commandLabel, formatter.describeFailure(failure))
	default:
		return emptyStringConstant
	}
}

func (formatter CommandMessageFormatter) formatStandardErrorSuffix(standardError string) string {
	trimmedStandardError := strings.TrimSpace(standardError)
	if len(trimmedStandardError) == 0 {
		return emptyStringConstant
	}
	return fmt.Sprintf(standardErrorSuffixTemplateConstant, trimmedStandardError)
}

func (formatter CommandMessageFormatter) describeFailure(failure error) string {
	if failure == nil {
		return unknownFailureMessageConstant
	}
	return failure.Error()
}

func (formatter CommandMessageFormatter) ensureValue(value string) string {
	trimmed := strings.TrimSpace(value)
	if len(trimmed) == 0 {
		return fallbackUnknownValueLabelConstant
	}
	return trimmed
}

func (formatter CommandMessageFormatter) repositoryFromEndpoint(endpoint string, suffix string) string {
	trimmed := strings.TrimPrefix(strings.TrimSpace(endpoint), githubRepositoryEndpointPrefixTrimSet)
	trimmed = strings.TrimSuffix(trimmed, suffix)
	trimmed = strings.TrimSuffix(trimmed, "/")
	if len(trimmed) == 0 {
		return githubCurrentRepositoryLabelConstant
	}
	return trimmed
}

func (formatter CommandMessageFormatter) splitEndpointOnMarker(endpoint string, marker string) (string, string) {
	trimmed := strings.TrimPrefix(strings.TrimSpace(endpoint), githubRepositoryEndpointPrefixTrimSet)
	markerIndex := strings.Index(trimmed, marker)
	if markerIndex < 0 {
		return formatter.ensureValue(trimmed), fallbackUnknownValueLabelConstant
	}
	repository := trimmed[:markerIndex]
	remainder := trimmed[markerIndex+len(marker):]
	return formatter.ensureValue(repository), formatter.ensureValue(remainder)
}

func findFlagValue(arguments []string, flag string) string {
	for index := 0; index < len(arguments); index++ {
		if strings.TrimSpace(arguments[index]) == flag && index+1 < len(arguments) {
			return strings.TrimSpace(arguments[index+1])
		}
	}
	return emptyStringConstant
}
