package execshell_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/seedworks/enrich/internal/execshell"
)

const (
	testRepoListMessageCaseNameConstant     = "repo_list"
	testRepoViewMessageCaseNameConstant     = "repo_view"
	testBranchTipMessageCaseNameConstant    = "branch_tip"
	testRefCreateMessageCaseNameConstant    = "ref_create"
	testRefUpdateMessageCaseNameConstant    = "ref_update"
	testBlobUploadMessageCaseNameConstant   = "blob_upload"
	testTreeCreateMessageCaseNameConstant   = "tree_create"
	testTreeReadMessageCaseNameConstant     = "tree_read"
	testCommitCreateMessageCaseNameConstant = "commit_create"
	testGenericMessageCaseNameConstant      = "generic_subcommand"
)

func githubCommand(arguments ...string) execshell.ShellCommand {
	return execshell.ShellCommand{
		Name:    execshell.CommandGitHub,
		Details: execshell.CommandDetails{Arguments: arguments},
	}
}

func TestCommandMessageFormatterStartedMessages(testInstance *testing.T) {
	formatter := execshell.CommandMessageFormatter{}

	testCases := []struct {
		name            string
		command         execshell.ShellCommand
		expectedMessage string
	}{
		{
			name:            testRepoListMessageCaseNameConstant,
			command:         githubCommand("repo", "list", "octocat", "--json", "name", "--limit", "1000"),
			expectedMessage: "Listing repositories for octocat",
		},
		{
			name:            testRepoViewMessageCaseNameConstant,
			command:         githubCommand("repo", "view", "octocat/hello", "--json", "name"),
			expectedMessage: "Retrieving repository details for octocat/hello",
		},
		{
			name:            testBranchTipMessageCaseNameConstant,
			command:         githubCommand("api", "repos/octocat/hello/git/ref/heads/main"),
			expectedMessage: "Resolving branch main tip on octocat/hello",
		},
		{
			name:            testRefCreateMessageCaseNameConstant,
			command:         githubCommand("api", "repos/octocat/hello/git/refs", "-X", "POST", "--input", "-"),
			expectedMessage: "Creating branch reference on octocat/hello",
		},
		{
			name:            testRefUpdateMessageCaseNameConstant,
			command:         githubCommand("api", "repos/octocat/hello/git/refs/heads/feature/testing-suite-integration", "-X", "PATCH", "--input", "-"),
			expectedMessage: "Updating branch feature/testing-suite-integration on octocat/hello",
		},
		{
			name:            testBlobUploadMessageCaseNameConstant,
			command:         githubCommand("api", "repos/octocat/hello/git/blobs", "-X", "POST", "--input", "-"),
			expectedMessage: "Uploading blob to octocat/hello",
		},
		{
			name:            testTreeCreateMessageCaseNameConstant,
			command:         githubCommand("api", "repos/octocat/hello/git/trees", "-X", "POST", "--input", "-"),
			expectedMessage: "Creating tree on octocat/hello",
		},
		{
			name:            testTreeReadMessageCaseNameConstant,
			command:         githubCommand("api", "repos/octocat/hello/git/trees/HEAD"),
			expectedMessage: "Listing tree HEAD on octocat/hello",
		},
		{
			name:            testCommitCreateMessageCaseNameConstant,
			command:         githubCommand("api", "repos/octocat/hello/git/commits", "-X", "POST", "--input", "-"),
			expectedMessage: "Creating commit on octocat/hello",
		},
		{
			name:            testGenericMessageCaseNameConstant,
			command:         githubCommand("auth", "status"),
			expectedMessage: "Running gh auth status",
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			require.Equal(testInstance, testCase.expectedMessage, formatter.BuildStartedMessage(testCase.command))
		})
	}
}

func TestCommandMessageFormatterFailureMessages(testInstance *testing.T) {
	formatter := execshell.CommandMessageFormatter{}

	failureMessage := formatter.BuildFailureMessage(
		githubCommand("repo", "list", "octocat", "--json", "name"),
		execshell.ExecutionResult{ExitCode: 1, StandardError: "HTTP 404"},
	)
	require.Equal(testInstance, "Failed to list repositories for octocat (exit code 1: HTTP 404)", failureMessage)

	executionFailureMessage := formatter.BuildExecutionFailureMessage(
		githubCommand("api", "repos/octocat/hello/git/ref/heads/main"),
		errors.New("executable not found"),
	)
	require.Equal(testInstance, "Unable to resolve branch main tip on octocat/hello: executable not found", executionFailureMessage)
}
