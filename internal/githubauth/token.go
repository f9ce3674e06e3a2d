// Package githubauth resolves GitHub access credentials from the environment.
package githubauth

import (
	"os"
	"strings"
)

// Environment variable names consulted for a GitHub token, in precedence order.
const (
	EnvGitHubCLIToken = "GH_TOKEN"
	EnvGitHubToken    = "GITHUB_TOKEN"
	EnvGitHubAPIToken = "GITHUB_API_TOKEN"
)

var tokenVariablePrecedence = []string{
	EnvGitHubCLIToken,
	EnvGitHubToken,
	EnvGitHubAPIToken,
}

// ResolveToken returns the first non-blank token found among the recognized
// variables. A non-nil environment map is authoritative: the process
// environment is consulted only when the map is nil, which keeps token
// resolution deterministic under test.
func ResolveToken(environment map[string]string) (string, bool) {
	lookupVariable := os.LookupEnv
	if environment != nil {
		lookupVariable = func(variableName string) (string, bool) {
			value, exists := environment[variableName]
			return value, exists
		}
	}

	for _, variableName := range tokenVariablePrecedence {
		rawValue, exists := lookupVariable(variableName)
		if !exists {
			continue
		}
		tokenValue := strings.TrimSpace(rawValue)
		if len(tokenValue) > 0 {
			return tokenValue, true
		}
	}

	return "", false
}
