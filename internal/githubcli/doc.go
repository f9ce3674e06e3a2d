// Package githubcli adapts GitHub CLI invocations into typed operations.
//
// Client shells out through execshell.ShellExecutor to list repositories,
// resolve repository metadata, and drive the low-level Git data API used by
// the enrichment deployment path (blobs, trees, commits, and references).
package githubcli
