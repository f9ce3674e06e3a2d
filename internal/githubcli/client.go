package githubcli

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/seedworks/enrich/internal/execshell"
)

const (
	repoSubcommandConstant               = "repo"
	listSubcommandConstant               = "list"
	viewSubcommandConstant               = "view"
	apiSubcommandConstant                = "api"
	jsonFlagConstant                     = "--json"
	limitFlagConstant                    = "--limit"
	methodFlagConstant                   = "-X"
	inputFlagConstant                    = "--input"
	stdinReferenceConstant               = "-"
	acceptHeaderFlagConstant             = "-H"
	acceptHeaderValueConstant            = "Accept: application/vnd.github+json"
	httpMethodPostConstant               = "POST"
	httpMethodPatchConstant              = "PATCH"
	ownerFieldNameConstant               = "owner"
	repositoryFieldNameConstant          = "repository"
	branchFieldNameConstant              = "branch"
	referenceFieldNameConstant           = "reference"
	commitFieldNameConstant              = "commit"
	treeFieldNameConstant                = "tree"
	contentFieldNameConstant             = "content"
	messageFieldNameConstant             = "message"
	entriesFieldNameConstant             = "entries"
	requiredValueMessageConstant         = "value required"
	executorNotConfiguredMessageConstant = "github cli executor not configured"
	repositoryListLimitDefaultConstant   = 1000
	repoListJSONFieldsConstant           = "name"
	repoViewJSONFieldsConstant           = "name,description,primaryLanguage,defaultBranchRef"
	blobEncodingBase64Constant           = "base64"
	blobFileModeConstant                 = "100644"
	blobEntryTypeConstant                = "blob"
	branchReferencePrefixConstant        = "refs/heads/"

	operationErrorMessageTemplateConstant   = "%s operation failed"
	operationErrorWithCauseTemplateConstant = "%s operation failed: %s"
	responseDecodingErrorTemplateConstant   = "%s response decoding failed: %s"
	payloadEncodingErrorTemplateConstant    = "%s payload encoding failed: %s"
	invalidInputErrorTemplateConstant       = "%s: %s"

	branchTipEndpointTemplateConstant  = "repos/%s/%s/git/ref/heads/%s"
	branchRefsEndpointTemplateConstant = "repos/%s/%s/git/refs"
	refUpdateEndpointTemplateConstant  = "repos/%s/%s/git/refs/heads/%s"
	commitReadEndpointTemplate         = "repos/%s/%s/git/commits/%s"
	commitWriteEndpointTemplate        = "repos/%s/%s/git/commits"
	blobsEndpointTemplateConstant      = "repos/%s/%s/git/blobs"
	treesReadEndpointTemplateConstant  = "repos/%s/%s/git/trees/%s"
	treesWriteEndpointTemplateConstant = "repos/%s/%s/git/trees"

	listRepositoriesOperationNameConstant  = OperationName("ListRepositories")
	viewRepositoryOperationNameConstant    = OperationName("ViewRepository")
	listBranchTreeOperationNameConstant    = OperationName("ListBranchTree")
	resolveBranchTipOperationNameConstant  = OperationName("ResolveBranchTip")
	resolveCommitTreeOperationNameConstant = OperationName("ResolveCommitTree")
	createBlobOperationNameConstant        = OperationName("CreateBlob")
	createTreeOperationNameConstant        = OperationName("CreateTree")
	createCommitOperationNameConstant      = OperationName("CreateCommit")
	createBranchRefOperationNameConstant   = OperationName("CreateBranchRef")
	updateBranchRefOperationNameConstant   = OperationName("UpdateBranchRef")
)

// OperationName describes a named GitHub CLI workflow supported by the client.
type OperationName string

// RepositoryView contains key details resolved from gh repo view.
type RepositoryView struct {
	Name            string
	Description     string
	PrimaryLanguage string
	DefaultBranch   string
}

// TreeEntry represents a single entry in a non-recursive Git tree listing.
type TreeEntry struct {
	Path string
	Type string
}

// TreeFileEntry describes one blob appended to a newly created tree.
type TreeFileEntry struct {
	Path    string
	BlobSHA string
}

// GitHubCommandExecutor is the minimal interface required from execshell.ShellExecutor.
type GitHubCommandExecutor interface {
	ExecuteGitHubCLI(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error)
}

// Client coordinates GitHub CLI invocations through execshell.
type Client struct {
	executor GitHubCommandExecutor
}

var (
	// ErrExecutorNotConfigured indicates the client was constructed without an executor.
	ErrExecutorNotConfigured = errors.New(executorNotConfiguredMessageConstant)
)

// InvalidInputError surfaces validation issues for operation inputs.
type InvalidInputError struct {
	FieldName string
	Message   string
}

// Error describes the invalid input.
func (inputError InvalidInputError) Error() string {
	return fmt.Sprintf(invalidInputErrorTemplateConstant, inputError.FieldName, inputError.Message)
}

// OperationError wraps execution issues for GitHub CLI operations.
type OperationError struct {
	Operation OperationName
	Cause     error
}

// Error describes the operation failure.
func (operationError OperationError) Error() string {
	if operationError.Cause == nil {
		return fmt.Sprintf(operationErrorMessageTemplateConstant, operationError.Operation)
	}
	return fmt.Sprintf(operationErrorWithCauseTemplateConstant, operationError.Operation, operationError.Cause)
}

// Unwrap exposes the underlying cause.
func (operationError OperationError) Unwrap() error {
	return operationError.Cause
}

// ResponseDecodingError indicates JSON decoding failures.
type ResponseDecodingError struct {
	Operation OperationName
	Cause     error
}

// Error describes the decoding failure.
func (decodingError ResponseDecodingError) Error() string {
	return fmt.Sprintf(responseDecodingErrorTemplateConstant, decodingError.Operation, decodingError.Cause)
}

// Unwrap exposes the underlying JSON error.
func (decodingError ResponseDecodingError) Unwrap() error {
	return decodingError.Cause
}

// PayloadEncodingError indicates JSON encoding issues.
type PayloadEncodingError struct {
	Operation OperationName
	Cause     error
}

// Error describes the encoding failure.
func (encodingError PayloadEncodingError) Error() string {
	return fmt.Sprintf(payloadEncodingErrorTemplateConstant, encodingError.Operation, encodingError.Cause)
}

// Unwrap exposes the underlying error.
func (encodingError PayloadEncodingError) Unwrap() error {
	return encodingError.Cause
}

// NewClient constructs a GitHub CLI client.
func NewClient(executor GitHubCommandExecutor) (*Client, error) {
	if executor == nil {
		return nil, ErrExecutorNotConfigured
	}
	return &Client{executor: executor}, nil
}

// ListRepositories enumerates repository names for an owner using gh repo list.
func (client *Client) ListRepositories(executionContext context.Context, owner string, limit int) ([]string, error) {
	ownerIdentifier := strings.TrimSpace(owner)
	if len(ownerIdentifier) == 0 {
		return nil, InvalidInputError{FieldName: ownerFieldNameConstant, Message: requiredValueMessageConstant}
	}

	repositoryLimit := limit
	if repositoryLimit <= 0 {
		repositoryLimit = repositoryListLimitDefaultConstant
	}

	commandDetails := execshell.CommandDetails{
		Arguments: []string{
			repoSubcommandConstant,
			listSubcommandConstant,
			ownerIdentifier,
			jsonFlagConstant,
			repoListJSONFieldsConstant,
			limitFlagConstant,
			strconv.Itoa(repositoryLimit),
		},
	}

	executionResult, executionError := client.executor.ExecuteGitHubCLI(executionContext, commandDetails)
	if executionError != nil {
		return nil, OperationError{Operation: listRepositoriesOperationNameConstant, Cause: executionError}
	}

	var response []struct {
		Name string `json:"name"`
	}

	decodingError := json.Unmarshal([]byte(executionResult.StandardOutput), &response)
	if decodingError != nil {
		return nil, ResponseDecodingError{Operation: listRepositoriesOperationNameConstant, Cause: decodingError}
	}

	repositoryNames := make([]string, 0, len(response))
	for _, repositoryEntry := range response {
		repositoryNames = append(repositoryNames, repositoryEntry.Name)
	}

	return repositoryNames, nil
}

// ViewRepository retrieves metadata for a repository using gh repo view.
func (client *Client) ViewRepository(executionContext context.Context, owner string, repository string) (RepositoryView, error) {
	ownerIdentifier, repositoryIdentifier, validationError := client.requireOwnerRepository(owner, repository)
	if validationError != nil {
		return RepositoryView{}, validationError
	}

	commandDetails := execshell.CommandDetails{
		Arguments: []string{
			repoSubcommandConstant,
			viewSubcommandConstant,
			ownerIdentifier + "/" + repositoryIdentifier,
			jsonFlagConstant,
			repoViewJSONFieldsConstant,
		},
	}

	executionResult, executionError := client.executor.ExecuteGitHubCLI(executionContext, commandDetails)
	if executionError != nil {
		return RepositoryView{}, OperationError{Operation: viewRepositoryOperationNameConstant, Cause: executionError}
	}

	var response struct {
		Name            string `json:"name"`
		Description     string `json:"description"`
		PrimaryLanguage *struct {
			Name string `json:"name"`
		} `json:"primaryLanguage"`
		DefaultBranchRef *struct {
			Name string `json:"name"`
		} `json:"defaultBranchRef"`
	}

	decodingError := json.Unmarshal([]byte(executionResult.StandardOutput), &response)
	if decodingError != nil {
		return RepositoryView{}, ResponseDecodingError{Operation: viewRepositoryOperationNameConstant, Cause: decodingError}
	}

	repositoryView := RepositoryView{
		Name:        response.Name,
		Description: response.Description,
	}
	if response.PrimaryLanguage != nil {
		repositoryView.PrimaryLanguage = response.PrimaryLanguage.Name
	}
	if response.DefaultBranchRef != nil {
		repositoryView.DefaultBranch = response.DefaultBranchRef.Name
	}

	return repositoryView, nil
}

// ListBranchTree lists the non-recursive Git tree for a reference using gh api.
func (client *Client) ListBranchTree(executionContext context.Context, owner string, repository string, reference string) ([]TreeEntry, error) {
	ownerIdentifier, repositoryIdentifier, validationError := client.requireOwnerRepository(owner, repository)
	if validationError != nil {
		return nil, validationError
	}

	treeReference := strings.TrimSpace(reference)
	if len(treeReference) == 0 {
		return nil, InvalidInputError{FieldName: referenceFieldNameConstant, Message: requiredValueMessageConstant}
	}

	endpoint := fmt.Sprintf(treesReadEndpointTemplateConstant, ownerIdentifier, repositoryIdentifier, treeReference)
	executionResult, executionError := client.executor.ExecuteGitHubCLI(executionContext, execshell.CommandDetails{
		Arguments: []string{apiSubcommandConstant, endpoint},
	})
	if executionError != nil {
		return nil, OperationError{Operation: listBranchTreeOperationNameConstant, Cause: executionError}
	}

	var response struct {
		Tree []struct {
			Path string `json:"path"`
			Type string `json:"type"`
		} `json:"tree"`
	}

	decodingError := json.Unmarshal([]byte(executionResult.StandardOutput), &response)
	if decodingError != nil {
		return nil, ResponseDecodingError{Operation: listBranchTreeOperationNameConstant, Cause: decodingError}
	}

	treeEntries := make([]TreeEntry, 0, len(response.Tree))
	for _, responseEntry := range response.Tree {
		treeEntries = append(treeEntries, TreeEntry{Path: responseEntry.Path, Type: responseEntry.Type})
	}

	return treeEntries, nil
}

// ResolveBranchTip resolves the commit SHA at the tip of a branch.
func (client *Client) ResolveBranchTip(executionContext context.Context, owner string, repository string, branch string) (string, error) {
	ownerIdentifier, repositoryIdentifier, validationError := client.requireOwnerRepository(owner, repository)
	if validationError != nil {
		return "", validationError
	}

	branchName := strings.TrimSpace(branch)
	if len(branchName) == 0 {
		return "", InvalidInputError{FieldName: branchFieldNameConstant, Message: requiredValueMessageConstant}
	}

	endpoint := fmt.Sprintf(branchTipEndpointTemplateConstant, ownerIdentifier, repositoryIdentifier, branchName)
	executionResult, executionError := client.executor.ExecuteGitHubCLI(executionContext, execshell.CommandDetails{
		Arguments: []string{apiSubcommandConstant, endpoint},
	})
	if executionError != nil {
		return "", OperationError{Operation: resolveBranchTipOperationNameConstant, Cause: executionError}
	}

	var response struct {
		Object struct {
			SHA string `json:"sha"`
		} `json:"object"`
	}

	decodingError := json.Unmarshal([]byte(executionResult.StandardOutput), &response)
	if decodingError != nil {
		return "", ResponseDecodingError{Operation: resolveBranchTipOperationNameConstant, Cause: decodingError}
	}

	return response.Object.SHA, nil
}

// ResolveCommitTree resolves the tree SHA referenced by a commit.
func (client *Client) ResolveCommitTree(executionContext context.Context, owner string, repository string, commitSHA string) (string, error) {
	ownerIdentifier, repositoryIdentifier, validationError := client.requireOwnerRepository(owner, repository)
	if validationError != nil {
		return "", validationError
	}

	commitIdentifier := strings.TrimSpace(commitSHA)
	if len(commitIdentifier) == 0 {
		return "", InvalidInputError{FieldName: commitFieldNameConstant, Message: requiredValueMessageConstant}
	}

	endpoint := fmt.Sprintf(commitReadEndpointTemplate, ownerIdentifier, repositoryIdentifier, commitIdentifier)
	executionResult, executionError := client.executor.ExecuteGitHubCLI(executionContext, execshell.CommandDetails{
		Arguments: []string{apiSubcommandConstant, endpoint},
	})
	if executionError != nil {
		return "", OperationError{Operation: resolveCommitTreeOperationNameConstant, Cause: executionError}
	}

	var response struct {
		Tree struct {
			SHA string `json:"sha"`
		} `json:"tree"`
	}

	decodingError := json.Unmarshal([]byte(executionResult.StandardOutput), &response)
	if decodingError != nil {
		return "", ResponseDecodingError{Operation: resolveCommitTreeOperationNameConstant, Cause: decodingError}
	}

	return response.Tree.SHA, nil
}

// CreateBlob uploads file content as a base64-encoded blob and returns its SHA.
func (client *Client) CreateBlob(executionContext context.Context, owner string, repository string, content string) (string, error) {
	ownerIdentifier, repositoryIdentifier, validationError := client.requireOwnerRepository(owner, repository)
	if validationError != nil {
		return "", validationError
	}

	payload := struct {
		Content  string `json:"content"`
		Encoding string `json:"encoding"`
	}{
		Content:  base64.StdEncoding.EncodeToString([]byte(content)),
		Encoding: blobEncodingBase64Constant,
	}

	endpoint := fmt.Sprintf(blobsEndpointTemplateConstant, ownerIdentifier, repositoryIdentifier)
	return client.postForSHA(executionContext, createBlobOperationNameConstant, endpoint, payload)
}

// CreateTree creates a tree layered on top of a base tree and returns its SHA.
func (client *Client) CreateTree(executionContext context.Context, owner string, repository string, baseTreeSHA string, entries []TreeFileEntry) (string, error) {
	ownerIdentifier, repositoryIdentifier, validationError := client.requireOwnerRepository(owner, repository)
	if validationError != nil {
		return "", validationError
	}

	if len(entries) == 0 {
		return "", InvalidInputError{FieldName: entriesFieldNameConstant, Message: requiredValueMessageConstant}
	}

	type treePayloadEntry struct {
		Path string `json:"path"`
		Mode string `json:"mode"`
		Type string `json:"type"`
		SHA  string `json:"sha"`
	}

	payload := struct {
		BaseTree string             `json:"base_tree,omitempty"`
		Tree     []treePayloadEntry `json:"tree"`
	}{
		BaseTree: strings.TrimSpace(baseTreeSHA),
	}

	for _, fileEntry := range entries {
		payload.Tree = append(payload.Tree, treePayloadEntry{
			Path: fileEntry.Path,
			Mode: blobFileModeConstant,
			Type: blobEntryTypeConstant,
			SHA:  fileEntry.BlobSHA,
		})
	}

	endpoint := fmt.Sprintf(treesWriteEndpointTemplateConstant, ownerIdentifier, repositoryIdentifier)
	return client.postForSHA(executionContext, createTreeOperationNameConstant, endpoint, payload)
}

// CreateCommit creates a commit pointing at a tree and returns the commit SHA.
func (client *Client) CreateCommit(executionContext context.Context, owner string, repository string, message string, treeSHA string, parentSHAs []string) (string, error) {
	ownerIdentifier, repositoryIdentifier, validationError := client.requireOwnerRepository(owner, repository)
	if validationError != nil {
		return "", validationError
	}

	commitMessage := strings.TrimSpace(message)
	if len(commitMessage) == 0 {
		return "", InvalidInputError{FieldName: messageFieldNameConstant, Message: requiredValueMessageConstant}
	}

	commitTree := strings.TrimSpace(treeSHA)
	if len(commitTree) == 0 {
		return "", InvalidInputError{FieldName: treeFieldNameConstant, Message: requiredValueMessageConstant}
	}

	payload := struct {
		Message string   `json:"message"`
		Tree    string   `json:"tree"`
		Parents []string `json:"parents"`
	}{
		Message: commitMessage,
		Tree:    commitTree,
		Parents: parentSHAs,
	}

	endpoint := fmt.Sprintf(commitWriteEndpointTemplate, ownerIdentifier, repositoryIdentifier)
	return client.postForSHA(executionContext, createCommitOperationNameConstant, endpoint, payload)
}

// CreateBranchRef creates a new branch reference pointing at the supplied commit.
func (client *Client) CreateBranchRef(executionContext context.Context, owner string, repository string, branch string, commitSHA string) error {
	ownerIdentifier, repositoryIdentifier, validationError := client.requireOwnerRepository(owner, repository)
	if validationError != nil {
		return validationError
	}

	branchName := strings.TrimSpace(branch)
	if len(branchName) == 0 {
		return InvalidInputError{FieldName: branchFieldNameConstant, Message: requiredValueMessageConstant}
	}

	commitIdentifier := strings.TrimSpace(commitSHA)
	if len(commitIdentifier) == 0 {
		return InvalidInputError{FieldName: commitFieldNameConstant, Message: requiredValueMessageConstant}
	}

	payload := struct {
		Ref string `json:"ref"`
		SHA string `json:"sha"`
	}{
		Ref: branchReferencePrefixConstant + branchName,
		SHA: commitIdentifier,
	}

	endpoint := fmt.Sprintf(branchRefsEndpointTemplateConstant, ownerIdentifier, repositoryIdentifier)
	return client.writeWithoutResponse(executionContext, createBranchRefOperationNameConstant, endpoint, httpMethodPostConstant, payload)
}

// UpdateBranchRef moves an existing branch reference to the supplied commit.
func (client *Client) UpdateBranchRef(executionContext context.Context, owner string, repository string, branch string, commitSHA string) error {
	ownerIdentifier, repositoryIdentifier, validationError := client.requireOwnerRepository(owner, repository)
	if validationError != nil {
		return validationError
	}

	branchName := strings.TrimSpace(branch)
	if len(branchName) == 0 {
		return InvalidInputError{FieldName: branchFieldNameConstant, Message: requiredValueMessageConstant}
	}

	commitIdentifier := strings.TrimSpace(commitSHA)
	if len(commitIdentifier) == 0 {
		return InvalidInputError{FieldName: commitFieldNameConstant, Message: requiredValueMessageConstant}
	}

	payload := struct {
		SHA   string `json:"sha"`
		Force bool   `json:"force"`
	}{
		SHA:   commitIdentifier,
		Force: false,
	}

	endpoint := fmt.Sprintf(refUpdateEndpointTemplateConstant, ownerIdentifier, repositoryIdentifier, branchName)
	return client.writeWithoutResponse(executionContext, updateBranchRefOperationNameConstant, endpoint, httpMethodPatchConstant, payload)
}

func (client *Client) requireOwnerRepository(owner string, repository string) (string, string, error) {
	ownerIdentifier := strings.TrimSpace(owner)
	if len(ownerIdentifier) == 0 {
		return "", "", InvalidInputError{FieldName: ownerFieldNameConstant, Message: requiredValueMessageConstant}
	}

	repositoryIdentifier := strings.TrimSpace(repository)
	if len(repositoryIdentifier) == 0 {
		return "", "", InvalidInputError{FieldName: repositoryFieldNameConstant, Message: requiredValueMessageConstant}
	}

	return ownerIdentifier, repositoryIdentifier, nil
}

func (client *Client) postForSHA(executionContext context.Context, operation OperationName, endpoint string, payload any) (string, error) {
	payloadBytes, encodingError := json.Marshal(payload)
	if encodingError != nil {
		return "", PayloadEncodingError{Operation: operation, Cause: encodingError}
	}

	commandDetails := execshell.CommandDetails{
		Arguments: []string{
			apiSubcommandConstant,
			endpoint,
			methodFlagConstant,
			httpMethodPostConstant,
			inputFlagConstant,
			stdinReferenceConstant,
			acceptHeaderFlagConstant,
			acceptHeaderValueConstant,
		},
		StandardInput: payloadBytes,
	}

	executionResult, executionError := client.executor.ExecuteGitHubCLI(executionContext, commandDetails)
	if executionError != nil {
		return "", OperationError{Operation: operation, Cause: executionError}
	}

	var response struct {
		SHA string `json:"sha"`
	}

	decodingError := json.Unmarshal([]byte(executionResult.StandardOutput), &response)
	if decodingError != nil {
		return "", ResponseDecodingError{Operation: operation, Cause: decodingError}
	}

	return response.SHA, nil
}

func (client *Client) writeWithoutResponse(executionContext context.Context, operation OperationName, endpoint string, method string, payload any) error {
	payloadBytes, encodingError := json.Marshal(payload)
	if encodingError != nil {
		return PayloadEncodingError{Operation: operation, Cause: encodingError}
	}

	commandDetails := execshell.CommandDetails{
		Arguments: []string{
			apiSubcommandConstant,
			endpoint,
			methodFlagConstant,
			method,
			inputFlagConstant,
			stdinReferenceConstant,
			acceptHeaderFlagConstant,
			acceptHeaderValueConstant,
		},
		StandardInput: payloadBytes,
	}

	_, executionError := client.executor.ExecuteGitHubCLI(executionContext, commandDetails)
	if executionError != nil {
		return OperationError{Operation: operation, Cause: executionError}
	}

	return nil
}
