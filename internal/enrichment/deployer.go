package enrichment

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/seedworks/enrich/internal/githubcli"
	"github.com/seedworks/enrich/internal/packages"
)

const (
	deployerLoggerMissingMessageConstant = "deployment executor requires a logger"
	deployerClientMissingMessageConstant = "deployment executor requires a git data client"
	deployerStartLogMessageConstant      = "Deploying package"
	deployerFileLogMessageConstant       = "Deploying file"
	deployerSuccessLogMessageConstant    = "Deployment succeeded"
	deployerFailureLogMessageConstant    = "Deployment failed"
	deployerRepositoryLogFieldName       = "repository"
	deployerPackageLogFieldNameConstant  = "package"
	deployerBranchLogFieldNameConstant   = "branch"
	deployerPathLogFieldNameConstant     = "path"
	deployerStageLogFieldNameConstant    = "stage"
	deployerErrorLogFieldNameConstant    = "error"
	deployerCommitMessageTemplate        = "Add %s enrichment package"
	deployerBranchURLTemplateConstant    = "https://%s/%s/%s/tree/%s"
	deployerPathSeparatorConstant        = "/"
)

var (
	errDeployerLoggerMissing = errors.New(deployerLoggerMissingMessageConstant)
	errDeployerClientMissing = errors.New(deployerClientMissingMessageConstant)
)

// GitDataClient covers the git data API operations a deployment performs.
type GitDataClient interface {
	ResolveBranchTip(executionContext context.Context, owner string, repository string, branch string) (string, error)
	CreateBranchRef(executionContext context.Context, owner string, repository string, branch string, commitSHA string) error
	ResolveCommitTree(executionContext context.Context, owner string, repository string, commitSHA string) (string, error)
	CreateBlob(executionContext context.Context, owner string, repository string, content string) (string, error)
	CreateTree(executionContext context.Context, owner string, repository string, baseTreeSHA string, entries []githubcli.TreeFileEntry) (string, error)
	CreateCommit(executionContext context.Context, owner string, repository string, message string, treeSHA string, parentSHAs []string) (string, error)
	UpdateBranchRef(executionContext context.Context, owner string, repository string, branch string, commitSHA string) error
}

// Deployer writes one enrichment package to one repository as a single commit
// on a freshly created feature branch.
type Deployer struct {
	logger *zap.Logger
	client GitDataClient
	clock  Clock
	host   string
}

// NewDeployer constructs a Deployer from its dependencies. A nil clock falls
// back to the system clock and an empty host falls back to github.com.
func NewDeployer(logger *zap.Logger, client GitDataClient, clock Clock, host string) (*Deployer, error) {
	if logger == nil {
		return nil, errDeployerLoggerMissing
	}
	if client == nil {
		return nil, errDeployerClientMissing
	}
	if clock == nil {
		clock = SystemClock{}
	}
	trimmedHost := strings.TrimSpace(host)
	if len(trimmedHost) == 0 {
		trimmedHost = defaultHostNameConstant
	}
	return &Deployer{logger: logger, client: client, clock: clock, host: trimmedHost}, nil
}

// Deploy performs the full write sequence: resolve the target branch tip,
// create the feature branch, upload blobs, layer a tree on the tip commit's
// tree, create one commit, and move the feature branch onto it. Any failure
// produces a failed result with zero counts and a tagged cause; Deploy never
// returns an error so one repository cannot abort a batch.
func (deployer *Deployer) Deploy(executionContext context.Context, enrichmentPackage packages.EnrichmentPackage, deploymentConfig DeploymentConfig) DeploymentResult {
	startTime := deployer.clock.Now()
	owner := deploymentConfig.Owner
	repository := deploymentConfig.RepositoryName

	deployer.logger.Info(deployerStartLogMessageConstant,
		zap.String(deployerRepositoryLogFieldName, repository),
		zap.String(deployerPackageLogFieldNameConstant, enrichmentPackage.Name),
		zap.String(deployerBranchLogFieldNameConstant, deploymentConfig.FeatureBranch),
	)

	tipCommitSHA, tipError := deployer.client.ResolveBranchTip(executionContext, owner, repository, deploymentConfig.TargetBranch)
	if tipError != nil {
		return deployer.failedResult(repository, startTime, FailureCategoryResolveBranchTip, tipError)
	}

	if branchError := deployer.client.CreateBranchRef(executionContext, owner, repository, deploymentConfig.FeatureBranch, tipCommitSHA); branchError != nil {
		return deployer.failedResult(repository, startTime, FailureCategoryCreateBranch, branchError)
	}

	baseTreeSHA, baseTreeError := deployer.client.ResolveCommitTree(executionContext, owner, repository, tipCommitSHA)
	if baseTreeError != nil {
		return deployer.failedResult(repository, startTime, FailureCategoryResolveCommitTree, baseTreeError)
	}

	destinationPaths := make([]string, 0, len(enrichmentPackage.Files))
	for destinationPath := range enrichmentPackage.Files {
		destinationPaths = append(destinationPaths, destinationPath)
	}
	sort.Strings(destinationPaths)

	treeEntries := make([]githubcli.TreeFileEntry, 0, len(destinationPaths))
	for _, destinationPath := range destinationPaths {
		remappedPath := remapPath(destinationPath, deploymentConfig.DirectoryStructure)
		deployer.logger.Debug(deployerFileLogMessageConstant,
			zap.String(deployerRepositoryLogFieldName, repository),
			zap.String(deployerPathLogFieldNameConstant, remappedPath),
		)

		blobSHA, blobError := deployer.client.CreateBlob(executionContext, owner, repository, enrichmentPackage.Files[destinationPath])
		if blobError != nil {
			return deployer.failedResult(repository, startTime, FailureCategoryCreateBlob, blobError)
		}
		treeEntries = append(treeEntries, githubcli.TreeFileEntry{Path: remappedPath, BlobSHA: blobSHA})
	}

	layeredTreeSHA, treeError := deployer.client.CreateTree(executionContext, owner, repository, baseTreeSHA, treeEntries)
	if treeError != nil {
		return deployer.failedResult(repository, startTime, FailureCategoryCreateTree, treeError)
	}

	commitMessage := fmt.Sprintf(deployerCommitMessageTemplate, enrichmentPackage.Name)
	deploymentCommitSHA, commitError := deployer.client.CreateCommit(executionContext, owner, repository, commitMessage, layeredTreeSHA, []string{tipCommitSHA})
	if commitError != nil {
		return deployer.failedResult(repository, startTime, FailureCategoryCreateCommit, commitError)
	}

	if updateError := deployer.client.UpdateBranchRef(executionContext, owner, repository, deploymentConfig.FeatureBranch, deploymentCommitSHA); updateError != nil {
		return deployer.failedResult(repository, startTime, FailureCategoryUpdateBranch, updateError)
	}

	executionSeconds := deployer.clock.Now().Sub(startTime).Seconds()
	successResult := DeploymentResult{
		Repository:       repository,
		Success:          true,
		FilesDeployed:    enrichmentPackage.FileCount(),
		LinesDeployed:    enrichmentPackage.LineCount(),
		BranchURL:        fmt.Sprintf(deployerBranchURLTemplateConstant, deployer.host, owner, repository, deploymentConfig.FeatureBranch),
		ExecutionSeconds: executionSeconds,
	}

	deployer.logger.Info(deployerSuccessLogMessageConstant,
		zap.String(deployerRepositoryLogFieldName, repository),
		zap.Int("files", successResult.FilesDeployed),
		zap.Int("lines", successResult.LinesDeployed),
		zap.Float64("seconds", successResult.ExecutionSeconds),
	)

	return successResult
}

func (deployer *Deployer) failedResult(repository string, startTime time.Time, category FailureCategory, failure error) DeploymentResult {
	executionSeconds := deployer.clock.Now().Sub(startTime).Seconds()

	deployer.logger.Error(deployerFailureLogMessageConstant,
		zap.String(deployerRepositoryLogFieldName, repository),
		zap.String(deployerStageLogFieldNameConstant, string(category)),
		zap.String(deployerErrorLogFieldNameConstant, failure.Error()),
	)

	return DeploymentResult{
		Repository:       repository,
		Success:          false,
		ExecutionSeconds: executionSeconds,
		Error:            failure.Error(),
		Cause:            &FailureCause{Category: category, Message: failure.Error()},
	}
}

// remapPath applies the configured directory-structure table: exact matches
// first, then a longest directory-prefix rewrite, identity otherwise.
func remapPath(destinationPath string, directoryStructure map[string]string) string {
	if len(directoryStructure) == 0 {
		return destinationPath
	}

	if mappedPath, exactMatch := directoryStructure[destinationPath]; exactMatch {
		return mappedPath
	}

	longestPrefix := ""
	remappedPath := destinationPath
	for sourcePrefix, targetPrefix := range directoryStructure {
		prefixWithSeparator := sourcePrefix + deployerPathSeparatorConstant
		if strings.HasPrefix(destinationPath, prefixWithSeparator) && len(sourcePrefix) > len(longestPrefix) {
			longestPrefix = sourcePrefix
			remappedPath = targetPrefix + deployerPathSeparatorConstant + strings.TrimPrefix(destinationPath, prefixWithSeparator)
		}
	}

	return remappedPath
}
