package enrichment

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/seedworks/enrich/internal/githubcli"
)

const (
	analyzerLoggerMissingMessageConstant   = "repository analyzer requires a logger"
	analyzerResolverMissingMessageConstant = "repository analyzer requires a metadata resolver"
	analyzerFallbackBranchNameConstant     = "main"
	analyzerTreeReferenceConstant          = "HEAD"
	analyzerTreeWarningMessageConstant     = "Repository tree listing failed"
	analyzerRepositoryLogFieldNameConstant = "repository"
	analyzerErrorLogFieldNameConstant      = "error"
)

var (
	errAnalyzerLoggerMissing   = errors.New(analyzerLoggerMissingMessageConstant)
	errAnalyzerResolverMissing = errors.New(analyzerResolverMissingMessageConstant)
)

// MetadataResolver retrieves repository metadata and top-level tree listings.
type MetadataResolver interface {
	ViewRepository(executionContext context.Context, owner string, repository string) (githubcli.RepositoryView, error)
	ListBranchTree(executionContext context.Context, owner string, repository string, reference string) ([]githubcli.TreeEntry, error)
}

// Analyzer inspects repository metadata and layout ahead of a deployment.
type Analyzer struct {
	logger   *zap.Logger
	resolver MetadataResolver
}

// NewAnalyzer constructs an Analyzer from its dependencies.
func NewAnalyzer(logger *zap.Logger, resolver MetadataResolver) (*Analyzer, error) {
	if logger == nil {
		return nil, errAnalyzerLoggerMissing
	}
	if resolver == nil {
		return nil, errAnalyzerResolverMissing
	}
	return &Analyzer{logger: logger, resolver: resolver}, nil
}

// Analyze resolves repository metadata and the top-level tree. Metadata
// failures are reported through the returned analysis' Err field; a tree
// listing failure degrades to an empty structure map with a warning.
func (analyzer *Analyzer) Analyze(executionContext context.Context, owner string, repository string) RepositoryAnalysis {
	repositoryView, viewError := analyzer.resolver.ViewRepository(executionContext, owner, repository)
	if viewError != nil {
		return RepositoryAnalysis{Name: repository, Err: viewError}
	}

	defaultBranch := repositoryView.DefaultBranch
	if len(defaultBranch) == 0 {
		defaultBranch = analyzerFallbackBranchNameConstant
	}

	repositoryStructure := map[string]string{}
	treeEntries, treeError := analyzer.resolver.ListBranchTree(executionContext, owner, repository, analyzerTreeReferenceConstant)
	if treeError != nil {
		analyzer.logger.Warn(analyzerTreeWarningMessageConstant,
			zap.String(analyzerRepositoryLogFieldNameConstant, repository),
			zap.String(analyzerErrorLogFieldNameConstant, treeError.Error()),
		)
	} else {
		for _, treeEntry := range treeEntries {
			repositoryStructure[treeEntry.Path] = treeEntry.Type
		}
	}

	return RepositoryAnalysis{
		Name:          repositoryView.Name,
		Description:   repositoryView.Description,
		Language:      repositoryView.PrimaryLanguage,
		DefaultBranch: defaultBranch,
		Structure:     repositoryStructure,
	}
}
