package enrichment

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"

	"github.com/seedworks/enrich/internal/packages"
)

const (
	engineLoggerMissingMessageConstant   = "enrichment engine requires a logger"
	engineBuilderMissingMessageConstant  = "enrichment engine requires a package builder"
	engineAnalyzerMissingMessageConstant = "enrichment engine requires an analyzer"
	engineDeployerMissingMessageConstant = "enrichment engine requires a deployer"
	engineWriterMissingMessageConstant   = "enrichment engine requires an output writer"
	engineBannerHeadingConstant          = "MULTI-REPO ENRICHMENT OPERATION"
	engineBannerOwnerTemplateConstant    = "Owner: %s\n"
	engineBannerReposTemplateConstant    = "Repositories: %s\n"
	engineBannerPackageTemplateConstant  = "Package: %s\n"
	enginePackageNameTemplateConstant    = "Package: %s\n"
	enginePackageDetailTemplateConstant  = "   %s\n"
	enginePackageFilesTemplateConstant   = "   Files: %d\n"
	engineRepositoryJoinSeparatorConst   = ", "
	engineFeatureBranchTemplateConstant  = "feature/%s-integration"
	engineAnalysisLogMessageConstant     = "Analyzing repository"
	engineRepositoryLogFieldNameConstant = "repository"
)

var (
	errEngineLoggerMissing   = errors.New(engineLoggerMissingMessageConstant)
	errEngineBuilderMissing  = errors.New(engineBuilderMissingMessageConstant)
	errEngineAnalyzerMissing = errors.New(engineAnalyzerMissingMessageConstant)
	errEngineDeployerMissing = errors.New(engineDeployerMissingMessageConstant)
	errEngineWriterMissing   = errors.New(engineWriterMissingMessageConstant)
)

// PackageBuilder assembles an enrichment package for a package type.
type PackageBuilder interface {
	Build(packageType packages.PackageType) (packages.EnrichmentPackage, error)
}

// RepositoryAnalyzer inspects a repository ahead of deployment.
type RepositoryAnalyzer interface {
	Analyze(executionContext context.Context, owner string, repository string) RepositoryAnalysis
}

// PackageDeployer writes a package to one repository.
type PackageDeployer interface {
	Deploy(executionContext context.Context, enrichmentPackage packages.EnrichmentPackage, deploymentConfig DeploymentConfig) DeploymentResult
}

// Engine orchestrates a batch enrichment run and owns the process-lifetime
// deployment history.
type Engine struct {
	logger       *zap.Logger
	builder      PackageBuilder
	analyzer     RepositoryAnalyzer
	deployer     PackageDeployer
	outputWriter io.Writer
	history      []DeploymentResult
}

// NewEngine constructs an Engine from its dependencies.
func NewEngine(logger *zap.Logger, builder PackageBuilder, analyzer RepositoryAnalyzer, deployer PackageDeployer, outputWriter io.Writer) (*Engine, error) {
	if logger == nil {
		return nil, errEngineLoggerMissing
	}
	if builder == nil {
		return nil, errEngineBuilderMissing
	}
	if analyzer == nil {
		return nil, errEngineAnalyzerMissing
	}
	if deployer == nil {
		return nil, errEngineDeployerMissing
	}
	if outputWriter == nil {
		return nil, errEngineWriterMissing
	}
	return &Engine{
		logger:       logger,
		builder:      builder,
		analyzer:     analyzer,
		deployer:     deployer,
		outputWriter: outputWriter,
	}, nil
}

// EnrichRepositories deploys the package identified by packageType to every
// repository in input order, one at a time. The returned slice holds exactly
// one result per input repository in matching order. Only an invalid package
// type fails the call before any deployment is attempted.
func (engine *Engine) EnrichRepositories(executionContext context.Context, owner string, repositories []string, packageType packages.PackageType) ([]DeploymentResult, error) {
	enrichmentPackage, buildError := engine.builder.Build(packageType)
	if buildError != nil {
		return nil, buildError
	}

	engine.writeBanner(owner, repositories, packageType, enrichmentPackage)

	results := make([]DeploymentResult, 0, len(repositories))
	for _, repository := range repositories {
		engine.logger.Info(engineAnalysisLogMessageConstant,
			zap.String(engineRepositoryLogFieldNameConstant, repository),
		)
		repositoryAnalysis := engine.analyzer.Analyze(executionContext, owner, repository)

		deploymentConfig := DeploymentConfig{
			RepositoryName: repository,
			Owner:          owner,
			TargetBranch:   engine.targetBranch(repositoryAnalysis),
			FeatureBranch:  fmt.Sprintf(engineFeatureBranchTemplateConstant, packageType),
		}

		deploymentResult := engine.deployer.Deploy(executionContext, enrichmentPackage, deploymentConfig)
		results = append(results, deploymentResult)
		engine.history = append(engine.history, deploymentResult)
	}

	WriteBatchSummary(engine.outputWriter, results)

	return results, nil
}

// History returns every result recorded since the engine was constructed.
func (engine *Engine) History() []DeploymentResult {
	historyCopy := make([]DeploymentResult, len(engine.history))
	copy(historyCopy, engine.history)
	return historyCopy
}

func (engine *Engine) targetBranch(repositoryAnalysis RepositoryAnalysis) string {
	if repositoryAnalysis.Err == nil && len(repositoryAnalysis.DefaultBranch) > 0 {
		return repositoryAnalysis.DefaultBranch
	}
	return analyzerFallbackBranchNameConstant
}

func (engine *Engine) writeBanner(owner string, repositories []string, packageType packages.PackageType, enrichmentPackage packages.EnrichmentPackage) {
	fmt.Fprintf(engine.outputWriter, "\n%s\n", summaryDividerConstant)
	fmt.Fprintf(engine.outputWriter, "%s\n", engineBannerHeadingConstant)
	fmt.Fprintf(engine.outputWriter, "%s\n", summaryDividerConstant)
	fmt.Fprintf(engine.outputWriter, engineBannerOwnerTemplateConstant, owner)
	fmt.Fprintf(engine.outputWriter, engineBannerReposTemplateConstant, strings.Join(repositories, engineRepositoryJoinSeparatorConst))
	fmt.Fprintf(engine.outputWriter, engineBannerPackageTemplateConstant, packageType)
	fmt.Fprintf(engine.outputWriter, "%s\n\n", summaryDividerConstant)

	fmt.Fprintf(engine.outputWriter, enginePackageNameTemplateConstant, enrichmentPackage.Name)
	fmt.Fprintf(engine.outputWriter, enginePackageDetailTemplateConstant, enrichmentPackage.Description)
	fmt.Fprintf(engine.outputWriter, enginePackageFilesTemplateConstant, enrichmentPackage.FileCount())
}
