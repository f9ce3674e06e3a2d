package enrichment

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/seedworks/enrich/internal/execshell"
	"github.com/seedworks/enrich/internal/githubauth"
	"github.com/seedworks/enrich/internal/githubcli"
	"github.com/seedworks/enrich/internal/packages"
	"github.com/seedworks/enrich/internal/ui"
	"github.com/seedworks/enrich/internal/utils"
)

const (
	commandUseConstant                    = "enrich"
	commandShortDescriptionConstant       = "Deploy an enrichment package to one or more GitHub repositories"
	commandLongDescriptionConstant        = "enrich scans GitHub accounts, analyzes repositories, and deploys a named package of files to each target repository on a dedicated feature branch."
	commandExecutionErrorTemplateConstant = "enrichment failed: %w"
	unexpectedArgumentsMessageConstant    = "enrich does not accept positional arguments"
	missingTokenMessageConstant           = "GitHub token required (set GH_TOKEN, GITHUB_TOKEN, or GITHUB_API_TOKEN)"
	missingRepositoriesMessageConstant    = "--repos is required unless --scan is set"
	missingPackageMessageConstant         = "--package is required unless --scan is set"
	deploymentsFailedMessageConstant      = "one or more deployments failed"
	invalidPackageTemplateConstant        = "invalid --package value: %w (known types: %s)"
	flagOwnerNameConstant                 = "owner"
	flagOwnerDescriptionConstant          = "GitHub owner (username or organization)"
	flagReposNameConstant                 = "repos"
	flagReposDescriptionConstant          = "Comma-separated list of target repositories"
	flagPackageNameConstant               = "package"
	flagPackageDescriptionConstant        = "Enrichment package type"
	flagScanNameConstant                  = "scan"
	flagScanDescriptionConstant           = "List repositories for the owner and exit"
	flagFilterNameConstant                = "filter"
	flagFilterDescriptionConstant         = "Regular expression retaining matching repository names during scans"
	scanResultTemplateConstant            = "\nFound %d repositories\n"
	scanEntryTemplateConstant             = "  - %s\n"
	repositoryListSeparatorConstant       = ","
)

var (
	errUnexpectedArguments  = errors.New(unexpectedArgumentsMessageConstant)
	errMissingToken         = errors.New(missingTokenMessageConstant)
	errMissingRepositories  = errors.New(missingRepositoriesMessageConstant)
	errMissingPackage       = errors.New(missingPackageMessageConstant)
	// ErrDeploymentsFailed reports a batch in which at least one repository failed.
	ErrDeploymentsFailed = errors.New(deploymentsFailedMessageConstant)
)

// LoggerProvider supplies a zap logger instance.
type LoggerProvider func() *zap.Logger

// ConfigurationProvider supplies enrichment configuration values.
type ConfigurationProvider func() CommandConfiguration

// HumanReadableLoggingProvider reports whether console logging is enabled.
type HumanReadableLoggingProvider func() bool

// CommandOptions captures parsed flag values for one invocation.
type CommandOptions struct {
	Owner        string
	Repositories []string
	PackageType  packages.PackageType
	ScanOnly     bool
	Filter       string
}

// CommandBuilder assembles the Cobra command for repository enrichment.
type CommandBuilder struct {
	LoggerProvider               LoggerProvider
	ConfigurationProvider        ConfigurationProvider
	HumanReadableLoggingProvider HumanReadableLoggingProvider
	RepositoryLister             RepositoryLister
	MetadataResolver             MetadataResolver
	GitDataClient                GitDataClient
	ContentSource                packages.ContentSource
	EnvironmentTokens            map[string]string
	OutputWriter                 io.Writer
	Clock                        Clock
}

// Build constructs the enrich command.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   commandUseConstant,
		Short: commandShortDescriptionConstant,
		Long:  commandLongDescriptionConstant,
		RunE:  builder.run,
	}

	command.Flags().String(flagOwnerNameConstant, "", flagOwnerDescriptionConstant)
	command.Flags().String(flagReposNameConstant, "", flagReposDescriptionConstant)
	command.Flags().String(flagPackageNameConstant, "", flagPackageDescriptionConstant)
	command.Flags().Bool(flagScanNameConstant, false, flagScanDescriptionConstant)
	command.Flags().String(flagFilterNameConstant, "", flagFilterDescriptionConstant)

	if markError := command.MarkFlagRequired(flagOwnerNameConstant); markError != nil {
		return nil, markError
	}

	return command, nil
}

func (builder *CommandBuilder) run(command *cobra.Command, arguments []string) error {
	if len(arguments) > 0 {
		return errUnexpectedArguments
	}

	options, optionsError := builder.parseOptions(command)
	if optionsError != nil {
		return optionsError
	}

	if _, tokenFound := githubauth.ResolveToken(builder.EnvironmentTokens); !tokenFound {
		return errMissingToken
	}

	logger := builder.resolveLogger()
	configuration := builder.resolveConfiguration()
	outputWriter := builder.resolveOutputWriter()

	lister, resolver, gitDataClient, dependencyError := builder.resolveClients(logger)
	if dependencyError != nil {
		return dependencyError
	}

	if options.ScanOnly {
		return builder.runScan(command, logger, lister, outputWriter, options, configuration)
	}

	contentSource := builder.ContentSource
	if contentSource == nil {
		contentSource = packages.NewEmbeddedContentSource()
	}
	packageBuilder, builderError := packages.NewBuilder(contentSource)
	if builderError != nil {
		return builderError
	}

	analyzer, analyzerError := NewAnalyzer(logger, resolver)
	if analyzerError != nil {
		return analyzerError
	}

	deployer, deployerError := NewDeployer(logger, gitDataClient, builder.Clock, configuration.Host)
	if deployerError != nil {
		return deployerError
	}

	engine, engineError := NewEngine(logger, packageBuilder, analyzer, deployer, outputWriter)
	if engineError != nil {
		return engineError
	}

	results, enrichmentError := engine.EnrichRepositories(command.Context(), options.Owner, options.Repositories, options.PackageType)
	if enrichmentError != nil {
		return fmt.Errorf(commandExecutionErrorTemplateConstant, enrichmentError)
	}

	for _, result := range results {
		if !result.Success {
			return ErrDeploymentsFailed
		}
	}

	return nil
}

func (builder *CommandBuilder) runScan(command *cobra.Command, logger *zap.Logger, lister RepositoryLister, outputWriter io.Writer, options CommandOptions, configuration CommandConfiguration) error {
	scanner, scannerError := NewScanner(logger, lister)
	if scannerError != nil {
		return scannerError
	}

	repositoryNames, scanError := scanner.Scan(command.Context(), options.Owner, options.Filter, configuration.RepositoryLimit)
	if scanError != nil {
		return scanError
	}

	fmt.Fprintf(outputWriter, scanResultTemplateConstant, len(repositoryNames))
	for _, repositoryName := range repositoryNames {
		fmt.Fprintf(outputWriter, scanEntryTemplateConstant, repositoryName)
	}

	return nil
}

func (builder *CommandBuilder) parseOptions(command *cobra.Command) (CommandOptions, error) {
	ownerValue, _ := command.Flags().GetString(flagOwnerNameConstant)
	scanValue, _ := command.Flags().GetBool(flagScanNameConstant)
	filterValue, _ := command.Flags().GetString(flagFilterNameConstant)

	options := CommandOptions{
		Owner:    strings.TrimSpace(ownerValue),
		ScanOnly: scanValue,
		Filter:   strings.TrimSpace(filterValue),
	}

	if len(options.Filter) == 0 {
		options.Filter = builder.resolveConfiguration().Filter
	}

	if options.ScanOnly {
		return options, nil
	}

	reposValue, _ := command.Flags().GetString(flagReposNameConstant)
	options.Repositories = splitRepositoryList(reposValue)
	if len(options.Repositories) == 0 {
		return CommandOptions{}, errMissingRepositories
	}

	packageValue, _ := command.Flags().GetString(flagPackageNameConstant)
	if len(strings.TrimSpace(packageValue)) == 0 {
		return CommandOptions{}, errMissingPackage
	}

	packageType, packageError := packages.ParsePackageType(packageValue)
	if packageError != nil {
		return CommandOptions{}, fmt.Errorf(invalidPackageTemplateConstant, packageError, packages.DescribeKnownPackageTypes())
	}
	options.PackageType = packageType

	return options, nil
}

func (builder *CommandBuilder) resolveLogger() *zap.Logger {
	if builder.LoggerProvider == nil {
		return zap.NewNop()
	}

	logger := builder.LoggerProvider()
	if logger == nil {
		return zap.NewNop()
	}

	return logger
}

func (builder *CommandBuilder) resolveConfiguration() CommandConfiguration {
	if builder.ConfigurationProvider == nil {
		return DefaultCommandConfiguration()
	}
	return builder.ConfigurationProvider().sanitize()
}

func (builder *CommandBuilder) resolveOutputWriter() io.Writer {
	if builder.OutputWriter != nil {
		return builder.OutputWriter
	}
	return utils.NewFlushingWriter(os.Stdout)
}

func (builder *CommandBuilder) resolveClients(logger *zap.Logger) (RepositoryLister, MetadataResolver, GitDataClient, error) {
	if builder.RepositoryLister != nil && builder.MetadataResolver != nil && builder.GitDataClient != nil {
		return builder.RepositoryLister, builder.MetadataResolver, builder.GitDataClient, nil
	}

	humanReadableLogging := builder.HumanReadableLoggingProvider != nil && builder.HumanReadableLoggingProvider()

	commandRunner := execshell.NewOSCommandRunner()
	shellExecutor, executorError := execshell.NewShellExecutor(logger, commandRunner, humanReadableLogging)
	if executorError != nil {
		return nil, nil, nil, executorError
	}
	if humanReadableLogging {
		shellExecutor.SetCommandEventObserver(ui.NewConsoleCommandEventLogger(logger))
	}

	client, clientError := githubcli.NewClient(shellExecutor)
	if clientError != nil {
		return nil, nil, nil, clientError
	}

	lister := builder.RepositoryLister
	if lister == nil {
		lister = client
	}
	resolver := builder.MetadataResolver
	if resolver == nil {
		resolver = client
	}
	gitDataClient := builder.GitDataClient
	if gitDataClient == nil {
		gitDataClient = client
	}

	return lister, resolver, gitDataClient, nil
}

func splitRepositoryList(rawValue string) []string {
	rawEntries := strings.Split(rawValue, repositoryListSeparatorConstant)
	repositories := make([]string, 0, len(rawEntries))
	for _, rawEntry := range rawEntries {
		trimmedEntry := strings.TrimSpace(rawEntry)
		if len(trimmedEntry) == 0 {
			continue
		}
		repositories = append(repositories, trimmedEntry)
	}
	return repositories
}
