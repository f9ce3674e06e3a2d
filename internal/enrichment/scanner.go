package enrichment

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"go.uber.org/zap"
)

const (
	scannerLoggerMissingMessageConstant   = "repository scanner requires a logger"
	scannerListerMissingMessageConstant   = "repository scanner requires a repository lister"
	scannerFilterErrorTemplateConstant    = "compile repository filter %q: %w"
	scannerFailureLogMessageConstant      = "Repository scan failed"
	scannerOwnerLogFieldNameConstant      = "owner"
	scannerErrorLogFieldNameConstant      = "error"
)

var (
	errScannerLoggerMissing = errors.New(scannerLoggerMissingMessageConstant)
	errScannerListerMissing = errors.New(scannerListerMissingMessageConstant)
)

// RepositoryLister enumerates repository names owned by an account.
type RepositoryLister interface {
	ListRepositories(executionContext context.Context, owner string, limit int) ([]string, error)
}

// Scanner discovers repositories for an owner with optional name filtering.
type Scanner struct {
	logger *zap.Logger
	lister RepositoryLister
}

// NewScanner constructs a Scanner from its dependencies.
func NewScanner(logger *zap.Logger, lister RepositoryLister) (*Scanner, error) {
	if logger == nil {
		return nil, errScannerLoggerMissing
	}
	if lister == nil {
		return nil, errScannerListerMissing
	}
	return &Scanner{logger: logger, lister: lister}, nil
}

// Scan lists repository names for the owner, keeping input order and retaining
// only names the filter pattern matches. A listing failure is logged and yields
// an empty slice rather than an error; an invalid filter pattern is an error.
func (scanner *Scanner) Scan(executionContext context.Context, owner string, filterPattern string, limit int) ([]string, error) {
	var compiledFilter *regexp.Regexp
	if len(filterPattern) > 0 {
		var compileError error
		compiledFilter, compileError = regexp.Compile(filterPattern)
		if compileError != nil {
			return nil, fmt.Errorf(scannerFilterErrorTemplateConstant, filterPattern, compileError)
		}
	}

	repositoryNames, listError := scanner.lister.ListRepositories(executionContext, owner, limit)
	if listError != nil {
		scanner.logger.Warn(scannerFailureLogMessageConstant,
			zap.String(scannerOwnerLogFieldNameConstant, owner),
			zap.String(scannerErrorLogFieldNameConstant, listError.Error()),
		)
		return []string{}, nil
	}

	if compiledFilter == nil {
		return repositoryNames, nil
	}

	filteredNames := make([]string, 0, len(repositoryNames))
	for _, repositoryName := range repositoryNames {
		if compiledFilter.MatchString(repositoryName) {
			filteredNames = append(filteredNames, repositoryName)
		}
	}

	return filteredNames, nil
}
