package enrichment_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/seedworks/enrich/internal/enrichment"
)

const (
	testScanOwnerConstant                  = "octocat"
	testScanNoFilterCaseNameConstant       = "no_filter"
	testScanFilterCaseNameConstant         = "substring_filter"
	testScanEmptyMatchCaseNameConstant     = "filter_without_matches"
	testScanListerFailureCaseNameConstant  = "lister_failure"
	testScanInvalidPatternCaseNameConstant = "invalid_pattern"
)

type stubRepositoryLister struct {
	repositoryNames []string
	listError       error
	recordedLimits  []int
}

func (lister *stubRepositoryLister) ListRepositories(executionContext context.Context, owner string, limit int) ([]string, error) {
	lister.recordedLimits = append(lister.recordedLimits, limit)
	if lister.listError != nil {
		return nil, lister.listError
	}
	return lister.repositoryNames, nil
}

func TestScannerValidation(testInstance *testing.T) {
	lister := &stubRepositoryLister{}

	scanner, creationError := enrichment.NewScanner(nil, lister)
	require.Nil(testInstance, scanner)
	require.Error(testInstance, creationError)

	scanner, creationError = enrichment.NewScanner(zap.NewNop(), nil)
	require.Nil(testInstance, scanner)
	require.Error(testInstance, creationError)
}

func TestScannerScan(testInstance *testing.T) {
	testCases := []struct {
		name          string
		repositories  []string
		filterPattern string
		listError     error
		expectedNames []string
		expectError   bool
		expectWarning bool
	}{
		{
			name:          testScanNoFilterCaseNameConstant,
			repositories:  []string{"alpha", "beta", "gamma"},
			expectedNames: []string{"alpha", "beta", "gamma"},
		},
		{
			name:          testScanFilterCaseNameConstant,
			repositories:  []string{"service-a", "library", "service-b"},
			filterPattern: "service",
			expectedNames: []string{"service-a", "service-b"},
		},
		{
			name:          testScanEmptyMatchCaseNameConstant,
			repositories:  []string{"alpha", "beta"},
			filterPattern: "zzz",
			expectedNames: []string{},
		},
		{
			name:          testScanListerFailureCaseNameConstant,
			listError:     errors.New("gh unavailable"),
			expectedNames: []string{},
			expectWarning: true,
		},
		{
			name:          testScanInvalidPatternCaseNameConstant,
			repositories:  []string{"alpha"},
			filterPattern: "[invalid",
			expectError:   true,
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			observerCore, observedLogs := observer.New(zap.DebugLevel)
			logger := zap.New(observerCore)

			lister := &stubRepositoryLister{
				repositoryNames: testCase.repositories,
				listError:       testCase.listError,
			}

			scanner, creationError := enrichment.NewScanner(logger, lister)
			require.NoError(testInstance, creationError)

			scannedNames, scanError := scanner.Scan(context.Background(), testScanOwnerConstant, testCase.filterPattern, 1000)

			if testCase.expectError {
				require.Error(testInstance, scanError)
				return
			}

			require.NoError(testInstance, scanError)
			require.Equal(testInstance, testCase.expectedNames, scannedNames)

			if testCase.expectWarning {
				require.Equal(testInstance, 1, observedLogs.FilterLevelExact(zap.WarnLevel).Len())
			} else {
				require.Equal(testInstance, 0, observedLogs.FilterLevelExact(zap.WarnLevel).Len())
			}
		})
	}
}

func TestScannerPassesLimitThrough(testInstance *testing.T) {
	lister := &stubRepositoryLister{repositoryNames: []string{"alpha"}}
	scanner, creationError := enrichment.NewScanner(zap.NewNop(), lister)
	require.NoError(testInstance, creationError)

	_, scanError := scanner.Scan(context.Background(), testScanOwnerConstant, "", 250)
	require.NoError(testInstance, scanError)
	require.Equal(testInstance, []int{250}, lister.recordedLimits)
}
