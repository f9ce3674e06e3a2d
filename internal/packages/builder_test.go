package packages_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/seedworks/enrich/internal/packages"
)

const (
	testUnknownPackageTypeConstant            = "unknown-package"
	testLegalPackageCaseNameConstant          = "legal_doc_gundam"
	testTestingPackageCaseNameConstant        = "testing_suite"
	testManifestMissingNameCaseNameConstant   = "missing_name"
	testManifestNoFilesCaseNameConstant       = "no_files"
	testManifestDuplicateCaseNameConstant     = "duplicate_destination"
	testManifestDefaultVersionCaseNameConst   = "default_version"
)

type stubContentSource struct {
	manifests map[packages.PackageType][]byte
	assets    map[string]string
	loadError error
}

func (source *stubContentSource) LoadManifest(packageType packages.PackageType) ([]byte, error) {
	if source.loadError != nil {
		return nil, source.loadError
	}
	manifestContent, exists := source.manifests[packageType]
	if !exists {
		return nil, errors.New("manifest not found")
	}
	return manifestContent, nil
}

func (source *stubContentSource) LoadAsset(packageType packages.PackageType, sourcePath string) (string, error) {
	assetContent, exists := source.assets[sourcePath]
	if !exists {
		return "", errors.New("asset not found")
	}
	return assetContent, nil
}

func TestParsePackageType(testInstance *testing.T) {
	testCases := []struct {
		name         string
		rawValue     string
		expectedType packages.PackageType
		expectError  bool
	}{
		{name: testLegalPackageCaseNameConstant, rawValue: "legal-doc-gundam", expectedType: packages.PackageTypeLegalDocGundam},
		{name: testTestingPackageCaseNameConstant, rawValue: " testing-suite ", expectedType: packages.PackageTypeTestingSuite},
		{name: "unknown_identifier", rawValue: testUnknownPackageTypeConstant, expectError: true},
		{name: "empty_identifier", rawValue: "  ", expectError: true},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			packageType, parseError := packages.ParsePackageType(testCase.rawValue)
			if testCase.expectError {
				require.Error(testInstance, parseError)
				var unknownError *packages.UnknownPackageTypeError
				require.ErrorAs(testInstance, parseError, &unknownError)
				return
			}
			require.NoError(testInstance, parseError)
			require.Equal(testInstance, testCase.expectedType, packageType)
		})
	}
}

func TestBuilderRequiresContentSource(testInstance *testing.T) {
	builder, creationError := packages.NewBuilder(nil)
	require.Nil(testInstance, builder)
	require.ErrorIs(testInstance, creationError, packages.ErrContentSourceNotConfigured)
}

func TestBuilderRejectsUnknownPackageType(testInstance *testing.T) {
	builder, creationError := packages.NewBuilder(packages.NewEmbeddedContentSource())
	require.NoError(testInstance, creationError)

	enrichmentPackage, buildError := builder.Build(packages.PackageType(testUnknownPackageTypeConstant))
	require.Error(testInstance, buildError)
	var unknownError *packages.UnknownPackageTypeError
	require.ErrorAs(testInstance, buildError, &unknownError)
	require.Empty(testInstance, enrichmentPackage.Files)
}

func TestBuilderAssemblesEmbeddedPackages(testInstance *testing.T) {
	testCases := []struct {
		name          string
		packageType   packages.PackageType
		expectedPaths []string
	}{
		{
			name:        testLegalPackageCaseNameConstant,
			packageType: packages.PackageTypeLegalDocGundam,
			expectedPaths: []string{
				"core/evidence_aware_drafter.py",
				"core/jurisdiction_registry.py",
				"core/quality_suite.py",
				"core/multi_model_fileboss.py",
				"config/courts/hi_family.yaml",
				"config/courts/cand.yaml",
				"config/courts/ca9.yaml",
			},
		},
		{
			name:        testTestingPackageCaseNameConstant,
			packageType: packages.PackageTypeTestingSuite,
			expectedPaths: []string{
				"tests/test_smoke.py",
				"tests/conftest.py",
				"pytest.ini",
			},
		},
	}

	builder, creationError := packages.NewBuilder(packages.NewEmbeddedContentSource())
	require.NoError(testInstance, creationError)

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			enrichmentPackage, buildError := builder.Build(testCase.packageType)
			require.NoError(testInstance, buildError)
			require.NotEmpty(testInstance, enrichmentPackage.Name)
			require.NotEmpty(testInstance, enrichmentPackage.Description)
			require.NotEmpty(testInstance, enrichmentPackage.Version)
			require.Len(testInstance, enrichmentPackage.Files, len(testCase.expectedPaths))
			for _, expectedPath := range testCase.expectedPaths {
				require.Contains(testInstance, enrichmentPackage.Files, expectedPath)
				require.NotEmpty(testInstance, enrichmentPackage.Files[expectedPath])
			}
			require.Equal(testInstance, len(testCase.expectedPaths), enrichmentPackage.FileCount())
			require.Greater(testInstance, enrichmentPackage.LineCount(), 0)
		})
	}
}

func TestBuilderIsDeterministic(testInstance *testing.T) {
	builder, creationError := packages.NewBuilder(packages.NewEmbeddedContentSource())
	require.NoError(testInstance, creationError)

	firstBuild, firstError := builder.Build(packages.PackageTypeTestingSuite)
	require.NoError(testInstance, firstError)
	secondBuild, secondError := builder.Build(packages.PackageTypeTestingSuite)
	require.NoError(testInstance, secondError)

	require.Equal(testInstance, firstBuild, secondBuild)
}

func TestParseManifestValidation(testInstance *testing.T) {
	testCases := []struct {
		name            string
		manifestContent string
		expectError     bool
	}{
		{
			name:            testManifestMissingNameCaseNameConstant,
			manifestContent: "description: d\nfiles:\n  - source: a.py\n",
			expectError:     true,
		},
		{
			name:            testManifestNoFilesCaseNameConstant,
			manifestContent: "name: bundle\n",
			expectError:     true,
		},
		{
			name:            testManifestDuplicateCaseNameConstant,
			manifestContent: "name: bundle\nfiles:\n  - source: a.py\n    destination: lib/a.py\n  - source: b.py\n    destination: lib/a.py\n",
			expectError:     true,
		},
		{
			name:            testManifestDefaultVersionCaseNameConst,
			manifestContent: "name: bundle\nfiles:\n  - source: a.py\n",
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			parsedManifest, parseError := packages.ParseManifest(packages.PackageTypeTestingSuite, []byte(testCase.manifestContent))
			if testCase.expectError {
				require.Error(testInstance, parseError)
				return
			}
			require.NoError(testInstance, parseError)
			require.Equal(testInstance, "1.0.0", parsedManifest.Version)
		})
	}
}

func TestParseManifestDefaultsDestinationToSource(testInstance *testing.T) {
	parsedManifest, parseError := packages.ParseManifest(
		packages.PackageTypeTestingSuite,
		[]byte("name: bundle\nfiles:\n  - source: tests/a.py\n"),
	)
	require.NoError(testInstance, parseError)
	require.Equal(testInstance, "tests/a.py", parsedManifest.Files[0].Destination)
}

func TestBuilderWrapsContentSourceFailures(testInstance *testing.T) {
	contentSource := &stubContentSource{
		manifests: map[packages.PackageType][]byte{
			packages.PackageTypeTestingSuite: []byte("name: bundle\nfiles:\n  - source: missing.py\n"),
		},
		assets: map[string]string{},
	}

	builder, creationError := packages.NewBuilder(contentSource)
	require.NoError(testInstance, creationError)

	_, buildError := builder.Build(packages.PackageTypeTestingSuite)
	require.Error(testInstance, buildError)
	require.Contains(testInstance, buildError.Error(), "missing.py")
}
