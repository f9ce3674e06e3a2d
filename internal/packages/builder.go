package packages

import (
	"errors"
	"fmt"
)

const (
	builderManifestErrorTemplateConstant = "load manifest for package %s: %w"
	builderAssetErrorTemplateConstant    = "load asset %s for package %s: %w"
)

// ErrContentSourceNotConfigured reports a builder constructed without a content source.
var ErrContentSourceNotConfigured = errors.New("package content source not configured")

// ContentSource supplies manifest documents and asset content for package types.
type ContentSource interface {
	LoadManifest(packageType PackageType) ([]byte, error)
	LoadAsset(packageType PackageType, sourcePath string) (string, error)
}

// Builder assembles enrichment packages from a pluggable content source.
type Builder struct {
	contentSource ContentSource
}

// NewBuilder constructs a Builder backed by the provided content source.
func NewBuilder(contentSource ContentSource) (*Builder, error) {
	if contentSource == nil {
		return nil, ErrContentSourceNotConfigured
	}
	return &Builder{contentSource: contentSource}, nil
}

// Build resolves the package type against the content source and returns the
// fully populated bundle. Identical identifiers always yield identical bundles.
func (builder *Builder) Build(packageType PackageType) (EnrichmentPackage, error) {
	validatedType, validationError := ParsePackageType(string(packageType))
	if validationError != nil {
		return EnrichmentPackage{}, validationError
	}

	manifestContent, manifestLoadError := builder.contentSource.LoadManifest(validatedType)
	if manifestLoadError != nil {
		return EnrichmentPackage{}, fmt.Errorf(builderManifestErrorTemplateConstant, validatedType, manifestLoadError)
	}

	packageManifest, manifestParseError := ParseManifest(validatedType, manifestContent)
	if manifestParseError != nil {
		return EnrichmentPackage{}, manifestParseError
	}

	packageFiles := make(map[string]string, len(packageManifest.Files))
	for _, manifestFile := range packageManifest.Files {
		assetContent, assetLoadError := builder.contentSource.LoadAsset(validatedType, manifestFile.Source)
		if assetLoadError != nil {
			return EnrichmentPackage{}, fmt.Errorf(builderAssetErrorTemplateConstant, manifestFile.Source, validatedType, assetLoadError)
		}
		packageFiles[manifestFile.Destination] = assetContent
	}

	return EnrichmentPackage{
		Name:        packageManifest.Name,
		Description: packageManifest.Description,
		Version:     packageManifest.Version,
		Files:       packageFiles,
	}, nil
}
