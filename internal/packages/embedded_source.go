package packages

import (
	"embed"
	"fmt"
	"path"
)

//go:embed assets
var embeddedAssets embed.FS

const (
	embeddedAssetsRootConstant          = "assets"
	embeddedManifestFileNameConstant    = "manifest.yaml"
	embeddedManifestErrorTemplateConst  = "read embedded manifest %s: %w"
	embeddedAssetErrorTemplateConstant  = "read embedded asset %s: %w"
)

// EmbeddedContentSource serves package manifests and assets compiled into the binary.
type EmbeddedContentSource struct{}

// NewEmbeddedContentSource constructs the default compiled-in content source.
func NewEmbeddedContentSource() EmbeddedContentSource {
	return EmbeddedContentSource{}
}

// LoadManifest reads the embedded manifest document for the package type.
func (contentSource EmbeddedContentSource) LoadManifest(packageType PackageType) ([]byte, error) {
	manifestPath := path.Join(embeddedAssetsRootConstant, string(packageType), embeddedManifestFileNameConstant)
	manifestContent, readError := embeddedAssets.ReadFile(manifestPath)
	if readError != nil {
		return nil, fmt.Errorf(embeddedManifestErrorTemplateConst, manifestPath, readError)
	}
	return manifestContent, nil
}

// LoadAsset reads one embedded asset referenced by a manifest entry.
func (contentSource EmbeddedContentSource) LoadAsset(packageType PackageType, sourcePath string) (string, error) {
	assetPath := path.Join(embeddedAssetsRootConstant, string(packageType), sourcePath)
	assetContent, readError := embeddedAssets.ReadFile(assetPath)
	if readError != nil {
		return "", fmt.Errorf(embeddedAssetErrorTemplateConstant, assetPath, readError)
	}
	return string(assetContent), nil
}
