package packages

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	manifestDecodeErrorTemplateConstant       = "decode package manifest for %s: %w"
	manifestMissingNameMessageTemplate        = "package manifest for %s is missing a name"
	manifestMissingFilesMessageTemplate       = "package manifest for %s lists no files"
	manifestEmptyEntryMessageTemplate         = "package manifest for %s contains an entry without a source path"
	manifestDuplicateDestinationTemplate      = "package manifest for %s maps %s more than once"
	manifestDefaultVersionConstant            = "1.0.0"
)

// ManifestFile maps one bundled asset to its destination path inside a target repository.
type ManifestFile struct {
	Source      string `yaml:"source"`
	Destination string `yaml:"destination"`
}

// Manifest describes one enrichment bundle: identity fields plus the asset list.
type Manifest struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Version     string         `yaml:"version"`
	Files       []ManifestFile `yaml:"files"`
}

// ParseManifest decodes and validates a YAML manifest document for the given package type.
func ParseManifest(packageType PackageType, manifestContent []byte) (Manifest, error) {
	var decodedManifest Manifest
	if decodeError := yaml.Unmarshal(manifestContent, &decodedManifest); decodeError != nil {
		return Manifest{}, fmt.Errorf(manifestDecodeErrorTemplateConstant, packageType, decodeError)
	}

	if len(strings.TrimSpace(decodedManifest.Name)) == 0 {
		return Manifest{}, fmt.Errorf(manifestMissingNameMessageTemplate, packageType)
	}
	if len(decodedManifest.Files) == 0 {
		return Manifest{}, fmt.Errorf(manifestMissingFilesMessageTemplate, packageType)
	}
	if len(strings.TrimSpace(decodedManifest.Version)) == 0 {
		decodedManifest.Version = manifestDefaultVersionConstant
	}

	seenDestinations := make(map[string]struct{}, len(decodedManifest.Files))
	for fileIndex, manifestFile := range decodedManifest.Files {
		if len(strings.TrimSpace(manifestFile.Source)) == 0 {
			return Manifest{}, fmt.Errorf(manifestEmptyEntryMessageTemplate, packageType)
		}
		if len(strings.TrimSpace(manifestFile.Destination)) == 0 {
			decodedManifest.Files[fileIndex].Destination = manifestFile.Source
			manifestFile.Destination = manifestFile.Source
		}
		if _, alreadyMapped := seenDestinations[manifestFile.Destination]; alreadyMapped {
			return Manifest{}, fmt.Errorf(manifestDuplicateDestinationTemplate, packageType, manifestFile.Destination)
		}
		seenDestinations[manifestFile.Destination] = struct{}{}
	}

	return decodedManifest, nil
}
