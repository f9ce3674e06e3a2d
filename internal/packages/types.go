package packages

import (
	"fmt"
	"strings"
)

const (
	packageTypeLegalDocGundamConstant   = "legal-doc-gundam"
	packageTypeTestingSuiteConstant     = "testing-suite"
	unknownPackageTypeMessageTemplate   = "unknown package type: %s"
	newlineDelimiterConstant            = "\n"
	packageTypeListSeparatorConstant    = ", "
	packageLineCountInitialValueConstant = 0
)

// PackageType identifies one of the enrichment bundles compiled into the tool.
type PackageType string

const (
	// PackageTypeLegalDocGundam names the legal document generation bundle.
	PackageTypeLegalDocGundam PackageType = packageTypeLegalDocGundamConstant
	// PackageTypeTestingSuite names the automated testing scaffold bundle.
	PackageTypeTestingSuite PackageType = packageTypeTestingSuiteConstant
)

// KnownPackageTypes returns every package type the builder can assemble.
func KnownPackageTypes() []PackageType {
	return []PackageType{PackageTypeLegalDocGundam, PackageTypeTestingSuite}
}

// DescribeKnownPackageTypes renders the enumeration for help and error text.
func DescribeKnownPackageTypes() string {
	knownTypes := KnownPackageTypes()
	typeNames := make([]string, 0, len(knownTypes))
	for _, knownType := range knownTypes {
		typeNames = append(typeNames, string(knownType))
	}
	return strings.Join(typeNames, packageTypeListSeparatorConstant)
}

// ParsePackageType validates a raw identifier against the closed enumeration.
func ParsePackageType(rawValue string) (PackageType, error) {
	trimmedValue := strings.TrimSpace(rawValue)
	if len(trimmedValue) == 0 {
		return "", &UnknownPackageTypeError{PackageType: rawValue}
	}
	for _, knownType := range KnownPackageTypes() {
		if string(knownType) == trimmedValue {
			return knownType, nil
		}
	}
	return "", &UnknownPackageTypeError{PackageType: trimmedValue}
}

// UnknownPackageTypeError reports an identifier outside the package enumeration.
type UnknownPackageTypeError struct {
	PackageType string
}

// Error describes the unknown package type.
func (unknownError *UnknownPackageTypeError) Error() string {
	return fmt.Sprintf(unknownPackageTypeMessageTemplate, unknownError.PackageType)
}

// EnrichmentPackage is a named, versioned bundle of destination paths mapped to
// literal file content. Instances are built once per batch and reused unchanged
// across every target repository.
type EnrichmentPackage struct {
	Name        string
	Description string
	Version     string
	Files       map[string]string
}

// FileCount reports the number of files in the bundle.
func (enrichmentPackage EnrichmentPackage) FileCount() int {
	return len(enrichmentPackage.Files)
}

// LineCount totals the newline-delimited line counts across all file content.
func (enrichmentPackage EnrichmentPackage) LineCount() int {
	totalLines := packageLineCountInitialValueConstant
	for _, fileContent := range enrichmentPackage.Files {
		totalLines += len(strings.Split(fileContent, newlineDelimiterConstant))
	}
	return totalLines
}
