// Package packages assembles the named enrichment bundles that deployments push
// into target repositories.
//
// A bundle is described by a YAML manifest listing source assets and their
// destination paths. The Builder resolves a package-type identifier against a
// ContentSource, reads every listed asset, and returns an immutable
// EnrichmentPackage mapping destination paths to literal file content. The
// default content source serves assets compiled into the binary so the same
// package content deploys verbatim on every run.
package packages
