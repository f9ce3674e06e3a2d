// Package enrichment implements the repository enrichment workflow: scanning an
// owner's repositories, analyzing repository metadata and layout, deploying a
// package of files to a feature branch on each target repository through the
// GitHub git data API, and summarizing batch results.
//
// Deployments are strictly sequential and isolated. A failure on one repository
// produces a failed result for that repository and never interrupts the batch.
package enrichment
