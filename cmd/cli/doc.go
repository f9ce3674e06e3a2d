// Package cli wires the enrich command-line application: the Cobra root
// command, configuration loading, and structured logger initialization.
package cli
