// Package utils carries the ambient infrastructure shared across the CLI:
// the Viper-backed ConfigurationLoader, the zap LoggerFactory, context
// plumbing for resolved configuration paths, and the FlushingWriter used for
// console report output.
package utils
