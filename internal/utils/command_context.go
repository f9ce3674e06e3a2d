package utils

import "context"

type contextValueKey int

const configurationFilePathContextKey contextValueKey = iota

// ContextWithConfigurationFilePath returns a context carrying the resolved
// configuration file path for downstream command handlers.
func ContextWithConfigurationFilePath(parentContext context.Context, configurationFilePath string) context.Context {
	if parentContext == nil {
		parentContext = context.Background()
	}
	return context.WithValue(parentContext, configurationFilePathContextKey, configurationFilePath)
}

// ConfigurationFilePathFromContext reports the configuration file path stored
// in the context, when present.
func ConfigurationFilePathFromContext(executionContext context.Context) (string, bool) {
	if executionContext == nil {
		return "", false
	}
	configurationFilePath, pathAvailable := executionContext.Value(configurationFilePathContextKey).(string)
	return configurationFilePath, pathAvailable
}
