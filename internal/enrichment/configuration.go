package enrichment

import "strings"

const (
	defaultHostNameConstant                 = "github.com"
	defaultRepositoryLimitConstant          = 1000
	configurationKeySeparatorConstant       = "."
	configurationHostKeyConstant            = "host"
	configurationRepositoryLimitKeyConstant = "repository_limit"
	configurationFilterKeyConstant          = "filter"
)

// CommandConfiguration captures configuration values for the enrichment command.
type CommandConfiguration struct {
	Host            string `mapstructure:"host"`
	RepositoryLimit int    `mapstructure:"repository_limit"`
	Filter          string `mapstructure:"filter"`
}

// DefaultCommandConfiguration provides baseline configuration values for enrichment.
func DefaultCommandConfiguration() CommandConfiguration {
	return CommandConfiguration{
		Host:            defaultHostNameConstant,
		RepositoryLimit: defaultRepositoryLimitConstant,
		Filter:          "",
	}
}

// DefaultConfigurationValues produces Viper defaults for the enrichment command.
func DefaultConfigurationValues(rootKey string) map[string]any {
	defaults := DefaultCommandConfiguration()
	return map[string]any{
		rootKey + configurationKeySeparatorConstant + configurationHostKeyConstant:            defaults.Host,
		rootKey + configurationKeySeparatorConstant + configurationRepositoryLimitKeyConstant: defaults.RepositoryLimit,
		rootKey + configurationKeySeparatorConstant + configurationFilterKeyConstant:          defaults.Filter,
	}
}

// sanitize trims configuration values and restores defaults for empty entries.
func (configuration CommandConfiguration) sanitize() CommandConfiguration {
	sanitized := configuration

	sanitized.Host = strings.TrimSpace(configuration.Host)
	if len(sanitized.Host) == 0 {
		sanitized.Host = defaultHostNameConstant
	}

	if sanitized.RepositoryLimit <= 0 {
		sanitized.RepositoryLimit = defaultRepositoryLimitConstant
	}

	sanitized.Filter = strings.TrimSpace(configuration.Filter)

	return sanitized
}
