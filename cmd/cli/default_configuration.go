package cli

import _ "embed"

// defaultConfigurationContent holds the baseline configuration applied when no
// configuration file is present on the search path.
//
//go:embed default_config.yaml
var defaultConfigurationContent []byte

// EmbeddedDefaultConfiguration returns the baseline configuration document and its format.
func EmbeddedDefaultConfiguration() ([]byte, string) {
	return defaultConfigurationContent, configurationTypeConstant
}
