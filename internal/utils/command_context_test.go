package utils_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/seedworks/enrich/internal/utils"
)

const testContextConfigurationPathConstant = "/etc/enrich/config.yaml"

func TestConfigurationFilePathRoundTrip(testInstance *testing.T) {
	decoratedContext := utils.ContextWithConfigurationFilePath(context.Background(), testContextConfigurationPathConstant)

	storedPath, pathAvailable := utils.ConfigurationFilePathFromContext(decoratedContext)

	require.True(testInstance, pathAvailable)
	require.Equal(testInstance, testContextConfigurationPathConstant, storedPath)
}

func TestConfigurationFilePathMissing(testInstance *testing.T) {
	storedPath, pathAvailable := utils.ConfigurationFilePathFromContext(context.Background())

	require.False(testInstance, pathAvailable)
	require.Empty(testInstance, storedPath)
}

func TestContextWithConfigurationFilePathToleratesNilParent(testInstance *testing.T) {
	decoratedContext := utils.ContextWithConfigurationFilePath(nil, testContextConfigurationPathConstant)

	storedPath, pathAvailable := utils.ConfigurationFilePathFromContext(decoratedContext)

	require.True(testInstance, pathAvailable)
	require.Equal(testInstance, testContextConfigurationPathConstant, storedPath)
}

func TestConfigurationFilePathNilContext(testInstance *testing.T) {
	storedPath, pathAvailable := utils.ConfigurationFilePathFromContext(nil)

	require.False(testInstance, pathAvailable)
	require.Empty(testInstance, storedPath)
}
