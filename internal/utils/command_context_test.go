package utils_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/devhandbook/branchctl/internal/utils"
)

func TestCommandContextAccessorRoundTripsConfigurationFilePath(testInstance *testing.T) {
	accessor := utils.NewCommandContextAccessor()

	updatedContext := accessor.WithConfigurationFilePath(context.Background(), "/etc/branchctl/config.yaml")

	configurationFilePath, available := accessor.ConfigurationFilePath(updatedContext)
	require.True(testInstance, available)
	require.Equal(testInstance, "/etc/branchctl/config.yaml", configurationFilePath)
}

func TestCommandContextAccessorReportsMissingValues(testInstance *testing.T) {
	accessor := utils.NewCommandContextAccessor()

	_, availableFromEmptyContext := accessor.ConfigurationFilePath(context.Background())
	require.False(testInstance, availableFromEmptyContext)

	_, availableFromNilContext := accessor.ConfigurationFilePath(nil)
	require.False(testInstance, availableFromNilContext)
}
