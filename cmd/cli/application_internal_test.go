package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const (
	testConfigurationFileNameConstant = "config.yaml"
	testConfigurationContentConstant  = "common:\n  log_level: debug\n  log_format: structured\ntools:\n  fix_commits:\n    vocabulary_path: /data/vocabulary.yaml\n  timeline:\n    output: /data/summary.txt\n"
)

func writeTestConfigurationFile(testInstance *testing.T) string {
	testInstance.Helper()

	configurationPath := filepath.Join(testInstance.TempDir(), testConfigurationFileNameConstant)
	require.NoError(testInstance, os.WriteFile(configurationPath, []byte(testConfigurationContentConstant), 0o644))
	return configurationPath
}

func subcommandNames(application *Application) []string {
	names := make([]string, 0, len(application.rootCommand.Commands()))
	for _, subcommand := range application.rootCommand.Commands() {
		names = append(names, subcommand.Name())
	}
	return names
}

func TestNewApplicationRegistersSubcommands(testInstance *testing.T) {
	application := NewApplication()

	registeredNames := subcommandNames(application)
	require.Contains(testInstance, registeredNames, "fix-commits")
	require.Contains(testInstance, registeredNames, "timeline")
	require.Contains(testInstance, registeredNames, "music-diff")
}

func TestRootCommandWithoutArgumentsPrintsHelp(testInstance *testing.T) {
	application := NewApplication()

	output := &bytes.Buffer{}
	application.rootCommand.SetOut(output)
	application.rootCommand.SetErr(output)
	application.rootCommand.SetArgs([]string{})

	require.NoError(testInstance, application.rootCommand.Execute())
	require.Contains(testInstance, output.String(), "Usage:")
	require.Contains(testInstance, output.String(), "fix-commits")
}

func TestInitializeConfigurationAppliesDefaults(testInstance *testing.T) {
	application := NewApplication()

	require.NoError(testInstance, application.initializeConfiguration(application.rootCommand))
	require.Equal(testInstance, "info", application.configuration.Common.LogLevel)
	require.Equal(testInstance, "console", application.configuration.Common.LogFormat)
	require.True(testInstance, application.humanReadableLoggingEnabled())
}

func TestInitializeConfigurationReadsConfigurationFile(testInstance *testing.T) {
	application := NewApplication()
	application.configurationFilePath = writeTestConfigurationFile(testInstance)

	require.NoError(testInstance, application.initializeConfiguration(application.rootCommand))
	require.Equal(testInstance, "debug", application.configuration.Common.LogLevel)
	require.Equal(testInstance, "structured", application.configuration.Common.LogFormat)
	require.Equal(testInstance, "/data/vocabulary.yaml", application.configuration.Tools.FixCommits.VocabularyPath)
	require.Equal(testInstance, "/data/summary.txt", application.configuration.Tools.Timeline.OutputPath)
	require.False(testInstance, application.humanReadableLoggingEnabled())
}

func TestPersistentFlagsOverrideConfiguredLogging(testInstance *testing.T) {
	application := NewApplication()
	application.configurationFilePath = writeTestConfigurationFile(testInstance)

	require.NoError(testInstance, application.rootCommand.PersistentFlags().Set(logLevelFlagNameConstant, "warn"))
	require.NoError(testInstance, application.rootCommand.PersistentFlags().Set(logFormatFlagNameConstant, "console"))

	require.NoError(testInstance, application.initializeConfiguration(application.rootCommand))
	require.Equal(testInstance, "warn", application.configuration.Common.LogLevel)
	require.Equal(testInstance, "console", application.configuration.Common.LogFormat)
	require.True(testInstance, application.humanReadableLoggingEnabled())
}

func TestInitializeConfigurationRejectsUnknownLogLevel(testInstance *testing.T) {
	application := NewApplication()

	require.NoError(testInstance, application.rootCommand.PersistentFlags().Set(logLevelFlagNameConstant, "verbose"))

	initializationError := application.initializeConfiguration(application.rootCommand)
	require.Error(testInstance, initializationError)
	require.Contains(testInstance, initializationError.Error(), "unsupported log level")
}
