package cli_test

import (
	"testing"

	mapstructure "github.com/go-viper/mapstructure/v2"
	"github.com/stretchr/testify/require"

	"github.com/tvetter/ordnung/cmd/cli"
)

func TestApplicationConfigurationDecoding(testInstance *testing.T) {
	rawConfiguration := map[string]any{
		"common": map[string]any{
			"log_level":  "debug",
			"log_format": "console",
		},
		"tools": map[string]any{
			"fix_commits": map[string]any{
				"vocabulary_path": "~/vocabulary.yaml",
			},
			"timeline": map[string]any{
				"output": "summary.txt",
			},
		},
	}

	var decodedConfiguration cli.ApplicationConfiguration
	decoder, decoderError := mapstructure.NewDecoder(&mapstructure.DecoderConfig{Result: &decodedConfiguration})
	require.NoError(testInstance, decoderError)
	require.NoError(testInstance, decoder.Decode(rawConfiguration))

	require.Equal(testInstance, "debug", decodedConfiguration.Common.LogLevel)
	require.Equal(testInstance, "console", decodedConfiguration.Common.LogFormat)
	require.Equal(testInstance, "~/vocabulary.yaml", decodedConfiguration.Tools.FixCommits.VocabularyPath)
	require.Equal(testInstance, "summary.txt", decodedConfiguration.Tools.Timeline.OutputPath)
}
