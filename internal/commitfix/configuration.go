package commitfix

import "strings"

// CommandConfiguration captures persisted configuration for fix-commits.
type CommandConfiguration struct {
	VocabularyPath string `mapstructure:"vocabulary_path"`
}

// DefaultCommandConfiguration returns baseline configuration values for fix-commits.
func DefaultCommandConfiguration() CommandConfiguration {
	return CommandConfiguration{}
}

// Sanitize trims configured values.
func (configuration CommandConfiguration) Sanitize() CommandConfiguration {
	sanitized := configuration
	sanitized.VocabularyPath = strings.TrimSpace(configuration.VocabularyPath)
	return sanitized
}
