package commitfix

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/tvetter/ordnung/internal/discovery"
	"github.com/tvetter/ordnung/internal/execshell"
	"github.com/tvetter/ordnung/internal/gitrepo"
	"github.com/tvetter/ordnung/internal/ui"
	"github.com/tvetter/ordnung/internal/utils"
	pathutils "github.com/tvetter/ordnung/internal/utils/path"
)

const (
	commandUseConstant                = "fix-commits <path>"
	commandShortDescriptionConstant   = "Spell-check and rewrite commit messages"
	commandLongDescriptionConstant    = "fix-commits walks local git repositories, spell-checks commit subjects in English and German, interactively confirms corrections, and rewrites history via git filter-branch."
	vocabularyFlagNameConstant        = "vocabulary"
	vocabularyFlagDescriptionConstant = "Path to a YAML vocabulary overlay extending the builtin word sets"
	missingPathTemplateConstant       = "path %s does not exist"
)

// LoggerProvider yields a zap logger for command execution.
type LoggerProvider func() *zap.Logger

// CommandBuilder assembles the fix-commits command with configurable dependencies.
type CommandBuilder struct {
	LoggerProvider               LoggerProvider
	Discoverer                   RepositoryDiscoverer
	GitExecutor                  gitrepo.GitExecutor
	GitManager                   GitRepositoryManager
	Detector                     LanguageDetector
	Spellers                     SpellerProvider
	HumanReadableLoggingProvider func() bool
	ConfigurationProvider        func() CommandConfiguration
}

// Build constructs the fix-commits command.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   commandUseConstant,
		Short: commandShortDescriptionConstant,
		Long:  commandLongDescriptionConstant,
		Args:  cobra.ExactArgs(1),
		RunE:  builder.run,
	}

	command.Flags().String(vocabularyFlagNameConstant, "", vocabularyFlagDescriptionConstant)

	return command, nil
}

func (builder *CommandBuilder) run(command *cobra.Command, arguments []string) error {
	configuration := builder.resolveConfiguration()

	rootPath := pathutils.NewHomeExpander().Expand(arguments[0])
	if _, statError := os.Stat(rootPath); statError != nil {
		return fmt.Errorf(missingPathTemplateConstant, rootPath)
	}

	vocabularyPath, vocabularyFlagError := command.Flags().GetString(vocabularyFlagNameConstant)
	if vocabularyFlagError != nil {
		return vocabularyFlagError
	}
	if len(vocabularyPath) == 0 {
		vocabularyPath = configuration.VocabularyPath
	}

	vocabulary, vocabularyError := LoadVocabulary(pathutils.NewHomeExpander().Expand(vocabularyPath))
	if vocabularyError != nil {
		return vocabularyError
	}

	logger := builder.resolveLogger()

	gitManager, managerError := builder.resolveGitManager(logger)
	if managerError != nil {
		return managerError
	}

	discoverer := builder.Discoverer
	if discoverer == nil {
		discoverer = discovery.NewFilesystemRepositoryDiscoverer()
	}

	detector := builder.Detector
	if detector == nil {
		detector = NewLinguaLanguageDetector()
	}

	spellers := builder.Spellers
	if spellers == nil {
		spellers = NewStaticSpellerProvider(vocabulary)
	}

	corrector := NewCorrector(detector, spellers, vocabulary)
	outputWriter := utils.NewFlushingWriter(command.OutOrStdout())
	reviewer := NewInteractiveReviewer(command.InOrStdin(), outputWriter)
	service := NewService(discoverer, gitManager, corrector, reviewer, outputWriter, logger)

	return service.Run(command.Context(), CommandOptions{
		RootPath:       rootPath,
		VocabularyPath: vocabularyPath,
	})
}

func (builder *CommandBuilder) resolveConfiguration() CommandConfiguration {
	if builder.ConfigurationProvider == nil {
		return DefaultCommandConfiguration()
	}
	return builder.ConfigurationProvider().Sanitize()
}

func (builder *CommandBuilder) resolveLogger() *zap.Logger {
	if builder.LoggerProvider == nil {
		return zap.NewNop()
	}
	logger := builder.LoggerProvider()
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}

func (builder *CommandBuilder) resolveGitManager(logger *zap.Logger) (GitRepositoryManager, error) {
	if builder.GitManager != nil {
		return builder.GitManager, nil
	}

	gitExecutor := builder.GitExecutor
	if gitExecutor == nil {
		var observers []execshell.CommandEventObserver
		if builder.HumanReadableLoggingProvider != nil && builder.HumanReadableLoggingProvider() {
			observers = append(observers, ui.NewConsoleCommandEventLogger(logger))
		}

		shellExecutor, executorError := execshell.NewShellExecutor(logger, execshell.NewOSCommandRunner(), observers...)
		if executorError != nil {
			return nil, executorError
		}
		gitExecutor = shellExecutor
	}

	return gitrepo.NewRepositoryManager(gitExecutor, logger)
}
