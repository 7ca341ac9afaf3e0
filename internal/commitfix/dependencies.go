package commitfix

import (
	"context"

	"github.com/tvetter/ordnung/internal/gitrepo"
)

// RepositoryDiscoverer locates the git repositories a run operates on.
type RepositoryDiscoverer interface {
	DiscoverRepositories(rootPath string) ([]string, error)
}

// GitRepositoryManager exposes the git plumbing the workflow needs.
type GitRepositoryManager interface {
	IsGitRepository(executionContext context.Context, repositoryPath string) bool
	CheckCleanWorktree(executionContext context.Context, repositoryPath string) (bool, error)
	ListCommits(executionContext context.Context, repositoryPath string) ([]gitrepo.Commit, error)
	RewriteMessages(executionContext context.Context, repositoryPath string, filterScript string) error
}

// LanguageDetector classifies a commit subject as English or German.
type LanguageDetector interface {
	DetectLanguage(subjectText string) Language
}

// Speller answers dictionary membership and proposes corrections for unknown words.
type Speller interface {
	IsKnown(word string) bool
	Suggest(word string) string
}

// SpellerProvider returns the speller for a detected language.
type SpellerProvider interface {
	SpellerFor(language Language) Speller
}
