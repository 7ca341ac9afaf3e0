package gitrepo

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/tvetter/ordnung/internal/execshell"
)

const (
	commitLogFormatConstant              = "%H|||%s"
	commitLogFieldSeparatorConstant      = "|||"
	commitLogFormatFlagTemplateConstant  = "--format=%s"
	headReferenceConstant                = "HEAD"
	originalReferencePrefixConstant      = "refs/original/"
	referenceNameFormatConstant          = "--format=%(refname)"
	filterScriptPatternConstant          = "ordnung-msg-filter-*.sh"
	filterScriptPermissionsConstant      = os.FileMode(0o755)
	executorRequiredMessageConstant      = "git executor must not be nil"
	loggerRequiredMessageConstant        = "logger must not be nil"
	worktreeStatusErrorTemplateConstant  = "failed to inspect worktree status in %s: %w"
	commitListErrorTemplateConstant      = "failed to list commits in %s: %w"
	malformedCommitLineMessageConstant   = "skipping malformed commit log line"
	commitLineFieldNameConstant          = "commit_line"
	scriptCreationErrorTemplateConstant  = "failed to create message filter script: %w"
	filterBranchErrorTemplateConstant    = "failed to rewrite history in %s: %w"
	cleanupWarningMessageConstant        = "history cleanup step failed"
	cleanupStepFieldNameConstant         = "step"
	repositoryFieldNameConstant          = "repository"
	cleanupStepBackupRefsConstant        = "delete_backup_references"
	cleanupStepReflogExpireConstant      = "expire_reflog"
	cleanupStepGarbageCollectionConstant = "garbage_collection"
)

// Commit pairs a full hash with its single-line subject.
type Commit struct {
	Hash    string
	Subject string
}

// GitExecutor runs git subcommands and reports their results.
type GitExecutor interface {
	ExecuteGit(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error)
}

// RepositoryManager exposes the git plumbing the commit message workflow needs.
type RepositoryManager struct {
	executor GitExecutor
	logger   *zap.Logger
}

// NewRepositoryManager validates dependencies and constructs a RepositoryManager.
func NewRepositoryManager(executor GitExecutor, logger *zap.Logger) (*RepositoryManager, error) {
	if executor == nil {
		return nil, errors.New(executorRequiredMessageConstant)
	}
	if logger == nil {
		return nil, errors.New(loggerRequiredMessageConstant)
	}
	return &RepositoryManager{executor: executor, logger: logger}, nil
}

// IsGitRepository reports whether the directory sits inside a git work tree.
func (manager *RepositoryManager) IsGitRepository(executionContext context.Context, repositoryPath string) bool {
	result, executionError := manager.executor.ExecuteGit(executionContext, execshell.CommandDetails{
		Arguments:        []string{"rev-parse", "--is-inside-work-tree"},
		WorkingDirectory: repositoryPath,
	})
	if executionError != nil {
		return false
	}
	return strings.TrimSpace(result.StandardOutput) == "true"
}

// CheckCleanWorktree reports whether the repository has no staged or unstaged changes.
func (manager *RepositoryManager) CheckCleanWorktree(executionContext context.Context, repositoryPath string) (bool, error) {
	result, executionError := manager.executor.ExecuteGit(executionContext, execshell.CommandDetails{
		Arguments:        []string{"status", "--porcelain"},
		WorkingDirectory: repositoryPath,
	})
	if executionError != nil {
		return false, fmt.Errorf(worktreeStatusErrorTemplateConstant, repositoryPath, executionError)
	}
	return len(strings.TrimSpace(result.StandardOutput)) == 0, nil
}

// ListCommits returns every commit reachable from HEAD ordered oldest first.
// A repository without commits makes git log exit nonzero; that case yields
// an empty slice rather than an error.
func (manager *RepositoryManager) ListCommits(executionContext context.Context, repositoryPath string) ([]Commit, error) {
	formatArgument := fmt.Sprintf(commitLogFormatFlagTemplateConstant, commitLogFormatConstant)
	result, executionError := manager.executor.ExecuteGit(executionContext, execshell.CommandDetails{
		Arguments:        []string{"log", formatArgument, headReferenceConstant},
		WorkingDirectory: repositoryPath,
	})
	if executionError != nil {
		var commandFailure execshell.CommandFailedError
		if errors.As(executionError, &commandFailure) {
			return nil, nil
		}
		return nil, fmt.Errorf(commitListErrorTemplateConstant, repositoryPath, executionError)
	}

	var commits []Commit
	for _, logLine := range strings.Split(result.StandardOutput, "\n") {
		trimmedLine := strings.TrimSpace(logLine)
		if len(trimmedLine) == 0 {
			continue
		}

		separatorIndex := strings.Index(trimmedLine, commitLogFieldSeparatorConstant)
		if separatorIndex < 0 {
			manager.logger.Warn(malformedCommitLineMessageConstant,
				zap.String(repositoryFieldNameConstant, repositoryPath),
				zap.String(commitLineFieldNameConstant, trimmedLine),
			)
			continue
		}

		commits = append(commits, Commit{
			Hash:    trimmedLine[:separatorIndex],
			Subject: trimmedLine[separatorIndex+len(commitLogFieldSeparatorConstant):],
		})
	}

	// git log emits newest first; the review flow walks history oldest first.
	for leftIndex, rightIndex := 0, len(commits)-1; leftIndex < rightIndex; leftIndex, rightIndex = leftIndex+1, rightIndex-1 {
		commits[leftIndex], commits[rightIndex] = commits[rightIndex], commits[leftIndex]
	}

	return commits, nil
}

// RewriteMessages rewrites commit subjects across all refs using the provided
// message filter script, then removes the backup references, expires the
// reflog, and garbage collects. Cleanup failures are logged and do not fail
// the rewrite. The temporary script is always removed.
func (manager *RepositoryManager) RewriteMessages(executionContext context.Context, repositoryPath string, filterScript string) error {
	scriptFile, creationError := os.CreateTemp("", filterScriptPatternConstant)
	if creationError != nil {
		return fmt.Errorf(scriptCreationErrorTemplateConstant, creationError)
	}
	scriptPath := scriptFile.Name()
	defer func() {
		_ = os.Remove(scriptPath)
	}()

	if _, writeError := scriptFile.WriteString(filterScript); writeError != nil {
		_ = scriptFile.Close()
		return fmt.Errorf(scriptCreationErrorTemplateConstant, writeError)
	}
	if closeError := scriptFile.Close(); closeError != nil {
		return fmt.Errorf(scriptCreationErrorTemplateConstant, closeError)
	}
	if permissionError := os.Chmod(scriptPath, filterScriptPermissionsConstant); permissionError != nil {
		return fmt.Errorf(scriptCreationErrorTemplateConstant, permissionError)
	}

	_, filterError := manager.executor.ExecuteGit(executionContext, execshell.CommandDetails{
		Arguments:        []string{"filter-branch", "-f", "--msg-filter", scriptPath, "--", "--all"},
		WorkingDirectory: repositoryPath,
	})
	if filterError != nil {
		return fmt.Errorf(filterBranchErrorTemplateConstant, repositoryPath, filterError)
	}

	manager.cleanupRewriteArtifacts(executionContext, repositoryPath)
	return nil
}

func (manager *RepositoryManager) cleanupRewriteArtifacts(executionContext context.Context, repositoryPath string) {
	backupListResult, backupListError := manager.executor.ExecuteGit(executionContext, execshell.CommandDetails{
		Arguments:        []string{"for-each-ref", referenceNameFormatConstant, originalReferencePrefixConstant},
		WorkingDirectory: repositoryPath,
	})
	if backupListError != nil {
		manager.logCleanupWarning(repositoryPath, cleanupStepBackupRefsConstant, backupListError)
	} else {
		for _, referenceLine := range strings.Split(backupListResult.StandardOutput, "\n") {
			referenceName := strings.TrimSpace(referenceLine)
			if len(referenceName) == 0 {
				continue
			}
			_, deletionError := manager.executor.ExecuteGit(executionContext, execshell.CommandDetails{
				Arguments:        []string{"update-ref", "-d", referenceName},
				WorkingDirectory: repositoryPath,
			})
			if deletionError != nil {
				manager.logCleanupWarning(repositoryPath, cleanupStepBackupRefsConstant, deletionError)
			}
		}
	}

	if _, reflogError := manager.executor.ExecuteGit(executionContext, execshell.CommandDetails{
		Arguments:        []string{"reflog", "expire", "--expire=now", "--all"},
		WorkingDirectory: repositoryPath,
	}); reflogError != nil {
		manager.logCleanupWarning(repositoryPath, cleanupStepReflogExpireConstant, reflogError)
	}

	if _, collectionError := manager.executor.ExecuteGit(executionContext, execshell.CommandDetails{
		Arguments:        []string{"gc", "--prune=now"},
		WorkingDirectory: repositoryPath,
	}); collectionError != nil {
		manager.logCleanupWarning(repositoryPath, cleanupStepGarbageCollectionConstant, collectionError)
	}
}

func (manager *RepositoryManager) logCleanupWarning(repositoryPath string, cleanupStep string, cleanupError error) {
	manager.logger.Warn(cleanupWarningMessageConstant,
		zap.String(repositoryFieldNameConstant, repositoryPath),
		zap.String(cleanupStepFieldNameConstant, cleanupStep),
		zap.Error(cleanupError),
	)
}
