package commitfix

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
	"go.uber.org/zap"
)

const (
	runSeparatorConstant                 = "======================================================================"
	runTitleConstant                     = "Git Commit Message Spell Checker - Multi-Repository Mode"
	runWarningConstant                   = "WARNING: This will rewrite git history!"
	runWarningDetailConstant             = "Make sure you have backups and understand the implications."
	searchingTemplateConstant            = "Searching for git repositories in: %s\n"
	noRepositoriesTemplateConstant       = "no git repositories found under %s"
	foundRepositoriesTemplateConstant    = "Found %s repository/repositories:\n\n"
	repositoryListEntryTemplateConstant  = "  %d. %s\n"
	repositoryHeaderTemplateConstant     = "Repository: %s\nPath: %s\n"
	notRepositoryMessageConstant         = "⚠ Not a git repository. Skipping."
	dirtyWorktreeMessageConstant         = "⚠ Working tree is not clean. Skipping this repository.\n  Please commit or stash changes first."
	noCommitsMessageConstant             = "No commits found. Skipping."
	commitCountTemplateConstant          = "Found %s commits to check.\n"
	noErrorsMessageConstant              = "✓ No spelling errors found!"
	changesFoundTemplateConstant         = "\nFound %d commit(s) with potential corrections.\nYou will be asked for each commit whether to apply the correction.\n"
	willChangeTemplateConstant           = "✓ Will change to: %s\n"
	keepingOriginalTemplateConstant      = "⊘ Keeping original: %s\n"
	abortedByUserMessageConstant         = "\n⚠ Aborted by user."
	noChangesAcceptedMessageConstant     = "\n⊘ No changes to apply."
	declinedMessageConstant              = "Aborted."
	rewritingMessageConstant             = "\nRewriting commit history..."
	rewriteSucceededMessageConstant      = "✓ Commit history rewritten successfully!"
	rewriteFailedMessageConstant         = "✗ Failed to rewrite history."
	summaryTitleConstant                 = "SUMMARY"
	forcePushHeaderConstant              = "IMPORTANT: Commit hashes have changed in corrected repositories."
	forcePushIntroConstant               = "\nTo push the changes:"
	forcePushStepsTemplateConstant       = "\n  cd %s\n  git status  # Verify changes\n  git log --oneline -10  # Check commit messages\n  git push --force origin main  # Or your branch name\n"
	forcePushNoteConstant                = "\nNote: Use --force to overwrite remote history."
	skipReasonNotRepositoryConstant      = "not a git repository"
	skipReasonDirtyWorktreeConstant      = "dirty working tree"
	skipReasonNoCommitsConstant          = "no commits"
	skipReasonUserDeclinedConstant       = "user declined"
	skipReasonStatusFailedConstant       = "worktree status check failed"
	skipReasonListFailedConstant         = "commit listing failed"
	skipReasonRewriteFailedConstant      = "history rewrite failed"
	changesAppliedDetailTemplateConstant = "%d commit(s) fixed"
	cleanDetailConstant                  = "No errors found"
	repositoryColumnConstant             = "Repository"
	statusColumnConstant                 = "Status"
	detailsColumnConstant                = "Details"
	repositoryFailureLogMessageConstant  = "repository processing failed"
	repositoryLogFieldConstant           = "repository"
)

// ChangeReviewer drives the per-commit confirmation flow.
type ChangeReviewer interface {
	ReviewChange(change MessageChange, ordinal int, total int) (ReviewDecision, string, error)
	ConfirmApply(acceptedChanges []MessageChange) (bool, error)
}

// Service orchestrates the fix-commits workflow across repositories.
type Service struct {
	discoverer   RepositoryDiscoverer
	gitManager   GitRepositoryManager
	corrector    *Corrector
	reviewer     ChangeReviewer
	outputWriter io.Writer
	logger       *zap.Logger
}

// NewService wires the workflow from its collaborators.
func NewService(
	discoverer RepositoryDiscoverer,
	gitManager GitRepositoryManager,
	corrector *Corrector,
	reviewer ChangeReviewer,
	outputWriter io.Writer,
	logger *zap.Logger,
) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		discoverer:   discoverer,
		gitManager:   gitManager,
		corrector:    corrector,
		reviewer:     reviewer,
		outputWriter: outputWriter,
		logger:       logger,
	}
}

// Run discovers repositories under the root path, reviews corrections for
// each, and prints the final summary. Repository-level failures are recorded
// as skips and never abort the remaining repositories.
func (service *Service) Run(executionContext context.Context, options CommandOptions) error {
	fmt.Fprintln(service.outputWriter, runSeparatorConstant)
	fmt.Fprintln(service.outputWriter, runTitleConstant)
	fmt.Fprintln(service.outputWriter, runSeparatorConstant)
	fmt.Fprintf(service.outputWriter, "\n%s\n%s\n\n", runWarningConstant, runWarningDetailConstant)

	fmt.Fprintf(service.outputWriter, searchingTemplateConstant, options.RootPath)
	repositories, discoveryError := service.discoverer.DiscoverRepositories(options.RootPath)
	if discoveryError != nil {
		return discoveryError
	}
	if len(repositories) == 0 {
		return fmt.Errorf(noRepositoriesTemplateConstant, options.RootPath)
	}

	fmt.Fprintf(service.outputWriter, foundRepositoriesTemplateConstant, humanize.Comma(int64(len(repositories))))
	for repositoryIndex, repositoryPath := range repositories {
		fmt.Fprintf(service.outputWriter, repositoryListEntryTemplateConstant, repositoryIndex+1, repositoryPath)
	}
	fmt.Fprintln(service.outputWriter)

	outcomes := make([]RepositoryOutcome, 0, len(repositories))
	for _, repositoryPath := range repositories {
		outcomes = append(outcomes, service.processRepository(executionContext, repositoryPath))
	}

	service.printSummary(outcomes)
	return nil
}

func (service *Service) processRepository(executionContext context.Context, repositoryPath string) RepositoryOutcome {
	fmt.Fprintf(service.outputWriter, "\n%s\n", runSeparatorConstant)
	fmt.Fprintf(service.outputWriter, repositoryHeaderTemplateConstant, repositoryName(repositoryPath), repositoryPath)
	fmt.Fprintf(service.outputWriter, "%s\n", runSeparatorConstant)

	if !service.gitManager.IsGitRepository(executionContext, repositoryPath) {
		fmt.Fprintln(service.outputWriter, notRepositoryMessageConstant)
		return skippedOutcome(repositoryPath, skipReasonNotRepositoryConstant)
	}

	worktreeClean, statusError := service.gitManager.CheckCleanWorktree(executionContext, repositoryPath)
	if statusError != nil {
		service.logger.Warn(repositoryFailureLogMessageConstant, zap.String(repositoryLogFieldConstant, repositoryPath), zap.Error(statusError))
		return skippedOutcome(repositoryPath, skipReasonStatusFailedConstant)
	}
	if !worktreeClean {
		fmt.Fprintln(service.outputWriter, dirtyWorktreeMessageConstant)
		return skippedOutcome(repositoryPath, skipReasonDirtyWorktreeConstant)
	}

	commits, listError := service.gitManager.ListCommits(executionContext, repositoryPath)
	if listError != nil {
		service.logger.Warn(repositoryFailureLogMessageConstant, zap.String(repositoryLogFieldConstant, repositoryPath), zap.Error(listError))
		return skippedOutcome(repositoryPath, skipReasonListFailedConstant)
	}
	if len(commits) == 0 {
		fmt.Fprintln(service.outputWriter, noCommitsMessageConstant)
		return skippedOutcome(repositoryPath, skipReasonNoCommitsConstant)
	}

	fmt.Fprintf(service.outputWriter, commitCountTemplateConstant, humanize.Comma(int64(len(commits))))

	var proposedChanges []MessageChange
	for _, commit := range commits {
		correctedSubject, detectedLanguage := service.corrector.CorrectSubject(commit.Subject)
		if correctedSubject != commit.Subject {
			proposedChanges = append(proposedChanges, MessageChange{
				Hash:             commit.Hash,
				OriginalSubject:  commit.Subject,
				CorrectedSubject: correctedSubject,
				Language:         detectedLanguage,
			})
		}
	}

	if len(proposedChanges) == 0 {
		fmt.Fprintln(service.outputWriter, noErrorsMessageConstant)
		return RepositoryOutcome{RepositoryPath: repositoryPath, Status: RepositoryStatusClean}
	}

	fmt.Fprintf(service.outputWriter, changesFoundTemplateConstant, len(proposedChanges))

	var acceptedChanges []MessageChange
	for changeIndex, proposedChange := range proposedChanges {
		decision, reviewedMessage, reviewError := service.reviewer.ReviewChange(proposedChange, changeIndex+1, len(proposedChanges))
		if reviewError != nil {
			service.logger.Warn(repositoryFailureLogMessageConstant, zap.String(repositoryLogFieldConstant, repositoryPath), zap.Error(reviewError))
			return skippedOutcome(repositoryPath, skipReasonUserDeclinedConstant)
		}

		switch decision {
		case ReviewDecisionAbort:
			fmt.Fprintln(service.outputWriter, abortedByUserMessageConstant)
			return skippedOutcome(repositoryPath, skipReasonUserDeclinedConstant)
		case ReviewDecisionAccept, ReviewDecisionEdit:
			if reviewedMessage != proposedChange.OriginalSubject {
				acceptedChange := proposedChange
				acceptedChange.CorrectedSubject = reviewedMessage
				acceptedChanges = append(acceptedChanges, acceptedChange)
				fmt.Fprintf(service.outputWriter, willChangeTemplateConstant, reviewedMessage)
			}
		case ReviewDecisionSkip:
			fmt.Fprintf(service.outputWriter, keepingOriginalTemplateConstant, proposedChange.OriginalSubject)
		}
	}

	if len(acceptedChanges) == 0 {
		fmt.Fprintln(service.outputWriter, noChangesAcceptedMessageConstant)
		return skippedOutcome(repositoryPath, skipReasonUserDeclinedConstant)
	}

	applyConfirmed, confirmError := service.reviewer.ConfirmApply(acceptedChanges)
	if confirmError != nil {
		service.logger.Warn(repositoryFailureLogMessageConstant, zap.String(repositoryLogFieldConstant, repositoryPath), zap.Error(confirmError))
		return skippedOutcome(repositoryPath, skipReasonUserDeclinedConstant)
	}
	if !applyConfirmed {
		fmt.Fprintln(service.outputWriter, declinedMessageConstant)
		return skippedOutcome(repositoryPath, skipReasonUserDeclinedConstant)
	}

	fmt.Fprintln(service.outputWriter, rewritingMessageConstant)

	filterScript := BuildMessageFilterScript(acceptedChanges)
	if rewriteError := service.gitManager.RewriteMessages(executionContext, repositoryPath, filterScript); rewriteError != nil {
		service.logger.Warn(repositoryFailureLogMessageConstant, zap.String(repositoryLogFieldConstant, repositoryPath), zap.Error(rewriteError))
		fmt.Fprintln(service.outputWriter, rewriteFailedMessageConstant)
		return skippedOutcome(repositoryPath, skipReasonRewriteFailedConstant)
	}

	fmt.Fprintln(service.outputWriter, rewriteSucceededMessageConstant)
	return RepositoryOutcome{
		RepositoryPath: repositoryPath,
		Status:         RepositoryStatusCorrected,
		ChangeCount:    len(acceptedChanges),
	}
}

func (service *Service) printSummary(outcomes []RepositoryOutcome) {
	fmt.Fprintf(service.outputWriter, "\n%s\n%s\n%s\n", runSeparatorConstant, summaryTitleConstant, runSeparatorConstant)

	summaryTable := table.NewWriter()
	summaryTable.SetOutputMirror(service.outputWriter)
	summaryTable.AppendHeader(table.Row{repositoryColumnConstant, statusColumnConstant, detailsColumnConstant})

	var correctedRepositories []string
	for _, outcome := range outcomes {
		detail := ""
		switch outcome.Status {
		case RepositoryStatusCorrected:
			detail = fmt.Sprintf(changesAppliedDetailTemplateConstant, outcome.ChangeCount)
			correctedRepositories = append(correctedRepositories, outcome.RepositoryPath)
		case RepositoryStatusClean:
			detail = cleanDetailConstant
		case RepositoryStatusSkipped:
			detail = outcome.Reason
		}
		summaryTable.AppendRow(table.Row{repositoryName(outcome.RepositoryPath), string(outcome.Status), detail})
	}
	summaryTable.Render()

	if len(correctedRepositories) == 0 {
		return
	}

	fmt.Fprintf(service.outputWriter, "\n%s\n%s\n%s", runSeparatorConstant, forcePushHeaderConstant, forcePushIntroConstant)
	for _, repositoryPath := range correctedRepositories {
		fmt.Fprintf(service.outputWriter, forcePushStepsTemplateConstant, repositoryPath)
	}
	fmt.Fprintln(service.outputWriter, forcePushNoteConstant)
	fmt.Fprintln(service.outputWriter, runSeparatorConstant)
}

func skippedOutcome(repositoryPath string, skipReason string) RepositoryOutcome {
	return RepositoryOutcome{
		RepositoryPath: repositoryPath,
		Status:         RepositoryStatusSkipped,
		Reason:         skipReason,
	}
}

func repositoryName(repositoryPath string) string {
	return filepath.Base(repositoryPath)
}
