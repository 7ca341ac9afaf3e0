package commitfix

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/sergi/go-diff/diffmatchpatch"
)

const (
	reviewSeparatorConstant              = "======================================================================"
	reviewHeaderTemplateConstant         = "Commit %d/%d\n"
	reviewHashTemplateConstant           = "Hash: %s\n"
	reviewOriginalTemplateConstant       = "Original:  %s\n"
	reviewSuggestedTemplateConstant      = "Suggested: %s\n"
	reviewOptionsHeaderConstant          = "Options:"
	reviewOptionAcceptConstant           = "  [y] Accept suggestion"
	reviewOptionSkipConstant             = "  [s] Skip this commit (keep original)"
	reviewOptionEditConstant             = "  [e] Edit manually"
	reviewOptionAbortConstant            = "  [a] Abort (stop processing)"
	reviewChoicePromptConstant           = "Your choice [y/s/e/a]: "
	reviewCurrentMessageTemplateConstant = "\nCurrent message: %s\n"
	reviewEditPromptConstant             = "Enter new commit message: "
	reviewNewMessageTemplateConstant     = "New message: %s\n"
	reviewEditConfirmPromptConstant      = "Confirm? [y/n]: "
	reviewEditCancelledMessageConstant   = "Edit cancelled, choose again."
	reviewEmptyEditMessageConstant       = "Empty message not allowed, choose again."
	reviewInvalidChoiceMessageConstant   = "Invalid choice. Please enter y, s, e, or a."
	abbreviatedHashLengthConstant        = 8
)

// InteractiveReviewer walks the user through proposed subject changes, one
// commit at a time, rendering a word-level color diff of the suggestion.
type InteractiveReviewer struct {
	reader       *bufio.Reader
	writer       io.Writer
	differ       *diffmatchpatch.DiffMatchPatch
	deletedText  func(parts ...interface{}) string
	insertedText func(parts ...interface{}) string
}

// NewInteractiveReviewer constructs a reviewer over the provided streams.
func NewInteractiveReviewer(input io.Reader, output io.Writer) *InteractiveReviewer {
	return &InteractiveReviewer{
		reader:       bufio.NewReader(input),
		writer:       output,
		differ:       diffmatchpatch.New(),
		deletedText:  color.New(color.FgRed).SprintFunc(),
		insertedText: color.New(color.FgGreen).SprintFunc(),
	}
}

// ReviewChange presents one proposed change and returns the user's decision.
// Accept returns the suggested subject; a confirmed manual edit returns
// ReviewDecisionEdit with the edited subject.
func (reviewer *InteractiveReviewer) ReviewChange(change MessageChange, ordinal int, total int) (ReviewDecision, string, error) {
	fmt.Fprintf(reviewer.writer, "\n%s\n", reviewSeparatorConstant)
	fmt.Fprintf(reviewer.writer, reviewHeaderTemplateConstant, ordinal, total)
	fmt.Fprintf(reviewer.writer, reviewHashTemplateConstant, abbreviateHash(change.Hash))
	fmt.Fprintf(reviewer.writer, "%s\n", reviewSeparatorConstant)

	originalRendering, suggestedRendering := reviewer.renderDiff(change.OriginalSubject, change.CorrectedSubject)
	fmt.Fprintf(reviewer.writer, reviewOriginalTemplateConstant, originalRendering)
	fmt.Fprintf(reviewer.writer, reviewSuggestedTemplateConstant, suggestedRendering)

	fmt.Fprintln(reviewer.writer)
	fmt.Fprintln(reviewer.writer, reviewOptionsHeaderConstant)
	fmt.Fprintln(reviewer.writer, reviewOptionAcceptConstant)
	fmt.Fprintln(reviewer.writer, reviewOptionSkipConstant)
	fmt.Fprintln(reviewer.writer, reviewOptionEditConstant)
	fmt.Fprintln(reviewer.writer, reviewOptionAbortConstant)
	fmt.Fprintln(reviewer.writer)

	for {
		choice, readError := reviewer.prompt(reviewChoicePromptConstant)
		if readError != nil {
			return ReviewDecisionAbort, change.OriginalSubject, readError
		}

		switch choice {
		case "y", "yes":
			return ReviewDecisionAccept, change.CorrectedSubject, nil
		case "s", "skip":
			return ReviewDecisionSkip, change.OriginalSubject, nil
		case "a", "abort":
			return ReviewDecisionAbort, change.OriginalSubject, nil
		case "e", "edit":
			editedMessage, editAccepted, editError := reviewer.promptForEdit(change.OriginalSubject)
			if editError != nil {
				return ReviewDecisionAbort, change.OriginalSubject, editError
			}
			if editAccepted {
				return ReviewDecisionEdit, editedMessage, nil
			}
		default:
			fmt.Fprintln(reviewer.writer, reviewInvalidChoiceMessageConstant)
		}
	}
}

// ConfirmApply prints the accepted changes and requires a literal "yes"
// before any history is rewritten.
func (reviewer *InteractiveReviewer) ConfirmApply(acceptedChanges []MessageChange) (bool, error) {
	fmt.Fprintf(reviewer.writer, "\n%s\n", reviewSeparatorConstant)
	fmt.Fprintf(reviewer.writer, "Summary: %d commit(s) will be changed:\n", len(acceptedChanges))
	fmt.Fprintf(reviewer.writer, "%s\n", reviewSeparatorConstant)
	for _, acceptedChange := range acceptedChanges {
		fmt.Fprintf(reviewer.writer, "  • %s\n", acceptedChange.OriginalSubject)
		fmt.Fprintf(reviewer.writer, "    → %s\n\n", acceptedChange.CorrectedSubject)
	}

	response, readError := reviewer.prompt("Apply these changes? [yes/no]: ")
	if readError != nil {
		return false, readError
	}
	return response == "yes", nil
}

func (reviewer *InteractiveReviewer) promptForEdit(originalSubject string) (string, bool, error) {
	fmt.Fprintf(reviewer.writer, reviewCurrentMessageTemplateConstant, originalSubject)

	editedMessage, readError := reviewer.promptRaw(reviewEditPromptConstant)
	if readError != nil {
		return "", false, readError
	}

	editedMessage = strings.TrimSpace(editedMessage)
	if len(editedMessage) == 0 {
		fmt.Fprintln(reviewer.writer, reviewEmptyEditMessageConstant)
		return "", false, nil
	}

	fmt.Fprintf(reviewer.writer, reviewNewMessageTemplateConstant, editedMessage)
	confirmation, confirmError := reviewer.prompt(reviewEditConfirmPromptConstant)
	if confirmError != nil {
		return "", false, confirmError
	}
	if confirmation == "y" || confirmation == "yes" {
		return editedMessage, true, nil
	}

	fmt.Fprintln(reviewer.writer, reviewEditCancelledMessageConstant)
	return "", false, nil
}

func (reviewer *InteractiveReviewer) prompt(promptText string) (string, error) {
	response, readError := reviewer.promptRaw(promptText)
	if readError != nil {
		return "", readError
	}
	return strings.ToLower(strings.TrimSpace(response)), nil
}

func (reviewer *InteractiveReviewer) promptRaw(promptText string) (string, error) {
	if _, writeError := io.WriteString(reviewer.writer, promptText); writeError != nil {
		return "", writeError
	}

	response, readError := reviewer.reader.ReadString('\n')
	if readError != nil && (readError != io.EOF || len(strings.TrimSpace(response)) == 0) {
		return "", readError
	}
	return response, nil
}

// renderDiff colors removed spans red on the original line and inserted spans
// green on the suggested line.
func (reviewer *InteractiveReviewer) renderDiff(originalSubject string, correctedSubject string) (string, string) {
	diffs := reviewer.differ.DiffMain(originalSubject, correctedSubject, false)
	diffs = reviewer.differ.DiffCleanupSemantic(diffs)

	var originalRendering strings.Builder
	var suggestedRendering strings.Builder
	for _, diffPart := range diffs {
		switch diffPart.Type {
		case diffmatchpatch.DiffEqual:
			originalRendering.WriteString(diffPart.Text)
			suggestedRendering.WriteString(diffPart.Text)
		case diffmatchpatch.DiffDelete:
			originalRendering.WriteString(reviewer.deletedText(diffPart.Text))
		case diffmatchpatch.DiffInsert:
			suggestedRendering.WriteString(reviewer.insertedText(diffPart.Text))
		}
	}
	return originalRendering.String(), suggestedRendering.String()
}

func abbreviateHash(commitHash string) string {
	if len(commitHash) <= abbreviatedHashLengthConstant {
		return commitHash
	}
	return commitHash[:abbreviatedHashLengthConstant]
}
