package commitfix

// Language identifies the detected language of a commit subject.
type Language string

// Supported subject languages.
const (
	LanguageEnglish Language = "en"
	LanguageGerman  Language = "de"
)

// MessageChange pairs a commit with its proposed corrected subject.
type MessageChange struct {
	Hash             string
	OriginalSubject  string
	CorrectedSubject string
	Language         Language
}

// ReviewDecision captures the reviewer's answer for one proposed change.
type ReviewDecision int

// Review decisions available during the interactive pass.
const (
	ReviewDecisionAccept ReviewDecision = iota
	ReviewDecisionSkip
	ReviewDecisionEdit
	ReviewDecisionAbort
)

// RepositoryStatus classifies the outcome for one repository.
type RepositoryStatus string

// Repository outcome statuses reported in the run summary.
const (
	RepositoryStatusCorrected RepositoryStatus = "corrected"
	RepositoryStatusClean     RepositoryStatus = "clean"
	RepositoryStatusSkipped   RepositoryStatus = "skipped"
)

// RepositoryOutcome records how one repository was handled.
type RepositoryOutcome struct {
	RepositoryPath string
	Status         RepositoryStatus
	Reason         string
	ChangeCount    int
}

// CommandOptions carries the resolved fix-commits invocation parameters.
type CommandOptions struct {
	RootPath       string
	VocabularyPath string
}
