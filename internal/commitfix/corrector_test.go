package commitfix_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tvetter/ordnung/internal/commitfix"
)

const correctorSubtestNameTemplateConstant = "%d_%s"

type staticLanguageDetector struct {
	language commitfix.Language
}

func (detector staticLanguageDetector) DetectLanguage(string) commitfix.Language {
	return detector.language
}

type stubSpeller struct {
	knownByDefault bool
	suggestions    map[string]string
}

func (speller stubSpeller) IsKnown(word string) bool {
	if _, hasSuggestion := speller.suggestions[word]; hasSuggestion {
		return false
	}
	return speller.knownByDefault
}

func (speller stubSpeller) Suggest(word string) string {
	return speller.suggestions[word]
}

type stubSpellerProvider struct {
	speller commitfix.Speller
}

func (provider stubSpellerProvider) SpellerFor(commitfix.Language) commitfix.Speller {
	return provider.speller
}

func newTestCorrector(language commitfix.Language, speller commitfix.Speller) *commitfix.Corrector {
	return commitfix.NewCorrector(
		staticLanguageDetector{language: language},
		stubSpellerProvider{speller: speller},
		commitfix.NewBuiltinVocabulary(),
	)
}

func TestCorrectorEnglishRules(testInstance *testing.T) {
	testCases := []struct {
		name            string
		subject         string
		suggestions     map[string]string
		expectedSubject string
	}{
		{
			name:            "first_word_capitalized",
			subject:         "fix typo in readme",
			expectedSubject: "Fix typo in readme",
		},
		{
			name:            "tokens_with_path_characters_untouched",
			subject:         "Update src/main.go and docs",
			expectedSubject: "Update src/main.go and docs",
		},
		{
			name:            "all_caps_acronyms_untouched",
			subject:         "Add README and TODO",
			expectedSubject: "Add README and TODO",
		},
		{
			name:            "common_words_lowercased_mid_sentence",
			subject:         "Update Documentation and Tests",
			expectedSubject: "Update documentation and tests",
		},
		{
			name:            "proper_nouns_title_cased",
			subject:         "Add python script for github",
			expectedSubject: "Add Python script for Github",
		},
		{
			name:            "phrase_rule_applied",
			subject:         "Finish master thesis chapter",
			expectedSubject: "Finish master's thesis chapter",
		},
		{
			name:            "phrase_rule_preserves_leading_case",
			subject:         "Master thesis finished",
			expectedSubject: "Master's thesis finished",
		},
		{
			name:            "unknown_word_corrected",
			subject:         "Fix speling in readme",
			suggestions:     map[string]string{"speling": "spelling"},
			expectedSubject: "Fix spelling in readme",
		},
		{
			name:            "correction_lowercased_mid_sentence",
			subject:         "Fix Speling in readme",
			suggestions:     map[string]string{"speling": "spelling"},
			expectedSubject: "Fix spelling in readme",
		},
		{
			name:            "surrounding_punctuation_kept",
			subject:         "Fix speling!",
			suggestions:     map[string]string{"speling": "spelling"},
			expectedSubject: "Fix spelling!",
		},
	}

	for testCaseIndex, testCase := range testCases {
		testInstance.Run(fmt.Sprintf(correctorSubtestNameTemplateConstant, testCaseIndex, testCase.name), func(testInstance *testing.T) {
			corrector := newTestCorrector(commitfix.LanguageEnglish, stubSpeller{
				knownByDefault: true,
				suggestions:    testCase.suggestions,
			})

			correctedSubject, detectedLanguage := corrector.CorrectSubject(testCase.subject)
			require.Equal(testInstance, commitfix.LanguageEnglish, detectedLanguage)
			require.Equal(testInstance, testCase.expectedSubject, correctedSubject)
		})
	}
}

func TestCorrectorGermanRules(testInstance *testing.T) {
	testCases := []struct {
		name            string
		subject         string
		expectedSubject string
	}{
		{
			name:            "nouns_capitalized",
			subject:         "Korrigiere fehler in datei",
			expectedSubject: "Korrigiere Fehler in Datei",
		},
		{
			name:            "umlaut_nouns_capitalized",
			subject:         "Neue änderungen eingebaut",
			expectedSubject: "Neue Änderungen eingebaut",
		},
		{
			name:            "phrase_rule_applied",
			subject:         "Master Thesis abgeschlossen",
			expectedSubject: "Masterarbeit abgeschlossen",
		},
		{
			name:            "first_word_capitalized",
			subject:         "korrigiere die dokumentation",
			expectedSubject: "Korrigiere die Dokumentation",
		},
	}

	for testCaseIndex, testCase := range testCases {
		testInstance.Run(fmt.Sprintf(correctorSubtestNameTemplateConstant, testCaseIndex, testCase.name), func(testInstance *testing.T) {
			corrector := newTestCorrector(commitfix.LanguageGerman, stubSpeller{knownByDefault: true})

			correctedSubject, detectedLanguage := corrector.CorrectSubject(testCase.subject)
			require.Equal(testInstance, commitfix.LanguageGerman, detectedLanguage)
			require.Equal(testInstance, testCase.expectedSubject, correctedSubject)
		})
	}
}

func TestCorrectorIdempotence(testInstance *testing.T) {
	subjects := []string{
		"Fix typo in readme",
		"Add Python script for the build",
		"Finish master's thesis chapter",
		"Update src/main.go and docs",
	}

	corrector := newTestCorrector(commitfix.LanguageEnglish, stubSpeller{knownByDefault: true})

	for _, subject := range subjects {
		firstPass, _ := corrector.CorrectSubject(subject)
		secondPass, _ := corrector.CorrectSubject(firstPass)
		require.Equal(testInstance, firstPass, secondPass)
	}
}
