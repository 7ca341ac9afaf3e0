package commitfix

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	tokenSkipCharactersConstant    = "/:@#_-"
	surroundingPunctuationConstant = ".,!?;:\"'()[]{}"
	tokenJoinSeparatorConstant     = " "
)

// Corrector applies phrase substitutions, capitalization heuristics, and
// dictionary-based spelling corrections to commit subjects. The pipeline is
// idempotent on subjects that already satisfy every rule.
type Corrector struct {
	detector    LanguageDetector
	spellers    SpellerProvider
	vocabulary  *Vocabulary
	titleCasers map[Language]cases.Caser
}

// NewCorrector wires a corrector from its language detector, spellers, and vocabulary.
func NewCorrector(detector LanguageDetector, spellers SpellerProvider, vocabulary *Vocabulary) *Corrector {
	return &Corrector{
		detector:   detector,
		spellers:   spellers,
		vocabulary: vocabulary,
		titleCasers: map[Language]cases.Caser{
			LanguageEnglish: cases.Title(language.English),
			LanguageGerman:  cases.Title(language.German),
		},
	}
}

// CorrectSubject returns the corrected form of a commit subject together with
// the detected language. Subjects needing no changes are returned verbatim.
func (corrector *Corrector) CorrectSubject(subjectText string) (string, Language) {
	detectedLanguage := corrector.detector.DetectLanguage(subjectText)
	speller := corrector.spellers.SpellerFor(detectedLanguage)

	correctedText := corrector.applyPhraseRules(subjectText, detectedLanguage)

	tokens := strings.Fields(correctedText)
	correctedTokens := make([]string, 0, len(tokens))

	for tokenIndex, token := range tokens {
		correctedTokens = append(correctedTokens, corrector.correctToken(token, tokenIndex, detectedLanguage, speller))
	}

	return strings.Join(correctedTokens, tokenJoinSeparatorConstant), detectedLanguage
}

// applyPhraseRules rewrites the first occurrence of each phrase pattern,
// preserving the case of the matched span's first letter.
func (corrector *Corrector) applyPhraseRules(subjectText string, detectedLanguage Language) string {
	correctedText := subjectText
	for _, phraseRule := range corrector.vocabulary.PhraseRulesFor(detectedLanguage) {
		matchSpan := phraseRule.Pattern.FindStringIndex(correctedText)
		if matchSpan == nil {
			continue
		}

		matchedText := correctedText[matchSpan[0]:matchSpan[1]]
		replacementText := phraseRule.Replacement
		if firstRuneIsUpper(matchedText) {
			replacementText = upperFirstRune(replacementText)
		}

		correctedText = correctedText[:matchSpan[0]] + replacementText + correctedText[matchSpan[1]:]
	}
	return correctedText
}

func (corrector *Corrector) correctToken(token string, tokenIndex int, detectedLanguage Language, speller Speller) string {
	// Paths, URLs, issue references, and snake/kebab identifiers are left alone.
	if strings.ContainsAny(token, tokenSkipCharactersConstant) {
		return token
	}

	// All-caps tokens longer than one rune are treated as acronyms.
	if isAllUpper(token) && utf8.RuneCountInString(token) > 1 {
		return token
	}

	cleanWord := strings.Trim(token, surroundingPunctuationConstant)
	if len(cleanWord) == 0 {
		return token
	}

	if tokenIndex == 0 {
		if firstRuneIsLower(cleanWord) {
			return strings.Replace(token, cleanWord, corrector.capitalize(cleanWord, detectedLanguage), 1)
		}
		return token
	}

	lowercaseWord := strings.ToLower(cleanWord)

	if detectedLanguage == LanguageGerman {
		if _, isGermanNoun := corrector.vocabulary.CapitalizedNounsGerman[lowercaseWord]; isGermanNoun {
			if firstRuneIsLower(cleanWord) {
				return strings.Replace(token, cleanWord, corrector.capitalize(cleanWord, detectedLanguage), 1)
			}
			return token
		}
	} else {
		_, isCommonWord := corrector.vocabulary.LowercaseWordsEnglish[lowercaseWord]
		if isCommonWord && firstRuneIsUpper(cleanWord) {
			if _, isProperNoun := corrector.vocabulary.AlwaysCapitalized[lowercaseWord]; !isProperNoun {
				return strings.Replace(token, cleanWord, lowercaseWord, 1)
			}
			return token
		}
	}

	if _, isProperNoun := corrector.vocabulary.AlwaysCapitalized[lowercaseWord]; isProperNoun {
		properCase := corrector.capitalize(lowercaseWord, detectedLanguage)
		if cleanWord != properCase {
			return strings.Replace(token, cleanWord, properCase, 1)
		}
		return token
	}

	if speller.IsKnown(lowercaseWord) {
		return token
	}

	suggestedWord := speller.Suggest(lowercaseWord)
	if len(suggestedWord) == 0 || suggestedWord == lowercaseWord {
		return token
	}

	if detectedLanguage == LanguageGerman {
		// German keeps the source capitalization; dictionary case is not reliable
		// enough to decide whether an unknown word is a noun.
		if tokenIndex > 0 && firstRuneIsUpper(suggestedWord) {
			suggestedWord = corrector.capitalize(suggestedWord, detectedLanguage)
		} else if firstRuneIsUpper(cleanWord) {
			suggestedWord = corrector.capitalize(suggestedWord, detectedLanguage)
		} else {
			suggestedWord = strings.ToLower(suggestedWord)
		}
	} else {
		if firstRuneIsUpper(cleanWord) && tokenIndex > 0 {
			suggestedWord = strings.ToLower(suggestedWord)
		} else if firstRuneIsUpper(cleanWord) {
			suggestedWord = corrector.capitalize(suggestedWord, detectedLanguage)
		}
	}

	return strings.Replace(token, cleanWord, suggestedWord, 1)
}

func (corrector *Corrector) capitalize(word string, detectedLanguage Language) string {
	titleCaser, caserKnown := corrector.titleCasers[detectedLanguage]
	if !caserKnown {
		titleCaser = corrector.titleCasers[LanguageEnglish]
	}
	return titleCaser.String(strings.ToLower(word))
}

func firstRuneIsUpper(text string) bool {
	firstRune, _ := utf8.DecodeRuneInString(text)
	return unicode.IsUpper(firstRune)
}

func firstRuneIsLower(text string) bool {
	firstRune, _ := utf8.DecodeRuneInString(text)
	return unicode.IsLower(firstRune)
}

func upperFirstRune(text string) string {
	firstRune, firstRuneSize := utf8.DecodeRuneInString(text)
	if firstRune == utf8.RuneError {
		return text
	}
	return string(unicode.ToUpper(firstRune)) + text[firstRuneSize:]
}

func isAllUpper(text string) bool {
	hasCasedRune := false
	for _, textRune := range text {
		if unicode.IsLower(textRune) {
			return false
		}
		if unicode.IsUpper(textRune) {
			hasCasedRune = true
		}
	}
	return hasCasedRune
}
