package commitfix

import (
	_ "embed"
	"strings"

	"github.com/sajari/fuzzy"
)

//go:embed dictionaries/english.txt
var englishDictionaryData string

//go:embed dictionaries/german.txt
var germanDictionaryData string

const (
	spellingModelDepthConstant      = 2
	spellingModelThresholdConstant  = 1
	dictionaryCommentPrefixConstant = "#"
)

// FuzzySpeller answers dictionary membership and proposes edit-distance
// corrections from a trained fuzzy model.
type FuzzySpeller struct {
	knownWords map[string]struct{}
	model      *fuzzy.Model
}

// NewFuzzySpeller trains a speller on the provided lowercase word list.
func NewFuzzySpeller(dictionaryWords []string) *FuzzySpeller {
	model := fuzzy.NewModel()
	model.SetDepth(spellingModelDepthConstant)
	model.SetThreshold(spellingModelThresholdConstant)

	knownWords := make(map[string]struct{}, len(dictionaryWords))
	trainingWords := make([]string, 0, len(dictionaryWords))
	for _, dictionaryWord := range dictionaryWords {
		normalizedWord := strings.ToLower(strings.TrimSpace(dictionaryWord))
		if len(normalizedWord) == 0 {
			continue
		}
		if _, alreadyKnown := knownWords[normalizedWord]; alreadyKnown {
			continue
		}
		knownWords[normalizedWord] = struct{}{}
		trainingWords = append(trainingWords, normalizedWord)
	}
	model.Train(trainingWords)

	return &FuzzySpeller{knownWords: knownWords, model: model}
}

// NewEnglishSpeller trains a speller on the embedded English dictionary plus
// the vocabulary's English word sets.
func NewEnglishSpeller(vocabulary *Vocabulary) *FuzzySpeller {
	dictionaryWords := parseDictionary(englishDictionaryData)
	dictionaryWords = append(dictionaryWords, setWords(vocabulary.LowercaseWordsEnglish)...)
	dictionaryWords = append(dictionaryWords, setWords(vocabulary.AlwaysCapitalized)...)
	return NewFuzzySpeller(dictionaryWords)
}

// NewGermanSpeller trains a speller on the embedded German dictionary plus
// the vocabulary's German word sets.
func NewGermanSpeller(vocabulary *Vocabulary) *FuzzySpeller {
	dictionaryWords := parseDictionary(germanDictionaryData)
	dictionaryWords = append(dictionaryWords, setWords(vocabulary.CapitalizedNounsGerman)...)
	dictionaryWords = append(dictionaryWords, setWords(vocabulary.AlwaysCapitalized)...)
	return NewFuzzySpeller(dictionaryWords)
}

// IsKnown reports whether the lowercase form of word is in the dictionary.
func (speller *FuzzySpeller) IsKnown(word string) bool {
	_, wordKnown := speller.knownWords[strings.ToLower(word)]
	return wordKnown
}

// Suggest returns the model's best correction for an unknown word, or the
// empty string when no candidate is close enough.
func (speller *FuzzySpeller) Suggest(word string) string {
	return speller.model.SpellCheck(strings.ToLower(word))
}

// StaticSpellerProvider hands out one pre-trained speller per language.
type StaticSpellerProvider struct {
	englishSpeller Speller
	germanSpeller  Speller
}

// NewStaticSpellerProvider trains both language spellers from the vocabulary.
func NewStaticSpellerProvider(vocabulary *Vocabulary) *StaticSpellerProvider {
	return &StaticSpellerProvider{
		englishSpeller: NewEnglishSpeller(vocabulary),
		germanSpeller:  NewGermanSpeller(vocabulary),
	}
}

// SpellerFor returns the speller matching the detected language.
func (provider *StaticSpellerProvider) SpellerFor(language Language) Speller {
	if language == LanguageGerman {
		return provider.germanSpeller
	}
	return provider.englishSpeller
}

func parseDictionary(dictionaryData string) []string {
	var dictionaryWords []string
	for _, dictionaryLine := range strings.Split(dictionaryData, "\n") {
		trimmedLine := strings.TrimSpace(dictionaryLine)
		if len(trimmedLine) == 0 || strings.HasPrefix(trimmedLine, dictionaryCommentPrefixConstant) {
			continue
		}
		dictionaryWords = append(dictionaryWords, trimmedLine)
	}
	return dictionaryWords
}

func setWords(wordMembership map[string]struct{}) []string {
	words := make([]string, 0, len(wordMembership))
	for word := range wordMembership {
		words = append(words, word)
	}
	return words
}
