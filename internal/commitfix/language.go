package commitfix

import (
	"github.com/pemistahl/lingua-go"
)

// LinguaLanguageDetector classifies commit subjects with a two-language lingua model.
// Subjects the model cannot classify are treated as English.
type LinguaLanguageDetector struct {
	detector lingua.LanguageDetector
}

// NewLinguaLanguageDetector builds a detector restricted to English and German.
func NewLinguaLanguageDetector() *LinguaLanguageDetector {
	detector := lingua.NewLanguageDetectorBuilder().
		FromLanguages(lingua.English, lingua.German).
		Build()
	return &LinguaLanguageDetector{detector: detector}
}

// DetectLanguage returns LanguageGerman for German subjects and LanguageEnglish otherwise.
func (languageDetector *LinguaLanguageDetector) DetectLanguage(subjectText string) Language {
	detectedLanguage, detectionSucceeded := languageDetector.detector.DetectLanguageOf(subjectText)
	if !detectionSucceeded {
		return LanguageEnglish
	}
	if detectedLanguage == lingua.German {
		return LanguageGerman
	}
	return LanguageEnglish
}
