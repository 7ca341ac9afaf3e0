package commitfix

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	phrasePatternTemplateConstant          = `(?i)\b%s\b`
	vocabularyReadErrorTemplateConstant    = "failed to read vocabulary overlay %s: %w"
	vocabularyParseErrorTemplateConstant   = "failed to parse vocabulary overlay %s: %w"
	vocabularyPatternErrorTemplateConstant = "invalid phrase pattern %q in vocabulary overlay: %w"
)

// PhraseRule rewrites a multi-word phrase before token-level correction runs.
// Matching is case-insensitive and only the first occurrence is replaced.
type PhraseRule struct {
	Pattern     *regexp.Regexp
	Replacement string
}

// Vocabulary holds the curated word sets and phrase rules for both languages.
type Vocabulary struct {
	LowercaseWordsEnglish  map[string]struct{}
	CapitalizedNounsGerman map[string]struct{}
	AlwaysCapitalized      map[string]struct{}
	PhraseRulesEnglish     []PhraseRule
	PhraseRulesGerman      []PhraseRule
}

// vocabularyOverlay is the YAML shape of an optional user-provided extension file.
type vocabularyOverlay struct {
	LowercaseWords []string          `yaml:"lowercase_words"`
	GermanNouns    []string          `yaml:"german_nouns"`
	ProperNouns    []string          `yaml:"proper_nouns"`
	EnglishPhrases map[string]string `yaml:"english_phrases"`
	GermanPhrases  map[string]string `yaml:"german_phrases"`
}

var builtinLowercaseWordsEnglish = []string{
	"insights", "script", "scripts", "file", "files", "function", "functions",
	"method", "methods", "class", "classes", "module", "modules", "package",
	"packages", "library", "libraries", "framework", "tool", "tools", "code",
	"documentation", "readme", "license", "configuration", "settings", "options",
	"feature", "features", "bug", "bugs", "issue", "issues", "test", "tests",
	"database", "server", "client", "api", "interface", "component", "components",
	"service", "services", "application", "applications", "system", "systems",
	"version", "release", "update", "updates", "change", "changes", "fix", "fixes",
	"refactor", "refactoring", "optimization", "performance", "security", "style",
	"formatting", "dependency", "dependencies", "build", "deployment", "testing",
	"implementation", "design", "architecture", "structure", "logic", "algorithm",
	"data", "model", "models", "view", "views", "controller", "controllers",
	"repository", "repositories", "folder", "folders", "directory", "directories",
	"thesis", "theses", "references", "reference", "education", "subject",
}

var builtinCapitalizedNounsGerman = []string{
	"datei", "dateien", "ordner", "verzeichnis", "verzeichnisse", "funktion",
	"funktionen", "methode", "methoden", "klasse", "klassen", "modul", "module",
	"paket", "pakete", "bibliothek", "bibliotheken", "werkzeug", "werkzeuge",
	"code", "dokumentation", "konfiguration", "einstellungen", "optionen",
	"feature", "features", "fehler", "problem", "probleme", "test", "tests",
	"datenbank", "server", "client", "schnittstelle", "komponente", "komponenten",
	"dienst", "dienste", "anwendung", "anwendungen", "system", "systeme",
	"version", "release", "aktualisierung", "änderung", "änderungen", "bugfix",
	"refactoring", "optimierung", "performance", "sicherheit", "stil", "formatierung",
	"abhängigkeit", "abhängigkeiten", "build", "deployment", "implementierung",
	"design", "architektur", "struktur", "logik", "algorithmus", "daten",
	"modell", "modelle", "ansicht", "ansichten", "controller", "repository",
	"repositories", "thesis", "arbeit", "abschlussarbeit",
	"bachelorarbeit", "masterarbeit", "referenzen", "referenz", "bildung",
	"ausbildung", "studium", "fach", "fächer", "einblick", "einblicke",
	"skript", "skripte", "stärke", "stärken", "lebenslauf", "readme",
	// English words that show up in German commit subjects.
	"insights", "script",
}

var builtinAlwaysCapitalized = []string{
	"python", "java", "javascript", "typescript", "github", "gitlab", "docker",
	"kubernetes", "react", "vue", "angular", "node", "sql", "html", "css",
	"json", "xml", "yaml", "api", "rest", "graphql", "aws", "azure", "gcp",
	"linux", "windows", "macos", "android", "ios", "git", "npm", "yarn",
	"webpack", "babel", "eslint", "prettier", "jest", "mocha", "redux",
	"mongodb", "postgresql", "mysql", "redis", "elasticsearch", "kafka",
	"jenkins", "travis", "circleci", "heroku", "netlify", "vercel",
	"gallup",
}

var builtinPhrasePairsEnglish = [][2]string{
	{"bachelor thesis", "bachelor's thesis"},
	{"master thesis", "master's thesis"},
	{"bachelor theses", "bachelor's theses"},
	{"master theses", "master's theses"},
	{"doctor thesis", "doctoral thesis"},
}

var builtinPhrasePairsGerman = [][2]string{
	{"bachelor thesis", "Bachelorarbeit"},
	{"master thesis", "Masterarbeit"},
}

// NewBuiltinVocabulary returns the compiled-in vocabulary.
func NewBuiltinVocabulary() *Vocabulary {
	vocabulary := &Vocabulary{
		LowercaseWordsEnglish:  wordSet(builtinLowercaseWordsEnglish),
		CapitalizedNounsGerman: wordSet(builtinCapitalizedNounsGerman),
		AlwaysCapitalized:      wordSet(builtinAlwaysCapitalized),
	}
	for _, phrasePair := range builtinPhrasePairsEnglish {
		vocabulary.PhraseRulesEnglish = append(vocabulary.PhraseRulesEnglish, mustPhraseRule(phrasePair[0], phrasePair[1]))
	}
	for _, phrasePair := range builtinPhrasePairsGerman {
		vocabulary.PhraseRulesGerman = append(vocabulary.PhraseRulesGerman, mustPhraseRule(phrasePair[0], phrasePair[1]))
	}
	return vocabulary
}

// LoadVocabulary returns the builtin vocabulary extended by the optional YAML
// overlay at overlayPath. An empty path yields the builtin vocabulary.
func LoadVocabulary(overlayPath string) (*Vocabulary, error) {
	vocabulary := NewBuiltinVocabulary()
	if len(overlayPath) == 0 {
		return vocabulary, nil
	}

	overlayData, readError := os.ReadFile(overlayPath)
	if readError != nil {
		return nil, fmt.Errorf(vocabularyReadErrorTemplateConstant, overlayPath, readError)
	}

	overlay := vocabularyOverlay{}
	if parseError := yaml.Unmarshal(overlayData, &overlay); parseError != nil {
		return nil, fmt.Errorf(vocabularyParseErrorTemplateConstant, overlayPath, parseError)
	}

	for _, word := range overlay.LowercaseWords {
		vocabulary.LowercaseWordsEnglish[strings.ToLower(word)] = struct{}{}
	}
	for _, word := range overlay.GermanNouns {
		vocabulary.CapitalizedNounsGerman[strings.ToLower(word)] = struct{}{}
	}
	for _, word := range overlay.ProperNouns {
		vocabulary.AlwaysCapitalized[strings.ToLower(word)] = struct{}{}
	}

	englishRules, englishRulesError := overlayPhraseRules(overlay.EnglishPhrases)
	if englishRulesError != nil {
		return nil, englishRulesError
	}
	vocabulary.PhraseRulesEnglish = append(vocabulary.PhraseRulesEnglish, englishRules...)

	germanRules, germanRulesError := overlayPhraseRules(overlay.GermanPhrases)
	if germanRulesError != nil {
		return nil, germanRulesError
	}
	vocabulary.PhraseRulesGerman = append(vocabulary.PhraseRulesGerman, germanRules...)

	return vocabulary, nil
}

// PhraseRulesFor returns the phrase rules for the detected language.
func (vocabulary *Vocabulary) PhraseRulesFor(language Language) []PhraseRule {
	if language == LanguageGerman {
		return vocabulary.PhraseRulesGerman
	}
	return vocabulary.PhraseRulesEnglish
}

func overlayPhraseRules(phrasePairs map[string]string) ([]PhraseRule, error) {
	var phraseRules []PhraseRule
	for phrasePattern, phraseReplacement := range phrasePairs {
		compiledPattern, compileError := regexp.Compile(fmt.Sprintf(phrasePatternTemplateConstant, regexp.QuoteMeta(phrasePattern)))
		if compileError != nil {
			return nil, fmt.Errorf(vocabularyPatternErrorTemplateConstant, phrasePattern, compileError)
		}
		phraseRules = append(phraseRules, PhraseRule{Pattern: compiledPattern, Replacement: phraseReplacement})
	}
	return phraseRules, nil
}

func mustPhraseRule(phrasePattern string, phraseReplacement string) PhraseRule {
	return PhraseRule{
		Pattern:     regexp.MustCompile(fmt.Sprintf(phrasePatternTemplateConstant, regexp.QuoteMeta(phrasePattern))),
		Replacement: phraseReplacement,
	}
}

func wordSet(words []string) map[string]struct{} {
	wordMembership := make(map[string]struct{}, len(words))
	for _, word := range words {
		wordMembership[word] = struct{}{}
	}
	return wordMembership
}
