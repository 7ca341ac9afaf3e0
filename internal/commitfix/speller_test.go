package commitfix_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tvetter/ordnung/internal/commitfix"
)

func TestFuzzySpellerMembershipAndSuggestions(testInstance *testing.T) {
	speller := commitfix.NewFuzzySpeller([]string{"spelling", "message", "commit"})

	require.True(testInstance, speller.IsKnown("spelling"))
	require.True(testInstance, speller.IsKnown("Spelling"))
	require.False(testInstance, speller.IsKnown("speling"))

	require.Equal(testInstance, "spelling", speller.Suggest("speling"))
	require.Equal(testInstance, "message", speller.Suggest("mesage"))
}

func TestLanguageSpellersKnowTheirVocabulary(testInstance *testing.T) {
	vocabulary := commitfix.NewBuiltinVocabulary()

	englishSpeller := commitfix.NewEnglishSpeller(vocabulary)
	require.True(testInstance, englishSpeller.IsKnown("documentation"))
	require.True(testInstance, englishSpeller.IsKnown("python"))

	germanSpeller := commitfix.NewGermanSpeller(vocabulary)
	require.True(testInstance, germanSpeller.IsKnown("änderungen"))
	require.True(testInstance, germanSpeller.IsKnown("rechtschreibung"))
}
