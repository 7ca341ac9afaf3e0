package musicdiff_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tvetter/ordnung/internal/musicdiff"
)

func TestComputeDiffPartitionsTheUnion(testInstance *testing.T) {
	firstFiles := map[string]string{
		"album/one.mp3":  "/first/album/one.mp3",
		"album/two.mp3":  "/first/album/two.mp3",
		"single.flac":    "/first/single.flac",
		"shared/hit.ogg": "/first/shared/hit.ogg",
	}
	secondFiles := map[string]string{
		"shared/hit.ogg": "/second/shared/hit.ogg",
		"single.flac":    "/second/single.flac",
		"extra/new.m4a":  "/second/extra/new.m4a",
	}

	diff := musicdiff.ComputeDiff(firstFiles, secondFiles)

	require.Equal(testInstance, []string{"album/one.mp3", "album/two.mp3"}, diff.OnlyInFirst)
	require.Equal(testInstance, []string{"extra/new.m4a"}, diff.OnlyInSecond)
	require.Equal(testInstance, []string{"shared/hit.ogg", "single.flac"}, diff.InBoth)

	unionSize := len(diff.OnlyInFirst) + len(diff.OnlyInSecond) + len(diff.InBoth)
	require.Equal(testInstance, 5, unionSize)
}

func TestComputeDiffEmptyInputs(testInstance *testing.T) {
	diff := musicdiff.ComputeDiff(map[string]string{}, map[string]string{})

	require.Empty(testInstance, diff.OnlyInFirst)
	require.Empty(testInstance, diff.OnlyInSecond)
	require.Empty(testInstance, diff.InBoth)
}
