package musicdiff_test

import (
	"bytes"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/tvetter/ordnung/internal/musicdiff"
)

func runMusicDiffCommand(testInstance *testing.T, fileSystem afero.Fs, arguments ...string) (string, error) {
	testInstance.Helper()

	builder := &musicdiff.CommandBuilder{
		FileSystem:    fileSystem,
		MountResolver: musicdiff.NewMountResolverWithDependencies(fileSystem, stubUserIDProvider),
	}
	command, buildError := builder.Build()
	require.NoError(testInstance, buildError)

	output := &bytes.Buffer{}
	command.SetOut(output)
	command.SetErr(output)
	command.SetArgs(arguments)

	executionError := command.Execute()
	return output.String(), executionError
}

func TestMusicDiffCommandComparesFolders(testInstance *testing.T) {
	fileSystem := afero.NewMemMapFs()
	writeTestFile(testInstance, fileSystem, "/first/album/one.mp3")
	writeTestFile(testInstance, fileSystem, "/first/shared.flac")
	writeTestFile(testInstance, fileSystem, "/second/shared.flac")
	writeTestFile(testInstance, fileSystem, "/second/extra.ogg")

	output, executionError := runMusicDiffCommand(testInstance, fileSystem, "/first", "/second")
	require.NoError(testInstance, executionError)

	require.Contains(testInstance, output, "Folder 1: /first")
	require.Contains(testInstance, output, "Folder 2: /second")
	require.Contains(testInstance, output, "✓ Folder 1: 2 files found")
	require.Contains(testInstance, output, "✓ Folder 2: 2 files found")
	require.Contains(testInstance, output, "💾 ONLY in folder 1 (1 files):")
	require.Contains(testInstance, output, "album/one.mp3")
	require.Contains(testInstance, output, "📱 ONLY in folder 2 (1 files):")
	require.Contains(testInstance, output, "extra.ogg")
	require.Contains(testInstance, output, "✅ In both folders (1 files)")
	require.Contains(testInstance, output, "In both:            1")
}

func TestMusicDiffCommandMissingFolderDegrades(testInstance *testing.T) {
	fileSystem := afero.NewMemMapFs()
	writeTestFile(testInstance, fileSystem, "/first/song.mp3")

	output, executionError := runMusicDiffCommand(testInstance, fileSystem, "/first", "/absent")
	require.NoError(testInstance, executionError)

	require.Contains(testInstance, output, "⚠ Folder does not exist: /absent")
	require.Contains(testInstance, output, "✓ Folder 2: 0 files found")
	require.Contains(testInstance, output, "Only in folder 1:   1")
}

func TestMusicDiffCommandDevicePathArgument(testInstance *testing.T) {
	fileSystem := afero.NewMemMapFs()
	writeTestFile(testInstance, fileSystem, "/home/user/Music/song.mp3")
	writeTestFile(testInstance, fileSystem, "/run/user/1000/gvfs/mtp:host=SAMSUNG/Internal storage/Music/song.mp3")

	output, executionError := runMusicDiffCommand(testInstance, fileSystem, "/home/user/Music", "mtp://[usb:001,004]/Internal%20storage/Music")
	require.NoError(testInstance, executionError)

	require.Contains(testInstance, output, "MTP path detected, resolving local mount...")
	require.Contains(testInstance, output, "✅ In both folders (1 files)")
}

func TestMusicDiffCommandLogsThroughProvidedLogger(testInstance *testing.T) {
	fileSystem := afero.NewMemMapFs()
	writeTestFile(testInstance, fileSystem, "/first/shared.flac")
	writeTestFile(testInstance, fileSystem, "/second/shared.flac")

	core, recordedLogs := observer.New(zapcore.DebugLevel)
	builder := &musicdiff.CommandBuilder{
		FileSystem:     fileSystem,
		MountResolver:  musicdiff.NewMountResolverWithDependencies(fileSystem, stubUserIDProvider),
		LoggerProvider: func() *zap.Logger { return zap.New(core) },
	}
	command, buildError := builder.Build()
	require.NoError(testInstance, buildError)

	output := &bytes.Buffer{}
	command.SetOut(output)
	command.SetErr(output)
	command.SetArgs([]string{"/first", "/second"})

	require.NoError(testInstance, command.Execute())

	entries := recordedLogs.FilterMessage("music folder comparison finished").All()
	require.Len(testInstance, entries, 1)
	require.Equal(testInstance, int64(1), entries[0].ContextMap()["shared_files"])
}

func TestMusicDiffCommandRejectsWrongArgumentCount(testInstance *testing.T) {
	_, executionError := runMusicDiffCommand(testInstance, afero.NewMemMapFs(), "/only-one")
	require.Error(testInstance, executionError)
}
