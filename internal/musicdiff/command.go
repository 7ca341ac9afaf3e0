package musicdiff

import (
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	pathutils "github.com/tvetter/ordnung/internal/utils/path"
)

const (
	commandUseConstant               = "music-diff <folder1> <folder2>"
	commandShortDescriptionConstant  = "Compare the music files of two folders"
	commandLongDescriptionConstant   = "music-diff scans two folders recursively for music files and reports which files exist only on one side. MTP/GVFS device URLs are resolved to their local mount before scanning."
	comparisonDoneMessageConstant    = "music folder comparison finished"
	firstFolderCountFieldConstant    = "first_folder_files"
	secondFolderCountFieldConstant   = "second_folder_files"
	sharedFileCountFieldConstant     = "shared_files"
)

// LoggerProvider yields a zap logger for command execution.
type LoggerProvider func() *zap.Logger

// CommandBuilder assembles the music-diff command with configurable dependencies.
type CommandBuilder struct {
	LoggerProvider LoggerProvider
	FileSystem     afero.Fs
	MountResolver  *MountResolver
}

// Build constructs the music-diff command.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   commandUseConstant,
		Short: commandShortDescriptionConstant,
		Long:  commandLongDescriptionConstant,
		Args:  cobra.ExactArgs(2),
		RunE:  builder.run,
	}

	return command, nil
}

func (builder *CommandBuilder) run(command *cobra.Command, arguments []string) error {
	fileSystem := builder.resolveFileSystem()
	mountResolver := builder.resolveMountResolver(fileSystem)
	logger := builder.resolveLogger()
	homeExpander := pathutils.NewHomeExpander()
	outputWriter := command.OutOrStdout()

	firstFolder := expandUnlessDeviceShare(homeExpander, arguments[0])
	secondFolder := expandUnlessDeviceShare(homeExpander, arguments[1])

	WriteComparisonHeader(outputWriter, firstFolder, secondFolder)

	scanner := NewFolderScanner(fileSystem, mountResolver, outputWriter)

	firstFiles := scanner.ScanMusicFiles(firstFolder)
	WriteScanResult(outputWriter, 1, len(firstFiles))

	secondFiles := scanner.ScanMusicFiles(secondFolder)
	WriteScanResult(outputWriter, 2, len(secondFiles))

	diff := ComputeDiff(firstFiles, secondFiles)
	WriteDiffReport(outputWriter, diff, len(firstFiles), len(secondFiles))

	logger.Debug(comparisonDoneMessageConstant,
		zap.Int(firstFolderCountFieldConstant, len(firstFiles)),
		zap.Int(secondFolderCountFieldConstant, len(secondFiles)),
		zap.Int(sharedFileCountFieldConstant, len(diff.InBoth)),
	)

	return nil
}

func (builder *CommandBuilder) resolveFileSystem() afero.Fs {
	if builder.FileSystem == nil {
		return afero.NewOsFs()
	}
	return builder.FileSystem
}

func (builder *CommandBuilder) resolveMountResolver(fileSystem afero.Fs) *MountResolver {
	if builder.MountResolver == nil {
		return NewMountResolverWithDependencies(fileSystem, nil)
	}
	return builder.MountResolver
}

func (builder *CommandBuilder) resolveLogger() *zap.Logger {
	if builder.LoggerProvider == nil {
		return zap.NewNop()
	}
	logger := builder.LoggerProvider()
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}

func expandUnlessDeviceShare(homeExpander *pathutils.HomeExpander, folderArgument string) string {
	if IsDeviceSharePath(folderArgument) {
		return folderArgument
	}
	return homeExpander.Expand(folderArgument)
}
