package musicdiff

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

const (
	devicePathNoticeConstant            = "   MTP path detected, resolving local mount...\n"
	deviceMountResolvedTemplateConstant = "   → Using local mount path: %s\n"
	deviceMountMissingNoticeConstant    = "   ⚠ Could not resolve the device path to a local mount\n   Make sure the device is connected and mounted; check with: ls /run/user/$(id -u)/gvfs/\n"
	missingFolderTemplateConstant       = "⚠ Folder does not exist: %s\n"
	scanningFolderTemplateConstant      = "   Scanning: %s\n"
	scanFailureTemplateConstant         = "⚠ Error while scanning: %v\n"
)

var musicFileExtensions = map[string]struct{}{
	".mp3":  {},
	".flac": {},
	".wav":  {},
	".m4a":  {},
	".aac":  {},
	".ogg":  {},
	".wma":  {},
}

// FolderScanner collects music files beneath a folder, resolving device URLs
// through the mount resolver first.
type FolderScanner struct {
	fileSystem    afero.Fs
	mountResolver *MountResolver
	outputWriter  io.Writer
}

// NewFolderScanner constructs a scanner over the provided filesystem and resolver.
func NewFolderScanner(fileSystem afero.Fs, mountResolver *MountResolver, outputWriter io.Writer) *FolderScanner {
	if fileSystem == nil {
		fileSystem = afero.NewOsFs()
	}
	if mountResolver == nil {
		mountResolver = NewMountResolver()
	}
	return &FolderScanner{fileSystem: fileSystem, mountResolver: mountResolver, outputWriter: outputWriter}
}

// ScanMusicFiles walks the folder recursively and returns every music file
// keyed by its path relative to the folder root. Missing folders, unresolved
// device mounts, and walk failures degrade to the partial or empty result
// with a printed warning.
func (scanner *FolderScanner) ScanMusicFiles(folderPath string) map[string]string {
	musicFiles := make(map[string]string)

	if IsDeviceSharePath(folderPath) {
		fmt.Fprint(scanner.outputWriter, devicePathNoticeConstant)
		resolvedPath, mountFound := scanner.mountResolver.ResolveDevicePath(folderPath)
		if !mountFound {
			fmt.Fprint(scanner.outputWriter, deviceMountMissingNoticeConstant)
			return musicFiles
		}
		fmt.Fprintf(scanner.outputWriter, deviceMountResolvedTemplateConstant, resolvedPath)
		folderPath = resolvedPath
	}

	folderExists, probeError := afero.DirExists(scanner.fileSystem, folderPath)
	if probeError != nil || !folderExists {
		fmt.Fprintf(scanner.outputWriter, missingFolderTemplateConstant, folderPath)
		return musicFiles
	}

	fmt.Fprintf(scanner.outputWriter, scanningFolderTemplateConstant, folderPath)

	walkError := afero.Walk(scanner.fileSystem, folderPath, func(entryPath string, entryInfo os.FileInfo, entryError error) error {
		if entryError != nil {
			return nil
		}
		if entryInfo.IsDir() {
			return nil
		}

		extension := strings.ToLower(filepath.Ext(entryPath))
		if _, isMusicFile := musicFileExtensions[extension]; !isMusicFile {
			return nil
		}

		relativePath, relativeError := filepath.Rel(folderPath, entryPath)
		if relativeError != nil {
			return nil
		}

		musicFiles[relativePath] = entryPath
		return nil
	})
	if walkError != nil {
		fmt.Fprintf(scanner.outputWriter, scanFailureTemplateConstant, walkError)
	}

	return musicFiles
}
