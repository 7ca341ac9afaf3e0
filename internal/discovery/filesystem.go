package discovery

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/afero"
)

const (
	gitMetadataDirectoryNameConstant = ".git"
	hiddenEntryPrefixConstant        = "."
	rootListErrorTemplateConstant    = "failed to list candidate directories under %s: %w"
)

// FilesystemRepositoryDiscoverer locates git repositories beneath a root directory.
type FilesystemRepositoryDiscoverer struct {
	fileSystem afero.Fs
}

// NewFilesystemRepositoryDiscoverer constructs a discoverer backed by the operating system filesystem.
func NewFilesystemRepositoryDiscoverer() *FilesystemRepositoryDiscoverer {
	return NewFilesystemRepositoryDiscovererWithFs(afero.NewOsFs())
}

// NewFilesystemRepositoryDiscovererWithFs constructs a discoverer over the provided filesystem.
func NewFilesystemRepositoryDiscovererWithFs(fileSystem afero.Fs) *FilesystemRepositoryDiscoverer {
	if fileSystem == nil {
		fileSystem = afero.NewOsFs()
	}
	return &FilesystemRepositoryDiscoverer{fileSystem: fileSystem}
}

// DiscoverRepositories returns the root itself when it is a git repository,
// otherwise the immediate non-hidden child directories containing a .git entry.
// Deeper nesting is never searched.
func (discoverer *FilesystemRepositoryDiscoverer) DiscoverRepositories(rootPath string) ([]string, error) {
	rootIsRepository, rootProbeError := discoverer.containsGitMetadata(rootPath)
	if rootProbeError != nil {
		return nil, rootProbeError
	}
	if rootIsRepository {
		return []string{rootPath}, nil
	}

	directoryEntries, listError := afero.ReadDir(discoverer.fileSystem, rootPath)
	if listError != nil {
		return nil, fmt.Errorf(rootListErrorTemplateConstant, rootPath, listError)
	}

	var repositories []string
	for _, directoryEntry := range directoryEntries {
		if !directoryEntry.IsDir() {
			continue
		}
		if strings.HasPrefix(directoryEntry.Name(), hiddenEntryPrefixConstant) {
			continue
		}

		candidatePath := filepath.Join(rootPath, directoryEntry.Name())
		candidateIsRepository, candidateProbeError := discoverer.containsGitMetadata(candidatePath)
		if candidateProbeError != nil {
			// Unreadable children are skipped; the rest of the listing still counts.
			continue
		}
		if candidateIsRepository {
			repositories = append(repositories, candidatePath)
		}
	}

	sort.Strings(repositories)
	return repositories, nil
}

func (discoverer *FilesystemRepositoryDiscoverer) containsGitMetadata(directoryPath string) (bool, error) {
	metadataPath := filepath.Join(directoryPath, gitMetadataDirectoryNameConstant)
	metadataExists, probeError := afero.Exists(discoverer.fileSystem, metadataPath)
	if probeError != nil {
		return false, probeError
	}
	return metadataExists, nil
}
