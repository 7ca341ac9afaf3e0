package musicdiff

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

const (
	mtpSchemePrefixConstant      = "mtp://"
	gvfsSchemePrefixConstant     = "gvfs://"
	afcSchemePrefixConstant      = "afc://"
	gvfsRootTemplateConstant     = "/run/user/%d/gvfs"
	mtpMountMarkerConstant       = "mtp"
	internalSegmentConstant      = "Internal"
	sdCardSegmentConstant        = "SD"
	storageSegmentConstant       = "storage"
	pathSegmentSeparatorConstant = "/"
)

// UserIDProvider supplies the numeric user id used to locate the GVFS root.
type UserIDProvider func() int

// MountResolver maps MTP/GVFS/AFC device URLs onto their local GVFS mount.
type MountResolver struct {
	fileSystem     afero.Fs
	userIDProvider UserIDProvider
}

// NewMountResolver constructs a resolver over the operating system filesystem.
func NewMountResolver() *MountResolver {
	return NewMountResolverWithDependencies(afero.NewOsFs(), os.Getuid)
}

// NewMountResolverWithDependencies constructs a resolver with injectable filesystem and uid lookup.
func NewMountResolverWithDependencies(fileSystem afero.Fs, userIDProvider UserIDProvider) *MountResolver {
	if fileSystem == nil {
		fileSystem = afero.NewOsFs()
	}
	if userIDProvider == nil {
		userIDProvider = os.Getuid
	}
	return &MountResolver{fileSystem: fileSystem, userIDProvider: userIDProvider}
}

// IsDeviceSharePath reports whether the path uses an MTP-style URL scheme.
func IsDeviceSharePath(candidatePath string) bool {
	return strings.HasPrefix(candidatePath, mtpSchemePrefixConstant) ||
		strings.HasPrefix(candidatePath, gvfsSchemePrefixConstant) ||
		strings.HasPrefix(candidatePath, afcSchemePrefixConstant)
}

// ResolveDevicePath converts a device URL into the local GVFS mount path.
// When the URL carries an Internal/SD/storage segment that exists under the
// mount, the resolved subdirectory is returned; otherwise the bare mount
// path. The second return value is false when no MTP mount is present.
func (resolver *MountResolver) ResolveDevicePath(devicePath string) (string, bool) {
	gvfsRoot := fmt.Sprintf(gvfsRootTemplateConstant, resolver.userIDProvider())

	mountEntries, listError := afero.ReadDir(resolver.fileSystem, gvfsRoot)
	if listError != nil {
		return "", false
	}

	for _, mountEntry := range mountEntries {
		if !strings.Contains(strings.ToLower(mountEntry.Name()), mtpMountMarkerConstant) {
			continue
		}

		mountPath := filepath.Join(gvfsRoot, mountEntry.Name())

		relativePath, relativePathFound := extractStorageRelativePath(devicePath)
		if relativePathFound {
			candidatePath := filepath.Join(mountPath, relativePath)
			candidateExists, probeError := afero.Exists(resolver.fileSystem, candidatePath)
			if probeError == nil && candidateExists {
				return candidatePath, true
			}
		}

		return mountPath, true
	}

	return "", false
}

// extractStorageRelativePath returns the URL-decoded path starting at the
// first Internal/SD/storage segment of the device URL.
func extractStorageRelativePath(devicePath string) (string, bool) {
	segments := strings.Split(devicePath, pathSegmentSeparatorConstant)
	for segmentIndex, segment := range segments {
		if strings.Contains(segment, internalSegmentConstant) ||
			strings.Contains(segment, sdCardSegmentConstant) ||
			strings.Contains(segment, storageSegmentConstant) {
			relativePath := strings.Join(segments[segmentIndex:], pathSegmentSeparatorConstant)
			decodedPath, decodeError := url.PathUnescape(relativePath)
			if decodeError != nil {
				return relativePath, true
			}
			return decodedPath, true
		}
	}
	return "", false
}
