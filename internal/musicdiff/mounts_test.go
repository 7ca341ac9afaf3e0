package musicdiff_test

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"

	"github.com/tvetter/ordnung/internal/musicdiff"
)

const testUserIdentifierConstant = 1000

func stubUserIDProvider() int {
	return testUserIdentifierConstant
}

func TestIsDeviceSharePath(testInstance *testing.T) {
	testCases := []struct {
		name          string
		candidatePath string
		expected      bool
	}{
		{name: "mtp scheme", candidatePath: "mtp://[usb:001,004]/Internal%20storage/Music", expected: true},
		{name: "gvfs scheme", candidatePath: "gvfs://mtp/Internal/Music", expected: true},
		{name: "afc scheme", candidatePath: "afc://phone/Music", expected: true},
		{name: "local path", candidatePath: "/home/user/Music", expected: false},
		{name: "tilde path", candidatePath: "~/Music", expected: false},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			require.Equal(testInstance, testCase.expected, musicdiff.IsDeviceSharePath(testCase.candidatePath))
		})
	}
}

func TestResolveDevicePathReturnsStorageSubdirectory(testInstance *testing.T) {
	fileSystem := afero.NewMemMapFs()
	require.NoError(testInstance, fileSystem.MkdirAll("/run/user/1000/gvfs/mtp:host=SAMSUNG/Internal storage/Music", 0o755))

	resolver := musicdiff.NewMountResolverWithDependencies(fileSystem, stubUserIDProvider)

	resolvedPath, mountFound := resolver.ResolveDevicePath("mtp://[usb:001,004]/Internal%20storage/Music")
	require.True(testInstance, mountFound)
	require.Equal(testInstance, "/run/user/1000/gvfs/mtp:host=SAMSUNG/Internal storage/Music", resolvedPath)
}

func TestResolveDevicePathFallsBackToMountRoot(testInstance *testing.T) {
	fileSystem := afero.NewMemMapFs()
	require.NoError(testInstance, fileSystem.MkdirAll("/run/user/1000/gvfs/mtp:host=SAMSUNG", 0o755))

	resolver := musicdiff.NewMountResolverWithDependencies(fileSystem, stubUserIDProvider)

	resolvedPath, mountFound := resolver.ResolveDevicePath("mtp://[usb:001,004]/Internal%20storage/Music")
	require.True(testInstance, mountFound)
	require.Equal(testInstance, "/run/user/1000/gvfs/mtp:host=SAMSUNG", resolvedPath)
}

func TestResolveDevicePathWithoutMtpMount(testInstance *testing.T) {
	fileSystem := afero.NewMemMapFs()
	require.NoError(testInstance, fileSystem.MkdirAll("/run/user/1000/gvfs/smb-share:server=nas", 0o755))

	resolver := musicdiff.NewMountResolverWithDependencies(fileSystem, stubUserIDProvider)

	resolvedPath, mountFound := resolver.ResolveDevicePath("mtp://[usb:001,004]/Internal%20storage/Music")
	require.False(testInstance, mountFound)
	require.Empty(testInstance, resolvedPath)
}

func TestResolveDevicePathWithoutGvfsRoot(testInstance *testing.T) {
	resolver := musicdiff.NewMountResolverWithDependencies(afero.NewMemMapFs(), stubUserIDProvider)

	resolvedPath, mountFound := resolver.ResolveDevicePath("gvfs://mtp/Internal/Music")
	require.False(testInstance, mountFound)
	require.Empty(testInstance, resolvedPath)
}
