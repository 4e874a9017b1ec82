package filesystem_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"

	"github.com/temirov/invlint/internal/filesystem"
)

const (
	testInventoryRootConstant = "/inventory"
	testFileContentConstant   = "classes:\n  - app.web\n"
)

func newMemoryFileSystem(testInstance *testing.T, files map[string]string, excludePatterns []string) *filesystem.FileSystem {
	testInstance.Helper()

	backend := afero.NewMemMapFs()
	for path, content := range files {
		require.NoError(testInstance, afero.WriteFile(backend, path, []byte(content), 0o644))
	}

	filter, filterError := filesystem.NewExcludeFilter(excludePatterns)
	require.NoError(testInstance, filterError)

	return filesystem.NewFileSystem(backend, filter)
}

func TestFileSystemListFilesRecursesAndSorts(testInstance *testing.T) {
	fileSystem := newMemoryFileSystem(testInstance, map[string]string{
		"/inventory/targets/prod.yml":    testFileContentConstant,
		"/inventory/classes/app/web.yml": testFileContentConstant,
		"/inventory/classes/db.yaml":     testFileContentConstant,
		"/elsewhere/unrelated.yml":       testFileContentConstant,
	}, nil)

	files, listError := fileSystem.ListFiles(testInventoryRootConstant)
	require.NoError(testInstance, listError)
	require.Equal(testInstance, []string{
		filepath.FromSlash("/inventory/classes/app/web.yml"),
		filepath.FromSlash("/inventory/classes/db.yaml"),
		filepath.FromSlash("/inventory/targets/prod.yml"),
	}, files)
}

func TestFileSystemListFilesMissingRootIsEmpty(testInstance *testing.T) {
	fileSystem := newMemoryFileSystem(testInstance, map[string]string{
		"/inventory/targets/prod.yml": testFileContentConstant,
	}, nil)

	files, listError := fileSystem.ListFiles("/compiled")
	require.NoError(testInstance, listError)
	require.Empty(testInstance, files)

	files, listError = fileSystem.ListFiles("/inventory/targets/prod.yml")
	require.NoError(testInstance, listError)
	require.Empty(testInstance, files)
}

func TestFileSystemListFilesAppliesExcludePatterns(testInstance *testing.T) {
	fileSystem := newMemoryFileSystem(testInstance, map[string]string{
		"/inventory/.git/HEAD":          "ref: refs/heads/main",
		"/inventory/targets/prod.yml":   testFileContentConstant,
		"/inventory/targets/prod.yml~":  testFileContentConstant,
		"/inventory/vendor/lib/x.yml":   testFileContentConstant,
		"/inventory/classes/common.yml": testFileContentConstant,
	}, []string{".git", "**/*~", "vendor/**", "  "})

	files, listError := fileSystem.ListFiles(testInventoryRootConstant)
	require.NoError(testInstance, listError)
	require.Equal(testInstance, []string{
		filepath.FromSlash("/inventory/classes/common.yml"),
		filepath.FromSlash("/inventory/targets/prod.yml"),
	}, files)
}

func TestFileSystemIsDirectory(testInstance *testing.T) {
	fileSystem := newMemoryFileSystem(testInstance, map[string]string{
		"/inventory/classes/common.yml": testFileContentConstant,
	}, nil)

	require.True(testInstance, fileSystem.IsDirectory("/inventory/classes"))
	require.False(testInstance, fileSystem.IsDirectory("/inventory/classes/common.yml"))
	require.False(testInstance, fileSystem.IsDirectory("/missing"))
	require.False(testInstance, fileSystem.IsDirectory(""))
}

func TestFileSystemReadFileWrapsErrors(testInstance *testing.T) {
	fileSystem := newMemoryFileSystem(testInstance, map[string]string{
		"/inventory/classes/common.yml": testFileContentConstant,
	}, nil)

	content, readError := fileSystem.ReadFile("/inventory/classes/common.yml")
	require.NoError(testInstance, readError)
	require.Equal(testInstance, testFileContentConstant, string(content))

	_, readError = fileSystem.ReadFile("/inventory/classes/missing.yml")
	require.Error(testInstance, readError)
	require.ErrorIs(testInstance, readError, os.ErrNotExist)
	require.Contains(testInstance, readError.Error(), "unable to read")
}

func TestOSFileSystemFollowsFileSymlinks(testInstance *testing.T) {
	rootDirectory := testInstance.TempDir()
	targetPath := filepath.Join(rootDirectory, "real.yml")
	linkPath := filepath.Join(rootDirectory, "linked.yml")
	danglingPath := filepath.Join(rootDirectory, "dangling.yml")

	require.NoError(testInstance, os.WriteFile(targetPath, []byte(testFileContentConstant), 0o600))
	if symlinkError := os.Symlink(targetPath, linkPath); symlinkError != nil {
		testInstance.Skipf("symlinks unavailable: %v", symlinkError)
	}
	require.NoError(testInstance, os.Symlink(filepath.Join(rootDirectory, "gone.yml"), danglingPath))

	files, listError := filesystem.NewOSFileSystem(nil).ListFiles(rootDirectory)
	require.NoError(testInstance, listError)
	require.Equal(testInstance, []string{linkPath, targetPath}, files)
}

func TestOSFileSystemFollowsSymlinkedRoot(testInstance *testing.T) {
	workspace := testInstance.TempDir()
	realRoot := filepath.Join(workspace, "real")
	linkRoot := filepath.Join(workspace, "inventory")

	require.NoError(testInstance, os.MkdirAll(filepath.Join(realRoot, "classes"), 0o755))
	require.NoError(testInstance, os.WriteFile(filepath.Join(realRoot, "classes", "db.yml"), []byte(testFileContentConstant), 0o600))
	require.NoError(testInstance, os.WriteFile(filepath.Join(realRoot, "prod.yml"), []byte(testFileContentConstant), 0o600))
	if symlinkError := os.Symlink(realRoot, linkRoot); symlinkError != nil {
		testInstance.Skipf("symlinks unavailable: %v", symlinkError)
	}

	fileSystem := filesystem.NewOSFileSystem(nil)
	require.True(testInstance, fileSystem.IsDirectory(linkRoot))

	files, listError := fileSystem.ListFiles(linkRoot)
	require.NoError(testInstance, listError)
	require.Equal(testInstance, []string{
		filepath.Join(linkRoot, "classes", "db.yml"),
		filepath.Join(linkRoot, "prod.yml"),
	}, files)
}

func TestFileSystemListFilesWithinMatchesPatternBase(testInstance *testing.T) {
	fileSystem := newMemoryFileSystem(testInstance, map[string]string{
		"/inventory/classes/common.yml":     testFileContentConstant,
		"/inventory/classes/legacy/old.yml": testFileContentConstant,
	}, []string{"classes/legacy/**"})

	files, listError := fileSystem.ListFilesWithin("/inventory/classes", testInventoryRootConstant)
	require.NoError(testInstance, listError)
	require.Equal(testInstance, []string{filepath.FromSlash("/inventory/classes/common.yml")}, files)

	files, listError = fileSystem.ListFiles("/inventory/classes")
	require.NoError(testInstance, listError)
	require.Len(testInstance, files, 2)
}

// unreadableDirectoryFs fails to open one directory while still reporting it through Stat.
type unreadableDirectoryFs struct {
	afero.Fs
	directory string
}

func (unreadable unreadableDirectoryFs) Open(name string) (afero.File, error) {
	if filepath.Clean(name) == unreadable.directory {
		return nil, os.ErrPermission
	}
	return unreadable.Fs.Open(name)
}

func TestFileSystemListFilesSkipsUnreadableDirectories(testInstance *testing.T) {
	backend := afero.NewMemMapFs()
	require.NoError(testInstance, afero.WriteFile(backend, "/inventory/targets/prod.yml", []byte(testFileContentConstant), 0o644))
	require.NoError(testInstance, afero.WriteFile(backend, "/inventory/private/key.yml", []byte(testFileContentConstant), 0o644))

	testCases := []struct {
		name              string
		unreadable        string
		expectedFileNames []string
	}{
		{name: "UnreadableRoot", unreadable: filepath.FromSlash(testInventoryRootConstant), expectedFileNames: nil},
		{name: "UnreadableSubdirectory", unreadable: filepath.FromSlash("/inventory/private"), expectedFileNames: []string{filepath.FromSlash("/inventory/targets/prod.yml")}},
	}

	for _, testCase := range testCases {
		testCase := testCase
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			fileSystem := filesystem.NewFileSystem(unreadableDirectoryFs{Fs: backend, directory: testCase.unreadable}, nil)

			files, listError := fileSystem.ListFiles(testInventoryRootConstant)
			require.NoError(testInstance, listError)
			require.Equal(testInstance, testCase.expectedFileNames, files)
		})
	}
}

func TestNewExcludeFilterRejectsInvalidPattern(testInstance *testing.T) {
	_, filterError := filesystem.NewExcludeFilter([]string{"[unclosed"})
	require.EqualError(testInstance, filterError, "invalid exclude pattern \"[unclosed\"")
}
