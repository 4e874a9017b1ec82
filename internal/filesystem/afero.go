package filesystem

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/afero"
)

const (
	readFileErrorTemplateConstant = "unable to read %s: %w"
	walkErrorTemplateConstant     = "unable to list files under %s: %w"
)

// FileSystem lists and reads files through an afero.Fs.
type FileSystem struct {
	backend afero.Fs
	filter  *ExcludeFilter
}

// NewOSFileSystem constructs a FileSystem over the operating system.
func NewOSFileSystem(filter *ExcludeFilter) *FileSystem {
	return NewFileSystem(afero.NewOsFs(), filter)
}

// NewFileSystem constructs a FileSystem over the provided backend. A nil backend falls back to the operating system.
func NewFileSystem(backend afero.Fs, filter *ExcludeFilter) *FileSystem {
	if backend == nil {
		backend = afero.NewOsFs()
	}
	return &FileSystem{backend: backend, filter: filter}
}

// IsDirectory reports whether path exists and is a directory. Stat failures count as "not a directory".
func (fileSystem *FileSystem) IsDirectory(path string) bool {
	if len(path) == 0 {
		return false
	}
	isDirectory, statError := afero.IsDir(fileSystem.backend, path)
	return statError == nil && isDirectory
}

// ListFiles returns every regular file beneath root, recursively, sorted.
// Exclude patterns match paths relative to root.
func (fileSystem *FileSystem) ListFiles(root string) ([]string, error) {
	return fileSystem.ListFilesWithin(root, root)
}

// ListFilesWithin returns every regular file beneath root, recursively, sorted, matching exclude
// patterns against paths relative to patternBase.
// A missing root, or a root that is itself a file, yields no paths. A root that is a symbolic link
// to a directory is followed and the returned paths stay under root.
// Unreadable directories, root included, are skipped. Symbolic links count when they resolve to regular files.
func (fileSystem *FileSystem) ListFilesWithin(root string, patternBase string) ([]string, error) {
	if !fileSystem.IsDirectory(root) {
		return nil, nil
	}

	walkRoot := root
	if !strings.HasSuffix(walkRoot, string(filepath.Separator)) {
		walkRoot += string(filepath.Separator)
	}

	var files []string
	walkError := afero.Walk(fileSystem.backend, walkRoot, func(path string, info fs.FileInfo, walkError error) error {
		if walkError != nil {
			if path == walkRoot {
				return nil
			}
			if info != nil && info.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if path != walkRoot && fileSystem.excluded(patternBase, path) {
			if info.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if info.IsDir() {
			return nil
		}

		if fileSystem.isRegularFile(path, info) {
			files = append(files, path)
		}
		return nil
	})
	if walkError != nil {
		return nil, fmt.Errorf(walkErrorTemplateConstant, root, walkError)
	}

	sort.Strings(files)
	return files, nil
}

// ReadFile returns the full content of path.
func (fileSystem *FileSystem) ReadFile(path string) ([]byte, error) {
	content, readError := afero.ReadFile(fileSystem.backend, path)
	if readError != nil {
		return nil, fmt.Errorf(readFileErrorTemplateConstant, path, readError)
	}
	return content, nil
}

func (fileSystem *FileSystem) excluded(patternBase string, path string) bool {
	relativePath, relativeError := filepath.Rel(patternBase, path)
	if relativeError != nil {
		return false
	}
	return fileSystem.filter.Excludes(relativePath)
}

func (fileSystem *FileSystem) isRegularFile(path string, info fs.FileInfo) bool {
	if info.Mode().IsRegular() {
		return true
	}
	if info.Mode()&os.ModeSymlink == 0 {
		return false
	}
	targetInfo, statError := fileSystem.backend.Stat(path)
	if statError != nil {
		return false
	}
	return targetInfo.Mode().IsRegular()
}
