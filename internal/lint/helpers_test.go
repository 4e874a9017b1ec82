package lint_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/temirov/invlint/internal/filesystem"
)

const (
	testInventoryRootConstant = "/inventory"
	testSecretsRootConstant   = "/secrets"
	testCompiledRootConstant  = "/compiled"
	testEmptyClassContent     = "parameters: {}\n"
)

var errTestReadFailure = errors.New("read failure")

func newMemoryFileSystem(testInstance *testing.T, files map[string]string) *filesystem.FileSystem {
	testInstance.Helper()

	backend := afero.NewMemMapFs()
	for path, content := range files {
		require.NoError(testInstance, afero.WriteFile(backend, path, []byte(content), 0o644))
	}
	return filesystem.NewFileSystem(backend, nil)
}

func writeTestFile(testInstance *testing.T, path string, content string) {
	testInstance.Helper()

	require.NoError(testInstance, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(testInstance, os.WriteFile(path, []byte(content), 0o600))
}

func newObservedLogger() (*zap.Logger, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return zap.New(core), logs
}

// recordingFileSystem counts calls and can fail reads of a chosen path.
type recordingFileSystem struct {
	delegate    *filesystem.FileSystem
	failingPath string
	calls       int
}

func (recorder *recordingFileSystem) IsDirectory(path string) bool {
	recorder.calls++
	if recorder.delegate == nil {
		return false
	}
	return recorder.delegate.IsDirectory(path)
}

func (recorder *recordingFileSystem) ListFiles(root string) ([]string, error) {
	recorder.calls++
	if recorder.delegate == nil {
		return nil, nil
	}
	return recorder.delegate.ListFiles(root)
}

func (recorder *recordingFileSystem) ListFilesWithin(root string, patternBase string) ([]string, error) {
	recorder.calls++
	if recorder.delegate == nil {
		return nil, nil
	}
	return recorder.delegate.ListFilesWithin(root, patternBase)
}

func (recorder *recordingFileSystem) ReadFile(path string) ([]byte, error) {
	recorder.calls++
	if path == recorder.failingPath {
		return nil, errTestReadFailure
	}
	return recorder.delegate.ReadFile(path)
}
