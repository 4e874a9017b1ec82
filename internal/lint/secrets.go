package lint

import (
	"context"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

const (
	logMessageFindSecretPathsConstant     = "Find secret paths"
	logMessageCollectedSecretsConstant    = "Collected secret paths"
	logMessageCheckingSecretUsageConstant = "Checking if all secrets are referenced"
	logMessageUnusedSecretsConstant       = "No usage found for the following secrets files"
	logFieldSecretsPathConstant           = "secrets_path"
	logFieldCompiledPathConstant          = "compiled_path"
)

// SecretChecker reports secret files that no compiled file references.
type SecretChecker struct {
	fileSystem  FileSystem
	reporter    Reporter
	concurrency int
}

// NewSecretChecker constructs a SecretChecker.
func NewSecretChecker(fileSystem FileSystem, reporter Reporter, concurrency int) *SecretChecker {
	return &SecretChecker{fileSystem: fileSystem, reporter: resolveReporter(reporter), concurrency: concurrency}
}

// Check collects every file under secretsPath as a path relative to it and scans every file under
// compiledPath for those paths. Missing roots are not errors; they simply contribute no files.
func (checker *SecretChecker) Check(executionContext context.Context, compiledPath string, secretsPath string) (CheckResult, error) {
	checker.reporter.Debug(logMessageFindSecretPathsConstant, zap.String(logFieldSecretsPathConstant, secretsPath))

	secretFiles, secretsError := checker.fileSystem.ListFiles(secretsPath)
	if secretsError != nil {
		return CheckResult{}, secretsError
	}

	candidates := newCandidateSet()
	for _, secretFile := range secretFiles {
		candidates.add(SecretRelativePath(secretsPath, secretFile))
	}
	declaredCount := candidates.size()

	checker.reporter.Debug(logMessageCollectedSecretsConstant, zap.Int(logFieldCountConstant, declaredCount))
	checker.reporter.Debug(logMessageCheckingSecretUsageConstant, zap.String(logFieldCompiledPathConstant, compiledPath))

	compiledFiles, compiledError := checker.fileSystem.ListFiles(compiledPath)
	if compiledError != nil {
		return CheckResult{}, compiledError
	}

	scanner := referenceScanner{fileSystem: checker.fileSystem, matcher: strings.Contains, concurrency: checker.concurrency}
	if scanError := scanner.scan(executionContext, compiledFiles, candidates); scanError != nil {
		return CheckResult{}, scanError
	}

	return finalizeResult(checker.reporter, logMessageUnusedSecretsConstant, declaredCount, len(compiledFiles), candidates), nil
}

// SecretRelativePath strips the secrets root and the following separator from secretFile,
// keeping nested directories and the extension verbatim.
func SecretRelativePath(secretsPath string, secretFile string) string {
	relativePath, relativeError := filepath.Rel(secretsPath, secretFile)
	if relativeError != nil {
		return secretFile
	}
	return relativePath
}
