package lint

import (
	"context"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

const (
	classesDirectoryNameConstant            = "classes"
	classExtensionYMLConstant               = ".yml"
	classExtensionYAMLConstant              = ".yaml"
	classIdentifierSeparatorConstant        = "."
	initClassSuffixConstant                 = ".init"
	logMessageFindUnusedClassesConstant     = "Find unused classes"
	logMessageCollectedClassesConstant      = "Collected class identifiers"
	logMessageCheckingClassUsageConstant    = "Checking if all classes are referenced"
	logMessageUnusedClassesConstant         = "No usage found for the following classes"
	logFieldInventoryPathConstant           = "inventory_path"
	logFieldClassesDirectoryConstant        = "classes_directory"
	classesDirectoryDisplaySuffixConstant   = "/"
	classIdentifierPathSeparatorReplacement = "/"
)

// ClassChecker reports classes that no inventory file references.
type ClassChecker struct {
	fileSystem  FileSystem
	reporter    Reporter
	concurrency int
}

// NewClassChecker constructs a ClassChecker.
func NewClassChecker(fileSystem FileSystem, reporter Reporter, concurrency int) *ClassChecker {
	return &ClassChecker{fileSystem: fileSystem, reporter: resolveReporter(reporter), concurrency: concurrency}
}

// Check collects class identifiers under <inventoryPath>/classes and scans every file under
// inventoryPath for them. It returns a *ConfigurationError when the classes directory is missing.
func (checker *ClassChecker) Check(executionContext context.Context, inventoryPath string) (CheckResult, error) {
	classesDirectory := filepath.Join(inventoryPath, classesDirectoryNameConstant)
	if !checker.fileSystem.IsDirectory(classesDirectory) {
		return CheckResult{}, &ConfigurationError{Path: classesDirectory + classesDirectoryDisplaySuffixConstant}
	}

	checker.reporter.Debug(logMessageFindUnusedClassesConstant, zap.String(logFieldClassesDirectoryConstant, classesDirectory))

	declarations, declarationError := checker.fileSystem.ListFilesWithin(classesDirectory, inventoryPath)
	if declarationError != nil {
		return CheckResult{}, declarationError
	}

	candidates := newCandidateSet()
	for _, declarationPath := range declarations {
		identifier, isClass := ClassIdentifier(classesDirectory, declarationPath)
		if !isClass {
			continue
		}
		candidates.add(identifier)
	}
	declaredCount := candidates.size()

	checker.reporter.Debug(logMessageCollectedClassesConstant, zap.Int(logFieldCountConstant, declaredCount))
	checker.reporter.Debug(logMessageCheckingClassUsageConstant, zap.String(logFieldInventoryPathConstant, inventoryPath))

	inventoryFiles, listError := checker.fileSystem.ListFiles(inventoryPath)
	if listError != nil {
		return CheckResult{}, listError
	}

	scanner := referenceScanner{fileSystem: checker.fileSystem, matcher: classReferenced, concurrency: checker.concurrency}
	if scanError := scanner.scan(executionContext, inventoryFiles, candidates); scanError != nil {
		return CheckResult{}, scanError
	}

	return finalizeResult(checker.reporter, logMessageUnusedClassesConstant, declaredCount, len(inventoryFiles), candidates), nil
}

// ClassIdentifier derives the dotted class identifier for a declaration file beneath classesDirectory.
// Every ".yml" and ".yaml" occurrence is removed and path separators become dots, so
// classes/app/foo.yml yields app.foo. Files without either extension are not classes.
func ClassIdentifier(classesDirectory string, declarationPath string) (string, bool) {
	if !strings.HasSuffix(declarationPath, classExtensionYMLConstant) && !strings.HasSuffix(declarationPath, classExtensionYAMLConstant) {
		return "", false
	}

	relativePath, relativeError := filepath.Rel(classesDirectory, declarationPath)
	if relativeError != nil {
		return "", false
	}

	identifier := strings.ReplaceAll(relativePath, classExtensionYMLConstant, "")
	identifier = strings.ReplaceAll(identifier, classExtensionYAMLConstant, "")
	identifier = strings.ReplaceAll(filepath.ToSlash(identifier), classIdentifierPathSeparatorReplacement, classIdentifierSeparatorConstant)
	return identifier, true
}

// classReferenced treats a class ending in ".init" as referenced by its parent identifier too.
func classReferenced(identifier string, content string) bool {
	if strings.Contains(content, identifier) {
		return true
	}
	if strings.HasSuffix(identifier, initClassSuffixConstant) {
		return strings.Contains(content, strings.TrimSuffix(identifier, initClassSuffixConstant))
	}
	return false
}

func finalizeResult(reporter Reporter, orphanMessage string, declaredCount int, scannedFiles int, candidates *candidateSet) CheckResult {
	orphans := candidates.sorted()
	result := CheckResult{
		Status:       StatusClean,
		Declared:     declaredCount,
		ScannedFiles: scannedFiles,
		Orphans:      orphans,
	}
	if len(orphans) > 0 {
		result.Status = StatusOrphansFound
		reporter.Info(orphanMessage, zap.Int(logFieldCountConstant, len(orphans)), zap.Strings(logFieldOrphansConstant, orphans))
	}
	return result
}
