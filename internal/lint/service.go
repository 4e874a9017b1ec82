package lint

import (
	"context"

	"go.uber.org/zap"
)

const (
	logMessageNothingToCheckConstant       = "Nothing to check. Remove --skip-class-checks or add --search-secrets to lint secrets"
	logMessageInvalidInventoryPathConstant = "Inventory path is invalid or not provided, skipping class checks"
	logMessageCheckingClassesConstant      = "Checking for orphan classes in inventory"
	logMessageCheckingSecretsConstant      = "Checking for orphan secrets files"
	logMessageLintCompletedConstant        = "Lint completed"
	logFieldStatusConstant                 = "status"
)

// ServiceDependencies enumerates collaborators required by the service.
type ServiceDependencies struct {
	FileSystem FileSystem
	Reporter   Reporter
}

// Service decides which checks run and aggregates their statuses.
type Service struct {
	fileSystem FileSystem
	reporter   Reporter
}

// NewService constructs a Service from the provided dependencies.
func NewService(dependencies ServiceDependencies) (*Service, error) {
	if dependencies.FileSystem == nil {
		return nil, ErrFileSystemNotConfigured
	}
	return &Service{fileSystem: dependencies.FileSystem, reporter: resolveReporter(dependencies.Reporter)}, nil
}

// Run evaluates the requested checks and then applies the fail-on-warning policy.
func (service *Service) Run(executionContext context.Context, options Options) (Summary, error) {
	summary, evaluationError := service.Evaluate(executionContext, options)
	if evaluationError != nil {
		return summary, evaluationError
	}
	return summary, ApplyFailurePolicy(summary, options.FailOnWarning)
}

// Evaluate runs the requested checks and sums their statuses without applying any failure policy.
// The aggregate is 0, 1, or 2; any nonzero value means orphans were found.
func (service *Service) Evaluate(executionContext context.Context, options Options) (Summary, error) {
	if options.SkipClassChecks && !options.SearchSecrets {
		service.reporter.Info(logMessageNothingToCheckConstant)
		return Summary{Status: StatusClean}, nil
	}

	summary := Summary{}

	if !options.SkipClassChecks {
		if !service.fileSystem.IsDirectory(options.InventoryPath) {
			service.reporter.Info(logMessageInvalidInventoryPathConstant, zap.String(logFieldPathConstant, options.InventoryPath))
		} else {
			service.reporter.Info(logMessageCheckingClassesConstant, zap.String(logFieldPathConstant, options.InventoryPath))
			classResult, classError := NewClassChecker(service.fileSystem, service.reporter, options.Concurrency).Check(executionContext, options.InventoryPath)
			if classError != nil {
				return Summary{}, classError
			}
			summary.Classes = &classResult
			summary.Status += classResult.Status
		}
	}

	if options.SearchSecrets {
		service.reporter.Info(logMessageCheckingSecretsConstant, zap.String(logFieldPathConstant, options.SecretsPath))
		secretResult, secretError := NewSecretChecker(service.fileSystem, service.reporter, options.Concurrency).Check(executionContext, options.CompiledPath, options.SecretsPath)
		if secretError != nil {
			return Summary{}, secretError
		}
		summary.Secrets = &secretResult
		summary.Status += secretResult.Status
	}

	service.reporter.Debug(logMessageLintCompletedConstant, zap.Int(logFieldStatusConstant, summary.Status))
	return summary, nil
}

// ApplyFailurePolicy returns ErrOrphansFound when failOnWarning is set and the summary reports orphans.
func ApplyFailurePolicy(summary Summary, failOnWarning bool) error {
	if failOnWarning && summary.Status > StatusClean {
		return ErrOrphansFound
	}
	return nil
}
