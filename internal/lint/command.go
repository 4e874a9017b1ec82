package lint

import (
	"errors"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/invlint/internal/filesystem"
	"github.com/temirov/invlint/internal/utils"
	flagutils "github.com/temirov/invlint/internal/utils/flags"
	pathutils "github.com/temirov/invlint/internal/utils/path"
)

const (
	commandUseConstant                  = "lint"
	commandShortDescriptionConstant     = "Report orphaned classes and secrets"
	commandLongDescriptionConstant      = "lint reports classes under <inventory>/classes that no inventory file mentions and, with --search-secrets, secret files that no compiled file mentions. Orphans are reported but only fail the run when --fail-on-warning is set."
	commandExampleConstant              = "invlint lint --inventory-path ./inventory --search-secrets --compiled-path ./compiled --fail-on-warning"
	failOnWarningFlagNameConstant       = "fail-on-warning"
	failOnWarningFlagUsageConstant      = "Exit with status 1 when orphans are found"
	skipClassChecksFlagNameConstant     = "skip-class-checks"
	skipClassChecksFlagUsageConstant    = "Skip checking for orphan classes"
	inventoryPathFlagNameConstant       = "inventory-path"
	inventoryPathFlagUsageConstant      = "Inventory root containing the classes directory"
	searchSecretsFlagNameConstant       = "search-secrets"
	searchSecretsFlagUsageConstant      = "Search for orphan secrets files"
	secretsPathFlagNameConstant         = "secrets-path"
	secretsPathFlagUsageConstant        = "Root directory of secrets files"
	compiledPathFlagNameConstant        = "compiled-path"
	compiledPathFlagUsageConstant       = "Root directory of compiled output searched for secret references"
	concurrencyFlagNameConstant         = "concurrency"
	concurrencyFlagUsageConstant        = "Number of files scanned concurrently"
	excludeFlagNameConstant             = "exclude"
	excludeFlagUsageConstant            = "Glob pattern of paths to ignore, relative to the scanned root; class declarations match against the inventory root (repeatable)"
	outputFlagNameConstant              = "output"
	outputFlagUsageConstant             = "Report written to standard output."
	logMessageLintConfigurationConstant = "Lint configuration resolved"
	logFieldConfigurationFileConstant   = "config_file"
	logFieldInventoryPathFieldConstant  = "inventory_path"
	logFieldSecretsPathFieldConstant    = "secrets_path"
	logFieldCompiledPathFieldConstant   = "compiled_path"
	logFieldExcludePatternsConstant     = "exclude"
	logFieldConcurrencyConstant         = "concurrency"
	logMessageOrphansEscalatedConstant  = "Orphans found with fail-on-warning enabled"
)

// LoggerProvider supplies a zap logger for command execution.
type LoggerProvider func() *zap.Logger

// FileSystemFactory builds the file system a run scans, honoring the exclude filter.
type FileSystemFactory func(filter *filesystem.ExcludeFilter) FileSystem

// CommandBuilder assembles the lint Cobra command.
type CommandBuilder struct {
	LoggerProvider        LoggerProvider
	ConfigurationProvider func() CommandConfiguration
	FileSystemFactory     FileSystemFactory
	PathNormalizer        *pathutils.Normalizer
}

// Build constructs the lint command.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:           commandUseConstant,
		Short:         commandShortDescriptionConstant,
		Long:          commandLongDescriptionConstant,
		Example:       commandExampleConstant,
		SilenceErrors: true,
		SilenceUsage:  true,
		Args:          cobra.NoArgs,
		RunE:          builder.run,
	}

	defaults := DefaultCommandConfiguration()
	flagSet := command.Flags()
	flagutils.AddToggleFlag(flagSet, nil, failOnWarningFlagNameConstant, defaults.FailOnWarning, failOnWarningFlagUsageConstant)
	flagutils.AddToggleFlag(flagSet, nil, skipClassChecksFlagNameConstant, defaults.SkipClassChecks, skipClassChecksFlagUsageConstant)
	flagutils.AddToggleFlag(flagSet, nil, searchSecretsFlagNameConstant, defaults.SearchSecrets, searchSecretsFlagUsageConstant)
	flagSet.String(inventoryPathFlagNameConstant, defaults.InventoryPath, inventoryPathFlagUsageConstant)
	flagSet.String(secretsPathFlagNameConstant, defaults.SecretsPath, secretsPathFlagUsageConstant)
	flagSet.String(compiledPathFlagNameConstant, defaults.CompiledPath, compiledPathFlagUsageConstant)
	flagSet.Int(concurrencyFlagNameConstant, defaults.Concurrency, concurrencyFlagUsageConstant)
	flagSet.StringSlice(excludeFlagNameConstant, nil, excludeFlagUsageConstant)
	flagSet.String(outputFlagNameConstant, defaults.Output, flagutils.FormatChoiceUsage(defaults.Output, ReportFormats(), outputFlagUsageConstant))

	return command, nil
}

func (builder *CommandBuilder) run(command *cobra.Command, arguments []string) error {
	configuration, configurationError := builder.parseConfiguration(command)
	if configurationError != nil {
		return configurationError
	}

	reportFormat, formatError := flagutils.ResolveChoice(configuration.Output, string(ReportFormatNone), ReportFormats())
	if formatError != nil {
		return formatError
	}

	excludeFilter, filterError := filesystem.NewExcludeFilter(configuration.Exclude)
	if filterError != nil {
		return filterError
	}

	logger := builder.resolveLogger()
	builder.logConfiguration(command, logger, configuration, excludeFilter)

	service, serviceError := NewService(ServiceDependencies{
		FileSystem: builder.resolveFileSystem(excludeFilter),
		Reporter:   logger,
	})
	if serviceError != nil {
		return serviceError
	}

	options := Options{
		FailOnWarning:   configuration.FailOnWarning,
		SkipClassChecks: configuration.SkipClassChecks,
		InventoryPath:   configuration.InventoryPath,
		SearchSecrets:   configuration.SearchSecrets,
		SecretsPath:     configuration.SecretsPath,
		CompiledPath:    configuration.CompiledPath,
		Concurrency:     configuration.Concurrency,
	}

	summary, runError := service.Run(command.Context(), options)
	if runError != nil && !errors.Is(runError, ErrOrphansFound) {
		return runError
	}

	if reportError := WriteReport(command.OutOrStdout(), summary, ReportFormat(reportFormat)); reportError != nil {
		return reportError
	}

	if runError != nil {
		logger.Debug(logMessageOrphansEscalatedConstant, zap.Int(logFieldStatusConstant, summary.Status))
	}
	return runError
}

// parseConfiguration layers explicitly set flags over the provided configuration and normalizes paths.
func (builder *CommandBuilder) parseConfiguration(command *cobra.Command) (CommandConfiguration, error) {
	configuration := builder.resolveConfiguration()
	flagSet := command.Flags()

	var flagError error
	overrideBool := func(flagName string, target *bool) {
		if flagError != nil || !flagSet.Changed(flagName) {
			return
		}
		*target, flagError = flagSet.GetBool(flagName)
	}
	overrideString := func(flagName string, target *string) {
		if flagError != nil || !flagSet.Changed(flagName) {
			return
		}
		*target, flagError = flagSet.GetString(flagName)
	}

	overrideBool(failOnWarningFlagNameConstant, &configuration.FailOnWarning)
	overrideBool(skipClassChecksFlagNameConstant, &configuration.SkipClassChecks)
	overrideBool(searchSecretsFlagNameConstant, &configuration.SearchSecrets)
	overrideString(inventoryPathFlagNameConstant, &configuration.InventoryPath)
	overrideString(secretsPathFlagNameConstant, &configuration.SecretsPath)
	overrideString(compiledPathFlagNameConstant, &configuration.CompiledPath)
	overrideString(outputFlagNameConstant, &configuration.Output)
	if flagError == nil && flagSet.Changed(concurrencyFlagNameConstant) {
		configuration.Concurrency, flagError = flagSet.GetInt(concurrencyFlagNameConstant)
	}
	if flagError == nil && flagSet.Changed(excludeFlagNameConstant) {
		configuration.Exclude, flagError = flagSet.GetStringSlice(excludeFlagNameConstant)
	}
	if flagError != nil {
		return CommandConfiguration{}, flagError
	}

	sanitized := configuration.Sanitize()
	normalizer := builder.resolvePathNormalizer()
	sanitized.InventoryPath = normalizer.Normalize(sanitized.InventoryPath)
	sanitized.SecretsPath = normalizer.Normalize(sanitized.SecretsPath)
	sanitized.CompiledPath = normalizer.Normalize(sanitized.CompiledPath)

	return sanitized, nil
}

func (builder *CommandBuilder) logConfiguration(command *cobra.Command, logger *zap.Logger, configuration CommandConfiguration, excludeFilter *filesystem.ExcludeFilter) {
	configurationFile, _ := utils.NewCommandContextAccessor().ConfigurationFilePath(command.Context())
	logger.Debug(
		logMessageLintConfigurationConstant,
		zap.String(logFieldConfigurationFileConstant, configurationFile),
		zap.String(logFieldInventoryPathFieldConstant, configuration.InventoryPath),
		zap.String(logFieldSecretsPathFieldConstant, configuration.SecretsPath),
		zap.String(logFieldCompiledPathFieldConstant, configuration.CompiledPath),
		zap.Strings(logFieldExcludePatternsConstant, excludeFilter.Patterns()),
		zap.Int(logFieldConcurrencyConstant, configuration.Concurrency),
	)
}

func (builder *CommandBuilder) resolveConfiguration() CommandConfiguration {
	if builder.ConfigurationProvider == nil {
		return DefaultCommandConfiguration()
	}
	return builder.ConfigurationProvider()
}

func (builder *CommandBuilder) resolveLogger() *zap.Logger {
	if builder.LoggerProvider == nil {
		return zap.NewNop()
	}
	logger := builder.LoggerProvider()
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}

func (builder *CommandBuilder) resolveFileSystem(filter *filesystem.ExcludeFilter) FileSystem {
	if builder.FileSystemFactory != nil {
		if fileSystem := builder.FileSystemFactory(filter); fileSystem != nil {
			return fileSystem
		}
	}
	return filesystem.NewOSFileSystem(filter)
}

func (builder *CommandBuilder) resolvePathNormalizer() *pathutils.Normalizer {
	if builder.PathNormalizer != nil {
		return builder.PathNormalizer
	}
	return pathutils.NewNormalizer()
}
