package lint

import "strings"

const (
	configurationFailOnWarningKeyConstant   = "fail_on_warning"
	configurationSkipClassChecksKeyConstant = "skip_class_checks"
	configurationInventoryPathKeyConstant   = "inventory_path"
	configurationSearchSecretsKeyConstant   = "search_secrets"
	configurationSecretsPathKeyConstant     = "secrets_path"
	configurationCompiledPathKeyConstant    = "compiled_path"
	configurationConcurrencyKeyConstant     = "concurrency"
	configurationExcludeKeyConstant         = "exclude"
	configurationOutputKeyConstant          = "output"
	configurationKeySeparatorConstant       = "."
	defaultInventoryPathConstant            = "./inventory"
	defaultSecretsPathConstant              = "./secrets"
	defaultCompiledPathConstant             = "./compiled"
	defaultConcurrencyConstant              = 1
)

// CommandConfiguration captures persistent settings for the lint command.
type CommandConfiguration struct {
	FailOnWarning   bool     `mapstructure:"fail_on_warning"`
	SkipClassChecks bool     `mapstructure:"skip_class_checks"`
	InventoryPath   string   `mapstructure:"inventory_path"`
	SearchSecrets   bool     `mapstructure:"search_secrets"`
	SecretsPath     string   `mapstructure:"secrets_path"`
	CompiledPath    string   `mapstructure:"compiled_path"`
	Concurrency     int      `mapstructure:"concurrency"`
	Exclude         []string `mapstructure:"exclude"`
	Output          string   `mapstructure:"output"`
}

// DefaultCommandConfiguration returns baseline configuration values for the lint command.
func DefaultCommandConfiguration() CommandConfiguration {
	return CommandConfiguration{
		InventoryPath: defaultInventoryPathConstant,
		SecretsPath:   defaultSecretsPathConstant,
		CompiledPath:  defaultCompiledPathConstant,
		Concurrency:   defaultConcurrencyConstant,
		Exclude:       []string{},
		Output:        string(ReportFormatNone),
	}
}

// DefaultConfigurationValues exposes the defaults as Viper keys rooted at prefix.
func DefaultConfigurationValues(prefix string) map[string]any {
	defaults := DefaultCommandConfiguration()
	values := map[string]any{
		configurationFailOnWarningKeyConstant:   defaults.FailOnWarning,
		configurationSkipClassChecksKeyConstant: defaults.SkipClassChecks,
		configurationInventoryPathKeyConstant:   defaults.InventoryPath,
		configurationSearchSecretsKeyConstant:   defaults.SearchSecrets,
		configurationSecretsPathKeyConstant:     defaults.SecretsPath,
		configurationCompiledPathKeyConstant:    defaults.CompiledPath,
		configurationConcurrencyKeyConstant:     defaults.Concurrency,
		configurationExcludeKeyConstant:         defaults.Exclude,
		configurationOutputKeyConstant:          defaults.Output,
	}

	trimmedPrefix := strings.TrimSpace(prefix)
	if len(trimmedPrefix) == 0 {
		return values
	}

	prefixed := make(map[string]any, len(values))
	for key, value := range values {
		prefixed[trimmedPrefix+configurationKeySeparatorConstant+key] = value
	}
	return prefixed
}

// Sanitize trims textual values and drops blank exclude patterns. Paths keep their user form.
func (configuration CommandConfiguration) Sanitize() CommandConfiguration {
	sanitized := configuration

	sanitized.InventoryPath = strings.TrimSpace(configuration.InventoryPath)
	sanitized.SecretsPath = strings.TrimSpace(configuration.SecretsPath)
	sanitized.CompiledPath = strings.TrimSpace(configuration.CompiledPath)
	sanitized.Output = strings.ToLower(strings.TrimSpace(configuration.Output))
	if sanitized.Concurrency < defaultConcurrencyConstant {
		sanitized.Concurrency = defaultConcurrencyConstant
	}

	sanitized.Exclude = make([]string, 0, len(configuration.Exclude))
	for _, pattern := range configuration.Exclude {
		trimmedPattern := strings.TrimSpace(pattern)
		if len(trimmedPattern) == 0 {
			continue
		}
		sanitized.Exclude = append(sanitized.Exclude, trimmedPattern)
	}

	return sanitized
}
