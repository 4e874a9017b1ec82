package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	mapstructure "github.com/go-viper/mapstructure/v2"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/temirov/invlint/internal/lint"
	"github.com/temirov/invlint/internal/utils"
)

const (
	testConfigurationFileNameConstant   = "config.yaml"
	testSearchSecretsEnvironmentName    = "INVLINT_TOOLS_LINT_SEARCH_SECRETS"
	testSecretsPathEnvironmentName      = "INVLINT_TOOLS_LINT_SECRETS_PATH"
	testCompiledPathEnvironmentName     = "INVLINT_TOOLS_LINT_COMPILED_PATH"
	testLintCommandNameConstant         = "lint"
	testOrphanClassNameConstant         = "db"
	testReferencedClassNameConstant     = "common"
	testUnusedSecretNameConstant        = "unused-token"
	testInvalidLogLevelArgumentConstant = "verbose"
)

type applicationHarness struct {
	application *Application
	output      *bytes.Buffer
	logs        *bytes.Buffer
}

func newApplicationHarness(testInstance *testing.T) *applicationHarness {
	testInstance.Helper()

	logs := &bytes.Buffer{}
	application := newApplication(utils.NewLoggerFactoryWithSink(logs), []string{testInstance.TempDir()})

	output := &bytes.Buffer{}
	application.rootCommand.SetOut(output)
	application.rootCommand.SetErr(output)

	return &applicationHarness{application: application, output: output, logs: logs}
}

func writeInventoryFixture(testInstance *testing.T) string {
	testInstance.Helper()

	root := testInstance.TempDir()
	files := map[string]string{
		filepath.Join("inventory", "classes", testOrphanClassNameConstant+".yml"):     "parameters: {}\n",
		filepath.Join("inventory", "classes", testReferencedClassNameConstant+".yml"): "parameters: {}\n",
		filepath.Join("inventory", "targets", "prod.yml"):                             "classes:\n  - common\n",
		filepath.Join("secrets", testUnusedSecretNameConstant):                        "c2VjcmV0",
		filepath.Join("compiled", "prod", "app.yml"):                                  "image: app\n",
	}
	for relativePath, content := range files {
		absolutePath := filepath.Join(root, relativePath)
		require.NoError(testInstance, os.MkdirAll(filepath.Dir(absolutePath), 0o755))
		require.NoError(testInstance, os.WriteFile(absolutePath, []byte(content), 0o600))
	}
	return root
}

func TestApplicationAppliesEmbeddedDefaults(testInstance *testing.T) {
	harness := newApplicationHarness(testInstance)

	require.NoError(testInstance, harness.application.ExecuteWithArguments([]string{testLintCommandNameConstant, "--skip-class-checks"}))

	require.Equal(testInstance, string(utils.LogLevelInfo), harness.application.configuration.Common.LogLevel)
	require.Equal(testInstance, string(utils.LogFormatConsole), harness.application.configuration.Common.LogFormat)
	assertDefaultLintConfiguration(testInstance, harness.application.configuration.Tools.Lint)
	require.Contains(testInstance, harness.logs.String(), "Nothing to check")
}

func TestApplicationLoadsConfigurationFile(testInstance *testing.T) {
	fixtureRoot := writeInventoryFixture(testInstance)
	configurationPath := filepath.Join(testInstance.TempDir(), testConfigurationFileNameConstant)
	configurationContent := []byte(
		"common:\n  log_level: debug\ntools:\n  lint:\n    inventory_path: " + filepath.Join(fixtureRoot, "inventory") + "\n    output: json\n",
	)
	require.NoError(testInstance, os.WriteFile(configurationPath, configurationContent, 0o600))

	harness := newApplicationHarness(testInstance)
	require.NoError(testInstance, harness.application.ExecuteWithArguments([]string{testLintCommandNameConstant, "--config", configurationPath}))

	summary := lint.Summary{}
	require.NoError(testInstance, json.Unmarshal(harness.output.Bytes(), &summary))
	require.Equal(testInstance, 1, summary.Status)
	require.Equal(testInstance, []string{testOrphanClassNameConstant}, summary.Classes.Orphans)
	require.Nil(testInstance, summary.Secrets)

	require.Equal(testInstance, configurationPath, harness.application.configurationMetadata.ConfigFileUsed)
	require.Contains(testInstance, harness.logs.String(), "Lint configuration resolved")
}

func TestApplicationEnvironmentOverridesDefaults(testInstance *testing.T) {
	fixtureRoot := writeInventoryFixture(testInstance)
	testInstance.Setenv(testSearchSecretsEnvironmentName, "true")
	testInstance.Setenv(testSecretsPathEnvironmentName, filepath.Join(fixtureRoot, "secrets"))
	testInstance.Setenv(testCompiledPathEnvironmentName, filepath.Join(fixtureRoot, "compiled"))

	harness := newApplicationHarness(testInstance)
	executionError := harness.application.ExecuteWithArguments([]string{
		testLintCommandNameConstant,
		"--skip-class-checks",
		"--fail-on-warning",
		"--output", "yaml",
	})
	require.ErrorIs(testInstance, executionError, lint.ErrOrphansFound)

	summary := lint.Summary{}
	require.NoError(testInstance, yaml.Unmarshal(harness.output.Bytes(), &summary))
	require.Equal(testInstance, 1, summary.Status)
	require.Equal(testInstance, []string{testUnusedSecretNameConstant}, summary.Secrets.Orphans)
}

func TestApplicationRejectsUnsupportedLogLevel(testInstance *testing.T) {
	harness := newApplicationHarness(testInstance)

	executionError := harness.application.ExecuteWithArguments([]string{testLintCommandNameConstant, "--log-level", testInvalidLogLevelArgumentConstant})
	require.Error(testInstance, executionError)
	require.Contains(testInstance, executionError.Error(), "unable to create logger")
}

func TestApplicationMissingClassesDirectoryFails(testInstance *testing.T) {
	inventoryRoot := testInstance.TempDir()

	harness := newApplicationHarness(testInstance)
	executionError := harness.application.ExecuteWithArguments([]string{testLintCommandNameConstant, "--inventory-path", inventoryRoot})

	var configurationError *lint.ConfigurationError
	require.ErrorAs(testInstance, executionError, &configurationError)
}

func TestEmbeddedDefaultConfigurationMatchesCommandDefaults(testInstance *testing.T) {
	content, configurationType := EmbeddedDefaultConfiguration()
	require.Equal(testInstance, configurationTypeConstant, configurationType)

	rawConfiguration := map[string]any{}
	require.NoError(testInstance, yaml.Unmarshal(content, &rawConfiguration))

	decoded := ApplicationConfiguration{}
	decoder, decoderError := mapstructure.NewDecoder(&mapstructure.DecoderConfig{TagName: "mapstructure", Result: &decoded})
	require.NoError(testInstance, decoderError)
	require.NoError(testInstance, decoder.Decode(rawConfiguration))

	assertDefaultLintConfiguration(testInstance, decoded.Tools.Lint)
	require.Equal(testInstance, string(utils.LogLevelInfo), decoded.Common.LogLevel)
}

func assertDefaultLintConfiguration(testInstance *testing.T, actual lint.CommandConfiguration) {
	testInstance.Helper()

	expected := lint.DefaultCommandConfiguration()
	require.Empty(testInstance, actual.Exclude)
	actual.Exclude = expected.Exclude
	require.Equal(testInstance, expected, actual)
}
