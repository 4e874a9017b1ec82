// Package utils exposes reusable helpers consumed by the invlint commands.
//
// It houses the ConfigurationLoader, which layers embedded defaults, a YAML
// configuration file, and INVLINT_ environment variables through Viper, and the
// LoggerFactory, which builds zap loggers in structured or console format.
package utils
