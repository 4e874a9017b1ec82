// Package cli constructs the invlint command-line interface, wiring the Cobra
// command hierarchy, the Viper configuration loader, and zap logging. Execute
// builds a fresh application and runs it against the process arguments.
package cli
