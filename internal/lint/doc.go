// Package lint implements the inventory consistency checks behind the
// invlint CLI.
//
// ClassChecker reports classes declared under <inventory>/classes that no file
// in the inventory mentions. SecretChecker reports files under the secrets root
// that no compiled file mentions. Service decides which checks run and sums
// their statuses, and CommandBuilder wires the whole thing into a Cobra command.
// References are detected by plain substring containment; file contents are
// never parsed.
package lint
