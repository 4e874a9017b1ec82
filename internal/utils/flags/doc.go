// Package flags provides pflag value types shared by invlint commands: yes/no
// toggles and enumerated choices with highlighted defaults.
package flags
