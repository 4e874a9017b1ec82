// Package pathutils normalizes user supplied inventory, secrets, and compiled
// root paths: whitespace trimming, home directory expansion, and cleaning.
package pathutils
