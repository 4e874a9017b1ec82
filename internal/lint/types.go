package lint

const (
	// StatusClean means a check found no orphans.
	StatusClean = 0
	// StatusOrphansFound means a check found at least one orphan.
	StatusOrphansFound = 1
)

// Options configure a lint run.
type Options struct {
	FailOnWarning   bool
	SkipClassChecks bool
	InventoryPath   string
	SearchSecrets   bool
	SecretsPath     string
	CompiledPath    string
	// Concurrency bounds the number of files scanned at once. Values below 2 scan sequentially.
	Concurrency int
}

// CheckResult captures the outcome of a single check.
type CheckResult struct {
	Status       int      `json:"status" yaml:"status"`
	Declared     int      `json:"declared" yaml:"declared"`
	ScannedFiles int      `json:"scanned_files" yaml:"scanned_files"`
	Orphans      []string `json:"orphans" yaml:"orphans"`
}

// HasOrphans reports whether the check left any declaration unreferenced.
func (result CheckResult) HasOrphans() bool {
	return result.Status != StatusClean
}

// Summary aggregates the checks performed by a lint run. Checks that did not run are nil.
type Summary struct {
	Status  int          `json:"status" yaml:"status"`
	Classes *CheckResult `json:"classes,omitempty" yaml:"classes,omitempty"`
	Secrets *CheckResult `json:"secrets,omitempty" yaml:"secrets,omitempty"`
}
