package lint

import (
	"errors"
	"fmt"
)

const (
	invalidClassesDirectoryTemplateConstant = "%s is not a valid directory or does not exist"
	fileSystemMissingMessageConstant        = "file system not configured"
	orphansFoundMessageConstant             = "orphaned classes or secrets found"
)

// ErrFileSystemNotConfigured indicates the service was constructed without a file system.
var ErrFileSystemNotConfigured = errors.New(fileSystemMissingMessageConstant)

// ErrOrphansFound is returned when fail-on-warning is set and at least one check reported orphans.
var ErrOrphansFound = errors.New(orphansFoundMessageConstant)

// ConfigurationError reports an inventory layout that cannot be linted.
type ConfigurationError struct {
	Path string
}

func (configurationError *ConfigurationError) Error() string {
	return fmt.Sprintf(invalidClassesDirectoryTemplateConstant, configurationError.Path)
}
