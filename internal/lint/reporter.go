package lint

import "go.uber.org/zap"

const (
	logFieldCountConstant   = "count"
	logFieldOrphansConstant = "orphans"
	logFieldPathConstant    = "path"
)

// Reporter receives the progress and findings of the checks. *zap.Logger satisfies it.
type Reporter interface {
	Debug(message string, fields ...zap.Field)
	Info(message string, fields ...zap.Field)
}

func resolveReporter(reporter Reporter) Reporter {
	if reporter == nil {
		return zap.NewNop()
	}
	return reporter
}
