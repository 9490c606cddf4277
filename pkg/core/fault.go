package core

import (
	"log"
)

// FaultHandler is the single extension point every classified failure
// passes through. Raise receives the failure and decides the policy:
// the default returns it unchanged, aborting the operation; an
// alternate policy may log and suppress it, in which case the query
// method returns its empty result form. Alternate policies are
// separate implementations, not overrides of the default.
type FaultHandler interface {
	Raise(err *QueryError) error
}

type failFast struct{}

func (failFast) Raise(err *QueryError) error { return err }

// FailFast is the default fault policy: every classified failure is
// returned to the caller as-is.
var FailFast FaultHandler = failFast{}

type logAndContinue struct {
	logger *log.Logger
}

// LogAndContinue returns a fault policy that logs each classified
// failure and suppresses it. Methods running under this policy report
// success with their empty result form instead of failing.
func LogAndContinue(logger *log.Logger) FaultHandler {
	return &logAndContinue{logger: logger}
}

func (h *logAndContinue) Raise(err *QueryError) error {
	h.logger.Printf("suppressed query failure: %v", err)
	return nil
}
