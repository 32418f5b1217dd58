package lifecycle

import "github.com/cockroachdb/errors"

// Errors that abort a delete. Callers treat them as fatal for the run.
var (
	// ErrStopBeforeDelete indicates a running service did not reach STOPPED
	ErrStopBeforeDelete = errors.New("service could not be stopped before delete")

	// ErrDeleteBlocked indicates the service is in a state that cannot be deleted
	ErrDeleteBlocked = errors.New("service cannot be deleted in its current state")

	// ErrDeleteUnverified indicates the service still answers after delete
	ErrDeleteUnverified = errors.New("service could not be deleted")

	// ErrStatusUnknown indicates the service status could not be determined
	ErrStatusUnknown = errors.New("could not determine service status")

	// ErrUnknownVerb indicates an unsupported lifecycle verb
	ErrUnknownVerb = errors.New("unknown operation")
)
