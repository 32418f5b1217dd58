package lifecycle

import (
	"bitbucket.org/cover42/agsctl/internal/arcgis"
)

// Outcome classifies what happened to one service.
type Outcome int

const (
	// OutcomeSucceeded means the action ran and the re-probe confirmed it
	OutcomeSucceeded Outcome = iota
	// OutcomeSkipped means the precondition did not hold and nothing was sent
	OutcomeSkipped
	// OutcomeFailed means the action ran, or could not be gated, and the
	// expected state was not reached
	OutcomeFailed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSucceeded:
		return "succeeded"
	case OutcomeSkipped:
		return "skipped"
	case OutcomeFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Result describes one start or stop applied to one service.
type Result struct {
	Verb    Verb
	Service *arcgis.Service
	Prior   arcgis.Probe
	Outcome Outcome
	Message string
	Err     error
}

// Succeeded reports whether the requested state was reached.
func (r Result) Succeeded() bool {
	return r.Outcome == OutcomeSucceeded
}

// RestartPhase records how far a restart got.
type RestartPhase int

const (
	// RestartStopFailed means the service never reached STOPPED. The start
	// step still runs.
	RestartStopFailed RestartPhase = iota
	// RestartStopped is the intermediate state: stopped, start pending
	RestartStopped
	// RestartStartFailed means the service stopped but did not start again
	RestartStartFailed
	// RestartCompleted means both steps succeeded
	RestartCompleted
)

func (p RestartPhase) String() string {
	switch p {
	case RestartStopFailed:
		return "stop-failed"
	case RestartStopped:
		return "stopped"
	case RestartStartFailed:
		return "start-failed"
	case RestartCompleted:
		return "completed"
	default:
		return "unknown"
	}
}

// RestartResult holds both steps of a restart.
type RestartResult struct {
	Service *arcgis.Service
	Stop    Result
	Start   Result
	Phase   RestartPhase
}

// Succeeded reports whether the service was stopped and started again.
func (r RestartResult) Succeeded() bool {
	return r.Phase == RestartCompleted
}

// DeleteOutcome classifies a delete that did not end in a fatal error.
type DeleteOutcome int

const (
	DeleteCancelled DeleteOutcome = iota
	DeleteAlreadyDeleted
	DeleteCompleted
)

func (o DeleteOutcome) String() string {
	switch o {
	case DeleteCancelled:
		return "cancelled"
	case DeleteAlreadyDeleted:
		return "already-deleted"
	case DeleteCompleted:
		return "deleted"
	default:
		return "unknown"
	}
}

// DeleteResult describes a delete.
type DeleteResult struct {
	Service *arcgis.Service
	Outcome DeleteOutcome
	// Stopped is set when the service had to be stopped first.
	Stopped bool
	Message string
}

// BulkReport summarises a pass over the catalog.
type BulkReport struct {
	Verb Verb
	// Candidates is the number of services that matched the precondition.
	Candidates int
	// Affected is the number of candidates the action succeeded on.
	Affected int
	// Err aggregates per-service failures. The pass never stops on them.
	Err error
}
