package lifecycle

import (
	"strings"

	"bitbucket.org/cover42/agsctl/internal/arcgis"
)

// Verb is a state transition that can be applied to one service or to the
// whole catalog.
type Verb int

const (
	VerbStart Verb = iota
	VerbStop
	VerbRestart
	// VerbPause is accepted for compatibility and performed as a stop.
	VerbPause
)

func (v Verb) String() string {
	switch v {
	case VerbStart:
		return "start"
	case VerbStop:
		return "stop"
	case VerbRestart:
		return "restart"
	case VerbPause:
		return "pause"
	default:
		return "unknown"
	}
}

// Precondition returns the statuses a service must be in for a bulk pass
// to pick it up.
func (v Verb) Precondition() []arcgis.Status {
	switch v {
	case VerbStart:
		return []arcgis.Status{arcgis.StatusStopped, arcgis.StatusPaused}
	case VerbStop, VerbRestart:
		return []arcgis.Status{arcgis.StatusStarted, arcgis.StatusPaused}
	case VerbPause:
		return []arcgis.Status{arcgis.StatusStarted}
	default:
		return nil
	}
}

// Eligible reports whether svc's last observed status satisfies the verb's
// precondition.
func (v Verb) Eligible(svc *arcgis.Service) bool {
	return svc.Status.In(v.Precondition()...)
}

// ParseVerb maps a verb name to a Verb.
func ParseVerb(name string) (Verb, error) {
	switch strings.ToLower(name) {
	case "start":
		return VerbStart, nil
	case "stop":
		return VerbStop, nil
	case "restart":
		return VerbRestart, nil
	case "pause":
		return VerbPause, nil
	default:
		return 0, ErrUnknownVerb
	}
}

// IsAllTarget reports whether name selects every service ("*all*" or "*all").
func IsAllTarget(name string) bool {
	return strings.EqualFold(name, "*ALL*") || strings.EqualFold(name, "*ALL")
}
