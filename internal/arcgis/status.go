package arcgis

import (
	"context"
	"encoding/json"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
)

// ProbeKind tells a status probe's outcomes apart. A missing service and a
// failed request are different answers and are never folded together.
type ProbeKind int

const (
	// ProbeKnown means the server reported a run state
	ProbeKnown ProbeKind = iota
	// ProbeNotFound means the server says the service does not exist
	ProbeNotFound
	// ProbeFailed means the state could not be determined
	ProbeFailed
)

func (k ProbeKind) String() string {
	switch k {
	case ProbeKnown:
		return "known"
	case ProbeNotFound:
		return "not-found"
	case ProbeFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Probe is the result of a status check.
type Probe struct {
	Kind   ProbeKind
	Status Status
	Err    error
}

// Known reports whether the probe produced a status.
func (p Probe) Known() bool {
	return p.Kind == ProbeKnown
}

// Is reports whether the probe produced a status equal to s.
func (p Probe) Is(s Status) bool {
	return p.Kind == ProbeKnown && p.Status.Is(s)
}

type statusResponse struct {
	ConfiguredState string `json:"configuredState"`
	RealTimeState   string `json:"realTimeState"`
}

// ServiceStatus fetches the real-time state of svc. A service the server
// does not know returns an error matching ErrServiceNotFound.
func (c *Client) ServiceStatus(ctx context.Context, svc *Service) (Status, error) {
	body, err := c.adminPost(ctx, svc.ResourcePath()+"/status")
	if err != nil {
		return "", err
	}

	var resp statusResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", errors.Wrap(err, "failed to parse status response")
	}
	if resp.RealTimeState == "" {
		return "", errors.WithStack(ErrMissingStatus)
	}
	return Status(resp.RealTimeState), nil
}

// Probe checks the status of svc and records it on the descriptor. Failures
// are logged and returned as a ProbeFailed or ProbeNotFound result; the
// descriptor's status is cleared in both cases.
func (c *Client) Probe(ctx context.Context, svc *Service) Probe {
	status, err := c.ServiceStatus(ctx, svc)
	switch {
	case err == nil:
		svc.Status = status
		return Probe{Kind: ProbeKnown, Status: status}
	case errors.Is(err, ErrServiceNotFound):
		svc.Status = ""
		c.log.Debug("service not found", zap.String("service", svc.Path()), zap.String("type", svc.Type))
		return Probe{Kind: ProbeNotFound, Err: err}
	default:
		svc.Status = ""
		c.log.Warn("status probe failed", zap.String("service", svc.Path()), zap.String("type", svc.Type), zap.Error(err))
		return Probe{Kind: ProbeFailed, Err: err}
	}
}
