package lifecycle

import (
	"context"
	"fmt"
	"strings"

	"bitbucket.org/cover42/agsctl/internal/arcgis"
	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
)

// Admin is the subset of the admin API the lifecycle operations need.
// *arcgis.Client satisfies it.
type Admin interface {
	Probe(ctx context.Context, svc *arcgis.Service) arcgis.Probe
	StartService(ctx context.Context, svc *arcgis.Service) error
	StopService(ctx context.Context, svc *arcgis.Service) error
	DeleteService(ctx context.Context, svc *arcgis.Service) error
	Describe(ctx context.Context, svc *arcgis.Service) (*arcgis.Service, error)
	ListServices(ctx context.Context) (*arcgis.Catalog, error)
}

// Reporter receives progress as operations run, in order.
type Reporter interface {
	Notice(msg string)
	Result(res Result)
	Restart(res RestartResult)
}

// Confirmer asks the user to approve a destructive action.
type Confirmer interface {
	Confirm(prompt string) (bool, error)
}

type nopReporter struct{}

func (nopReporter) Notice(string)         {}
func (nopReporter) Result(Result)         {}
func (nopReporter) Restart(RestartResult) {}

// PauseNotice is reported whenever a pause is turned into a stop.
const PauseNotice = "The PAUSE operation is not available. Continuing to STOP service."

// Manager applies lifecycle operations through an Admin.
type Manager struct {
	admin    Admin
	reporter Reporter
	confirm  Confirmer
	log      *zap.Logger
}

// Option configures a Manager
type Option func(*Manager)

// WithReporter sets where per-service progress goes
func WithReporter(r Reporter) Option {
	return func(m *Manager) {
		m.reporter = r
	}
}

// WithConfirmer sets the confirmation source for delete
func WithConfirmer(c Confirmer) Option {
	return func(m *Manager) {
		m.confirm = c
	}
}

// WithLogger sets the logger
func WithLogger(log *zap.Logger) Option {
	return func(m *Manager) {
		m.log = log
	}
}

// NewManager creates a Manager.
func NewManager(admin Admin, opts ...Option) *Manager {
	m := &Manager{
		admin:    admin,
		reporter: nopReporter{},
		log:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Start starts svc if it is STOPPED or PAUSED and confirms it reached STARTED.
func (m *Manager) Start(ctx context.Context, svc *arcgis.Service) Result {
	res := m.transition(ctx, svc, VerbStart)
	m.reporter.Result(res)
	return res
}

// Stop stops svc if it is STARTED or PAUSED and confirms it reached STOPPED.
func (m *Manager) Stop(ctx context.Context, svc *arcgis.Service) Result {
	res := m.transition(ctx, svc, VerbStop)
	m.reporter.Result(res)
	return res
}

// Pause is not supported by the server; it reports a notice and stops svc.
func (m *Manager) Pause(ctx context.Context, svc *arcgis.Service) Result {
	m.reporter.Notice(PauseNotice)
	return m.Stop(ctx, svc)
}

// Restart stops then starts svc. The start step runs even when the stop
// step fails; Phase tells the two apart.
func (m *Manager) Restart(ctx context.Context, svc *arcgis.Service) RestartResult {
	res := RestartResult{Service: svc, Phase: RestartStopFailed}

	res.Stop = m.Stop(ctx, svc)
	if stopReached(res.Stop) {
		res.Phase = RestartStopped
	} else {
		m.log.Warn("restart: stop step failed, attempting start anyway",
			zap.String("service", svc.Path()), zap.String("message", res.Stop.Message))
	}

	res.Start = m.Start(ctx, svc)
	if res.Phase == RestartStopped {
		if res.Start.Succeeded() {
			res.Phase = RestartCompleted
		} else {
			res.Phase = RestartStartFailed
		}
	}

	m.reporter.Restart(res)
	return res
}

// Apply runs verb against one service.
func (m *Manager) Apply(ctx context.Context, verb Verb, svc *arcgis.Service) (bool, error) {
	switch verb {
	case VerbStart:
		return m.Start(ctx, svc).Succeeded(), nil
	case VerbStop:
		return m.Stop(ctx, svc).Succeeded(), nil
	case VerbPause:
		return m.Pause(ctx, svc).Succeeded(), nil
	case VerbRestart:
		return m.Restart(ctx, svc).Succeeded(), nil
	default:
		return false, ErrUnknownVerb
	}
}

// stopReached treats "already stopped" as a completed stop step.
func stopReached(res Result) bool {
	if res.Succeeded() {
		return true
	}
	return res.Outcome == OutcomeSkipped && res.Prior.Is(arcgis.StatusStopped)
}

func (m *Manager) transition(ctx context.Context, svc *arcgis.Service, verb Verb) Result {
	target, allowed := arcgis.StatusStarted, []arcgis.Status{arcgis.StatusStopped, arcgis.StatusPaused}
	action := m.admin.StartService
	if verb == VerbStop {
		target, allowed = arcgis.StatusStopped, []arcgis.Status{arcgis.StatusStarted, arcgis.StatusPaused}
		action = m.admin.StopService
	}

	prior := m.admin.Probe(ctx, svc)
	res := Result{Verb: verb, Service: svc, Prior: prior}

	switch prior.Kind {
	case arcgis.ProbeNotFound:
		res.Outcome = OutcomeFailed
		res.Message = "Service not found."
		res.Err = prior.Err
		return res
	case arcgis.ProbeFailed:
		res.Outcome = OutcomeFailed
		res.Message = fmt.Sprintf("Could not be %s.", pastTense(verb))
		res.Err = prior.Err
		return res
	}

	if !prior.Status.In(allowed...) {
		res.Outcome = OutcomeSkipped
		res.Message = skipReason(verb, prior.Status)
		return res
	}

	if err := action(ctx, svc); err != nil {
		m.log.Error("action failed", zap.Stringer("verb", verb), zap.String("service", svc.Path()), zap.Error(err))
		res.Outcome = OutcomeFailed
		res.Message = fmt.Sprintf("Could not be %s.", pastTense(verb))
		res.Err = err
		return res
	}

	after := m.admin.Probe(ctx, svc)
	if after.Is(target) {
		res.Outcome = OutcomeSucceeded
		res.Message = fmt.Sprintf("Successfully %s...", pastTense(verb))
		return res
	}

	res.Outcome = OutcomeFailed
	res.Message = fmt.Sprintf("Could not be %s.", pastTense(verb))
	res.Err = errors.Newf("%s: status after %s is %q", svc, verb, after.Status)
	return res
}

func pastTense(verb Verb) string {
	if verb == VerbStart {
		return "started"
	}
	return "stopped"
}

func skipReason(verb Verb, status arcgis.Status) string {
	switch {
	case status.Is(arcgis.StatusDeleted):
		return fmt.Sprintf("Can't be %s because it was previously deleted.", pastTense(verb))
	case verb == VerbStart && status.Is(arcgis.StatusStarted):
		return "Is already started."
	case verb == VerbStop && status.Is(arcgis.StatusStopped):
		return "Is already stopped."
	case verb == VerbStart && status.Is(arcgis.StatusStarting):
		return "Can't be started because it is already starting."
	case verb == VerbStart && status.Is(arcgis.StatusStopping):
		return "Can't be started because it is currently stopping."
	case verb == VerbStop && status.Is(arcgis.StatusStarting):
		return "Can't be stopped because it is currently starting."
	case verb == VerbStop && status.Is(arcgis.StatusStopping):
		return "Can't be stopped because it is already stopping."
	default:
		return fmt.Sprintf("Can't be %s because it is %s.", pastTense(verb), strings.ToLower(status.String()))
	}
}
