package lifecycle

import (
	"context"
	"fmt"

	"bitbucket.org/cover42/agsctl/internal/arcgis"
	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
)

// DeleteOptions controls a delete.
type DeleteOptions struct {
	// SkipConfirm bypasses the confirmation prompt.
	SkipConfirm bool
}

// Delete removes svc from the server. A running service is stopped first.
// Returned errors are fatal: the service could not be stopped, is in a state
// that blocks deletion, or still answers after the delete call.
func (m *Manager) Delete(ctx context.Context, svc *arcgis.Service, opts DeleteOptions) (DeleteResult, error) {
	res := DeleteResult{Service: svc}

	prior := m.admin.Probe(ctx, svc)
	if done, err := deleteGate(&res, svc, prior); done || err != nil {
		return res, err
	}

	if !opts.SkipConfirm {
		ok, err := m.confirmDelete(svc)
		if err != nil {
			return res, err
		}
		if !ok {
			res.Outcome = DeleteCancelled
			res.Message = "Service deletion CANCELLED!"
			return res, nil
		}

		// the status may have moved while the prompt was open
		prior = m.admin.Probe(ctx, svc)
		if done, err := deleteGate(&res, svc, prior); done || err != nil {
			return res, err
		}
	}

	if prior.Status.In(arcgis.StatusStarted, arcgis.StatusPaused) {
		if err := m.admin.StopService(ctx, svc); err != nil {
			return res, errors.Mark(err, ErrStopBeforeDelete)
		}
		if after := m.admin.Probe(ctx, svc); !after.Is(arcgis.StatusStopped) {
			return res, errors.Wrapf(ErrStopBeforeDelete, "%s is %q", svc, after.Status)
		}
		res.Stopped = true
	} else if !prior.Status.Is(arcgis.StatusStopped) {
		return res, errors.Wrapf(ErrDeleteBlocked, "%s is %q", svc, prior.Status)
	}

	if err := m.admin.DeleteService(ctx, svc); err != nil {
		return res, errors.Mark(err, ErrDeleteUnverified)
	}

	after := m.admin.Probe(ctx, svc)
	switch {
	case after.Kind == arcgis.ProbeNotFound, after.Is(arcgis.StatusDeleted):
	case after.Kind == arcgis.ProbeFailed:
		return res, errors.Mark(errors.Wrapf(after.Err, "%s: delete could not be verified", svc), ErrDeleteUnverified)
	default:
		return res, errors.Wrapf(ErrDeleteUnverified, "%s is still %q", svc, after.Status)
	}

	res.Outcome = DeleteCompleted
	if res.Stopped {
		res.Message = "Successfully stopped, and deleted..."
	} else {
		res.Message = "Successfully deleted..."
	}
	m.log.Info("service deleted", zap.String("service", svc.Path()), zap.String("type", svc.Type))
	return res, nil
}

func (m *Manager) confirmDelete(svc *arcgis.Service) (bool, error) {
	if m.confirm == nil {
		return false, errors.New("delete needs confirmation but no prompt is available (use --yes)")
	}
	prompt := fmt.Sprintf("Delete '%s' %s service, are you sure (yes or no)? ", svc.Path(), svc.Type)
	return m.confirm.Confirm(prompt)
}

// deleteGate refuses deletes the observed status rules out. done reports a
// finished delete that needs no further calls.
func deleteGate(res *DeleteResult, svc *arcgis.Service, p arcgis.Probe) (done bool, err error) {
	switch p.Kind {
	case arcgis.ProbeNotFound:
		return false, errors.Wrapf(arcgis.ErrServiceNotFound, "%s", svc)
	case arcgis.ProbeFailed:
		return false, errors.Mark(errors.Wrapf(p.Err, "%s", svc), ErrStatusUnknown)
	}

	switch {
	case p.Status.Is(arcgis.StatusDeleted):
		res.Outcome = DeleteAlreadyDeleted
		res.Message = "Can't be deleted because it was previously deleted!"
		return true, nil
	case p.Status.Is(arcgis.StatusStarting):
		return false, errors.Wrap(ErrDeleteBlocked, "Can't be deleted because it is currently starting!")
	case p.Status.Is(arcgis.StatusStopping):
		return false, errors.Wrap(ErrDeleteBlocked, "Can't be deleted because it is currently stopping!")
	}
	return false, nil
}
