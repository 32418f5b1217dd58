package lifecycle

import (
	"context"

	"bitbucket.org/cover42/agsctl/internal/arcgis"
	"github.com/cockroachdb/errors"
	"github.com/hashicorp/go-multierror"
	"go.uber.org/zap"
)

// All applies verb to every catalog service whose status matches the verb's
// precondition, one at a time. A failure on one service does not stop the
// pass. The returned error is only set when the catalog cannot be listed.
func (m *Manager) All(ctx context.Context, verb Verb) (BulkReport, error) {
	report := BulkReport{Verb: verb}
	if verb.Precondition() == nil {
		return report, ErrUnknownVerb
	}

	catalog, err := m.admin.ListServices(ctx)
	if err != nil {
		return report, err
	}

	var errs *multierror.Error
	for _, svc := range catalog.Services {
		if !verb.Eligible(svc) {
			continue
		}
		report.Candidates++

		ok, err := m.apply(ctx, verb, svc)
		if err != nil {
			errs = multierror.Append(errs, err)
			continue
		}
		if ok {
			report.Affected++
		}
	}

	report.Err = errs.ErrorOrNil()
	m.log.Info("bulk pass finished",
		zap.Stringer("verb", verb),
		zap.Int("candidates", report.Candidates),
		zap.Int("affected", report.Affected),
	)
	return report, nil
}

func (m *Manager) apply(ctx context.Context, verb Verb, svc *arcgis.Service) (bool, error) {
	if verb == VerbRestart {
		res := m.Restart(ctx, svc)
		if !res.Succeeded() {
			return false, errors.Newf("%s: restart ended in phase %s", svc, res.Phase)
		}
		return true, nil
	}

	var res Result
	switch verb {
	case VerbStart:
		res = m.Start(ctx, svc)
	case VerbStop:
		res = m.Stop(ctx, svc)
	case VerbPause:
		res = m.Pause(ctx, svc)
	}
	if res.Succeeded() {
		return true, nil
	}
	if res.Err != nil {
		return false, errors.Wrapf(res.Err, "%s", svc)
	}
	return false, errors.Newf("%s: %s", svc, res.Message)
}
