package lifecycle

import (
	"context"

	"bitbucket.org/cover42/agsctl/internal/arcgis"
	"github.com/hashicorp/go-multierror"
	"go.uber.org/zap"
)

// List returns every catalog service that passes f, with status populated.
func (m *Manager) List(ctx context.Context, f Filter) ([]*arcgis.Service, error) {
	catalog, err := m.admin.ListServices(ctx)
	if err != nil {
		return nil, err
	}
	return f.Apply(catalog.Services), nil
}

// Describe fetches the full configuration of svc.
func (m *Manager) Describe(ctx context.Context, svc *arcgis.Service) (*arcgis.Service, error) {
	return m.admin.Describe(ctx, svc)
}

// DescribeMatching describes every catalog service that passes f. Services
// that fail to describe are skipped and their errors aggregated.
func (m *Manager) DescribeMatching(ctx context.Context, f Filter) ([]*arcgis.Service, error) {
	services, err := m.List(ctx, f)
	if err != nil {
		return nil, err
	}

	var errs *multierror.Error
	described := make([]*arcgis.Service, 0, len(services))
	for _, svc := range services {
		d, err := m.admin.Describe(ctx, svc)
		if err != nil {
			m.log.Warn("describe failed", zap.String("service", svc.Path()), zap.Error(err))
			errs = multierror.Append(errs, err)
			continue
		}
		described = append(described, d)
	}
	return described, errs.ErrorOrNil()
}
