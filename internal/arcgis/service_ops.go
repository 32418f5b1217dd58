package arcgis

import (
	"context"
	"encoding/json"

	"github.com/cockroachdb/errors"
)

// Describe fetches the full configuration of svc. The returned descriptor
// keeps svc's folder and carries the status observed by a fresh probe.
func (c *Client) Describe(ctx context.Context, svc *Service) (*Service, error) {
	body, err := c.adminPost(ctx, svc.ResourcePath())
	if err != nil {
		return nil, errors.Wrapf(err, "failed to describe %s", svc)
	}

	var described Service
	if err := json.Unmarshal(body, &described); err != nil {
		return nil, errors.Wrap(err, "failed to parse service configuration")
	}
	if described.ServiceName == "" {
		described.ServiceName = svc.ServiceName
	}
	if described.Type == "" {
		described.Type = svc.Type
	}
	if described.FolderName == "" {
		described.FolderName = svc.FolderName
	}

	c.Probe(ctx, svc)
	described.Status = svc.Status
	return &described, nil
}

// StartService asks the server to start svc.
func (c *Client) StartService(ctx context.Context, svc *Service) error {
	return c.action(ctx, svc, "start")
}

// StopService asks the server to stop svc.
func (c *Client) StopService(ctx context.Context, svc *Service) error {
	return c.action(ctx, svc, "stop")
}

// DeleteService asks the server to delete svc.
func (c *Client) DeleteService(ctx context.Context, svc *Service) error {
	return c.action(ctx, svc, "delete")
}

func (c *Client) action(ctx context.Context, svc *Service, verb string) error {
	if _, err := c.adminPost(ctx, svc.ResourcePath()+"/"+verb); err != nil {
		return errors.Wrapf(err, "failed to %s %s", verb, svc)
	}
	return nil
}
