package arcgis

import (
	"context"
	"encoding/json"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
)

// Catalog is the set of services and folders under the admin root.
type Catalog struct {
	Services []*Service `json:"services"`
	Folders  []string   `json:"folders"`
}

type catalogResponse struct {
	FolderName string     `json:"folderName"`
	Folders    []string   `json:"folders"`
	Services   []*Service `json:"services"`
}

// folderCatalog lists one folder. An empty folder lists the root.
func (c *Client) folderCatalog(ctx context.Context, folder string) (*catalogResponse, error) {
	body, err := c.adminPost(ctx, "services/"+folder)
	if err != nil {
		return nil, err
	}

	var resp catalogResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, errors.Wrap(err, "failed to parse catalog response")
	}

	for _, svc := range resp.Services {
		if svc == nil {
			continue
		}
		if svc.FolderName == "" {
			if folder == "" {
				svc.FolderName = RootFolder
			} else {
				svc.FolderName = folder
			}
		}
		if svc.Type == "" {
			svc.Type = DefaultServiceType
		}
	}
	return &resp, nil
}

// ListServices walks the root and every folder it declares, one level deep,
// and probes each service's status. Root services come first, then each
// folder's services in declaration order. A folder that cannot be listed is
// logged and skipped; a root that cannot be listed is an error.
func (c *Client) ListServices(ctx context.Context) (*Catalog, error) {
	root, err := c.folderCatalog(ctx, "")
	if err != nil {
		return nil, errors.Wrap(err, "failed to list services")
	}

	catalog := &Catalog{
		Services: make([]*Service, 0, len(root.Services)),
		Folders:  root.Folders,
	}
	catalog.add(root.Services)

	for _, folder := range root.Folders {
		resp, err := c.folderCatalog(ctx, folder)
		if err != nil {
			c.log.Warn("failed to list folder", zap.String("folder", folder), zap.Error(err))
			continue
		}
		catalog.add(resp.Services)
	}

	for _, svc := range catalog.Services {
		c.Probe(ctx, svc)
	}

	return catalog, nil
}

func (cat *Catalog) add(services []*Service) {
	for _, svc := range services {
		if svc != nil {
			cat.Services = append(cat.Services, svc)
		}
	}
}
