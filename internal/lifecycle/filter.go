package lifecycle

import (
	"strings"

	"bitbucket.org/cover42/agsctl/internal/arcgis"
)

// Filter selects catalog entries by a partial name and a type.
type Filter struct {
	// Folder matches when empty or equal to the service folder.
	Folder string
	// Name matches when empty, equal to the service type, or a
	// case-insensitive substring of the service name.
	Name string
	// Type matches when empty or equal to the service type.
	Type string
	// FoldType compares Type ignoring case.
	FoldType bool
}

// Match reports whether svc passes the filter.
func (f Filter) Match(svc *arcgis.Service) bool {
	if f.Folder != "" && !strings.EqualFold(f.Folder, svc.FolderName) {
		return false
	}
	if f.Name != "" && f.Name != svc.Type &&
		!strings.Contains(strings.ToUpper(svc.ServiceName), strings.ToUpper(f.Name)) {
		return false
	}
	if f.Type == "" {
		return true
	}
	if f.FoldType {
		return strings.EqualFold(f.Type, svc.Type)
	}
	return f.Type == svc.Type
}

// ParseFilter builds a Filter from a "likename" that may carry a folder
// prefix ("Utilities/wat").
func ParseFilter(like, serviceType string) Filter {
	f := Filter{Name: like, Type: serviceType}
	if folder, name, ok := strings.Cut(like, "/"); ok {
		f.Folder = folder
		f.Name = name
	}
	return f
}

// Apply returns the services that pass the filter, in order.
func (f Filter) Apply(services []*arcgis.Service) []*arcgis.Service {
	out := make([]*arcgis.Service, 0, len(services))
	for _, svc := range services {
		if f.Match(svc) {
			out = append(out, svc)
		}
	}
	return out
}
