package arcgis

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

const (
	// RootFolder is the folder name the server reports for top-level services.
	RootFolder = "/"
	// DefaultServiceType is assumed when no type is given.
	DefaultServiceType = "MapServer"
)

// Status is the server-reported run state of a service. The server is
// authoritative, so values outside the constants below pass through unchanged.
type Status string

const (
	StatusStarted  Status = "STARTED"
	StatusStopped  Status = "STOPPED"
	StatusStarting Status = "STARTING"
	StatusStopping Status = "STOPPING"
	StatusPaused   Status = "PAUSED"
	StatusDeleted  Status = "DELETED"
)

// Is compares two statuses ignoring case.
func (s Status) Is(other Status) bool {
	return strings.EqualFold(string(s), string(other))
}

// In reports whether s matches any of the given statuses.
func (s Status) In(set ...Status) bool {
	for _, other := range set {
		if s.Is(other) {
			return true
		}
	}
	return false
}

func (s Status) String() string {
	return string(s)
}

// Text holds a JSON scalar as a string. The admin API is inconsistent about
// quoting numbers and booleans, and these fields are only ever displayed.
type Text string

// UnmarshalJSON accepts strings, numbers, booleans and null.
func (t *Text) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*t = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*t = Text(s)
		return nil
	}
	*t = Text(data)
	return nil
}

// Extension is a server object extension attached to a service.
type Extension struct {
	TypeName               string `json:"typeName" yaml:"typeName"`
	Capabilities           string `json:"capabilities" yaml:"capabilities"`
	Enabled                Text   `json:"enabled" yaml:"enabled"`
	MaxUploadFileSize      int    `json:"maxUploadFileSize" yaml:"maxUploadFileSize"`
	AllowedUploadFileTypes string `json:"allowedUploadFileTypes" yaml:"allowedUploadFileTypes"`
}

// Service identifies a hosted service and carries its configuration once
// described.
type Service struct {
	FolderName            string      `json:"folderName" yaml:"folderName"`
	ServiceName           string      `json:"serviceName" yaml:"serviceName"`
	Type                  string      `json:"type" yaml:"type"`
	Status                Status      `json:"status,omitempty" yaml:"status,omitempty"`
	Description           string      `json:"description" yaml:"description"`
	Capabilities          string      `json:"capabilities" yaml:"capabilities"`
	ClusterName           string      `json:"clusterName" yaml:"clusterName"`
	MinInstancesPerNode   Text        `json:"minInstancesPerNode" yaml:"minInstancesPerNode"`
	MaxInstancesPerNode   Text        `json:"maxInstancesPerNode" yaml:"maxInstancesPerNode"`
	InstancesPerContainer Text        `json:"instancesPerContainer" yaml:"instancesPerContainer"`
	MaxWaitTime           Text        `json:"maxWaitTime" yaml:"maxWaitTime"`
	MaxStartupTime        Text        `json:"maxStartupTime" yaml:"maxStartupTime"`
	MaxIdleTime           Text        `json:"maxIdleTime" yaml:"maxIdleTime"`
	MaxUsageTime          Text        `json:"maxUsageTime" yaml:"maxUsageTime"`
	LoadBalancing         string      `json:"loadBalancing" yaml:"loadBalancing"`
	IsolationLevel        string      `json:"isolationLevel" yaml:"isolationLevel"`
	ConfiguredState       string      `json:"configuredState" yaml:"configuredState"`
	RecycleInterval       Text        `json:"recycleInterval" yaml:"recycleInterval"`
	RecycleStartTime      Text        `json:"recycleStartTime" yaml:"recycleStartTime"`
	KeepAliveInterval     Text        `json:"keepAliveInterval" yaml:"keepAliveInterval"`
	IsDefault             Text        `json:"isDefault" yaml:"isDefault"`
	Extensions            []Extension `json:"extensions" yaml:"extensions"`
}

// NewService returns a descriptor with the default folder and type applied.
func NewService(name string) *Service {
	return &Service{
		FolderName:  RootFolder,
		ServiceName: name,
		Type:        DefaultServiceType,
	}
}

// ParseService builds a descriptor from a "name" or "folder/name" reference.
// An empty serviceType falls back to DefaultServiceType.
func ParseService(ref, serviceType string) *Service {
	svc := NewService(ref)
	if folder, name, ok := strings.Cut(ref, "/"); ok {
		svc.FolderName = folder
		svc.ServiceName = name
	}
	if serviceType != "" {
		svc.Type = serviceType
	}
	return svc
}

// Path returns name for root services and folder/name otherwise.
func (s *Service) Path() string {
	if s.FolderName == "" || s.FolderName == RootFolder {
		return s.ServiceName
	}
	return s.FolderName + "/" + s.ServiceName
}

// ResourcePath is the admin-relative path of the service resource.
func (s *Service) ResourcePath() string {
	return fmt.Sprintf("services/%s.%s", s.Path(), s.Type)
}

func (s *Service) String() string {
	return fmt.Sprintf("%s '%s'", s.Type, s.Path())
}
