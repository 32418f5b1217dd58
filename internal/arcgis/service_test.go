package arcgis

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseService(t *testing.T) {
	tests := []struct {
		name        string
		ref         string
		serviceType string
		folder      string
		service     string
		svcType     string
		path        string
	}{
		{name: "root service", ref: "Parcels", folder: "/", service: "Parcels", svcType: "MapServer", path: "Parcels"},
		{name: "folder service", ref: "Utilities/Water", serviceType: "FeatureServer", folder: "Utilities", service: "Water", svcType: "FeatureServer", path: "Utilities/Water"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := ParseService(tt.ref, tt.serviceType)
			assert.Equal(t, tt.folder, svc.FolderName)
			assert.Equal(t, tt.service, svc.ServiceName)
			assert.Equal(t, tt.svcType, svc.Type)
			assert.Equal(t, tt.path, svc.Path())
		})
	}
}

func TestStatusComparison(t *testing.T) {
	assert.True(t, Status("started").Is(StatusStarted))
	assert.True(t, Status("Paused").In(StatusStopped, StatusPaused))
	assert.False(t, Status("").In(StatusStopped, StatusPaused))
	assert.False(t, Status("RECYCLING").Is(StatusStarted))
}
