package lifecycle

import (
	"context"
	"testing"

	"bitbucket.org/cover42/agsctl/internal/arcgis"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilter(t *testing.T) {
	services := []*arcgis.Service{
		arcgis.ParseService("Parcels", "MapServer"),
		arcgis.ParseService("Utilities/Water", "MapServer"),
		arcgis.ParseService("Utilities/WaterEdit", "FeatureServer"),
		arcgis.ParseService("Geocoder", "GeocodeServer"),
	}

	tests := []struct {
		name     string
		filter   Filter
		expected []string
	}{
		{name: "empty", filter: Filter{}, expected: []string{"Parcels", "Utilities/Water", "Utilities/WaterEdit", "Geocoder"}},
		{name: "like name", filter: Filter{Name: "water"}, expected: []string{"Utilities/Water", "Utilities/WaterEdit"}},
		{name: "like name and type", filter: Filter{Name: "water", Type: "FeatureServer"}, expected: []string{"Utilities/WaterEdit"}},
		{name: "name equals type", filter: Filter{Name: "GeocodeServer"}, expected: []string{"Geocoder"}},
		{name: "type case sensitive", filter: Filter{Type: "mapserver"}, expected: []string{}},
		{name: "folder prefix", filter: ParseFilter("utilities/", ""), expected: []string{"Utilities/Water", "Utilities/WaterEdit"}},
		{name: "folder and name", filter: ParseFilter("Utilities/edit", ""), expected: []string{"Utilities/WaterEdit"}},
		{name: "type folded", filter: Filter{Type: "mapserver", FoldType: true}, expected: []string{"Parcels", "Utilities/Water"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := []string{}
			for _, svc := range tt.filter.Apply(services) {
				got = append(got, svc.Path())
			}
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestDescribeMatching(t *testing.T) {
	admin := newFakeAdmin()
	admin.add("Parcels.MapServer", &fakeService{status: arcgis.StatusStopped})
	admin.add("Utilities/Water.MapServer", &fakeService{status: arcgis.StatusStarted})
	m := NewManager(admin)

	described, err := m.DescribeMatching(context.Background(), Filter{Name: "wat"})
	require.NoError(t, err)
	require.Len(t, described, 1)
	assert.Equal(t, "described Water", described[0].Description)
	assert.Equal(t, arcgis.StatusStarted, described[0].Status)
	assert.Equal(t, 1, admin.count("describe"))
}
