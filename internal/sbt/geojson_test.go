package sbt

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestZonesGeoJSON(t *testing.T) {
	data, err := ZonesGeoJSON()
	require.NoError(t, err)

	var fc struct {
		Type     string `json:"type"`
		Features []struct {
			ID       string `json:"id"`
			Geometry struct {
				Type        string        `json:"type"`
				Coordinates [][][]float64 `json:"coordinates"`
			} `json:"geometry"`
			Properties struct {
				Code int    `json:"code"`
				Name string `json:"name"`
			} `json:"properties"`
		} `json:"features"`
	}
	require.NoError(t, json.Unmarshal(data, &fc))

	assert.Equal(t, "FeatureCollection", fc.Type)
	require.Len(t, fc.Features, ZoneCount)
	for i, f := range fc.Features {
		assert.Equal(t, i+1, f.Properties.Code)
		assert.Equal(t, ZoneName(i+1), f.Properties.Name)
		assert.Equal(t, "Polygon", f.Geometry.Type)
		require.Len(t, f.Geometry.Coordinates, 1)
	}

	// Zone 7 opens at (0.1, 150.42).
	assert.Equal(t, []float64{0.1, 150.42}, fc.Features[6].Geometry.Coordinates[0][0])
}
