package sbt

import (
	"encoding/json"
	"strconv"

	"github.com/rotisserie/eris"
	"github.com/twpayne/go-geom/encoding/geojson"
)

// ZonesGeoJSON encodes the chart zones as a GeoJSON FeatureCollection in
// chart coordinates, one feature per zone with code and name properties.
func ZonesGeoJSON() ([]byte, error) {
	zones := registry()
	fc := geojson.FeatureCollection{Features: make([]*geojson.Feature, 0, len(zones))}
	for _, z := range zones {
		fc.Features = append(fc.Features, &geojson.Feature{
			ID:       strconv.Itoa(z.Code),
			Geometry: z.Polygon,
			Properties: map[string]interface{}{
				"code": z.Code,
				"name": z.Name,
			},
		})
	}

	data, err := json.Marshal(&fc)
	if err != nil {
		return nil, eris.Wrap(err, "sbt: encode zones geojson")
	}
	return data, nil
}
