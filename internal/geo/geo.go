// Package geo converts carpool route geometry between the GeoJSON the API
// speaks and the WKB the database stores.
package geo

import (
	"encoding/binary"
	"fmt"

	"github.com/twpayne/go-geom"
	gjson "github.com/twpayne/go-geom/encoding/geojson"
	"github.com/twpayne/go-geom/encoding/wkb"
)

// ToWKB parses a GeoJSON Point or LineString. An empty string yields nil.
func ToWKB(raw string) ([]byte, error) {
	if raw == "" {
		return nil, nil
	}
	var g geom.T
	if err := gjson.Unmarshal([]byte(raw), &g); err != nil {
		return nil, err
	}
	switch t := g.(type) {
	case *geom.Point:
	case *geom.LineString:
		if t.NumCoords() < 2 {
			return nil, fmt.Errorf("route needs at least two points")
		}
	default:
		return nil, fmt.Errorf("unsupported geometry %T, want Point or LineString", g)
	}
	return wkb.Marshal(g, binary.LittleEndian)
}

// ToGeoJSON is the inverse of ToWKB. Empty input yields "".
func ToGeoJSON(b []byte) (string, error) {
	if len(b) == 0 {
		return "", nil
	}
	g, err := wkb.Unmarshal(b)
	if err != nil {
		return "", err
	}
	out, err := gjson.Marshal(g)
	if err != nil {
		return "", err
	}
	return string(out), nil
}
