package gtfsroutes

import (
	"fmt"
	"github.com/tidwall/geojson"
	"github.com/tidwall/geojson/geometry"
	"log/slog"
)

func parseClipFeature(clipFeature string) (geojson.Object, error) {
	feature, err := geojson.Parse(clipFeature, &geojson.ParseOptions{RequireValid: true})
	if err != nil {
		return nil, fmt.Errorf("%w: clip feature: %w", ErrParse, err)
	}
	return feature, nil
}

// ClipRoutes keeps the directions with at least one stop inside feature, and the routes
// left with at least one direction. The representative trip of each direction is not
// re-chosen.
func ClipRoutes(routes []RouteEntry, feature geojson.Object) []RouteEntry {
	slog.Info(fmt.Sprintf("Clipping %d routes (clipFeature has %d points)", len(routes), feature.NumPoints()))

	out := make([]RouteEntry, 0, len(routes))
	directionsInside := 0
	totalDirections := 0
	for _, route := range routes {
		var kept []DirectionEntry
		for _, direction := range route.Directions {
			totalDirections++
			if directionInside(direction, feature) {
				kept = append(kept, direction)
				directionsInside++
			}
		}
		if len(kept) == 0 {
			continue
		}
		route.Directions = kept
		out = append(out, route)
	}
	slog.Info(fmt.Sprintf("%d of %d directions are inside", directionsInside, totalDirections))

	return out
}

func directionInside(direction DirectionEntry, feature geojson.Object) bool {
	for _, stop := range direction.Stops {
		point := geojson.NewPoint(geometry.Point{X: stop.Lon, Y: stop.Lat})
		if feature.Contains(point) {
			return true
		}
	}
	return false
}
