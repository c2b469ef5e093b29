// Package gtfsroutes converts a static GTFS feed into a list of routes, each with its
// directions and the ordered stops served in each direction.
//
// Known limitation: the stops of a direction come from a single representative trip,
// the first trip of that route and direction to appear in stop_times.txt. Other trips
// in the same direction are assumed to serve the same stops. When they don't, their
// pattern is silently dropped.
package gtfsroutes

import (
	"cmp"
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"
)

type RouteEntry struct {
	RouteID        string           `json:"route_id"`
	RouteShortName string           `json:"route_short_name"`
	Directions     []DirectionEntry `json:"directions"`
}

type DirectionEntry struct {
	DirectionID int    `json:"direction_id"`
	ShapeID     string `json:"shape_id"`
	// Holds the representative trip's trip_headsign. Consumers read it under this name.
	RouteLongName string    `json:"route_long_name"`
	Stops         []StopRef `json:"stops"`
}

type StopRef struct {
	StopID   string  `json:"stop_id"`
	StopName string  `json:"stop_name"`
	Lat      float64 `json:"lat"`
	Lon      float64 `json:"lon"`
}

// BuildRoutes groups the feed's stop times by route and direction. Routes are ordered by
// the first appearance of any of their trips in stop_times.txt, and directions likewise
// within a route.
func BuildRoutes(feed *Feed) ([]RouteEntry, error) {
	idx := newFeedIndex(feed)

	groups, err := groupStopTimes(feed.StopTimes, idx.trips)
	if err != nil {
		return nil, err
	}

	agg := newRouteAggregator(idx.routes)
	for _, key := range groups.keys {
		direction, err := buildDirection(groups.members[key], idx)
		if err != nil {
			return nil, fmt.Errorf("route %s direction %s: %w", key.routeID, key.directionID, err)
		}
		if err := agg.add(key.routeID, direction); err != nil {
			return nil, err
		}
	}
	return agg.entries(), nil
}

func buildDirection(group []StopTime, idx *feedIndex) (DirectionEntry, error) {
	tripID := group[0].TripID
	trip := idx.trips[tripID]

	type sequenced struct {
		seq int
		st  StopTime
	}
	var tripStops []sequenced
	for _, st := range idx.tripStopTimes[tripID] {
		seq, err := parseInt(st.StopSequence)
		if err != nil {
			return DirectionEntry{}, fmt.Errorf("%w: trip %s: stop_sequence %q is not an integer",
				ErrFormat, tripID, st.StopSequence)
		}
		tripStops = append(tripStops, sequenced{seq: seq, st: st})
	}
	slices.SortStableFunc(tripStops, func(a, b sequenced) int { return cmp.Compare(a.seq, b.seq) })

	stops := make([]StopRef, 0, len(tripStops))
	for _, ts := range tripStops {
		stop, ok := idx.stops[ts.st.StopID]
		if !ok {
			return DirectionEntry{}, fmt.Errorf("%w: trip %s: stop_id %q not found in stops.txt",
				ErrReference, tripID, ts.st.StopID)
		}
		lat, err := parseCoordinate(stop.StopLat)
		if err != nil {
			return DirectionEntry{}, fmt.Errorf("%w: stop %s: stop_lat %q", err, stop.StopID, stop.StopLat)
		}
		lon, err := parseCoordinate(stop.StopLon)
		if err != nil {
			return DirectionEntry{}, fmt.Errorf("%w: stop %s: stop_lon %q", err, stop.StopID, stop.StopLon)
		}
		stops = append(stops, StopRef{
			StopID:   ts.st.StopID,
			StopName: stop.StopName,
			Lat:      lat,
			Lon:      lon,
		})
	}

	directionID, err := parseInt(trip.DirectionID)
	if err != nil {
		return DirectionEntry{}, fmt.Errorf("%w: trip %s: direction_id %q is not an integer",
			ErrFormat, tripID, trip.DirectionID)
	}

	return DirectionEntry{
		DirectionID:   directionID,
		ShapeID:       trip.ShapeID,
		RouteLongName: trip.TripHeadsign,
		Stops:         stops,
	}, nil
}

func parseInt(s string) (int, error) {
	return strconv.Atoi(strings.TrimSpace(s))
}

// parseCoordinate rejects NaN and infinities, which JSON cannot represent.
func parseCoordinate(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, ErrFormat
	}
	return v, nil
}

// routeAggregator owns the route entries until they are handed out by entries.
type routeAggregator struct {
	routes   map[string]Route
	order    []string
	builders map[string]*RouteEntry
}

func newRouteAggregator(routes map[string]Route) *routeAggregator {
	return &routeAggregator{
		routes:   routes,
		builders: make(map[string]*RouteEntry),
	}
}

func (a *routeAggregator) add(routeID string, direction DirectionEntry) error {
	entry, ok := a.builders[routeID]
	if !ok {
		route, ok := a.routes[routeID]
		if !ok {
			return fmt.Errorf("%w: route_id %q not found in routes.txt", ErrReference, routeID)
		}
		entry = &RouteEntry{
			RouteID:        routeID,
			RouteShortName: route.RouteShortName,
			Directions:     []DirectionEntry{},
		}
		a.builders[routeID] = entry
		a.order = append(a.order, routeID)
	}
	entry.Directions = append(entry.Directions, direction)
	return nil
}

func (a *routeAggregator) entries() []RouteEntry {
	out := make([]RouteEntry, 0, len(a.order))
	for _, routeID := range a.order {
		out = append(out, *a.builders[routeID])
	}
	return out
}
