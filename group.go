package gtfsroutes

import "fmt"

type groupKey struct {
	routeID     string
	directionID string
}

// stopTimeGroups is keyed by (route_id, direction_id) and iterates in the order each key
// was first seen.
type stopTimeGroups struct {
	keys    []groupKey
	members map[groupKey][]StopTime
}

func groupStopTimes(stopTimes []StopTime, trips map[string]Trip) (*stopTimeGroups, error) {
	g := &stopTimeGroups{members: make(map[groupKey][]StopTime)}
	for i, st := range stopTimes {
		trip, ok := trips[st.TripID]
		if !ok {
			return nil, fmt.Errorf("%w: stop_times.txt row %d: trip_id %q not found in trips.txt",
				ErrReference, i+1, st.TripID)
		}

		key := groupKey{routeID: trip.RouteID, directionID: trip.DirectionID}
		if _, seen := g.members[key]; !seen {
			g.keys = append(g.keys, key)
		}
		g.members[key] = append(g.members[key], st)
	}
	return g, nil
}
