package gtfsroutes

type feedIndex struct {
	routes map[string]Route
	trips  map[string]Trip
	stops  map[string]Stop

	// Every stop time of each trip, in file order.
	tripStopTimes map[string][]StopTime
}

// indexBy maps each record's key to the record. A later duplicate key replaces an
// earlier one.
func indexBy[T any](records []T, key func(T) string) map[string]T {
	out := make(map[string]T, len(records))
	for _, record := range records {
		out[key(record)] = record
	}
	return out
}

func newFeedIndex(feed *Feed) *feedIndex {
	idx := &feedIndex{
		routes:        indexBy(feed.Routes, func(r Route) string { return r.RouteID }),
		trips:         indexBy(feed.Trips, func(t Trip) string { return t.TripID }),
		stops:         indexBy(feed.Stops, func(s Stop) string { return s.StopID }),
		tripStopTimes: make(map[string][]StopTime),
	}
	for _, st := range feed.StopTimes {
		idx.tripStopTimes[st.TripID] = append(idx.tripStopTimes[st.TripID], st)
	}
	return idx
}
