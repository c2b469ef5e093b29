package gtfsroutes

import (
	"fmt"
	"strings"
)

// Feed holds the rows of a static GTFS feed that the route conversion needs, in file
// order. All values are kept as the text found in the feed.
type Feed struct {
	Routes    []Route
	Trips     []Trip
	Stops     []Stop
	StopTimes []StopTime
}

type Route struct {
	RouteID        string
	RouteShortName string
}

type Trip struct {
	TripID       string
	RouteID      string
	DirectionID  string
	ShapeID      string
	TripHeadsign string
}

type Stop struct {
	StopID   string
	StopName string
	StopLat  string
	StopLon  string
}

type StopTime struct {
	TripID       string
	StopID       string
	StopSequence string
}

// table is a feed file before it is decoded into typed rows.
type table struct {
	name   string
	header []string
	rows   [][]string
}

type tableRow struct {
	columns map[string]int
	values  []string
}

func (r tableRow) get(column string) string {
	return r.values[r.columns[column]]
}

func decodeTable[T any](t *table, build func(row tableRow) T) ([]T, error) {
	columns, err := t.requireColumns()
	if err != nil {
		return nil, err
	}
	out := make([]T, 0, len(t.rows))
	for _, values := range t.rows {
		out = append(out, build(tableRow{columns: columns, values: values}))
	}
	return out, nil
}

func (t *table) requireColumns() (map[string]int, error) {
	columns := make(map[string]int, len(t.header))
	for i, column := range t.header {
		if _, ok := columns[column]; !ok {
			columns[column] = i
		}
	}

	var missing []string
	for _, column := range gtfsSchema[t.name].Columns {
		if _, ok := columns[column.Name]; !ok {
			missing = append(missing, fmt.Sprintf("%s (%s)", column.Name, column.TypeDescription))
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s.txt is missing required column(s) %s",
			ErrSchema, t.name, strings.Join(missing, ", "))
	}
	return columns, nil
}

func decodeRoutes(t *table) ([]Route, error) {
	return decodeTable(t, func(row tableRow) Route {
		return Route{
			RouteID:        row.get("route_id"),
			RouteShortName: row.get("route_short_name"),
		}
	})
}

func decodeTrips(t *table) ([]Trip, error) {
	return decodeTable(t, func(row tableRow) Trip {
		return Trip{
			TripID:       row.get("trip_id"),
			RouteID:      row.get("route_id"),
			DirectionID:  row.get("direction_id"),
			ShapeID:      row.get("shape_id"),
			TripHeadsign: row.get("trip_headsign"),
		}
	})
}

func decodeStops(t *table) ([]Stop, error) {
	return decodeTable(t, func(row tableRow) Stop {
		return Stop{
			StopID:   row.get("stop_id"),
			StopName: row.get("stop_name"),
			StopLat:  row.get("stop_lat"),
			StopLon:  row.get("stop_lon"),
		}
	})
}

func decodeStopTimes(t *table) ([]StopTime, error) {
	return decodeTable(t, func(row tableRow) StopTime {
		return StopTime{
			TripID:       row.get("trip_id"),
			StopID:       row.get("stop_id"),
			StopSequence: row.get("stop_sequence"),
		}
	})
}
