package gtfsroutes

// NOTE: Only the columns the route conversion reads are listed. Anything else in the
// feed is ignored.

type tableSchema struct {
	Columns []columnSchema
}

type columnSchema struct {
	Name            string
	TypeDescription string
}

var gtfsSchema = map[string]tableSchema{
	"routes": {
		Columns: []columnSchema{
			{Name: "route_id", TypeDescription: "Unique ID"},
			{Name: "route_short_name", TypeDescription: "Text"},
		},
	},

	"trips": {
		Columns: []columnSchema{
			{Name: "trip_id", TypeDescription: "Unique ID"},
			{Name: "route_id", TypeDescription: "Foreign ID referencing routes.route_id"},
			{Name: "direction_id", TypeDescription: "Enum"},
			{Name: "shape_id", TypeDescription: "Foreign ID referencing shapes.shape_id"},
			{Name: "trip_headsign", TypeDescription: "Text"},
		},
	},

	"stops": {
		Columns: []columnSchema{
			{Name: "stop_id", TypeDescription: "Unique ID"},
			{Name: "stop_name", TypeDescription: "Text"},
			{Name: "stop_lat", TypeDescription: "Latitude"},
			{Name: "stop_lon", TypeDescription: "Longitude"},
		},
	},

	"stop_times": {
		Columns: []columnSchema{
			{Name: "trip_id", TypeDescription: "Foreign ID referencing trips.trip_id"},
			{Name: "stop_id", TypeDescription: "Foreign ID referencing stops.stop_id"},
			{Name: "stop_sequence", TypeDescription: "Non-negative integer"},
		},
	},
}
