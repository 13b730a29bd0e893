package nodeglobe

// Node status values.
const (
	StatusActive  = "active"
	StatusOffline = "offline"
)

// Location is where a node is hosted.
type Location struct {
	Lat     float64
	Lon     float64
	Country string
	City    string // optional
}

// Node is a storage-provider node.
type Node struct {
	ID        string
	IP        string
	Version   string
	Status    string // StatusActive or StatusOffline
	LatencyMs int
	StorageGB float64
	Location  Location
}

// Point is a latitude/longitude pair in degrees.
type Point struct {
	Lat float64
	Lon float64
}

// Spec is the structured form of a query. Zero values mean the field was not
// mentioned.
type Spec struct {
	Countries []string
	Region    string
	Latency   string // low, medium, high
	Status    string
	Storage   string // low, high
	Version   string
	Limit     int
	SortBy    string // latency, storage, status
	SortOrder string // asc, desc
	Raw       string
}

// Result is the outcome of a query.
type Result struct {
	ID          string
	Spec        Spec
	Nodes       []Node
	Count       int
	Description string
	// Focus is the geographic center of Nodes; nil when nothing matched.
	Focus *Point
}
