package chi

import (
	"time"

	"github.com/kailas-cloud/nodeglobe/internal/domain/node"
	"github.com/kailas-cloud/nodeglobe/internal/domain/query/spec"
	cataloguc "github.com/kailas-cloud/nodeglobe/internal/usecase/catalog"
	queryuc "github.com/kailas-cloud/nodeglobe/internal/usecase/query"
)

// ErrorCode is the machine-readable error kind in API error bodies.
type ErrorCode string

// API error codes.
const (
	CodeBadRequest         ErrorCode = "bad_request"
	CodeUnauthorized       ErrorCode = "unauthorized"
	CodeNotFound           ErrorCode = "not_found"
	CodeMethodNotAllowed   ErrorCode = "method_not_allowed"
	CodeQueryTooLong       ErrorCode = "query_too_long"
	CodeRateLimited        ErrorCode = "rate_limited"
	CodeCatalogUnavailable ErrorCode = "catalog_unavailable"
	CodeInvalidDataset     ErrorCode = "invalid_dataset"
	CodeInternalError      ErrorCode = "internal_error"
)

// ErrorResponse is the body of every non-2xx API response.
type ErrorResponse struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
}

// QueryRequest is the body of POST /api/v1/query.
type QueryRequest struct {
	Query string `json:"query"`
}

// SpecResponse is the structured form of a parsed query.
type SpecResponse struct {
	Countries []string `json:"countries,omitempty"`
	Region    string   `json:"region,omitempty"`
	Latency   string   `json:"latency,omitempty"`
	Status    string   `json:"status,omitempty"`
	Storage   string   `json:"storage,omitempty"`
	Version   string   `json:"version,omitempty"`
	Limit     int      `json:"limit,omitempty"`
	SortBy    string   `json:"sort_by,omitempty"`
	SortOrder string   `json:"sort_order"`
	Raw       string   `json:"raw"`
	Fields    []string `json:"fields"`
}

// PointResponse is a lat/lon pair.
type PointResponse struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// LocationResponse is where a node is hosted.
type LocationResponse struct {
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
	Country string  `json:"country"`
	City    string  `json:"city,omitempty"`
}

// NodeResponse is one node record.
type NodeResponse struct {
	ID        string           `json:"id"`
	IP        string           `json:"ip"`
	Version   string           `json:"version"`
	Status    string           `json:"status"`
	LatencyMs int              `json:"latency_ms"`
	StorageGB float64          `json:"storage_gb"`
	Location  LocationResponse `json:"location"`
}

// QueryResponse is the result of POST /api/v1/query.
type QueryResponse struct {
	ID          string         `json:"id"`
	Query       string         `json:"query"`
	Spec        SpecResponse   `json:"spec"`
	Count       int            `json:"count"`
	Description string         `json:"description"`
	Focus       *PointResponse `json:"focus,omitempty"`
	Items       []NodeResponse `json:"items"`
	TookMs      float64        `json:"took_ms"`
}

// NodeListResponse is the full catalog.
type NodeListResponse struct {
	Items []NodeResponse `json:"items"`
	Total int            `json:"total"`
}

// StatsResponse summarizes the catalog.
type StatsResponse struct {
	Nodes        int        `json:"nodes"`
	Active       int        `json:"active"`
	Offline      int        `json:"offline"`
	Countries    int        `json:"countries"`
	Source       string     `json:"source,omitempty"`
	LoadedAt     *time.Time `json:"loaded_at,omitempty"`
	QueriesToday *int64     `json:"queries_today,omitempty"`
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

func specToResponse(s spec.Spec) SpecResponse {
	fields := s.Populated()
	if fields == nil {
		fields = []string{}
	}
	return SpecResponse{
		Countries: s.Countries(),
		Region:    s.Region(),
		Latency:   string(s.Latency()),
		Status:    string(s.Status()),
		Storage:   string(s.Storage()),
		Version:   s.Version(),
		Limit:     s.Limit(),
		SortBy:    string(s.SortKey()),
		SortOrder: string(s.Direction()),
		Raw:       s.Raw(),
		Fields:    fields,
	}
}

func nodeToResponse(n node.Node) NodeResponse {
	loc := n.Location()
	return NodeResponse{
		ID:        n.ID(),
		IP:        n.IP(),
		Version:   n.Version(),
		Status:    string(n.Status()),
		LatencyMs: n.LatencyMs(),
		StorageGB: n.StorageGB(),
		Location: LocationResponse{
			Lat:     loc.Latitude,
			Lon:     loc.Longitude,
			Country: loc.Country,
			City:    loc.City,
		},
	}
}

func nodesToResponse(nodes []node.Node) []NodeResponse {
	items := make([]NodeResponse, len(nodes))
	for i, n := range nodes {
		items[i] = nodeToResponse(n)
	}
	return items
}

func evaluationToResponse(ev queryuc.Evaluation) QueryResponse {
	resp := QueryResponse{
		ID:          ev.ID,
		Query:       ev.Spec.Raw(),
		Spec:        specToResponse(ev.Spec),
		Count:       ev.Result.Count(),
		Description: ev.Result.Description(),
		Items:       nodesToResponse(ev.Result.Nodes()),
		TookMs:      float64(ev.Took.Microseconds()) / 1000,
	}
	if p, ok := ev.Result.Focus(); ok {
		resp.Focus = &PointResponse{Lat: p.Latitude, Lon: p.Longitude}
	}
	return resp
}

func statsToResponse(st cataloguc.Stats) StatsResponse {
	resp := StatsResponse{
		Nodes:     st.Nodes,
		Active:    st.Active,
		Offline:   st.Offline,
		Countries: st.Countries,
		Source:    string(st.Source),
	}
	if !st.LoadedAt.IsZero() {
		at := st.LoadedAt.UTC()
		resp.LoadedAt = &at
	}
	return resp
}
