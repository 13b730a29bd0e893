package chi

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/nodeglobe/internal/domain/node"
	cataloguc "github.com/kailas-cloud/nodeglobe/internal/usecase/catalog"
	healthuc "github.com/kailas-cloud/nodeglobe/internal/usecase/health"
	queryuc "github.com/kailas-cloud/nodeglobe/internal/usecase/query"
)

func fixtureNodes() []node.Node {
	return []node.Node{
		node.Reconstruct("de-1", "10.0.0.1", "0.8.0", node.Active, 40, 1200, node.Location{
			Latitude: 52.52, Longitude: 13.40, Country: "Germany", City: "Berlin",
		}),
		node.Reconstruct("de-2", "10.0.0.2", "0.8.0", node.Offline, 60, 300, node.Location{
			Latitude: 50.11, Longitude: 8.68, Country: "Germany", City: "Frankfurt",
		}),
		node.Reconstruct("de-3", "10.0.0.3", "0.7.1", node.Active, 85, 640.5, node.Location{
			Latitude: 48.14, Longitude: 11.58, Country: "Germany",
		}),
		node.Reconstruct("jp-1", "10.0.1.1", "0.8.0", node.Active, 150, 2000, node.Location{
			Latitude: 35.68, Longitude: 139.69, Country: "Japan", City: "Tokyo",
		}),
		node.Reconstruct("br-1", "10.0.2.1", "0.8.0", node.Active, 240, 100, node.Location{
			Latitude: -23.55, Longitude: -46.63, Country: "Brazil", City: "São Paulo",
		}),
	}
}

type mockLoader struct {
	nodes []node.Node
	err   error
}

func (m *mockLoader) Load(_ context.Context) ([]node.Node, error) { return m.nodes, m.err }

type mockCounter struct {
	n   int64
	err error
}

func (m *mockCounter) Get(_ context.Context, _ time.Time) (int64, error) { return m.n, m.err }

type testEnv struct {
	catalog *cataloguc.Service
	server  *Server
	handler http.Handler
}

// newTestEnv builds the full router over a catalog fed by loader.
// A nil loader leaves the catalog filled with fixtureNodes via Replace.
func newTestEnv(t *testing.T, loader cataloguc.Loader, cfg RouterConfig) *testEnv {
	t.Helper()
	logger := zap.NewNop()

	var cat *cataloguc.Service
	if loader == nil {
		cat = cataloguc.New(nil, logger)
		cat.Replace(fixtureNodes())
	} else {
		cat = cataloguc.New(loader, logger)
	}

	srv := NewServer(queryuc.New(cat, logger), cat, healthuc.New(nil, cat), logger)
	return &testEnv{catalog: cat, server: srv, handler: NewRouter(srv, cfg)}
}

func (e *testEnv) do(t *testing.T, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	switch b := body.(type) {
	case nil:
	case string:
		buf.WriteString(b)
	default:
		if err := json.NewEncoder(&buf).Encode(b); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, target, &buf)
	req.RemoteAddr = "192.0.2.1:4321"
	rr := httptest.NewRecorder()
	e.handler.ServeHTTP(rr, req)
	return rr
}

func decode[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.NewDecoder(rr.Body).Decode(&v); err != nil {
		t.Fatalf("decode response: %v (body %q)", err, rr.Body.String())
	}
	return v
}
