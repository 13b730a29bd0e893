package nodeglobe

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func sampleNodes() []Node {
	return []Node{
		{ID: "de-1", IP: "10.0.0.1", Version: "0.8.0", Status: StatusActive, LatencyMs: 40, StorageGB: 1200,
			Location: Location{Lat: 52.52, Lon: 13.40, Country: "Germany", City: "Berlin"}},
		{ID: "de-2", IP: "10.0.0.2", Version: "0.8.0", Status: StatusOffline, LatencyMs: 60, StorageGB: 300,
			Location: Location{Lat: 50.11, Lon: 8.68, Country: "Germany", City: "Frankfurt"}},
		{ID: "fr-1", IP: "10.0.0.3", Version: "0.7.1", Status: StatusActive, LatencyMs: 90, StorageGB: 800,
			Location: Location{Lat: 48.86, Lon: 2.35, Country: "France", City: "Paris"}},
		{ID: "jp-1", IP: "10.0.1.1", Version: "0.8.0", Status: StatusActive, LatencyMs: 150, StorageGB: 2000,
			Location: Location{Lat: 35.68, Lon: 139.69, Country: "Japan", City: "Tokyo"}},
	}
}

const sampleYAML = `nodes:
  - id: us-1
    ip: 10.1.0.1
    version: 0.8.0
    status: active
    latency_ms: 35
    storage_gb: 900
    location: {lat: 40.71, lon: -74.0, country: United States, city: New York}
  - id: ca-1
    ip: 10.1.0.2
    version: 0.8.0
    status: offline
    latency_ms: 80
    storage_gb: 150
    location: {lat: 43.65, lon: -79.38, country: Canada}
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestNew_NoSource(t *testing.T) {
	if _, err := New(); err == nil {
		t.Fatal("expected error without a node source")
	}
}

func TestNew_BothSources(t *testing.T) {
	if _, err := New(WithNodes(sampleNodes()), WithDataset("nodes.yaml")); err == nil {
		t.Fatal("expected error with both sources")
	}
}

func TestNew_InvalidNode(t *testing.T) {
	nodes := sampleNodes()
	nodes[1].Status = "sleeping"

	_, err := New(WithNodes(nodes))
	if !errors.Is(err, ErrInvalidNode) {
		t.Fatalf("expected ErrInvalidNode, got %v", err)
	}
}

func TestNew_DuplicateNode(t *testing.T) {
	nodes := append(sampleNodes(), sampleNodes()[0])
	if _, err := New(WithNodes(nodes)); !errors.Is(err, ErrInvalidNode) {
		t.Fatalf("expected ErrInvalidNode, got %v", err)
	}
}

func TestNew_EmptyNodesIsValid(t *testing.T) {
	c, err := New(WithNodes(nil))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	res, err := c.Query(context.Background(), "active nodes")
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if res.Count != 0 || res.Focus != nil {
		t.Errorf("got %+v", res)
	}
}

func TestClient_Query(t *testing.T) {
	c, err := New(WithNodes(sampleNodes()))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	res, err := c.Query(context.Background(), "top 2 fastest active nodes in europe")
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if res.ID == "" {
		t.Error("expected result id")
	}
	if res.Count != 2 || res.Nodes[0].ID != "de-1" || res.Nodes[1].ID != "fr-1" {
		t.Fatalf("nodes: %+v", res.Nodes)
	}
	if res.Description != "Top 2 active in Europe nodes" {
		t.Errorf("description: got %q", res.Description)
	}
	if res.Spec.Region != "europe" || res.Spec.Limit != 2 || res.Spec.SortBy != "latency" {
		t.Errorf("spec: %+v", res.Spec)
	}
	if res.Focus == nil || res.Focus.Lat < 48 || res.Focus.Lat > 53 {
		t.Errorf("focus: %+v", res.Focus)
	}
}

func TestClient_QueryTooLong(t *testing.T) {
	c, _ := New(WithNodes(sampleNodes()))
	_, err := c.Query(context.Background(), strings.Repeat("q", 5000))
	if !errors.Is(err, ErrQueryTooLong) {
		t.Fatalf("expected ErrQueryTooLong, got %v", err)
	}
}

func TestClient_Parse(t *testing.T) {
	c, _ := New(WithNodes(sampleNodes()))

	sp, err := c.Parse("offline nodes on version 0.7 sorted by storage largest first")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if sp.Status != StatusOffline || sp.Version != "0.7" || sp.SortBy != "storage" || sp.SortOrder != "desc" {
		t.Errorf("spec: %+v", sp)
	}
}

func TestClient_NodesIsACopy(t *testing.T) {
	c, _ := New(WithNodes(sampleNodes()))

	nodes, err := c.Nodes(context.Background())
	if err != nil {
		t.Fatalf("Nodes: %v", err)
	}
	if len(nodes) != 4 {
		t.Fatalf("len: %d", len(nodes))
	}
	nodes[0].ID = "changed"

	again, _ := c.Nodes(context.Background())
	if again[0].ID != "de-1" {
		t.Error("caller mutation leaked into the client")
	}
}

func TestClient_Dataset(t *testing.T) {
	path := writeFile(t, "nodes.yaml", sampleYAML)

	c, err := New(WithDataset(path))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	res, err := c.Query(context.Background(), "nodes in north america")
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if res.Count != 2 {
		t.Errorf("count: got %d", res.Count)
	}
	if res.Nodes[1].Location.City != "" {
		t.Errorf("city should be empty, got %q", res.Nodes[1].Location.City)
	}
}

func TestClient_DatasetInvalid(t *testing.T) {
	path := writeFile(t, "nodes.yaml", "nodes:\n  - id: x\n    status: maybe\n")
	if _, err := New(WithDataset(path)); !errors.Is(err, ErrInvalidDataset) {
		t.Fatalf("expected ErrInvalidDataset, got %v", err)
	}
}

func TestClient_ReloadKeepsPreviousOnError(t *testing.T) {
	path := writeFile(t, "nodes.yaml", sampleYAML)
	c, err := New(WithDataset(path))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if err := os.WriteFile(path, []byte("nodes: [oops"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := c.Reload(context.Background()); err == nil {
		t.Fatal("expected reload error")
	}
	nodes, _ := c.Nodes(context.Background())
	if len(nodes) != 2 {
		t.Errorf("previous collection should remain, got %d nodes", len(nodes))
	}
}

func TestClient_ReloadWithoutDataset(t *testing.T) {
	c, _ := New(WithNodes(sampleNodes()))
	if _, err := c.Reload(context.Background()); err == nil {
		t.Fatal("expected error")
	}
	if err := c.Watch(context.Background()); err == nil {
		t.Fatal("expected error")
	}
}

func TestClient_Watch(t *testing.T) {
	path := writeFile(t, "nodes.yaml", sampleYAML)
	c, err := New(WithDataset(path))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- c.Watch(ctx) }()

	single := sampleYAML[:strings.Index(sampleYAML, "  - id: ca-1")]
	deadline := time.Now().Add(5 * time.Second)
	for {
		// The watcher registers asynchronously. Rewrite, then wait out the debounce.
		if err := os.WriteFile(path, []byte(single), 0o600); err != nil {
			t.Fatal(err)
		}
		if waitForNodes(c, 1, time.Second) {
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("reload not observed")
		}
	}

	cancel()
	if err := <-done; err != nil {
		t.Errorf("Watch: %v", err)
	}
}

func waitForNodes(c *Client, want int, within time.Duration) bool {
	until := time.Now().Add(within)
	for time.Now().Before(until) {
		if nodes, _ := c.Nodes(context.Background()); len(nodes) == want {
			return true
		}
		time.Sleep(25 * time.Millisecond)
	}
	return false
}

func TestClient_Observability(t *testing.T) {
	reg := prometheus.NewRegistry()
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))

	c, err := New(WithNodes(sampleNodes()), WithPrometheus(reg), WithLogger(logger))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	ctx := context.Background()
	_, _ = c.Query(ctx, "active nodes")
	_, _ = c.Query(ctx, strings.Repeat("q", 5000))
	_, _ = c.Parse("nodes")

	m := c.obs.metrics
	if got := testutil.ToFloat64(m.operations.WithLabelValues("query", "ok")); got != 1 {
		t.Errorf("query ok: got %v", got)
	}
	if got := testutil.ToFloat64(m.operations.WithLabelValues("query", "error")); got != 1 {
		t.Errorf("query error: got %v", got)
	}
	if got := testutil.ToFloat64(m.operations.WithLabelValues("parse", "ok")); got != 1 {
		t.Errorf("parse ok: got %v", got)
	}
	if got := testutil.CollectAndCount(m.resultSize); got != 1 {
		t.Errorf("result size series: got %d", got)
	}

	out := logs.String()
	if !strings.Contains(out, "operation completed") || !strings.Contains(out, "operation failed") {
		t.Errorf("logs:\n%s", out)
	}
}

func TestClient_MetricsReuseRegistry(t *testing.T) {
	reg := prometheus.NewRegistry()

	c1, err := New(WithNodes(sampleNodes()), WithPrometheus(reg))
	if err != nil {
		t.Fatalf("first client: %v", err)
	}
	c2, err := New(WithNodes(sampleNodes()), WithPrometheus(reg))
	if err != nil {
		t.Fatalf("second client: %v", err)
	}
	if c1.obs.metrics.operations != c2.obs.metrics.operations {
		t.Error("second client should reuse the registered collectors")
	}
}

func TestNewClientMetrics_IncompatibleCollector(t *testing.T) {
	reg := prometheus.NewRegistry()
	reg.MustRegister(prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "nodeglobe",
		Subsystem: "sdk",
		Name:      "operations_total",
		Help:      "Total client operations by type and status.",
	}, []string{"operation", "status"}))

	if _, err := New(WithNodes(sampleNodes()), WithPrometheus(reg)); err == nil {
		t.Fatal("expected error for a collector of another type under the same name")
	}
}
