package nodeglobe

import (
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
)

// Option configures the Client.
type Option interface {
	apply(*clientConfig)
}

// optionFunc adapts a function to the Option interface.
type optionFunc func(*clientConfig)

func (f optionFunc) apply(c *clientConfig) { f(c) }

type clientConfig struct {
	nodes       []Node
	hasNodes    bool
	datasetPath string

	logger     *slog.Logger
	metricsReg prometheus.Registerer
}

// WithNodes serves queries over a fixed node collection.
// Every node is validated when the client is created.
func WithNodes(nodes []Node) Option {
	return optionFunc(func(c *clientConfig) {
		c.nodes = nodes
		c.hasNodes = true
	})
}

// WithDataset loads the node collection from a YAML, JSON or Parquet file.
// Call Client.Reload or Client.Watch to pick up later changes.
func WithDataset(path string) Option {
	return optionFunc(func(c *clientConfig) {
		c.datasetPath = path
	})
}

// WithLogger enables structured logging for client operations.
// Pass nil to disable (default). Uses standard library slog.
func WithLogger(l *slog.Logger) Option {
	return optionFunc(func(c *clientConfig) {
		c.logger = l
	})
}

// WithPrometheus registers client metrics (operation counts and durations)
// on the given registerer. Pass nil to disable (default).
func WithPrometheus(reg prometheus.Registerer) Option {
	return optionFunc(func(c *clientConfig) {
		c.metricsReg = reg
	})
}
