package nodeglobe

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/kailas-cloud/nodeglobe/internal/repository/dataset"
	cataloguc "github.com/kailas-cloud/nodeglobe/internal/usecase/catalog"
	queryuc "github.com/kailas-cloud/nodeglobe/internal/usecase/query"
)

// Client evaluates node queries against an in-memory node collection.
// It is safe for concurrent use.
type Client struct {
	catalog *cataloguc.Service
	query   *queryuc.Service
	loader  *dataset.Loader // nil with WithNodes
	obs     *observer
}

// New creates a Client. Exactly one of WithNodes or WithDataset is required;
// a dataset is loaded before New returns.
func New(opts ...Option) (*Client, error) {
	cfg := &clientConfig{}
	for _, o := range opts {
		o.apply(cfg)
	}

	switch {
	case cfg.hasNodes && cfg.datasetPath != "":
		return nil, errors.New("nodeglobe: WithNodes and WithDataset are mutually exclusive")
	case !cfg.hasNodes && cfg.datasetPath == "":
		return nil, errors.New("nodeglobe: node source required (use WithNodes or WithDataset)")
	}

	obs, err := newObserver(cfg.logger, cfg.metricsReg)
	if err != nil {
		return nil, err
	}

	// Internal services log through zap; the client reports through its observer.
	nop := zap.NewNop()
	c := &Client{obs: obs}

	if cfg.hasNodes {
		nodes, err := nodesToDomain(cfg.nodes)
		if err != nil {
			return nil, fmt.Errorf("nodeglobe: %w", err)
		}
		c.catalog = cataloguc.New(nil, nop)
		c.catalog.Replace(nodes)
	} else {
		c.loader = dataset.New(cfg.datasetPath, nop)
		c.catalog = cataloguc.New(c.loader, nop)
		if _, err := c.Reload(context.Background()); err != nil {
			return nil, err
		}
	}

	c.query = queryuc.New(c.catalog, nop)
	return c, nil
}

// Parse returns the structured form of text without evaluating it.
func (c *Client) Parse(text string) (out Spec, err error) {
	start := c.obs.now()
	defer func() { c.obs.observe("parse", start, err) }()

	sp, err := c.query.Parse(text)
	if err != nil {
		return Spec{}, err
	}
	return specFromDomain(sp), nil
}

// Query parses text and applies it to the current node collection.
func (c *Client) Query(ctx context.Context, text string) (res Result, err error) {
	start := c.obs.now()
	defer func() { c.obs.observe("query", start, err, "query", text, "count", res.Count) }()

	ev, err := c.query.Query(ctx, text)
	if err != nil {
		return Result{}, err
	}
	c.obs.observeResult(ev.Result.Count())
	return resultFromEvaluation(ev), nil
}

// Nodes returns a copy of the current node collection.
func (c *Client) Nodes(ctx context.Context) (nodes []Node, err error) {
	start := c.obs.now()
	defer func() { c.obs.observe("nodes", start, err) }()

	dn, err := c.catalog.Nodes(ctx)
	if err != nil {
		return nil, err
	}
	return nodesFromDomain(dn), nil
}

// Reload re-reads the dataset and returns the new node count.
// On failure the previous collection stays in place.
func (c *Client) Reload(ctx context.Context) (n int, err error) {
	start := c.obs.now()
	defer func() { c.obs.observe("reload", start, err, "nodes", n) }()

	if c.loader == nil {
		return 0, errors.New("nodeglobe: reload requires WithDataset")
	}
	st, err := c.catalog.Load(ctx)
	if err != nil {
		return 0, fmt.Errorf("nodeglobe: %w", err)
	}
	return st.Nodes, nil
}

// Watch reloads the dataset whenever its file changes. Blocks until ctx is done.
// Failed reloads are reported through the logger and keep the previous collection.
func (c *Client) Watch(ctx context.Context) error {
	if c.loader == nil {
		return errors.New("nodeglobe: watch requires WithDataset")
	}
	return c.loader.Watch(ctx, func() {
		_, _ = c.Reload(ctx)
	})
}
