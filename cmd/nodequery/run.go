package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/kailas-cloud/nodeglobe/internal/domain/node"
	"github.com/kailas-cloud/nodeglobe/internal/repository/dataset"
	cataloguc "github.com/kailas-cloud/nodeglobe/internal/usecase/catalog"
	queryuc "github.com/kailas-cloud/nodeglobe/internal/usecase/query"
)

// Output formats for the run command.
const (
	formatTable = "table"
	formatJSON  = "json"
	formatCSV   = "csv"
)

type runOptions struct {
	dataset string
	format  string
}

type pointJSON struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

type nodeJSON struct {
	ID        string  `json:"id"`
	IP        string  `json:"ip"`
	Version   string  `json:"version"`
	Status    string  `json:"status"`
	LatencyMs int     `json:"latency_ms"`
	StorageGB float64 `json:"storage_gb"`
	Country   string  `json:"country"`
	City      string  `json:"city,omitempty"`
	Lat       float64 `json:"lat"`
	Lon       float64 `json:"lon"`
}

type evaluationJSON struct {
	Spec        specJSON   `json:"spec"`
	Description string     `json:"description"`
	Count       int        `json:"count"`
	Focus       *pointJSON `json:"focus,omitempty"`
	Nodes       []nodeJSON `json:"nodes"`
}

func newRunCmd(root *rootOptions) *cobra.Command {
	opts := &runOptions{}

	cmd := &cobra.Command{
		Use:   "run --dataset FILE <query...>",
		Short: "Evaluate a query against a dataset file",
		Example: `  nodequery run --dataset nodes.yaml active nodes in Germany
  nodequery run --dataset nodes.parquet --format csv top 10 largest storage nodes`,
		RunE: func(cmd *cobra.Command, args []string) error {
			switch opts.format {
			case formatTable, formatJSON, formatCSV:
			default:
				return fmt.Errorf("unknown format %q (want table, json or csv)", opts.format)
			}

			logger := root.logger()
			catalog := cataloguc.New(dataset.New(opts.dataset, logger), logger)
			if _, err := catalog.Load(cmd.Context()); err != nil {
				return err
			}

			ev, err := queryuc.New(catalog, logger).Query(cmd.Context(), queryText(args))
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			switch opts.format {
			case formatJSON:
				return writeEvaluationJSON(out, ev)
			case formatCSV:
				return dataset.EncodeCSV(out, ev.Result.Nodes())
			default:
				return writeTable(out, ev)
			}
		},
	}

	cmd.Flags().StringVarP(&opts.dataset, "dataset", "d", "", "node dataset (.yaml, .yml, .json, .parquet)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", formatTable, "output format: table, json, csv")
	_ = cmd.MarkFlagRequired("dataset")
	return cmd
}

func writeTable(w io.Writer, ev queryuc.Evaluation) error {
	if _, err := fmt.Fprintln(w, ev.Result.Description()); err != nil {
		return err
	}
	if ev.Result.Count() == 0 {
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tSTATUS\tLATENCY\tSTORAGE\tVERSION\tCOUNTRY\tCITY")
	for _, n := range ev.Result.Nodes() {
		fmt.Fprintf(tw, "%s\t%s\t%dms\t%gGB\t%s\t%s\t%s\n",
			n.ID(), n.Status(), n.LatencyMs(), n.StorageGB(), n.Version(), n.Country(), n.Location().City)
	}
	return tw.Flush()
}

func writeEvaluationJSON(w io.Writer, ev queryuc.Evaluation) error {
	nodes := ev.Result.Nodes()
	out := evaluationJSON{
		Spec:        toSpecJSON(ev.Spec),
		Description: ev.Result.Description(),
		Count:       ev.Result.Count(),
		Nodes:       make([]nodeJSON, len(nodes)),
	}
	for i, n := range nodes {
		out.Nodes[i] = toNodeJSON(n)
	}
	if p, ok := ev.Result.Focus(); ok {
		out.Focus = &pointJSON{Lat: p.Latitude, Lon: p.Longitude}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func toNodeJSON(n node.Node) nodeJSON {
	loc := n.Location()
	return nodeJSON{
		ID:        n.ID(),
		IP:        n.IP(),
		Version:   n.Version(),
		Status:    string(n.Status()),
		LatencyMs: n.LatencyMs(),
		StorageGB: n.StorageGB(),
		Country:   loc.Country,
		City:      loc.City,
		Lat:       loc.Latitude,
		Lon:       loc.Longitude,
	}
}
