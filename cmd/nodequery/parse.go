package main

import (
	"encoding/json"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kailas-cloud/nodeglobe/internal/domain/query/spec"
	queryuc "github.com/kailas-cloud/nodeglobe/internal/usecase/query"
)

// specJSON is the printed form of a parsed query.
type specJSON struct {
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
}

func toSpecJSON(s spec.Spec) specJSON {
	return specJSON{
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
	}
}

func newParseCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "parse <query...>",
		Short:   "Print the structured form of a query as JSON",
		Example: `  nodequery parse top 5 fastest active nodes in Europe`,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sp, err := queryuc.New(nil, zap.NewNop()).Parse(queryText(args))
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(toSpecJSON(sp))
		},
	}
}
