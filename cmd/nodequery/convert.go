package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kailas-cloud/nodeglobe/internal/repository/dataset"
)

func newConvertCmd(root *rootOptions) *cobra.Command {
	var in, out string

	cmd := &cobra.Command{
		Use:     "convert --in FILE --out FILE",
		Short:   "Validate a dataset and rewrite it in the format of the output extension",
		Example: `  nodequery convert --in nodes.yaml --out nodes.parquet`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if _, err := dataset.FormatOf(out); err != nil {
				return err
			}
			nodes, err := dataset.Read(in)
			if err != nil {
				return err
			}
			if err := dataset.Write(out, nodes); err != nil {
				return err
			}
			root.logger().Debug("Dataset converted",
				zap.String("in", in),
				zap.String("out", out),
				zap.Int("nodes", len(nodes)),
			)
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "converted %d nodes: %s -> %s\n", len(nodes), in, out)
			return err
		},
	}

	cmd.Flags().StringVar(&in, "in", "", "source dataset")
	cmd.Flags().StringVar(&out, "out", "", "destination dataset; format chosen by extension")
	_ = cmd.MarkFlagRequired("in")
	_ = cmd.MarkFlagRequired("out")
	return cmd
}
