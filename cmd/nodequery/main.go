// Command nodequery evaluates node queries against a dataset file without a server.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	logpkg "github.com/kailas-cloud/nodeglobe/internal/logger"
	"github.com/kailas-cloud/nodeglobe/internal/version"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type rootOptions struct {
	verbose bool
}

// logger returns a debug console logger on stderr with --verbose, otherwise a no-op.
func (o *rootOptions) logger() *zap.Logger {
	if !o.verbose {
		return zap.NewNop()
	}
	l, err := logpkg.NewLogger("local", "debug")
	if err != nil {
		return zap.NewNop()
	}
	return l
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:           "nodequery",
		Short:         "Query a storage-provider node dataset in plain English",
		Version:       version.String(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "log to stderr")

	root.AddCommand(
		newParseCmd(),
		newRunCmd(opts),
		newConvertCmd(opts),
	)
	return root
}

func queryText(args []string) string {
	return strings.Join(args, " ")
}
