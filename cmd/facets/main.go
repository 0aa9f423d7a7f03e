// Command facets prints the geometry behind the kaleidoscope: cell
// metrics, tiling plans, fan vertices, and the configured variants.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"seebs.net/kaleido/errors"
	"seebs.net/kaleido/logging"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, styleIconError.Render(iconError)+" "+errors.UserMessage(err))
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:           "facets",
		Short:         "Inspect kaleidoscope cell geometry",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logger := logging.New(cmd.ErrOrStderr(), logging.Level(verbose))
			cmd.SetContext(logging.WithLogger(cmd.Context(), logger))
		},
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(newMetricsCmd())
	root.AddCommand(newPlanCmd())
	root.AddCommand(newFanCmd())
	root.AddCommand(newVariantsCmd())
	root.AddCommand(newCheckCmd())
	return root
}

func loggerFrom(cmd *cobra.Command) *log.Logger {
	return logging.FromContext(cmd.Context())
}
