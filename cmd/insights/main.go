package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "insights",
		Short:         "Run résumé PDFs through a completion model from the command line",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(generateCmd())
	root.AddCommand(extractCmd())
	root.AddCommand(promptCmd())
	root.AddCommand(normalizeCmd())

	return root
}
