package main

import (
	"github.com/spf13/cobra"
)

var version = "dev"

type rootOptions struct {
	configPath string
	debug      bool
}

func newRootCommand() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:   "procure",
		Short: "Procure - weighted decision matrix for supplier selection",
		Long: `Procure scores suppliers against a fixed set of procurement criteria,
weights them by strategic context and ranks the results.

Run it as an HTTP service, or fill in the matrix interactively from a terminal.`,
		Version:      version,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "path to config file")
	cmd.PersistentFlags().BoolVar(&opts.debug, "debug", false, "Enable debug logging")

	cmd.AddCommand(newServeCommand(opts))
	cmd.AddCommand(newEvaluateCommand(opts))
	cmd.AddCommand(newCatalogCommand(opts))

	return cmd
}

func execute() error {
	return newRootCommand().Execute()
}
