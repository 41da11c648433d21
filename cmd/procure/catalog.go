package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MikeSquared-Agency/Procure/internal/config"
	"github.com/MikeSquared-Agency/Procure/internal/wizard"
)

func newCatalogCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "catalog",
		Short: "Print the criteria, scoring guidance and weight profiles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(opts.configPath)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			wizard.RenderCatalog(cmd.OutOrStdout(), cfg.Matrix)
			return nil
		},
	}
}
