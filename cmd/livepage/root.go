package main

import (
	"github.com/spf13/cobra"

	"github.com/0xReLogic/livepage/internal/config"
	"github.com/0xReLogic/livepage/internal/logging"
	"github.com/0xReLogic/livepage/internal/server"
)

func newRootCmd() *cobra.Command {
	return &cobra.Command{
		Use:           "livepage",
		Short:         "Serve the deployment success page on 0.0.0.0:5000",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Default()
			if err != nil {
				return err
			}
			logging.Init(cfg.Logging)

			return server.New(cfg).ListenAndServe()
		},
	}
}
