package main

import (
	"os"

	"github.com/spf13/cobra"

	"TransientLoader/internal/app"
	"TransientLoader/internal/config"
	"TransientLoader/internal/logging"
)

func main() {
	var (
		reportURL  string
		configPath string
	)

	root := &cobra.Command{
		Use:   "transientloader",
		Short: "Download a transient report's images and persist its record",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			logger := logging.New(cfg.Logging.Level)

			if err := app.New(cfg, logger).Run(cmd.Context(), reportURL); err != nil {
				logger.Error("run failed", "url", reportURL, "error", err)
				return err
			}
			return nil
		},
	}

	root.Flags().StringVarP(&reportURL, "url", "i", "", "transient report URL")
	root.Flags().StringVar(&configPath, "config", "", "path to YAML configuration")
	_ = root.MarkFlagRequired("url")
	root.SilenceUsage = true
	root.SilenceErrors = true

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}
